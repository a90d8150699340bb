package servicedef

import o "github.com/Trieg/browser-test-harness/framework/opt"

const (
	// CapabilityPopups means the test service can open popup (child) windows.
	CapabilityPopups = "popups"

	// CapabilityIFrames means the test service can embed iframe documents.
	CapabilityIFrames = "iframes"

	// CapabilityResize means windows opened by the test service can be resized after opening.
	CapabilityResize = "resize"

	// CapabilityScrollbarMetrics means the test service can report the width taken up by
	// window scrollbars, which is zero on platforms with overlay scrollbars.
	CapabilityScrollbarMetrics = "scrollbar-metrics"
)

// OpenWindowParams is the body of the POST request that asks the test service to open a
// new browser window.
type OpenWindowParams struct {
	// URL is the document the window should load, normally a harness fixture URL.
	URL string `json:"url"`

	// Width and Height are the desired outer dimensions in CSS pixels. If omitted, the
	// service uses its default window size.
	Width  o.Maybe[int] `json:"width,omitempty"`
	Height o.Maybe[int] `json:"height,omitempty"`

	// Popup requests a child window opened from an existing page rather than a top-level
	// window. Requires the "popups" capability.
	Popup bool `json:"popup,omitempty"`

	// Tag is an optional identifier that the service can include in its logs.
	Tag string `json:"tag,omitempty"`
}

const (
	CommandResizeWindow   = "resizeWindow"
	CommandWindowMetrics  = "windowMetrics"
	CommandEmbedFrame     = "embedFrame"
	CommandDocumentInfo   = "documentInfo"
	CommandFrameMetrics   = "frameMetrics"
	CommandScrollbarWidth = "scrollbarWidth"
)

// CommandParams is the body of a POST request to a window resource. Exactly one of the
// optional fields should be set, corresponding to the command.
type CommandParams struct {
	Command string `json:"command"`

	Resize     *ResizeWindowParams `json:"resize,omitempty"`
	EmbedFrame *EmbedFrameParams   `json:"embedFrame,omitempty"`
}

// ResizeWindowParams are the parameters for the resizeWindow command.
type ResizeWindowParams struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// EmbedFrameParams are the parameters for the embedFrame command, which appends an iframe
// loading the given URL to the window's document body.
type EmbedFrameParams struct {
	URL string `json:"url"`

	// Width and Height are the iframe element's dimensions in CSS pixels, if specified.
	Width  o.Maybe[int] `json:"width,omitempty"`
	Height o.Maybe[int] `json:"height,omitempty"`
}

// WindowMetricsRep is the response to the windowMetrics and frameMetrics commands.
type WindowMetricsRep struct {
	InnerWidth     int `json:"innerWidth"`
	InnerHeight    int `json:"innerHeight"`
	OuterWidth     int `json:"outerWidth"`
	OuterHeight    int `json:"outerHeight"`
	DocumentWidth  int `json:"documentWidth"`
	DocumentHeight int `json:"documentHeight"`
}

// DocumentInfoRep is the response to the documentInfo command, describing the document
// currently loaded in the window.
type DocumentInfoRep struct {
	// Doctype is the name of the document type declaration, e.g. "html".
	Doctype string `json:"doctype"`

	// Charset is the document's effective character encoding.
	Charset string `json:"charset"`

	// Title is the document title.
	Title string `json:"title"`

	// BodyChildCount is the number of child elements of the body.
	BodyChildCount int `json:"bodyChildCount"`

	// FrameCount is the number of iframes in the document.
	FrameCount int `json:"frameCount"`
}

// ScrollbarWidthRep is the response to the scrollbarWidth command.
type ScrollbarWidthRep struct {
	Width int `json:"width"`
}
