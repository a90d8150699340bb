package browsertests

import (
	"github.com/Trieg/browser-test-harness/framework/btest"
	"github.com/Trieg/browser-test-harness/framework/helpers"
	o "github.com/Trieg/browser-test-harness/framework/opt"
	"github.com/Trieg/browser-test-harness/mockdom"
	"github.com/Trieg/browser-test-harness/servicedef"

	"github.com/stretchr/testify/assert"
)

func doPopupWindowTests(t *btest.T) {
	t.RequireCapability(servicedef.CapabilityPopups)

	t.Run("loads fixture document", popupLoadsFixtureDocument)
	t.Run("honors requested size", popupHonorsRequestedSize)
}

func popupLoadsFixtureDocument(t *btest.T) {
	docs, endpoint := newDocumentFixture(t, "popup load")
	_ = openWindow(t, servicedef.OpenWindowParams{
		URL:   endpoint.BaseURL() + mockdom.ChildWindowPath,
		Popup: true,
		Tag:   "popup-load",
	})

	load := requireDocumentLoad(t, docs, mockdom.ChildWindowPath)
	assert.NotEmpty(t, load.UserAgent, "popup request did not carry a user agent")
}

// popupHonorsRequestedSize is non-critical: many platforms clamp popup dimensions to a
// minimum size or ignore them entirely for tabbed browsers.
func popupHonorsRequestedSize(t *btest.T) {
	t.NonCritical("popup sizing is advisory on many platforms")

	docs, endpoint := newDocumentFixture(t, "popup size")
	w := openWindow(t, servicedef.OpenWindowParams{
		URL:    endpoint.BaseURL() + mockdom.ChildWindowPath,
		Width:  o.Some(500),
		Height: o.Some(400),
		Popup:  true,
		Tag:    "popup-size",
	})
	_ = requireDocumentLoad(t, docs, mockdom.ChildWindowPath)

	helpers.RequireEventually(t, func() bool {
		m := requireWindowMetrics(t, w)
		return m.OuterWidth == 500 && m.OuterHeight == 400
	}, defaultPollTimeout, defaultPollInterval,
		"popup never settled at the requested size 500x400")
}
