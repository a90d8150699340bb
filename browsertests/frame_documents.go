package browsertests

import (
	"strings"

	"github.com/Trieg/browser-test-harness/framework/btest"
	"github.com/Trieg/browser-test-harness/framework/helpers"
	o "github.com/Trieg/browser-test-harness/framework/opt"
	"github.com/Trieg/browser-test-harness/mockdom"
	"github.com/Trieg/browser-test-harness/servicedef"

	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doFrameDocumentTests(t *btest.T) {
	t.RequireCapability(servicedef.CapabilityIFrames)

	t.Run("document structure", frameDocumentStructureTests)
	t.Run("embedded frame sizes", embeddedFrameSizeTests)
}

// frameDocumentStructureTests loads the fixture document that contains an iframe and
// verifies that the service sees the structure we served.
func frameDocumentStructureTests(t *btest.T) {
	docs, endpoint := newDocumentFixture(t, "frame structure")
	w := openWindow(t, servicedef.OpenWindowParams{
		URL: endpoint.BaseURL() + mockdom.FrameHostPath,
		Tag: "frame-structure",
	})
	_ = requireDocumentLoad(t, docs, mockdom.FrameHostPath)
	_ = requireDocumentLoad(t, docs, mockdom.FrameContentPath)

	info := requireDocumentInfo(t, w)
	assert.Equal(t, "html", strings.ToLower(info.Doctype))
	assert.Equal(t, "utf-8", strings.ToLower(info.Charset))
	assert.Equal(t, "frame structure", info.Title)
	assert.Equal(t, 1, info.BodyChildCount)
	assert.Equal(t, 1, info.FrameCount)
}

// embeddedFrameSizeTests appends an iframe of each dataset size to an open window and
// verifies the geometry reported for the frame's content window.
func embeddedFrameSizeTests(t *btest.T) {
	btest.WithData(t, mustLoadDataset(t, "frame-sizes.json"),
		func(t *btest.T, args ...ldvalue.Value) {
			width, height := args[0].IntValue(), args[1].IntValue()

			docs, endpoint := newDocumentFixture(t, "embedded frame")
			w := openWindow(t, servicedef.OpenWindowParams{
				URL: endpoint.BaseURL() + mockdom.ChildWindowPath,
				Tag: "embedded-frame",
			})
			_ = requireDocumentLoad(t, docs, mockdom.ChildWindowPath)

			require.NoError(t, w.SendCommandWithParams(servicedef.CommandParams{
				Command: servicedef.CommandEmbedFrame,
				EmbedFrame: &servicedef.EmbedFrameParams{
					URL:    endpoint.BaseURL() + mockdom.FrameContentPath,
					Width:  o.Some(width),
					Height: o.Some(height),
				},
			}, t.DebugLogger(), nil))
			_ = requireDocumentLoad(t, docs, mockdom.FrameContentPath)

			info := requireDocumentInfo(t, w)
			assert.Equal(t, 1, info.FrameCount)

			// The frame's inner size is its element size minus any border, and our embed
			// request specifies a borderless frame, so it should match exactly.
			helpers.RequireEventually(t, func() bool {
				var m servicedef.WindowMetricsRep
				if err := w.SendCommand(servicedef.CommandFrameMetrics, t.DebugLogger(), &m); err != nil {
					return false
				}
				return m.InnerWidth == width && m.InnerHeight == height
			}, defaultPollTimeout, defaultPollInterval,
				"frame content never reported the requested size %dx%d", width, height)
		})
}
