package browsertests

import (
	"github.com/Trieg/browser-test-harness/framework/btest"
	"github.com/Trieg/browser-test-harness/framework/helpers"
	o "github.com/Trieg/browser-test-harness/framework/opt"
	"github.com/Trieg/browser-test-harness/mockdom"
	"github.com/Trieg/browser-test-harness/servicedef"

	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doWindowGeometryTests(t *btest.T) {
	t.Run("initial size", windowInitialSizeTests)
	t.Run("resize", windowResizeTests)
	t.Run("document dimensions", windowDocumentDimensionTests)
}

// windowInitialSizeTests opens one window per dataset entry at the requested outer size,
// then verifies the geometry the service reports. Window sizing is asynchronous on the
// browser side, so all size checks poll rather than asserting on the first report.
func windowInitialSizeTests(t *btest.T) {
	btest.WithData(t, mustLoadDataset(t, "window-sizes.yaml"),
		func(t *btest.T, args ...ldvalue.Value) {
			width, height := args[0].IntValue(), args[1].IntValue()

			docs, endpoint := newDocumentFixture(t, "initial size")
			w := openWindow(t, servicedef.OpenWindowParams{
				URL:    endpoint.BaseURL() + mockdom.ChildWindowPath,
				Width:  o.Some(width),
				Height: o.Some(height),
				Tag:    "initial-size",
			})
			_ = requireDocumentLoad(t, docs, mockdom.ChildWindowPath)

			helpers.RequireEventually(t, func() bool {
				m := requireWindowMetrics(t, w)
				return m.OuterWidth == width && m.OuterHeight == height
			}, defaultPollTimeout, defaultPollInterval,
				"window never settled at the requested size %dx%d", width, height)

			m := requireWindowMetrics(t, w)
			assert.LessOrEqual(t, m.InnerWidth, m.OuterWidth)
			assert.LessOrEqual(t, m.InnerHeight, m.OuterHeight)
		})
}

func windowResizeTests(t *btest.T) {
	t.RequireCapability(servicedef.CapabilityResize)

	docs, endpoint := newDocumentFixture(t, "resize")
	w := openWindow(t, servicedef.OpenWindowParams{
		URL:    endpoint.BaseURL() + mockdom.ChildWindowPath,
		Width:  o.Some(800),
		Height: o.Some(600),
		Tag:    "resize",
	})
	_ = requireDocumentLoad(t, docs, mockdom.ChildWindowPath)

	btest.WithData(t, btest.Keyed(
		btest.Entry("shrink", ldvalue.Int(400), ldvalue.Int(300)),
		btest.Entry("grow", ldvalue.Int(1280), ldvalue.Int(720)),
		btest.Entry("same size again", ldvalue.Int(1280), ldvalue.Int(720)),
	), func(t *btest.T, args ...ldvalue.Value) {
		width, height := args[0].IntValue(), args[1].IntValue()

		require.NoError(t, w.SendCommandWithParams(servicedef.CommandParams{
			Command: servicedef.CommandResizeWindow,
			Resize:  &servicedef.ResizeWindowParams{Width: width, Height: height},
		}, t.DebugLogger(), nil))

		helpers.RequireEventually(t, func() bool {
			m := requireWindowMetrics(t, w)
			return m.OuterWidth == width && m.OuterHeight == height
		}, defaultPollTimeout, defaultPollInterval,
			"window never settled at the requested size %dx%d", width, height)
	})
}

// windowDocumentDimensionTests verifies that the document dimensions the service reports
// reflect the fixture document's known content, not the window size. Some drivers report
// the document size rounded up to the viewport; that is tolerable, so this is non-critical.
func windowDocumentDimensionTests(t *btest.T) {
	t.NonCritical("some drivers report document dimensions clamped to the viewport")

	docs, endpoint := newDocumentFixture(t, "document dimensions")
	w := openWindow(t, servicedef.OpenWindowParams{
		URL:    endpoint.BaseURL() + mockdom.ChildWindowPath,
		Width:  o.Some(640),
		Height: o.Some(480),
		Tag:    "document-dimensions",
	})
	_ = requireDocumentLoad(t, docs, mockdom.ChildWindowPath)

	// The fixture body contains a single 100x100 block with no margins.
	helpers.RequireEventually(t, func() bool {
		m := requireWindowMetrics(t, w)
		return m.DocumentWidth >= 100 && m.DocumentHeight >= 100
	}, defaultPollTimeout, defaultPollInterval,
		"document dimensions were never reported as at least 100x100")

	m := requireWindowMetrics(t, w)
	assert.LessOrEqual(t, m.DocumentHeight, m.InnerHeight,
		"fixture document should not overflow the viewport vertically")
}
