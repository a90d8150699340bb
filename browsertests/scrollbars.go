package browsertests

import (
	"github.com/Trieg/browser-test-harness/framework/btest"
	"github.com/Trieg/browser-test-harness/mockdom"
	"github.com/Trieg/browser-test-harness/servicedef"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doScrollbarTests(t *btest.T) {
	t.RequireCapability(servicedef.CapabilityScrollbarMetrics)

	t.Run("reported width is sane", scrollbarWidthIsSane)
	t.Run("consistent across windows", scrollbarWidthIsConsistent)
}

// Scrollbar width is zero on platforms with overlay scrollbars, so the only universal
// assertions are that it is non-negative and not absurdly large.
func scrollbarWidthIsSane(t *btest.T) {
	docs, endpoint := newDocumentFixture(t, "scrollbar width")
	w := openWindow(t, servicedef.OpenWindowParams{
		URL: endpoint.BaseURL() + mockdom.ChildWindowPath,
		Tag: "scrollbar-width",
	})
	_ = requireDocumentLoad(t, docs, mockdom.ChildWindowPath)

	var rep servicedef.ScrollbarWidthRep
	require.NoError(t, w.SendCommand(servicedef.CommandScrollbarWidth, t.DebugLogger(), &rep))
	assert.GreaterOrEqual(t, rep.Width, 0)
	assert.Less(t, rep.Width, 100)
}

func scrollbarWidthIsConsistent(t *btest.T) {
	docs, endpoint := newDocumentFixture(t, "scrollbar consistency")

	var widths []int
	for i := 0; i < 2; i++ {
		w := openWindow(t, servicedef.OpenWindowParams{
			URL: endpoint.BaseURL() + mockdom.ChildWindowPath,
			Tag: "scrollbar-consistency",
		})
		_ = requireDocumentLoad(t, docs, mockdom.ChildWindowPath)

		var rep servicedef.ScrollbarWidthRep
		require.NoError(t, w.SendCommand(servicedef.CommandScrollbarWidth, t.DebugLogger(), &rep))
		widths = append(widths, rep.Width)
	}
	assert.Equal(t, widths[0], widths[1],
		"scrollbar width should not vary between windows of the same service")
}
