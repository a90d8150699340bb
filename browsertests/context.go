package browsertests

import (
	"time"

	"github.com/Trieg/browser-test-harness/data"
	"github.com/Trieg/browser-test-harness/framework/btest"
	"github.com/Trieg/browser-test-harness/framework/harness"
	"github.com/Trieg/browser-test-harness/mockdom"
	"github.com/Trieg/browser-test-harness/servicedef"

	"github.com/stretchr/testify/require"
)

const (
	defaultPollTimeout  = time.Second * 5
	defaultPollInterval = time.Millisecond * 100

	documentLoadTimeout = time.Second * 10
)

// BrowserTestContext is the context value that tests in this package expect to find in the
// TestConfiguration. It provides access to the test harness.
type BrowserTestContext struct {
	harness *harness.TestHarness
}

func requireContext(t *btest.T) BrowserTestContext {
	if c, ok := t.Context().(BrowserTestContext); ok {
		return c
	}
	panic("BrowserTestContext was not included in the test configuration")
}

// newDocumentFixture creates a DocumentService whose documents carry the given title, and
// exposes it through a fixture endpoint on the harness. The endpoint is torn down when
// this test scope exits.
func newDocumentFixture(t *btest.T, title string) (*mockdom.DocumentService, *harness.FixtureEndpoint) {
	c := requireContext(t)
	docs := mockdom.NewDocumentService(title, t.DebugLogger())
	endpoint := c.harness.NewFixtureEndpoint(docs.Handler(), t.DebugLogger(),
		harness.FixtureEndpointDescription(title))
	t.Defer(endpoint.Close)
	return docs, endpoint
}

// openWindow tells the test service to open a browser window, and schedules it to be
// closed when this test scope exits.
func openWindow(t *btest.T, params servicedef.OpenWindowParams) *harness.ServiceWindow {
	t.Helper()
	c := requireContext(t)
	w, err := c.harness.NewServiceWindow(params, params.Tag, t.DebugLogger())
	require.NoError(t, err)
	t.Defer(func() {
		_ = w.Close()
	})
	return w
}

// requireDocumentLoad waits for the service to fetch a document from the given fixture,
// which is how we know the window (or frame) actually loaded it.
func requireDocumentLoad(t *btest.T, docs *mockdom.DocumentService, expectedPath string) mockdom.DocumentLoad {
	t.Helper()
	deadline := time.NewTimer(documentLoadTimeout)
	defer deadline.Stop()
	select {
	case load := <-docs.Loads():
		require.Equal(t, expectedPath, load.Path)
		return load
	case <-deadline.C:
		require.FailNow(t, "timed out waiting for the test service to load "+expectedPath)
		return mockdom.DocumentLoad{}
	}
}

func requireWindowMetrics(t *btest.T, w *harness.ServiceWindow) servicedef.WindowMetricsRep {
	t.Helper()
	var metrics servicedef.WindowMetricsRep
	require.NoError(t, w.SendCommand(servicedef.CommandWindowMetrics, t.DebugLogger(), &metrics))
	return metrics
}

func requireDocumentInfo(t *btest.T, w *harness.ServiceWindow) servicedef.DocumentInfoRep {
	t.Helper()
	var info servicedef.DocumentInfoRep
	require.NoError(t, w.SendCommand(servicedef.CommandDocumentInfo, t.DebugLogger(), &info))
	return info
}

// mustLoadDataset reads one of the embedded dataset files. A bad file is a defect in the
// harness itself, so it terminates the test scope immediately.
func mustLoadDataset(t *btest.T, filePath string) btest.Dataset {
	t.Helper()
	source, err := data.LoadDataFile(filePath)
	require.NoError(t, err)
	dataset, err := source.ToDataset()
	require.NoError(t, err)
	return dataset
}
