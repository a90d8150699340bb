package browsertests

import (
	"github.com/Trieg/browser-test-harness/framework/btest"
	"github.com/Trieg/browser-test-harness/framework/harness"
)

// RunBrowserTestSuite runs our entire test suite, except for any tests that are excluded
// based on the filter or on the test service's capabilities.
func RunBrowserTestSuite(
	harness *harness.TestHarness,
	filter btest.Filter,
	testLogger btest.TestLogger,
) btest.Results {
	config := btest.TestConfiguration{
		Filter:       filter,
		Capabilities: harness.TestServiceInfo().Capabilities,
		TestLogger:   testLogger,
		Context:      BrowserTestContext{harness: harness},
	}

	return btest.Run(config, func(t *btest.T) {
		doAllBrowserTests(t)
	})
}

func doAllBrowserTests(t *btest.T) {
	t.Run("window geometry", doWindowGeometryTests)
	t.Run("frame documents", doFrameDocumentTests)
	t.Run("popup windows", doPopupWindowTests)
	t.Run("scrollbar metrics", doScrollbarTests)
}
