package harness

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Trieg/browser-test-harness/framework"
	"github.com/Trieg/browser-test-harness/serviceinfo"
)

const httpListenerTimeout = time.Second * 10

// TestHarness is the main component that manages communication with a browser test service.
//
// It always communicates with a single test service, which it verifies is alive on startup.
// It can then ask the test service to open any number of browser windows (NewServiceWindow)
// and expose any number of fixture endpoints serving documents for those windows to load
// (NewFixtureEndpoint).
//
// It contains no domain-specific test logic, but only provides a general mechanism for test
// suites to build on.
type TestHarness struct {
	testServiceBaseURL string
	testServiceInfo    serviceinfo.TestServiceInfo
	fixtures           *fixtureEndpointsManager
	logger             framework.Logger
}

// NewTestHarness creates a TestHarness instance, and verifies that the test service
// is responding by querying its status resource. It also starts an HTTP listener
// on the specified port to serve fixture documents.
func NewTestHarness(
	testServiceBaseURL string,
	testHarnessExternalHostname string,
	testHarnessPort int,
	statusQueryTimeout time.Duration,
	debugLogger framework.Logger,
	startupOutput io.Writer,
) (*TestHarness, error) {
	if debugLogger == nil {
		debugLogger = framework.NullLogger()
	}

	externalBaseURL := fmt.Sprintf("http://%s:%d", testHarnessExternalHostname, testHarnessPort)

	h := &TestHarness{
		testServiceBaseURL: testServiceBaseURL,
		fixtures:           newFixtureEndpointsManager(externalBaseURL, debugLogger),
		logger:             debugLogger,
	}

	testServiceInfo, err := queryTestServiceInfo(testServiceBaseURL, statusQueryTimeout, startupOutput)
	if err != nil {
		return nil, err
	}
	h.testServiceInfo = testServiceInfo

	if err := startServer(testHarnessPort, http.HandlerFunc(h.serveHTTP)); err != nil {
		return nil, err
	}

	return h, nil
}

// TestServiceInfo returns the initial status information received from the test service.
func (h *TestHarness) TestServiceInfo() serviceinfo.TestServiceInfo {
	return h.testServiceInfo
}

// NewFixtureEndpoint adds a new endpoint that serves a fixture document (or any other
// handler) for the test service to load.
//
// The specified handler will be called for all incoming requests to the endpoint's
// base URL or any subpath of it. For instance, if the generated base URL (as reported
// by FixtureEndpoint.BaseURL()) is http://localhost:8222/fixtures/3, then it can also
// receive requests to http://localhost:8222/fixtures/3/some/subpath.
//
// When the handler is called, the test harness rewrites the request URL first so that
// the handler sees only the subpath.
func (h *TestHarness) NewFixtureEndpoint(
	handler http.Handler,
	logger framework.Logger,
	options ...FixtureEndpointOption,
) *FixtureEndpoint {
	if logger == nil {
		logger = h.logger
	}
	return h.fixtures.newFixtureEndpoint(handler, logger, options...)
}

func (h *TestHarness) serveHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method == "HEAD" {
		w.WriteHeader(200) // we use this to test whether our own listener is active yet
		return
	}
	h.fixtures.serveHTTP(w, r)
}

func startServer(port int, handler http.Handler) error {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second, // arbitrary but non-infinite timeout to avoid Slowloris Attack
	}
	go func() {
		if err := server.ListenAndServe(); err != nil {
			panic(err)
		}
	}()

	// Wait till the server is definitely listening for requests before we run any tests
	deadline := time.NewTimer(httpListenerTimeout)
	defer deadline.Stop()
	ticker := time.NewTicker(time.Millisecond * 10)
	defer ticker.Stop()
	for {
		select {
		case <-deadline.C:
			return fmt.Errorf("could not detect own listener at %s", server.Addr)
		case <-ticker.C:
			_, _, err := doRequest("HEAD", fmt.Sprintf("http://localhost:%d", port), nil)
			if err == nil {
				return nil
			}
		}
	}
}
