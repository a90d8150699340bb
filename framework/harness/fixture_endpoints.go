package harness

import (
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Trieg/browser-test-harness/framework"
	"github.com/Trieg/browser-test-harness/framework/helpers"
)

const fixturePathPrefix = "/fixtures/"

// Somewhat arbitrary buffer size for the channel that we use as a queue for incoming request
// information. If the channel is full, the HTTP request handler will *not* block; it will just
// discard the information.
const incomingRequestChannelBufferSize = 10

type fixtureEndpointsManager struct {
	endpoints       map[string]*FixtureEndpoint
	lastEndpointID  int
	externalBaseURL string
	logger          framework.Logger
	lock            sync.Mutex
}

// FixtureEndpoint is a dynamically allocated URL path on the harness's listener, normally
// serving a fixture document for the test service to load into a window or iframe. Each
// incoming request is also recorded, so tests can verify that the service actually loaded
// the document (and, for documents containing a beacon script, that the document's own
// subresources were requested).
type FixtureEndpoint struct {
	owner       *fixtureEndpointsManager
	id          string
	description string
	basePath    string
	handler     http.Handler
	newRequests chan IncomingRequestInfo
	logger      framework.Logger
	lock        sync.Mutex
	closing     sync.Once
}

type FixtureEndpointOption helpers.ConfigOption[FixtureEndpoint]

type fixtureEndpointOptionDescription struct {
	description string
}

func (o fixtureEndpointOptionDescription) Configure(e *FixtureEndpoint) error {
	e.description = o.description
	return nil
}

// FixtureEndpointDescription sets a human-readable description used in debug output.
func FixtureEndpointDescription(description string) FixtureEndpointOption {
	return fixtureEndpointOptionDescription{description}
}

// IncomingRequestInfo contains information about an HTTP request sent by the test service
// to one of the fixture endpoints.
type IncomingRequestInfo struct {
	Headers http.Header
	Method  string
	URL     url.URL
	Body    []byte
}

func newFixtureEndpointsManager(externalBaseURL string, logger framework.Logger) *fixtureEndpointsManager {
	return &fixtureEndpointsManager{
		endpoints:       make(map[string]*FixtureEndpoint),
		externalBaseURL: externalBaseURL,
		logger:          logger,
	}
}

func (m *fixtureEndpointsManager) newFixtureEndpoint(
	handler http.Handler,
	logger framework.Logger,
	options ...FixtureEndpointOption,
) *FixtureEndpoint {
	if logger == nil {
		logger = m.logger
	}
	e := &FixtureEndpoint{
		owner:       m,
		handler:     handler,
		newRequests: make(chan IncomingRequestInfo, incomingRequestChannelBufferSize),
		logger:      logger,
	}
	_ = helpers.ApplyOptions(e, options...)
	m.lock.Lock()
	m.lastEndpointID++
	e.id = strconv.Itoa(m.lastEndpointID)
	e.basePath = fixturePathPrefix + e.id
	m.endpoints[e.id] = e
	m.lock.Unlock()

	return e
}

func (m *fixtureEndpointsManager) serveHTTP(w http.ResponseWriter, r *http.Request) {
	if !strings.HasPrefix(r.URL.Path, fixturePathPrefix) {
		m.logger.Printf("Received request for unrecognized URL path %s", r.URL.Path)
		w.WriteHeader(404)
		return
	}
	path := strings.TrimPrefix(r.URL.Path, fixturePathPrefix)
	var endpointID string
	slashPos := strings.Index(path, "/")
	if slashPos >= 0 {
		endpointID = path[0:slashPos]
		path = path[slashPos:]
	} else {
		endpointID = path
		path = "/"
	}

	m.lock.Lock()
	e := m.endpoints[endpointID]
	m.lock.Unlock()
	if e == nil {
		m.logger.Printf("Received request for unrecognized fixture %s", r.URL.Path)
		w.WriteHeader(404)
		return
	}

	var body []byte
	if r.Body != nil {
		data, err := io.ReadAll(r.Body)
		_ = r.Body.Close()
		if err != nil {
			m.logger.Printf("Unexpected error trying to read request body: %s", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		body = data
	}

	transformedReq := r.Clone(r.Context())
	url := *r.URL
	url.Path = path
	transformedReq.URL = &url
	if body != nil {
		transformedReq.Body = io.NopCloser(strings.NewReader(string(body)))
	}

	incoming := IncomingRequestInfo{
		Headers: r.Header,
		Method:  r.Method,
		URL:     url,
		Body:    body,
	}

	e.lock.Lock()
	newRequests := e.newRequests
	e.lock.Unlock()

	if newRequests == nil {
		// the endpoint is already closed
		m.logger.Printf("Received request to already-closed fixture %s", r.URL)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if !helpers.NonBlockingSend(newRequests, incoming) {
		m.logger.Printf("Incoming request channel was full for %s", r.URL)
	}

	e.handler.ServeHTTP(w, transformedReq)
}

// BaseURL returns the externally visible URL of the fixture endpoint.
func (e *FixtureEndpoint) BaseURL() string {
	return e.owner.externalBaseURL + e.basePath
}

// AwaitRequest waits for an incoming request to the endpoint.
func (e *FixtureEndpoint) AwaitRequest(timeout time.Duration) (IncomingRequestInfo, error) {
	maybeReq := helpers.TryReceive(e.newRequests, timeout)
	if maybeReq.IsDefined() {
		return maybeReq.Value(), nil
	}
	return IncomingRequestInfo{}, TimeoutError{description: e.description, basePath: e.basePath}
}

// RequireRequest waits for an incoming request to the endpoint, and causes the test to fail
// and terminate if it timed out.
func (e *FixtureEndpoint) RequireRequest(t helpers.TestContext, timeout time.Duration) IncomingRequestInfo {
	t.Helper()
	return helpers.RequireValueWithMessage(t, e.newRequests, timeout, "timed out waiting for request to %q (%s)",
		e.description, e.basePath)
}

// RequireNoMoreRequests causes the test to fail and terminate if there is another incoming
// request within the timeout.
func (e *FixtureEndpoint) RequireNoMoreRequests(t helpers.TestContext, timeout time.Duration) {
	t.Helper()
	helpers.RequireNoMoreValuesWithMessage(t, e.newRequests, timeout,
		"did not expect another request to %q (%s), but got one", e.description, e.basePath)
}

// Close unregisters the endpoint. Any subsequent requests to it will receive 404 errors.
func (e *FixtureEndpoint) Close() {
	e.closing.Do(func() {
		e.logger.Printf("Closing fixture %q (%s)", e.description, e.basePath)
		e.owner.lock.Lock()
		delete(e.owner.endpoints, e.id)
		e.owner.lock.Unlock()

		e.lock.Lock()
		close(e.newRequests)
		e.newRequests = nil
		e.lock.Unlock()
	})
}

// TimeoutError indicates that a fixture endpoint did not receive an expected request.
type TimeoutError struct {
	description string
	basePath    string
}

func (e TimeoutError) Error() string {
	return "timed out waiting for an incoming request to \"" + e.description + "\" (" + e.basePath + ")"
}
