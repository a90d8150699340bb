package harness

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Trieg/browser-test-harness/framework"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixtureEndpointServesRequest(t *testing.T) {
	m := newFixtureEndpointsManager("http://testharness:9999", framework.NullLogger())

	handler1 := httphelpers.HandlerWithStatus(200)
	e1 := m.newFixtureEndpoint(handler1, framework.NullLogger())
	assert.Equal(t, "http://testharness:9999/fixtures/1", e1.BaseURL())

	handler2 := httphelpers.HandlerWithStatus(204)
	e2 := m.newFixtureEndpoint(handler2, framework.NullLogger())
	assert.Equal(t, "http://testharness:9999/fixtures/2", e2.BaseURL())

	rr1 := httptest.NewRecorder()
	r1, _ := http.NewRequest("GET", e1.BaseURL(), nil)
	m.serveHTTP(rr1, r1)
	assert.Equal(t, 200, rr1.Code)

	rr2 := httptest.NewRecorder()
	r2, _ := http.NewRequest("GET", e2.BaseURL(), nil)
	m.serveHTTP(rr2, r2)
	assert.Equal(t, 204, rr2.Code)
}

func TestFixtureEndpointReceivesSubpath(t *testing.T) {
	m := newFixtureEndpointsManager("http://testharness:9999", framework.NullLogger())

	handler, requests := httphelpers.RecordingHandler(httphelpers.HandlerWithStatus(200))
	e := m.newFixtureEndpoint(handler, framework.NullLogger())

	for _, subpath := range []string{"", "/", "/sub/path"} {
		rr := httptest.NewRecorder()
		r, _ := http.NewRequest("GET", e.BaseURL()+subpath, nil)
		m.serveHTTP(rr, r)
		received := <-requests
		if subpath == "" {
			assert.Equal(t, "/", received.Request.URL.Path)
		} else {
			assert.Equal(t, subpath, received.Request.URL.Path)
		}
	}
}

func TestFixtureEndpointRecordsIncomingRequests(t *testing.T) {
	m := newFixtureEndpointsManager("http://testharness:9999", framework.NullLogger())

	e := m.newFixtureEndpoint(httphelpers.HandlerWithStatus(200), framework.NullLogger(),
		FixtureEndpointDescription("child window page"))

	rr := httptest.NewRecorder()
	r, _ := http.NewRequest("GET", e.BaseURL()+"/page", nil)
	m.serveHTTP(rr, r)

	info, err := e.AwaitRequest(time.Second)
	require.NoError(t, err)
	assert.Equal(t, "GET", info.Method)
	assert.Equal(t, "/page", info.URL.Path)
}

func TestFixtureEndpointAwaitRequestTimesOut(t *testing.T) {
	m := newFixtureEndpointsManager("http://testharness:9999", framework.NullLogger())

	e := m.newFixtureEndpoint(httphelpers.HandlerWithStatus(200), framework.NullLogger(),
		FixtureEndpointDescription("never loaded"))

	_, err := e.AwaitRequest(time.Millisecond * 20)
	require.Error(t, err)
	assert.IsType(t, TimeoutError{}, err)
}

func TestFixtureEndpointReturns404AfterClose(t *testing.T) {
	m := newFixtureEndpointsManager("http://testharness:9999", framework.NullLogger())

	e := m.newFixtureEndpoint(httphelpers.HandlerWithStatus(200), framework.NullLogger())
	url := e.BaseURL()
	e.Close()

	rr := httptest.NewRecorder()
	r, _ := http.NewRequest("GET", url, nil)
	m.serveHTTP(rr, r)
	assert.Equal(t, 404, rr.Code)
}
