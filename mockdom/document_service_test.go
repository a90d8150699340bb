package mockdom

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Trieg/browser-test-harness/framework"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getDocument(t *testing.T, d *DocumentService, path string) string {
	rr := httptest.NewRecorder()
	r, _ := http.NewRequest("GET", path, nil)
	d.Handler().ServeHTTP(rr, r)
	require.Equal(t, 200, rr.Code)
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
	body, err := io.ReadAll(rr.Body)
	require.NoError(t, err)
	return string(body)
}

func TestChildWindowDocumentHasControlledStructure(t *testing.T) {
	d := NewDocumentService("geometry test", framework.NullLogger())

	doc := getDocument(t, d, ChildWindowPath)

	assert.True(t, strings.HasPrefix(doc, "<!DOCTYPE html>"))
	assert.Contains(t, doc, `<meta charset="utf-8">`)
	assert.Contains(t, doc, "<title>geometry test</title>")
	assert.Contains(t, doc, `id="anchor"`)
}

func TestFrameHostDocumentEmbedsFrameContent(t *testing.T) {
	d := NewDocumentService("frame test", framework.NullLogger())

	doc := getDocument(t, d, FrameHostPath)
	assert.Contains(t, doc, `<iframe id="frame" src="frame/content"`)

	content := getDocument(t, d, FrameContentPath)
	assert.Contains(t, content, "<title>frame test (frame)</title>")
}

func TestDocumentServiceRecordsLoads(t *testing.T) {
	d := NewDocumentService("load test", framework.NullLogger())

	_ = getDocument(t, d, ChildWindowPath)
	_ = getDocument(t, d, FrameHostPath)

	load1 := <-d.Loads()
	assert.Equal(t, ChildWindowPath, load1.Path)
	load2 := <-d.Loads()
	assert.Equal(t, FrameHostPath, load2.Path)
}

func TestDocumentServiceRejectsUnknownMethod(t *testing.T) {
	d := NewDocumentService("method test", framework.NullLogger())

	rr := httptest.NewRecorder()
	r, _ := http.NewRequest("POST", ChildWindowPath, nil)
	d.Handler().ServeHTTP(rr, r)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
