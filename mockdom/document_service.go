package mockdom

import (
	"fmt"
	"net/http"

	"github.com/Trieg/browser-test-harness/framework"
	"github.com/Trieg/browser-test-harness/framework/helpers"

	"github.com/gorilla/mux"
)

// Paths served by a DocumentService, relative to its fixture endpoint base URL.
const (
	ChildWindowPath  = "/"
	FrameHostPath    = "/frame"
	FrameContentPath = "/frame/content"
)

const loadsChannelBufferSize = 10

// The documents have a fixed HTML5 structure: a doctype, an explicit utf-8 charset, a
// head with a title, and a body whose content is known to the tests. The child window
// and frame content bodies contain a single sized block so that document dimensions are
// deterministic.

const childWindowDocument = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
</head>
<body style="margin:0">
<div id="anchor" style="width:100px;height:100px"></div>
</body>
</html>
`

const frameHostDocument = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
</head>
<body style="margin:0">
<iframe id="frame" src="%s" style="border:0"></iframe>
</body>
</html>
`

// DocumentLoad describes one document fetch made by the test service.
type DocumentLoad struct {
	Path      string
	UserAgent string
}

// DocumentService serves the fixture documents for one test's windows and frames. Create
// one per test with NewDocumentService and expose it with harness.NewFixtureEndpoint.
type DocumentService struct {
	router *mux.Router
	title  string
	loads  chan DocumentLoad
	logger framework.Logger
}

// NewDocumentService creates a DocumentService whose documents carry the given title.
func NewDocumentService(title string, logger framework.Logger) *DocumentService {
	d := &DocumentService{
		router: mux.NewRouter(),
		title:  title,
		loads:  make(chan DocumentLoad, loadsChannelBufferSize),
		logger: logger,
	}
	d.router.HandleFunc(ChildWindowPath, d.serveChildWindow).Methods("GET")
	d.router.HandleFunc(FrameHostPath, d.serveFrameHost).Methods("GET")
	d.router.HandleFunc(FrameContentPath, d.serveFrameContent).Methods("GET")
	return d
}

// Handler returns the HTTP handler for the service's routes.
func (d *DocumentService) Handler() http.Handler {
	return d.router
}

// Loads returns a channel that receives one DocumentLoad per document fetch, in order.
func (d *DocumentService) Loads() <-chan DocumentLoad {
	return d.loads
}

func (d *DocumentService) serveChildWindow(w http.ResponseWriter, r *http.Request) {
	d.serveDocument(w, r, fmt.Sprintf(childWindowDocument, d.title))
}

func (d *DocumentService) serveFrameHost(w http.ResponseWriter, r *http.Request) {
	// The iframe src is relative so the document works regardless of which fixture
	// endpoint it is served from.
	d.serveDocument(w, r, fmt.Sprintf(frameHostDocument, d.title, "frame/content"))
}

func (d *DocumentService) serveFrameContent(w http.ResponseWriter, r *http.Request) {
	d.serveDocument(w, r, fmt.Sprintf(childWindowDocument, d.title+" (frame)"))
}

func (d *DocumentService) serveDocument(w http.ResponseWriter, r *http.Request, document string) {
	d.logger.Printf("[%s] serving %s", d.title, r.URL.Path)
	load := DocumentLoad{Path: r.URL.Path, UserAgent: r.Header.Get("User-Agent")}
	if !helpers.NonBlockingSend(d.loads, load) {
		d.logger.Printf("[%s] load channel was full for %s", d.title, r.URL.Path)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(document))
}
