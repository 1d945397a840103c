package web

import (
	"embed"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"

	"github.com/seckatie/statusboard/internal/core"
	"github.com/seckatie/statusboard/internal/core/loader"
	"github.com/seckatie/statusboard/internal/core/render"
	"github.com/seckatie/statusboard/internal/core/status"
)

//go:embed templates/*.html static/*
var templatesFS embed.FS

// Options configures the dashboard server.
type Options struct {
	// Snapshot is a file path or an http(s) URL.
	Snapshot string
	// ImagesDir holds the screenshot and diff files.
	ImagesDir string
	// Formatter controls timestamp display.
	Formatter status.Formatter
}

type Server struct {
	loader    loader.Loader
	snapshot  string
	imagesDir string
	renderer  *render.Renderer
	indexHTML []byte
	staticFS  http.FileSystem
}

func StartServer(addr string, opts Options) {
	ws, err := newServer(opts)
	if err != nil {
		log.Fatalf("Failed to initialize web server: %v", err)
	}

	mux := http.NewServeMux()
	ws.registerRoutes(mux)

	log.Printf("Starting web server at %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Web server failed: %v", err)
	}
}

func newServer(opts Options) (*Server, error) {
	if opts.Snapshot == "" {
		return nil, fmt.Errorf("no snapshot source configured")
	}

	indexHTML, err := templatesFS.ReadFile("templates/index.html")
	if err != nil {
		return nil, err
	}

	staticSub, err := fs.Sub(templatesFS, "static")
	if err != nil {
		return nil, err
	}

	imagesDir := opts.ImagesDir
	if imagesDir == "" {
		imagesDir = core.ImagesDir
	}
	if _, err := os.Stat(imagesDir); err != nil {
		log.Printf("Warning: images directory %s is not readable: %v", imagesDir, err)
	}

	return &Server{
		loader:    loader.New(opts.Snapshot),
		snapshot:  opts.Snapshot,
		imagesDir: imagesDir,
		renderer:  render.New(opts.Formatter),
		indexHTML: indexHTML,
		staticFS:  http.FS(staticSub),
	}, nil
}

func (ws *Server) registerRoutes(mux *http.ServeMux) {
	ws.registerStaticRoutes(mux)

	mux.HandleFunc("/", ws.handleIndex)
	mux.HandleFunc("/"+core.StatusFile, ws.handleStatus)
}

func (ws *Server) registerStaticRoutes(mux *http.ServeMux) {
	// Serve embedded static assets (stylesheet and filter script)
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(ws.staticFS)))
	// Screenshots and diffs produced by the monitor
	mux.Handle("/"+core.ImagesDir+"/", http.StripPrefix("/"+core.ImagesDir+"/", http.FileServer(http.Dir(ws.imagesDir))))
}
