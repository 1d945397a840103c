package web

import (
	"log"
	"net/http"
	"os"
	"strings"
)

// writeHTML sends a page with the standard HTML headers.
// Every response reflects the snapshot as of the request, so none are cached.
func writeHTML(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if _, err := w.Write([]byte(body)); err != nil {
		log.Printf("Failed to write response: %v", err)
	}
}

// requireMethod checks if the request method matches the expected method.
// Returns true if the method matches, false otherwise (and sends 405 response).
func requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// handleIndex serves the dashboard. One request is one page load: the
// snapshot is read once, and later filtering happens in the browser over the
// cards already rendered.
func (ws *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	opts := PageOptions{
		Query:  r.URL.Query().Get("q"),
		Filter: r.URL.Query().Get("state"),
	}
	doc, _, err := buildPage(r.Context(), ws.indexHTML, ws.loader, ws.renderer, opts)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		log.Printf("Failed to build dashboard page: %v", err)
		return
	}

	var b strings.Builder
	if err := doc.Render(&b); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		log.Printf("Failed to render dashboard page: %v", err)
		return
	}
	writeHTML(w, b.String())
}

// handleStatus serves the raw snapshot, uncached. Remote snapshots are
// redirected to their source.
func (ws *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	if strings.HasPrefix(ws.snapshot, "http://") || strings.HasPrefix(ws.snapshot, "https://") {
		http.Redirect(w, r, ws.snapshot, http.StatusTemporaryRedirect)
		return
	}

	data, err := os.ReadFile(ws.snapshot)
	if err != nil {
		http.Error(w, "Not Found", http.StatusNotFound)
		log.Printf("Failed to read snapshot %s: %v", ws.snapshot, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	if _, err := w.Write(data); err != nil {
		log.Printf("Failed to write snapshot: %v", err)
	}
}
