package web

import (
	"bytes"
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/seckatie/statusboard/internal/core/dashboard"
	"github.com/seckatie/statusboard/internal/core/loader"
	"github.com/seckatie/statusboard/internal/core/render"
)

// PageOptions selects what a single page load shows.
type PageOptions struct {
	Query  string
	Filter string
	// Static drops the controls that need a server to answer them, so the
	// page works as a plain file. Live filtering still runs in the browser.
	Static bool
}

// buildPage runs one page load against a fresh copy of the host page. A
// failed bootstrap is not an error here: the page itself carries the
// failure message.
func buildPage(ctx context.Context, hostPage []byte, l loader.Loader, r *render.Renderer, opts PageOptions) (*dashboard.Document, *dashboard.Dashboard, error) {
	doc, err := dashboard.ParseDocument(bytes.NewReader(hostPage))
	if err != nil {
		return nil, nil, err
	}
	if opts.Static {
		doc.Remove("[data-server]")
	}

	d := dashboard.New(doc, r)
	if err := d.Bootstrap(ctx, l); err != nil {
		return doc, d, nil
	}

	filter, _ := dashboard.ParseStateFilter(opts.Filter)
	if err := d.SetFilter(opts.Query, filter); err != nil {
		return nil, nil, err
	}
	return doc, d, nil
}

// RenderPage writes a complete dashboard page for the snapshot served by l.
// It returns the bootstrap error, if any, after the failure page is written.
func RenderPage(ctx context.Context, w io.Writer, l loader.Loader, r *render.Renderer, opts PageOptions) error {
	indexHTML, err := templatesFS.ReadFile("templates/index.html")
	if err != nil {
		return err
	}
	doc, d, err := buildPage(ctx, indexHTML, l, r, opts)
	if err != nil {
		return err
	}
	if err := doc.Render(w); err != nil {
		return err
	}
	return d.Err()
}

// WriteAssets copies the stylesheet the page links to into dir/static.
func WriteAssets(dir string) error {
	staticSub, err := fs.Sub(templatesFS, "static")
	if err != nil {
		return err
	}
	return fs.WalkDir(staticSub, ".", func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		target := filepath.Join(dir, "static", path)
		if entry.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		data, err := fs.ReadFile(staticSub, path)
		if err != nil {
			return err
		}
		return os.WriteFile(target, data, 0o644)
	})
}
