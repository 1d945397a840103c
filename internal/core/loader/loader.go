// Package loader fetches the status snapshot.
//
// Every call reads the snapshot afresh: HTTP requests are sent with
// no-store cache directives and files are re-read from disk. A load is a
// single attempt; callers that want a newer snapshot simply load again.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/seckatie/statusboard/internal/core"
	"github.com/seckatie/statusboard/internal/core/status"
)

var (
	// ErrLoad is returned when the snapshot resource could not be retrieved.
	ErrLoad = errors.New("failed to load " + core.StatusFile)
	// ErrParse is returned when the snapshot is not valid JSON.
	ErrParse = errors.New("failed to parse " + core.StatusFile)
)

// Loader retrieves the current snapshot.
type Loader interface {
	Load(ctx context.Context) (*status.Snapshot, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context) (*status.Snapshot, error)

// Load calls f(ctx).
func (f LoaderFunc) Load(ctx context.Context) (*status.Snapshot, error) {
	return f(ctx)
}

// HTTPLoader fetches the snapshot over HTTP.
type HTTPLoader struct {
	// URL of the snapshot document.
	URL string
	// Client used for the request. Nil means http.DefaultClient.
	Client *http.Client
}

// NewHTTPLoader returns a loader for base. When base names a directory
// (ends in "/") the well-known status file beneath it is used.
func NewHTTPLoader(base string) *HTTPLoader {
	if strings.HasSuffix(base, "/") {
		base += core.StatusFile
	}
	return &HTTPLoader{URL: base}
}

// Load performs one uncached GET request.
func (l *HTTPLoader) Load(ctx context.Context) (*status.Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}
	req.Header.Set("Cache-Control", "no-store")
	req.Header.Set("Pragma", "no-cache")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", core.UserAgent)

	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: HTTP %d", ErrLoad, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}
	return decode(data)
}

// FileLoader reads the snapshot from the local filesystem.
type FileLoader struct {
	Path string
}

// Load reads and parses the file.
func (l *FileLoader) Load(ctx context.Context) (*status.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(l.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}
	return decode(data)
}

// New picks a loader for source: http(s) URLs are fetched, anything else is
// read as a file path.
func New(source string) Loader {
	if u, err := url.Parse(source); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return NewHTTPLoader(source)
	}
	return &FileLoader{Path: source}
}

func decode(data []byte) (*status.Snapshot, error) {
	snap, err := status.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return snap, nil
}
