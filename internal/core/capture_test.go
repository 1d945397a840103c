package core

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaptureOptionsDefaults(t *testing.T) {
	t.Run("zero value", func(t *testing.T) {
		opts := CaptureOptions{}.withDefaults()
		assert.Equal(t, DefaultCaptureTimeout, opts.Timeout)
		assert.Equal(t, DefaultViewportWidth, opts.Width)
		assert.Equal(t, DefaultViewportHeight, opts.Height)
		assert.Equal(t, "#summary", opts.WaitSelector)
		assert.False(t, opts.Headless)
	})

	t.Run("explicit values are kept", func(t *testing.T) {
		opts := CaptureOptions{
			Timeout:      5 * time.Second,
			Width:        640,
			Height:       480,
			WaitSelector: "#grid",
			ChromePath:   "/custom/chrome",
			Headless:     true,
		}.withDefaults()
		assert.Equal(t, 5*time.Second, opts.Timeout)
		assert.Equal(t, 640, opts.Width)
		assert.Equal(t, 480, opts.Height)
		assert.Equal(t, "#grid", opts.WaitSelector)
		assert.Equal(t, "/custom/chrome", opts.ChromePath)
	})

	t.Run("blank selector falls back", func(t *testing.T) {
		assert.Equal(t, "#summary", CaptureOptions{WaitSelector: "   "}.withDefaults().WaitSelector)
	})
}

func TestCaptureOptionsAllocator(t *testing.T) {
	base := len(CaptureOptions{}.withDefaults().allocatorOptions())
	withPath := len(CaptureOptions{ChromePath: "/custom/chrome"}.withDefaults().allocatorOptions())
	assert.Equal(t, base+1, withPath)
}

func findChrome(t *testing.T) string {
	t.Helper()
	for _, name := range []string{"google-chrome", "chromium", "chromium-browser", "headless-shell"} {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	t.Skip("no Chrome/Chromium found on PATH")
	return ""
}

func TestCaptureToFile(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser capture in short mode")
	}
	chrome := findChrome(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<html><body><div id="summary">1 pages • 0 changed • 0 errors</div></body></html>`))
	}))
	defer srv.Close()

	out := filepath.Join(t.TempDir(), "dashboard.png")
	err := CaptureToFile(context.Background(), srv.URL, out, CaptureOptions{
		ChromePath: chrome,
		Headless:   true,
		Timeout:    30 * time.Second,
	})
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))
}

func TestCaptureDashboard_WaitsForSummary(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser capture in short mode")
	}
	chrome := findChrome(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<html><body><div id="summary" style="min-height:1em"></div><main id="grid"></main></body></html>`))
	}))
	defer srv.Close()

	_, err := CaptureDashboard(context.Background(), srv.URL, CaptureOptions{
		ChromePath: chrome,
		Headless:   true,
		Timeout:    3 * time.Second,
	})
	assert.Error(t, err, "a page whose summary is never written must not be captured")
}
