package loader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seckatie/statusboard/internal/core/status"
)

const sampleSnapshot = `{
	"generated_at": "2024-01-01T00:00:00Z",
	"items": [{"name": "Home", "url": "https://x", "state": "changed", "score": 0.91, "threshold": 0.95}]
}`

func TestHTTPLoader(t *testing.T) {
	t.Run("successful load", func(t *testing.T) {
		var gotCache, gotPragma, gotPath string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotCache = r.Header.Get("Cache-Control")
			gotPragma = r.Header.Get("Pragma")
			gotPath = r.URL.Path
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(sampleSnapshot))
		}))
		defer srv.Close()

		snap, err := NewHTTPLoader(srv.URL + "/").Load(context.Background())
		require.NoError(t, err)
		require.Len(t, snap.Items, 1)
		assert.Equal(t, "Home", snap.Items[0].Name)
		assert.Equal(t, "no-store", gotCache)
		assert.Equal(t, "no-cache", gotPragma)
		assert.Equal(t, "/status.json", gotPath)
	})

	t.Run("non-success status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "not found", http.StatusNotFound)
		}))
		defer srv.Close()

		_, err := NewHTTPLoader(srv.URL + "/status.json").Load(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrLoad)
		assert.Contains(t, err.Error(), "HTTP 404")
	})

	t.Run("malformed json", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"items": [`))
		}))
		defer srv.Close()

		_, err := NewHTTPLoader(srv.URL + "/status.json").Load(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrParse)
		assert.NotErrorIs(t, err, ErrLoad)
	})

	t.Run("single attempt", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		_, err := NewHTTPLoader(srv.URL + "/status.json").Load(context.Background())
		assert.ErrorIs(t, err, ErrLoad)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("unreachable server", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL + "/status.json"
		srv.Close()

		_, err := NewHTTPLoader(url).Load(context.Background())
		assert.ErrorIs(t, err, ErrLoad)
	})

	t.Run("canceled context", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(sampleSnapshot))
		}))
		defer srv.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewHTTPLoader(srv.URL + "/status.json").Load(ctx)
		assert.Error(t, err)
	})
}

func TestFileLoader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "status.json")

	t.Run("missing file", func(t *testing.T) {
		_, err := (&FileLoader{Path: path}).Load(context.Background())
		assert.ErrorIs(t, err, ErrLoad)
	})

	t.Run("reads current contents on every call", func(t *testing.T) {
		l := &FileLoader{Path: path}

		require.NoError(t, os.WriteFile(path, []byte(sampleSnapshot), 0o644))
		snap, err := l.Load(context.Background())
		require.NoError(t, err)
		assert.Len(t, snap.Items, 1)

		require.NoError(t, os.WriteFile(path, []byte(`{"items": []}`), 0o644))
		snap, err = l.Load(context.Background())
		require.NoError(t, err)
		assert.Empty(t, snap.Items)
	})

	t.Run("malformed json", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte(`not json`), 0o644))
		_, err := (&FileLoader{Path: path}).Load(context.Background())
		assert.ErrorIs(t, err, ErrParse)
	})

	t.Run("missing items array", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o644))
		_, err := (&FileLoader{Path: path}).Load(context.Background())
		assert.ErrorIs(t, err, ErrParse)
	})
}

func TestNew(t *testing.T) {
	tests := []struct {
		source   string
		wantHTTP bool
	}{
		{"status.json", false},
		{"/var/www/status.json", false},
		{"http://localhost:8080/status.json", true},
		{"https://example.com/", true},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			l := New(tt.source)
			_, isHTTP := l.(*HTTPLoader)
			assert.Equal(t, tt.wantHTTP, isHTTP)
		})
	}

	assert.Equal(t, "https://example.com/status.json", New("https://example.com/").(*HTTPLoader).URL)
}

func TestLoaderFunc(t *testing.T) {
	want := &status.Snapshot{}
	got, err := LoaderFunc(func(context.Context) (*status.Snapshot, error) {
		return want, nil
	}).Load(context.Background())
	require.NoError(t, err)
	assert.Same(t, want, got)
}
