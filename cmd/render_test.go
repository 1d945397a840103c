/*
Copyright © 2025 Katie Mulliken <katie@mulliken.net>
*/
package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderCmd_Flags(t *testing.T) {
	flags := renderCmd.Flags()

	for _, name := range []string{"out", "query", "state"} {
		assert.NotNil(t, flags.Lookup(name), "flag %s", name)
	}

	out, err := flags.GetString("out")
	require.NoError(t, err)
	assert.Equal(t, "index.html", out)

	state, err := flags.GetString("state")
	require.NoError(t, err)
	assert.Equal(t, "all", state)
}

func TestRenderCmd_InheritsSnapshotFlag(t *testing.T) {
	assert.NotNil(t, renderCmd.InheritedFlags().Lookup("snapshot"))
}

func TestRenderCmd_WritesPage(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	snapshot := `{"generated_at": "2024-01-01T00:00:00Z", "items": [
		{"name": "Home", "url": "https://x", "state": "changed", "score": 0.91, "threshold": 0.95},
		{"name": "About", "url": "https://x/about"}
	]}`
	require.NoError(t, os.WriteFile("status.json", []byte(snapshot), 0o644))

	out := filepath.Join(dir, "public", "index.html")
	rootCmd.SetArgs([]string{"render", "--snapshot", "status.json", "--timezone", "UTC", "--out", out, "--state", "changed"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	require.NoError(t, rootCmd.Execute())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	html := string(data)
	for _, want := range []string{"2 pages • 1 changed • 0 errors", "0.9100", "CHANGED", `data-name="about"`, "static/filter.js"} {
		assert.Contains(t, html, want)
	}
	assert.NotContains(t, html, "<noscript", "static output drops the server-side submit")

	for _, asset := range []string{"style.css", "filter.js"} {
		_, err := os.Stat(filepath.Join(dir, "public", "static", asset))
		assert.NoError(t, err, "expected %s next to output", asset)
	}
}
