/*
Copyright © 2025 Katie Mulliken <katie@mulliken.net>
*/

// The render command writes the dashboard as a static HTML page.
//
// The page links static/style.css relative to itself, so the stylesheet is
// written next to the output file. Images are referenced as images/<name>;
// place the output beside the monitor's images directory.
//
// Example usage:
//
//	statusboard render --snapshot status.json --out public/index.html
//	statusboard render --out changed.html --state changed
package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/seckatie/statusboard/internal/config"
	"github.com/seckatie/statusboard/internal/core/loader"
	"github.com/seckatie/statusboard/internal/core/render"
	"github.com/seckatie/statusboard/internal/core/web"
	"github.com/spf13/cobra"
)

// renderCmd represents the render command
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Write the dashboard as a static HTML file",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runRender(cmd); err != nil {
			log.Fatalf("Render failed: %v", err)
		}
	},
}

// runRender is the main function for the render command.
func runRender(cmd *cobra.Command) error {
	cfg, err := config.Load(cmd)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	out, err := cmd.Flags().GetString("out")
	if err != nil {
		return fmt.Errorf("failed to read --out: %w", err)
	}
	query, err := cmd.Flags().GetString("query")
	if err != nil {
		return fmt.Errorf("failed to read --query: %w", err)
	}
	state, err := cmd.Flags().GetString("state")
	if err != nil {
		return fmt.Errorf("failed to read --state: %w", err)
	}

	dir := filepath.Dir(out)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", out, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("failed to close %s: %v", out, err)
		}
	}()

	opts := web.PageOptions{Query: query, Filter: state, Static: true}
	if err := web.RenderPage(context.Background(), f, loader.New(cfg.Snapshot), render.New(cfg.Formatter()), opts); err != nil {
		return err
	}
	if err := web.WriteAssets(dir); err != nil {
		return fmt.Errorf("failed to write assets: %w", err)
	}

	log.Printf("Wrote dashboard to %s", out)
	return nil
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringP("out", "o", "index.html", "Output HTML file")
	renderCmd.Flags().StringP("query", "q", "", "Pre-apply a search query")
	renderCmd.Flags().String("state", "all", "Pre-apply a state filter (all, ok, changed, error)")
}
