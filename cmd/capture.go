/*
Copyright © 2025 Katie Mulliken <katie@mulliken.net>
*/

// The capture command screenshots a running dashboard with headless Chrome.
//
// Example usage:
//
//	statusboard capture --url http://localhost:8080/ --out dashboard.png
//	statusboard capture --url "http://localhost:8080/?state=changed" --width 1600 --headful
package cmd

import (
	"context"
	"fmt"
	"log"
	"runtime"

	"github.com/seckatie/statusboard/internal/core"
	"github.com/spf13/cobra"
)

// captureCmd represents the capture command
var captureCmd = &cobra.Command{
	Use:   "capture",
	Short: "Save a full-page PNG of the dashboard",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runCapture(cmd); err != nil {
			log.Fatalf("Capture failed: %v", err)
		}
	},
}

// runCapture is the main function for the capture command.
func runCapture(cmd *cobra.Command) error {
	url, err := cmd.Flags().GetString("url")
	if err != nil {
		return fmt.Errorf("failed to read --url: %w", err)
	}
	out, err := cmd.Flags().GetString("out")
	if err != nil {
		return fmt.Errorf("failed to read --out: %w", err)
	}
	width, err := cmd.Flags().GetInt("width")
	if err != nil {
		return fmt.Errorf("failed to read --width: %w", err)
	}
	height, err := cmd.Flags().GetInt("height")
	if err != nil {
		return fmt.Errorf("failed to read --height: %w", err)
	}
	timeout, err := cmd.Flags().GetDuration("timeout")
	if err != nil {
		return fmt.Errorf("failed to read --timeout: %w", err)
	}
	chromePath, err := cmd.Flags().GetString("chrome-path")
	if err != nil {
		return fmt.Errorf("failed to read --chrome-path: %w", err)
	}
	headful, err := cmd.Flags().GetBool("headful")
	if err != nil {
		return fmt.Errorf("failed to read --headful: %w", err)
	}

	if chromePath == "" && runtime.GOOS == "darwin" {
		// Best-effort default for macOS.
		chromePath = "/Applications/Google Chrome.app/Contents/MacOS/Google Chrome"
	}

	opts := core.CaptureOptions{
		ChromePath: chromePath,
		Headless:   !headful,
		Timeout:    timeout,
		Width:      width,
		Height:     height,
	}
	return core.CaptureToFile(context.Background(), url, out, opts)
}

func init() {
	rootCmd.AddCommand(captureCmd)

	captureCmd.Flags().String("url", "http://localhost:8080/", "Dashboard URL to capture")
	captureCmd.Flags().StringP("out", "o", "dashboard.png", "Output PNG file")
	captureCmd.Flags().Int("width", core.DefaultViewportWidth, "Viewport width")
	captureCmd.Flags().Int("height", core.DefaultViewportHeight, "Viewport height")
	captureCmd.Flags().Duration("timeout", core.DefaultCaptureTimeout, "Capture timeout")
	captureCmd.Flags().String("chrome-path", "", "Path to Chrome/Chromium executable")
	captureCmd.Flags().Bool("headful", false, "Run Chrome with a visible window (not headless)")
}
