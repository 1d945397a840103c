package core

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
)

// CaptureOptions controls how the dashboard is screenshotted.
//
// This drives a real Chrome/Chromium browser (via the DevTools protocol) so
// the capture shows exactly what a visitor would see, stylesheet and
// thumbnails included.
type CaptureOptions struct {
	// ChromePath optionally overrides the Chrome/Chromium executable path.
	// If empty, chromedp will try to find a browser on PATH / default locations.
	ChromePath string
	// Headless controls whether Chrome runs without a visible window.
	Headless bool
	// Timeout is the deadline for navigation + rendering + capture.
	// If <= 0, DefaultCaptureTimeout is used.
	Timeout time.Duration
	// Width and Height set the viewport. The screenshot still covers the
	// full page height.
	Width  int
	Height int
	// WaitSelector is waited for before capturing. Defaults to the summary line.
	WaitSelector string
}

func (o CaptureOptions) withDefaults() CaptureOptions {
	if o.Timeout <= 0 {
		o.Timeout = DefaultCaptureTimeout
	}
	if o.Width <= 0 {
		o.Width = DefaultViewportWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultViewportHeight
	}
	if strings.TrimSpace(o.WaitSelector) == "" {
		o.WaitSelector = "#summary"
	}
	return o
}

func (o CaptureOptions) allocatorOptions() []chromedp.ExecAllocatorOption {
	allocatorOpts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	allocatorOpts = append(allocatorOpts,
		chromedp.NoDefaultBrowserCheck,
		chromedp.NoFirstRun,
		chromedp.UserAgent(UserAgent),
		chromedp.WindowSize(o.Width, o.Height),
	)
	if o.ChromePath != "" {
		allocatorOpts = append(allocatorOpts, chromedp.ExecPath(o.ChromePath))
	}
	if o.Headless {
		allocatorOpts = append(allocatorOpts, chromedp.Headless)
	} else {
		allocatorOpts = append(allocatorOpts, chromedp.Flag("headless", false))
	}
	return allocatorOpts
}

// dashboardSettled is true once the summary line has been written (counts or
// the failure message) and every thumbnail in the grid has finished loading.
const dashboardSettled = `(() => {
  const summary = document.getElementById("summary");
  if (!summary || summary.textContent.trim() === "") return false;
  return Array.from(document.querySelectorAll("#grid img")).every((img) => img.complete);
})()`

// CaptureDashboard loads url in Chrome and returns a full-page PNG.
func CaptureDashboard(ctx context.Context, url string, opts CaptureOptions) ([]byte, error) {
	opts = opts.withDefaults()
	log.Printf("Capturing dashboard %s (%dx%d)", url, opts.Width, opts.Height)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts.allocatorOptions()...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	runCtx, cancelRun := context.WithTimeout(browserCtx, opts.Timeout)
	defer cancelRun()

	chromedp.ListenTarget(runCtx, func(ev interface{}) {
		if e, ok := ev.(*runtime.EventExceptionThrown); ok && e.ExceptionDetails != nil {
			log.Printf("Script error on dashboard %s: %s", url, e.ExceptionDetails.Error())
		}
	})

	var png []byte
	actions := []chromedp.Action{
		chromedp.EmulateViewport(int64(opts.Width), int64(opts.Height)),
		chromedp.Navigate(url),
		chromedp.WaitVisible(opts.WaitSelector, chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var settled bool
			if err := chromedp.Poll(dashboardSettled, &settled,
				chromedp.WithPollingInterval(100*time.Millisecond),
				chromedp.WithPollingTimeout(0),
			).Do(ctx); err != nil {
				return fmt.Errorf("dashboard did not settle: %w", err)
			}
			log.Printf("Dashboard %s rendered, thumbnails loaded", url)
			return nil
		}),
		chromedp.Sleep(DefaultSettleDelay),
		chromedp.FullScreenshot(&png, 100),
	}

	if err := chromedp.Run(runCtx, actions...); err != nil {
		return nil, fmt.Errorf("failed to capture %s: %w", url, err)
	}
	return png, nil
}

// CaptureToFile captures url and writes the PNG to path.
func CaptureToFile(ctx context.Context, url, path string, opts CaptureOptions) error {
	png, err := CaptureDashboard(ctx, url, opts)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, png, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	log.Printf("Wrote %d bytes to %s", len(png), path)
	return nil
}
