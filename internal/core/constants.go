package core

import "time"

// Well-known resources served alongside the dashboard
const (
	StatusFile = "status.json"
	ImagesDir  = "images"
)

// FailureMessage replaces the summary line when the dashboard cannot be built.
const FailureMessage = "Dashboard failed to load"

// Capture defaults
const (
	DefaultCaptureTimeout = 40 * time.Second
	// DefaultSettleDelay is the pause between the grid settling and the shot.
	DefaultSettleDelay    = 500 * time.Millisecond
	DefaultViewportWidth  = 1280
	DefaultViewportHeight = 800
)

// HTTP client configuration
const (
	UserAgent = "Mozilla/5.0 (compatible; statusboard/1.0)"
)
