package status

import (
	"strconv"
	"time"
)

// Placeholder is shown wherever a value is missing.
const Placeholder = "—"

// DefaultTimeLayout mirrors a browser's en-US toLocaleString output.
const DefaultTimeLayout = "1/2/2006, 3:04:05 PM"

// Formatter turns snapshot fields into display strings.
type Formatter struct {
	// Location timestamps are shown in. Nil means time.Local.
	Location *time.Location
	// Layout for timestamps. Empty means DefaultTimeLayout.
	Layout string
}

// Timestamp formats ts, or returns Placeholder when it is missing.
// Values that could not be parsed are returned unchanged.
func (f Formatter) Timestamp(ts Timestamp) string {
	if ts.IsZero() {
		return Placeholder
	}
	if !ts.Valid {
		return ts.Raw
	}
	loc := f.Location
	if loc == nil {
		loc = time.Local
	}
	layout := f.Layout
	if layout == "" {
		layout = DefaultTimeLayout
	}
	return ts.Time.In(loc).Format(layout)
}

// FormatTimestamp formats ts in the local time zone.
func FormatTimestamp(ts Timestamp) string {
	return Formatter{}.Timestamp(ts)
}

// FormatScore renders a similarity score with four fractional digits.
func FormatScore(score *float64) string {
	if score == nil {
		return Placeholder
	}
	return strconv.FormatFloat(*score, 'f', 4, 64)
}

// FormatThreshold returns the threshold as served, or Placeholder.
func FormatThreshold(th Threshold) string {
	if th == "" {
		return Placeholder
	}
	return string(th)
}
