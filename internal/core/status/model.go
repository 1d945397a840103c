package status

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"
)

// Snapshot is the status document produced by the monitor. Items are kept in
// the order the producer wrote them.
type Snapshot struct {
	GeneratedAt Timestamp `json:"generated_at"`
	Items       []Item    `json:"items"`
}

// Item is one monitored page.
type Item struct {
	Name             string    `json:"name"`
	URL              string    `json:"url"`
	State            State     `json:"state"`
	Score            *float64  `json:"score"`
	Threshold        Threshold `json:"threshold"`
	LastChecked      Timestamp `json:"last_checked"`
	LastChanged      Timestamp `json:"last_changed"`
	LatestScreenshot string    `json:"latest_screenshot"`
	LatestDiff       string    `json:"latest_diff"`
	Error            string    `json:"error"`
}

// Counts aggregates a snapshot for the summary line.
type Counts struct {
	Total   int
	Changed int
	Errors  int
}

// Count tallies the snapshot's items by state.
func (s *Snapshot) Count() Counts {
	c := Counts{Total: len(s.Items)}
	for _, it := range s.Items {
		switch it.State.Kind {
		case StateChanged:
			c.Changed++
		case StateError:
			c.Errors++
		}
	}
	return c
}

// String renders the summary line, e.g. "3 pages • 1 changed • 0 errors".
func (c Counts) String() string {
	return strconv.Itoa(c.Total) + " pages • " +
		strconv.Itoa(c.Changed) + " changed • " +
		strconv.Itoa(c.Errors) + " errors"
}

// ErrNoItems is returned for a snapshot without an items array. An empty
// array is a valid snapshot.
var ErrNoItems = errors.New("snapshot has no items array")

// Decode parses a snapshot document.
func Decode(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if s.Items == nil {
		return nil, ErrNoItems
	}
	return &s, nil
}

// Timestamp is a nullable point in time. Raw holds the served text so that
// values we cannot parse are still shown as-is.
type Timestamp struct {
	Raw   string
	Time  time.Time
	Valid bool
}

// Layouts accepted for timestamps. Values without an offset are taken as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
}

// ParseTimestamp builds a Timestamp from its textual form.
func ParseTimestamp(raw string) Timestamp {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Timestamp{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return Timestamp{Raw: raw, Time: t, Valid: true}
		}
	}
	return Timestamp{Raw: raw}
}

// IsZero reports whether the timestamp was null, absent or empty.
func (t Timestamp) IsZero() bool {
	return t.Raw == ""
}

// UnmarshalJSON accepts strings, null and Unix epoch milliseconds.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = Timestamp{}
		return nil
	}
	if data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		*t = ParseTimestamp(raw)
		return nil
	}
	ms, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		*t = Timestamp{Raw: string(data)}
		return nil
	}
	*t = Timestamp{Raw: string(data), Time: time.UnixMilli(int64(ms)).UTC(), Valid: true}
	return nil
}

// MarshalJSON writes the served text back, or null.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Raw)
}

// Threshold is the similarity cutoff the monitor used. It is displayed
// verbatim and never interpreted.
type Threshold string

// UnmarshalJSON keeps numbers in their literal form and unquotes strings.
func (th *Threshold) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*th = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*th = Threshold(s)
		return nil
	}
	*th = Threshold(data)
	return nil
}
