package status

import (
	"bytes"
	"encoding/json"
	"strings"
)

// StateKind is the closed set of change-detection classifications.
type StateKind int

const (
	// StateOK means the page matched its previous capture.
	StateOK StateKind = iota
	// StateChanged means the similarity score fell below the threshold.
	StateChanged
	// StateError means the page could not be captured or compared.
	StateError
	// StateOther is any value the producer emitted that is not one of the above.
	// It is styled like StateOK but keeps its literal text.
	StateOther
)

func (k StateKind) String() string {
	switch k {
	case StateOK:
		return "ok"
	case StateChanged:
		return "changed"
	case StateError:
		return "error"
	default:
		return "other"
	}
}

// State is an item's state as served in the snapshot, normalized at decode time.
// The zero value is StateOK.
type State struct {
	Kind StateKind
	raw  string
}

// ParseState normalizes a raw state literal. Empty input is treated as "ok".
func ParseState(raw string) State {
	switch raw {
	case "", "ok":
		return State{Kind: StateOK, raw: "ok"}
	case "changed":
		return State{Kind: StateChanged, raw: raw}
	case "error":
		return State{Kind: StateError, raw: raw}
	default:
		return State{Kind: StateOther, raw: raw}
	}
}

// String returns the literal state text, "ok" when the field was absent.
func (s State) String() string {
	if s.raw == "" {
		return "ok"
	}
	return s.raw
}

// Label is the uppercased text shown on the badge.
func (s State) Label() string {
	return strings.ToUpper(s.String())
}

// UnmarshalJSON accepts strings, null and, leniently, any other JSON literal.
func (s *State) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = ParseState("")
		return nil
	}
	var raw string
	if data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
	} else {
		raw = string(data)
	}
	*s = ParseState(raw)
	return nil
}

// MarshalJSON writes the literal state text.
func (s State) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// BadgeClass maps a state to its badge CSS class. Anything that is not
// "changed" or "error" gets the "ok" treatment.
func BadgeClass(s State) string {
	switch s.Kind {
	case StateChanged:
		return "changed"
	case StateError:
		return "error"
	default:
		return "ok"
	}
}
