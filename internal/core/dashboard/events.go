package dashboard

import "log"

// ------------------------------
// Event System
// ------------------------------
//
// The dashboard emits typed events when the user edits the search box or
// changes the state filter. Bootstrap registers ApplyFilters for both once
// the grid is mounted; further listeners can be added afterwards.
//
// Example usage:
//
//	d.RegisterEventListener(dashboard.OnSearchInput, func(event dashboard.Event) error {
//	    ev := event.(dashboard.SearchInputEvent)
//	    log.Printf("Search changed: %q", ev.Query)
//	    return nil
//	})
//
// Event is the common interface for all dashboard events.
type Event interface {
	Kind() EventKind
}

// EventKind represents all the kinds of events the dashboard emits.
type EventKind int

const (
	// OnSearchInput is emitted when the search box value changes.
	OnSearchInput EventKind = iota
	// OnFilterChange is emitted when the state filter selection changes.
	OnFilterChange
)

func (k EventKind) String() string {
	switch k {
	case OnSearchInput:
		return "search_input"
	case OnFilterChange:
		return "filter_change"
	default:
		return "unknown"
	}
}

// SearchInputEvent carries the raw search text.
type SearchInputEvent struct {
	Query string
}

func (e SearchInputEvent) Kind() EventKind { return OnSearchInput }

// FilterChangeEvent carries the selected state filter.
type FilterChangeEvent struct {
	Filter string
}

func (e FilterChangeEvent) Kind() EventKind { return OnFilterChange }

// EventListener is a callback that handles events of a specific kind.
type EventListener func(event Event) error

// RegisterEventListener adds a listener for a specific event kind.
// Listeners are called synchronously in registration order.
func (d *Dashboard) RegisterEventListener(kind EventKind, listener EventListener) {
	if d.listeners == nil {
		d.listeners = make(map[EventKind][]EventListener)
	}
	d.listeners[kind] = append(d.listeners[kind], listener)
}

// emit dispatches an event to all registered listeners for that event kind.
func (d *Dashboard) emit(event Event) {
	for _, listener := range d.listeners[event.Kind()] {
		if err := listener(event); err != nil {
			log.Printf("Event listener error for %s: %v", event.Kind(), err)
		}
	}
}
