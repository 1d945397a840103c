// Package dashboard builds the status page from a snapshot.
//
// A Dashboard owns one Target (the host page) for its whole life. It is
// bootstrapped once: the snapshot is loaded, the last-updated label and
// summary are written, every card is mounted in a single write, and only
// then are the filter listeners attached. A failed bootstrap leaves the
// grid untouched and shows core.FailureMessage in the summary. Both
// outcomes are final; a Dashboard is never re-bootstrapped.
//
// A Dashboard is not safe for concurrent use.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/seckatie/statusboard/internal/core"
	"github.com/seckatie/statusboard/internal/core/loader"
	"github.com/seckatie/statusboard/internal/core/render"
	"github.com/seckatie/statusboard/internal/core/status"
)

// ErrAlreadyStarted is returned by Bootstrap on a dashboard that already ran.
var ErrAlreadyStarted = errors.New("dashboard already bootstrapped")

// Phase of the page lifecycle.
type Phase int

const (
	Loading Phase = iota
	Rendered
	Failed
)

func (p Phase) String() string {
	switch p {
	case Loading:
		return "loading"
	case Rendered:
		return "rendered"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Dashboard renders snapshots into a Target.
type Dashboard struct {
	target    Target
	renderer  *render.Renderer
	phase     Phase
	started   bool
	err       error
	listeners map[EventKind][]EventListener
}

// New returns a dashboard in the Loading phase.
func New(target Target, renderer *render.Renderer) *Dashboard {
	if renderer == nil {
		renderer = render.New(status.Formatter{})
	}
	return &Dashboard{
		target:    target,
		renderer:  renderer,
		listeners: make(map[EventKind][]EventListener),
	}
}

// Phase reports where the dashboard is in its lifecycle.
func (d *Dashboard) Phase() Phase { return d.phase }

// Err returns the bootstrap failure, if any.
func (d *Dashboard) Err() error { return d.err }

// Bootstrap loads the snapshot and renders it. On failure the summary shows
// core.FailureMessage and the error is logged and returned.
func (d *Dashboard) Bootstrap(ctx context.Context, l loader.Loader) error {
	if d.started {
		return ErrAlreadyStarted
	}
	d.started = true

	if err := d.build(ctx, l); err != nil {
		d.phase = Failed
		d.err = err
		if setErr := d.target.SetText(SummaryID, core.FailureMessage); setErr != nil {
			log.Printf("Failed to show failure message: %v", setErr)
		}
		log.Printf("Dashboard failed to load: %v", err)
		return err
	}

	d.RegisterEventListener(OnSearchInput, d.applyFilters)
	d.RegisterEventListener(OnFilterChange, d.applyFilters)
	d.phase = Rendered
	return nil
}

func (d *Dashboard) build(ctx context.Context, l loader.Loader) error {
	snap, err := l.Load(ctx)
	if err != nil {
		return err
	}

	// Nothing is written until every element exists and the cards render.
	for _, id := range []string{LastUpdatedID, SummaryID, GridID} {
		if !d.target.Has(id) {
			return fmt.Errorf("%w: #%s", ErrMissingElement, id)
		}
	}
	cards, err := d.renderer.Cards(snap.Items)
	if err != nil {
		return fmt.Errorf("failed to render cards: %w", err)
	}

	label := "Last updated: " + d.renderer.Formatter.Timestamp(snap.GeneratedAt)
	if err := d.target.SetText(LastUpdatedID, label); err != nil {
		return err
	}
	if err := d.target.SetText(SummaryID, snap.Count().String()); err != nil {
		return err
	}
	return d.target.SetHTML(GridID, cards)
}

// Mount renders items and replaces the grid with them in one write.
func (d *Dashboard) Mount(items []status.Item) error {
	cards, err := d.renderer.Cards(items)
	if err != nil {
		return fmt.Errorf("failed to render cards: %w", err)
	}
	return d.target.SetHTML(GridID, cards)
}

// SetFilter updates the search box and the state filter as a user would,
// emitting an input event for each. Before Bootstrap succeeds no listener
// is attached, so the values are stored but no card is touched.
func (d *Dashboard) SetFilter(query, filter string) error {
	if err := d.target.SetValue(SearchID, query); err != nil {
		return err
	}
	d.emit(SearchInputEvent{Query: query})

	if err := d.target.SetValue(FilterID, filter); err != nil {
		return err
	}
	d.emit(FilterChangeEvent{Filter: filter})
	return nil
}

func (d *Dashboard) applyFilters(Event) error {
	ApplyFilters(d.target)
	return nil
}
