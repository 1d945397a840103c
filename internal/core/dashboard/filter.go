package dashboard

import "strings"

// StateFilter values offered by the filter selector.
const (
	FilterAll     = "all"
	FilterOK      = "ok"
	FilterChanged = "changed"
	FilterError   = "error"
)

// ParseStateFilter normalizes a requested filter. Unknown or empty values
// fall back to FilterAll and report false.
func ParseStateFilter(s string) (string, bool) {
	switch f := strings.ToLower(strings.TrimSpace(s)); f {
	case FilterAll, FilterOK, FilterChanged, FilterError:
		return f, true
	default:
		return FilterAll, false
	}
}

// Matches reports whether a card with the given search key and state is
// visible for query and filter. query must already be trimmed and lowercased.
func Matches(query, filter, name, state string) bool {
	matchQ := query == "" || strings.Contains(name, query)
	matchF := filter == FilterAll || filter == state
	return matchQ && matchF
}

// ApplyFilters reads the search box and the filter selector and shows
// exactly the cards that match both.
func ApplyFilters(t Target) {
	q := strings.ToLower(strings.TrimSpace(t.Value(SearchID)))
	f := t.Value(FilterID)

	for _, card := range t.Cards() {
		state := card.Data("state")
		if state == "" {
			state = FilterOK
		}
		card.SetVisible(Matches(q, f, card.Data("name"), state))
	}
}
