// Package filter owns the query context the user edits: category, search
// text and facet selection.
//
// Controller applies one change at a time and resets the feed exactly once
// per change, returning the state.Request the UI has to run. A search and a
// category are mutually exclusive: choosing one clears the other. Facets
// survive both.
//
// ShouldSearch is the gate the debounced search box uses before calling
// SetSearch.
package filter
