package filter

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/five82/lens/internal/pixabay"
	"github.com/five82/lens/internal/state"
)

// MinSearchRunes is the shortest non-empty text that triggers a search.
const MinSearchRunes = 3

// ShouldSearch reports whether settled search text should reset the feed.
// Empty text clears the search; one or two characters are ignored.
func ShouldSearch(text string) bool {
	text = strings.TrimSpace(text)
	return text == "" || utf8.RuneCountInString(text) >= MinSearchRunes
}

// Selection maps facet names to their chosen value. An empty value means
// the facet is unset and is never stored.
type Selection map[string]string

// Set stores value for name, or removes name when value is empty.
func (s Selection) Set(name, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		delete(s, name)
		return
	}
	s[name] = value
}

// Clone returns an independent copy.
func (s Selection) Clone() Selection {
	out := make(Selection, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Names returns the set facet names, known facets first in request order.
func (s Selection) Names() []string {
	names := make([]string, 0, len(s))
	for _, name := range pixabay.FacetNames {
		if _, ok := s[name]; ok {
			names = append(names, name)
		}
	}
	var extra []string
	for name := range s {
		if !isKnown(name) {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(names, extra...)
}

func isKnown(name string) bool {
	for _, known := range pixabay.FacetNames {
		if name == known {
			return true
		}
	}
	return false
}

// Controller owns the query context (category, search text, facets) and
// drives the feed. Every mutation resets the feed exactly once and returns
// the request the caller must run.
type Controller struct {
	feed       *state.Feed
	category   string
	searchText string
	facets     Selection
}

// NewController returns a controller with no constraints, driving feed.
func NewController(feed *state.Feed) *Controller {
	if feed == nil {
		feed = state.NewFeed()
	}
	return &Controller{feed: feed, facets: Selection{}}
}

// Feed returns the feed the controller drives.
func (c *Controller) Feed() *state.Feed {
	return c.feed
}

// Category returns the active category, or "" for none.
func (c *Controller) Category() string {
	return c.category
}

// SearchText returns the active search text.
func (c *Controller) SearchText() string {
	return c.searchText
}

// Facets returns a copy of the active facet selection.
func (c *Controller) Facets() Selection {
	return c.facets.Clone()
}

// Query builds the current query for page.
func (c *Controller) Query(page int) pixabay.Query {
	return pixabay.BuildQuery(page, c.searchText, c.category, c.facets)
}

// Refresh reloads the first page of the unchanged query.
func (c *Controller) Refresh() state.Request {
	return c.reset()
}

// SetCategory selects cat ("" for none), clears the search text and resets.
func (c *Controller) SetCategory(cat string) state.Request {
	c.category = strings.TrimSpace(cat)
	c.searchText = ""
	return c.reset()
}

// SetSearch stores text, clears the category and resets.
func (c *Controller) SetSearch(text string) state.Request {
	c.searchText = strings.TrimSpace(text)
	c.category = ""
	return c.reset()
}

// ApplyFilters replaces the whole facet selection and resets.
func (c *Controller) ApplyFilters(facets map[string]string) state.Request {
	next := Selection{}
	for name, value := range facets {
		next.Set(name, value)
	}
	c.facets = next
	return c.reset()
}

// ClearFacet removes one facet and resets.
func (c *Controller) ClearFacet(name string) state.Request {
	delete(c.facets, name)
	return c.reset()
}

// ResetAllFilters clears every facet. It does nothing and reports false
// when no facet is set.
func (c *Controller) ResetAllFilters() (state.Request, bool) {
	if len(c.facets) == 0 {
		return state.Request{}, false
	}
	c.facets = Selection{}
	return c.reset(), true
}

func (c *Controller) reset() state.Request {
	return c.feed.Reset(c.Query(1))
}
