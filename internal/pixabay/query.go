package pixabay

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Facet names understood by the search endpoint.
const (
	FacetOrder       = "order"
	FacetOrientation = "orientation"
	FacetType        = "type"
	FacetColors      = "colors"
)

// FacetNames lists the known facets in the order they are encoded and shown.
var FacetNames = []string{FacetOrder, FacetOrientation, FacetType, FacetColors}

// Query configures one search request. Page is 1-based.
type Query struct {
	Page       int
	SearchText string
	Category   string
	Facets     map[string]string
}

// BuildQuery maps UI state onto a Query. It never fails: values are not
// checked against the API vocabulary, and a page below 1 becomes 1. Facet
// entries with empty values are dropped so a present key always constrains.
func BuildQuery(page int, searchText, category string, facets map[string]string) Query {
	if page < 1 {
		page = 1
	}
	q := Query{
		Page:       page,
		SearchText: strings.TrimSpace(searchText),
		Category:   strings.TrimSpace(category),
	}
	for name, value := range facets {
		if strings.TrimSpace(value) == "" {
			continue
		}
		if q.Facets == nil {
			q.Facets = make(map[string]string, len(facets))
		}
		q.Facets[name] = value
	}
	return q
}

// WithPage returns a copy of q pointing at page.
func (q Query) WithPage(page int) Query {
	q.Facets = cloneFacets(q.Facets)
	q.Page = page
	return q
}

// SameContext reports whether q and other differ only in Page.
func (q Query) SameContext(other Query) bool {
	if q.SearchText != other.SearchText || q.Category != other.Category {
		return false
	}
	if len(q.Facets) != len(other.Facets) {
		return false
	}
	for name, value := range q.Facets {
		if v, ok := other.Facets[name]; !ok || v != value {
			return false
		}
	}
	return true
}

// Encode renders the variable request parameters in a fixed order: page, q,
// category, the known facets, then any other facets sorted by name. Only the
// search text is percent-encoded; category and facet values go out verbatim.
func (q Query) Encode() string {
	page := q.Page
	if page < 1 {
		page = 1
	}
	parts := []string{"page=" + strconv.Itoa(page)}
	if text := strings.TrimSpace(q.SearchText); text != "" {
		parts = append(parts, "q="+encodeComponent(text))
	}
	if q.Category != "" {
		parts = append(parts, "category="+q.Category)
	}
	for _, name := range facetOrder(q.Facets) {
		parts = append(parts, name+"="+q.Facets[name])
	}
	return strings.Join(parts, "&")
}

// Label summarizes the query context for status lines and logs.
func (q Query) Label() string {
	var parts []string
	if q.SearchText != "" {
		parts = append(parts, strconv.Quote(q.SearchText))
	}
	if q.Category != "" {
		parts = append(parts, q.Category)
	}
	for _, name := range facetOrder(q.Facets) {
		parts = append(parts, name+":"+q.Facets[name])
	}
	if len(parts) == 0 {
		return "editor's choice"
	}
	return strings.Join(parts, " · ")
}

func facetOrder(facets map[string]string) []string {
	if len(facets) == 0 {
		return nil
	}
	names := make([]string, 0, len(facets))
	for _, known := range FacetNames {
		if _, ok := facets[known]; ok {
			names = append(names, known)
		}
	}
	var extra []string
	for name := range facets {
		if !isKnownFacet(name) {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(names, extra...)
}

func isKnownFacet(name string) bool {
	for _, known := range FacetNames {
		if known == name {
			return true
		}
	}
	return false
}

// componentUnescaper undoes the escapes url.QueryEscape applies beyond
// encodeURIComponent's: spaces become %20 and !'()* stay literal.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// encodeComponent escapes s the way JavaScript's encodeURIComponent does.
func encodeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}

func cloneFacets(facets map[string]string) map[string]string {
	if facets == nil {
		return nil
	}
	dup := make(map[string]string, len(facets))
	for k, v := range facets {
		dup[k] = v
	}
	return dup
}
