package filter

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/five82/lens/internal/pixabay"
	"github.com/five82/lens/internal/state"
)

func TestShouldSearch(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{"", true},
		{"   ", true},
		{"c", false},
		{"ca", false},
		{"cat", true},
		{" ca ", false},
		{"日本", false},
		{"日本語", true},
	}
	for _, tc := range cases {
		if got := ShouldSearch(tc.text); got != tc.want {
			t.Errorf("ShouldSearch(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}

func TestSelection(t *testing.T) {
	s := Selection{}
	s.Set(pixabay.FacetColors, "red")
	s.Set(pixabay.FacetOrder, "latest")
	s.Set("lang", "de")
	s.Set(pixabay.FacetType, "  ")

	if diff := cmp.Diff([]string{"order", "colors", "lang"}, s.Names()); diff != "" {
		t.Fatalf("Names mismatch (-want +got):\n%s", diff)
	}
	s.Set(pixabay.FacetColors, "")
	if _, ok := s[pixabay.FacetColors]; ok {
		t.Fatalf("empty value should delete the facet")
	}

	dup := s.Clone()
	dup.Set(pixabay.FacetOrder, "popular")
	if s[pixabay.FacetOrder] != "latest" {
		t.Fatalf("Clone aliases the selection")
	}
}

// countingController returns a controller whose feed resets are counted.
func countingController(t *testing.T) (*Controller, *int) {
	t.Helper()
	feed := state.NewFeed()
	resets := 0
	feed.Subscribe(func(s state.Snapshot) {
		if s.Fetching() && len(s.Items) == 0 {
			resets++
		}
	})
	return NewController(feed), &resets
}

func TestController_CategoryThenFacetThenClear(t *testing.T) {
	c, resets := countingController(t)

	req := c.SetCategory("nature")
	if got := req.Query.Encode(); got != "page=1&category=nature" {
		t.Fatalf("after category: %q", got)
	}
	req = c.ApplyFilters(map[string]string{pixabay.FacetOrder: "latest"})
	if got := req.Query.Encode(); got != "page=1&category=nature&order=latest" {
		t.Fatalf("after facet: %q", got)
	}
	req = c.ClearFacet(pixabay.FacetOrder)
	if got := req.Query.Encode(); got != "page=1&category=nature" {
		t.Fatalf("after clear: %q", got)
	}
	if *resets != 3 {
		t.Fatalf("resets = %d, want exactly one per mutation", *resets)
	}
}

func TestController_SearchAndCategoryAreExclusive(t *testing.T) {
	c, _ := countingController(t)

	c.SetCategory("animals")
	req := c.SetSearch("  cat ")
	if got := req.Query.Encode(); got != "page=1&q=cat" {
		t.Fatalf("search query = %q, want category cleared", got)
	}
	if c.Category() != "" || c.SearchText() != "cat" {
		t.Fatalf("category=%q text=%q", c.Category(), c.SearchText())
	}

	req = c.SetCategory("food")
	if got := req.Query.Encode(); got != "page=1&category=food" {
		t.Fatalf("category query = %q, want search cleared", got)
	}

	req = c.SetSearch("")
	if got := req.Query.Encode(); got != "page=1" {
		t.Fatalf("empty search query = %q, want no q", got)
	}
}

func TestController_FacetsSurviveCategoryChange(t *testing.T) {
	c, _ := countingController(t)
	c.ApplyFilters(map[string]string{pixabay.FacetType: "photo", pixabay.FacetColors: ""})
	req := c.SetCategory("travel")
	if got := req.Query.Encode(); got != "page=1&category=travel&type=photo" {
		t.Fatalf("query = %q", got)
	}
	if diff := cmp.Diff(Selection{pixabay.FacetType: "photo"}, c.Facets()); diff != "" {
		t.Fatalf("facets mismatch (-want +got):\n%s", diff)
	}
}

func TestController_ResetAllFilters(t *testing.T) {
	c, resets := countingController(t)

	if _, ok := c.ResetAllFilters(); ok {
		t.Fatalf("ResetAllFilters with no facets should be a no-op")
	}
	if *resets != 0 {
		t.Fatalf("no-op ResetAllFilters reset the feed")
	}

	c.ApplyFilters(map[string]string{pixabay.FacetOrder: "latest", pixabay.FacetOrientation: "vertical"})
	req, ok := c.ResetAllFilters()
	if !ok || req.Query.Encode() != "page=1" {
		t.Fatalf("ResetAllFilters = %q, %v", req.Query.Encode(), ok)
	}
	if *resets != 2 {
		t.Fatalf("resets = %d, want 2", *resets)
	}
}

func TestController_RefreshKeepsQuery(t *testing.T) {
	c, _ := countingController(t)
	first := c.SetSearch("mountain")
	again := c.Refresh()
	if first.Tag == again.Tag {
		t.Fatalf("Refresh reused the request tag")
	}
	if first.Query.Encode() != again.Query.Encode() {
		t.Fatalf("Refresh changed the query: %q vs %q", first.Query.Encode(), again.Query.Encode())
	}
}
