package pixabay

import (
	"strings"
	"testing"
)

func TestBuildQuery(t *testing.T) {
	q := BuildQuery(0, "  cat ", " nature ", map[string]string{FacetOrder: "latest", FacetType: ""})
	if q.Page != 1 {
		t.Fatalf("Page = %d, want clamp to 1", q.Page)
	}
	if q.SearchText != "cat" || q.Category != "nature" {
		t.Fatalf("query = %#v, want trimmed text and category", q)
	}
	if len(q.Facets) != 1 || q.Facets[FacetOrder] != "latest" {
		t.Fatalf("Facets = %#v, want only order=latest", q.Facets)
	}

	empty := BuildQuery(2, "", "", map[string]string{})
	if empty.Facets != nil {
		t.Fatalf("Facets = %#v, want nil for empty selection", empty.Facets)
	}
}

func TestBuildQuery_DoesNotAliasCallerMap(t *testing.T) {
	facets := map[string]string{FacetColors: "red"}
	q := BuildQuery(1, "", "", facets)
	facets[FacetColors] = "blue"
	if q.Facets[FacetColors] != "red" {
		t.Fatalf("query facets changed with caller map: %#v", q.Facets)
	}
}

func TestQueryEncode(t *testing.T) {
	cases := []struct {
		name string
		q    Query
		want string
	}{
		{"bare", Query{Page: 1}, "page=1"},
		{"zero page", Query{}, "page=1"},
		{"text encoded", Query{Page: 2, SearchText: "red & blue"}, "page=2&q=red%20%26%20blue"},
		{"reserved marks literal", Query{Page: 1, SearchText: "it's (ok)! *"}, "page=1&q=it's%20(ok)!%20*"},
		{"escaped percent and plus", Query{Page: 1, SearchText: "100%21 a+b"}, "page=1&q=100%2521%20a%2Bb"},
		{"category verbatim", Query{Page: 1, Category: "nature"}, "page=1&category=nature"},
		{
			"facets fixed order",
			Query{Page: 4, Facets: map[string]string{
				FacetColors:      "red",
				FacetType:        "photo",
				FacetOrientation: "vertical",
				FacetOrder:       "latest",
			}},
			"page=4&order=latest&orientation=vertical&type=photo&colors=red",
		},
		{
			"unknown facets pass through sorted",
			Query{Page: 1, Facets: map[string]string{"zeta": "1", "lang": "de", FacetOrder: "popular"}},
			"page=1&order=popular&lang=de&zeta=1",
		},
		{
			"everything",
			Query{Page: 1, SearchText: "cat", Category: "animals", Facets: map[string]string{FacetType: "photo"}},
			"page=1&q=cat&category=animals&type=photo",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.q.Encode(); got != tc.want {
				t.Fatalf("Encode = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestQueryEncode_PageOnlyDifference(t *testing.T) {
	base := BuildQuery(1, "mountain lake", "travel", map[string]string{
		FacetOrder: "latest", FacetColors: "blue", FacetOrientation: "horizontal", "extra": "x",
	})
	first := base.Encode()
	for page := 2; page <= 12; page++ {
		next := base.WithPage(page).Encode()
		a := strings.Split(first, "&")
		b := strings.Split(next, "&")
		if len(a) != len(b) {
			t.Fatalf("page %d: param count %d != %d", page, len(b), len(a))
		}
		for i := range a {
			if strings.HasPrefix(a[i], "page=") {
				continue
			}
			if a[i] != b[i] {
				t.Fatalf("page %d: param %d = %q, want %q", page, i, b[i], a[i])
			}
		}
	}
}

func TestQuerySameContext(t *testing.T) {
	a := BuildQuery(1, "cat", "animals", map[string]string{FacetOrder: "latest"})
	if !a.SameContext(a.WithPage(5)) {
		t.Fatalf("SameContext should ignore page")
	}
	if a.SameContext(BuildQuery(1, "cats", "animals", map[string]string{FacetOrder: "latest"})) {
		t.Fatalf("SameContext should compare search text")
	}
	if a.SameContext(BuildQuery(1, "cat", "nature", map[string]string{FacetOrder: "latest"})) {
		t.Fatalf("SameContext should compare category")
	}
	if a.SameContext(BuildQuery(1, "cat", "animals", nil)) {
		t.Fatalf("SameContext should compare facets")
	}
	if a.SameContext(BuildQuery(1, "cat", "animals", map[string]string{FacetOrder: "popular"})) {
		t.Fatalf("SameContext should compare facet values")
	}
}

func TestQueryWithPage_CopiesFacets(t *testing.T) {
	a := BuildQuery(1, "", "", map[string]string{FacetType: "photo"})
	b := a.WithPage(2)
	b.Facets[FacetType] = "vector"
	if a.Facets[FacetType] != "photo" {
		t.Fatalf("WithPage aliased facets: %#v", a.Facets)
	}
}

func TestQueryLabel(t *testing.T) {
	if got := (Query{}).Label(); got != "editor's choice" {
		t.Fatalf("Label = %q, want editor's choice", got)
	}
	got := BuildQuery(1, "cat", "animals", map[string]string{FacetOrder: "latest"}).Label()
	if got != `"cat" · animals · order:latest` {
		t.Fatalf("Label = %q", got)
	}
}
