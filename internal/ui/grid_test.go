package ui

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/five82/lens/internal/pixabay"
)

func sized(w, h int) pixabay.Image {
	return pixabay.Image{ImageWidth: w, ImageHeight: h}
}

func TestColumnsFor(t *testing.T) {
	tests := []struct {
		width, pref int
		want        int
	}{
		{width: 0, pref: 0, want: 1},
		{width: 40, pref: 0, want: 1},
		{width: 58, pref: 0, want: 2},
		{width: 120, pref: 0, want: 4},
		{width: 400, pref: 0, want: LayoutMaxAutoColumns},
		{width: 120, pref: 2, want: 2},
		{width: 120, pref: 8, want: 8},
		{width: 30, pref: 8, want: 2},
	}
	for _, tt := range tests {
		if got := columnsFor(tt.width, tt.pref); got != tt.want {
			t.Errorf("columnsFor(%d, %d) = %d, want %d", tt.width, tt.pref, got, tt.want)
		}
	}
}

func TestCardHeight(t *testing.T) {
	tests := []struct {
		name   string
		aspect float64
		want   int
	}{
		{name: "square is capped", aspect: 1, want: 2 + CardTextRows + CardMaxArtRows},
		{name: "landscape", aspect: 0.5, want: 2 + CardTextRows + 7},
		{name: "panorama keeps one row", aspect: 0.01, want: 2 + CardTextRows + 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cardHeight(30, tt.aspect); got != tt.want {
				t.Fatalf("cardHeight(30, %v) = %d, want %d", tt.aspect, got, tt.want)
			}
		})
	}
}

func TestLayoutMasonry_ShortestColumnFirst(t *testing.T) {
	// Two columns of width 28: inner width 26.
	items := []pixabay.Image{
		sized(100, 100), // art 12 (capped) -> height 16, column 0
		sized(200, 100), // art 7 -> height 11, column 1
		sized(400, 100), // art 3 -> height 7, column 1 (11 < 16)
		sized(200, 100), // column 0 (16 < 18)
	}
	g := layoutMasonry(items, 57, 0)
	if g.columns != 2 || g.colWidth != 28 {
		t.Fatalf("layout = %d columns of %d, want 2 of 28", g.columns, g.colWidth)
	}

	want := []card{
		{index: 0, column: 0, top: 0, height: 16},
		{index: 1, column: 1, top: 0, height: 11},
		{index: 2, column: 1, top: 11, height: 7},
		{index: 3, column: 0, top: 16, height: 11},
	}
	if diff := cmp.Diff(want, g.cards, cmp.AllowUnexported(card{})); diff != "" {
		t.Fatalf("cards mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([][]int{{0, 3}, {1, 2}}, g.byColumn); diff != "" {
		t.Fatalf("byColumn mismatch (-want +got):\n%s", diff)
	}
	if g.height != 27 {
		t.Fatalf("height = %d, want 27", g.height)
	}
}

func TestLayoutMasonry_TiesGoLeft(t *testing.T) {
	items := []pixabay.Image{sized(100, 50), sized(100, 50), sized(100, 50), sized(100, 50)}
	g := layoutMasonry(items, 120, 0)
	got := []int{g.cards[0].column, g.cards[1].column, g.cards[2].column, g.cards[3].column}
	if diff := cmp.Diff([]int{0, 1, 2, 3}, got); diff != "" {
		t.Fatalf("columns mismatch (-want +got):\n%s", diff)
	}
}

func TestMasonryNavigation(t *testing.T) {
	items := []pixabay.Image{
		sized(100, 100), sized(200, 100), sized(400, 100), sized(200, 100),
	}
	g := layoutMasonry(items, 57, 0)

	if next, ok := g.vertical(0, 1); !ok || next != 3 {
		t.Fatalf("vertical(0, +1) = %d, %v; want 3, true", next, ok)
	}
	if _, ok := g.vertical(3, 1); ok {
		t.Fatal("vertical past the end of a column should fail")
	}
	if _, ok := g.vertical(1, -1); ok {
		t.Fatal("vertical above the top of a column should fail")
	}

	// Card 3 spans rows 16-26; card 2 (rows 11-17) is the nearest in column 1.
	if got := g.horizontal(3, 1); got != 2 {
		t.Fatalf("horizontal(3, +1) = %d, want 2", got)
	}
	if got := g.horizontal(0, -1); got != 0 {
		t.Fatalf("horizontal(0, -1) = %d, want 0 (no column to the left)", got)
	}
	if got := g.last(); got != 3 {
		t.Fatalf("last() = %d, want 3", got)
	}
}

func TestMasonryFollowAndOffset(t *testing.T) {
	items := []pixabay.Image{
		sized(100, 100), sized(200, 100), sized(400, 100), sized(200, 100),
	}
	g := layoutMasonry(items, 57, 0)
	viewH := 10

	if top := g.follow(3, 0, viewH); top != 16 {
		t.Fatalf("follow(3) = %d, want 16 (capped at max scroll 17 and card top 16)", top)
	}
	if top := g.follow(0, 16, viewH); top != 0 {
		t.Fatalf("follow(0) from 16 = %d, want 0", top)
	}
	if off := g.offsetFromBottom(g.maxScroll(viewH), viewH); off != 0 {
		t.Fatalf("offset at max scroll = %v, want 0", off)
	}
	if off := g.offsetFromBottom(0, viewH); off != 17 {
		t.Fatalf("offset at top = %v, want 17", off)
	}
	if off := g.offsetFromBottom(0, 100); off >= 0 {
		t.Fatalf("short content offset = %v, want negative", off)
	}
}
