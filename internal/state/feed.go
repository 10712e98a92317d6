package state

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/five82/lens/internal/pixabay"
)

// ScrollThreshold is how close to the bottom, in rows, counts as the end of
// the content.
const ScrollThreshold = 1.0

// Phase reports whether a fetch is outstanding.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseFetching
)

func (p Phase) String() string {
	if p == PhaseFetching {
		return "fetching"
	}
	return "idle"
}

// Request describes one fetch the owner must run. Tag identifies it; a
// result carrying any other tag is stale.
type Request struct {
	Tag    string
	Query  pixabay.Query
	Append bool
}

// Result carries the outcome of a Request back to the feed.
type Result struct {
	Tag      string
	Response pixabay.SearchResponse
	Err      error
}

// Snapshot represents the feed as the UI should render it.
type Snapshot struct {
	Items               []pixabay.Image
	Query               pixabay.Query
	Phase               Phase
	AtEnd               bool
	Total               int  // totalHits reported for the current query
	HasPage             bool // at least one page arrived for the current query
	EndOfResults        bool // the API has nothing past the last page
	LastError           error
	LastUpdated         time.Time
	ConsecutiveFailures int
}

// IsOffline returns true when the API has failed several times in a row.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Fetching reports whether a request is outstanding.
func (s Snapshot) Fetching() bool {
	return s.Phase == PhaseFetching
}

// Feed owns the paginated list of images for one query context.
//
// Items is always the concatenation of every page fetched for Query, in page
// order. Feed performs no I/O: Reset and LoadNextPage return a Request that
// the owner runs (see Fetch) and hands back through Complete. A Feed is not
// safe for concurrent use; it belongs to the goroutine that drives the UI.
type Feed struct {
	snap      Snapshot
	pending   Request
	listeners map[int]func(Snapshot)
	nextID    int
}

// NewFeed returns an idle, empty feed.
func NewFeed() *Feed {
	return &Feed{
		snap:      Snapshot{Query: pixabay.Query{Page: 1}},
		listeners: make(map[int]func(Snapshot)),
	}
}

// Subscribe registers fn to be called after every completed transition.
// The returned function removes the subscription.
func (f *Feed) Subscribe(fn func(Snapshot)) func() {
	if fn == nil {
		return func() {}
	}
	id := f.nextID
	f.nextID++
	f.listeners[id] = fn
	return func() { delete(f.listeners, id) }
}

// Reset discards the current items and starts the first page of q. Any
// in-flight request is superseded.
func (f *Feed) Reset(q pixabay.Query) Request {
	q = q.WithPage(1)
	f.snap.Items = nil
	f.snap.Query = q
	f.snap.Phase = PhaseFetching
	f.snap.AtEnd = false
	f.snap.Total = 0
	f.snap.HasPage = false
	f.snap.EndOfResults = false

	f.pending = Request{Tag: uuid.NewString(), Query: q}
	f.notify()
	return f.pending
}

// LoadNextPage requests the page after the current one. It refuses while a
// fetch is outstanding, before page 1 of the query has arrived, when the
// last scroll notification was not at the end, or when the results are
// exhausted. A failed reset therefore stays empty until the next reset.
func (f *Feed) LoadNextPage() (Request, bool) {
	if f.snap.Phase != PhaseIdle || !f.snap.HasPage || !f.snap.AtEnd || f.snap.EndOfResults {
		return Request{}, false
	}
	f.snap.Query = f.snap.Query.WithPage(f.snap.Query.Page + 1)
	f.snap.Phase = PhaseFetching

	f.pending = Request{Tag: uuid.NewString(), Query: f.snap.Query, Append: true}
	f.notify()
	return f.pending, true
}

// OnScroll records the distance between the viewport and the end of the
// content. Crossing into the threshold triggers LoadNextPage once; staying
// there does nothing until the position leaves the threshold again.
func (f *Feed) OnScroll(offsetFromBottom float64) (Request, bool) {
	if offsetFromBottom > ScrollThreshold {
		if f.snap.AtEnd {
			f.snap.AtEnd = false
			f.notify()
		}
		return Request{}, false
	}
	if f.snap.AtEnd {
		return Request{}, false
	}
	f.snap.AtEnd = true
	if req, ok := f.LoadNextPage(); ok {
		return req, true
	}
	f.notify()
	return Request{}, false
}

// Complete applies the outcome of the pending request. Results for any other
// request are ignored and Complete reports false.
//
// A failed reset leaves the feed empty; a failed next page restores the page
// cursor and keeps the items. A malformed response counts as an empty page.
func (f *Feed) Complete(res Result) bool {
	if res.Tag == "" || res.Tag != f.pending.Tag {
		return false
	}
	req := f.pending
	f.pending = Request{}
	f.snap.Phase = PhaseIdle
	f.snap.LastUpdated = time.Now()

	malformed := errors.Is(res.Err, pixabay.ErrMalformedResponse)
	if res.Err != nil && !malformed {
		f.snap.LastError = res.Err
		f.snap.ConsecutiveFailures++
		if req.Append && f.snap.Query.Page > 1 {
			f.snap.Query = f.snap.Query.WithPage(f.snap.Query.Page - 1)
		}
		f.notify()
		return true
	}

	hits := res.Response.Hits
	if malformed {
		hits = nil
	} else {
		f.snap.Total = res.Response.TotalHits
	}
	if req.Append {
		f.snap.Items = append(f.snap.Items, hits...)
	} else {
		f.snap.Items = cloneImages(hits)
	}
	f.snap.HasPage = true
	f.snap.EndOfResults = len(hits) < pixabay.PerPage || len(f.snap.Items) >= f.snap.Total
	f.snap.LastError = nil
	f.snap.ConsecutiveFailures = 0
	if len(hits) > 0 {
		// The content grew, so the viewport is no longer at its end.
		f.snap.AtEnd = false
	}
	f.notify()
	return true
}

// Pending returns the outstanding request, if any.
func (f *Feed) Pending() (Request, bool) {
	return f.pending, f.pending.Tag != ""
}

// Snapshot returns a copy of the current state.
func (f *Feed) Snapshot() Snapshot {
	snap := f.snap
	snap.Items = cloneImages(f.snap.Items)
	snap.Query = f.snap.Query.WithPage(f.snap.Query.Page)
	return snap
}

// Len returns the number of items without copying them.
func (f *Feed) Len() int {
	return len(f.snap.Items)
}

// Item returns the item at index i.
func (f *Feed) Item(i int) (pixabay.Image, bool) {
	if i < 0 || i >= len(f.snap.Items) {
		return pixabay.Image{}, false
	}
	return f.snap.Items[i], true
}

func (f *Feed) notify() {
	if len(f.listeners) == 0 {
		return
	}
	snap := f.Snapshot()
	for _, fn := range f.listeners {
		fn(snap)
	}
}

// Fetch runs req against src and wraps the outcome for Complete.
func Fetch(ctx context.Context, src pixabay.Searcher, req Request) Result {
	if src == nil {
		return Result{Tag: req.Tag, Err: fmt.Errorf("image source is nil")}
	}
	resp, err := src.Search(ctx, req.Query)
	return Result{Tag: req.Tag, Response: resp, Err: err}
}

func cloneImages(items []pixabay.Image) []pixabay.Image {
	if len(items) == 0 {
		return nil
	}
	dup := make([]pixabay.Image, len(items))
	copy(dup, items)
	return dup
}
