// Package state holds the paginated image feed behind the grid.
//
// # Overview
//
// Feed is a small state machine that owns the list of images for one query
// context (search text, category, facets). It decides when a page should be
// fetched, which page that is, and how the result changes the list. It does
// no I/O of its own: transitions return a Request, the owner runs it with
// Fetch on a background command, and the Result comes back through Complete.
//
//	Reset(q) ──────────► Request{page 1}
//	OnScroll(offset) ──► LoadNextPage ──► Request{page N+1, Append}
//	                          │
//	Fetch(ctx, src, req) ─────┘──► Result ──► Complete(res)
//
// # Invariants
//
//   - Items is the concatenation of every page fetched for Query, in order.
//   - At most one request is outstanding. Reset supersedes it; LoadNextPage
//     refuses while it exists.
//   - Every Request carries a fresh tag. Complete ignores results whose tag
//     does not match the outstanding request, so an old page can never land
//     in a newer query's list.
//   - Scroll notifications are edge-triggered. Sitting at the bottom loads
//     one page; the next load needs the viewport to leave the bottom first,
//     or the content to grow underneath it.
//
// # Failure Handling
//
// A failed first page leaves the feed empty. A failed next page restores the
// page cursor and keeps the items, so the next bottom crossing retries the
// same page. Responses without a hits array count as an empty page.
// ConsecutiveFailures drives the offline badge via Snapshot.IsOffline.
//
// # Observers
//
// Subscribe registers a callback invoked synchronously after each
// transition with a copy of the state. The application uses it for logging;
// the UI re-renders from Snapshot after every message it handles.
package state
