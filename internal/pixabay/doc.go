// Package pixabay provides an HTTP client for the Pixabay image search API.
//
// # Overview
//
// The package builds search queries from UI state, sends them to the single
// search endpoint, and decodes the page of image hits that comes back.
//
// # Architecture
//
//   - client.go: HTTP client, fixed parameters, response decoding
//   - query.go: Query value, BuildQuery, deterministic parameter encoding
//   - types.go: Image and SearchResponse mirroring the API schema
//   - vocab.go: categories and facet values offered by the UI
//
// # Client Usage
//
//	client, err := pixabay.NewClient(pixabay.DefaultAPIURL, apiKey)
//	if err != nil {
//		return err
//	}
//	q := pixabay.BuildQuery(1, "mountain lake", "nature", map[string]string{"order": "latest"})
//	page, err := client.Search(ctx, q)
//
// # Request Shape
//
// Every request carries the fixed parameters key, per_page=25,
// safesearch=true and editors_choice=true. The variable part comes from
// Query.Encode, in this order:
//
//	page=N [&q=<percent-encoded text>] [&category=C] [&order=..] [&orientation=..] [&type=..] [&colors=..]
//
// Only q is percent-encoded. Category and facet values are passed through
// verbatim and never checked against the vocabulary, so a bad value simply
// produces a request the API rejects or ignores.
//
// # Errors
//
// Transport failures and HTTP status >= 400 are returned as wrapped errors.
// A 2xx body without a hits array wraps ErrMalformedResponse so callers can
// treat it as an empty page instead of a failure.
package pixabay
