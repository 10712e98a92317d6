package app

import (
	"log/slog"

	"github.com/five82/lens/internal/state"
)

// watchFeed logs feed transitions that matter when reading the Activity
// view: a query finishing, pages running out, and the API going offline or
// recovering. It returns the unsubscribe function.
func watchFeed(feed *state.Feed, logger *slog.Logger) func() {
	last := feed.Snapshot()
	return feed.Subscribe(func(s state.Snapshot) {
		prev := last
		last = s

		if prev.Fetching() && !s.Fetching() && s.LastError == nil {
			logger.Info("page loaded",
				"query", s.Query.Label(),
				"page", s.Query.Page,
				"items", len(s.Items),
				"total", s.Total,
			)
			if s.EndOfResults && !prev.EndOfResults {
				logger.Info("end of results", "query", s.Query.Label(), "items", len(s.Items))
			}
		}
		if s.ConsecutiveFailures > prev.ConsecutiveFailures {
			logger.Warn("search failed",
				"query", s.Query.Label(),
				"failures", s.ConsecutiveFailures,
				"error", s.LastError,
			)
		}
		switch {
		case s.IsOffline() && !prev.IsOffline():
			logger.Warn("pixabay unreachable", "failures", s.ConsecutiveFailures)
		case !s.IsOffline() && prev.IsOffline():
			logger.Info("pixabay reachable again")
		}
	})
}
