// Package ui provides the terminal user interface for lens.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. Model owns the filter controller and,
// through it, the feed. Every state transition happens inside Update: key
// presses, window resizes, debounce ticks and fetch results all arrive as
// messages. Network and disk work runs in tea.Cmd functions that report
// back with a message, so the feed is only ever touched from the Update
// goroutine.
//
// # Package Structure
//
//   - app.go: Model, Options, Update/View, fetch plumbing and Run
//   - grid.go: masonry layout, grid navigation and card rendering
//   - search.go: search box debounce, category bar and filter chips
//   - filter_modal.go: facet picker implementing Modal
//   - detail.go: image detail view and the download/share/open actions
//   - activity.go: Downloads and Activity views
//   - header.go: title line, command bar and notification line
//   - notify.go: transient notifications
//   - help.go: keyboard shortcut overlay
//   - theme.go, style_helpers.go: colors and Lipgloss styles
//
// # Views
//
//   - Grid: masonry grid of image cards. Cards go into the shortest column
//     and their height follows the image's aspect ratio.
//   - Detail: metadata, sizes and links for one image.
//   - Downloads: recent entries from the download library.
//   - Activity: the parsed tail of the lens log file.
//
// # Infinite Scroll
//
// After every movement, resize or fetch result the grid reports its
// distance from the bottom to state.Feed.OnScroll. The feed decides whether
// that crossing starts the next page, so the UI never tracks pagination
// itself. Content shorter than the screen counts as being at the bottom,
// which keeps loading pages until the screen is full or the results run
// out.
//
// # Search Debounce
//
// Each keystroke in the search box bumps a sequence number and schedules a
// searchDebounceMsg. Only the message carrying the current sequence runs
// the search, and only when filter.ShouldSearch accepts the text. Enter
// searches immediately.
//
// # Key Bindings
//
//   - /: Search
//   - c: Category bar (left/right, enter toggles)
//   - f: Filter picker
//   - 1-4: Clear order, orientation, type or colors
//   - X: Reset all filters
//   - enter: Image details (d download, s share, o open page)
//   - D / L: Downloads / Activity
//   - T: Cycle theme
//   - h/?: Help
//   - e/ctrl+c: Quit
package ui
