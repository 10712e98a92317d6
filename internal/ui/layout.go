package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which compact mode is used.
	LayoutCompactWidth = 100

	// LayoutMinCardWidth is the narrowest card the automatic layout allows.
	LayoutMinCardWidth = 28

	// LayoutMaxAutoColumns caps the automatic column count.
	LayoutMaxAutoColumns = 6

	// LayoutColumnGap is the space between grid columns.
	LayoutColumnGap = 1
)

// Card geometry.
const (
	// CardTextRows holds the tag line and the stats line.
	CardTextRows = 2

	// CardMaxArtRows caps the preview area of very tall images.
	CardMaxArtRows = 12
)

// Chrome heights around the main content.
const (
	// HeaderRows covers the title, search, category and chip lines.
	HeaderRows = 4

	// FooterRows covers the notification and command bar lines.
	FooterRows = 2
)

// Data limits.
const (
	// ActivityLineLimit is the number of log lines read for the Activity view.
	ActivityLineLimit = 400

	// DownloadsListLimit is the number of records shown in the Downloads view.
	DownloadsListLimit = 100
)

// Timing constants.
const (
	// SearchDebounce is the quiet period before typed text triggers a search.
	SearchDebounce = 400 * time.Millisecond

	// NotifyDuration is how long a success notification stays visible.
	NotifyDuration = 3 * time.Second

	// NotifyErrorDuration is how long an error notification stays visible.
	NotifyErrorDuration = 4 * time.Second

	// LibraryQueryTimeout bounds local database reads.
	LibraryQueryTimeout = 2 * time.Second
)
