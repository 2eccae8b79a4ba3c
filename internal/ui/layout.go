package ui

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which compact mode is used.
	LayoutCompactWidth = 100

	// LayoutExtraColumnsWidth is the minimum width to show extra list columns.
	LayoutExtraColumnsWidth = 120
)

// Reserved rows outside the content area: header, command bar and footer.
const chromeRows = 3

// LogTailLines is the number of log lines read for the logs view.
const LogTailLines = 2000

// idColumnWidth is the width of the list view's ID column.
const idColumnWidth = 8
