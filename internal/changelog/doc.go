// Package changelog assigns versions to commits between anchors and renders
// the result as a markdown CHANGELOG.
//
// This package implements:
//   - Version assignment: anchors open minor versions, in-between commits get
//     evenly spread, strictly increasing patch numbers
//   - Markdown rendering of versioned commits
//   - Anchor token resolution against a commit list
//   - The Render and Generate entry points used by the CLI and the TUI
//   - Colored terminal summaries of assigned versions
//
// Output is deterministic: the same commits, anchors, and configuration always
// produce byte-identical documents.
package changelog

// debugLogger receives diagnostics when debug mode is enabled.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for changelog operations.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}
