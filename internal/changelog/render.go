package changelog

import (
	"fmt"
	"io"
	"strings"
)

// unreleasedHeader always opens the document.
const unreleasedHeader = "## [Unreleased]\n\n"

// RenderMarkdown writes the changelog document for entries, in the order
// given (callers pass them sorted by position). Subjects and bodies are
// written verbatim.
//
// The function is idempotent - given the same input, it produces identical output.
func RenderMarkdown(entries []VersionedCommit, w io.Writer) error {
	if _, err := io.WriteString(w, unreleasedHeader); err != nil {
		return fmt.Errorf("rendering header: %w", err)
	}

	for _, entry := range entries {
		if err := renderEntry(entry, w); err != nil {
			return fmt.Errorf("rendering version %s: %w", entry.Version, err)
		}
	}

	return nil
}

// RenderMarkdownString is a convenience function that renders to a string.
func RenderMarkdownString(entries []VersionedCommit) (string, error) {
	var b strings.Builder
	if err := RenderMarkdown(entries, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// renderEntry writes one version section:
//
//	## [0.1.3] - 2024-01-02
//
//	- subject (abc1234)
//	  body line
func renderEntry(entry VersionedCommit, w io.Writer) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## [%s] - %s\n\n", entry.Version, entry.Commit.Date)
	fmt.Fprintf(&sb, "- %s (%s)\n", entry.Commit.Subject, entry.Commit.ShortID)

	if entry.Commit.Body != "" {
		for _, line := range strings.Split(entry.Commit.Body, "\n") {
			sb.WriteString("  ")
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}
	sb.WriteString("\n")

	_, err := io.WriteString(w, sb.String())
	return err
}
