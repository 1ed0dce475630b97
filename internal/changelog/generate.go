package changelog

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ariel-frischer/anchorlog/internal/repository"
)

// Render resolves tokens against commits, assigns versions and renders the
// markdown document. Unresolvable tokens are dropped and returned alongside
// the result; if fewer than two distinct anchors remain the error is an
// *InsufficientAnchorsError and the unresolved tokens are still returned.
func Render(commits []repository.Commit, tokens []string, cfg VersionConfig) (string, []UnresolvableTokenError, error) {
	positions, unresolved := ResolveTokens(commits, tokens)

	entries, err := AssignVersions(commits, positions, cfg)
	if err != nil {
		return "", unresolved, err
	}

	doc, err := RenderMarkdownString(entries)
	if err != nil {
		return "", unresolved, err
	}
	return doc, unresolved, nil
}

// Generate renders the document and writes it verbatim to outputPath,
// replacing any existing file. It returns the path written.
func Generate(commits []repository.Commit, tokens []string, outputPath string, cfg VersionConfig) (string, error) {
	doc, unresolved, err := Render(commits, tokens, cfg)
	for i := range unresolved {
		logDebug("dropping anchor: %v", &unresolved[i])
	}
	if err != nil {
		return "", err
	}

	if err := WriteDocument(outputPath, doc); err != nil {
		return "", err
	}
	return outputPath, nil
}

// WriteDocument writes doc to path using a temp file and rename so a failed
// write never leaves a truncated changelog behind.
func WriteDocument(path, doc string) error {
	if path == "" {
		return fmt.Errorf("output path is empty")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory: %w", err)
		}
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}

	return nil
}
