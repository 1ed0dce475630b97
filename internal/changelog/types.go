package changelog

import "github.com/ariel-frischer/anchorlog/internal/repository"

// VersionConfig controls version numbering.
type VersionConfig struct {
	// Major is the major version shared by every assigned version.
	Major int `validate:"min=0"`
	// MinorStart is the minor version of the first anchor. Each later anchor
	// increments it by one.
	MinorStart int `validate:"min=0"`
	// BasePatch is the nominal patch range in-between commits are spread over.
	// Patches can exceed it when a segment holds many commits.
	BasePatch int `validate:"min=1"`
}

// DefaultVersionConfig numbers the first anchor 0.1.0 and spreads patches over 1..10.
func DefaultVersionConfig() VersionConfig {
	return VersionConfig{Major: 0, MinorStart: 1, BasePatch: 10}
}

// VersionedCommit is a commit with its assigned version. Position is the
// commit's index in the chronological commit list.
type VersionedCommit struct {
	Position int
	Commit   repository.Commit
	Version  string
	// Anchor is true for commits that open a minor version.
	Anchor bool
}
