package changelog

import (
	"fmt"
	"math"
	"slices"

	"github.com/Masterminds/semver/v3"
	"github.com/go-playground/validator/v10"

	"github.com/ariel-frischer/anchorlog/internal/repository"
)

var validate = validator.New()

// ValidateVersionConfig checks the numbering constraints of cfg.
func ValidateVersionConfig(cfg VersionConfig) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid version config: %w", err)
	}
	return nil
}

// AssignVersions numbers the commits from the first to the last anchor.
// anchors are positions in commits; they are sorted and deduplicated first.
// The j-th anchor gets Major.(MinorStart+j).0 and the commits between anchor j
// and j+1 get Major.(MinorStart+j).p with p from SpreadPatches. Commits outside
// the anchored range are not returned. The result is ordered by position.
func AssignVersions(commits []repository.Commit, anchors []int, cfg VersionConfig) ([]VersionedCommit, error) {
	if err := ValidateVersionConfig(cfg); err != nil {
		return nil, err
	}

	positions := slices.Clone(anchors)
	slices.Sort(positions)
	positions = slices.Compact(positions)

	if len(positions) < MinAnchors {
		return nil, &InsufficientAnchorsError{Have: len(positions)}
	}
	if first, last := positions[0], positions[len(positions)-1]; first < 0 || last >= len(commits) {
		return nil, fmt.Errorf("anchor positions %d..%d out of range for %d commits", first, last, len(commits))
	}

	result := make([]VersionedCommit, 0, positions[len(positions)-1]-positions[0]+1)
	for j, start := range positions {
		minor := cfg.MinorStart + j
		result = append(result, VersionedCommit{
			Position: start,
			Commit:   commits[start],
			Version:  formatVersion(cfg.Major, minor, 0),
			Anchor:   true,
		})

		if j+1 == len(positions) {
			break
		}
		end := positions[j+1]
		for i, patch := range SpreadPatches(max(end-start-1, 0), cfg.BasePatch) {
			position := start + 1 + i
			result = append(result, VersionedCommit{
				Position: position,
				Commit:   commits[position],
				Version:  formatVersion(cfg.Major, minor, patch),
			})
		}
	}

	return result, nil
}

// SpreadPatches distributes count strictly increasing patch numbers over
// 1..basePatch: the i-th (1-based) is round(i*basePatch/(count+1)), rounded
// half away from zero, bumped to previous+1 when it would not increase. The
// bump lets patches run past basePatch when count is large; existing
// changelogs depend on this exact sequence.
func SpreadPatches(count, basePatch int) []int {
	patches := make([]int, 0, count)
	previous := 0
	for i := 1; i <= count; i++ {
		candidate := int(math.Round(float64(i*basePatch) / float64(count+1)))
		if candidate <= previous {
			candidate = previous + 1
		}
		patches = append(patches, candidate)
		previous = candidate
	}
	return patches
}

// formatVersion renders major.minor.patch.
func formatVersion(major, minor, patch int) string {
	return semver.New(uint64(major), uint64(minor), uint64(patch), "", "").String()
}
