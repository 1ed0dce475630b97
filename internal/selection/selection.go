// Package selection tracks which commit headers the operator has marked as
// anchors. Selections hold header indices, which are only meaningful against
// the graph they were made on; across a graph rebuild a selection travels as
// commit identifiers and is re-resolved with Rehydrate.
package selection

import (
	"slices"

	"github.com/ariel-frischer/anchorlog/internal/graph"
)

// Set is an ordered, deduplicated set of header indices.
type Set struct {
	indices []int
}

// Toggle removes index if present, otherwise inserts it in sorted position.
// It reports whether index is selected afterwards. Negative indices are ignored.
func (s *Set) Toggle(index int) bool {
	if index < 0 {
		return false
	}
	pos, found := slices.BinarySearch(s.indices, index)
	if found {
		s.indices = slices.Delete(s.indices, pos, pos+1)
		return false
	}
	s.indices = slices.Insert(s.indices, pos, index)
	return true
}

// Contains reports whether index is selected.
func (s *Set) Contains(index int) bool {
	_, found := slices.BinarySearch(s.indices, index)
	return found
}

// Indices returns the selected header indices in ascending order.
func (s *Set) Indices() []int {
	return slices.Clone(s.indices)
}

// Len returns the number of selected headers.
func (s *Set) Len() int {
	return len(s.indices)
}

// Clear removes every selection.
func (s *Set) Clear() {
	s.indices = nil
}

// ResolvedIdentifiers maps each selected header to the commit id drawn on its
// line, in selection order. Headers without an id are skipped.
func (s *Set) ResolvedIdentifiers(g *graph.Graph) []string {
	ids := make([]string, 0, len(s.indices))
	for _, index := range s.indices {
		if id := g.HeaderID(index); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// Rehydrate rebuilds the set against a new graph from previously resolved
// identifiers. Identifiers with no matching header are dropped.
func (s *Set) Rehydrate(ids []string, g *graph.Graph) {
	s.indices = nil
	for _, id := range ids {
		index := g.FindHeader(id)
		if index < 0 || s.Contains(index) {
			continue
		}
		s.Toggle(index)
	}
}

// RehydrateCursor finds the header for a remembered cursor identifier,
// defaulting to the first header.
func RehydrateCursor(id string, g *graph.Graph) int {
	if index := g.FindHeader(id); index >= 0 {
		return index
	}
	return 0
}
