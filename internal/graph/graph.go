// Package graph parses git log --graph output into a line-indexed structure:
// which lines are commit headers, which block every line belongs to, and
// where each block ends.
package graph

import (
	"regexp"
	"sort"
	"strings"
)

// headerPattern matches a commit node marker ("*") drawn after any run of
// graph glyphs and followed, possibly past further lanes, by the commit's hex
// id and its YYYY-MM-DD date. The date keeps bulleted body lines such as
// "| * deadbeef1 earlier fix" from being read as headers. Lines drawn in any
// other convention are not headers; such input parses to zero headers.
var headerPattern = regexp.MustCompile(`^[|/\\_.\- ]*\*[|/\\_.\- ]*\s([0-9a-fA-F]{7,40})\s+\d{4}-\d{2}-\d{2}\b`)

// Line is one line of graph text.
type Line struct {
	Text     string
	IsHeader bool
	// Block is the index of the header this line belongs to, or -1 for lines
	// before the first header.
	Block int
}

// Graph is parsed graph text. It is rebuilt from scratch on every refresh.
type Graph struct {
	Lines []Line
	// Headers holds the line position of each commit header, strictly increasing.
	Headers []int
	// Boundaries holds the last line position of each block, in block order.
	Boundaries []int

	ids []string
}

// Parse splits text into lines and indexes commit headers. Line order is kept
// exactly as given. Empty input yields a graph with no lines and no headers.
func Parse(text string) *Graph {
	g := &Graph{}
	text = strings.TrimSuffix(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	if text == "" {
		return g
	}

	rawLines := strings.Split(text, "\n")
	g.Lines = make([]Line, 0, len(rawLines))

	block := -1
	for i, raw := range rawLines {
		id, isHeader := headerID(raw)
		if isHeader {
			if block >= 0 {
				g.Boundaries = append(g.Boundaries, i-1)
			}
			block++
			g.Headers = append(g.Headers, i)
			g.ids = append(g.ids, id)
		}
		g.Lines = append(g.Lines, Line{Text: raw, IsHeader: isHeader, Block: block})
	}
	if block >= 0 {
		g.Boundaries = append(g.Boundaries, len(rawLines)-1)
	}

	return g
}

// headerID reports whether line is a commit header and returns its id.
func headerID(line string) (string, bool) {
	m := headerPattern.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return strings.ToLower(m[1]), true
}

// HeaderCount returns the number of commit headers.
func (g *Graph) HeaderCount() int {
	return len(g.Headers)
}

// HeaderID returns the commit id drawn on header j, or "" when j is out of range.
func (g *Graph) HeaderID(j int) string {
	if j < 0 || j >= len(g.ids) {
		return ""
	}
	return g.ids[j]
}

// IDs returns the commit ids of all headers in display order.
func (g *Graph) IDs() []string {
	return append([]string(nil), g.ids...)
}

// FindHeader returns the first header whose id matches id by prefix in either
// direction (a short id matches its full id and vice versa), or -1.
func (g *Graph) FindHeader(id string) int {
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" {
		return -1
	}
	for j, hid := range g.ids {
		if hid == "" {
			continue
		}
		if strings.HasPrefix(hid, id) || strings.HasPrefix(id, hid) {
			return j
		}
	}
	return -1
}

// BlockRange returns the half-open line range [start, stop) of header j's
// block: the header line up to the next header or the end of the text.
func (g *Graph) BlockRange(j int) (start, stop int) {
	start = g.Headers[j]
	stop = len(g.Lines)
	if j+1 < len(g.Headers) {
		stop = g.Headers[j+1]
	}
	return start, stop
}

// IsBoundary reports whether line is the last line of a block.
func (g *Graph) IsBoundary(line int) bool {
	i := sort.SearchInts(g.Boundaries, line)
	return i < len(g.Boundaries) && g.Boundaries[i] == line
}
