package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mergeGraph = `*   9f3c2a1 2024-03-04 Merge branch 'feature'
|\
| * 4b5e6d7 2024-03-03 Add feature
| |
| | Longer description of the feature.
* | 1a2b3c4 2024-03-02 Fix typo
|/
* 0d0e0f0 2024-03-01 Initial commit`

func TestParse(t *testing.T) {
	t.Parallel()

	g := Parse(mergeGraph)

	require.Len(t, g.Lines, 9)
	assert.Equal(t, []int{0, 2, 5, 7}, g.Headers)
	assert.Equal(t, []int{1, 4, 6, 8}, g.Boundaries)
	assert.Equal(t, []string{"9f3c2a1", "4b5e6d7", "1a2b3c4", "0d0e0f0"}, g.IDs())

	wantBlocks := []int{0, 0, 1, 1, 1, 2, 2, 3, 3}
	for i, line := range g.Lines {
		assert.Equal(t, wantBlocks[i], line.Block, "line %d", i)
	}
	assert.True(t, g.Lines[2].IsHeader)
	assert.False(t, g.Lines[3].IsHeader)
}

func TestParse_HeaderDetection(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		line     string
		isHeader bool
		id       string
	}{
		"plain header":         {line: "* abc1234 2024-01-01 subject", isHeader: true, id: "abc1234"},
		"second lane":          {line: "| * abc1234 2024-01-01 subject", isHeader: true, id: "abc1234"},
		"after slashes":        {line: "|/|\\ * DEADBEEF01 2024-01-01 msg", isHeader: true, id: "deadbeef01"},
		"full hash":            {line: "* 0123456789abcdef0123456789abcdef01234567 2024-01-01 x", isHeader: true, id: "0123456789abcdef0123456789abcdef01234567"},
		"pipe only":            {line: "| |", isHeader: false},
		"body bullet":          {line: "| * fix the thing", isHeader: false},
		"body bullet with hex": {line: "| * deadbeef1 earlier fix", isHeader: false},
		"hex without date":     {line: "* cafef00d2 other fix", isHeader: false},
		"lane after marker":    {line: "* | 1a2b3c4 2024-03-02 Fix typo", isHeader: true, id: "1a2b3c4"},
		"too short id":         {line: "* abc12 2024-01-01 subject", isHeader: false},
		"marker not in prefix": {line: "| text * abc1234 2024-01-01", isHeader: false},
		"empty":                {line: "", isHeader: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			g := Parse(tt.line)
			if !tt.isHeader {
				assert.Zero(t, g.HeaderCount())
				return
			}
			require.Equal(t, 1, g.HeaderCount())
			assert.Equal(t, tt.id, g.HeaderID(0))
		})
	}
}

func TestParse_NoHeaders(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"empty":             "",
		"only newline":      "\n",
		"other style":       "o abc1234 subject\n│ body",
		"placeholder prose": "(commit graph unavailable)",
	}

	for name, text := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			g := Parse(text)
			assert.Zero(t, g.HeaderCount())
			assert.Empty(t, g.Boundaries)
			for _, line := range g.Lines {
				assert.Equal(t, -1, line.Block)
			}
		})
	}
}

func TestParse_BulletedBodies(t *testing.T) {
	t.Parallel()

	text := "* a11359e 2024-06-03 third\n" +
		"* 9f07b06 2024-06-02 release notes\n" +
		"|\n" +
		"| * deadbeef1 earlier fix\n" +
		"| * cafef00d2 other fix\n" +
		"* 0c00fc8 2024-06-01 first\n"

	g := Parse(text)

	assert.Equal(t, []int{0, 1, 5}, g.Headers)
	assert.Equal(t, []string{"a11359e", "9f07b06", "0c00fc8"}, g.IDs())
	assert.Equal(t, 1, g.Lines[3].Block)
	assert.Equal(t, -1, g.FindHeader("deadbeef1"))
}

func TestParse_LinesBeforeFirstHeader(t *testing.T) {
	t.Parallel()

	g := Parse("preamble\n\n* abc1234 2024-01-01 first\n| body")

	require.Len(t, g.Lines, 4)
	assert.Equal(t, -1, g.Lines[0].Block)
	assert.Equal(t, -1, g.Lines[1].Block)
	assert.Equal(t, 0, g.Lines[2].Block)
	assert.Equal(t, 0, g.Lines[3].Block)
	assert.Equal(t, []int{3}, g.Boundaries)
}

func TestGraph_FindHeader(t *testing.T) {
	t.Parallel()

	g := Parse(mergeGraph)

	tests := map[string]struct {
		id   string
		want int
	}{
		"exact short": {id: "4b5e6d7", want: 1},
		"full id":     {id: "1a2b3c4d5e6f7a8b9c0d1e2f3a4b5c6d7e8f9a0b", want: 2},
		"uppercase":   {id: "0D0E0F0", want: 3},
		"unknown":     {id: "fffffff", want: -1},
		"empty":       {id: "", want: -1},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, g.FindHeader(tt.id))
		})
	}
}

func TestGraph_BlockRangeAndBoundaries(t *testing.T) {
	t.Parallel()

	g := Parse(mergeGraph)

	start, stop := g.BlockRange(1)
	assert.Equal(t, 2, start)
	assert.Equal(t, 5, stop)

	start, stop = g.BlockRange(3)
	assert.Equal(t, 7, start)
	assert.Equal(t, 9, stop)

	assert.True(t, g.IsBoundary(4))
	assert.False(t, g.IsBoundary(3))
	assert.Equal(t, "", g.HeaderID(10))
}
