package preview

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/muesli/termenv"
)

// Highlighter colors markdown with terminal escape sequences.
type Highlighter struct {
	lexer     chroma.Lexer
	formatter chroma.Formatter
	style     *chroma.Style
}

// NewHighlighter builds a markdown highlighter for a 256-color terminal using
// the named chroma style.
func NewHighlighter(styleName string) (*Highlighter, error) {
	return newHighlighter(styleName, formatters.TTY256)
}

// NewHighlighterForProfile matches the escape sequences to the terminal's
// color profile. A terminal without color gets a nil highlighter.
func NewHighlighterForProfile(styleName string, profile termenv.Profile) (*Highlighter, error) {
	var formatter chroma.Formatter
	switch profile {
	case termenv.TrueColor:
		formatter = formatters.TTY16m
	case termenv.ANSI256:
		formatter = formatters.TTY256
	case termenv.ANSI:
		formatter = formatters.TTY8
	default:
		if _, ok := styles.Registry[strings.ToLower(styleName)]; !ok {
			return nil, fmt.Errorf("unknown highlight style %q", styleName)
		}
		return nil, nil
	}
	return newHighlighter(styleName, formatter)
}

func newHighlighter(styleName string, formatter chroma.Formatter) (*Highlighter, error) {
	style, ok := styles.Registry[strings.ToLower(styleName)]
	if !ok {
		return nil, fmt.Errorf("unknown highlight style %q", styleName)
	}
	lexer := lexers.Get("markdown")
	if lexer == nil {
		return nil, fmt.Errorf("markdown lexer unavailable")
	}
	return &Highlighter{
		lexer:     chroma.Coalesce(lexer),
		formatter: formatter,
		style:     style,
	}, nil
}

// Lines highlights each line on its own so escape sequences never span lines.
// A line that fails to highlight is returned unchanged.
func (h *Highlighter) Lines(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = h.line(line)
	}
	return out
}

func (h *Highlighter) line(line string) string {
	if strings.TrimSpace(line) == "" {
		return line
	}
	iterator, err := h.lexer.Tokenise(nil, line)
	if err != nil {
		return line
	}
	var sb strings.Builder
	if err := h.formatter.Format(&sb, h.style, iterator); err != nil {
		return line
	}
	// The lexer terminates its input with a newline; drop it.
	return strings.ReplaceAll(sb.String(), "\n", "")
}
