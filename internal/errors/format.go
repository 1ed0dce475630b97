package errors

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

// Labels follow fatih/color's detection, so output is plain when NO_COLOR is
// set or stderr is not a terminal.
var (
	errorLabel   = color.New(color.FgRed, color.Bold).SprintFunc()
	categoryText = color.New(color.FgYellow).SprintFunc()
	usageLabel   = color.New(color.FgCyan, color.Bold).SprintFunc()
	hintLabel    = color.New(color.FgGreen, color.Bold).SprintFunc()
	warnLabel    = color.New(color.FgYellow, color.Bold).SprintFunc()
	tokenText    = color.New(color.FgMagenta).SprintFunc()
)

// FormatError renders err the way git reports its own failures:
//
//	error: need at least 2 anchors, have 1 (argument)
//	usage: anchorlog render [tokens...] [flags]
//	hint: Pass at least two commit ids, short ids or tag names
func FormatError(err *CLIError) string {
	if err == nil {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s %s\n", errorLabel("error:"), err.Message, categoryText("("+categoryName(err.Category)+")"))
	if err.Usage != "" {
		fmt.Fprintf(&sb, "%s %s\n", usageLabel("usage:"), err.Usage)
	}
	for _, step := range err.Remediation {
		fmt.Fprintf(&sb, "%s %s\n", hintLabel("hint:"), step)
	}
	return sb.String()
}

// categoryName is the short lowercase category shown after the message.
func categoryName(c ErrorCategory) string {
	return strings.ToLower(strings.TrimSuffix(c.String(), " Error"))
}

// FprintError prints a formatted CLIError to the given writer.
func FprintError(w io.Writer, err *CLIError) {
	if err == nil {
		return
	}
	fmt.Fprint(w, FormatError(err))
}

// Unresolved is an anchor token that was dropped because it named no commit.
type Unresolved struct {
	Token  string
	Reason string
}

// FormatUnresolved renders the warning for dropped anchor tokens. A single
// token fits on one line; several are counted and listed one per line.
func FormatUnresolved(tokens []Unresolved) string {
	switch len(tokens) {
	case 0:
		return ""
	case 1:
		u := tokens[0]
		return fmt.Sprintf("%s ignoring anchor %s: %s\n", warnLabel("warning:"), tokenText(strconv.Quote(u.Token)), u.reason())
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s ignoring %d anchors\n", warnLabel("warning:"), len(tokens))
	for _, u := range tokens {
		fmt.Fprintf(&sb, "  %s: %s\n", tokenText(strconv.Quote(u.Token)), u.reason())
	}
	return sb.String()
}

// FprintUnresolved prints the dropped-token warning, or nothing when every
// token resolved. Warnings never stop a command.
func FprintUnresolved(w io.Writer, tokens []Unresolved) {
	fmt.Fprint(w, FormatUnresolved(tokens))
}

func (u Unresolved) reason() string {
	if u.Reason == "" {
		return "does not match any commit"
	}
	return u.Reason
}
