package repository

import "strings"

// DrawLinear draws commits (oldest first) as a single-lane graph, newest on top,
// in the same shape git log --graph uses: a "* " header per commit followed by
// its body lines, prefixed with "| " while older commits remain below.
func DrawLinear(commits []Commit) string {
	var sb strings.Builder
	for i := len(commits) - 1; i >= 0; i-- {
		c := commits[i]
		sb.WriteString("* ")
		sb.WriteString(c.ShortID)
		sb.WriteString(" ")
		sb.WriteString(c.Date)
		sb.WriteString(" ")
		sb.WriteString(c.Subject)
		sb.WriteString("\n")

		if c.Body == "" {
			continue
		}
		prefix := "| "
		if i == 0 {
			prefix = "  "
		}
		for _, line := range strings.Split(c.Body, "\n") {
			sb.WriteString(strings.TrimRight(prefix+line, " "))
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
