package changelog

import (
	"fmt"
	"strings"

	"github.com/ariel-frischer/anchorlog/internal/repository"
)

// minTokenLength is the shortest prefix accepted as a commit identifier.
const minTokenLength = 4

// ResolveTokens maps anchor tokens to positions in commits. A token matches a
// commit when it is a case-insensitive prefix of the commit's FullID; exactly
// one commit must match. Tokens that fail are dropped and returned as
// UnresolvableTokenErrors. Positions keep token order and may repeat.
func ResolveTokens(commits []repository.Commit, tokens []string) ([]int, []UnresolvableTokenError) {
	var positions []int
	var unresolved []UnresolvableTokenError

	for _, token := range tokens {
		position, reason := resolveToken(commits, token)
		if reason != "" {
			unresolved = append(unresolved, UnresolvableTokenError{Token: token, Reason: reason})
			continue
		}
		positions = append(positions, position)
	}

	return positions, unresolved
}

func resolveToken(commits []repository.Commit, token string) (int, string) {
	needle := strings.ToLower(strings.TrimSpace(token))
	if needle == "" {
		return -1, "empty identifier"
	}
	if !isHex(needle) {
		return -1, "not a hexadecimal commit id"
	}
	if len(needle) < minTokenLength {
		return -1, fmt.Sprintf("identifier shorter than %d characters", minTokenLength)
	}

	match := -1
	count := 0
	for i, c := range commits {
		if strings.HasPrefix(strings.ToLower(c.FullID), needle) {
			if match < 0 {
				match = i
			}
			count++
		}
	}

	switch count {
	case 0:
		return -1, "does not match any commit"
	case 1:
		return match, ""
	default:
		return -1, fmt.Sprintf("ambiguous, matches %d commits", count)
	}
}

func isHex(s string) bool {
	for _, r := range s {
		if !strings.ContainsRune("0123456789abcdef", r) {
			return false
		}
	}
	return true
}
