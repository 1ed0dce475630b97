package changelog

import (
	"errors"
	"fmt"
)

// MinAnchors is the number of anchors a changelog needs.
const MinAnchors = 2

// InsufficientAnchorsError is returned when fewer than MinAnchors distinct
// anchors are available for version assignment or rendering.
type InsufficientAnchorsError struct {
	// Have is the number of distinct anchors that were available.
	Have int
}

func (e *InsufficientAnchorsError) Error() string {
	return fmt.Sprintf("need at least %d anchors, have %d", MinAnchors, e.Have)
}

// UnresolvableTokenError describes an anchor token that matched no commit.
// These are reported, never fatal on their own.
type UnresolvableTokenError struct {
	Token  string
	Reason string
}

func (e *UnresolvableTokenError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("anchor %q: %s", e.Token, e.Reason)
	}
	return fmt.Sprintf("anchor %q does not match any commit", e.Token)
}

// IsInsufficientAnchors returns true if err is or wraps an InsufficientAnchorsError.
func IsInsufficientAnchors(err error) bool {
	var ia *InsufficientAnchorsError
	return errors.As(err, &ia)
}
