package errors

import "fmt"

// Common error messages for the anchorlog CLI.
// These templates ensure consistent, actionable error messages.

// InsufficientAnchors creates an error when fewer than two anchors resolved.
// usage is the failing command's usage line and may be empty.
func InsufficientAnchors(have, minimum int, usage string, cause error) *CLIError {
	return &CLIError{
		Category: Argument,
		Message:  fmt.Sprintf("need at least %d anchors, have %d", minimum, have),
		Usage:    usage,
		Remediation: []string{
			"Pass at least two commit ids, short ids or tag names",
			"List commits with: anchorlog graph",
			"Or pick anchors interactively with: anchorlog browse",
		},
		Cause: cause,
	}
}

// NotARepository creates an error when the path is not inside a git repository.
func NotARepository(path string, cause error) *CLIError {
	return &CLIError{
		Category: Prerequisite,
		Message:  fmt.Sprintf("not a git repository: %s", path),
		Remediation: []string{
			"Run anchorlog inside a git repository",
			"Or point at one with: anchorlog --repo <path>",
		},
		Cause: cause,
	}
}

// InvalidConfig creates an error for configuration that failed to load or validate.
func InvalidConfig(cause error) *CLIError {
	return WrapWithMessage(cause, Configuration,
		"invalid configuration",
		"Check .anchorlog.yml and ~/.config/anchorlog/config.yml",
		"Show the effective values with: anchorlog config show",
		"Create a commented template with: anchorlog config init",
	)
}

// InvalidVersionConfig creates an error for numbering flags out of range.
func InvalidVersionConfig(cause error) *CLIError {
	return WrapWithMessage(cause, Argument,
		"invalid version numbering",
		"--major and --minor-start must be 0 or greater",
		"--base-patch must be 1 or greater",
	)
}

// FileNotWritable creates an error when the changelog cannot be written.
func FileNotWritable(path string, cause error) *CLIError {
	return &CLIError{
		Category: Runtime,
		Message:  fmt.Sprintf("cannot write to file: %s", path),
		Remediation: []string{
			"Check file permissions: ls -la " + path,
			"Ensure parent directory exists and is writable",
			"Or choose another path with: anchorlog generate -o <path>",
		},
		Cause: cause,
	}
}
