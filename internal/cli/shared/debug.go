package shared

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/ariel-frischer/anchorlog/internal/changelog"
	"github.com/ariel-frischer/anchorlog/internal/repository"
	"github.com/spf13/cobra"
)

// NewDebugLogger returns a logger that writes timestamped lines to w.
func NewDebugLogger(w io.Writer) func(format string, args ...any) {
	var mu sync.Mutex
	return func(format string, args ...any) {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintf(w, "%s [DEBUG] %s\n", time.Now().Format("15:04:05.000"), fmt.Sprintf(format, args...))
	}
}

// SetupDebugLogging installs debug loggers in the repository and changelog
// packages when --debug is set. The returned function closes the log file,
// if one was opened, and is never nil.
func SetupDebugLogging(cmd *cobra.Command) (func() error, error) {
	noop := func() error { return nil }

	debug, _ := cmd.Flags().GetBool(DebugFlag)
	if !debug {
		repository.SetDebugLogger(nil)
		changelog.SetDebugLogger(nil)
		return noop, nil
	}

	var w io.Writer = cmd.ErrOrStderr()
	closer := noop
	if path, _ := cmd.Flags().GetString(LogFileFlag); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return noop, fmt.Errorf("opening log file: %w", err)
		}
		w = f
		closer = f.Close
	}

	logger := NewDebugLogger(w)
	repository.SetDebugLogger(logger)
	changelog.SetDebugLogger(logger)
	logger("[cli] debug logging enabled for %s", cmd.CommandPath())
	return closer, nil
}
