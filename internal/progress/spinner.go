package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
)

const spinnerInterval = 100 * time.Millisecond

// Indicator shows a spinner with a message until Stop is called.
// On a non-terminal it stays silent.
type Indicator struct {
	out     io.Writer
	caps    TerminalCapabilities
	symbols ProgressSymbols
	spinner *spinner.Spinner
	message string
	active  bool
}

// NewIndicator creates an indicator writing to out.
func NewIndicator(out io.Writer, caps TerminalCapabilities) *Indicator {
	return &Indicator{out: out, caps: caps, symbols: SelectSymbols(caps)}
}

// Start begins spinning with message. Calling Start again replaces the message.
func (ind *Indicator) Start(message string) {
	ind.message = message
	if !ind.caps.IsTTY {
		return
	}
	if ind.spinner == nil {
		ind.spinner = spinner.New(spinner.CharSets[ind.symbols.SpinnerSet], spinnerInterval,
			spinner.WithWriter(ind.out), spinner.WithHiddenCursor(true))
		if ind.caps.SupportsColor {
			_ = ind.spinner.Color("cyan")
		}
	}
	ind.spinner.Suffix = " " + message
	if !ind.active {
		ind.spinner.Start()
		ind.active = true
	}
}

// Stop ends the spinner and prints a final status line for the last message.
func (ind *Indicator) Stop(success bool) {
	if !ind.active {
		return
	}
	ind.spinner.Stop()
	ind.active = false

	symbol := ind.symbols.Checkmark
	paint := color.New(color.FgGreen).SprintFunc()
	if !success {
		symbol = ind.symbols.Failure
		paint = color.New(color.FgRed).SprintFunc()
	}
	if !ind.caps.SupportsColor {
		paint = fmt.Sprint
	}
	fmt.Fprintf(ind.out, "%s %s\n", paint(symbol), ind.message)
}

// Message returns the last message passed to Start.
func (ind *Indicator) Message() string {
	return ind.message
}
