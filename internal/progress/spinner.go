package progress

import (
	"io"
	"time"

	"github.com/briandowns/spinner"
)

// Spinner shows an animated indicator while an external tool runs.
// It is a no-op when stdout is not a terminal, so CI logs stay clean.
type Spinner struct {
	caps    TerminalCapabilities
	symbols ProgressSymbols
	out     io.Writer
	s       *spinner.Spinner
}

// NewSpinner creates a spinner writing to out, gated on the detected
// terminal capabilities.
func NewSpinner(out io.Writer) *Spinner {
	caps := DetectTerminalCapabilities()
	return &Spinner{
		caps:    caps,
		symbols: SelectSymbols(caps),
		out:     out,
	}
}

// Start begins the animation with the given message. No-op without a TTY.
func (p *Spinner) Start(message string) {
	if !p.caps.IsTTY || p.s != nil {
		return
	}
	s := spinner.New(spinner.CharSets[p.symbols.SpinnerSet], 100*time.Millisecond, spinner.WithWriter(p.out))
	s.Suffix = " " + message
	s.Start()
	p.s = s
}

// Stop halts the animation and clears the line. Safe to call when not started.
func (p *Spinner) Stop() {
	if p.s == nil {
		return
	}
	p.s.Stop()
	p.s = nil
}
