// Package console renders dialogue runs as plain text.
package console

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// Printer writes transcript lines to an io.Writer. It satisfies
// conversation.Reporter and is safe for concurrent use.
//
// Write errors are sticky: the first one is kept and later writes are
// skipped. Check Err after the run.
type Printer struct {
	mu  sync.Mutex
	w   io.Writer
	err error
}

// New creates a Printer.
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

func (p *Printer) printf(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

// Round prints "\nRound N:\n\n".
func (p *Printer) Round(n int) { p.printf("\nRound %d:\n\n", n) }

// Say prints "Speaker: text" with surrounding whitespace trimmed from text.
func (p *Printer) Say(speaker, text string) {
	p.printf("%s: %s\n", speaker, strings.TrimSpace(text))
}

// Note prints text followed by a newline.
func (p *Printer) Note(text string) { p.printf("%s\n", text) }

// Heading prints a section header preceded by an empty line.
func (p *Printer) Heading(text string) { p.printf("\n%s\n", text) }

// Elapsed prints the closing timing line.
func (p *Printer) Elapsed(d time.Duration) { p.printf("%s\n", FormatElapsed(d)) }

// Err returns the first write error, if any.
func (p *Printer) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// FormatElapsed renders d as "Execution time: 1.23 seconds".
func FormatElapsed(d time.Duration) string {
	return fmt.Sprintf("Execution time: %.2f seconds", d.Seconds())
}
