// Package progress draws optional progress bars for long fetch loops.
// Whether a bar is drawn never changes what the loop does.
package progress

import (
	"fmt"
	"io"
	"iter"
	"os"

	bubbleprogress "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Bar reports progress through a known number of steps.
type Bar interface {
	Start(desc string, total int)
	Increment()
	Finish()
}

// Nop returns a Bar that draws nothing.
func Nop() Bar { return nopBar{} }

type nopBar struct{}

func (nopBar) Start(string, int) {}
func (nopBar) Increment()        {}
func (nopBar) Finish()           {}

var labelStyle = lipgloss.NewStyle().Bold(true)

// Terminal draws a single-line bar on w, redrawn in place.
type Terminal struct {
	w     io.Writer
	model bubbleprogress.Model
	desc  string
	total int
	done  int
}

// NewTerminal creates a bar that draws on w.
func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{
		w:     w,
		model: bubbleprogress.New(bubbleprogress.WithDefaultGradient(), bubbleprogress.WithWidth(40)),
	}
}

// Start begins a new bar.
func (t *Terminal) Start(desc string, total int) {
	t.desc, t.total, t.done = desc, total, 0
	t.draw()
}

// Increment advances the bar one step.
func (t *Terminal) Increment() {
	t.done++
	t.draw()
}

// Finish completes the line.
func (t *Terminal) Finish() {
	fmt.Fprintln(t.w)
}

func (t *Terminal) draw() {
	percent := 1.0
	if t.total > 0 {
		percent = float64(t.done) / float64(t.total)
	}
	fmt.Fprintf(t.w, "\r%s %s %d/%d", labelStyle.Render(t.desc), t.model.ViewAs(percent), t.done, t.total)
}

// Auto returns a terminal bar on f when f is a terminal, and Nop otherwise.
func Auto(f *os.File) Bar {
	if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
		return NewTerminal(f)
	}
	return Nop()
}

// Range yields items in order, advancing bar after each one.
func Range[T any](bar Bar, desc string, items []T) iter.Seq[T] {
	return func(yield func(T) bool) {
		bar.Start(desc, len(items))
		defer bar.Finish()
		for _, item := range items {
			if !yield(item) {
				return
			}
			bar.Increment()
		}
	}
}
