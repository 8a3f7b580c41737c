// Package prompt implements the two interaction primitives of the front
// panel: choosing from a list and editing a row of digit fields.
package prompt

import (
	"context"
	"time"

	"github.com/mattn/go-runewidth"
)

// Width is the number of tubes on the display.
const Width = 6

// Signal is one user input edge.
type Signal uint8

const (
	// SignalNone means the wait ended without input.
	SignalNone Signal = iota
	SignalIncrement
	SignalDecrement
	SignalSelect
)

// Input delivers encoder and button edges.
type Input interface {
	// Await blocks until the next signal, or returns SignalNone once
	// timeout passes without one or ctx is done.
	Await(ctx context.Context, timeout time.Duration) Signal
}

// Display is the part of the tube display the prompts drive.
type Display interface {
	ShowTitle(title string)
	ShowText(text string)
	ShowValue(v int)
	SetGlyph(pos int, ch byte)
	SetIndicator(pos int, on bool)
	// SetBlink marks width tubes starting at pos as being edited; width 0
	// clears the mark.
	SetBlink(pos, width int)
	SetBrightness(level int)
}

// Event is what a prompt reports to its callback.
type Event uint8

const (
	EventIncrement Event = iota
	EventDecrement
	EventSelection
	EventTimeout
)

func (e Event) String() string {
	switch e {
	case EventIncrement:
		return "increment"
	case EventDecrement:
		return "decrement"
	case EventSelection:
		return "selection"
	case EventTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Callback observes every prompt event with the current index or field
// value. Returning true on EventTimeout keeps the prompt waiting; the
// return value is ignored for other events.
type Callback func(ev Event, value int) (keepWaiting bool)

// Prompter runs prompts against one display and input.
type Prompter struct {
	display Display
	input   Input
}

// New returns a Prompter.
func New(display Display, input Input) *Prompter {
	return &Prompter{display: display, input: input}
}

// await waits for input, consulting cb when the wait times out. It returns
// SignalNone only when the prompt should be cancelled.
func (p *Prompter) await(ctx context.Context, timeout time.Duration, cb Callback, value int) Signal {
	for {
		sig := p.input.Await(ctx, timeout)
		if sig != SignalNone {
			return sig
		}
		keep := notify(cb, EventTimeout, value)
		if !keep || ctx.Err() != nil {
			return SignalNone
		}
	}
}

func notify(cb Callback, ev Event, value int) bool {
	if cb == nil {
		return false
	}
	return cb(ev, value)
}

// FitLabel pads or truncates s to the display width.
func FitLabel(s string) string {
	return runewidth.FillRight(runewidth.Truncate(s, Width, ""), Width)
}
