package prompt

import (
	"context"
	"time"
)

// Mode controls what scrolling past either end of a list does.
type Mode uint8

const (
	// ModeStatic stops at the first and last items.
	ModeStatic Mode = iota
	// ModeScroll wraps around.
	ModeScroll
)

// Cancelled is the Select result when the prompt timed out.
const Cancelled = -1

// SelectSpec describes a list prompt.
type SelectSpec struct {
	Title   string
	Items   []string
	Initial int
	Mode    Mode
}

// Select shows spec.Items one at a time and returns the confirmed index,
// or Cancelled when no input arrives within timeout.
func (p *Prompter) Select(ctx context.Context, spec SelectSpec, timeout time.Duration, cb Callback) int {
	n := len(spec.Items)
	if n == 0 {
		return Cancelled
	}
	idx := spec.Initial
	if idx < 0 || idx >= n {
		idx = 0
	}
	if spec.Title != "" {
		p.display.ShowTitle(FitLabel(spec.Title))
	}
	p.display.SetBlink(0, 0)
	p.display.ShowText(FitLabel(spec.Items[idx]))

	for {
		switch p.await(ctx, timeout, cb, idx) {
		case SignalIncrement:
			idx = step(idx, 1, n, spec.Mode)
			notify(cb, EventIncrement, idx)
		case SignalDecrement:
			idx = step(idx, -1, n, spec.Mode)
			notify(cb, EventDecrement, idx)
		case SignalSelect:
			notify(cb, EventSelection, idx)
			return idx
		default:
			return Cancelled
		}
		p.display.ShowText(FitLabel(spec.Items[idx]))
	}
}

func step(idx, delta, n int, mode Mode) int {
	idx += delta
	switch {
	case idx < 0 && mode == ModeScroll:
		return n - 1
	case idx < 0:
		return 0
	case idx >= n && mode == ModeScroll:
		return 0
	case idx >= n:
		return n - 1
	}
	return idx
}
