package prompt

import (
	"context"
	"fmt"
	"time"
)

// Field is one editable group of tubes.
type Field struct {
	Position int
	Digits   int
	Value    int
	Lower    int
	Upper    int
}

// ValueSpec describes a multi-field editor. Initial is the text shown
// around the fields.
type ValueSpec struct {
	Title   string
	Initial string
	Fields  []Field
	// Alphabetic fields hold printable characters (32..127) instead of
	// decimal numbers.
	Alphabetic bool
}

// Value edits the fields left to right. Each select confirms the field
// under the cursor; confirming the last one returns every value. ok is
// false when the prompt timed out, and no edit is returned.
func (p *Prompter) Value(ctx context.Context, spec ValueSpec, timeout time.Duration, cb Callback) (values []int, ok bool) {
	if len(spec.Fields) == 0 {
		return nil, false
	}
	fields := make([]Field, len(spec.Fields))
	copy(fields, spec.Fields)
	for i := range fields {
		fields[i].Value = clamp(fields[i].Value, fields[i].Lower, fields[i].Upper)
	}
	if spec.Title != "" {
		p.display.ShowTitle(FitLabel(spec.Title))
	}

	cursor := 0
	p.render(spec, fields, cursor)
	for {
		f := &fields[cursor]
		switch p.await(ctx, timeout, cb, f.Value) {
		case SignalIncrement:
			f.Value = wrap(f.Value+1, f.Lower, f.Upper)
			notify(cb, EventIncrement, f.Value)
		case SignalDecrement:
			f.Value = wrap(f.Value-1, f.Lower, f.Upper)
			notify(cb, EventDecrement, f.Value)
		case SignalSelect:
			notify(cb, EventSelection, f.Value)
			cursor++
			if cursor == len(fields) {
				p.display.SetBlink(0, 0)
				values = make([]int, len(fields))
				for i, fd := range fields {
					values[i] = fd.Value
				}
				return values, true
			}
		default:
			p.display.SetBlink(0, 0)
			return nil, false
		}
		p.render(spec, fields, cursor)
	}
}

func (p *Prompter) render(spec ValueSpec, fields []Field, cursor int) {
	buf := cells(spec.Initial)
	for _, f := range fields {
		var text string
		if spec.Alphabetic {
			text = string(rune(f.Value))
		} else {
			text = fmt.Sprintf("%0*d", f.Digits, f.Value)
			if len(text) > f.Digits {
				text = text[len(text)-f.Digits:]
			}
		}
		for i := 0; i < len(text) && f.Position+i < len(buf); i++ {
			if f.Position+i >= 0 {
				buf[f.Position+i] = text[i]
			}
		}
	}
	p.display.ShowText(string(buf))
	p.display.SetBlink(fields[cursor].Position, fields[cursor].Digits)
}

// cells lays s out one byte per tube.
func cells(s string) []byte {
	buf := make([]byte, Width)
	for i := range buf {
		buf[i] = ' '
		if i < len(s) {
			buf[i] = s[i]
		}
	}
	return buf
}

// wrap keeps v inside [lower, upper], stepping past one edge onto the other.
func wrap(v, lower, upper int) int {
	switch {
	case v > upper:
		return lower
	case v < lower:
		return upper
	}
	return v
}

func clamp(v, lower, upper int) int {
	switch {
	case v < lower:
		return lower
	case v > upper:
		return upper
	}
	return v
}
