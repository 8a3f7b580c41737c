package prompt

import (
	"context"
	"time"
)

type scriptInput struct {
	signals  []Signal
	timeouts int
	waited   []time.Duration
}

func (s *scriptInput) Await(_ context.Context, timeout time.Duration) Signal {
	s.waited = append(s.waited, timeout)
	if len(s.signals) == 0 {
		s.timeouts++
		return SignalNone
	}
	sig := s.signals[0]
	s.signals = s.signals[1:]
	return sig
}

func script(signals ...Signal) *scriptInput {
	return &scriptInput{signals: signals}
}

type fakeDisplay struct {
	title  string
	texts  []string
	blinks [][2]int
}

func (d *fakeDisplay) ShowTitle(title string) { d.title = title }
func (d *fakeDisplay) ShowText(text string)   { d.texts = append(d.texts, text) }
func (d *fakeDisplay) ShowValue(int)          {}
func (d *fakeDisplay) SetGlyph(int, byte)     {}
func (d *fakeDisplay) SetIndicator(int, bool) {}
func (d *fakeDisplay) SetBrightness(int)      {}

func (d *fakeDisplay) SetBlink(pos, width int) {
	d.blinks = append(d.blinks, [2]int{pos, width})
}

func (d *fakeDisplay) blinked(pos, width int) bool {
	for _, b := range d.blinks {
		if b == [2]int{pos, width} {
			return true
		}
	}
	return false
}

func (d *fakeDisplay) blinkCleared() bool {
	return len(d.blinks) > 0 && d.blinks[len(d.blinks)-1] == [2]int{0, 0}
}

func (d *fakeDisplay) last() string {
	if len(d.texts) == 0 {
		return ""
	}
	return d.texts[len(d.texts)-1]
}
