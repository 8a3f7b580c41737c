// Package sim provides software stand-ins for the clock hardware and the
// loop that drives them.
package sim

import (
	"fmt"
	"sync"

	"github.com/verte-zerg/nixie/internal/menu"
	"github.com/verte-zerg/nixie/internal/prompt"
)

// Frame is what the tubes show at one instant.
type Frame struct {
	Title      string
	Text       [prompt.Width]byte
	Indicators [prompt.Width]bool
	BlinkPos   int
	BlinkWidth int
	Brightness int
	Rate       menu.Rate
	Blank      bool
}

// String returns the tube contents.
func (f Frame) String() string {
	return string(f.Text[:])
}

// Panel is an in-memory tube display. The appliance loop writes it and
// the front end reads snapshots from another goroutine.
type Panel struct {
	mu    sync.Mutex
	frame Frame
}

// NewPanel returns a blank panel at full brightness.
func NewPanel() *Panel {
	p := &Panel{}
	p.frame.Brightness = 8
	for i := range p.frame.Text {
		p.frame.Text[i] = ' '
	}
	return p
}

// Snapshot returns a copy of the current frame.
func (p *Panel) Snapshot() Frame {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.frame
}

func (p *Panel) ShowTitle(title string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.frame.Title = title
}

// ShowText replaces the tube contents and clears the indicators.
func (p *Panel) ShowText(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.setText(text)
}

// ShowValue shows v right aligned with leading zeros.
func (p *Panel) ShowValue(v int) {
	text := fmt.Sprintf("%0*d", prompt.Width, v)
	if len(text) > prompt.Width {
		text = text[len(text)-prompt.Width:]
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.setText(text)
}

func (p *Panel) setText(text string) {
	p.frame.Blank = false
	p.frame.Indicators = [prompt.Width]bool{}
	for i := range p.frame.Text {
		p.frame.Text[i] = ' '
		if i < len(text) {
			p.frame.Text[i] = text[i]
		}
	}
}

func (p *Panel) SetGlyph(pos int, ch byte) {
	if pos < 0 || pos >= prompt.Width {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.frame.Text[pos] = ch
}

func (p *Panel) SetIndicator(pos int, on bool) {
	if pos < 0 || pos >= prompt.Width {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.frame.Indicators[pos] = on
}

func (p *Panel) SetBlink(pos, width int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.frame.BlinkPos, p.frame.BlinkWidth = pos, width
}

func (p *Panel) SetBrightness(level int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.frame.Brightness = level
}

func (p *Panel) SetRate(r menu.Rate) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.frame.Rate = r
}

// SetBlank turns every tube off without losing the contents.
func (p *Panel) SetBlank(blank bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.frame.Blank = blank
}
