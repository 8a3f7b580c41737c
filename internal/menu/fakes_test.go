package menu

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/verte-zerg/nixie/internal/chrono"
	"github.com/verte-zerg/nixie/internal/prompt"
	"github.com/verte-zerg/nixie/internal/settings"
)

const (
	inc = prompt.SignalIncrement
	dec = prompt.SignalDecrement
	sel = prompt.SignalSelect
)

type scriptInput struct {
	signals []prompt.Signal
}

func (s *scriptInput) Await(context.Context, time.Duration) prompt.Signal {
	if len(s.signals) == 0 {
		return prompt.SignalNone
	}
	sig := s.signals[0]
	s.signals = s.signals[1:]
	return sig
}

func (s *scriptInput) push(signals ...prompt.Signal) {
	s.signals = append(s.signals, signals...)
}

// times repeats sig n times.
func times(n int, sig prompt.Signal) []prompt.Signal {
	out := make([]prompt.Signal, n)
	for i := range out {
		out[i] = sig
	}
	return out
}

func seq(parts ...[]prompt.Signal) []prompt.Signal {
	var out []prompt.Signal
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func one(sig ...prompt.Signal) []prompt.Signal { return sig }

type fakePanel struct {
	texts      []string
	values     []int
	glyphs     map[int]byte
	indicators map[int]bool
	brightness []int
	rates      []Rate
}

func newPanel() *fakePanel {
	return &fakePanel{glyphs: map[int]byte{}, indicators: map[int]bool{}}
}

func (p *fakePanel) ShowTitle(string)              {}
func (p *fakePanel) ShowText(text string)          { p.texts = append(p.texts, text) }
func (p *fakePanel) ShowValue(v int)               { p.values = append(p.values, v) }
func (p *fakePanel) SetGlyph(pos int, ch byte)     { p.glyphs[pos] = ch }
func (p *fakePanel) SetIndicator(pos int, on bool) { p.indicators[pos] = on }
func (p *fakePanel) SetBlink(int, int)             {}
func (p *fakePanel) SetBrightness(level int)       { p.brightness = append(p.brightness, level) }
func (p *fakePanel) SetRate(r Rate)                { p.rates = append(p.rates, r) }

func (p *fakePanel) lastBrightness() int {
	if len(p.brightness) == 0 {
		return -1
	}
	return p.brightness[len(p.brightness)-1]
}

type fakeClock struct {
	now     chrono.DateTime
	celsius float64
	setTime []int
	setDate []int
	err     error
}

func (c *fakeClock) Now() chrono.DateTime { return c.now }
func (c *fakeClock) Temperature() float64 { return c.celsius }

func (c *fakeClock) SetTime(h, m, s int) error {
	if c.err != nil {
		return c.err
	}
	c.setTime = []int{h, m, s}
	return nil
}

func (c *fakeClock) SetDate(y, mo, d int) error {
	if c.err != nil {
		return c.err
	}
	c.setDate = []int{y, mo, d}
	return nil
}

type fakeAudio struct {
	played []int
	stops  int

	// busy is how many Playing calls report true after a Play.
	busy    int
	playing int
}

func (a *fakeAudio) Play(song int) {
	a.played = append(a.played, song)
	a.playing = a.busy
}

func (a *fakeAudio) Stop() {
	a.stops++
	a.playing = 0
}

func (a *fakeAudio) Playing() bool {
	if a.playing > 0 {
		a.playing--
		return true
	}
	return false
}

type fakeSensors struct {
	light     int
	millivolt int
}

func (s *fakeSensors) LightReading() int      { return s.light }
func (s *fakeSensors) BatteryMillivolts() int { return s.millivolt }

type fakeCountdown struct {
	started []int
}

func (c *fakeCountdown) Start(h, m, s int) { c.started = []int{h, m, s} }

// failingDevice rejects writes while fail is set.
type failingDevice struct {
	*settings.Memory
	fail bool
}

func (f *failingDevice) WriteAt(p []byte, off int64) (int, error) {
	if f.fail {
		return 0, errors.New("write protected")
	}
	return f.Memory.WriteAt(p, off)
}

type rig struct {
	d       *Dispatcher
	dev     settings.Device
	mem     *settings.Memory
	input   *scriptInput
	panel   *fakePanel
	clock   *fakeClock
	audio   *fakeAudio
	sensors *fakeSensors
	timer   *fakeCountdown
}

// newRig persists rec (when not nil) and builds a dispatcher over fakes.
func newRig(t *testing.T, rec *settings.Record) *rig {
	t.Helper()
	return newRigOn(t, settings.NewMemory(256), rec)
}

func newRigOn(t *testing.T, dev settings.Device, rec *settings.Record) *rig {
	t.Helper()
	if rec != nil {
		if err := settings.Persist(dev, rec); err != nil {
			t.Fatalf("persist: %v", err)
		}
	}
	r := &rig{
		dev:     dev,
		input:   &scriptInput{},
		panel:   newPanel(),
		clock:   &fakeClock{celsius: 22.5},
		audio:   &fakeAudio{},
		sensors: &fakeSensors{millivolt: 3100},
		timer:   &fakeCountdown{},
	}
	if m, ok := dev.(*settings.Memory); ok {
		r.mem = m
	}
	d, err := New(dev, Hardware{
		Panel:     r.panel,
		Input:     r.input,
		Clock:     r.clock,
		Audio:     r.audio,
		Sensors:   r.sensors,
		Countdown: r.timer,
	}, Options{Songs: 5})
	if err != nil {
		t.Fatalf("new dispatcher: %v", err)
	}
	r.d = d
	return r
}

func (r *rig) stored(t *testing.T) settings.Record {
	t.Helper()
	rec, err := settings.Read(r.dev)
	if err != nil {
		t.Fatalf("read stored record: %v", err)
	}
	return rec
}

// openItem scripts the menu scroll onto item and confirms it.
func openItem(item Item) []prompt.Signal {
	return seq(times(int(item), inc), one(sel))
}
