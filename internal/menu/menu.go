// Package menu drives the settings and information screens of the clock.
package menu

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/verte-zerg/nixie/internal/chrono"
	"github.com/verte-zerg/nixie/internal/prompt"
	"github.com/verte-zerg/nixie/internal/settings"
)

// Rate is the display multiplexing speed.
type Rate uint8

const (
	RateFast Rate = iota
	RateSlow
)

// Panel is the tube display.
type Panel interface {
	prompt.Display
	SetRate(r Rate)
}

// Clock is the battery-backed real-time clock.
type Clock interface {
	Now() chrono.DateTime
	SetTime(hour, minute, second int) error
	SetDate(year, month, day int) error
	// Temperature returns the chip temperature in Celsius.
	Temperature() float64
}

// Audio is the tone sequencer.
type Audio interface {
	Play(song int)
	Stop()
	Playing() bool
}

// Sensors samples the light sensor and the battery.
type Sensors interface {
	// LightReading returns the raw sensor value, 0 (dark) to
	// settings.LightMax.
	LightReading() int
	BatteryMillivolts() int
}

// Countdown runs the countdown timer mode.
type Countdown interface {
	Start(hour, minute, second int)
}

// Hardware bundles the collaborators the dispatcher drives.
type Hardware struct {
	Panel     Panel
	Input     prompt.Input
	Clock     Clock
	Audio     Audio
	Sensors   Sensors
	Countdown Countdown
}

// Timeouts are the idle budgets of each kind of wait.
type Timeouts struct {
	Info   time.Duration
	Menu   time.Duration
	Select time.Duration
	Value  time.Duration
}

// DefaultTimeouts returns the budgets used on the appliance.
func DefaultTimeouts() Timeouts {
	return Timeouts{
		Info:   5 * time.Minute,
		Menu:   5 * time.Second,
		Select: 15 * time.Second,
		Value:  30 * time.Second,
	}
}

// Options tune a Dispatcher.
type Options struct {
	Timeouts Timeouts
	// Songs is the number of tunes the audio sequencer knows.
	Songs  int
	Logger *log.Logger
}

// Version is the firmware revision shown on the info screen.
const Version = 5

// Dispatcher owns the configuration record and runs the menu screens. It
// is not safe for concurrent use; the appliance loop calls it from one
// goroutine.
type Dispatcher struct {
	rec      settings.Record
	dev      settings.Device
	hw       Hardware
	prompter *prompt.Prompter
	timeouts Timeouts
	songs    int
	log      *log.Logger
}

// New loads the record from dev, restoring factory defaults when it does
// not validate.
func New(dev settings.Device, hw Hardware, opts Options) (*Dispatcher, error) {
	if hw.Panel == nil || hw.Input == nil || hw.Clock == nil || hw.Audio == nil || hw.Sensors == nil || hw.Countdown == nil {
		return nil, errors.New("menu: all hardware collaborators are required")
	}
	if opts.Songs <= 0 {
		return nil, errors.New("menu: at least one song required")
	}
	if opts.Timeouts == (Timeouts{}) {
		opts.Timeouts = DefaultTimeouts()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	rec, recovered, err := settings.Load(dev)
	if err != nil {
		return nil, err
	}
	if recovered {
		logger.Warn("configuration invalid, factory defaults restored")
	}
	return &Dispatcher{
		rec:      rec,
		dev:      dev,
		hw:       hw,
		prompter: prompt.New(hw.Panel, hw.Input),
		timeouts: opts.Timeouts,
		songs:    opts.Songs,
		log:      logger,
	}, nil
}

// Record returns a copy of the current configuration.
func (d *Dispatcher) Record() settings.Record {
	return d.rec
}

// commit persists the record after a confirmed edit. On failure the
// in-memory copy is reloaded so it never drifts from storage.
func (d *Dispatcher) commit(what string) bool {
	if err := settings.Persist(d.dev, &d.rec); err != nil {
		d.log.Error("persist failed", "field", what, "err", err)
		if rec, _, lerr := settings.Load(d.dev); lerr == nil {
			d.rec = rec
		}
		return false
	}
	d.log.Debug("committed", "field", what)
	return true
}

func (d *Dispatcher) cancelled(screen string) bool {
	d.log.Debug("cancelled", "screen", screen)
	return false
}

// Settings opens the settings menu and runs the chosen screen. It returns
// once the screen completes or is cancelled.
func (d *Dispatcher) Settings(ctx context.Context) {
	d.hw.Panel.SetBrightness(int(settings.BrightnessMax))
	defer func() { d.applyBrightness(d.rec.Brightness) }()

	sel := d.prompter.Select(ctx, prompt.SelectSpec{
		Items:   itemLabels[:],
		Initial: int(ItemAlarm),
		Mode:    prompt.ModeScroll,
	}, d.timeouts.Menu, nil)
	if sel == prompt.Cancelled {
		return
	}
	item := Item(sel)
	d.log.Debug("menu", "item", strings.TrimSpace(item.String()))

	switch item {
	case ItemAlarm:
		d.alarmScreen(ctx)
	case ItemBrightness:
		if d.setBrightness(ctx) && d.rec.Brightness == settings.BrightnessAuto {
			if d.setGain(ctx) {
				d.setOffset(ctx)
			}
		}
	case ItemConfig:
		d.configScreen(ctx)
	case ItemBlank:
		d.setBlank(ctx)
	case ItemTime:
		d.setTime(ctx)
	case ItemDate:
		d.setDate(ctx)
	case ItemMusic:
		d.setMusic(ctx, &d.rec.MusicTimer)
	case ItemTimer:
		d.setTimer(ctx)
	}
}

// configScreen edits the general options in order; the phrase is only
// reached once every option before it was confirmed.
func (d *Dispatcher) configScreen(ctx context.Context) bool {
	steps := []func(context.Context) bool{
		d.setTimeFormat,
		d.setDateFormat,
		d.setTempUnit,
		d.setNoise,
		d.setBattery,
		d.setEffect,
		d.setPhrase,
	}
	for _, step := range steps {
		if !step(ctx) {
			return false
		}
	}
	return true
}

// lowBatteryPercent is the charge below which battery dimming applies.
const lowBatteryPercent = 20

// ApplyBrightness drives the panel at the configured brightness. With
// battery dimming on, a low battery holds the panel at the minimum level.
func (d *Dispatcher) ApplyBrightness() {
	if d.rec.Battery && BatteryPercent(d.hw.Sensors.BatteryMillivolts()) < lowBatteryPercent {
		d.hw.Panel.SetBrightness(int(settings.BrightnessMin))
		return
	}
	d.applyBrightness(d.rec.Brightness)
}

// applyBrightness drives the panel for a brightness mode, reading the
// light sensor for automatic mode.
func (d *Dispatcher) applyBrightness(b settings.Brightness) {
	if b == settings.BrightnessAuto {
		d.hw.Panel.SetBrightness(d.sensorLevel())
		return
	}
	d.hw.Panel.SetBrightness(int(b))
}

func (d *Dispatcher) sensorLevel() int {
	return d.rec.AutoLevel(d.hw.Sensors.LightReading())
}
