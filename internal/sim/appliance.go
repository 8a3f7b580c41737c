package sim

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/verte-zerg/nixie/internal/chrono"
	"github.com/verte-zerg/nixie/internal/menu"
	"github.com/verte-zerg/nixie/internal/prompt"
)

// pmIndicator is lit on the idle face for afternoon hours in 12 hour mode.
const pmIndicator = 0

// Devices is a full set of simulated hardware.
type Devices struct {
	Panel     *Panel
	Keys      *Keys
	Clock     *Clock
	Audio     *Audio
	Sensors   *Sensors
	Countdown *Countdown
}

// DeviceOptions seed the simulated readings.
type DeviceOptions struct {
	Celsius    float64
	Light      int
	Millivolts int
	SongLength time.Duration
}

func NewDevices(opts DeviceOptions) Devices {
	return Devices{
		Panel:     NewPanel(),
		Keys:      NewKeys(),
		Clock:     NewClock(opts.Celsius),
		Audio:     NewAudio(opts.SongLength),
		Sensors:   NewSensors(opts.Light, opts.Millivolts),
		Countdown: NewCountdown(),
	}
}

// Hardware exposes the devices to the menu dispatcher.
func (d Devices) Hardware() menu.Hardware {
	return menu.Hardware{
		Panel:     d.Panel,
		Input:     d.Keys,
		Clock:     d.Clock,
		Audio:     d.Audio,
		Sensors:   d.Sensors,
		Countdown: d.Countdown,
	}
}

// Appliance is the main loop of the clock: it refreshes the idle face,
// rings alarms and opens the menu screens on input.
type Appliance struct {
	menu *menu.Dispatcher
	dev  Devices
	tick time.Duration
	log  *log.Logger

	frame     int
	lastCheck chrono.DateTime
}

func NewAppliance(dispatcher *menu.Dispatcher, dev Devices, tick time.Duration, logger *log.Logger) *Appliance {
	if tick <= 0 {
		tick = 100 * time.Millisecond
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	a := &Appliance{menu: dispatcher, dev: dev, tick: tick, log: logger}
	dev.Keys.OnSignal(a.feedback)
	return a
}

// Run drives the appliance until ctx is done. Screens run on this
// goroutine, so the dispatcher is never used concurrently.
func (a *Appliance) Run(ctx context.Context) error {
	ticker := time.NewTicker(a.tick)
	defer ticker.Stop()

	a.refresh()
	for {
		select {
		case <-ctx.Done():
			return nil
		case sig := <-a.dev.Keys.signals:
			a.handle(ctx, a.dev.Keys.take(sig))
		case r := <-a.dev.Keys.requests:
			a.open(ctx, r)
		case <-ticker.C:
			a.refresh()
		}
	}
}

// feedback clicks on every key edge while audible feedback is on. A
// playing song is not interrupted.
func (a *Appliance) feedback() {
	if a.menu.Record().Noise && !a.dev.Audio.Playing() {
		a.dev.Audio.Click()
	}
}

func (a *Appliance) handle(ctx context.Context, sig prompt.Signal) {
	if a.dev.Audio.Playing() {
		a.dev.Audio.Stop()
		a.log.Debug("audio silenced")
		return
	}
	switch sig {
	case prompt.SignalIncrement, prompt.SignalDecrement:
		a.open(ctx, RequestSettings)
	case prompt.SignalSelect:
		a.open(ctx, RequestInfo)
	}
}

func (a *Appliance) open(ctx context.Context, r Request) {
	switch r {
	case RequestSettings:
		a.log.Debug("opening settings")
		a.menu.Settings(ctx)
	case RequestInfo:
		a.log.Debug("opening info")
		a.menu.Info(ctx)
	}
	a.dev.Panel.ShowTitle("")
	a.dev.Panel.SetBlink(0, 0)
	// Requests made while the screen was open are stale.
	select {
	case <-a.dev.Keys.requests:
	default:
	}
	a.refresh()
}

func (a *Appliance) refresh() {
	rec := a.menu.Record()
	t := a.dev.Clock.Time()
	now := dateTime(t)
	a.frame++

	if now != a.lastCheck {
		a.lastCheck = now
		for i, alarm := range rec.Alarms {
			if alarm.Enabled && alarm.Days.Has(t.Weekday()) && alarm.Time == now.SecondOfDay() {
				a.log.Info("alarm ringing", "alarm", i+1, "song", alarm.Song)
				a.dev.Audio.Play(int(alarm.Song))
			}
		}
	}

	a.menu.ApplyBrightness()
	p := a.dev.Panel
	if left, running := a.dev.Countdown.Remaining(); running {
		if left == 0 {
			a.dev.Countdown.Clear()
			a.log.Info("countdown finished", "song", rec.MusicTimer)
			a.dev.Audio.Play(int(rec.MusicTimer))
		} else {
			secs := int(left.Round(time.Second) / time.Second)
			p.ShowText(fmt.Sprintf("%02d%02d%02d", secs/3600, secs/60%60, secs%60))
			return
		}
	}

	if rec.Blanked(now.SecondOfDay()) {
		p.SetBlank(true)
		return
	}
	p.ShowText(Face(rec, now, a.frame))
	if rec.TimeFormat == chrono.Hour12 && chrono.CycleOf(now.Hour) == chrono.PM {
		p.SetIndicator(pmIndicator, true)
	}
}
