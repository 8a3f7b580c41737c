package menu

import (
	"context"

	"github.com/verte-zerg/nixie/internal/chrono"
	"github.com/verte-zerg/nixie/internal/prompt"
	"github.com/verte-zerg/nixie/internal/settings"
)

const (
	batteryMinMillivolts = 2400
	batteryMaxMillivolts = 3100

	infoScreens     = 4
	decimalPointPos = 2
)

// Info steps through temperature, battery, revision and factory reset,
// one screen per button press. It returns when the user stops pressing.
func (d *Dispatcher) Info(ctx context.Context) {
	for screen := 0; screen < infoScreens; screen++ {
		if screen > 0 && !d.awaitSelect(ctx) {
			return
		}
		d.hw.Panel.SetIndicator(decimalPointPos, false)
		switch screen {
		case 0:
			d.showTemperature()
		case 1:
			d.showBattery()
		case 2:
			d.showRevision()
		case 3:
			// The outcome does not change what follows.
			d.restoreDefaults(ctx)
		}
	}
}

func (d *Dispatcher) awaitSelect(ctx context.Context) bool {
	for {
		switch d.hw.Input.Await(ctx, d.timeouts.Info) {
		case prompt.SignalSelect:
			return true
		case prompt.SignalNone:
			return false
		}
	}
}

func (d *Dispatcher) showTemperature() {
	temp := d.hw.Clock.Temperature()
	unit := byte('C')
	if d.rec.TempUnit == settings.Fahrenheit {
		temp = chrono.Fahrenheit(temp)
		unit = 'F'
	}
	p := d.hw.Panel
	p.ShowValue(int(temp * 1000))
	p.SetGlyph(4, '`')
	p.SetGlyph(5, unit)
	p.SetIndicator(decimalPointPos, true)
}

// BatteryPercent maps a battery reading onto 0..100.
func BatteryPercent(millivolts int) int {
	pct := 100 * (millivolts - batteryMinMillivolts) / (batteryMaxMillivolts - batteryMinMillivolts)
	switch {
	case pct < 0:
		return 0
	case pct > 100:
		return 100
	}
	return pct
}

func (d *Dispatcher) showBattery() {
	p := d.hw.Panel
	p.ShowValue(BatteryPercent(d.hw.Sensors.BatteryMillivolts()))
	p.SetGlyph(0, 'B')
	p.SetGlyph(1, 'a')
	p.SetGlyph(2, 't')
}

func (d *Dispatcher) showRevision() {
	d.hw.Panel.ShowText("Rev   ")
	d.hw.Panel.SetGlyph(4, '@'+Version)
}

// restoreDefaults asks for confirmation and writes the factory record.
func (d *Dispatcher) restoreDefaults(ctx context.Context) bool {
	sel := d.prompter.Select(ctx, prompt.SelectSpec{
		Title: "Reset ",
		Items: resetLabels,
	}, d.timeouts.Select, nil)
	if sel <= 0 {
		return d.cancelled("reset")
	}
	d.rec = settings.Default()
	if !d.commit("factory reset") {
		return false
	}
	rec, _, err := settings.Load(d.dev)
	if err != nil {
		d.log.Error("reload after reset failed", "err", err)
		return false
	}
	d.rec = rec
	d.log.Info("factory defaults restored")
	return true
}
