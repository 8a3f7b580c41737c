package menu

import (
	"context"

	"github.com/verte-zerg/nixie/internal/chrono"
	"github.com/verte-zerg/nixie/internal/prompt"
	"github.com/verte-zerg/nixie/internal/settings"
)

// maxSongs is what a two digit field can address.
const maxSongs = 100

// defaultTimer is the countdown preset, 00:05:00.
var defaultTimer = [3]int{0, 5, 0}

// choose runs a list prompt for one option and commits the choice.
func (d *Dispatcher) choose(ctx context.Context, what, title string, labels []string, current int, set func(int)) bool {
	sel := d.prompter.Select(ctx, prompt.SelectSpec{
		Title:   title,
		Items:   labels,
		Initial: current,
	}, d.timeouts.Select, nil)
	if sel == prompt.Cancelled {
		return d.cancelled(what)
	}
	set(sel)
	return d.commit(what)
}

// selectState asks for Dsable/Enable and returns 0, 1 or prompt.Cancelled.
func (d *Dispatcher) selectState(ctx context.Context, title string, current bool) int {
	initial := 0
	if current {
		initial = 1
	}
	return d.prompter.Select(ctx, prompt.SelectSpec{
		Title:   title,
		Items:   stateLabels,
		Initial: initial,
		Mode:    prompt.ModeStatic,
	}, d.timeouts.Select, nil)
}

// editClock edits hour, minute and optionally second fields at the given
// tube positions. In 12 hour mode the hour is edited on the 1..12 dial and
// an AM/PM choice follows. The returned hour is always 24 hour.
func (d *Dispatcher) editClock(ctx context.Context, title string, positions, values []int) ([]int, bool) {
	format := d.rec.TimeFormat
	cycle := chrono.CycleOf(values[0])
	hourLower, hourUpper := chrono.HourBounds(format)

	upper := []int{hourUpper, 59, 59}
	fields := make([]prompt.Field, len(values))
	for i, v := range values {
		fields[i] = prompt.Field{Position: positions[i], Digits: 2, Value: v, Upper: upper[i]}
	}
	fields[0].Lower = hourLower
	fields[0].Value = chrono.DisplayHour(values[0], format)

	out, ok := d.prompter.Value(ctx, prompt.ValueSpec{Title: title, Fields: fields}, d.timeouts.Value, nil)
	if !ok {
		return nil, false
	}
	if format == chrono.Hour12 {
		sel := d.prompter.Select(ctx, prompt.SelectSpec{
			Title:   "Cycle ",
			Items:   cycleLabels,
			Initial: int(cycle),
		}, d.timeouts.Select, nil)
		if sel == prompt.Cancelled {
			return nil, false
		}
		out[0] = chrono.To24h(out[0], chrono.Cycle(sel))
	}
	return out, true
}

func (d *Dispatcher) editNumber(ctx context.Context, title string, value, lower, upper int) (int, bool) {
	out, ok := d.prompter.Value(ctx, prompt.ValueSpec{
		Title:  title,
		Fields: []prompt.Field{{Position: 2, Digits: 2, Value: value, Lower: lower, Upper: upper}},
	}, d.timeouts.Value, nil)
	if !ok {
		return 0, false
	}
	return out[0], true
}

func (d *Dispatcher) setBrightness(ctx context.Context) bool {
	d.applyBrightness(d.rec.Brightness)
	sel := d.prompter.Select(ctx, prompt.SelectSpec{
		Title:   "Bright",
		Items:   brightnessLabels,
		Initial: int(d.rec.Brightness),
	}, d.timeouts.Select, func(ev prompt.Event, v int) bool {
		switch ev {
		case prompt.EventIncrement, prompt.EventDecrement:
			d.applyBrightness(settings.Brightness(v))
		case prompt.EventTimeout:
			d.applyBrightness(d.rec.Brightness)
		}
		return false
	})
	if sel == prompt.Cancelled {
		return d.cancelled("brightness")
	}
	d.rec.Brightness = settings.Brightness(sel)
	return d.commit("brightness")
}

func (d *Dispatcher) setGain(ctx context.Context) bool {
	v, ok := d.editNumber(ctx, " Gain ", int(d.rec.Gain), settings.GainMin, settings.GainMax)
	if !ok {
		return d.cancelled("gain")
	}
	d.rec.Gain = uint8(v)
	return d.commit("gain")
}

func (d *Dispatcher) setOffset(ctx context.Context) bool {
	v, ok := d.editNumber(ctx, "Offset", int(d.rec.Offset), settings.OffsetMin, settings.OffsetMax)
	if !ok {
		return d.cancelled("offset")
	}
	d.rec.Offset = uint8(v)
	return d.commit("offset")
}

func (d *Dispatcher) setTimeFormat(ctx context.Context) bool {
	return d.choose(ctx, "time format", " Hour ", timeFormatLabels, int(d.rec.TimeFormat), func(v int) {
		d.rec.TimeFormat = chrono.TimeFormat(v)
	})
}

func (d *Dispatcher) setDateFormat(ctx context.Context) bool {
	return d.choose(ctx, "date format", " Date ", dateFormatLabels, int(d.rec.DateFormat), func(v int) {
		d.rec.DateFormat = chrono.DateFormat(v)
	})
}

func (d *Dispatcher) setTempUnit(ctx context.Context) bool {
	return d.choose(ctx, "temperature unit", " Temp ", tempUnitLabels, int(d.rec.TempUnit), func(v int) {
		d.rec.TempUnit = settings.TempUnit(v)
	})
}

func (d *Dispatcher) setNoise(ctx context.Context) bool {
	return d.choose(ctx, "noise", "Noise ", stateLabels, boolIndex(d.rec.Noise), func(v int) {
		d.rec.Noise = v == 1
	})
}

func (d *Dispatcher) setBattery(ctx context.Context) bool {
	return d.choose(ctx, "battery", "Battry", stateLabels, boolIndex(d.rec.Battery), func(v int) {
		d.rec.Battery = v == 1
	})
}

func (d *Dispatcher) setEffect(ctx context.Context) bool {
	return d.choose(ctx, "effect", "Effect", effectLabels, int(d.rec.Effect), func(v int) {
		d.rec.Effect = settings.Effect(v)
	})
}

func (d *Dispatcher) setPhrase(ctx context.Context) bool {
	fields := make([]prompt.Field, settings.PhraseLen)
	for i, ch := range d.rec.Phrase {
		fields[i] = prompt.Field{Position: i, Digits: 1, Value: int(ch), Lower: 32, Upper: 127}
	}
	out, ok := d.prompter.Value(ctx, prompt.ValueSpec{
		Title:      "Phrase",
		Initial:    d.rec.PhraseString(),
		Fields:     fields,
		Alphabetic: true,
	}, d.timeouts.Value, nil)
	if !ok {
		return d.cancelled("phrase")
	}
	for i, v := range out {
		d.rec.Phrase[i] = byte(v)
	}
	return d.commit("phrase")
}

// setBlank edits the power-off then power-on edge. Each edge is committed
// on its own, so cancelling the second keeps the first.
func (d *Dispatcher) setBlank(ctx context.Context) bool {
	edges := []struct {
		title string
		what  string
		value *uint32
	}{
		{"P-Off ", "blank begin", &d.rec.BlankBegin},
		{" P-On ", "blank end", &d.rec.BlankEnd},
	}
	for _, edge := range edges {
		h, m, _ := chrono.Split(*edge.value)
		out, ok := d.editClock(ctx, edge.title, []int{1, 3}, []int{h, m})
		if !ok {
			return d.cancelled(edge.what)
		}
		*edge.value = chrono.Seconds(out[0], out[1], 0)
		if !d.commit(edge.what) {
			return false
		}
	}
	return true
}

func (d *Dispatcher) setTime(ctx context.Context) bool {
	now := d.hw.Clock.Now()
	out, ok := d.editClock(ctx, " Time ", []int{0, 2, 4}, []int{now.Hour, now.Minute, now.Second})
	if !ok {
		return d.cancelled("time")
	}
	if err := d.hw.Clock.SetTime(out[0], out[1], out[2]); err != nil {
		d.log.Error("set time failed", "err", err)
		return false
	}
	d.log.Debug("clock time set", "hour", out[0], "minute", out[1], "second", out[2])
	return true
}

// setDate edits the date in the configured field order and hands it back
// to the clock as year, month, day.
func (d *Dispatcher) setDate(ctx context.Context) bool {
	format := d.rec.DateFormat
	shown := format.Permute(d.hw.Clock.Now().Date)
	lower, upper := format.Bounds()
	fields := make([]prompt.Field, len(shown))
	for i := range shown {
		fields[i] = prompt.Field{Position: 2 * i, Digits: 2, Value: shown[i], Lower: lower[i], Upper: upper[i]}
	}
	out, ok := d.prompter.Value(ctx, prompt.ValueSpec{Title: " Date ", Fields: fields}, d.timeouts.Value, nil)
	if !ok {
		return d.cancelled("date")
	}
	date := format.Unpermute([3]int{out[0], out[1], out[2]})
	if err := d.hw.Clock.SetDate(date.Year, date.Month, date.Day); err != nil {
		d.log.Error("set date failed", "err", err)
		return false
	}
	d.log.Debug("clock date set", "year", date.Year, "month", date.Month, "day", date.Day)
	return true
}

// setMusic edits a song index, previewing each song while scrolling. An
// idle timeout never cuts a preview short.
func (d *Dispatcher) setMusic(ctx context.Context, song *uint8) bool {
	songs := d.songs
	if songs > maxSongs {
		songs = maxSongs
	}
	audio := d.hw.Audio
	d.hw.Panel.SetRate(RateSlow)
	defer d.hw.Panel.SetRate(RateFast)

	out, ok := d.prompter.Value(ctx, prompt.ValueSpec{
		Title:   "Audio ",
		Initial: "set   ",
		Fields:  []prompt.Field{{Position: 4, Digits: 2, Value: int(*song), Upper: songs - 1}},
	}, d.timeouts.Value, func(ev prompt.Event, v int) bool {
		switch ev {
		case prompt.EventIncrement, prompt.EventDecrement:
			audio.Stop()
			audio.Play(v)
		case prompt.EventSelection:
			audio.Stop()
		case prompt.EventTimeout:
			if audio.Playing() {
				return true
			}
			audio.Stop()
		}
		return false
	})
	if !ok {
		return d.cancelled("music")
	}
	*song = uint8(out[0])
	return d.commit("music")
}

func (d *Dispatcher) setTimer(ctx context.Context) bool {
	fields := make([]prompt.Field, len(defaultTimer))
	upper := [3]int{23, 59, 59}
	for i, v := range defaultTimer {
		fields[i] = prompt.Field{Position: 2 * i, Digits: 2, Value: v, Upper: upper[i]}
	}
	out, ok := d.prompter.Value(ctx, prompt.ValueSpec{Title: " Set  ", Fields: fields}, d.timeouts.Value, nil)
	if !ok {
		return d.cancelled("timer")
	}
	d.hw.Countdown.Start(out[0], out[1], out[2])
	return true
}

func boolIndex(v bool) int {
	if v {
		return 1
	}
	return 0
}
