package menu

import (
	"context"
	"time"

	"github.com/verte-zerg/nixie/internal/chrono"
	"github.com/verte-zerg/nixie/internal/prompt"
	"github.com/verte-zerg/nixie/internal/settings"
)

const doneIndex = 7

// alarmScreen picks an alarm and its state; an enabled alarm then gets
// its days, time and song.
func (d *Dispatcher) alarmScreen(ctx context.Context) bool {
	alarm, enabling, ok := d.setAlarmState(ctx)
	if !ok || !enabling {
		return ok
	}
	if !d.setAlarmDays(ctx, alarm) {
		return false
	}
	if !d.setAlarmTime(ctx, alarm) {
		return false
	}
	return d.setMusic(ctx, &d.rec.Alarms[alarm].Song)
}

func (d *Dispatcher) setAlarmState(ctx context.Context) (alarm int, enabling, ok bool) {
	items := make([]string, settings.AlarmCount)
	for i, a := range d.rec.Alarms {
		items[i] = alarmLabels[i][boolIndex(a.Enabled)]
	}
	alarm = d.prompter.Select(ctx, prompt.SelectSpec{
		Items: items,
		Mode:  prompt.ModeScroll,
	}, d.timeouts.Select, nil)
	if alarm == prompt.Cancelled {
		return 0, false, d.cancelled("alarm")
	}

	a := &d.rec.Alarms[alarm]
	state := d.selectState(ctx, "", a.Enabled)
	if state == prompt.Cancelled {
		return 0, false, d.cancelled("alarm state")
	}
	if state == 1 {
		a.Arm()
	} else {
		a.Disarm()
	}
	if !d.commit("alarm state") {
		return 0, false, false
	}
	return alarm, state == 1, true
}

// setAlarmDays walks the weekday list; each chosen day gets its own
// enable prompt and the list reopens on the following entry until -Done-.
func (d *Dispatcher) setAlarmDays(ctx context.Context, alarm int) bool {
	a := &d.rec.Alarms[alarm]
	sel := -1
	for {
		sel = d.prompter.Select(ctx, prompt.SelectSpec{
			Items:   weekdayLabels,
			Initial: sel + 1,
			Mode:    prompt.ModeScroll,
		}, d.timeouts.Select, nil)
		if sel == prompt.Cancelled {
			return d.cancelled("alarm days")
		}
		if sel == doneIndex {
			return true
		}

		day := time.Weekday(sel)
		state := d.selectState(ctx, "", a.Days.Has(day))
		if state == prompt.Cancelled {
			return d.cancelled("alarm days")
		}
		a.SetDay(day, state == 1)
		if !d.commit("alarm days") {
			return false
		}
	}
}

func (d *Dispatcher) setAlarmTime(ctx context.Context, alarm int) bool {
	a := &d.rec.Alarms[alarm]
	h, m, _ := chrono.Split(a.Time)
	out, ok := d.editClock(ctx, " Set  ", []int{1, 3}, []int{h, m})
	if !ok {
		return d.cancelled("alarm time")
	}
	a.Time = chrono.Seconds(out[0], out[1], 0)
	return d.commit("alarm time")
}
