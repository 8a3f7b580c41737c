package settings

import (
	"strings"
	"time"
)

// AlarmCount is the number of alarm slots in a record.
const AlarmCount = 3

// Days is the set of weekdays an alarm rings on. Bit n+1 holds weekday n
// (Sunday is 0); bit 0 is reserved and always clear.
type Days uint8

const reservedDayBit Days = 1

// AllDays has every weekday set.
const AllDays Days = 0xFE

func dayBit(day time.Weekday) Days {
	return 1 << (uint(day) + 1)
}

// Has reports whether day is in the set.
func (d Days) Has(day time.Weekday) bool {
	return d&dayBit(day) != 0
}

// With returns the set with day switched on or off.
func (d Days) With(day time.Weekday, on bool) Days {
	var state Days
	if on {
		state = 1
	}
	return d ^ ((-state ^ d) & dayBit(day))
}

// Empty reports whether no weekday is set.
func (d Days) Empty() bool {
	return d&^reservedDayBit == 0
}

func (d Days) String() string {
	if d.Empty() {
		return "-"
	}
	var names []string
	for day := time.Sunday; day <= time.Saturday; day++ {
		if d.Has(day) {
			names = append(names, day.String()[:3])
		}
	}
	return strings.Join(names, ",")
}

// Alarm is one persisted alarm slot.
type Alarm struct {
	Enabled bool
	Song    uint8
	Days    Days
	// Time is seconds since midnight.
	Time uint32
}

// SetDay switches one weekday and re-arms the alarm from the result;
// an alarm without days is never enabled.
func (a *Alarm) SetDay(day time.Weekday, on bool) {
	a.Days = a.Days.With(day, on)
	a.Enabled = !a.Days.Empty()
}

// Arm enables the alarm if it has at least one day.
func (a *Alarm) Arm() {
	a.Enabled = !a.Days.Empty()
}

// Disarm disables the alarm and keeps its days.
func (a *Alarm) Disarm() {
	a.Enabled = false
}

func (a *Alarm) normalize() {
	a.Days &^= reservedDayBit
	a.Time %= secondsPerDay
	if a.Days.Empty() {
		a.Enabled = false
	}
}
