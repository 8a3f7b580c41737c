// Package chrono converts clock values between their stored and edited forms.
package chrono

// SecondsPerDay is the exclusive upper bound of a second-of-day value.
const SecondsPerDay = 86400

// TimeFormat selects how hours are presented and edited.
type TimeFormat uint8

const (
	Hour24 TimeFormat = iota
	Hour12
)

// Cycle is the half of the day an hour falls in.
type Cycle uint8

const (
	AM Cycle = iota
	PM
)

// Seconds returns the second-of-day for the given wall clock time.
func Seconds(hour, minute, second int) uint32 {
	return uint32(hour*3600 + minute*60 + second)
}

// Split decomposes a second-of-day into hour, minute and second.
func Split(seconds uint32) (hour, minute, second int) {
	seconds %= SecondsPerDay
	hour = int(seconds / 3600)
	minute = int(seconds/60) % 60
	second = int(seconds % 60)
	return hour, minute, second
}

// CycleOf reports whether a 24-hour value is before or after noon.
func CycleOf(hour int) Cycle {
	if hour < 12 {
		return AM
	}
	return PM
}

// To12h maps a 24-hour value onto the 1..12 dial.
func To12h(hour int) int {
	hour %= 12
	if hour == 0 {
		return 12
	}
	return hour
}

// To24h rebuilds a 24-hour value from a 1..12 hour and its cycle.
func To24h(hour int, cycle Cycle) int {
	hour %= 12
	if cycle == PM {
		hour += 12
	}
	return hour
}

// DisplayHour formats a 24-hour value for the configured format.
func DisplayHour(hour int, format TimeFormat) int {
	if format == Hour12 {
		return To12h(hour)
	}
	return hour
}

// HourBounds returns the inclusive hour range edited under format.
func HourBounds(format TimeFormat) (lower, upper int) {
	if format == Hour12 {
		return 1, 12
	}
	return 0, 23
}

// Fahrenheit converts a Celsius reading.
func Fahrenheit(celsius float64) float64 {
	return celsius*9/5 + 32
}

func (f TimeFormat) String() string {
	if f == Hour12 {
		return "12h"
	}
	return "24h"
}
