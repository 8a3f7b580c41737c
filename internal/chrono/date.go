package chrono

// DateFormat is the field ordering used to show and edit a date.
type DateFormat uint8

const (
	YearMonthDay DateFormat = iota
	MonthDayYear
	DayMonthYear
)

// DateFormatCount is the number of supported orderings.
const DateFormatCount = 3

// Date is a calendar date as kept by the real-time clock; Year is 0..99.
type Date struct {
	Year  int
	Month int
	Day   int
}

// DateTime is one reading of the real-time clock.
type DateTime struct {
	Date
	Hour   int
	Minute int
	Second int
}

// SecondOfDay returns the time-of-day part of the reading.
func (dt DateTime) SecondOfDay() uint32 {
	return Seconds(dt.Hour, dt.Minute, dt.Second)
}

type dateLayout struct {
	// order[i] is the field shown at position i: 0 year, 1 month, 2 day.
	order [3]int
	lower [3]int
	upper [3]int
}

var dateLayouts = [DateFormatCount]dateLayout{
	YearMonthDay: {order: [3]int{0, 1, 2}, lower: [3]int{0, 1, 1}, upper: [3]int{99, 12, 31}},
	MonthDayYear: {order: [3]int{1, 2, 0}, lower: [3]int{1, 1, 0}, upper: [3]int{12, 31, 99}},
	DayMonthYear: {order: [3]int{2, 1, 0}, lower: [3]int{1, 1, 0}, upper: [3]int{31, 12, 99}},
}

func (f DateFormat) layout() dateLayout {
	if int(f) >= DateFormatCount {
		return dateLayouts[YearMonthDay]
	}
	return dateLayouts[f]
}

// Permute orders the date fields as they appear on the display.
func (f DateFormat) Permute(d Date) [3]int {
	ymd := [3]int{d.Year, d.Month, d.Day}
	var out [3]int
	for i, field := range f.layout().order {
		out[i] = ymd[field]
	}
	return out
}

// Unpermute maps displayed field values back to a date.
func (f DateFormat) Unpermute(values [3]int) Date {
	var ymd [3]int
	for i, field := range f.layout().order {
		ymd[field] = values[i]
	}
	return Date{Year: ymd[0], Month: ymd[1], Day: ymd[2]}
}

// Bounds returns the per-position inclusive limits for editing a date.
func (f DateFormat) Bounds() (lower, upper [3]int) {
	l := f.layout()
	return l.lower, l.upper
}

func (f DateFormat) String() string {
	switch f {
	case YearMonthDay:
		return "Y-M-D"
	case MonthDayYear:
		return "M-D-Y"
	case DayMonthYear:
		return "D-M-Y"
	}
	return "unknown"
}
