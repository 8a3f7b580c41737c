package chrono

import "testing"

func TestSecondsSplitRoundTrip(t *testing.T) {
	if got := Seconds(2, 15, 0); got != 8100 {
		t.Fatalf("expected 8100, got %d", got)
	}
	for _, s := range []uint32{0, 59, 3600, 45296, SecondsPerDay - 1} {
		h, m, sec := Split(s)
		if back := Seconds(h, m, sec); back != s {
			t.Fatalf("split(%d) = %d:%d:%d, rebuilt %d", s, h, m, sec, back)
		}
	}
}

func TestTo12h(t *testing.T) {
	cases := map[int]int{0: 12, 1: 1, 11: 11, 12: 12, 13: 1, 23: 11}
	for in, want := range cases {
		if got := To12h(in); got != want {
			t.Fatalf("To12h(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestHourRoundTripAllHours(t *testing.T) {
	for h := 0; h < 24; h++ {
		got := To24h(To12h(h), CycleOf(h))
		if got != h {
			t.Fatalf("hour %d round-tripped to %d", h, got)
		}
	}
}

func TestDisplayHourAndBounds(t *testing.T) {
	if DisplayHour(0, Hour24) != 0 || DisplayHour(0, Hour12) != 12 {
		t.Fatalf("unexpected display hour for midnight")
	}
	if l, u := HourBounds(Hour12); l != 1 || u != 12 {
		t.Fatalf("unexpected 12h bounds %d-%d", l, u)
	}
	if l, u := HourBounds(Hour24); l != 0 || u != 23 {
		t.Fatalf("unexpected 24h bounds %d-%d", l, u)
	}
}

func TestDatePermutationRoundTrip(t *testing.T) {
	d := Date{Year: 18, Month: 8, Day: 14}
	for f := DateFormat(0); f < DateFormatCount; f++ {
		if got := f.Unpermute(f.Permute(d)); got != d {
			t.Fatalf("format %d: got %+v want %+v", f, got, d)
		}
	}
}

func TestDatePermutationOrder(t *testing.T) {
	d := Date{Year: 24, Month: 2, Day: 29}
	if got := MonthDayYear.Permute(d); got != [3]int{2, 29, 24} {
		t.Fatalf("M-D-Y order: %v", got)
	}
	if got := DayMonthYear.Permute(d); got != [3]int{29, 2, 24} {
		t.Fatalf("D-M-Y order: %v", got)
	}
	lower, upper := DayMonthYear.Bounds()
	if lower != [3]int{1, 1, 0} || upper != [3]int{31, 12, 99} {
		t.Fatalf("D-M-Y bounds: %v %v", lower, upper)
	}
}

func TestFahrenheit(t *testing.T) {
	if got := Fahrenheit(100); got != 212 {
		t.Fatalf("expected 212, got %v", got)
	}
}
