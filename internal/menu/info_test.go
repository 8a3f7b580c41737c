package menu

import (
	"context"
	"testing"

	"github.com/verte-zerg/nixie/internal/settings"
)

func TestBatteryPercent(t *testing.T) {
	tests := map[int]int{
		2000: 0,
		2400: 0,
		2750: 50,
		3100: 100,
		3600: 100,
	}
	for mv, want := range tests {
		if got := BatteryPercent(mv); got != want {
			t.Fatalf("BatteryPercent(%d) = %d, want %d", mv, got, want)
		}
	}
}

func TestInfoTemperature(t *testing.T) {
	tests := []struct {
		unit  settings.TempUnit
		value int
		glyph byte
	}{
		{settings.Celsius, 22500, 'C'},
		{settings.Fahrenheit, 72500, 'F'},
	}
	for _, tt := range tests {
		rec := settings.Default()
		rec.TempUnit = tt.unit
		r := newRig(t, &rec)

		r.d.Info(context.Background())

		if len(r.panel.values) != 1 || r.panel.values[0] != tt.value {
			t.Fatalf("expected value %d, got %v", tt.value, r.panel.values)
		}
		if r.panel.glyphs[4] != '`' || r.panel.glyphs[5] != tt.glyph {
			t.Fatalf("unexpected unit glyphs %q%q", r.panel.glyphs[4], r.panel.glyphs[5])
		}
		if !r.panel.indicators[decimalPointPos] {
			t.Fatalf("decimal point should be lit")
		}
	}
}

func TestInfoWalksScreensAndResets(t *testing.T) {
	rec := settings.Default()
	rec.Gain = 42
	r := newRig(t, &rec)
	r.sensors.millivolt = 2750

	// Rotation is ignored between screens.
	r.input.push(inc, dec, sel, sel, sel, inc, sel)
	r.d.Info(context.Background())

	if !equalInts(r.panel.values, []int{72500, 50}) {
		t.Fatalf("unexpected values %v", r.panel.values)
	}
	if !contains(r.panel.texts, "Rev   ") || r.panel.glyphs[4] != 'E' {
		t.Fatalf("revision screen not shown")
	}
	if r.d.Record().Gain != 10 || r.stored(t).Gain != 10 {
		t.Fatalf("factory reset did not restore gain")
	}
}

func TestInfoResetCancel(t *testing.T) {
	rec := settings.Default()
	rec.Gain = 42
	r := newRig(t, &rec)

	r.input.push(sel, sel, sel, sel)
	r.d.Info(context.Background())

	if r.stored(t).Gain != 42 {
		t.Fatalf("cancel must keep the stored record")
	}
}
