package sim

import (
	"context"
	"testing"
	"time"

	"github.com/verte-zerg/nixie/internal/chrono"
	"github.com/verte-zerg/nixie/internal/menu"
	"github.com/verte-zerg/nixie/internal/prompt"
	"github.com/verte-zerg/nixie/internal/settings"
)

// monday is 2024-03-18 07:30:00 UTC.
var monday = time.Date(2024, time.March, 18, 7, 30, 0, 0, time.UTC)

func newAppliance(t *testing.T, rec *settings.Record, now time.Time) (*Appliance, Devices) {
	t.Helper()
	mem := settings.NewMemory(256)
	if rec != nil {
		if err := settings.Persist(mem, rec); err != nil {
			t.Fatalf("persist: %v", err)
		}
	}
	dev := NewDevices(DeviceOptions{Celsius: 20, Light: 160, Millivolts: 3000, SongLength: time.Minute})
	dev.Clock.now = fixedNow(now)
	dev.Audio.now = fixedNow(now)
	dev.Countdown.now = fixedNow(now)
	d, err := menu.New(mem, dev.Hardware(), menu.Options{Songs: 5})
	if err != nil {
		t.Fatalf("new dispatcher: %v", err)
	}
	return NewAppliance(d, dev, 10*time.Millisecond, nil), dev
}

func TestFace(t *testing.T) {
	rec := settings.Default()
	now := chrono.DateTime{Date: chrono.Date{Year: 24, Month: 3, Day: 18}, Hour: 15, Minute: 4, Second: 5}
	if got := Face(rec, now, 0); got != "150405" {
		t.Fatalf("24h face: %q", got)
	}
	rec.TimeFormat = chrono.Hour12
	if got := Face(rec, now, 0); got != "030405" {
		t.Fatalf("12h face: %q", got)
	}

	now.Second = 31
	rec.Effect = settings.EffectDate
	if got := Face(rec, now, 0); got != "180324" {
		t.Fatalf("date effect in D-M-Y: %q", got)
	}
	rec.Effect = settings.EffectPhrase
	if got := Face(rec, now, 0); got != settings.DefaultPhrase {
		t.Fatalf("phrase effect: %q", got)
	}
	now.Second = 0
	rec.Effect = settings.EffectSpiral
	if got := Face(rec, now, 7); got != "789012" {
		t.Fatalf("spiral effect: %q", got)
	}
}

func TestRefreshRingsAlarm(t *testing.T) {
	rec := settings.Default()
	rec.Alarms[0].Time = chrono.Seconds(7, 30, 0)
	rec.Alarms[0].Song = 3
	rec.Alarms[0].SetDay(time.Monday, true)
	a, dev := newAppliance(t, &rec, monday)

	a.refresh()

	if song, ok := dev.Audio.Song(); !ok || song != 3 {
		t.Fatalf("expected alarm song 3, got %d %v", song, ok)
	}
	dev.Audio.Stop()
	a.refresh()
	if dev.Audio.Playing() {
		t.Fatalf("alarm should ring once per second")
	}
}

func TestRefreshSkipsAlarmOnOtherDays(t *testing.T) {
	rec := settings.Default()
	rec.Alarms[0].Time = chrono.Seconds(7, 30, 0)
	rec.Alarms[0].SetDay(time.Tuesday, true)
	a, dev := newAppliance(t, &rec, monday)

	a.refresh()

	if dev.Audio.Playing() {
		t.Fatalf("alarm rang on the wrong day")
	}
}

func TestRefreshBlanksInsideWindow(t *testing.T) {
	rec := settings.Default()
	rec.BlankBegin = chrono.Seconds(23, 0, 0)
	rec.BlankEnd = chrono.Seconds(8, 0, 0)
	a, dev := newAppliance(t, &rec, monday)

	a.refresh()
	if !dev.Panel.Snapshot().Blank {
		t.Fatalf("07:30 is inside 23:00-08:00")
	}

	dev.Clock.now = fixedNow(monday.Add(time.Hour))
	a.refresh()
	f := dev.Panel.Snapshot()
	if f.Blank || f.String() != "083000" {
		t.Fatalf("expected face 083000, got %q blank=%v", f.String(), f.Blank)
	}
}

func TestRefreshCountdown(t *testing.T) {
	rec := settings.Default()
	rec.MusicTimer = 2
	a, dev := newAppliance(t, &rec, monday)

	dev.Countdown.Start(0, 5, 0)
	a.refresh()
	if got := dev.Panel.Snapshot().String(); got != "000500" {
		t.Fatalf("expected 000500, got %q", got)
	}

	dev.Countdown.now = fixedNow(monday.Add(5 * time.Minute))
	a.refresh()
	if song, ok := dev.Audio.Song(); !ok || song != 2 {
		t.Fatalf("expected timer song 2, got %d %v", song, ok)
	}
	if _, running := dev.Countdown.Remaining(); running {
		t.Fatalf("finished countdown should be cleared")
	}
}

func TestRefreshAppliesAutoBrightness(t *testing.T) {
	a, dev := newAppliance(t, nil, monday)
	dev.Sensors.AdjustLight(-20)

	a.refresh()

	if got := dev.Panel.Snapshot().Brightness; got != 1 {
		t.Fatalf("dark room should still show level 1, got %d", got)
	}
}

func TestRunOpensInfoOnSelect(t *testing.T) {
	a, dev := newAppliance(t, nil, monday)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	dev.Keys.Send(prompt.SignalSelect)
	deadline := time.Now().Add(2 * time.Second)
	for dev.Panel.Snapshot().String() != "0680`F" {
		if time.Now().After(deadline) {
			cancel()
			t.Fatalf("info screen not shown, panel %q", dev.Panel.Snapshot().String())
		}
		time.Sleep(5 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("run did not stop")
	}
}

func TestKeyClickFollowsNoise(t *testing.T) {
	for _, noise := range []bool{true, false} {
		rec := settings.Default()
		rec.Noise = noise
		_, dev := newAppliance(t, &rec, monday)

		dev.Keys.Send(prompt.SignalIncrement)
		dev.Keys.Await(context.Background(), 10*time.Millisecond)

		want := 0
		if noise {
			want = 1
		}
		if got := dev.Audio.Clicks(); got != want {
			t.Fatalf("noise %v: expected %d clicks, got %d", noise, want, got)
		}
	}
}

func TestKeyClickSparesPlayingSong(t *testing.T) {
	a, dev := newAppliance(t, nil, monday)
	dev.Audio.Play(1)

	a.handle(context.Background(), dev.Keys.take(prompt.SignalSelect))

	if dev.Audio.Clicks() != 0 {
		t.Fatalf("a ringing song should not click")
	}
	if dev.Audio.Playing() {
		t.Fatalf("any key should silence the song")
	}
}
