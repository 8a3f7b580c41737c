package settings

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/verte-zerg/nixie/internal/chrono"
)

func TestDefaultValidates(t *testing.T) {
	r := Default()
	if err := r.Validate(); err != nil {
		t.Fatalf("default record invalid: %v", err)
	}
	if r.PhraseString() != DefaultPhrase {
		t.Fatalf("unexpected phrase %q", r.PhraseString())
	}
	if r.DateFormat != chrono.DayMonthYear || r.TempUnit != Fahrenheit || r.Gain != 10 || r.Offset != 10 {
		t.Fatalf("unexpected defaults: %+v", r)
	}
}

func TestMarshalLayout(t *testing.T) {
	r := Default()
	r.BlankBegin = 8100
	r.Alarms[0].SetDay(time.Monday, true)
	r.Alarms[0].SetDay(time.Wednesday, true)
	r.Normalize()

	img, err := r.MarshalBinary()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if len(img) != ImageSize {
		t.Fatalf("expected %d bytes, got %d", ImageSize, len(img))
	}
	if img[0] != '$' {
		t.Fatalf("marker not first: %q", img[0])
	}
	if img[offBlankBegin] != 0xA4 || img[offBlankBegin+1] != 0x1F {
		t.Fatalf("blank begin not little-endian: % x", img[offBlankBegin:offBlankBegin+4])
	}
	if img[offAlarms] != 1 || img[offAlarms+2] != 0b00010100 {
		t.Fatalf("alarm 0 bytes: % x", img[offAlarms:offAlarms+alarmSize])
	}
	if img[offAlarmState] != 1 {
		t.Fatalf("aggregate alarm state: %08b", img[offAlarmState])
	}
	if !bytes.Equal(img[offPhrase:offPhrase+PhraseLen], []byte("Photon")) || img[ImageSize-1] != 0 {
		t.Fatalf("phrase not NUL terminated: % x", img[offPhrase:])
	}

	var back Record
	if err := back.UnmarshalBinary(img); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back != r {
		t.Fatalf("decoded record differs:\n got %+v\nwant %+v", back, r)
	}
}

func TestUnmarshalShortImage(t *testing.T) {
	var r Record
	if err := r.UnmarshalBinary(make([]byte, ImageSize-1)); !errors.Is(err, ErrShortImage) {
		t.Fatalf("expected ErrShortImage, got %v", err)
	}
}

func TestValidateRejectsOutOfRange(t *testing.T) {
	mutations := map[string]func(*Record){
		"marker":     func(r *Record) { r.Marker = 0xFF },
		"brightness": func(r *Record) { r.Brightness = BrightnessCount },
		"gain":       func(r *Record) { r.Gain = 0 },
		"offset":     func(r *Record) { r.Offset = OffsetMax + 1 },
		"effect":     func(r *Record) { r.Effect = EffectCount },
		"blank":      func(r *Record) { r.BlankEnd = chrono.SecondsPerDay },
		"alarm":      func(r *Record) { r.Alarms[1].Enabled = true },
		"phrase":     func(r *Record) { r.Phrase[2] = 0 },
	}
	for name, mutate := range mutations {
		r := Default()
		mutate(&r)
		if err := r.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}

func TestNormalizeClearsInconsistentAlarm(t *testing.T) {
	r := Default()
	r.Alarms[2] = Alarm{Enabled: true, Days: reservedDayBit}
	r.Normalize()
	if r.Alarms[2].Enabled || r.Alarms[2].Days != 0 {
		t.Fatalf("alarm not normalized: %+v", r.Alarms[2])
	}
	if r.AlarmsEnabled() {
		t.Fatalf("no alarm should be armed")
	}
}

func TestBlanked(t *testing.T) {
	r := Default()
	if r.Blanked(0) {
		t.Fatalf("empty window must not blank")
	}
	r.BlankBegin, r.BlankEnd = chrono.Seconds(23, 0, 0), chrono.Seconds(6, 30, 0)
	if !r.Blanked(chrono.Seconds(2, 0, 0)) || r.Blanked(chrono.Seconds(12, 0, 0)) {
		t.Fatalf("wrapping window misjudged")
	}
	r.BlankBegin, r.BlankEnd = chrono.Seconds(1, 0, 0), chrono.Seconds(5, 0, 0)
	if !r.Blanked(chrono.Seconds(1, 0, 0)) || r.Blanked(chrono.Seconds(5, 0, 0)) {
		t.Fatalf("window edges misjudged")
	}
}

func TestAutoLevel(t *testing.T) {
	tests := []struct {
		gain, offset uint8
		reading      int
		want         int
	}{
		{10, 10, 0, 1},
		{10, 10, 160, 5},
		{10, 10, LightMax, 7},
		{10, 14, 160, 8},
		{10, 6, 160, 1},
		{1, 10, 96, 1},
		{50, 10, 96, 8},
		{10, 10, -5, 1},
		{10, 10, 4000, 7},
	}
	for _, tt := range tests {
		r := Default()
		r.Gain = tt.gain
		r.Offset = tt.offset
		if got := r.AutoLevel(tt.reading); got != tt.want {
			t.Fatalf("gain %d offset %d reading %d: expected %d, got %d", tt.gain, tt.offset, tt.reading, tt.want, got)
		}
	}
}

func TestSetPhrasePads(t *testing.T) {
	r := Default()
	r.SetPhrase("Neon")
	if r.PhraseString() != "Neon  " {
		t.Fatalf("unexpected phrase %q", r.PhraseString())
	}
}
