// Package settings holds the persisted clock configuration record.
package settings

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/verte-zerg/nixie/internal/chrono"
)

const (
	// Marker is the sentinel stored in the first byte of a valid image.
	Marker byte = '$'
	// PhraseLen is the number of characters in the phrase, one per tube.
	PhraseLen = 6

	secondsPerDay = chrono.SecondsPerDay
)

// DefaultPhrase is written by factory defaults.
const DefaultPhrase = "Photon"

// ErrInvalidMarker reports an image that was never written or is corrupt.
var ErrInvalidMarker = errors.New("settings: validation marker mismatch")

// Brightness is the display intensity mode. Zero follows the light sensor.
type Brightness uint8

const (
	BrightnessAuto Brightness = 0
	BrightnessMin  Brightness = 1
	BrightnessMax  Brightness = 8
)

// BrightnessCount is the number of selectable modes including automatic.
const BrightnessCount = 9

func (b Brightness) String() string {
	if b == BrightnessAuto {
		return "auto"
	}
	return strconv.Itoa(int(b))
}

// TempUnit is the unit temperatures are shown in.
type TempUnit uint8

const (
	Celsius TempUnit = iota
	Fahrenheit
)

func (u TempUnit) String() string {
	if u == Fahrenheit {
		return "F"
	}
	return "C"
}

// Effect is the idle display effect.
type Effect uint8

const (
	EffectNone Effect = iota
	EffectSpiral
	EffectDate
	EffectPhrase
)

// EffectCount is the number of display effects.
const EffectCount = 4

var effectNames = [EffectCount]string{"none", "spiral", "date", "phrase"}

func (e Effect) String() string {
	if e >= EffectCount {
		return "unknown"
	}
	return effectNames[e]
}

const (
	GainMin   = 1
	GainMax   = 50
	OffsetMin = 0
	OffsetMax = 20
)

// LightMax is the full-scale raw light sensor reading.
const LightMax = 255

const (
	lightScale = 320
	offsetBias = 10
)

// Record is the configuration kept in non-volatile memory.
type Record struct {
	Marker     byte
	Noise      bool
	Battery    bool
	AlarmState uint8 // bit i set while alarm i is enabled
	Brightness Brightness
	Gain       uint8
	Offset     uint8
	DateFormat chrono.DateFormat
	TimeFormat chrono.TimeFormat
	TempUnit   TempUnit
	Effect     Effect
	BlankBegin uint32
	BlankEnd   uint32
	MusicAlarm uint8
	MusicTimer uint8
	Alarms     [AlarmCount]Alarm
	Phrase     [PhraseLen]byte
}

// Default returns the factory configuration.
func Default() Record {
	r := Record{
		Marker:     Marker,
		Noise:      true,
		Battery:    true,
		Brightness: BrightnessAuto,
		Gain:       10,
		Offset:     10,
		DateFormat: chrono.DayMonthYear,
		TimeFormat: chrono.Hour24,
		TempUnit:   Fahrenheit,
		Effect:     EffectNone,
	}
	copy(r.Phrase[:], DefaultPhrase)
	return r
}

// PhraseString returns the phrase as text.
func (r Record) PhraseString() string {
	return string(r.Phrase[:])
}

// SetPhrase stores s padded with spaces to the phrase width.
func (r *Record) SetPhrase(s string) {
	for i := range r.Phrase {
		r.Phrase[i] = ' '
		if i < len(s) {
			r.Phrase[i] = s[i]
		}
	}
}

// Validate checks that every field is in range. It does not mutate.
func (r Record) Validate() error {
	if r.Marker != Marker {
		return ErrInvalidMarker
	}
	if r.Brightness >= BrightnessCount {
		return fmt.Errorf("settings: brightness %d out of range", r.Brightness)
	}
	if r.Gain < GainMin || r.Gain > GainMax {
		return fmt.Errorf("settings: gain %d out of range %d-%d", r.Gain, GainMin, GainMax)
	}
	if r.Offset > OffsetMax {
		return fmt.Errorf("settings: offset %d out of range %d-%d", r.Offset, OffsetMin, OffsetMax)
	}
	if r.DateFormat >= chrono.DateFormatCount {
		return fmt.Errorf("settings: date format %d unknown", r.DateFormat)
	}
	if r.TimeFormat > chrono.Hour12 {
		return fmt.Errorf("settings: time format %d unknown", r.TimeFormat)
	}
	if r.TempUnit > Fahrenheit {
		return fmt.Errorf("settings: temperature unit %d unknown", r.TempUnit)
	}
	if r.Effect >= EffectCount {
		return fmt.Errorf("settings: effect %d unknown", r.Effect)
	}
	if r.BlankBegin >= secondsPerDay || r.BlankEnd >= secondsPerDay {
		return fmt.Errorf("settings: blanking window %d-%d out of range", r.BlankBegin, r.BlankEnd)
	}
	for i, a := range r.Alarms {
		if a.Time >= secondsPerDay {
			return fmt.Errorf("settings: alarm %d time %d out of range", i, a.Time)
		}
		if a.Enabled && a.Days.Empty() {
			return fmt.Errorf("settings: alarm %d enabled without days", i)
		}
	}
	for i, ch := range r.Phrase {
		if ch < 32 || ch > 127 {
			return fmt.Errorf("settings: phrase byte %d is not printable", i)
		}
	}
	return nil
}

// Normalize restores the derived fields. It must be called before persisting.
func (r *Record) Normalize() {
	r.AlarmState = 0
	for i := range r.Alarms {
		r.Alarms[i].normalize()
		if r.Alarms[i].Enabled {
			r.AlarmState |= 1 << uint(i)
		}
	}
}

// AutoLevel maps a raw light reading to a brightness level through the
// gain and offset tuning: reading*gain/320 + offset - 10, kept within
// BrightnessMin..BrightnessMax.
func (r Record) AutoLevel(reading int) int {
	if reading < 0 {
		reading = 0
	}
	if reading > LightMax {
		reading = LightMax
	}
	level := reading*int(r.Gain)/lightScale + int(r.Offset) - offsetBias
	if level < int(BrightnessMin) {
		return int(BrightnessMin)
	}
	if level > int(BrightnessMax) {
		return int(BrightnessMax)
	}
	return level
}

// AlarmsEnabled reports whether any alarm is armed.
func (r Record) AlarmsEnabled() bool {
	return r.AlarmState != 0
}

// Blanked reports whether second-of-day falls in the blanking window.
// The window may wrap past midnight; equal edges mean no window.
func (r Record) Blanked(second uint32) bool {
	switch {
	case r.BlankBegin == r.BlankEnd:
		return false
	case r.BlankBegin < r.BlankEnd:
		return second >= r.BlankBegin && second < r.BlankEnd
	default:
		return second >= r.BlankBegin || second < r.BlankEnd
	}
}
