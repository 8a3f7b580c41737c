package settings

import (
	"encoding/binary"
	"errors"

	"github.com/verte-zerg/nixie/internal/chrono"
)

// Image layout. Multi-byte values are little-endian.
const (
	offMarker     = 0
	offNoise      = 1
	offBattery    = 2
	offAlarmState = 3
	offBrightness = 4
	offGain       = 5
	offOffset     = 6
	offDateFormat = 7
	offTimeFormat = 8
	offTempUnit   = 9
	offEffect     = 10
	offBlankBegin = 11
	offBlankEnd   = 15
	offMusicAlarm = 19
	offMusicTimer = 20
	offAlarms     = 21

	alarmSize     = 7 // enabled, song, days, time(4)
	offPhrase     = offAlarms + AlarmCount*alarmSize
	phraseStorage = PhraseLen + 1 // NUL terminated
)

// ImageSize is the number of bytes a record occupies.
const ImageSize = offPhrase + phraseStorage

// ErrShortImage reports an image smaller than ImageSize.
var ErrShortImage = errors.New("settings: image too short")

// MarshalBinary encodes the record into its persisted image.
func (r Record) MarshalBinary() ([]byte, error) {
	b := make([]byte, ImageSize)
	b[offMarker] = r.Marker
	b[offNoise] = boolByte(r.Noise)
	b[offBattery] = boolByte(r.Battery)
	b[offAlarmState] = r.AlarmState
	b[offBrightness] = byte(r.Brightness)
	b[offGain] = r.Gain
	b[offOffset] = r.Offset
	b[offDateFormat] = byte(r.DateFormat)
	b[offTimeFormat] = byte(r.TimeFormat)
	b[offTempUnit] = byte(r.TempUnit)
	b[offEffect] = byte(r.Effect)
	binary.LittleEndian.PutUint32(b[offBlankBegin:], r.BlankBegin)
	binary.LittleEndian.PutUint32(b[offBlankEnd:], r.BlankEnd)
	b[offMusicAlarm] = r.MusicAlarm
	b[offMusicTimer] = r.MusicTimer
	for i, a := range r.Alarms {
		p := b[offAlarms+i*alarmSize:]
		p[0] = boolByte(a.Enabled)
		p[1] = a.Song
		p[2] = byte(a.Days)
		binary.LittleEndian.PutUint32(p[3:], a.Time)
	}
	copy(b[offPhrase:], r.Phrase[:])
	b[offPhrase+PhraseLen] = 0
	return b, nil
}

// UnmarshalBinary decodes an image. It only checks the length; callers
// decide what an invalid marker means.
func (r *Record) UnmarshalBinary(b []byte) error {
	if len(b) < ImageSize {
		return ErrShortImage
	}
	r.Marker = b[offMarker]
	r.Noise = b[offNoise] != 0
	r.Battery = b[offBattery] != 0
	r.AlarmState = b[offAlarmState]
	r.Brightness = Brightness(b[offBrightness])
	r.Gain = b[offGain]
	r.Offset = b[offOffset]
	r.DateFormat = chrono.DateFormat(b[offDateFormat])
	r.TimeFormat = chrono.TimeFormat(b[offTimeFormat])
	r.TempUnit = TempUnit(b[offTempUnit])
	r.Effect = Effect(b[offEffect])
	r.BlankBegin = binary.LittleEndian.Uint32(b[offBlankBegin:])
	r.BlankEnd = binary.LittleEndian.Uint32(b[offBlankEnd:])
	r.MusicAlarm = b[offMusicAlarm]
	r.MusicTimer = b[offMusicTimer]
	for i := range r.Alarms {
		p := b[offAlarms+i*alarmSize:]
		r.Alarms[i] = Alarm{
			Enabled: p[0] != 0,
			Song:    p[1],
			Days:    Days(p[2]),
			Time:    binary.LittleEndian.Uint32(p[3:]),
		}
	}
	copy(r.Phrase[:], b[offPhrase:offPhrase+PhraseLen])
	return nil
}

func boolByte(v bool) byte {
	if v {
		return 1
	}
	return 0
}
