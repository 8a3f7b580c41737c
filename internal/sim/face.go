package sim

import (
	"fmt"

	"github.com/verte-zerg/nixie/internal/chrono"
	"github.com/verte-zerg/nixie/internal/prompt"
	"github.com/verte-zerg/nixie/internal/settings"
)

// Seconds of each minute during which the date or phrase effect replaces
// the time.
const (
	effectFrom  = 30
	effectUntil = 33
)

// Face renders the idle clock face for now. frame advances once per
// refresh and drives the spiral animation.
func Face(rec settings.Record, now chrono.DateTime, frame int) string {
	inWindow := now.Second >= effectFrom && now.Second < effectUntil
	switch {
	case rec.Effect == settings.EffectDate && inWindow:
		v := rec.DateFormat.Permute(now.Date)
		return fmt.Sprintf("%02d%02d%02d", v[0], v[1], v[2])
	case rec.Effect == settings.EffectPhrase && inWindow:
		return rec.PhraseString()
	case rec.Effect == settings.EffectSpiral && now.Second == 0:
		var b [prompt.Width]byte
		for i := range b {
			b[i] = byte('0' + (frame+i)%10)
		}
		return string(b[:])
	}
	hour := chrono.DisplayHour(now.Hour, rec.TimeFormat)
	return fmt.Sprintf("%02d%02d%02d", hour, now.Minute, now.Second)
}
