package report

import (
	"fmt"
	"strconv"

	"github.com/verte-zerg/nixie/internal/chrono"
	"github.com/verte-zerg/nixie/internal/model"
	"github.com/verte-zerg/nixie/internal/settings"
)

// RecordHeaders are the columns of RecordRows.
var RecordHeaders = []string{"Setting", "Value"}

// RecordRows describes every field of rec.
func RecordRows(rec settings.Record) [][]string {
	rows := [][]string{
		{"Marker", marker(rec)},
		{"Brightness", rec.Brightness.String()},
		{"Gain", strconv.Itoa(int(rec.Gain))},
		{"Offset", strconv.Itoa(int(rec.Offset))},
		{"Hour format", rec.TimeFormat.String()},
		{"Date format", rec.DateFormat.String()},
		{"Temperature", rec.TempUnit.String()},
		{"Effect", rec.Effect.String()},
		{"Noise", onOff(rec.Noise)},
		{"Battery", onOff(rec.Battery)},
		{"Blanking", blanking(rec)},
		{"Timer song", strconv.Itoa(int(rec.MusicTimer))},
	}
	for i, a := range rec.Alarms {
		rows = append(rows, []string{fmt.Sprintf("Alarm %d", i+1), alarm(a)})
	}
	rows = append(rows, []string{"Phrase", fmt.Sprintf("%q", rec.PhraseString())})
	return rows
}

// HistoryHeaders are the columns of HistoryRows.
var HistoryHeaders = []string{"Revision", "Written", "Offset", "Bytes", "Record"}

// HistoryRightAlign marks the numeric history columns.
var HistoryRightAlign = map[int]bool{2: true, 3: true}

// HistoryRows describes each revision and whether its image holds a valid
// record.
func HistoryRows(revs []model.Revision) [][]string {
	rows := make([][]string, 0, len(revs))
	for _, rev := range revs {
		rows = append(rows, []string{
			rev.ID,
			rev.WrittenAt.Local().Format("2006-01-02 15:04:05"),
			strconv.FormatInt(rev.Offset, 10),
			strconv.Itoa(rev.Length),
			imageStatus(rev.Image),
		})
	}
	return rows
}

func imageStatus(img []byte) string {
	var rec settings.Record
	if err := rec.UnmarshalBinary(img); err != nil {
		return "short"
	}
	if err := rec.Validate(); err != nil {
		if rec.Marker != settings.Marker {
			return "no marker"
		}
		return "invalid"
	}
	return "valid"
}

func marker(rec settings.Record) string {
	if rec.Marker == settings.Marker {
		return "valid"
	}
	return fmt.Sprintf("invalid (%#02x)", rec.Marker)
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func clock(seconds uint32) string {
	h, m, _ := chrono.Split(seconds)
	return fmt.Sprintf("%02d:%02d", h, m)
}

func blanking(rec settings.Record) string {
	if rec.BlankBegin == rec.BlankEnd {
		return "off"
	}
	return clock(rec.BlankBegin) + "-" + clock(rec.BlankEnd)
}

func alarm(a settings.Alarm) string {
	state := "off"
	if a.Enabled {
		state = "on"
	}
	return fmt.Sprintf("%s %s %s song %d", state, clock(a.Time), a.Days, a.Song)
}
