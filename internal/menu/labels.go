package menu

// Item is a top-level settings entry.
type Item uint8

const (
	ItemAlarm Item = iota
	ItemBrightness
	ItemConfig
	ItemBlank
	ItemTime
	ItemDate
	ItemMusic
	ItemTimer
	itemCount
)

var itemLabels = [itemCount]string{
	ItemAlarm:      "Alarm ",
	ItemBrightness: "Bright",
	ItemConfig:     "Config",
	ItemBlank:      "Dsplay",
	ItemTime:       " Time ",
	ItemDate:       " Date ",
	ItemMusic:      "Audio ",
	ItemTimer:      "CountD",
}

var (
	stateLabels      = []string{"Dsable", "Enable"}
	cycleLabels      = []string{"  AM  ", "  PM  "}
	resetLabels      = []string{"Cancel", "Reset "}
	timeFormatLabels = []string{"24 hr ", "12 hr "}
	dateFormatLabels = []string{"Y-M-D ", "M-D-Y ", "D-M-Y "}
	tempUnitLabels   = []string{"Temp C", "Temp F"}
	effectLabels     = []string{" None ", "Spiral", " Date ", "Phrase"}
	brightnessLabels = []string{" Auto ", " set 1", " set 2", " set 3", " set 4", " set 5", " set 6", " set 7", " set 8"}
	weekdayLabels    = []string{"Sunday", "Monday", "Tusday", "Wdnsdy", "Thrsdy", "Friday", "Satrdy", "-Done-"}
)

// alarmLabels[i][on] names alarm i in the chooser.
var alarmLabels = [][2]string{
	{"A1 OFF", "A1 ON "},
	{"A2 OFF", "A2 ON "},
	{"A3 OFF", "A3 ON "},
}

func (i Item) String() string {
	if i >= itemCount {
		return "unknown"
	}
	return itemLabels[i]
}
