package sim

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/verte-zerg/nixie/internal/chrono"
	"github.com/verte-zerg/nixie/internal/settings"
)

// ErrInvalidDate is returned when the clock is given a day that does not
// exist in the month.
var ErrInvalidDate = errors.New("sim: invalid date")

// Clock is a real-time clock kept as an offset from the host clock. Years
// are two digits counted from 2000.
type Clock struct {
	mu      sync.Mutex
	offset  time.Duration
	celsius float64
	now     func() time.Time
}

// NewClock returns a clock tracking the host time.
func NewClock(celsius float64) *Clock {
	return &Clock{celsius: celsius, now: time.Now}
}

func (c *Clock) current() time.Time {
	return c.now().Add(c.offset)
}

// Time returns the clock reading as a time.Time.
func (c *Clock) Time() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current()
}

func (c *Clock) Now() chrono.DateTime {
	return dateTime(c.Time())
}

func dateTime(t time.Time) chrono.DateTime {
	return chrono.DateTime{
		Date:   chrono.Date{Year: t.Year() % 100, Month: int(t.Month()), Day: t.Day()},
		Hour:   t.Hour(),
		Minute: t.Minute(),
		Second: t.Second(),
	}
}

func (c *Clock) SetTime(hour, minute, second int) error {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 {
		return fmt.Errorf("sim: time %02d:%02d:%02d out of range", hour, minute, second)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.current()
	target := time.Date(t.Year(), t.Month(), t.Day(), hour, minute, second, t.Nanosecond(), t.Location())
	c.offset += target.Sub(t)
	return nil
}

func (c *Clock) SetDate(year, month, day int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.current()
	target := time.Date(2000+year, time.Month(month), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if year < 0 || year > 99 || target.Month() != time.Month(month) || target.Day() != day {
		return fmt.Errorf("%w: %02d-%02d-%02d", ErrInvalidDate, year, month, day)
	}
	c.offset += target.Sub(t)
	return nil
}

func (c *Clock) Temperature() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.celsius
}

func (c *Clock) SetTemperature(celsius float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.celsius = celsius
}

// Audio pretends to play each song for a fixed duration.
type Audio struct {
	mu     sync.Mutex
	length time.Duration
	song   int
	until  time.Time
	clicks int
	now    func() time.Time
}

// NewAudio returns a sequencer whose songs last length.
func NewAudio(length time.Duration) *Audio {
	return &Audio{length: length, song: -1, now: time.Now}
}

func (a *Audio) Play(song int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.song = song
	a.until = a.now().Add(a.length)
}

func (a *Audio) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.song = -1
	a.until = time.Time{}
}

// Click sounds the short key feedback tone.
func (a *Audio) Click() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.clicks++
}

// Clicks counts the feedback tones sounded so far.
func (a *Audio) Clicks() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.clicks
}

func (a *Audio) Playing() bool {
	_, ok := a.Song()
	return ok
}

// Song returns the song being played.
func (a *Audio) Song() (int, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.song < 0 || !a.now().Before(a.until) {
		return 0, false
	}
	return a.song, true
}

// Sensors holds fixed light and battery readings that the front end can
// change.
type Sensors struct {
	mu         sync.Mutex
	light      int
	millivolts int
}

func NewSensors(light, millivolts int) *Sensors {
	return &Sensors{light: light, millivolts: millivolts}
}

func (s *Sensors) LightReading() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.light
}

func (s *Sensors) BatteryMillivolts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.millivolts
}

// LightStep is how far one AdjustLight step moves the raw reading.
const LightStep = 16

// AdjustLight moves the raw light reading by delta steps within
// 0..settings.LightMax.
func (s *Sensors) AdjustLight(delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.light += delta * LightStep
	if s.light < 0 {
		s.light = 0
	}
	if s.light > settings.LightMax {
		s.light = settings.LightMax
	}
}

// Countdown tracks one running countdown.
type Countdown struct {
	mu       sync.Mutex
	deadline time.Time
	now      func() time.Time
}

func NewCountdown() *Countdown {
	return &Countdown{now: time.Now}
}

func (c *Countdown) Start(hour, minute, second int) {
	d := time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute + time.Duration(second)*time.Second
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deadline = c.now().Add(d)
}

// Remaining returns the time left. running is false when no countdown is
// set; a countdown that reached zero reports running with zero left until
// it is cleared.
func (c *Countdown) Remaining() (left time.Duration, running bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.deadline.IsZero() {
		return 0, false
	}
	left = c.deadline.Sub(c.now())
	if left < 0 {
		left = 0
	}
	return left, true
}

func (c *Countdown) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deadline = time.Time{}
}
