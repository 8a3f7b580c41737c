// Package tui provides the Bubble Tea front panel of the simulated clock.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/nixie/internal/menu"
	"github.com/verte-zerg/nixie/internal/prompt"
	"github.com/verte-zerg/nixie/internal/sim"
)

const (
	refreshInterval = 100 * time.Millisecond
	// blinkTicks is how many refreshes an edited field stays in one phase.
	blinkTicks = 4
	// clickHold is how many refreshes the key click marker stays up.
	clickHold = 3
)

// glow is the tube colour per brightness level, 0 being off.
var glow = [...]lipgloss.Color{
	"#2A1A10", "#5C2E0A", "#7A3B0C", "#97480E", "#B45510",
	"#CC6412", "#E07418", "#F08A2A", "#FFA545",
}

var (
	tubeStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A")).
			Bold(true)
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	dotOn       = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA545")).Render("●")
	dotOff      = lipgloss.NewStyle().Foreground(lipgloss.Color("#3A3A3A")).Render("·")
)

type tickMsg time.Time

// Model implements the Bubble Tea front panel.
type Model struct {
	dev  sim.Devices
	keys keyMap
	help help.Model

	width  int
	height int

	frame sim.Frame
	ticks int

	// clicks is the last feedback count seen from the audio device.
	clicks     int
	clickTicks int
}

// NewModel constructs a front panel over the simulated devices.
func NewModel(dev sim.Devices) *Model {
	return &Model{
		dev:   dev,
		keys:  defaultKeyMap(),
		help:  help.New(),
		frame: dev.Panel.Snapshot(),
	}
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tick()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tickMsg:
		m.frame = m.dev.Panel.Snapshot()
		m.ticks++
		if n := m.dev.Audio.Clicks(); n != m.clicks {
			m.clicks = n
			m.clickTicks = clickHold
		} else if m.clickTicks > 0 {
			m.clickTicks--
		}
		return m, tick()
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Decrement):
		m.dev.Keys.Send(prompt.SignalDecrement)
	case key.Matches(msg, m.keys.Increment):
		m.dev.Keys.Send(prompt.SignalIncrement)
	case key.Matches(msg, m.keys.Select):
		m.dev.Keys.Send(prompt.SignalSelect)
	case key.Matches(msg, m.keys.Settings):
		m.dev.Keys.Open(sim.RequestSettings)
	case key.Matches(msg, m.keys.Info):
		m.dev.Keys.Open(sim.RequestInfo)
	case key.Matches(msg, m.keys.Brighter):
		m.dev.Sensors.AdjustLight(1)
	case key.Matches(msg, m.keys.Darker):
		m.dev.Sensors.AdjustLight(-1)
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return nil
}

// View implements tea.Model.
func (m *Model) View() string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render(strings.TrimSpace(m.frame.Title)),
		m.renderTubes(),
		m.renderIndicators(),
		"",
		m.renderStatus(),
	)
	helpView := m.help.View(m.keys)
	if m.width == 0 || m.height < 3 {
		return content + "\n" + helpView
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	return body + "\n" + lipgloss.PlaceHorizontal(m.width, lipgloss.Center, helpView)
}

func (m *Model) renderTubes() string {
	level := m.frame.Brightness
	if level < 0 {
		level = 0
	}
	if level >= len(glow) {
		level = len(glow) - 1
	}
	blinkOff := (m.ticks/blinkTicks)%2 == 1
	tubes := make([]string, prompt.Width)
	for i, ch := range m.frame.Text {
		style := tubeStyle.Foreground(glow[level])
		text := tubeGlyph(ch)
		editing := m.frame.BlinkWidth > 0 && i >= m.frame.BlinkPos && i < m.frame.BlinkPos+m.frame.BlinkWidth
		if m.frame.Blank || (editing && blinkOff) {
			style = style.Foreground(glow[0])
		}
		if editing {
			style = style.BorderForeground(lipgloss.Color("#C89A3A"))
		}
		tubes[i] = style.Render(text)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tubes...)
}

// tubeGlyph maps a display byte to what a tube can light.
func tubeGlyph(ch byte) string {
	switch {
	case ch == '`':
		return "°"
	case ch < 32 || ch > 126:
		return " "
	}
	return string(ch)
}

func (m *Model) renderIndicators() string {
	dots := make([]string, prompt.Width)
	for i, on := range m.frame.Indicators {
		// Each tube is five cells wide with its border.
		dot := dotOff
		if on {
			dot = dotOn
		}
		dots[i] = lipgloss.PlaceHorizontal(5, lipgloss.Right, dot)
	}
	return strings.Join(dots, "")
}

func (m *Model) renderStatus() string {
	segments := []string{fmt.Sprintf("light %d", m.dev.Sensors.LightReading())}
	if m.clickTicks > 0 {
		segments = append(segments, "click")
	}
	if song, ok := m.dev.Audio.Song(); ok {
		segments = append(segments, fmt.Sprintf("♪ song %d", song))
	}
	if left, running := m.dev.Countdown.Remaining(); running {
		segments = append(segments, fmt.Sprintf("timer %s", left.Round(time.Second)))
	}
	if m.frame.Rate == menu.RateSlow {
		segments = append(segments, "slow mux")
	}
	return statusStyle.Render(strings.Join(segments, "  "))
}
