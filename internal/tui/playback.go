package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/episim/internal/sim"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

var seriesColors = []asciigraph.AnsiColor{
	asciigraph.Blue, asciigraph.Red, asciigraph.Green, asciigraph.Magenta, asciigraph.Yellow,
}

var legendColors = []lipgloss.Color{"33", "196", "82", "201", "220"}

const tickInterval = 50 * time.Millisecond

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Playback scrubs a finished series with a playhead. The chart shows the
// trajectory up to the playhead; the side panel shows values at it.
type Playback struct {
	title  string
	series *sim.Series
	kpis   map[string]float64

	cursor  int
	playing bool
	speed   int

	width  int
	height int
}

func NewPlayback(title string, series *sim.Series, kpis map[string]float64) Playback {
	return Playback{
		title:  title,
		series: series,
		kpis:   kpis,
		speed:  1,
		width:  80,
		height: 24,
	}
}

// Cursor is the playhead's sample index.
func (m Playback) Cursor() int { return m.cursor }

// Playing reports whether auto-play is on.
func (m Playback) Playing() bool { return m.playing }

func (m Playback) Init() tea.Cmd { return nil }

func (m Playback) last() int { return max(0, m.series.Len()-1) }

func (m Playback) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if !m.playing {
			return m, nil
		}
		m.cursor = min(m.cursor+m.speed, m.last())
		if m.cursor == m.last() {
			m.playing = false
			return m, nil
		}
		return m, tick()
	}
	return m, nil
}

func (m Playback) handleKey(msg tea.KeyMsg) (Playback, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "right", "l":
		m.cursor = min(m.cursor+m.speed, m.last())
	case "left", "h":
		m.cursor = max(m.cursor-m.speed, 0)
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = m.last()
	case "+", "=":
		m.speed = min(m.speed*2, 64)
	case "-", "_":
		m.speed = max(m.speed/2, 1)
	case " ", "p":
		if m.playing {
			m.playing = false
			return m, nil
		}
		if m.cursor == m.last() {
			m.cursor = 0
		}
		m.playing = true
		return m, tick()
	}
	return m, nil
}

func (m Playback) View() string {
	if m.series == nil || m.series.Len() == 0 {
		return dim.Render("  empty series") + "\n"
	}

	var b strings.Builder
	t := m.series.T[m.cursor]

	status := "paused"
	if m.playing {
		status = "playing"
	}
	b.WriteString("\n  " + cyan.Render(m.title) + dim.Render(fmt.Sprintf("  t=%.2f  step %d/%d  %s  x%d", t, m.cursor, m.last(), status, m.speed)) + "\n\n")

	b.WriteString(m.chart())
	b.WriteString("\n\n")

	for i, label := range m.series.Labels {
		style := lipgloss.NewStyle().Foreground(legendColors[i%len(legendColors)])
		b.WriteString("  " + style.Render("■ "+label) + " " + white.Render(fmt.Sprintf("%-14.1f", m.series.Values[i][m.cursor])))
	}
	b.WriteString("\n")

	if len(m.kpis) > 0 {
		b.WriteString("\n")
		keys := make([]string, 0, len(m.kpis))
		for k := range m.kpis {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			b.WriteString("  " + dim.Render(fmt.Sprintf("%-14s", k)) + green.Render(fmt.Sprintf("%.4g", m.kpis[k])) + "\n")
		}
	}

	b.WriteString("\n  " + yellow.Render("←/→") + dim.Render(" scrub  ") +
		yellow.Render("space") + dim.Render(" play  ") +
		yellow.Render("+/-") + dim.Render(" speed  ") +
		yellow.Render("home/end") + dim.Render(" jump  ") +
		yellow.Render("q") + dim.Render(" quit") + "\n")

	return b.String()
}

func (m Playback) chart() string {
	upto := max(m.cursor+1, 2)
	if upto > m.series.Len() {
		upto = m.series.Len()
	}

	data := make([][]float64, len(m.series.Values))
	for i, vals := range m.series.Values {
		data[i] = vals[:upto]
	}

	chartHeight := max(m.height-12-len(m.kpis), 5)
	chartWidth := max(m.width-14, 20)
	colors := seriesColors
	if len(data) < len(colors) {
		colors = colors[:len(data)]
	}

	return asciigraph.PlotMany(data,
		asciigraph.Height(chartHeight),
		asciigraph.Width(chartWidth),
		asciigraph.Offset(2),
		asciigraph.SeriesColors(colors...),
	)
}

// Run starts the interactive viewer and blocks until the user quits.
func Run(title string, series *sim.Series, kpis map[string]float64) error {
	p := tea.NewProgram(NewPlayback(title, series, kpis), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
