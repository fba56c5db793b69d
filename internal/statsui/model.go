// Package statsui provides the Bubble Tea profile interface.
package statsui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/storytype/internal/model"
	"github.com/verte-zerg/storytype/internal/stats"
)

const (
	tabOverview = iota
	tabRecords
	tabWeakWords
)

const (
	defaultWindow = 5
	weakWordsTop  = 50
	timeLayout    = "2006-01-02 15:04"
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

// Profile is the data shown by the UI.
type Profile struct {
	Records    []model.PracticeRecord
	Goals      []model.Goal
	Streak     model.Streak
	Completion int
}

// Model implements the Bubble Tea profile UI.
type Model struct {
	profile Profile
	summary stats.Summary
	window  int

	tabs      []string
	activeTab int
	overview  viewport.Model
	tables    map[int]*table.Model
	bar       progress.Model

	width  int
	height int
}

// NewModel constructs a profile UI model.
func NewModel(p Profile) *Model {
	m := &Model{
		profile: p,
		summary: stats.Summarize(p.Records),
		window:  defaultWindow,
		tabs:    []string{"Overview", "Records", "Weak Words"},
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
	m.overview = viewport.New(0, 0)
	records := buildTable(recordColumns(), recordRows(p.Records), 0, 1)
	weak := buildTable(weakColumns(), weakRows(stats.WeakWords(p.Records, weakWordsTop)), 0, 1)
	m.tables = map[int]*table.Model{
		tabRecords:   &records,
		tabWeakWords: &weak,
	}
	m.renderOverview()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderOverview()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return m, tea.Quit
		}
		switch msg.String() {
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "=":
			m.window++
			m.renderOverview()
			return m, nil
		case "-":
			m.window = maxInt(1, m.window-1)
			m.renderOverview()
			return m, nil
		case "g", "home":
			if t, ok := m.tables[m.activeTab]; ok {
				t.GotoTop()
			} else {
				m.overview.GotoTop()
			}
			return m, nil
		case "G", "end":
			if t, ok := m.tables[m.activeTab]; ok {
				t.GotoBottom()
			} else {
				m.overview.GotoBottom()
			}
			return m, nil
		default:
			var cmd tea.Cmd
			if t, ok := m.tables[m.activeTab]; ok {
				*t, cmd = t.Update(msg)
				return m, cmd
			}
			m.overview, cmd = m.overview.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(), m.width, bodyHeight)
	footer := fitLines(headerStyle.Render("Nav: left/right  Scroll: up/down/pgup/pgdn  Window: -/=  Quit: q"), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	headerHeight = tabsHeight + 1
	footerHeight = 1
	bodyHeight = maxInt(1, m.height-headerHeight-footerHeight)
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	m.overview.Width = m.width
	m.overview.Height = bodyHeight
	for _, t := range m.tables {
		t.SetWidth(m.width)
		t.SetHeight(maxInt(1, bodyHeight-1))
	}
	m.bar.Width = minInt(40, maxInt(10, m.width/3))
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	m.activeTab = (m.activeTab + delta + count) % count
	for tab, t := range m.tables {
		if tab == m.activeTab {
			t.Focus()
		} else {
			t.Blur()
		}
	}
}

func (m *Model) renderHeader() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	tabs := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	settings := fmt.Sprintf("Records: %d  Streak: %d  Window: %d", len(m.profile.Records), m.profile.Streak.Count, m.window)
	return tabs + "\n" + headerStyle.Render(truncateLine(settings, m.width))
}

func (m *Model) renderBody() string {
	t, ok := m.tables[m.activeTab]
	if !ok {
		return m.overview.View()
	}
	if len(t.Rows()) == 0 {
		if m.activeTab == tabWeakWords {
			return "No pronunciation stats found."
		}
		return "No sessions found."
	}
	return tableMutedStyle.Render(t.View())
}

func (m *Model) renderOverview() {
	width := m.width
	if width <= 0 {
		width = 80
	}
	sections := []string{
		renderCards(m.summary, m.profile, width),
		m.renderGoals(),
	}
	if curves := renderCurves(m.profile.Records, m.window, width); curves != "" {
		sections = append(sections, curves)
	}
	m.overview.SetContent(strings.Join(sections, "\n\n"))
}

func renderCards(s stats.Summary, p Profile, width int) string {
	cards := []string{
		metricCard("Streak", fmt.Sprintf("%d day(s)", p.Streak.Count)),
		metricCard("Goals", fmt.Sprintf("%d%%", p.Completion)),
		metricCard("Sessions", fmt.Sprintf("%d", s.Sessions())),
		metricCard("Avg WPM", fmt.Sprintf("%.1f", s.AvgWPM)),
		metricCard("Best WPM", fmt.Sprintf("%d", s.BestWPM)),
		metricCard("Avg Acc", fmt.Sprintf("%.1f%%", s.AvgAccuracy)),
		metricCard("Pronunciation", fmt.Sprintf("%.1f%%", s.AvgPronounce)),
	}
	if width < 80 {
		return strings.Join(cards, "\n")
	}
	row1 := lipgloss.JoinHorizontal(lipgloss.Top, cards[:4]...)
	row2 := lipgloss.JoinHorizontal(lipgloss.Top, cards[4:]...)
	return lipgloss.JoinVertical(lipgloss.Left, row1, row2)
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func (m *Model) renderGoals() string {
	if len(m.profile.Goals) == 0 {
		return "No goals configured."
	}
	lines := []string{cardValueStyle.Render("Daily Goals")}
	for _, g := range m.profile.Goals {
		ratio := 0.0
		if g.Target > 0 {
			ratio = float64(g.Progress) / float64(g.Target)
		}
		lines = append(lines, fmt.Sprintf("%s  %s %d/%d", m.bar.ViewAs(ratio), g.Label, g.Progress, g.Target))
	}
	return strings.Join(lines, "\n")
}

func renderCurves(records []model.PracticeRecord, window, width int) string {
	wpm, acc := stats.TypingSeries(records)
	pron := stats.PronounceSeries(records)
	curves := []struct {
		name   string
		values []float64
	}{
		{"WPM", wpm},
		{"Accuracy", acc},
		{"Pronunciation", pron},
	}
	labelWidth := 15
	sparkWidth := maxInt(10, width-labelWidth-2)
	lines := make([]string, 0, len(curves)+1)
	for _, c := range curves {
		if len(c.values) == 0 {
			continue
		}
		line := stats.Sparkline(stats.MovingAverage(c.values, window), sparkWidth)
		lines = append(lines, padLine(cardTitleStyle.Render(c.name), labelWidth)+" "+line)
	}
	if len(lines) == 0 {
		return ""
	}
	return cardValueStyle.Render("Learning Curves") + "\n" + strings.Join(lines, "\n")
}

func recordColumns() []table.Column {
	return []table.Column{
		{Title: "Time", Width: 16},
		{Title: "Kind", Width: 10},
		{Title: "WPM", Width: 5},
		{Title: "Accuracy", Width: 9},
		{Title: "Chars", Width: 6},
		{Title: "Score", Width: 6},
		{Title: "Words", Width: 6},
	}
}

// recordRows lists records newest first.
func recordRows(records []model.PracticeRecord) []table.Row {
	rows := make([]table.Row, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		rec := records[i]
		ts := rec.Timestamp.Local().Format(timeLayout)
		switch {
		case rec.Kind == model.KindTyping && rec.Typing != nil:
			rows = append(rows, table.Row{
				ts, string(rec.Kind),
				fmt.Sprintf("%d", rec.Typing.WPM),
				fmt.Sprintf("%d%%", rec.Typing.Accuracy),
				fmt.Sprintf("%d", rec.Typing.TypedChars),
				"", "",
			})
		case rec.Kind == model.KindPronounce && rec.Pronounce != nil:
			rows = append(rows, table.Row{
				ts, string(rec.Kind),
				"", "", "",
				fmt.Sprintf("%d%%", rec.Pronounce.Score),
				fmt.Sprintf("%d", len(rec.Pronounce.WordScores)),
			})
		}
	}
	return rows
}

func weakColumns() []table.Column {
	return []table.Column{
		{Title: "Word", Width: 16},
		{Title: "Avg Score", Width: 10},
		{Title: "Attempts", Width: 9},
	}
}

func weakRows(weak []stats.WeakWord) []table.Row {
	rows := make([]table.Row, 0, len(weak))
	for _, ww := range weak {
		rows = append(rows, table.Row{
			ww.Word,
			fmt.Sprintf("%.1f%%", ww.AvgScore),
			fmt.Sprintf("%d", ww.Attempts),
		})
	}
	return rows
}

func buildTable(columns []table.Column, rows []table.Row, width, height int) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(maxInt(1, height-1)),
	)
	t.SetWidth(width)
	t.SetStyles(tableStyles())
	return t
}

func tableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
