// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/storytype/internal/generator"
	"github.com/verte-zerg/storytype/internal/model"
	"github.com/verte-zerg/storytype/internal/typing"
)

// Recorder persists finished sessions and reports daily progress.
type Recorder interface {
	RecordTyping(ctx context.Context, res typing.Result) error
	Goals() []model.Goal
	Streak() model.Streak
}

// TextSource returns the reference text for the next session.
type TextSource func() string

// Option configures a Model.
type Option func(*Model)

// WithClock overrides the time source passed to typing sessions.
func WithClock(now func() time.Time) Option {
	return func(m *Model) {
		m.now = now
	}
}

// WithDrill sets the generator and word count used for the result screen drill.
func WithDrill(gen *generator.Generator, words int) Option {
	return func(m *Model) {
		m.gen = gen
		m.drillWords = words
	}
}

// DefaultDrillWords is the drill length when WithDrill is not given.
const DefaultDrillWords = 25

// Model implements the Bubble Tea typing UI.
type Model struct {
	ctx      context.Context
	recorder Recorder
	next     TextSource
	now      func() time.Time

	gen        *generator.Generator
	drillWords int

	width  int
	height int

	session *typing.Session
	result  *typing.Result
	saveErr error
}

type tickMsg time.Time

const tickInterval = time.Second

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	titleStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C89A3A"))
	doneStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
)

// NewModel constructs a typing TUI model. The recorder may be nil.
func NewModel(ctx context.Context, recorder Recorder, next TextSource, opts ...Option) *Model {
	m := &Model{
		ctx:      ctx,
		recorder: recorder,
		next:     next,
		now:      time.Now,

		drillWords: DefaultDrillWords,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.gen == nil {
		m.gen = generator.New()
	}
	m.resetSession()
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
		return m, nil
	case tickMsg:
		if m.session.Phase() == typing.Active {
			return m, tick()
		}
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
			return m, tea.Quit
		}
		if m.result != nil {
			return m.updateResult(msg)
		}
		return m.updateTyping(msg)
	default:
		return m, nil
	}
}

func (m *Model) updateTyping(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Alt {
		return m, nil
	}
	wasIdle := m.session.Phase() == typing.Idle
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyDelete:
		m.session.Apply(typing.Event{Delete: true})
	case tea.KeySpace:
		m.session.Apply(typing.Event{Rune: ' '})
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			m.session.Apply(typing.Event{Rune: r})
		}
	default:
		return m, nil
	}
	if m.session.Phase() == typing.Completed {
		m.finishSession()
		return m, nil
	}
	if wasIdle && m.session.Phase() == typing.Active {
		return m, tick()
	}
	return m, nil
}

func (m *Model) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.resetSession()
	case tea.KeyRunes:
		switch string(msg.Runes) {
		case "q":
			return m, tea.Quit
		case "d":
			m.startDrill()
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.result != nil {
		return m.place(m.renderResult(), "")
	}
	target := m.session.Target()
	if len(target) == 0 {
		return ""
	}
	cursorIndex := -1
	if m.session.Cursor() < len(target) {
		cursorIndex = m.session.Cursor()
	}
	styledRunes := buildStyledRunes(target, m.session.States(), cursorIndex)
	if m.width == 0 || m.height == 0 {
		return renderStyledRunes(styledRunes)
	}
	contentWidth := int(float64(m.width) * 0.70)
	if contentWidth < 1 {
		contentWidth = 1
	}
	wrapped := wrapStyledRunes(styledRunes, contentWidth)
	content := lipgloss.NewStyle().Width(contentWidth).Render(wrapped)
	return m.place(content, m.renderFooter())
}

func (m *Model) place(content, footer string) string {
	if m.width == 0 || m.height == 0 {
		if footer == "" {
			return content
		}
		return content + "\n" + footer
	}
	if footer == "" || m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) renderFooter() string {
	target := m.session.Target()
	if len(target) == 0 {
		return ""
	}
	progress := m.session.Cursor() * 100 / len(target)
	live := m.session.Live()
	segments := []string{
		fmt.Sprintf("Progress %d%%", progress),
		fmt.Sprintf("%d WPM · %d%%", live.WPM, live.Accuracy),
	}
	if m.recorder != nil {
		segments = append(segments,
			fmt.Sprintf("Streak %d", m.recorder.Streak().Count),
			fmt.Sprintf("Goals %d/%d", goalsDone(m.recorder.Goals()), len(m.recorder.Goals())),
		)
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

func (m *Model) renderResult() string {
	res := m.result
	var b strings.Builder
	b.WriteString(titleStyle.Render("Session complete"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%d WPM · %d%% accuracy · %d chars\n\n",
		res.Record.WPM, res.Record.Accuracy, res.Record.TypedChars)
	if len(res.IncorrectWords) == 0 {
		b.WriteString(doneStyle.Render("No mistakes"))
	} else {
		b.WriteString("Practice these words: ")
		b.WriteString(incorrectStyle.Render(strings.Join(res.IncorrectWords, ", ")))
	}
	b.WriteString("\n")
	if m.recorder != nil {
		b.WriteString("\n")
		for _, g := range m.recorder.Goals() {
			line := fmt.Sprintf("%s  %d/%d", g.Label, g.Progress, g.Target)
			if g.Done {
				line = doneStyle.Render(line + "  ✓")
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "Streak: %d day(s)\n", m.recorder.Streak().Count)
	}
	if m.saveErr != nil {
		b.WriteString(incorrectStyle.Render("Not saved: " + m.saveErr.Error()))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	hint := "enter: next · q/esc: quit"
	if len(res.IncorrectWords) > 0 {
		hint = "enter: next · d: drill mistakes · q/esc: quit"
	}
	b.WriteString(footerStyle.Render(hint))
	return b.String()
}

func (m *Model) resetSession() {
	text := ""
	if m.next != nil {
		text = m.next()
	}
	m.startSession(text)
}

// startDrill replaces the next session with the words missed in the last one.
func (m *Model) startDrill() {
	if m.result == nil || len(m.result.IncorrectWords) == 0 {
		return
	}
	words := m.gen.Generate(m.result.IncorrectWords, m.drillWords)
	if len(words) == 0 {
		return
	}
	m.startSession(strings.Join(words, " "))
}

func (m *Model) startSession(text string) {
	m.session = typing.NewSession(text, typing.WithClock(m.now))
	m.result = nil
	m.saveErr = nil
}

func (m *Model) finishSession() {
	res, ok := m.session.Result()
	if !ok {
		return
	}
	m.result = &res
	if m.recorder == nil {
		return
	}
	if err := m.recorder.RecordTyping(m.ctx, res); err != nil {
		m.saveErr = err
		logErrf("failed to save session: %v\n", err)
	}
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func goalsDone(goals []model.Goal) int {
	n := 0
	for _, g := range goals {
		if g.Done {
			n++
		}
	}
	return n
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
