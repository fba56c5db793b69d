// Package typing implements the typing practice state machine and its metrics.
package typing

import (
	"math"
	"time"

	"github.com/verte-zerg/storytype/internal/model"
	"github.com/verte-zerg/storytype/internal/textutil"
)

// CharState is the typing state of one reference position.
type CharState uint8

const (
	Untyped CharState = iota
	Correct
	Incorrect
)

// Phase is the session lifecycle state.
type Phase uint8

const (
	Idle Phase = iota
	Active
	Completed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Active:
		return "active"
	case Completed:
		return "completed"
	default:
		return "unknown"
	}
}

// Event is a single key event. An event with neither Rune nor Delete set is a
// modifier-only key and is ignored.
type Event struct {
	Rune   rune
	Delete bool
}

// Metrics are session figures computed as of some instant.
type Metrics struct {
	TypedChars   int
	CorrectChars int
	Accuracy     int
	WPM          int
}

// Result is the outcome of a completed session.
type Result struct {
	Record         model.TypingRecord
	EndedAt        time.Time
	IncorrectWords []string
}

// Option configures a Session.
type Option func(*Session)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// Session tracks typing progress against a fixed reference text. It is not
// safe for concurrent use; events must be applied in arrival order.
type Session struct {
	text      string
	target    []rune
	states    []CharState
	cursor    int
	phase     Phase
	startedAt time.Time
	endedAt   time.Time
	now       func() time.Time
}

// NewSession starts an idle session for text.
func NewSession(text string, opts ...Option) *Session {
	target := []rune(text)
	s := &Session{
		text:   text,
		target: target,
		states: make([]CharState, len(target)),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Apply feeds one key event into the session.
func (s *Session) Apply(ev Event) {
	switch {
	case ev.Delete:
		s.Delete()
	case ev.Rune != 0:
		s.Type(ev.Rune)
	}
}

// Type handles a printable character.
func (s *Session) Type(r rune) {
	if !s.accept() {
		return
	}
	if s.cursor >= len(s.target) {
		return
	}
	if r == s.target[s.cursor] {
		s.states[s.cursor] = Correct
	} else {
		s.states[s.cursor] = Incorrect
	}
	s.cursor++
	if s.cursor == len(s.target) {
		s.endedAt = s.now()
		s.phase = Completed
	}
}

// Delete handles a backspace.
func (s *Session) Delete() {
	if !s.accept() {
		return
	}
	if s.cursor == 0 {
		return
	}
	s.cursor--
	s.states[s.cursor] = Untyped
}

// accept latches the start time on the first input and reports whether the
// session still takes input.
func (s *Session) accept() bool {
	switch s.phase {
	case Completed:
		return false
	case Idle:
		s.startedAt = s.now()
		s.phase = Active
	}
	return true
}

// Text returns the reference text.
func (s *Session) Text() string {
	return s.text
}

// Target returns the reference runes. Callers must not modify the slice.
func (s *Session) Target() []rune {
	return s.target
}

// States returns a copy of the per-position states.
func (s *Session) States() []CharState {
	out := make([]CharState, len(s.states))
	copy(out, s.states)
	return out
}

// State returns the state at position i.
func (s *Session) State(i int) CharState {
	if i < 0 || i >= len(s.states) {
		return Untyped
	}
	return s.states[i]
}

// Cursor returns the next position to be typed.
func (s *Session) Cursor() int {
	return s.cursor
}

// Phase returns the current lifecycle phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// StartedAt returns the start time, zero while idle.
func (s *Session) StartedAt() time.Time {
	return s.startedAt
}

// EndedAt returns the end time, zero until completed.
func (s *Session) EndedAt() time.Time {
	return s.endedAt
}

// Live returns metrics as of the current clock.
func (s *Session) Live() Metrics {
	return s.Metrics(s.now())
}

// Metrics returns the session metrics as of asOf. Once the session is
// completed the end time is used instead.
func (s *Session) Metrics(asOf time.Time) Metrics {
	var m Metrics
	for _, st := range s.states {
		switch st {
		case Correct:
			m.CorrectChars++
			m.TypedChars++
		case Incorrect:
			m.TypedChars++
		}
	}
	m.Accuracy = 100
	if m.TypedChars > 0 {
		m.Accuracy = int(math.Round(100 * float64(m.CorrectChars) / float64(m.TypedChars)))
	}
	if s.phase == Completed {
		asOf = s.endedAt
	}
	m.WPM = wordsPerMinute(m.CorrectChars, s.startedAt, asOf)
	return m
}

func wordsPerMinute(correct int, start, end time.Time) int {
	if start.IsZero() {
		return 0
	}
	elapsed := end.Sub(start)
	if elapsed <= 0 {
		return 0
	}
	return int(math.Round((float64(correct) / 5.0) / elapsed.Minutes()))
}

// Result returns the final record and incorrect words. The second value is
// false until the session is completed.
func (s *Session) Result() (Result, bool) {
	if s.phase != Completed {
		return Result{}, false
	}
	m := s.Metrics(s.endedAt)
	return Result{
		Record: model.TypingRecord{
			WPM:        m.WPM,
			Accuracy:   m.Accuracy,
			TypedChars: m.TypedChars,
		},
		EndedAt:        s.endedAt,
		IncorrectWords: s.incorrectWords(),
	}, true
}

func (s *Session) incorrectWords() []string {
	var words []string
	seen := map[string]struct{}{}
	for _, tok := range textutil.Tokenize(s.text) {
		if tok.Space {
			continue
		}
		end := tok.Start + tok.Len()
		if !containsIncorrect(s.states[tok.Start:end]) {
			continue
		}
		word := textutil.StripPunct(tok.Text)
		// Punctuation-only tokens leave nothing to drill.
		if word == "" {
			continue
		}
		if _, ok := seen[word]; ok {
			continue
		}
		seen[word] = struct{}{}
		words = append(words, word)
	}
	return words
}

func containsIncorrect(states []CharState) bool {
	for _, st := range states {
		if st == Incorrect {
			return true
		}
	}
	return false
}
