package progress

import (
	"math"
	"time"

	"github.com/verte-zerg/storytype/internal/model"
)

// MaxRecords is the number of records kept in the history log.
const MaxRecords = 100

// HistoryOption configures a History.
type HistoryOption func(*History)

// WithClock overrides the time source used for streak bookkeeping.
func WithClock(now func() time.Time) HistoryOption {
	return func(h *History) {
		h.now = now
	}
}

// History owns the bounded record log and the streak. On a new calendar day
// it resets the daily goals through its DailyResetter.
type History struct {
	records []model.PracticeRecord
	streak  model.Streak
	goals   DailyResetter
	now     func() time.Time
}

// NewHistory builds a history seeded with saved records and streak.
func NewHistory(goals DailyResetter, records []model.PracticeRecord, streak model.Streak, opts ...HistoryOption) *History {
	h := &History{
		records: trimRecords(append([]model.PracticeRecord(nil), records...)),
		streak:  streak,
		goals:   goals,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// AddRecord appends rec and advances the streak.
func (h *History) AddRecord(rec model.PracticeRecord) {
	h.records = trimRecords(append(h.records, rec))

	now := h.now()
	if h.streak.Last.IsZero() {
		h.streak = model.Streak{Count: 1, Last: now}
		h.resetGoals()
		return
	}

	switch days := dayDiff(h.streak.Last, now); {
	case days == 1:
		h.streak = model.Streak{Count: h.streak.Count + 1, Last: now}
		h.resetGoals()
	case days >= 2:
		h.streak = model.Streak{Count: 1, Last: now}
		h.resetGoals()
	default:
		// Same day, or the clock went backwards.
	}
}

// Records returns a copy of the log, oldest first.
func (h *History) Records() []model.PracticeRecord {
	out := make([]model.PracticeRecord, len(h.records))
	copy(out, h.records)
	return out
}

// Streak returns the current streak.
func (h *History) Streak() model.Streak {
	return h.streak
}

func (h *History) resetGoals() {
	if h.goals != nil {
		h.goals.ResetDaily()
	}
}

// dayDiff returns whole calendar days between the local midnights of from and to.
func dayDiff(from, to time.Time) int {
	fromDay := midnight(from.In(time.Local))
	toDay := midnight(to.In(time.Local))
	return int(math.Round(toDay.Sub(fromDay).Hours() / 24))
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func trimRecords(records []model.PracticeRecord) []model.PracticeRecord {
	if len(records) <= MaxRecords {
		return records
	}
	return append([]model.PracticeRecord(nil), records[len(records)-MaxRecords:]...)
}
