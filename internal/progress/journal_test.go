package progress

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/verte-zerg/storytype/internal/model"
	"github.com/verte-zerg/storytype/internal/pronounce"
	"github.com/verte-zerg/storytype/internal/typing"
)

type memKV struct {
	data    map[string][]byte
	failSet bool
}

func newMemKV() *memKV {
	return &memKV{data: map[string][]byte{}}
}

func (m *memKV) Get(_ context.Context, key string, dst any) (bool, error) {
	raw, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}

func (m *memKV) Set(_ context.Context, key string, value any) error {
	if m.failSet {
		return errors.New("disk full")
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = raw
	return nil
}

func TestJournalRecordsAndPersists(t *testing.T) {
	ctx := context.Background()
	kv := newMemKV()
	clock := &stepClock{t: day(1, 9)}
	cfg := JournalConfig{HistoryOptions: []HistoryOption{WithClock(clock.now)}}

	j, err := OpenJournal(ctx, kv, cfg)
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	typed := typing.Result{
		Record:  model.TypingRecord{WPM: 30, Accuracy: 90, TypedChars: 20},
		EndedAt: clock.t,
	}
	if err := j.RecordTyping(ctx, typed); err != nil {
		t.Fatalf("record typing: %v", err)
	}
	spoken, _ := pronounce.Score("cat", "bat")
	if err := j.RecordPronunciation(ctx, spoken, clock.t); err != nil {
		t.Fatalf("record pronunciation: %v", err)
	}

	reopened, err := OpenJournal(ctx, kv, cfg)
	if err != nil {
		t.Fatalf("reopen journal: %v", err)
	}
	if got := len(reopened.Records()); got != 2 {
		t.Fatalf("expected 2 records, got %d", got)
	}
	if reopened.Streak().Count != 1 {
		t.Fatalf("expected streak 1, got %d", reopened.Streak().Count)
	}
	if g := findGoal(t, reopened.Goals(), GoalTyping); g.Progress != 20 {
		t.Fatalf("expected typing goal progress 20, got %d", g.Progress)
	}
	if g := findGoal(t, reopened.Goals(), GoalPronounce); g.Progress != 1 {
		t.Fatalf("expected pronounce goal progress 1, got %d", g.Progress)
	}
}

func TestJournalNewDayResetsBeforeIncrement(t *testing.T) {
	ctx := context.Background()
	kv := newMemKV()
	clock := &stepClock{t: day(1, 9)}
	j, err := OpenJournal(ctx, kv, JournalConfig{HistoryOptions: []HistoryOption{WithClock(clock.now)}})
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	res := typing.Result{Record: model.TypingRecord{TypedChars: 40}, EndedAt: clock.t}
	if err := j.RecordTyping(ctx, res); err != nil {
		t.Fatalf("record: %v", err)
	}
	clock.t = day(2, 9)
	res.Record.TypedChars = 15
	if err := j.RecordTyping(ctx, res); err != nil {
		t.Fatalf("record: %v", err)
	}
	if g := findGoal(t, j.Goals(), GoalTyping); g.Progress != 15 {
		t.Fatalf("expected progress 15 after rollover, got %d", g.Progress)
	}
	if j.Streak().Count != 2 {
		t.Fatalf("expected streak 2, got %d", j.Streak().Count)
	}
	if j.Completion() != 25 {
		t.Fatalf("expected completion 25, got %d", j.Completion())
	}
}

func TestJournalSaveError(t *testing.T) {
	ctx := context.Background()
	kv := newMemKV()
	j, err := OpenJournal(ctx, kv, JournalConfig{})
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	kv.failSet = true
	err = j.RecordTyping(ctx, typing.Result{EndedAt: time.Now()})
	if err == nil {
		t.Fatalf("expected save error")
	}
}

func TestJournalCustomGoals(t *testing.T) {
	ctx := context.Background()
	j, err := OpenJournal(ctx, newMemKV(), JournalConfig{
		Goals:        []model.Goal{{ID: "chars", Label: "Type 200 characters", Target: 200}},
		TypingGoalID: "chars",
	})
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	if err := j.RecordTyping(ctx, typing.Result{Record: model.TypingRecord{TypedChars: 50}}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if g := findGoal(t, j.Goals(), "chars"); g.Progress != 50 {
		t.Fatalf("expected custom goal progress 50, got %d", g.Progress)
	}
}
