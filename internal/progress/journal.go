package progress

import (
	"context"
	"fmt"
	"time"

	"github.com/verte-zerg/storytype/internal/model"
	"github.com/verte-zerg/storytype/internal/pronounce"
	"github.com/verte-zerg/storytype/internal/typing"
)

// Keys used in the key-value store.
const (
	KeyGoals   = "goals"
	KeyRecords = "records"
	KeyStreak  = "streak"
)

// KV is a JSON key-value store. Writes are atomic per key only.
type KV interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any) error
}

// JournalConfig selects which goals each kind of session feeds.
type JournalConfig struct {
	Goals           []model.Goal
	TypingGoalID    string
	PronounceGoalID string
	HistoryOptions  []HistoryOption
}

// Journal records finished sessions into the goals and history and persists them.
type Journal struct {
	kv              KV
	goals           *Goals
	history         *History
	typingGoalID    string
	pronounceGoalID string
}

// OpenJournal loads goals, records and streak from kv. Missing keys start empty.
func OpenJournal(ctx context.Context, kv KV, cfg JournalConfig) (*Journal, error) {
	defs := cfg.Goals
	if len(defs) == 0 {
		defs = DefaultGoals()
	}
	goals := NewGoals(defs)

	var saved []model.Goal
	if _, err := kv.Get(ctx, KeyGoals, &saved); err != nil {
		return nil, fmt.Errorf("failed to load goals: %w", err)
	}
	goals.Restore(saved)

	var records []model.PracticeRecord
	if _, err := kv.Get(ctx, KeyRecords, &records); err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}
	var streak model.Streak
	if _, err := kv.Get(ctx, KeyStreak, &streak); err != nil {
		return nil, fmt.Errorf("failed to load streak: %w", err)
	}

	j := &Journal{
		kv:              kv,
		goals:           goals,
		history:         NewHistory(goals, records, streak, cfg.HistoryOptions...),
		typingGoalID:    cfg.TypingGoalID,
		pronounceGoalID: cfg.PronounceGoalID,
	}
	if j.typingGoalID == "" {
		j.typingGoalID = GoalTyping
	}
	if j.pronounceGoalID == "" {
		j.pronounceGoalID = GoalPronounce
	}
	return j, nil
}

// RecordTyping stores a completed typing session.
func (j *Journal) RecordTyping(ctx context.Context, res typing.Result) error {
	j.history.AddRecord(model.NewTypingRecord(res.Record, res.EndedAt))
	j.goals.Increment(j.typingGoalID, res.Record.TypedChars)
	return j.save(ctx)
}

// RecordPronunciation stores a graded utterance stamped at ts.
func (j *Journal) RecordPronunciation(ctx context.Context, res pronounce.Result, ts time.Time) error {
	j.history.AddRecord(res.Record(ts))
	j.goals.Increment(j.pronounceGoalID, 1)
	return j.save(ctx)
}

// Goals returns the current goals.
func (j *Journal) Goals() []model.Goal {
	return j.goals.List()
}

// Completion returns overall goal completion as a percentage.
func (j *Journal) Completion() int {
	return j.goals.Completion()
}

// Records returns the history log, oldest first.
func (j *Journal) Records() []model.PracticeRecord {
	return j.history.Records()
}

// Streak returns the current streak.
func (j *Journal) Streak() model.Streak {
	return j.history.Streak()
}

func (j *Journal) save(ctx context.Context) error {
	if err := j.kv.Set(ctx, KeyRecords, j.history.Records()); err != nil {
		return fmt.Errorf("failed to save records: %w", err)
	}
	if err := j.kv.Set(ctx, KeyStreak, j.history.Streak()); err != nil {
		return fmt.Errorf("failed to save streak: %w", err)
	}
	if err := j.kv.Set(ctx, KeyGoals, j.goals.List()); err != nil {
		return fmt.Errorf("failed to save goals: %w", err)
	}
	return nil
}
