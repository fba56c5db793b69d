// Package progress tracks daily goals, the practice streak and session history.
package progress

import (
	"math"

	"github.com/verte-zerg/storytype/internal/model"
)

// Default goal ids fed by typing and pronunciation sessions.
const (
	GoalTyping    = "type50"
	GoalPronounce = "pron10"
)

// DefaultGoals returns the built-in daily goals.
func DefaultGoals() []model.Goal {
	return []model.Goal{
		{ID: GoalTyping, Label: "Type 50 characters today", Target: 50},
		{ID: GoalPronounce, Label: "Pronounce 10 words", Target: 10},
	}
}

// DailyResetter is anything whose progress restarts on a new day.
type DailyResetter interface {
	ResetDaily()
}

// Goals owns the set of daily goals. Ids, labels and targets are fixed at
// construction; only progress changes.
type Goals struct {
	goals []model.Goal
}

// NewGoals builds a tracker from goal definitions. Targets below one are
// raised to one and progress is clamped into range.
func NewGoals(defs []model.Goal) *Goals {
	g := &Goals{goals: make([]model.Goal, len(defs))}
	copy(g.goals, defs)
	for i := range g.goals {
		goal := &g.goals[i]
		if goal.Target < 1 {
			goal.Target = 1
		}
		goal.Progress = clamp(goal.Progress, 0, goal.Target)
		goal.Done = goal.Progress >= goal.Target
	}
	return g
}

// Increment adds amount to the goal with the given id. Unknown ids are ignored.
func (g *Goals) Increment(id string, amount int) {
	for i := range g.goals {
		goal := &g.goals[i]
		if goal.ID != id {
			continue
		}
		goal.Progress = clamp(goal.Progress+amount, 0, goal.Target)
		goal.Done = goal.Progress >= goal.Target
		return
	}
}

// ResetDaily clears progress on every goal.
func (g *Goals) ResetDaily() {
	for i := range g.goals {
		g.goals[i].Progress = 0
		g.goals[i].Done = false
	}
}

// Restore applies saved progress to goals with matching ids.
func (g *Goals) Restore(saved []model.Goal) {
	byID := make(map[string]model.Goal, len(saved))
	for _, s := range saved {
		byID[s.ID] = s
	}
	for i := range g.goals {
		goal := &g.goals[i]
		s, ok := byID[goal.ID]
		if !ok {
			continue
		}
		goal.Progress = clamp(s.Progress, 0, goal.Target)
		goal.Done = goal.Progress >= goal.Target
	}
}

// List returns a copy of the goals.
func (g *Goals) List() []model.Goal {
	out := make([]model.Goal, len(g.goals))
	copy(out, g.goals)
	return out
}

// Completion returns overall progress toward all targets as a percentage.
func (g *Goals) Completion() int {
	var total, progress int
	for _, goal := range g.goals {
		total += goal.Target
		progress += goal.Progress
	}
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(progress) / float64(total) * 100))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
