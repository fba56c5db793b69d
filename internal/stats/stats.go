// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"time"

	"github.com/verte-zerg/storytype/internal/model"
)

// Summary aggregates practice records.
type Summary struct {
	TypingSessions    int
	PronounceSessions int
	AvgWPM            float64
	BestWPM           int
	AvgAccuracy       float64
	AvgPronounce      float64
	BestPronounce     int
	LastPractice      time.Time
}

// Sessions returns the total number of sessions.
func (s Summary) Sessions() int {
	return s.TypingSessions + s.PronounceSessions
}

// Summarize aggregates records of both kinds.
func Summarize(records []model.PracticeRecord) Summary {
	var s Summary
	var totalWPM, totalAcc, totalPron int
	for _, rec := range records {
		if rec.Timestamp.After(s.LastPractice) {
			s.LastPractice = rec.Timestamp
		}
		switch {
		case rec.Kind == model.KindTyping && rec.Typing != nil:
			s.TypingSessions++
			totalWPM += rec.Typing.WPM
			totalAcc += rec.Typing.Accuracy
			if rec.Typing.WPM > s.BestWPM {
				s.BestWPM = rec.Typing.WPM
			}
		case rec.Kind == model.KindPronounce && rec.Pronounce != nil:
			s.PronounceSessions++
			totalPron += rec.Pronounce.Score
			if rec.Pronounce.Score > s.BestPronounce {
				s.BestPronounce = rec.Pronounce.Score
			}
		}
	}
	if s.TypingSessions > 0 {
		s.AvgWPM = float64(totalWPM) / float64(s.TypingSessions)
		s.AvgAccuracy = float64(totalAcc) / float64(s.TypingSessions)
	}
	if s.PronounceSessions > 0 {
		s.AvgPronounce = float64(totalPron) / float64(s.PronounceSessions)
	}
	return s
}

// TypingSeries returns WPM and accuracy per typing record, oldest first.
func TypingSeries(records []model.PracticeRecord) (wpm, accuracy []float64) {
	for _, rec := range records {
		if rec.Kind != model.KindTyping || rec.Typing == nil {
			continue
		}
		wpm = append(wpm, float64(rec.Typing.WPM))
		accuracy = append(accuracy, float64(rec.Typing.Accuracy))
	}
	return wpm, accuracy
}

// PronounceSeries returns the score per pronunciation record, oldest first.
func PronounceSeries(records []model.PracticeRecord) []float64 {
	var out []float64
	for _, rec := range records {
		if rec.Kind != model.KindPronounce || rec.Pronounce == nil {
			continue
		}
		out = append(out, float64(rec.Pronounce.Score))
	}
	return out
}

// RenderSummary prints the summary, streak and daily goals.
func RenderSummary(w io.Writer, s Summary, streak model.Streak, goals []model.Goal) error {
	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	if s.Sessions() == 0 {
		if _, err := fmt.Fprintln(w, "No sessions found."); err != nil {
			return err
		}
	} else {
		rows := [][]string{
			{"Typing sessions", fmt.Sprintf("%d", s.TypingSessions)},
			{"Avg WPM", fmt.Sprintf("%.1f", s.AvgWPM)},
			{"Best WPM", fmt.Sprintf("%d", s.BestWPM)},
			{"Avg Accuracy", fmt.Sprintf("%.1f%%", s.AvgAccuracy)},
			{"Pronunciation sessions", fmt.Sprintf("%d", s.PronounceSessions)},
			{"Avg Pronunciation", fmt.Sprintf("%.1f%%", s.AvgPronounce)},
			{"Best Pronunciation", fmt.Sprintf("%d%%", s.BestPronounce)},
		}
		if err := (Table{Rows: rows, Right: []int{1}}).Fprint(w); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "Streak: %d day(s)\n\n", streak.Count); err != nil {
		return err
	}

	if len(goals) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "Daily Goals"); err != nil {
		return err
	}
	headers := []string{"Goal", "Progress", "Target", "Done"}
	rows := make([][]string, 0, len(goals))
	for _, g := range goals {
		done := ""
		if g.Done {
			done = "yes"
		}
		rows = append(rows, []string{
			g.Label,
			fmt.Sprintf("%d", g.Progress),
			fmt.Sprintf("%d", g.Target),
			done,
		})
	}
	if err := (Table{Headers: headers, Rows: rows, Right: []int{1, 2}}).Fprint(w); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderCurves prints sparkline learning curves smoothed over window.
func RenderCurves(w io.Writer, records []model.PracticeRecord, window, width int) error {
	wpm, acc := TypingSeries(records)
	pron := PronounceSeries(records)
	if len(wpm) == 0 && len(pron) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "Learning Curves"); err != nil {
		return err
	}
	curves := []struct {
		name   string
		values []float64
	}{
		{"WPM", wpm},
		{"Accuracy", acc},
		{"Pronunciation", pron},
	}
	for _, c := range curves {
		if len(c.values) == 0 {
			continue
		}
		smoothed := MovingAverage(c.values, window)
		lo, hi := minMax(smoothed)
		if _, err := fmt.Fprintf(w, "%-13s %s  min=%.1f max=%.1f\n", c.name, Sparkline(smoothed, width), lo, hi); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}
