package stats

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/storytype/internal/model"
)

func sampleRecords() []model.PracticeRecord {
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	return []model.PracticeRecord{
		model.NewTypingRecord(model.TypingRecord{WPM: 40, Accuracy: 90, TypedChars: 100}, base),
		model.NewPronounceRecord(model.PronounceRecord{Score: 60, WordScores: []model.WordScore{
			{Word: "wise", Score: 100}, {Word: "carpenter", Score: 20},
		}}, base.Add(time.Hour)),
		model.NewTypingRecord(model.TypingRecord{WPM: 60, Accuracy: 100, TypedChars: 120}, base.Add(2*time.Hour)),
		model.NewPronounceRecord(model.PronounceRecord{Score: 80, WordScores: []model.WordScore{
			{Word: "Wise", Score: 80}, {Word: "carpenter", Score: 80}, {Word: "lesson.", Score: 40},
		}}, base.Add(3*time.Hour)),
	}
}

func TestSummarize(t *testing.T) {
	records := sampleRecords()
	s := Summarize(records)
	if s.TypingSessions != 2 || s.PronounceSessions != 2 || s.Sessions() != 4 {
		t.Fatalf("unexpected counts: %+v", s)
	}
	if s.AvgWPM != 50 || s.BestWPM != 60 || s.AvgAccuracy != 95 {
		t.Fatalf("unexpected typing summary: %+v", s)
	}
	if s.AvgPronounce != 70 || s.BestPronounce != 80 {
		t.Fatalf("unexpected pronunciation summary: %+v", s)
	}
	if !s.LastPractice.Equal(records[3].Timestamp) {
		t.Fatalf("unexpected last practice: %v", s.LastPractice)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.Sessions() != 0 || s.AvgWPM != 0 || s.AvgPronounce != 0 {
		t.Fatalf("expected zero summary, got %+v", s)
	}
}

func TestSeries(t *testing.T) {
	records := sampleRecords()
	wpm, acc := TypingSeries(records)
	if len(wpm) != 2 || wpm[0] != 40 || wpm[1] != 60 {
		t.Fatalf("unexpected wpm series: %v", wpm)
	}
	if len(acc) != 2 || acc[0] != 90 || acc[1] != 100 {
		t.Fatalf("unexpected accuracy series: %v", acc)
	}
	pron := PronounceSeries(records)
	if len(pron) != 2 || pron[0] != 60 || pron[1] != 80 {
		t.Fatalf("unexpected pronunciation series: %v", pron)
	}
}

func TestMovingAverage(t *testing.T) {
	values := []float64{1, 2, 3, 4}
	out := MovingAverage(values, 2)
	expected := []float64{1, 1.5, 2.5, 3.5}
	for i := range expected {
		if out[i] != expected[i] {
			t.Fatalf("expected %v, got %v", expected, out)
		}
	}
}

func TestSparkline(t *testing.T) {
	line := Sparkline([]float64{0, 5, 10}, 0)
	if len(line) != 3 {
		t.Fatalf("expected sparkline length 3, got %d", len(line))
	}
	if line[0] != sparkChars[0] || line[2] != sparkChars[len(sparkChars)-1] {
		t.Fatalf("unexpected sparkline: %q", line)
	}
	if got := Sparkline([]float64{3, 3}, 0); got != "++" {
		t.Fatalf("expected flat sparkline, got %q", got)
	}
	if got := Sparkline(nil, 10); got != "" {
		t.Fatalf("expected empty sparkline, got %q", got)
	}
}

func TestSparklineResamples(t *testing.T) {
	if got := Sparkline([]float64{0, 10}, 5); len(got) != 5 {
		t.Fatalf("expected stretched width 5, got %q", got)
	}
	if got := Sparkline([]float64{0, 1, 2, 3, 4, 5, 6, 7}, 4); len(got) != 4 {
		t.Fatalf("expected shrunk width 4, got %q", got)
	}
	out := resample([]float64{0, 2, 4, 6}, 2)
	if out[0] != 1 || out[1] != 5 {
		t.Fatalf("unexpected bucket averages: %v", out)
	}
	out = resample([]float64{0, 10}, 3)
	if out[0] != 0 || out[1] != 5 || out[2] != 10 {
		t.Fatalf("unexpected interpolation: %v", out)
	}
}

func TestWeakWords(t *testing.T) {
	weak := WeakWords(sampleRecords(), 2)
	if len(weak) != 2 {
		t.Fatalf("expected 2 weak words, got %d", len(weak))
	}
	if weak[0].Word != "lesson" || weak[0].AvgScore != 40 || weak[0].Attempts != 1 {
		t.Fatalf("unexpected first weak word: %+v", weak[0])
	}
	if weak[1].Word != "carpenter" || weak[1].AvgScore != 50 || weak[1].Attempts != 2 {
		t.Fatalf("unexpected second weak word: %+v", weak[1])
	}
	if all := WeakWords(sampleRecords(), 0); len(all) != 3 {
		t.Fatalf("expected all 3 words, got %d", len(all))
	}
}

func TestRenderSummary(t *testing.T) {
	var buf bytes.Buffer
	goals := []model.Goal{
		{ID: "type50", Label: "Type 50 chars", Target: 50, Progress: 50, Done: true},
		{ID: "pron10", Label: "Practice 10 words", Target: 10, Progress: 3},
	}
	if err := RenderSummary(&buf, Summarize(sampleRecords()), model.Streak{Count: 4}, goals); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Summary", "Best WPM", "Streak: 4 day(s)", "Daily Goals", "Type 50 chars", "yes"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestRenderSummaryEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSummary(&buf, Summary{}, model.Streak{}, nil); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "No sessions found.") {
		t.Fatalf("expected empty message, got %q", buf.String())
	}
}

func TestRenderCurvesAndWeakWords(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderCurves(&buf, sampleRecords(), 2, 12); err != nil {
		t.Fatalf("render curves: %v", err)
	}
	if !strings.Contains(buf.String(), "Pronunciation") {
		t.Fatalf("expected pronunciation curve, got %q", buf.String())
	}
	buf.Reset()
	if err := RenderWeakWords(&buf, WeakWords(sampleRecords(), 0)); err != nil {
		t.Fatalf("render weak: %v", err)
	}
	if !strings.Contains(buf.String(), "lesson") {
		t.Fatalf("expected weak word, got %q", buf.String())
	}
}

func TestRenderWordScores(t *testing.T) {
	var buf bytes.Buffer
	scores := []model.WordScore{{Word: "Measure", Score: 100}, {Word: "twice,", Score: 50}}
	if err := RenderWordScores(&buf, scores, 75); err != nil {
		t.Fatalf("render: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %q", lines)
	}
	if lines[1] != "Measure  100%" {
		t.Fatalf("unexpected row: %q", lines[1])
	}
	if lines[2] != "twice,    50% retry" {
		t.Fatalf("unexpected row: %q", lines[2])
	}
}
