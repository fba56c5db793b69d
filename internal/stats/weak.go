package stats

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/verte-zerg/storytype/internal/model"
	"github.com/verte-zerg/storytype/internal/textutil"
)

// WeakWord is a word with its average pronunciation score.
type WeakWord struct {
	Word     string
	AvgScore float64
	Attempts int
}

// WeakWords averages per-word scores across pronunciation records and
// returns the top lowest-scoring words. Words are compared lowercased without
// '.' and ','. A non-positive top returns all.
func WeakWords(records []model.PracticeRecord, top int) []WeakWord {
	type acc struct {
		sum   int
		count int
	}
	byWord := map[string]*acc{}
	for _, rec := range records {
		if rec.Kind != model.KindPronounce || rec.Pronounce == nil {
			continue
		}
		for _, ws := range rec.Pronounce.WordScores {
			word := strings.ToLower(textutil.StripPunct(ws.Word))
			if word == "" {
				continue
			}
			a, ok := byWord[word]
			if !ok {
				a = &acc{}
				byWord[word] = a
			}
			a.sum += ws.Score
			a.count++
		}
	}

	out := make([]WeakWord, 0, len(byWord))
	for word, a := range byWord {
		out = append(out, WeakWord{
			Word:     word,
			AvgScore: float64(a.sum) / float64(a.count),
			Attempts: a.count,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AvgScore == out[j].AvgScore {
			return out[i].Word < out[j].Word
		}
		return out[i].AvgScore < out[j].AvgScore
	})
	if top > 0 && top < len(out) {
		out = out[:top]
	}
	return out
}

// RenderWeakWords prints the weak words table.
func RenderWeakWords(w io.Writer, weak []WeakWord) error {
	if len(weak) == 0 {
		_, err := fmt.Fprintln(w, "No pronunciation stats found.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Weak Words"); err != nil {
		return err
	}
	headers := []string{"Word", "Avg Score", "Attempts"}
	rows := make([][]string, 0, len(weak))
	for _, ww := range weak {
		rows = append(rows, []string{
			ww.Word,
			fmt.Sprintf("%.1f%%", ww.AvgScore),
			fmt.Sprintf("%d", ww.Attempts),
		})
	}
	if err := (Table{Headers: headers, Rows: rows, Right: []int{1, 2}}).Fprint(w); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderWordScores prints per-word pronunciation scores, marking those below threshold.
func RenderWordScores(w io.Writer, scores []model.WordScore, threshold int) error {
	headers := []string{"Word", "Score", ""}
	rows := make([][]string, 0, len(scores))
	for _, ws := range scores {
		mark := ""
		if ws.Score < threshold {
			mark = "retry"
		}
		rows = append(rows, []string{ws.Word, fmt.Sprintf("%d%%", ws.Score), mark})
	}
	return Table{Headers: headers, Rows: rows, Right: []int{1}}.Fprint(w)
}
