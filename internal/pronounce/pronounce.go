// Package pronounce grades a recognized transcript against a reference text.
//
// Word grading is positional: reference word i is compared with recognized
// word i only. A dropped or inserted word shifts every later comparison.
package pronounce

import (
	"strings"
	"time"

	"github.com/verte-zerg/storytype/internal/model"
	"github.com/verte-zerg/storytype/internal/similarity"
	"github.com/verte-zerg/storytype/internal/textutil"
)

// IncorrectThreshold is the per-word score below which a word counts as mispronounced.
const IncorrectThreshold = 75

// Result is the outcome of grading one utterance.
type Result struct {
	Score          int
	WordScores     []model.WordScore
	IncorrectWords []string
}

// Record converts the result into a PronounceRecord stamped at ts.
func (r Result) Record(ts time.Time) model.PracticeRecord {
	return model.NewPronounceRecord(model.PronounceRecord{
		Score:      r.Score,
		WordScores: r.WordScores,
	}, ts)
}

// Score grades recognized against reference. It reports false when the
// transcript is blank, in which case no record should be produced.
func Score(reference, recognized string) (Result, bool) {
	spoken := strings.TrimSpace(recognized)
	if spoken == "" {
		return Result{}, false
	}
	refWords := strings.Fields(reference)
	spokenWords := strings.Fields(spoken)

	res := Result{
		Score:      similarity.Score(reference, spoken),
		WordScores: make([]model.WordScore, 0, len(refWords)),
	}
	seen := map[string]struct{}{}
	for i, word := range refWords {
		said := ""
		if i < len(spokenWords) {
			said = spokenWords[i]
		}
		cleanRef := cleanWord(word)
		score := similarity.Score(cleanRef, cleanWord(said))
		res.WordScores = append(res.WordScores, model.WordScore{Word: word, Score: score})
		if score >= IncorrectThreshold {
			continue
		}
		if _, ok := seen[cleanRef]; ok {
			continue
		}
		seen[cleanRef] = struct{}{}
		res.IncorrectWords = append(res.IncorrectWords, cleanRef)
	}
	return res, true
}

func cleanWord(word string) string {
	return strings.ToLower(textutil.StripPunct(word))
}
