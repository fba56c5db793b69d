// Package model defines shared data structures.
package model

import "time"

// RecordKind tags a PracticeRecord.
type RecordKind string

const (
	KindTyping    RecordKind = "typing"
	KindPronounce RecordKind = "pronounce"
)

// TypingRecord captures a completed typing session.
type TypingRecord struct {
	WPM        int `json:"wpm"`
	Accuracy   int `json:"accuracy"`
	TypedChars int `json:"typedChars"`
}

// WordScore is the pronunciation score of a single reference word.
type WordScore struct {
	Word  string `json:"word"`
	Score int    `json:"score"`
}

// PronounceRecord captures a graded pronunciation attempt.
type PronounceRecord struct {
	Score      int         `json:"score"`
	WordScores []WordScore `json:"wordScores"`
}

// PracticeRecord is a tagged union of TypingRecord and PronounceRecord.
// Exactly one of Typing or Pronounce is set, matching Kind.
type PracticeRecord struct {
	Kind      RecordKind       `json:"type"`
	Timestamp time.Time        `json:"ts"`
	Typing    *TypingRecord    `json:"typing,omitempty"`
	Pronounce *PronounceRecord `json:"pronounce,omitempty"`
}

// NewTypingRecord builds a typing PracticeRecord.
func NewTypingRecord(rec TypingRecord, ts time.Time) PracticeRecord {
	return PracticeRecord{Kind: KindTyping, Timestamp: ts, Typing: &rec}
}

// NewPronounceRecord builds a pronunciation PracticeRecord. The word scores
// are copied so the record does not alias the caller's slice.
func NewPronounceRecord(rec PronounceRecord, ts time.Time) PracticeRecord {
	rec.WordScores = append([]WordScore(nil), rec.WordScores...)
	return PracticeRecord{Kind: KindPronounce, Timestamp: ts, Pronounce: &rec}
}

// Goal is a daily target.
type Goal struct {
	ID       string `json:"id" toml:"id"`
	Label    string `json:"label" toml:"label"`
	Target   int    `json:"target" toml:"target"`
	Progress int    `json:"progress" toml:"-"`
	Done     bool   `json:"done" toml:"-"`
}

// Streak counts consecutive practice days. A zero Last means no activity yet.
type Streak struct {
	Count int       `json:"count"`
	Last  time.Time `json:"last"`
}
