// Package story loads and stores the reference texts used for practice.
package story

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/oklog/ulid/v2"
	"gopkg.in/yaml.v3"
)

// Story is a practice text with optional translations keyed by language code.
type Story struct {
	ID           string            `json:"id" yaml:"id,omitempty"`
	Title        string            `json:"title" yaml:"title"`
	Text         string            `json:"text" yaml:"text"`
	Translations map[string]string `json:"translations,omitempty" yaml:"translations,omitempty"`
}

// Translation returns the translation for lang, if any.
func (s Story) Translation(lang string) (string, bool) {
	t, ok := s.Translations[strings.ToLower(lang)]
	return t, ok && t != ""
}

// Default returns the built-in story.
func Default() Story {
	return Story{
		ID:    "initial_story",
		Title: "The Wise Carpenter",
		Text:  `A wise carpenter taught his apprentice a lesson. He said, "Measure twice, cut once." The apprentice learned the value of careful planning and preparation before starting any task.`,
		Translations: map[string]string{
			"hi": `एक बुद्धिमान बढ़ई ने अपने शिष्य को एक सबक सिखाया। उसने कहा, "दो बार मापो, एक बार काटो।" शिष्य ने किसी भी कार्य को शुरू करने से पहले सावधानीपूर्वक योजना और तैयारी का मूल्य सीखा।`,
			"te": `ఒక తెలివైన వడ్రంగి తన శిష్యుడికి ఒక పాఠం నేర్పించాడు. అతను, "రెండుసార్లు కొలవండి, ఒకసారి కత్తిరించండి" అన్నాడు. శిష్యుడు ఏదైనా పని ప్రారంభించే ముందు జాగ్రత్తగా ప్రణాళిక మరియు తయారీ యొక్క విలువను నేర్చుకున్నాడు.`,
		},
	}
}

// NewID returns a fresh story id.
func NewID() string {
	return ulid.Make().String()
}

// LoadFile reads a story from a YAML file (.yaml, .yml) or a plain text file.
// Plain text stories take their title from the file name.
func LoadFile(path string) (Story, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Story{}, fmt.Errorf("failed to read story: %w", err)
	}
	var st Story
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		st, err = Decode(bytes.NewReader(data))
		if err != nil {
			return Story{}, fmt.Errorf("failed to parse story %q: %w", path, err)
		}
	default:
		base := filepath.Base(path)
		st = Story{
			Title: strings.TrimSuffix(base, filepath.Ext(base)),
			Text:  string(data),
		}
	}
	return normalize(st)
}

// Decode parses a YAML story document. Unknown fields are rejected.
func Decode(r io.Reader) (Story, error) {
	var st Story
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&st); err != nil {
		return Story{}, err
	}
	return st, nil
}

func normalize(st Story) (Story, error) {
	st.Text = strings.Join(strings.Fields(st.Text), " ")
	st.Title = strings.TrimSpace(st.Title)
	if st.Text == "" {
		return Story{}, fmt.Errorf("story text is empty")
	}
	if st.Title == "" {
		st.Title = "Untitled"
	}
	if st.ID == "" {
		st.ID = NewID()
	}
	if len(st.Translations) > 0 {
		translations := make(map[string]string, len(st.Translations))
		for lang, text := range st.Translations {
			translations[strings.ToLower(strings.TrimSpace(lang))] = strings.TrimSpace(text)
		}
		st.Translations = translations
	}
	return st, nil
}
