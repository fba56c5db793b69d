// Package glossary maps story words to translations per language.
package glossary

import (
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/antzucaro/matchr"

	"github.com/verte-zerg/storytype/internal/textutil"
)

// SuggestThreshold is the minimum Jaro-Winkler similarity for a suggestion.
const SuggestThreshold = 0.85

// Glossary holds normalized word keys to translations, per language.
type Glossary map[string]map[string]string

// Default returns the glossary for the built-in story.
func Default() Glossary {
	return Glossary{
		"hi": {
			"wise": "बुद्धिमान", "carpenter": "बढ़ई", "taught": "सिखाया", "apprentice": "शिष्य", "lesson": "सबक", "said": "कहा",
			"measure": "मापो", "twice": "दो बार", "cut": "काटो", "once": "एक बार", "learned": "सीखा", "value": "महत्व",
			"careful": "सावधान", "planning": "योजना", "preparation": "तैयारी", "before": "पहले", "starting": "शुरू करने", "any": "कोई", "task": "कार्य",
		},
		"te": {
			"wise": "జ్ఞాని", "carpenter": "వడ్రంగి", "taught": "బోధించాడు", "apprentice": "శిష్యుడు", "lesson": "పాఠం", "said": "అన్నాడు",
			"measure": "కొలవండి", "twice": "రెండుసార్లు", "cut": "కోయండి", "once": "ఒకసారి", "learned": "నేర్చుకున్నాడు", "value": "విలువ",
			"careful": "జాగ్రత్తగా", "planning": "ప్రణాళిక", "preparation": "తయారీ", "before": "ముందు", "starting": "ప్రారంభించే", "any": "ఏదైనా", "task": "పని",
		},
	}
}

// LoadFile decodes a TOML glossary where each table is a language:
//
//	[hi]
//	river = "नदी"
func LoadFile(path string) (Glossary, error) {
	raw := map[string]map[string]string{}
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse glossary: %w", err)
	}
	g := Glossary{}
	for lang, words := range raw {
		for word, translation := range words {
			g.Add(lang, word, translation)
		}
	}
	return g, nil
}

// Add stores a translation. Words that normalize to an empty key are ignored.
func (g Glossary) Add(lang, word, translation string) {
	key := textutil.NormalizeKey(word)
	lang = strings.ToLower(strings.TrimSpace(lang))
	translation = strings.TrimSpace(translation)
	if key == "" || lang == "" || translation == "" {
		return
	}
	words, ok := g[lang]
	if !ok {
		words = map[string]string{}
		g[lang] = words
	}
	words[key] = translation
}

// Merge copies other into g, overriding existing entries.
func (g Glossary) Merge(other Glossary) {
	for lang, words := range other {
		for word, translation := range words {
			g.Add(lang, word, translation)
		}
	}
}

// Lookup returns the translation of word as it appears in a story.
func (g Glossary) Lookup(lang, word string) (string, bool) {
	key := textutil.NormalizeKey(word)
	if key == "" {
		return "", false
	}
	translation, ok := g[strings.ToLower(lang)][key]
	return translation, ok
}

// Suggest returns the closest known word when word itself is missing.
func (g Glossary) Suggest(lang, word string) (string, bool) {
	key := textutil.NormalizeKey(word)
	if key == "" {
		return "", false
	}
	words := g[strings.ToLower(lang)]
	best := ""
	bestScore := 0.0
	for _, candidate := range sortedKeys(words) {
		score := matchr.JaroWinkler(key, candidate, false)
		if score > bestScore {
			best = candidate
			bestScore = score
		}
	}
	if best == "" || bestScore < SuggestThreshold {
		return "", false
	}
	return best, true
}

// Languages returns the language codes in sorted order.
func (g Glossary) Languages() []string {
	return sortedKeys(g)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
