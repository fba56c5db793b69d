// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/storytype/internal/model"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Practice PracticeConfig `toml:"practice"`
	Goals    []model.Goal   `toml:"goals"`
	Files    FilesConfig    `toml:"files"`
}

// PracticeConfig maps practice-related settings.
type PracticeConfig struct {
	Lang        *string  `toml:"lang"`
	Drill       *bool    `toml:"drill"`
	DrillWords  *int     `toml:"drill-words"`
	DrillFactor *float64 `toml:"drill-factor"`
}

// FilesConfig maps optional data file locations.
type FilesConfig struct {
	Glossary *string `toml:"glossary"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	for i, g := range cfg.Goals {
		if g.ID == "" {
			return FileConfig{}, fmt.Errorf("goal %d has no id", i+1)
		}
		if g.Label == "" {
			cfg.Goals[i].Label = g.ID
		}
	}
	return cfg, nil
}

// Template is written by the config command when no file exists.
const Template = `# storytype configuration

[practice]
# lang = "hi"
# drill = false
# drill-words = 25
# drill-factor = 2.0

# [[goals]]
# id = "type50"
# label = "Type 50 chars"
# target = 50

# [[goals]]
# id = "pron10"
# label = "Practice 10 words"
# target = 10

[files]
# glossary = "~/.config/storytype/glossary.toml"
`
