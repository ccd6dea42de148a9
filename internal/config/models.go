package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ModelList is the ordered fallback configuration: the primary model first,
// then each fallback in attempt order. Read-only after startup.
type ModelList struct {
	Primary   string   `yaml:"primary"`
	Fallbacks []string `yaml:"fallbacks"`
}

// Candidates returns primary + fallbacks as one ordered list.
func (m ModelList) Candidates() []string {
	out := make([]string, 0, 1+len(m.Fallbacks))
	out = append(out, m.Primary)
	out = append(out, m.Fallbacks...)
	return out
}

// DefaultModels mirrors the stable Gemini line the app shipped with.
func DefaultModels() ModelList {
	return ModelList{
		Primary:   "gemini-2.5-flash",
		Fallbacks: []string{"gemini-2.5-pro", "gemini-2.0-flash"},
	}
}

// LoadModels reads the candidate list from a YAML file, falling back to the
// GEMINI_MODELS env var (comma-separated, primary first) and then to the
// built-in defaults. A file that exists but cannot be parsed falls through
// to the next source rather than failing startup.
func LoadModels(path string) ModelList {
	if path != "" {
		if data, err := os.ReadFile(path); err == nil {
			var m ModelList
			if err := yaml.Unmarshal(data, &m); err == nil && m.Primary != "" {
				return m
			}
		}
	}

	if env := os.Getenv("GEMINI_MODELS"); env != "" {
		parts := strings.Split(env, ",")
		var names []string
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				names = append(names, p)
			}
		}
		if len(names) > 0 {
			return ModelList{Primary: names[0], Fallbacks: names[1:]}
		}
	}

	return DefaultModels()
}
