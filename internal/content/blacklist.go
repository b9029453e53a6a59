package content

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// BlacklistConfig seeds a blacklist loader with its initial word sets.
type BlacklistConfig struct {
	DefaultWords  []string
	CustomWords   []string
	Locale        string
	CaseSensitive bool
}

// DefaultBlacklistConfig returns an empty case-insensitive blacklist for the
// "en" locale.
func DefaultBlacklistConfig() BlacklistConfig {
	return BlacklistConfig{Locale: "en"}
}

// BlacklistLoader manages the combined set of blacklisted words. The default
// set stays fixed; words added or removed at runtime affect the custom set
// only.
type BlacklistLoader struct {
	caseSensitive bool
	defaultWords  map[string]struct{}
	customWords   map[string]struct{}
	combined      map[string]struct{}
}

// NewBlacklistLoader creates a loader holding the configured word sets.
func NewBlacklistLoader(config BlacklistConfig) *BlacklistLoader {
	loader := &BlacklistLoader{
		caseSensitive: config.CaseSensitive,
		defaultWords:  make(map[string]struct{}),
		customWords:   make(map[string]struct{}),
	}
	for _, word := range config.DefaultWords {
		loader.defaultWords[word] = struct{}{}
	}
	for _, word := range config.CustomWords {
		loader.customWords[word] = struct{}{}
	}
	loader.rebuild()
	return loader
}

// rebuild recomputes the combined set from the default and custom sets.
func (loader *BlacklistLoader) rebuild() {
	loader.combined = make(map[string]struct{}, len(loader.defaultWords)+len(loader.customWords))
	for word := range loader.defaultWords {
		loader.combined[loader.normalize(word)] = struct{}{}
	}
	for word := range loader.customWords {
		loader.combined[loader.normalize(word)] = struct{}{}
	}
}

func (loader *BlacklistLoader) normalize(word string) string {
	if loader.caseSensitive {
		return word
	}
	return strings.ToLower(word)
}

// LoadFromFile merges words from a blacklist file into the custom set.
// JSON and YAML files hold an array of words; any other extension is read
// as one word per line with blank lines skipped.
func (loader *BlacklistLoader) LoadFromFile(filePath string) error {
	fileContent, readError := os.ReadFile(filePath)
	if readError != nil {
		return fmt.Errorf("read blacklist file %s: %w", filePath, readError)
	}

	var words []string
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".json":
		if unmarshalError := json.Unmarshal(fileContent, &words); unmarshalError != nil {
			return fmt.Errorf("parse blacklist file %s: %w", filePath, unmarshalError)
		}
	case ".yaml", ".yml":
		if unmarshalError := yaml.Unmarshal(fileContent, &words); unmarshalError != nil {
			return fmt.Errorf("parse blacklist file %s: %w", filePath, unmarshalError)
		}
	default:
		for _, line := range strings.Split(string(fileContent), "\n") {
			if trimmed := strings.TrimSpace(line); trimmed != "" {
				words = append(words, trimmed)
			}
		}
	}

	loader.AddWords(words...)
	return nil
}

// AddWords adds words to the custom blacklist.
func (loader *BlacklistLoader) AddWords(words ...string) {
	for _, word := range words {
		loader.customWords[word] = struct{}{}
	}
	loader.rebuild()
}

// RemoveWords removes words from the custom blacklist. Words in the default
// set stay blacklisted.
func (loader *BlacklistLoader) RemoveWords(words ...string) {
	for _, word := range words {
		delete(loader.customWords, word)
	}
	loader.rebuild()
}

// IsBlacklisted reports whether a word is in the combined blacklist.
func (loader *BlacklistLoader) IsBlacklisted(word string) bool {
	_, found := loader.combined[loader.normalize(word)]
	return found
}

// Words returns the combined blacklist in sorted order.
func (loader *BlacklistLoader) Words() []string {
	words := make([]string, 0, len(loader.combined))
	for word := range loader.combined {
		words = append(words, word)
	}
	sort.Strings(words)
	return words
}
