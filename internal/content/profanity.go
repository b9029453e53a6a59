package content

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// ReplacementConfig controls how blacklisted words are rewritten.
type ReplacementConfig struct {
	ReplacementCharacter string
	PreserveLength       bool
	WholeWordsOnly       bool
	// CustomReplacements maps a matched word to a fixed replacement,
	// overriding the replacement character.
	CustomReplacements map[string]string
}

// DefaultReplacementConfig returns the replacement defaults: whole words
// masked with one asterisk per character.
func DefaultReplacementConfig() ReplacementConfig {
	return ReplacementConfig{
		ReplacementCharacter: "*",
		PreserveLength:       true,
		WholeWordsOnly:       true,
	}
}

// ProfanityReplacer rewrites blacklisted words in message content.
type ProfanityReplacer struct {
	loader *BlacklistLoader
	config ReplacementConfig
}

// NewProfanityReplacer creates a replacer over the supplied blacklist and
// replacement configuration.
func NewProfanityReplacer(blacklistConfig BlacklistConfig, replacementConfig ReplacementConfig) *ProfanityReplacer {
	return &ProfanityReplacer{
		loader: NewBlacklistLoader(blacklistConfig),
		config: replacementConfig,
	}
}

// Blacklist exposes the underlying loader so callers can merge words from
// files or flags before processing.
func (replacer *ProfanityReplacer) Blacklist() *BlacklistLoader {
	return replacer.loader
}

// ReplaceProfanity rewrites every blacklisted word in the text. The returned
// map counts replacements per blacklist word.
func (replacer *ProfanityReplacer) ReplaceProfanity(text string) (string, map[string]int) {
	replacedCounts := make(map[string]int)
	cleanedText := text

	for _, word := range replacer.loader.Words() {
		if replacer.config.WholeWordsOnly {
			expression := `\b` + regexp.QuoteMeta(word) + `\b`
			if !replacer.loader.caseSensitive {
				expression = `(?i)` + expression
			}
			wordPattern := regexp.MustCompile(expression)

			occurrences := 0
			cleanedText = wordPattern.ReplaceAllStringFunc(cleanedText, func(matched string) string {
				occurrences++
				return replacer.replacementFor(matched)
			})
			if occurrences > 0 {
				replacedCounts[word] = occurrences
			}
			continue
		}

		if occurrences := strings.Count(cleanedText, word); occurrences > 0 {
			cleanedText = strings.ReplaceAll(cleanedText, word, replacer.replacementFor(word))
			replacedCounts[word] = occurrences
		}
	}

	return cleanedText, replacedCounts
}

// replacementFor returns the rewrite for one matched word.
func (replacer *ProfanityReplacer) replacementFor(matched string) string {
	if custom, found := replacer.config.CustomReplacements[matched]; found {
		return custom
	}
	if replacer.config.PreserveLength {
		return strings.Repeat(replacer.config.ReplacementCharacter, utf8.RuneCountInString(matched))
	}
	return replacer.config.ReplacementCharacter
}
