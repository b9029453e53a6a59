package content

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/unicode/runenames"
)

// ExtractorConfig controls which emoji forms are collected from message
// content.
type ExtractorConfig struct {
	ExtractUnicodeEmoji bool
	ExtractTextEmoji    bool
	CategorizeEmoji     bool
	// TextEmojiPatterns maps an emotion category to the emoticon patterns
	// that express it.
	TextEmojiPatterns map[string][]string
}

// DefaultExtractorConfig returns the extraction defaults covering the common
// ASCII emoticons.
func DefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		ExtractUnicodeEmoji: true,
		ExtractTextEmoji:    true,
		CategorizeEmoji:     true,
		TextEmojiPatterns: map[string][]string{
			"happy":    {`:+\)`, `:+D`, `\(+:`, `=\)`},
			"sad":      {`:-?\(`, `=\(`, `;\(`},
			"wink":     {`;-?\)`, `;-?D`},
			"laugh":    {`xD`, `XD`},
			"surprise": {`:o`, `:O`, `=O`},
			"love":     {`<3`, "♥"},
		},
	}
}

// UnicodeEmojiSummary describes the unicode emoji found in a text.
// Positions are byte offsets into the analyzed string.
type UnicodeEmojiSummary struct {
	Count      int            `json:"count"`
	Emoji      []string       `json:"emoji,omitempty"`
	Positions  []int          `json:"positions,omitempty"`
	Categories map[string]int `json:"categories,omitempty"`
}

// TextEmojiSummary describes the ASCII emoticons found in a text.
// Positions are byte offsets into the analyzed string.
type TextEmojiSummary struct {
	Count      int                 `json:"count"`
	ByCategory map[string][]string `json:"by_category,omitempty"`
	Positions  []int               `json:"positions,omitempty"`
}

// EmojiExtraction is the combined result of one extraction pass.
type EmojiExtraction struct {
	UnicodeEmoji UnicodeEmojiSummary `json:"unicode_emoji"`
	TextEmoji    TextEmojiSummary    `json:"text_emoji"`
}

// TotalCount returns the number of emoji of both forms.
func (extraction EmojiExtraction) TotalCount() int {
	return extraction.UnicodeEmoji.Count + extraction.TextEmoji.Count
}

// EmojiExtractor collects unicode emoji and ASCII emoticons from message
// content.
type EmojiExtractor struct {
	config     ExtractorConfig
	categories []string
	patterns   map[string]*regexp.Regexp
}

// NewEmojiExtractor creates an extractor with the supplied configuration.
func NewEmojiExtractor(config ExtractorConfig) *EmojiExtractor {
	extractor := &EmojiExtractor{
		config:   config,
		patterns: make(map[string]*regexp.Regexp, len(config.TextEmojiPatterns)),
	}
	for category, patterns := range config.TextEmojiPatterns {
		extractor.categories = append(extractor.categories, category)
		extractor.patterns[category] = regexp.MustCompile(strings.Join(patterns, "|"))
	}
	sort.Strings(extractor.categories)
	return extractor
}

// isEmojiRune reports whether the rune falls in one of the emoji blocks:
// Miscellaneous Symbols and Pictographs, Miscellaneous Symbols, Dingbats,
// or Emoticons.
func isEmojiRune(character rune) bool {
	return (character >= 0x1F300 && character <= 0x1F9FF) ||
		(character >= 0x2600 && character <= 0x26FF) ||
		(character >= 0x2700 && character <= 0x27BF) ||
		(character >= 0x1F600 && character <= 0x1F64F)
}

// CategorizeEmoji maps an emoji rune to a general emotion by its unicode
// name. Runes without a name categorize as "unknown".
func CategorizeEmoji(character rune) string {
	name := strings.ToLower(runenames.Name(character))
	if name == "" {
		return "unknown"
	}
	switch {
	case containsAny(name, "smiling", "grin", "joy"):
		return "happy"
	case containsAny(name, "sad", "cry", "tear"):
		return "sad"
	case containsAny(name, "heart", "love"):
		return "love"
	case containsAny(name, "surprise", "astonish"):
		return "surprise"
	default:
		return "other"
	}
}

func containsAny(name string, words ...string) bool {
	for _, word := range words {
		if strings.Contains(name, word) {
			return true
		}
	}
	return false
}

// ExtractEmoji analyzes the text and returns every emoji found, with
// categories when configured.
func (extractor *EmojiExtractor) ExtractEmoji(text string) EmojiExtraction {
	extraction := EmojiExtraction{}

	if extractor.config.ExtractUnicodeEmoji {
		for position, character := range text {
			if !isEmojiRune(character) {
				continue
			}
			extraction.UnicodeEmoji.Count++
			extraction.UnicodeEmoji.Emoji = append(extraction.UnicodeEmoji.Emoji, string(character))
			extraction.UnicodeEmoji.Positions = append(extraction.UnicodeEmoji.Positions, position)
			if extractor.config.CategorizeEmoji {
				if extraction.UnicodeEmoji.Categories == nil {
					extraction.UnicodeEmoji.Categories = make(map[string]int)
				}
				extraction.UnicodeEmoji.Categories[CategorizeEmoji(character)]++
			}
		}
	}

	if extractor.config.ExtractTextEmoji {
		for _, category := range extractor.categories {
			matches := extractor.patterns[category].FindAllStringIndex(text, -1)
			if len(matches) == 0 {
				continue
			}
			if extraction.TextEmoji.ByCategory == nil {
				extraction.TextEmoji.ByCategory = make(map[string][]string)
			}
			for _, match := range matches {
				extraction.TextEmoji.Count++
				extraction.TextEmoji.ByCategory[category] = append(
					extraction.TextEmoji.ByCategory[category], text[match[0]:match[1]])
				extraction.TextEmoji.Positions = append(extraction.TextEmoji.Positions, match[0])
			}
		}
	}

	return extraction
}
