package content

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// FormatterConfig controls how emoji are rewritten in message content.
type FormatterConfig struct {
	NormalizeTextEmoji bool
	UnicodeToText      bool
	TextToUnicode      bool
	// LimitEmoji caps the number of emoji kept. Zero means no limit.
	LimitEmoji   int
	EmojiSpacing bool
	// TextToUnicodeMap maps ASCII emoticons to unicode emoji.
	TextToUnicodeMap map[string]string
	// UnicodeToTextMap maps unicode emoji back to ASCII emoticons.
	UnicodeToTextMap map[string]string
}

// DefaultFormatterConfig returns the formatting defaults: emoticons
// normalized and converted to unicode emoji with spacing repaired.
func DefaultFormatterConfig() FormatterConfig {
	return FormatterConfig{
		NormalizeTextEmoji: true,
		UnicodeToText:      false,
		TextToUnicode:      true,
		EmojiSpacing:       true,
		TextToUnicodeMap: map[string]string{
			":)": "\U0001F60A",
			":(": "\U0001F622",
			":D": "\U0001F603",
			";)": "\U0001F609",
			"<3": "❤️",
			":P": "\U0001F61B",
			":O": "\U0001F62E",
			"xD": "\U0001F606",
		},
		UnicodeToTextMap: map[string]string{
			"\U0001F60A":   ":)",
			"\U0001F622":   ":(",
			"\U0001F603":   ":D",
			"\U0001F609":   ";)",
			"❤️": "<3",
			"\U0001F61B":   ":P",
			"\U0001F62E":   ":O",
			"\U0001F606":   "xD",
		},
	}
}

// EmojiFormatStats reports how many rewrites a formatting pass made.
type EmojiFormatStats struct {
	TextEmojiNormalized int
	TextToUnicode       int
	UnicodeToText       int
	EmojiLimited        int
	SpacingFixed        int
}

// emoticonNormalization rewrites one emoticon variant to its standard form.
type emoticonNormalization struct {
	pattern     *regexp.Regexp
	replacement string
}

var emoticonNormalizations = []emoticonNormalization{
	{pattern: regexp.MustCompile(`:-?\)`), replacement: ":)"},
	{pattern: regexp.MustCompile(`:-?\(`), replacement: ":("},
	{pattern: regexp.MustCompile(`;-?\)`), replacement: ";)"},
	{pattern: regexp.MustCompile(`:-?D`), replacement: ":D"},
	{pattern: regexp.MustCompile(`:-?P`), replacement: ":P"},
	{pattern: regexp.MustCompile(`:-?O`), replacement: ":O"},
}

var (
	emojiThenTextPattern = regexp.MustCompile(`([\x{1F300}-\x{1F9FF}])([^\s\x{1F300}-\x{1F9FF}])`)
	textThenEmojiPattern = regexp.MustCompile(`([^\s\x{1F300}-\x{1F9FF}])([\x{1F300}-\x{1F9FF}])`)
)

// EmojiFormatter rewrites emoji in message content.
type EmojiFormatter struct {
	config    FormatterConfig
	extractor *EmojiExtractor
	anchored  map[string]*regexp.Regexp
}

// NewEmojiFormatter creates a formatter over the supplied configurations.
func NewEmojiFormatter(formatterConfig FormatterConfig, extractorConfig ExtractorConfig) *EmojiFormatter {
	formatter := &EmojiFormatter{
		config:    formatterConfig,
		extractor: NewEmojiExtractor(extractorConfig),
		anchored:  make(map[string]*regexp.Regexp, len(extractorConfig.TextEmojiPatterns)),
	}
	for category, patterns := range extractorConfig.TextEmojiPatterns {
		formatter.anchored[category] = regexp.MustCompile(`^(?:` + strings.Join(patterns, "|") + `)`)
	}
	return formatter
}

// FormatEmoji rewrites emoji in the text according to the configuration:
// emoticon variants are normalized, emoticons and unicode emoji are
// converted, the total count is capped, and spacing is repaired.
func (formatter *EmojiFormatter) FormatEmoji(text string) (string, EmojiFormatStats) {
	statistics := EmojiFormatStats{}
	result := text

	if formatter.config.NormalizeTextEmoji {
		for _, normalization := range emoticonNormalizations {
			result = normalization.pattern.ReplaceAllStringFunc(result, func(matched string) string {
				if matched != normalization.replacement {
					statistics.TextEmojiNormalized++
				}
				return normalization.replacement
			})
		}
	}

	if formatter.config.TextToUnicode {
		result = replaceEmojiMap(result, formatter.config.TextToUnicodeMap, &statistics.TextToUnicode)
	} else if formatter.config.UnicodeToText {
		result = replaceEmojiMap(result, formatter.config.UnicodeToTextMap, &statistics.UnicodeToText)
	}

	if formatter.config.LimitEmoji > 0 {
		limited, removed := formatter.limitEmojiCount(result, formatter.config.LimitEmoji)
		result = limited
		statistics.EmojiLimited = removed
	}

	if formatter.config.EmojiSpacing {
		spaced := emojiThenTextPattern.ReplaceAllString(result, "$1 $2")
		spaced = textThenEmojiPattern.ReplaceAllString(spaced, "$1 $2")
		statistics.SpacingFixed = len(spaced) - len(result)
		result = spaced
	}

	return result, statistics
}

// replaceEmojiMap applies every mapping in sorted key order and counts the
// replacements made.
func replaceEmojiMap(text string, mappings map[string]string, counter *int) string {
	keys := make([]string, 0, len(mappings))
	for key := range mappings {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	result := text
	for _, key := range keys {
		if occurrences := strings.Count(result, key); occurrences > 0 {
			result = strings.ReplaceAll(result, key, mappings[key])
			*counter += occurrences
		}
	}
	return result
}

// limitEmojiCount removes emoji beyond the cap, keeping the first ones in
// text order. It returns the rewritten text and the number removed.
func (formatter *EmojiFormatter) limitEmojiCount(text string, limit int) (string, int) {
	extraction := formatter.extractor.ExtractEmoji(text)
	if extraction.TotalCount() <= limit {
		return text, 0
	}

	type emojiOccurrence struct {
		position  int
		isUnicode bool
	}
	occurrences := make([]emojiOccurrence, 0, extraction.TotalCount())
	for _, position := range extraction.UnicodeEmoji.Positions {
		occurrences = append(occurrences, emojiOccurrence{position: position, isUnicode: true})
	}
	for _, position := range extraction.TextEmoji.Positions {
		occurrences = append(occurrences, emojiOccurrence{position: position})
	}
	sort.Slice(occurrences, func(first, second int) bool {
		return occurrences[first].position < occurrences[second].position
	})

	result := text
	removed := 0
	for index := len(occurrences) - 1; index >= limit; index-- {
		occurrence := occurrences[index]
		if occurrence.isUnicode {
			_, width := utf8.DecodeRuneInString(result[occurrence.position:])
			result = result[:occurrence.position] + result[occurrence.position+width:]
			removed++
			continue
		}
		for _, category := range formatter.extractor.categories {
			if match := formatter.anchored[category].FindString(result[occurrence.position:]); match != "" {
				result = result[:occurrence.position] + result[occurrence.position+len(match):]
				removed++
				break
			}
		}
	}

	return result, removed
}
