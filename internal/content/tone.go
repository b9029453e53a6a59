package content

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ToneStats reports how many rewrites a tone pass made.
type ToneStats struct {
	WordsReplaced int
	PhrasesAdded  int
	PrefixesAdded int
}

// PositiveToneConfig controls the substitutions applied when shifting
// content toward a positive tone.
type PositiveToneConfig struct {
	// WordReplacements maps negative words to positive alternatives.
	WordReplacements map[string]string
	// PhraseAdditions maps a negative word to softening phrases attached
	// after its replacement. The first phrase is used.
	PhraseAdditions map[string][]string
	// PositivePrefixes are prepended to sentences that open negatively.
	PositivePrefixes       []string
	PreserveCodeBlocks     bool
	PreserveTechnicalTerms bool
	MaintainContext        bool
}

// DefaultPositiveToneConfig returns the positive tone defaults.
func DefaultPositiveToneConfig() PositiveToneConfig {
	return PositiveToneConfig{
		WordReplacements: map[string]string{
			"problem":    "challenge",
			"difficult":  "challenging",
			"hard":       "challenging",
			"fail":       "attempt",
			"failed":     "attempted",
			"bad":        "less than ideal",
			"issue":      "opportunity",
			"mistake":    "learning opportunity",
			"wrong":      "different",
			"impossible": "challenging",
			"terrible":   "needs improvement",
		},
		PhraseAdditions: map[string][]string{
			"can't":      {"yet", "at the moment"},
			"impossible": {"right now", "at this stage"},
			"failed":     {"this time", "in this attempt"},
		},
		PositivePrefixes: []string{
			"We can ",
			"Let's try to ",
			"We could ",
			"Consider ",
			"Perhaps we can ",
		},
		PreserveCodeBlocks:     true,
		PreserveTechnicalTerms: true,
		MaintainContext:        true,
	}
}

// negativeSentenceStarts trigger a positive prefix when a sentence opens
// with one of them.
var negativeSentenceStarts = []string{"can't", "cannot", "don't", "won't", "impossible"}

// PositiveToneApplier shifts message content toward a positive tone.
type PositiveToneApplier struct {
	config PositiveToneConfig
}

// NewPositiveToneApplier creates an applier with the supplied configuration.
func NewPositiveToneApplier(config PositiveToneConfig) *PositiveToneApplier {
	return &PositiveToneApplier{config: config}
}

// ApplyPositiveTone replaces negative words, attaches softening phrases, and
// prefixes negatively opening sentences. Code segments and technical
// identifiers survive untouched when configured.
func (applier *PositiveToneApplier) ApplyPositiveTone(text string) (string, ToneStats) {
	statistics := ToneStats{}
	result := text
	mask := &segmentMask{}

	if applier.config.PreserveCodeBlocks {
		result = mask.protect(result, codeSegmentPattern, "CODE")
	}
	if applier.config.PreserveTechnicalTerms {
		result = mask.protect(result, technicalTermPattern, "TECH")
	}

	result = replaceToneWords(result, applier.config.WordReplacements, applier.config.PhraseAdditions, &statistics)

	if applier.config.MaintainContext {
		result = addSentencePrefixes(result, applier.config.PositivePrefixes, negativeSentenceStarts, &statistics)
	}

	result = mask.restore(result)

	return result, statistics
}

// NegativeToneConfig controls the substitutions applied when shifting
// content toward a negative tone.
type NegativeToneConfig struct {
	// WordReplacements maps positive words to deflating alternatives.
	WordReplacements map[string]string
	// PhraseAdditions maps a positive word to doubtful phrases attached
	// after its replacement. The first phrase is used.
	PhraseAdditions map[string][]string
	// NegativePrefixes are prepended to sentences that open positively.
	NegativePrefixes        []string
	PreserveCodeBlocks      bool
	PreserveTechnicalTerms  bool
	MaintainProfessionalism bool
}

// DefaultNegativeToneConfig returns the negative tone defaults.
func DefaultNegativeToneConfig() NegativeToneConfig {
	return NegativeToneConfig{
		WordReplacements: map[string]string{
			"good":       "mediocre",
			"great":      "barely adequate",
			"excellent":  "passable",
			"amazing":    "unremarkable",
			"perfect":    "acceptable",
			"easy":       "deceptively simple",
			"simple":     "oversimplified",
			"helpful":    "marginally useful",
			"successful": "barely successful",
			"improve":    "patch",
		},
		PhraseAdditions: map[string][]string{
			"can":    {"but probably shouldn't", "though it's risky"},
			"will":   {"eventually", "somehow"},
			"should": {"if you must", "I suppose"},
		},
		NegativePrefixes: []string{
			"Unfortunately, ",
			"Regrettably, ",
			"As expected, ",
			"Predictably, ",
			"Not surprisingly, ",
		},
		PreserveCodeBlocks:      true,
		PreserveTechnicalTerms:  true,
		MaintainProfessionalism: true,
	}
}

var positiveSentenceStarts = []string{"great", "good", "excellent", "perfect", "amazing"}

// NegativeToneApplier shifts message content toward a negative tone.
type NegativeToneApplier struct {
	config NegativeToneConfig
}

// NewNegativeToneApplier creates an applier with the supplied configuration.
func NewNegativeToneApplier(config NegativeToneConfig) *NegativeToneApplier {
	return &NegativeToneApplier{config: config}
}

// ApplyNegativeTone replaces positive words, attaches doubtful phrases, and
// prefixes positively opening sentences. Code segments and technical
// identifiers survive untouched when configured.
func (applier *NegativeToneApplier) ApplyNegativeTone(text string) (string, ToneStats) {
	statistics := ToneStats{}
	result := text
	mask := &segmentMask{}

	if applier.config.PreserveCodeBlocks {
		result = mask.protect(result, codeSegmentPattern, "CODE")
	}
	if applier.config.PreserveTechnicalTerms {
		result = mask.protect(result, technicalTermPattern, "TECH")
	}

	result = replaceToneWords(result, applier.config.WordReplacements, applier.config.PhraseAdditions, &statistics)

	if applier.config.MaintainProfessionalism {
		result = addSentencePrefixes(result, applier.config.NegativePrefixes, positiveSentenceStarts, &statistics)
	}

	result = mask.restore(result)

	return result, statistics
}

// replaceToneWords rewrites each whole-word match case-insensitively,
// keeping the original capitalization. When the matched word has phrase
// additions the first one is attached after the replacement.
func replaceToneWords(text string, replacements map[string]string, additions map[string][]string, statistics *ToneStats) string {
	words := make([]string, 0, len(replacements))
	for word := range replacements {
		words = append(words, word)
	}
	sort.Strings(words)

	result := text
	for _, word := range words {
		replacement := replacements[word]
		wordPattern := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(word) + `\b`)
		result = wordPattern.ReplaceAllStringFunc(result, func(matched string) string {
			statistics.WordsReplaced++
			rewritten := replacement
			if startsUpper(matched) {
				rewritten = upperFirst(rewritten)
			}
			if attached, found := additions[word]; found && len(attached) > 0 {
				statistics.PhrasesAdded++
				rewritten = rewritten + " " + attached[0]
			}
			return rewritten
		})
	}
	return result
}

// addSentencePrefixes prepends a prefix to every sentence that opens with
// one of the trigger words. Prefixes rotate through the configured list.
// Sentences already carrying a prefix are left alone.
func addSentencePrefixes(text string, prefixes []string, triggers []string, statistics *ToneStats) string {
	if len(prefixes) == 0 {
		return text
	}

	delimiters := sentenceDelimiterPattern.FindAllStringIndex(text, -1)

	var builder strings.Builder
	builder.Grow(len(text))
	previousEnd := 0
	for _, delimiter := range delimiters {
		builder.WriteString(prefixSentence(text[previousEnd:delimiter[0]], prefixes, triggers, statistics))
		builder.WriteString(text[delimiter[0]:delimiter[1]])
		previousEnd = delimiter[1]
	}
	builder.WriteString(prefixSentence(text[previousEnd:], prefixes, triggers, statistics))

	return builder.String()
}

var sentenceDelimiterPattern = regexp.MustCompile(`[.!?]\s+`)

func prefixSentence(sentence string, prefixes []string, triggers []string, statistics *ToneStats) string {
	if strings.TrimSpace(sentence) == "" {
		return sentence
	}
	for _, prefix := range prefixes {
		if strings.HasPrefix(sentence, prefix) {
			return sentence
		}
	}
	lowered := strings.ToLower(sentence)
	for _, trigger := range triggers {
		if strings.HasPrefix(lowered, trigger) {
			prefix := prefixes[statistics.PrefixesAdded%len(prefixes)]
			statistics.PrefixesAdded++
			return prefix + sentence
		}
	}
	return sentence
}

func startsUpper(word string) bool {
	first, _ := utf8.DecodeRuneInString(word)
	return unicode.IsUpper(first)
}

func upperFirst(word string) string {
	first, width := utf8.DecodeRuneInString(word)
	if first == utf8.RuneError {
		return word
	}
	return string(unicode.ToUpper(first)) + word[width:]
}
