package content

import (
	"regexp"
	"sort"
	"strings"
)

// CasualFormalityConfig controls contraction and word substitutions applied
// when lowering formality.
type CasualFormalityConfig struct {
	// Contractions maps formal phrases to their contracted forms.
	Contractions map[string]string
	// CasualWords maps formal words to casual alternatives.
	CasualWords          map[string]string
	PreserveFormalQuotes bool
	PreserveCodeBlocks   bool
}

// DefaultCasualFormalityConfig returns the casual substitution defaults.
func DefaultCasualFormalityConfig() CasualFormalityConfig {
	return CasualFormalityConfig{
		Contractions: map[string]string{
			"are not":    "aren't",
			"cannot":     "can't",
			"could not":  "couldn't",
			"did not":    "didn't",
			"does not":   "doesn't",
			"do not":     "don't",
			"had not":    "hadn't",
			"has not":    "hasn't",
			"have not":   "haven't",
			"is not":     "isn't",
			"it is":      "it's",
			"should not": "shouldn't",
			"that is":    "that's",
			"they are":   "they're",
			"was not":    "wasn't",
			"were not":   "weren't",
			"what is":    "what's",
			"will not":   "won't",
			"would not":  "wouldn't",
			"you are":    "you're",
		},
		CasualWords: map[string]string{
			"hello":         "hi",
			"goodbye":       "bye",
			"please":        "pls",
			"thanks":        "thx",
			"approximately": "about",
			"regarding":     "about",
		},
		PreserveFormalQuotes: true,
		PreserveCodeBlocks:   true,
	}
}

// CasualFormalityStats reports how many substitutions a casual pass made.
type CasualFormalityStats struct {
	ContractionsApplied int
	CasualWordsApplied  int
}

// formalityPattern is one compiled substitution. Patterns apply longest
// search string first so overlapping phrases resolve consistently.
type formalityPattern struct {
	search        string
	replacement   string
	isContraction bool
}

func compileFormalityPatterns(contractions map[string]string, words map[string]string) []formalityPattern {
	patterns := make([]formalityPattern, 0, len(contractions)+len(words))
	for search, replacement := range contractions {
		patterns = append(patterns, formalityPattern{search: search, replacement: replacement, isContraction: true})
	}
	for search, replacement := range words {
		patterns = append(patterns, formalityPattern{search: search, replacement: replacement})
	}
	sort.Slice(patterns, func(first, second int) bool {
		if len(patterns[first].search) != len(patterns[second].search) {
			return len(patterns[first].search) > len(patterns[second].search)
		}
		return patterns[first].search < patterns[second].search
	})
	return patterns
}

// CasualFormalitySetter lowers the formality of message content.
type CasualFormalitySetter struct {
	config   CasualFormalityConfig
	patterns []formalityPattern
}

// NewCasualFormalitySetter creates a setter with the supplied configuration.
func NewCasualFormalitySetter(config CasualFormalityConfig) *CasualFormalitySetter {
	return &CasualFormalitySetter{
		config:   config,
		patterns: compileFormalityPatterns(config.Contractions, config.CasualWords),
	}
}

// SetCasualFormality applies contractions and casual word substitutions.
// Quoted text and code segments survive untouched when configured.
func (setter *CasualFormalitySetter) SetCasualFormality(text string) (string, CasualFormalityStats) {
	statistics := CasualFormalityStats{}
	result := text
	mask := &segmentMask{}

	if setter.config.PreserveFormalQuotes {
		result = mask.protect(result, quotedSegmentPattern, "QUOTE")
	}
	if setter.config.PreserveCodeBlocks {
		result = mask.protect(result, codeSegmentPattern, "CODE")
	}

	for _, pattern := range setter.patterns {
		occurrences := strings.Count(result, pattern.search)
		if occurrences == 0 {
			continue
		}
		result = strings.ReplaceAll(result, pattern.search, pattern.replacement)
		if pattern.isContraction {
			statistics.ContractionsApplied += occurrences
		} else {
			statistics.CasualWordsApplied += occurrences
		}
	}

	result = mask.restore(result)

	return result, statistics
}

// FormalFormalityConfig controls contraction expansion and word
// substitutions applied when raising formality.
type FormalFormalityConfig struct {
	// ExpandContractions maps contracted forms to their expansions.
	ExpandContractions map[string]string
	// FormalWords maps casual words to formal alternatives.
	FormalWords          map[string]string
	CapitalizeSentences  bool
	StandardizeGreetings bool
	PreserveCodeBlocks   bool
}

// DefaultFormalFormalityConfig returns the formal substitution defaults.
func DefaultFormalFormalityConfig() FormalFormalityConfig {
	return FormalFormalityConfig{
		ExpandContractions: map[string]string{
			"aren't":    "are not",
			"can't":     "cannot",
			"couldn't":  "could not",
			"didn't":    "did not",
			"doesn't":   "does not",
			"don't":     "do not",
			"hadn't":    "had not",
			"hasn't":    "has not",
			"haven't":   "have not",
			"isn't":     "is not",
			"it's":      "it is",
			"shouldn't": "should not",
			"that's":    "that is",
			"they're":   "they are",
			"wasn't":    "was not",
			"weren't":   "were not",
			"what's":    "what is",
			"won't":     "will not",
			"wouldn't":  "would not",
			"you're":    "you are",
		},
		FormalWords: map[string]string{
			"hi":    "hello",
			"hey":   "hello",
			"bye":   "goodbye",
			"pls":   "please",
			"thx":   "thanks",
			"about": "regarding",
			"ok":    "acceptable",
		},
		CapitalizeSentences:  true,
		StandardizeGreetings: true,
		PreserveCodeBlocks:   true,
	}
}

// FormalFormalityStats reports how many rewrites a formal pass made.
type FormalFormalityStats struct {
	ContractionsExpanded  int
	FormalWordsApplied    int
	SentencesCapitalized  int
	GreetingsStandardized int
}

var sentenceStartPattern = regexp.MustCompile(`([.!?]\s+|^)(\s*)([a-z])`)

// greetingRewrite is one greeting standardization rule.
type greetingRewrite struct {
	pattern     *regexp.Regexp
	replacement string
}

var greetingRewrites = []greetingRewrite{
	{pattern: regexp.MustCompile(`(?i)\bhi\b`), replacement: "Hello"},
	{pattern: regexp.MustCompile(`(?i)\bhey\b`), replacement: "Hello"},
	{pattern: regexp.MustCompile(`(?i)\bbye\b`), replacement: "Goodbye"},
	{pattern: regexp.MustCompile(`(?i)\bsee ya\b`), replacement: "Goodbye"},
}

// FormalFormalitySetter raises the formality of message content.
type FormalFormalitySetter struct {
	config   FormalFormalityConfig
	patterns []formalityPattern
	compiled []*regexp.Regexp
}

// NewFormalFormalitySetter creates a setter with the supplied configuration.
func NewFormalFormalitySetter(config FormalFormalityConfig) *FormalFormalitySetter {
	setter := &FormalFormalitySetter{
		config:   config,
		patterns: compileFormalityPatterns(config.ExpandContractions, config.FormalWords),
	}
	setter.compiled = make([]*regexp.Regexp, len(setter.patterns))
	for index, pattern := range setter.patterns {
		setter.compiled[index] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(pattern.search) + `\b`)
	}
	return setter
}

// SetFormalFormality expands contractions, substitutes formal words,
// capitalizes sentence starts, and standardizes greetings. Code segments
// survive untouched when configured.
func (setter *FormalFormalitySetter) SetFormalFormality(text string) (string, FormalFormalityStats) {
	statistics := FormalFormalityStats{}
	result := text
	mask := &segmentMask{}

	if setter.config.PreserveCodeBlocks {
		result = mask.protect(result, codeSegmentPattern, "CODE")
	}

	for index, pattern := range setter.patterns {
		occurrences := 0
		result = setter.compiled[index].ReplaceAllStringFunc(result, func(string) string {
			occurrences++
			return pattern.replacement
		})
		if pattern.isContraction {
			statistics.ContractionsExpanded += occurrences
		} else {
			statistics.FormalWordsApplied += occurrences
		}
	}

	if setter.config.CapitalizeSentences {
		capitalized, count := capitalizeSentences(result)
		result = capitalized
		statistics.SentencesCapitalized = count
	}

	if setter.config.StandardizeGreetings {
		for _, rewrite := range greetingRewrites {
			occurrences := 0
			result = rewrite.pattern.ReplaceAllStringFunc(result, func(string) string {
				occurrences++
				return rewrite.replacement
			})
			statistics.GreetingsStandardized += occurrences
		}
	}

	result = mask.restore(result)

	return result, statistics
}

// capitalizeSentences uppercases the first letter after each sentence
// terminator and at the start of the text. It returns the rewritten text and
// the number of letters changed.
func capitalizeSentences(text string) (string, int) {
	matches := sentenceStartPattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text, 0
	}

	var builder strings.Builder
	builder.Grow(len(text))
	previousEnd := 0
	capitalized := 0
	for _, match := range matches {
		letterStart, letterEnd := match[6], match[7]
		builder.WriteString(text[previousEnd:letterStart])
		builder.WriteString(strings.ToUpper(text[letterStart:letterEnd]))
		previousEnd = letterEnd
		capitalized++
	}
	builder.WriteString(text[previousEnd:])

	return builder.String(), capitalized
}
