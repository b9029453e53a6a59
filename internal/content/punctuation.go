package content

import (
	"regexp"
	"sort"
	"strings"
)

// StandardizationConfig controls which non-standard punctuation marks are
// rewritten and how spacing around punctuation is repaired.
type StandardizationConfig struct {
	// PunctuationMap maps non-standard marks to their standard forms.
	PunctuationMap       map[string]string
	PreserveQuotesInCode bool
	StandardizeEllipsis  bool
	FixSpacing           bool
}

// DefaultStandardizationConfig returns the standardization defaults covering
// smart quotes, typographic dashes, and dot leaders.
func DefaultStandardizationConfig() StandardizationConfig {
	return StandardizationConfig{
		PunctuationMap: map[string]string{
			"“": `"`,   // left smart double quote
			"”": `"`,   // right smart double quote
			"‘": "'",   // left smart single quote
			"’": "'",   // right smart single quote
			"—": "-",   // em dash
			"–": "-",   // en dash
			"―": "-",   // horizontal bar
			"…": "...", // ellipsis
			"․": ".",   // one dot leader
			"‥": "..",  // two dot leader
		},
		PreserveQuotesInCode: true,
		StandardizeEllipsis:  true,
		FixSpacing:           true,
	}
}

var (
	dotRunPattern                 = regexp.MustCompile(`\.{2,}`)
	spaceBeforePunctuationPattern = regexp.MustCompile(`\s+([.,!?;:])`)
	missingSpaceAfterPattern      = regexp.MustCompile(`([.,!?;:])([^\s.,!?;:])`)
)

// PunctuationStandardizer rewrites non-standard punctuation marks to their
// standard forms.
type PunctuationStandardizer struct {
	config StandardizationConfig
}

// NewPunctuationStandardizer creates a standardizer with the supplied
// configuration.
func NewPunctuationStandardizer(config StandardizationConfig) *PunctuationStandardizer {
	return &PunctuationStandardizer{config: config}
}

// Standardize rewrites non-standard punctuation and repairs spacing around
// punctuation marks. Code segments survive untouched when configured. The
// returned map counts replacements per non-standard mark.
func (standardizer *PunctuationStandardizer) Standardize(text string) (string, map[string]int) {
	statistics := make(map[string]int, len(standardizer.config.PunctuationMap))
	for mark := range standardizer.config.PunctuationMap {
		statistics[mark] = 0
	}

	result := text
	mask := &segmentMask{}

	if standardizer.config.PreserveQuotesInCode {
		result = mask.protect(result, codeSegmentPattern, "CODE")
	}

	marks := make([]string, 0, len(standardizer.config.PunctuationMap))
	for mark := range standardizer.config.PunctuationMap {
		marks = append(marks, mark)
	}
	sort.Strings(marks)

	for _, mark := range marks {
		if occurrences := strings.Count(result, mark); occurrences > 0 {
			result = strings.ReplaceAll(result, mark, standardizer.config.PunctuationMap[mark])
			statistics[mark] = occurrences
		}
	}

	if standardizer.config.StandardizeEllipsis {
		result = dotRunPattern.ReplaceAllString(result, "...")
	}

	if standardizer.config.FixSpacing {
		result = fixPunctuationSpacing(result)
	}

	result = mask.restore(result)

	return result, statistics
}

// fixPunctuationSpacing removes space before sentence punctuation and adds
// one space after it. Runs of punctuation such as "..." and "?!" are left
// intact.
func fixPunctuationSpacing(text string) string {
	result := spaceBeforePunctuationPattern.ReplaceAllString(text, "$1")
	result = missingSpaceAfterPattern.ReplaceAllString(result, "$1 $2")
	return result
}
