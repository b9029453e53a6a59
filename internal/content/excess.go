package content

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// ExcessConfig controls how long runs of repeated punctuation may grow
// before they are collapsed.
type ExcessConfig struct {
	// MaxConsecutive maps a punctuation mark to the longest run kept.
	MaxConsecutive   map[string]int
	PreserveMarkdown bool
	PreserveURLs     bool
	PreserveCode     bool
}

// DefaultExcessConfig returns the removal defaults: three exclamation marks,
// two question marks, three dots, and two hyphens.
func DefaultExcessConfig() ExcessConfig {
	return ExcessConfig{
		MaxConsecutive: map[string]int{
			"!": 3,
			"?": 2,
			".": 3,
			"-": 2,
		},
		PreserveMarkdown: true,
		PreserveURLs:     true,
		PreserveCode:     true,
	}
}

// ExcessPunctuationRemover collapses runs of repeated punctuation marks.
type ExcessPunctuationRemover struct {
	config ExcessConfig
}

// NewExcessPunctuationRemover creates a remover with the supplied
// configuration.
func NewExcessPunctuationRemover(config ExcessConfig) *ExcessPunctuationRemover {
	return &ExcessPunctuationRemover{config: config}
}

// RemoveExcess collapses each run of a configured mark down to its maximum
// length. Code segments, URLs, and markdown emphasis survive untouched when
// configured. The returned map counts removed marks per punctuation mark.
func (remover *ExcessPunctuationRemover) RemoveExcess(text string) (string, map[string]int) {
	statistics := make(map[string]int, len(remover.config.MaxConsecutive))
	for mark := range remover.config.MaxConsecutive {
		statistics[mark] = 0
	}

	result := text
	mask := &segmentMask{}

	if remover.config.PreserveCode {
		result = mask.protect(result, codeSegmentPattern, "CODE")
	}
	if remover.config.PreserveURLs {
		result = mask.protect(result, urlSegmentPattern, "URL")
	}
	if remover.config.PreserveMarkdown {
		for _, pattern := range markdownSegmentPatterns {
			result = mask.protect(result, pattern, "MD")
		}
	}

	marks := make([]string, 0, len(remover.config.MaxConsecutive))
	for mark := range remover.config.MaxConsecutive {
		marks = append(marks, mark)
	}
	sort.Strings(marks)

	for _, mark := range marks {
		maximum := remover.config.MaxConsecutive[mark]
		if maximum <= 0 {
			continue
		}
		runPattern := regexp.MustCompile(regexp.QuoteMeta(mark) + "{" + strconv.Itoa(maximum+1) + ",}")
		result = runPattern.ReplaceAllStringFunc(result, func(run string) string {
			statistics[mark] += len(run) - maximum
			return strings.Repeat(mark, maximum)
		})
	}

	result = mask.restore(result)

	return result, statistics
}
