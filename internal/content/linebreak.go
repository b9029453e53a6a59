package content

import (
	"regexp"
	"strconv"
	"strings"
)

// LineBreakConfig controls how line endings and newline runs are handled
// when cleaning message content.
type LineBreakConfig struct {
	MaxConsecutiveBreaks   int
	NormalizeLineEndings   bool
	PreserveMarkdownBreaks bool
	PreserveCodeBlocks     bool
}

// DefaultLineBreakConfig returns the cleaning defaults: endings normalized
// to LF, newline runs collapsed to two, fenced code blocks kept intact.
func DefaultLineBreakConfig() LineBreakConfig {
	return LineBreakConfig{
		MaxConsecutiveBreaks:   2,
		NormalizeLineEndings:   true,
		PreserveMarkdownBreaks: false,
		PreserveCodeBlocks:     true,
	}
}

// LineBreakStats reports how many break characters a cleaning pass removed
// or rewrote.
type LineBreakStats struct {
	BreaksRemoved    int
	BreaksNormalized int
}

// LineBreakCleaner normalizes line endings and collapses newline runs in
// message content.
type LineBreakCleaner struct {
	config LineBreakConfig
}

// NewLineBreakCleaner creates a cleaner with the supplied configuration.
func NewLineBreakCleaner(config LineBreakConfig) *LineBreakCleaner {
	return &LineBreakCleaner{config: config}
}

// CleanBreaks normalizes CRLF and CR endings to LF and collapses runs of
// newlines beyond the configured maximum. Fenced code blocks and two-space
// markdown breaks survive untouched when configured.
func (cleaner *LineBreakCleaner) CleanBreaks(text string) (string, LineBreakStats) {
	statistics := LineBreakStats{}
	result := text
	mask := &segmentMask{}

	if cleaner.config.PreserveCodeBlocks {
		result = mask.protect(result, fencedCodePattern, "CODE")
	}

	if cleaner.config.NormalizeLineEndings {
		originalLength := len(result)
		result = strings.ReplaceAll(result, "\r\n", "\n")
		result = strings.ReplaceAll(result, "\r", "\n")
		statistics.BreaksNormalized = originalLength - len(result)
	}

	if cleaner.config.PreserveMarkdownBreaks {
		result = strings.ReplaceAll(result, "  \n", markdownBreakMarker)
	}

	if cleaner.config.MaxConsecutiveBreaks > 0 {
		runPattern := regexp.MustCompile(`\n{` + strconv.Itoa(cleaner.config.MaxConsecutiveBreaks+1) + `,}`)
		originalLength := len(result)
		result = runPattern.ReplaceAllString(result, strings.Repeat("\n", cleaner.config.MaxConsecutiveBreaks))
		statistics.BreaksRemoved = originalLength - len(result)
	}

	if cleaner.config.PreserveMarkdownBreaks {
		result = strings.ReplaceAll(result, markdownBreakMarker, "  \n")
	}

	result = mask.restore(result)

	return result, statistics
}
