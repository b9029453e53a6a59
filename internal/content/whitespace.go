package content

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	// paragraphBreakMarker stands in for a blank-line paragraph break while
	// space runs are collapsed.
	paragraphBreakMarker = "\x00"

	// markdownBreakMarker stands in for a two-space markdown line break
	// while newline runs are collapsed.
	markdownBreakMarker = "\x01"
)

var paragraphBreakPattern = regexp.MustCompile(`\n\s*\n`)

// SpaceTrimConfig controls how edge whitespace, space runs, and indentation
// are handled when trimming message content.
type SpaceTrimConfig struct {
	TrimEdges               bool
	MaxConsecutiveSpaces    int
	PreserveIndentation     bool
	PreserveParagraphBreaks bool
}

// DefaultSpaceTrimConfig returns the trimming defaults: edges stripped,
// space runs collapsed to one, indentation removed, paragraph breaks kept.
func DefaultSpaceTrimConfig() SpaceTrimConfig {
	return SpaceTrimConfig{
		TrimEdges:               true,
		MaxConsecutiveSpaces:    1,
		PreserveIndentation:     false,
		PreserveParagraphBreaks: true,
	}
}

// SpaceTrimStats reports how much whitespace a trim pass removed.
type SpaceTrimStats struct {
	SpacesRemoved int
	EdgesTrimmed  int
}

// SpaceTrimmer removes excessive whitespace from message content.
type SpaceTrimmer struct {
	config SpaceTrimConfig
}

// NewSpaceTrimmer creates a trimmer with the supplied configuration.
func NewSpaceTrimmer(config SpaceTrimConfig) *SpaceTrimmer {
	return &SpaceTrimmer{config: config}
}

// TrimSpaces collapses space runs and strips edge whitespace, preserving
// paragraph breaks as exactly one blank line when configured.
func (trimmer *SpaceTrimmer) TrimSpaces(text string) (string, SpaceTrimStats) {
	statistics := SpaceTrimStats{}
	result := text

	if trimmer.config.TrimEdges {
		originalLength := len(result)
		result = strings.TrimSpace(result)
		statistics.EdgesTrimmed = originalLength - len(result)
	}

	if trimmer.config.PreserveParagraphBreaks {
		result = paragraphBreakPattern.ReplaceAllString(result, paragraphBreakMarker)
	}

	if trimmer.config.MaxConsecutiveSpaces > 0 {
		runPattern := regexp.MustCompile(" {" + strconv.Itoa(trimmer.config.MaxConsecutiveSpaces+1) + ",}")
		originalLength := len(result)
		result = runPattern.ReplaceAllString(result, strings.Repeat(" ", trimmer.config.MaxConsecutiveSpaces))
		statistics.SpacesRemoved = originalLength - len(result)
	}

	if trimmer.config.PreserveParagraphBreaks {
		result = strings.ReplaceAll(result, paragraphBreakMarker, "\n\n")
	}

	if !trimmer.config.PreserveIndentation {
		lines := strings.Split(result, "\n")
		for index, line := range lines {
			if strings.TrimSpace(line) != "" {
				lines[index] = strings.TrimLeft(line, " \t")
			}
		}
		result = strings.Join(lines, "\n")
	}

	return result, statistics
}
