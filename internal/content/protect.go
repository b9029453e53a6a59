package content

import (
	"regexp"
	"strconv"
	"strings"
)

// Masking patterns shared by the sanitizer and formatter stages. Protected
// segments are swapped for NUL-delimited markers before a stage runs and
// restored afterwards, so code, links, and markup survive byte-identical.
var (
	codeSegmentPattern   = regexp.MustCompile("`[^`]+`|```[\\s\\S]*?```")
	fencedCodePattern    = regexp.MustCompile("```[\\s\\S]*?```")
	urlSegmentPattern    = regexp.MustCompile(`https?://\S+`)
	quotedSegmentPattern = regexp.MustCompile(`"[^"]+"`)
	technicalTermPattern = regexp.MustCompile(`\b[a-z]+(?:[A-Z][a-z]*)+\b|\b[a-z]+(?:_[a-z]+)+\b`)

	markdownSegmentPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\*\*[\s\S]*?\*\*`),
		regexp.MustCompile(`__[\s\S]*?__`),
		regexp.MustCompile(`\*[\s\S]*?\*`),
		regexp.MustCompile(`_[\s\S]*?_`),
		regexp.MustCompile(`~~[\s\S]*?~~`),
	}
)

// protectedSegment pairs a marker with the original text it replaced.
type protectedSegment struct {
	marker   string
	original string
}

// segmentMask accumulates protected segments across one or more patterns.
// The counter spans calls so markers stay unique within one mask.
type segmentMask struct {
	segments []protectedSegment
	counter  int
}

// protect replaces every match of pattern with a unique marker and records
// the original text for restoration.
func (mask *segmentMask) protect(text string, pattern *regexp.Regexp, label string) string {
	return pattern.ReplaceAllStringFunc(text, func(match string) string {
		marker := "\x00" + label + strconv.Itoa(mask.counter) + "\x00"
		mask.counter++
		mask.segments = append(mask.segments, protectedSegment{marker: marker, original: match})
		return marker
	})
}

// restore puts every protected segment back, newest first.
func (mask *segmentMask) restore(text string) string {
	result := text
	for index := len(mask.segments) - 1; index >= 0; index-- {
		segment := mask.segments[index]
		result = strings.Replace(result, segment.marker, segment.original, 1)
	}
	return result
}
