package funcall

import (
	"regexp"
	"strings"
)

// SanitizerConfig controls function name cleanup. MaxLength zero disables
// truncation.
type SanitizerConfig struct {
	ReplaceInvalid     bool
	NormalizeCase      bool
	CollapseSeparators bool
	MaxLength          int
}

// DefaultSanitizerConfig returns the cleanup defaults: every step enabled
// with the 64 character limit.
func DefaultSanitizerConfig() SanitizerConfig {
	return SanitizerConfig{
		ReplaceInvalid:     true,
		NormalizeCase:      true,
		CollapseSeparators: true,
		MaxLength:          64,
	}
}

// SanitizationChanges records which cleanup steps altered the name.
type SanitizationChanges struct {
	InvalidReplaced     bool `json:"invalid_replaced"`
	CaseNormalized      bool `json:"case_normalized"`
	SeparatorsCollapsed bool `json:"separators_collapsed"`
	Truncated           bool `json:"truncated"`
}

var (
	invalidNameCharacterPattern = regexp.MustCompile(`[^a-zA-Z0-9_.]`)
	camelAcronymPattern         = regexp.MustCompile(`([A-Z]+)([A-Z][a-z])`)
	camelBoundaryPattern        = regexp.MustCompile(`([a-z0-9])([A-Z])`)
	underscoreRunPattern        = regexp.MustCompile(`_+`)
	dotRunPattern               = regexp.MustCompile(`\.+`)
)

// NameSanitizer normalizes raw function names into the accepted form.
type NameSanitizer struct {
	config SanitizerConfig
}

// NewNameSanitizer builds a sanitizer with the given configuration.
func NewNameSanitizer(config SanitizerConfig) *NameSanitizer {
	return &NameSanitizer{config: config}
}

// Sanitize normalizes a raw function name: invalid characters become
// underscores, camelCase becomes snake_case, separator runs collapse and
// edge separators drop, and the result truncates to the configured maximum.
func (sanitizer *NameSanitizer) Sanitize(rawName string) (string, SanitizationChanges) {
	changes := SanitizationChanges{}
	result := rawName

	if sanitizer.config.ReplaceInvalid {
		replaced := invalidNameCharacterPattern.ReplaceAllString(result, "_")
		changes.InvalidReplaced = replaced != result
		result = replaced
	}

	if sanitizer.config.NormalizeCase {
		normalized := camelBoundaryPattern.ReplaceAllString(result, "${1}_${2}")
		normalized = camelAcronymPattern.ReplaceAllString(normalized, "${1}_${2}")
		normalized = strings.ToLower(normalized)
		changes.CaseNormalized = normalized != result
		result = normalized
	}

	if sanitizer.config.CollapseSeparators {
		collapsed := underscoreRunPattern.ReplaceAllString(result, "_")
		collapsed = dotRunPattern.ReplaceAllString(collapsed, ".")
		collapsed = strings.Trim(collapsed, "_.")
		changes.SeparatorsCollapsed = collapsed != result
		result = collapsed
	}

	if sanitizer.config.MaxLength > 0 {
		runes := []rune(result)
		if len(runes) > sanitizer.config.MaxLength {
			result = strings.TrimRight(string(runes[:sanitizer.config.MaxLength]), "_.")
			changes.Truncated = true
		}
	}

	return result, changes
}
