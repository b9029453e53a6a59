// Package funcall tracks function calls attached to chat messages: name
// validation and cleanup, argument handling, and execution results.
package funcall

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// NameConfig bounds function name validation. An empty AllowedNamespaces
// list admits every namespace.
type NameConfig struct {
	MaxLength         int
	ReservedPrefixes  []string
	AllowedNamespaces []string
}

// DefaultNameConfig returns the naming defaults: 64 character limit and the
// reserved system prefixes.
func DefaultNameConfig() NameConfig {
	return NameConfig{
		MaxLength:        64,
		ReservedPrefixes: []string{"__", "system_", "internal_"},
	}
}

var functionNamePatterns = []*regexp.Regexp{
	// Standard identifier naming.
	regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`),
	// namespace.function naming.
	regexp.MustCompile(`^[a-z][a-zA-Z0-9_]*\.[a-z][a-zA-Z0-9_]*$`),
}

// NameValidation reports which naming rules a candidate passed.
type NameValidation struct {
	ValidLength    bool `json:"valid_length"`
	ValidPattern   bool `json:"valid_pattern"`
	ValidPrefix    bool `json:"valid_prefix"`
	ValidNamespace bool `json:"valid_namespace"`
}

// Valid reports whether every rule passed.
func (validation NameValidation) Valid() bool {
	return validation.ValidLength && validation.ValidPattern && validation.ValidPrefix && validation.ValidNamespace
}

// FunctionIdentifier validates function names against the configured rules.
type FunctionIdentifier struct {
	config NameConfig
}

// NewFunctionIdentifier builds an identifier with the given configuration.
func NewFunctionIdentifier(config NameConfig) *FunctionIdentifier {
	return &FunctionIdentifier{config: config}
}

// Identify validates a function name and reports which rules it passed. The
// returned name is empty when any rule fails.
func (identifier *FunctionIdentifier) Identify(rawName string) (string, NameValidation) {
	validation := NameValidation{
		ValidLength:    utf8.RuneCountInString(rawName) <= identifier.config.MaxLength,
		ValidPattern:   matchesNamePattern(rawName),
		ValidPrefix:    identifier.validPrefix(rawName),
		ValidNamespace: identifier.validNamespace(rawName),
	}
	if !validation.Valid() {
		return "", validation
	}
	return rawName, validation
}

func matchesNamePattern(name string) bool {
	for _, pattern := range functionNamePatterns {
		if pattern.MatchString(name) {
			return true
		}
	}
	return false
}

func (identifier *FunctionIdentifier) validPrefix(name string) bool {
	for _, prefix := range identifier.config.ReservedPrefixes {
		if strings.HasPrefix(name, prefix) {
			return false
		}
	}
	return true
}

func (identifier *FunctionIdentifier) validNamespace(name string) bool {
	if len(identifier.config.AllowedNamespaces) == 0 {
		return true
	}
	separatorIndex := strings.Index(name, ".")
	if separatorIndex < 0 {
		return true
	}
	namespace := name[:separatorIndex]
	for _, allowed := range identifier.config.AllowedNamespaces {
		if namespace == allowed {
			return true
		}
	}
	return false
}
