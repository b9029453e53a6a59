// Package utils contains general helper functions used across cognitus.
package utils

import (
	"path/filepath"
	"strings"
)

// Directory exclusion constants applied by the structure walker.
const (
	// HiddenNamePrefix marks directories excluded by the hidden-name convention.
	HiddenNamePrefix = "."
	// EnvDirectoryName is the literal environment directory exclusion.
	EnvDirectoryName = "env"
	// BackupDirectoryName is the literal backup directory exclusion.
	BackupDirectoryName = "backup"
)

// DeduplicatePatterns removes duplicate patterns from a slice while preserving order.
// The first occurrence of each unique pattern is kept.
func DeduplicatePatterns(patterns []string) []string {
	encounteredPatterns := make(map[string]struct{})
	result := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if _, exists := encounteredPatterns[pattern]; !exists {
			encounteredPatterns[pattern] = struct{}{}
			result = append(result, pattern)
		}
	}
	return result
}

// ContainsString checks if a slice of strings contains a specific target string.
func ContainsString(stringSlice []string, targetString string) bool {
	for _, currentString := range stringSlice {
		if currentString == targetString {
			return true
		}
	}
	return false
}

// IsExcludedName reports whether a directory name falls under the built-in
// exclusion rules: a leading dot, or the literal names "env" and "backup".
// Exclusion applies to the whole subtree because the walker never descends
// into an excluded directory.
func IsExcludedName(directoryName string) bool {
	if strings.HasPrefix(directoryName, HiddenNamePrefix) {
		return true
	}
	return directoryName == EnvDirectoryName || directoryName == BackupDirectoryName
}

// ShouldExcludeDirectory reports whether a directory name is excluded either
// by the built-in rules or by one of the additional patterns. Patterns are
// evaluated against the bare name with filepath.Match semantics; a literal
// name is therefore also a valid pattern.
func ShouldExcludeDirectory(directoryName string, extraPatterns []string) bool {
	if IsExcludedName(directoryName) {
		return true
	}
	for _, patternValue := range extraPatterns {
		isMatched, matchError := filepath.Match(patternValue, directoryName)
		if matchError == nil && isMatched {
			return true
		}
	}
	return false
}
