// Package meta derives completion metadata for assistant messages: finish
// reasons, completion categories, length accounting, and timestamps.
package meta

import (
	"strings"
	"time"
)

// FinishReason is the normalized reason a completion stopped.
type FinishReason string

const (
	// FinishReasonStop marks a natural completion.
	FinishReasonStop FinishReason = "stop"
	// FinishReasonLength marks a completion cut off at the token limit.
	FinishReasonLength FinishReason = "length"
	// FinishReasonFunctionCall marks a completion that ended in a function call.
	FinishReasonFunctionCall FinishReason = "function_call"
	// FinishReasonContentFilter marks a completion stopped by a content filter.
	FinishReasonContentFilter FinishReason = "content_filter"
	// FinishReasonError marks a completion that failed outright.
	FinishReasonError FinishReason = "error"
	// FinishReasonIncomplete marks an interrupted stream.
	FinishReasonIncomplete FinishReason = "incomplete"
	// FinishReasonTimeLimit marks a completion stopped at the time limit.
	FinishReasonTimeLimit FinishReason = "time_limit"
	// FinishReasonUnknown marks a raw reason that could not be recognized.
	FinishReasonUnknown FinishReason = "unknown"
)

var finishReasonAliases = map[string]FinishReason{
	"stop":           FinishReasonStop,
	"stopped":        FinishReasonStop,
	"completed":      FinishReasonStop,
	"length":         FinishReasonLength,
	"max_length":     FinishReasonLength,
	"max_tokens":     FinishReasonLength,
	"function_call":  FinishReasonFunctionCall,
	"function":       FinishReasonFunctionCall,
	"content_filter": FinishReasonContentFilter,
	"filtered":       FinishReasonContentFilter,
	"error":          FinishReasonError,
	"incomplete":     FinishReasonIncomplete,
	"interrupted":    FinishReasonIncomplete,
	"time_limit":     FinishReasonTimeLimit,
	"timeout":        FinishReasonTimeLimit,
}

// ParseFinishReason maps a raw finish reason onto the normalized vocabulary.
// Input is lowercased and trimmed before lookup; unrecognized values map to
// FinishReasonUnknown.
func ParseFinishReason(rawReason string) FinishReason {
	normalized := strings.ToLower(strings.TrimSpace(rawReason))
	if reason, known := finishReasonAliases[normalized]; known {
		return reason
	}
	return FinishReasonUnknown
}

// Metadata captures how a completion finished. TokenCount zero means no
// count was recorded.
type Metadata struct {
	Reason       FinishReason    `json:"reason"`
	Timestamp    time.Time       `json:"timestamp"`
	TokenCount   int             `json:"token_count,omitempty"`
	ErrorDetails string          `json:"error_details,omitempty"`
	FilterFlags  map[string]bool `json:"filter_flags,omitempty"`
}

// NewMetadata builds completion metadata from a raw finish reason. Optional
// fields are set on the returned value by the caller.
func NewMetadata(rawReason string, timestamp time.Time) Metadata {
	return Metadata{
		Reason:    ParseFinishReason(rawReason),
		Timestamp: timestamp,
	}
}
