package meta

// CompletionType buckets completions by outcome.
type CompletionType string

const (
	// CompletionSuccessful marks a normal, fully usable completion.
	CompletionSuccessful CompletionType = "successful"
	// CompletionTruncated marks a completion cut short but still usable.
	CompletionTruncated CompletionType = "truncated"
	// CompletionFailed marks a failed or unusable completion.
	CompletionFailed CompletionType = "failed"
	// CompletionPartial marks a partially delivered completion.
	CompletionPartial CompletionType = "partial"
	// CompletionFiltered marks a completion removed by a content filter.
	CompletionFiltered CompletionType = "filtered"
	// CompletionFunction marks a completion that produced a function call.
	CompletionFunction CompletionType = "function"
)

// Category describes how a finish reason should be treated downstream.
type Category struct {
	Type          CompletionType  `json:"type"`
	Reason        FinishReason    `json:"reason"`
	IsUsable      bool            `json:"is_usable"`
	RequiresRetry bool            `json:"requires_retry"`
	Flags         map[string]bool `json:"flags,omitempty"`
}

var categoriesByReason = map[FinishReason]Category{
	FinishReasonStop: {
		Type:     CompletionSuccessful,
		Reason:   FinishReasonStop,
		IsUsable: true,
		Flags:    map[string]bool{"complete": true, "natural_stop": true},
	},
	FinishReasonLength: {
		Type:     CompletionTruncated,
		Reason:   FinishReasonLength,
		IsUsable: true,
		Flags:    map[string]bool{"complete": false, "truncated": true},
	},
	FinishReasonFunctionCall: {
		Type:     CompletionFunction,
		Reason:   FinishReasonFunctionCall,
		IsUsable: true,
		Flags:    map[string]bool{"function_call": true},
	},
	FinishReasonContentFilter: {
		Type:          CompletionFiltered,
		Reason:        FinishReasonContentFilter,
		RequiresRetry: true,
		Flags:         map[string]bool{"filtered": true, "requires_modification": true},
	},
	FinishReasonError: {
		Type:          CompletionFailed,
		Reason:        FinishReasonError,
		RequiresRetry: true,
		Flags:         map[string]bool{"error": true, "requires_retry": true},
	},
	FinishReasonIncomplete: {
		Type:          CompletionPartial,
		Reason:        FinishReasonIncomplete,
		RequiresRetry: true,
		Flags:         map[string]bool{"incomplete": true, "interrupted": true},
	},
	FinishReasonTimeLimit: {
		Type:     CompletionTruncated,
		Reason:   FinishReasonTimeLimit,
		IsUsable: true,
		Flags:    map[string]bool{"timeout": true, "truncated": true},
	},
	FinishReasonUnknown: {
		Type:          CompletionFailed,
		Reason:        FinishReasonUnknown,
		RequiresRetry: true,
		Flags:         map[string]bool{"unknown": true, "requires_investigation": true},
	},
}

// CategoryFor returns the category record for a finish reason. Reasons
// outside the normalized vocabulary fall back to the unknown category.
func CategoryFor(reason FinishReason) Category {
	if category, known := categoriesByReason[reason]; known {
		return category
	}
	return categoriesByReason[FinishReasonUnknown]
}

// IsUsable reports whether a completion can be consumed as delivered. When
// minimumTokenCount is positive and the metadata carries a token count, the
// count must meet the minimum.
func IsUsable(metadata Metadata, minimumTokenCount int) bool {
	category := CategoryFor(metadata.Reason)
	if !category.IsUsable {
		return false
	}
	if minimumTokenCount > 0 && metadata.TokenCount > 0 && metadata.TokenCount < minimumTokenCount {
		return false
	}
	return true
}

var retryReasons = map[FinishReason]string{
	FinishReasonError:         "error occurred",
	FinishReasonContentFilter: "content filtered",
	FinishReasonIncomplete:    "completion interrupted",
	FinishReasonUnknown:       "unknown completion reason",
}

// RetryReason reports whether the completion should be retried together with
// a short explanation.
func RetryReason(metadata Metadata) (bool, string) {
	category := CategoryFor(metadata.Reason)
	if !category.RequiresRetry {
		return false, ""
	}
	if explanation, known := retryReasons[metadata.Reason]; known {
		return true, explanation
	}
	return true, "retry required"
}
