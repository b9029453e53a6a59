package meta

import (
	"fmt"

	"go.uber.org/zap"
)

const metaLoggerName = "meta"

// ValidationConfig bounds finish reason validation. MaxTokenCount zero means
// no upper bound.
type ValidationConfig struct {
	AllowUnknown         bool
	ValidateTokenCount   bool
	ValidateErrorDetails bool
	MinTokenCount        int
	MaxTokenCount        int
	LogValidationErrors  bool
}

// DefaultValidationConfig returns the validation defaults: unknown reasons
// rejected, token counts bounded below at one, and failures logged.
func DefaultValidationConfig() ValidationConfig {
	return ValidationConfig{
		ValidateTokenCount:   true,
		ValidateErrorDetails: true,
		MinTokenCount:        1,
		LogValidationErrors:  true,
	}
}

// Validator checks finish reason metadata for internal consistency.
type Validator struct {
	config ValidationConfig
	logger *zap.Logger
}

// NewValidator builds a validator. A nil logger disables logging.
func NewValidator(config ValidationConfig, logger *zap.Logger) *Validator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Validator{
		config: config,
		logger: logger.Named(metaLoggerName),
	}
}

// Validate reports whether the metadata is consistent along with a message
// per failing field.
func (validator *Validator) Validate(metadata Metadata) (bool, map[string]string) {
	validationErrors := map[string]string{}

	if metadata.Reason == FinishReasonUnknown && !validator.config.AllowUnknown {
		validationErrors["reason"] = "unknown finish reason not allowed"
	}
	if validator.config.ValidateTokenCount {
		if message := validator.tokenCountMessage(metadata); message != "" {
			validationErrors["token_count"] = message
		}
	}
	if validator.config.ValidateErrorDetails {
		if message := errorDetailsMessage(metadata); message != "" {
			validationErrors["error_details"] = message
		}
	}
	if message := filterFlagsMessage(metadata); message != "" {
		validationErrors["filter_flags"] = message
	}

	if len(validationErrors) > 0 && validator.config.LogValidationErrors {
		validator.logger.Error("finish reason validation failed",
			zap.String("reason", string(metadata.Reason)),
			zap.Any("validation_errors", validationErrors))
	}

	return len(validationErrors) == 0, validationErrors
}

func (validator *Validator) tokenCountMessage(metadata Metadata) string {
	if metadata.TokenCount == 0 {
		return ""
	}
	if metadata.TokenCount < validator.config.MinTokenCount {
		return fmt.Sprintf("token count %d below minimum %d", metadata.TokenCount, validator.config.MinTokenCount)
	}
	if validator.config.MaxTokenCount > 0 && metadata.TokenCount > validator.config.MaxTokenCount {
		return fmt.Sprintf("token count %d above maximum %d", metadata.TokenCount, validator.config.MaxTokenCount)
	}
	return ""
}

func errorDetailsMessage(metadata Metadata) string {
	if metadata.Reason == FinishReasonError {
		if metadata.ErrorDetails == "" {
			return "error reason requires error details"
		}
		return ""
	}
	if metadata.ErrorDetails != "" {
		return "error details present for non-error reason"
	}
	return ""
}

func filterFlagsMessage(metadata Metadata) string {
	if metadata.Reason == FinishReasonContentFilter {
		if len(metadata.FilterFlags) == 0 {
			return "content filter reason requires filter flags"
		}
		return ""
	}
	if len(metadata.FilterFlags) > 0 {
		return "filter flags present for non-filter reason"
	}
	return ""
}
