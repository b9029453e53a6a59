package meta_test

import (
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cognitus/cognitus/internal/meta"
)

func TestValidateFinishReason(t *testing.T) {
	now := time.Now()
	boundedConfig := meta.DefaultValidationConfig()
	boundedConfig.MinTokenCount = 10
	boundedConfig.MaxTokenCount = 100
	permissiveConfig := meta.DefaultValidationConfig()
	permissiveConfig.AllowUnknown = true

	testCases := []struct {
		name          string
		config        meta.ValidationConfig
		metadata      meta.Metadata
		expectedValid bool
		expectedField string
	}{
		{
			name:          "clean stop",
			config:        meta.DefaultValidationConfig(),
			metadata:      meta.Metadata{Reason: meta.FinishReasonStop, Timestamp: now, TokenCount: 42},
			expectedValid: true,
		},
		{
			name:          "unknown rejected by default",
			config:        meta.DefaultValidationConfig(),
			metadata:      meta.Metadata{Reason: meta.FinishReasonUnknown, Timestamp: now},
			expectedValid: false,
			expectedField: "reason",
		},
		{
			name:          "unknown allowed when configured",
			config:        permissiveConfig,
			metadata:      meta.Metadata{Reason: meta.FinishReasonUnknown, Timestamp: now},
			expectedValid: true,
		},
		{
			name:          "token count below minimum",
			config:        boundedConfig,
			metadata:      meta.Metadata{Reason: meta.FinishReasonStop, Timestamp: now, TokenCount: 5},
			expectedValid: false,
			expectedField: "token_count",
		},
		{
			name:          "token count above maximum",
			config:        boundedConfig,
			metadata:      meta.Metadata{Reason: meta.FinishReasonStop, Timestamp: now, TokenCount: 500},
			expectedValid: false,
			expectedField: "token_count",
		},
		{
			name:          "missing token count is not checked",
			config:        boundedConfig,
			metadata:      meta.Metadata{Reason: meta.FinishReasonStop, Timestamp: now},
			expectedValid: true,
		},
		{
			name:          "error requires details",
			config:        meta.DefaultValidationConfig(),
			metadata:      meta.Metadata{Reason: meta.FinishReasonError, Timestamp: now},
			expectedValid: false,
			expectedField: "error_details",
		},
		{
			name:          "error with details",
			config:        meta.DefaultValidationConfig(),
			metadata:      meta.Metadata{Reason: meta.FinishReasonError, Timestamp: now, ErrorDetails: "upstream timeout"},
			expectedValid: true,
		},
		{
			name:          "details forbidden outside error",
			config:        meta.DefaultValidationConfig(),
			metadata:      meta.Metadata{Reason: meta.FinishReasonStop, Timestamp: now, TokenCount: 3, ErrorDetails: "stray"},
			expectedValid: false,
			expectedField: "error_details",
		},
		{
			name:          "content filter requires flags",
			config:        meta.DefaultValidationConfig(),
			metadata:      meta.Metadata{Reason: meta.FinishReasonContentFilter, Timestamp: now},
			expectedValid: false,
			expectedField: "filter_flags",
		},
		{
			name:   "content filter with flags",
			config: meta.DefaultValidationConfig(),
			metadata: meta.Metadata{
				Reason:      meta.FinishReasonContentFilter,
				Timestamp:   now,
				FilterFlags: map[string]bool{"violence": true},
			},
			expectedValid: true,
		},
		{
			name:   "flags forbidden outside content filter",
			config: meta.DefaultValidationConfig(),
			metadata: meta.Metadata{
				Reason:      meta.FinishReasonStop,
				Timestamp:   now,
				TokenCount:  3,
				FilterFlags: map[string]bool{"violence": false},
			},
			expectedValid: false,
			expectedField: "filter_flags",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			validator := meta.NewValidator(testCase.config, nil)
			valid, validationErrors := validator.Validate(testCase.metadata)
			if valid != testCase.expectedValid {
				t.Fatalf("expected valid %v, got %v with errors %v", testCase.expectedValid, valid, validationErrors)
			}
			if testCase.expectedValid && len(validationErrors) != 0 {
				t.Fatalf("expected no validation errors, got %v", validationErrors)
			}
			if testCase.expectedField != "" {
				if _, present := validationErrors[testCase.expectedField]; !present {
					t.Fatalf("expected error for field %q, got %v", testCase.expectedField, validationErrors)
				}
			}
		})
	}
}

func TestValidateLogsFailures(t *testing.T) {
	observedCore, observedLogs := observer.New(zap.ErrorLevel)
	validator := meta.NewValidator(meta.DefaultValidationConfig(), zap.New(observedCore))

	validator.Validate(meta.Metadata{Reason: meta.FinishReasonUnknown, Timestamp: time.Now()})

	if observedLogs.Len() != 1 {
		t.Fatalf("expected one log entry, got %d", observedLogs.Len())
	}
	entry := observedLogs.All()[0]
	if entry.Message != "finish reason validation failed" {
		t.Fatalf("unexpected log message %q", entry.Message)
	}
}

func TestValidateLoggingDisabled(t *testing.T) {
	observedCore, observedLogs := observer.New(zap.ErrorLevel)
	quietConfig := meta.DefaultValidationConfig()
	quietConfig.LogValidationErrors = false
	validator := meta.NewValidator(quietConfig, zap.New(observedCore))

	valid, _ := validator.Validate(meta.Metadata{Reason: meta.FinishReasonUnknown, Timestamp: time.Now()})

	if valid {
		t.Fatalf("expected invalid metadata")
	}
	if observedLogs.Len() != 0 {
		t.Fatalf("expected no log entries, got %d", observedLogs.Len())
	}
}
