package funcall

import (
	"fmt"
	"strings"
	"time"

	"github.com/cognitus/cognitus/internal/utils"
)

// ExecutionResult records one function invocation.
type ExecutionResult struct {
	FunctionName  string        `json:"function_name"`
	Success       bool          `json:"success"`
	Result        any           `json:"result,omitempty"`
	Error         string        `json:"error,omitempty"`
	ExecutionTime time.Duration `json:"execution_time"`
	Timestamp     time.Time     `json:"timestamp"`
}

// PerformanceMetrics aggregates execution times for one function.
type PerformanceMetrics struct {
	MinTime   time.Duration `json:"min_time"`
	MaxTime   time.Duration `json:"max_time"`
	TotalTime time.Duration `json:"total_time"`
	Count     int           `json:"count"`
	AvgTime   time.Duration `json:"avg_time"`
}

// StorageConfig controls result retention. MaxHistory zero keeps every
// result.
type StorageConfig struct {
	TrackHistory     bool
	MaxHistory       int
	StoreErrors      bool
	TrackPerformance bool
}

// DefaultStorageConfig returns the retention defaults: history capped at
// one hundred entries, errors stored, performance tracked.
func DefaultStorageConfig() StorageConfig {
	return StorageConfig{
		TrackHistory:     true,
		MaxHistory:       100,
		StoreErrors:      true,
		TrackPerformance: true,
	}
}

// ResultStorage retains execution results and per-function metrics.
type ResultStorage struct {
	config       StorageConfig
	results      []ExecutionResult
	metrics      map[string]PerformanceMetrics
	successCount int
	failureCount int
}

// NewResultStorage builds an empty storage with the given configuration.
func NewResultStorage(config StorageConfig) *ResultStorage {
	return &ResultStorage{
		config:  config,
		metrics: map[string]PerformanceMetrics{},
	}
}

// StoreSuccess records a successful invocation and returns the stored entry.
func (storage *ResultStorage) StoreSuccess(functionName string, result any, executionTime time.Duration) ExecutionResult {
	entry := ExecutionResult{
		FunctionName:  functionName,
		Success:       true,
		Result:        result,
		ExecutionTime: executionTime,
		Timestamp:     time.Now(),
	}
	storage.store(entry)
	storage.successCount++
	if storage.config.TrackPerformance {
		storage.updateMetrics(functionName, executionTime)
	}
	return entry
}

// StoreFailure records a failed invocation and returns the stored entry.
func (storage *ResultStorage) StoreFailure(functionName string, errorMessage string, executionTime time.Duration) ExecutionResult {
	entry := ExecutionResult{
		FunctionName:  functionName,
		ExecutionTime: executionTime,
		Timestamp:     time.Now(),
	}
	if storage.config.StoreErrors {
		entry.Error = errorMessage
	}
	storage.store(entry)
	storage.failureCount++
	return entry
}

func (storage *ResultStorage) store(entry ExecutionResult) {
	if !storage.config.TrackHistory {
		return
	}
	storage.results = append(storage.results, entry)
	if storage.config.MaxHistory > 0 && len(storage.results) > storage.config.MaxHistory {
		trimmed := make([]ExecutionResult, storage.config.MaxHistory)
		copy(trimmed, storage.results[len(storage.results)-storage.config.MaxHistory:])
		storage.results = trimmed
	}
}

func (storage *ResultStorage) updateMetrics(functionName string, executionTime time.Duration) {
	metrics, tracked := storage.metrics[functionName]
	if !tracked {
		storage.metrics[functionName] = PerformanceMetrics{
			MinTime:   executionTime,
			MaxTime:   executionTime,
			TotalTime: executionTime,
			Count:     1,
			AvgTime:   executionTime,
		}
		return
	}
	if executionTime < metrics.MinTime {
		metrics.MinTime = executionTime
	}
	if executionTime > metrics.MaxTime {
		metrics.MaxTime = executionTime
	}
	metrics.TotalTime += executionTime
	metrics.Count++
	metrics.AvgTime = metrics.TotalTime / time.Duration(metrics.Count)
	storage.metrics[functionName] = metrics
}

// ResultFilter narrows Results output. Zero values disable each criterion.
type ResultFilter struct {
	FunctionName string
	SuccessOnly  bool
	Limit        int
}

// Results returns stored results oldest first, filtered per filter.
func (storage *ResultStorage) Results(filter ResultFilter) []ExecutionResult {
	filtered := make([]ExecutionResult, 0, len(storage.results))
	for _, entry := range storage.results {
		if filter.FunctionName != "" && entry.FunctionName != filter.FunctionName {
			continue
		}
		if filter.SuccessOnly && !entry.Success {
			continue
		}
		filtered = append(filtered, entry)
	}
	if filter.Limit > 0 && len(filtered) > filter.Limit {
		filtered = filtered[len(filtered)-filter.Limit:]
	}
	return filtered
}

// Counts returns how many successes and failures were recorded.
func (storage *ResultStorage) Counts() (successCount int, failureCount int) {
	return storage.successCount, storage.failureCount
}

// Metrics returns performance metrics for one function. Unknown functions
// yield the zero value.
func (storage *ResultStorage) Metrics(functionName string) PerformanceMetrics {
	return storage.metrics[functionName]
}

// AllMetrics returns a copy of the metrics for every tracked function.
func (storage *ResultStorage) AllMetrics() map[string]PerformanceMetrics {
	allMetrics := make(map[string]PerformanceMetrics, len(storage.metrics))
	for functionName, metrics := range storage.metrics {
		allMetrics[functionName] = metrics
	}
	return allMetrics
}

// Clear removes stored results for one function, or every result when the
// name is empty. Metrics are cleared alongside when clearMetrics is set.
func (storage *ResultStorage) Clear(functionName string, clearMetrics bool) {
	if functionName == "" {
		storage.results = nil
		if clearMetrics {
			storage.metrics = map[string]PerformanceMetrics{}
		}
		return
	}
	kept := storage.results[:0]
	for _, entry := range storage.results {
		if entry.FunctionName != functionName {
			kept = append(kept, entry)
		}
	}
	storage.results = kept
	if clearMetrics {
		delete(storage.metrics, functionName)
	}
}

// FormatterConfig controls result rendering. MaxResultLength zero disables
// truncation.
type FormatterConfig struct {
	IncludeTimestamp     bool
	IncludeExecutionTime bool
	FormatErrors         bool
	MaxResultLength      int
}

// DefaultFormatterConfig returns the rendering defaults: timestamps and
// durations included, errors structured.
func DefaultFormatterConfig() FormatterConfig {
	return FormatterConfig{
		IncludeTimestamp:     true,
		IncludeExecutionTime: true,
		FormatErrors:         true,
	}
}

// FormattedResult is the rendered form of an execution result.
type FormattedResult struct {
	Success          bool              `json:"success"`
	FunctionName     string            `json:"function_name"`
	Result           any               `json:"result,omitempty"`
	Error            string            `json:"error,omitempty"`
	ExecutionDetails map[string]string `json:"execution_details,omitempty"`
}

// ResultFormatter renders execution results for reports.
type ResultFormatter struct {
	config FormatterConfig
}

// NewResultFormatter builds a formatter with the given configuration.
func NewResultFormatter(config FormatterConfig) *ResultFormatter {
	return &ResultFormatter{config: config}
}

// FormatResult renders a single execution result.
func (formatter *ResultFormatter) FormatResult(entry ExecutionResult) FormattedResult {
	details := map[string]string{}
	if formatter.config.IncludeTimestamp {
		details["timestamp"] = utils.FormatTimestamp(entry.Timestamp)
	}
	if formatter.config.IncludeExecutionTime {
		details["execution_time"] = formatDuration(entry.ExecutionTime)
	}

	formatted := FormattedResult{
		Success:          entry.Success,
		FunctionName:     entry.FunctionName,
		ExecutionDetails: details,
	}
	if entry.Success {
		formatted.Result = formatter.truncateResult(entry.Result)
	} else {
		formatted.Error = formatter.formatError(entry.Error)
	}
	return formatted
}

// FormatResults renders multiple execution results in order.
func (formatter *ResultFormatter) FormatResults(entries []ExecutionResult) []FormattedResult {
	formatted := make([]FormattedResult, 0, len(entries))
	for _, entry := range entries {
		formatted = append(formatted, formatter.FormatResult(entry))
	}
	return formatted
}

// FormatMetrics renders performance metrics with second durations.
func (formatter *ResultFormatter) FormatMetrics(allMetrics map[string]PerformanceMetrics) map[string]map[string]string {
	formatted := make(map[string]map[string]string, len(allMetrics))
	for functionName, metrics := range allMetrics {
		formatted[functionName] = map[string]string{
			"min_time":   formatDuration(metrics.MinTime),
			"max_time":   formatDuration(metrics.MaxTime),
			"avg_time":   formatDuration(metrics.AvgTime),
			"total_time": formatDuration(metrics.TotalTime),
			"call_count": fmt.Sprintf("%d", metrics.Count),
		}
	}
	return formatted
}

func (formatter *ResultFormatter) formatError(errorMessage string) string {
	if errorMessage == "" {
		errorMessage = "unknown error"
	}
	if !formatter.config.FormatErrors {
		return errorMessage
	}
	if separatorIndex := strings.Index(errorMessage, ":"); separatorIndex >= 0 {
		errorType := strings.TrimSpace(errorMessage[:separatorIndex])
		message := strings.TrimSpace(errorMessage[separatorIndex+1:])
		return fmt.Sprintf("Error (%s): %s", errorType, message)
	}
	return fmt.Sprintf("Error: %s", errorMessage)
}

func (formatter *ResultFormatter) truncateResult(result any) any {
	if formatter.config.MaxResultLength <= 0 {
		return result
	}
	switch typedResult := result.(type) {
	case string:
		runes := []rune(typedResult)
		if len(runes) > formatter.config.MaxResultLength {
			return string(runes[:formatter.config.MaxResultLength]) + "..."
		}
		return typedResult
	case map[string]any:
		truncated := make(map[string]any, len(typedResult))
		for key, value := range typedResult {
			truncated[key] = formatter.truncateResult(value)
		}
		return truncated
	case []any:
		truncated := make([]any, 0, len(typedResult))
		for _, value := range typedResult {
			truncated = append(truncated, formatter.truncateResult(value))
		}
		return truncated
	default:
		return result
	}
}

// formatDuration renders a duration as seconds with four decimal places.
func formatDuration(value time.Duration) string {
	return fmt.Sprintf("%.4fs", value.Seconds())
}
