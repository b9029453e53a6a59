package funcall

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ExtractArguments parses a raw function call argument string into a map.
// Input must be a JSON object; empty input yields an empty map.
func ExtractArguments(rawArguments string) (map[string]any, error) {
	trimmed := strings.TrimSpace(rawArguments)
	if trimmed == "" {
		return map[string]any{}, nil
	}

	var arguments map[string]any
	if unmarshalError := json.Unmarshal([]byte(trimmed), &arguments); unmarshalError != nil {
		return nil, fmt.Errorf("parse function arguments: %w", unmarshalError)
	}
	if arguments == nil {
		return nil, fmt.Errorf("parse function arguments: expected a JSON object")
	}
	return arguments, nil
}

// ArgumentSanitizerConfig controls argument normalization. MaxStringLength
// zero disables truncation; MaxDepth bounds how deep containers are kept
// before being stringified.
type ArgumentSanitizerConfig struct {
	TrimStrings           bool
	ConvertNumericStrings bool
	NormalizeBooleans     bool
	RemoveEmpty           bool
	MaxStringLength       int
	MaxDepth              int
	DisallowedKeys        []string
}

// DefaultArgumentSanitizerConfig returns the normalization defaults:
// trimming and scalar conversion on, containers kept to five levels.
func DefaultArgumentSanitizerConfig() ArgumentSanitizerConfig {
	return ArgumentSanitizerConfig{
		TrimStrings:           true,
		ConvertNumericStrings: true,
		NormalizeBooleans:     true,
		MaxDepth:              5,
	}
}

// ArgumentSanitizer normalizes extracted argument values.
type ArgumentSanitizer struct {
	config ArgumentSanitizerConfig
}

// NewArgumentSanitizer builds a sanitizer with the given configuration.
func NewArgumentSanitizer(config ArgumentSanitizerConfig) *ArgumentSanitizer {
	return &ArgumentSanitizer{config: config}
}

// Sanitize normalizes an argument map and describes the changes it made,
// keyed by argument name.
func (sanitizer *ArgumentSanitizer) Sanitize(arguments map[string]any) (map[string]any, map[string]string) {
	return sanitizer.sanitizeMap(arguments, 1)
}

func (sanitizer *ArgumentSanitizer) sanitizeMap(arguments map[string]any, depth int) (map[string]any, map[string]string) {
	sanitized := make(map[string]any, len(arguments))
	changes := map[string]string{}

	for key, value := range arguments {
		if sanitizer.disallowedKey(key) {
			changes[key] = "removed disallowed key"
			continue
		}

		switch typedValue := value.(type) {
		case map[string]any:
			if sanitizer.config.MaxDepth > 0 && depth >= sanitizer.config.MaxDepth {
				sanitized[key] = stringifyValue(typedValue)
				changes[key] = "stringified beyond max depth"
				continue
			}
			nestedValue, nestedChanges := sanitizer.sanitizeMap(typedValue, depth+1)
			if len(nestedChanges) > 0 {
				changes[key] = fmt.Sprintf("nested changes: %d", len(nestedChanges))
			}
			sanitized[key] = nestedValue
		case []any:
			if sanitizer.config.MaxDepth > 0 && depth >= sanitizer.config.MaxDepth {
				sanitized[key] = stringifyValue(typedValue)
				changes[key] = "stringified beyond max depth"
				continue
			}
			sanitizedList, listChanges := sanitizer.sanitizeList(typedValue, depth+1)
			if listChanges > 0 {
				changes[key] = fmt.Sprintf("list changes: %d", listChanges)
			}
			sanitized[key] = sanitizedList
		default:
			normalized, change, keep := sanitizer.normalizeValue(value)
			if !keep {
				changes[key] = change
				continue
			}
			if change != "" {
				changes[key] = change
			}
			sanitized[key] = normalized
		}
	}

	return sanitized, changes
}

func (sanitizer *ArgumentSanitizer) sanitizeList(values []any, depth int) ([]any, int) {
	sanitized := make([]any, 0, len(values))
	changeCount := 0
	for _, value := range values {
		switch typedValue := value.(type) {
		case map[string]any:
			if sanitizer.config.MaxDepth > 0 && depth >= sanitizer.config.MaxDepth {
				sanitized = append(sanitized, stringifyValue(typedValue))
				changeCount++
				continue
			}
			nestedValue, nestedChanges := sanitizer.sanitizeMap(typedValue, depth+1)
			changeCount += len(nestedChanges)
			sanitized = append(sanitized, nestedValue)
		case []any:
			if sanitizer.config.MaxDepth > 0 && depth >= sanitizer.config.MaxDepth {
				sanitized = append(sanitized, stringifyValue(typedValue))
				changeCount++
				continue
			}
			nestedList, nestedChanges := sanitizer.sanitizeList(typedValue, depth+1)
			changeCount += nestedChanges
			sanitized = append(sanitized, nestedList)
		default:
			normalized, change, keep := sanitizer.normalizeValue(value)
			if !keep {
				changeCount++
				continue
			}
			if change != "" {
				changeCount++
			}
			sanitized = append(sanitized, normalized)
		}
	}
	return sanitized, changeCount
}

// normalizeValue converts one scalar value. The third return reports whether
// the value should be kept at all.
func (sanitizer *ArgumentSanitizer) normalizeValue(value any) (any, string, bool) {
	stringValue, isString := value.(string)
	if !isString {
		return value, "", true
	}

	if stringValue == "" && sanitizer.config.RemoveEmpty {
		return nil, "removed empty string", false
	}

	if sanitizer.config.ConvertNumericStrings {
		trimmed := strings.TrimSpace(stringValue)
		if strings.Contains(trimmed, ".") {
			if floatValue, parseError := strconv.ParseFloat(trimmed, 64); parseError == nil {
				return floatValue, "converted to float", true
			}
		} else if integerValue, parseError := strconv.Atoi(trimmed); parseError == nil {
			return integerValue, "converted to integer", true
		}
	}

	if sanitizer.config.NormalizeBooleans {
		switch strings.ToLower(strings.TrimSpace(stringValue)) {
		case "true", "yes", "on":
			return true, "converted to boolean", true
		case "false", "no", "off":
			return false, "converted to boolean", true
		}
	}

	sanitizedString, changed := sanitizer.sanitizeString(stringValue)
	if changed {
		return sanitizedString, "sanitized string", true
	}
	return stringValue, "", true
}

func (sanitizer *ArgumentSanitizer) sanitizeString(value string) (string, bool) {
	result := value
	if sanitizer.config.TrimStrings {
		result = strings.TrimSpace(result)
	}
	if sanitizer.config.MaxStringLength > 0 {
		runes := []rune(result)
		if len(runes) > sanitizer.config.MaxStringLength {
			result = string(runes[:sanitizer.config.MaxStringLength])
		}
	}
	return result, result != value
}

func (sanitizer *ArgumentSanitizer) disallowedKey(key string) bool {
	for _, disallowed := range sanitizer.config.DisallowedKeys {
		if key == disallowed {
			return true
		}
	}
	return false
}

func stringifyValue(value any) string {
	encoded, marshalError := json.Marshal(value)
	if marshalError != nil {
		return fmt.Sprintf("%v", value)
	}
	return string(encoded)
}

// ArgumentType names the JSON value families allowed in schemas.
type ArgumentType string

const (
	// ArgumentString admits JSON strings.
	ArgumentString ArgumentType = "string"
	// ArgumentNumber admits JSON numbers.
	ArgumentNumber ArgumentType = "number"
	// ArgumentBoolean admits JSON booleans.
	ArgumentBoolean ArgumentType = "boolean"
	// ArgumentObject admits JSON objects.
	ArgumentObject ArgumentType = "object"
	// ArgumentArray admits JSON arrays.
	ArgumentArray ArgumentType = "array"
	// ArgumentAny admits every value.
	ArgumentAny ArgumentType = "any"
)

// ArgumentSchema describes one expected argument.
type ArgumentSchema struct {
	Name     string
	Type     ArgumentType
	Required bool
}

// ValidatorConfig controls argument validation. Zero limits are unenforced
// except MaxDepth, which callers set explicitly or through the defaults.
type ValidatorConfig struct {
	CheckTypes      bool
	CheckRequired   bool
	AllowExtra      bool
	MaxStringLength int
	MaxListLength   int
	MaxDepth        int
}

// DefaultValidatorConfig returns the validation defaults: types and
// required keys checked, extras rejected, five nesting levels.
func DefaultValidatorConfig() ValidatorConfig {
	return ValidatorConfig{
		CheckTypes:    true,
		CheckRequired: true,
		MaxDepth:      5,
	}
}

// ArgumentValidator checks argument maps against schemas.
type ArgumentValidator struct {
	config ValidatorConfig
}

// NewArgumentValidator builds a validator with the given configuration.
func NewArgumentValidator(config ValidatorConfig) *ArgumentValidator {
	return &ArgumentValidator{config: config}
}

// Validate checks arguments against the schemas and returns the messages
// per failing argument.
func (validator *ArgumentValidator) Validate(arguments map[string]any, schemas []ArgumentSchema) (bool, map[string][]string) {
	validationErrors := map[string][]string{}

	for name, value := range arguments {
		var messages []string
		schema := findSchema(schemas, name)

		if schema == nil {
			if !validator.config.AllowExtra {
				messages = append(messages, "unexpected argument")
			}
		} else if validator.config.CheckTypes {
			if message := typeMessage(value, schema.Type); message != "" {
				messages = append(messages, message)
			}
		}

		if stringValue, isString := value.(string); isString && validator.config.MaxStringLength > 0 {
			if len([]rune(stringValue)) > validator.config.MaxStringLength {
				messages = append(messages, fmt.Sprintf("string exceeds max length %d", validator.config.MaxStringLength))
			}
		}
		if listValue, isList := value.([]any); isList && validator.config.MaxListLength > 0 {
			if len(listValue) > validator.config.MaxListLength {
				messages = append(messages, fmt.Sprintf("list exceeds max length %d", validator.config.MaxListLength))
			}
		}
		if message := validator.depthMessage(value, 0); message != "" {
			messages = append(messages, message)
		}

		if len(messages) > 0 {
			validationErrors[name] = messages
		}
	}

	if validator.config.CheckRequired {
		for _, schema := range schemas {
			if schema.Required {
				if _, present := arguments[schema.Name]; !present {
					validationErrors[schema.Name] = append(validationErrors[schema.Name], "required argument missing")
				}
			}
		}
	}

	return len(validationErrors) == 0, validationErrors
}

func findSchema(schemas []ArgumentSchema, name string) *ArgumentSchema {
	for index := range schemas {
		if schemas[index].Name == name {
			return &schemas[index]
		}
	}
	return nil
}

func typeMessage(value any, expected ArgumentType) string {
	if expected == ArgumentAny || expected == "" {
		return ""
	}
	actual := argumentTypeOf(value)
	if actual != expected {
		return fmt.Sprintf("expected %s, got %s", expected, actual)
	}
	return ""
}

func argumentTypeOf(value any) ArgumentType {
	switch value.(type) {
	case string:
		return ArgumentString
	case float64, int, int64:
		return ArgumentNumber
	case bool:
		return ArgumentBoolean
	case map[string]any:
		return ArgumentObject
	case []any:
		return ArgumentArray
	default:
		return ArgumentType("null")
	}
}

func (validator *ArgumentValidator) depthMessage(value any, currentDepth int) string {
	if validator.config.MaxDepth > 0 && currentDepth > validator.config.MaxDepth {
		return "maximum nesting depth exceeded"
	}
	switch typedValue := value.(type) {
	case map[string]any:
		for _, nested := range typedValue {
			if message := validator.depthMessage(nested, currentDepth+1); message != "" {
				return message
			}
		}
	case []any:
		for _, nested := range typedValue {
			if message := validator.depthMessage(nested, currentDepth+1); message != "" {
				return message
			}
		}
	}
	return ""
}
