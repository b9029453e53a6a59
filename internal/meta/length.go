package meta

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cognitus/cognitus/internal/tokenizer"
)

// LengthConfig bounds length measurement and validation. Zero limits are
// unenforced.
type LengthConfig struct {
	CountTokens bool
	MinTokens   int
	MaxTokens   int
	MinChars    int
	MaxChars    int
}

// DefaultLengthConfig returns the measurement defaults: token counting on,
// no limits.
func DefaultLengthConfig() LengthConfig {
	return LengthConfig{CountTokens: true}
}

// ComponentLength records the measured size of one prompt component.
type ComponentLength struct {
	ComponentType   string `json:"component_type"`
	TokenCount      int    `json:"token_count,omitempty"`
	CharacterCount  int    `json:"character_count"`
	WhitespaceCount int    `json:"whitespace_count"`
	SpecialCount    int    `json:"special_count"`
}

// CompletionLength records the measured size of a completion.
type CompletionLength struct {
	TokenCount      int `json:"token_count,omitempty"`
	CharacterCount  int `json:"character_count"`
	LineCount       int `json:"line_count"`
	WordCount       int `json:"word_count"`
	WhitespaceCount int `json:"whitespace_count"`
	SpecialCount    int `json:"special_count"`
}

// LengthCalculator measures prompt components and completions. Character
// counts are rune counts; token counts come from the configured counter.
type LengthCalculator struct {
	config  LengthConfig
	counter tokenizer.Counter
}

// NewLengthCalculator builds a calculator. A nil counter selects the
// character heuristic.
func NewLengthCalculator(config LengthConfig, counter tokenizer.Counter) *LengthCalculator {
	if counter == nil {
		counter = tokenizer.NewHeuristicCounter()
	}
	return &LengthCalculator{
		config:  config,
		counter: counter,
	}
}

// MeasureComponent calculates length details for one prompt component.
func (calculator *LengthCalculator) MeasureComponent(componentType string, text string) (ComponentLength, error) {
	length := ComponentLength{
		ComponentType:  componentType,
		CharacterCount: utf8.RuneCountInString(text),
	}
	length.WhitespaceCount, length.SpecialCount = classifyCharacters(text)
	if calculator.config.CountTokens {
		tokenCount, countError := calculator.counter.CountString(text)
		if countError != nil {
			return ComponentLength{}, fmt.Errorf("count tokens for component %s: %w", componentType, countError)
		}
		length.TokenCount = tokenCount
	}
	return length, nil
}

// MeasureCompletion calculates length details for a completion.
func (calculator *LengthCalculator) MeasureCompletion(text string) (CompletionLength, error) {
	length := CompletionLength{
		CharacterCount: utf8.RuneCountInString(text),
		LineCount:      strings.Count(text, "\n") + 1,
		WordCount:      len(strings.Fields(text)),
	}
	length.WhitespaceCount, length.SpecialCount = classifyCharacters(text)
	if calculator.config.CountTokens {
		tokenCount, countError := calculator.counter.CountString(text)
		if countError != nil {
			return CompletionLength{}, fmt.Errorf("count completion tokens: %w", countError)
		}
		length.TokenCount = tokenCount
	}
	return length, nil
}

// ValidateCompletion checks a completion length against the configured
// limits and returns a message per failing limit.
func (calculator *LengthCalculator) ValidateCompletion(length CompletionLength) (bool, map[string]string) {
	validationErrors := map[string]string{}
	if calculator.config.MaxTokens > 0 && length.TokenCount > calculator.config.MaxTokens {
		validationErrors["tokens_max"] = fmt.Sprintf("token count %d exceeds maximum %d", length.TokenCount, calculator.config.MaxTokens)
	}
	if calculator.config.MinTokens > 0 && length.TokenCount > 0 && length.TokenCount < calculator.config.MinTokens {
		validationErrors["tokens_min"] = fmt.Sprintf("token count %d below minimum %d", length.TokenCount, calculator.config.MinTokens)
	}
	if calculator.config.MaxChars > 0 && length.CharacterCount > calculator.config.MaxChars {
		validationErrors["chars_max"] = fmt.Sprintf("character count %d exceeds maximum %d", length.CharacterCount, calculator.config.MaxChars)
	}
	if calculator.config.MinChars > 0 && length.CharacterCount < calculator.config.MinChars {
		validationErrors["chars_min"] = fmt.Sprintf("character count %d below minimum %d", length.CharacterCount, calculator.config.MinChars)
	}
	return len(validationErrors) == 0, validationErrors
}

func classifyCharacters(text string) (whitespaceCount int, specialCount int) {
	for _, character := range text {
		switch {
		case unicode.IsSpace(character):
			whitespaceCount++
		case !unicode.IsLetter(character) && !unicode.IsDigit(character):
			specialCount++
		}
	}
	return whitespaceCount, specialCount
}

// ComponentTotals holds aggregated counts for one component name.
type ComponentTotals struct {
	Tokens     int `json:"tokens,omitempty"`
	Characters int `json:"characters"`
}

// LengthTotals is the aggregated length summary for a message.
type LengthTotals struct {
	PromptTokens         int `json:"prompt_tokens"`
	PromptCharacters     int `json:"prompt_characters"`
	CompletionTokens     int `json:"completion_tokens"`
	CompletionCharacters int `json:"completion_characters"`
	TotalTokens          int `json:"total_tokens"`
	TotalCharacters      int `json:"total_characters"`
	Completions          int `json:"completions"`
}

// LengthAggregator accumulates prompt and completion lengths across a
// message exchange.
type LengthAggregator struct {
	totals     LengthTotals
	components map[string]ComponentTotals
}

// NewLengthAggregator returns an empty aggregator.
func NewLengthAggregator() *LengthAggregator {
	return &LengthAggregator{
		components: map[string]ComponentTotals{},
	}
}

// AddComponent folds one prompt component into the totals.
func (aggregator *LengthAggregator) AddComponent(length ComponentLength) {
	aggregator.totals.PromptTokens += length.TokenCount
	aggregator.totals.PromptCharacters += length.CharacterCount

	componentTotals := aggregator.components[length.ComponentType]
	componentTotals.Tokens += length.TokenCount
	componentTotals.Characters += length.CharacterCount
	aggregator.components[length.ComponentType] = componentTotals
}

// AddCompletion folds one completion into the totals.
func (aggregator *LengthAggregator) AddCompletion(length CompletionLength) {
	aggregator.totals.CompletionTokens += length.TokenCount
	aggregator.totals.CompletionCharacters += length.CharacterCount
	aggregator.totals.Completions++
}

// Totals returns the aggregated counts.
func (aggregator *LengthAggregator) Totals() LengthTotals {
	totals := aggregator.totals
	totals.TotalTokens = totals.PromptTokens + totals.CompletionTokens
	totals.TotalCharacters = totals.PromptCharacters + totals.CompletionCharacters
	return totals
}

// ComponentBreakdown returns per-component aggregated counts.
func (aggregator *LengthAggregator) ComponentBreakdown() map[string]ComponentTotals {
	breakdown := make(map[string]ComponentTotals, len(aggregator.components))
	for componentType, componentTotals := range aggregator.components {
		breakdown[componentType] = componentTotals
	}
	return breakdown
}
