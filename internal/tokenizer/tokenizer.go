// Package tokenizer estimates token counts for message text.
package tokenizer

import (
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// Counter estimates token counts for text content.
type Counter interface {
	Name() string
	CountString(input string) (int, error)
}

// Config captures tokenizer selection parameters provided by the CLI.
type Config struct {
	Model string
}

const (
	defaultModel        = "gpt-4o"
	defaultEncodingName = "cl100k_base"

	// HeuristicModelName selects the character-based estimator explicitly.
	HeuristicModelName = "heuristic"
)

// NewCounter returns a Counter implementation for the requested model along
// with the resolved model name. Models recognized by tiktoken use its
// encodings; everything else falls back to the default encoding, and the
// character heuristic serves as the last resort when no encoding can be
// initialized.
func NewCounter(cfg Config) (Counter, string, error) {
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}
	lowerModel := strings.ToLower(model)

	if lowerModel == HeuristicModelName {
		return heuristicCounter{}, HeuristicModelName, nil
	}

	if isOpenAIModel(lowerModel) {
		encoding, err := tiktoken.EncodingForModel(lowerModel)
		if err == nil && encoding != nil {
			return openAICounter{encoding: encoding, name: lowerModel}, model, nil
		}
	}

	fallback, fallbackErr := tiktoken.GetEncoding(defaultEncodingName)
	if fallbackErr != nil {
		return heuristicCounter{}, HeuristicModelName, nil
	}
	if fallback == nil {
		return nil, "", fmt.Errorf("initialize encoding %s: encoder unavailable", defaultEncodingName)
	}
	return openAICounter{encoding: fallback, name: defaultEncodingName}, defaultEncodingName, nil
}

func isOpenAIModel(model string) bool {
	prefixes := []string{
		"gpt-",
		"text-embedding",
		"davinci",
		"curie",
		"babbage",
		"ada",
		"code-",
	}
	for _, prefix := range prefixes {
		if strings.HasPrefix(model, prefix) {
			return true
		}
	}
	return false
}
