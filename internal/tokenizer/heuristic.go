package tokenizer

// charactersPerToken is the rough characters-per-token ratio used when no
// real encoding is available.
const charactersPerToken = 4

// NewHeuristicCounter returns the character-based estimator directly,
// bypassing model resolution.
func NewHeuristicCounter() Counter {
	return heuristicCounter{}
}

// heuristicCounter estimates tokens as character count divided by four.
type heuristicCounter struct{}

func (heuristicCounter) Name() string {
	return HeuristicModelName
}

func (heuristicCounter) CountString(input string) (int, error) {
	characterCount := len([]rune(input))
	return characterCount / charactersPerToken, nil
}

var _ Counter = heuristicCounter{}
