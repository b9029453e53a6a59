package content

import (
	"time"
	"unicode/utf8"
)

// Modification records one pipeline stage that changed the text.
type Modification struct {
	Stage           string           `json:"stage"`
	Timestamp       time.Time        `json:"timestamp"`
	OriginalContent string           `json:"original_content"`
	ModifiedContent string           `json:"modified_content"`
	OriginalLength  int              `json:"original_length"`
	ModifiedLength  int              `json:"modified_length"`
	EmojiData       *EmojiExtraction `json:"emoji_data,omitempty"`
}

// Record tracks message content through a pipeline run. Raw holds the text
// as received; Processed holds the current text. Lengths count runes.
type Record struct {
	Raw           string         `json:"raw"`
	Processed     string         `json:"processed"`
	Modifications []Modification `json:"modifications,omitempty"`
	FinalLength   int            `json:"final_length"`
	Complete      bool           `json:"complete"`
}

// NewRecord starts a record for the supplied raw text.
func NewRecord(raw string) *Record {
	return &Record{
		Raw:         raw,
		Processed:   raw,
		FinalLength: utf8.RuneCountInString(raw),
	}
}

// applyStage advances the record to the stage output. A modification entry
// is appended only when the stage changed the text.
func (record *Record) applyStage(stage string, output string, emojiData *EmojiExtraction) bool {
	if output == record.Processed {
		return false
	}
	record.Modifications = append(record.Modifications, Modification{
		Stage:           stage,
		Timestamp:       time.Now().UTC(),
		OriginalContent: record.Processed,
		ModifiedContent: output,
		OriginalLength:  utf8.RuneCountInString(record.Processed),
		ModifiedLength:  utf8.RuneCountInString(output),
		EmojiData:       emojiData,
	})
	record.Processed = output
	record.FinalLength = utf8.RuneCountInString(output)
	return true
}

// MarkComplete finalizes the record. A complete record is rejected by
// further pipeline runs.
func (record *Record) MarkComplete() {
	record.Complete = true
}

// StageNames returns the stages that changed the text, in order.
func (record *Record) StageNames() []string {
	names := make([]string, 0, len(record.Modifications))
	for _, modification := range record.Modifications {
		names = append(names, modification.Stage)
	}
	return names
}
