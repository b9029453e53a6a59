// Package content processes message text through an ordered pipeline of
// sanitization, formatting, and emoji stages. Every stage that changes the
// text leaves a modification entry on the record, so callers can inspect
// exactly what happened to a message.
package content

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Stage names recorded on modifications.
const (
	StageProfanityFilter  = "profanity_filter"
	StageWhitespaceClean  = "whitespace_clean"
	StagePunctuationClean = "punctuation_clean"
	StageCasualFormality  = "casual_formality"
	StageFormalFormality  = "formal_formality"
	StagePositiveTone     = "positive_tone"
	StageNegativeTone     = "negative_tone"
	StageEmojiProcess     = "emoji_process"
)

// Formality and tone option values.
const (
	FormalityCasual = "casual"
	FormalityFormal = "formal"
	TonePositive    = "positive"
	ToneNegative    = "negative"
)

const contentLoggerName = "content"

// ErrRecordComplete is returned when a pipeline run is attempted on a record
// that was already finalized.
var ErrRecordComplete = errors.New("content record already complete")

// Options control which pipeline stages run for one message.
type Options struct {
	// Profanity enables the profanity filtering stage.
	Profanity bool
	// Whitespace enables the space trimming and line break stages.
	Whitespace bool
	// Punctuation enables the standardization and excess removal stages.
	Punctuation bool
	// Formality selects "casual" or "formal" adjustment. Empty skips it.
	Formality string
	// Tone selects "positive" or "negative" adjustment. Empty skips it.
	Tone string
	// ProcessEmoji enables the emoji formatting stage.
	ProcessEmoji bool
}

// DefaultOptions returns the processing defaults: every sanitation stage and
// emoji formatting on, no formality or tone adjustment.
func DefaultOptions() Options {
	return Options{Profanity: true, Whitespace: true, Punctuation: true, ProcessEmoji: true}
}

// Config collects the per-stage configurations for a pipeline.
type Config struct {
	Blacklist       BlacklistConfig
	Replacement     ReplacementConfig
	SpaceTrim       SpaceTrimConfig
	LineBreak       LineBreakConfig
	Standardization StandardizationConfig
	Excess          ExcessConfig
	CasualFormality CasualFormalityConfig
	FormalFormality FormalFormalityConfig
	PositiveTone    PositiveToneConfig
	NegativeTone    NegativeToneConfig
	Extractor       ExtractorConfig
	Formatter       FormatterConfig
}

// DefaultConfig returns the default configuration for every stage.
func DefaultConfig() Config {
	return Config{
		Blacklist:       DefaultBlacklistConfig(),
		Replacement:     DefaultReplacementConfig(),
		SpaceTrim:       DefaultSpaceTrimConfig(),
		LineBreak:       DefaultLineBreakConfig(),
		Standardization: DefaultStandardizationConfig(),
		Excess:          DefaultExcessConfig(),
		CasualFormality: DefaultCasualFormalityConfig(),
		FormalFormality: DefaultFormalFormalityConfig(),
		PositiveTone:    DefaultPositiveToneConfig(),
		NegativeTone:    DefaultNegativeToneConfig(),
		Extractor:       DefaultExtractorConfig(),
		Formatter:       DefaultFormatterConfig(),
	}
}

// Pipeline runs message text through the configured stages in order.
type Pipeline struct {
	profanityReplacer *ProfanityReplacer
	spaceTrimmer      *SpaceTrimmer
	lineBreakCleaner  *LineBreakCleaner
	standardizer      *PunctuationStandardizer
	excessRemover     *ExcessPunctuationRemover
	casualSetter      *CasualFormalitySetter
	formalSetter      *FormalFormalitySetter
	positiveApplier   *PositiveToneApplier
	negativeApplier   *NegativeToneApplier
	emojiExtractor    *EmojiExtractor
	emojiFormatter    *EmojiFormatter
	logger            *zap.Logger
}

// NewPipeline creates a pipeline from the supplied configuration. A nil
// logger disables logging.
func NewPipeline(config Config, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		profanityReplacer: NewProfanityReplacer(config.Blacklist, config.Replacement),
		spaceTrimmer:      NewSpaceTrimmer(config.SpaceTrim),
		lineBreakCleaner:  NewLineBreakCleaner(config.LineBreak),
		standardizer:      NewPunctuationStandardizer(config.Standardization),
		excessRemover:     NewExcessPunctuationRemover(config.Excess),
		casualSetter:      NewCasualFormalitySetter(config.CasualFormality),
		formalSetter:      NewFormalFormalitySetter(config.FormalFormality),
		positiveApplier:   NewPositiveToneApplier(config.PositiveTone),
		negativeApplier:   NewNegativeToneApplier(config.NegativeTone),
		emojiExtractor:    NewEmojiExtractor(config.Extractor),
		emojiFormatter:    NewEmojiFormatter(config.Formatter, config.Extractor),
		logger:            logger.Named(contentLoggerName),
	}
}

// Blacklist exposes the profanity blacklist so callers can merge words from
// configuration files or flags.
func (pipeline *Pipeline) Blacklist() *BlacklistLoader {
	return pipeline.profanityReplacer.Blacklist()
}

// ExtractEmoji analyzes text without running the pipeline.
func (pipeline *Pipeline) ExtractEmoji(text string) EmojiExtraction {
	return pipeline.emojiExtractor.ExtractEmoji(text)
}

// Process runs the text through the stages selected by options and returns
// a finalized record.
func (pipeline *Pipeline) Process(text string, options Options) (*Record, error) {
	record := NewRecord(text)
	if runError := pipeline.ProcessRecord(record, options); runError != nil {
		return nil, runError
	}
	return record, nil
}

// ProcessRecord runs an existing record through the stages selected by
// options and finalizes it. A record that is already complete is rejected.
func (pipeline *Pipeline) ProcessRecord(record *Record, options Options) error {
	if record.Complete {
		return ErrRecordComplete
	}
	if validationError := validateOptions(options); validationError != nil {
		return validationError
	}

	if options.Profanity {
		cleaned, _ := pipeline.profanityReplacer.ReplaceProfanity(record.Processed)
		pipeline.recordStage(record, StageProfanityFilter, cleaned, nil)
	}

	if options.Whitespace {
		trimmed, _ := pipeline.spaceTrimmer.TrimSpaces(record.Processed)
		unbroken, _ := pipeline.lineBreakCleaner.CleanBreaks(trimmed)
		pipeline.recordStage(record, StageWhitespaceClean, unbroken, nil)
	}

	if options.Punctuation {
		standardized, _ := pipeline.standardizer.Standardize(record.Processed)
		reduced, _ := pipeline.excessRemover.RemoveExcess(standardized)
		pipeline.recordStage(record, StagePunctuationClean, reduced, nil)
	}

	switch options.Formality {
	case FormalityCasual:
		casual, _ := pipeline.casualSetter.SetCasualFormality(record.Processed)
		pipeline.recordStage(record, StageCasualFormality, casual, nil)
	case FormalityFormal:
		formal, _ := pipeline.formalSetter.SetFormalFormality(record.Processed)
		pipeline.recordStage(record, StageFormalFormality, formal, nil)
	}

	switch options.Tone {
	case TonePositive:
		positive, _ := pipeline.positiveApplier.ApplyPositiveTone(record.Processed)
		pipeline.recordStage(record, StagePositiveTone, positive, nil)
	case ToneNegative:
		negative, _ := pipeline.negativeApplier.ApplyNegativeTone(record.Processed)
		pipeline.recordStage(record, StageNegativeTone, negative, nil)
	}

	if options.ProcessEmoji {
		extraction := pipeline.emojiExtractor.ExtractEmoji(record.Processed)
		formatted, _ := pipeline.emojiFormatter.FormatEmoji(record.Processed)
		var emojiData *EmojiExtraction
		if extraction.TotalCount() > 0 {
			emojiData = &extraction
		}
		pipeline.recordStage(record, StageEmojiProcess, formatted, emojiData)
	}

	record.MarkComplete()
	return nil
}

// recordStage applies one stage output to the record and logs the change.
func (pipeline *Pipeline) recordStage(record *Record, stage string, output string, emojiData *EmojiExtraction) {
	if record.applyStage(stage, output, emojiData) {
		pipeline.logger.Debug("stage changed content",
			zap.String("stage", stage),
			zap.Int("length", record.FinalLength))
	}
}

// validateOptions rejects unknown formality and tone selections.
func validateOptions(options Options) error {
	switch options.Formality {
	case "", FormalityCasual, FormalityFormal:
	default:
		return fmt.Errorf("unknown formality %q", options.Formality)
	}
	switch options.Tone {
	case "", TonePositive, ToneNegative:
	default:
		return fmt.Errorf("unknown tone %q", options.Tone)
	}
	return nil
}
