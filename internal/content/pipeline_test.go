package content_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/cognitus/cognitus/internal/content"
)

func TestPipelineProcessDefault(t *testing.T) {
	pipeline := content.NewPipeline(content.DefaultConfig(), nil)

	record, processError := pipeline.Process("  Dirty   text!!!!!  ", content.DefaultOptions())
	if processError != nil {
		t.Fatalf("Process error: %v", processError)
	}

	if record.Processed != "Dirty text!!!" {
		t.Errorf("Processed = %q, expected %q", record.Processed, "Dirty text!!!")
	}
	if record.Raw != "  Dirty   text!!!!!  " {
		t.Errorf("Raw = %q, expected the original input", record.Raw)
	}
	if !record.Complete {
		t.Error("Complete = false, expected true")
	}
	if record.FinalLength != 13 {
		t.Errorf("FinalLength = %d, expected 13", record.FinalLength)
	}

	expectedStages := []string{content.StageWhitespaceClean, content.StagePunctuationClean}
	if !reflect.DeepEqual(record.StageNames(), expectedStages) {
		t.Errorf("StageNames = %v, expected %v", record.StageNames(), expectedStages)
	}
}

func TestPipelineProcessEmptyContent(t *testing.T) {
	pipeline := content.NewPipeline(content.DefaultConfig(), nil)

	record, processError := pipeline.Process("", content.DefaultOptions())
	if processError != nil {
		t.Fatalf("Process error: %v", processError)
	}
	if len(record.Modifications) != 0 {
		t.Errorf("Modifications = %d entries, expected none", len(record.Modifications))
	}
	if !record.Complete {
		t.Error("Complete = false, expected true")
	}
	if record.FinalLength != 0 {
		t.Errorf("FinalLength = %d, expected 0", record.FinalLength)
	}
}

func TestPipelineRejectsCompleteRecord(t *testing.T) {
	pipeline := content.NewPipeline(content.DefaultConfig(), nil)

	record, processError := pipeline.Process("hello", content.DefaultOptions())
	if processError != nil {
		t.Fatalf("Process error: %v", processError)
	}

	reprocessError := pipeline.ProcessRecord(record, content.DefaultOptions())
	if !errors.Is(reprocessError, content.ErrRecordComplete) {
		t.Fatalf("ProcessRecord error = %v, expected ErrRecordComplete", reprocessError)
	}
}

func TestPipelineRejectsUnknownOptions(t *testing.T) {
	pipeline := content.NewPipeline(content.DefaultConfig(), nil)

	_, formalityError := pipeline.Process("text", content.Options{Formality: "fancy"})
	if formalityError == nil || !strings.Contains(formalityError.Error(), "unknown formality") {
		t.Errorf("Process formality error = %v, expected unknown formality", formalityError)
	}

	_, toneError := pipeline.Process("text", content.Options{Tone: "sarcastic"})
	if toneError == nil || !strings.Contains(toneError.Error(), "unknown tone") {
		t.Errorf("Process tone error = %v, expected unknown tone", toneError)
	}
}

func TestPipelineFormalityAndTone(t *testing.T) {
	pipeline := content.NewPipeline(content.DefaultConfig(), nil)

	record, processError := pipeline.Process("I cannot fix this, it is a problem", content.Options{
		Formality: content.FormalityCasual,
		Tone:      content.TonePositive,
	})
	if processError != nil {
		t.Fatalf("Process error: %v", processError)
	}

	if record.Processed != "I can't fix this, it's a challenge" {
		t.Errorf("Processed = %q, expected %q", record.Processed, "I can't fix this, it's a challenge")
	}
	expectedStages := []string{content.StageCasualFormality, content.StagePositiveTone}
	if !reflect.DeepEqual(record.StageNames(), expectedStages) {
		t.Errorf("StageNames = %v, expected %v", record.StageNames(), expectedStages)
	}
}

func TestPipelineBlacklistMerge(t *testing.T) {
	pipeline := content.NewPipeline(content.DefaultConfig(), nil)
	pipeline.Blacklist().AddWords("dirty")

	record, processError := pipeline.Process("dirty text", content.Options{Profanity: true})
	if processError != nil {
		t.Fatalf("Process error: %v", processError)
	}
	if record.Processed != "***** text" {
		t.Errorf("Processed = %q, expected %q", record.Processed, "***** text")
	}
	if record.StageNames()[0] != content.StageProfanityFilter {
		t.Errorf("first stage = %q, expected %q", record.StageNames()[0], content.StageProfanityFilter)
	}
}

func TestPipelineEmojiStage(t *testing.T) {
	pipeline := content.NewPipeline(content.DefaultConfig(), nil)

	record, processError := pipeline.Process("done :)", content.Options{ProcessEmoji: true})
	if processError != nil {
		t.Fatalf("Process error: %v", processError)
	}
	if record.Processed != "done \U0001F60A" {
		t.Errorf("Processed = %q, expected %q", record.Processed, "done \U0001F60A")
	}

	if len(record.Modifications) != 1 {
		t.Fatalf("Modifications = %d entries, expected 1", len(record.Modifications))
	}
	modification := record.Modifications[0]
	if modification.Stage != content.StageEmojiProcess {
		t.Errorf("Stage = %q, expected %q", modification.Stage, content.StageEmojiProcess)
	}
	if modification.EmojiData == nil || modification.EmojiData.TextEmoji.Count != 1 {
		t.Errorf("EmojiData = %+v, expected one text emoticon", modification.EmojiData)
	}
}

func TestPipelineExtractEmojiQuery(t *testing.T) {
	pipeline := content.NewPipeline(content.DefaultConfig(), nil)
	extraction := pipeline.ExtractEmoji("look \U0001F60A")
	if extraction.UnicodeEmoji.Count != 1 {
		t.Fatalf("UnicodeEmoji.Count = %d, expected 1", extraction.UnicodeEmoji.Count)
	}
}
