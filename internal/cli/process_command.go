package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cognitus/cognitus/internal/content"
	"github.com/cognitus/cognitus/internal/funcall"
	"github.com/cognitus/cognitus/internal/message"
	"github.com/cognitus/cognitus/internal/meta"
	"github.com/cognitus/cognitus/internal/output"
	"github.com/cognitus/cognitus/internal/services/clipboard"
	"github.com/cognitus/cognitus/internal/tokenizer"
	"github.com/cognitus/cognitus/internal/types"
	"github.com/cognitus/cognitus/internal/utils"
)

const (
	processUse              = "process [paths...]"
	processAlias            = "p"
	processShortDescription = "clean message content and derive metadata (" + processAlias + ")"

	// processLongDescription provides detailed help for the process command.
	processLongDescription = `Run chat message text through the content pipeline and report what
changed together with completion metadata and length accounting.
Messages are read from the listed files, or from standard input when a
path is '-'. Use --format to select raw or json output.`
	// processUsageExample demonstrates process command usage.
	processUsageExample = `  # Clean a transcript file and show the modification report
  cognitus process message.txt

  # Process standard input as an assistant completion in JSON
  echo "Well...   okay!!!!" | cognitus process - --role assistant --format json

  # Attach a validated function call to a function message
  cognitus process call.txt --role function --funcall fetchWeather --args '{"city":"Oslo"}'`

	roleFlagName         = "role"
	nameFlagName         = "name"
	funcallFlagName      = "funcall"
	argumentsFlagName    = "args"
	finishReasonFlagName = "finish-reason"
	formalityFlagName    = "formality"
	toneFlagName         = "tone"
	emojiFlagName        = "emoji"
	profanityFlagName    = "profanity"
	blacklistFlagName    = "blacklist"
	tokensFlagName       = "tokens"
	modelFlagName        = "model"

	roleFlagDescription         = "message role (system, user, assistant, function)"
	nameFlagDescription         = "message author name (required for the function role)"
	funcallFlagDescription      = "function call name to sanitize, validate, and attach"
	argumentsFlagDescription    = "function call arguments as a JSON object"
	finishReasonFlagDescription = "completion finish reason"
	formalityFlagDescription    = "formality adjustment (casual or formal)"
	toneFlagDescription         = "tone adjustment (positive or negative)"
	emojiFlagDescription        = "convert text emoticons to emoji"
	profanityFlagDescription    = "filter profanity"
	blacklistFlagDescription    = "path to an additional profanity word list"
	tokensFlagDescription       = "include token counts"
	modelFlagDescription        = "tokenizer model to use for token counting"

	defaultFinishReason       = "stop"
	defaultTokenizerModelName = "gpt-4o"
	standardInputPath         = "-"
	standardInputLabel        = "stdin"
	promptComponentName       = "content"

	// binaryInputFormat reports a message source holding binary data.
	binaryInputFormat = "binary input %s is not supported"
	// binaryInputWithTypeFormat additionally names the detected content type.
	binaryInputWithTypeFormat = "binary input %s (%s) is not supported"
	// readInputFormat reports a failure to read a message source.
	readInputFormat = "read message from %s: %w"
	// loadBlacklistFormat reports a failure to load a profanity word list.
	loadBlacklistFormat = "load blacklist %s: %w"
	// invalidFunctionNameFormat reports a function call name that failed validation.
	invalidFunctionNameFormat = "function call name %q is not acceptable after sanitization"
	// functionRoleNameRequiredMessage rejects function messages without an author name.
	functionRoleNameRequiredMessage = "the function role requires --name or --funcall"
)

// createProcessCommand returns the process subcommand.
func createProcessCommand(applicationLogger *zap.Logger, configurationPath *string) *cobra.Command {
	var messageRole string
	var authorName string
	var functionCallName string
	var functionCallArguments string
	var finishReason string
	var formality string
	var tone string
	var emojiEnabled bool
	var profanityEnabled bool
	var blacklistPath string
	var tokensEnabled bool
	var tokenizerModel string
	var outputFormat string
	var copyEnabled bool

	processCommand := &cobra.Command{
		Use:     processUse,
		Aliases: []string{processAlias},
		Short:   processShortDescription,
		Long:    processLongDescription,
		Example: processUsageExample,
		Args:    cobra.ArbitraryArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			if len(arguments) == 0 {
				arguments = []string{standardInputPath}
			}
			applicationConfiguration, configurationError := loadApplicationConfiguration(*configurationPath)
			if configurationError != nil {
				return configurationError
			}
			processConfiguration := applicationConfiguration.Process

			resolvedFormat := strings.ToLower(resolveStringSetting(command, formatFlagName, outputFormat, processConfiguration.Format))
			if resolvedFormat != types.FormatRaw && resolvedFormat != types.FormatJSON {
				return fmt.Errorf(invalidFormatMessage, resolvedFormat)
			}

			return runProcessCommand(processCommandOptions{
				Sources:          arguments,
				Role:             messageRole,
				Name:             authorName,
				FunctionCallName: functionCallName,
				FunctionCallArgs: functionCallArguments,
				FinishReason:     finishReason,
				Formality:        resolveStringSetting(command, formalityFlagName, formality, processConfiguration.Formality),
				Tone:             resolveStringSetting(command, toneFlagName, tone, processConfiguration.Tone),
				EmojiEnabled:     resolveBoolSetting(command, emojiFlagName, emojiEnabled, processConfiguration.Emoji),
				ProfanityEnabled: resolveBoolSetting(command, profanityFlagName, profanityEnabled, processConfiguration.Profanity),
				BlacklistPath:    resolveStringSetting(command, blacklistFlagName, blacklistPath, processConfiguration.BlacklistPath),
				TokensEnabled:    resolveBoolSetting(command, tokensFlagName, tokensEnabled, processConfiguration.Tokens.Enabled),
				TokenizerModel:   resolveStringSetting(command, modelFlagName, tokenizerModel, processConfiguration.Tokens.Model),
				Format:           resolvedFormat,
				CopyEnabled:      resolveBoolSetting(command, copyFlagName, copyEnabled, processConfiguration.Clipboard),
				Clipboard:        clipboard.NewService(),
				Writer:           command.OutOrStdout(),
				Input:            command.InOrStdin(),
				Logger:           applicationLogger,
			})
		},
	}

	processCommand.Flags().StringVar(&messageRole, roleFlagName, "", roleFlagDescription)
	processCommand.Flags().StringVar(&authorName, nameFlagName, "", nameFlagDescription)
	processCommand.Flags().StringVar(&functionCallName, funcallFlagName, "", funcallFlagDescription)
	processCommand.Flags().StringVar(&functionCallArguments, argumentsFlagName, "", argumentsFlagDescription)
	processCommand.Flags().StringVar(&finishReason, finishReasonFlagName, defaultFinishReason, finishReasonFlagDescription)
	processCommand.Flags().StringVar(&formality, formalityFlagName, "", formalityFlagDescription)
	processCommand.Flags().StringVar(&tone, toneFlagName, "", toneFlagDescription)
	registerBooleanFlag(processCommand.Flags(), &emojiEnabled, emojiFlagName, true, emojiFlagDescription)
	registerBooleanFlag(processCommand.Flags(), &profanityEnabled, profanityFlagName, true, profanityFlagDescription)
	processCommand.Flags().StringVar(&blacklistPath, blacklistFlagName, "", blacklistFlagDescription)
	registerBooleanFlag(processCommand.Flags(), &tokensEnabled, tokensFlagName, false, tokensFlagDescription)
	processCommand.Flags().StringVar(&tokenizerModel, modelFlagName, defaultTokenizerModelName, modelFlagDescription)
	processCommand.Flags().StringVar(&outputFormat, formatFlagName, types.FormatRaw, formatFlagDescription)
	registerCopyFlag(processCommand.Flags(), &copyEnabled)
	return processCommand
}

// processCommandOptions carries the resolved settings for one process run.
type processCommandOptions struct {
	Sources          []string
	Role             string
	Name             string
	FunctionCallName string
	FunctionCallArgs string
	FinishReason     string
	Formality        string
	Tone             string
	EmojiEnabled     bool
	ProfanityEnabled bool
	BlacklistPath    string
	TokensEnabled    bool
	TokenizerModel   string
	Format           string
	CopyEnabled      bool
	Clipboard        clipboard.Copier
	Writer           io.Writer
	Input            io.Reader
	Logger           *zap.Logger
}

// functionCallPayload is the serialized form of an attached function call.
type functionCallPayload struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// runProcessCommand reads every message source, applies role handling, runs
// the content pipeline, derives completion metadata and lengths, and renders
// one report per source.
func runProcessCommand(options processCommandOptions) error {
	outputWriter := options.Writer
	if outputWriter == nil {
		outputWriter = os.Stdout
	}
	inputReader := options.Input
	if inputReader == nil {
		inputReader = os.Stdin
	}

	pipeline := content.NewPipeline(content.DefaultConfig(), options.Logger)
	if options.BlacklistPath != "" {
		if loadError := pipeline.Blacklist().LoadFromFile(options.BlacklistPath); loadError != nil {
			return fmt.Errorf(loadBlacklistFormat, options.BlacklistPath, loadError)
		}
	}
	roleHandler := message.NewRoleHandler(options.Logger)

	resolvedName := options.Name
	var functionCallJSON string
	if options.FunctionCallName != "" {
		encodedCall, callName, callError := buildFunctionCall(options.FunctionCallName, options.FunctionCallArgs)
		if callError != nil {
			return callError
		}
		functionCallJSON = encodedCall
		if resolvedName == "" {
			resolvedName = callName
		}
	}
	if message.NormalizeRole(options.Role) == message.RoleFunction && resolvedName == "" {
		return errors.New(functionRoleNameRequiredMessage)
	}

	var tokenCounter tokenizer.Counter
	var resolvedTokenModel string
	if options.TokensEnabled {
		createdCounter, resolvedModel, counterError := tokenizer.NewCounter(tokenizer.Config{Model: options.TokenizerModel})
		if counterError != nil {
			return counterError
		}
		tokenCounter = createdCounter
		resolvedTokenModel = resolvedModel
	}

	metadataValue := meta.NewMetadata(options.FinishReason, time.Now().UTC())
	if options.FinishReason != "" && metadataValue.Reason == meta.FinishReasonUnknown && options.Logger != nil {
		options.Logger.Warn("finish reason unrecognized", zap.String("finish_reason", options.FinishReason))
	}
	category := meta.CategoryFor(metadataValue.Reason)

	pipelineOptions := content.Options{
		Profanity:    options.ProfanityEnabled,
		Whitespace:   true,
		Punctuation:  true,
		Formality:    options.Formality,
		Tone:         options.Tone,
		ProcessEmoji: options.EmojiEnabled,
	}

	reports := make([]types.ProcessReport, 0, len(options.Sources))
	for _, source := range options.Sources {
		sourceLabel, text, readError := readMessageSource(source, inputReader)
		if readError != nil {
			return readError
		}

		processedMessage, messageError := message.NewMessage(roleHandler, options.Role, text, message.RoleMetadata{
			Name:         resolvedName,
			FunctionCall: functionCallJSON,
		})
		if messageError != nil {
			return messageError
		}

		record, processError := pipeline.Process(processedMessage.Content, pipelineOptions)
		if processError != nil {
			return processError
		}

		totals, lengthError := measureLengths(record, options.TokensEnabled, tokenCounter)
		if lengthError != nil {
			return lengthError
		}

		reports = append(reports, buildProcessReport(sourceLabel, processedMessage, record, metadataValue, category, totals, resolvedTokenModel))
	}

	rendered, renderError := renderProcessReports(reports, options.Format)
	if renderError != nil {
		return renderError
	}
	return writeRendered(outputWriter, rendered, options.CopyEnabled, options.Clipboard)
}

// readMessageSource loads one message source, rejecting binary data. The
// source '-' reads standard input.
func readMessageSource(source string, inputReader io.Reader) (string, string, error) {
	if source == standardInputPath {
		data, readError := io.ReadAll(inputReader)
		if readError != nil {
			return "", "", fmt.Errorf(readInputFormat, standardInputLabel, readError)
		}
		if utils.IsBinary(data) {
			return "", "", fmt.Errorf(binaryInputFormat, standardInputLabel)
		}
		return standardInputLabel, string(data), nil
	}
	data, readError := os.ReadFile(source)
	if readError != nil {
		return "", "", fmt.Errorf(readInputFormat, source, readError)
	}
	if utils.IsBinary(data) {
		if mimeType := utils.DetectMimeType(source); mimeType != utils.UnknownMimeType {
			return "", "", fmt.Errorf(binaryInputWithTypeFormat, source, mimeType)
		}
		return "", "", fmt.Errorf(binaryInputFormat, source)
	}
	return source, string(data), nil
}

// buildFunctionCall sanitizes and validates a function call name, extracts
// and sanitizes its arguments, and returns the serialized call together with
// the accepted name.
func buildFunctionCall(rawName string, rawArguments string) (string, string, error) {
	sanitizedName, _ := funcall.NewNameSanitizer(funcall.DefaultSanitizerConfig()).Sanitize(rawName)
	acceptedName, validation := funcall.NewFunctionIdentifier(funcall.DefaultNameConfig()).Identify(sanitizedName)
	if !validation.Valid() {
		return "", "", fmt.Errorf(invalidFunctionNameFormat, rawName)
	}

	argumentsMap, extractError := funcall.ExtractArguments(rawArguments)
	if extractError != nil {
		return "", "", extractError
	}
	sanitizedArguments, _ := funcall.NewArgumentSanitizer(funcall.DefaultArgumentSanitizerConfig()).Sanitize(argumentsMap)

	encoded, encodeError := json.Marshal(functionCallPayload{Name: acceptedName, Arguments: sanitizedArguments})
	if encodeError != nil {
		return "", "", fmt.Errorf("encode function call: %w", encodeError)
	}
	return string(encoded), acceptedName, nil
}

// measureLengths measures the raw text as the prompt component and the
// processed text as the completion.
func measureLengths(record *content.Record, countTokens bool, tokenCounter tokenizer.Counter) (meta.LengthTotals, error) {
	calculator := meta.NewLengthCalculator(meta.LengthConfig{CountTokens: countTokens}, tokenCounter)
	aggregator := meta.NewLengthAggregator()

	promptLength, promptError := calculator.MeasureComponent(promptComponentName, record.Raw)
	if promptError != nil {
		return meta.LengthTotals{}, promptError
	}
	aggregator.AddComponent(promptLength)

	completionLength, completionError := calculator.MeasureCompletion(record.Processed)
	if completionError != nil {
		return meta.LengthTotals{}, completionError
	}
	aggregator.AddCompletion(completionLength)

	return aggregator.Totals(), nil
}

// buildProcessReport folds message, pipeline, and metadata results into one
// report row.
func buildProcessReport(
	sourceLabel string,
	processedMessage message.Message,
	record *content.Record,
	metadataValue meta.Metadata,
	category meta.Category,
	totals meta.LengthTotals,
	tokenModel string,
) types.ProcessReport {
	modifications := make([]types.ProcessModification, 0, len(record.Modifications))
	for _, modification := range record.Modifications {
		modifications = append(modifications, types.ProcessModification{
			Stage:          modification.Stage,
			OriginalLength: modification.OriginalLength,
			ModifiedLength: modification.ModifiedLength,
		})
	}

	return types.ProcessReport{
		Source:               sourceLabel,
		Role:                 string(processedMessage.Role),
		Name:                 processedMessage.Name,
		FunctionCall:         processedMessage.FunctionCall,
		RawContent:           record.Raw,
		Content:              record.Processed,
		ReceivedAt:           meta.FormatRFC3339(processedMessage.ReceivedAt),
		Modifications:        modifications,
		FinishReason:         string(metadataValue.Reason),
		CompletionType:       string(category.Type),
		IsUsable:             category.IsUsable,
		RequiresRetry:        category.RequiresRetry,
		PromptCharacters:     totals.PromptCharacters,
		PromptTokens:         totals.PromptTokens,
		CompletionCharacters: totals.CompletionCharacters,
		CompletionTokens:     totals.CompletionTokens,
		TotalCharacters:      totals.TotalCharacters,
		TotalTokens:          totals.TotalTokens,
		TokenModel:           tokenModel,
	}
}

// renderProcessReports renders reports in the requested format.
func renderProcessReports(reports []types.ProcessReport, format string) (string, error) {
	if format == types.FormatJSON {
		return output.RenderProcessReportsJSON(reports)
	}
	return output.RenderProcessReportsRaw(reports), nil
}
