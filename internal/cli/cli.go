// Package cli provides the command line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cognitus/cognitus/internal/config"
	"github.com/cognitus/cognitus/internal/services/clipboard"
	"github.com/cognitus/cognitus/internal/types"
	"github.com/cognitus/cognitus/internal/utils"
)

const (
	exclusionFlagName    = "e"
	formatFlagName       = "format"
	copyFlagName         = "copy"
	configFlagName       = "config"
	versionFlagName      = "version"
	versionTemplate      = "cognitus version: %s\n"
	defaultPath          = "."
	rootUse              = "cognitus"
	rootShortDescription = "cognitus command line interface"
	rootLongDescription  = `cognitus keeps chat transcripts presentable.
It cleans message content, derives completion metadata, resolves terms
through the Wikipedia search API, and prints project directory structure.
Use --format to select output rendering where a command supports it, and
--version to print the application version.`
	versionFlagDescription = "display application version"
	configFlagDescription  = "path to a configuration file"
	copyFlagDescription    = "copy rendered output to the system clipboard"
	formatFlagDescription  = "output format"

	invalidFormatMessage           = "Invalid format value '%s'"
	clipboardServiceMissingMessage = "clipboard service is unavailable"
	clipboardCopyErrorFormat       = "copy output to clipboard: %w"

	// errorAbsolutePathFormat reports failure to resolve an absolute path.
	errorAbsolutePathFormat = "abs failed for '%s': %w"
	// errorPathMissingFormat reports a missing path.
	errorPathMissingFormat = "path '%s' does not exist"
	// errorStatFormat reports failure to retrieve file statistics.
	errorStatFormat = "stat failed for '%s': %w"
	// errorNoValidPaths indicates that all paths are invalid.
	errorNoValidPaths = "no valid paths"
)

// supportedFormats lists the recognized output format values.
var supportedFormats = []string{types.FormatRaw, types.FormatJSON, types.FormatXML}

// isSupportedFormat reports whether the provided format is recognized.
func isSupportedFormat(format string) bool {
	return utils.ContainsString(supportedFormats, format)
}

// Execute runs the cognitus application.
func Execute(applicationLogger *zap.Logger) error {
	rootCommand := createRootCommand(applicationLogger)
	arguments := normalizeCopyFlagArguments(os.Args[1:])
	arguments = normalizeBooleanFlagArguments(rootCommand, arguments)
	rootCommand.SetArgs(arguments)
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command.
func createRootCommand(applicationLogger *zap.Logger) *cobra.Command {
	var showVersion bool
	var configurationPath string

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if showVersion {
				fmt.Printf(versionTemplate, utils.GetApplicationVersion())
				os.Exit(0)
			}
		},
	}
	rootCommand.PersistentFlags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	rootCommand.PersistentFlags().StringVar(&configurationPath, configFlagName, "", configFlagDescription)
	rootCommand.AddCommand(
		createTreeCommand(&configurationPath),
		createProcessCommand(applicationLogger, &configurationPath),
		createWikiCommand(applicationLogger, &configurationPath),
		createConfigCommand(),
	)
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// loadApplicationConfiguration loads layered configuration, honoring an
// explicit --config path.
func loadApplicationConfiguration(explicitPath string) (config.ApplicationConfiguration, error) {
	return config.LoadApplicationConfiguration(config.LoadOptions{ExplicitFilePath: explicitPath})
}

// resolveStringSetting prefers an explicitly set flag over the configured
// value.
func resolveStringSetting(command *cobra.Command, flagName string, flagValue string, configuredValue string) string {
	if command.Flags().Changed(flagName) || configuredValue == "" {
		return flagValue
	}
	return configuredValue
}

// resolveBoolSetting prefers an explicitly set flag over the configured
// value.
func resolveBoolSetting(command *cobra.Command, flagName string, flagValue bool, configuredValue *bool) bool {
	if command.Flags().Changed(flagName) || configuredValue == nil {
		return flagValue
	}
	return *configuredValue
}

// resolveIntSetting prefers an explicitly set flag over the configured value.
func resolveIntSetting(command *cobra.Command, flagName string, flagValue int, configuredValue *int) int {
	if command.Flags().Changed(flagName) || configuredValue == nil {
		return flagValue
	}
	return *configuredValue
}

// writeRendered writes rendered output to the writer, appending a final
// newline when missing, and optionally places the output on the clipboard.
func writeRendered(outputWriter io.Writer, rendered string, copyEnabled bool, copier clipboard.Copier) error {
	if _, writeError := fmt.Fprint(outputWriter, rendered); writeError != nil {
		return writeError
	}
	if !strings.HasSuffix(rendered, "\n") {
		if _, writeError := fmt.Fprintln(outputWriter); writeError != nil {
			return writeError
		}
	}
	if copyEnabled {
		if copier == nil {
			return errors.New(clipboardServiceMissingMessage)
		}
		if copyError := copier.Copy(rendered); copyError != nil {
			return fmt.Errorf(clipboardCopyErrorFormat, copyError)
		}
	}
	return nil
}

// resolveAndValidatePaths converts input paths to absolute form and validates their existence.
func resolveAndValidatePaths(inputs []string) ([]types.ValidatedPath, error) {
	seen := make(map[string]struct{})
	var result []types.ValidatedPath
	for _, inputPath := range inputs {
		absolutePath, absolutePathError := filepath.Abs(inputPath)
		if absolutePathError != nil {
			return nil, fmt.Errorf(errorAbsolutePathFormat, inputPath, absolutePathError)
		}
		cleanPath := filepath.Clean(absolutePath)
		if _, ok := seen[cleanPath]; ok {
			continue
		}
		info, fileStatusError := os.Stat(cleanPath)
		if fileStatusError != nil {
			if os.IsNotExist(fileStatusError) {
				return nil, fmt.Errorf(errorPathMissingFormat, inputPath)
			}
			return nil, fmt.Errorf(errorStatFormat, inputPath, fileStatusError)
		}
		seen[cleanPath] = struct{}{}
		result = append(result, types.ValidatedPath{AbsolutePath: cleanPath, IsDir: info.IsDir()})
	}
	if len(result) == 0 {
		return nil, errors.New(errorNoValidPaths)
	}
	return result, nil
}
