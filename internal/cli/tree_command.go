package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cognitus/cognitus/internal/commands"
	"github.com/cognitus/cognitus/internal/output"
	"github.com/cognitus/cognitus/internal/services/clipboard"
	"github.com/cognitus/cognitus/internal/types"
	"github.com/cognitus/cognitus/internal/utils"
)

const (
	treeUse              = "tree [paths...]"
	treeAlias            = "t"
	treeShortDescription = "display directory structure (" + treeAlias + ")"

	// treeLongDescription provides detailed help for the tree command.
	treeLongDescription = `List the directory structure under one or more paths.
Dot-prefixed directories and directories named env or backup are always
excluded together with their subtrees. Use --format to select raw, json,
or xml output.`
	// treeUsageExample demonstrates tree command usage.
	treeUsageExample = `  # Render the structure of the current project
  cognitus tree

  # Exclude vendor directories and copy the listing
  cognitus tree -e vendor --copy .`

	exclusionFlagDescription = "exclude directory name pattern"

	// errorNotDirectoryFormat reports a structure root that is not a directory.
	errorNotDirectoryFormat = "path '%s' is not a directory"
)

// createTreeCommand returns the tree subcommand.
func createTreeCommand(configurationPath *string) *cobra.Command {
	var exclusionPatterns []string
	var outputFormat string
	var copyEnabled bool

	treeCommand := &cobra.Command{
		Use:     treeUse,
		Aliases: []string{treeAlias},
		Short:   treeShortDescription,
		Long:    treeLongDescription,
		Example: treeUsageExample,
		Args:    cobra.ArbitraryArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			if len(arguments) == 0 {
				arguments = []string{defaultPath}
			}
			applicationConfiguration, configurationError := loadApplicationConfiguration(*configurationPath)
			if configurationError != nil {
				return configurationError
			}

			resolvedFormat := strings.ToLower(resolveStringSetting(command, formatFlagName, outputFormat, applicationConfiguration.Tree.Format))
			if !isSupportedFormat(resolvedFormat) {
				return fmt.Errorf(invalidFormatMessage, resolvedFormat)
			}
			resolvedCopy := resolveBoolSetting(command, copyFlagName, copyEnabled, applicationConfiguration.Tree.Clipboard)
			combinedExclusions := append(append([]string{}, applicationConfiguration.Tree.Exclude...), exclusionPatterns...)

			return runTreeCommand(treeCommandOptions{
				Paths:           arguments,
				ExtraExclusions: utils.DeduplicatePatterns(combinedExclusions),
				Format:          resolvedFormat,
				CopyEnabled:     resolvedCopy,
				Clipboard:       clipboard.NewService(),
				Writer:          command.OutOrStdout(),
			})
		},
	}

	treeCommand.Flags().StringArrayVarP(&exclusionPatterns, exclusionFlagName, exclusionFlagName, nil, exclusionFlagDescription)
	treeCommand.Flags().StringVar(&outputFormat, formatFlagName, types.FormatRaw, formatFlagDescription)
	registerCopyFlag(treeCommand.Flags(), &copyEnabled)
	return treeCommand
}

// treeCommandOptions carries the resolved settings for one tree run.
type treeCommandOptions struct {
	Paths           []string
	ExtraExclusions []string
	Format          string
	CopyEnabled     bool
	Clipboard       clipboard.Copier
	Writer          io.Writer
}

// runTreeCommand builds the directory structure for every root and renders
// it in the requested format. Roots must be directories; a failure while
// walking any root aborts the run without partial output.
func runTreeCommand(options treeCommandOptions) error {
	outputWriter := options.Writer
	if outputWriter == nil {
		outputWriter = os.Stdout
	}

	validatedPaths, pathValidationError := resolveAndValidatePaths(options.Paths)
	if pathValidationError != nil {
		return pathValidationError
	}

	builder := &commands.StructureBuilder{ExtraExclusions: options.ExtraExclusions}
	nodes := make([]*types.StructureNode, 0, len(validatedPaths))
	for _, validatedPath := range validatedPaths {
		if !validatedPath.IsDir {
			return fmt.Errorf(errorNotDirectoryFormat, validatedPath.AbsolutePath)
		}
		node, buildError := builder.GetStructureData(validatedPath.AbsolutePath)
		if buildError != nil {
			return buildError
		}
		nodes = append(nodes, node)
	}

	rendered, renderError := renderStructures(nodes, options.Format)
	if renderError != nil {
		return renderError
	}
	return writeRendered(outputWriter, rendered, options.CopyEnabled, options.Clipboard)
}

// renderStructures renders structure nodes in the requested format.
func renderStructures(nodes []*types.StructureNode, format string) (string, error) {
	switch format {
	case types.FormatJSON:
		return output.RenderStructuresJSON(nodes)
	case types.FormatXML:
		return output.RenderStructuresXML(nodes)
	default:
		return output.RenderStructuresRaw(nodes), nil
	}
}
