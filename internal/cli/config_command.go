package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cognitus/cognitus/internal/config"
)

const (
	configUse              = "config"
	configShortDescription = "manage configuration"

	configInitUse              = "init"
	configInitShortDescription = "write a default configuration file"
	// configInitLongDescription provides detailed help for config init.
	configInitLongDescription = `Write a configuration file populated with the default settings. The
file is placed in the current directory, or under the home directory
when --global is set. An existing file is preserved unless --force is
given.`

	globalFlagName        = "global"
	forceFlagName         = "force"
	globalFlagDescription = "write the configuration under the home directory"
	forceFlagDescription  = "overwrite an existing configuration file"

	// configWrittenFormat reports where the configuration file was written.
	configWrittenFormat = "Configuration written to %s\n"
)

// createConfigCommand returns the config subcommand tree.
func createConfigCommand() *cobra.Command {
	configCommand := &cobra.Command{
		Use:   configUse,
		Short: configShortDescription,
	}
	configCommand.AddCommand(createConfigInitCommand())
	return configCommand
}

// createConfigInitCommand returns the config init subcommand.
func createConfigInitCommand() *cobra.Command {
	var useGlobalTarget bool
	var forceOverwrite bool

	initCommand := &cobra.Command{
		Use:   configInitUse,
		Short: configInitShortDescription,
		Long:  configInitLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if useGlobalTarget {
				target = config.InitTargetGlobal
			}
			writtenPath, initializationError := config.InitializeConfiguration(config.InitOptions{
				Target: target,
				Force:  forceOverwrite,
			})
			if initializationError != nil {
				return initializationError
			}
			_, writeError := fmt.Fprintf(command.OutOrStdout(), configWrittenFormat, writtenPath)
			return writeError
		},
	}

	initCommand.Flags().BoolVar(&useGlobalTarget, globalFlagName, false, globalFlagDescription)
	initCommand.Flags().BoolVar(&forceOverwrite, forceFlagName, false, forceFlagDescription)
	return initCommand
}
