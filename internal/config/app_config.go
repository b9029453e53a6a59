package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/cognitus/cognitus/internal/utils"
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
}

// ApplicationConfiguration holds command-specific configuration defaults.
type ApplicationConfiguration struct {
	Tree    TreeCommandConfiguration    `mapstructure:"tree"`
	Process ProcessCommandConfiguration `mapstructure:"process"`
	Wiki    WikiCommandConfiguration    `mapstructure:"wiki"`
}

// TreeCommandConfiguration defines defaults for the tree command.
type TreeCommandConfiguration struct {
	Format    string   `mapstructure:"format"`
	Exclude   []string `mapstructure:"exclude"`
	Clipboard *bool    `mapstructure:"clipboard"`
}

// ProcessCommandConfiguration defines defaults for the process command.
type ProcessCommandConfiguration struct {
	Format        string             `mapstructure:"format"`
	Formality     string             `mapstructure:"formality"`
	Tone          string             `mapstructure:"tone"`
	Emoji         *bool              `mapstructure:"emoji"`
	Profanity     *bool              `mapstructure:"profanity"`
	BlacklistPath string             `mapstructure:"blacklist"`
	Tokens        TokenConfiguration `mapstructure:"tokens"`
	Clipboard     *bool              `mapstructure:"clipboard"`
}

// TokenConfiguration controls token counting defaults.
type TokenConfiguration struct {
	Enabled *bool  `mapstructure:"enabled"`
	Model   string `mapstructure:"model"`
}

// WikiCommandConfiguration defines defaults for the wiki command.
type WikiCommandConfiguration struct {
	Results        *int  `mapstructure:"results"`
	Sentences      *int  `mapstructure:"sentences"`
	Lookup         *bool `mapstructure:"lookup"`
	TimeoutSeconds *int  `mapstructure:"timeout_seconds"`
	Clipboard      *bool `mapstructure:"clipboard"`
}

// LoadApplicationConfiguration loads configuration from global and local files.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, err := os.Getwd()
		if err != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", err)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	if homeDirectory, err := os.UserHomeDir(); err == nil && homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.ConfigFileName)
		globalConfig, loadErr := loadConfigurationFromPath(globalPath)
		if loadErr != nil {
			return ApplicationConfiguration{}, loadErr
		}
		merged = merged.Merge(globalConfig)
	}

	localPath, resolveErr := resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath)
	if resolveErr != nil {
		return ApplicationConfiguration{}, resolveErr
	}
	if localPath != "" {
		localConfig, loadErr := loadConfigurationFromPath(localPath)
		if loadErr != nil {
			return ApplicationConfiguration{}, loadErr
		}
		merged = merged.Merge(localConfig)
	}

	merged.Tree.Exclude = utils.DeduplicatePatterns(merged.Tree.Exclude)

	return merged, nil
}

func resolveLocalConfigPath(workingDirectory, explicitPath string) (string, error) {
	if explicitPath != "" {
		if filepath.IsAbs(explicitPath) {
			return explicitPath, nil
		}
		if workingDirectory == "" {
			absolute, err := filepath.Abs(explicitPath)
			if err != nil {
				return "", fmt.Errorf("resolve configuration path %s: %w", explicitPath, err)
			}
			return absolute, nil
		}
		return filepath.Join(workingDirectory, explicitPath), nil
	}
	if workingDirectory == "" {
		return "", nil
	}
	return filepath.Join(workingDirectory, utils.ConfigFileName), nil
}

func loadConfigurationFromPath(path string) (ApplicationConfiguration, error) {
	if path == "" {
		return ApplicationConfiguration{}, nil
	}
	info, statErr := os.Stat(path)
	if statErr != nil {
		if os.IsNotExist(statErr) {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", path, statErr)
	}
	if info.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf("configuration path %s is a directory", path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	if readErr := reader.ReadInConfig(); readErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("read configuration from %s: %w", path, readErr)
	}
	var config ApplicationConfiguration
	if decodeErr := reader.Unmarshal(&config); decodeErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode configuration from %s: %w", path, decodeErr)
	}
	return config, nil
}

// Merge overlays override onto the receiver returning the combined configuration.
func (config ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := config
	result.Tree = result.Tree.merge(override.Tree)
	result.Process = result.Process.merge(override.Process)
	result.Wiki = result.Wiki.merge(override.Wiki)
	return result
}

func (config TreeCommandConfiguration) merge(override TreeCommandConfiguration) TreeCommandConfiguration {
	result := config
	if override.Format != "" {
		result.Format = override.Format
	}
	if len(override.Exclude) > 0 {
		result.Exclude = append([]string{}, utils.DeduplicatePatterns(override.Exclude)...)
	}
	if override.Clipboard != nil {
		result.Clipboard = cloneBool(override.Clipboard)
	}
	return result
}

func (config ProcessCommandConfiguration) merge(override ProcessCommandConfiguration) ProcessCommandConfiguration {
	result := config
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Formality != "" {
		result.Formality = override.Formality
	}
	if override.Tone != "" {
		result.Tone = override.Tone
	}
	if override.Emoji != nil {
		result.Emoji = cloneBool(override.Emoji)
	}
	if override.Profanity != nil {
		result.Profanity = cloneBool(override.Profanity)
	}
	if override.BlacklistPath != "" {
		result.BlacklistPath = override.BlacklistPath
	}
	result.Tokens = result.Tokens.merge(override.Tokens)
	if override.Clipboard != nil {
		result.Clipboard = cloneBool(override.Clipboard)
	}
	return result
}

func (config TokenConfiguration) merge(override TokenConfiguration) TokenConfiguration {
	result := config
	if override.Enabled != nil {
		result.Enabled = cloneBool(override.Enabled)
	}
	if override.Model != "" {
		result.Model = override.Model
	}
	return result
}

func (config WikiCommandConfiguration) merge(override WikiCommandConfiguration) WikiCommandConfiguration {
	result := config
	if override.Results != nil {
		result.Results = cloneInt(override.Results)
	}
	if override.Sentences != nil {
		result.Sentences = cloneInt(override.Sentences)
	}
	if override.Lookup != nil {
		result.Lookup = cloneBool(override.Lookup)
	}
	if override.TimeoutSeconds != nil {
		result.TimeoutSeconds = cloneInt(override.TimeoutSeconds)
	}
	if override.Clipboard != nil {
		result.Clipboard = cloneBool(override.Clipboard)
	}
	return result
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}

func cloneInt(value *int) *int {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}
