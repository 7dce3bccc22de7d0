package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/SakibAhmedShuva/dirmap/internal/utils"
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
}

// ApplicationConfiguration holds defaults applied when flags are not set.
// Pointer fields distinguish "absent" from explicit zero values.
type ApplicationConfiguration struct {
	MaxDepth  *int     `mapstructure:"max_depth"`
	MaxFiles  *int     `mapstructure:"max_files"`
	Ignore    []string `mapstructure:"ignore"`
	Output    string   `mapstructure:"output"`
	Clipboard *bool    `mapstructure:"clipboard"`
}

// LoadApplicationConfiguration loads configuration from global and local files.
// The global file lives at ~/.dirmap/config.yaml; the local file is
// .dirmap.yaml in the working directory unless an explicit path is given.
// Local values override global ones.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, workingDirectoryError := os.Getwd()
		if workingDirectoryError != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", workingDirectoryError)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	if homeDirectory, homeError := os.UserHomeDir(); homeError == nil && homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.GlobalConfigFileName)
		globalConfig, loadError := loadConfigurationFromPath(globalPath)
		if loadError != nil {
			return ApplicationConfiguration{}, loadError
		}
		merged = merged.Merge(globalConfig)
	}

	localPath, resolveError := resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath)
	if resolveError != nil {
		return ApplicationConfiguration{}, resolveError
	}
	if localPath != "" {
		localConfig, loadError := loadConfigurationFromPath(localPath)
		if loadError != nil {
			return ApplicationConfiguration{}, loadError
		}
		merged = merged.Merge(localConfig)
	}

	merged.Ignore = utils.DeduplicateNames(merged.Ignore)

	return merged, nil
}

func resolveLocalConfigPath(workingDirectory, explicitPath string) (string, error) {
	if explicitPath != "" {
		if filepath.IsAbs(explicitPath) {
			return explicitPath, nil
		}
		if workingDirectory == "" {
			absolute, absoluteError := filepath.Abs(explicitPath)
			if absoluteError != nil {
				return "", fmt.Errorf("resolve configuration path %s: %w", explicitPath, absoluteError)
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
	info, statError := os.Stat(path)
	if statError != nil {
		if os.IsNotExist(statError) {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", path, statError)
	}
	if info.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf("configuration path %s is a directory", path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	if readError := reader.ReadInConfig(); readError != nil {
		return ApplicationConfiguration{}, fmt.Errorf("read configuration from %s: %w", path, readError)
	}
	var configuration ApplicationConfiguration
	if decodeError := reader.Unmarshal(&configuration); decodeError != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode configuration from %s: %w", path, decodeError)
	}
	return configuration, nil
}

// Merge overlays override onto the receiver returning the combined configuration.
func (configuration ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := configuration
	if override.MaxDepth != nil {
		result.MaxDepth = cloneInt(override.MaxDepth)
	}
	if override.MaxFiles != nil {
		result.MaxFiles = cloneInt(override.MaxFiles)
	}
	if len(override.Ignore) > 0 {
		result.Ignore = append([]string{}, utils.DeduplicateNames(override.Ignore)...)
	}
	if override.Output != "" {
		result.Output = override.Output
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
