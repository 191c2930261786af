package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/temirov/dirtree/internal/utils"
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
}

// ApplicationConfiguration holds the defaults applied before command line flags.
type ApplicationConfiguration struct {
	Tree TreeConfiguration `mapstructure:"tree"`
}

// TreeConfiguration configures a tree run. Empty strings and nil pointers mean "not set".
type TreeConfiguration struct {
	Root       string `mapstructure:"root"`
	IgnoreFile string `mapstructure:"ignore_file"`
	Output     string `mapstructure:"output"`
	Copy       *bool  `mapstructure:"copy"`
	Verbose    *bool  `mapstructure:"verbose"`
}

// TreeSettings is a fully resolved tree configuration.
type TreeSettings struct {
	RootDirectory  string
	IgnoreFilePath string
	OutputFilePath string
	Copy           bool
	Verbose        bool
}

// LoadApplicationConfiguration loads the global configuration and then overlays
// the local (or explicitly named) configuration file. Missing files are skipped.
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
		globalPath := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.GlobalConfigFileName)
		globalConfig, loadErr := loadConfigurationFromPath(globalPath)
		if loadErr != nil {
			return ApplicationConfiguration{}, loadErr
		}
		merged = merged.Merge(globalConfig)
	}

	localConfig, loadErr := loadConfigurationFromPath(resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath))
	if loadErr != nil {
		return ApplicationConfiguration{}, loadErr
	}
	return merged.Merge(localConfig), nil
}

func resolveLocalConfigPath(workingDirectory, explicitPath string) string {
	if explicitPath == "" {
		return filepath.Join(workingDirectory, utils.LocalConfigFileName)
	}
	if filepath.IsAbs(explicitPath) {
		return explicitPath
	}
	return filepath.Join(workingDirectory, explicitPath)
}

func loadConfigurationFromPath(path string) (ApplicationConfiguration, error) {
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
	reader.SetConfigType("yaml")
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
	return result
}

func (config TreeConfiguration) merge(override TreeConfiguration) TreeConfiguration {
	result := config
	if override.Root != "" {
		result.Root = override.Root
	}
	if override.IgnoreFile != "" {
		result.IgnoreFile = override.IgnoreFile
	}
	if override.Output != "" {
		result.Output = override.Output
	}
	if override.Copy != nil {
		result.Copy = cloneBool(override.Copy)
	}
	if override.Verbose != nil {
		result.Verbose = cloneBool(override.Verbose)
	}
	return result
}

// Resolve fills unset values with built-in defaults. The root defaults to
// workingDirectory, the ignore file to .gitignore under the root, and the
// output file to tree_output.txt under workingDirectory. Relative paths are
// resolved against workingDirectory, except a relative ignore file, which is
// resolved against the root.
func (config TreeConfiguration) Resolve(workingDirectory string) TreeSettings {
	rootDirectory := workingDirectory
	if config.Root != "" {
		rootDirectory = resolveAgainst(workingDirectory, config.Root)
	}

	ignoreFilePath := filepath.Join(rootDirectory, utils.GitIgnoreFileName)
	if config.IgnoreFile != "" {
		ignoreFilePath = resolveAgainst(rootDirectory, config.IgnoreFile)
	}

	outputFilePath := utils.TreeOutputFileName
	if config.Output != "" {
		outputFilePath = config.Output
	}

	return TreeSettings{
		RootDirectory:  filepath.Clean(rootDirectory),
		IgnoreFilePath: ignoreFilePath,
		OutputFilePath: resolveAgainst(workingDirectory, outputFilePath),
		Copy:           config.Copy != nil && *config.Copy,
		Verbose:        config.Verbose != nil && *config.Verbose,
	}
}

func resolveAgainst(baseDirectory, candidatePath string) string {
	if filepath.IsAbs(candidatePath) {
		return filepath.Clean(candidatePath)
	}
	return filepath.Join(baseDirectory, candidatePath)
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}
