// Package cli provides the command line interface.
package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/dirtree/internal/commands"
	"github.com/temirov/dirtree/internal/config"
	"github.com/temirov/dirtree/internal/services/clipboard"
	"github.com/temirov/dirtree/internal/types"
	"github.com/temirov/dirtree/internal/utils"
)

const (
	rootFlagName       = "root"
	ignoreFileFlagName = "ignore-file"
	outputFlagName     = "output"
	configFlagName     = "config"
	copyFlagName       = "copy"
	verboseFlagName    = "verbose"
	versionFlagName    = "version"
	globalFlagName     = "global"
	forceFlagName      = "force"
	versionTemplate    = "dirtree version: %s\n"
	rootUse            = "dirtree"
	initUse            = types.CommandInit

	rootShortDescription = "write the directory tree to " + utils.TreeOutputFileName
	rootLongDescription  = `dirtree walks the current directory and writes an indented tree of its
contents to ` + utils.TreeOutputFileName + `, skipping entries matched by the patterns in
` + utils.GitIgnoreFileName + `. Later patterns override earlier ones and "!" re-includes a path.
Run without arguments to use the working directory, its ` + utils.GitIgnoreFileName + ` and the default
output file. Defaults can be changed in ` + utils.LocalConfigFileName + ` or with flags.`
	rootUsageExample = `  # Write tree_output.txt for the working directory
  dirtree

  # Render another directory and copy the result to the clipboard
  dirtree --root ./src --output src_tree.txt --copy`
	initShortDescription = "write a default configuration file"
	initLongDescription  = `Write the default configuration to ` + utils.LocalConfigFileName + ` in the working directory,
or to ~/` + utils.GlobalConfigDirectoryName + `/` + utils.GlobalConfigFileName + ` with --global.`

	rootFlagDescription       = "directory to render (default: working directory)"
	ignoreFileFlagDescription = "ignore file, relative to the root (default: " + utils.GitIgnoreFileName + ")"
	outputFlagDescription     = "file to write the tree to (default: " + utils.TreeOutputFileName + ")"
	configFlagDescription     = "configuration file used instead of " + utils.LocalConfigFileName
	copyFlagDescription       = "also copy the tree to the clipboard"
	verboseFlagDescription    = "log debug details to stderr"
	versionFlagDescription    = "display application version"
	globalFlagDescription     = "write the global configuration file"
	forceFlagDescription      = "overwrite an existing configuration file"

	treeWrittenMessageFormat   = "Directory tree has been written to %s\n"
	patternsUsedMessageFormat  = "Used %d %s patterns\n"
	configWrittenMessageFormat = "Configuration written to %s\n"

	workingDirectoryErrorFormat = "unable to determine working directory: %w"
	loadPatternsErrorFormat     = "loading ignore patterns from %s: %w"
	errorRootMissingFormat      = "root '%s' does not exist"
	errorRootStatFormat         = "stat failed for root '%s': %w"
	errorRootNotDirectoryFormat = "root '%s' is not a directory"
)

// Execute runs the dirtree application.
func Execute(logger *zap.Logger) error {
	return createRootCommand(logger, clipboard.NewService()).Execute()
}

// treeFlags holds the raw flag values of the root command.
type treeFlags struct {
	rootDirectory string
	ignoreFile    string
	output        string
	copyTree      bool
	verbose       bool
}

// createRootCommand builds the root Cobra command. The root command itself renders the tree.
func createRootCommand(logger *zap.Logger, copier clipboard.Copier) *cobra.Command {
	if logger == nil {
		logger = zap.NewNop()
	}
	var showVersion bool
	var configurationPath string
	var flags treeFlags

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		Example:      rootUsageExample,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if showVersion {
				fmt.Fprintf(command.OutOrStdout(), versionTemplate, utils.GetApplicationVersion())
				os.Exit(0)
			}
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			workingDirectory, workingDirectoryError := os.Getwd()
			if workingDirectoryError != nil {
				return fmt.Errorf(workingDirectoryErrorFormat, workingDirectoryError)
			}
			applicationConfiguration, loadError := config.LoadApplicationConfiguration(config.LoadOptions{
				WorkingDirectory: workingDirectory,
				ExplicitFilePath: configurationPath,
			})
			if loadError != nil {
				return loadError
			}
			treeConfiguration := applyTreeFlags(command, applicationConfiguration.Tree, flags)
			settings := treeConfiguration.Resolve(workingDirectory)

			runLogger, restoreLogger, loggerError := configureRunLogger(logger, settings.Verbose)
			if loggerError != nil {
				return loggerError
			}
			defer restoreLogger()

			outputDisplayName := treeConfiguration.Output
			if outputDisplayName == "" {
				outputDisplayName = utils.TreeOutputFileName
			}
			return runTree(command.OutOrStdout(), settings, outputDisplayName, copier, runLogger)
		},
	}
	rootCommand.PersistentFlags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	rootCommand.PersistentFlags().StringVar(&configurationPath, configFlagName, "", configFlagDescription)
	rootCommand.Flags().StringVar(&flags.rootDirectory, rootFlagName, "", rootFlagDescription)
	rootCommand.Flags().StringVar(&flags.ignoreFile, ignoreFileFlagName, "", ignoreFileFlagDescription)
	rootCommand.Flags().StringVarP(&flags.output, outputFlagName, "o", "", outputFlagDescription)
	rootCommand.Flags().BoolVar(&flags.copyTree, copyFlagName, false, copyFlagDescription)
	rootCommand.Flags().BoolVarP(&flags.verbose, verboseFlagName, "v", false, verboseFlagDescription)

	rootCommand.AddCommand(createInitCommand())
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// applyTreeFlags overlays flags the user set explicitly onto the loaded configuration.
func applyTreeFlags(command *cobra.Command, configuration config.TreeConfiguration, flags treeFlags) config.TreeConfiguration {
	result := configuration
	if command.Flags().Changed(rootFlagName) {
		result.Root = flags.rootDirectory
	}
	if command.Flags().Changed(ignoreFileFlagName) {
		result.IgnoreFile = flags.ignoreFile
	}
	if command.Flags().Changed(outputFlagName) {
		result.Output = flags.output
	}
	if command.Flags().Changed(copyFlagName) {
		copyTree := flags.copyTree
		result.Copy = &copyTree
	}
	if command.Flags().Changed(verboseFlagName) {
		verbose := flags.verbose
		result.Verbose = &verbose
	}
	return result
}

// configureRunLogger returns the logger for a tree run. With verbose set it
// builds a debug logger and installs it as the global zap logger until the
// returned restore function is called.
func configureRunLogger(baseLogger *zap.Logger, verbose bool) (*zap.Logger, func(), error) {
	if !verbose {
		return baseLogger, func() {}, nil
	}
	verboseLogger, loggerError := utils.NewApplicationLogger(true)
	if loggerError != nil {
		return nil, nil, fmt.Errorf(utils.LoggerInitializationFailedMessageFormat, loggerError)
	}
	undoGlobals := zap.ReplaceGlobals(verboseLogger)
	return verboseLogger, func() {
		_ = verboseLogger.Sync()
		undoGlobals()
	}, nil
}

// createInitCommand returns the init subcommand.
func createInitCommand() *cobra.Command {
	var global bool
	var force bool

	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Long:  initLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if global {
				target = config.InitTargetGlobal
			}
			destinationPath, initError := config.InitializeConfiguration(config.InitOptions{Target: target, Force: force})
			if initError != nil {
				return initError
			}
			fmt.Fprintf(command.OutOrStdout(), configWrittenMessageFormat, destinationPath)
			return nil
		},
	}
	initCommand.Flags().BoolVar(&global, globalFlagName, false, globalFlagDescription)
	initCommand.Flags().BoolVar(&force, forceFlagName, false, forceFlagDescription)
	return initCommand
}

// runTree loads the ignore patterns, writes the tree, and prints the confirmation lines to stdout.
func runTree(stdout io.Writer, settings config.TreeSettings, outputDisplayName string, copier clipboard.Copier, logger *zap.Logger) error {
	if err := validateRootDirectory(settings.RootDirectory); err != nil {
		return err
	}
	logger.Debug("tree settings resolved",
		zap.String("root", settings.RootDirectory),
		zap.String("ignore_file", settings.IgnoreFilePath),
		zap.String("output", settings.OutputFilePath),
		zap.Bool("copy", settings.Copy),
	)

	ignorePatterns, loadError := config.LoadIgnoreFilePatterns(settings.IgnoreFilePath)
	if loadError != nil {
		return fmt.Errorf(loadPatternsErrorFormat, settings.IgnoreFilePath, loadError)
	}

	var clipboardBuffer bytes.Buffer
	var mirrors []io.Writer
	if settings.Copy {
		mirrors = append(mirrors, &clipboardBuffer)
	}
	treeWriter := commands.NewTreeWriter(settings.RootDirectory, ignorePatterns, logger)
	if _, writeError := treeWriter.WriteFile(settings.OutputFilePath, mirrors...); writeError != nil {
		return writeError
	}
	if settings.Copy {
		if copyError := copier.Copy(clipboardBuffer.String()); copyError != nil {
			return copyError
		}
	}

	fmt.Fprintf(stdout, treeWrittenMessageFormat, outputDisplayName)
	fmt.Fprintf(stdout, patternsUsedMessageFormat, len(ignorePatterns), filepath.Base(settings.IgnoreFilePath))
	return nil
}

// validateRootDirectory confirms that rootDirectory exists and is a directory.
func validateRootDirectory(rootDirectory string) error {
	fileInformation, statError := os.Stat(rootDirectory)
	if statError != nil {
		if os.IsNotExist(statError) {
			return fmt.Errorf(errorRootMissingFormat, rootDirectory)
		}
		return fmt.Errorf(errorRootStatFormat, rootDirectory, statError)
	}
	if !fileInformation.IsDir() {
		return fmt.Errorf(errorRootNotDirectoryFormat, rootDirectory)
	}
	return nil
}
