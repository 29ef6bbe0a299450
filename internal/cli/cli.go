// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/coderoller/coderoller/internal/config"
	"github.com/coderoller/coderoller/internal/flatten"
	"github.com/coderoller/coderoller/internal/ignore"
	"github.com/coderoller/coderoller/internal/repo"
	"github.com/coderoller/coderoller/internal/scan"
	"github.com/coderoller/coderoller/internal/selector"
	"github.com/coderoller/coderoller/internal/services/clipboard"
	"github.com/coderoller/coderoller/internal/tokenizer"
	"github.com/coderoller/coderoller/internal/types"
	"github.com/coderoller/coderoller/internal/utils"
)

const (
	structureOnlyFlagName = "structure-only"
	interactiveFlagName   = "interactive"
	outputFlagName        = "output"
	exclusionFlagName     = "e"
	noGitignoreFlagName   = "no-gitignore"
	includeGitFlagName    = "git"
	tokensFlagName        = "tokens"
	modelFlagName         = "model"
	copyFlagName          = "copy"
	configFlagName        = "config"
	versionFlagName       = "version"
	versionTemplate       = "coderoller version: %s\n"

	rootUse              = "coderoller"
	rootShortDescription = "coderoller command line interface"
	rootLongDescription  = `coderoller flattens a source repository into a single markdown document.
It concatenates the repository's files into fenced code blocks, optionally
rendering only the folder structure or selecting files interactively first.`

	flattenUse              = "flatten <path-or-url>"
	flattenAlias            = "f"
	flattenShortDescription = "flatten a repository into one markdown file (" + flattenAlias + ")"

	// flattenLongDescription provides detailed help for the flatten command.
	flattenLongDescription = `Flatten a local repository or a cloned remote URL into <repo>.flat.md.
Use --structure-only for a tree without contents and --interactive to pick files manually.`
	// flattenUsageExample demonstrates flatten command usage.
	flattenUsageExample = `  # Flatten the current directory
  coderoller flatten .

  # Structure only, written into ./docs
  coderoller flatten --structure-only --output docs .

  # Clone and flatten a remote repository interactively
  coderoller flatten --interactive https://github.com/user/repo.git`

	structureOnlyFlagDescription = "only include folder structure without file contents"
	interactiveFlagDescription   = "pick included files interactively before emission"
	outputFlagDescription        = "directory receiving the flattened file"
	exclusionFlagDescription     = "exclude path pattern"
	noGitignoreFlagDescription   = "do not use .gitignore"
	includeGitFlagDescription    = "include git directory"
	tokensFlagDescription        = "report the token count of the generated document"
	modelFlagDescription         = "tokenizer model to use for token counting"
	copyFlagDescription          = "copy the generated document to the clipboard"
	configFlagDescription        = "path to an explicit configuration file"
	versionFlagDescription       = "display application version"
	defaultTokenizerModelName    = "gpt-4o"

	workingDirectoryErrorFormat = "unable to determine working directory: %w"
	// errorWriteOutputFormat reports a failure to write the flattened document.
	errorWriteOutputFormat = "writing %s: %w"
	// errorClipboardFormat reports a failure to copy the document to the clipboard.
	errorClipboardFormat = "copying document to clipboard: %w"

	selectionCanceledMessage  = "Selection canceled; no output written"
	flatteningCompleteMessage = "Flattening complete"
	tokenCountMessage         = "Document token count"
)

// Execute runs the coderoller application.
func Execute(logger *zap.Logger) error {
	rootCommand := createRootCommand(logger)
	rootCommand.SetArgs(normalizeBooleanFlagArguments(rootCommand, os.Args[1:]))
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command.
func createRootCommand(logger *zap.Logger) *cobra.Command {
	var showVersion bool

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
	rootCommand.AddCommand(createFlattenCommand(logger))
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// flattenOptions stores the resolved configuration for one flatten run.
type flattenOptions struct {
	input             string
	structureOnly     bool
	interactive       bool
	outputDirectory   string
	exclusionPatterns []string
	useGitignore      bool
	includeGit        bool
	tokensEnabled     bool
	tokenModel        string
	copyToClipboard   bool
}

// createFlattenCommand returns the flatten subcommand.
func createFlattenCommand(logger *zap.Logger) *cobra.Command {
	var structureOnlyEnabled bool
	var interactiveEnabled bool
	var outputDirectory string
	var exclusionPatterns []string
	var disableGitignore bool
	var includeGit bool
	var tokensEnabled bool
	var tokenModel string = defaultTokenizerModelName
	var copyToClipboard bool
	var configurationPath string

	flattenCommand := &cobra.Command{
		Use:     flattenUse,
		Aliases: []string{flattenAlias},
		Short:   flattenShortDescription,
		Long:    flattenLongDescription,
		Example: flattenUsageExample,
		Args:    cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			workingDirectory, workingDirectoryError := os.Getwd()
			if workingDirectoryError != nil {
				return fmt.Errorf(workingDirectoryErrorFormat, workingDirectoryError)
			}
			applicationConfiguration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{
				WorkingDirectory: workingDirectory,
				ExplicitFilePath: configurationPath,
			})
			if configurationError != nil {
				return configurationError
			}

			options := flattenOptions{
				input:             arguments[0],
				structureOnly:     structureOnlyEnabled,
				interactive:       interactiveEnabled,
				outputDirectory:   outputDirectory,
				exclusionPatterns: exclusionPatterns,
				useGitignore:      !disableGitignore,
				includeGit:        includeGit,
				tokensEnabled:     tokensEnabled,
				tokenModel:        tokenModel,
				copyToClipboard:   copyToClipboard,
			}
			options = applyConfigurationDefaults(command, options, applicationConfiguration.Flatten)
			if options.outputDirectory == "" {
				options.outputDirectory = workingDirectory
			}

			return runFlatten(options, logger)
		},
	}

	registerBooleanFlag(flattenCommand.Flags(), &structureOnlyEnabled, structureOnlyFlagName, false, structureOnlyFlagDescription)
	registerBooleanFlag(flattenCommand.Flags(), &interactiveEnabled, interactiveFlagName, false, interactiveFlagDescription)
	flattenCommand.Flags().StringVarP(&outputDirectory, outputFlagName, "o", "", outputFlagDescription)
	flattenCommand.Flags().StringArrayVarP(&exclusionPatterns, exclusionFlagName, exclusionFlagName, nil, exclusionFlagDescription)
	registerBooleanFlag(flattenCommand.Flags(), &disableGitignore, noGitignoreFlagName, false, noGitignoreFlagDescription)
	registerBooleanFlag(flattenCommand.Flags(), &includeGit, includeGitFlagName, false, includeGitFlagDescription)
	registerBooleanFlag(flattenCommand.Flags(), &tokensEnabled, tokensFlagName, false, tokensFlagDescription)
	flattenCommand.Flags().StringVar(&tokenModel, modelFlagName, defaultTokenizerModelName, modelFlagDescription)
	registerBooleanFlag(flattenCommand.Flags(), &copyToClipboard, copyFlagName, false, copyFlagDescription)
	flattenCommand.Flags().StringVar(&configurationPath, configFlagName, "", configFlagDescription)
	return flattenCommand
}

// applyConfigurationDefaults overlays configuration file values onto options for
// every flag the invocation left untouched. Explicit flags always win.
func applyConfigurationDefaults(command *cobra.Command, options flattenOptions, configuration config.FlattenConfiguration) flattenOptions {
	flagSet := command.Flags()
	if !flagSet.Changed(structureOnlyFlagName) && configuration.StructureOnly != nil {
		options.structureOnly = *configuration.StructureOnly
	}
	if !flagSet.Changed(interactiveFlagName) && configuration.Interactive != nil {
		options.interactive = *configuration.Interactive
	}
	if !flagSet.Changed(outputFlagName) && configuration.OutputDirectory != "" {
		options.outputDirectory = configuration.OutputDirectory
	}
	if !flagSet.Changed(exclusionFlagName) && len(configuration.Exclude) > 0 {
		options.exclusionPatterns = append([]string{}, configuration.Exclude...)
	}
	if !flagSet.Changed(noGitignoreFlagName) && configuration.UseGitignore != nil {
		options.useGitignore = *configuration.UseGitignore
	}
	if !flagSet.Changed(includeGitFlagName) && configuration.IncludeGit != nil {
		options.includeGit = *configuration.IncludeGit
	}
	if !flagSet.Changed(tokensFlagName) && configuration.Tokens.Enabled != nil {
		options.tokensEnabled = *configuration.Tokens.Enabled
	}
	if !flagSet.Changed(modelFlagName) && configuration.Tokens.Model != "" {
		options.tokenModel = configuration.Tokens.Model
	}
	if !flagSet.Changed(copyFlagName) && configuration.Clipboard != nil {
		options.copyToClipboard = *configuration.Clipboard
	}
	return options
}

// runFlatten executes one flatten run end to end. The scratch directory of a
// cloned source is released on every exit path.
func runFlatten(options flattenOptions, logger *zap.Logger) (err error) {
	source, resolveError := repo.Resolve(options.input)
	if resolveError != nil {
		return resolveError
	}
	defer func() {
		if releaseError := source.Release(); releaseError != nil && err == nil {
			err = releaseError
		}
	}()

	repositoryName := repo.Name(options.input)

	var ignorePatterns []string
	if options.useGitignore {
		loadedPatterns, loadError := config.LoadGitignorePatterns(source.Root)
		if loadError != nil {
			return loadError
		}
		ignorePatterns = loadedPatterns
	}
	if !options.includeGit {
		ignorePatterns = append(ignorePatterns, utils.GitDirectoryName+"/")
	}
	ignorePatterns = config.CombinePatterns(ignorePatterns, options.exclusionPatterns)
	matcher := ignore.NewMatcher(ignorePatterns)

	pathEntries, scanError := scan.Collect(source.Root, matcher)
	if scanError != nil {
		return scanError
	}

	if options.interactive {
		selectedEntries, proceed, selectionError := selectEntries(pathEntries)
		if selectionError != nil {
			return selectionError
		}
		if !proceed {
			logger.Info(selectionCanceledMessage)
			return nil
		}
		pathEntries = selectedEntries
	}

	document, documentError := flatten.Options{
		RepositoryName: repositoryName,
		RootPath:       source.Root,
		StructureOnly:  options.structureOnly,
		Entries:        pathEntries,
		Logger:         logger,
	}.Document()
	if documentError != nil {
		return documentError
	}

	outputPath := filepath.Join(options.outputDirectory, repositoryName+utils.FlattenedFileSuffix)
	if writeError := os.WriteFile(outputPath, []byte(document), 0o644); writeError != nil {
		return fmt.Errorf(errorWriteOutputFormat, outputPath, writeError)
	}

	if options.tokensEnabled {
		tokenCounter, resolvedModel, counterError := tokenizer.NewCounter(tokenizer.Config{Model: options.tokenModel})
		if counterError != nil {
			return counterError
		}
		tokenCount, countError := tokenCounter.CountString(document)
		if countError != nil {
			return countError
		}
		logger.Info(tokenCountMessage, zap.Int("tokens", tokenCount), zap.String("model", resolvedModel))
	}

	if options.copyToClipboard {
		if clipboardError := clipboard.NewService().Copy(document); clipboardError != nil {
			return fmt.Errorf(errorClipboardFormat, clipboardError)
		}
	}

	logger.Info(flatteningCompleteMessage,
		zap.String("output", outputPath),
		zap.String("size", utils.FormatFileSize(int64(len(document)))))
	return nil
}

// selectEntries runs the interactive selector over the filtered file paths.
// The returned proceed flag is false when the session was canceled or a
// confirmed-empty selection was not explicitly accepted.
func selectEntries(pathEntries []types.PathEntry) ([]types.PathEntry, bool, error) {
	filePaths := make([]string, 0, len(pathEntries))
	for _, pathEntry := range pathEntries {
		if !pathEntry.IsDirectory {
			filePaths = append(filePaths, pathEntry.RelativePath)
		}
	}
	sort.Strings(filePaths)

	selection, selectionError := selector.Run(filePaths)
	if selectionError != nil {
		return nil, false, selectionError
	}
	if selection.Canceled {
		return nil, false, nil
	}
	if len(selection.Selected) == 0 {
		if !selector.ConfirmEmptySelection(os.Stdin, os.Stdout) {
			return nil, false, nil
		}
		return []types.PathEntry{}, true, nil
	}

	selectedEntries := make([]types.PathEntry, 0, len(selection.Selected))
	for _, selectedPath := range selection.Selected {
		selectedEntries = append(selectedEntries, types.PathEntry{RelativePath: selectedPath})
	}
	return selectedEntries, true, nil
}
