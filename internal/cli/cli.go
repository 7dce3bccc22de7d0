// Package cli provides the command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/SakibAhmedShuva/dirmap/internal/commands"
	"github.com/SakibAhmedShuva/dirmap/internal/config"
	"github.com/SakibAhmedShuva/dirmap/internal/output"
	"github.com/SakibAhmedShuva/dirmap/internal/services/clipboard"
	"github.com/SakibAhmedShuva/dirmap/internal/utils"
)

const (
	maxDepthFlagName = "max-depth"
	maxFilesFlagName = "max-files"
	ignoreFlagName   = "ignore"
	outputFlagName   = "output"
	copyFlagName     = "copy"
	configFlagName   = "config"
	versionFlagName  = "version"

	maxDepthFlagDescription = "maximum depth to traverse"
	maxFilesFlagDescription = "maximum number of files to show per directory"
	ignoreFlagDescription   = "exact entry name to ignore (repeatable)"
	outputFlagDescription   = "output file path (default: print to console)"
	copyFlagDescription     = "copy the rendered tree to the clipboard"
	configFlagDescription   = "configuration file path"
	versionFlagDescription  = "display application version"

	versionTemplate = "dirmap version: %s\n"
	defaultPath     = "."

	rootUse              = "dirmap [path]"
	rootShortDescription = "render a directory as an annotated text tree"
	rootLongDescription  = `dirmap renders a filesystem subtree as a tree of text lines.
Directories end with a trailing slash, recognized file types carry a
# comment annotation, and --max-depth, --max-files, and --ignore bound
the traversal.`
	rootUsageExample = `  # Render the current directory
  dirmap

  # Limit depth and hide bulky directories
  dirmap --max-depth 2 --ignore node_modules --ignore .git .

  # Show at most five files per directory and write the tree to a file
  dirmap --max-files 5 --output structure.txt ./src`

	// timingSummaryFormat is the trailing line reporting elapsed wall-clock time.
	timingSummaryFormat = "\nGenerated in %.2f seconds\n"
	// outputWrittenFormat is the console notice emitted after writing to a file.
	outputWrittenFormat = "Output written to %s\n"
	// warningClipboardFormat reports a failed clipboard copy without failing the command.
	warningClipboardFormat = "Warning: %v\n"
	// warningCloseOutputFormat reports a failure to close the output file.
	warningCloseOutputFormat = "Warning: failed to close %s: %v\n"
)

// treeOptions stores the flag values of the dirmap command.
type treeOptions struct {
	maxDepth    int
	maxFiles    int
	ignoreNames []string
	outputPath  string
	copyEnabled bool
	configPath  string
}

// Execute runs the dirmap application.
func Execute() error {
	rootCommand := createRootCommand()
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command.
func createRootCommand() *cobra.Command {
	var options treeOptions
	var showVersion bool

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		Example:      rootUsageExample,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			if showVersion {
				fmt.Printf(versionTemplate, utils.GetApplicationVersion())
				return nil
			}
			rootPath := defaultPath
			if len(arguments) > 0 {
				rootPath = arguments[0]
			}
			return runTree(command, rootPath, options)
		},
	}

	rootCommand.Flags().IntVar(&options.maxDepth, maxDepthFlagName, config.UnlimitedLimit, maxDepthFlagDescription)
	rootCommand.Flags().IntVar(&options.maxFiles, maxFilesFlagName, config.UnlimitedLimit, maxFilesFlagDescription)
	rootCommand.Flags().StringArrayVar(&options.ignoreNames, ignoreFlagName, nil, ignoreFlagDescription)
	rootCommand.Flags().StringVarP(&options.outputPath, outputFlagName, "o", "", outputFlagDescription)
	rootCommand.Flags().BoolVar(&options.copyEnabled, copyFlagName, false, copyFlagDescription)
	rootCommand.Flags().StringVar(&options.configPath, configFlagName, "", configFlagDescription)
	rootCommand.Flags().BoolVarP(&showVersion, versionFlagName, "v", false, versionFlagDescription)
	return rootCommand
}

// runTree resolves the effective configuration and streams the rendered tree.
func runTree(command *cobra.Command, rootPath string, options treeOptions) error {
	applicationConfiguration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{
		ExplicitFilePath: options.configPath,
	})
	if configurationError != nil {
		return configurationError
	}
	resolved := resolveOptions(command, options, applicationConfiguration)

	destination, closeDestination, openError := output.OpenDestination(resolved.outputPath)
	if openError != nil {
		return openError
	}

	var capture *output.CaptureWriter
	renderTarget := destination
	if resolved.copyEnabled {
		capture = output.NewCaptureWriter(destination)
		renderTarget = capture
	}
	lineWriter := output.NewLineWriter(renderTarget)

	treeBuilder := commands.NewTreeBuilder(config.NewTraversalConfig(resolved.maxDepth, resolved.maxFiles, resolved.ignoreNames))

	startTime := time.Now()
	streamError := streamLines(
		context.Background(),
		func(streamContext context.Context, lines chan<- string) error {
			_, produceError := treeBuilder.StreamTree(rootPath, func(line string) error {
				select {
				case <-streamContext.Done():
					return streamContext.Err()
				case lines <- line:
					return nil
				}
			})
			return produceError
		},
		lineWriter.WriteLine,
	)
	if streamError != nil {
		if closeError := closeDestination(); closeError != nil {
			fmt.Fprintf(os.Stderr, warningCloseOutputFormat, resolved.outputPath, closeError)
		}
		return streamError
	}

	elapsedSeconds := time.Since(startTime).Seconds()
	if summaryError := lineWriter.WriteRaw(fmt.Sprintf(timingSummaryFormat, elapsedSeconds)); summaryError != nil {
		return summaryError
	}
	if closeError := closeDestination(); closeError != nil {
		return closeError
	}

	if resolved.outputPath != "" {
		fmt.Printf(outputWrittenFormat, resolved.outputPath)
	}
	if resolved.copyEnabled && capture != nil {
		if copyError := clipboard.NewSystemClipboard().Copy(capture.Captured()); copyError != nil {
			fmt.Fprintf(os.Stderr, warningClipboardFormat, copyError)
		}
	}
	return nil
}

// resolvedOptions is the effective configuration after merging configuration
// file defaults with explicitly set flags. Flags win.
type resolvedOptions struct {
	maxDepth    int
	maxFiles    int
	ignoreNames []string
	outputPath  string
	copyEnabled bool
}

func resolveOptions(command *cobra.Command, options treeOptions, applicationConfiguration config.ApplicationConfiguration) resolvedOptions {
	resolved := resolvedOptions{
		maxDepth: config.UnlimitedLimit,
		maxFiles: config.UnlimitedLimit,
	}

	if applicationConfiguration.MaxDepth != nil {
		resolved.maxDepth = *applicationConfiguration.MaxDepth
	}
	if command.Flags().Changed(maxDepthFlagName) {
		resolved.maxDepth = options.maxDepth
	}

	if applicationConfiguration.MaxFiles != nil {
		resolved.maxFiles = *applicationConfiguration.MaxFiles
	}
	if command.Flags().Changed(maxFilesFlagName) {
		resolved.maxFiles = options.maxFiles
	}

	combinedIgnoreNames := append([]string{}, applicationConfiguration.Ignore...)
	combinedIgnoreNames = append(combinedIgnoreNames, options.ignoreNames...)
	resolved.ignoreNames = utils.DeduplicateNames(combinedIgnoreNames)

	resolved.outputPath = applicationConfiguration.Output
	if command.Flags().Changed(outputFlagName) {
		resolved.outputPath = options.outputPath
	}

	if applicationConfiguration.Clipboard != nil {
		resolved.copyEnabled = *applicationConfiguration.Clipboard
	}
	if command.Flags().Changed(copyFlagName) {
		resolved.copyEnabled = options.copyEnabled
	}

	return resolved
}

// streamLines pumps produced lines to the consumer through a channel. The
// producer walks the tree sequentially; the pump only decouples rendering from
// writing so slow sinks never grow the line sequence in memory.
func streamLines(
	ctx context.Context,
	produce func(context.Context, chan<- string) error,
	consume func(string) error,
) error {
	group, streamContext := errgroup.WithContext(ctx)
	lines := make(chan string)

	group.Go(func() error {
		defer close(lines)
		return produce(streamContext, lines)
	})

	group.Go(func() error {
		for {
			select {
			case <-streamContext.Done():
				return streamContext.Err()
			case line, ok := <-lines:
				if !ok {
					return nil
				}
				if consumeError := consume(line); consumeError != nil {
					return consumeError
				}
			}
		}
	})

	if waitError := group.Wait(); waitError != nil && !errors.Is(waitError, context.Canceled) {
		return waitError
	}
	return nil
}
