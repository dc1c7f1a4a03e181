package bench

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdfbench/pdfbench/internal/execshell"
	"github.com/pdfbench/pdfbench/internal/publish"
	"github.com/pdfbench/pdfbench/internal/results"
	"github.com/pdfbench/pdfbench/internal/toolchain"
	"github.com/pdfbench/pdfbench/internal/ui"
)

const (
	commandUseConstant              = "bench"
	commandShortDescriptionConstant = "Run the PDF benchmark suite"
	commandLongDescriptionConstant  = "bench measures PDF library performance by running every selected test against every selected tool and input document, then writes a timestamped JSON results document."

	testFlagNameConstant                = "test"
	testFlagDescriptionConstant         = "Restrict the run to the named tests (copy, render, text)"
	toolFlagNameConstant                = "tool"
	toolFlagDescriptionConstant         = "Restrict the run to the named tools"
	pathFlagNameConstant                = "path"
	pathFlagDescriptionConstant         = "Benchmark only the named input documents"
	globFlagNameConstant                = "glob"
	globFlagDescriptionConstant         = "Select input documents matching the glob patterns, relative to the corpus directory"
	timeoutFlagNameConstant             = "timeout"
	timeoutFlagDescriptionConstant      = "Per-case timeout in seconds, 0 disables the limit"
	internalCheckFlagNameConstant       = "internal-check"
	internalCheckFlagDescriptionConst   = "Skip subprocess execution and record fixed timings, for pipeline validation"
	corpusDirectoryFlagNameConstant     = "corpus-dir"
	corpusDirectoryFlagDescriptionConst = "Directory holding the input PDF corpus"
	outputDirectoryFlagNameConstant     = "output-dir"
	outputDirectoryFlagDescriptionConst = "Directory receiving the results document and latest symlink"
	publishFlagNameConstant             = "publish"
	publishFlagDescriptionConstant      = "Push the results document to the results repository after the run"

	resultsWrittenMessageTemplateConstant = "RESULTS: %s\n"
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the bench command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	Executor                     *execshell.ShellExecutor
	Registry                     *toolchain.Registry
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() CommandConfiguration
	PublishConfigurationProvider func() publish.CommandConfiguration
}

// Build constructs the bench command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}

	command.Flags().StringSlice(testFlagNameConstant, nil, testFlagDescriptionConstant)
	command.Flags().StringSlice(toolFlagNameConstant, nil, toolFlagDescriptionConstant)
	command.Flags().StringSlice(pathFlagNameConstant, nil, pathFlagDescriptionConstant)
	command.Flags().StringSlice(globFlagNameConstant, nil, globFlagDescriptionConstant)
	command.Flags().Int(timeoutFlagNameConstant, 0, timeoutFlagDescriptionConstant)
	command.Flags().Bool(internalCheckFlagNameConstant, false, internalCheckFlagDescriptionConst)
	command.Flags().String(corpusDirectoryFlagNameConstant, "", corpusDirectoryFlagDescriptionConst)
	command.Flags().String(outputDirectoryFlagNameConstant, "", outputDirectoryFlagDescriptionConst)
	command.Flags().Bool(publishFlagNameConstant, false, publishFlagDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, _ []string) error {
	configuration := builder.resolveConfiguration()

	selectedTests, testsFlagError := command.Flags().GetStringSlice(testFlagNameConstant)
	if testsFlagError != nil {
		return testsFlagError
	}
	selectedTools, toolsFlagError := command.Flags().GetStringSlice(toolFlagNameConstant)
	if toolsFlagError != nil {
		return toolsFlagError
	}
	selectedPaths, pathsFlagError := command.Flags().GetStringSlice(pathFlagNameConstant)
	if pathsFlagError != nil {
		return pathsFlagError
	}
	selectedGlobs, globsFlagError := command.Flags().GetStringSlice(globFlagNameConstant)
	if globsFlagError != nil {
		return globsFlagError
	}
	internalCheckRequested, internalCheckFlagError := command.Flags().GetBool(internalCheckFlagNameConstant)
	if internalCheckFlagError != nil {
		return internalCheckFlagError
	}
	publishRequested, publishFlagError := command.Flags().GetBool(publishFlagNameConstant)
	if publishFlagError != nil {
		return publishFlagError
	}

	timeoutSeconds := configuration.CaseTimeoutSeconds
	if command.Flags().Changed(timeoutFlagNameConstant) {
		flagTimeoutSeconds, timeoutFlagError := command.Flags().GetInt(timeoutFlagNameConstant)
		if timeoutFlagError != nil {
			return timeoutFlagError
		}
		timeoutSeconds = flagTimeoutSeconds
	}

	corpusDirectory := configuration.CorpusDirectory
	if command.Flags().Changed(corpusDirectoryFlagNameConstant) {
		flagCorpusDirectory, corpusFlagError := command.Flags().GetString(corpusDirectoryFlagNameConstant)
		if corpusFlagError != nil {
			return corpusFlagError
		}
		corpusDirectory = flagCorpusDirectory
	}

	outputDirectory := configuration.OutputDirectory
	if command.Flags().Changed(outputDirectoryFlagNameConstant) {
		flagOutputDirectory, outputFlagError := command.Flags().GetString(outputDirectoryFlagNameConstant)
		if outputFlagError != nil {
			return outputFlagError
		}
		outputDirectory = flagOutputDirectory
	}

	logger := builder.resolveLogger()
	ui.ReportConfigurationSource(command.Context(), logger)
	humanReadableLogging := false
	if builder.HumanReadableLoggingProvider != nil {
		humanReadableLogging = builder.HumanReadableLoggingProvider()
	}
	shellExecutor, executorError := ui.ResolveShellExecutor(builder.Executor, logger, humanReadableLogging)
	if executorError != nil {
		return executorError
	}

	toolRegistry := builder.Registry
	if toolRegistry == nil {
		toolRegistry = toolchain.NewDefaultRegistry()
	}

	benchmarkService, serviceCreationError := NewService(Dependencies{
		Logger:   logger,
		Executor: shellExecutor,
		Registry: toolRegistry,
	})
	if serviceCreationError != nil {
		return serviceCreationError
	}

	runOptions := Options{
		Tests:           selectedTests,
		Tools:           selectedTools,
		Paths:           selectedPaths,
		Globs:           selectedGlobs,
		CorpusDirectory: corpusDirectory,
		CaseTimeout:     time.Duration(timeoutSeconds) * time.Second,
		InternalCheck:   internalCheckRequested,
	}

	document, runError := benchmarkService.Run(command.Context(), runOptions)
	if runError != nil {
		return runError
	}

	resultsStore, storeCreationError := results.NewStore(outputDirectory)
	if storeCreationError != nil {
		return storeCreationError
	}
	writtenFiles, writeError := resultsStore.Write(document, runOptions.Filtered())
	if writeError != nil {
		return writeError
	}
	fmt.Fprintf(command.OutOrStdout(), resultsWrittenMessageTemplateConstant, writtenFiles.ResultsPath)

	if !publishRequested {
		return nil
	}

	publishConfiguration := builder.resolvePublishConfiguration()
	publishService, publishCreationError := publish.NewService(publish.Dependencies{
		Logger:   logger,
		Executor: shellExecutor,
	})
	if publishCreationError != nil {
		return publishCreationError
	}
	return publishService.Publish(command.Context(), publish.Options{
		ResultsFilePath: writtenFiles.ResultsPath,
		RemoteURL:       publishConfiguration.RemoteURL,
		CommitterName:   publishConfiguration.CommitterName,
		CommitterEmail:  publishConfiguration.CommitterEmail,
	})
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
}

func (builder *CommandBuilder) resolvePublishConfiguration() publish.CommandConfiguration {
	if builder.PublishConfigurationProvider == nil {
		return publish.DefaultCommandConfiguration()
	}
	return builder.PublishConfigurationProvider().Sanitize()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
