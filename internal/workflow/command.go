package workflow

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdfbench/pdfbench/internal/bench"
	"github.com/pdfbench/pdfbench/internal/execshell"
	"github.com/pdfbench/pdfbench/internal/publish"
	"github.com/pdfbench/pdfbench/internal/toolchain"
	"github.com/pdfbench/pdfbench/internal/ui"
)

const (
	commandUseConstant              = "workflow <file>"
	commandShortDescriptionConstant = "Run a declarative benchmark pipeline"
	commandLongDescriptionConstant  = "workflow loads a YAML pipeline definition and runs its steps in order. Supported operations are install, bench, publish, and shell; the first failing step aborts the pipeline."

	internalCheckFlagNameConstant        = "internal-check"
	internalCheckFlagDescriptionConstant = "Force bench steps into internal check mode, skipping benchmark subprocesses"
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the workflow command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	Executor                     *execshell.ShellExecutor
	Registry                     *toolchain.Registry
	HumanReadableLoggingProvider func() bool
	BenchConfigurationProvider   func() bench.CommandConfiguration
	PublishConfigurationProvider func() publish.CommandConfiguration
}

// Build constructs the workflow command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.ExactArgs(1),
		RunE:  builder.run,
	}

	command.Flags().Bool(internalCheckFlagNameConstant, false, internalCheckFlagDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration, loadError := LoadConfiguration(arguments[0])
	if loadError != nil {
		return loadError
	}

	operations, buildError := BuildOperations(configuration)
	if buildError != nil {
		return buildError
	}

	internalCheckRequested, internalCheckFlagError := command.Flags().GetBool(internalCheckFlagNameConstant)
	if internalCheckFlagError != nil {
		return internalCheckFlagError
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

	environment := Environment{
		Logger:               logger,
		Executor:             shellExecutor,
		Registry:             toolRegistry,
		Output:               command.OutOrStdout(),
		BenchConfiguration:   builder.resolveBenchConfiguration(),
		PublishConfiguration: builder.resolvePublishConfiguration(),
		ForceInternalCheck:   internalCheckRequested,
	}

	return NewExecutor(operations, environment).Execute(command.Context())
}

func (builder *CommandBuilder) resolveBenchConfiguration() bench.CommandConfiguration {
	if builder.BenchConfigurationProvider == nil {
		return bench.DefaultCommandConfiguration()
	}
	return builder.BenchConfigurationProvider().Sanitize()
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
