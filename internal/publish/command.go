package publish

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdfbench/pdfbench/internal/execshell"
	"github.com/pdfbench/pdfbench/internal/ui"
)

const (
	commandUseConstant              = "publish <results-file>"
	commandShortDescriptionConstant = "Push a results document to the results repository"
	commandLongDescriptionConstant  = "publish clones the results repository with the deploy key from " + EnvironmentVariableName + ", installs the results document alongside a refreshed latest symlink, and pushes the commit. Without the deploy key the command logs a notice and exits successfully."

	remoteFlagNameConstant        = "remote"
	remoteFlagDescriptionConstant = "Results repository URL receiving the push"
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the publish command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	Executor                     *execshell.ShellExecutor
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() CommandConfiguration
}

// Build constructs the publish command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.ExactArgs(1),
		RunE:  builder.run,
	}

	command.Flags().String(remoteFlagNameConstant, "", remoteFlagDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()

	remoteURL := configuration.RemoteURL
	if command.Flags().Changed(remoteFlagNameConstant) {
		flagRemoteURL, remoteFlagError := command.Flags().GetString(remoteFlagNameConstant)
		if remoteFlagError != nil {
			return remoteFlagError
		}
		remoteURL = flagRemoteURL
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

	publishService, serviceCreationError := NewService(Dependencies{
		Logger:   logger,
		Executor: shellExecutor,
	})
	if serviceCreationError != nil {
		return serviceCreationError
	}

	return publishService.Publish(command.Context(), Options{
		ResultsFilePath: arguments[0],
		RemoteURL:       remoteURL,
		CommitterName:   configuration.CommitterName,
		CommitterEmail:  configuration.CommitterEmail,
	})
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
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
