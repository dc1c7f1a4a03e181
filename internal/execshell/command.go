package execshell

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	commandNameGitStringConstant            = "git"
	commandNamePythonStringConstant         = "python3"
	commandNamePipStringConstant            = "pip"
	commandNameShellStringConstant          = "sh"
	shellCommandFlagConstant                = "-c"
	loggerNotConfiguredMessageConstant      = "shell executor requires a logger"
	runnerNotConfiguredMessageConstant      = "shell executor requires a command runner"
	commandFailedMessageTemplateConstant    = "%s exited with code %d%s"
	commandExecutionMessageTemplate         = "%s could not be executed: %v"
	commandLabelJoinSeparatorConstant       = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	emptyStringConstant                     = ""
	shellCommandTextRequiredMessageConstant = "shell command text must not be empty"
)

// CommandName identifies a supported executable.
type CommandName string

// Supported executables.
const (
	CommandGit    CommandName = CommandName(commandNameGitStringConstant)
	CommandPython CommandName = CommandName(commandNamePythonStringConstant)
	CommandPip    CommandName = CommandName(commandNamePipStringConstant)
	CommandShell  CommandName = CommandName(commandNameShellStringConstant)
)

// CommandDetails captures the options of a single command invocation.
//
// InheritStreams mirrors captured output to the caller's standard output and
// standard error while the command runs, matching the behavior of a CI step.
type CommandDetails struct {
	Arguments            []string
	WorkingDirectory     string
	EnvironmentVariables map[string]string
	StandardInput        []byte
	InheritStreams       bool
}

// ShellCommand combines a CommandName with invocation details.
type ShellCommand struct {
	Name    CommandName
	Details CommandDetails
}

// ExecutionResult captures the observable results of executing a command.
type ExecutionResult struct {
	StandardOutput string
	StandardError  string
	ExitCode       int
}

// CommandRunner represents the ability to run shell commands.
type CommandRunner interface {
	Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error)
}

// ErrLoggerNotConfigured indicates a ShellExecutor was constructed without a logger.
var ErrLoggerNotConfigured = errors.New(loggerNotConfiguredMessageConstant)

// ErrCommandRunnerNotConfigured indicates a ShellExecutor was constructed without a runner.
var ErrCommandRunnerNotConfigured = errors.New(runnerNotConfiguredMessageConstant)

// ErrShellCommandTextRequired indicates RunShell received an empty command string.
var ErrShellCommandTextRequired = errors.New(shellCommandTextRequiredMessageConstant)

// CommandFailedError reports a command that ran to completion with a non-zero exit code.
type CommandFailedError struct {
	Command ShellCommand
	Result  ExecutionResult
}

// Error describes the failed command including its exit code and trailing standard error output.
func (failedError CommandFailedError) Error() string {
	standardErrorSuffix := emptyStringConstant
	trimmedStandardError := strings.TrimSpace(failedError.Result.StandardError)
	if len(trimmedStandardError) > 0 {
		standardErrorSuffix = fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
	}
	return fmt.Sprintf(commandFailedMessageTemplateConstant, failedError.Command.CommandLabel(), failedError.Result.ExitCode, standardErrorSuffix)
}

// CommandExecutionError reports a command that could not be executed at all.
type CommandExecutionError struct {
	Command ShellCommand
	Cause   error
}

// Error describes the command and the underlying failure.
func (executionError CommandExecutionError) Error() string {
	return fmt.Sprintf(commandExecutionMessageTemplate, executionError.Command.CommandLabel(), executionError.Cause)
}

// Unwrap exposes the underlying failure for errors.Is and errors.As.
func (executionError CommandExecutionError) Unwrap() error {
	return executionError.Cause
}

// NewShellScriptCommand builds a ShellCommand interpreting commandText through `sh -c`.
func NewShellScriptCommand(commandText string, details CommandDetails) ShellCommand {
	scriptArguments := append([]string{shellCommandFlagConstant, commandText}, details.Arguments...)
	return ShellCommand{
		Name: CommandShell,
		Details: CommandDetails{
			Arguments:            scriptArguments,
			WorkingDirectory:     details.WorkingDirectory,
			EnvironmentVariables: details.EnvironmentVariables,
			StandardInput:        details.StandardInput,
			InheritStreams:       details.InheritStreams,
		},
	}
}

// CommandLabel renders the executable and its arguments the way the command is echoed.
func (command ShellCommand) CommandLabel() string {
	commandParts := []string{string(command.Name)}
	if len(command.Details.Arguments) > 0 {
		commandParts = append(commandParts, command.Details.Arguments...)
	}
	return strings.Join(commandParts, commandLabelJoinSeparatorConstant)
}
