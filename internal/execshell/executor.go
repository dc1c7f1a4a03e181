package execshell

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// ShellExecutor logs and executes shell commands through a CommandRunner.
//
// Every command is announced before it runs, executed synchronously, and
// converted into a typed error when it does not exit cleanly. There are no
// retries: callers treat a returned error as a failed step.
type ShellExecutor struct {
	logger    *zap.Logger
	runner    CommandRunner
	observer  CommandEventObserver
	formatter CommandMessageFormatter
}

// NewShellExecutor constructs an executor logging lifecycle events through the provided logger.
func NewShellExecutor(logger *zap.Logger, runner CommandRunner) (*ShellExecutor, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if runner == nil {
		return nil, ErrCommandRunnerNotConfigured
	}

	return &ShellExecutor{
		logger:    logger,
		runner:    runner,
		observer:  noopCommandEventObserver{},
		formatter: CommandMessageFormatter{},
	}, nil
}

// NewShellExecutorWithObserver constructs an executor that additionally notifies the supplied observer.
func NewShellExecutorWithObserver(logger *zap.Logger, runner CommandRunner, observer CommandEventObserver) (*ShellExecutor, error) {
	shellExecutor, creationError := NewShellExecutor(logger, runner)
	if creationError != nil {
		return nil, creationError
	}
	if observer != nil {
		shellExecutor.observer = observer
	}
	return shellExecutor, nil
}

// Execute runs the supplied command, logging its lifecycle and checking its exit code.
func (executor *ShellExecutor) Execute(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	executor.logger.Info(executor.formatter.BuildStartedMessage(command))
	executor.observer.CommandStarted(command)

	executionResult, runError := executor.runner.Run(executionContext, command)
	if runError != nil {
		executor.logger.Error(executor.formatter.BuildExecutionFailureMessage(command, runError))
		executor.observer.CommandExecutionFailed(command, runError)
		return ExecutionResult{}, CommandExecutionError{Command: command, Cause: runError}
	}

	if executionResult.ExitCode != 0 {
		executor.logger.Warn(executor.formatter.BuildFailureMessage(command, executionResult))
		executor.observer.CommandCompleted(command, executionResult)
		return executionResult, CommandFailedError{Command: command, Result: executionResult}
	}

	executor.logger.Info(executor.formatter.BuildSuccessMessage(command))
	executor.observer.CommandCompleted(command, executionResult)
	return executionResult, nil
}

// ExecuteGit runs git with the provided details.
func (executor *ShellExecutor) ExecuteGit(executionContext context.Context, details CommandDetails) (ExecutionResult, error) {
	return executor.Execute(executionContext, ShellCommand{Name: CommandGit, Details: details})
}

// ExecutePython runs the python interpreter with the provided details.
func (executor *ShellExecutor) ExecutePython(executionContext context.Context, details CommandDetails) (ExecutionResult, error) {
	return executor.Execute(executionContext, ShellCommand{Name: CommandPython, Details: details})
}

// ExecutePip runs pip with the provided details.
func (executor *ShellExecutor) ExecutePip(executionContext context.Context, details CommandDetails) (ExecutionResult, error) {
	return executor.Execute(executionContext, ShellCommand{Name: CommandPip, Details: details})
}

// RunShell echoes commandText, executes it with shell interpretation, and
// fails when the subordinate process exits non-zero.
//
// The command inherits the caller's standard output and standard error
// streams. The echo happens through the executor's logger before the process
// spawns, so log ordering follows execution ordering.
func (executor *ShellExecutor) RunShell(executionContext context.Context, commandText string) error {
	if len(strings.TrimSpace(commandText)) == 0 {
		return ErrShellCommandTextRequired
	}

	shellCommand := NewShellScriptCommand(commandText, CommandDetails{InheritStreams: true})
	_, executionError := executor.Execute(executionContext, shellCommand)
	return executionError
}
