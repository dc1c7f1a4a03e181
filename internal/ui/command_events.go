package ui

import (
	"fmt"
	"io"

	"github.com/pdfbench/pdfbench/internal/execshell"
)

const (
	eventLineTemplateConstant = "%s\n"
)

// ConsoleCommandEventLogger writes command lifecycle events to a writer,
// typically a flushing wrapper around standard output, so operators watching
// a CI log see each command as it is issued.
type ConsoleCommandEventLogger struct {
	output    io.Writer
	formatter execshell.CommandMessageFormatter
}

// NewConsoleCommandEventLogger constructs a console event logger backed by the provided writer.
func NewConsoleCommandEventLogger(output io.Writer) *ConsoleCommandEventLogger {
	return &ConsoleCommandEventLogger{output: output, formatter: execshell.CommandMessageFormatter{}}
}

// CommandStarted implements execshell.CommandEventObserver by printing the start notification.
func (eventLogger *ConsoleCommandEventLogger) CommandStarted(command execshell.ShellCommand) {
	eventLogger.printLine(eventLogger.formatter.BuildStartedMessage(command))
}

// CommandCompleted implements execshell.CommandEventObserver by printing completion notifications.
func (eventLogger *ConsoleCommandEventLogger) CommandCompleted(command execshell.ShellCommand, result execshell.ExecutionResult) {
	if result.ExitCode == 0 {
		eventLogger.printLine(eventLogger.formatter.BuildSuccessMessage(command))
		return
	}
	eventLogger.printLine(eventLogger.formatter.BuildFailureMessage(command, result))
}

// CommandExecutionFailed implements execshell.CommandEventObserver by printing unexpected execution failures.
func (eventLogger *ConsoleCommandEventLogger) CommandExecutionFailed(command execshell.ShellCommand, failure error) {
	eventLogger.printLine(eventLogger.formatter.BuildExecutionFailureMessage(command, failure))
}

func (eventLogger *ConsoleCommandEventLogger) printLine(message string) {
	if eventLogger == nil || eventLogger.output == nil {
		return
	}
	fmt.Fprintf(eventLogger.output, eventLineTemplateConstant, message)
}
