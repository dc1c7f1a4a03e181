package ui_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pdfbench/pdfbench/internal/execshell"
	"github.com/pdfbench/pdfbench/internal/ui"
)

const testObservedCommandTextConstant = "python main.py"

func observedCommand() execshell.ShellCommand {
	return execshell.NewShellScriptCommand(testObservedCommandTextConstant, execshell.CommandDetails{})
}

func TestConsoleCommandEventLoggerPrintsLifecycleLines(testInstance *testing.T) {
	testCases := []struct {
		name            string
		notify          func(eventLogger *ui.ConsoleCommandEventLogger)
		expectedContent string
	}{
		{
			name: "command_started",
			notify: func(eventLogger *ui.ConsoleCommandEventLogger) {
				eventLogger.CommandStarted(observedCommand())
			},
			expectedContent: testObservedCommandTextConstant,
		},
		{
			name: "command_completed",
			notify: func(eventLogger *ui.ConsoleCommandEventLogger) {
				eventLogger.CommandCompleted(observedCommand(), execshell.ExecutionResult{ExitCode: 0})
			},
			expectedContent: "Completed",
		},
		{
			name: "command_failed",
			notify: func(eventLogger *ui.ConsoleCommandEventLogger) {
				eventLogger.CommandCompleted(observedCommand(), execshell.ExecutionResult{ExitCode: 1, StandardError: "boom"})
			},
			expectedContent: "exit code 1",
		},
		{
			name: "execution_failure",
			notify: func(eventLogger *ui.ConsoleCommandEventLogger) {
				eventLogger.CommandExecutionFailed(observedCommand(), errors.New("sh not found"))
			},
			expectedContent: "sh not found",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			var outputBuffer bytes.Buffer
			eventLogger := ui.NewConsoleCommandEventLogger(&outputBuffer)

			testCase.notify(eventLogger)

			printedLine := outputBuffer.String()
			require.Contains(testInstance, printedLine, testCase.expectedContent)
			require.True(testInstance, len(printedLine) > 0 && printedLine[len(printedLine)-1] == '\n')
		})
	}
}

func TestConsoleCommandEventLoggerToleratesNilOutput(testInstance *testing.T) {
	eventLogger := ui.NewConsoleCommandEventLogger(nil)
	eventLogger.CommandStarted(observedCommand())
}
