package ui

import (
	"os"

	"go.uber.org/zap"

	"github.com/pdfbench/pdfbench/internal/execshell"
	"github.com/pdfbench/pdfbench/internal/utils"
)

// ResolveShellExecutor returns the provided executor or constructs a
// shell-backed default. Human-readable runs attach a console event logger so
// command lifecycle lines reach standard output as they happen.
func ResolveShellExecutor(existing *execshell.ShellExecutor, logger *zap.Logger, humanReadableLogging bool) (*execshell.ShellExecutor, error) {
	if existing != nil {
		return existing, nil
	}

	commandRunner := execshell.NewOSCommandRunner()
	if !humanReadableLogging {
		return execshell.NewShellExecutor(logger, commandRunner)
	}

	consoleObserver := NewConsoleCommandEventLogger(utils.NewFlushingWriter(os.Stdout))
	return execshell.NewShellExecutorWithObserver(logger, commandRunner, consoleObserver)
}
