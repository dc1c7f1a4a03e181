// Package execshell provides structured helpers for invoking external tools.
//
// It wraps os/exec with logging via ShellExecutor, exposes OSCommandRunner
// for default process execution, and defines the abstractions pdfbench uses
// to run git, python, and ad-hoc shell commands in a testable manner. A
// command that exits non-zero surfaces as a CommandFailedError; a command
// that cannot be started surfaces as a CommandExecutionError.
package execshell
