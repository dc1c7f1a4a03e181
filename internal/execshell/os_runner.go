package execshell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

const (
	environmentAssignmentSeparatorConstant = "="
	environmentAssignmentTemplateConstant  = "%s%s%s"
)

// OSCommandRunner executes commands using the operating system facilities.
//
// Standard output and standard error are always captured for the
// ExecutionResult; commands flagged with InheritStreams additionally mirror
// both streams to the current process so CI log capture observes subordinate
// output as it is produced.
type OSCommandRunner struct {
	standardOutput io.Writer
	standardError  io.Writer
}

// NewOSCommandRunner constructs a runner backed by os/exec.
func NewOSCommandRunner() *OSCommandRunner {
	return &OSCommandRunner{standardOutput: os.Stdout, standardError: os.Stderr}
}

// NewOSCommandRunnerWithStreams constructs a runner mirroring inherited streams to the supplied writers.
func NewOSCommandRunnerWithStreams(standardOutput io.Writer, standardError io.Writer) *OSCommandRunner {
	runner := NewOSCommandRunner()
	if standardOutput != nil {
		runner.standardOutput = standardOutput
	}
	if standardError != nil {
		runner.standardError = standardError
	}
	return runner
}

// Run executes the supplied command using os/exec.
func (runner *OSCommandRunner) Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	commandArguments := append([]string{}, command.Details.Arguments...)
	executable := exec.CommandContext(executionContext, string(command.Name), commandArguments...)

	if len(command.Details.WorkingDirectory) > 0 {
		executable.Dir = command.Details.WorkingDirectory
	}

	if len(command.Details.EnvironmentVariables) > 0 {
		mergedEnvironment := append([]string{}, os.Environ()...)
		for environmentKey, environmentValue := range command.Details.EnvironmentVariables {
			mergedEnvironment = append(mergedEnvironment, fmt.Sprintf(environmentAssignmentTemplateConstant, environmentKey, environmentAssignmentSeparatorConstant, environmentValue))
		}
		executable.Env = mergedEnvironment
	}

	var standardOutputBuffer bytes.Buffer
	var standardErrorBuffer bytes.Buffer
	executable.Stdout = runner.outputDestination(&standardOutputBuffer, runner.standardOutput, command.Details.InheritStreams)
	executable.Stderr = runner.outputDestination(&standardErrorBuffer, runner.standardError, command.Details.InheritStreams)

	if len(command.Details.StandardInput) > 0 {
		executable.Stdin = bytes.NewReader(command.Details.StandardInput)
	}

	runError := executable.Run()
	if runError != nil {
		exitError := &exec.ExitError{}
		if errors.As(runError, &exitError) {
			return ExecutionResult{
				StandardOutput: standardOutputBuffer.String(),
				StandardError:  standardErrorBuffer.String(),
				ExitCode:       exitError.ExitCode(),
			}, nil
		}
		return ExecutionResult{}, runError
	}

	return ExecutionResult{
		StandardOutput: standardOutputBuffer.String(),
		StandardError:  standardErrorBuffer.String(),
		ExitCode:       0,
	}, nil
}

func (runner *OSCommandRunner) outputDestination(captureBuffer *bytes.Buffer, mirrorWriter io.Writer, inheritStreams bool) io.Writer {
	if inheritStreams && mirrorWriter != nil {
		return io.MultiWriter(captureBuffer, mirrorWriter)
	}
	return captureBuffer
}
