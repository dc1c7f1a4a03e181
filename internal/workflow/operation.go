package workflow

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/pdfbench/pdfbench/internal/bench"
	"github.com/pdfbench/pdfbench/internal/execshell"
	"github.com/pdfbench/pdfbench/internal/publish"
	"github.com/pdfbench/pdfbench/internal/toolchain"
)

// Operation performs a single workflow step.
type Operation interface {
	Name() string
	Execute(executionContext context.Context, environment *Environment) error
}

// Environment exposes shared dependencies for workflow operations.
//
// ForceInternalCheck switches every bench step into internal check mode, so a
// whole pipeline can be validated without executing benchmark subprocesses.
type Environment struct {
	Logger               *zap.Logger
	Executor             *execshell.ShellExecutor
	Registry             *toolchain.Registry
	Output               io.Writer
	BenchConfiguration   bench.CommandConfiguration
	PublishConfiguration publish.CommandConfiguration
	ForceInternalCheck   bool
}
