package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"

	"github.com/pdfbench/pdfbench/internal/bench"
	"github.com/pdfbench/pdfbench/internal/execshell"
	"github.com/pdfbench/pdfbench/internal/publish"
	"github.com/pdfbench/pdfbench/internal/results"
)

const (
	installOperationNameConstant = "install"
	benchOperationNameConstant   = "bench"
	publishOperationNameConstant = "publish"
	shellOperationNameConstant   = "shell"

	unsupportedOperationTemplateConstant      = "unsupported workflow operation: %s"
	stepOptionsDecodeErrorTemplateConstant    = "failed to decode %s step options: %w"
	publishStepFileRequiredMessageConstant    = "publish step requires a results file"
	shellStepCommandRequiredMessageConstant   = "shell step requires a command"
	benchResultsWrittenMessageTemplateConst   = "RESULTS: %s\n"
	environmentExecutorMissingMessageConstant = "workflow environment requires a shell executor"
	environmentRegistryMissingMessageConstant = "workflow environment requires a tool registry"

	pythonVersionFlagConstant  = "--version"
	pipInstallArgumentConstant = "install"
	pipUpgradeFlagConstant     = "--upgrade"
)

// BuildOperations converts the declarative configuration into executable operations.
func BuildOperations(configuration Configuration) ([]Operation, error) {
	operations := make([]Operation, 0, len(configuration.Steps))
	for stepIndex := range configuration.Steps {
		operation, buildError := buildOperationFromStep(configuration.Steps[stepIndex])
		if buildError != nil {
			return nil, buildError
		}
		operations = append(operations, operation)
	}
	return operations, nil
}

func buildOperationFromStep(step StepConfiguration) (Operation, error) {
	switch step.Operation {
	case OperationTypeInstall:
		return buildInstallOperation(step.Options)
	case OperationTypeBench:
		return buildBenchOperation(step.Options)
	case OperationTypePublish:
		return buildPublishOperation(step.Options)
	case OperationTypeShell:
		return buildShellOperation(step.Options)
	default:
		return nil, fmt.Errorf(unsupportedOperationTemplateConstant, step.Operation)
	}
}

func decodeStepOptions(operationName string, options map[string]any, target any) error {
	if decodeError := mapstructure.Decode(options, target); decodeError != nil {
		return fmt.Errorf(stepOptionsDecodeErrorTemplateConstant, operationName, decodeError)
	}
	return nil
}

type installStepOptions struct {
	Tools []string `mapstructure:"tools"`
}

func buildInstallOperation(options map[string]any) (Operation, error) {
	var stepOptions installStepOptions
	if decodeError := decodeStepOptions(installOperationNameConstant, options, &stepOptions); decodeError != nil {
		return nil, decodeError
	}
	return &InstallOperation{options: stepOptions}, nil
}

// InstallOperation installs the python packages backing the selected
// benchmark tools. An empty tool selection installs every registered tool's
// package; tools backed by system binaries are skipped.
type InstallOperation struct {
	options installStepOptions
}

// Name identifies the operation in failure messages.
func (operation *InstallOperation) Name() string {
	return installOperationNameConstant
}

// Execute verifies the python interpreter responds, then installs the
// required packages through pip.
func (operation *InstallOperation) Execute(executionContext context.Context, environment *Environment) error {
	if environment.Executor == nil {
		return errors.New(environmentExecutorMissingMessageConstant)
	}
	if environment.Registry == nil {
		return errors.New(environmentRegistryMissingMessageConstant)
	}

	interpreterDetails := execshell.CommandDetails{Arguments: []string{pythonVersionFlagConstant}}
	if _, interpreterError := environment.Executor.ExecutePython(executionContext, interpreterDetails); interpreterError != nil {
		return interpreterError
	}

	packageNames, packagesError := environment.Registry.PythonPackages(operation.options.Tools)
	if packagesError != nil {
		return packagesError
	}
	if len(packageNames) == 0 {
		return nil
	}

	installArguments := append([]string{pipInstallArgumentConstant, pipUpgradeFlagConstant}, packageNames...)
	_, installError := environment.Executor.ExecutePip(executionContext, execshell.CommandDetails{Arguments: installArguments})
	return installError
}

type benchStepOptions struct {
	Tests           []string `mapstructure:"tests"`
	Tools           []string `mapstructure:"tools"`
	Paths           []string `mapstructure:"paths"`
	Globs           []string `mapstructure:"globs"`
	CorpusDirectory string   `mapstructure:"corpus_dir"`
	OutputDirectory string   `mapstructure:"output_dir"`
	TimeoutSeconds  *int     `mapstructure:"timeout_seconds"`
	InternalCheck   bool     `mapstructure:"internal_check"`
	Publish         bool     `mapstructure:"publish"`
}

func buildBenchOperation(options map[string]any) (Operation, error) {
	var stepOptions benchStepOptions
	if decodeError := decodeStepOptions(benchOperationNameConstant, options, &stepOptions); decodeError != nil {
		return nil, decodeError
	}
	return &BenchOperation{options: stepOptions}, nil
}

// BenchOperation runs the benchmark suite and writes the results document.
type BenchOperation struct {
	options benchStepOptions
}

// Name identifies the operation in failure messages.
func (operation *BenchOperation) Name() string {
	return benchOperationNameConstant
}

// Execute runs the suite with the step options layered over the environment configuration.
func (operation *BenchOperation) Execute(executionContext context.Context, environment *Environment) error {
	if environment.Executor == nil {
		return errors.New(environmentExecutorMissingMessageConstant)
	}

	benchConfiguration := environment.BenchConfiguration.Sanitize()
	corpusDirectory := benchConfiguration.CorpusDirectory
	if len(strings.TrimSpace(operation.options.CorpusDirectory)) > 0 {
		corpusDirectory = operation.options.CorpusDirectory
	}
	outputDirectory := benchConfiguration.OutputDirectory
	if len(strings.TrimSpace(operation.options.OutputDirectory)) > 0 {
		outputDirectory = operation.options.OutputDirectory
	}
	timeoutSeconds := benchConfiguration.CaseTimeoutSeconds
	if operation.options.TimeoutSeconds != nil {
		timeoutSeconds = *operation.options.TimeoutSeconds
	}

	benchmarkService, serviceCreationError := bench.NewService(bench.Dependencies{
		Logger:   environment.Logger,
		Executor: environment.Executor,
		Registry: environment.Registry,
	})
	if serviceCreationError != nil {
		return serviceCreationError
	}

	runOptions := bench.Options{
		Tests:           operation.options.Tests,
		Tools:           operation.options.Tools,
		Paths:           operation.options.Paths,
		Globs:           operation.options.Globs,
		CorpusDirectory: corpusDirectory,
		CaseTimeout:     time.Duration(timeoutSeconds) * time.Second,
		InternalCheck:   operation.options.InternalCheck || environment.ForceInternalCheck,
	}

	document, runError := benchmarkService.Run(executionContext, runOptions)
	if runError != nil {
		return runError
	}

	resultsStore, storeCreationError := results.NewStore(outputDirectory)
	if storeCreationError != nil {
		return storeCreationError
	}
	writtenFiles, writeError := resultsStore.Write(document, runOptions.Filtered())
	if writeError != nil {
		return writeError
	}
	if environment.Output != nil {
		fmt.Fprintf(environment.Output, benchResultsWrittenMessageTemplateConst, writtenFiles.ResultsPath)
	}

	if !operation.options.Publish {
		return nil
	}
	return publishResultsFile(executionContext, environment, writtenFiles.ResultsPath, "")
}

type publishStepOptions struct {
	File   string `mapstructure:"file"`
	Remote string `mapstructure:"remote"`
}

func buildPublishOperation(options map[string]any) (Operation, error) {
	var stepOptions publishStepOptions
	if decodeError := decodeStepOptions(publishOperationNameConstant, options, &stepOptions); decodeError != nil {
		return nil, decodeError
	}
	if len(strings.TrimSpace(stepOptions.File)) == 0 {
		return nil, errors.New(publishStepFileRequiredMessageConstant)
	}
	return &PublishOperation{options: stepOptions}, nil
}

// PublishOperation pushes an existing results document to the results repository.
type PublishOperation struct {
	options publishStepOptions
}

// Name identifies the operation in failure messages.
func (operation *PublishOperation) Name() string {
	return publishOperationNameConstant
}

// Execute publishes the configured results file.
func (operation *PublishOperation) Execute(executionContext context.Context, environment *Environment) error {
	if environment.Executor == nil {
		return errors.New(environmentExecutorMissingMessageConstant)
	}
	return publishResultsFile(executionContext, environment, operation.options.File, operation.options.Remote)
}

func publishResultsFile(executionContext context.Context, environment *Environment, resultsFilePath string, remoteOverride string) error {
	publishConfiguration := environment.PublishConfiguration.Sanitize()
	remoteURL := publishConfiguration.RemoteURL
	if len(strings.TrimSpace(remoteOverride)) > 0 {
		remoteURL = remoteOverride
	}

	publishService, serviceCreationError := publish.NewService(publish.Dependencies{
		Logger:   environment.Logger,
		Executor: environment.Executor,
	})
	if serviceCreationError != nil {
		return serviceCreationError
	}

	return publishService.Publish(executionContext, publish.Options{
		ResultsFilePath: resultsFilePath,
		RemoteURL:       remoteURL,
		CommitterName:   publishConfiguration.CommitterName,
		CommitterEmail:  publishConfiguration.CommitterEmail,
	})
}

type shellStepOptions struct {
	Command string `mapstructure:"command"`
}

func buildShellOperation(options map[string]any) (Operation, error) {
	var stepOptions shellStepOptions
	if decodeError := decodeStepOptions(shellOperationNameConstant, options, &stepOptions); decodeError != nil {
		return nil, decodeError
	}
	if len(strings.TrimSpace(stepOptions.Command)) == 0 {
		return nil, errors.New(shellStepCommandRequiredMessageConstant)
	}
	return &ShellOperation{commandText: stepOptions.Command}, nil
}

// ShellOperation echoes and executes one shell command, failing the workflow
// when the command exits non-zero.
type ShellOperation struct {
	commandText string
}

// Name identifies the operation in failure messages.
func (operation *ShellOperation) Name() string {
	return shellOperationNameConstant
}

// Execute runs the configured command through the environment executor.
func (operation *ShellOperation) Execute(executionContext context.Context, environment *Environment) error {
	if environment.Executor == nil {
		return errors.New(environmentExecutorMissingMessageConstant)
	}
	return environment.Executor.RunShell(executionContext, operation.commandText)
}
