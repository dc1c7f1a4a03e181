package bench

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pdfbench/pdfbench/internal/execshell"
	"github.com/pdfbench/pdfbench/internal/platforminfo"
	"github.com/pdfbench/pdfbench/internal/results"
	"github.com/pdfbench/pdfbench/internal/toolchain"
)

const (
	executorMissingMessageConstant       = "benchmark service requires a shell executor"
	registryMissingMessageConstant       = "benchmark service requires a tool registry"
	unknownTestMessageTemplateConstant   = "unknown test name: %s"
	unknownToolMessageTemplateConstant   = "unknown tool name: %s"
	noInputPathsMessageConstant          = "no input documents selected"
	caseLogMessageConstant               = "benchmark case"
	caseCompletedLogMessageConstant      = "benchmark case completed"
	versionProbeFailedLogMessageConstant = "version probe failed"
	logFieldTestNameConstant             = "testname"
	logFieldToolNameConstant             = "toolname"
	logFieldPathConstant                 = "path"
	logFieldCaseIndexConstant            = "case_index"
	logFieldCaseTotalConstant            = "case_total"
	logFieldElapsedSecondsConstant       = "elapsed_seconds"
	logFieldOutcomeConstant              = "outcome"
	internalCheckElapsedSecondsConstant  = 1.0
	internalCheckVersionLabelConstant    = "unchecked"
	outcomeSuccessLabelConstant          = "success"
	outcomeTimeoutLabelConstant          = "timeout"
	outcomeExitCodeLabelTemplateConstant = "exit code %d"
)

// ErrExecutorNotConfigured indicates the service was constructed without a shell executor.
var ErrExecutorNotConfigured = errors.New(executorMissingMessageConstant)

// ErrRegistryNotConfigured indicates the service was constructed without a tool registry.
var ErrRegistryNotConfigured = errors.New(registryMissingMessageConstant)

// ErrNoInputPaths indicates path resolution selected no documents.
var ErrNoInputPaths = errors.New(noInputPathsMessageConstant)

// Dependencies enumerates collaborators required by the benchmark service.
type Dependencies struct {
	Logger   *zap.Logger
	Executor *execshell.ShellExecutor
	Registry *toolchain.Registry
	Clock    func() time.Time
}

// Options configures one benchmark run. Empty Tests, Tools, and path
// selectors mean "everything the registry and default corpus offer".
type Options struct {
	Tests           []string
	Tools           []string
	Paths           []string
	Globs           []string
	CorpusDirectory string
	CaseTimeout     time.Duration
	InternalCheck   bool
}

// Filtered reports whether the run measures less than the full matrix, which
// switches the results document to the internal name prefix.
func (options Options) Filtered() bool {
	return len(options.Tests) > 0 || len(options.Tools) > 0 || len(options.Paths) > 0 || len(options.Globs) > 0 || options.InternalCheck
}

// Service coordinates benchmark suite execution.
type Service struct {
	logger   *zap.Logger
	executor *execshell.ShellExecutor
	registry *toolchain.Registry
	clock    func() time.Time
}

// NewService constructs a Service from the provided dependencies.
func NewService(dependencies Dependencies) (*Service, error) {
	if dependencies.Executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	if dependencies.Registry == nil {
		return nil, ErrRegistryNotConfigured
	}

	serviceLogger := dependencies.Logger
	if serviceLogger == nil {
		serviceLogger = zap.NewNop()
	}
	serviceClock := dependencies.Clock
	if serviceClock == nil {
		serviceClock = time.Now
	}

	return &Service{
		logger:   serviceLogger,
		executor: dependencies.Executor,
		registry: dependencies.Registry,
		clock:    serviceClock,
	}, nil
}

type benchmarkCase struct {
	testName toolchain.TestName
	toolName string
	path     string
	command  execshell.ShellCommand
}

// Run executes the benchmark suite and assembles the results document.
func (service *Service) Run(executionContext context.Context, options Options) (results.Document, error) {
	selectedTests, testsError := service.resolveTests(options.Tests)
	if testsError != nil {
		return results.Document{}, testsError
	}

	selectedTools, toolsError := service.resolveTools(options.Tools)
	if toolsError != nil {
		return results.Document{}, toolsError
	}

	selectedPaths, pathsError := toolchain.ResolveInputPaths(options.CorpusDirectory, options.Paths, options.Globs)
	if pathsError != nil {
		return results.Document{}, pathsError
	}
	if len(selectedPaths) == 0 {
		return results.Document{}, ErrNoInputPaths
	}

	document := results.Document{
		ToolVersions: service.probeToolVersions(executionContext, selectedTools, options.InternalCheck),
		Platform:     platforminfo.Collect(),
		Date:         results.NewTimestamp(service.clock()),
	}

	suiteCases := service.expandCases(selectedTests, selectedTools, selectedPaths)
	for caseIndex, suiteCase := range suiteCases {
		service.logger.Info(
			caseLogMessageConstant,
			zap.String(logFieldTestNameConstant, string(suiteCase.testName)),
			zap.String(logFieldToolNameConstant, suiteCase.toolName),
			zap.String(logFieldPathConstant, suiteCase.path),
			zap.Int(logFieldCaseIndexConstant, caseIndex+1),
			zap.Int(logFieldCaseTotalConstant, len(suiteCases)),
		)

		elapsedSeconds := internalCheckElapsedSecondsConstant
		caseOutcome := results.SuccessOutcome()
		if !options.InternalCheck {
			elapsedSeconds, caseOutcome = service.runCase(executionContext, suiteCase.command, options.CaseTimeout)
		}

		service.logger.Info(
			caseCompletedLogMessageConstant,
			zap.String(logFieldTestNameConstant, string(suiteCase.testName)),
			zap.String(logFieldToolNameConstant, suiteCase.toolName),
			zap.String(logFieldPathConstant, suiteCase.path),
			zap.Float64(logFieldElapsedSecondsConstant, elapsedSeconds),
			zap.String(logFieldOutcomeConstant, describeOutcome(caseOutcome)),
		)

		document.Data = append(document.Data, results.Measurement{
			TestName:       string(suiteCase.testName),
			ToolName:       suiteCase.toolName,
			Path:           suiteCase.path,
			ElapsedSeconds: elapsedSeconds,
			Outcome:        caseOutcome,
		})
	}

	return document, nil
}

func (service *Service) resolveTests(requestedTests []string) ([]toolchain.TestName, error) {
	if len(requestedTests) == 0 {
		return service.registry.TestNames(), nil
	}

	knownTests := map[toolchain.TestName]struct{}{}
	for _, knownTest := range service.registry.TestNames() {
		knownTests[knownTest] = struct{}{}
	}

	selectedTests := make([]toolchain.TestName, 0, len(requestedTests))
	for _, requestedTest := range requestedTests {
		trimmedTest := toolchain.TestName(strings.TrimSpace(requestedTest))
		if _, known := knownTests[trimmedTest]; !known {
			return nil, fmt.Errorf(unknownTestMessageTemplateConstant, requestedTest)
		}
		selectedTests = append(selectedTests, trimmedTest)
	}
	return selectedTests, nil
}

func (service *Service) resolveTools(requestedTools []string) ([]string, error) {
	if len(requestedTools) == 0 {
		return service.registry.ToolNames(), nil
	}

	selectedTools := make([]string, 0, len(requestedTools))
	for _, requestedTool := range requestedTools {
		trimmedTool := strings.TrimSpace(requestedTool)
		if _, known := service.registry.Tool(trimmedTool); !known {
			return nil, fmt.Errorf(unknownToolMessageTemplateConstant, requestedTool)
		}
		selectedTools = append(selectedTools, trimmedTool)
	}
	return selectedTools, nil
}

func (service *Service) probeToolVersions(executionContext context.Context, toolNames []string, internalCheck bool) map[string]string {
	toolVersions := make(map[string]string, len(toolNames))
	for _, toolName := range toolNames {
		if internalCheck {
			toolVersions[toolName] = internalCheckVersionLabelConstant
			continue
		}

		registeredTool, _ := service.registry.Tool(toolName)
		probeResult, probeError := service.executor.Execute(executionContext, registeredTool.VersionProbe)
		if probeError != nil {
			service.logger.Warn(
				versionProbeFailedLogMessageConstant,
				zap.String(logFieldToolNameConstant, toolName),
				zap.Error(probeError),
			)
			toolVersions[toolName] = probeError.Error()
			continue
		}
		toolVersions[toolName] = strings.TrimSpace(probeResult.StandardOutput + probeResult.StandardError)
	}
	return toolVersions
}

func (service *Service) expandCases(selectedTests []toolchain.TestName, selectedTools []string, selectedPaths []string) []benchmarkCase {
	suiteCases := make([]benchmarkCase, 0, len(selectedTests)*len(selectedTools)*len(selectedPaths))
	for _, selectedTest := range selectedTests {
		for _, selectedPath := range selectedPaths {
			for _, selectedTool := range selectedTools {
				registeredTool, _ := service.registry.Tool(selectedTool)
				caseCommand, supported := registeredTool.Invocation(selectedTest, selectedPath)
				if !supported {
					continue
				}
				suiteCases = append(suiteCases, benchmarkCase{
					testName: selectedTest,
					toolName: selectedTool,
					path:     selectedPath,
					command:  caseCommand,
				})
			}
		}
	}
	return suiteCases
}

func (service *Service) runCase(executionContext context.Context, caseCommand execshell.ShellCommand, caseTimeout time.Duration) (float64, results.Outcome) {
	caseContext := executionContext
	cancelCase := func() {}
	if caseTimeout > 0 {
		caseContext, cancelCase = context.WithTimeout(executionContext, caseTimeout)
	}
	defer cancelCase()

	caseStart := service.clock()
	_, executionError := service.executor.Execute(caseContext, caseCommand)
	elapsedSeconds := service.clock().Sub(caseStart).Seconds()

	return elapsedSeconds, classifyCaseError(caseContext, executionError)
}

func classifyCaseError(caseContext context.Context, executionError error) results.Outcome {
	if executionError == nil {
		return results.SuccessOutcome()
	}

	var failedError execshell.CommandFailedError
	if errors.As(executionError, &failedError) {
		if errors.Is(caseContext.Err(), context.DeadlineExceeded) {
			return results.TimeoutOutcome()
		}
		return results.ExitCodeOutcome(failedError.Result.ExitCode)
	}

	if errors.Is(caseContext.Err(), context.DeadlineExceeded) {
		return results.TimeoutOutcome()
	}
	return results.ErrorOutcome(executionError.Error())
}

func describeOutcome(caseOutcome results.Outcome) string {
	switch caseOutcome.Kind {
	case results.OutcomeKindSuccess:
		return outcomeSuccessLabelConstant
	case results.OutcomeKindTimeout:
		return outcomeTimeoutLabelConstant
	case results.OutcomeKindExitCode:
		return fmt.Sprintf(outcomeExitCodeLabelTemplateConstant, caseOutcome.ExitCode)
	default:
		return caseOutcome.Description
	}
}
