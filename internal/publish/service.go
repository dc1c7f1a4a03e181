package publish

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/pdfbench/pdfbench/internal/execshell"
	"github.com/pdfbench/pdfbench/internal/results"
)

// EnvironmentVariableName carries the deploy key authorizing pushes to the
// results repository.
const EnvironmentVariableName = "PYMUPDF_PERFORMANCE_RESULTS_RW"

const (
	executorMissingMessageConstant     = "publish service requires a shell executor"
	resultsFileMissingMessageConstant  = "results file path must be provided"
	remoteMissingMessageConstant       = "remote repository URL must be provided"
	skippedLogMessageConstant          = "deploy key environment variable not set, skipping publish"
	publishedLogMessageConstant        = "results published"
	logFieldRemoteConstant             = "remote"
	logFieldResultsFileConstant        = "results_file"
	logFieldEnvironmentVariableConst   = "environment_variable"
	scratchDirectoryPatternConstant    = "pdfbench-publish-"
	deployKeyFileNameConstant          = "results_deploy_key"
	deployKeyFilePermissionsConstant   = 0o600
	cloneDirectoryPermissionsConstant  = 0o755
	gitSSHCommandVariableNameConstant  = "GIT_SSH_COMMAND"
	gitSSHCommandTemplateConstant      = "ssh -i %s -o IdentitiesOnly=yes"
	gitCloneSubcommandConstant         = "clone"
	gitConfigSubcommandConstant        = "config"
	gitAddSubcommandConstant           = "add"
	gitCommitSubcommandConstant        = "commit"
	gitPushSubcommandConstant          = "push"
	gitCommitMessageFlagConstant       = "-m"
	gitUserNameConfigKeyConstant       = "user.name"
	gitUserEmailConfigKeyConstant      = "user.email"
	commitMessageTemplateConstant      = "%s: new performance results."
	gitSuffixConstant                  = ".git"
	scratchDirectoryTemplateConstant   = "failed to create publish scratch directory: %w"
	deployKeyWriteTemplateConstant     = "failed to write deploy key file: %w"
	resultsCopyReadTemplateConstant    = "failed to read results file: %w"
	resultsCopyWriteTemplateConstant   = "failed to copy results file into clone: %w"
	trailingNewlineConstant            = "\n"
	copiedResultsPermissionsConstant   = 0o644
	latestNameSeparatorConstant        = "-"
	latestNameTemplateConstant         = "%s-latest.json"
	fallbackLatestNameConstant         = "results-latest.json"
)

// ErrExecutorNotConfigured indicates the service was constructed without a shell executor.
var ErrExecutorNotConfigured = errors.New(executorMissingMessageConstant)

// ErrResultsFileRequired indicates publish was invoked without a results file.
var ErrResultsFileRequired = errors.New(resultsFileMissingMessageConstant)

// ErrRemoteRequired indicates publish was invoked without a remote repository URL.
var ErrRemoteRequired = errors.New(remoteMissingMessageConstant)

// Dependencies enumerates collaborators required by the publish service.
type Dependencies struct {
	Logger            *zap.Logger
	Executor          *execshell.ShellExecutor
	EnvironmentLookup func(string) (string, bool)
}

// Options configures one publish operation.
type Options struct {
	ResultsFilePath string
	RemoteURL       string
	CommitterName   string
	CommitterEmail  string
}

// Service clones the results repository, installs the new document alongside a
// refreshed latest symlink, and pushes the commit using the deploy key.
type Service struct {
	logger            *zap.Logger
	executor          *execshell.ShellExecutor
	environmentLookup func(string) (string, bool)
}

// NewService constructs a Service from the provided dependencies.
func NewService(dependencies Dependencies) (*Service, error) {
	if dependencies.Executor == nil {
		return nil, ErrExecutorNotConfigured
	}

	serviceLogger := dependencies.Logger
	if serviceLogger == nil {
		serviceLogger = zap.NewNop()
	}
	serviceEnvironmentLookup := dependencies.EnvironmentLookup
	if serviceEnvironmentLookup == nil {
		serviceEnvironmentLookup = os.LookupEnv
	}

	return &Service{
		logger:            serviceLogger,
		executor:          dependencies.Executor,
		environmentLookup: serviceEnvironmentLookup,
	}, nil
}

// Publish pushes the results file to the remote repository. When the deploy
// key environment variable is unset the operation logs a notice and returns
// nil, so unauthenticated runs stay successful.
func (service *Service) Publish(executionContext context.Context, options Options) error {
	deployKey, deployKeyPresent := service.environmentLookup(EnvironmentVariableName)
	if !deployKeyPresent {
		service.logger.Info(
			skippedLogMessageConstant,
			zap.String(logFieldEnvironmentVariableConst, EnvironmentVariableName),
		)
		return nil
	}

	trimmedResultsPath := strings.TrimSpace(options.ResultsFilePath)
	if len(trimmedResultsPath) == 0 {
		return ErrResultsFileRequired
	}
	trimmedRemoteURL := strings.TrimSpace(options.RemoteURL)
	if len(trimmedRemoteURL) == 0 {
		return ErrRemoteRequired
	}

	resultsContent, readError := os.ReadFile(trimmedResultsPath)
	if readError != nil {
		return fmt.Errorf(resultsCopyReadTemplateConstant, readError)
	}

	scratchDirectory, scratchError := os.MkdirTemp("", scratchDirectoryPatternConstant)
	if scratchError != nil {
		return fmt.Errorf(scratchDirectoryTemplateConstant, scratchError)
	}
	defer os.RemoveAll(scratchDirectory)

	deployKeyPath := filepath.Join(scratchDirectory, deployKeyFileNameConstant)
	if keyWriteError := writeDeployKeyFile(deployKeyPath, deployKey); keyWriteError != nil {
		return keyWriteError
	}
	defer os.Remove(deployKeyPath)

	sshEnvironment := map[string]string{
		gitSSHCommandVariableNameConstant: fmt.Sprintf(gitSSHCommandTemplateConstant, deployKeyPath),
	}

	cloneDirectory := filepath.Join(scratchDirectory, cloneDirectoryName(trimmedRemoteURL))
	if makeDirectoryError := os.MkdirAll(cloneDirectory, cloneDirectoryPermissionsConstant); makeDirectoryError != nil {
		return fmt.Errorf(scratchDirectoryTemplateConstant, makeDirectoryError)
	}
	if _, cloneError := service.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:            []string{gitCloneSubcommandConstant, trimmedRemoteURL, cloneDirectory},
		EnvironmentVariables: sshEnvironment,
	}); cloneError != nil {
		return cloneError
	}

	if configureError := service.configureCommitter(executionContext, cloneDirectory, options); configureError != nil {
		return configureError
	}

	resultsName := filepath.Base(trimmedResultsPath)
	latestName := deriveLatestName(resultsName)
	if copyError := os.WriteFile(filepath.Join(cloneDirectory, resultsName), resultsContent, copiedResultsPermissionsConstant); copyError != nil {
		return fmt.Errorf(resultsCopyWriteTemplateConstant, copyError)
	}
	if symlinkError := results.RefreshLatestSymlink(cloneDirectory, resultsName, latestName); symlinkError != nil {
		return symlinkError
	}

	if _, addError := service.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitAddSubcommandConstant, resultsName, latestName},
		WorkingDirectory: cloneDirectory,
	}); addError != nil {
		return addError
	}

	commitMessage := fmt.Sprintf(commitMessageTemplateConstant, resultsName)
	if _, commitError := service.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitCommitSubcommandConstant, gitCommitMessageFlagConstant, commitMessage},
		WorkingDirectory: cloneDirectory,
	}); commitError != nil {
		return commitError
	}

	if _, pushError := service.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:            []string{gitPushSubcommandConstant},
		WorkingDirectory:     cloneDirectory,
		EnvironmentVariables: sshEnvironment,
	}); pushError != nil {
		return pushError
	}

	service.logger.Info(
		publishedLogMessageConstant,
		zap.String(logFieldRemoteConstant, trimmedRemoteURL),
		zap.String(logFieldResultsFileConstant, resultsName),
	)
	return nil
}

func (service *Service) configureCommitter(executionContext context.Context, cloneDirectory string, options Options) error {
	committerSettings := [][2]string{
		{gitUserNameConfigKeyConstant, options.CommitterName},
		{gitUserEmailConfigKeyConstant, options.CommitterEmail},
	}
	for _, committerSetting := range committerSettings {
		if len(strings.TrimSpace(committerSetting[1])) == 0 {
			continue
		}
		if _, configError := service.executor.ExecuteGit(executionContext, execshell.CommandDetails{
			Arguments:        []string{gitConfigSubcommandConstant, committerSetting[0], committerSetting[1]},
			WorkingDirectory: cloneDirectory,
		}); configError != nil {
			return configError
		}
	}
	return nil
}

// writeDeployKeyFile creates the key file exclusively with owner-only
// permissions so a concurrent publisher cannot observe or reuse it.
func writeDeployKeyFile(deployKeyPath string, deployKey string) error {
	keyFile, openError := os.OpenFile(deployKeyPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, deployKeyFilePermissionsConstant)
	if openError != nil {
		return fmt.Errorf(deployKeyWriteTemplateConstant, openError)
	}

	keyContent := deployKey
	if !strings.HasSuffix(keyContent, trailingNewlineConstant) {
		keyContent += trailingNewlineConstant
	}
	if _, writeError := keyFile.WriteString(keyContent); writeError != nil {
		keyFile.Close()
		return fmt.Errorf(deployKeyWriteTemplateConstant, writeError)
	}
	if closeError := keyFile.Close(); closeError != nil {
		return fmt.Errorf(deployKeyWriteTemplateConstant, closeError)
	}
	return nil
}

func cloneDirectoryName(remoteURL string) string {
	trimmedRemote := strings.TrimSuffix(remoteURL, gitSuffixConstant)
	separatorIndex := strings.LastIndexAny(trimmedRemote, "/:")
	if separatorIndex >= 0 {
		trimmedRemote = trimmedRemote[separatorIndex+1:]
	}
	return trimmedRemote
}

func deriveLatestName(resultsName string) string {
	separatorIndex := strings.Index(resultsName, latestNameSeparatorConstant)
	if separatorIndex <= 0 {
		return fallbackLatestNameConstant
	}
	return fmt.Sprintf(latestNameTemplateConstant, resultsName[:separatorIndex])
}
