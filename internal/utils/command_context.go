package utils

import "context"

// commandContextKey keeps context values private to this package so commands
// can only reach them through the accessor.
type commandContextKey int

const configurationFilePathContextKey commandContextKey = iota

// CommandContextAccessor shares run metadata between the root command and its
// subcommands through the command execution context. The root command records
// the configuration file backing the run; subcommands read it back when
// reporting their configuration source.
type CommandContextAccessor struct{}

// NewCommandContextAccessor constructs a CommandContextAccessor instance.
func NewCommandContextAccessor() CommandContextAccessor {
	return CommandContextAccessor{}
}

// WithConfigurationFilePath records the configuration file backing the current run.
func (accessor CommandContextAccessor) WithConfigurationFilePath(parentContext context.Context, configurationFilePath string) context.Context {
	if parentContext == nil {
		parentContext = context.Background()
	}
	return context.WithValue(parentContext, configurationFilePathContextKey, configurationFilePath)
}

// ConfigurationFilePath reports the configuration file recorded for the
// current run, when one was loaded.
func (accessor CommandContextAccessor) ConfigurationFilePath(executionContext context.Context) (string, bool) {
	if executionContext == nil {
		return "", false
	}
	configurationFilePath, pathRecorded := executionContext.Value(configurationFilePathContextKey).(string)
	if !pathRecorded || len(configurationFilePath) == 0 {
		return "", false
	}
	return configurationFilePath, true
}
