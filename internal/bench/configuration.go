package bench

import "strings"

const (
	defaultCorpusDirectoryConstant    = "."
	defaultOutputDirectoryConstant    = "."
	defaultCaseTimeoutSecondsConstant = 300

	corpusDirectoryConfigKeySuffixConstant    = ".corpus_dir"
	outputDirectoryConfigKeySuffixConstant    = ".output_dir"
	caseTimeoutSecondsConfigKeySuffixConstant = ".case_timeout_seconds"
)

// CommandConfiguration stores persisted settings for the bench command.
type CommandConfiguration struct {
	CorpusDirectory    string `mapstructure:"corpus_dir"`
	OutputDirectory    string `mapstructure:"output_dir"`
	CaseTimeoutSeconds int    `mapstructure:"case_timeout_seconds"`
}

// DefaultCommandConfiguration returns the built-in bench settings.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		CorpusDirectory:    defaultCorpusDirectoryConstant,
		OutputDirectory:    defaultOutputDirectoryConstant,
		CaseTimeoutSeconds: defaultCaseTimeoutSecondsConstant,
	}
}

// Sanitize normalizes configured values, substituting defaults for blanks.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitizedConfiguration := configuration
	sanitizedConfiguration.CorpusDirectory = strings.TrimSpace(sanitizedConfiguration.CorpusDirectory)
	if len(sanitizedConfiguration.CorpusDirectory) == 0 {
		sanitizedConfiguration.CorpusDirectory = defaultCorpusDirectoryConstant
	}
	sanitizedConfiguration.OutputDirectory = strings.TrimSpace(sanitizedConfiguration.OutputDirectory)
	if len(sanitizedConfiguration.OutputDirectory) == 0 {
		sanitizedConfiguration.OutputDirectory = defaultOutputDirectoryConstant
	}
	if sanitizedConfiguration.CaseTimeoutSeconds < 0 {
		sanitizedConfiguration.CaseTimeoutSeconds = defaultCaseTimeoutSecondsConstant
	}
	return sanitizedConfiguration
}

// DefaultConfigurationValues exposes bench defaults for configuration loading under configurationKeyPrefix.
func DefaultConfigurationValues(configurationKeyPrefix string) map[string]any {
	return map[string]any{
		configurationKeyPrefix + corpusDirectoryConfigKeySuffixConstant:    defaultCorpusDirectoryConstant,
		configurationKeyPrefix + outputDirectoryConfigKeySuffixConstant:    defaultOutputDirectoryConstant,
		configurationKeyPrefix + caseTimeoutSecondsConfigKeySuffixConstant: defaultCaseTimeoutSecondsConstant,
	}
}
