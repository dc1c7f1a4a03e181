package publish

import "strings"

const (
	defaultRemoteURLConstant      = "git@github.com:ArtifexSoftware/PyMuPDF-performance-results.git"
	defaultCommitterNameConstant  = "pdfbench"
	defaultCommitterEmailConstant = "pdfbench@localhost"

	remoteURLConfigKeySuffixConstant      = ".remote_url"
	committerNameConfigKeySuffixConstant  = ".committer_name"
	committerEmailConfigKeySuffixConstant = ".committer_email"
)

// CommandConfiguration stores persisted settings for the publish command.
type CommandConfiguration struct {
	RemoteURL      string `mapstructure:"remote_url"`
	CommitterName  string `mapstructure:"committer_name"`
	CommitterEmail string `mapstructure:"committer_email"`
}

// DefaultCommandConfiguration returns the built-in publish settings.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		RemoteURL:      defaultRemoteURLConstant,
		CommitterName:  defaultCommitterNameConstant,
		CommitterEmail: defaultCommitterEmailConstant,
	}
}

// Sanitize normalizes configured values, substituting defaults for blanks.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitizedConfiguration := configuration
	sanitizedConfiguration.RemoteURL = strings.TrimSpace(sanitizedConfiguration.RemoteURL)
	if len(sanitizedConfiguration.RemoteURL) == 0 {
		sanitizedConfiguration.RemoteURL = defaultRemoteURLConstant
	}
	sanitizedConfiguration.CommitterName = strings.TrimSpace(sanitizedConfiguration.CommitterName)
	if len(sanitizedConfiguration.CommitterName) == 0 {
		sanitizedConfiguration.CommitterName = defaultCommitterNameConstant
	}
	sanitizedConfiguration.CommitterEmail = strings.TrimSpace(sanitizedConfiguration.CommitterEmail)
	if len(sanitizedConfiguration.CommitterEmail) == 0 {
		sanitizedConfiguration.CommitterEmail = defaultCommitterEmailConstant
	}
	return sanitizedConfiguration
}

// DefaultConfigurationValues exposes publish defaults for configuration loading under configurationKeyPrefix.
func DefaultConfigurationValues(configurationKeyPrefix string) map[string]any {
	return map[string]any{
		configurationKeyPrefix + remoteURLConfigKeySuffixConstant:      defaultRemoteURLConstant,
		configurationKeyPrefix + committerNameConfigKeySuffixConstant:  defaultCommitterNameConstant,
		configurationKeyPrefix + committerEmailConfigKeySuffixConstant: defaultCommitterEmailConstant,
	}
}
