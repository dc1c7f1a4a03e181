package utils_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pdfbench/pdfbench/internal/utils"
)

const (
	testConfigurationNameConstant   = "config"
	testConfigurationTypeConstant   = "yaml"
	testEnvironmentPrefixConstant   = "PDFBENCHTEST"
	testLogLevelDefaultConstant     = "info"
	testLogLevelFileConstant        = "warn"
	testLogLevelEnvironmentConstant = "debug"
	testConfigurationFileConstant   = "config.yaml"
	testConfigurationContent        = "common:\n    log_level: warn\n"
	testEmbeddedConfiguration       = "common:\n    log_format: console\n"
	testLogLevelEnvironmentVariable = "PDFBENCHTEST_COMMON_LOG_LEVEL"
)

type loaderTestConfiguration struct {
	Common struct {
		LogLevel  string `mapstructure:"log_level"`
		LogFormat string `mapstructure:"log_format"`
	} `mapstructure:"common"`
}

func defaultLoaderValues() map[string]any {
	return map[string]any{
		"common.log_level":  testLogLevelDefaultConstant,
		"common.log_format": "structured",
	}
}

func TestConfigurationLoaderAppliesDefaults(testInstance *testing.T) {
	loader := utils.NewConfigurationLoader(testConfigurationNameConstant, testConfigurationTypeConstant, testEnvironmentPrefixConstant, []string{testInstance.TempDir()})

	var configuration loaderTestConfiguration
	_, loadError := loader.LoadConfiguration("", defaultLoaderValues(), &configuration)
	require.NoError(testInstance, loadError)
	require.Equal(testInstance, testLogLevelDefaultConstant, configuration.Common.LogLevel)
}

func TestConfigurationLoaderReadsConfigurationFiles(testInstance *testing.T) {
	configurationDirectory := testInstance.TempDir()
	configurationFilePath := filepath.Join(configurationDirectory, testConfigurationFileConstant)
	require.NoError(testInstance, os.WriteFile(configurationFilePath, []byte(testConfigurationContent), 0o644))

	loader := utils.NewConfigurationLoader(testConfigurationNameConstant, testConfigurationTypeConstant, testEnvironmentPrefixConstant, []string{configurationDirectory})

	var configuration loaderTestConfiguration
	loadedConfiguration, loadError := loader.LoadConfiguration(configurationFilePath, defaultLoaderValues(), &configuration)
	require.NoError(testInstance, loadError)
	require.Equal(testInstance, testLogLevelFileConstant, configuration.Common.LogLevel)
	require.Equal(testInstance, configurationFilePath, loadedConfiguration.ConfigFileUsed)
}

func TestConfigurationLoaderMergesEmbeddedConfiguration(testInstance *testing.T) {
	loader := utils.NewConfigurationLoader(testConfigurationNameConstant, testConfigurationTypeConstant, testEnvironmentPrefixConstant, []string{testInstance.TempDir()})
	loader.SetEmbeddedConfiguration([]byte(testEmbeddedConfiguration), testConfigurationTypeConstant)

	var configuration loaderTestConfiguration
	_, loadError := loader.LoadConfiguration("", defaultLoaderValues(), &configuration)
	require.NoError(testInstance, loadError)
	require.Equal(testInstance, "console", configuration.Common.LogFormat)
	require.Equal(testInstance, testLogLevelDefaultConstant, configuration.Common.LogLevel)
}

func TestConfigurationLoaderHonorsEnvironmentOverrides(testInstance *testing.T) {
	testInstance.Setenv(testLogLevelEnvironmentVariable, testLogLevelEnvironmentConstant)

	loader := utils.NewConfigurationLoader(testConfigurationNameConstant, testConfigurationTypeConstant, testEnvironmentPrefixConstant, []string{testInstance.TempDir()})

	var configuration loaderTestConfiguration
	_, loadError := loader.LoadConfiguration("", defaultLoaderValues(), &configuration)
	require.NoError(testInstance, loadError)
	require.Equal(testInstance, testLogLevelEnvironmentConstant, configuration.Common.LogLevel)
}
