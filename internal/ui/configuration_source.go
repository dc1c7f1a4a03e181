package ui

import (
	"context"

	"go.uber.org/zap"

	"github.com/pdfbench/pdfbench/internal/utils"
)

const (
	configurationSourceLogMessageConstant = "using configuration file"
	configurationFileLogFieldConstant     = "configuration_file"
)

// ReportConfigurationSource logs the configuration file the root command
// recorded in the execution context, so subcommand logs name the file their
// settings came from. Runs without a configuration file log nothing.
func ReportConfigurationSource(executionContext context.Context, logger *zap.Logger) {
	if logger == nil {
		return
	}
	configurationFilePath, pathRecorded := utils.NewCommandContextAccessor().ConfigurationFilePath(executionContext)
	if !pathRecorded {
		return
	}
	logger.Debug(configurationSourceLogMessageConstant, zap.String(configurationFileLogFieldConstant, configurationFilePath))
}
