package ui_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pdfbench/pdfbench/internal/ui"
	"github.com/pdfbench/pdfbench/internal/utils"
)

const testRecordedConfigurationPathConstant = "/etc/pdfbench/config.yaml"

func TestReportConfigurationSource(testInstance *testing.T) {
	testCases := []struct {
		name              string
		executionContext  context.Context
		expectLoggedEntry bool
	}{
		{
			name: "recorded_path_logged",
			executionContext: utils.NewCommandContextAccessor().WithConfigurationFilePath(
				context.Background(), testRecordedConfigurationPathConstant,
			),
			expectLoggedEntry: true,
		},
		{
			name:              "missing_path_silent",
			executionContext:  context.Background(),
			expectLoggedEntry: false,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			observedCore, observedLogs := observer.New(zapcore.DebugLevel)

			ui.ReportConfigurationSource(testCase.executionContext, zap.New(observedCore))

			if !testCase.expectLoggedEntry {
				require.Zero(testInstance, observedLogs.Len())
				return
			}
			require.Equal(testInstance, 1, observedLogs.Len())
			loggedEntry := observedLogs.All()[0]
			require.Equal(testInstance, "using configuration file", loggedEntry.Message)
			require.Equal(testInstance, testRecordedConfigurationPathConstant, loggedEntry.ContextMap()["configuration_file"])
		})
	}
}

func TestReportConfigurationSourceToleratesNilLogger(testInstance *testing.T) {
	ui.ReportConfigurationSource(context.Background(), nil)
}
