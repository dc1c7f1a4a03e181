package utils_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pdfbench/pdfbench/internal/utils"
)

func TestLoggerFactoryCreateLogger(testInstance *testing.T) {
	loggerFactory := utils.NewLoggerFactory()

	testCases := []struct {
		name        string
		logLevel    utils.LogLevel
		logFormat   utils.LogFormat
		expectError bool
	}{
		{name: "structured_info", logLevel: utils.LogLevelInfo, logFormat: utils.LogFormatStructured},
		{name: "console_debug", logLevel: utils.LogLevelDebug, logFormat: utils.LogFormatConsole},
		{name: "structured_error", logLevel: utils.LogLevelError, logFormat: utils.LogFormatStructured},
		{name: "unknown_level", logLevel: utils.LogLevel("verbose"), logFormat: utils.LogFormatStructured, expectError: true},
		{name: "unknown_format", logLevel: utils.LogLevelInfo, logFormat: utils.LogFormat("plain"), expectError: true},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			createdLogger, creationError := loggerFactory.CreateLogger(testCase.logLevel, testCase.logFormat)
			if testCase.expectError {
				require.Error(testInstance, creationError)
				require.Nil(testInstance, createdLogger)
				return
			}
			require.NoError(testInstance, creationError)
			require.NotNil(testInstance, createdLogger)
		})
	}
}

func TestLoggerFactoryWritesToConfiguredOutput(testInstance *testing.T) {
	const loggedMessageConstant = "Running: sh -c python main.py"

	testCases := []struct {
		name            string
		logFormat       utils.LogFormat
		expectedContent string
	}{
		{name: "structured_json_line", logFormat: utils.LogFormatStructured, expectedContent: `"msg":"` + loggedMessageConstant + `"`},
		{name: "console_plain_line", logFormat: utils.LogFormatConsole, expectedContent: loggedMessageConstant},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			var outputBuffer bytes.Buffer
			loggerFactory := utils.NewLoggerFactoryWithOutput(&outputBuffer)

			createdLogger, creationError := loggerFactory.CreateLogger(utils.LogLevelInfo, testCase.logFormat)
			require.NoError(testInstance, creationError)

			createdLogger.Info(loggedMessageConstant)

			writtenOutput := outputBuffer.String()
			require.Contains(testInstance, writtenOutput, testCase.expectedContent)
			require.True(testInstance, strings.HasSuffix(writtenOutput, "\n"))
		})
	}
}
