package results_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pdfbench/pdfbench/internal/platforminfo"
	"github.com/pdfbench/pdfbench/internal/results"
)

const (
	testTimeoutEncodingConstant      = `"timeout"`
	testErrorDescriptionConstant     = "python3 could not be executed"
	testDatestampTextConstant        = "2026-08-31-12-30"
	testMeasurementEncodingConstant  = `{"testname":"copy","toolname":"pymupdf","path":"sample.pdf","t":1.5,"e":0}`
	testFailedMeasurementEncoding    = `{"testname":"render","toolname":"poppler","path":"sample.pdf","t":2.25,"e":1}`
	testTimeoutMeasurementEncoding   = `{"testname":"text","toolname":"pdfminer","path":"sample.pdf","t":300,"e":"timeout"}`
	testMeasurementElapsedConstant   = 1.5
	testFailedElapsedSecondsConstant = 2.25
)

func TestOutcomeJSONEncoding(testInstance *testing.T) {
	testCases := []struct {
		name            string
		outcome         results.Outcome
		expectedEncoded string
	}{
		{name: "success", outcome: results.SuccessOutcome(), expectedEncoded: "0"},
		{name: "timeout", outcome: results.TimeoutOutcome(), expectedEncoded: testTimeoutEncodingConstant},
		{name: "exit_code", outcome: results.ExitCodeOutcome(3), expectedEncoded: "3"},
		{name: "error", outcome: results.ErrorOutcome(testErrorDescriptionConstant), expectedEncoded: `"` + testErrorDescriptionConstant + `"`},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			encodedOutcome, encodeError := json.Marshal(testCase.outcome)
			require.NoError(testInstance, encodeError)
			require.Equal(testInstance, testCase.expectedEncoded, string(encodedOutcome))

			var decodedOutcome results.Outcome
			require.NoError(testInstance, json.Unmarshal(encodedOutcome, &decodedOutcome))
			require.Equal(testInstance, testCase.outcome, decodedOutcome)
		})
	}
}

func TestOutcomeSucceeded(testInstance *testing.T) {
	require.True(testInstance, results.SuccessOutcome().Succeeded())
	require.False(testInstance, results.TimeoutOutcome().Succeeded())
	require.False(testInstance, results.ExitCodeOutcome(1).Succeeded())
	require.False(testInstance, results.ErrorOutcome(testErrorDescriptionConstant).Succeeded())
}

func TestMeasurementJSONFieldNames(testInstance *testing.T) {
	testCases := []struct {
		name            string
		measurement     results.Measurement
		expectedEncoded string
	}{
		{
			name: "success_case",
			measurement: results.Measurement{
				TestName:       "copy",
				ToolName:       "pymupdf",
				Path:           "sample.pdf",
				ElapsedSeconds: testMeasurementElapsedConstant,
				Outcome:        results.SuccessOutcome(),
			},
			expectedEncoded: testMeasurementEncodingConstant,
		},
		{
			name: "failed_case",
			measurement: results.Measurement{
				TestName:       "render",
				ToolName:       "poppler",
				Path:           "sample.pdf",
				ElapsedSeconds: testFailedElapsedSecondsConstant,
				Outcome:        results.ExitCodeOutcome(1),
			},
			expectedEncoded: testFailedMeasurementEncoding,
		},
		{
			name: "timeout_case",
			measurement: results.Measurement{
				TestName:       "text",
				ToolName:       "pdfminer",
				Path:           "sample.pdf",
				ElapsedSeconds: 300,
				Outcome:        results.TimeoutOutcome(),
			},
			expectedEncoded: testTimeoutMeasurementEncoding,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			encodedMeasurement, encodeError := json.Marshal(testCase.measurement)
			require.NoError(testInstance, encodeError)
			require.JSONEq(testInstance, testCase.expectedEncoded, string(encodedMeasurement))
		})
	}
}

func TestDocumentEncodesKeysInSortedOrder(testInstance *testing.T) {
	document := results.Document{
		Data: []results.Measurement{{
			TestName:       "copy",
			ToolName:       "pymupdf",
			Path:           "sample.pdf",
			ElapsedSeconds: testMeasurementElapsedConstant,
			Outcome:        results.SuccessOutcome(),
		}},
		Date:         results.NewTimestamp(time.Date(2026, time.August, 31, 12, 30, 0, 0, time.UTC)),
		Platform:     platforminfo.Collect(),
		ToolVersions: map[string]string{"pymupdf": "1.24.0", "poppler": "23.04.0"},
	}

	encodedDocument, encodeError := results.Encode(document)
	require.NoError(testInstance, encodeError)
	encodedText := string(encodedDocument)

	documentKeyGroups := [][]string{
		{`"data"`, `"date"`, `"platform"`, `"toolversions"`},
		{`"e":`, `"path":`, `"t":`, `"testname":`, `"toolname":`},
		{`"machine"`, `"node"`, `"processor_count"`, `"runtime_version"`, `"system"`},
		{`"poppler"`, `"pymupdf":`},
	}
	for _, keyGroup := range documentKeyGroups {
		previousPosition := -1
		for _, documentKey := range keyGroup {
			keyPosition := strings.Index(encodedText, documentKey)
			require.GreaterOrEqual(testInstance, keyPosition, 0, documentKey)
			require.Greater(testInstance, keyPosition, previousPosition, documentKey)
			previousPosition = keyPosition
		}
	}
}

func TestNewTimestamp(testInstance *testing.T) {
	instant := time.Date(2026, time.August, 31, 12, 30, 45, 0, time.UTC)
	timestamp := results.NewTimestamp(instant)

	require.Equal(testInstance, testDatestampTextConstant, timestamp.Text)
	require.InDelta(testInstance, float64(instant.Unix()), timestamp.Seconds, 1.0)
}

func TestNewTimestampNormalizesToUTC(testInstance *testing.T) {
	easternZone := time.FixedZone("UTC-5", -5*60*60)
	localInstant := time.Date(2026, time.August, 31, 7, 30, 0, 0, easternZone)

	timestamp := results.NewTimestamp(localInstant)
	require.Equal(testInstance, testDatestampTextConstant, timestamp.Text)
}
