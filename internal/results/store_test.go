package results_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pdfbench/pdfbench/internal/results"
)

const (
	testExpectedResultsNameConstant  = "results-2026-08-31-12-30.json"
	testExpectedLatestNameConstant   = "results-latest.json"
	testExpectedInternalNameConstant = "internal_results-2026-08-31-12-30.json"
	testExpectedInternalLatestName   = "internal_results-latest.json"
)

func sampleDocument() results.Document {
	instant := time.Date(2026, time.August, 31, 12, 30, 0, 0, time.UTC)
	return results.Document{
		Data: []results.Measurement{
			{
				TestName:       "copy",
				ToolName:       "pymupdf",
				Path:           "sample.pdf",
				ElapsedSeconds: 1.5,
				Outcome:        results.SuccessOutcome(),
			},
		},
		ToolVersions: map[string]string{"pymupdf": "1.24.0"},
		Date:         results.NewTimestamp(instant),
	}
}

func TestStoreRequiresDirectory(testInstance *testing.T) {
	_, creationError := results.NewStore("   ")
	require.ErrorIs(testInstance, creationError, results.ErrDirectoryRequired)
}

func TestFileNames(testInstance *testing.T) {
	document := sampleDocument()

	testCases := []struct {
		name                string
		filtered            bool
		expectedResultsName string
		expectedLatestName  string
	}{
		{name: "full_run", filtered: false, expectedResultsName: testExpectedResultsNameConstant, expectedLatestName: testExpectedLatestNameConstant},
		{name: "filtered_run", filtered: true, expectedResultsName: testExpectedInternalNameConstant, expectedLatestName: testExpectedInternalLatestName},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			resultsName, latestName := results.FileNames(document, testCase.filtered)
			require.Equal(testInstance, testCase.expectedResultsName, resultsName)
			require.Equal(testInstance, testCase.expectedLatestName, latestName)
		})
	}
}

func TestStoreWriteCreatesDocumentAndSymlink(testInstance *testing.T) {
	outputDirectory := testInstance.TempDir()
	store, creationError := results.NewStore(outputDirectory)
	require.NoError(testInstance, creationError)

	writtenFiles, writeError := store.Write(sampleDocument(), false)
	require.NoError(testInstance, writeError)
	require.Equal(testInstance, testExpectedResultsNameConstant, writtenFiles.ResultsName)
	require.Equal(testInstance, testExpectedLatestNameConstant, writtenFiles.LatestName)

	writtenContent, readError := os.ReadFile(writtenFiles.ResultsPath)
	require.NoError(testInstance, readError)

	var decodedDocument results.Document
	require.NoError(testInstance, json.Unmarshal(writtenContent, &decodedDocument))
	require.Len(testInstance, decodedDocument.Data, 1)
	require.Equal(testInstance, "pymupdf", decodedDocument.Data[0].ToolName)

	symlinkTarget, symlinkError := os.Readlink(writtenFiles.LatestPath)
	require.NoError(testInstance, symlinkError)
	require.Equal(testInstance, testExpectedResultsNameConstant, symlinkTarget)
}

func TestStoreWriteRefreshesExistingSymlink(testInstance *testing.T) {
	outputDirectory := testInstance.TempDir()
	store, creationError := results.NewStore(outputDirectory)
	require.NoError(testInstance, creationError)

	staleTargetName := "results-2026-08-24-12-30.json"
	require.NoError(testInstance, os.WriteFile(filepath.Join(outputDirectory, staleTargetName), []byte("{}\n"), 0o644))
	require.NoError(testInstance, os.Symlink(staleTargetName, filepath.Join(outputDirectory, testExpectedLatestNameConstant)))

	writtenFiles, writeError := store.Write(sampleDocument(), false)
	require.NoError(testInstance, writeError)

	symlinkTarget, symlinkError := os.Readlink(writtenFiles.LatestPath)
	require.NoError(testInstance, symlinkError)
	require.Equal(testInstance, testExpectedResultsNameConstant, symlinkTarget)
}

func TestStoreWriteUsesInternalPrefixForFilteredRuns(testInstance *testing.T) {
	outputDirectory := testInstance.TempDir()
	store, creationError := results.NewStore(outputDirectory)
	require.NoError(testInstance, creationError)

	writtenFiles, writeError := store.Write(sampleDocument(), true)
	require.NoError(testInstance, writeError)
	require.Equal(testInstance, testExpectedInternalNameConstant, writtenFiles.ResultsName)
	require.Equal(testInstance, testExpectedInternalLatestName, writtenFiles.LatestName)
}

func TestEncodeEndsWithNewline(testInstance *testing.T) {
	encodedDocument, encodeError := results.Encode(sampleDocument())
	require.NoError(testInstance, encodeError)
	require.NotEmpty(testInstance, encodedDocument)
	require.Equal(testInstance, byte('\n'), encodedDocument[len(encodedDocument)-1])
}
