package results

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	defaultNamePrefixConstant        = "results"
	filteredNamePrefixConstant       = "internal_results"
	latestNameSuffixConstant         = "latest"
	resultsFileNameTemplateConstant  = "%s-%s.json"
	latestFileNameTemplateConstant   = "%s-%s.json"
	jsonIndentConstant               = "    "
	directoryRequiredMessageConstant = "results directory must be provided"
	encodeErrorTemplateConstant      = "failed to encode results document: %w"
	writeErrorTemplateConstant       = "failed to write results file: %w"
	symlinkErrorTemplateConstant     = "failed to refresh latest symlink: %w"
	createDirectoryTemplateConstant  = "failed to create results directory: %w"
	resultsFilePermissionsConstant   = 0o644
	resultsDirectoryPermissionsConst = 0o755
	trailingNewlineConstant          = "\n"
)

// ErrDirectoryRequired indicates the store was constructed without a directory.
var ErrDirectoryRequired = errors.New(directoryRequiredMessageConstant)

// WrittenFiles names the artifacts produced by one store write.
type WrittenFiles struct {
	ResultsPath string
	LatestPath  string
	ResultsName string
	LatestName  string
}

// Store persists results documents under timestamped names and maintains the
// `-latest` symlink pointing at the most recent document.
type Store struct {
	directory string
}

// NewStore constructs a store rooted at the provided directory.
func NewStore(directory string) (*Store, error) {
	trimmedDirectory := strings.TrimSpace(directory)
	if len(trimmedDirectory) == 0 {
		return nil, ErrDirectoryRequired
	}
	return &Store{directory: trimmedDirectory}, nil
}

// FileNames derives the timestamped results name and latest symlink name for a document.
//
// Filtered runs (restricted tests, tools, or paths, or internal checks) use a
// distinct prefix so partial documents never shadow full results.
func FileNames(document Document, filtered bool) (string, string) {
	namePrefix := defaultNamePrefixConstant
	if filtered {
		namePrefix = filteredNamePrefixConstant
	}
	resultsName := fmt.Sprintf(resultsFileNameTemplateConstant, namePrefix, document.Date.Text)
	latestName := fmt.Sprintf(latestFileNameTemplateConstant, namePrefix, latestNameSuffixConstant)
	return resultsName, latestName
}

// Encode renders the document as indented JSON with a trailing newline.
func Encode(document Document) ([]byte, error) {
	encodedDocument, encodeError := json.MarshalIndent(document, "", jsonIndentConstant)
	if encodeError != nil {
		return nil, fmt.Errorf(encodeErrorTemplateConstant, encodeError)
	}
	return append(encodedDocument, trailingNewlineConstant...), nil
}

// Write persists the document and refreshes the latest symlink.
func (store *Store) Write(document Document, filtered bool) (WrittenFiles, error) {
	if makeDirectoryError := os.MkdirAll(store.directory, resultsDirectoryPermissionsConst); makeDirectoryError != nil {
		return WrittenFiles{}, fmt.Errorf(createDirectoryTemplateConstant, makeDirectoryError)
	}

	resultsName, latestName := FileNames(document, filtered)
	resultsPath := filepath.Join(store.directory, resultsName)
	latestPath := filepath.Join(store.directory, latestName)

	encodedDocument, encodeError := Encode(document)
	if encodeError != nil {
		return WrittenFiles{}, encodeError
	}

	if writeError := os.WriteFile(resultsPath, encodedDocument, resultsFilePermissionsConstant); writeError != nil {
		return WrittenFiles{}, fmt.Errorf(writeErrorTemplateConstant, writeError)
	}

	if refreshError := RefreshLatestSymlink(store.directory, resultsName, latestName); refreshError != nil {
		return WrittenFiles{}, refreshError
	}

	return WrittenFiles{
		ResultsPath: resultsPath,
		LatestPath:  latestPath,
		ResultsName: resultsName,
		LatestName:  latestName,
	}, nil
}

// RefreshLatestSymlink replaces the latest symlink inside directory so it points at resultsName.
func RefreshLatestSymlink(directory string, resultsName string, latestName string) error {
	latestPath := filepath.Join(directory, latestName)
	if removeError := os.Remove(latestPath); removeError != nil && !errors.Is(removeError, os.ErrNotExist) {
		return fmt.Errorf(symlinkErrorTemplateConstant, removeError)
	}
	if symlinkError := os.Symlink(resultsName, latestPath); symlinkError != nil {
		return fmt.Errorf(symlinkErrorTemplateConstant, symlinkError)
	}
	return nil
}
