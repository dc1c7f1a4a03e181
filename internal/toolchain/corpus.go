package toolchain

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

const (
	globExpansionErrorTemplateConstant = "failed to expand glob %q: %w"
)

// DefaultCorpusFileNames lists the input documents measured when no explicit
// paths or globs are requested.
func DefaultCorpusFileNames() []string {
	return []string{
		"DB-Systems.pdf",
		"PyMuPDF.pdf",
		"adobe.pdf",
		"artifex-website.pdf",
		"chinese-example.pdf",
		"fontforge.pdf",
		"pandas.pdf",
		"pythonbook.pdf",
		"sample-50-MB-pdf-file.pdf",
	}
}

// ResolveInputPaths selects the input documents for a run.
//
// Explicit paths win over glob patterns; glob patterns are matched inside the
// corpus directory using doublestar semantics (`**` descends). With neither,
// the default corpus is used. The returned slice is sorted so suite ordering
// stays deterministic.
func ResolveInputPaths(corpusDirectory string, explicitPaths []string, globPatterns []string) ([]string, error) {
	trimmedCorpusDirectory := strings.TrimSpace(corpusDirectory)
	if len(trimmedCorpusDirectory) == 0 {
		trimmedCorpusDirectory = "."
	}

	selectedPaths := make([]string, 0, len(explicitPaths))
	for _, explicitPath := range explicitPaths {
		trimmedPath := strings.TrimSpace(explicitPath)
		if len(trimmedPath) > 0 {
			selectedPaths = append(selectedPaths, trimmedPath)
		}
	}
	if len(selectedPaths) > 0 {
		sort.Strings(selectedPaths)
		return selectedPaths, nil
	}

	if len(globPatterns) > 0 {
		corpusFileSystem := os.DirFS(trimmedCorpusDirectory)
		for _, globPattern := range globPatterns {
			trimmedPattern := strings.TrimSpace(globPattern)
			if len(trimmedPattern) == 0 {
				continue
			}
			matchedNames, globError := doublestar.Glob(corpusFileSystem, trimmedPattern)
			if globError != nil {
				return nil, fmt.Errorf(globExpansionErrorTemplateConstant, trimmedPattern, globError)
			}
			for _, matchedName := range matchedNames {
				selectedPaths = append(selectedPaths, filepath.Join(trimmedCorpusDirectory, matchedName))
			}
		}
		sort.Strings(selectedPaths)
		return selectedPaths, nil
	}

	for _, corpusFileName := range DefaultCorpusFileNames() {
		selectedPaths = append(selectedPaths, filepath.Join(trimmedCorpusDirectory, corpusFileName))
	}
	return selectedPaths, nil
}
