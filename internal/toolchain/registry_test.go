package toolchain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pdfbench/pdfbench/internal/toolchain"
)

const (
	testDocumentPathConstant = "corpus/sample.pdf"
	testUnknownToolConstant  = "ghostscript"
)

func TestDefaultRegistryToolNames(testInstance *testing.T) {
	registry := toolchain.NewDefaultRegistry()

	expectedToolNames := []string{"pdfminer", "poppler", "pymupdf", "pypdf", "pypdfium2"}
	require.Equal(testInstance, expectedToolNames, registry.ToolNames())
}

func TestDefaultRegistryTestNames(testInstance *testing.T) {
	registry := toolchain.NewDefaultRegistry()

	expectedTestNames := []toolchain.TestName{toolchain.TestNameCopy, toolchain.TestNameRender, toolchain.TestNameText}
	require.Equal(testInstance, expectedTestNames, registry.TestNames())
}

func TestDefaultRegistryUnknownToolLookup(testInstance *testing.T) {
	registry := toolchain.NewDefaultRegistry()

	_, exists := registry.Tool(testUnknownToolConstant)
	require.False(testInstance, exists)
}

func TestRegistryPythonPackages(testInstance *testing.T) {
	registry := toolchain.NewDefaultRegistry()

	testCases := []struct {
		name             string
		toolNames        []string
		expectedPackages []string
		expectError      bool
	}{
		{
			name:             "all_registered_tools",
			toolNames:        nil,
			expectedPackages: []string{"pdfminer.six", "pymupdf", "pypdf", "pypdfium2"},
		},
		{
			name:             "subset_sorted_and_deduplicated",
			toolNames:        []string{"pypdf", "pymupdf", " pypdf "},
			expectedPackages: []string{"pymupdf", "pypdf"},
		},
		{
			name:             "system_backed_tool_contributes_nothing",
			toolNames:        []string{"poppler"},
			expectedPackages: []string{},
		},
		{
			name:        "unknown_tool",
			toolNames:   []string{testUnknownToolConstant},
			expectError: true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			packageNames, packagesError := registry.PythonPackages(testCase.toolNames)
			if testCase.expectError {
				require.Error(testInstance, packagesError)
				return
			}
			require.NoError(testInstance, packagesError)
			require.Equal(testInstance, testCase.expectedPackages, packageNames)
		})
	}
}

func TestToolTestSupportMatrix(testInstance *testing.T) {
	registry := toolchain.NewDefaultRegistry()

	testCases := []struct {
		toolName       string
		supportedTests map[toolchain.TestName]bool
	}{
		{
			toolName: "pymupdf",
			supportedTests: map[toolchain.TestName]bool{
				toolchain.TestNameCopy:   true,
				toolchain.TestNameRender: true,
				toolchain.TestNameText:   true,
			},
		},
		{
			toolName: "poppler",
			supportedTests: map[toolchain.TestName]bool{
				toolchain.TestNameCopy:   false,
				toolchain.TestNameRender: true,
				toolchain.TestNameText:   true,
			},
		},
		{
			toolName: "pdfminer",
			supportedTests: map[toolchain.TestName]bool{
				toolchain.TestNameCopy:   false,
				toolchain.TestNameRender: false,
				toolchain.TestNameText:   true,
			},
		},
		{
			toolName: "pypdf",
			supportedTests: map[toolchain.TestName]bool{
				toolchain.TestNameCopy:   true,
				toolchain.TestNameRender: false,
				toolchain.TestNameText:   true,
			},
		},
		{
			toolName: "pypdfium2",
			supportedTests: map[toolchain.TestName]bool{
				toolchain.TestNameCopy:   true,
				toolchain.TestNameRender: true,
				toolchain.TestNameText:   true,
			},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.toolName, func(testInstance *testing.T) {
			registeredTool, exists := registry.Tool(testCase.toolName)
			require.True(testInstance, exists)

			for testName, expectedSupport := range testCase.supportedTests {
				require.Equal(testInstance, expectedSupport, registeredTool.SupportsTest(testName))

				invocation, supported := registeredTool.Invocation(testName, testDocumentPathConstant)
				require.Equal(testInstance, expectedSupport, supported)
				if supported {
					require.NotEmpty(testInstance, invocation.Details.Arguments)
				}
			}
		})
	}
}

func TestToolInvocationsReferenceDocumentPath(testInstance *testing.T) {
	registry := toolchain.NewDefaultRegistry()

	for _, toolName := range registry.ToolNames() {
		registeredTool, exists := registry.Tool(toolName)
		require.True(testInstance, exists)

		for _, testName := range registry.TestNames() {
			invocation, supported := registeredTool.Invocation(testName, testDocumentPathConstant)
			if !supported {
				continue
			}

			joinedArguments := ""
			for _, invocationArgument := range invocation.Details.Arguments {
				joinedArguments += invocationArgument + " "
			}
			require.Contains(testInstance, joinedArguments, testDocumentPathConstant)
		}
	}
}
