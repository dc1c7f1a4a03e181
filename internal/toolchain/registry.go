package toolchain

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pdfbench/pdfbench/internal/execshell"
)

const (
	toolNamePyMuPDFConstant   = "pymupdf"
	toolNamePopplerConstant   = "poppler"
	toolNamePDFMinerConstant  = "pdfminer"
	toolNamePyPDFConstant     = "pypdf"
	toolNamePyPDFium2Constant = "pypdfium2"

	packagePyMuPDFConstant   = "pymupdf"
	packagePDFMinerConstant  = "pdfminer.six"
	packagePyPDFConstant     = "pypdf"
	packagePyPDFium2Constant = "pypdfium2"

	unknownToolMessageTemplateConstant = "unknown tool name: %s"

	pythonScriptFlagConstant = "-c"

	popplerVersionFlagConstant    = "-v"
	popplerTextBinaryConstant     = "pdftotext"
	popplerRenderBinaryConstant   = "pdftoppm"
	popplerResolutionFlagConstant = "-r"
	popplerResolutionValue        = "150"
	popplerPNGFlagConstant        = "-png"

	renderResolutionDPIConstant = 150
)

// TestName identifies a supported benchmark test.
type TestName string

// Supported benchmark tests.
const (
	TestNameCopy   TestName = "copy"
	TestNameRender TestName = "render"
	TestNameText   TestName = "text"
)

// InvocationBuilder produces the command measuring one test case against a document.
type InvocationBuilder func(documentPath string) execshell.ShellCommand

// Tool couples a tool name with its version probe and test invocations.
// PythonPackage names the pip requirement providing the tool; it stays empty
// for tools backed by system binaries.
type Tool struct {
	Name          string
	PythonPackage string
	VersionProbe  execshell.ShellCommand
	invocations   map[TestName]InvocationBuilder
}

// Invocation returns the command measuring testName against documentPath.
func (tool Tool) Invocation(testName TestName, documentPath string) (execshell.ShellCommand, bool) {
	invocationBuilder, supported := tool.invocations[testName]
	if !supported {
		return execshell.ShellCommand{}, false
	}
	return invocationBuilder(documentPath), true
}

// SupportsTest reports whether the tool implements the named test.
func (tool Tool) SupportsTest(testName TestName) bool {
	_, supported := tool.invocations[testName]
	return supported
}

// Registry indexes the known tools.
type Registry struct {
	tools map[string]Tool
}

// NewDefaultRegistry builds the registry of built-in tools.
func NewDefaultRegistry() *Registry {
	registry := &Registry{tools: map[string]Tool{}}
	registry.register(newPyMuPDFTool())
	registry.register(newPopplerTool())
	registry.register(newPDFMinerTool())
	registry.register(newPyPDFTool())
	registry.register(newPyPDFium2Tool())
	return registry
}

func (registry *Registry) register(tool Tool) {
	registry.tools[tool.Name] = tool
}

// Tool returns the named tool when registered.
func (registry *Registry) Tool(toolName string) (Tool, bool) {
	registeredTool, exists := registry.tools[toolName]
	return registeredTool, exists
}

// ToolNames lists registered tool names in sorted order.
func (registry *Registry) ToolNames() []string {
	toolNames := make([]string, 0, len(registry.tools))
	for toolName := range registry.tools {
		toolNames = append(toolNames, toolName)
	}
	sort.Strings(toolNames)
	return toolNames
}

// TestNames lists every test implemented by at least one registered tool, sorted.
func (registry *Registry) TestNames() []TestName {
	seenTests := map[TestName]struct{}{}
	for _, registeredTool := range registry.tools {
		for testName := range registeredTool.invocations {
			seenTests[testName] = struct{}{}
		}
	}

	testNames := make([]TestName, 0, len(seenTests))
	for testName := range seenTests {
		testNames = append(testNames, testName)
	}
	sort.Slice(testNames, func(firstIndex, secondIndex int) bool {
		return testNames[firstIndex] < testNames[secondIndex]
	})
	return testNames
}

// PythonPackages lists the pip requirements backing the named tools, sorted
// and deduplicated. An empty toolNames selects every registered tool. Tools
// backed by system binaries contribute nothing.
func (registry *Registry) PythonPackages(toolNames []string) ([]string, error) {
	if len(toolNames) == 0 {
		toolNames = registry.ToolNames()
	}

	seenPackages := map[string]struct{}{}
	for _, toolName := range toolNames {
		registeredTool, known := registry.Tool(strings.TrimSpace(toolName))
		if !known {
			return nil, fmt.Errorf(unknownToolMessageTemplateConstant, toolName)
		}
		if len(registeredTool.PythonPackage) == 0 {
			continue
		}
		seenPackages[registeredTool.PythonPackage] = struct{}{}
	}

	packageNames := make([]string, 0, len(seenPackages))
	for packageName := range seenPackages {
		packageNames = append(packageNames, packageName)
	}
	sort.Strings(packageNames)
	return packageNames, nil
}

func pythonInvocation(script string) execshell.ShellCommand {
	return execshell.ShellCommand{
		Name:    execshell.CommandPython,
		Details: execshell.CommandDetails{Arguments: []string{pythonScriptFlagConstant, script}},
	}
}

func newPyMuPDFTool() Tool {
	return Tool{
		Name:          toolNamePyMuPDFConstant,
		PythonPackage: packagePyMuPDFConstant,
		VersionProbe:  pythonInvocation("import pymupdf; print(pymupdf.version[0])"),
		invocations: map[TestName]InvocationBuilder{
			TestNameCopy: func(documentPath string) execshell.ShellCommand {
				script := fmt.Sprintf("import pymupdf; pymupdf.open(r'%s').save(r'%s.copy.pymupdf')", documentPath, documentPath)
				return pythonInvocation(script)
			},
			TestNameRender: func(documentPath string) execshell.ShellCommand {
				script := fmt.Sprintf(
					"import pymupdf; doc = pymupdf.open(r'%s'); [page.get_pixmap(dpi=%d).save(r'%s.render.pymupdf-image-' + str(page.number) + '.png') for page in doc]",
					documentPath, renderResolutionDPIConstant, documentPath,
				)
				return pythonInvocation(script)
			},
			TestNameText: func(documentPath string) execshell.ShellCommand {
				script := fmt.Sprintf("import pymupdf; print(sum(len(page.get_text()) for page in pymupdf.open(r'%s')))", documentPath)
				return pythonInvocation(script)
			},
		},
	}
}

func newPopplerTool() Tool {
	return Tool{
		Name: toolNamePopplerConstant,
		VersionProbe: execshell.ShellCommand{
			Name:    execshell.CommandShell,
			Details: execshell.CommandDetails{Arguments: []string{"-c", popplerTextBinaryConstant + " " + popplerVersionFlagConstant}},
		},
		invocations: map[TestName]InvocationBuilder{
			TestNameRender: func(documentPath string) execshell.ShellCommand {
				return execshell.ShellCommand{
					Name: execshell.CommandShell,
					Details: execshell.CommandDetails{Arguments: []string{"-c", fmt.Sprintf(
						"%s %s %s %s %s %s.render.poppler-image",
						popplerRenderBinaryConstant, popplerResolutionFlagConstant, popplerResolutionValue, popplerPNGFlagConstant, documentPath, documentPath,
					)}},
				}
			},
			TestNameText: func(documentPath string) execshell.ShellCommand {
				return execshell.ShellCommand{
					Name: execshell.CommandShell,
					Details: execshell.CommandDetails{Arguments: []string{"-c", fmt.Sprintf(
						"%s %s %s.text.poppler", popplerTextBinaryConstant, documentPath, documentPath,
					)}},
				}
			},
		},
	}
}

func newPDFMinerTool() Tool {
	return Tool{
		Name:          toolNamePDFMinerConstant,
		PythonPackage: packagePDFMinerConstant,
		VersionProbe:  pythonInvocation("import pdfminer; print(pdfminer.__version__)"),
		invocations: map[TestName]InvocationBuilder{
			TestNameText: func(documentPath string) execshell.ShellCommand {
				script := fmt.Sprintf("import pdfminer.high_level; pdfminer.high_level.extract_text(r'%s')", documentPath)
				return pythonInvocation(script)
			},
		},
	}
}

func newPyPDFTool() Tool {
	return Tool{
		Name:          toolNamePyPDFConstant,
		PythonPackage: packagePyPDFConstant,
		VersionProbe:  pythonInvocation("import pypdf; print(pypdf.__version__)"),
		invocations: map[TestName]InvocationBuilder{
			TestNameCopy: func(documentPath string) execshell.ShellCommand {
				script := fmt.Sprintf(
					"import pypdf; writer = pypdf.PdfWriter(); writer.append(r'%s'); writer.write(r'%s.copy.pypdf')",
					documentPath, documentPath,
				)
				return pythonInvocation(script)
			},
			TestNameText: func(documentPath string) execshell.ShellCommand {
				script := fmt.Sprintf("import pypdf; [page.extract_text() for page in pypdf.PdfReader(r'%s').pages]", documentPath)
				return pythonInvocation(script)
			},
		},
	}
}

func newPyPDFium2Tool() Tool {
	return Tool{
		Name:          toolNamePyPDFium2Constant,
		PythonPackage: packagePyPDFium2Constant,
		VersionProbe:  pythonInvocation("import pypdfium2; print(pypdfium2.__version__)"),
		invocations: map[TestName]InvocationBuilder{
			TestNameCopy: func(documentPath string) execshell.ShellCommand {
				script := fmt.Sprintf("import pypdfium2; pypdfium2.PdfDocument(r'%s').save(r'%s.copy.pypdfium2')", documentPath, documentPath)
				return pythonInvocation(script)
			},
			TestNameRender: func(documentPath string) execshell.ShellCommand {
				script := fmt.Sprintf(
					"import pypdfium2; doc = pypdfium2.PdfDocument(r'%s'); [doc[i].render(scale=%d / 72).to_pil().save(r'%s.render.pypdfium2-image-' + str(i) + '.png') for i in range(len(doc))]",
					documentPath, renderResolutionDPIConstant, documentPath,
				)
				return pythonInvocation(script)
			},
			TestNameText: func(documentPath string) execshell.ShellCommand {
				script := fmt.Sprintf("import pypdfium2; [page.get_textpage().get_text_range() for page in pypdfium2.PdfDocument(r'%s')]", documentPath)
				return pythonInvocation(script)
			},
		},
	}
}
