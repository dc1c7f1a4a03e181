// Package toolchain describes the PDF tools pdfbench can measure: the
// command probing each tool's version and the command template for each
// supported test against an input document. Python-backed tools run through
// interpreter one-liners; native tools run their own binaries.
package toolchain
