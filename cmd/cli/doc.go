// Package cli wires the pdfbench command hierarchy: configuration loading,
// structured logging, and the bench, publish, and workflow subcommands.
package cli
