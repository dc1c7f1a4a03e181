// Package utils hosts shared infrastructure for the pdfbench CLI: the zap
// logger factory, the viper-backed configuration loader, the flushing writer
// used to keep command echoes ordered under log capture, and helpers for
// values carried through command contexts.
package utils
