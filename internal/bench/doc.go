// Package bench runs the benchmark suite: it expands the requested tests,
// tools, and input documents into ordered cases, measures each case through
// the shell executor with a per-case timeout, and assembles the results
// document. Case failures are recorded, never fatal; the suite always runs to
// completion.
package bench
