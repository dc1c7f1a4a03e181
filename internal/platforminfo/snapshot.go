// Package platforminfo collects host facts recorded alongside benchmark
// results so measurements from different machines stay comparable.
package platforminfo

import (
	"os"
	"runtime"
)

// Snapshot captures the host characteristics of a benchmark run. Field names
// follow the results document layout consumed downstream and are declared in
// sorted key order to keep encoded documents sorted throughout.
type Snapshot struct {
	Machine        string `json:"machine"`
	Node           string `json:"node"`
	ProcessorCount int    `json:"processor_count"`
	RuntimeVersion string `json:"runtime_version"`
	System         string `json:"system"`
}

// Collect gathers the current host snapshot. A hostname lookup failure leaves
// Node empty rather than failing the run.
func Collect() Snapshot {
	hostname, hostnameError := os.Hostname()
	if hostnameError != nil {
		hostname = ""
	}

	return Snapshot{
		System:         runtime.GOOS,
		Machine:        runtime.GOARCH,
		ProcessorCount: runtime.NumCPU(),
		Node:           hostname,
		RuntimeVersion: runtime.Version(),
	}
}
