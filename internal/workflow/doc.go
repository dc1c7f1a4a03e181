// Package workflow runs declarative YAML pipelines. A pipeline is an ordered
// list of steps, each naming an operation (bench, publish, shell) with typed
// options; steps run sequentially and the first failing step aborts the run.
package workflow
