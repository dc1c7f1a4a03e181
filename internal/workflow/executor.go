package workflow

import (
	"context"
	"errors"
	"fmt"
)

const (
	workflowExecutionErrorTemplateConstant = "workflow operation %s failed: %w"
	workflowExecutorDependenciesMessage    = "workflow executor requires a shell executor and tool registry"
)

// Executor coordinates sequential workflow operation execution.
type Executor struct {
	operations  []Operation
	environment Environment
}

// NewExecutor constructs an Executor instance.
func NewExecutor(operations []Operation, environment Environment) *Executor {
	return &Executor{operations: append([]Operation{}, operations...), environment: environment}
}

// Execute runs the operations in order; the first failure aborts the run.
func (executor *Executor) Execute(executionContext context.Context) error {
	if executor.environment.Executor == nil || executor.environment.Registry == nil {
		return errors.New(workflowExecutorDependenciesMessage)
	}

	for operationIndex := range executor.operations {
		operation := executor.operations[operationIndex]
		if operation == nil {
			continue
		}
		if executeError := operation.Execute(executionContext, &executor.environment); executeError != nil {
			return fmt.Errorf(workflowExecutionErrorTemplateConstant, operation.Name(), executeError)
		}
	}

	return nil
}
