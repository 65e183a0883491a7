// Package pipeline re-exports the event runtime's pipeline types from
// pkg/core.
package pipeline

import "github.com/newbpydev/eventrt/pkg/core"

type (
	// Pipeline is a single-threaded FIFO event processor.
	Pipeline = core.Pipeline

	// EventQueue is a thread-safe FIFO of queued fires.
	EventQueue = core.EventQueue

	// Executor is a bounded pool of worker slots shared by a tree's
	// pipelines.
	Executor = core.Executor
)

var (
	// New builds an idle pipeline.
	New = core.NewPipeline

	// NewEventQueue builds an empty queue.
	NewEventQueue = core.NewEventQueue

	// NewExecutor builds an Executor with the given number of worker slots.
	NewExecutor = core.NewExecutor
)
