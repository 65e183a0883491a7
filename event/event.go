// Package event re-exports the event runtime's event and lifecycle
// event types from pkg/core.
package event

import "github.com/newbpydev/eventrt/pkg/core"

type (
	// Event wraps a caller-supplied payload with the runtime state the
	// dispatcher and pipeline need.
	Event = core.Event

	// Completed is fired once an event and everything it caused has
	// finished processing.
	Completed = core.Completed

	// HandlingError is fired when a handler panics or returns an error.
	HandlingError = core.HandlingError

	// Attached is fired when a component is attached to a tree.
	Attached = core.Attached

	// Detached is fired when a component is removed from its parent.
	Detached = core.Detached

	// Start boots a tree.
	Start = core.Start

	// Stop requests an orderly shutdown.
	Stop = core.Stop
)

// New builds an event carrying payload, matched against key.
var New = core.NewEvent
