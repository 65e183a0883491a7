// Package lifecycle re-exports the whole-tree boot/shutdown facade and
// built-in lifecycle events from pkg/core.
package lifecycle

import "github.com/newbpydev/eventrt/pkg/core"

type (
	// Components is a small facade over a root Manager for booting a tree
	// and waiting for it to go quiet.
	Components = core.Components

	// Start is the broadcast event that boots a tree.
	Start = core.Start

	// Stop is the broadcast event requesting an orderly shutdown.
	Stop = core.Stop

	// Attached is fired when a component is attached to a tree.
	Attached = core.Attached

	// Detached is fired when a component is removed from its parent.
	Detached = core.Detached
)

// NewComponents wraps root.
var NewComponents = core.NewComponents
