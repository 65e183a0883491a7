// Package channel re-exports the event runtime's channel types from
// pkg/core.
package channel

import "github.com/newbpydev/eventrt/pkg/core"

type (
	// Channel is a routing label events are fired on.
	Channel = core.Channel

	// Subchannel shares its parent's match key and carries a per-connection
	// association map and dedicated response pipeline.
	Subchannel = core.Subchannel

	// IOSubchannel is a Subchannel associated with a concrete I/O
	// connection.
	IOSubchannel = core.IOSubchannel

	// LinkedSubchannel records a reference to an upstream subchannel.
	LinkedSubchannel = core.LinkedSubchannel
)

// BROADCAST is the channel every handler bound to the broadcast key
// receives.
var BROADCAST = core.BROADCAST

var (
	// New builds a named channel.
	New = core.NewChannel

	// NewSubchannel wraps parent, owned by owner's tree.
	NewSubchannel = core.NewSubchannel

	// NewIOSubchannel wraps parent as an IOSubchannel, owned by owner's tree.
	NewIOSubchannel = core.NewIOSubchannel

	// NewLinkedSubchannel builds a subchannel linked to an upstream
	// subchannel.
	NewLinkedSubchannel = core.NewLinkedSubchannel
)
