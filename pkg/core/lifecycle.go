package core

import (
	"context"
	"time"
)

// Attached is fired, broadcast, whenever a component is attached as a
// child somewhere in a tree.
type Attached struct {
	Child  *Manager
	Parent *Manager
}

// Detached is fired, broadcast, whenever a component is removed from its
// parent.
type Detached struct {
	Child  *Manager
	Parent *Manager
}

// Start is the broadcast event that boots a tree: components with
// long-running work (timers, listeners, background pollers) register
// themselves with the tree's generator registry from their Start handler,
// and the tree is marked started, which permanently rejects further
// Attach/Detach calls.
type Start struct{}

// Stop is the broadcast event requesting an orderly shutdown: components
// holding a generator registration deregister it from their Stop handler.
// Whether a Stop handler must finish synchronously before the pipeline
// considers the event processed, or may merely schedule the
// deregistration and return immediately, is a per-component choice — both
// are valid, since AwaitExhaustion only observes the registry, not any
// particular handler's return.
type Stop struct{}

// Components is a small facade over a root Manager for the two whole-tree
// operations every program built on this package needs: booting the tree
// and waiting for it to go quiet.
type Components struct {
	Root *Manager
}

// NewComponents wraps root.
func NewComponents(root *Manager) *Components {
	return &Components{Root: root}
}

// Start broadcasts the Start event through the tree and marks it started,
// after which Attach and Detach are rejected.
func (c *Components) Start(ctx context.Context) *Event {
	c.Root.tree.markStarted()
	return c.Root.Fire(ctx, NewEvent(TypeKeyOf(Start{}), Start{}), BROADCAST)
}

// Stop broadcasts the Stop event through the tree, giving components a
// chance to deregister their generators.
func (c *Components) Stop(ctx context.Context) *Event {
	return c.Root.Fire(ctx, NewEvent(TypeKeyOf(Stop{}), Stop{}), BROADCAST)
}

// AwaitExhaustion blocks until every pipeline in the tree is idle and every
// other registered generator has deregistered, or timeout elapses
// (timeout <= 0 waits indefinitely). It reports whether the tree reached
// quiescence before the deadline.
func (c *Components) AwaitExhaustion(timeout time.Duration) bool {
	return c.Root.tree.gens.AwaitExhaustion(timeout)
}
