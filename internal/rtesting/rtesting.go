// Package rtesting provides a small fluent builder for constructing test
// component trees, adapted for package-level tests throughout the event
// runtime that need a quick multi-node tree with a few handlers already
// wired.
package rtesting

import (
	"context"

	"github.com/newbpydev/eventrt/pkg/core"
)

// Tree is a fluent builder around a root component.Manager, letting tests
// build up a small tree and its handlers in one expression chain.
type Tree struct {
	root *core.Manager
}

// NewTree builds a Tree rooted at a fresh, detached Manager named name.
// gens may be nil to share the process-wide default generator registry.
func NewTree(name string, gens *core.GeneratorRegistry) *Tree {
	return &Tree{root: core.NewManager(name, gens)}
}

// Root returns the tree's root component.
func (t *Tree) Root() *core.Manager { return t.root }

// Child attaches a new child named name to parent and returns it, for
// chaining into further Child/Handle calls while building a tree shape in
// a single expression.
func (t *Tree) Child(parent *core.Manager, name string) *core.Manager {
	child := core.NewManager(name, nil)
	if err := parent.Attach(child); err != nil {
		panic(err)
	}
	return child
}

// Handle registers fn on owner for eventKey/channelKey at priority and
// returns the Tree, for chaining.
func (t *Tree) Handle(owner *core.Manager, eventKey, channelKey core.Key, priority int32, fn core.HandlerFunc) *Tree {
	owner.AddHandler(eventKey, channelKey, priority, fn)
	return t
}

// RecordingHandler returns a HandlerFunc that appends name to log every
// time it runs, for asserting dispatch order in tests.
func RecordingHandler(log *[]string, name string) core.HandlerFunc {
	return func(ctx context.Context, ev *core.Event) error {
		*log = append(*log, name)
		return nil
	}
}
