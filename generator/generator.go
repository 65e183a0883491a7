// Package generator re-exports the event runtime's generator registry
// from pkg/core: the process-wide quiescence primitive.
package generator

import "github.com/newbpydev/eventrt/pkg/core"

// Registry tracks every ongoing source of future events.
type Registry = core.GeneratorRegistry

var (
	// New builds an empty registry.
	New = core.NewGeneratorRegistry

	// Default returns the process-wide registry used when a tree is built
	// without an explicit one.
	Default = core.DefaultRegistry
)
