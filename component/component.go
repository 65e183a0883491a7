// Package component re-exports the event runtime's component tree type
// from pkg/core.
package component

import "github.com/newbpydev/eventrt/pkg/core"

// Manager is one node of a component tree.
type Manager = core.Manager

// ManagerOption configures optional tree-wide settings at construction
// time.
type ManagerOption = core.ManagerOption

// WithWorkerPoolSize bounds how many of a tree's pipelines may be
// actively draining at once.
var WithWorkerPoolSize = core.WithWorkerPoolSize

// NewManager builds a new, detached single-node tree rooted at a Manager
// named name. gens may be nil to share the process-wide default generator
// registry.
var NewManager = core.NewManager
