// Package handler re-exports the event runtime's handler types from
// pkg/core.
package handler

import "github.com/newbpydev/eventrt/pkg/core"

type (
	// Func is the signature every registered handler must satisfy.
	Func = core.HandlerFunc

	// Reference is one registered binding of an event key and channel key
	// to a handler function.
	Reference = core.HandlerReference

	// Registry holds every handler registered anywhere in a tree.
	Registry = core.Registry
)

// NewRegistry builds an empty handler registry.
var NewRegistry = core.NewRegistry
