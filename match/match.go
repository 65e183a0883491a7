// Package match re-exports the event runtime's match-key algebra from
// pkg/core under a narrower import path, for callers that only need to
// build or compare keys.
package match

import "github.com/newbpydev/eventrt/pkg/core"

type (
	// Key is the common interface every match key implements.
	Key = core.Key

	// TypeKey matches by concrete or interface Go type.
	TypeKey = core.TypeKey

	// NameKey matches by exact string.
	NameKey = core.NameKey

	// IdentityKey matches by value identity.
	IdentityKey = core.IdentityKey
)

var (
	// Broadcast is the universal match key.
	Broadcast = core.Broadcast

	// TypeKeyOf builds a TypeKey from a value's concrete type.
	TypeKeyOf = core.TypeKeyOf

	// InterfaceKey builds a TypeKey from an interface type.
	InterfaceKey = core.InterfaceKey
)
