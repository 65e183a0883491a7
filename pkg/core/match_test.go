package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/newbpydev/eventrt/pkg/core"
)

type fooEvent struct{}
type barEvent struct{}

func TestTypeKeyMatchesSameConcreteType(t *testing.T) {
	a := core.TypeKeyOf(fooEvent{})
	b := core.TypeKeyOf(fooEvent{})
	assert.True(t, a.Matches(b))
}

func TestTypeKeyDoesNotMatchDifferentConcreteType(t *testing.T) {
	a := core.TypeKeyOf(fooEvent{})
	b := core.TypeKeyOf(barEvent{})
	assert.False(t, a.Matches(b))
}

type anyEvent interface{ isEvent() }

func (fooEvent) isEvent() {}
func (barEvent) isEvent() {}

func TestInterfaceKeyMatchesAnyImplementor(t *testing.T) {
	wildcard := core.InterfaceKey((*anyEvent)(nil))
	foo := core.TypeKeyOf(fooEvent{})
	assert.True(t, foo.Matches(wildcard))
}

func TestNameKeyMatchesEqualNameOnly(t *testing.T) {
	a := core.NameKey{Name: "a"}
	b := core.NameKey{Name: "a"}
	c := core.NameKey{Name: "b"}
	assert.True(t, a.Matches(b))
	assert.False(t, a.Matches(c))
}

func TestNameKeyMatchedByBroadcast(t *testing.T) {
	a := core.NameKey{Name: "a"}
	assert.True(t, a.Matches(core.Broadcast))
}

func TestBroadcastMatchesAnyNonNilKey(t *testing.T) {
	assert.True(t, core.Broadcast.Matches(core.NameKey{Name: "x"}))
	assert.True(t, core.Broadcast.Matches(core.TypeKeyOf(fooEvent{})))
}
