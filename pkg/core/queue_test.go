package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventQueueFIFOOrder(t *testing.T) {
	q := NewEventQueue()
	e1 := NewEvent(NameKey{Name: "e1"}, nil)
	e2 := NewEvent(NameKey{Name: "e2"}, nil)

	q.Add(e1, nil)
	q.Add(e2, nil)

	assert.Equal(t, 2, q.Len())

	first, ok := q.Remove()
	require.True(t, ok)
	assert.Same(t, e1, first.event)

	second, ok := q.Remove()
	require.True(t, ok)
	assert.Same(t, e2, second.event)

	_, ok = q.Remove()
	assert.False(t, ok)
}

func TestEventQueueDrainToPreservesOrder(t *testing.T) {
	src := NewEventQueue()
	dst := NewEventQueue()

	e1 := NewEvent(NameKey{Name: "e1"}, nil)
	e2 := NewEvent(NameKey{Name: "e2"}, nil)
	src.Add(e1, nil)
	src.Add(e2, nil)

	dstExisting := NewEvent(NameKey{Name: "existing"}, nil)
	dst.Add(dstExisting, nil)

	src.DrainTo(dst)

	assert.Equal(t, 0, src.Len())
	assert.Equal(t, 3, dst.Len())

	first, _ := dst.Remove()
	assert.Same(t, dstExisting, first.event)
}
