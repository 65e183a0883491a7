package core_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newbpydev/eventrt/pkg/core"
)

type causeEvent struct{}
type effectEvent struct{}

func TestAwaitExhaustionWaitsForCausedEventsToo(t *testing.T) {
	gens := core.NewGeneratorRegistry()
	root := core.NewManager("root", gens)

	var mu sync.Mutex
	var completedOrder []string

	root.AddHandler(core.TypeKeyOf(core.Completed{}), core.Broadcast, 0, func(ctx context.Context, ev *core.Event) error {
		completed := ev.Payload().(core.Completed).Event
		mu.Lock()
		switch completed.Payload().(type) {
		case causeEvent:
			completedOrder = append(completedOrder, "cause")
		case effectEvent:
			completedOrder = append(completedOrder, "effect")
		}
		mu.Unlock()
		return nil
	})

	root.AddHandler(core.TypeKeyOf(causeEvent{}), core.Broadcast, 0, func(ctx context.Context, ev *core.Event) error {
		root.Fire(ctx, core.NewEvent(core.TypeKeyOf(effectEvent{}), effectEvent{}), core.BROADCAST)
		return nil
	})
	root.AddHandler(core.TypeKeyOf(effectEvent{}), core.Broadcast, 0, func(ctx context.Context, ev *core.Event) error {
		time.Sleep(50 * time.Millisecond)
		return nil
	})

	components := core.NewComponents(root)
	start := time.Now()
	root.Fire(context.Background(), core.NewEvent(core.TypeKeyOf(causeEvent{}), causeEvent{}), core.BROADCAST)

	ok := components.AwaitExhaustion(2 * time.Second)
	elapsed := time.Since(start)

	require.True(t, ok)
	assert.GreaterOrEqual(t, elapsed, 50*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []string{"effect", "cause"}, completedOrder)
}

type failingEvent struct{}

func TestHandlerErrorRoutesToHandlingErrorWithoutStoppingOtherHandlers(t *testing.T) {
	root := core.NewManager("root", core.NewGeneratorRegistry())

	var h2Called bool
	var handlingErrors []error
	handled := make(chan struct{})

	root.AddHandler(core.TypeKeyOf(failingEvent{}), core.Broadcast, 10, func(ctx context.Context, ev *core.Event) error {
		panic("boom")
	})
	root.AddHandler(core.TypeKeyOf(failingEvent{}), core.Broadcast, 5, func(ctx context.Context, ev *core.Event) error {
		h2Called = true
		return nil
	})
	root.AddHandler(core.TypeKeyOf(core.HandlingError{}), core.Broadcast, 0, func(ctx context.Context, ev *core.Event) error {
		he := ev.Payload().(core.HandlingError)
		handlingErrors = append(handlingErrors, he.Cause)
		close(handled)
		return nil
	})

	ev := root.Fire(context.Background(), core.NewEvent(core.TypeKeyOf(failingEvent{}), failingEvent{}), core.BROADCAST)
	<-ev.Done()

	// HandlingError is queued, not dispatched inline, so it finishes after
	// (not necessarily before) the failing event's own Done closes.
	select {
	case <-handled:
	case <-time.After(time.Second):
		t.Fatal("HandlingError handler never ran")
	}

	assert.True(t, h2Called)
	require.Len(t, handlingErrors, 1)

	// The tree stays live: a second, unrelated fire still dispatches.
	var secondCalled bool
	type pingEvent struct{}
	root.AddHandler(core.TypeKeyOf(pingEvent{}), core.Broadcast, 0, func(ctx context.Context, ev *core.Event) error {
		secondCalled = true
		return nil
	})
	ev2 := root.Fire(context.Background(), core.NewEvent(core.TypeKeyOf(pingEvent{}), pingEvent{}), core.BROADCAST)
	<-ev2.Done()
	assert.True(t, secondCalled)
}
