package core

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Completed is the meta-event fired once an event, and every event it
// caused while being handled, has finished processing. Handlers bound to
// Completed receive the original event as payload so they can react to
// "this particular fire is now fully done" rather than just "a handler
// ran".
type Completed struct {
	Event *Event
}

// Event wraps a caller-supplied payload with the runtime state the
// dispatcher and pipeline need: its match key, the channels it was fired
// on, a causal link to the event that caused it (if any), an open count
// tracking itself plus every event it in turn causes, and a short-circuit
// flag handlers can set to stop further dispatch.
type Event struct {
	key     Key
	payload interface{}
	id      uuid.UUID

	parentMu  sync.Mutex
	parent    *Event // causal link; cleared in close() once consumed, so a parent is never pinned past the point any of its children still need it
	openCount int32  // atomic: 1 (self) + 1 per un-completed caused event

	stopped atomic.Bool

	resultMu sync.Mutex
	result   interface{}

	processedByMu sync.Mutex
	processedBy   *Pipeline

	tree     *treeState
	channels []*Channel

	closeOnce sync.Once
	done      chan struct{}
}

// NewEvent builds an event carrying payload, matched against key. key is
// usually core.TypeKeyOf(payload), but callers may bind events by name or
// interface instead.
func NewEvent(key Key, payload interface{}) *Event {
	return &Event{
		key:       key,
		payload:   payload,
		id:        uuid.New(),
		openCount: 1,
		done:      make(chan struct{}),
	}
}

// Key returns the event's match key.
func (e *Event) Key() Key { return e.key }

// Payload returns the caller-supplied event value.
func (e *Event) Payload() interface{} { return e.payload }

// ID returns the event's unique identifier.
func (e *Event) ID() uuid.UUID { return e.id }

// Parent returns the event that caused this one to be fired, or nil for a
// top-level fire, or once this event has itself completed: the link is
// cleared in close() right after it's used to cascade the completion
// upward, so a completed event never pins its parent alive.
func (e *Event) Parent() *Event {
	e.parentMu.Lock()
	defer e.parentMu.Unlock()
	return e.parent
}

// Stop short-circuits dispatch: no further handler in the current
// invocation's priority order will run for this event.
func (e *Event) Stop() { e.stopped.Store(true) }

// Stopped reports whether Stop has been called.
func (e *Event) Stopped() bool { return e.stopped.Load() }

// SetResult records a result value a handler computed. The last call wins;
// concurrent handlers setting a result must coordinate among themselves.
func (e *Event) SetResult(v interface{}) {
	e.resultMu.Lock()
	defer e.resultMu.Unlock()
	e.result = v
}

// Result returns the last value set with SetResult, or nil.
func (e *Event) Result() interface{} {
	e.resultMu.Lock()
	defer e.resultMu.Unlock()
	return e.result
}

// ProcessedBy returns the pipeline currently (or finally) processing this
// event.
func (e *Event) ProcessedBy() *Pipeline {
	e.processedByMu.Lock()
	defer e.processedByMu.Unlock()
	return e.processedBy
}

func (e *Event) setProcessedBy(p *Pipeline) {
	e.processedByMu.Lock()
	e.processedBy = p
	e.processedByMu.Unlock()
}

// Done returns a channel closed once this event, and every event it
// caused, has finished processing.
func (e *Event) Done() <-chan struct{} { return e.done }

// open registers a new causally-dependent event: called when a handler
// processing e fires another event. It keeps e from being considered
// complete until the new event itself completes.
func (e *Event) open() {
	atomic.AddInt32(&e.openCount, 1)
}

// close releases one unit of e's open count (either "handling e itself
// finished" or "one caused event finished"). Once the count reaches zero,
// e is fully complete: its Done channel closes, a Completed meta-event
// fires on the channels e was fired on, and the same close propagates to
// e's parent, if any.
func (e *Event) close() {
	if atomic.AddInt32(&e.openCount, -1) != 0 {
		return
	}
	e.closeOnce.Do(func() { close(e.done) })

	if e.tree != nil && len(e.channels) > 0 {
		completed := NewEvent(TypeKeyOf(Completed{}), Completed{Event: e})
		e.tree.dispatcher.dispatch(completed, e.channels)
	}

	e.parentMu.Lock()
	parent := e.parent
	e.parent = nil
	e.parentMu.Unlock()
	if parent != nil {
		parent.close()
	}
}

// Get blocks until e (and everything it caused) has finished processing,
// or timeout elapses (timeout <= 0 waits indefinitely), and returns e's
// Result.
func (e *Event) Get(timeout time.Duration) (interface{}, bool) {
	if timeout <= 0 {
		<-e.done
		return e.Result(), true
	}
	select {
	case <-e.done:
		return e.Result(), true
	case <-time.After(timeout):
		return nil, false
	}
}

// GetContext is like Get, but waits only as long as ctx remains valid
// instead of taking an explicit timeout, for callers already threading a
// context.Context through their call chain.
func (e *Event) GetContext(ctx context.Context) (interface{}, bool) {
	select {
	case <-e.done:
		return e.Result(), true
	case <-ctx.Done():
		return nil, false
	}
}

// causeChild links child as caused by e (for causal openCount tracking)
// and returns child for chaining.
func (e *Event) causeChild(child *Event) *Event {
	e.open()
	child.parentMu.Lock()
	child.parent = e
	child.parentMu.Unlock()
	return child
}
