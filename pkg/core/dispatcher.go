package core

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/newbpydev/eventrt/rtobservability"
)

// Dispatcher collects, caches and invokes the handlers matching a fire. The
// cache key is the fire signature (event key plus the set of channel
// keys); cache entries are invalidated wholesale on any structural change
// to the tree (attach, detach, or handler registration), which is the same
// coarse invalidation strategy as caching the component tree's own
// handler lookup.
type Dispatcher struct {
	tree *treeState

	mu    sync.RWMutex
	cache map[string][]*HandlerReference
}

func newDispatcher(tree *treeState) *Dispatcher {
	return &Dispatcher{tree: tree, cache: make(map[string][]*HandlerReference)}
}

// invalidate drops the entire handler-lookup cache.
func (d *Dispatcher) invalidate() {
	d.mu.Lock()
	d.cache = make(map[string][]*HandlerReference)
	d.mu.Unlock()
}

func fireSignature(eventKey Key, channels []*Channel) string {
	var b strings.Builder
	b.WriteString(eventKey.String())
	keys := make([]string, len(channels))
	for i, c := range channels {
		keys[i] = c.Key().String()
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteByte('|')
		b.WriteString(k)
	}
	return b.String()
}

// handlersFor returns the sorted slice of handlers matching eventKey fired
// on channels, using (and populating) the cache.
func (d *Dispatcher) handlersFor(eventKey Key, channels []*Channel) []*HandlerReference {
	sig := fireSignature(eventKey, channels)

	d.mu.RLock()
	cached, ok := d.cache[sig]
	d.mu.RUnlock()
	if ok {
		return cached
	}

	d.tree.registryMu.RLock()
	all := d.tree.registry.all
	matched := make([]*HandlerReference, 0, len(all))
	for _, h := range all {
		if h.matchesFire(eventKey, channels) {
			matched = append(matched, h)
		}
	}
	d.tree.registryMu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool { return handlerOrder(matched[i], matched[j]) })

	d.mu.Lock()
	d.cache[sig] = matched
	d.mu.Unlock()
	return matched
}

// dispatch synchronously invokes every handler matching ev's key on
// channels, in priority order, stopping early if a handler calls ev.Stop.
// A handler panic or returned error is recovered and routed to a
// HandlingError event fired on the same channels, rather than propagating
// to the pipeline's drain loop.
func (d *Dispatcher) dispatch(ev *Event, channels []*Channel) {
	start := time.Now()
	for _, h := range d.handlersFor(ev.Key(), channels) {
		if ev.Stopped() {
			break
		}
		d.invoke(h, ev, channels)
	}

	d.tree.mu.RLock()
	m := d.tree.metrics
	d.tree.mu.RUnlock()
	if m != nil {
		m.ObserveDispatch(ev.Key().String(), time.Since(start))
	}
}

func (d *Dispatcher) invoke(h *HandlerReference, ev *Event, channels []*Channel) {
	defer func() {
		if r := recover(); r != nil {
			d.reportHandlingError(ev, channels, fmt.Errorf("handler panic: %v", r))
		}
	}()

	ctx := withPipeline(context.Background(), ev.ProcessedBy())
	ctx = withTree(ctx, d.tree)
	ctx = withEvent(ctx, ev)
	if err := h.Fn(ctx, ev); err != nil {
		d.reportHandlingError(ev, channels, err)
	}
}

// HandlingError is the payload of the event fired when a handler panics or
// returns an error, carrying the event and channels being processed and
// the error/panic value.
type HandlingError struct {
	Event    *Event
	Channels []*Channel
	Cause    error
}

func (h HandlingError) Error() string {
	return fmt.Sprintf("handling %s: %v", h.Event.Key(), h.Cause)
}

// reportHandlingError records metrics/observability for a handler failure
// and enqueues a HandlingError event on ev's own pipeline, so it goes
// through the normal queue/dispatch/close cycle (and so participates
// correctly in openCount/quiescence tracking) instead of running
// in-line on the caller's goroutine.
func (d *Dispatcher) reportHandlingError(ev *Event, channels []*Channel, cause error) {
	d.tree.mu.RLock()
	m := d.tree.metrics
	d.tree.mu.RUnlock()
	if m != nil {
		m.IncHandlerErrors(ev.Key().String())
	}

	if r := rtobservability.Current(); r != nil {
		r.ReportError(cause, rtobservability.ErrorContext{
			ComponentPath: d.tree.root.Path(),
			EventName:     ev.Key().String(),
			Timestamp:     time.Now(),
		})
	}

	if _, isErrEvent := ev.Payload().(HandlingError); isErrEvent {
		// A HandlingError handler itself failed: log and stop rather than
		// recursing into another HandlingError fire.
		slog.Error("handler failed while processing a HandlingError event", "event", ev.Key().String(), "err", cause)
		return
	}

	errEvent := NewEvent(TypeKeyOf(HandlingError{}), HandlingError{Event: ev, Channels: channels, Cause: cause})
	errEvent.tree = d.tree
	errEvent.channels = channels

	p := ev.ProcessedBy()
	if p == nil {
		p = d.tree.rootPipeline
	}
	p.Add(errEvent, channels)
}
