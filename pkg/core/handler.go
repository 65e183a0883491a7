package core

import "context"

// HandlerFunc is the signature every registered handler must satisfy. ctx
// carries the dispatch context (see context.go); returning a non-nil error
// causes the dispatcher to fire a HandlingError event instead of
// propagating the error to the caller of Fire.
type HandlerFunc func(ctx context.Context, ev *Event) error

// HandlerReference is one registered binding of an event key and channel
// key to a handler function, together with the priority and insertion
// order used to total-order handlers that both match a given fire.
type HandlerReference struct {
	EventKey   Key
	ChannelKey Key
	Priority   int32
	Fn         HandlerFunc

	owner    *Manager
	seq      uint64 // insertion order within owner, for tie-breaking
	treeSeq  uint64 // owner's pre-order position at registration time
}

// matchesFire reports whether this handler should run for an event fired
// with eventKey on any of firedChannels.
func (h *HandlerReference) matchesFire(eventKey Key, firedChannels []*Channel) bool {
	if !eventKey.Matches(h.EventKey) {
		return false
	}
	for _, c := range firedChannels {
		if c.Matches(h.ChannelKey) {
			return true
		}
	}
	return false
}

// handlerOrder reports whether a sorts before b in dispatch order:
// descending priority, then by tree pre-order position, then by
// insertion sequence within the owning component.
func handlerOrder(a, b *HandlerReference) bool {
	if a.Priority != b.Priority {
		return a.Priority > b.Priority
	}
	if a.treeSeq != b.treeSeq {
		return a.treeSeq < b.treeSeq
	}
	return a.seq < b.seq
}

// Registry holds every handler registered anywhere in a tree, in
// registration order. The sorted per-fire-signature lookup cache is kept
// by the tree's Dispatcher, not here.
type Registry struct {
	all []*HandlerReference

	seqCounter uint64
}

// NewRegistry builds an empty handler registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// add appends a new handler binding and returns it.
func (r *Registry) add(owner *Manager, eventKey, channelKey Key, priority int32, fn HandlerFunc) *HandlerReference {
	r.seqCounter++
	h := &HandlerReference{
		EventKey:   eventKey,
		ChannelKey: channelKey,
		Priority:   priority,
		Fn:         fn,
		owner:      owner,
		seq:        r.seqCounter,
	}
	r.all = append(r.all, h)
	return h
}

// remove deletes every handler owned by owner, used by
// Manager.RemoveHandlers. Detach does not call it: a detached subtree's
// handlers move to its new tree instead.
func (r *Registry) remove(owner *Manager) {
	kept := r.all[:0]
	for _, h := range r.all {
		if h.owner != owner {
			kept = append(kept, h)
		}
	}
	r.all = kept
}
