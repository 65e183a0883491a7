package core

import "sync"

// Channel is a routing label events are fired on; handlers subscribe to a
// channel match key. BROADCAST and SELF are the two well-known channels;
// Subchannel wraps a parent channel so handlers bound to the parent
// receive events fired on any of its subchannels.
type Channel struct {
	key  Key
	name string
}

// NewChannel builds a named channel whose match key is a NameKey.
func NewChannel(name string) *Channel {
	return &Channel{key: NameKey{Name: name}, name: name}
}

// BROADCAST is the channel every handler bound to the broadcast key
// receives, and which itself matches any handler channel key.
var BROADCAST = &Channel{key: Broadcast, name: "broadcast"}

// selfChannel returns a channel whose match key is the identity of the
// owning component, used so "fire on SELF" only reaches handlers declared
// with that component as their channel.
func selfChannel(owner *Manager) *Channel {
	return &Channel{key: IdentityKey{id: owner}, name: owner.Path() + "#self"}
}

// Key returns the channel's match key.
func (c *Channel) Key() Key { return c.key }

// Name returns the channel's debug name.
func (c *Channel) Name() string { return c.name }

// Matches reports whether this channel (as fired on) matches a handler's
// declared channel key.
func (c *Channel) Matches(handlerKey Key) bool { return c.key.Matches(handlerKey) }

// Subchannel shares its parent's match key, so any handler bound to the
// parent channel matches events fired on any of its subchannels. Each
// subchannel carries a small per-connection association map and a
// dedicated response pipeline.
type Subchannel struct {
	Channel
	parent    *Channel
	mu        sync.RWMutex
	assoc     map[interface{}]interface{}
	assocUp   *Subchannel // association fallback chain
	response  *Pipeline
	upstream  *Subchannel // linked subchannel's upstream; an ordinary pointer, so it keeps upstream reachable
}

// NewSubchannel wraps parent with a new subchannel sharing its match key,
// owned by owner's tree. The subchannel is given its own response pipeline,
// wired to the same dispatcher as owner's tree, so that, e.g., converter
// components serialize responses for one connection independently of any
// other connection's subchannel.
func NewSubchannel(parent *Channel, owner *Manager) *Subchannel {
	ts := owner.tree
	resp := NewPipeline("response:"+parent.name, ts.exec, ts.gens, ts)
	resp.setDispatch(func(entry queueEntry, p *Pipeline) {
		ts.dispatcher.dispatch(entry.event, entry.channels)
	})
	resp.setMetricsReporter(ts.reportQueueDepth)
	return &Subchannel{
		Channel:  Channel{key: parent.key, name: parent.name + "/sub"},
		parent:   parent,
		assoc:    make(map[interface{}]interface{}),
		response: resp,
	}
}

// Parent returns the channel this subchannel wraps.
func (s *Subchannel) Parent() *Channel { return s.parent }

// ResponsePipeline returns the dedicated pipeline response handlers on this
// subchannel should fire through, keeping per-connection output ordered
// and independent of other connections.
func (s *Subchannel) ResponsePipeline() *Pipeline { return s.response }

// Associate stores a value for key in this subchannel's association map.
func (s *Subchannel) Associate(key, value interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assoc[key] = value
}

// Associated looks up key in this subchannel's map, falling back to the
// upstream subchannel's map (set for a LinkedSubchannel) when absent here.
// A subchannel built with NewSubchannel has no fallback.
func (s *Subchannel) Associated(key interface{}) (interface{}, bool) {
	s.mu.RLock()
	v, ok := s.assoc[key]
	fallback := s.assocUp
	s.mu.RUnlock()
	if ok {
		return v, true
	}
	if fallback != nil {
		return fallback.Associated(key)
	}
	return nil, false
}

// IOSubchannel is a subchannel associated with a concrete I/O connection
// (e.g. a socket); it is otherwise identical to Subchannel and exists as a
// distinct, documented type so I/O components can type-assert on it.
type IOSubchannel struct {
	Subchannel
}

// NewIOSubchannel builds an IOSubchannel wrapping parent, owned by owner's
// tree.
func NewIOSubchannel(parent *Channel, owner *Manager) *IOSubchannel {
	return &IOSubchannel{Subchannel: *NewSubchannel(parent, owner)}
}

// LinkedSubchannel records a reference to an upstream subchannel, and
// optionally installs a back-link association in the upstream's map so the
// downstream subchannel can be located given the upstream. The upstream
// reference is a strong pointer, read by Upstream and by the Associated
// fallback: it keeps the upstream subchannel reachable for as long as this
// subchannel is, and is never cleared.
type LinkedSubchannel struct {
	Subchannel
}

// NewLinkedSubchannel builds a subchannel linked to upstream, sharing
// upstream's association fallback chain and optionally back-linking
// upstream's map to this subchannel under backlinkKey.
func NewLinkedSubchannel(parent *Channel, upstream *Subchannel, backlinkKey interface{}, owner *Manager) *LinkedSubchannel {
	s := &LinkedSubchannel{Subchannel: *NewSubchannel(parent, owner)}
	s.upstream = upstream
	s.assocUp = upstream
	if backlinkKey != nil {
		upstream.Associate(backlinkKey, s)
	}
	return s
}

// Upstream returns the upstream subchannel this one was linked from.
func (s *LinkedSubchannel) Upstream() *Subchannel { return s.upstream }
