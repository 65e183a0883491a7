package core

import (
	"context"
	"sync"

	"github.com/newbpydev/eventrt/metrics"
	"github.com/newbpydev/eventrt/rterr"
)

// Manager is one node of a component tree. A freshly constructed Manager
// is its own detached, single-node tree; Attach merges a detached root
// into an existing tree's shared state, and Detach splits a subtree back
// out into its own fresh, independent tree.
type Manager struct {
	name string

	mu       sync.RWMutex
	parent   *Manager
	children []*Manager

	tree *treeState

	self *Channel
}

// ManagerOption configures optional tree-wide settings at construction
// time.
type ManagerOption func(*managerConfig)

type managerConfig struct {
	workerPoolSize int
}

// WithWorkerPoolSize bounds how many of this tree's pipelines may be
// actively draining at once, overriding the executor's default size.
// Typically sourced from runtimeconfig.Config.WorkerPoolSize.
func WithWorkerPoolSize(n int) ManagerOption {
	return func(c *managerConfig) { c.workerPoolSize = n }
}

// NewManager builds a new, detached single-node tree rooted at a Manager
// named name. gens may be nil to share the process-wide default generator
// registry.
func NewManager(name string, gens *GeneratorRegistry, opts ...ManagerOption) *Manager {
	cfg := &managerConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	m := &Manager{name: name}
	m.tree = newTreeState(m, gens, cfg.workerPoolSize)
	m.self = selfChannel(m)
	return m
}

// Name returns the component's local name.
func (m *Manager) Name() string { return m.name }

// Self returns the channel that only events explicitly fired on this
// component's own channel reach, independent of the tree's root channel.
func (m *Manager) Self() *Channel { return m.self }

// Parent returns the component's parent, or nil at the root.
func (m *Manager) Parent() *Manager {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.parent
}

// Children returns a snapshot slice of the component's direct children.
func (m *Manager) Children() []*Manager {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Manager, len(m.children))
	copy(out, m.children)
	return out
}

// Root returns the root of the tree m belongs to.
func (m *Manager) Root() *Manager {
	cur := m
	for {
		p := cur.Parent()
		if p == nil {
			return cur
		}
		cur = p
	}
}

// Path returns a "/"-joined path from the tree root to m.
func (m *Manager) Path() string {
	if m.parent == nil {
		return m.name
	}
	return m.parent.Path() + "/" + m.name
}

// preOrder returns every Manager in the subtree rooted at m, in pre-order
// (m first, then each child's subtree left to right).
func (m *Manager) preOrder() []*Manager {
	out := []*Manager{m}
	for _, c := range m.Children() {
		out = append(out, c.preOrder()...)
	}
	return out
}

// Iterator returns every Manager in m's tree in pre-order, starting from
// the tree root.
func (m *Manager) Iterator() []*Manager {
	return m.Root().preOrder()
}

// indexInTree returns m's position in its tree's pre-order, used to
// tie-break same-priority handlers by structural position rather than
// registration time.
func (m *Manager) indexInTree() uint64 {
	for i, n := range m.Root().preOrder() {
		if n == m {
			return uint64(i)
		}
	}
	return 0
}

// Attach adds child as a new direct child of m. child must currently be
// the detached root of its own tree; m's tree must not have been started.
// The child's tree state (its handlers, in particular) is merged into m's
// tree, and any events already queued on the child's own root pipeline are
// handed over to m's tree's root pipeline.
//
// Locks are acquired in a fixed order — child, then child's old tree, then
// m's tree — to avoid deadlock against a concurrent Attach elsewhere in
// either tree.
func (m *Manager) Attach(child *Manager) error {
	child.mu.Lock()
	if child.parent != nil || child.tree.root != child {
		child.mu.Unlock()
		return rterr.New("Attach", child.Path(), rterr.ErrAlreadyAttached)
	}
	childTree := child.tree
	child.mu.Unlock()

	if childTree.isStarted() {
		return rterr.New("Attach", child.Path(), rterr.ErrTreeStarted)
	}
	if m.tree.isStarted() {
		return rterr.New("Attach", m.Path(), rterr.ErrTreeStarted)
	}

	childTree.mu.Lock()
	m.tree.mu.Lock()

	m.tree.registryMu.Lock()
	childTree.registryMu.RLock()
	m.tree.registry.all = append(m.tree.registry.all, childTree.registry.all...)
	childTree.registryMu.RUnlock()
	m.tree.registryMu.Unlock()

	m.tree.mu.Unlock()
	childTree.mu.Unlock()

	m.mu.Lock()
	child.mu.Lock()
	child.parent = m
	m.children = append(m.children, child)
	child.mu.Unlock()
	m.mu.Unlock()

	m.tree.rootPipeline.Merge(childTree.rootPipeline)
	reassignTree(child, m.tree)

	m.tree.dispatcher.invalidate()

	m.Fire(context.Background(), NewEvent(TypeKeyOf(Attached{}), Attached{Child: child, Parent: m}), BROADCAST)
	return nil
}

// reassignTree recursively points every Manager in the subtree rooted at
// n at tree, so a merged-in subtree's components fire through, and are
// found via, the combined tree's shared state. Callers must not hold n.mu
// when calling this.
func reassignTree(n *Manager, tree *treeState) {
	n.mu.Lock()
	n.tree = tree
	n.self = selfChannel(n)
	children := make([]*Manager, len(n.children))
	copy(children, n.children)
	n.mu.Unlock()

	for _, c := range children {
		reassignTree(c, tree)
	}
}

// Detach removes child from its current parent, giving it a fresh,
// independent tree state of its own. child's handlers move with it; events
// already queued against the shared tree that were destined for child's
// subtree are not retroactively redirected.
func (m *Manager) Detach(child *Manager) error {
	child.mu.Lock()
	if child.parent != m {
		child.mu.Unlock()
		return rterr.New("Detach", child.Path(), rterr.ErrDetached)
	}
	child.mu.Unlock()

	if m.tree.isStarted() {
		return rterr.New("Detach", m.Path(), rterr.ErrTreeStarted)
	}

	m.mu.Lock()
	kept := m.children[:0]
	for _, c := range m.children {
		if c != child {
			kept = append(kept, c)
		}
	}
	m.children = kept
	m.mu.Unlock()

	subtree := child.preOrder()

	child.mu.Lock()
	child.parent = nil
	child.mu.Unlock()

	newTree := newTreeState(child, m.tree.gens, m.tree.exec.Size())
	m.tree.registryMu.Lock()
	kept2 := m.tree.registry.all[:0]
	var moved []*HandlerReference
	for _, h := range m.tree.registry.all {
		owned := false
		for _, n := range subtree {
			if h.owner == n {
				owned = true
				break
			}
		}
		if owned {
			moved = append(moved, h)
		} else {
			kept2 = append(kept2, h)
		}
	}
	m.tree.registry.all = kept2
	m.tree.registryMu.Unlock()

	newTree.registry.all = moved
	reassignTree(child, newTree)

	m.tree.dispatcher.invalidate()

	m.Fire(context.Background(), NewEvent(TypeKeyOf(Detached{}), Detached{Child: child, Parent: m}), BROADCAST)
	return nil
}

// AddHandler registers fn to run when an event matching eventKey is fired
// on a channel matching channelKey, at priority. Higher priority runs
// first; handlers of equal priority run in tree pre-order, then
// registration order within a component.
func (m *Manager) AddHandler(eventKey, channelKey Key, priority int32, fn HandlerFunc) *HandlerReference {
	m.tree.registryMu.Lock()
	h := m.tree.registry.add(m, eventKey, channelKey, priority, fn)
	h.treeSeq = m.indexInTree()
	m.tree.registryMu.Unlock()

	m.tree.dispatcher.invalidate()
	return h
}

// SetMetrics wires collectors into m's tree, so pipeline queue depth,
// dispatch latency and handler error counts for every component in the
// tree report into it. Pass nil to stop reporting.
func (m *Manager) SetMetrics(collectors *metrics.Collectors) {
	m.tree.mu.Lock()
	m.tree.metrics = collectors
	m.tree.mu.Unlock()
}

// HandlerReferences returns a snapshot of every handler currently
// registered by m, for introspection tooling. It does not include
// handlers registered by other components in the same tree.
func (m *Manager) HandlerReferences() []*HandlerReference {
	m.tree.registryMu.RLock()
	defer m.tree.registryMu.RUnlock()

	out := make([]*HandlerReference, 0)
	for _, h := range m.tree.registry.all {
		if h.owner == m {
			out = append(out, h)
		}
	}
	return out
}

// RemoveHandlers deregisters every handler owned by m.
func (m *Manager) RemoveHandlers() {
	m.tree.registryMu.Lock()
	m.tree.registry.remove(m)
	m.tree.registryMu.Unlock()

	m.tree.dispatcher.invalidate()
}

// Fire enqueues ev on the tree's root pipeline for processing on each of
// channels, and returns ev so callers can select on ev.Done(). If ev was
// itself caused by a handler currently processing another event (see
// context.go), the causing event's open count is incremented so global
// quiescence waits for ev too.
//
// Calling Fire with no channels from inside a handler is a feedback fire:
// it defaults to the channels the currently-handled event (read back from
// ctx) was itself fired on, so a handler can react and respond without
// naming its own channel explicitly.
func (m *Manager) Fire(ctx context.Context, ev *Event, channels ...*Channel) *Event {
	pipeline := m.tree.rootPipeline
	if len(channels) == 0 {
		if causer := eventFromContext(ctx); causer != nil {
			channels = causer.channels
			if p := PipelineFromContext(ctx); p != nil && treeFromContext(ctx) == m.tree {
				pipeline = p
			}
		}
	}
	// pipeline is always either m.tree's own root pipeline or one read
	// back from a dispatch context whose tree is m.tree, so it always
	// belongs to m.tree: the ownership check FireOn applies to
	// externally-supplied pipelines can't fail here.
	return m.fireOn(ctx, pipeline, ev, channels...)
}

// FireOn is like Fire but enqueues on an explicit pipeline, such as a
// Subchannel's dedicated response pipeline, instead of the tree's root
// pipeline. It is the checking filter spec.md's feedback component calls
// for: p must belong to m's own tree, or FireOn returns
// rterr.ErrForeignPipeline instead of enqueuing anything, rejecting a
// caller that reaches across trees to fire onto a pipeline it doesn't
// own.
func (m *Manager) FireOn(ctx context.Context, p *Pipeline, ev *Event, channels ...*Channel) (*Event, error) {
	if p.tree != m.tree {
		return nil, rterr.New("FireOn", m.Path(), rterr.ErrForeignPipeline)
	}
	return m.fireOn(ctx, p, ev, channels...), nil
}

// fireOn is the unchecked enqueue shared by Fire and FireOn.
func (m *Manager) fireOn(ctx context.Context, p *Pipeline, ev *Event, channels ...*Channel) *Event {
	ev.tree = m.tree
	ev.channels = channels

	if causer := eventFromContext(ctx); causer != nil {
		causer.causeChild(ev)
	}

	p.Add(ev, channels)
	return ev
}
