package core

import (
	"sync"

	"github.com/newbpydev/eventrt/metrics"
)

// treeState is the state shared by every Manager in one component tree:
// the handler registry, the dispatcher and its cache, the root pipeline
// new top-level fires use by default, the executor pipelines borrow slots
// from, the generator registry quiescence is measured against, and a
// started flag that, once set, rejects further structural changes.
type treeState struct {
	mu sync.RWMutex

	registryMu sync.RWMutex
	registry   *Registry

	dispatcher *Dispatcher

	exec *Executor
	gens *GeneratorRegistry

	root         *Manager
	rootPipeline *Pipeline

	started bool

	metrics *metrics.Collectors
}

// newTreeState builds the shared state for a freshly created, detached
// root manager. workerPoolSize sizes the tree's Executor; 0 or less uses
// the executor's own default.
func newTreeState(root *Manager, gens *GeneratorRegistry, workerPoolSize int) *treeState {
	if gens == nil {
		gens = DefaultRegistry()
	}
	ts := &treeState{
		registry: NewRegistry(),
		exec:     NewExecutor(workerPoolSize),
		gens:     gens,
		root:     root,
	}
	ts.dispatcher = newDispatcher(ts)
	ts.rootPipeline = NewPipeline(root.name+":root", ts.exec, ts.gens, ts)
	ts.rootPipeline.setDispatch(func(entry queueEntry, p *Pipeline) {
		ts.dispatcher.dispatch(entry.event, entry.channels)
	})
	ts.rootPipeline.setMetricsReporter(ts.reportQueueDepth)
	return ts
}

// reportQueueDepth forwards a pipeline's queue depth to the tree's wired
// metrics collectors, if any, along with the registry's current size.
func (ts *treeState) reportQueueDepth(name string, depth int) {
	ts.mu.RLock()
	m := ts.metrics
	ts.mu.RUnlock()
	if m == nil {
		return
	}
	m.ObserveQueueDepth(name, depth)
	m.SetGeneratorCount(ts.gens.Count())
}

// isStarted reports whether Start has been broadcast on this tree, which
// forbids further Attach/Detach.
func (ts *treeState) isStarted() bool {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return ts.started
}

func (ts *treeState) markStarted() {
	ts.mu.Lock()
	ts.started = true
	ts.mu.Unlock()
}
