package core

import "sync"

// Pipeline is a single-threaded FIFO event processor. It owns an
// EventQueue; while the queue is non-empty it holds exactly one borrowed
// Executor slot and registers itself with a GeneratorRegistry, so a tree
// is considered quiescent only once every pipeline's queue has drained.
type Pipeline struct {
	Name string

	queue *EventQueue
	exec  *Executor
	gens  *GeneratorRegistry
	tree  *treeState

	mu      sync.Mutex
	running bool

	dispatch    func(entry queueEntry, p *Pipeline)
	reportDepth func(name string, depth int)
}

// NewPipeline builds an idle pipeline backed by exec and registering itself
// with gens while draining. tree is the component tree this pipeline
// belongs to, used by Manager.FireOn to reject a feedback fire routed to a
// pipeline from a different tree.
func NewPipeline(name string, exec *Executor, gens *GeneratorRegistry, tree *treeState) *Pipeline {
	return &Pipeline{
		Name:  name,
		queue: NewEventQueue(),
		exec:  exec,
		gens:  gens,
		tree:  tree,
	}
}

// setDispatch wires the function used to actually process one queue entry;
// treeState sets this once at construction to close over its dispatcher.
func (p *Pipeline) setDispatch(fn func(entry queueEntry, p *Pipeline)) {
	p.dispatch = fn
}

// setMetricsReporter wires a callback invoked with the pipeline's queue
// depth after every enqueue and drain step.
func (p *Pipeline) setMetricsReporter(fn func(name string, depth int)) {
	p.reportDepth = fn
}

func (p *Pipeline) report() {
	if p.reportDepth != nil {
		p.reportDepth(p.Name, p.queue.Len())
	}
}

// Add enqueues ev fired on channels, starting the drain loop if the
// pipeline was idle. The idle-to-executing transition is atomic with the
// enqueue so no fired event is ever left unprocessed while the pipeline
// reports itself idle.
func (p *Pipeline) Add(ev *Event, channels []*Channel) {
	p.queue.Add(ev, channels)
	p.report()

	p.mu.Lock()
	alreadyRunning := p.running
	if !alreadyRunning {
		p.running = true
		p.gens.Add(p)
	}
	p.mu.Unlock()

	if !alreadyRunning {
		p.exec.Run(p.drain)
	}
}

// drain repeatedly pops and processes queue entries until the queue is
// empty, then marks itself idle and deregisters from the generator
// registry, both under the same lock Add uses to register. That symmetry
// matters: if the deregistration happened after unlocking, a concurrent
// Add could see running==false, re-register with gens and start a second
// drain goroutine before this one's now-stale gens.Remove ran, which would
// deregister the pipeline while the second drain is genuinely still
// working. Keeping both the flag flip and the registry call under p.mu
// rules that out — a concurrent Add either observes running and returns
// without restarting drain (drain will see the new entry before exiting),
// or arrives after drain has fully stopped and correctly starts a fresh
// drain.
func (p *Pipeline) drain() {
	for {
		entry, ok := p.queue.Remove()
		if !ok {
			p.mu.Lock()
			if p.queue.Len() > 0 {
				p.mu.Unlock()
				continue
			}
			p.running = false
			p.gens.Remove(p)
			p.mu.Unlock()
			return
		}
		entry.event.setProcessedBy(p)
		if p.dispatch != nil {
			p.dispatch(entry, p)
		}
		entry.event.close()
		p.report()
	}
}

// Len reports how many entries are currently queued (not counting the one,
// if any, currently being dispatched).
func (p *Pipeline) Len() int { return p.queue.Len() }

// Running reports whether the pipeline currently holds an executor slot.
func (p *Pipeline) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// Merge drains other's backlog into p and leaves other's queue empty,
// used when a buffering pipeline (e.g. one accumulating events fired
// before the tree started) hands its backlog to the tree's real root
// pipeline.
func (p *Pipeline) Merge(other *Pipeline) {
	other.queue.DrainTo(p.queue)

	p.mu.Lock()
	needStart := !p.running && p.queue.Len() > 0
	if needStart {
		p.running = true
		p.gens.Add(p)
	}
	p.mu.Unlock()

	if needStart {
		p.exec.Run(p.drain)
	}
}
