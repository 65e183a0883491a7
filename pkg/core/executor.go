package core

// Executor is a bounded pool of worker slots shared by every pipeline in a
// tree. A pipeline borrows a slot for as long as its queue is non-empty and
// releases it the moment the queue drains, so a tree with many idle
// pipelines costs nothing beyond the slots actually in use.
type Executor struct {
	slots chan struct{}
}

// NewExecutor builds an Executor with the given number of worker slots. A
// size of 0 or less defaults to a generous fixed size, since the runtime
// otherwise has no way to run any pipeline at all.
func NewExecutor(size int) *Executor {
	if size <= 0 {
		size = 32
	}
	return &Executor{slots: make(chan struct{}, size)}
}

// Size returns the number of worker slots this executor was built with.
func (e *Executor) Size() int { return cap(e.slots) }

// Run borrows a slot, blocking if every slot is in use, then starts fn on
// a new goroutine and returns without waiting for it; the slot is released
// when fn returns. fn is expected to run a pipeline's drain loop to
// completion before returning.
func (e *Executor) Run(fn func()) {
	e.slots <- struct{}{}
	go func() {
		defer func() { <-e.slots }()
		fn()
	}()
}
