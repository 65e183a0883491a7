package core

import "context"

// Dispatch context keys. These are private types so only this package can
// populate them; callers read the values back out through the accessor
// functions below.
type (
	pipelineCtxKey struct{}
	eventCtxKey    struct{}
	treeCtxKey     struct{}
)

// withPipeline attaches the pipeline currently draining a handler
// invocation to ctx.
func withPipeline(ctx context.Context, p *Pipeline) context.Context {
	return context.WithValue(ctx, pipelineCtxKey{}, p)
}

// PipelineFromContext returns the pipeline currently processing the
// handler invocation ctx was threaded through, or nil outside of one.
func PipelineFromContext(ctx context.Context) *Pipeline {
	p, _ := ctx.Value(pipelineCtxKey{}).(*Pipeline)
	return p
}

// withEvent attaches the event currently being handled to ctx, so that a
// handler firing a new event from within its own invocation establishes
// the causal parent link (see Event.causeChild) without any thread-local
// state: the context argument itself carries "the event currently being
// handled", which is what a true thread-local would track in a runtime
// that dispatched each pipeline on its own dedicated OS thread.
func withEvent(ctx context.Context, ev *Event) context.Context {
	return context.WithValue(ctx, eventCtxKey{}, ev)
}

// eventFromContext returns the event currently being handled in ctx, or
// nil at the top of a fire chain.
func eventFromContext(ctx context.Context) *Event {
	ev, _ := ctx.Value(eventCtxKey{}).(*Event)
	return ev
}

// withTree attaches the owning tree's shared state to ctx, letting a
// feedback fire (fire with no explicit channels) reuse the pipeline read
// back from ctx only when that context belongs to the firing component's
// own tree.
func withTree(ctx context.Context, ts *treeState) context.Context {
	return context.WithValue(ctx, treeCtxKey{}, ts)
}

func treeFromContext(ctx context.Context) *treeState {
	ts, _ := ctx.Value(treeCtxKey{}).(*treeState)
	return ts
}
