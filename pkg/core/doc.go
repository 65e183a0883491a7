/*
Package core implements the event runtime: the component tree, the
channel/event matching algebra, the handler registry and priority-ordered
dispatch, the per-pipeline FIFO event processor with causal tracking, and
the generator registry that implements global quiescence.

# Component Tree

A Manager is a node in a tree of components. Every Manager belongs to
exactly one tree; the tree carries shared state (root pipeline, handler
cache, generator membership) so that firing an event anywhere in the tree
can reach handlers anywhere else in the tree.

	root := core.NewManager("root", nil)
	child := core.NewManager("child", nil)
	root.Attach(child)

# Events and Channels

Events carry a match key and are fired on one or more channels. A handler
declares the event key and channel key it wants to receive; the dispatcher
walks the tree in pre-order, collects handlers whose keys match, sorts by
descending priority, and invokes them synchronously on the firing
pipeline's goroutine.

	root.AddHandler(core.TypeKeyOf(MyEvent{}), core.Broadcast, 0, func(ctx context.Context, ev *core.Event) error {
	    return nil
	})
	root.Fire(context.Background(), core.NewEvent(core.TypeKeyOf(MyEvent{}), MyEvent{}), core.BROADCAST)

# Pipelines and Quiescence

Every tree has a root Pipeline that drains its queue on a borrowed
goroutine from a shared Executor. A pipeline registers with the
GeneratorRegistry while it has work; Components.AwaitExhaustion blocks
until every pipeline is idle and every other long-running generator
(registered directly against the registry) has deregistered.

This package is deliberately monolithic, mirroring how tightly-coupled
component/event/handler/pipeline state was kept together in the original
bubblyui pkg/core package: the tree, its pipeline, its handler cache and
its dispatcher are mutually recursive and do not factor cleanly into
separate packages without either an import cycle or an interface-only
split that buys nothing. The top-level match, channel, event, handler,
component, pipeline, generator and lifecycle packages are thin aliases
over this package, giving callers a narrower import surface per concern.
*/
package core
