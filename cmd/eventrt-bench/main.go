// Command eventrt-bench builds a small sample component tree, fires a
// configurable burst of synthetic events through it, waits for the tree
// to quiesce, and reports dispatch throughput. It also exercises the
// Prometheus metrics wiring by serving /metrics for the duration of the
// run.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/newbpydev/eventrt/metrics"
	"github.com/newbpydev/eventrt/pkg/core"
	"github.com/newbpydev/eventrt/runtimeconfig"
)

// benchEvent is the synthetic payload fired during the benchmark.
type benchEvent struct {
	seq int
}

func main() {
	count := flag.Int("count", 10000, "number of synthetic events to fire")
	width := flag.Int("width", 8, "number of sibling components to attach under root")
	flag.Parse()

	cfg, err := runtimeconfig.Load("")
	if err != nil {
		fmt.Fprintln(os.Stderr, "loading config:", err)
		os.Exit(1)
	}

	collectors := metrics.New()
	reg := prometheus.NewRegistry()
	if err := collectors.Register(reg); err != nil {
		fmt.Fprintln(os.Stderr, "registering metrics:", err)
		os.Exit(1)
	}

	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		srv := &http.Server{Addr: cfg.MetricsAddr, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				slog.Error("metrics server stopped", "err", err)
			}
		}()
		defer srv.Close()
	}

	root := core.NewManager("bench-root", nil, core.WithWorkerPoolSize(cfg.WorkerPoolSize))
	root.SetMetrics(collectors)

	var handled int
	done := make(chan struct{})
	root.AddHandler(core.TypeKeyOf(benchEvent{}), core.Broadcast, 0, func(ctx context.Context, ev *core.Event) error {
		handled++
		if handled == *count {
			close(done)
		}
		return nil
	})

	for i := 0; i < *width; i++ {
		child := core.NewManager(fmt.Sprintf("leaf-%d", i), nil)
		if err := root.Attach(child); err != nil {
			fmt.Fprintln(os.Stderr, "attach:", err)
			os.Exit(1)
		}
	}

	components := core.NewComponents(root)
	components.Start(context.Background())

	start := time.Now()
	for i := 0; i < *count; i++ {
		root.Fire(context.Background(), core.NewEvent(core.TypeKeyOf(benchEvent{}), benchEvent{seq: i}), core.BROADCAST)
	}

	select {
	case <-done:
	case <-time.After(cfg.AwaitExhaustionTimeout):
		fmt.Fprintln(os.Stderr, "timed out waiting for all events to be handled")
		os.Exit(1)
	}
	elapsed := time.Since(start)

	components.AwaitExhaustion(cfg.AwaitExhaustionTimeout)

	fmt.Printf("fired %d events across %d components in %s (%.0f events/sec)\n",
		*count, *width+1, elapsed, float64(*count)/elapsed.Seconds())
}
