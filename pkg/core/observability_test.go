package core_test

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newbpydev/eventrt/metrics"
	"github.com/newbpydev/eventrt/pkg/core"
	"github.com/newbpydev/eventrt/rtobservability"
)

type fakeReporter struct {
	errs []error
}

func (f *fakeReporter) ReportError(err error, ctx rtobservability.ErrorContext) {
	f.errs = append(f.errs, err)
}

func (f *fakeReporter) Flush(timeout time.Duration) bool { return true }

type boomEvent struct{}

func TestHandlerErrorsAreForwardedToInstalledReporter(t *testing.T) {
	reporter := &fakeReporter{}
	rtobservability.SetReporter(reporter)
	defer rtobservability.SetReporter(nil)

	root := core.NewManager("root", core.NewGeneratorRegistry())
	root.AddHandler(core.TypeKeyOf(boomEvent{}), core.Broadcast, 0, func(ctx context.Context, ev *core.Event) error {
		panic("kaboom")
	})

	ev := root.Fire(context.Background(), core.NewEvent(core.TypeKeyOf(boomEvent{}), boomEvent{}), core.BROADCAST)
	<-ev.Done()

	require.Len(t, reporter.errs, 1)
	assert.Contains(t, reporter.errs[0].Error(), "kaboom")
}

func TestMetricsCollectorsObserveDispatchAndQueueDepth(t *testing.T) {
	collectors := metrics.New()
	reg := prometheus.NewRegistry()
	require.NoError(t, collectors.Register(reg))

	root := core.NewManager("root", core.NewGeneratorRegistry())
	root.SetMetrics(collectors)

	root.AddHandler(core.TypeKeyOf(boomEvent{}), core.Broadcast, 0, func(ctx context.Context, ev *core.Event) error {
		return nil
	})
	ev := root.Fire(context.Background(), core.NewEvent(core.TypeKeyOf(boomEvent{}), boomEvent{}), core.BROADCAST)
	<-ev.Done()

	families, err := reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, families)

	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["eventrt_pipeline_queue_depth"])
	assert.True(t, names["eventrt_dispatch_duration_seconds"])
}
