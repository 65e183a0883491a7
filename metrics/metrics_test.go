package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/newbpydev/eventrt/metrics"
)

func TestCollectorsRecordObservations(t *testing.T) {
	c := metrics.New()
	reg := prometheus.NewRegistry()
	require.NoError(t, c.Register(reg))

	c.ObserveQueueDepth("root", 3)
	c.ObserveDispatch("myEvent", 12*time.Millisecond)
	c.SetGeneratorCount(1)
	c.IncHandlerErrors("myEvent")

	families, err := reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, families)

	var found bool
	for _, f := range families {
		if f.GetName() == "eventrt_generator_registry_size" {
			found = true
			require.Len(t, f.Metric, 1)
			require.Equal(t, float64(1), f.Metric[0].GetGauge().GetValue())
		}
	}
	require.True(t, found)
}

func TestNilCollectorsAreNoOps(t *testing.T) {
	var c *metrics.Collectors
	require.NotPanics(t, func() {
		c.ObserveQueueDepth("root", 1)
		c.ObserveDispatch("x", time.Millisecond)
		c.SetGeneratorCount(2)
		c.IncHandlerErrors("x")
		require.NoError(t, c.Register(prometheus.NewRegistry()))
	})
}
