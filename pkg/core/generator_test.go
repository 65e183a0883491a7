package core_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/newbpydev/eventrt/pkg/core"
)

func TestAwaitExhaustionReturnsImmediatelyWhenEmpty(t *testing.T) {
	reg := core.NewGeneratorRegistry()
	assert.True(t, reg.AwaitExhaustion(time.Second))
}

func TestAwaitExhaustionBlocksUntilLastGeneratorRemoved(t *testing.T) {
	reg := core.NewGeneratorRegistry()
	reg.Add("worker-1")

	done := make(chan bool, 1)
	go func() {
		done <- reg.AwaitExhaustion(time.Second)
	}()

	time.Sleep(20 * time.Millisecond)
	reg.Remove("worker-1")

	select {
	case ok := <-done:
		assert.True(t, ok)
	case <-time.After(time.Second):
		t.Fatal("AwaitExhaustion never returned")
	}
}

func TestAwaitExhaustionTimesOutWhenNeverDrained(t *testing.T) {
	reg := core.NewGeneratorRegistry()
	reg.Add("stuck")

	assert.False(t, reg.AwaitExhaustion(20*time.Millisecond))
	reg.Remove("stuck") // cleanup so the watcher goroutine can exit
}

func TestRegistryCountReflectsAddAndRemove(t *testing.T) {
	reg := core.NewGeneratorRegistry()
	assert.Equal(t, 0, reg.Count())
	reg.Add("a")
	reg.Add("b")
	assert.Equal(t, 2, reg.Count())
	reg.Remove("a")
	assert.Equal(t, 1, reg.Count())
}
