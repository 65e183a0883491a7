package eventrt_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newbpydev/eventrt/channel"
	"github.com/newbpydev/eventrt/component"
	"github.com/newbpydev/eventrt/event"
	"github.com/newbpydev/eventrt/lifecycle"
	"github.com/newbpydev/eventrt/match"
)

type greeting struct {
	Name string
}

// TestTopLevelPackagesComposeEndToEnd exercises the thin alias packages
// together the way an external caller would, instead of reaching into
// pkg/core directly.
func TestTopLevelPackagesComposeEndToEnd(t *testing.T) {
	root := component.NewManager("app", nil)
	greeter := component.NewManager("greeter", nil)
	require.NoError(t, root.Attach(greeter))

	var received []string
	greeter.AddHandler(match.TypeKeyOf(greeting{}), channel.BROADCAST.Key(), 0, func(ctx context.Context, ev *event.Event) error {
		received = append(received, ev.Payload().(greeting).Name)
		return nil
	})

	components := lifecycle.NewComponents(root)
	components.Start(context.Background())

	root.Fire(context.Background(), event.New(match.TypeKeyOf(greeting{}), greeting{Name: "Ada"}), channel.BROADCAST)

	ok := components.AwaitExhaustion(time.Second)
	require.True(t, ok)

	assert.Equal(t, []string{"Ada"}, received)
}
