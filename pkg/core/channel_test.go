package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/newbpydev/eventrt/pkg/core"
)

func TestSubchannelSharesParentMatchKey(t *testing.T) {
	root := core.NewManager("root", core.NewGeneratorRegistry())
	parent := core.NewChannel("conn")
	sub := core.NewSubchannel(parent, root)

	assert.True(t, sub.Matches(parent.Key()))
}

func TestSubchannelAssociationFallsBackToUpstream(t *testing.T) {
	root := core.NewManager("root", core.NewGeneratorRegistry())
	parent := core.NewChannel("conn")
	upstream := core.NewSubchannel(parent, root)
	upstream.Associate("user", "alice")

	linked := core.NewLinkedSubchannel(parent, upstream, nil, root)

	v, ok := linked.Associated("user")
	assert.True(t, ok)
	assert.Equal(t, "alice", v)
}

func TestLinkedSubchannelBacklinksUpstreamWhenKeyGiven(t *testing.T) {
	root := core.NewManager("root", core.NewGeneratorRegistry())
	parent := core.NewChannel("conn")
	upstream := core.NewSubchannel(parent, root)

	linked := core.NewLinkedSubchannel(parent, upstream, "downstream", root)

	v, ok := upstream.Associated("downstream")
	assert.True(t, ok)
	assert.Same(t, linked, v)
}
