// Package introspect exposes a live component tree over MCP, as a
// read-only debugging aid: a single tool that returns each component's
// path, handler count and the current size of the generator registry
// passed to NewServer, so an MCP-aware client (an editor, an agent) can inspect a
// running tree without the program exposing any bespoke HTTP endpoint.
package introspect

import (
	"context"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/newbpydev/eventrt/pkg/core"
)

// NodeSnapshot describes one component at the moment a snapshot tool call
// ran.
type NodeSnapshot struct {
	Path         string `json:"path"`
	ChildCount   int    `json:"childCount"`
	HandlerCount int    `json:"handlerCount"`
}

// Snapshot is the full result of one tree_snapshot tool call.
type Snapshot struct {
	Nodes          []NodeSnapshot `json:"nodes"`
	GeneratorCount int            `json:"generatorCount"`
}

// snapshotArgs is the (empty) argument struct for the tree_snapshot tool;
// it exists so the generic tool registration can infer a JSON schema for
// the call even though no arguments are accepted today.
type snapshotArgs struct{}

// Server wraps an MCP server pre-wired with a tree_snapshot tool bound to
// root.
type Server struct {
	root *core.Manager
	mcp  *mcp.Server
}

// NewServer builds a Server exposing root's tree.
func NewServer(root *core.Manager, gens *core.GeneratorRegistry) *Server {
	s := &Server{root: root}
	s.mcp = mcp.NewServer(&mcp.Implementation{
		Name:    "eventrt-introspect",
		Version: "0.1.0",
	}, nil)

	inputSchema, err := jsonschema.For[snapshotArgs](nil)
	if err != nil {
		// snapshotArgs is a fixed, empty struct; a schema for it always
		// derives successfully.
		panic(fmt.Sprintf("introspect: deriving tree_snapshot input schema: %v", err))
	}

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "tree_snapshot",
		Description: "Return every component's path and handler count, plus the current generator registry size.",
		InputSchema: inputSchema,
	}, func(ctx context.Context, req *mcp.CallToolRequest, args snapshotArgs) (*mcp.CallToolResult, Snapshot, error) {
		snap := s.snapshot(gens)
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("%d components, %d generators active", len(snap.Nodes), snap.GeneratorCount)}},
		}, snap, nil
	})

	return s
}

// snapshot walks root's tree and builds a Snapshot.
func (s *Server) snapshot(gens *core.GeneratorRegistry) Snapshot {
	nodes := make([]NodeSnapshot, 0)
	for _, n := range s.root.Iterator() {
		nodes = append(nodes, NodeSnapshot{
			Path:         n.Path(),
			ChildCount:   len(n.Children()),
			HandlerCount: len(n.HandlerReferences()),
		})
	}
	count := 0
	if gens != nil {
		count = gens.Count()
	}
	return Snapshot{Nodes: nodes, GeneratorCount: count}
}

// Run serves the MCP server over transport until ctx is cancelled or the
// transport closes.
func (s *Server) Run(ctx context.Context, transport mcp.Transport) error {
	return s.mcp.Run(ctx, transport)
}
