// Package mcpserver implements an MCP (Model Context Protocol) server that
// exposes single-operation extraction over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/erraggy/oaslice"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `oaslice MCP server — extracts single operations from OpenAPI documents into standalone, self-contained specs.

Tools:
- slice: extract one operation (path + method) with its full transitive component closure
- batch_slice: extract many operations in parallel, with glob/regex path filtering and a CSV index
- convert: transform a document between the 3.0.x and 3.1.x version families

Every extraction is verified by two completeness checks before it is returned: all references in the output must resolve internally, and an independent recomputation against the source must find nothing missing.`

// Run starts the MCP server over stdio and blocks until the client
// disconnects or the context is cancelled.
func Run(ctx context.Context) error {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "oaslice", Version: oaslice.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "slice",
		Description: "Extract a single operation (path + method) from an OpenAPI document into a standalone spec containing the operation and the complete transitive closure of components it depends on: schemas, headers, parameters, responses, request bodies, security schemes, links, and callbacks. The result passes two completeness checks before it is returned. Use output to write to a file instead of returning the document inline.",
	}, handleSlice)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "batch_slice",
		Description: "Extract many operations from an OpenAPI document in parallel, one output file per operation, plus a CSV index of what was extracted. Filter paths with a glob (/users/*) or regex (^/api/v\\d+) pattern. Failed endpoints are reported individually and never abort the batch. Use dry_run=true to preview how many endpoints match.",
	}, handleBatchSlice)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "convert",
		Description: "Convert an OpenAPI document between the 3.0.x and 3.1.x version families. Reports every lossy or best-effort transformation as an issue. With strict=true, constructs the target family cannot express fail the conversion instead.",
	}, handleConvert)
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
