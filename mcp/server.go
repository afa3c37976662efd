// Package mcp exposes the WebCrawler capability as a Model Context
// Protocol tool.
package mcp

import (
	"context"
	"encoding/json"
	"io"

	"github.com/fwojciec/webcrawler"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ServerName identifies this server to MCP clients.
const ServerName = "webcrawler"

// Server serves the WebCrawler tool over MCP.
type Server struct {
	tool *webcrawler.Tool
	mcp  *server.MCPServer
}

// NewServer creates a new Server that fetches with fetcher and declares
// capability as its only tool.
func NewServer(fetcher webcrawler.ContentFetcher, capability webcrawler.Capability, version string) (*Server, error) {
	tool, err := NewTool(capability)
	if err != nil {
		return nil, err
	}
	s := &Server{
		tool: webcrawler.NewTool(fetcher),
		mcp:  server.NewMCPServer(ServerName, version, server.WithToolCapabilities(false)),
	}
	s.mcp.AddTool(tool, s.HandleWebCrawler)
	return s, nil
}

// NewTool returns the MCP declaration of capability. The input schema is
// passed through unchanged so MCP clients see the same schema as the
// Gemini and OpenAI agents, "format": "uri" included.
func NewTool(capability webcrawler.Capability) (mcp.Tool, error) {
	schema, err := json.Marshal(capability.Parameters)
	if err != nil {
		return mcp.Tool{}, webcrawler.Errorf(webcrawler.EINTERNAL, "failed to marshal input schema: %v", err)
	}
	return mcp.NewToolWithRawSchema(capability.Name, capability.Description, schema), nil
}

// HandleWebCrawler handles a WebCrawler tool call. Validation and
// transport failures are returned as tool errors visible to the model.
func (s *Server) HandleWebCrawler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := req.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	out, err := s.tool.Call(ctx, webcrawler.Input{URL: url})
	if err != nil {
		return mcp.NewToolResultError(webcrawler.ErrorMessage(err)), nil
	}
	return mcp.NewToolResultText(out), nil
}

// Serve serves MCP over the given streams until ctx is cancelled or
// stdin is closed.
func (s *Server) Serve(ctx context.Context, stdin io.Reader, stdout io.Writer) error {
	return server.NewStdioServer(s.mcp).Listen(ctx, stdin, stdout)
}
