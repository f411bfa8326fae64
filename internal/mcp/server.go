package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/hypelessli/hypeless/internal/matcher"
	"github.com/hypelessli/hypeless/internal/suggest"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes hype detection tools.
type Server struct {
	matcher   *matcher.Matcher
	suggester *suggest.Service
	mcp       *server.MCPServer
}

// NewServer creates a new MCP server. A nil suggester leaves out the
// suggest_rewrites tool.
func NewServer(m *matcher.Matcher, suggester *suggest.Service) *Server {
	s := &Server{
		matcher:   m,
		suggester: suggester,
	}

	s.mcp = server.NewMCPServer(
		"hypeless",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(findHypeTermsTool, s.handleFindHypeTerms)
	s.mcp.AddTool(explainTermTool, s.handleExplainTerm)
	s.mcp.AddTool(listTermsTool, s.handleListTerms)
	if s.suggester != nil {
		s.mcp.AddTool(suggestRewritesTool, s.handleSuggestRewrites)
	}
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
