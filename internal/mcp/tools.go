package mcp

import "github.com/mark3labs/mcp-go/mcp"

// findHypeTermsTool defines the find_hype_terms MCP tool.
var findHypeTermsTool = mcp.NewTool("find_hype_terms",
	mcp.WithDescription("Find hype terms in a piece of writing. Returns each flagged occurrence with its position and the reason it is flagged."),
	mcp.WithString("text",
		mcp.Required(),
		mcp.Description("The text to scan"),
	),
	mcp.WithBoolean("structured",
		mcp.Description("Treat the text as LaTeX source and skip commands, braces and math (default false)"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of occurrences to return (default 100)"),
	),
)

// explainTermTool defines the explain_term MCP tool.
var explainTermTool = mcp.NewTool("explain_term",
	mcp.WithDescription("Explain why a term is considered hype."),
	mcp.WithString("term",
		mcp.Required(),
		mcp.Description("The term to look up, case-insensitive"),
	),
)

// listTermsTool defines the list_terms MCP tool.
var listTermsTool = mcp.NewTool("list_terms",
	mcp.WithDescription("List every flagged term and the exception phrases that suppress a flag."),
)

// suggestRewritesTool defines the suggest_rewrites MCP tool.
var suggestRewritesTool = mcp.NewTool("suggest_rewrites",
	mcp.WithDescription("Ask the configured LLM for plainer rewrites of sentences that contain hype terms."),
	mcp.WithString("text",
		mcp.Required(),
		mcp.Description("The text to rewrite"),
	),
)
