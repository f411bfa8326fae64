package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hypelessli/hypeless/internal/llm"
	"github.com/hypelessli/hypeless/internal/matcher"
	"github.com/hypelessli/hypeless/internal/suggest"
	"github.com/hypelessli/hypeless/internal/syntax"
)

// occurrence is a hit placed in the scanned text.
type occurrence struct {
	matcher.Hit
	Line int
}

// handleFindHypeTerms scans the given text with the matcher.
func (s *Server) handleFindHypeTerms(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: text"), nil
	}

	limit := request.GetInt("limit", 100)
	if limit <= 0 {
		limit = 100
	}

	var found []occurrence
	if request.GetBool("structured", false) {
		found = s.findStructured(text)
	} else {
		for _, h := range s.matcher.Find(text) {
			found = append(found, occurrence{Hit: h})
		}
	}

	if len(found) == 0 {
		return mcp.NewToolResultText("No hype terms found."), nil
	}
	return mcp.NewToolResultText(formatOccurrences(found, limit)), nil
}

// findStructured scans line by line and drops hits inside markup zones.
// Offsets stay relative to the whole text.
func (s *Server) findStructured(text string) []occurrence {
	var found []occurrence
	base := 0
	for i, line := range strings.Split(text, "\n") {
		zones := syntax.Zones(line)
		for _, h := range s.matcher.Find(line) {
			if syntax.Excluded(zones, h.Offset, h.End()) {
				continue
			}
			h.Offset += base
			found = append(found, occurrence{Hit: h, Line: i + 1})
		}
		base += utf8.RuneCountInString(line) + 1
	}
	return found
}

func formatOccurrences(found []occurrence, limit int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d hype term(s).\n\n", len(found))
	for i, o := range found {
		if i == limit {
			fmt.Fprintf(&b, "... %d more not shown\n", len(found)-limit)
			break
		}
		if o.Line > 0 {
			fmt.Fprintf(&b, "%d. %q at line %d, offset %d", i+1, o.Text, o.Line, o.Offset)
		} else {
			fmt.Fprintf(&b, "%d. %q at offset %d", i+1, o.Text, o.Offset)
		}
		if o.Explanation != "" {
			fmt.Fprintf(&b, ": %s", o.Explanation)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// handleExplainTerm returns the registry explanation of a term.
func (s *Server) handleExplainTerm(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	term, err := request.RequireString("term")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: term"), nil
	}

	expl, ok := s.matcher.Registry().Explain(term)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("%q is not a flagged term", term)), nil
	}
	if expl == "" {
		expl = "No explanation recorded."
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s: %s", strings.TrimSpace(term), expl)), nil
}

// handleListTerms lists the registry.
func (s *Server) handleListTerms(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	reg := s.matcher.Registry()

	var b strings.Builder
	fmt.Fprintf(&b, "# Terms (%d)\n\n", reg.Len())
	for _, t := range reg.Terms() {
		fmt.Fprintf(&b, "- **%s**", t.Text)
		if t.Explanation != "" {
			fmt.Fprintf(&b, ": %s", t.Explanation)
		}
		b.WriteString("\n")
	}
	if ex := reg.Exceptions(); len(ex) > 0 {
		b.WriteString("\n# Exceptions\n\n")
		for _, e := range ex {
			fmt.Fprintf(&b, "- %s\n", e)
		}
	}
	return mcp.NewToolResultText(b.String()), nil
}

// handleSuggestRewrites asks the suggestion service for rewrites.
func (s *Server) handleSuggestRewrites(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: text"), nil
	}

	suggestions, err := s.suggester.Generate(ctx, text, nil)
	if err != nil {
		if errors.Is(err, llm.ErrNotConfigured) {
			return mcp.NewToolResultError("No LLM API key configured. Run `hypeless init` or set the provider's API key variable."), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("suggestion request failed: %v", err)), nil
	}
	if len(suggestions) == 0 {
		return mcp.NewToolResultText("No suggestions."), nil
	}
	return mcp.NewToolResultText(formatSuggestions(suggestions)), nil
}

func formatSuggestions(list []suggest.Suggestion) string {
	var b strings.Builder
	for i, sg := range list {
		fmt.Fprintf(&b, "%d. %s\n   -> %s\n", i+1, sg.Original, sg.Improved)
		if sg.Reason != "" {
			fmt.Fprintf(&b, "   (%s, %s)\n", sg.Type, sg.Reason)
		}
	}
	return b.String()
}
