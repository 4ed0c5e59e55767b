package domain

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/concierge-ai/concierge/internal/websearch"
)

// WebSearcher runs a web search and returns ordered hits.
type WebSearcher interface {
	Search(ctx context.Context, query string, numResults int) ([]websearch.Result, error)
}

// SearchWebInput represents the MCP tool input for a web search.
type SearchWebInput struct {
	Query      string `json:"query" jsonschema:"search query"`
	NumResults int    `json:"num_results,omitempty" jsonschema:"maximum number of results (default 5)"`
}

// SearchHit represents a single search result in MCP tool outputs.
type SearchHit struct {
	Title   string `json:"title" jsonschema:"result title"`
	URL     string `json:"url" jsonschema:"result URL"`
	Snippet string `json:"snippet,omitempty" jsonschema:"result snippet"`
}

// SearchWebResult represents the MCP tool output for a web search.
type SearchWebResult struct {
	Query   string      `json:"query" jsonschema:"the query that was searched"`
	Results []SearchHit `json:"results" jsonschema:"search hits in rank order"`
	Count   int         `json:"count" jsonschema:"number of hits returned"`
}

// SearchWebTool defines the MCP tool schema for a web search.
func SearchWebTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "search_web",
		Description: "Searches the web and returns titles, URLs, and snippets",
	}
}

// SearchWebHandler executes a web search request.
func SearchWebHandler(searcher WebSearcher) mcp.ToolHandlerFor[SearchWebInput, SearchWebResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SearchWebInput) (*mcp.CallToolResult, SearchWebResult, error) {
		hits, err := searcher.Search(ctx, input.Query, input.NumResults)
		if err != nil {
			if domainError(err) {
				return errorResult(err), SearchWebResult{}, nil
			}
			return nil, SearchWebResult{}, err
		}
		result := SearchWebResult{Query: input.Query, Results: make([]SearchHit, 0, len(hits)), Count: len(hits)}
		for _, h := range hits {
			result.Results = append(result.Results, SearchHit{Title: h.Title, URL: h.URL, Snippet: h.Snippet})
		}
		return nil, result, nil
	}
}
