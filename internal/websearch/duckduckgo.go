// Package websearch queries the DuckDuckGo HTML endpoint and extracts
// results with CSS selectors. No API key is required.
package websearch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	apperrors "github.com/concierge-ai/concierge/internal/platform/errors"
	"github.com/concierge-ai/concierge/internal/platform/timeouts"
)

const defaultBaseURL = "https://html.duckduckgo.com"

// DefaultNumResults is used when the caller asks for zero or fewer results.
const DefaultNumResults = 5

// defaultUserAgent mirrors a desktop browser; the HTML endpoint rejects
// obviously non-browser agents.
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Result is a single search hit.
type Result struct {
	Title   string
	URL     string
	Snippet string
}

// Client searches the web.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
}

// Option configures the client.
type Option func(*Client)

// WithBaseURL overrides the search endpoint, mainly for tests.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

// NewClient creates a search client with browser-like defaults.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:   defaultBaseURL,
		userAgent: defaultUserAgent,
		http:      &http.Client{Timeout: timeouts.UpstreamRequest},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search returns up to numResults ordered hits for the query.
func (c *Client) Search(ctx context.Context, query string, numResults int) ([]Result, error) {
	if strings.TrimSpace(query) == "" {
		return nil, apperrors.New(apperrors.CodeSearchEmptyQuery, "search query is required")
	}
	if numResults <= 0 {
		numResults = DefaultNumResults
	}

	searchURL := fmt.Sprintf("%s/html/?q=%s", c.baseURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeSearchUpstream, "search request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.WithMetadata(
			apperrors.CodeSearchUpstream,
			fmt.Sprintf("search failed with status %d", resp.StatusCode),
			map[string]string{"status": resp.Status},
		)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeSearchUpstream, "parse search response", err)
	}

	results := make([]Result, 0, numResults)
	doc.Find("div.result").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		link := s.Find("a.result__a").First()
		title := strings.TrimSpace(link.Text())
		if title == "" {
			return true
		}
		href, _ := link.Attr("href")
		results = append(results, Result{
			Title:   title,
			URL:     resolveRedirect(href),
			Snippet: strings.TrimSpace(s.Find(".result__snippet").Text()),
		})
		return len(results) < numResults
	})
	return results, nil
}

// resolveRedirect unwraps DuckDuckGo's /l/?uddg= redirect links to the
// target URL. Unrecognized hrefs pass through unchanged.
func resolveRedirect(href string) string {
	if href == "" {
		return ""
	}
	parsed, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := parsed.Query().Get("uddg"); target != "" {
		return target
	}
	return href
}
