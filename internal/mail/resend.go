// Package mail delivers email through the Resend HTTP API.
package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	apperrors "github.com/concierge-ai/concierge/internal/platform/errors"
	"github.com/concierge-ai/concierge/internal/platform/timeouts"
)

const defaultBaseURL = "https://api.resend.com"

// DefaultFrom is the sender used when a message carries no from address.
const DefaultFrom = "onboarding@resend.dev"

// Message is an outgoing email.
type Message struct {
	From      string
	To        []string
	Subject   string
	HTMLBody  string
	PlainText string // optional; derived from HTMLBody when empty
}

// Client calls the Resend API.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// Option configures the client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint, mainly for tests.
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

// NewClient creates a Resend client. The key may be empty; Send reports a
// configuration error before any I/O in that case.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: timeouts.UpstreamRequest},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// htmlBreaks rewrites common HTML line-break markup into newlines for the
// plain-text fallback.
var htmlBreaks = strings.NewReplacer(
	"<br>", "\n",
	"<br/>", "\n",
	"<br />", "\n",
	"</p>", "\n",
	"<p>", "",
)

type sendPayload struct {
	From    string `json:"from"`
	To      any    `json:"to"` // single recipient collapses to a string
	Subject string `json:"subject"`
	HTML    string `json:"html"`
	Text    string `json:"text"`
}

type sendResponse struct {
	ID string `json:"id"`
}

// Send delivers the message and returns the upstream message id.
func (c *Client) Send(ctx context.Context, msg Message) (string, error) {
	if len(msg.To) == 0 || msg.Subject == "" || msg.HTMLBody == "" {
		return "", apperrors.New(apperrors.CodeMailMissingField, "to, subject, and body are required")
	}
	if c.apiKey == "" {
		return "", apperrors.New(apperrors.CodeMailMissingAPIKey, "resend api key is not configured")
	}

	from := msg.From
	if from == "" {
		from = DefaultFrom
	}
	text := msg.PlainText
	if text == "" {
		text = htmlBreaks.Replace(msg.HTMLBody)
	}

	var to any = msg.To
	if len(msg.To) == 1 {
		to = msg.To[0]
	}

	body, err := json.Marshal(sendPayload{
		From:    from,
		To:      to,
		Subject: msg.Subject,
		HTML:    msg.HTMLBody,
		Text:    text,
	})
	if err != nil {
		return "", fmt.Errorf("encode email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build email request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeMailUpstream, "email delivery request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", apperrors.WithMetadata(
			apperrors.CodeMailUpstream,
			fmt.Sprintf("email delivery failed with status %d", resp.StatusCode),
			map[string]string{"status": resp.Status, "body": string(excerpt)},
		)
	}

	var parsed sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", apperrors.Wrap(apperrors.CodeMailUpstream, "decode email delivery response", err)
	}
	return parsed.ID, nil
}
