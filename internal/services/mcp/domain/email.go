package domain

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/concierge-ai/concierge/internal/mail"
)

// EmailSender delivers an email and returns the provider's message id.
type EmailSender interface {
	Send(ctx context.Context, msg mail.Message) (string, error)
}

// SendEmailInput represents the MCP tool input for sending an email.
type SendEmailInput struct {
	To       []string `json:"to" jsonschema:"recipient email addresses"`
	Subject  string   `json:"subject" jsonschema:"email subject"`
	HTMLBody string   `json:"html_body" jsonschema:"email body as HTML"`
	TextBody string   `json:"text_body,omitempty" jsonschema:"optional plain-text body; derived from the HTML body when empty"`
	From     string   `json:"from,omitempty" jsonschema:"optional sender address; a default is used when empty"`
}

// SendEmailResult represents the MCP tool output for sending an email.
type SendEmailResult struct {
	MessageID string   `json:"message_id" jsonschema:"provider message identifier"`
	To        []string `json:"to" jsonschema:"recipients the email was sent to"`
	Subject   string   `json:"subject" jsonschema:"email subject"`
}

// SendEmailTool defines the MCP tool schema for sending an email.
func SendEmailTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "send_email",
		Description: "Sends an email through the configured delivery provider",
	}
}

// SendEmailHandler executes an email delivery request.
func SendEmailHandler(sender EmailSender) mcp.ToolHandlerFor[SendEmailInput, SendEmailResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SendEmailInput) (*mcp.CallToolResult, SendEmailResult, error) {
		id, err := sender.Send(ctx, mail.Message{
			To:        input.To,
			From:      input.From,
			Subject:   input.Subject,
			HTMLBody:  input.HTMLBody,
			PlainText: input.TextBody,
		})
		if err != nil {
			if domainError(err) {
				return errorResult(err), SendEmailResult{}, nil
			}
			return nil, SendEmailResult{}, err
		}
		return nil, SendEmailResult{MessageID: id, To: input.To, Subject: input.Subject}, nil
	}
}
