package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	apperrors "github.com/concierge-ai/concierge/internal/platform/errors"
)

// errorResult renders a domain error into a tool result the caller can act
// on: "KIND: message" plus sorted metadata pairs. Errors without a domain
// code degrade to INTERNAL.
func errorResult(err error) *mcp.CallToolResult {
	var derr *apperrors.Error
	if !errors.As(err, &derr) {
		derr = apperrors.Wrap(apperrors.CodeUnknown, err.Error(), err)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s", derr.Code.Kind(), derr.Message)
	if len(derr.Metadata) > 0 {
		keys := make([]string, 0, len(derr.Metadata))
		for k := range derr.Metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		pairs := make([]string, 0, len(keys))
		for _, k := range keys {
			pairs = append(pairs, fmt.Sprintf("%s=%s", k, derr.Metadata[k]))
		}
		fmt.Fprintf(&sb, " (%s)", strings.Join(pairs, ", "))
	}

	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sb.String()}},
	}
}

// domainError reports whether err carries a domain code and should cross the
// tool boundary as a tagged result instead of a transport error.
func domainError(err error) bool {
	var derr *apperrors.Error
	return errors.As(err, &derr)
}

// formatCents renders integer cents as a dollar string.
func formatCents(cents int) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}

// formatTime returns an RFC3339 timestamp or empty string for the zero value.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
