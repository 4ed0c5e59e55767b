package domain

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/concierge-ai/concierge/internal/pdftext"
)

// PDFExtractor pulls plain text out of a local PDF file.
type PDFExtractor func(path string, pages pdftext.PageRange) (pdftext.Extraction, error)

// ReadPDFInput represents the MCP tool input for PDF text extraction.
type ReadPDFInput struct {
	Path      string `json:"path" jsonschema:"path to the PDF file on the local filesystem"`
	FirstPage int    `json:"first_page,omitempty" jsonschema:"optional first page to extract (1-based, inclusive)"`
	LastPage  int    `json:"last_page,omitempty" jsonschema:"optional last page to extract (1-based, inclusive)"`
}

// ReadPDFResult represents the MCP tool output for PDF text extraction.
type ReadPDFResult struct {
	Path  string `json:"path" jsonschema:"path that was read"`
	Pages int    `json:"pages" jsonschema:"number of pages extracted"`
	Text  string `json:"text" jsonschema:"extracted text with per-page markers"`
}

// ReadPDFTool defines the MCP tool schema for PDF text extraction.
func ReadPDFTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "read_pdf",
		Description: "Extracts plain text from a local PDF file, optionally limited to a page range",
	}
}

// ReadPDFHandler executes a PDF text extraction request.
func ReadPDFHandler(extract PDFExtractor) mcp.ToolHandlerFor[ReadPDFInput, ReadPDFResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ReadPDFInput) (*mcp.CallToolResult, ReadPDFResult, error) {
		extraction, err := extract(input.Path, pdftext.PageRange{First: input.FirstPage, Last: input.LastPage})
		if err != nil {
			if domainError(err) {
				return errorResult(err), ReadPDFResult{}, nil
			}
			return nil, ReadPDFResult{}, err
		}
		return nil, ReadPDFResult{
			Path:  extraction.Path,
			Pages: extraction.Pages,
			Text:  extraction.Text,
		}, nil
	}
}
