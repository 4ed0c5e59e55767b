// Package pdftext extracts plain text from local PDF files.
package pdftext

import (
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"

	apperrors "github.com/concierge-ai/concierge/internal/platform/errors"
)

// PageRange selects a 1-based inclusive page window. The zero value selects
// every page.
type PageRange struct {
	First int
	Last  int
}

// normalize fills in an open bound: zero First means page 1, zero Last means
// the final page.
func (r PageRange) normalize(numPages int) PageRange {
	if r.First == 0 {
		r.First = 1
	}
	if r.Last == 0 {
		r.Last = numPages
	}
	return r
}

func (r PageRange) validate(numPages int) error {
	if r.First < 1 || r.Last < r.First || r.First > numPages {
		return apperrors.WithMetadata(
			apperrors.CodePDFInvalidRange,
			fmt.Sprintf("page range %d-%d is invalid for a %d-page document", r.First, r.Last, numPages),
			map[string]string{"pages": fmt.Sprintf("%d", numPages)},
		)
	}
	return nil
}

// Extraction is the text pulled out of a document.
type Extraction struct {
	Path  string
	Pages int // pages extracted, not total
	Text  string
}

// Extract reads the PDF at path and returns its text with per-page markers.
func Extract(path string, pages PageRange) (Extraction, error) {
	if _, err := os.Stat(path); err != nil {
		return Extraction{}, apperrors.WithMetadata(
			apperrors.CodePDFFileNotFound,
			fmt.Sprintf("no PDF file at %s", path),
			map[string]string{"path": path},
		)
	}

	f, reader, err := pdf.Open(path)
	if err != nil {
		return Extraction{}, apperrors.Wrap(apperrors.CodePDFUnreadable, "open PDF", err)
	}
	defer f.Close()

	total := reader.NumPage()
	pages = pages.normalize(total)
	if err := pages.validate(total); err != nil {
		return Extraction{}, err
	}

	first, last := pages.First, min(pages.Last, total)

	var sb strings.Builder
	extracted := 0
	for i := first; i <= last; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return Extraction{}, apperrors.Wrap(apperrors.CodePDFUnreadable, fmt.Sprintf("extract page %d", i), err)
		}
		fmt.Fprintf(&sb, "\n--- Page %d ---\n%s", i, text)
		extracted++
	}

	return Extraction{Path: path, Pages: extracted, Text: sb.String()}, nil
}
