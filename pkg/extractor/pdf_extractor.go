package extractor

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Result is the outcome of a text extraction attempt. Exactly one of
// Text or Reason is meaningful, discriminated by Ok.
type Result struct {
	Ok     bool
	Text   string
	Reason string
}

const noTextReason = "No text could be extracted from this PDF."

// PDFExtractor pulls plain text out of PDF payloads using github.com/ledongthuc/pdf.
// Image-only (scanned) documents produce a failure Result; no OCR is attempted.
type PDFExtractor struct{}

func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

// Extract opens raw PDF bytes and concatenates per-page text, separating
// pages with a blank line. Pages whose extraction errors or yields only
// whitespace are skipped.
func (e *PDFExtractor) Extract(payload []byte) (res Result) {
	// The pdf package panics on some malformed inputs instead of
	// returning an error. Treat those the same as an open failure.
	defer func() {
		if r := recover(); r != nil {
			res = failure(fmt.Sprintf("Error reading PDF: %v. Is it a valid PDF file?", r))
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(payload), int64(len(payload)))
	if err != nil {
		return failure(fmt.Sprintf("Error reading PDF: %v. Is it a valid PDF file?", err))
	}

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			pages = append(pages, trimmed)
		}
	}

	full := strings.TrimSpace(strings.Join(pages, "\n\n"))
	if full == "" {
		return failure(noTextReason)
	}

	return Result{Ok: true, Text: full}
}

func failure(reason string) Result {
	return Result{Reason: reason}
}
