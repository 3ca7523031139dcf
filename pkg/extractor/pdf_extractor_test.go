package extractor

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// buildPDF assembles a minimal classic-xref PDF with one text object per
// page. Offsets are computed while writing so the xref table is always
// consistent.
func buildPDF(pages []string) []byte {
	var buf bytes.Buffer
	offsets := make(map[int]int)

	writeObj := func(num int, body string) {
		offsets[num] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", num, body)
	}

	buf.WriteString("%PDF-1.4\n")

	n := len(pages)
	fontNum := 3 + 2*n

	kids := make([]string, n)
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 3+i)
	}

	writeObj(1, "<< /Type /Catalog /Pages 2 0 R >>")
	writeObj(2, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), n))

	for i := range pages {
		writeObj(3+i, fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 %d 0 R >> >> /Contents %d 0 R >>",
			fontNum, 3+n+i))
	}

	for i, text := range pages {
		stream := ""
		if text != "" {
			stream = fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", escapePDFText(text))
		}
		writeObj(3+n+i, fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream))
	}

	writeObj(fontNum, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")

	xrefStart := buf.Len()
	total := fontNum + 1
	fmt.Fprintf(&buf, "xref\n0 %d\n", total)
	buf.WriteString("0000000000 65535 f \n")
	for num := 1; num < total; num++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[num])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", total, xrefStart)

	return buf.Bytes()
}

func escapePDFText(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return r.Replace(s)
}

func TestExtractSinglePage(t *testing.T) {
	e := NewPDFExtractor()

	res := e.Extract(buildPDF([]string{"Balance: $100"}))

	assert.True(t, res.Ok)
	assert.Equal(t, "Balance: $100", res.Text)
}

func TestExtractConcatenatesPagesWithBlankLine(t *testing.T) {
	e := NewPDFExtractor()

	res := e.Extract(buildPDF([]string{"Balance: $100", "Balance: $200"}))

	assert.True(t, res.Ok)
	assert.Equal(t, "Balance: $100\n\nBalance: $200", res.Text)
}

func TestExtractSkipsEmptyPages(t *testing.T) {
	e := NewPDFExtractor()

	res := e.Extract(buildPDF([]string{"Opening balance", "", "Closing balance"}))

	assert.True(t, res.Ok)
	assert.Equal(t, "Opening balance\n\nClosing balance", res.Text)
}

func TestExtractResultIsTrimmed(t *testing.T) {
	e := NewPDFExtractor()

	res := e.Extract(buildPDF([]string{"  Balance: $100  "}))

	assert.True(t, res.Ok)
	assert.Equal(t, res.Text, strings.TrimSpace(res.Text))
}

func TestExtractNoText(t *testing.T) {
	e := NewPDFExtractor()

	res := e.Extract(buildPDF([]string{""}))

	assert.False(t, res.Ok)
	assert.Contains(t, res.Reason, "No text could be extracted")
}

func TestExtractMalformedPayload(t *testing.T) {
	tests := []struct {
		name    string
		payload []byte
	}{
		{name: "not a pdf", payload: []byte("definitely not a pdf")},
		{name: "empty payload", payload: nil},
		{name: "truncated header", payload: []byte("%PDF-1.4\ngarbage")},
	}

	e := NewPDFExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := e.Extract(tt.payload)

			assert.False(t, res.Ok)
			assert.Contains(t, res.Reason, "Error reading PDF")
			assert.Contains(t, res.Reason, "Is it a valid PDF file?")
		})
	}
}
