package parser

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/dgallion1/fddparse/internal/segment"
)

// buildPDF writes a single-page PDF whose content stream draws each line
// with Helvetica, top to bottom.
func buildPDF(lines ...string) []byte {
	var content strings.Builder
	for i, l := range lines {
		fmt.Fprintf(&content, "BT /F1 12 Tf 72 %d Td (%s) Tj ET\n", 720-20*i, l)
	}

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%sendstream", content.Len(), content.String()),
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func TestPDFParser_RowsBecomeLines(t *testing.T) {
	p := &PDFParser{}
	got, err := p.Parse(bytes.NewReader(buildPDF("Scope", "Covers Y only.")), "fdd.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "Scope\n") || !strings.Contains(got, "Covers Y only.") {
		t.Fatalf("expected both rows as lines, got %q", got)
	}

	sections := segment.Segment(got)
	if sections["Scope"] != "Covers Y only." {
		t.Errorf("expected Scope section, got %v (text %q)", sections, got)
	}
}

func TestExtractPDFText_NoTextIsAnError(t *testing.T) {
	_, err := extractPDFText(buildPDF())
	if !errors.Is(err, errNoPDFText) {
		t.Errorf("expected errNoPDFText for a blank page, got %v", err)
	}
}

func TestPDFParser_InvalidFile(t *testing.T) {
	p := &PDFParser{}
	if _, err := p.Parse(bytes.NewReader([]byte("%PDF-garbage")), "bad.pdf"); err == nil {
		t.Error("expected error for invalid pdf")
	}
}
