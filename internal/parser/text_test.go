package parser

import (
	"fmt"
	"strings"
	"testing"
)

func TestTextParser_PassThrough(t *testing.T) {
	input := "1. Purpose\nBuild X.\n\n2. Scope\nCovers Y only.\n"
	p := &TextParser{}
	got, err := p.Parse(strings.NewReader(input), "fdd.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != input {
		t.Errorf("expected %q, got %q", input, got)
	}
}

func TestTextParser_InvalidUTF8(t *testing.T) {
	p := &TextParser{}
	got, err := p.Parse(strings.NewReader("hello\x80world"), "bad.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "hello\uFFFDworld" {
		t.Errorf("expected replacement character, got %q", got)
	}
}

func TestTextParser_EmptyInput(t *testing.T) {
	p := &TextParser{}
	got, err := p.Parse(strings.NewReader(""), "empty.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" {
		t.Errorf("expected empty text, got %q", got)
	}
}

func TestCSVParser_RowsBecomeLines(t *testing.T) {
	input := "Purpose,,\nBuild X,for team A,\nScope\n"
	p := &CSVParser{}
	got, err := p.Parse(strings.NewReader(input), "fdd.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "Purpose\nBuild X\tfor team A\nScope"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestForFile(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"fdd.txt", "*parser.TextParser"},
		{"FDD.MD", "*parser.MarkdownParser"},
		{"notes.markdown", "*parser.MarkdownParser"},
		{"page.htm", "*parser.HTMLParser"},
		{"design.pdf", "*parser.PDFParser"},
		{"design.docx", "*parser.DOCXParser"},
		{"sheet.xlsx", "*parser.XLSXParser"},
		{"rows.csv", "*parser.CSVParser"},
	}
	for _, tt := range tests {
		p, err := ForFile(tt.filename, Options{})
		if err != nil {
			t.Fatalf("ForFile(%q): unexpected error: %v", tt.filename, err)
		}
		if got := typeName(p); got != tt.want {
			t.Errorf("ForFile(%q) = %s, want %s", tt.filename, got, tt.want)
		}
	}

	if _, err := ForFile("image.png", Options{}); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestIsSupportedExtension(t *testing.T) {
	if !IsSupportedExtension("Design.DOCX") {
		t.Error("expected .DOCX to be supported")
	}
	if IsSupportedExtension("archive.zip") {
		t.Error("expected .zip to be unsupported")
	}
	if IsSupportedExtension("noext") {
		t.Error("expected missing extension to be unsupported")
	}
}

func typeName(v any) string {
	return fmt.Sprintf("%T", v)
}
