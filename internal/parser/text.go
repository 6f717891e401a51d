package parser

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// TextParser handles plain text files. Content is passed through untouched
// apart from replacing invalid UTF-8.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read text: %w", err)
	}
	if !utf8.Valid(data) {
		return strings.ToValidUTF8(string(data), "\uFFFD"), nil
	}
	return string(data), nil
}
