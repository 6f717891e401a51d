package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown files using goldmark. Heading markers are
// stripped so "## 2. Scope" comes out as the line "2. Scope". List items keep
// a marker ("- " or "3. ") on their first line, so they read the same as
// the raw text would.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (string, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read markdown: %w", err)
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	w := &mdWriter{src: src}
	w.block(doc)
	return w.out.String(), nil
}

const listMarker = "- "

type mdWriter struct {
	out lineWriter
	src []byte
	// marker is prepended to the next emitted line, then cleared.
	marker string
}

func (w *mdWriter) line(s string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return
	}
	w.out.line(w.marker + s)
	w.marker = ""
}

// block emits the lines of a block node, descending into container blocks
// such as lists and blockquotes.
func (w *mdWriter) block(n ast.Node) {
	switch node := n.(type) {
	case *ast.ThematicBreak:
		return
	case *ast.Heading:
		w.line(inlineText(node, w.src))
		return
	case *ast.List:
		i := 0
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			w.marker = listMarker
			if node.IsOrdered() {
				w.marker = fmt.Sprintf("%d%c ", node.Start+i, node.Marker)
			}
			w.children(c)
			i++
		}
		w.marker = ""
		return
	case *ast.Blockquote, *ast.Document:
		w.children(n)
		return
	}

	if n.Type() != ast.TypeBlock {
		return
	}
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		w.line(string(seg.Value(w.src)))
	}
}

func (w *mdWriter) children(n ast.Node) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		w.block(c)
	}
}

// inlineText returns the text of n's inline children without emphasis, link
// or code span markup.
func inlineText(n ast.Node, src []byte) string {
	var buf strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(t.Value)
		default:
			buf.WriteString(inlineText(c, src))
		}
	}
	return buf.String()
}
