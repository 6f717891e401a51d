package segment

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Heading is a heading line found in a document.
type Heading struct {
	Label string // Heading text, ordinal prefix removed, trimmed
	Start int    // Byte offset of the first character of the line
	End   int    // Byte offset just past the line, before its terminator
}

// MatchHeading reports whether line is a heading line and returns its label.
//
// A heading line is an optional ordinal prefix ("12. ") followed by an
// uppercase ASCII letter and any run of ASCII letters, spaces and '&' that
// reaches the end of the line. line must not contain a newline.
func MatchHeading(line string) (string, bool) {
	i := skipOrdinal(line)

	if i >= len(line) || !isUpper(line[i]) {
		return "", false
	}
	start := i
	for i++; i < len(line); i++ {
		if !isLabelByte(line[i]) {
			return "", false
		}
	}
	return strings.TrimSpace(line[start:]), true
}

// skipOrdinal returns the offset just past a leading "<digits>.<spaces>"
// prefix, or 0 when line has none.
func skipOrdinal(line string) int {
	i := 0
	for i < len(line) && isDigit(line[i]) {
		i++
	}
	if i == 0 || i >= len(line) || line[i] != '.' {
		return 0
	}
	i++
	for i < len(line) {
		r, size := utf8.DecodeRuneInString(line[i:])
		if !unicode.IsSpace(r) {
			break
		}
		i += size
	}
	return i
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isUpper(b byte) bool { return b >= 'A' && b <= 'Z' }

func isLabelByte(b byte) bool {
	return isUpper(b) || (b >= 'a' && b <= 'z') || b == ' ' || b == '&'
}

// Headings returns every heading line in text, in document order.
func Headings(text string) []Heading {
	var out []Heading
	for pos := 0; pos <= len(text); {
		end := strings.IndexByte(text[pos:], '\n')
		next := 0
		if end < 0 {
			end = len(text)
			next = len(text) + 1
		} else {
			end += pos
			next = end + 1
		}

		lineEnd := end
		if lineEnd > pos && text[lineEnd-1] == '\r' {
			lineEnd--
		}
		if label, ok := MatchHeading(text[pos:lineEnd]); ok {
			out = append(out, Heading{Label: label, Start: pos, End: lineEnd})
		}
		pos = next
	}
	return out
}
