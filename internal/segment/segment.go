// Package segment splits Feature Design Document text into sections keyed by
// heading line.
//
// Headings are recognised line by line with a fixed heuristic (see
// MatchHeading). Text before the first heading is discarded. A section's
// content runs from the end of its heading line to the start of the next
// heading line, or to the end of the document.
package segment

import "strings"

// Section is one heading and the trimmed text that follows it.
type Section struct {
	Label   string `json:"label"`
	Content string `json:"content"`
	Start   int    `json:"start"` // Offset of the heading line
	End     int    `json:"end"`   // Offset where the content span ends
}

// Sections returns one Section per heading line in document order.
// Duplicate labels are kept.
func Sections(text string) []Section {
	headings := Headings(text)
	out := make([]Section, 0, len(headings))
	for i, h := range headings {
		end := len(text)
		if i+1 < len(headings) {
			end = headings[i+1].Start
		}
		out = append(out, Section{
			Label:   h.Label,
			Content: strings.TrimSpace(text[h.End:end]),
			Start:   h.Start,
			End:     end,
		})
	}
	return out
}

// Segment maps each heading label in text to the content that follows it.
// When a label repeats, the content of its last occurrence wins. The result
// is never nil.
func Segment(text string) map[string]string {
	sections := Sections(text)
	result := make(map[string]string, len(sections))
	for _, s := range sections {
		result[s.Label] = s.Content
	}
	return result
}
