package segment

import (
	"reflect"
	"strings"
	"testing"
)

func TestSegment_NumberedHeadings(t *testing.T) {
	got := Segment("1. Purpose\nBuild X.\n2. Scope\nCovers Y only.\n")
	want := map[string]string{
		"Purpose": "Build X.",
		"Scope":   "Covers Y only.",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestSegment_AmpersandHeading(t *testing.T) {
	got := Segment("Reports & Outputs\nWeekly summary.\n")
	want := map[string]string{"Reports & Outputs": "Weekly summary."}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestSegment_NoHeadings(t *testing.T) {
	inputs := []string{
		"",
		"Intro text with no heading.\n",
		"lowercase start\nPurpose:\n",
		"\n\n\n",
	}
	for _, in := range inputs {
		got := Segment(in)
		if got == nil {
			t.Fatalf("input %q: expected empty map, got nil", in)
		}
		if len(got) != 0 {
			t.Errorf("input %q: expected no sections, got %v", in, got)
		}
	}
}

func TestSegment_DuplicateLabelLastWins(t *testing.T) {
	got := Segment("1. Scope\nA.\n1. Scope\nB.\n")
	want := map[string]string{"Scope": "B."}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestSegment_PrefixDiscarded(t *testing.T) {
	got := Segment("preamble line.\nmore preamble;\nPurpose\nBody.\n")
	if len(got) != 1 {
		t.Fatalf("expected 1 section, got %d: %v", len(got), got)
	}
	for k, v := range got {
		if strings.Contains(k, "preamble") || strings.Contains(v, "preamble") {
			t.Errorf("preamble leaked into %q: %q", k, v)
		}
	}
}

func TestSegment_LastSectionRunsToEnd(t *testing.T) {
	text := "Overview\nfirst line.\n\nsecond paragraph, no newline at end"
	got := Segment(text)
	want := "first line.\n\nsecond paragraph, no newline at end"
	if got["Overview"] != want {
		t.Errorf("expected %q, got %q", want, got["Overview"])
	}
}

func TestSegment_EmptyContent(t *testing.T) {
	got := Segment("Purpose\nScope\nOnly scope text.")
	if c, ok := got["Purpose"]; !ok || c != "" {
		t.Errorf("expected empty Purpose content, got %q (present=%v)", c, ok)
	}
	if got["Scope"] != "Only scope text." {
		t.Errorf("unexpected Scope content %q", got["Scope"])
	}
}

func TestSegment_CRLF(t *testing.T) {
	got := Segment("1. Purpose\r\nBuild X.\r\n2. Scope\r\nCovers Y only.\r\n")
	want := map[string]string{
		"Purpose": "Build X.",
		"Scope":   "Covers Y only.",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestSegment_UnicodeContent(t *testing.T) {
	got := Segment("Résumé notes\nIntro\nCafé ☕ and naïve text.\n")
	if len(got) != 1 {
		t.Fatalf("expected 1 section, got %v", got)
	}
	if got["Intro"] != "Café ☕ and naïve text." {
		t.Errorf("unexpected content %q", got["Intro"])
	}
}

func TestSections_KeepsDuplicatesInOrder(t *testing.T) {
	text := "1. Scope\nA.\n1. Scope\nB.\n"
	got := Sections(text)
	if len(got) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(got))
	}
	if got[0].Content != "A." || got[1].Content != "B." {
		t.Errorf("unexpected contents %q, %q", got[0].Content, got[1].Content)
	}
	if got[0].Start != 0 || got[0].End != got[1].Start {
		t.Errorf("sections not contiguous: %+v", got)
	}
	if got[1].End != len(text) {
		t.Errorf("expected last section to end at %d, got %d", len(text), got[1].End)
	}
}

func TestHeadings_Offsets(t *testing.T) {
	text := "intro\n12. Goals\nbody\n"
	got := Headings(text)
	if len(got) != 1 {
		t.Fatalf("expected 1 heading, got %d", len(got))
	}
	h := got[0]
	if h.Label != "Goals" {
		t.Errorf("expected label %q, got %q", "Goals", h.Label)
	}
	if text[h.Start:h.End] != "12. Goals" {
		t.Errorf("unexpected heading span %q", text[h.Start:h.End])
	}
}
