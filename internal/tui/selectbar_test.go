package tui

import (
	"strings"
	"testing"
)

func TestSelectBarTruncatesFirstTabWhenNarrow(t *testing.T) {
	b := newSelectBar("Lang")
	b.setItems([]string{"Python"})

	got := b.render(2)
	if strings.Contains(got, "All") {
		t.Errorf("narrow bar kept the full first tab: %q", got)
	}
	if !strings.Contains(got, "Al") {
		t.Errorf("narrow bar lost the first tab entirely: %q", got)
	}
	if strings.Contains(got, "Python") {
		t.Errorf("narrow bar kept a facet tab that cannot fit: %q", got)
	}
}

func TestSelectBarDropsTabsBeyondWidth(t *testing.T) {
	b := newSelectBar("Lang")
	b.setItems([]string{"Go", "Rust", "AVeryLongLanguageName"})

	// Room for "All · Go · Rust" (15 cells) but not the long tab.
	got := b.render(15)
	if !strings.Contains(got, "Rust") {
		t.Errorf("expected Rust tab to fit, got %q", got)
	}
	if strings.Contains(got, "AVeryLongLanguageName") {
		t.Errorf("oversized tab should be dropped, got %q", got)
	}
}
