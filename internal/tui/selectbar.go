package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// selectBar is a single-choice tab row over a facet (languages or topics).
// An empty selection means "all"/"none".
type selectBar struct {
	label    string
	items    []string
	selected string
	active   bool // bar is in interactive mode
	cursor   int
}

func newSelectBar(label string) selectBar {
	return selectBar{label: label}
}

// setItems replaces the facet values, keeping the selection when it still
// exists in the new dataset.
func (b *selectBar) setItems(items []string) {
	b.items = items
	if b.cursor > len(items) {
		b.cursor = 0
	}
	if b.selected == "" {
		return
	}
	for _, it := range items {
		if it == b.selected {
			return
		}
	}
	b.selected = ""
}

func (b *selectBar) moveLeft() {
	if b.cursor > 0 {
		b.cursor--
	}
}

func (b *selectBar) moveRight() {
	// cursor position 0 is the "All" tab, items start at 1
	if b.cursor < len(b.items) {
		b.cursor++
	}
}

// toggleCurrent selects the item under the cursor, or clears the selection
// when the cursor is on the "All" tab or on the already-selected item.
func (b *selectBar) toggleCurrent() {
	if b.cursor == 0 {
		b.selected = ""
		return
	}
	item := b.items[b.cursor-1]
	if b.selected == item {
		b.selected = ""
	} else {
		b.selected = item
	}
}

func (b *selectBar) selectIndex(i int) {
	if i < 0 || i >= len(b.items) {
		return
	}
	if b.selected == b.items[i] {
		b.selected = ""
	} else {
		b.selected = b.items[i]
	}
}

func (b *selectBar) activeLabel() string {
	if b.selected == "" {
		return "All"
	}
	return b.selected
}

func (b *selectBar) render(width int) string {
	type tab struct {
		label string
		style lipgloss.Style
	}

	tabs := make([]tab, 0, len(b.items)+1)
	allLabel := "All"
	if b.active && b.cursor == 0 {
		allLabel = "[" + allLabel + "]"
	}
	allStyle := tabInactiveStyle
	if b.selected == "" {
		allStyle = tabActiveStyle
	}
	tabs = append(tabs, tab{allLabel, allStyle})

	for i, item := range b.items {
		style := tabInactiveStyle
		if b.selected == item {
			style = tabActiveStyle
		}
		label := item
		if b.active && b.cursor == i+1 {
			label = "[" + item + "]"
		}
		tabs = append(tabs, tab{label, style})
	}

	// Build row with · separators, stopping when we'd exceed width. A first
	// tab that alone exceeds the width is truncated rather than kept whole.
	sep := tabSeparatorStyle.Render(" · ")
	sepWidth := lipgloss.Width(" · ")
	var row strings.Builder
	used := 0
	for i, t := range tabs {
		need := lipgloss.Width(t.label)
		if i > 0 {
			need += sepWidth
		}
		if used+need > width {
			if i > 0 {
				break
			}
			t.label = truncateStr(t.label, width)
			need = lipgloss.Width(t.label)
		}
		if i > 0 {
			row.WriteString(sep)
		}
		row.WriteString(t.style.Render(t.label))
		used += need
	}

	barStyle := lipgloss.NewStyle().
		Background(colorTabBg).
		Width(width).
		PaddingLeft(1)
	return barStyle.Render(tabSeparatorStyle.Render(b.label+": ") + row.String())
}
