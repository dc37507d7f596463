package tui

import (
	"fmt"
	"strings"

	"github.com/Nabil3962/Suhail-Repository-Hub/internal/cache"
	"github.com/charmbracelet/lipgloss"
)

func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	var lines []string
	var line string
	for _, word := range strings.Fields(s) {
		if line == "" {
			line = word
			continue
		}
		if len(line)+1+len(word) > width {
			lines = append(lines, line)
			line = word
			continue
		}
		line += " " + word
	}
	if line != "" {
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func renderTopics(topics []string, limit int) string {
	if len(topics) == 0 {
		return ""
	}
	shown := topics
	more := 0
	if limit > 0 && len(topics) > limit {
		shown = topics[:limit]
		more = len(topics) - limit
	}
	parts := make([]string, 0, len(shown)+1)
	for _, t := range shown {
		parts = append(parts, topicStyle.Render(t))
	}
	if more > 0 {
		parts = append(parts, itemMetaStyle.Render(fmt.Sprintf("+%d more", more)))
	}
	return strings.Join(parts, " ")
}

func renderDetail(r *cache.Record, width, height, topicsCap int) string {
	if r == nil {
		return centerNotice("Nothing selected", width, height)
	}

	var b strings.Builder
	b.WriteString(detailTitleStyle.Render(truncateStr(r.Name, width)))
	b.WriteString("\n")

	meta := itemStarStyle.Render(fmt.Sprintf("★ %d", r.Stars)) +
		itemMetaStyle.Render(fmt.Sprintf("  ⑂ %d", r.Forks))
	if r.Language != "" {
		meta += "  " + itemLangStyle.Render(r.Language)
	}
	meta += itemMetaStyle.Render("  · updated " + relativeTime(r.UpdatedAt))
	b.WriteString(meta)
	b.WriteString("\n\n")

	if r.Description != "" {
		b.WriteString(detailBodyStyle.Render(wrapText(r.Description, width)))
		b.WriteString("\n")
	}

	if topics := renderTopics(r.Topics, topicsCap); topics != "" {
		b.WriteString("\n")
		b.WriteString(topics)
		b.WriteString("\n")
	}

	b.WriteString(detailLinkStyle.Render(truncateStr(r.URL, width)))
	if r.Homepage != "" {
		b.WriteString("\n")
		b.WriteString(detailLinkStyle.Render(truncateStr(r.Homepage, width)))
	}

	content := b.String()
	lines := strings.Split(content, "\n")
	if height > 0 && len(lines) > height {
		lines = lines[:height]
		content = strings.Join(lines, "\n")
	}
	return lipgloss.NewStyle().Width(width).Render(content)
}
