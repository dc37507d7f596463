package tui

import (
	"fmt"
	"time"

	appsync "github.com/Nabil3962/Suhail-Repository-Hub/internal/sync"
	"github.com/charmbracelet/lipgloss"
)

func stateLabel(state appsync.State, fetchedAt time.Time) string {
	label := state.String()
	if !fetchedAt.IsZero() && state != appsync.StateLive {
		label += " · fetched " + relativeTime(fetchedAt)
	}
	return label
}

func renderStatusBar(shown, total int, state appsync.State, fetchedAt time.Time, sortLabel, errText string, width int, searching, refreshing bool) string {
	left := fmt.Sprintf(" %d/%d repos · sort: %s · %s", shown, total, sortLabel, stateLabel(state, fetchedAt))
	if refreshing {
		left += " (refreshing...)"
	}

	right := " / search  f lang  t tag  s sort  r refresh  ? help  q quit "
	if searching {
		right = " esc cancel  enter apply "
	}

	if errText != "" {
		left = " " + statusErrStyle.Render(errText)
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + fmt.Sprintf("%*s", gap, "") + right
	return statusBarStyle.Width(width).Render(bar)
}
