package tui

import (
	appsync "github.com/Nabil3962/Suhail-Repository-Hub/internal/sync"
)

// loadedMsg carries the outcome of the initial load.
type loadedMsg struct {
	res appsync.Result
}

// refreshDoneMsg carries the outcome of a user-forced refresh.
type refreshDoneMsg struct {
	res appsync.Result
}

// revalidatedMsg carries the outcome of a background revalidation.
type revalidatedMsg struct {
	res appsync.Result
}

// searchDebounceMsg fires when a scheduled search recomputation comes due.
// A message whose seq no longer matches the latest keystroke is stale and
// dropped, which is what coalesces bursts into one recomputation.
type searchDebounceMsg struct {
	seq int
}

type openErrMsg struct {
	err error
}
