// Package sync orchestrates the stale-while-revalidate protocol between the
// snapshot store and the fetch gateway. The Controller is the single writer
// of the in-memory dataset; the TUI only ever reads it.
package sync

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Nabil3962/Suhail-Repository-Hub/internal/cache"
	"github.com/Nabil3962/Suhail-Repository-Hub/internal/github"
	"github.com/rs/zerolog"
)

// ErrRefreshInFlight is returned when a refresh is requested while another
// fetch (foreground or background) is still outstanding.
var ErrRefreshInFlight = errors.New("refresh already in progress")

type State int

const (
	StateEmpty State = iota
	StateServingCache
	StateServingStale
	StateLive
	StateDegraded
)

func (s State) String() string {
	switch s {
	case StateServingCache:
		return "cached"
	case StateServingStale:
		return "stale"
	case StateLive:
		return "live"
	case StateDegraded:
		return "offline"
	default:
		return "empty"
	}
}

// Gateway is implemented by github.Client.
type Gateway interface {
	FetchRepos(ctx context.Context, login string) ([]github.RawRepo, error)
}

// Result is the outcome of a load or revalidation, snapshotted for the caller.
type Result struct {
	Repos     []cache.Record
	State     State
	FetchedAt time.Time
	// Changed reports whether the visible dataset was replaced.
	Changed bool
	// Revalidate tells the caller to start a background revalidation.
	Revalidate bool
	// Err carries a foreground fetch failure. The dataset in Repos is still
	// valid (cache fallback) unless State is StateDegraded.
	Err error
}

type Controller struct {
	store *cache.Store
	gw    Gateway
	login string
	ttl   time.Duration
	log   zerolog.Logger
	now   func() time.Time

	mu        sync.Mutex
	fetching  bool
	current   []cache.Record
	state     State
	fetchedAt time.Time
}

func NewController(store *cache.Store, gw Gateway, login string, ttl time.Duration, log zerolog.Logger) *Controller {
	return &Controller{
		store: store,
		gw:    gw,
		login: login,
		ttl:   ttl,
		log:   log,
		now:   time.Now,
	}
}

// Load runs the startup/refresh transition. Without force, a fresh cached
// snapshot is adopted immediately and the caller is told to revalidate in the
// background; anything else goes through a foreground fetch with cache
// fallback on failure.
func (c *Controller) Load(ctx context.Context, force bool) Result {
	if !force {
		if snap, ok := c.store.Read(c.login); ok && !snap.Stale(c.ttl, c.now()) {
			c.adopt(snap.Repos, StateServingCache, snap.FetchedAt)
			return c.result(false, true, nil)
		}
	}

	if !c.beginFetch() {
		return c.result(false, false, ErrRefreshInFlight)
	}
	defer c.endFetch()

	raw, err := c.gw.FetchRepos(ctx, c.login)
	if err != nil {
		c.log.Warn().Err(err).Str("login", c.login).Msg("foreground fetch failed")
		if snap, ok := c.store.Read(c.login); ok {
			c.adopt(snap.Repos, StateServingStale, snap.FetchedAt)
			return c.result(true, false, err)
		}
		c.adopt([]cache.Record{}, StateDegraded, time.Time{})
		return c.result(true, false, err)
	}

	repos := github.Normalize(raw, c.log)
	c.persist(repos)
	c.adopt(repos, StateLive, c.now())
	return c.result(true, false, nil)
}

// Revalidate runs the background half of stale-while-revalidate. Failures are
// swallowed (log only) and never disturb the visible state. On success the
// cache is refreshed unconditionally, but the dataset is only replaced when
// the freshest updatedAt actually moved — a cheap heuristic that skips
// redundant re-renders without comparing full content.
func (c *Controller) Revalidate(ctx context.Context) Result {
	if !c.beginFetch() {
		return c.result(false, false, nil)
	}
	defer c.endFetch()

	raw, err := c.gw.FetchRepos(ctx, c.login)
	if err != nil {
		c.log.Debug().Err(err).Str("login", c.login).Msg("background revalidation failed")
		return c.result(false, false, nil)
	}

	repos := github.Normalize(raw, c.log)
	now := c.now()
	c.persist(repos)

	c.mu.Lock()
	unchanged := len(c.current) > 0 && newest(repos).Equal(newest(c.current))
	c.mu.Unlock()
	if unchanged {
		return c.result(false, false, nil)
	}

	c.adopt(repos, StateLive, now)
	return c.result(true, false, nil)
}

// Dataset returns the adopted records by reference; callers must not mutate.
func (c *Controller) Dataset() []cache.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Refreshing reports whether a fetch is currently outstanding.
func (c *Controller) Refreshing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fetching
}

func (c *Controller) beginFetch() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fetching {
		return false
	}
	c.fetching = true
	return true
}

func (c *Controller) endFetch() {
	c.mu.Lock()
	c.fetching = false
	c.mu.Unlock()
}

func (c *Controller) adopt(repos []cache.Record, state State, fetchedAt time.Time) {
	c.mu.Lock()
	c.current = repos
	c.state = state
	c.fetchedAt = fetchedAt
	c.mu.Unlock()
}

// persist is best-effort: a full cache means we keep serving from memory.
func (c *Controller) persist(repos []cache.Record) {
	snap := &cache.Snapshot{FetchedAt: c.now(), Repos: repos}
	if err := c.store.Write(c.login, snap); err != nil {
		c.log.Warn().Err(err).Str("login", c.login).Msg("snapshot write failed")
	}
}

func (c *Controller) result(changed, revalidate bool, err error) Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Result{
		Repos:      c.current,
		State:      c.state,
		FetchedAt:  c.fetchedAt,
		Changed:    changed,
		Revalidate: revalidate,
		Err:        err,
	}
}

// newest returns the freshest updatedAt in repos. The API returns records
// newest-first, but scanning keeps this independent of input order.
func newest(repos []cache.Record) time.Time {
	var max time.Time
	for _, r := range repos {
		if r.UpdatedAt.After(max) {
			max = r.UpdatedAt
		}
	}
	return max
}
