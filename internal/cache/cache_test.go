package cache

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"
)

func testStore(t *testing.T) (*Store, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(dbPath)
	if err != nil {
		t.Fatalf("opening test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, dbPath
}

func sampleSnapshot(fetchedAt time.Time) *Snapshot {
	return &Snapshot{
		FetchedAt: fetchedAt,
		Repos: []Record{
			{ID: 1, Name: "alpha", URL: "https://github.com/u/alpha", Language: "Go", Stars: 12, Topics: []string{"cli"}, UpdatedAt: fetchedAt.Add(-time.Hour), OwnerLogin: "u"},
			{ID: 2, Name: "beta", URL: "https://github.com/u/beta", Description: "a parser", Stars: 3, Topics: []string{}, UpdatedAt: fetchedAt.Add(-48 * time.Hour), OwnerLogin: "u"},
		},
	}
}

func TestReadMissing(t *testing.T) {
	s, _ := testStore(t)
	if _, ok := s.Read("nobody"); ok {
		t.Error("expected ok=false for missing snapshot")
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	s, _ := testStore(t)
	fetchedAt := time.Now().Truncate(time.Millisecond)
	snap := sampleSnapshot(fetchedAt)

	if err := s.Write("u", snap); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, ok := s.Read("u")
	if !ok {
		t.Fatal("expected snapshot after write")
	}
	if !got.FetchedAt.Equal(fetchedAt) {
		t.Errorf("fetchedAt = %v, want %v", got.FetchedAt, fetchedAt)
	}
	if len(got.Repos) != 2 {
		t.Fatalf("expected 2 repos, got %d", len(got.Repos))
	}
	if got.Repos[0].Name != "alpha" || got.Repos[0].Stars != 12 {
		t.Errorf("first repo mismatch: %+v", got.Repos[0])
	}
	if got.Repos[1].Topics == nil {
		t.Error("empty topics should round-trip as empty slice, not nil")
	}
}

func TestWriteReplacesWholesale(t *testing.T) {
	s, _ := testStore(t)
	now := time.Now()

	if err := s.Write("u", sampleSnapshot(now.Add(-2*time.Hour))); err != nil {
		t.Fatalf("first write: %v", err)
	}
	second := &Snapshot{FetchedAt: now, Repos: []Record{{ID: 9, Name: "gamma", Topics: []string{}}}}
	if err := s.Write("u", second); err != nil {
		t.Fatalf("second write: %v", err)
	}

	got, ok := s.Read("u")
	if !ok {
		t.Fatal("expected snapshot")
	}
	if len(got.Repos) != 1 || got.Repos[0].Name != "gamma" {
		t.Errorf("expected second snapshot to replace first, got %+v", got.Repos)
	}
}

func TestReadSwallowsCorruption(t *testing.T) {
	s, dbPath := testStore(t)
	if err := s.Write("u", sampleSnapshot(time.Now())); err != nil {
		t.Fatalf("write: %v", err)
	}

	// Corrupt the stored JSON directly.
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("opening raw db: %v", err)
	}
	defer db.Close()
	if _, err := db.Exec("UPDATE snapshots SET data = '{not json' WHERE login = 'u'"); err != nil {
		t.Fatalf("corrupting row: %v", err)
	}

	if _, ok := s.Read("u"); ok {
		t.Error("expected ok=false for corrupted snapshot")
	}
}

func TestInvalidate(t *testing.T) {
	s, _ := testStore(t)
	if err := s.Write("u", sampleSnapshot(time.Now())); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := s.Invalidate("u"); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if _, ok := s.Read("u"); ok {
		t.Error("expected snapshot gone after invalidate")
	}

	// Invalidating again is not an error.
	if err := s.Invalidate("u"); err != nil {
		t.Errorf("second invalidate: %v", err)
	}
}

func TestSnapshotsAreScopedByLogin(t *testing.T) {
	s, _ := testStore(t)
	if err := s.Write("alice", sampleSnapshot(time.Now())); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, ok := s.Read("bob"); ok {
		t.Error("bob should not see alice's snapshot")
	}
}

func TestStaleBoundary(t *testing.T) {
	ttl := time.Hour
	now := time.Now()

	tests := []struct {
		name      string
		fetchedAt time.Time
		want      bool
	}{
		{"past ttl", now.Add(-ttl - time.Millisecond), true},
		{"exactly at ttl", now.Add(-ttl), true},
		{"just inside ttl", now.Add(-ttl + time.Millisecond), false},
		{"fresh", now, false},
	}
	for _, tt := range tests {
		snap := &Snapshot{FetchedAt: tt.fetchedAt}
		if got := snap.Stale(ttl, now); got != tt.want {
			t.Errorf("%s: Stale = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestStats(t *testing.T) {
	s, dbPath := testStore(t)
	if err := s.Write("u", sampleSnapshot(time.Now())); err != nil {
		t.Fatalf("write: %v", err)
	}

	count, size, err := s.Stats(dbPath)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if count != 1 {
		t.Errorf("expected count 1, got %d", count)
	}
	if size == 0 {
		t.Error("expected non-zero db size")
	}
}

func TestOpenCreatesDir(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "sub", "deep", "test.db")
	s, err := Open(dbPath)
	if err != nil {
		t.Fatalf("opening store in nested dir: %v", err)
	}
	s.Close()
}
