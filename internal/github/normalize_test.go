package github

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestNormalizeTotality(t *testing.T) {
	// Every optional field absent: output must still be fully populated.
	raw := []RawRepo{{ID: 42, Name: "bare", HTMLURL: "https://github.com/u/bare"}}

	records := Normalize(raw, zerolog.Nop())
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	r := records[0]
	if r.Stars != 0 || r.Forks != 0 {
		t.Errorf("missing counts should default to 0, got stars=%d forks=%d", r.Stars, r.Forks)
	}
	if r.Topics == nil || len(r.Topics) != 0 {
		t.Errorf("missing topics should default to empty slice, got %#v", r.Topics)
	}
	if r.Description != "" || r.Language != "" || r.Homepage != "" {
		t.Errorf("missing optional text should default to empty, got %+v", r)
	}
}

func TestNormalizeFullRecord(t *testing.T) {
	updated := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	raw := []RawRepo{{
		ID:          7,
		Name:        "full",
		HTMLURL:     "https://github.com/u/full",
		Description: strPtr("does things"),
		Language:    strPtr("Go"),
		Stargazers:  intPtr(15),
		Forks:       intPtr(4),
		UpdatedAt:   updated,
		Homepage:    strPtr("https://full.dev"),
		Topics:      []string{"cli", "tui"},
	}}
	raw[0].Owner.Login = "u"
	raw[0].Owner.AvatarURL = "https://avatars.example/u"

	records := Normalize(raw, zerolog.Nop())
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	r := records[0]
	if r.Description != "does things" || r.Language != "Go" {
		t.Errorf("text fields not carried over: %+v", r)
	}
	if r.Stars != 15 || r.Forks != 4 {
		t.Errorf("counts not carried over: stars=%d forks=%d", r.Stars, r.Forks)
	}
	if !r.UpdatedAt.Equal(updated) {
		t.Errorf("updatedAt = %v, want %v", r.UpdatedAt, updated)
	}
	if len(r.Topics) != 2 || r.Topics[0] != "cli" {
		t.Errorf("topics not carried over: %#v", r.Topics)
	}
	if r.OwnerLogin != "u" || r.OwnerAvatarURL != "https://avatars.example/u" {
		t.Errorf("owner fields not carried over: %+v", r)
	}
}

func TestNormalizeSkipsRecordsWithoutID(t *testing.T) {
	raw := []RawRepo{
		{ID: 0, Name: "no-id"},
		{ID: 3, Name: "keep"},
		{ID: 0, Name: "also-no-id"},
	}

	records := Normalize(raw, zerolog.Nop())
	if len(records) != 1 {
		t.Fatalf("expected 1 record after skipping, got %d", len(records))
	}
	if records[0].Name != "keep" {
		t.Errorf("wrong record survived: %+v", records[0])
	}
}

func TestNormalizeEmptyBatch(t *testing.T) {
	records := Normalize(nil, zerolog.Nop())
	if records == nil {
		t.Fatal("expected non-nil empty slice")
	}
	if len(records) != 0 {
		t.Errorf("expected 0 records, got %d", len(records))
	}
}
