package browser

import (
	"errors"
	"testing"

	"github.com/Nabil3962/Suhail-Repository-Hub/internal/cache"
)

// stubLaunch records the URL handed to the platform opener instead of
// starting a process.
func stubLaunch(t *testing.T) *string {
	t.Helper()
	var got string
	prev := launch
	launch = func(name string, args ...string) error {
		got = args[len(args)-1]
		return nil
	}
	t.Cleanup(func() { launch = prev })
	return &got
}

func TestOpenRepo(t *testing.T) {
	tests := []struct {
		name    string
		rec     cache.Record
		wantErr bool
	}{
		{"github page", cache.Record{Name: "dotfiles", URL: "https://github.com/octocat/dotfiles"}, false},
		{"plain http", cache.Record{Name: "legacy", URL: "http://example.com/legacy"}, false},
		{"file scheme", cache.Record{Name: "evil", URL: "file:///etc/passwd"}, true},
		{"javascript scheme", cache.Record{Name: "evil", URL: "javascript:alert(1)"}, true},
		{"empty URL", cache.Record{Name: "blank"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stubLaunch(t)
			err := OpenRepo(tt.rec)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("OpenRepo(%q): expected error, got nil", tt.rec.URL)
				}
				if *got != "" {
					t.Errorf("OpenRepo(%q): launched %q despite error", tt.rec.URL, *got)
				}
				return
			}
			if err != nil {
				t.Fatalf("OpenRepo(%q): %v", tt.rec.URL, err)
			}
			if *got != tt.rec.URL {
				t.Errorf("launched %q, want %q", *got, tt.rec.URL)
			}
		})
	}
}

func TestOpenHomepage(t *testing.T) {
	got := stubLaunch(t)

	rec := cache.Record{
		Name:     "dotfiles",
		URL:      "https://github.com/octocat/dotfiles",
		Homepage: "https://octocat.dev",
	}
	if err := OpenHomepage(rec); err != nil {
		t.Fatalf("OpenHomepage: %v", err)
	}
	if *got != rec.Homepage {
		t.Errorf("launched %q, want homepage %q", *got, rec.Homepage)
	}
}

func TestOpenHomepageMissing(t *testing.T) {
	got := stubLaunch(t)

	err := OpenHomepage(cache.Record{Name: "dotfiles", URL: "https://github.com/octocat/dotfiles"})
	if !errors.Is(err, ErrNoHomepage) {
		t.Fatalf("expected ErrNoHomepage, got %v", err)
	}
	if *got != "" {
		t.Errorf("launched %q for a repository without a homepage", *got)
	}
}

func TestOpenHomepageRejectsUntrustedScheme(t *testing.T) {
	stubLaunch(t)

	rec := cache.Record{
		Name:     "evil",
		URL:      "https://github.com/octocat/evil",
		Homepage: "ftp://example.com/payload",
	}
	if err := OpenHomepage(rec); err == nil {
		t.Fatal("expected error for non-http homepage scheme")
	}
}
