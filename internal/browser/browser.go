// Package browser hands repository links to the system browser.
package browser

import (
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"

	"github.com/Nabil3962/Suhail-Repository-Hub/internal/cache"
)

// ErrNoHomepage is returned when a repository has no homepage set.
var ErrNoHomepage = errors.New("repository has no homepage")

// launch starts the platform opener; swapped out in tests.
var launch = func(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

// OpenRepo opens the repository's GitHub page.
func OpenRepo(rec cache.Record) error {
	return open(rec.URL)
}

// OpenHomepage opens the repository's homepage. Homepage values come from
// remote data, so the scheme check applies to them too.
func OpenHomepage(rec cache.Record) error {
	if rec.Homepage == "" {
		return ErrNoHomepage
	}
	return open(rec.Homepage)
}

func open(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("refusing to open URL with scheme %q (only http/https allowed)", u.Scheme)
	}

	switch runtime.GOOS {
	case "darwin":
		return launch("open", rawURL)
	case "windows":
		// rundll32 avoids shell interpretation of the URL
		return launch("rundll32", "url.dll,FileProtocolHandler", rawURL)
	default:
		return launch("xdg-open", rawURL)
	}
}
