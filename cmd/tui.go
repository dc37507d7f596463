package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Nabil3962/Suhail-Repository-Hub/internal/cache"
	"github.com/Nabil3962/Suhail-Repository-Hub/internal/config"
	"github.com/Nabil3962/Suhail-Repository-Hub/internal/github"
	appsync "github.com/Nabil3962/Suhail-Repository-Hub/internal/sync"
	"github.com/Nabil3962/Suhail-Repository-Hub/internal/tui"
)

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if flagUser != "" {
		cfg.User = flagUser
	}
	if cfg.User == "" {
		return fmt.Errorf("no user configured: set `user` in %s or pass --user", config.DefaultConfigPath())
	}

	log, closeLog, err := openLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := cache.Open(config.CachePath())
	if err != nil {
		return fmt.Errorf("opening cache: %w", err)
	}
	defer store.Close()

	client := github.NewClient(
		github.WithBaseURL(cfg.APIBase),
		github.WithPageSize(cfg.GetPageSize()),
	)
	ctrl := appsync.NewController(store, client, cfg.User, cfg.TTL(), log)

	return tui.Run(tui.RunOpts{
		Cfg:          cfg,
		Ctrl:         ctrl,
		ForceRefresh: flagRefresh,
	})
}

// openLogger writes diagnostics to a file; the TUI owns the terminal, so
// background failures and skipped records only ever show up here.
func openLogger() (zerolog.Logger, func(), error) {
	path := config.LogPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.Nop(), func() {}, fmt.Errorf("creating log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.Nop(), func() {}, fmt.Errorf("opening log file: %w", err)
	}

	level := zerolog.InfoLevel
	if raw := os.Getenv("SUHAIL_LOG_LEVEL"); raw != "" {
		if parsed, err := zerolog.ParseLevel(raw); err == nil {
			level = parsed
		}
	}

	log := zerolog.New(f).Level(level).With().Timestamp().Logger()
	return log, func() { f.Close() }, nil
}
