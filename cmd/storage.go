package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Nabil3962/Suhail-Repository-Hub/internal/cache"
	"github.com/Nabil3962/Suhail-Repository-Hub/internal/config"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the local snapshot cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cache statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath := config.CachePath()
		store, err := cache.Open(dbPath)
		if err != nil {
			return fmt.Errorf("opening cache: %w", err)
		}
		defer store.Close()

		count, size, err := store.Stats(dbPath)
		if err != nil {
			return fmt.Errorf("reading stats: %w", err)
		}

		fmt.Printf("Cache: %s\n", dbPath)
		fmt.Printf("Snapshots: %d\n", count)
		fmt.Printf("Size: %s\n", formatBytes(size))
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop the cached snapshot for the tracked user",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		login := cfg.User
		if flagUser != "" {
			login = flagUser
		}
		if login == "" {
			return fmt.Errorf("no user configured")
		}

		store, err := cache.Open(config.CachePath())
		if err != nil {
			return fmt.Errorf("opening cache: %w", err)
		}
		defer store.Close()

		if err := store.Invalidate(login); err != nil {
			return fmt.Errorf("clearing snapshot: %w", err)
		}
		fmt.Printf("Cleared snapshot for %s.\n", login)
		return nil
	},
}

func init() {
	cacheClearCmd.Flags().StringVar(&flagUser, "user", "", "GitHub login to clear (overrides config)")
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
