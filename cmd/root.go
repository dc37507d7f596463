package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagUser    string
	flagRefresh bool
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "suhail",
	Short: "TUI dashboard for a GitHub user's repositories",
	Long:  "suhail keeps a locally cached snapshot of a user's GitHub repositories and browses it with search, language and topic filters, and sorting.",
	RunE:  runTUI,
}

func init() {
	rootCmd.Flags().StringVar(&flagUser, "user", "", "GitHub login to track (overrides config)")
	rootCmd.Flags().BoolVar(&flagRefresh, "refresh", false, "force a fetch before launching, even if the cache is fresh")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cacheCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("suhail %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}
