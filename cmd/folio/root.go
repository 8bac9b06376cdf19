package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"dconn.dev/folio/internal/config"
)

var globalOpts struct {
	configPath string
	verbose    bool
}

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "Portfolio project grid with a persisted light/dark theme",
	Long: `folio renders the portfolio pages from data/projects.json: a pinned
project grid on the home page, the full list on projects.html and a detail
page per project. Visitors can switch between dark and light mode; the
choice is remembered in a site-wide cookie.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger()

		loaded, err := config.Load(globalOpts.configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
		slog.Debug("config loaded", "path", globalOpts.configPath, "data", cfg.ProjectsPath())
		return nil
	},
}

// Execute adds all child commands to the root command and runs it
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "folio.yml",
		"Path to config file")
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
}

// setupLogger configures the global slog logger
func setupLogger() {
	level := slog.LevelWarn
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	// Log to stderr so stdout is clean for output
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
