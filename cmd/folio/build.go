package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"dconn.dev/folio/internal/services"
	"dconn.dev/folio/internal/site"
	"dconn.dev/folio/internal/theme"
)

var buildOpts struct {
	watch bool
}

var buildCmd = &cobra.Command{
	Use:   "build <output-dir>",
	Short: "Write a static snapshot of the site",
	Long: `Renders index.html and projects.html with the current project data and
the theme chosen with "folio theme", copies projects.json and writes the
stylesheet. With --watch the snapshot is rebuilt whenever the data changes.

A static host has no /theme endpoint, so the theme toggle is left out of the
snapshot; change it with "folio theme toggle" and rebuild.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outputDir := args[0]
		builder := site.NewBuilder(cfg, theme.NewFileStore(cfg.PrefsFile), nil)

		if err := runBuild(cmd.Context(), builder, outputDir); err != nil {
			return err
		}
		if !buildOpts.watch {
			return nil
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		watcher, err := services.NewFileWatcher(cfg.ProjectsPath(), func() {
			if err := runBuild(ctx, builder, outputDir); err != nil {
				fmt.Fprintf(os.Stderr, "  ERROR: %v\n", err)
			}
		})
		if err != nil {
			return fmt.Errorf("creating data watcher: %w", err)
		}
		if err := watcher.Start(); err != nil {
			return fmt.Errorf("watching %s: %w", cfg.ProjectsPath(), err)
		}
		defer watcher.Stop()

		fmt.Printf("Watching %s for changes...\n", cfg.ProjectsPath())
		<-ctx.Done()
		return nil
	},
}

func runBuild(ctx context.Context, builder *site.Builder, outputDir string) error {
	fmt.Printf("Building site into %s...\n", outputDir)

	files, err := builder.Build(ctx, outputDir)
	if err != nil {
		return err
	}

	for _, f := range files {
		fmt.Printf("  Created %s (%s)\n", f.Path, humanize.Bytes(uint64(f.Size)))
	}
	fmt.Println("Done!")
	return nil
}

func init() {
	buildCmd.Flags().BoolVarP(&buildOpts.watch, "watch", "w", false,
		"Rebuild when the project data changes")
	rootCmd.AddCommand(buildCmd)
}
