package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"dconn.dev/folio/internal/handlers"
	"dconn.dev/folio/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		projectService := services.NewProjectService(&services.FileFetcher{Path: cfg.ProjectsPath()})
		if err := projectService.Reload(ctx); err != nil {
			slog.Warn("project list unavailable, detail pages will 404 until it loads", "error", err)
		}

		watcher, err := services.NewFileWatcher(cfg.ProjectsPath(), func() {
			if err := projectService.Reload(ctx); err != nil {
				slog.Warn("failed to reload projects", "error", err)
				return
			}
			slog.Info("projects reloaded", "count", len(projectService.GetAll()))
		})
		if err != nil {
			return fmt.Errorf("creating data watcher: %w", err)
		}
		if err := watcher.Start(); err != nil {
			slog.Warn("not watching project data", "error", err)
		}
		defer watcher.Stop()

		srv := &http.Server{
			Addr:              cfg.ServerAddr,
			Handler:           handlers.SetupRoutes(cfg, projectService),
			ReadHeaderTimeout: 10 * time.Second,
			IdleTimeout:       120 * time.Second,
		}

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()

		fmt.Fprintf(os.Stderr, "folio listening on %s (data: %s)\n", cfg.ServerAddr, cfg.ProjectsPath())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
