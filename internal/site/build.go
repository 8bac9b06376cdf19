package site

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"dconn.dev/folio/internal/config"
	"dconn.dev/folio/internal/dom"
	"dconn.dev/folio/internal/models"
	"dconn.dev/folio/internal/services"
	"dconn.dev/folio/internal/theme"
	"dconn.dev/folio/internal/web"
)

// ThemeFormSelector matches the server-side theme toggle form
const ThemeFormSelector = `form[action="/theme"]`

// BuiltFile describes one file written by Build
type BuiltFile struct {
	Path string
	Size int64
}

// Builder writes a static snapshot of the site
type Builder struct {
	cfg    *config.Config
	store  theme.Store
	logger *slog.Logger
}

// NewBuilder creates a Builder; store supplies the snapshot's theme
func NewBuilder(cfg *config.Config, store theme.Store, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{cfg: cfg, store: store, logger: logger}
}

// Build renders every list page, the stylesheet and a copy of the project
// list into outputDir
func (b *Builder) Build(ctx context.Context, outputDir string) ([]BuiltFile, error) {
	if err := os.MkdirAll(filepath.Join(outputDir, "static"), 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	var files []BuiltFile
	write := func(rel string, data []byte) error {
		path := filepath.Join(outputDir, rel)
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", rel, err)
		}
		files = append(files, BuiltFile{Path: path, Size: int64(len(data))})
		return nil
	}

	// One read serves every page so a snapshot never mixes two versions of the data.
	source := b.cfg.ProjectsPath()
	raw, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", source, err)
	}
	projects, parseErr := models.DecodeProjects(bytes.NewReader(raw))
	snapshot := services.FetcherFunc(func(context.Context) ([]models.Project, error) {
		return projects, parseErr
	})

	for _, name := range web.ListPages {
		doc, err := BuildPage(ctx, name, snapshot, b.store, b.logger)
		if err != nil {
			return nil, err
		}
		// A static host has no /theme endpoint; the theme is fixed at build time.
		for _, form := range dom.QueryAll(doc, ThemeFormSelector) {
			dom.Remove(form)
		}
		var buf bytes.Buffer
		if err := dom.Render(&buf, doc); err != nil {
			return nil, fmt.Errorf("failed to render %s: %w", name, err)
		}
		if err := write(name, buf.Bytes()); err != nil {
			return nil, err
		}
	}

	if err := write(services.DefaultProjectsFile, raw); err != nil {
		return nil, err
	}

	var css bytes.Buffer
	if err := web.WriteStylesheet(&css, b.cfg.Theme); err != nil {
		return nil, err
	}
	if err := write(filepath.Join("static", "style.css"), css.Bytes()); err != nil {
		return nil, err
	}

	return files, nil
}
