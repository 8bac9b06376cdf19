package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment overrides (FOLIO_SERVER_ADDR, ...)
const EnvPrefix = "FOLIO_"

// Where list pages load projects.json from
const (
	SourcePage = "page" // fetched over HTTP relative to the page URL
	SourceFile = "file" // read from data_path directly
)

// Config holds all application configuration
type Config struct {
	ServerAddr      string        `koanf:"server_addr"`
	DataPath        string        `koanf:"data_path"`
	ProjectsFile    string        `koanf:"projects_file"`
	ProjectsSource  string        `koanf:"projects_source"`
	SiteURL         string        `koanf:"site_url"`
	FetchTimeout    time.Duration `koanf:"fetch_timeout"`
	AllowAllOrigins bool          `koanf:"allow_all_origins"`
	PrefsFile       string        `koanf:"prefs_file"`
	Theme           Theme         `koanf:"theme"`
}

// Theme holds the color scheme written into the stylesheet
type Theme struct {
	Dark  Palette `koanf:"dark"`
	Light Palette `koanf:"light"`
}

// Palette holds the colors of one theme
type Palette struct {
	Background string `koanf:"background"`
	Surface    string `koanf:"surface"`
	Text       string `koanf:"text"`
	Muted      string `koanf:"muted"`
	Accent     string `koanf:"accent"`
}

// Default returns a Config with the built-in settings
func Default() *Config {
	return &Config{
		ServerAddr:     ":8080",
		DataPath:       "data",
		ProjectsFile:   "projects.json",
		ProjectsSource: SourcePage,
		PrefsFile:      defaultPrefsFile(),
		Theme: Theme{
			Dark: Palette{
				Background: "#111418",
				Surface:    "#1b2027",
				Text:       "#e6e9ee",
				Muted:      "#9aa4b2",
				Accent:     "#6cb6ff",
			},
			Light: Palette{
				Background: "#f7f7f5",
				Surface:    "#ffffff",
				Text:       "#1d232b",
				Muted:      "#5b6573",
				Accent:     "#0b62c4",
			},
		},
	}
}

// Load reads the YAML file at path if it exists, then applies FOLIO_*
// environment overrides on top of the defaults
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to read config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to access config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env overrides: %w", err)
	}

	cfg := Default()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if c.ServerAddr == "" {
		return fmt.Errorf("server_addr is required")
	}
	if c.DataPath == "" {
		return fmt.Errorf("data_path is required")
	}
	if c.ProjectsFile == "" {
		return fmt.Errorf("projects_file is required")
	}
	if c.ProjectsSource != SourcePage && c.ProjectsSource != SourceFile {
		return fmt.Errorf("invalid projects_source %q: must be page or file", c.ProjectsSource)
	}
	if c.FetchTimeout < 0 {
		return fmt.Errorf("fetch_timeout must be non-negative")
	}
	if _, err := c.SiteBase(); err != nil {
		return err
	}
	return nil
}

// SiteBase returns the trusted origin page URLs are resolved against when
// projects_source is page. It is site_url when set, otherwise the loopback
// address of server_addr. Request Host headers are never used.
func (c *Config) SiteBase() (*url.URL, error) {
	if c.SiteURL != "" {
		u, err := url.Parse(c.SiteURL)
		if err != nil {
			return nil, fmt.Errorf("invalid site_url: %w", err)
		}
		if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, fmt.Errorf("invalid site_url %q: must be an absolute http(s) URL", c.SiteURL)
		}
		return u, nil
	}

	host, port, err := net.SplitHostPort(c.ServerAddr)
	if err != nil {
		return nil, fmt.Errorf("invalid server_addr %q: %w", c.ServerAddr, err)
	}
	switch ip := net.ParseIP(host); {
	case host == "", ip != nil && ip.To4() != nil && ip.IsUnspecified():
		host = "127.0.0.1"
	case ip != nil && ip.IsUnspecified():
		host = "::1"
	}
	return &url.URL{Scheme: "http", Host: net.JoinHostPort(host, port), Path: "/"}, nil
}

// ProjectsPath returns the on-disk location of the project list
func (c *Config) ProjectsPath() string {
	return filepath.Join(c.DataPath, c.ProjectsFile)
}

func defaultPrefsFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "folio-prefs.yml"
	}
	return filepath.Join(dir, "folio", "prefs.yml")
}
