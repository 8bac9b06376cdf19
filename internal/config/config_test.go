package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, ":8080", cfg.ServerAddr)
	assert.Equal(t, "data", cfg.DataPath)
	assert.Equal(t, filepath.Join("data", "projects.json"), cfg.ProjectsPath())
	assert.Zero(t, cfg.FetchTimeout)
	assert.Equal(t, SourcePage, cfg.ProjectsSource)
	assert.NotEmpty(t, cfg.PrefsFile)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.ServerAddr)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "folio.yml")
	content := `server_addr: ":9090"
data_path: site
projects_source: file
fetch_timeout: 5s
allow_all_origins: true
theme:
  light:
    accent: "#ff0000"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.ServerAddr)
	assert.Equal(t, "site", cfg.DataPath)
	assert.Equal(t, SourceFile, cfg.ProjectsSource)
	assert.Equal(t, 5*time.Second, cfg.FetchTimeout)
	assert.True(t, cfg.AllowAllOrigins)
	assert.Equal(t, "#ff0000", cfg.Theme.Light.Accent)
	// untouched keys keep their defaults
	assert.Equal(t, "projects.json", cfg.ProjectsFile)
	assert.Equal(t, Default().Theme.Dark, cfg.Theme.Dark)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("FOLIO_SERVER_ADDR", ":7070")
	t.Setenv("FOLIO_DATA_PATH", "public")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.ServerAddr)
	assert.Equal(t, "public", cfg.DataPath)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "folio.yml")
	require.NoError(t, os.WriteFile(path, []byte("server_addr: [oops"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty addr", func(c *Config) { c.ServerAddr = "" }},
		{"empty data path", func(c *Config) { c.DataPath = "" }},
		{"empty projects file", func(c *Config) { c.ProjectsFile = "" }},
		{"unknown source", func(c *Config) { c.ProjectsSource = "s3" }},
		{"negative timeout", func(c *Config) { c.FetchTimeout = -time.Second }},
		{"addr without port", func(c *Config) { c.ServerAddr = "localhost" }},
		{"relative site url", func(c *Config) { c.SiteURL = "/folio" }},
		{"non-http site url", func(c *Config) { c.SiteURL = "file:///etc" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestSiteBase(t *testing.T) {
	tests := []struct {
		addr string
		site string
		want string
	}{
		{":8080", "", "http://127.0.0.1:8080/"},
		{"0.0.0.0:80", "", "http://127.0.0.1:80/"},
		{"[::]:8080", "", "http://[::1]:8080/"},
		{"10.0.0.5:9000", "", "http://10.0.0.5:9000/"},
		{":8080", "https://dconn.dev/folio/", "https://dconn.dev/folio/"},
	}

	for _, tt := range tests {
		t.Run(tt.addr+" "+tt.site, func(t *testing.T) {
			cfg := Default()
			cfg.ServerAddr = tt.addr
			cfg.SiteURL = tt.site

			base, err := cfg.SiteBase()
			require.NoError(t, err)
			assert.Equal(t, tt.want, base.String())
		})
	}
}

func TestLoad_SiteURLFromEnv(t *testing.T) {
	t.Setenv("FOLIO_SITE_URL", "https://dconn.dev")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "https://dconn.dev", cfg.SiteURL)
}
