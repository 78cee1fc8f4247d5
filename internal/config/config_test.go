package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lodthe/docker-tags/internal/tagstable"
	"github.com/lodthe/docker-tags/pkg/dockerhub"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
api:
  address: ":8080"
  server_timeout: 10s
log_level: debug
log_format: pretty
catalog_path: /etc/catalog.yaml
registry:
  discovery_base_url: http://backstage:7007/api/proxy
  max_rps: 2
  request_timeout: 5s
table:
  heading: Tags
  columns: [status, name]
  page_size: 10
  show_count_in_heading: false
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.API.ListeningAddress)
	assert.Equal(t, 10*time.Second, cfg.API.ServerTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, PrettyLogFormat, cfg.LogFormat)
	assert.Equal(t, "/etc/catalog.yaml", cfg.CatalogPath)
	assert.Equal(t, "http://backstage:7007/api/proxy", cfg.Registry.DiscoveryBaseURL)
	assert.Equal(t, dockerhub.DockerHubURL, cfg.Registry.UpstreamURL)
	assert.Equal(t, 2, cfg.Registry.MaxRPS)
	assert.Equal(t, 5*time.Second, cfg.Registry.RequestTimeout)

	assert.Equal(t, "Tags", cfg.Table.Heading)
	assert.Equal(t, []tagstable.Column{tagstable.ColumnStatus, tagstable.ColumnName}, cfg.Table.Columns)
	assert.Equal(t, 10, cfg.Table.PageSize)
	assert.Equal(t, []int{5, 10, 25}, cfg.Table.PageSizeOptions)
	require.NotNil(t, cfg.Table.ShowCountInHeading)
	assert.False(t, *cfg.Table.ShowCountInHeading)
}

func TestLoad_Invalid(t *testing.T) {
	cases := []string{
		"log_level: loud\n",
		"log_format: xml\n",
		"table:\n  columns: [name, digest]\n",
		"registry:\n  max_rps: -1\n",
	}

	for _, content := range cases {
		_, err := Load(writeConfig(t, content))
		assert.Error(t, err, content)
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_DiscoveryFollowsListeningAddress(t *testing.T) {
	cfg, err := Load(writeConfig(t, "api:\n  address: \":8080\"\n"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/api/proxy", cfg.Registry.DiscoveryBaseURL)

	cfg, err = Load(writeConfig(t, "api:\n  address: \"127.0.0.1:7007\"\nregistry:\n  discovery_base_url: http://backstage/api/proxy\n"))
	require.NoError(t, err)
	assert.Equal(t, "http://backstage/api/proxy", cfg.Registry.DiscoveryBaseURL)
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, ":9000", cfg.API.ListeningAddress)
	assert.Equal(t, ":2112", cfg.PrometheusExportAddress)
	assert.Equal(t, "http://localhost:9000/api/proxy", cfg.Registry.DiscoveryBaseURL)
	assert.Equal(t, JSONLogFormat, cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, tagstable.DefaultOptions(), cfg.Table)
}

func TestPathFromEnv(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	assert.Equal(t, DefaultConfigPath, PathFromEnv())

	t.Setenv("CONFIG_PATH", "/tmp/custom.yaml")
	assert.Equal(t, "/tmp/custom.yaml", PathFromEnv())
}
