package appconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("WORKOS_CLIENT_ID", "client_123456789")
	t.Setenv("PULSAR_URL", "pulsar://localhost:6650")
	t.Setenv("WORKOS_CA_FILE", "")
	t.Setenv("DATABASE_URL", "postgres://relay@localhost/relay")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
host: ":9090"
basePath: "relay/"
workos:
  clientId: "{{ .WORKOS_CLIENT_ID }}"
  timeout: 10s
  http2: true
  caFile: "{{ .WORKOS_CA_FILE }}"
webhooks:
  secretName: workos/webhook-secret
  tolerance: 5m
pulsar:
  url: "{{ .PULSAR_URL }}"
  topicProducer: persistent://public/default/workos-events
database:
  source: "{{ .DATABASE_URL }}"
aws:
  region: eu-west-2
`), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Host)
	assert.Equal(t, "/relay", cfg.BasePath)
	assert.Equal(t, "client_123456789", cfg.WorkOS.ClientID)
	assert.Equal(t, 10*time.Second, cfg.WorkOS.Timeout)
	assert.True(t, cfg.WorkOS.HTTP2)
	assert.Empty(t, cfg.WorkOS.CAFile)
	assert.Equal(t, 5*time.Minute, cfg.Webhooks.Tolerance)
	assert.Equal(t, "pulsar://localhost:6650", cfg.Pulsar.URL)
	assert.Equal(t, "postgres://relay@localhost/relay", cfg.Database.Source)
	assert.Equal(t, "eu-west-2", cfg.AWS.Region)
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte(`workos: {}`))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Host)
	assert.Equal(t, "/api", cfg.BasePath)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig("")
	assert.EqualError(t, err, "config file path is required")

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "error parsing config file template")

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("host: [unclosed"), 0o600))
	_, err = LoadConfig(path)
	assert.ErrorContains(t, err, "failed to unmarshal config YAML")
}

// Keys as documented on workos.Config.
func TestParse_WorkOSKeys(t *testing.T) {
	cfg, err := Parse([]byte(`
workos:
  baseURL: https://api.workos.com
  clientId: client_123456789
  timeout: 30s
  http2: true
  caFile: /etc/ssl/certs/workos-ca.pem
`))
	require.NoError(t, err)

	assert.Equal(t, "https://api.workos.com", cfg.WorkOS.BaseURL)
	assert.Equal(t, "client_123456789", cfg.WorkOS.ClientID)
	assert.Equal(t, 30*time.Second, cfg.WorkOS.Timeout)
	assert.True(t, cfg.WorkOS.HTTP2)
	assert.Equal(t, "/etc/ssl/certs/workos-ca.pem", cfg.WorkOS.CAFile)
}
