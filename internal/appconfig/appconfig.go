package appconfig

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"gopkg.in/yaml.v2"
)

// Config holds all configuration details
type Config struct {
	Host     string         `yaml:"host"`
	BasePath string         `yaml:"basePath"`
	DocsPath string         `yaml:"docsPath"`
	WorkOS   WorkOSConfig   `yaml:"workos"`
	Webhooks WebhooksConfig `yaml:"webhooks"`
	Pulsar   PulsarConfig   `yaml:"pulsar"`
	Database DatabaseConfig `yaml:"database"`
	AWS      AWSConfig      `yaml:"aws"`
}

// WorkOSConfig defines how the API client is built. The API key itself is
// read from WORKOS_API_KEY unless APIKeySecret names a Secrets Manager entry.
type WorkOSConfig struct {
	BaseURL      string        `yaml:"baseURL"`
	ClientID     string        `yaml:"clientId"`
	APIKeySecret string        `yaml:"apiKeySecret"`
	Timeout      time.Duration `yaml:"timeout"`
	HTTP2        bool          `yaml:"http2"`
	CAFile       string        `yaml:"caFile"`
}

// WebhooksConfig defines how incoming deliveries are verified
type WebhooksConfig struct {
	SecretName string        `yaml:"secretName"`
	Tolerance  time.Duration `yaml:"tolerance"`
}

// PulsarConfig defines the messaging system connection details
type PulsarConfig struct {
	URL           string `yaml:"url"`
	TopicProducer string `yaml:"topicProducer"`
	TopicConsumer string `yaml:"topicConsumer"`
	Subscription  string `yaml:"subscription"`
}

// DatabaseConfig points at the PostgreSQL database that records relayed
// deliveries. Deduplication is off when Source is empty.
type DatabaseConfig struct {
	Source string `yaml:"source"`
}

type AWSConfig struct {
	Region string `yaml:"region"`
}

// LoadConfig loads and parses the configuration from a given file path.
// The file is rendered as a template over the process environment first,
// so values can be written as {{ .WORKOS_CLIENT_ID }}.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config file path is required")
	}

	tmpl, err := template.New("config").Option("missingkey=zero").ParseFiles(path)
	if err != nil {
		return nil, fmt.Errorf("error parsing config file template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, filepath.Base(path), loadEnvVars()); err != nil {
		return nil, fmt.Errorf("error executing config file template: %w", err)
	}

	return Parse(buf.Bytes())
}

// Parse unmarshals rendered YAML and fills in defaults.
func Parse(data []byte) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config YAML: %w", err)
	}

	if config.Host == "" {
		config.Host = ":8080"
	}
	if config.BasePath == "" {
		config.BasePath = "/api"
	}
	config.BasePath = "/" + strings.Trim(config.BasePath, "/")

	return &config, nil
}

// loadEnvVars loads environment variables into a map
func loadEnvVars() map[string]string {
	envVars := make(map[string]string)
	for _, env := range os.Environ() {
		kv := strings.SplitN(env, "=", 2)
		if len(kv) == 2 {
			envVars[kv[0]] = kv[1]
		}
	}
	return envVars
}
