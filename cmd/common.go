package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/EO-DataHub/workos-go/internal/appconfig"
	awsclient "github.com/EO-DataHub/workos-go/internal/aws"
	"github.com/EO-DataHub/workos-go/workos"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v2"
)

// config returns the loaded config, or an empty one when --config was not
// given and everything comes from the environment.
func config() *appconfig.Config {
	if appCfg != nil {
		return appCfg
	}
	return &appconfig.Config{}
}

// secretsClient creates a Secrets Manager client only when the config
// names a secret to read.
func secretsClient(ctx context.Context, cfg *appconfig.Config) (awsclient.SecretsClient, error) {
	if cfg.WorkOS.APIKeySecret == "" && cfg.Webhooks.SecretName == "" {
		return nil, nil
	}

	awsCfg, err := awsclient.LoadAWSConfig(ctx, cfg.AWS.Region)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("region", cfg.AWS.Region).Msg("Created Secrets Manager client")
	return awsclient.NewSecretsManagerClient(awsCfg), nil
}

func envDefault(value, env string) string {
	if value != "" {
		return value
	}
	return os.Getenv(env)
}

// newWorkOSClient builds the API client from the config, reading the API
// key from Secrets Manager or WORKOS_API_KEY.
func newWorkOSClient(ctx context.Context, cfg *appconfig.Config, secrets awsclient.SecretsClient) (*workos.Client, error) {
	apiKey, err := awsclient.ResolveSecret(ctx, secrets, cfg.WorkOS.APIKeySecret, "WORKOS_API_KEY")
	if err != nil {
		return nil, fmt.Errorf("failed to resolve api key: %w", err)
	}

	return workos.NewClient(workos.Config{
		BaseURL:    envDefault(cfg.WorkOS.BaseURL, "WORKOS_BASE_URL"),
		APIKey:     apiKey,
		ClientID:   envDefault(cfg.WorkOS.ClientID, "WORKOS_CLIENT_ID"),
		Timeout:    cfg.WorkOS.Timeout,
		HTTP2:      cfg.WorkOS.HTTP2,
		CACertFile: cfg.WorkOS.CAFile,
	})
}

// clientFromFlags is the setup shared by the API subcommands.
func clientFromFlags(ctx context.Context) (*workos.Client, error) {
	cfg := config()
	secrets, err := secretsClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return newWorkOSClient(ctx, cfg, secrets)
}

// printOutput writes v to w in the --output format. YAML keeps the JSON
// field names and order.
func printOutput(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}

	switch output {
	case "json":
		_, err = fmt.Fprintln(w, string(b))
		return err
	case "yaml":
		var doc yaml.MapSlice
		if err := yaml.Unmarshal(b, &doc); err != nil {
			return fmt.Errorf("failed to convert output: %w", err)
		}
		out, err := yaml.Marshal(doc)
		if err != nil {
			return fmt.Errorf("failed to encode output: %w", err)
		}
		_, err = w.Write(out)
		return err
	default:
		return fmt.Errorf("unsupported output format %q", output)
	}
}
