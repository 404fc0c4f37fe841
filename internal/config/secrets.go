package config

import (
	"os"
	"path/filepath"
	"strings"
)

const defaultSecretsPath = "/var/run/secrets/aiswei"

// Secret file names inside the secrets directory.
const (
	appKeyFile    = "app_key"
	appSecretFile = "app_secret"
	apiKeyFile    = "api_key"
	tokenFile     = "token"
	snFile        = "sn"
)

// loadSecrets reads credentials from mounted secret files.
// A missing directory or file is not an error; it allows fallback to env vars.
func loadSecrets(secretsPath string) (map[string]string, error) {
	out := make(map[string]string)
	if secretsPath == "" {
		return out, nil
	}

	if _, err := os.Stat(secretsPath); os.IsNotExist(err) {
		return out, nil
	}

	for _, name := range []string{appKeyFile, appSecretFile, apiKeyFile, tokenFile, snFile} {
		data, err := os.ReadFile(filepath.Join(secretsPath, name))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		if v := strings.TrimSpace(string(data)); v != "" {
			out[name] = v
		}
	}

	return out, nil
}

// applySecrets overrides credentials with non-empty secret file values.
func (c *Config) applySecrets(secrets map[string]string) {
	targets := map[string]*string{
		appKeyFile:    &c.AppKey,
		appSecretFile: &c.AppSecret,
		apiKeyFile:    &c.APIKey,
		tokenFile:     &c.Token,
		snFile:        &c.SN,
	}
	for name, v := range secrets {
		if p, ok := targets[name]; ok {
			*p = v
		}
	}
}
