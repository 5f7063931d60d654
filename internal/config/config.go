package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = ".halo"

	KeyIdentityURL     = "endpoints.identity"
	KeyGatewayURL      = "endpoints.gateway"
	KeyOrchestrateURL  = "endpoints.orchestrate"
	KeyCredentialsPath = "credentials.path"
	KeyClassesPath     = "classes.path"
	KeyHTTPTimeout     = "http.timeout"
	KeyUploadTimeout   = "http.upload_timeout"
	KeyLogLevel        = "log.level"
	KeyServeAddr       = "serve.addr"

	configPathEnv = "HALO_CONFIG"
)

type Config struct {
	IdentityURL     string
	GatewayURL      string
	OrchestrateURL  string
	CredentialsPath string
	ClassesPath     string
	HTTPTimeout     time.Duration
	UploadTimeout   time.Duration
	LogLevel        string
	ServeAddr       string
	Env             EnvCredentials
}

// EnvCredentials are fallbacks used when the credential file holds no tokens.
type EnvCredentials struct {
	AuthToken     string `env:"HALO_AUTH_TOKEN"`
	ContextToken  string `env:"HALO_CONTEXT_TOKEN"`
	TransactionID string `env:"HALO_TRANSACTION_ID"`
}

// Load reads ~/.halo/config.toml (optional), HALO_* environment overrides and defaults.
func Load(v *viper.Viper, homeDir string) (Config, error) {
	if v == nil {
		v = viper.New()
	}
	if homeDir == "" {
		return Config{}, errors.New("home directory is empty")
	}

	baseDir := filepath.Join(homeDir, configDir)
	v.SetDefault(KeyIdentityURL, "https://halo.gcu.edu")
	v.SetDefault(KeyGatewayURL, "https://gateway.halo.gcu.edu/")
	v.SetDefault(KeyOrchestrateURL, "https://halo.gcu.edu")
	v.SetDefault(KeyCredentialsPath, filepath.Join(baseDir, "credentials.json"))
	v.SetDefault(KeyClassesPath, filepath.Join(baseDir, "classes.toml"))
	v.SetDefault(KeyHTTPTimeout, 30*time.Second)
	v.SetDefault(KeyUploadTimeout, 5*time.Minute)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyServeAddr, "127.0.0.1:8765")

	v.SetEnvPrefix("HALO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if explicit := os.Getenv(configPathEnv); explicit != "" {
		v.SetConfigFile(explicit)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		v.AddConfigPath(baseDir)
	}

	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := Config{
		IdentityURL:     v.GetString(KeyIdentityURL),
		GatewayURL:      v.GetString(KeyGatewayURL),
		OrchestrateURL:  v.GetString(KeyOrchestrateURL),
		CredentialsPath: expandHome(v.GetString(KeyCredentialsPath), homeDir),
		ClassesPath:     expandHome(v.GetString(KeyClassesPath), homeDir),
		HTTPTimeout:     v.GetDuration(KeyHTTPTimeout),
		UploadTimeout:   v.GetDuration(KeyUploadTimeout),
		LogLevel:        v.GetString(KeyLogLevel),
		ServeAddr:       v.GetString(KeyServeAddr),
	}

	if err := env.Parse(&cfg.Env); err != nil {
		return Config{}, fmt.Errorf("parse credential environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c Config) Validate() error {
	for key, raw := range map[string]string{
		KeyIdentityURL:    c.IdentityURL,
		KeyGatewayURL:     c.GatewayURL,
		KeyOrchestrateURL: c.OrchestrateURL,
	} {
		parsed, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		if parsed.Scheme != "http" && parsed.Scheme != "https" {
			return fmt.Errorf("%s must use http or https", key)
		}
		if parsed.Host == "" {
			return fmt.Errorf("%s host is required", key)
		}
	}
	if c.CredentialsPath == "" {
		return errors.New("credentials path is empty")
	}
	if c.ClassesPath == "" {
		return errors.New("classes path is empty")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("%s must be positive", KeyHTTPTimeout)
	}
	if c.UploadTimeout < c.HTTPTimeout {
		return fmt.Errorf("%s must not be shorter than %s", KeyUploadTimeout, KeyHTTPTimeout)
	}

	return nil
}

func expandHome(path string, homeDir string) string {
	if path == "~" {
		return homeDir
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir, path[2:])
	}
	return path
}
