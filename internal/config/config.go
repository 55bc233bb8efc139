package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the praxis configuration, read from .praxis/config.yaml.
type Config struct {
	Version string `yaml:"version"`

	// UserID is the acting user for CLI commands.
	UserID string `yaml:"user_id,omitempty"`

	Server struct {
		Addr         string        `yaml:"addr"`
		ReadTimeout  time.Duration `yaml:"read_timeout"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
		Metrics      bool          `yaml:"metrics"`
	} `yaml:"server"`

	Storage struct {
		DatabasePath string `yaml:"database_path"`
		FilesDir     string `yaml:"files_dir"`
		LocalStore   string `yaml:"local_store"`
		MaxUploadMB  int64  `yaml:"max_upload_mb"`
	} `yaml:"storage"`

	Auth struct {
		JWTSecret string        `yaml:"jwt_secret"`
		Issuer    string        `yaml:"issuer"`
		TokenTTL  time.Duration `yaml:"token_ttl"`
	} `yaml:"auth"`

	Log struct {
		Env   string `yaml:"env"`
		Level string `yaml:"level"`
	} `yaml:"log"`

	Theme struct {
		CacheTTL time.Duration `yaml:"cache_ttl"`
	} `yaml:"theme"`
}

const (
	dirName  = ".praxis"
	fileName = "config.yaml"
)

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{Version: "1"}
	cfg.applyDefaults()
	return cfg
}

// LoadConfig reads .praxis/config.yaml from the specified directory, then
// applies .env and PRAXIS_* environment overrides.
// A missing file is not an error: defaults plus environment are returned.
func LoadConfig(dir string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load(filepath.Join(dir, ".env"))

	cfg := &Config{Version: "1"}
	path := filepath.Join(dir, dirName, fileName)
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

// SaveConfig writes config.yaml to directory
func SaveConfig(dir string, cfg *Config) error {
	praxisDir := filepath.Join(dir, dirName)
	if err := os.MkdirAll(praxisDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s dir: %w", dirName, err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(praxisDir, fileName)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// DataDir returns ~/.praxis, where the database and files live by default.
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, dirName), nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PRAXIS_USER_ID"); v != "" {
		c.UserID = v
	}
	if v := os.Getenv("PRAXIS_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("PRAXIS_DB_PATH"); v != "" {
		c.Storage.DatabasePath = v
	}
	if v := os.Getenv("PRAXIS_FILES_DIR"); v != "" {
		c.Storage.FilesDir = v
	}
	if v := os.Getenv("PRAXIS_JWT_SECRET"); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := os.Getenv("PRAXIS_LOG_ENV"); v != "" {
		c.Log.Env = v
	}
	if v := os.Getenv("PRAXIS_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("PRAXIS_METRICS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Server.Metrics = b
		}
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = "127.0.0.1:8080"
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 30 * time.Second
	}
	if c.Auth.Issuer == "" {
		c.Auth.Issuer = "praxis"
	}
	if c.Auth.TokenTTL == 0 {
		c.Auth.TokenTTL = 24 * time.Hour
	}
	if c.Storage.MaxUploadMB == 0 {
		c.Storage.MaxUploadMB = 20
	}
	if c.Log.Env == "" {
		c.Log.Env = "dev"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Theme.CacheTTL == 0 {
		c.Theme.CacheTTL = 10 * time.Minute
	}

	dataDir, err := DataDir()
	if err != nil {
		dataDir = dirName
	}
	if c.Storage.DatabasePath == "" {
		c.Storage.DatabasePath = filepath.Join(dataDir, "praxis.db")
	}
	if c.Storage.FilesDir == "" {
		c.Storage.FilesDir = filepath.Join(dataDir, "files")
	}
	if c.Storage.LocalStore == "" {
		c.Storage.LocalStore = filepath.Join(dataDir, "local.json")
	}
}
