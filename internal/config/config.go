package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host      string `yaml:"host"`
		Port      int    `yaml:"port"`
		Env       string `yaml:"env"`
		ClientURL string `yaml:"client_url"`
	} `yaml:"server"`

	Database struct {
		DSN             string `yaml:"url"`
		MaxOpenConns    int    `yaml:"max_open_conns"`
		MaxIdleConns    int    `yaml:"max_idle_conns"`
		ConnMaxIdleSec  int    `yaml:"conn_max_idle_sec"`
		ConnectTimeout  int    `yaml:"connect_timeout_sec"`
		StartupAttempts int    `yaml:"startup_attempts"`
	} `yaml:"database"`

	JWT struct {
		Secret        string `yaml:"secret"`
		RefreshSecret string `yaml:"refresh_secret"`
		ExpiresIn     string `yaml:"expires_in"` // Go duration, e.g. "24h"
	} `yaml:"jwt"`

	Auth struct {
		BcryptCost       int    `yaml:"bcrypt_cost"`
		VerifyOnRegister bool   `yaml:"verify_on_register"`
		AdminEmail       string `yaml:"admin_email"`
		AdminPassword    string `yaml:"admin_password"`
	} `yaml:"auth"`

	RateLimit struct {
		WindowMS    int `yaml:"window_ms"`
		MaxRequests int `yaml:"max_requests"`
	} `yaml:"rate_limit"`
}

var AppConfig *Config

// LoadConfig reads config/config.yaml (or CONFIG_PATH) when present and then
// overlays the recognized environment variables. Each variable controls
// exactly one knob; unset variables leave the file/default value intact.
func LoadConfig() {
	cfg := defaults()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	if f, err := os.Open(configPath); err == nil {
		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(cfg); err != nil {
			f.Close()
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}
		f.Close()
	}

	applyEnv(cfg)

	AppConfig = cfg
}

// GetConfig returns the loaded config, loading it on first use.
func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}

func defaults() *Config {
	var cfg Config

	cfg.Server.Port = 5000
	cfg.Server.Env = "development"

	// Pool sizing mirrors the production deployment: 20 max / 5 idle
	// clients, 30s idle timeout, 10s connect timeout.
	cfg.Database.MaxOpenConns = 20
	cfg.Database.MaxIdleConns = 5
	cfg.Database.ConnMaxIdleSec = 30
	cfg.Database.ConnectTimeout = 10
	cfg.Database.StartupAttempts = 10

	cfg.JWT.ExpiresIn = "24h"

	cfg.Auth.BcryptCost = 12
	cfg.Auth.VerifyOnRegister = true

	cfg.RateLimit.WindowMS = 15 * 60 * 1000
	cfg.RateLimit.MaxRequests = 100

	return &cfg
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
	if v := os.Getenv("JWT_REFRESH_SECRET"); v != "" {
		cfg.JWT.RefreshSecret = v
	}
	if v := os.Getenv("JWT_EXPIRES_IN"); v != "" {
		cfg.JWT.ExpiresIn = v
	}
	if v := os.Getenv("CLIENT_URL"); v != "" {
		cfg.Server.ClientURL = v
	}
	if v := os.Getenv("NODE_ENV"); v != "" {
		cfg.Server.Env = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("RATE_LIMIT_WINDOW_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil {
			cfg.RateLimit.WindowMS = ms
		}
	}
	if v := os.Getenv("RATE_LIMIT_MAX_REQUESTS"); v != "" {
		if max, err := strconv.Atoi(v); err == nil {
			cfg.RateLimit.MaxRequests = max
		}
	}
	if v := os.Getenv("FIRST_ADMIN_EMAIL"); v != "" {
		cfg.Auth.AdminEmail = v
	}
	if v := os.Getenv("FIRST_ADMIN_PASSWORD"); v != "" {
		cfg.Auth.AdminPassword = v
	}
}
