package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the full application configuration
type Config struct {
	API     APIConfig     `yaml:"api"`
	Web     WebConfig     `yaml:"web"`
	Session SessionConfig `yaml:"session"`
	Viewer  ViewerConfig  `yaml:"viewer"`
	Log     LogConfig     `yaml:"log"`
}

// APIConfig points at the remote summarization API
type APIConfig struct {
	// Endpoint receives the POST {"youtube_url": ...}
	Endpoint string `yaml:"endpoint"`
	// HealthEndpoint overrides the derived <scheme>://<host>/health probe URL
	HealthEndpoint string `yaml:"health_endpoint"`
	// HistoryEndpoint overrides the derived <scheme>://<host>/history URL
	HistoryEndpoint string `yaml:"history_endpoint"`
	// Timeout for a summarize call. Zero means no timeout.
	Timeout time.Duration `yaml:"timeout"`
}

// WebConfig configures the browser front end
type WebConfig struct {
	ListenAddr string `yaml:"listen_addr"`
}

// SessionConfig selects where web sessions live. An empty RedisAddr keeps them in memory.
type SessionConfig struct {
	RedisAddr     string        `yaml:"redis_addr"`
	RedisPassword string        `yaml:"redis_password"`
	RedisDB       int           `yaml:"redis_db"`
	TTL           time.Duration `yaml:"ttl"`
}

// ViewerConfig tunes the summary viewer state machine
type ViewerConfig struct {
	// SequenceRequests drops responses to superseded submits instead of
	// letting the last response to arrive win
	SequenceRequests bool `yaml:"sequence_requests"`
}

// LogConfig configures logrus
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default returns a configuration with every default applied
func Default() *Config {
	return &Config{
		API:     APIConfig{Endpoint: DefaultAPIEndpoint},
		Web:     WebConfig{ListenAddr: DefaultListenAddr},
		Session: SessionConfig{TTL: DefaultSessionTTL},
		Log:     LogConfig{Level: DefaultLogLevel},
	}
}

// Load reads the YAML file at path (a missing file is not an error), then
// applies .env and environment overrides.
func Load(path string) (*Config, error) {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides file values with PP_* environment variables
func (c *Config) applyEnv() error {
	if v := getEnv("PP_API_ENDPOINT"); v != "" {
		c.API.Endpoint = v
	}
	if v := getEnv("PP_API_HEALTH_ENDPOINT"); v != "" {
		c.API.HealthEndpoint = v
	}
	if v := getEnv("PP_API_HISTORY_ENDPOINT"); v != "" {
		c.API.HistoryEndpoint = v
	}
	if v := getEnv("PP_API_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid PP_API_TIMEOUT %q: %w", v, err)
		}
		c.API.Timeout = d
	}

	if v := getEnv("PP_LISTEN_ADDR"); v != "" {
		c.Web.ListenAddr = v
	} else if v := getEnv("PORT"); v != "" {
		c.Web.ListenAddr = ":" + v
	}

	if v := getEnv("PP_REDIS_ADDR"); v != "" {
		c.Session.RedisAddr = v
	}
	if v := getEnv("PP_REDIS_PASSWORD"); v != "" {
		c.Session.RedisPassword = v
	}
	if v := getEnv("PP_REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PP_REDIS_DB %q: %w", v, err)
		}
		c.Session.RedisDB = db
	}
	if v := getEnv("PP_SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid PP_SESSION_TTL %q: %w", v, err)
		}
		c.Session.TTL = d
	}

	if v := getEnv("PP_SEQUENCE_REQUESTS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid PP_SEQUENCE_REQUESTS %q: %w", v, err)
		}
		c.Viewer.SequenceRequests = b
	}

	if v := getEnv("PP_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := getEnv("PP_LOG_FILE"); v != "" {
		c.Log.File = v
	}
	return nil
}

// Validate checks the values that have no usable fallback
func (c *Config) Validate() error {
	if strings.TrimSpace(c.API.Endpoint) == "" {
		return errors.New("api.endpoint is required")
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("api.timeout must not be negative, got %s", c.API.Timeout)
	}
	if c.Session.TTL <= 0 {
		c.Session.TTL = DefaultSessionTTL
	}
	if c.Web.ListenAddr == "" {
		c.Web.ListenAddr = DefaultListenAddr
	}
	return nil
}

func getEnv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
