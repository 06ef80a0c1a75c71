package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

type config struct {
	Port           string        `yaml:"port"`
	BackendURL     string        `yaml:"backendURL"`
	ReplyDelay     time.Duration `yaml:"replyDelay"`
	RequestTimeout time.Duration `yaml:"requestTimeout"`
	PageIdleTTL    time.Duration `yaml:"pageIdleTTL"`
	LogLevel       string        `yaml:"logLevel"`
	LogFormat      string        `yaml:"logFormat"`
	BackendPort    string        `yaml:"backendPort"`
}

func defaultConfig() config {
	return config{
		Port:           "8080",
		BackendURL:     "http://localhost:8000",
		ReplyDelay:     1500 * time.Millisecond,
		RequestTimeout: 30 * time.Second,
		PageIdleTTL:    2 * time.Hour,
		LogLevel:       "info",
		LogFormat:      "console",
		BackendPort:    "8000",
	}
}

// loadConfig builds the configuration from the defaults, the YAML file and the environment, in that
// order. An explicit path must exist; the default path under the user config dir is optional.
func loadConfig(path string) (config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		cfgDir, err := os.UserConfigDir()
		if err == nil {
			path = filepath.Join(cfgDir, "finbot", "config.yaml")
		}
	}

	if path != "" {
		if err := cfg.decodeFile(path); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return config{}, err
			}
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return config{}, err
	}

	return cfg, cfg.validate()
}

func (c *config) decodeFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "error opening config file")
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return errors.Wrapf(err, "error decoding config file %s", path)
	}
	return nil
}

func (c *config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	dur := func(key string, dst *time.Duration) error {
		v, ok := lookup(key)
		if !ok || strings.TrimSpace(v) == "" {
			return nil
		}
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return errors.Wrapf(err, "invalid %s", key)
		}
		*dst = d
		return nil
	}

	str("FINBOT_PORT", &c.Port)
	str("FINBOT_BACKEND_URL", &c.BackendURL)
	str("FINBOT_LOG_LEVEL", &c.LogLevel)
	str("FINBOT_LOG_FORMAT", &c.LogFormat)
	str("FINBOT_BACKEND_PORT", &c.BackendPort)

	if err := dur("FINBOT_REPLY_DELAY", &c.ReplyDelay); err != nil {
		return err
	}
	if err := dur("FINBOT_REQUEST_TIMEOUT", &c.RequestTimeout); err != nil {
		return err
	}
	return dur("FINBOT_PAGE_IDLE_TTL", &c.PageIdleTTL)
}

func (c config) validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}
	if c.BackendURL == "" {
		return errors.New("backend URL is required")
	}
	if c.ReplyDelay < 0 {
		return errors.Errorf("reply delay must not be negative, got %s", c.ReplyDelay)
	}
	if c.RequestTimeout <= 0 {
		return errors.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	if c.PageIdleTTL <= 0 {
		return errors.Errorf("page idle TTL must be positive, got %s", c.PageIdleTTL)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(err, "invalid log level")
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return errors.Errorf("unknown log format: %s", c.LogFormat)
	}
	return nil
}
