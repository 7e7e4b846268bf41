// Package config loads and validates the YAML configuration: the providers to
// talk to, request defaults, normalizer options and logging.
package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/dmagro/eth-rpc-outfmt/internal/checksum"
	"github.com/dmagro/eth-rpc-outfmt/internal/normalize"
	"github.com/dmagro/eth-rpc-outfmt/internal/rpc"
)

type Config struct {
	Providers []Provider `yaml:"providers"`
	Defaults  Defaults   `yaml:"defaults"`
	Normalize Normalize  `yaml:"normalize"`
	Log       Log        `yaml:"log"`

	warnings []string
}

// Provider is a JSON-RPC endpoint, reached over http(s) or ws(s).
type Provider struct {
	Name    string        `yaml:"name"`
	URL     string        `yaml:"url"`               // supports ${VAR} expansion
	Timeout time.Duration `yaml:"timeout,omitempty"` // falls back to Defaults.Timeout
}

type Defaults struct {
	Provider   string        `yaml:"provider"` // name of the provider used when --provider is not given
	Timeout    time.Duration `yaml:"timeout"`
	MaxRetries int           `yaml:"max_retries"`
}

// Normalize holds normalizer options.
type Normalize struct {
	TraceMode        string `yaml:"trace_mode"`         // legacy | corrected
	AddressCacheSize int    `yaml:"address_cache_size"` // checksum memo capacity
}

type Log struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // console | json
}

const (
	defaultLogLevel  = "info"
	defaultLogFormat = "console"
)

// Validate checks required fields and fills in optional ones. Suspicious but
// legal values are recorded and available from Warnings.
func (c *Config) Validate() error {
	c.warnings = nil

	if c.Defaults.Timeout == 0 {
		return errors.New("defaults.timeout is required")
	}
	if c.Defaults.MaxRetries < 0 {
		return errors.New("defaults.max_retries must be >= 0")
	}
	if len(c.Providers) == 0 {
		return errors.New("at least one provider is required")
	}

	c.warnTimeout("defaults", c.Defaults.Timeout)

	seen := make(map[string]bool, len(c.Providers))
	for i := range c.Providers {
		p := &c.Providers[i]
		if p.Name == "" {
			return errors.Errorf("provider %d: name is required", i)
		}
		if seen[p.Name] {
			return errors.Errorf("provider %s: duplicate name", p.Name)
		}
		seen[p.Name] = true

		if p.Timeout == 0 {
			p.Timeout = c.Defaults.Timeout
		}
		if err := validateURL(p); err != nil {
			return err
		}
		c.warnTimeout(fmt.Sprintf("provider %s", p.Name), p.Timeout)
	}

	if c.Defaults.Provider == "" {
		c.Defaults.Provider = c.Providers[0].Name
	} else if !seen[c.Defaults.Provider] {
		return errors.Errorf("defaults.provider %q is not a configured provider", c.Defaults.Provider)
	}

	if _, err := normalize.ParseTraceMode(c.Normalize.TraceMode); err != nil {
		return errors.Wrap(err, "normalize.trace_mode")
	}
	if c.Normalize.AddressCacheSize < 0 {
		return errors.New("normalize.address_cache_size must be >= 0")
	}
	if c.Normalize.AddressCacheSize == 0 {
		c.Normalize.AddressCacheSize = checksum.DefaultCacheSize
	}

	c.Log.Level = strings.ToLower(c.Log.Level)
	switch c.Log.Level {
	case "":
		c.Log.Level = defaultLogLevel
	case "debug", "info", "warn", "error":
	default:
		return errors.Errorf("log.level %q is invalid (expected debug, info, warn or error)", c.Log.Level)
	}

	c.Log.Format = strings.ToLower(c.Log.Format)
	switch c.Log.Format {
	case "":
		c.Log.Format = defaultLogFormat
	case "console", "json":
	default:
		return errors.Errorf("log.format %q is invalid (expected console or json)", c.Log.Format)
	}

	return nil
}

func validateURL(p *Provider) error {
	if p.URL == "" {
		return errors.Errorf("provider %s: url is required", p.Name)
	}

	u, err := url.Parse(p.URL)
	if err != nil {
		return errors.Wrapf(err, "provider %s: invalid url", p.Name)
	}
	if u.Scheme == "" || u.Host == "" {
		return errors.Errorf("provider %s: invalid url (missing scheme or host)", p.Name)
	}
	switch u.Scheme {
	case "http", "https", "ws", "wss":
		return nil
	default:
		return errors.Errorf("provider %s: invalid url scheme %q (expected http, https, ws or wss)", p.Name, u.Scheme)
	}
}

func (c *Config) warnTimeout(scope string, d time.Duration) {
	const low = 500 * time.Millisecond
	const high = 2 * time.Minute
	if d > 0 && d < low {
		c.warnings = append(c.warnings, fmt.Sprintf("%s timeout is very low (%s); requests may fail under normal network jitter", scope, d))
	}
	if d > high {
		c.warnings = append(c.warnings, fmt.Sprintf("%s timeout is very high (%s); failures may take a long time to surface", scope, d))
	}
}

// Warnings returns the messages collected by the last Validate.
func (c *Config) Warnings() []string {
	return c.warnings
}

// Provider returns the provider called name, or the default provider when
// name is empty.
func (c *Config) Provider(name string) (Provider, error) {
	if name == "" {
		name = c.Defaults.Provider
	}
	for _, p := range c.Providers {
		if p.Name == name {
			return p, nil
		}
	}
	return Provider{}, errors.Errorf("unknown provider %q", name)
}

// ClientConfig converts p into transport settings.
func (c *Config) ClientConfig(p Provider) rpc.ClientConfig {
	return rpc.ClientConfig{
		Name:       p.Name,
		URL:        p.URL,
		Timeout:    p.Timeout,
		MaxRetries: c.Defaults.MaxRetries,
	}
}

// TraceMode returns the parsed normalize.trace_mode. Validate has already
// rejected unknown values.
func (c *Config) TraceMode() normalize.TraceMode {
	mode, _ := normalize.ParseTraceMode(c.Normalize.TraceMode)
	return mode
}

func (c *Config) LogLevel() slog.Level {
	switch c.Log.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Load reads a YAML file, expands ${VAR} references from the environment and
// validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config")
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
