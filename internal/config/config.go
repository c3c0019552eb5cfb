package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"findanything/internal/eventbus"
)

// Config represents the application configuration
type Config struct {
	Version  int              `toml:"version"`
	Provider ProviderSettings `toml:"provider"`
	Search   SearchSettings   `toml:"search"`
	Log      LogSettings      `toml:"log"`
	UI       UISettings       `toml:"ui"`
	Server   ServerSettings   `toml:"server"`
}

// ProviderSettings configures the Results Provider client
type ProviderSettings struct {
	URL       string   `toml:"url"`
	Timeout   Duration `toml:"timeout"`
	Retries   int      `toml:"retries"`
	RateLimit float64  `toml:"rate_limit"`
	Burst     int      `toml:"burst"`
}

// SearchSettings configures dispatch behaviour
type SearchSettings struct {
	SettleDelay    Duration `toml:"settle_delay"`
	DiscardStale   bool     `toml:"discard_stale"`
	CoalesceSettle bool     `toml:"coalesce_settle"`
}

// LogSettings represents logging configuration
type LogSettings struct {
	File  string `toml:"file"`
	Debug bool   `toml:"debug"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ShowDegraded bool `toml:"show_degraded"`
	Columns      int  `toml:"columns"`
}

// ServerSettings configures the demo provider
type ServerSettings struct {
	Addr string `toml:"addr"`
	TopK int    `toml:"top_k"`
}

// Duration is a time.Duration written as "100ms" in the config file
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// DefaultPath is <UserConfigDir>/findanything/config.toml
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "findanything", "config.toml")
}

// NewConfigService creates a new config service at the default path
func NewConfigService() ConfigService {
	return &configService{filePath: DefaultPath()}
}

// NewConfigServiceWithBus creates a config service with event bus support.
// An empty path selects DefaultPath.
func NewConfigServiceWithBus(bus eventbus.EventBus, path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{bus: bus, filePath: path}
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration file; a missing file yields the defaults
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, fs.ErrNotExist) {
		cfg, err = DefaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{
			Path:        cs.filePath,
			ProviderURL: cfg.Provider.URL,
		})
	}
	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}
	return nil
}

// LoadFromPath loads configuration from a specific path.
// Keys absent from the file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config file not found: %s: %w", path, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate rejects values the client or UI cannot work with
func (c *Config) Validate() error {
	var problems []string
	if strings.TrimSpace(c.Provider.URL) == "" {
		problems = append(problems, "provider.url is empty")
	}
	if c.Provider.Timeout.Duration < 0 {
		problems = append(problems, "provider.timeout is negative")
	}
	if c.Provider.Retries < 0 {
		problems = append(problems, "provider.retries is negative")
	}
	if c.Provider.RateLimit < 0 {
		problems = append(problems, "provider.rate_limit is negative")
	}
	if c.Search.SettleDelay.Duration < 0 {
		problems = append(problems, "search.settle_delay is negative")
	}
	if c.UI.Columns < 1 {
		problems = append(problems, "ui.columns must be at least 1")
	}
	if c.Server.TopK < 1 {
		problems = append(problems, "server.top_k must be at least 1")
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Provider: ProviderSettings{
			URL:     "http://localhost:8000/query",
			Timeout: Duration{15 * time.Second},
			Burst:   1,
		},
		Search: SearchSettings{
			SettleDelay: Duration{100 * time.Millisecond},
		},
		Log: LogSettings{
			File: "findanything.log",
		},
		UI: UISettings{
			ShowDegraded: true,
			Columns:      3,
		},
		Server: ServerSettings{
			Addr: ":8000",
			TopK: 6,
		},
	}
}
