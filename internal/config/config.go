package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"campushub/internal/eventbus"
)

// Config represents the application configuration
type Config struct {
	Version   int               `toml:"version"`
	StartPage string            `toml:"start_page"`
	UI        UISettings        `toml:"ui"`
	Assistant AssistantSettings `toml:"assistant"`
	Log       LogSettings       `toml:"log"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ShowScores   bool `toml:"show_scores"`
	TopN         int  `toml:"top_n"`         // size of the "top" view
	UpcomingDays int  `toml:"upcoming_days"` // window of the "upcoming" view
	ToastSeconds int  `toml:"toast_seconds"`
}

// AssistantSettings configures the chat assistant endpoint
type AssistantSettings struct {
	BaseURL      string `toml:"base_url"`
	Model        string `toml:"model"`
	APIKey       string `toml:"api_key,omitempty"`
	SystemPrompt string `toml:"system_prompt"`
	// TimeoutSeconds bounds one assistant request
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// Timeout returns TimeoutSeconds as a duration
func (a AssistantSettings) Timeout() time.Duration {
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// LogSettings configures the log file
type LogSettings struct {
	Path  string `toml:"path"`
	Level string `toml:"level"`
}

// envOverrides are read from the process environment after an optional
// .env file has been loaded
type envOverrides struct {
	StartPage        string `env:"CAMPUSHUB_START_PAGE"`
	AssistantAPIKey  string `env:"CAMPUSHUB_ASSISTANT_API_KEY"`
	AssistantBaseURL string `env:"CAMPUSHUB_ASSISTANT_BASE_URL"`
	AssistantModel   string `env:"CAMPUSHUB_ASSISTANT_MODEL"`
	LogLevel         string `env:"CAMPUSHUB_LOG_LEVEL"`
	LogPath          string `env:"CAMPUSHUB_LOG_PATH"`
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

// DefaultPath returns $XDG_CONFIG_HOME/campushub/config.toml, falling back to
// ~/.config when the user config dir is unknown
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "campushub", "config.toml")
}

// NewConfigService creates a config service for path. An empty path uses
// DefaultPath. bus may be nil.
func NewConfigService(path string, bus eventbus.EventBus) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{
		bus:      bus,
		filePath: path,
	}
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration file, falling back to defaults when it does
// not exist
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, os.ErrNotExist) {
		cfg = DefaultConfig()
	} else if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{
			Path:      cs.filePath,
			StartPage: cfg.StartPage,
		})
	}

	return cfg, nil
}

// Save saves the configuration to the service's file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}

	return nil
}

// LoadFromPath loads configuration from a specific path. Missing keys keep
// their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file not found: %s: %w", path, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.normalize()

	return cfg, nil
}

// SaveToPath saves configuration to a specific path. The API key is never
// written; it belongs in the environment.
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := Marshal(config)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Marshal encodes config as TOML without the API key
func Marshal(config *Config) ([]byte, error) {
	out := *config
	out.Assistant.APIKey = ""
	data, err := toml.Marshal(&out)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// ApplyEnv overlays CAMPUSHUB_* environment variables onto cfg. dotenv files
// are loaded first when they exist; variables already set in the
// environment win over the file.
func ApplyEnv(cfg *Config, dotenv ...string) error {
	if len(dotenv) == 0 {
		dotenv = []string{".env"}
	}
	for _, path := range dotenv {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load %s: %w", path, err)
		}
	}

	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cfg.StartPage, o.StartPage)
	set(&cfg.Assistant.APIKey, o.AssistantAPIKey)
	set(&cfg.Assistant.BaseURL, o.AssistantBaseURL)
	set(&cfg.Assistant.Model, o.AssistantModel)
	set(&cfg.Log.Level, o.LogLevel)
	set(&cfg.Log.Path, o.LogPath)
	return nil
}

// normalize replaces out-of-range values with defaults
func (c *Config) normalize() {
	d := DefaultConfig()
	if c.UI.TopN <= 0 {
		c.UI.TopN = d.UI.TopN
	}
	if c.UI.UpcomingDays <= 0 {
		c.UI.UpcomingDays = d.UI.UpcomingDays
	}
	if c.UI.ToastSeconds <= 0 {
		c.UI.ToastSeconds = d.UI.ToastSeconds
	}
	if c.Assistant.TimeoutSeconds <= 0 {
		c.Assistant.TimeoutSeconds = d.Assistant.TimeoutSeconds
	}
	if c.StartPage == "" {
		c.StartPage = d.StartPage
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:   1,
		StartPage: "events",
		UI: UISettings{
			ShowScores:   true,
			TopN:         5,
			UpcomingDays: 14,
			ToastSeconds: 4,
		},
		Assistant: AssistantSettings{
			BaseURL:        "https://api.openai.com/v1",
			Model:          "gpt-4o-mini",
			SystemPrompt:   "You are a helpful campus assistant. Answer questions about events, clubs, hackathons, exams, study partners, housing and jobs concisely.",
			TimeoutSeconds: 60,
		},
		Log: LogSettings{
			Path:  "campushub.log",
			Level: "info",
		},
	}
}
