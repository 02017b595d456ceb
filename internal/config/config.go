// internal/config/config.go
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
)

// Config represents the application configuration
type Config struct {
	ServerURL          string `toml:"server_url"`
	RequestTimeoutSec  int    `toml:"request_timeout_sec"`
	DefaultLanguage    string `toml:"default_language"`
	DefaultPatternType string `toml:"default_pattern_type"`
	HistoryLimit       int    `toml:"history_limit"`
	ExportDir          string `toml:"export_dir"`
	Theme              Theme  `toml:"theme_colors"`
	Keys               KeyMap `toml:"keys"`

	path string
}

// Theme defines the color palette
type Theme struct {
	TextPrimary   string `toml:"text_primary"`
	TextSecondary string `toml:"text_secondary"`
	TextFaint     string `toml:"text_faint"`
	Accent        string `toml:"accent"`
	Success       string `toml:"success"`
	Error         string `toml:"error"`
	Highlight     string `toml:"highlight"`
	Warning       string `toml:"warning"`
	BgPrimary     string `toml:"bg_primary"`
	BgSecondary   string `toml:"bg_secondary"`
	CardBg        string `toml:"card_bg"`
	BorderColor   string `toml:"border_color"`
}

// KeyMap defines key bindings
type KeyMap struct {
	Run          []string `toml:"run"`
	Save         []string `toml:"save"`
	Add          []string `toml:"add"`
	Delete       []string `toml:"delete"`
	Edit         []string `toml:"edit"`
	ToggleMode   []string `toml:"toggle_mode"`
	SwitchFocus  []string `toml:"switch_focus"`
	NextLanguage []string `toml:"next_language"`
	NextPattern  []string `toml:"next_pattern"`
	History      []string `toml:"history"`
	Export       []string `toml:"export"`
	Raw          []string `toml:"raw"`
	Copy         []string `toml:"copy"`
	Reload       []string `toml:"reload"`
	Exit         []string `toml:"exit"`
}

// DefaultConfig returns a config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL:         "http://localhost:5000",
		RequestTimeoutSec: 30,
		HistoryLimit:      50,
		Theme: Theme{
			// Nord Theme Defaults
			TextPrimary:   "#D8DEE9",
			TextSecondary: "#81A1C1",
			TextFaint:     "#4C566A",
			Accent:        "#88C0D0",
			Success:       "#A3BE8C",
			Error:         "#BF616A",
			Highlight:     "#8FBCBB",
			Warning:       "#D08770",
			BgPrimary:     "#2E3440",
			BgSecondary:   "#3B4252",
			CardBg:        "#434C5E",
			BorderColor:   "#4C566A",
		},
		Keys: DefaultKeys(),
	}
}

// DefaultKeys returns the default key bindings
func DefaultKeys() KeyMap {
	return KeyMap{
		Run:          []string{"ctrl+r"},
		Save:         []string{"ctrl+s"},
		Add:          []string{"a"},
		Delete:       []string{"d", "delete"},
		Edit:         []string{"enter", "e"},
		ToggleMode:   []string{"ctrl+t"},
		SwitchFocus:  []string{"tab"},
		NextLanguage: []string{"L"},
		NextPattern:  []string{"P"},
		History:      []string{"ctrl+h"},
		Export:       []string{"ctrl+e"},
		Raw:          []string{"ctrl+o"},
		Copy:         []string{"ctrl+y"},
		Reload:       []string{"ctrl+l"},
		Exit:         []string{"ctrl+c", "q"},
	}
}

// RequestTimeout returns the per-request timeout
func (c *Config) RequestTimeout() time.Duration {
	if c.RequestTimeoutSec <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.RequestTimeoutSec) * time.Second
}

// ConfigPath returns the XDG-compliant config file path
func ConfigPath() (string, error) {
	return xdg.ConfigFile("hhd/config.toml")
}

// Load loads the config from disk or creates default
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom loads the config at path, writing defaults on first run
func LoadFrom(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		// First run: create default
		cfg := DefaultConfig()
		cfg.path = path
		if err := cfg.Save(); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}
	cfg.path = path

	// Populate defaults for missing fields (migration)
	if cfg.migrate() {
		// Proceed with in-memory defaults even if save fails
		_ = cfg.Save()
	}

	return &cfg, nil
}

// migrate fills fields missing from older config files and reports
// whether anything changed
func (c *Config) migrate() bool {
	defaults := DefaultConfig()
	updated := false

	if c.ServerURL == "" {
		c.ServerURL = defaults.ServerURL
		updated = true
	}
	if c.RequestTimeoutSec <= 0 {
		c.RequestTimeoutSec = defaults.RequestTimeoutSec
		updated = true
	}
	if c.HistoryLimit <= 0 {
		c.HistoryLimit = defaults.HistoryLimit
		updated = true
	}
	if c.Theme.TextPrimary == "" {
		c.Theme = defaults.Theme
		updated = true
	}
	if c.Theme.BorderColor == "" {
		c.Theme.BorderColor = defaults.Theme.BorderColor
		updated = true
	}
	if len(c.Keys.Run) == 0 {
		c.Keys = defaults.Keys
		updated = true
	}
	if len(c.Keys.Copy) == 0 {
		c.Keys.Copy = defaults.Keys.Copy
		updated = true
	}
	return updated
}

// Save writes the config to disk
func (c *Config) Save() error {
	path := c.path
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return err
		}
		path = p
	}

	// Ensure directory exists with secure permissions
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	// Create/truncate file with secure permissions (owner read/write only)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(c)
}
