package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Actions a binding can perform when its hotkey fires.
const (
	ActionCopy = "copy" // put Text on the clipboard (and paste where supported)
	ActionLog  = "log"
)

type Config struct {
	LogLevel              string         `toml:"log_level"`
	UseCookedAccelerators bool           `toml:"use_cooked_accelerators"`
	UnbindAll             bool           `toml:"unbind_all"`
	Feedback              FeedbackConfig `toml:"feedback"`
	Inject                InjectConfig   `toml:"inject"`
	Bindings              []Binding      `toml:"binding"`
}

// Binding maps one keystring (keybinder syntax, e.g. "<Ctrl><Alt>v") to an action.
type Binding struct {
	Keystring string `toml:"keystring"`
	Action    string `toml:"action"`
	Text      string `toml:"text"`
}

type FeedbackConfig struct {
	Beep        bool    `toml:"beep"`
	FrequencyHz float64 `toml:"frequency_hz"`
	DurationMs  int     `toml:"duration_ms"`
	Volume      float32 `toml:"volume"`
}

type InjectConfig struct {
	PreferPaste bool `toml:"prefer_paste"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		LogLevel:              "info",
		UseCookedAccelerators: true,
		Feedback: FeedbackConfig{
			Beep:        false,
			FrequencyHz: 880,
			DurationMs:  80,
			Volume:      0.2,
		},
		Inject: InjectConfig{
			PreferPaste: true,
		},
		Bindings: []Binding{
			{Keystring: "<Ctrl><Alt>d", Action: ActionCopy, Text: "{{date}}"},
			{Keystring: "<Ctrl><Alt>l", Action: ActionLog},
		},
	}
}

// Load reads the config from disk or returns defaults
func Load() (*Config, error) {
	return LoadFile(Path())
}

// LoadFile reads the config at path on top of the defaults. A missing file is
// not an error.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	// Decoding into a populated slice would merge file bindings into the
	// default ones field by field.
	defaults := cfg.Bindings
	cfg.Bindings = nil

	md, err := toml.DecodeFile(path, cfg)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if !md.IsDefined("binding") {
		cfg.Bindings = defaults
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every binding has a unique keystring and a known action.
func (c *Config) Validate() error {
	seen := make(map[string]bool, len(c.Bindings))
	for i, b := range c.Bindings {
		if b.Keystring == "" {
			return fmt.Errorf("binding %d: empty keystring", i)
		}
		if seen[b.Keystring] {
			return fmt.Errorf("binding %d: duplicate keystring %q", i, b.Keystring)
		}
		seen[b.Keystring] = true

		switch b.Action {
		case ActionCopy, ActionLog:
		default:
			return fmt.Errorf("binding %q: unknown action %q", b.Keystring, b.Action)
		}
	}
	return nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	return c.SaveFile(Path())
}

func (c *Config) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	encErr := toml.NewEncoder(f).Encode(c)
	if closeErr := f.Close(); closeErr != nil && encErr == nil {
		return closeErr
	}
	return encErr
}

// Path returns the platform-specific config file path
func Path() string {
	var base string

	switch runtime.GOOS {
	case "darwin":
		base = os.Getenv("HOME") + "/Library/Application Support"
	case "windows":
		base = os.Getenv("APPDATA")
	default: // linux
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			base = xdg
		} else {
			base = os.Getenv("HOME") + "/.config"
		}
	}

	return filepath.Join(base, "keybinder-tray", "config.toml")
}
