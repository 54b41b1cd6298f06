package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ashwch/assist/internal/appdirs"
	"github.com/ashwch/assist/internal/i18n"
	"github.com/pelletier/go-toml/v2"
)

type UIConfig struct {
	Backend string `toml:"backend" json:"backend"`
	Prompt  string `toml:"prompt" json:"prompt"`
	Banner  bool   `toml:"banner" json:"banner"`
}

type LogConfig struct {
	Level string `toml:"level" json:"level"`
	File  string `toml:"file,omitempty" json:"file,omitempty"`
}

type JournalConfig struct {
	Enabled bool `toml:"enabled" json:"enabled"`
}

type RoutinesConfig struct {
	ConfirmRemove bool `toml:"confirm_remove" json:"confirm_remove"`
}

type Config struct {
	Version  int            `toml:"version" json:"version"`
	Locale   string         `toml:"locale" json:"locale"`
	UI       UIConfig       `toml:"ui" json:"ui"`
	Log      LogConfig      `toml:"log" json:"log"`
	Journal  JournalConfig  `toml:"journal" json:"journal"`
	Routines RoutinesConfig `toml:"routines" json:"routines"`
}

func Default() Config {
	return Config{
		Version: 1,
		Locale:  "ru",
		UI: UIConfig{
			Backend: "auto",
			Prompt:  ">>>",
			Banner:  true,
		},
		Log: LogConfig{
			Level: "warn",
		},
		Journal: JournalConfig{
			Enabled: true,
		},
		Routines: RoutinesConfig{
			ConfirmRemove: false,
		},
	}
}

// Keys lists every dotted key accepted by Get and Set, in display order.
func Keys() []string {
	return []string{
		"locale",
		"ui.backend",
		"ui.prompt",
		"ui.banner",
		"log.level",
		"log.file",
		"journal.enabled",
		"routines.confirm_remove",
	}
}

func LoadOrCreate() (Config, string, error) {
	path, err := appdirs.ConfigFilePath()
	if err != nil {
		return Config{}, "", err
	}
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg = Default()
		if err := Save(path, cfg); err != nil {
			return Config{}, "", err
		}
		return cfg, path, nil
	}
	if err != nil {
		return Config{}, "", err
	}
	return cfg, path, nil
}

// Load reads path over the defaults. A missing file yields an error matching
// os.ErrNotExist.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, err
		}
		return Config{}, fmt.Errorf("could not stat config path: %w", err)
	}

	bytes, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("could not read config file: %w", err)
	}
	if err := toml.Unmarshal(bytes, &cfg); err != nil {
		return Config{}, fmt.Errorf("could not parse config file: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

func Save(path string, cfg Config) error {
	cfg.normalize()
	payload, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("could not serialize config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("could not create config dir: %w", err)
	}
	tempFile, err := os.CreateTemp(dir, ".assist-config-*.toml")
	if err != nil {
		return fmt.Errorf("could not create temp config file: %w", err)
	}
	tempPath := tempFile.Name()
	cleanup := func() {
		_ = os.Remove(tempPath)
	}

	if _, err := tempFile.Write(payload); err != nil {
		_ = tempFile.Close()
		cleanup()
		return fmt.Errorf("could not write temp config file: %w", err)
	}
	if err := tempFile.Chmod(0o600); err != nil {
		_ = tempFile.Close()
		cleanup()
		return fmt.Errorf("could not secure temp config file permissions: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		cleanup()
		return fmt.Errorf("could not close temp config file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		cleanup()
		return fmt.Errorf("could not atomically replace config file: %w", err)
	}
	if err := os.Chmod(path, 0o600); err != nil {
		return fmt.Errorf("could not secure config file permissions: %w", err)
	}
	return nil
}

func (c *Config) normalize() {
	defaults := Default()
	if c.Version == 0 {
		c.Version = defaults.Version
	}
	c.Locale = normalizeLocaleSetting(c.Locale, defaults.Locale)
	if c.Locale == "" {
		c.Locale = defaults.Locale
	}
	c.UI.Backend = normalizeUIBackend(c.UI.Backend, defaults.UI.Backend)
	if strings.TrimSpace(c.UI.Prompt) == "" {
		c.UI.Prompt = defaults.UI.Prompt
	}
	c.Log.Level = normalizeLogLevel(c.Log.Level, defaults.Log.Level)
	c.Log.File = strings.TrimSpace(c.Log.File)
}

// ApplyEnv overlays one-run overrides from the environment. Invalid values
// are reported and leave the setting untouched.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if getenv == nil {
		getenv = os.Getenv
	}
	overrides := []struct {
		env string
		key string
	}{
		{env: "ASSIST_LOCALE", key: "locale"},
		{env: "ASSIST_UI", key: "ui.backend"},
		{env: "ASSIST_LOG_LEVEL", key: "log.level"},
		{env: "ASSIST_LOG_FILE", key: "log.file"},
	}
	var errs []error
	for _, o := range overrides {
		value := strings.TrimSpace(getenv(o.env))
		if value == "" {
			continue
		}
		if err := c.Set(o.key, value); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", o.env, err))
		}
	}
	return errors.Join(errs...)
}

func (c *Config) Set(key, value string) error {
	key = strings.TrimSpace(strings.ToLower(key))
	value = strings.TrimSpace(value)

	switch key {
	case "locale":
		locale := normalizeLocaleSetting(value, "")
		if locale == "" {
			return fmt.Errorf("locale must be 'auto' or a locale like ru, ru-RU, en, en-US")
		}
		c.Locale = locale
	case "ui.backend":
		backend := normalizeUIBackend(value, "")
		if backend == "" {
			return fmt.Errorf("ui.backend must be one of auto|bubbletea|huh|tview|plain")
		}
		c.UI.Backend = backend
	case "ui.prompt":
		if value == "" {
			return fmt.Errorf("ui.prompt cannot be empty")
		}
		c.UI.Prompt = value
	case "ui.banner":
		b, err := parseBool(value)
		if err != nil {
			return fmt.Errorf("ui.banner must be boolean")
		}
		c.UI.Banner = b
	case "log.level":
		level := normalizeLogLevel(value, "")
		if level == "" {
			return fmt.Errorf("log.level must be one of debug|info|warn|error")
		}
		c.Log.Level = level
	case "log.file":
		c.Log.File = value
	case "journal.enabled":
		b, err := parseBool(value)
		if err != nil {
			return fmt.Errorf("journal.enabled must be boolean")
		}
		c.Journal.Enabled = b
	case "routines.confirm_remove":
		b, err := parseBool(value)
		if err != nil {
			return fmt.Errorf("routines.confirm_remove must be boolean")
		}
		c.Routines.ConfirmRemove = b
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	c.normalize()
	return nil
}

func (c Config) Get(key string) (string, error) {
	key = strings.TrimSpace(strings.ToLower(key))

	switch key {
	case "version":
		return strconv.Itoa(c.Version), nil
	case "locale":
		return c.Locale, nil
	case "ui.backend":
		return c.UI.Backend, nil
	case "ui.prompt":
		return c.UI.Prompt, nil
	case "ui.banner":
		return strconv.FormatBool(c.UI.Banner), nil
	case "log.level":
		return c.Log.Level, nil
	case "log.file":
		return c.Log.File, nil
	case "journal.enabled":
		return strconv.FormatBool(c.Journal.Enabled), nil
	case "routines.confirm_remove":
		return strconv.FormatBool(c.Routines.ConfirmRemove), nil
	default:
		return "", fmt.Errorf("unknown config key: %s", key)
	}
}

// ResolvedLocale turns "auto" into the detected locale.
func (c Config) ResolvedLocale() string {
	if c.Locale == "" || c.Locale == "auto" {
		return i18n.DetectLocale()
	}
	return c.Locale
}

func parseBool(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid bool: %s", value)
	}
}

func normalizeUIBackend(value string, fallback string) string {
	normalized := strings.ToLower(strings.TrimSpace(value))
	switch normalized {
	case "auto", "bubbletea", "huh", "tview", "plain":
		return normalized
	default:
		return strings.ToLower(strings.TrimSpace(fallback))
	}
}

func normalizeLogLevel(value string, fallback string) string {
	normalized := strings.ToLower(strings.TrimSpace(value))
	switch normalized {
	case "debug", "info", "warn", "error":
		return normalized
	case "warning":
		return "warn"
	default:
		return strings.ToLower(strings.TrimSpace(fallback))
	}
}

func normalizeLocaleSetting(value string, fallback string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		trimmed = strings.TrimSpace(fallback)
	}
	if strings.EqualFold(trimmed, "auto") {
		return "auto"
	}
	return i18n.NormalizeLocale(trimmed)
}
