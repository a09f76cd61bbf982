package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds bazaar's settings.
type Config struct {
	APIBase        string
	DefaultItem    string
	HubZone        string
	CraftingTop    int
	LiquidityTop   int
	PollInterval   time.Duration
	RequestTimeout time.Duration
	LogFile        string
	LogLevel       string
}

const (
	defaultConfigPath     = "~/.config/bazaar/config.toml"
	defaultAPIBase        = "http://127.0.0.1:8000"
	defaultItem           = "Charcoal"
	defaultHubZone        = "Kerys"
	defaultCraftingTop    = 15
	defaultLiquidityTop   = 10
	defaultPollSeconds    = 300
	defaultTimeoutSeconds = 15
	defaultLogFile        = "~/.local/state/bazaar/bazaar.log"
	defaultLogLevel       = "INFO"
)

// Default returns the built-in configuration with paths expanded.
func Default() Config {
	return Config{
		APIBase:        defaultAPIBase,
		DefaultItem:    defaultItem,
		HubZone:        defaultHubZone,
		CraftingTop:    defaultCraftingTop,
		LiquidityTop:   defaultLiquidityTop,
		PollInterval:   defaultPollSeconds * time.Second,
		RequestTimeout: defaultTimeoutSeconds * time.Second,
		LogFile:        mustExpand(defaultLogFile),
		LogLevel:       defaultLogLevel,
	}
}

// DefaultPath returns the config file location used when none is given.
func DefaultPath() string {
	return defaultConfigPath
}

// Load locates and parses the bazaar config, falling back to defaults when
// the file is missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIBase               string `toml:"api_base"`
		DefaultItem           string `toml:"default_item"`
		HubZone               string `toml:"hub_zone"`
		CraftingTop           *int   `toml:"crafting_top"`
		LiquidityTop          *int   `toml:"liquidity_top"`
		PollSeconds           *int   `toml:"poll_seconds"`
		RequestTimeoutSeconds *int   `toml:"request_timeout_seconds"`
		LogFile               string `toml:"log_file"`
		LogLevel              string `toml:"log_level"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIBase); v != "" {
		cfg.APIBase = v
	}
	if v := strings.TrimSpace(raw.DefaultItem); v != "" {
		cfg.DefaultItem = v
	}
	if v := strings.TrimSpace(raw.HubZone); v != "" {
		cfg.HubZone = v
	}
	if raw.CraftingTop != nil {
		cfg.CraftingTop = *raw.CraftingTop
	}
	if raw.LiquidityTop != nil {
		cfg.LiquidityTop = *raw.LiquidityTop
	}
	if raw.PollSeconds != nil {
		cfg.PollInterval = time.Duration(*raw.PollSeconds) * time.Second
	}
	if raw.RequestTimeoutSeconds != nil {
		cfg.RequestTimeout = time.Duration(*raw.RequestTimeoutSeconds) * time.Second
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		cfg.LogLevel = strings.ToUpper(v)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values no component can work with.
func (c Config) Validate() error {
	if c.CraftingTop <= 0 {
		return fmt.Errorf("crafting_top must be positive, got %d", c.CraftingTop)
	}
	if c.LiquidityTop <= 0 {
		return fmt.Errorf("liquidity_top must be positive, got %d", c.LiquidityTop)
	}
	if c.PollInterval < 0 {
		return fmt.Errorf("poll_seconds must not be negative")
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout_seconds must not be negative")
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath resolves a leading "~" and returns an absolute path.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
