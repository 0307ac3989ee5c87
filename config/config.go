// Package config provides configuration management for ChatDock.
// It loads and saves the static application settings: what to embed, how
// to hand off authentication, and how to log. User-chosen preferences live
// in the prefs package instead.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/yllada/chatdock/common"
)

// Config represents the application configuration.
// It is persisted to config.yaml in the user's config directory.
type Config struct {
	Content ContentConfig `yaml:"content"`
	Auth    AuthConfig    `yaml:"auth"`
	Window  WindowConfig  `yaml:"window"`
	Log     LogConfig     `yaml:"log"`
}

// ContentConfig describes the embedded chat site.
type ContentConfig struct {
	// URL is the original address of the content view.
	URL string `yaml:"url"`
	// AppDomains are the hosts that count as "back in the application"
	// when detecting the end of an authentication flow.
	AppDomains []string `yaml:"app_domains"`
	// UserAgent is presented by both the content view and the auth window.
	UserAgent string `yaml:"user_agent"`
	// Partition names the storage shared by the content view and the
	// auth window.
	Partition string `yaml:"partition"`
}

// AuthConfig controls the identity-provider hand-off.
type AuthConfig struct {
	// Policy is "window" (secondary window) or "inplace" (content view).
	Policy string `yaml:"policy"`
	// ProviderPatterns are substrings matched against the host of a
	// navigation to recognise the identity provider.
	ProviderPatterns []string `yaml:"provider_patterns"`
	// MaskAutomation injects a script hiding automation markers. Only
	// honoured by the inplace policy.
	MaskAutomation bool `yaml:"mask_automation"`
}

// WindowConfig holds main window geometry and tray text.
type WindowConfig struct {
	Width       int    `yaml:"width"`
	Height      int    `yaml:"height"`
	TrayTooltip string `yaml:"tray_tooltip"`
}

// LogConfig controls the application logger.
type LogConfig struct {
	Level       string `yaml:"level"`
	File        bool   `yaml:"file"`
	MaxFileSize int64  `yaml:"max_file_size"`
	MaxBackups  int    `yaml:"max_backups"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Content: ContentConfig{
			URL:        common.DefaultContentURL,
			AppDomains: []string{"gemini.google.com"},
			UserAgent:  common.DefaultUserAgent,
			Partition:  common.DefaultPartition,
		},
		Auth: AuthConfig{
			Policy: common.AuthPolicyWindow,
			ProviderPatterns: []string{
				"accounts.google.com",
				"signin.",
				"accounts.youtube.com",
			},
		},
		Window: WindowConfig{
			Width:       common.DefaultWindowWidth,
			Height:      common.DefaultWindowHeight,
			TrayTooltip: common.AppName,
		},
		Log: LogConfig{
			Level:       "info",
			File:        true,
			MaxFileSize: 5 * 1024 * 1024,
			MaxBackups:  5,
		},
	}
}

// Path returns the location of config.yaml.
func Path() (string, error) {
	dir, err := common.GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, common.ConfigFileName), nil
}

// Load reads the configuration from the default location, creating the
// file with defaults when it does not exist.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile reads the configuration at path. A missing file is created with
// defaults; the defaults are returned even if writing them fails.
func LoadFile(path string) (*Config, error) {
	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg := DefaultConfig()
		if err := cfg.SaveFile(path); err != nil {
			return cfg, err
		}
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrConfigLoad, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	// Decode over the defaults so sections missing from the file keep
	// their default values.
	cfg := DefaultConfig()
	if err := decoder.Decode(cfg); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", common.ErrConfigLoad, path, err)
	}

	cfg.validate()
	return cfg, nil
}

// validate replaces unusable values with their defaults.
func (c *Config) validate() {
	def := DefaultConfig()

	if u, err := url.Parse(c.Content.URL); err != nil || (u.Scheme != "https" && u.Scheme != "http") || u.Host == "" {
		c.Content.URL = def.Content.URL
	}
	c.Content.AppDomains = cleanList(c.Content.AppDomains)
	if len(c.Content.AppDomains) == 0 {
		if u, err := url.Parse(c.Content.URL); err == nil {
			c.Content.AppDomains = []string{u.Hostname()}
		}
	}
	if strings.TrimSpace(c.Content.UserAgent) == "" {
		c.Content.UserAgent = def.Content.UserAgent
	}
	if strings.TrimSpace(c.Content.Partition) == "" {
		c.Content.Partition = def.Content.Partition
	}

	if !lo.Contains([]string{common.AuthPolicyWindow, common.AuthPolicyInPlace}, c.Auth.Policy) {
		c.Auth.Policy = def.Auth.Policy
	}
	c.Auth.ProviderPatterns = cleanList(c.Auth.ProviderPatterns)
	if len(c.Auth.ProviderPatterns) == 0 {
		c.Auth.ProviderPatterns = def.Auth.ProviderPatterns
	}

	if c.Window.Width < common.MinWindowWidth {
		c.Window.Width = def.Window.Width
	}
	if c.Window.Height < common.MinWindowHeight {
		c.Window.Height = def.Window.Height
	}
	if c.Window.TrayTooltip == "" {
		c.Window.TrayTooltip = def.Window.TrayTooltip
	}

	if c.Log.MaxFileSize <= 0 {
		c.Log.MaxFileSize = def.Log.MaxFileSize
	}
	if c.Log.MaxBackups <= 0 {
		c.Log.MaxBackups = def.Log.MaxBackups
	}
}

func cleanList(in []string) []string {
	out := lo.FilterMap(in, func(s string, _ int) (string, bool) {
		s = strings.ToLower(strings.TrimSpace(s))
		return s, s != ""
	})
	return lo.Uniq(out)
}

// Save writes the configuration to the default location.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return c.SaveFile(path)
}

// SaveFile writes the configuration to path with owner-only permissions.
func (c *Config) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("%w: creating config directory: %v", common.ErrConfigSave, err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrConfigSave, err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("%w: %v", common.ErrConfigSave, err)
	}
	return nil
}

// InPlaceAuth reports whether the inplace hand-off policy is selected.
func (c *Config) InPlaceAuth() bool {
	return c.Auth.Policy == common.AuthPolicyInPlace
}

// LoggerConfig converts the log section for common.InitLogger.
func (c *Config) LoggerConfig(verbose bool) common.LogConfig {
	level := common.ParseLogLevel(c.Log.Level)
	if verbose {
		level = common.LevelDebug
	}
	return common.LogConfig{
		Level:       level,
		EnableFile:  c.Log.File,
		MaxFileSize: c.Log.MaxFileSize,
		MaxBackups:  c.Log.MaxBackups,
	}
}
