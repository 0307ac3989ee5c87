package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yllada/chatdock/common"
)

func TestLoadFile_CreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.True(t, common.FileExists(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestLoadFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.Auth.Policy = common.AuthPolicyInPlace
	cfg.Auth.MaskAutomation = true
	cfg.Content.URL = "https://chat.example.com"
	cfg.Content.AppDomains = []string{"chat.example.com"}
	cfg.Window.Width = 640
	require.NoError(t, cfg.SaveFile(path))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
	assert.True(t, loaded.InPlaceAuth())
}

func TestLoadFile_PartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("auth:\n  policy: inplace\n"), 0600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, common.AuthPolicyInPlace, cfg.Auth.Policy)
	assert.Equal(t, common.DefaultContentURL, cfg.Content.URL)
	assert.Equal(t, DefaultConfig().Auth.ProviderPatterns, cfg.Auth.ProviderPatterns)
}

func TestLoadFile_UnknownFieldRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("bogus: true\n"), 0600))

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrConfigLoad))
}

func TestValidate_Fallbacks(t *testing.T) {
	cfg := &Config{
		Content: ContentConfig{
			URL:        "ftp://nope",
			AppDomains: []string{"  ", ""},
		},
		Auth: AuthConfig{
			Policy:           "popup",
			ProviderPatterns: []string{" Accounts.Example.com ", "accounts.example.com", ""},
		},
		Window: WindowConfig{Width: 10, Height: 10},
	}

	cfg.validate()

	def := DefaultConfig()
	assert.Equal(t, def.Content.URL, cfg.Content.URL)
	assert.Equal(t, []string{"gemini.google.com"}, cfg.Content.AppDomains)
	assert.Equal(t, def.Content.UserAgent, cfg.Content.UserAgent)
	assert.Equal(t, def.Content.Partition, cfg.Content.Partition)
	assert.Equal(t, common.AuthPolicyWindow, cfg.Auth.Policy)
	assert.Equal(t, []string{"accounts.example.com"}, cfg.Auth.ProviderPatterns)
	assert.Equal(t, def.Window.Width, cfg.Window.Width)
	assert.Equal(t, def.Window.Height, cfg.Window.Height)
	assert.Equal(t, common.AppName, cfg.Window.TrayTooltip)
	assert.Equal(t, def.Log.MaxBackups, cfg.Log.MaxBackups)
}

func TestLoggerConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Log.Level = "warn"

	assert.Equal(t, common.LevelWarn, cfg.LoggerConfig(false).Level)
	assert.Equal(t, common.LevelDebug, cfg.LoggerConfig(true).Level)
	assert.True(t, cfg.LoggerConfig(false).EnableFile)
}
