package prefs

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yllada/chatdock/common"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), common.PreferencesFileName))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestLoad_EmptyStoreGivesDefaults(t *testing.T) {
	store := openTestStore(t)

	p, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Defaults(), p)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	want := Preferences{
		Theme:           common.ThemeLight,
		ShortcutEnabled: false,
		ShortcutKey:     "Ctrl+Space",
		AlwaysOnTop:     true,
	}
	require.NoError(t, store.Save(ctx, want))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSave_StoresWireFormat(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	require.NoError(t, store.Save(ctx, Defaults()))

	tests := map[string]string{
		KeyShortcutEnabled: "true",
		KeyShortcutKey:     "Alt+Space",
		KeyTheme:           "dark",
		KeyAlwaysOnTop:     "false",
	}
	for key, want := range tests {
		value, ok, err := store.Get(ctx, key)
		require.NoError(t, err)
		assert.True(t, ok, key)
		assert.Equal(t, want, value, key)
	}
}

func TestSave_RejectsInvalid(t *testing.T) {
	store := openTestStore(t)

	p := Defaults()
	p.Theme = "sepia"
	err := store.Save(context.Background(), p)
	assert.True(t, errors.Is(err, common.ErrInvalidPreference))
}

func TestSetValue(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	require.NoError(t, store.SetValue(ctx, KeyShortcutKey, "Ctrl+Shift+Space"))
	require.NoError(t, store.SetValue(ctx, KeyShortcutEnabled, "false"))

	p, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ctrl+Shift+Space", p.ShortcutKey)
	assert.False(t, p.ShortcutEnabled)

	err = store.SetValue(ctx, KeyShortcutKey, "Ctrl+Q")
	assert.True(t, errors.Is(err, common.ErrInvalidPreference))

	err = store.SetValue(ctx, "fontSize", "12")
	assert.True(t, errors.Is(err, common.ErrUnknownPreference))
}

func TestLoad_SkipsCorruptValues(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	_, err := store.db.Exec(`INSERT INTO preferences (key, value) VALUES ('theme', 'neon'), ('alwaysOnTop', 'true')`)
	require.NoError(t, err)

	p, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, common.ThemeDark, p.Theme)
	assert.True(t, p.AlwaysOnTop)
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	require.NoError(t, store.SetValue(ctx, KeyTheme, "light"))

	require.NoError(t, store.Reset(ctx))

	_, ok, err := store.Get(ctx, KeyTheme)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPreferences_Set(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr error
	}{
		{"light theme", KeyTheme, "light", nil},
		{"bad theme", KeyTheme, "Light", common.ErrInvalidPreference},
		{"json true", KeyShortcutEnabled, "true", nil},
		{"not json", KeyShortcutEnabled, "yes", common.ErrInvalidPreference},
		{"supported key", KeyShortcutKey, "Ctrl+Alt+G", nil},
		{"unsupported key", KeyShortcutKey, "F12", common.ErrInvalidPreference},
		{"unknown key", "zoom", "1", common.ErrUnknownPreference},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Defaults()
			err := p.Set(tt.key, tt.value)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}
