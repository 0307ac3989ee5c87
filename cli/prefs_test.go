package cli

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yllada/chatdock/common"
	"github.com/yllada/chatdock/prefs"
)

func runCommand(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := NewRootCommand(BuildInfo{Version: "1.2.3", BuildTime: "unknown"}, nil)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--prefs-file", dbPath))

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestPrefsSetThenShow(t *testing.T) {
	db := filepath.Join(t.TempDir(), "prefs.db")

	out, err := runCommand(t, db, "prefs", "set", "theme", "light")
	require.NoError(t, err)
	assert.Contains(t, out, "theme = light")

	_, err = runCommand(t, db, "prefs", "set", "shortcutKey", "Ctrl+Space")
	require.NoError(t, err)

	out, err = runCommand(t, db, "prefs", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "light")
	assert.Contains(t, out, "Ctrl+Space")
	assert.Contains(t, out, "alwaysOnTop")
}

func TestPrefsSetValidation(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr error
	}{
		{"bad theme", "theme", "purple", common.ErrInvalidPreference},
		{"bad bool", "alwaysOnTop", "yes", common.ErrInvalidPreference},
		{"unsupported shortcut", "shortcutKey", "Ctrl+F13", common.ErrInvalidPreference},
		{"unknown key", "fontSize", "12", common.ErrUnknownPreference},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := filepath.Join(t.TempDir(), "prefs.db")

			_, err := runCommand(t, db, "prefs", "set", tt.key, tt.value)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)

			// Nothing was written.
			store, err := prefs.Open(db)
			require.NoError(t, err)
			defer store.Close()
			_, ok, err := store.Get(context.Background(), tt.key)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestPrefsSetUnknownKeyListsKnownKeys(t *testing.T) {
	db := filepath.Join(t.TempDir(), "prefs.db")

	_, err := runCommand(t, db, "prefs", "set", "fontSize", "12")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shortcutEnabled")
}

func TestPrefsSetNeedsTwoArgs(t *testing.T) {
	db := filepath.Join(t.TempDir(), "prefs.db")

	_, err := runCommand(t, db, "prefs", "set", "theme")
	assert.Error(t, err)
}

func TestPrefsReset(t *testing.T) {
	db := filepath.Join(t.TempDir(), "prefs.db")

	_, err := runCommand(t, db, "prefs", "set", "alwaysOnTop", "true")
	require.NoError(t, err)

	out, err := runCommand(t, db, "prefs", "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "Preferences reset")

	store, err := prefs.Open(db)
	require.NoError(t, err)
	defer store.Close()
	p, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, prefs.Defaults(), p)
}

func TestVersionCommand(t *testing.T) {
	db := filepath.Join(t.TempDir(), "prefs.db")

	out, err := runCommand(t, db, "version")
	require.NoError(t, err)
	assert.Equal(t, "ChatDock v1.2.3\n", out)
}

func TestNextValue(t *testing.T) {
	tests := []struct {
		key   string
		value string
		want  string
	}{
		{prefs.KeyTheme, "dark", "light"},
		{prefs.KeyTheme, "light", "dark"},
		{prefs.KeyAlwaysOnTop, "false", "true"},
		{prefs.KeyShortcutEnabled, "true", "false"},
		{prefs.KeyShortcutKey, "Alt+Space", "Ctrl+Space"},
		{prefs.KeyShortcutKey, "Ctrl+Alt+G", "Alt+Space"},
		{prefs.KeyShortcutKey, "bogus", "Alt+Space"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"/"+tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, nextValue(tt.key, tt.value))
		})
	}
}

type fakeValueStore struct {
	values map[string]string
	err    error
}

func (f *fakeValueStore) SetValue(_ context.Context, key, value string) error {
	if f.err != nil {
		return f.err
	}
	f.values[key] = value
	return nil
}

func sizedEditor(store valueStore) editorModel {
	m := newEditorModel(context.Background(), store, prefs.Defaults())
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	return updated.(editorModel)
}

func TestEditorChangeSavesSelected(t *testing.T) {
	store := &fakeValueStore{values: map[string]string{}}
	m := sizedEditor(store)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(editorModel)

	// The first row is the theme, which defaults to dark.
	assert.Equal(t, "light", store.values[prefs.KeyTheme])
	assert.Equal(t, "light", m.list.Items()[0].(prefItem).value)
	assert.Contains(t, m.View(), "Saved theme = light")
}

func TestEditorChangeFailureKeepsValue(t *testing.T) {
	store := &fakeValueStore{values: map[string]string{}, err: errors.New("disk full")}
	m := sizedEditor(store)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(editorModel)

	assert.Equal(t, "dark", m.list.Items()[0].(prefItem).value)
	assert.Contains(t, m.View(), "disk full")
}
