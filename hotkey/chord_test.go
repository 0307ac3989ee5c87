package hotkey

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yllada/chatdock/common"
)

func TestParseChord(t *testing.T) {
	tests := []struct {
		in   string
		want string
		mods []Modifier
		key  string
	}{
		{"Alt+Space", "Alt+Space", []Modifier{ModAlt}, "Space"},
		{"ctrl+space", "Ctrl+Space", []Modifier{ModCtrl}, "Space"},
		{"Shift+Ctrl+Space", "Ctrl+Shift+Space", []Modifier{ModCtrl, ModShift}, "Space"},
		{"Alt+Shift+g", "Alt+Shift+G", []Modifier{ModAlt, ModShift}, "G"},
		{"Control+Option+7", "Ctrl+Alt+7", []Modifier{ModCtrl, ModAlt}, "7"},
		{" Cmd+K ", "Super+K", []Modifier{ModSuper}, "K"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			chord, err := ParseChord(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, chord.String())
			assert.Equal(t, tt.mods, chord.Modifiers())
			assert.Equal(t, tt.key, chord.Key())
		})
	}
}

func TestParseChord_Invalid(t *testing.T) {
	for _, in := range []string{
		"",
		"Space",
		"Alt+",
		"Alt+Alt+Space",
		"Hyper+Space",
		"Ctrl+F1",
		"Ctrl+Enter",
		"Ctrl+!",
	} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseChord(in)
			assert.True(t, errors.Is(err, common.ErrInvalidShortcut), "got %v", err)
		})
	}
}

func TestSupportedShortcutsParse(t *testing.T) {
	for _, key := range common.SupportedShortcuts {
		chord, err := ParseChord(key)
		require.NoError(t, err)
		assert.Equal(t, key, chord.String())
	}
}
