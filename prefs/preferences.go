// Package prefs persists the user's choices: theme, global shortcut and
// window pinning. Values are stored as strings under fixed keys in a
// SQLite key/value table.
package prefs

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/yllada/chatdock/common"
)

// Persisted preference keys.
const (
	KeyShortcutEnabled = "shortcutEnabled"
	KeyShortcutKey     = "shortcutKey"
	KeyTheme           = "theme"
	KeyAlwaysOnTop     = "alwaysOnTop"
)

// Keys lists every known key in display order.
var Keys = []string{KeyTheme, KeyShortcutEnabled, KeyShortcutKey, KeyAlwaysOnTop}

// Preferences is the process-wide set of user choices.
type Preferences struct {
	Theme           string
	ShortcutEnabled bool
	ShortcutKey     string
	AlwaysOnTop     bool
}

// Defaults returns the preferences used before the user changes anything.
func Defaults() Preferences {
	return Preferences{
		Theme:           common.ThemeDark,
		ShortcutEnabled: true,
		ShortcutKey:     common.DefaultShortcut,
		AlwaysOnTop:     false,
	}
}

// Encode returns the string value stored for key.
func (p Preferences) Encode(key string) (string, error) {
	switch key {
	case KeyTheme:
		return p.Theme, nil
	case KeyShortcutKey:
		return p.ShortcutKey, nil
	case KeyShortcutEnabled:
		return encodeBool(p.ShortcutEnabled), nil
	case KeyAlwaysOnTop:
		return encodeBool(p.AlwaysOnTop), nil
	default:
		return "", fmt.Errorf("%w: %q", common.ErrUnknownPreference, key)
	}
}

// Set validates value and stores it into the field behind key.
func (p *Preferences) Set(key, value string) error {
	switch key {
	case KeyTheme:
		theme, err := ParseTheme(value)
		if err != nil {
			return err
		}
		p.Theme = theme
	case KeyShortcutKey:
		if !IsSupportedShortcut(value) {
			return fmt.Errorf("%w: shortcut %q is not one of %s",
				common.ErrInvalidPreference, value, strings.Join(common.SupportedShortcuts, ", "))
		}
		p.ShortcutKey = value
	case KeyShortcutEnabled:
		b, err := decodeBool(value)
		if err != nil {
			return err
		}
		p.ShortcutEnabled = b
	case KeyAlwaysOnTop:
		b, err := decodeBool(value)
		if err != nil {
			return err
		}
		p.AlwaysOnTop = b
	default:
		return fmt.Errorf("%w: %q", common.ErrUnknownPreference, key)
	}
	return nil
}

// ParseTheme accepts "light" or "dark".
func ParseTheme(value string) (string, error) {
	if value != common.ThemeLight && value != common.ThemeDark {
		return "", fmt.Errorf("%w: theme must be %q or %q, got %q",
			common.ErrInvalidPreference, common.ThemeLight, common.ThemeDark, value)
	}
	return value, nil
}

// IsSupportedShortcut reports whether key is in the offered set.
func IsSupportedShortcut(key string) bool {
	return lo.Contains(common.SupportedShortcuts, key)
}

// Booleans are stored as JSON literals.
func encodeBool(b bool) string {
	data, _ := json.Marshal(b)
	return string(data)
}

func decodeBool(value string) (bool, error) {
	var b bool
	if err := json.Unmarshal([]byte(value), &b); err != nil {
		return false, fmt.Errorf("%w: expected true or false, got %q", common.ErrInvalidPreference, value)
	}
	return b, nil
}
