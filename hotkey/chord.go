package hotkey

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/yllada/chatdock/common"
)

// Modifier is a platform-neutral modifier key.
type Modifier int

const (
	ModCtrl Modifier = iota
	ModAlt
	ModShift
	ModSuper
)

var modifierNames = map[Modifier]string{
	ModCtrl:  "Ctrl",
	ModAlt:   "Alt",
	ModShift: "Shift",
	ModSuper: "Super",
}

func (m Modifier) String() string {
	if name, ok := modifierNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Modifier(%d)", int(m))
}

// Chord is a parsed global shortcut such as "Ctrl+Shift+Space".
// Construct only via ParseChord.
type Chord struct {
	modifiers  []Modifier
	key        string
	normalized string
}

// Modifiers returns the chord's modifiers in canonical order.
func (c Chord) Modifiers() []Modifier { return c.modifiers }

// Key returns the non-modifier key: "Space", "A".."Z" or "0".."9".
func (c Chord) Key() string { return c.key }

func (c Chord) String() string { return c.normalized }

// ParseChord parses "Mod+...+Key". Modifier names are case-insensitive and
// "Control", "Option", "Meta", "Cmd" and "Win" are accepted as aliases.
// At least one modifier is required.
func ParseChord(s string) (Chord, error) {
	parts := strings.Split(strings.TrimSpace(s), "+")
	if len(parts) < 2 {
		return Chord{}, fmt.Errorf("%w: %q needs a modifier and a key", common.ErrInvalidShortcut, s)
	}

	seen := make(map[Modifier]bool)
	for _, part := range parts[:len(parts)-1] {
		mod, ok := parseModifier(part)
		if !ok {
			return Chord{}, fmt.Errorf("%w: unknown modifier %q in %q", common.ErrInvalidShortcut, part, s)
		}
		if seen[mod] {
			return Chord{}, fmt.Errorf("%w: %s repeated in %q", common.ErrInvalidShortcut, mod, s)
		}
		seen[mod] = true
	}

	key, ok := parseKey(parts[len(parts)-1])
	if !ok {
		return Chord{}, fmt.Errorf("%w: unsupported key %q in %q", common.ErrInvalidShortcut, parts[len(parts)-1], s)
	}

	// Canonical order follows the Modifier constants.
	mods := lo.Filter([]Modifier{ModCtrl, ModAlt, ModShift, ModSuper}, func(m Modifier, _ int) bool {
		return seen[m]
	})
	names := append(lo.Map(mods, func(m Modifier, _ int) string { return m.String() }), key)

	return Chord{
		modifiers:  mods,
		key:        key,
		normalized: strings.Join(names, "+"),
	}, nil
}

func parseModifier(s string) (Modifier, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ctrl", "control":
		return ModCtrl, true
	case "alt", "option":
		return ModAlt, true
	case "shift":
		return ModShift, true
	case "super", "meta", "cmd", "win":
		return ModSuper, true
	}
	return 0, false
}

func parseKey(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "space") {
		return "Space", true
	}
	if len(s) != 1 {
		return "", false
	}
	c := strings.ToUpper(s)[0]
	if (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
		return string(c), true
	}
	return "", false
}
