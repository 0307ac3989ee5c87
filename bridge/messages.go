// Package bridge is the only path from the UI layer to privileged host
// operations. The UI sends Messages from a fixed vocabulary; the host
// answers with Signals the UI subscribes to.
package bridge

import (
	"fmt"

	"github.com/yllada/chatdock/common"
)

// MessageType names one entry of the UI → host vocabulary.
type MessageType string

const (
	ToggleAlwaysOnTop  MessageType = "toggle-always-on-top"
	MinimizeWindow     MessageType = "minimize-window"
	CloseWindow        MessageType = "close-window"
	ClearSession       MessageType = "clear-session"
	SetShortcutEnabled MessageType = "set-shortcut-enabled"
)

// Message is one UI request. Flag carries the boolean payload of
// toggle-always-on-top and set-shortcut-enabled; Key carries the shortcut.
type Message struct {
	Type MessageType
	Flag bool
	Key  string
}

// Validate checks the type is part of the vocabulary and the payload is
// complete.
func (m Message) Validate() error {
	switch m.Type {
	case ToggleAlwaysOnTop, MinimizeWindow, CloseWindow, ClearSession:
		return nil
	case SetShortcutEnabled:
		if m.Flag && m.Key == "" {
			return fmt.Errorf("%s: enabling requires a key", m.Type)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", common.ErrUnknownMessage, m.Type)
	}
}

// Constructors keep call sites readable.

func AlwaysOnTop(flag bool) Message { return Message{Type: ToggleAlwaysOnTop, Flag: flag} }
func Minimize() Message            { return Message{Type: MinimizeWindow} }
func Close() Message               { return Message{Type: CloseWindow} }
func Clear() Message               { return Message{Type: ClearSession} }

func Shortcut(enabled bool, key string) Message {
	return Message{Type: SetShortcutEnabled, Flag: enabled, Key: key}
}

// Signal names one host → UI notification.
type Signal string

const (
	// OpenSettings asks the UI to show its settings panel.
	OpenSettings Signal = "open-settings"
	// AuthComplete asks the UI to reload the content view after a
	// successful identity-provider flow.
	AuthComplete Signal = "auth-complete"
)
