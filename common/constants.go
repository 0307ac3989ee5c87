// Package common provides shared constants, types, and utilities
// used across ChatDock.
package common

import "time"

// Application metadata.
const (
	// AppID is the GApplication identifier.
	AppID = "io.github.yllada.ChatDock"
	// AppName is the display name of the application.
	AppName = "ChatDock"
	// ConfigDirName is the name of the configuration directory.
	ConfigDirName = "chatdock"
)

// File names used by the application.
const (
	ConfigFileName      = "config.yaml"
	PreferencesFileName = "preferences.db"
	LogFileName         = "chatdock.log"
)

// Content defaults.
const (
	// DefaultContentURL is the chat site loaded into the content view.
	DefaultContentURL = "https://gemini.google.com"
	// DefaultPartition names the storage partition shared by the content
	// view and the auth window.
	DefaultPartition = "persist:chat"
	// DefaultUserAgent presents the web views as a stock desktop Chrome.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/132.0.0.0 Safari/537.36"
)

// UI constants.
const (
	DefaultWindowWidth  = 1000
	DefaultWindowHeight = 800
	MinWindowWidth      = 420
	MinWindowHeight     = 360
	AuthWindowWidth     = 520
	AuthWindowHeight    = 720
	TrayIconSize        = 22
	// NoticeTimeout is how long an in-window toast stays visible.
	NoticeTimeout = 5 * time.Second
)

// Theme values.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Auth hand-off policies.
const (
	// AuthPolicyWindow opens the identity provider in a secondary window.
	AuthPolicyWindow = "window"
	// AuthPolicyInPlace navigates the content view itself.
	AuthPolicyInPlace = "inplace"
)

// DefaultShortcut is the global hotkey used until the user picks another.
const DefaultShortcut = "Alt+Space"

// SupportedShortcuts is the set offered by the settings page and the CLI.
var SupportedShortcuts = []string{
	"Alt+Space",
	"Ctrl+Space",
	"Ctrl+Shift+Space",
	"Alt+Shift+G",
	"Ctrl+Alt+G",
}
