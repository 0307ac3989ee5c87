// Package main provides the entry point for ChatDock.
// ChatDock keeps a chat website in a small GTK4 window that hides to the
// system tray and comes back with a global keyboard shortcut.
//
// Features:
//   - Embedded chat site with a persistent, shared session
//   - Global show/hide shortcut
//   - Tray icon with show/hide and quit
//   - Sign-in hand-off to a secondary window
//   - Command-line preference editing
//
// Usage:
//
//	chatdock [--verbose]
//	chatdock prefs show|set|reset|edit
//	chatdock version
//
// Environment:
//
//	The application requires WebKitGTK 6 and libadwaita. Always on top
//	needs wmctrl on X11.
package main

import (
	"context"
	"os"

	"github.com/yllada/chatdock/cli"
	"github.com/yllada/chatdock/ui"
)

// Build-time variables injected via ldflags (-X main.appVersion=x.y.z)
// Default values are used for local development builds
var (
	appVersion = "dev"
	buildTime  = "unknown"
	commitSHA  = "unknown"
)

func main() {
	info := cli.BuildInfo{
		Version:   appVersion,
		BuildTime: buildTime,
		CommitSHA: commitSHA,
	}
	os.Exit(cli.Execute(info, runGUI))
}

// runGUI starts the GTK application for the root command.
func runGUI(ctx context.Context, opts cli.GUIOptions) error {
	return ui.Launch(ctx, opts.Verbose, opts.PrefsPath, opts.Version)
}
