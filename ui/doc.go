// Package ui provides the GTK4 shell of ChatDock.
//
// The shell is a single window hosting the chat site in a WebKit view,
// a settings page, and a tray icon that keeps the process alive while
// the window is hidden.
//
// # Architecture
//
//   - Application: GTK application lifecycle and component wiring
//   - MainWindow: custom titlebar plus a stack of content and settings
//   - ContentView: the embedded site, with navigations routed through
//     the auth coordinator
//   - AuthWindow: secondary browser window used while signing in
//   - SettingsPage: preference editing
//   - Notifier: in-window toasts, desktop notifications when hidden
//
// Window behavior itself lives in package window; this package only
// adapts GTK widgets to its interfaces.
//
// # Thread Safety
//
// GTK operations must execute on the main thread. The tray and the
// global shortcut listener run on their own goroutines and post work
// through the package dispatcher, which wraps glib.IdleAdd:
//
//	go func() {
//	    // Background work...
//	    dispatcher.Post(func() {
//	        // Safe to touch widgets here
//	    })
//	}()
//
// # File Organization
//
//   - launch.go: Process entry point used by the command line
//   - app.go: Application lifecycle, actions and preference loading
//   - main_window.go: Main window layout and window.Window implementation
//   - webview.go: WebKit view setup and the content view
//   - auth_window.go: Sign-in window
//   - settings.go: Settings page and preference writers
//   - styles.go: CSS styling
//   - notifications.go: Toasts and desktop notifications
package ui
