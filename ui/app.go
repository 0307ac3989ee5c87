package ui

import (
	"context"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/gio/v2"
	"github.com/diamondburned/gotk4/pkg/glib/v2"

	"github.com/yllada/chatdock/auth"
	"github.com/yllada/chatdock/bridge"
	"github.com/yllada/chatdock/common"
	"github.com/yllada/chatdock/config"
	"github.com/yllada/chatdock/hotkey"
	"github.com/yllada/chatdock/hotkey/osbind"
	"github.com/yllada/chatdock/prefs"
	"github.com/yllada/chatdock/tray"
	"github.com/yllada/chatdock/window"
)

// Application represents the main application
type Application struct {
	app     *adw.Application
	config  *config.Config
	store   *prefs.Store
	version string

	ctx    context.Context
	cancel context.CancelFunc

	windows  *window.Manager
	hotkeys  *hotkey.Manager
	binder   *osbind.Binder
	bridge   *bridge.Bridge
	auth     *auth.Coordinator
	tray     *tray.Controller
	notifier *Notifier

	// main is the live main window, nil once destroyed.
	main *MainWindow
}

// NewApplication creates a new application
func NewApplication(cfg *config.Config, store *prefs.Store, version string) *Application {
	app := adw.NewApplication(common.AppID, gio.ApplicationFlagsNone)

	application := &Application{
		app:     app,
		config:  cfg,
		store:   store,
		version: version,
	}

	app.ConnectActivate(application.onActivate)
	app.ConnectShutdown(application.onShutdown)

	return application
}

// Run runs the application
func (a *Application) Run(args []string) int {
	return a.app.Run(args)
}

// dispatcher posts work onto the GTK main loop.
var dispatcher = common.DispatchFunc(func(fn func()) {
	glib.IdleAdd(fn)
})

// onActivate is called when the application is activated. A second launch
// only re-activates the running instance.
func (a *Application) onActivate() {
	if a.windows != nil {
		if err := a.windows.Activate(); err != nil {
			common.LogError("Re-activating main window: %v", err)
		}
		return
	}

	LoadStyles()

	a.ctx, a.cancel = context.WithCancel(context.Background())
	a.notifier = &Notifier{app: a}

	a.windows = window.NewManager(window.Options{
		Factory:  a.newMainWindow,
		HomeURL:  a.config.Content.URL,
		Notifier: a.notifier,
		OnQuit:   a.app.Quit,
	})
	a.binder = osbind.New()
	a.hotkeys = hotkey.NewManager(a.binder, dispatcher, func() {
		a.windows.Toggle(window.SourceShortcut)
	})
	a.bridge = bridge.New(a.ctx, a.windows, a.hotkeys)
	a.auth = auth.NewCoordinator(auth.Options{
		Policy:         auth.ParsePolicy(a.config.Auth.Policy),
		Matcher:        auth.NewMatcher(a.config.Auth.ProviderPatterns, a.config.Content.AppDomains),
		Opener:         a,
		Content:        a,
		Emitter:        a.bridge,
		Partition:      a.config.Content.Partition,
		MaskAutomation: a.config.Auth.MaskAutomation,
	})

	a.bridge.Subscribe(bridge.AuthComplete, func() {
		if a.main != nil {
			a.main.content.Reload()
		}
	})
	a.bridge.Subscribe(bridge.OpenSettings, func() {
		a.windows.Show()
		if a.main != nil {
			a.main.ShowSettings()
		}
	})

	a.setupActions()

	if err := a.windows.Create(); err != nil {
		common.LogError("Creating main window: %v", err)
		ShowNotification(Notification{
			Title:   common.AppName + " could not start",
			Message: err.Error(),
			Type:    NotificationError,
		})
		a.app.Quit()
		return
	}
	a.applyPreferences()
	a.windows.Show()

	a.tray = tray.New(a.windows, dispatcher, a.config.Window.TrayTooltip)
	a.tray.Start()

	// Keep running while the window is hidden to the tray.
	a.app.Hold()

	common.LogInfo("%s %s started (auth policy %s)", common.AppName, a.version, a.auth.Policy())
}

// onShutdown releases process-wide resources.
func (a *Application) onShutdown() {
	if a.hotkeys != nil {
		a.hotkeys.Unregister()
		a.binder.Close()
	}
	if a.tray != nil {
		a.tray.Stop()
	}
	if a.cancel != nil {
		a.cancel()
	}
	common.LogInfo("Shutdown complete")
}

// setupActions registers the application actions and accelerators.
func (a *Application) setupActions() {
	// Settings (Ctrl+,)
	settingsAction := gio.NewSimpleAction("settings", nil)
	settingsAction.ConnectActivate(func(_ *glib.Variant) {
		a.bridge.Emit(bridge.OpenSettings)
	})
	a.app.AddAction(settingsAction)
	a.app.SetAccelsForAction("app.settings", []string{"<Control>comma"})

	// Close window (Ctrl+W) hides to the tray.
	hideAction := gio.NewSimpleAction("hide", nil)
	hideAction.ConnectActivate(func(_ *glib.Variant) {
		a.send(bridge.Close())
	})
	a.app.AddAction(hideAction)
	a.app.SetAccelsForAction("app.hide", []string{"<Control>w"})

	// Quit (Ctrl+Q)
	quitAction := gio.NewSimpleAction("quit", nil)
	quitAction.ConnectActivate(func(_ *glib.Variant) {
		a.windows.Quit()
	})
	a.app.AddAction(quitAction)
	a.app.SetAccelsForAction("app.quit", []string{"<Control>q"})

	aboutAction := gio.NewSimpleAction("about", nil)
	aboutAction.ConnectActivate(func(_ *glib.Variant) {
		if a.main != nil {
			a.main.onAbout()
		}
	})
	a.app.AddAction(aboutAction)
}

// applyPreferences pushes the stored preferences into the host once the
// main window exists.
func (a *Application) applyPreferences() {
	p, err := a.store.Load(a.ctx)
	if err != nil {
		common.LogWarn("Loading preferences, using defaults: %v", err)
		p = prefs.Defaults()
	}

	a.ApplyTheme(p.Theme)
	a.send(bridge.AlwaysOnTop(p.AlwaysOnTop))
	a.send(bridge.Shortcut(p.ShortcutEnabled, p.ShortcutKey))
	if a.main != nil {
		a.main.settings.Sync(p)
	}
}

// send forwards a bridge message; failures are already logged by the
// bridge.
func (a *Application) send(msg bridge.Message) {
	_ = a.bridge.Send(msg)
}

// ApplyTheme applies the specified theme to the application.
// Supported values: "light", "dark"
func (a *Application) ApplyTheme(theme string) {
	manager := adw.StyleManagerGetDefault()
	switch theme {
	case common.ThemeLight:
		manager.SetColorScheme(adw.ColorSchemeForceLight)
	default:
		manager.SetColorScheme(adw.ColorSchemeForceDark)
	}
}

// Load implements auth.ContentNavigator for whichever main window is live.
func (a *Application) Load(url string) {
	if a.main != nil {
		a.main.content.Load(url)
	}
}

// newMainWindow is the window.Factory.
func (a *Application) newMainWindow() (window.Window, error) {
	a.main = NewMainWindow(a)
	return a.main, nil
}

// Quit ends the application from any goroutine.
func (a *Application) Quit() {
	dispatcher.Post(func() {
		if a.windows != nil {
			a.windows.Quit()
			return
		}
		a.app.Quit()
	})
}
