package ui

import (
	"os/exec"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/yllada/chatdock/bridge"
	"github.com/yllada/chatdock/common"
	"github.com/yllada/chatdock/window"
)

const (
	pageContent  = "content"
	pageSettings = "settings"
)

// MainWindow represents the main application window: a custom titlebar
// over a stack holding the content view and the settings page.
type MainWindow struct {
	app       *Application
	window    *gtk.ApplicationWindow
	headerBar *gtk.HeaderBar
	pinButton *gtk.ToggleButton
	stack     *gtk.Stack
	toasts    *adw.ToastOverlay
	content   *ContentView
	settings  *SettingsPage

	minimized bool
	onTop     bool
	destroyed bool

	// sync is held while the pin button is set from code.
	sync common.SyncGuard
}

// NewMainWindow creates a new main window. It starts hidden.
func NewMainWindow(app *Application) *MainWindow {
	mw := &MainWindow{
		app: app,
	}

	mw.window = gtk.NewApplicationWindow(&app.app.Application)
	mw.window.SetTitle(common.AppName)
	mw.window.SetDefaultSize(app.config.Window.Width, app.config.Window.Height)
	mw.window.SetSizeRequest(common.MinWindowWidth, common.MinWindowHeight)
	mw.window.SetIconName(common.ConfigDirName)

	// The close button hides to the tray unless the app is quitting.
	mw.window.ConnectCloseRequest(func() bool {
		return !app.windows.RequestClose()
	})
	mw.window.ConnectDestroy(func() {
		mw.destroyed = true
		if app.main == mw {
			app.main = nil
		}
		app.windows.Destroyed()
	})
	mw.window.NotifyProperty("is-active", func() {
		if mw.window.IsActive() {
			mw.minimized = false
		}
	})
	// Window managers drop the above state when a window is unmapped.
	mw.window.ConnectMap(func() {
		if mw.onTop {
			mw.applyKeepAbove()
		}
	})

	mw.createLayout()

	return mw
}

// createLayout creates the window layout.
func (mw *MainWindow) createLayout() {
	mw.headerBar = gtk.NewHeaderBar()
	mw.headerBar.SetShowTitleButtons(false)

	settingsButton := gtk.NewButton()
	settingsButton.SetIconName("emblem-system-symbolic")
	settingsButton.SetTooltipText("Settings")
	settingsButton.ConnectClicked(mw.ToggleSettings)
	mw.headerBar.PackStart(settingsButton)

	mw.pinButton = gtk.NewToggleButton()
	mw.pinButton.SetIconName("view-pin-symbolic")
	mw.pinButton.SetTooltipText("Always on top")
	mw.pinButton.ConnectToggled(func() {
		if mw.sync.Active() {
			return
		}
		mw.app.setAlwaysOnTop(mw.pinButton.Active())
	})
	mw.headerBar.PackStart(mw.pinButton)

	closeButton := gtk.NewButton()
	closeButton.SetIconName("window-close-symbolic")
	closeButton.SetTooltipText("Hide to tray")
	closeButton.AddCSSClass("titlebutton")
	closeButton.ConnectClicked(func() {
		mw.app.send(bridge.Close())
	})
	mw.headerBar.PackEnd(closeButton)

	minimizeButton := gtk.NewButton()
	minimizeButton.SetIconName("window-minimize-symbolic")
	minimizeButton.SetTooltipText("Minimize")
	minimizeButton.AddCSSClass("titlebutton")
	minimizeButton.ConnectClicked(func() {
		mw.app.send(bridge.Minimize())
	})
	mw.headerBar.PackEnd(minimizeButton)

	mw.window.SetTitlebar(mw.headerBar)

	mw.content = NewContentView(mw.app.config, mw.app.auth)
	mw.settings = NewSettingsPage(mw)

	mw.stack = gtk.NewStack()
	mw.stack.SetTransitionType(gtk.StackTransitionTypeCrossfade)
	mw.stack.AddNamed(mw.content.view, pageContent)
	mw.stack.AddNamed(mw.settings.Widget(), pageSettings)
	mw.stack.SetVisibleChildName(pageContent)

	mw.toasts = adw.NewToastOverlay()
	mw.toasts.SetChild(mw.stack)
	mw.window.SetChild(mw.toasts)
}

// ShowSettings switches to the settings page.
func (mw *MainWindow) ShowSettings() {
	mw.stack.SetVisibleChildName(pageSettings)
}

// ShowContent switches back to the chat.
func (mw *MainWindow) ShowContent() {
	mw.stack.SetVisibleChildName(pageContent)
}

// ToggleSettings flips between the two pages.
func (mw *MainWindow) ToggleSettings() {
	if mw.stack.VisibleChildName() == pageSettings {
		mw.ShowContent()
		return
	}
	mw.ShowSettings()
}

// syncPin updates the pin button and the settings switch without running
// their save handlers.
func (mw *MainWindow) syncPin(flag bool) {
	mw.sync.Run(func() {
		mw.pinButton.SetActive(flag)
	})
	mw.settings.syncAlwaysOnTop(flag)
}

// window.Window implementation.

func (mw *MainWindow) Show() {
	mw.window.SetVisible(true)
}

func (mw *MainWindow) Hide() {
	mw.window.SetVisible(false)
}

func (mw *MainWindow) Focus() {
	mw.window.Present()
}

func (mw *MainWindow) Minimize() {
	mw.window.Minimize()
	mw.minimized = true
}

func (mw *MainWindow) Restore() {
	mw.window.Unminimize()
	mw.minimized = false
}

func (mw *MainWindow) Destroy() {
	if !mw.destroyed {
		mw.window.Destroy()
	}
}

func (mw *MainWindow) IsVisible() bool {
	return !mw.destroyed && mw.window.IsVisible()
}

func (mw *MainWindow) IsFocused() bool {
	return !mw.destroyed && mw.window.IsActive()
}

func (mw *MainWindow) IsMinimized() bool {
	return mw.minimized
}

// SetAlwaysOnTop asks the window manager to keep the window above others.
func (mw *MainWindow) SetAlwaysOnTop(flag bool) {
	mw.onTop = flag
	mw.syncPin(flag)
	if mw.window.Mapped() {
		mw.applyKeepAbove()
	}
}

// applyKeepAbove sets _NET_WM_STATE_ABOVE through wmctrl. GTK 4 has no
// keep-above call of its own.
func (mw *MainWindow) applyKeepAbove() {
	action := "remove,above"
	if mw.onTop {
		action = "add,above"
	}
	cmd := exec.Command("wmctrl", "-F", "-r", common.AppName, "-b", action)
	if err := cmd.Run(); err != nil {
		common.LogWarn("Always on top unavailable: %v", err)
	}
}

func (mw *MainWindow) Content() window.ContentView {
	return mw.content
}

func (mw *MainWindow) onAbout() {
	about := gtk.NewAboutDialog()
	about.SetTransientFor(&mw.window.Window)
	about.SetModal(true)

	about.SetProgramName(common.AppName)
	about.SetLogoIconName(common.ConfigDirName)
	about.SetVersion(mw.app.version)
	about.SetComments("Your chat assistant, one shortcut away.\nLives in the system tray.")
	about.SetWebsite("https://github.com/yllada/chatdock")
	about.SetWebsiteLabel("GitHub Repository")
	about.SetLicenseType(gtk.LicenseMITX11)
	about.SetAuthors([]string{"Yadian Llada Lopez <yadian@y3lcorp.com>"})

	about.Show()
}
