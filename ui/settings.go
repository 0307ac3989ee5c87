package ui

import (
	"strconv"

	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/samber/lo"

	"github.com/yllada/chatdock/bridge"
	"github.com/yllada/chatdock/common"
	"github.com/yllada/chatdock/prefs"
)

// SettingsPage is the in-window settings panel. Every change is written to
// the preference store first and then applied through the bridge.
type SettingsPage struct {
	mainWindow     *MainWindow
	root           *gtk.Box
	themeDropDown  *gtk.DropDown
	shortcutSwitch *gtk.Switch
	shortcutDrop   *gtk.DropDown
	topSwitch      *gtk.Switch
	themeIDs       []string

	// sync suppresses change handlers while widgets are set from code.
	sync common.SyncGuard
}

// NewSettingsPage builds the settings panel.
func NewSettingsPage(mainWindow *MainWindow) *SettingsPage {
	sp := &SettingsPage{
		mainWindow: mainWindow,
		themeIDs:   []string{common.ThemeLight, common.ThemeDark},
	}
	sp.build()
	return sp
}

// Widget returns the page's root widget.
func (sp *SettingsPage) Widget() gtk.Widgetter {
	return sp.root
}

func (sp *SettingsPage) build() {
	app := sp.mainWindow.app
	sp.root = gtk.NewBox(gtk.OrientationVertical, 0)

	scrolled := gtk.NewScrolledWindow()
	scrolled.SetVExpand(true)
	scrolled.SetPolicy(gtk.PolicyNever, gtk.PolicyAutomatic)

	mainBox := gtk.NewBox(gtk.OrientationVertical, 20)
	mainBox.SetMarginTop(24)
	mainBox.SetMarginBottom(16)
	mainBox.SetMarginStart(24)
	mainBox.SetMarginEnd(24)

	// Appearance
	appearSection := sp.createSection("Appearance", "preferences-desktop-theme-symbolic")
	appearCard := sp.createCard()

	sp.themeDropDown = gtk.NewDropDown(gtk.NewStringList([]string{"Light", "Dark"}), nil)
	sp.themeDropDown.SetVAlign(gtk.AlignCenter)
	sp.themeDropDown.AddCSSClass("flat")
	sp.themeDropDown.NotifyProperty("selected", func() {
		if sp.sync.Active() {
			return
		}
		if idx := int(sp.themeDropDown.Selected()); idx < len(sp.themeIDs) {
			app.setTheme(sp.themeIDs[idx])
		}
	})
	appearCard.Append(sp.createSettingRow(
		"Theme",
		"Choose the visual appearance of the window",
		sp.themeDropDown,
	))

	appearSection.Append(appearCard)
	mainBox.Append(appearSection)

	// Global shortcut
	shortcutSection := sp.createSection("Global Shortcut", "input-keyboard-symbolic")
	shortcutCard := sp.createCard()

	sp.shortcutSwitch = gtk.NewSwitch()
	sp.shortcutSwitch.SetVAlign(gtk.AlignCenter)
	sp.shortcutSwitch.NotifyProperty("active", func() {
		if !sp.sync.Active() {
			sp.applyShortcut()
		}
	})
	shortcutCard.Append(sp.createSettingRow(
		"Show/Hide Shortcut",
		"Toggle the window from anywhere on the desktop",
		sp.shortcutSwitch,
	))

	shortcutCard.Append(sp.createSeparator())

	sp.shortcutDrop = gtk.NewDropDown(gtk.NewStringList(common.SupportedShortcuts), nil)
	sp.shortcutDrop.SetVAlign(gtk.AlignCenter)
	sp.shortcutDrop.AddCSSClass("flat")
	sp.shortcutDrop.NotifyProperty("selected", func() {
		if !sp.sync.Active() {
			sp.applyShortcut()
		}
	})
	shortcutCard.Append(sp.createSettingRow(
		"Key Combination",
		"Pick a combination no other application uses",
		sp.shortcutDrop,
	))

	shortcutSection.Append(shortcutCard)
	mainBox.Append(shortcutSection)

	// Window
	windowSection := sp.createSection("Window", "window-new-symbolic")
	windowCard := sp.createCard()

	sp.topSwitch = gtk.NewSwitch()
	sp.topSwitch.SetVAlign(gtk.AlignCenter)
	sp.topSwitch.NotifyProperty("active", func() {
		if !sp.sync.Active() {
			app.setAlwaysOnTop(sp.topSwitch.Active())
		}
	})
	windowCard.Append(sp.createSettingRow(
		"Always on Top",
		"Keep the window above other windows",
		sp.topSwitch,
	))

	windowSection.Append(windowCard)
	mainBox.Append(windowSection)

	// Session
	sessionSection := sp.createSection("Session", "user-trash-symbolic")
	sessionCard := sp.createCard()

	clearBtn := gtk.NewButtonWithLabel("Clear")
	clearBtn.AddCSSClass("destructive-action")
	clearBtn.SetVAlign(gtk.AlignCenter)
	clearBtn.ConnectClicked(sp.confirmClearSession)
	sessionCard.Append(sp.createSettingRow(
		"Clear Session Data",
		"Sign out and remove cookies, cache and local storage",
		clearBtn,
	))

	sessionSection.Append(sessionCard)
	mainBox.Append(sessionSection)

	scrolled.SetChild(mainBox)
	sp.root.Append(scrolled)

	// Action buttons
	buttonBar := gtk.NewBox(gtk.OrientationHorizontal, 12)
	buttonBar.SetHAlign(gtk.AlignEnd)
	buttonBar.SetMarginTop(16)
	buttonBar.SetMarginBottom(20)
	buttonBar.SetMarginStart(24)
	buttonBar.SetMarginEnd(24)
	buttonBar.AddCSSClass("dialog-action-area")

	aboutBtn := gtk.NewButtonWithLabel("About")
	aboutBtn.AddCSSClass("dialog-button")
	aboutBtn.ConnectClicked(sp.mainWindow.onAbout)
	buttonBar.Append(aboutBtn)

	doneBtn := gtk.NewButtonWithLabel("Done")
	doneBtn.AddCSSClass("suggested-action")
	doneBtn.AddCSSClass("dialog-button")
	doneBtn.ConnectClicked(sp.mainWindow.ShowContent)
	buttonBar.Append(doneBtn)

	sp.root.Append(buttonBar)
}

// createSection creates a section with icon and title.
func (sp *SettingsPage) createSection(title string, iconName string) *gtk.Box {
	section := gtk.NewBox(gtk.OrientationVertical, 8)

	headerBox := gtk.NewBox(gtk.OrientationHorizontal, 8)

	icon := gtk.NewImage()
	icon.SetFromIconName(iconName)
	icon.SetPixelSize(18)
	icon.AddCSSClass("dim-label")
	headerBox.Append(icon)

	label := gtk.NewLabel(title)
	label.SetXAlign(0)
	label.AddCSSClass("heading")
	label.AddCSSClass("dim-label")
	headerBox.Append(label)

	section.Append(headerBox)

	return section
}

// createCard creates a styled card container for settings.
func (sp *SettingsPage) createCard() *gtk.Box {
	card := gtk.NewBox(gtk.OrientationVertical, 0)
	card.AddCSSClass("card")
	card.AddCSSClass("settings-card")
	return card
}

// createSettingRow creates a row with title, description, and widget.
func (sp *SettingsPage) createSettingRow(title string, description string, widget gtk.Widgetter) *gtk.Box {
	row := gtk.NewBox(gtk.OrientationHorizontal, 12)
	row.SetMarginTop(14)
	row.SetMarginBottom(14)
	row.SetMarginStart(16)
	row.SetMarginEnd(16)

	textBox := gtk.NewBox(gtk.OrientationVertical, 4)
	textBox.SetHExpand(true)

	titleLabel := gtk.NewLabel(title)
	titleLabel.SetXAlign(0)
	titleLabel.AddCSSClass("settings-title")
	textBox.Append(titleLabel)

	descLabel := gtk.NewLabel(description)
	descLabel.SetXAlign(0)
	descLabel.AddCSSClass("dim-label")
	descLabel.AddCSSClass("caption")
	descLabel.SetWrap(true)
	descLabel.SetWrapMode(2) // PANGO_WRAP_WORD_CHAR
	textBox.Append(descLabel)

	row.Append(textBox)
	row.Append(widget)

	return row
}

// createSeparator creates a styled separator for cards.
func (sp *SettingsPage) createSeparator() *gtk.Separator {
	sep := gtk.NewSeparator(gtk.OrientationHorizontal)
	sep.SetMarginStart(16)
	sep.SetMarginEnd(16)
	return sep
}

// Sync sets every widget from p without firing change handlers.
func (sp *SettingsPage) Sync(p prefs.Preferences) {
	sp.sync.Run(func() {
		sp.themeDropDown.SetSelected(indexOf(sp.themeIDs, p.Theme))
		sp.shortcutSwitch.SetActive(p.ShortcutEnabled)
		sp.shortcutDrop.SetSelected(indexOf(common.SupportedShortcuts, p.ShortcutKey))
		sp.shortcutDrop.SetSensitive(p.ShortcutEnabled)
		sp.topSwitch.SetActive(p.AlwaysOnTop)
	})
}

func (sp *SettingsPage) syncAlwaysOnTop(flag bool) {
	sp.sync.Run(func() {
		sp.topSwitch.SetActive(flag)
	})
}

func (sp *SettingsPage) applyShortcut() {
	enabled := sp.shortcutSwitch.Active()
	sp.shortcutDrop.SetSensitive(enabled)

	key := common.DefaultShortcut
	if idx := int(sp.shortcutDrop.Selected()); idx < len(common.SupportedShortcuts) {
		key = common.SupportedShortcuts[idx]
	}
	sp.mainWindow.app.setShortcut(enabled, key)
}

// confirmClearSession asks before wiping the session.
func (sp *SettingsPage) confirmClearSession() {
	window := gtk.NewWindow()
	window.SetTitle("Clear Session Data")
	window.SetTransientFor(&sp.mainWindow.window.Window)
	window.SetModal(true)
	window.SetDefaultSize(360, 160)
	window.SetResizable(false)

	mainBox := gtk.NewBox(gtk.OrientationVertical, 12)
	mainBox.SetMarginTop(24)
	mainBox.SetMarginBottom(24)
	mainBox.SetMarginStart(24)
	mainBox.SetMarginEnd(24)

	icon := gtk.NewImage()
	icon.SetFromIconName("dialog-warning-symbolic")
	icon.SetPixelSize(48)
	mainBox.Append(icon)

	msgLabel := gtk.NewLabel("You will be signed out and all cached data will be removed.")
	msgLabel.SetWrap(true)
	msgLabel.SetMaxWidthChars(40)
	mainBox.Append(msgLabel)

	buttonBox := gtk.NewBox(gtk.OrientationHorizontal, 12)
	buttonBox.SetHAlign(gtk.AlignEnd)
	buttonBox.SetMarginTop(12)

	cancelBtn := gtk.NewButtonWithLabel("Cancel")
	cancelBtn.ConnectClicked(func() {
		window.Close()
	})
	buttonBox.Append(cancelBtn)

	clearBtn := gtk.NewButtonWithLabel("Clear")
	clearBtn.AddCSSClass("destructive-action")
	clearBtn.ConnectClicked(func() {
		window.Close()
		sp.mainWindow.ShowContent()
		sp.mainWindow.app.send(bridge.Clear())
	})
	buttonBox.Append(clearBtn)

	mainBox.Append(buttonBox)
	window.SetChild(mainBox)
	window.Show()
}

func indexOf(items []string, item string) uint {
	if idx := lo.IndexOf(items, item); idx >= 0 {
		return uint(idx)
	}
	return 0
}

// Preference writers. Each persists first; a failed write is reported and
// the change is not applied.

func (a *Application) savePreference(key, value string) bool {
	if err := a.store.SetValue(a.ctx, key, value); err != nil {
		common.LogError("Saving preference %s: %v", key, err)
		a.notifier.Notify("Could not save settings", err.Error())
		return false
	}
	return true
}

func (a *Application) setTheme(theme string) {
	if a.savePreference(prefs.KeyTheme, theme) {
		a.ApplyTheme(theme)
	}
}

func (a *Application) setShortcut(enabled bool, key string) {
	if !a.savePreference(prefs.KeyShortcutEnabled, strconv.FormatBool(enabled)) {
		return
	}
	if !a.savePreference(prefs.KeyShortcutKey, key) {
		return
	}
	a.send(bridge.Shortcut(enabled, key))

	if _, ok := a.hotkeys.Current(); enabled && !ok {
		a.notifier.Notify("Shortcut unavailable", key+" is used by another application")
	}
}

func (a *Application) setAlwaysOnTop(flag bool) {
	if a.savePreference(prefs.KeyAlwaysOnTop, strconv.FormatBool(flag)) {
		a.send(bridge.AlwaysOnTop(flag))
	}
}
