// Package tray provides the system tray indicator: a persistent icon with a
// Show/Hide item and Quit.
package tray

import (
	"sync"

	"fyne.io/systray"

	"github.com/yllada/chatdock/common"
	"github.com/yllada/chatdock/window"
)

// WindowControl is the subset of the window manager the tray drives.
type WindowControl interface {
	Toggle(source window.Source)
	Quit()
}

// Controller manages the tray icon and menu. systray delivers clicks on
// its own goroutines; every handler is posted to the UI loop.
type Controller struct {
	win      WindowControl
	dispatch common.Dispatcher
	tooltip  string
	log      *common.ComponentLogger

	icon     []byte
	stopOnce sync.Once
	started  bool
}

// New creates a tray controller.
func New(win WindowControl, dispatch common.Dispatcher, tooltip string) *Controller {
	if tooltip == "" {
		tooltip = common.AppName
	}
	return &Controller{
		win:      win,
		dispatch: dispatch,
		tooltip:  tooltip,
		log:      common.Logger("tray"),
		icon:     GenerateIcon(),
	}
}

// Start runs the tray on its own goroutine.
func (c *Controller) Start() {
	c.started = true
	go systray.Run(c.onReady, c.onExit)
}

// Stop removes the tray icon. Safe to call more than once.
func (c *Controller) Stop() {
	if !c.started {
		return
	}
	c.stopOnce.Do(systray.Quit)
}

// ShowHide toggles the main window as a tray action.
func (c *Controller) ShowHide() {
	c.dispatch.Post(func() {
		c.win.Toggle(window.SourceTray)
	})
}

// QuitApp ends the application.
func (c *Controller) QuitApp() {
	c.log.Info("Quit requested from tray")
	c.dispatch.Post(c.win.Quit)
}

func (c *Controller) onReady() {
	if c.icon != nil {
		systray.SetIcon(c.icon)
	}
	systray.SetTitle(common.AppName)
	systray.SetTooltip(c.tooltip)

	// A direct click on the icon toggles like the menu item.
	systray.SetOnTapped(c.ShowHide)

	showItem := systray.AddMenuItem("Show/Hide", "Show or hide the "+common.AppName+" window")
	go func() {
		for range showItem.ClickedCh {
			c.ShowHide()
		}
	}()

	systray.AddSeparator()

	quitItem := systray.AddMenuItem("Quit", "Quit "+common.AppName)
	go func() {
		for range quitItem.ClickedCh {
			c.QuitApp()
		}
	}()

	c.log.Info("Tray indicator ready")
}

func (c *Controller) onExit() {
	c.log.Info("Tray indicator cleanup completed")
}
