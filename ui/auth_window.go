package ui

import (
	"github.com/diamondburned/gotk4-webkitgtk/pkg/webkit/v6"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/yllada/chatdock/auth"
	"github.com/yllada/chatdock/common"
)

// AuthWindow is a plain top-level browser window for the identity
// provider. It shares the content view's network session, so cookies set
// while signing in are visible to the chat site afterwards.
type AuthWindow struct {
	window    *gtk.Window
	view      *webkit.WebView
	destroyed bool
}

// OpenAuthWindow implements auth.WindowOpener.
func (a *Application) OpenAuthWindow(url string) (auth.AuthWindow, error) {
	aw := &AuthWindow{}

	aw.window = gtk.NewWindow()
	aw.window.SetTitle("Sign in - " + common.AppName)
	aw.window.SetDefaultSize(common.AuthWindowWidth, common.AuthWindowHeight)
	aw.window.SetApplication(&a.app.Application)

	aw.view = newWebView(a.config)
	observeNavigation(aw.view, func(uri string) {
		a.auth.Observe(auth.FromAuthWindow, uri)
	})
	aw.view.NotifyProperty("title", func() {
		if title := aw.view.Title(); title != "" {
			aw.window.SetTitle(title)
		}
	})

	aw.window.ConnectDestroy(func() {
		aw.destroyed = true
		a.auth.AuthWindowClosed(aw)
	})

	aw.window.SetChild(aw.view)
	aw.view.LoadURI(url)
	aw.window.Present()

	common.LogInfo("Auth window opened at %s", url)
	return aw, nil
}

// Focus raises the window.
func (aw *AuthWindow) Focus() {
	if !aw.destroyed {
		aw.window.Present()
	}
}

// Close destroys the window.
func (aw *AuthWindow) Close() {
	if !aw.destroyed {
		aw.window.Destroy()
	}
}

// Destroyed reports whether the native window is gone.
func (aw *AuthWindow) Destroyed() bool {
	return aw.destroyed
}
