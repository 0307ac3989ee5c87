package ui

import (
	"context"

	"github.com/diamondburned/gotk4-webkitgtk/pkg/webkit/v6"
	"github.com/diamondburned/gotk4/pkg/gio/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/yllada/chatdock/auth"
	"github.com/yllada/chatdock/common"
	"github.com/yllada/chatdock/config"
)

// newWebView builds a web view on the default network session, which
// every view in the process shares. That shared session is the storage
// partition the content view and the auth window have in common.
func newWebView(cfg *config.Config) *webkit.WebView {
	view := webkit.NewWebView()
	view.SetVExpand(true)
	view.SetHExpand(true)

	settings := view.Settings()
	settings.SetUserAgent(cfg.Content.UserAgent)
	settings.SetEnableDeveloperExtras(false)
	settings.SetJavascriptCanOpenWindowsAutomatically(true)
	settings.SetEnableBackForwardNavigationGestures(true)

	// Keep only the editing entries of the right-click menu.
	view.ConnectContextMenu(func(menu *webkit.ContextMenu, _ *webkit.HitTestResult) bool {
		for _, item := range menu.Items() {
			if !editingAction(item.StockAction()) {
				menu.Remove(item)
			}
		}
		return false
	})
	return view
}

func editingAction(action webkit.ContextMenuAction) bool {
	switch action {
	case webkit.ContextMenuActionCopy,
		webkit.ContextMenuActionCut,
		webkit.ContextMenuActionPaste,
		webkit.ContextMenuActionSelectAll,
		webkit.ContextMenuActionCopyLinkToClipboard,
		webkit.ContextMenuActionCopyImageToClipboard:
		return true
	}
	return false
}

// observeNavigation calls fn with the view's URI after every committed
// load and every same-document change of address.
func observeNavigation(view *webkit.WebView, fn func(uri string)) {
	view.ConnectLoadChanged(func(event webkit.LoadEvent) {
		if event == webkit.LoadCommitted {
			fn(view.URI())
		}
	})
	view.NotifyProperty("uri", func() {
		fn(view.URI())
	})
}

// ContentView hosts the chat site inside the main window.
type ContentView struct {
	view      *webkit.WebView
	partition string
	log       *common.ComponentLogger
}

// NewContentView builds the content view and routes its navigations
// through the auth coordinator.
func NewContentView(cfg *config.Config, coord *auth.Coordinator) *ContentView {
	cv := &ContentView{
		view:      newWebView(cfg),
		partition: cfg.Content.Partition,
		log:       common.Logger("content"),
	}

	if coord.MaskAutomation() {
		script := webkit.NewUserScript(
			auth.MaskScript,
			webkit.UserContentInjectTopFrame,
			webkit.UserScriptInjectAtDocumentStart,
			nil, nil,
		)
		cv.view.UserContentManager().AddScript(script)
		cv.log.Debug("Automation masking script installed")
	}

	cv.view.ConnectDecidePolicy(func(decision webkit.PolicyDecisioner, typ webkit.PolicyDecisionType) bool {
		var kind auth.Kind
		switch typ {
		case webkit.PolicyDecisionTypeNavigationAction:
			kind = auth.InView
		case webkit.PolicyDecisionTypeNewWindowAction:
			kind = auth.NewWindow
		default:
			return false
		}

		nav, ok := decision.(*webkit.NavigationPolicyDecision)
		if !ok {
			return false
		}
		uri := nav.NavigationAction().Request().URI()

		if coord.Intercept(auth.Navigation{URL: uri, Kind: kind}) == auth.Deny {
			cv.log.Debug("Denied %s navigation to %s", kindName(kind), uri)
			nav.Ignore()
			return true
		}
		return false
	})

	// Popups the coordinator let through open in the user's browser.
	cv.view.ConnectCreate(func(action *webkit.NavigationAction) gtk.Widgetter {
		uri := action.Request().URI()
		cv.log.Info("Opening %s in the default browser", uri)
		openExternal(uri)
		return nil
	})

	observeNavigation(cv.view, func(uri string) {
		coord.Observe(auth.FromContent, uri)
	})

	cv.view.LoadURI(cfg.Content.URL)
	return cv
}

// PurgeStorage clears every kind of website data held by the shared
// network session. done runs on the UI loop.
func (cv *ContentView) PurgeStorage(ctx context.Context, done func(error)) {
	manager := cv.view.NetworkSession().WebsiteDataManager()
	manager.Clear(ctx, webkit.WebsiteDataAll, 0, func(res gio.AsyncResulter) {
		done(manager.ClearFinish(res))
	})
}

// Load navigates the view to url.
func (cv *ContentView) Load(url string) {
	cv.view.LoadURI(url)
}

// Reload reloads the current page.
func (cv *ContentView) Reload() {
	cv.view.Reload()
}

// Partition returns the storage partition name.
func (cv *ContentView) Partition() string {
	return cv.partition
}

func openExternal(uri string) {
	launcher := gtk.NewURILauncher(uri)
	launcher.Launch(context.Background(), nil, func(res gio.AsyncResulter) {
		if err := launcher.LaunchFinish(res); err != nil {
			common.LogWarn("Opening %s: %v", uri, err)
		}
	})
}

func kindName(kind auth.Kind) string {
	if kind == auth.NewWindow {
		return "new-window"
	}
	return "in-view"
}
