package window

import "context"

// Window is the host's main window handle. Every method is a side effect
// on the native window; none of them block.
type Window interface {
	Show()
	Hide()
	Focus()
	Minimize()
	Restore()
	Destroy()

	IsVisible() bool
	IsFocused() bool
	IsMinimized() bool

	SetAlwaysOnTop(flag bool)

	// Content returns the embedded web view living in this window.
	Content() ContentView
}

// ContentView is the embedded third-party page.
type ContentView interface {
	// PurgeStorage clears cookies, cache and local storage of the view's
	// partition. done is called on the UI loop once the purge settles.
	PurgeStorage(ctx context.Context, done func(error))
	// Load navigates the view to url.
	Load(url string)
	// Partition names the storage partition backing the view.
	Partition() string
}

// Factory builds the native main window.
type Factory func() (Window, error)
