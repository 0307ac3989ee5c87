package common

// Dispatcher runs functions on the UI event loop. Tray and hotkey callbacks
// arrive on their own goroutines and must go through Post before touching
// any window.
type Dispatcher interface {
	Post(fn func())
}

// DispatchFunc adapts a plain function to Dispatcher.
type DispatchFunc func(fn func())

// Post calls f(fn).
func (f DispatchFunc) Post(fn func()) { f(fn) }

// Inline runs fn immediately on the calling goroutine, for code with no
// event loop.
var Inline Dispatcher = DispatchFunc(func(fn func()) { fn() })

// Notifier surfaces a short, non-blocking message to the user.
type Notifier interface {
	Notify(title, message string)
}

// NopNotifier drops every notice.
type NopNotifier struct{}

// Notify does nothing.
func (NopNotifier) Notify(string, string) {}
