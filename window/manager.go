// Package window owns the lifecycle of the main window: creation, the
// show/hide/toggle rules, "hide instead of destroy" on close, and clearing
// the embedded session.
//
// Manager is not safe for concurrent use. Every method must run on the UI
// event loop; callers on other goroutines go through common.Dispatcher.
package window

import (
	"context"
	"fmt"

	"github.com/yllada/chatdock/common"
)

// Manager owns the single main window.
type Manager struct {
	factory  Factory
	homeURL  string
	notifier common.Notifier
	onQuit   func()
	log      *common.ComponentLogger

	main        Window
	generation  uint64
	phase       Phase
	lifecycle   Lifecycle
	alwaysOnTop bool
}

// Options configures a Manager.
type Options struct {
	// Factory builds the native window.
	Factory Factory
	// HomeURL is the content view's original address, reloaded after a
	// session clear.
	HomeURL string
	// Notifier surfaces non-fatal failures to the user.
	Notifier common.Notifier
	// OnQuit terminates the host application after Quit.
	OnQuit func()
}

// NewManager returns a manager with no window yet.
func NewManager(opts Options) *Manager {
	notifier := opts.Notifier
	if notifier == nil {
		notifier = common.NopNotifier{}
	}
	return &Manager{
		factory:  opts.Factory,
		homeURL:  opts.HomeURL,
		notifier: notifier,
		onQuit:   opts.OnQuit,
		log:      common.Logger("window"),
	}
}

// Create builds the main window. It fails with ErrWindowExists while a
// window exists, whether visible or hidden.
func (m *Manager) Create() error {
	if m.main != nil {
		return common.ErrWindowExists
	}
	w, err := m.factory()
	if err != nil {
		return fmt.Errorf("creating main window: %w", err)
	}
	m.main = w
	m.generation++
	m.phase = PhaseCreated
	if m.alwaysOnTop {
		w.SetAlwaysOnTop(true)
	}
	m.log.Info("Main window created")
	return nil
}

// Activate brings the window forward, creating it if it was destroyed.
func (m *Manager) Activate() error {
	if m.main == nil {
		if err := m.Create(); err != nil {
			return err
		}
	}
	m.reveal()
	return nil
}

// Window returns the live main window, or nil.
func (m *Manager) Window() Window {
	return m.main
}

// Toggle flips visibility. A hidden window is restored, shown and focused.
// A visible window is hidden by the tray unconditionally; the shortcut
// hides it only when it also has focus and otherwise focuses it.
func (m *Manager) Toggle(source Source) {
	w := m.main
	if w == nil {
		return
	}

	visible := w.IsVisible()
	switch {
	case !visible:
		m.reveal()
	case source == SourceTray:
		m.Hide()
	case w.IsFocused():
		m.Hide()
	default:
		m.reveal()
	}
	m.log.Debug("Toggle from %s: now %s", source, m.phase)
}

func (m *Manager) reveal() {
	w := m.main
	if w.IsMinimized() {
		w.Restore()
	}
	w.Show()
	w.Focus()
	m.phase = PhaseVisible
}

// Show reveals and focuses the window.
func (m *Manager) Show() {
	if m.main == nil {
		return
	}
	m.reveal()
}

// Hide hides the window without destroying it.
func (m *Manager) Hide() {
	if m.main == nil {
		return
	}
	m.main.Hide()
	m.phase = PhaseHidden
}

// RequestClose handles a user-initiated close and reports whether the
// native destroy may proceed. While running the window is hidden instead.
func (m *Manager) RequestClose() bool {
	if m.lifecycle == Quitting {
		return true
	}
	m.Hide()
	return false
}

// Destroyed records that the host destroyed the native window.
func (m *Manager) Destroyed() {
	if m.main == nil {
		return
	}
	m.main = nil
	m.phase = PhaseDestroyed
	m.log.Info("Main window destroyed")
}

// SetAlwaysOnTop pins or unpins the window. The flag survives re-creation.
func (m *Manager) SetAlwaysOnTop(flag bool) {
	m.alwaysOnTop = flag
	if m.main != nil {
		m.main.SetAlwaysOnTop(flag)
	}
}

// Minimize iconifies the window.
func (m *Manager) Minimize() {
	if m.main != nil {
		m.main.Minimize()
	}
}

// ClearSession purges the content view's persisted storage and, once the
// purge settles, reloads the view from its original address. The window
// may vanish while the purge runs; in that case nothing is reloaded.
func (m *Manager) ClearSession(ctx context.Context) {
	w := m.main
	if w == nil {
		m.log.Warn("Clear session requested without a window")
		return
	}
	generation := m.generation
	content := w.Content()

	m.log.Info("Clearing session storage of partition %s", content.Partition())
	content.PurgeStorage(ctx, func(err error) {
		if err != nil {
			m.log.Warn("Session purge failed: %v", err)
			m.notifier.Notify("Could not clear session", err.Error())
		}
		if m.main == nil || m.generation != generation {
			m.log.Debug("Window gone before purge finished, skipping reload")
			return
		}
		m.main.Content().Load(m.homeURL)
	})
}

// BeginQuit moves the application to Quitting. Close requests from then
// on destroy the window.
func (m *Manager) BeginQuit() {
	if m.lifecycle == Quitting {
		return
	}
	m.lifecycle = Quitting
	m.log.Info("Quitting")
}

// Quit begins quitting, destroys the window and terminates the host.
func (m *Manager) Quit() {
	m.BeginQuit()
	if m.main != nil {
		m.main.Destroy()
		m.Destroyed()
	}
	if m.onQuit != nil {
		m.onQuit()
	}
}

// Lifecycle returns the current run state.
func (m *Manager) Lifecycle() Lifecycle {
	return m.lifecycle
}

// Phase returns the window's lifecycle phase.
func (m *Manager) Phase() Phase {
	return m.phase
}

// State returns a snapshot of the window, or ErrNoWindow.
func (m *Manager) State() (State, error) {
	if m.main == nil {
		return State{}, common.ErrNoWindow
	}
	return State{
		Visible:            m.main.IsVisible(),
		Focused:            m.main.IsFocused(),
		Minimized:          m.main.IsMinimized(),
		AlwaysOnTop:        m.alwaysOnTop,
		SessionPartitionID: m.main.Content().Partition(),
	}, nil
}
