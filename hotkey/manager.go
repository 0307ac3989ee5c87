// Package hotkey owns the single system-wide shortcut that toggles the
// main window.
package hotkey

import (
	"fmt"
	"sync"

	"github.com/yllada/chatdock/common"
)

// Binding is a live OS registration.
type Binding interface {
	Release() error
}

// Binder registers chords with the operating system. fn is called on an
// arbitrary goroutine each time the chord is pressed.
type Binder interface {
	Bind(chord Chord, fn func()) (Binding, error)
}

// Manager keeps at most one binding. Register and Unregister may be called
// from any goroutine; triggers are posted to the UI loop.
type Manager struct {
	binder   Binder
	dispatch common.Dispatcher
	trigger  func()
	log      *common.ComponentLogger

	mu      sync.Mutex
	current Binding
	chord   Chord
}

// NewManager creates a manager that calls trigger on the UI loop whenever
// the registered shortcut fires.
func NewManager(binder Binder, dispatch common.Dispatcher, trigger func()) *Manager {
	return &Manager{
		binder:   binder,
		dispatch: dispatch,
		trigger:  trigger,
		log:      common.Logger("hotkey"),
	}
}

// Register replaces any existing binding with key. On failure no binding is
// retained and a warning is logged; the error is returned for callers that
// want to surface it.
func (m *Manager) Register(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.releaseLocked()

	chord, err := ParseChord(key)
	if err != nil {
		m.log.Warn("Cannot register shortcut: %v", err)
		return err
	}

	binding, err := m.binder.Bind(chord, m.fire)
	if err != nil {
		err = common.WrapError(common.ErrShortcutUnavailable, fmt.Sprintf("registering %s: %v", chord, err))
		m.log.Warn("%v", err)
		return err
	}

	m.current = binding
	m.chord = chord
	m.log.Info("Registered global shortcut %s", chord)
	return nil
}

// Unregister releases the current binding. It is a no-op without one.
func (m *Manager) Unregister() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.releaseLocked()
}

// Apply registers key when enabled and unregisters otherwise.
func (m *Manager) Apply(enabled bool, key string) {
	if !enabled {
		m.Unregister()
		return
	}
	_ = m.Register(key)
}

// Current returns the registered chord and whether one is bound.
func (m *Manager) Current() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return "", false
	}
	return m.chord.String(), true
}

func (m *Manager) releaseLocked() {
	if m.current == nil {
		return
	}
	if err := m.current.Release(); err != nil {
		m.log.Warn("Releasing shortcut %s: %v", m.chord, err)
	} else {
		m.log.Info("Released global shortcut %s", m.chord)
	}
	m.current = nil
	m.chord = Chord{}
}

func (m *Manager) fire() {
	m.dispatch.Post(m.trigger)
}
