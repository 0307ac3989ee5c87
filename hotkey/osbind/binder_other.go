//go:build darwin || windows

package osbind

import (
	"fmt"
	"sync"

	"golang.design/x/hotkey"

	"github.com/yllada/chatdock/common"
	chord "github.com/yllada/chatdock/hotkey"
)

var osKeys = map[string]hotkey.Key{
	"Space": hotkey.KeySpace,
	"0":     hotkey.Key0, "1": hotkey.Key1, "2": hotkey.Key2, "3": hotkey.Key3, "4": hotkey.Key4,
	"5": hotkey.Key5, "6": hotkey.Key6, "7": hotkey.Key7, "8": hotkey.Key8, "9": hotkey.Key9,
	"A": hotkey.KeyA, "B": hotkey.KeyB, "C": hotkey.KeyC, "D": hotkey.KeyD, "E": hotkey.KeyE,
	"F": hotkey.KeyF, "G": hotkey.KeyG, "H": hotkey.KeyH, "I": hotkey.KeyI, "J": hotkey.KeyJ,
	"K": hotkey.KeyK, "L": hotkey.KeyL, "M": hotkey.KeyM, "N": hotkey.KeyN, "O": hotkey.KeyO,
	"P": hotkey.KeyP, "Q": hotkey.KeyQ, "R": hotkey.KeyR, "S": hotkey.KeyS, "T": hotkey.KeyT,
	"U": hotkey.KeyU, "V": hotkey.KeyV, "W": hotkey.KeyW, "X": hotkey.KeyX, "Y": hotkey.KeyY,
	"Z": hotkey.KeyZ,
}

// Binder registers chords through golang.design/x/hotkey.
type Binder struct{}

// New returns a binder.
func New() *Binder {
	return &Binder{}
}

// Bind registers the chord and starts a goroutine forwarding key-down
// events to fn until the binding is released.
func (*Binder) Bind(c chord.Chord, fn func()) (chord.Binding, error) {
	mods := make([]hotkey.Modifier, 0, len(c.Modifiers()))
	for _, mod := range c.Modifiers() {
		osMod, ok := osModifiers[mod]
		if !ok {
			return nil, fmt.Errorf("%w: no %s modifier on this platform", common.ErrShortcutUnavailable, mod)
		}
		mods = append(mods, osMod)
	}
	key, ok := osKeys[c.Key()]
	if !ok {
		return nil, fmt.Errorf("%w: no key code for %s", common.ErrShortcutUnavailable, c.Key())
	}

	hk := hotkey.New(mods, key)
	if err := hk.Register(); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrShortcutUnavailable, err)
	}

	b := &binding{hk: hk, done: make(chan struct{})}
	go b.listen(fn)
	return b, nil
}

// Close is a no-op; every registration is released through its binding.
func (*Binder) Close() {}

type binding struct {
	hk   *hotkey.Hotkey
	done chan struct{}
	once sync.Once
}

func (b *binding) listen(fn func()) {
	keydown := b.hk.Keydown()
	for {
		select {
		case _, ok := <-keydown:
			if !ok {
				return
			}
			fn()
		case <-b.done:
			return
		}
	}
}

func (b *binding) Release() error {
	var err error
	b.once.Do(func() {
		close(b.done)
		err = b.hk.Unregister()
	})
	return err
}
