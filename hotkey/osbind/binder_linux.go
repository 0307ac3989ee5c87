//go:build linux

package osbind

import (
	"fmt"
	"strings"
	"sync"

	"github.com/jezek/xgbutil"
	"github.com/jezek/xgbutil/keybind"
	"github.com/jezek/xgbutil/xevent"
	"github.com/samber/lo"

	"github.com/yllada/chatdock/common"
	"github.com/yllada/chatdock/hotkey"
)

// X11 maps Alt to Mod1 and Super to Mod4 on every common keyboard layout.
var x11Modifiers = map[hotkey.Modifier]string{
	hotkey.ModCtrl:  "control",
	hotkey.ModAlt:   "mod1",
	hotkey.ModShift: "shift",
	hotkey.ModSuper: "mod4",
}

// Binder grabs chords on the X11 root window.
type Binder struct {
	mu  sync.Mutex
	xu  *xgbutil.XUtil
	log *common.ComponentLogger
}

// New returns a binder with no display connection yet.
func New() *Binder {
	return &Binder{log: common.Logger("x11")}
}

// conn opens the display on first use and starts the event loop that
// delivers key presses. Callers hold b.mu.
func (b *Binder) conn() (*xgbutil.XUtil, error) {
	if b.xu != nil {
		return b.xu, nil
	}
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, err
	}
	keybind.Initialize(xu)
	go xevent.Main(xu)

	b.xu = xu
	b.log.Debug("Connected to X11 display")
	return xu, nil
}

// Bind grabs the chord and calls fn on the X11 event goroutine for every
// press. A grab already held by another client fails here, synchronously.
func (b *Binder) Bind(chord hotkey.Chord, fn func()) (hotkey.Binding, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	xu, err := b.conn()
	if err != nil {
		return nil, fmt.Errorf("%w: no X11 display: %v", common.ErrShortcutUnavailable, err)
	}

	keys := keyString(chord)
	press := keybind.KeyPressFun(func(*xgbutil.XUtil, xevent.KeyPressEvent) {
		fn()
	})
	if err := press.Connect(xu, xu.RootWin(), keys, true); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrShortcutUnavailable, err)
	}
	return &binding{binder: b, keys: keys}, nil
}

// release ungrabs keys and drops the root window's key handlers. Both are
// one-way requests to the server.
func (b *Binder) release(keys string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.xu == nil {
		return nil
	}
	root := b.xu.RootWin()
	mods, codes, err := keybind.ParseString(b.xu, keys)
	if err != nil {
		keybind.Detach(b.xu, root)
		return err
	}
	for _, code := range codes {
		keybind.Ungrab(b.xu, root, mods, code)
	}
	keybind.Detach(b.xu, root)
	return nil
}

// Close stops the event loop and closes the display connection.
func (b *Binder) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.xu == nil {
		return
	}
	xevent.Quit(b.xu)
	b.xu.Conn().Close()
	b.xu = nil
}

type binding struct {
	binder *Binder
	keys   string
	once   sync.Once
}

func (bd *binding) Release() error {
	var err error
	bd.once.Do(func() {
		err = bd.binder.release(bd.keys)
	})
	return err
}

// keyString renders chord in xgbutil's "mod-mod-keysym" notation.
func keyString(chord hotkey.Chord) string {
	parts := lo.Map(chord.Modifiers(), func(m hotkey.Modifier, _ int) string {
		return x11Modifiers[m]
	})
	return strings.Join(append(parts, strings.ToLower(chord.Key())), "-")
}
