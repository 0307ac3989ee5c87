package bridge

import (
	"context"
	"sync"

	"github.com/samber/lo"

	"github.com/yllada/chatdock/common"
)

// WindowHost is the subset of the window manager the bridge drives.
type WindowHost interface {
	SetAlwaysOnTop(flag bool)
	Minimize()
	Hide()
	ClearSession(ctx context.Context)
}

// ShortcutHost is the subset of the hotkey manager the bridge drives.
type ShortcutHost interface {
	Apply(enabled bool, key string)
}

// Emitter publishes host → UI signals.
type Emitter interface {
	Emit(sig Signal)
}

// Bridge dispatches UI messages to host components and fans out signals.
// Messages are fire-and-forget: Send only fails for messages outside the
// vocabulary.
type Bridge struct {
	ctx      context.Context
	window   WindowHost
	shortcut ShortcutHost
	log      *common.ComponentLogger

	mu          sync.Mutex
	nextID      uint64
	subscribers map[Signal][]subscriber
}

type subscriber struct {
	id uint64
	fn func()
}

// New creates a bridge. ctx bounds asynchronous work such as clear-session.
func New(ctx context.Context, window WindowHost, shortcut ShortcutHost) *Bridge {
	return &Bridge{
		ctx:         ctx,
		window:      window,
		shortcut:    shortcut,
		log:         common.Logger("bridge"),
		subscribers: make(map[Signal][]subscriber),
	}
}

// Send handles one UI message.
func (b *Bridge) Send(msg Message) error {
	if err := msg.Validate(); err != nil {
		b.log.Warn("Rejected message: %v", err)
		return err
	}
	b.log.Debug("Message %s flag=%t key=%q", msg.Type, msg.Flag, msg.Key)

	switch msg.Type {
	case ToggleAlwaysOnTop:
		b.window.SetAlwaysOnTop(msg.Flag)
	case MinimizeWindow:
		b.window.Minimize()
	case CloseWindow:
		b.window.Hide()
	case ClearSession:
		b.window.ClearSession(b.ctx)
	case SetShortcutEnabled:
		b.shortcut.Apply(msg.Flag, msg.Key)
	}
	return nil
}

// Subscribe registers fn for sig and returns a function removing it.
func (b *Bridge) Subscribe(sig Signal, fn func()) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.subscribers[sig] = append(b.subscribers[sig], subscriber{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			rest := lo.Reject(b.subscribers[sig], func(s subscriber, _ int) bool {
				return s.id == id
			})
			if len(rest) == 0 {
				delete(b.subscribers, sig)
				return
			}
			b.subscribers[sig] = rest
		})
	}
}

// Emit calls every subscriber of sig on the caller's goroutine.
func (b *Bridge) Emit(sig Signal) {
	b.mu.Lock()
	subs := lo.Map(b.subscribers[sig], func(s subscriber, _ int) func() { return s.fn })
	b.mu.Unlock()

	b.log.Debug("Signal %s to %d subscriber(s)", sig, len(subs))
	for _, fn := range subs {
		fn()
	}
}
