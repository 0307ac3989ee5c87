package bridge

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yllada/chatdock/common"
)

type recordingHost struct {
	calls []string
	top   bool
	ctx   context.Context
}

func (h *recordingHost) SetAlwaysOnTop(flag bool) {
	h.calls = append(h.calls, "top")
	h.top = flag
}
func (h *recordingHost) Minimize() { h.calls = append(h.calls, "minimize") }
func (h *recordingHost) Hide()     { h.calls = append(h.calls, "hide") }
func (h *recordingHost) ClearSession(ctx context.Context) {
	h.calls = append(h.calls, "clear")
	h.ctx = ctx
}

type recordingShortcuts struct {
	enabled []bool
	keys    []string
}

func (s *recordingShortcuts) Apply(enabled bool, key string) {
	s.enabled = append(s.enabled, enabled)
	s.keys = append(s.keys, key)
}

func TestSend_Dispatch(t *testing.T) {
	ctx := context.WithValue(context.Background(), struct{}{}, "marker")
	host := &recordingHost{}
	shortcuts := &recordingShortcuts{}
	b := New(ctx, host, shortcuts)

	require.NoError(t, b.Send(AlwaysOnTop(true)))
	require.NoError(t, b.Send(Minimize()))
	require.NoError(t, b.Send(Close()))
	require.NoError(t, b.Send(Clear()))
	require.NoError(t, b.Send(Shortcut(true, "Alt+Space")))
	require.NoError(t, b.Send(Shortcut(false, "")))

	assert.Equal(t, []string{"top", "minimize", "hide", "clear"}, host.calls)
	assert.True(t, host.top)
	assert.Equal(t, ctx, host.ctx)
	assert.Equal(t, []bool{true, false}, shortcuts.enabled)
	assert.Equal(t, []string{"Alt+Space", ""}, shortcuts.keys)
}

func TestSend_RejectsUnknown(t *testing.T) {
	host := &recordingHost{}
	b := New(context.Background(), host, &recordingShortcuts{})

	err := b.Send(Message{Type: "open-devtools"})
	assert.True(t, errors.Is(err, common.ErrUnknownMessage))
	assert.Empty(t, host.calls)
}

func TestSend_ShortcutNeedsKeyWhenEnabling(t *testing.T) {
	shortcuts := &recordingShortcuts{}
	b := New(context.Background(), &recordingHost{}, shortcuts)

	assert.Error(t, b.Send(Shortcut(true, "")))
	assert.Empty(t, shortcuts.enabled)
}

func TestEmit_Subscribers(t *testing.T) {
	b := New(context.Background(), &recordingHost{}, &recordingShortcuts{})

	var settings, auth int
	b.Subscribe(OpenSettings, func() { settings++ })
	unsubscribe := b.Subscribe(AuthComplete, func() { auth++ })

	b.Emit(AuthComplete)
	b.Emit(OpenSettings)
	assert.Equal(t, 1, auth)
	assert.Equal(t, 1, settings)

	unsubscribe()
	unsubscribe()
	b.Emit(AuthComplete)
	assert.Equal(t, 1, auth)
}

func TestEmit_NoSubscribers(t *testing.T) {
	b := New(context.Background(), &recordingHost{}, &recordingShortcuts{})
	assert.NotPanics(t, func() { b.Emit(AuthComplete) })
}

func TestUnsubscribe_RemovesEntry(t *testing.T) {
	b := New(context.Background(), &recordingHost{}, &recordingShortcuts{})

	var kept int
	b.Subscribe(AuthComplete, func() { kept++ })

	// A window that opens and closes many times must not leave slots behind.
	for i := 0; i < 1000; i++ {
		unsubscribe := b.Subscribe(AuthComplete, func() { t.Error("removed subscriber called") })
		unsubscribe()
	}

	b.mu.Lock()
	assert.Len(t, b.subscribers[AuthComplete], 1)
	b.mu.Unlock()

	b.Emit(AuthComplete)
	assert.Equal(t, 1, kept)
}

func TestUnsubscribe_OutOfOrder(t *testing.T) {
	b := New(context.Background(), &recordingHost{}, &recordingShortcuts{})

	var calls []string
	first := b.Subscribe(OpenSettings, func() { calls = append(calls, "first") })
	second := b.Subscribe(OpenSettings, func() { calls = append(calls, "second") })
	b.Subscribe(OpenSettings, func() { calls = append(calls, "third") })

	first()
	b.Emit(OpenSettings)
	assert.Equal(t, []string{"second", "third"}, calls)

	calls = nil
	second()
	b.Emit(OpenSettings)
	assert.Equal(t, []string{"third"}, calls)
}

func TestUnsubscribe_LastClearsSignal(t *testing.T) {
	b := New(context.Background(), &recordingHost{}, &recordingShortcuts{})

	unsubscribe := b.Subscribe(OpenSettings, func() {})
	unsubscribe()

	b.mu.Lock()
	_, ok := b.subscribers[OpenSettings]
	b.mu.Unlock()
	assert.False(t, ok)
}

func TestEmit_SubscriberMayUnsubscribe(t *testing.T) {
	b := New(context.Background(), &recordingHost{}, &recordingShortcuts{})

	var calls int
	var unsubscribe func()
	unsubscribe = b.Subscribe(AuthComplete, func() {
		calls++
		unsubscribe()
	})

	b.Emit(AuthComplete)
	b.Emit(AuthComplete)
	assert.Equal(t, 1, calls)
}
