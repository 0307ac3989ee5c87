package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// toggle stands in for a toggle widget: SetActive fires the handler on change.
type toggle struct {
	active  bool
	handler func()
}

func (t *toggle) SetActive(v bool) {
	if t.active == v {
		return
	}
	t.active = v
	if t.handler != nil {
		t.handler()
	}
}

func TestSyncGuardSuppressesHandlerDuringSync(t *testing.T) {
	var guard SyncGuard
	var saved []bool

	tg := &toggle{}
	tg.handler = func() {
		if guard.Active() {
			return
		}
		saved = append(saved, tg.active)
	}

	// Code-driven update.
	guard.Run(func() { tg.SetActive(true) })
	assert.Empty(t, saved)
	assert.True(t, tg.active)

	// User edit.
	tg.SetActive(false)
	assert.Equal(t, []bool{false}, saved)
}

func TestSyncGuardNests(t *testing.T) {
	var guard SyncGuard
	assert.False(t, guard.Active())

	guard.Run(func() {
		guard.Run(func() {
			assert.True(t, guard.Active())
		})
		assert.True(t, guard.Active())
	})
	assert.False(t, guard.Active())
}

func TestSyncGuardReleasesAfterPanic(t *testing.T) {
	var guard SyncGuard
	assert.Panics(t, func() {
		guard.Run(func() { panic("boom") })
	})
	assert.False(t, guard.Active())
}
