package realtime

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func isClosed(ch chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}

func TestTimerRegistry_StartCancelsPrevious(t *testing.T) {
	reg := newTimerRegistry()
	roomID := uuid.New()

	first := reg.start(roomID)
	second := reg.start(roomID)

	assert.True(t, isClosed(first), "starting again cancels the previous task")
	assert.False(t, isClosed(second))
}

func TestTimerRegistry_StopCancelsCurrent(t *testing.T) {
	reg := newTimerRegistry()
	roomID := uuid.New()

	cancel := reg.start(roomID)
	reg.stop(roomID)

	assert.True(t, isClosed(cancel))

	// Stopping an unknown room is a no-op.
	reg.stop(uuid.New())
}

func TestTimerRegistry_ClearOnlyRemovesOwnChannel(t *testing.T) {
	reg := newTimerRegistry()
	roomID := uuid.New()

	old := reg.start(roomID)
	replacement := reg.start(roomID)

	// A finished task clearing its stale handle must not drop the
	// replacement's registration.
	reg.clear(roomID, old)
	reg.stop(roomID)
	assert.True(t, isClosed(replacement))
}

func TestTimerRegistry_RoomsAreIndependent(t *testing.T) {
	reg := newTimerRegistry()
	a := uuid.New()
	b := uuid.New()

	cancelA := reg.start(a)
	cancelB := reg.start(b)

	reg.stop(a)
	assert.True(t, isClosed(cancelA))
	assert.False(t, isClosed(cancelB))
}
