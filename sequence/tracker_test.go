package sequence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReconcileInsideWindow(t *testing.T) {
	tr := NewTracker()
	now := time.Now()

	// First read is adopted as is.
	assert.Equal(t, int64(100), tr.reconcileAt("acc", 100, now))

	// A racing read of the same stale value is bumped past it.
	assert.Equal(t, int64(101), tr.reconcileAt("acc", 100, now.Add(time.Second)))

	// And the next one is bumped again, every result inside the
	// window is strictly greater than the one before.
	assert.Equal(t, int64(102), tr.reconcileAt("acc", 100, now.Add(2*time.Second)))

	// A fresh value that already moved past the snapshot wins.
	assert.Equal(t, int64(200), tr.reconcileAt("acc", 200, now.Add(3*time.Second)))
}

func TestReconcileOutsideWindow(t *testing.T) {
	tr := NewTracker()
	now := time.Now()

	assert.Equal(t, int64(100), tr.reconcileAt("acc", 100, now))

	// Outside the window the fresh value is authoritative even
	// when it is behind the snapshot.
	assert.Equal(t, int64(90), tr.reconcileAt("acc", 90, now.Add(Window+time.Second)))
}

func TestReconcilePerAccount(t *testing.T) {
	tr := NewTracker()
	now := time.Now()

	assert.Equal(t, int64(100), tr.reconcileAt("a", 100, now))
	// Another account never observes the snapshot of the first.
	assert.Equal(t, int64(100), tr.reconcileAt("b", 100, now))
}

func TestForget(t *testing.T) {
	tr := NewTracker()
	now := time.Now()

	assert.Equal(t, int64(100), tr.reconcileAt("acc", 100, now))
	tr.Forget("acc")

	// The stale read is no longer bumped.
	assert.Equal(t, int64(100), tr.reconcileAt("acc", 100, now.Add(time.Second)))
}
