package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pro-master/backend/internal/models"
	"github.com/pro-master/backend/internal/testing/testdb"
)

func TestDispatcherWritesQueuedEventsOnClose(t *testing.T) {
	db := testdb.New(t)
	d := NewDispatcher(New(db), zap.NewNop())

	for i := uint(1); i <= 3; i++ {
		d.Dispatch(Event{
			UserID:   Ptr(7),
			Action:   "favorite_added",
			Entity:   "service_profile",
			EntityID: Ptr(i),
			Metadata: map[string]any{"n": i},
		})
	}
	d.Close()

	var rows []models.AuditLog
	require.NoError(t, db.Order("id").Find(&rows).Error)
	require.Len(t, rows, 3)
	assert.Equal(t, "favorite_added", rows[0].Action)
	assert.Equal(t, uint(7), *rows[0].UserID)
	assert.JSONEq(t, `{"n":1}`, rows[0].Metadata)

	// closed dispatchers ignore events
	d.Dispatch(Event{Action: "late"})
	d.Close()
	var n int64
	require.NoError(t, db.Model(&models.AuditLog{}).Where("action = ?", "late").Count(&n).Error)
	assert.Zero(t, n)
}

func TestDispatchDropsWhenQueueFull(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	d := &Dispatcher{
		log:   zap.New(core),
		queue: make(chan Event, 1),
		done:  make(chan struct{}),
	}

	d.Dispatch(Event{Action: "first"})
	d.Dispatch(Event{Action: "second"})

	assert.Len(t, d.queue, 1)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "second", logs.All()[0].ContextMap()["action"])
}

func TestNilDispatcherIsSafe(t *testing.T) {
	var d *Dispatcher
	assert.NotPanics(t, func() {
		d.Dispatch(Event{Action: "x"})
		d.Close()
	})
}
