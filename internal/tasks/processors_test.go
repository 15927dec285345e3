package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/catalog/internal/logger"
)

type stubCleaner struct {
	retention time.Duration
	deleted   int64
	err       error
}

func (c *stubCleaner) DeleteOldEvents(retention time.Duration) (int64, error) {
	c.retention = retention
	return c.deleted, c.err
}

type stubWarmer struct {
	err   error
	calls []string
}

func (w *stubWarmer) Warm(_ context.Context, username string) error {
	w.calls = append(w.calls, username)
	return w.err
}

type stubRecorder struct {
	actions []string
	errs    []error
}

func (r *stubRecorder) RecordCacheMaintenance(_, action string, err error) {
	r.actions = append(r.actions, action)
	r.errs = append(r.errs, err)
}

func TestCleanupAuditEventsProcessor(t *testing.T) {
	ctx := context.Background()

	t.Run("uses task retention", func(t *testing.T) {
		cleaner := &stubCleaner{deleted: 4}
		err := CleanupAuditEventsProcessor(cleaner, logger.Nop())(ctx, CleanupAuditEventsTask{RetentionDays: 7})
		require.NoError(t, err)
		assert.Equal(t, 7*24*time.Hour, cleaner.retention)
	})

	t.Run("defaults retention", func(t *testing.T) {
		cleaner := &stubCleaner{}
		err := CleanupAuditEventsProcessor(cleaner, logger.Nop())(ctx, CleanupAuditEventsTask{})
		require.NoError(t, err)
		assert.Equal(t, DefaultAuditRetentionDays*24*time.Hour, cleaner.retention)
	})

	t.Run("propagates failure", func(t *testing.T) {
		cleaner := &stubCleaner{err: errors.New("locked")}
		err := CleanupAuditEventsProcessor(cleaner, logger.Nop())(ctx, CleanupAuditEventsTask{RetentionDays: 1})
		assert.ErrorContains(t, err, "locked")
	})

	t.Run("requires cleaner", func(t *testing.T) {
		err := CleanupAuditEventsProcessor(nil, logger.Nop())(ctx, CleanupAuditEventsTask{})
		assert.Error(t, err)
	})
}

func TestWarmLibraryProcessor(t *testing.T) {
	ctx := context.Background()

	t.Run("warms and records", func(t *testing.T) {
		warmer := &stubWarmer{}
		recorder := &stubRecorder{}

		err := WarmLibraryProcessor(warmer, recorder, logger.Nop())(ctx, WarmLibraryTask{Username: "wsmith"})
		require.NoError(t, err)
		assert.Equal(t, []string{"wsmith"}, warmer.calls)
		assert.Equal(t, []string{"warm_library"}, recorder.actions)
		assert.Nil(t, recorder.errs[0])
	})

	t.Run("records failures", func(t *testing.T) {
		warmer := &stubWarmer{err: errors.New("cache down")}
		recorder := &stubRecorder{}

		err := WarmLibraryProcessor(warmer, recorder, logger.Nop())(ctx, WarmLibraryTask{Username: "wsmith"})
		assert.ErrorContains(t, err, "cache down")
		require.Len(t, recorder.errs, 1)
		assert.Error(t, recorder.errs[0])
	})

	t.Run("requires warmer", func(t *testing.T) {
		err := WarmLibraryProcessor(nil, nil, logger.Nop())(ctx, WarmLibraryTask{Username: "wsmith"})
		assert.Error(t, err)
	})
}
