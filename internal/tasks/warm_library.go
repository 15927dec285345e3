package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/catalog/internal/logger"
)

// LibraryWarmer reloads a user's library into the cache.
type LibraryWarmer interface {
	Warm(ctx context.Context, username string) error
}

// MaintenanceRecorder receives the outcome of background cache work.
type MaintenanceRecorder interface {
	RecordCacheMaintenance(username, action string, err error)
}

// WarmLibraryTask repopulates cached library reads for one user after a
// write purged them.
type WarmLibraryTask struct {
	Username string `json:"username"`
}

// Config returns the queue configuration for library warm-up tasks.
func (t WarmLibraryTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "warm_library",
		MaxAttempts: 2,
		Backoff:     10 * time.Second,
		Timeout:     30 * time.Second,
		Retention: &backlite.Retention{
			Duration:   time.Hour,
			OnlyFailed: true,
		},
	}
}

// WarmLibraryProcessor creates a processor function for WarmLibraryTask.
// recorder may be nil.
func WarmLibraryProcessor(warmer LibraryWarmer, recorder MaintenanceRecorder, log logger.Logger) backlite.QueueProcessor[WarmLibraryTask] {
	return func(ctx context.Context, task WarmLibraryTask) error {
		if warmer == nil {
			return fmt.Errorf("library warmer not configured")
		}

		err := warmer.Warm(ctx, task.Username)
		if recorder != nil {
			recorder.RecordCacheMaintenance(task.Username, "warm_library", err)
		}
		if err != nil {
			return fmt.Errorf("warm library for %s: %w", task.Username, err)
		}

		log.Debug("warmed library cache", logger.String("username", task.Username))
		return nil
	}
}

// NewWarmLibraryQueue creates a backlite queue for library warm-up tasks.
func NewWarmLibraryQueue(warmer LibraryWarmer, recorder MaintenanceRecorder, log logger.Logger) backlite.Queue {
	return backlite.NewQueue(WarmLibraryProcessor(warmer, recorder, log))
}
