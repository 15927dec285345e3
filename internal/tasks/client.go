package tasks

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/catalog/internal/logger"
)

// Client runs the catalog's background queues on backlite, persisted in a
// SQLite file next to the catalog database.
type Client struct {
	client  *backlite.Client
	db      *sql.DB
	config  Config
	log     logger.Logger
	started atomic.Bool
}

// TasksDBPath returns the task database path kept alongside the main
// database, with a "-tasks" suffix.
func TasksDBPath(mainDBPath string) string {
	ext := filepath.Ext(mainDBPath)
	return strings.TrimSuffix(mainDBPath, ext) + "-tasks" + ext
}

// openTasksDB opens the task database in WAL mode with a pool sized for
// the worker count.
func openTasksDB(path string, workers int) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path+"?_journal=WAL&_timeout=5000&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(workers + 5)
	db.SetMaxIdleConns(workers + 2)
	db.SetConnMaxLifetime(time.Hour)
	return db, nil
}

func NewClient(mainDBPath string, cfg Config, log logger.Logger) (*Client, error) {
	db, err := openTasksDB(TasksDBPath(mainDBPath), cfg.Workers)
	if err != nil {
		return nil, fmt.Errorf("failed to open tasks database: %w", err)
	}

	client, err := backlite.NewClient(backlite.ClientConfig{
		DB:              db,
		NumWorkers:      cfg.Workers,
		ReleaseAfter:    cfg.ReleaseAfter,
		CleanupInterval: cfg.CleanupInterval,
		Logger:          &taskLogger{log: log},
	})
	if err == nil {
		err = client.Install()
	}
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set up backlite: %w", err)
	}

	return &Client{client: client, db: db, config: cfg, log: log}, nil
}

// Register adds queues. Call before Start.
func (c *Client) Register(queues ...backlite.Queue) {
	for _, q := range queues {
		c.client.Register(q)
	}
}

// Start launches the workers once; later calls are no-ops.
func (c *Client) Start(ctx context.Context) {
	if !c.started.CompareAndSwap(false, true) {
		return
	}
	c.log.Info("task workers started", logger.Int("workers", c.config.Workers))
	c.client.Start(ctx)
}

// Stop waits for running tasks and reports whether they all finished
// before ctx expired. Stopping a client that never started succeeds.
func (c *Client) Stop(ctx context.Context) bool {
	if !c.started.Load() {
		return true
	}

	ok := c.client.Stop(ctx)
	if !ok {
		c.log.Warn("task workers did not finish before shutdown deadline")
		return false
	}
	c.log.Info("task workers stopped")
	return true
}

// Close releases the task database. Call after Stop.
func (c *Client) Close() error {
	return c.db.Close()
}

// Add starts an operation to enqueue one or more tasks.
func (c *Client) Add(tasks ...backlite.Task) *backlite.TaskAddOp {
	return c.client.Add(tasks...)
}

// Status returns the status of a task by ID.
func (c *Client) Status(ctx context.Context, taskID string) (backlite.TaskStatus, error) {
	return c.client.Status(ctx, taskID)
}

// AddLibraryWarmup schedules a cache reload of username's library and
// returns the task ID.
func (c *Client) AddLibraryWarmup(ctx context.Context, username string) (string, error) {
	ids, err := c.Add(WarmLibraryTask{Username: username}).Ctx(ctx).Save()
	if err != nil {
		return "", fmt.Errorf("enqueue library warm-up for %s: %w", username, err)
	}
	return ids[0], nil
}

// EnqueueLibraryWarmup is AddLibraryWarmup without the task ID.
func (c *Client) EnqueueLibraryWarmup(ctx context.Context, username string) error {
	_, err := c.AddLibraryWarmup(ctx, username)
	return err
}

// EnqueueAuditCleanup schedules removal of audit events older than retentionDays.
func (c *Client) EnqueueAuditCleanup(ctx context.Context, retentionDays int) error {
	if _, err := c.Add(CleanupAuditEventsTask{RetentionDays: retentionDays}).Ctx(ctx).Save(); err != nil {
		return fmt.Errorf("enqueue audit cleanup: %w", err)
	}
	return nil
}

// taskLogger adapts the application logger to backlite.Logger, which
// passes alternating key/value params.
type taskLogger struct {
	log logger.Logger
}

func (l *taskLogger) Info(message string, params ...any) {
	l.log.Infow("task: "+message, params...)
}

func (l *taskLogger) Error(message string, params ...any) {
	l.log.Errorw("task: "+message, params...)
}
