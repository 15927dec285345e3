package tasks

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/catalog/internal/config"
	"github.com/mrlokans/catalog/internal/logger"
)

type chanWarmer struct {
	done chan string
}

func (w *chanWarmer) Warm(_ context.Context, username string) error {
	w.done <- username
	return nil
}

// newStartedClient opens a single-worker client next to a temp catalog
// database, registers queues and runs the workers until the test ends.
func newStartedClient(t *testing.T, queues ...backlite.Queue) *Client {
	t.Helper()

	cfg := DefaultConfig()
	cfg.Workers = 1

	client, err := NewClient(filepath.Join(t.TempDir(), "catalog.db"), cfg, logger.Nop())
	require.NoError(t, err)
	client.Register(queues...)

	ctx, cancel := context.WithCancel(context.Background())
	go client.Start(ctx)

	t.Cleanup(func() {
		cancel()
		_ = client.Close()
	})
	return client
}

func TestNewClient_CreatesSiblingDatabase(t *testing.T) {
	dir := t.TempDir()

	client, err := NewClient(filepath.Join(dir, "catalog.db"), DefaultConfig(), logger.Nop())
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "catalog-tasks.db"))
	assert.NoError(t, err)
	assert.NoError(t, client.Close())
}

func TestClient_StopsGracefully(t *testing.T) {
	client := newStartedClient(t)
	time.Sleep(50 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	assert.True(t, client.Stop(ctx))
}

type echoTask struct {
	Value string `json:"value"`
}

func (echoTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "echo",
		MaxAttempts: 1,
		Timeout:     5 * time.Second,
	}
}

func TestClient_RunsRegisteredQueue(t *testing.T) {
	seen := make(chan string, 1)
	client := newStartedClient(t, backlite.NewQueue(func(_ context.Context, task echoTask) error {
		seen <- task.Value
		return nil
	}))

	ids, err := client.Add(echoTask{Value: "listing-42"}).Save()
	require.NoError(t, err)
	require.Len(t, ids, 1)

	select {
	case got := <-seen:
		assert.Equal(t, "listing-42", got)
	case <-time.After(5 * time.Second):
		t.Fatal("task was not executed within timeout")
	}
}

func TestEnqueueLibraryWarmup(t *testing.T) {
	warmer := &chanWarmer{done: make(chan string, 1)}
	client := newStartedClient(t, NewWarmLibraryQueue(warmer, nil, logger.Nop()))

	require.NoError(t, client.EnqueueLibraryWarmup(context.Background(), "wsmith"))

	select {
	case username := <-warmer.done:
		assert.Equal(t, "wsmith", username)
	case <-time.After(5 * time.Second):
		t.Fatal("warm-up task was not executed within timeout")
	}
}

func TestAddLibraryWarmup_ReturnsTaskID(t *testing.T) {
	client, err := NewClient(filepath.Join(t.TempDir(), "catalog.db"), DefaultConfig(), logger.Nop())
	require.NoError(t, err)
	defer client.Close()

	client.Register(NewWarmLibraryQueue(&chanWarmer{done: make(chan string, 1)}, nil, logger.Nop()))

	ctx := context.Background()
	id, err := client.AddLibraryWarmup(ctx, "jones")
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	// Workers are not started, so the task stays queued.
	status, err := client.Status(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, backlite.TaskStatusPending, status)
}

func TestTasksDBPath(t *testing.T) {
	assert.Equal(t, filepath.Join("data", "catalog-tasks.db"), TasksDBPath(filepath.Join("data", "catalog.db")))
	assert.Equal(t, "catalog-tasks", TasksDBPath("catalog"))
}

func TestWarmLibraryTaskConfig(t *testing.T) {
	cfg := WarmLibraryTask{Username: "wsmith"}.Config()

	assert.Equal(t, "warm_library", cfg.Name)
	assert.Equal(t, 2, cfg.MaxAttempts)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.NotNil(t, cfg.Retention)
}

func TestCleanupAuditEventsTaskConfig(t *testing.T) {
	cfg := CleanupAuditEventsTask{RetentionDays: 7}.Config()

	assert.Equal(t, "cleanup_audit_events", cfg.Name)
	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.Equal(t, 2*time.Minute, cfg.Timeout)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, 15*time.Minute, cfg.ReleaseAfter)
	assert.Equal(t, time.Hour, cfg.CleanupInterval)
	assert.Equal(t, 24*time.Hour, cfg.RetentionDuration)
}

func TestFromConfig(t *testing.T) {
	cfg := FromConfig(config.Tasks{Workers: 4, ReleaseAfter: time.Minute})

	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, time.Minute, cfg.ReleaseAfter)
	assert.Equal(t, time.Hour, cfg.CleanupInterval, "unset values keep defaults")
}
