package library

import (
	"context"
	"sync"
	"testing"

	"gorm.io/gorm"

	"github.com/mrlokans/catalog/internal/cache"
	"github.com/mrlokans/catalog/internal/database/dbtest"
	librarydb "github.com/mrlokans/catalog/internal/database/library"
	"github.com/mrlokans/catalog/internal/database/listings"
	"github.com/mrlokans/catalog/internal/database/notifications"
	"github.com/mrlokans/catalog/internal/database/profiles"
	"github.com/mrlokans/catalog/internal/entities"
	"github.com/mrlokans/catalog/internal/logger"
)

// countingEntries counts the read queries that reach the database.
type countingEntries struct {
	*librarydb.Repository
	mu          sync.Mutex
	listActive  int
	getActive   int
	listSelf    int
	applyCalled int
}

func (c *countingEntries) ListActive(ctx context.Context) ([]entities.LibraryEntry, error) {
	c.mu.Lock()
	c.listActive++
	c.mu.Unlock()
	return c.Repository.ListActive(ctx)
}

func (c *countingEntries) GetActiveByID(ctx context.Context, id uint) (*entities.LibraryEntry, error) {
	c.mu.Lock()
	c.getActive++
	c.mu.Unlock()
	return c.Repository.GetActiveByID(ctx, id)
}

func (c *countingEntries) ListSelf(ctx context.Context, username string, filter librarydb.SelfFilter) ([]entities.LibraryEntry, error) {
	c.mu.Lock()
	c.listSelf++
	c.mu.Unlock()
	return c.Repository.ListSelf(ctx, username, filter)
}

func (c *countingEntries) ApplyUpdates(ctx context.Context, username string, updates []entities.LibraryEntryUpdate) error {
	c.mu.Lock()
	c.applyCalled++
	c.mu.Unlock()
	return c.Repository.ApplyUpdates(ctx, username, updates)
}

// countingNotifications counts dismissals.
type countingNotifications struct {
	*notifications.Repository
	dismissed int
}

func (c *countingNotifications) DismissNotification(ctx context.Context, n *entities.Notification, username string) error {
	c.dismissed++
	return c.Repository.DismissNotification(ctx, n, username)
}

type recordedImport struct {
	username            string
	notificationID      uint
	requested, imported int
	problems            []string
}

type recordedUpdate struct {
	username string
	entries  int
	problems []string
	err      error
}

type spyRecorder struct {
	mu      sync.Mutex
	created []uint
	imports []recordedImport
	updates []recordedUpdate
}

func (s *spyRecorder) RecordBookmarkCreate(_ string, entry *entities.LibraryEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.created = append(s.created, entry.ID)
}

func (s *spyRecorder) RecordBookmarkImport(username string, notificationID uint, requested, imported int, problems []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.imports = append(s.imports, recordedImport{username, notificationID, requested, imported, problems})
}

func (s *spyRecorder) RecordLibraryUpdate(username string, entries int, problems []string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updates = append(s.updates, recordedUpdate{username, entries, problems, err})
}

type testEnv struct {
	db            *gorm.DB
	fx            *dbtest.Fixtures
	store         *cache.MemoryStore
	entries       *countingEntries
	listings      *listings.Repository
	profiles      *profiles.Repository
	notifications *countingNotifications
	recorder      *spyRecorder
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := dbtest.Open(t)
	return &testEnv{
		db:            db.DB,
		fx:            dbtest.NewFixtures(t, db.DB),
		store:         cache.NewMemoryStore(0),
		entries:       &countingEntries{Repository: librarydb.NewRepository(db.DB)},
		listings:      listings.NewRepository(db.DB),
		profiles:      profiles.NewRepository(db.DB),
		notifications: &countingNotifications{Repository: notifications.NewRepository(db.DB)},
		recorder:      &spyRecorder{},
	}
}

func (e *testEnv) readCache() *ReadCache {
	return NewReadCache(e.store, e.entries, logger.Nop())
}

func (e *testEnv) factory(opts ...Option) *EntryFactory {
	opts = append([]Option{WithRecorder(e.recorder)}, opts...)
	return NewEntryFactory(e.listings, e.profiles, e.entries, logger.Nop(), opts...)
}

func (e *testEnv) importer(opts ...Option) *Importer {
	return NewImporter(e.factory(opts...), e.notifications, logger.Nop())
}

func (e *testEnv) reorganizer(opts ...Option) *Reorganizer {
	opts = append([]Option{WithRecorder(e.recorder)}, opts...)
	return NewReorganizer(e.listings, e.entries, opts...)
}

func (e *testEnv) entry(t *testing.T, id uint) entities.LibraryEntry {
	t.Helper()
	var entry entities.LibraryEntry
	if err := e.db.First(&entry, id).Error; err != nil {
		t.Fatalf("load entry %d: %v", id, err)
	}
	return entry
}

func (e *testEnv) countEntries(t *testing.T) int64 {
	t.Helper()
	var count int64
	if err := e.db.Model(&entities.LibraryEntry{}).Count(&count).Error; err != nil {
		t.Fatalf("count entries: %v", err)
	}
	return count
}
