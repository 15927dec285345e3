// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - ListingFinder: Listing lookup with visibility rules (internal/library/ports.go)
//   - ProfileFinder: Profile lookup by username (internal/library/ports.go)
//   - NotificationStore: Peer bookmark notifications (internal/library/ports.go)
//   - EntryStore: Library entries, reads and batch updates (internal/library/ports.go)
//   - Source: Access control levels (internal/accesscontrol/readcache.go)
//   - ProfileStore: Token lookup for authentication (internal/auth/service.go)
//
// ## Cache Interfaces
//
//   - Store: Byte-oriented cache backend, memory or redis (internal/cache/store.go)
//   - Invalidator: Reacts to library writes (internal/library/invalidator.go)
//
// ## Background Work Interfaces
//
//   - Warmer: Schedules a library warm-up (internal/library/invalidator.go)
//   - LibraryWarmer: Performs the warm-up (internal/tasks/warm_library.go)
//   - Enqueuer: Cron-driven maintenance (internal/scheduler/maintenance.go)
//   - Recorder, MaintenanceRecorder: Audit trail sinks
//
// ## HTTP Interfaces
//
// Controllers depend on narrow interfaces declared in internal/http/stores.go.
//
// # Adding a New Cache Backend
//
//  1. Implement cache.Store in internal/cache/
//
//     type MemcachedStore struct { client *memcache.Client }
//
//     func (s *MemcachedStore) Get(ctx context.Context, key string) ([]byte, error)
//
//     var _ cache.Store = (*MemcachedStore)(nil)
//
//  2. Add the backend name to cache.New and to CACHE_BACKEND validation
//
// # Adding a New Database Domain
//
//  1. Create sub-package: internal/database/<domain>/
//
//  2. Define repository:
//
//     type Repository struct { db *gorm.DB }
//
//     func NewRepository(db *gorm.DB) *Repository
//
//  3. Add compile-time check in checks.go
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for the full list.
package interfaces
