package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/catalog/internal/accesscontrol"
	"github.com/mrlokans/catalog/internal/audit"
	"github.com/mrlokans/catalog/internal/auth"
	"github.com/mrlokans/catalog/internal/cache"
	"github.com/mrlokans/catalog/internal/database"
	acrepo "github.com/mrlokans/catalog/internal/database/accesscontrol"
	librarydb "github.com/mrlokans/catalog/internal/database/library"
	"github.com/mrlokans/catalog/internal/database/listings"
	"github.com/mrlokans/catalog/internal/database/notifications"
	"github.com/mrlokans/catalog/internal/database/profiles"
	"github.com/mrlokans/catalog/internal/http"
	"github.com/mrlokans/catalog/internal/library"
	"github.com/mrlokans/catalog/internal/scheduler"
	"github.com/mrlokans/catalog/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

var _ library.EntryStore = (*librarydb.Repository)(nil)
var _ library.ListingFinder = (*listings.Repository)(nil)
var _ library.ProfileFinder = (*profiles.Repository)(nil)
var _ library.NotificationStore = (*notifications.Repository)(nil)
var _ accesscontrol.Source = (*acrepo.Repository)(nil)
var _ auth.ProfileStore = (*profiles.Repository)(nil)
var _ http.Pinger = (*database.Database)(nil)
var _ http.ListingBrowser = (*listings.Repository)(nil)

// =============================================================================
// Cache
// =============================================================================

var _ cache.Store = (*cache.MemoryStore)(nil)
var _ cache.Store = (*cache.RedisStore)(nil)

var _ library.Invalidator = library.KeepCached{}
var _ library.Invalidator = (*library.PurgeOnWrite)(nil)

// Cached reads
var _ http.LibraryReader = (*library.ReadCache)(nil)
var _ http.AccessControlReader = (*accesscontrol.ReadCache)(nil)
var _ tasks.LibraryWarmer = (*library.ReadCache)(nil)

// =============================================================================
// Library Writes
// =============================================================================

var _ http.BookmarkCreator = (*library.EntryFactory)(nil)
var _ http.BookmarkImporter = (*library.Importer)(nil)
var _ http.LibraryReorganizer = (*library.Reorganizer)(nil)

// =============================================================================
// Audit & Background Work
// =============================================================================

var _ library.Recorder = (*audit.Service)(nil)
var _ http.AuditReader = (*audit.Service)(nil)
var _ tasks.MaintenanceRecorder = (*audit.Service)(nil)
var _ tasks.AuditEventCleaner = (*audit.Service)(nil)

var _ library.Warmer = (*tasks.Client)(nil)
var _ http.TaskQueue = (*tasks.Client)(nil)
var _ scheduler.Enqueuer = (*tasks.Client)(nil)
