package http

import (
	"github.com/mrlokans/catalog/internal/auth"
	"github.com/mrlokans/catalog/internal/demo"
	"github.com/mrlokans/catalog/internal/logger"
)

// RouterConfig contains all dependencies needed to create the HTTP router.
// Optional dependencies left nil disable their routes.
type RouterConfig struct {
	// Library
	Library     LibraryReader
	Bookmarks   BookmarkCreator
	Importer    BookmarkImporter
	Reorganizer LibraryReorganizer

	AccessControl AccessControlReader

	// Optional
	Audit    AuditReader
	Tasks    TaskQueue
	Listings ListingBrowser // IWC application views

	// Authentication; nil acts as "none" mode with the default username.
	AuthMiddleware *auth.Middleware

	// Demo mode rejects writes when enabled.
	DemoMiddleware *demo.Middleware

	Database Pinger
	Version  string
	Logger   logger.Logger
}
