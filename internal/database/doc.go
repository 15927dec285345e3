// Package database provides the data access layer for the catalog library service.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, migrations, reference data seeding
//	├── library/         # Library entry (bookmark) persistence and filtered reads
//	├── listings/        # Listing lookups with visibility rules
//	├── profiles/        # Profile lookups and API tokens
//	├── notifications/   # Notification lookup and dismissal
//	├── accesscontrol/   # Access control levels
//	└── audit/           # Audit trail
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type with domain-specific operations:
//
//	db, err := database.NewDatabase("./catalog.db")
//
//	entries := library.NewRepository(db.DB)
//	listingsRepo := listings.NewRepository(db.DB)
//
//	entry, err := entries.GetByID(ctx, 12)
//	listing, err := listingsRepo.GetListingByID(ctx, "bigbrother", 3)
//
// # Not Found
//
// Every repository reports missing (or invisible) records with an error
// wrapping ErrNotFound, so callers can use errors.Is(err, database.ErrNotFound)
// without depending on gorm.
//
// # Adding a New Domain
//
//  1. Create a new sub-package: internal/database/<domain>/
//  2. Define a Repository struct with a *gorm.DB field
//  3. Add NewRepository(db *gorm.DB) constructor
//  4. Implement the required interface
//  5. Add compile-time interface check in internal/interfaces/checks.go
package database
