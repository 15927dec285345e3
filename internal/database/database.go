package database

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/catalog/internal/entities"
)

// ErrNotFound is returned by every repository when a lookup yields nothing
// or the record is not visible to the requesting profile.
var ErrNotFound = errors.New("record not found")

var defaultListingTypes = []entities.ListingType{
	{Title: "Web Application", Description: "web applications"},
	{Title: "Widget", Description: "widget things"},
	{Title: "Desktop App", Description: "desktop app"},
	{Title: "Web Services", Description: "web services"},
	{Title: "Code Library", Description: "code library"},
}

var defaultAccessControls = []entities.AccessControl{
	{Title: "UNCLASSIFIED"},
	{Title: "CONFIDENTIAL"},
	{Title: "SECRET"},
	{Title: "TOP SECRET"},
}

type Database struct {
	DB *gorm.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	return open(dbPath, logger.Warn)
}

// NewQuietDatabase opens the database with gorm logging silenced. Used by tests and CLI commands.
func NewQuietDatabase(dbPath string) (*Database, error) {
	return open(dbPath, logger.Silent)
}

func open(dbPath string, level logger.LogLevel) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	database := &Database{DB: db}

	if err := database.seed(); err != nil {
		return nil, fmt.Errorf("failed to seed reference data: %w", err)
	}

	return database, nil
}

// Migrate creates or updates every table the service owns.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&entities.ListingType{},
		&entities.Listing{},
		&entities.AccessControl{},
		&entities.Profile{},
		&entities.LibraryEntry{},
		&entities.Notification{},
		&entities.NotificationDismissal{},
		&entities.AuditEvent{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks database connectivity.
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (d *Database) seed() error {
	for _, lt := range defaultListingTypes {
		lt := lt
		if err := d.DB.Where(entities.ListingType{Title: lt.Title}).FirstOrCreate(&lt).Error; err != nil {
			return fmt.Errorf("failed to create listing type %s: %w", lt.Title, err)
		}
	}
	for _, ac := range defaultAccessControls {
		ac := ac
		if err := d.DB.Where(entities.AccessControl{Title: ac.Title}).FirstOrCreate(&ac).Error; err != nil {
			return fmt.Errorf("failed to create access control %s: %w", ac.Title, err)
		}
	}
	return nil
}

// Translate maps gorm's record-not-found to ErrNotFound and wraps everything
// else with the operation name.
func Translate(err error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}
