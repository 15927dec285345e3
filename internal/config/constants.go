package config

const (
	// DefaultDatabasePath is the default path for the catalog database
	DefaultDatabasePath = "./catalog.db"

	// DefaultUsername is the profile every request acts as when auth is disabled
	DefaultUsername = "admin"
)
