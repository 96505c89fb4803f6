package stores

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewStore creates a store for the given driver ("sqlite" or "postgres")
// and DSN. The schema is migrated on connect.
func NewStore(driver, dsn string) (Store, error) {
	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported store driver: %s", driver)
	}

	store := &GormStore{}
	if err := store.connect(dialector); err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", driver, err)
	}
	return store, nil
}

// NewSQLiteStoreDefault creates a SQLite store with default settings.
func NewSQLiteStoreDefault() (Store, error) {
	return NewStore("sqlite", "sitcon_camp.db")
}
