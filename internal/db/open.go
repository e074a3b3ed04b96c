package db

import (
	"fmt"

	"gorm.io/gorm"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Open dispatches on the configured driver name. An empty driver selects
// SQLite, which keeps single-binary deployments working with no configuration.
func Open(driver string, dsn string) (*gorm.DB, error) {
	switch driver {
	case "", DriverSQLite:
		return OpenSQLite(dsn)
	case DriverPostgres:
		return OpenPostgres(dsn)
	default:
		return nil, fmt.Errorf("unsupported db driver %q", driver)
	}
}
