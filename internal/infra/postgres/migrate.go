package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// RunMigrations applies all up migrations from the given directory.
func RunMigrations(dsn, dir string) error {
	// The pgx/v5 migrate driver registers itself under the pgx5 scheme.
	migrateDSN := dsn
	if strings.HasPrefix(migrateDSN, "postgres://") {
		migrateDSN = "pgx5://" + strings.TrimPrefix(migrateDSN, "postgres://")
	} else if strings.HasPrefix(migrateDSN, "postgresql://") {
		migrateDSN = "pgx5://" + strings.TrimPrefix(migrateDSN, "postgresql://")
	}

	m, err := migrate.New("file://"+dir, migrateDSN)
	if err != nil {
		return fmt.Errorf("init migrations: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}
