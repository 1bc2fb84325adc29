package sqlite

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

func migrationProvider(cp *ConnectionPool) (*goose.Provider, error) {
	fsys, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to resolve migrations directory: %w", err)
	}
	return goose.NewProvider(goose.DialectSQLite3, cp.db, fsys)
}

// Migrate applies all pending schema migrations embedded in the binary.
func (cp *ConnectionPool) Migrate(ctx context.Context) error {
	provider, err := migrationProvider(cp)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}

	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}

// SchemaVersion reports the current schema migration version.
func (cp *ConnectionPool) SchemaVersion(ctx context.Context) (int64, error) {
	provider, err := migrationProvider(cp)
	if err != nil {
		return 0, fmt.Errorf("failed to create migration provider: %w", err)
	}

	version, err := provider.GetDBVersion(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}

	return version, nil
}
