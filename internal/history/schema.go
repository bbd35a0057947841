package history

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is stored in SQLite's user_version header field.
const schemaVersion = 1

// ErrSchemaMismatch reports a ledger written with a different schema version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// migrate creates the ledger on a fresh database (user_version 0) and
// refuses any other version than schemaVersion.
func (s *Store) migrate(ctx context.Context) error {
	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	switch {
	case version == schemaVersion:
		return nil
	case version == 0:
		return s.createSchema(ctx)
	case version > schemaVersion:
		return fmt.Errorf("%w: %s has version %d, this build reads %d (upgrade ngramsubset)",
			ErrSchemaMismatch, s.path, version, schemaVersion)
	default:
		return fmt.Errorf("%w: %s has version %d, this build reads %d (delete the file to start a new history)",
			ErrSchemaMismatch, s.path, version, schemaVersion)
	}
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	// PRAGMA takes no bind parameters.
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}
	return tx.Commit()
}
