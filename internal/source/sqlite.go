package source

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "modernc.org/sqlite"

	"ngramsubset/internal/language"
	"ngramsubset/internal/ngrams"
)

// loadSQLiteBytes reads a database either directly from path or, when the
// file was compressed, from a temporary copy of the decompressed bytes.
func loadSQLiteBytes(ctx context.Context, ds *Dataset, path string, direct bool, data []byte) error {
	dbPath := path
	if !direct {
		tmp, err := os.CreateTemp("", "ngramsubset-*.db")
		if err != nil {
			return fmt.Errorf("create temp database: %w", err)
		}
		dbPath = tmp.Name()
		defer os.Remove(dbPath)
		if _, err := tmp.Write(data); err != nil {
			_ = tmp.Close()
			return fmt.Errorf("write temp database: %w", err)
		}
		if err := tmp.Close(); err != nil {
			return fmt.Errorf("write temp database: %w", err)
		}
	}
	return loadSQLite(ctx, ds, dbPath)
}

func loadSQLite(ctx context.Context, ds *Dataset, path string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open sqlite db: %w", err)
	}
	defer db.Close()
	if _, err := db.ExecContext(ctx, "PRAGMA query_only = ON"); err != nil {
		return fmt.Errorf("apply pragma: %w", err)
	}

	table, err := readNgrams(ctx, db)
	if err != nil {
		return err
	}
	ds.Table = table

	hasLanguages, err := tableExists(ctx, db, "languages")
	if err != nil {
		return err
	}
	if hasLanguages {
		codes, err := readLanguages(ctx, db)
		if err != nil {
			return err
		}
		if len(codes) > 0 {
			catalog, err := language.NewCatalog(codes)
			if err != nil {
				return err
			}
			ds.Catalog = catalog
		}
	}
	return nil
}

func tableExists(ctx context.Context, db *sql.DB, name string) (bool, error) {
	var count int
	err := db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name=?", name,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check %s table: %w", name, err)
	}
	return count > 0, nil
}

func readNgrams(ctx context.Context, db *sql.DB) (ngrams.Table, error) {
	rows, err := db.QueryContext(ctx, "SELECT ngram, language_id, frequency FROM ngrams")
	if err != nil {
		return nil, fmt.Errorf("query ngrams: %w", err)
	}
	defer rows.Close()

	table := make(ngrams.Table)
	for rows.Next() {
		var (
			key  string
			id   int
			freq float64
		)
		if err := rows.Scan(&key, &id, &freq); err != nil {
			return nil, fmt.Errorf("scan ngram: %w", err)
		}
		if id < 0 {
			return nil, fmt.Errorf("ngram %q: negative language id %d", key, id)
		}
		row, ok := table[key]
		if !ok {
			row = make(ngrams.Row)
			table[key] = row
		}
		row[id] = freq
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ngrams: %w", err)
	}
	return table, nil
}

func readLanguages(ctx context.Context, db *sql.DB) (map[int]string, error) {
	rows, err := db.QueryContext(ctx, "SELECT id, code FROM languages")
	if err != nil {
		return nil, fmt.Errorf("query languages: %w", err)
	}
	defer rows.Close()

	codes := make(map[int]string)
	for rows.Next() {
		var (
			id   int
			code string
		)
		if err := rows.Scan(&id, &code); err != nil {
			return nil, fmt.Errorf("scan language: %w", err)
		}
		codes[id] = code
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate languages: %w", err)
	}
	return codes, nil
}
