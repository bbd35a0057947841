package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Record is one exported artifact.
type Record struct {
	ID         string    `json:"id"`
	RequestID  string    `json:"request_id,omitempty"`
	Filename   string    `json:"filename"`
	FormatTag  string    `json:"format_tag"`
	Languages  []string  `json:"languages"`
	SubsetSize int       `json:"subset_size"`
	Ngrams     int       `json:"ngrams"`
	Bytes      int       `json:"bytes"`
	Sink       string    `json:"sink"`
	Location   string    `json:"location,omitempty"`
	Delivered  bool      `json:"delivered"`
	CreatedAt  time.Time `json:"created_at"`
}

// timestampLayout is fixed width so created_at sorts lexically.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

const recordColumns = "id, request_id, filename, format_tag, languages, subset_size, ngram_count, byte_size, sink, location, delivered, created_at"

// Insert appends rec to the ledger, assigning an ID and timestamp when
// missing.
func (s *Store) Insert(ctx context.Context, rec *Record) error {
	if rec == nil {
		return errors.New("record is nil")
	}
	if strings.TrimSpace(rec.Filename) == "" {
		return errors.New("record filename is required")
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	rec.CreatedAt = rec.CreatedAt.UTC()

	if _, err := s.execWithRetry(ctx,
		`INSERT INTO exports (`+recordColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		nullableString(rec.RequestID),
		rec.Filename,
		rec.FormatTag,
		strings.Join(rec.Languages, ","),
		rec.SubsetSize,
		rec.Ngrams,
		rec.Bytes,
		rec.Sink,
		nullableString(rec.Location),
		boolToInt(rec.Delivered),
		rec.CreatedAt.Format(timestampLayout),
	); err != nil {
		return fmt.Errorf("insert export record: %w", err)
	}
	return nil
}

// Get fetches a record by ID. It returns nil when the ID is unknown.
func (s *Store) Get(ctx context.Context, id string) (*Record, error) {
	row := s.db.QueryRowContext(ensureContext(ctx), `SELECT `+recordColumns+` FROM exports WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get export record: %w", err)
	}
	return rec, nil
}

// List returns the most recent records first. limit <= 0 returns all.
func (s *Store) List(ctx context.Context, limit int) ([]*Record, error) {
	query := `SELECT ` + recordColumns + ` FROM exports ORDER BY created_at DESC, rowid DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ensureContext(ctx), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list export records: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ensureContext(ctx), `SELECT COUNT(1) FROM exports`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count export records: %w", err)
	}
	return n, nil
}

// Clear removes every record.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.execWithRetry(ctx, `DELETE FROM exports`)
	if err != nil {
		return 0, fmt.Errorf("clear history: %w", err)
	}
	return res.RowsAffected()
}

func scanRecord(scanner interface{ Scan(dest ...any) error }) (*Record, error) {
	var (
		rec        Record
		requestID  sql.NullString
		languages  string
		location   sql.NullString
		delivered  int64
		createdRaw string
	)
	if err := scanner.Scan(
		&rec.ID,
		&requestID,
		&rec.Filename,
		&rec.FormatTag,
		&languages,
		&rec.SubsetSize,
		&rec.Ngrams,
		&rec.Bytes,
		&rec.Sink,
		&location,
		&delivered,
		&createdRaw,
	); err != nil {
		return nil, err
	}
	rec.RequestID = requestID.String
	rec.Location = location.String
	rec.Delivered = delivered != 0
	if languages != "" {
		rec.Languages = strings.Split(languages, ",")
	}
	created, err := time.Parse(timestampLayout, createdRaw)
	if err != nil {
		return nil, fmt.Errorf("parse created_at %q: %w", createdRaw, err)
	}
	rec.CreatedAt = created
	return &rec, nil
}

func nullableString(value string) sql.NullString {
	if value == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
