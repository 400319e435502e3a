package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel/codes"
)

// SQLiteBackend stores profiles as rows of the profile_kv table.
// The schema is created by db.InitializeDB.
type SQLiteBackend struct {
	db *sqlx.DB
}

// NewSQLiteBackend creates a SQLite-based Backend.
func NewSQLiteBackend(db *sqlx.DB) *SQLiteBackend {
	return &SQLiteBackend{db: db}
}

// ForProfile returns the row-backed namespace of profileID.
func (b *SQLiteBackend) ForProfile(profileID string) KV {
	return &sqliteKV{db: b.db, profileID: profileID}
}

type kvRow struct {
	Key   string `db:"field"`
	Value string `db:"value"`
}

type sqliteKV struct {
	db        *sqlx.DB
	profileID string
}

func (s *sqliteKV) GetAll(ctx context.Context) (map[string]string, error) {
	ctx, span := tracer.Start(ctx, "SQLiteBackend.GetAll")
	defer span.End()

	var rows []kvRow
	query := `SELECT field, value FROM profile_kv WHERE profile_id = ?`
	if err := s.db.SelectContext(ctx, &rows, query, s.profileID); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to read profile rows")
		return nil, fmt.Errorf("failed to get profile rows: %w", err)
	}

	out := make(map[string]string, len(rows))
	for _, row := range rows {
		out[row.Key] = row.Value
	}
	return out, nil
}

func (s *sqliteKV) SetAll(ctx context.Context, values map[string]string) error {
	ctx, span := tracer.Start(ctx, "SQLiteBackend.SetAll")
	defer span.End()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to begin transaction")
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	query := `INSERT INTO profile_kv (profile_id, field, value) VALUES (?, ?, ?)
		ON CONFLICT(profile_id, field) DO UPDATE SET value = excluded.value`
	for k, v := range values {
		if _, err := tx.ExecContext(ctx, query, s.profileID, k, v); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "Failed to upsert profile row")
			return fmt.Errorf("failed to save profile key %s: %w", k, err)
		}
	}

	if err := tx.Commit(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to commit transaction")
		return fmt.Errorf("failed to commit profile: %w", err)
	}
	return nil
}
