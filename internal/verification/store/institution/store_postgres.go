package institution

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"inklusi/internal/verification/models"
	"inklusi/pkg/domain"
	"inklusi/pkg/platform/sentinel"
	platformtx "inklusi/pkg/platform/tx"
)

// PostgresStore flips verification flags on the institutions table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *PostgresStore) runner(ctx context.Context) execer {
	if tx, ok := platformtx.From(ctx); ok {
		return tx
	}
	return s.db
}

func (s *PostgresStore) Exists(ctx context.Context, targetType models.TargetType, id domain.InstitutionID) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM institutions WHERE kind = $1 AND id = $2)`

	var exists bool
	err := s.runner(ctx).QueryRowContext(ctx, query, string(targetType), id.String()).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check institution: %w", err)
	}
	return exists, nil
}

// MarkVerified sets is_verified and verification_status together. It runs in
// the caller's transaction so the flag and the request resolution commit as
// one unit.
func (s *PostgresStore) MarkVerified(ctx context.Context, targetType models.TargetType, id domain.InstitutionID, now time.Time) error {
	const query = `
		UPDATE institutions
		SET is_verified = TRUE, verification_status = 'verified', verified_at = $3
		WHERE kind = $1 AND id = $2`

	res, err := s.runner(ctx).ExecContext(ctx, query, string(targetType), id.String(), now)
	if err != nil {
		return fmt.Errorf("mark institution verified: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark institution verified: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
