package request

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"inklusi/internal/verification/models"
	"inklusi/pkg/domain"
	"inklusi/pkg/platform/sentinel"
	platformtx "inklusi/pkg/platform/tx"
)

const uniqueViolation = "23505"

// PostgresStore persists verification requests in the verification_requests
// table. A partial unique index on (target_type, target_id) WHERE status =
// 'pending' backs the one-active-request rule, and resolution is a
// conditional UPDATE so only one reviewer can win.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// runner joins an ambient transaction when one is present in the context so
// the resolution write shares a commit with the institution flag flip.
func (s *PostgresStore) runner(ctx context.Context) execer {
	if tx, ok := platformtx.From(ctx); ok {
		return tx
	}
	return s.db
}

const requestColumns = `id, target_type, target_id, document_url, status, admin_notes, created_at, resolved_at, resolved_by`

func (s *PostgresStore) Create(ctx context.Context, req *models.VerificationRequest) error {
	const query = `
		INSERT INTO verification_requests (id, target_type, target_id, document_url, status, admin_notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := s.runner(ctx).ExecContext(ctx, query,
		req.ID.String(), string(req.TargetType), req.TargetID.String(),
		req.DocumentURL, string(req.Status), req.AdminNotes, req.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert verification request: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id domain.RequestID) (*models.VerificationRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM verification_requests WHERE id = $1`
	return s.scanOne(s.runner(ctx).QueryRowContext(ctx, query, id.String()))
}

func (s *PostgresStore) ResolveIfPending(ctx context.Context, id domain.RequestID, decision models.Decision, notes string, resolvedBy domain.AdminID, now time.Time) (*models.VerificationRequest, error) {
	query := `
		UPDATE verification_requests
		SET status = $2, admin_notes = $3, resolved_at = $4, resolved_by = $5
		WHERE id = $1 AND status = 'pending'
		RETURNING ` + requestColumns

	req, err := s.scanOne(s.runner(ctx).QueryRowContext(ctx, query,
		id.String(), string(decision.Status()), notes, now, resolvedBy.String()))
	if err == nil {
		return req, nil
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, err
	}

	// No pending row matched. Distinguish "never existed" from "lost the race".
	existing, findErr := s.FindByID(ctx, id)
	if findErr != nil {
		return nil, findErr
	}
	if existing.IsResolved() {
		return nil, sentinel.ErrAlreadyResolved
	}
	return nil, sentinel.ErrNotFound
}

func (s *PostgresStore) ListPending(ctx context.Context, targetType models.TargetType) ([]*models.VerificationRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM verification_requests WHERE status = 'pending'`
	args := []any{}
	if targetType != "" {
		query += ` AND target_type = $1`
		args = append(args, string(targetType))
	}
	query += ` ORDER BY created_at ASC`
	return s.scanAll(ctx, query, args...)
}

func (s *PostgresStore) ListByTarget(ctx context.Context, targetType models.TargetType, targetID domain.InstitutionID) ([]*models.VerificationRequest, error) {
	query := `SELECT ` + requestColumns + `
		FROM verification_requests
		WHERE target_type = $1 AND target_id = $2
		ORDER BY created_at DESC`
	return s.scanAll(ctx, query, string(targetType), targetID.String())
}

func (s *PostgresStore) scanAll(ctx context.Context, query string, args ...any) ([]*models.VerificationRequest, error) {
	rows, err := s.runner(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query verification requests: %w", err)
	}
	defer rows.Close()

	var out []*models.VerificationRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *PostgresStore) scanOne(row *sql.Row) (*models.VerificationRequest, error) {
	req, err := scanRequest(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	return req, err
}

func scanRequest(row rowScanner) (*models.VerificationRequest, error) {
	var (
		req                  models.VerificationRequest
		id, targetID         string
		targetType, status   string
		resolvedAt           sql.NullTime
		resolvedBy           sql.NullString
	)
	err := row.Scan(&id, &targetType, &targetID, &req.DocumentURL, &status, &req.AdminNotes, &req.CreatedAt, &resolvedAt, &resolvedBy)
	if err != nil {
		return nil, err
	}

	req.ID, err = domain.ParseRequestID(id)
	if err != nil {
		return nil, fmt.Errorf("scan verification request id: %w", err)
	}
	req.TargetID, err = domain.ParseInstitutionID(targetID)
	if err != nil {
		return nil, fmt.Errorf("scan verification target id: %w", err)
	}
	req.TargetType = models.TargetType(targetType)
	req.Status = models.Status(status)
	if resolvedAt.Valid {
		t := resolvedAt.Time
		req.ResolvedAt = &t
	}
	if resolvedBy.Valid {
		adminID, err := domain.ParseAdminID(resolvedBy.String)
		if err != nil {
			return nil, fmt.Errorf("scan resolver id: %w", err)
		}
		req.ResolvedBy = &adminID
	}
	return &req, nil
}
