package whitelist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"inklusi/internal/accessgate/models"
	"inklusi/pkg/domain"
	"inklusi/pkg/platform/sentinel"
)

// uniqueViolation is the Postgres error code for unique constraint failures.
const uniqueViolation = "23505"

// PostgresStore persists whitelist entries in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed whitelist store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) CreateIfEmailFree(ctx context.Context, entry *models.WhitelistEntry) error {
	const q = `
		INSERT INTO admin_whitelist (id, email, name, access_level, active, invite_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := s.db.ExecContext(ctx, q,
		uuid.UUID(entry.ID), entry.Email, entry.Name, string(entry.AccessLevel),
		entry.Active, entry.InviteHash, entry.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return fmt.Errorf("whitelist e-mail taken: %w", sentinel.ErrConflict)
		}
		return fmt.Errorf("insert whitelist entry: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (*models.WhitelistEntry, error) {
	const q = `
		SELECT id, email, name, access_level, active, invite_hash, created_at, activated_at
		FROM admin_whitelist
		WHERE email = $1`
	return s.scanOne(s.db.QueryRowContext(ctx, q, email))
}

func (s *PostgresStore) Update(ctx context.Context, entry *models.WhitelistEntry) error {
	const q = `
		UPDATE admin_whitelist
		SET name = $2, access_level = $3, active = $4, invite_hash = $5, activated_at = $6
		WHERE email = $1`
	res, err := s.db.ExecContext(ctx, q,
		entry.Email, entry.Name, string(entry.AccessLevel),
		entry.Active, entry.InviteHash, nullTime(entry.ActivatedAt),
	)
	if err != nil {
		return fmt.Errorf("update whitelist entry: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("whitelist entry not found: %w", sentinel.ErrNotFound)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, email string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM admin_whitelist WHERE email = $1`, email)
	if err != nil {
		return fmt.Errorf("delete whitelist entry: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("whitelist entry not found: %w", sentinel.ErrNotFound)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context) ([]*models.WhitelistEntry, error) {
	const q = `
		SELECT id, email, name, access_level, active, invite_hash, created_at, activated_at
		FROM admin_whitelist
		ORDER BY created_at`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list whitelist entries: %w", err)
	}
	defer rows.Close()

	var out []*models.WhitelistEntry
	for rows.Next() {
		entry, err := s.scanRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

func (s *PostgresStore) CountActiveAdmins(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM admin_whitelist WHERE active AND access_level = 'admin'`,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count active admins: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *PostgresStore) scanOne(row *sql.Row) (*models.WhitelistEntry, error) {
	entry, err := s.scanRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("whitelist entry not found: %w", sentinel.ErrNotFound)
	}
	return entry, err
}

func (s *PostgresStore) scanRow(row rowScanner) (*models.WhitelistEntry, error) {
	var (
		id          uuid.UUID
		entry       models.WhitelistEntry
		level       string
		inviteHash  sql.NullString
		activatedAt sql.NullTime
	)
	if err := row.Scan(&id, &entry.Email, &entry.Name, &level, &entry.Active,
		&inviteHash, &entry.CreatedAt, &activatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan whitelist entry: %w", err)
	}
	entry.ID = domain.AdminID(id)
	entry.AccessLevel = models.AccessLevel(level)
	entry.InviteHash = inviteHash.String
	if activatedAt.Valid {
		t := activatedAt.Time
		entry.ActivatedAt = &t
	}
	return &entry, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
