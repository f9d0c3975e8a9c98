package rating

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"inklusi/internal/scoring/models"
	"inklusi/pkg/domain"
	"inklusi/pkg/platform/sentinel"
	platformtx "inklusi/pkg/platform/tx"
)

const uniqueViolation = "23505"

// PostgresStore persists ratings in the inclusion_ratings table. A unique
// index on (talent_id, company_id, job_id) backs the one-rating-per-
// relationship rule.
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

func (s *PostgresStore) runner(ctx context.Context) execer {
	if tx, ok := platformtx.From(ctx); ok {
		return tx
	}
	return s.db
}

const ratingColumns = `id, company_id, talent_id, job_id, accessibility, culture, management, onboarding, comment, created_at`

func (s *PostgresStore) Insert(ctx context.Context, r *models.InclusionRating) error {
	const query = `
		INSERT INTO inclusion_ratings (id, company_id, talent_id, job_id, accessibility, culture, management, onboarding, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := s.runner(ctx).ExecContext(ctx, query,
		r.ID.String(), r.CompanyID.String(), r.TalentID.String(), r.JobID.String(),
		r.Scores.Accessibility, r.Scores.Culture, r.Scores.Management, r.Scores.Onboarding,
		r.Comment, r.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert inclusion rating: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByTuple(ctx context.Context, talentID domain.TalentID, companyID domain.CompanyID, jobID domain.JobID) (*models.InclusionRating, error) {
	query := `SELECT ` + ratingColumns + `
		FROM inclusion_ratings
		WHERE talent_id = $1 AND company_id = $2 AND job_id = $3`

	r, err := scanRating(s.runner(ctx).QueryRowContext(ctx, query, talentID.String(), companyID.String(), jobID.String()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	return r, err
}

func (s *PostgresStore) ListByCompany(ctx context.Context, companyID domain.CompanyID) ([]*models.InclusionRating, error) {
	query := `SELECT ` + ratingColumns + `
		FROM inclusion_ratings
		WHERE company_id = $1
		ORDER BY created_at ASC`

	rows, err := s.runner(ctx).QueryContext(ctx, query, companyID.String())
	if err != nil {
		return nil, fmt.Errorf("query inclusion ratings: %w", err)
	}
	defer rows.Close()

	var out []*models.InclusionRating
	for rows.Next() {
		r, err := scanRating(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRating(row rowScanner) (*models.InclusionRating, error) {
	var (
		r                            models.InclusionRating
		id, companyID, talentID, jobID string
		comment                      sql.NullString
	)
	err := row.Scan(&id, &companyID, &talentID, &jobID,
		&r.Scores.Accessibility, &r.Scores.Culture, &r.Scores.Management, &r.Scores.Onboarding,
		&comment, &r.CreatedAt)
	if err != nil {
		return nil, err
	}

	if r.ID, err = domain.ParseRatingID(id); err != nil {
		return nil, fmt.Errorf("scan rating id: %w", err)
	}
	if r.CompanyID, err = domain.ParseCompanyID(companyID); err != nil {
		return nil, fmt.Errorf("scan rating company id: %w", err)
	}
	if r.TalentID, err = domain.ParseTalentID(talentID); err != nil {
		return nil, fmt.Errorf("scan rating talent id: %w", err)
	}
	if r.JobID, err = domain.ParseJobID(jobID); err != nil {
		return nil, fmt.Errorf("scan rating job id: %w", err)
	}
	r.Comment = comment.String
	return &r, nil
}
