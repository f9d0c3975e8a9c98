package subject

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"inklusi/internal/jurisdiction"
	"inklusi/pkg/domain"
)

// PostgresDirectory reads subject rows through a pgx pool. The jurisdiction
// predicate is pushed into the WHERE clause so a province-wide listing never
// transfers the national table: prefix scopes become LIKE 'code%', city
// scopes become equality, and both exclude NULL region codes.
type PostgresDirectory struct {
	pool *pgxpool.Pool
}

// NewPostgresDirectory constructs a directory over the shared pool.
func NewPostgresDirectory(pool *pgxpool.Pool) *PostgresDirectory {
	return &PostgresDirectory{pool: pool}
}

// scopeClause translates a resolved scope into SQL. The returned clause is
// scope-equivalent to Scope.Matches.
func scopeClause(scope jurisdiction.Scope, argOffset int) (string, []any) {
	switch scope.Kind() {
	case jurisdiction.ScopeProvince:
		return fmt.Sprintf("region_code IS NOT NULL AND region_code LIKE $%d", argOffset),
			[]any{scope.Code().String() + "%"}
	case jurisdiction.ScopeCity:
		return fmt.Sprintf("region_code IS NOT NULL AND region_code = $%d", argOffset),
			[]any{scope.Code().String()}
	default: // national
		return "TRUE", nil
	}
}

func (d *PostgresDirectory) ListTalents(ctx context.Context, scope jurisdiction.Scope) ([]Talent, error) {
	clause, args := scopeClause(scope, 1)
	q := `
		SELECT id, full_name, COALESCE(region_code, '')
		FROM talents
		WHERE ` + clause + `
		ORDER BY full_name`
	rows, err := d.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list talents: %w", err)
	}
	defer rows.Close()

	var out []Talent
	for rows.Next() {
		var (
			id   uuid.UUID
			name string
			code string
		)
		if err := rows.Scan(&id, &name, &code); err != nil {
			return nil, fmt.Errorf("scan talent row: %w", err)
		}
		out = append(out, Talent{
			ID:         domain.TalentID(id),
			Name:       name,
			RegionCode: domain.RegionCode(code),
		})
	}
	return out, rows.Err()
}

func (d *PostgresDirectory) ListCompanies(ctx context.Context, scope jurisdiction.Scope) ([]Company, error) {
	clause, args := scopeClause(scope, 1)
	q := `
		SELECT id, name, COALESCE(region_code, ''), is_verified
		FROM companies
		WHERE ` + clause + `
		ORDER BY name`
	rows, err := d.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	var out []Company
	for rows.Next() {
		var (
			id       uuid.UUID
			name     string
			code     string
			verified bool
		)
		if err := rows.Scan(&id, &name, &code, &verified); err != nil {
			return nil, fmt.Errorf("scan company row: %w", err)
		}
		out = append(out, Company{
			ID:         domain.CompanyID(id),
			Name:       name,
			RegionCode: domain.RegionCode(code),
			Verified:   verified,
		})
	}
	return out, rows.Err()
}
