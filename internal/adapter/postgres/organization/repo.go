// Package organization implements the Organization repository using PostgreSQL.
package organization

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/aidflow/fundflow-backend/internal/adapter/postgres"
	"github.com/aidflow/fundflow-backend/internal/domain"
)

const table = "organizations"

var columns = []string{
	"id", "wallet_address", "name", "email", "description", "verified", "created_at", "updated_at",
}

// Repo provides organization persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new organization repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	ID          uuid.UUID `db:"id"`
	Wallet      string    `db:"wallet_address"`
	Name        string    `db:"name"`
	Email       *string   `db:"email"`
	Description *string   `db:"description"`
	Verified    bool      `db:"verified"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (r row) toDomain() domain.Organization {
	return domain.Organization{
		ID:          r.ID,
		Wallet:      r.Wallet,
		Name:        r.Name,
		Email:       r.Email,
		Description: r.Description,
		Verified:    r.Verified,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// Create inserts an organization. A duplicate wallet maps to domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, org domain.Organization) (domain.Organization, error) {
	query, args, err := postgres.Builder().
		Insert(table).
		Columns(columns...).
		Values(org.ID, org.Wallet, org.Name, org.Email, org.Description, org.Verified, org.CreatedAt, org.UpdatedAt).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return domain.Organization{}, fmt.Errorf("build insert organization: %w", err)
	}

	var out row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, query, args...); err != nil {
		return domain.Organization{}, postgres.MapError(err, "organization", org.ID)
	}
	return out.toDomain(), nil
}

func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.Organization, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, id)
}

func (r *Repo) GetByWallet(ctx context.Context, wallet string) (domain.Organization, error) {
	return r.getOne(ctx, squirrel.Eq{"wallet_address": wallet}, wallet)
}

func (r *Repo) getOne(ctx context.Context, where squirrel.Eq, id any) (domain.Organization, error) {
	query, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(where).
		ToSql()
	if err != nil {
		return domain.Organization{}, fmt.Errorf("build select organization: %w", err)
	}

	var out row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, query, args...); err != nil {
		return domain.Organization{}, postgres.MapError(err, "organization", id)
	}
	return out.toDomain(), nil
}

// List returns organizations newest first together with the unpaged total.
func (r *Repo) List(ctx context.Context, limit, offset int) ([]domain.Organization, int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var total int
	if err := q.QueryRow(ctx, "SELECT count(*) FROM "+table).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count organizations: %w", err)
	}

	query, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list organizations: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, q, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list organizations: %w", err)
	}

	orgs := make([]domain.Organization, len(rows))
	for i, rw := range rows {
		orgs[i] = rw.toDomain()
	}
	return orgs, total, nil
}

// Update writes the mutable fields of org.
func (r *Repo) Update(ctx context.Context, org domain.Organization) (domain.Organization, error) {
	query, args, err := postgres.Builder().
		Update(table).
		Set("name", org.Name).
		Set("email", org.Email).
		Set("description", org.Description).
		Set("verified", org.Verified).
		Set("updated_at", org.UpdatedAt).
		Where(squirrel.Eq{"id": org.ID}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return domain.Organization{}, fmt.Errorf("build update organization: %w", err)
	}

	var out row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, query, args...); err != nil {
		return domain.Organization{}, postgres.MapError(err, "organization", org.ID)
	}
	return out.toDomain(), nil
}
