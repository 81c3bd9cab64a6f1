package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mirak2305/hilfe-entreprise-backend/internal/domain/entity"
	"github.com/mirak2305/hilfe-entreprise-backend/internal/domain/repository"
)

type CompanyRepository struct {
	pool *pgxpool.Pool
}

func NewCompanyRepository(pool *pgxpool.Pool) *CompanyRepository {
	return &CompanyRepository{pool: pool}
}

const companyColumns = `id, name, country_id, status, billing_email, technical_email,
	commercial_email, created_at, updated_at`

func scanCompany(row pgx.Row) (*entity.Company, error) {
	c := &entity.Company{}
	var billing, technical, commercial *string
	if err := row.Scan(&c.ID, &c.Name, &c.CountryID, &c.Status,
		&billing, &technical, &commercial, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	if billing != nil {
		c.BillingEmail = *billing
	}
	if technical != nil {
		c.TechnicalEmail = *technical
	}
	if commercial != nil {
		c.CommercialEmail = *commercial
	}
	return c, nil
}

func (r *CompanyRepository) Create(ctx context.Context, c *entity.Company) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO companies (name, country_id, status, billing_email, technical_email, commercial_email)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''))
		RETURNING id, created_at, updated_at
	`, c.Name, c.CountryID, c.Status, c.BillingEmail, c.TechnicalEmail, c.CommercialEmail)
	return row.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *CompanyRepository) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+companyColumns+`
		FROM companies
		WHERE id = $1
	`, id)
	return scanCompany(row)
}

func (r *CompanyRepository) GetAll(ctx context.Context) ([]*entity.Company, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+companyColumns+`
		FROM companies
		ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var companies []*entity.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		companies = append(companies, c)
	}
	return companies, rows.Err()
}

var _ repository.CompanyRepository = (*CompanyRepository)(nil)
