package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mirak2305/hilfe-entreprise-backend/internal/domain/entity"
	"github.com/mirak2305/hilfe-entreprise-backend/internal/domain/repository"
)

type CountryRepository struct {
	pool *pgxpool.Pool
}

func NewCountryRepository(pool *pgxpool.Pool) *CountryRepository {
	return &CountryRepository{pool: pool}
}

func (r *CountryRepository) GetAll(ctx context.Context) ([]*entity.Country, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, code, created_at
		FROM countries
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var countries []*entity.Country
	for rows.Next() {
		c := &entity.Country{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Code, &c.CreatedAt); err != nil {
			return nil, err
		}
		countries = append(countries, c)
	}
	return countries, rows.Err()
}

var _ repository.CountryRepository = (*CountryRepository)(nil)
