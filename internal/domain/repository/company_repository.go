package repository

import (
	"context"

	"github.com/mirak2305/hilfe-entreprise-backend/internal/domain/entity"
)

type CompanyRepository interface {
	Create(ctx context.Context, c *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	GetAll(ctx context.Context) ([]*entity.Company, error)
}

type CountryRepository interface {
	GetAll(ctx context.Context) ([]*entity.Country, error)
}

type DocumentRepository interface {
	Create(ctx context.Context, d *entity.Document) error
	GetByCompany(ctx context.Context, companyID string) ([]*entity.Document, error)
}
