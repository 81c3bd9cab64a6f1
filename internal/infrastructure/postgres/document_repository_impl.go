package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mirak2305/hilfe-entreprise-backend/internal/domain/entity"
	"github.com/mirak2305/hilfe-entreprise-backend/internal/domain/repository"
)

type DocumentRepository struct {
	pool *pgxpool.Pool
}

func NewDocumentRepository(pool *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{pool: pool}
}

func (r *DocumentRepository) Create(ctx context.Context, d *entity.Document) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO company_documents (company_id, name, content_type, url, uploaded_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, d.CompanyID, d.Name, d.ContentType, d.URL, d.UploadedBy)
	return row.Scan(&d.ID, &d.CreatedAt)
}

func (r *DocumentRepository) GetByCompany(ctx context.Context, companyID string) ([]*entity.Document, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, company_id, name, content_type, url, uploaded_by, created_at
		FROM company_documents
		WHERE company_id = $1
		ORDER BY created_at
	`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*entity.Document
	for rows.Next() {
		d := &entity.Document{}
		if err := rows.Scan(&d.ID, &d.CompanyID, &d.Name, &d.ContentType, &d.URL,
			&d.UploadedBy, &d.CreatedAt); err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

var _ repository.DocumentRepository = (*DocumentRepository)(nil)
