package repository

import (
	"context"

	"github.com/mirak2305/hilfe-entreprise-backend/internal/domain/entity"
)

// UserRepository is the credential store adapter: every call delegates to the
// hosted store, shaping queries and nothing more.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByCompany(ctx context.Context, companyID string) ([]*entity.User, error)
	UpdatePasswordHash(ctx context.Context, id, hash string) error
	UpdateLastLogin(ctx context.Context, id string) error
}
