package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mirak2305/hilfe-entreprise-backend/internal/domain/entity"
	"github.com/mirak2305/hilfe-entreprise-backend/internal/domain/repository"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, company_id, hr_id, email, password_hash, first_name, last_name,
	phone, phone_country_code, role, status, created_at, last_login`

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	var companyID, passwordHash, phone, phoneCC *string
	if err := row.Scan(&u.ID, &companyID, &u.HRID, &u.Email, &passwordHash,
		&u.FirstName, &u.LastName, &phone, &phoneCC,
		&u.Role, &u.Status, &u.CreatedAt, &u.LastLogin); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	if companyID != nil {
		u.CompanyID = *companyID
	}
	if passwordHash != nil {
		u.PasswordHash = *passwordHash
	}
	if phone != nil {
		u.Phone = *phone
	}
	if phoneCC != nil {
		u.PhoneCountryCode = *phoneCC
	}
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (company_id, hr_id, email, password_hash, first_name, last_name,
			phone, phone_country_code, role, status)
		VALUES (NULLIF($1, ''), $2, lower($3), NULLIF($4, ''), $5, $6, NULLIF($7, ''), NULLIF($8, ''), $9, $10)
		RETURNING id, created_at
	`, u.CompanyID, u.HRID, u.Email, u.PasswordHash, u.FirstName, u.LastName,
		u.Phone, u.PhoneCountryCode, u.Role, u.Status)
	return row.Scan(&u.ID, &u.CreatedAt)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, id)
	return scanUser(row)
}

// GetByEmail looks users up case-insensitively; emails are stored lowercased.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE email = lower($1)
	`, strings.TrimSpace(email))
	return scanUser(row)
}

func (r *UserRepository) GetByCompany(ctx context.Context, companyID string) ([]*entity.User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE company_id = $1
		ORDER BY created_at
	`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepository) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users SET password_hash = $1 WHERE id = $2
	`, hash, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users SET last_login = now() WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
