package application

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirak2305/hilfe-entreprise-backend/internal/domain/entity"
	"github.com/mirak2305/hilfe-entreprise-backend/internal/domain/repository"
	"github.com/mirak2305/hilfe-entreprise-backend/pkg/helpers"
	"github.com/mirak2305/hilfe-entreprise-backend/pkg/mailer"
)

type memCompanyRepo struct {
	mu sync.Mutex
	m  map[string]*entity.Company
}

func (r *memCompanyRepo) Create(ctx context.Context, c *entity.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.m == nil {
		r.m = map[string]*entity.Company{}
	}
	c.ID = "comp-1"
	r.m[c.ID] = c
	return nil
}

func (r *memCompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.m[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (r *memCompanyRepo) GetAll(ctx context.Context) ([]*entity.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Company
	for _, c := range r.m {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

type capturedJobs struct {
	mu   sync.Mutex
	jobs []mailer.EmailJob
}

func (p *capturedJobs) PublishJSON(ctx context.Context, body any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if j, ok := body.(mailer.EmailJob); ok {
		p.jobs = append(p.jobs, j)
	}
	return nil
}

func superAdmin() *entity.User {
	return &entity.User{ID: "sa-1", Role: entity.RoleSuperAdmin, Status: entity.StatusActive}
}

func companyAdmin(companyID string) *entity.User {
	return &entity.User{ID: "ca-1", CompanyID: companyID, Role: entity.RoleCompanyAdmin, Status: entity.StatusActive}
}

func newAdminService(users repository.UserRepository, pub EmailPublisher) *AdminService {
	return NewAdminService(users, &memCompanyRepo{}, nil, nil, pub, nil, "", nil, "",
		nil, "https://app.example.com", true)
}

func TestCreateUserEmailsTempPassword(t *testing.T) {
	users := newMemUserRepo()
	pub := &capturedJobs{}
	svc := newAdminService(users, pub)

	u, err := svc.CreateUser(context.Background(), superAdmin(), CreateUserInput{
		CompanyID: "c-1",
		HRID:      "HR-42",
		Email:     "New.User@X.com",
		FirstName: "Nina",
		LastName:  "Bauer",
	})
	require.NoError(t, err)

	assert.Equal(t, "new.user@x.com", u.Email)
	assert.Equal(t, entity.RoleUser, u.Role)
	assert.Equal(t, entity.StatusActive, u.Status)
	assert.NotEmpty(t, u.PasswordHash)

	require.Len(t, pub.jobs, 1)
	job := pub.jobs[0]
	assert.Equal(t, "new.user@x.com", job.To)
	assert.Equal(t, mailer.TemplateTempPassword, job.Template)

	// The emailed temporary password must verify against the stored hash.
	tempPassword, _ := job.Data["Password"].(string)
	require.NotEmpty(t, tempPassword)
	assert.True(t, helpers.CompareHashAndPassword(u.PasswordHash, tempPassword))
}

func TestCreateUserScopedToOwnCompany(t *testing.T) {
	users := newMemUserRepo()
	svc := newAdminService(users, &capturedJobs{})

	_, err := svc.CreateUser(context.Background(), companyAdmin("c-1"), CreateUserInput{
		CompanyID: "c-2",
		Email:     "x@y.com",
		FirstName: "A",
		LastName:  "B",
	})
	assert.ErrorIs(t, err, ErrForbiddenScope)

	_, err = svc.CreateUser(context.Background(), companyAdmin("c-1"), CreateUserInput{
		CompanyID: "c-1",
		Email:     "x@y.com",
		FirstName: "A",
		LastName:  "B",
	})
	assert.NoError(t, err)
}

func TestGetCompanyUsersScope(t *testing.T) {
	users := newMemUserRepo()
	users.add(&entity.User{ID: "u-10", CompanyID: "c-1", Email: "one@x.com", Role: entity.RoleUser, Status: entity.StatusActive})
	users.add(&entity.User{ID: "u-11", CompanyID: "c-2", Email: "two@x.com", Role: entity.RoleUser, Status: entity.StatusActive})
	svc := newAdminService(users, &capturedJobs{})
	ctx := context.Background()

	_, err := svc.GetCompanyUsers(ctx, companyAdmin("c-1"), "c-2")
	assert.ErrorIs(t, err, ErrForbiddenScope)

	got, err := svc.GetCompanyUsers(ctx, companyAdmin("c-1"), "c-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "one@x.com", got[0].Email)

	got, err = svc.GetCompanyUsers(ctx, superAdmin(), "c-2")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestResetUserPassword(t *testing.T) {
	users := newMemUserRepo()
	oldHash, _ := helpers.HashPassword("old-password")
	users.add(&entity.User{ID: "u-20", CompanyID: "c-1", Email: "nina@x.com", FirstName: "Nina", LastName: "Bauer",
		PasswordHash: oldHash, Role: entity.RoleUser, Status: entity.StatusActive})
	pub := &capturedJobs{}
	svc := newAdminService(users, pub)
	ctx := context.Background()

	require.NoError(t, svc.ResetUserPassword(ctx, companyAdmin("c-1"), "u-20"))

	require.Len(t, pub.jobs, 1)
	job := pub.jobs[0]
	assert.Equal(t, mailer.TemplatePasswordReset, job.Template)
	assert.Equal(t, "nina@x.com", job.To)

	u, err := users.GetByID(ctx, "u-20")
	require.NoError(t, err)
	assert.False(t, helpers.CompareHashAndPassword(u.PasswordHash, "old-password"))
	tempPassword, _ := job.Data["Password"].(string)
	assert.True(t, helpers.CompareHashAndPassword(u.PasswordHash, tempPassword))
}

func TestResetUserPasswordScoped(t *testing.T) {
	users := newMemUserRepo()
	users.add(&entity.User{ID: "u-30", CompanyID: "c-2", Email: "far@x.com", Role: entity.RoleUser, Status: entity.StatusActive})
	svc := newAdminService(users, &capturedJobs{})

	err := svc.ResetUserPassword(context.Background(), companyAdmin("c-1"), "u-30")
	assert.ErrorIs(t, err, ErrForbiddenScope)

	err = svc.ResetUserPassword(context.Background(), companyAdmin("c-1"), "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCreateCompanyDefaultsActive(t *testing.T) {
	svc := newAdminService(newMemUserRepo(), &capturedJobs{})

	c, err := svc.CreateCompany(context.Background(), CreateCompanyInput{
		Name:      "Acme Assurance",
		CountryID: "country-1",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.CompanyActive, c.Status)
	assert.NotEmpty(t, c.ID)
}
