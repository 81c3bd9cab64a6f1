package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirak2305/hilfe-entreprise-backend/internal/domain/entity"
	"github.com/mirak2305/hilfe-entreprise-backend/internal/domain/repository"
	"github.com/mirak2305/hilfe-entreprise-backend/pkg/helpers"
)

type fakeUserRepo struct {
	users map[string]*entity.User
}

func (r *fakeUserRepo) Create(ctx context.Context, u *entity.User) error { return nil }

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByCompany(ctx context.Context, companyID string) ([]*entity.User, error) {
	return nil, nil
}

func (r *fakeUserRepo) UpdatePasswordHash(ctx context.Context, id, hash string) error { return nil }
func (r *fakeUserRepo) UpdateLastLogin(ctx context.Context, id string) error          { return nil }

func gateRouter(repo repository.UserRepository, jwt *helpers.JWTManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	ok := func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"user": CurrentUser(c).ID}) }
	r.GET("/auth", Auth(repo, jwt), ok)
	r.GET("/admin", Auth(repo, jwt), AdminOnly(), ok)
	r.GET("/super", Auth(repo, jwt), SuperAdminOnly(), ok)
	return r
}

func doGet(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func gateFixture(t *testing.T) (*gin.Engine, *fakeUserRepo, *helpers.JWTManager) {
	t.Helper()
	repo := &fakeUserRepo{users: map[string]*entity.User{
		"u-user":     {ID: "u-user", Email: "u@x.com", Role: entity.RoleUser, Status: entity.StatusActive},
		"u-admin":    {ID: "u-admin", Email: "ca@x.com", CompanyID: "c-1", Role: entity.RoleCompanyAdmin, Status: entity.StatusActive},
		"u-super":    {ID: "u-super", Email: "sa@x.com", Role: entity.RoleSuperAdmin, Status: entity.StatusActive},
		"u-inactive": {ID: "u-inactive", Email: "in@x.com", Role: entity.RoleUser, Status: entity.StatusInactive},
	}}
	jwt := helpers.NewJWTManager("gate-secret", 168*time.Hour)
	return gateRouter(repo, jwt), repo, jwt
}

func tokenFor(t *testing.T, jwt *helpers.JWTManager, u *entity.User) string {
	t.Helper()
	token, _, err := jwt.Generate(u.ID, u.Email, string(u.Role), u.CompanyID)
	require.NoError(t, err)
	return token
}

func TestAuthGate(t *testing.T) {
	r, repo, jwt := gateFixture(t)

	t.Run("missing token", func(t *testing.T) {
		w := doGet(r, "/auth", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "missing authentication token")
	})

	t.Run("garbage token", func(t *testing.T) {
		w := doGet(r, "/auth", "garbage")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "invalid token")
	})

	t.Run("expired token", func(t *testing.T) {
		expired := helpers.NewJWTManager("gate-secret", -8*24*time.Hour)
		token := tokenFor(t, expired, repo.users["u-user"])
		w := doGet(r, "/auth", token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "invalid token")
	})

	t.Run("valid token", func(t *testing.T) {
		w := doGet(r, "/auth", tokenFor(t, jwt, repo.users["u-user"]))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "u-user")
	})

	t.Run("user deleted since issuance", func(t *testing.T) {
		ghost := &entity.User{ID: "u-ghost", Email: "g@x.com", Role: entity.RoleUser}
		w := doGet(r, "/auth", tokenFor(t, jwt, ghost))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "user not found")
	})

	t.Run("deactivated since issuance", func(t *testing.T) {
		w := doGet(r, "/auth", tokenFor(t, jwt, repo.users["u-inactive"]))
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "account inactive")
	})
}

// The role hierarchy is monotonic at the gates: whoever passes the super-admin
// gate passes the admin gate, whoever passes the admin gate passes auth.
func TestRoleGates(t *testing.T) {
	r, repo, jwt := gateFixture(t)

	tests := []struct {
		name  string
		user  string
		path  string
		want  int
	}{
		{"user on auth", "u-user", "/auth", http.StatusOK},
		{"user on admin", "u-user", "/admin", http.StatusForbidden},
		{"user on super", "u-user", "/super", http.StatusForbidden},
		{"company admin on auth", "u-admin", "/auth", http.StatusOK},
		{"company admin on admin", "u-admin", "/admin", http.StatusOK},
		{"company admin on super", "u-admin", "/super", http.StatusForbidden},
		{"super admin on auth", "u-super", "/auth", http.StatusOK},
		{"super admin on admin", "u-super", "/admin", http.StatusOK},
		{"super admin on super", "u-super", "/super", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doGet(r, tt.path, tokenFor(t, jwt, repo.users[tt.user]))
			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusForbidden {
				assert.Contains(t, w.Body.String(), "insufficient role")
			}
		})
	}
}

// Role claims in the token are not trusted: the gate re-reads the store, so a
// role changed after issuance is what gates on, not the snapshot in the token.
func TestStaleRoleClaimIgnored(t *testing.T) {
	r, _, jwt := gateFixture(t)

	// token claims super_admin, store says user
	forged, _, err := jwt.Generate("u-user", "u@x.com", string(entity.RoleSuperAdmin), "")
	require.NoError(t, err)

	w := doGet(r, "/super", forged)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
