package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mirak2305/hilfe-entreprise-backend/internal/domain/entity"
	"github.com/mirak2305/hilfe-entreprise-backend/internal/domain/repository"
	"github.com/mirak2305/hilfe-entreprise-backend/pkg/helpers"
	"github.com/mirak2305/hilfe-entreprise-backend/pkg/response"
)

// CtxUserKey is the Gin context key under which Auth stores the resolved user.
const CtxUserKey = "currentUser"

// Auth is the authenticated gate. It extracts the bearer token, verifies it,
// and re-fetches the user by id: token claims are a login-time snapshot, so
// role and status are always re-read from the store. On success the fresh
// user is attached to the context for downstream stages and handlers.
func Auth(users repository.UserRepository, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.AbortErr(c, http.StatusUnauthorized, "missing authentication token")
			return
		}
		claims, err := jwt.Parse(token)
		if err != nil {
			response.AbortErr(c, http.StatusUnauthorized, "invalid token")
			return
		}

		u, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				response.AbortErr(c, http.StatusUnauthorized, "user not found")
				return
			}
			response.AbortErr(c, http.StatusInternalServerError, "internal server error")
			return
		}
		if u.Status != entity.StatusActive {
			response.AbortErr(c, http.StatusForbidden, "account inactive")
			return
		}

		c.Set(CtxUserKey, u)
		c.Next()
	}
}

// RequireRole admits only users whose current role is in allowed. It must run
// after Auth; a request that somehow reaches it without a resolved user is
// rejected rather than let through.
func RequireRole(allowed ...entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := CurrentUser(c)
		if u == nil {
			response.AbortErr(c, http.StatusUnauthorized, "missing authentication token")
			return
		}
		for _, role := range allowed {
			if u.Role == role {
				c.Next()
				return
			}
		}
		response.AbortErr(c, http.StatusForbidden, "insufficient role")
	}
}

// AdminOnly admits company admins and super admins.
func AdminOnly() gin.HandlerFunc {
	return RequireRole(entity.RoleCompanyAdmin, entity.RoleSuperAdmin)
}

// SuperAdminOnly admits super admins exactly.
func SuperAdminOnly() gin.HandlerFunc {
	return RequireRole(entity.RoleSuperAdmin)
}

// CurrentUser returns the user resolved by Auth, or nil.
func CurrentUser(c *gin.Context) *entity.User {
	if v, ok := c.Get(CtxUserKey); ok {
		if u, ok := v.(*entity.User); ok {
			return u
		}
	}
	return nil
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
}
