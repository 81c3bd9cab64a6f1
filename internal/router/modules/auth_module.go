package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mirak2305/hilfe-entreprise-backend/internal/container"
	"github.com/mirak2305/hilfe-entreprise-backend/internal/domain/repository"
	handlers "github.com/mirak2305/hilfe-entreprise-backend/internal/interface/http"
	"github.com/mirak2305/hilfe-entreprise-backend/internal/interface/middleware"
	"github.com/mirak2305/hilfe-entreprise-backend/pkg/helpers"
)

type AuthModule struct {
	Handler *handlers.AuthHandler
	Users   repository.UserRepository
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, users repository.UserRepository, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, Users: users, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// Login is public but brute-force limited per IP
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)

	auth := rg.Group("/auth")
	auth.Use(middleware.Auth(m.Users, m.JWT))
	{
		auth.GET("/me", m.Handler.Me)
		auth.POST("/change-password", m.Handler.ChangePassword)
	}
}
