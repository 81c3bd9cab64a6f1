package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/mirak2305/hilfe-entreprise-backend/internal/domain/repository"
	handlers "github.com/mirak2305/hilfe-entreprise-backend/internal/interface/http"
	"github.com/mirak2305/hilfe-entreprise-backend/internal/interface/middleware"
	"github.com/mirak2305/hilfe-entreprise-backend/pkg/helpers"
)

type AdminModule struct {
	Handler *handlers.AdminHandler
	Users   repository.UserRepository
	JWT     *helpers.JWTManager
}

func NewAdminModule(h *handlers.AdminHandler, users repository.UserRepository, jwt *helpers.JWTManager) *AdminModule {
	return &AdminModule{Handler: h, Users: users, JWT: jwt}
}

func (m *AdminModule) Register(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	admin.Use(middleware.Auth(m.Users, m.JWT), middleware.AdminOnly())
	{
		admin.GET("/companies/:companyId/users", m.Handler.GetCompanyUsers)
		admin.POST("/users", m.Handler.CreateUser)
		admin.GET("/users/search", m.Handler.SearchUsers)
		admin.POST("/users/:userId/reset-password", m.Handler.ResetUserPassword)
		admin.GET("/countries", m.Handler.GetCountries)
		admin.GET("/companies/:companyId/documents", m.Handler.GetDocuments)
		admin.POST("/companies/:companyId/documents", m.Handler.UploadDocument)
	}

	super := rg.Group("/admin")
	super.Use(middleware.Auth(m.Users, m.JWT), middleware.SuperAdminOnly())
	{
		super.GET("/companies", m.Handler.GetCompanies)
		super.POST("/companies", m.Handler.CreateCompany)
	}
}
