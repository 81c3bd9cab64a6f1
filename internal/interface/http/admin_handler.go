package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mirak2305/hilfe-entreprise-backend/internal/application"
	"github.com/mirak2305/hilfe-entreprise-backend/internal/domain/repository"
	"github.com/mirak2305/hilfe-entreprise-backend/internal/interface/middleware"
	"github.com/mirak2305/hilfe-entreprise-backend/pkg/response"
	"github.com/mirak2305/hilfe-entreprise-backend/pkg/validation"
)

type AdminHandler struct {
	Svc    *application.AdminService
	Logger *logrus.Logger
}

func NewAdminHandler(svc *application.AdminService, logger *logrus.Logger) *AdminHandler {
	return &AdminHandler{Svc: svc, Logger: logger}
}

type createCompanyRequest struct {
	Name            string `json:"name" binding:"required"`
	CountryID       string `json:"countryId" binding:"required"`
	BillingEmail    string `json:"billingEmail" binding:"omitempty,email"`
	TechnicalEmail  string `json:"technicalEmail" binding:"omitempty,email"`
	CommercialEmail string `json:"commercialEmail" binding:"omitempty,email"`
}

type createUserRequest struct {
	CompanyID        string `json:"companyId" binding:"required"`
	HRID             string `json:"hrId"`
	Email            string `json:"email" binding:"required,email"`
	FirstName        string `json:"firstName" binding:"required"`
	LastName         string `json:"lastName" binding:"required"`
	Phone            string `json:"phone"`
	PhoneCountryCode string `json:"phoneCountryCode"`
}

// writeAdminErr maps the service error taxonomy onto HTTP statuses shared by
// every admin endpoint.
func (h *AdminHandler) writeAdminErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, application.ErrForbiddenScope):
		response.Err(c, http.StatusForbidden, "access denied for this company")
	case errors.Is(err, application.ErrCompanyNotFound), errors.Is(err, repository.ErrNotFound):
		response.Err(c, http.StatusNotFound, "not found")
	default:
		h.Logger.WithError(err).Error("admin operation failed")
		response.Err(c, http.StatusInternalServerError, "internal server error")
	}
}

// GetCompanies GET /api/admin/companies
func (h *AdminHandler) GetCompanies(c *gin.Context) {
	companies, err := h.Svc.GetCompanies(c.Request.Context())
	if err != nil {
		h.writeAdminErr(c, err)
		return
	}
	c.JSON(http.StatusOK, companies)
}

// CreateCompany POST /api/admin/companies
func (h *AdminHandler) CreateCompany(c *gin.Context) {
	var req createCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Logger.WithFields(logrus.Fields{"details": validation.ToDetails(err)}).Debug("create company payload rejected")
		response.Err(c, http.StatusBadRequest, "name and countryId required")
		return
	}

	company, err := h.Svc.CreateCompany(c.Request.Context(), application.CreateCompanyInput{
		Name:            req.Name,
		CountryID:       req.CountryID,
		BillingEmail:    req.BillingEmail,
		TechnicalEmail:  req.TechnicalEmail,
		CommercialEmail: req.CommercialEmail,
	})
	if err != nil {
		h.writeAdminErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, company)
}

// GetCompanyUsers GET /api/admin/companies/:companyId/users
func (h *AdminHandler) GetCompanyUsers(c *gin.Context) {
	caller := middleware.CurrentUser(c)
	users, err := h.Svc.GetCompanyUsers(c.Request.Context(), caller, c.Param("companyId"))
	if err != nil {
		h.writeAdminErr(c, err)
		return
	}
	out := make([]gin.H, 0, len(users))
	for _, u := range users {
		out = append(out, userJSON(u))
	}
	c.JSON(http.StatusOK, out)
}

// CreateUser POST /api/admin/users
func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Logger.WithFields(logrus.Fields{"details": validation.ToDetails(err)}).Debug("create user payload rejected")
		response.Err(c, http.StatusBadRequest, "companyId, email, firstName and lastName required")
		return
	}

	caller := middleware.CurrentUser(c)
	u, err := h.Svc.CreateUser(c.Request.Context(), caller, application.CreateUserInput{
		CompanyID:        req.CompanyID,
		HRID:             req.HRID,
		Email:            req.Email,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Phone:            req.Phone,
		PhoneCountryCode: req.PhoneCountryCode,
	})
	if err != nil {
		h.writeAdminErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "user created, temporary password sent by email",
		"user":    userJSON(u),
	})
}

// ResetUserPassword POST /api/admin/users/:userId/reset-password
func (h *AdminHandler) ResetUserPassword(c *gin.Context) {
	caller := middleware.CurrentUser(c)
	if err := h.Svc.ResetUserPassword(c.Request.Context(), caller, c.Param("userId")); err != nil {
		h.writeAdminErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "temporary password sent by email"})
}

// GetCountries GET /api/admin/countries
func (h *AdminHandler) GetCountries(c *gin.Context) {
	countries, err := h.Svc.GetCountries(c.Request.Context())
	if err != nil {
		h.writeAdminErr(c, err)
		return
	}
	c.JSON(http.StatusOK, countries)
}

// UploadDocument POST /api/admin/companies/:companyId/documents
func (h *AdminHandler) UploadDocument(c *gin.Context) {
	file, err := c.FormFile("document")
	if err != nil {
		response.Err(c, http.StatusBadRequest, "document file required")
		return
	}
	src, err := file.Open()
	if err != nil {
		response.Err(c, http.StatusBadRequest, "document file unreadable")
		return
	}
	defer src.Close()

	caller := middleware.CurrentUser(c)
	doc, err := h.Svc.UploadDocument(c.Request.Context(), caller, c.Param("companyId"), file.Filename, file.Header.Get("Content-Type"), src)
	if err != nil {
		h.writeAdminErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, doc)
}

// GetDocuments GET /api/admin/companies/:companyId/documents
func (h *AdminHandler) GetDocuments(c *gin.Context) {
	caller := middleware.CurrentUser(c)
	docs, err := h.Svc.GetDocuments(c.Request.Context(), caller, c.Param("companyId"))
	if err != nil {
		h.writeAdminErr(c, err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

// SearchUsers GET /api/admin/users/search?q=...&size=20
func (h *AdminHandler) SearchUsers(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Err(c, http.StatusBadRequest, "query parameter q required")
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))

	hits, err := h.Svc.SearchUsers(c.Request.Context(), q, size)
	if err != nil {
		h.writeAdminErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": hits})
}
