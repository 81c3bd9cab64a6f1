package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mirak2305/hilfe-entreprise-backend/internal/application"
	"github.com/mirak2305/hilfe-entreprise-backend/internal/domain/entity"
	"github.com/mirak2305/hilfe-entreprise-backend/internal/interface/middleware"
	"github.com/mirak2305/hilfe-entreprise-backend/pkg/response"
	"github.com/mirak2305/hilfe-entreprise-backend/pkg/validation"
)

type AuthHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,pwd"`
}

// userJSON is the user shape every auth endpoint returns.
func userJSON(u *entity.User) gin.H {
	return gin.H{
		"id":         u.ID,
		"email":      u.Email,
		"first_name": u.FirstName,
		"last_name":  u.LastName,
		"role":       u.Role,
		"status":     u.Status,
		"company_id": u.CompanyID,
		"last_login": u.LastLogin,
	}
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Logger.WithFields(logrus.Fields{"details": validation.ToDetails(err)}).Debug("login payload rejected")
		response.Err(c, http.StatusBadRequest, "email and password required")
		return
	}

	res, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrMissingFields):
			response.Err(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, application.ErrAccountInactive):
			response.Err(c, http.StatusForbidden, err.Error())
		case errors.Is(err, application.ErrUserNotFound),
			errors.Is(err, application.ErrNoPasswordSet),
			errors.Is(err, application.ErrInvalidCredentials):
			response.Err(c, http.StatusUnauthorized, err.Error())
		default:
			h.Logger.WithError(err).Error("login failed")
			response.Err(c, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "login successful",
		"token":   res.Token,
		"user":    userJSON(res.User),
	})
}

// Me GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	u := middleware.CurrentUser(c)
	c.JSON(http.StatusOK, gin.H{"user": userJSON(u)})
}

// ChangePassword POST /api/auth/change-password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Logger.WithFields(logrus.Fields{"details": validation.ToDetails(err)}).Debug("change password payload rejected")
		response.Err(c, http.StatusBadRequest, "current and new password required")
		return
	}

	u := middleware.CurrentUser(c)
	if err := h.Svc.ChangePassword(c.Request.Context(), u, req.CurrentPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, application.ErrNoPasswordSet):
			response.Err(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, application.ErrInvalidCredentials):
			response.Err(c, http.StatusUnauthorized, "current password incorrect")
		default:
			h.Logger.WithError(err).WithField("user_id", u.ID).Error("change password failed")
			response.Err(c, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "password changed successfully"})
}
