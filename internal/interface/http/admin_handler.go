package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/castwave/castwave/internal/application"
	"github.com/castwave/castwave/pkg/response"
)

type AdminHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewAdminHandler(svc *application.AuthService, logger *logrus.Logger) *AdminHandler {
	return &AdminHandler{Svc: svc, Logger: logger}
}

// SetupAdmin handles GET /setup-admin. Safe to call repeatedly: the first
// call creates the admin account (201), later calls find it (200).
func (h *AdminHandler) SetupAdmin(c *gin.Context) {
	u, token, created, err := h.Svc.SetupAdmin(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("admin setup failed")
		response.ErrorFrom(c, http.StatusInternalServerError, err)
		return
	}

	status := http.StatusOK
	msg := "Admin account already exists"
	if created {
		status = http.StatusCreated
		msg = "Admin account created successfully"
	}
	response.JSON(c, status, gin.H{
		"message": msg,
		"token":   token,
		"user": gin.H{
			"id":       u.ID,
			"email":    u.Email,
			"username": u.Username,
			"role":     u.Role,
		},
	})
}
