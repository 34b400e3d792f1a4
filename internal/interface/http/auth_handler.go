package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/castwave/castwave/internal/application"
	repo "github.com/castwave/castwave/internal/domain/repository"
	"github.com/castwave/castwave/internal/interface/middleware"
	"github.com/castwave/castwave/pkg/helpers"
	"github.com/castwave/castwave/pkg/response"
	"github.com/castwave/castwave/pkg/validation"
)

type AuthHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type signupRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,strongpwd"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func userBody(id, email, username string) gin.H {
	return gin.H{"id": id, "email": email, "username": username}
}

// Signup handles POST /auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, validation.Message(err))
		return
	}

	u, token, err := h.Svc.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, repo.ErrEmailTaken) {
			response.Error(c, http.StatusConflict, "Email already registered")
			return
		}
		h.Logger.WithError(err).Error("signup failed")
		response.ErrorFrom(c, http.StatusInternalServerError, err)
		return
	}

	response.JSON(c, http.StatusCreated, gin.H{
		"message": "User created successfully",
		"token":   token,
		"user":    userBody(u.ID, u.Email, u.Username),
	})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	u, token, err := h.Svc.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		h.Logger.WithError(err).Error("login failed")
		response.ErrorFrom(c, http.StatusInternalServerError, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user":    userBody(u.ID, u.Email, u.Username),
	})
}

// VerifyToken handles GET /auth/verify-token (behind the Auth middleware).
func (h *AuthHandler) VerifyToken(c *gin.Context) {
	v, ok := c.Get(middleware.CtxClaimsKey)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "token is missing")
		return
	}
	claims := v.(*helpers.Claims)
	response.JSON(c, http.StatusOK, gin.H{
		"valid": true,
		"user": gin.H{
			"user_id":  claims.UserID,
			"email":    claims.Email,
			"username": claims.Username,
			"role":     claims.Role,
		},
	})
}
