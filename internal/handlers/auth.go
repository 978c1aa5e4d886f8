package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/evelynagreer/survey-vote/backend/internal/logger"
	"github.com/evelynagreer/survey-vote/backend/internal/models"
	"github.com/evelynagreer/survey-vote/backend/internal/service"
)

type AuthHandler struct {
	auth *service.AuthService
	log  *logger.Logger
}

func NewAuthHandler(auth *service.AuthService, log *logger.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, log: log}
}

// SignUp handles account registration
func (h *AuthHandler) SignUp(c *gin.Context) {
	var input struct {
		Name                 string `json:"name" binding:"required"`
		Email                string `json:"email" binding:"required,email"`
		Password             string `json:"password" binding:"required,min=6"`
		PasswordConfirmation string `json:"passwordConfirmation" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Password != input.PasswordConfirmation {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Passwords do not match"})
		return
	}

	account, token, err := h.auth.SignUp(c.Request.Context(), input.Name, input.Email, input.Password)
	if errors.Is(err, service.ErrEmailInUse) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Email already in use"})
		return
	}
	if err != nil {
		h.log.WithField("error", err.Error()).Error("signup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	h.log.WithAccountID(account.ID).Info("account created")

	c.JSON(http.StatusCreated, gin.H{
		"accessToken": token,
		"account": gin.H{
			"id":    account.ID,
			"name":  account.Name,
			"email": account.Email,
		},
	})
}

// Login handles account login
func (h *AuthHandler) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.auth.Authenticate(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		h.log.WithField("error", err.Error()).Error("login failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"accessToken": token})
}

// GetMe returns the current authenticated account
func (h *AuthHandler) GetMe(c *gin.Context) {
	value, exists := c.Get("account")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	account := value.(*models.Account)
	c.JSON(http.StatusOK, gin.H{
		"id":         account.ID,
		"name":       account.Name,
		"email":      account.Email,
		"role":       account.Role,
		"created_at": account.CreatedAt,
	})
}
