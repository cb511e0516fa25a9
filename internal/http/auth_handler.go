package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fncs-api/internal/service"
)

// AuthHandler mantiene dependencias para los endpoints de autenticación.
type AuthHandler struct {
	logger   *zap.Logger
	authServ *service.AuthService
}

// NewAuthHandler crea una instancia de AuthHandler con dependencias necesarias.
func NewAuthHandler(logger *zap.Logger, authServ *service.AuthService) *AuthHandler {
	return &AuthHandler{
		logger:   logger,
		authServ: authServ,
	}
}

// Register maneja POST /auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		FullName string `json:"full_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorJSON(msgInvalidBody))
		return
	}

	user, err := h.authServ.Register(c.Request.Context(), service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		var validationErr *service.ValidationError
		switch {
		case errors.As(err, &validationErr):
			c.JSON(http.StatusBadRequest, errorJSON(validationErr.Message))
		case errors.Is(err, service.ErrEmailTaken):
			c.JSON(http.StatusConflict, errorJSON("Email already registered"))
		case errors.Is(err, service.ErrStoreUnavailable):
			c.JSON(http.StatusServiceUnavailable, errorJSON(msgStoreUnavailable))
		default:
			h.logger.Error("register failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, errorJSON("Registration failed"))
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User registered successfully",
		"data":    user.Public(),
	})
}

// Login maneja POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorJSON(msgInvalidBody))
		return
	}
	if req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, errorJSON("Email and password are required"))
		return
	}

	result, err := h.authServ.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, errorJSON("Invalid email or password"))
		case errors.Is(err, service.ErrStoreUnavailable):
			c.JSON(http.StatusServiceUnavailable, errorJSON(msgStoreUnavailable))
		default:
			h.logger.Error("login failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, errorJSON("Login failed"))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"data": gin.H{
			"token":      result.Token,
			"user":       result.User,
			"expires_in": result.ExpiresIn,
		},
	})
}

// Verify maneja GET /auth/verify: permite sondear la validez de un token.
func (h *AuthHandler) Verify(c *gin.Context) {
	token, errMsg := bearerToken(c)
	if errMsg != "" {
		c.JSON(http.StatusUnauthorized, errorJSON(errMsg))
		return
	}

	claims, err := h.authServ.VerifyToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, errorJSON("Invalid or expired token"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Token is valid",
		"data": gin.H{
			"user_id":    claims.UserID,
			"email":      claims.Email,
			"expires_at": claims.ExpiresAt.Unix(),
		},
	})
}

// Me maneja GET /auth/me (protegido por el gate).
func (h *AuthHandler) Me(c *gin.Context) {
	identity, ok := GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorJSON("Authentication token is missing"))
		return
	}

	user, err := h.authServ.CurrentUser(c.Request.Context(), identity.UserID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, errorJSON("User not found"))
		case errors.Is(err, service.ErrStoreUnavailable):
			c.JSON(http.StatusServiceUnavailable, errorJSON(msgStoreUnavailable))
		default:
			h.logger.Error("get current user failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, errorJSON("Failed to retrieve user"))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"id":         user.ID,
			"email":      user.Email,
			"full_name":  user.FullName,
			"is_active":  user.IsActive,
			"created_at": user.CreatedAt,
		},
	})
}

// Logout maneja POST /auth/logout. Los tokens son stateless: el servidor no
// invalida nada, el cliente descarta el token.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logout successful. Please remove token from client storage.",
	})
}
