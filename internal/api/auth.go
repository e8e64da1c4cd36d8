package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/savora-ai/savora/backend/internal/service"
)

// AuthService issues session tokens for credentials.
type AuthService interface {
	SignUp(email, password string) (string, error)
	SignIn(email, password string) (string, error)
}

// AuthHandler handles sign-up, sign-in and sign-out.
type AuthHandler struct {
	authService AuthService
}

func NewAuthHandler(authService AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRoutes registers the auth routes
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)
	}
}

type credentialsRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register creates an account and returns a session token.
func (h *AuthHandler) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter a valid email address."})
		return
	}

	token, err := h.authService.SignUp(req.Email, req.Password)
	if err != nil {
		c.JSON(authErrorStatus(err), gin.H{"error": authErrorMessage(err)})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token})
}

// Login checks credentials and returns a session token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter a valid email address."})
		return
	}

	token, err := h.authService.SignIn(req.Email, req.Password)
	if err != nil {
		c.JSON(authErrorStatus(err), gin.H{"error": authErrorMessage(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Logout ends the session. Tokens are stateless, so this is the client's
// cue to drop its copy.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}

// authErrorStatus maps provider error codes to HTTP statuses.
func authErrorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrEmailInUse):
		return http.StatusConflict
	case errors.Is(err, service.ErrWeakPassword):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// authErrorMessage translates provider error codes into the user-facing
// wording; raw error text never reaches the client.
func authErrorMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrEmailInUse):
		return "This email is already registered. Try logging in instead."
	case errors.Is(err, service.ErrWeakPassword):
		return "Password should be at least 6 characters."
	case errors.Is(err, service.ErrInvalidCredentials):
		return "Invalid email or password."
	default:
		log.Printf("auth error: %v", err)
		return "An error occurred. Please try again."
	}
}
