package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/yourusername/outreach-api/internal/apperr"
	"github.com/yourusername/outreach-api/internal/middleware"
	"github.com/yourusername/outreach-api/internal/model"
	"github.com/yourusername/outreach-api/internal/repository"
	"github.com/yourusername/outreach-api/internal/service"
)

// UserStore persists accounts
type UserStore interface {
	Create(ctx context.Context, email, username, passwordHash string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

// TokenRevoker records logged-out session tokens
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
}

type AuthHandler struct {
	users   UserStore
	revoker TokenRevoker
	tokens  *service.TokenService
	secure  bool
}

// NewAuthHandler creates the /auth handlers. secure marks the session cookie
// Secure and should be set in production.
func NewAuthHandler(users UserStore, revoker TokenRevoker, tokens *service.TokenService, secure bool) *AuthHandler {
	return &AuthHandler{users: users, revoker: revoker, tokens: tokens, secure: secure}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Username string `json:"username" binding:"required,min=3"`
		Password string `json:"password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, apperr.BadRequest("Invalid registration details", err.Error()))
		return
	}

	hash, err := service.HashPassword(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("Failed to hash password")
		respond(c, apperr.Internal("Failed to create account", ""))
		return
	}

	user, err := h.users.Create(c.Request.Context(), req.Email, req.Username, hash)
	if errors.Is(err, repository.ErrEmailTaken) {
		respond(c, apperr.Conflict("User already exists"))
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("Failed to create user")
		respond(c, apperr.Internal("Failed to create account", ""))
		return
	}

	log.Info().Str("userId", user.ID.String()).Msg("New user registered")
	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user":    user.Public(),
	})
}

// Login handles POST /auth/login
// Issues a session token and sets it as an HttpOnly cookie
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, apperr.BadRequest("Email and password are required", err.Error()))
		return
	}

	user, err := h.users.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		log.Error().Err(err).Msg("Failed to look up user")
		respond(c, apperr.Internal("Failed to log in", ""))
		return
	}
	if user == nil {
		respond(c, apperr.NotFound("User not found"))
		return
	}
	if !service.CheckPassword(user.PasswordHash, req.Password) {
		respond(c, apperr.Unauthorized("Invalid credentials"))
		return
	}

	token, _, err := h.tokens.Issue(user)
	if err != nil {
		log.Error().Err(err).Msg("Failed to issue token")
		respond(c, apperr.Internal("Failed to log in", ""))
		return
	}

	h.setCookie(c, token, int(h.tokens.TTL().Seconds()))
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user":    user.Public(),
	})
}

// Logout handles POST /auth/logout
// Revokes the presented token and clears the cookie
func (h *AuthHandler) Logout(c *gin.Context) {
	token := middleware.TokenFromRequest(c)
	if token == "" {
		respond(c, apperr.BadRequest("No token provided", ""))
		return
	}

	claims, err := h.tokens.Verify(token)
	if err != nil {
		respond(c, apperr.Unauthorized("Invalid or expired token"))
		return
	}

	if err := h.revoker.Revoke(c.Request.Context(), claims.ID, claims.ExpiresAt.Time); err != nil {
		log.Error().Err(err).Msg("Failed to revoke token")
		respond(c, apperr.Internal("Failed to log out", ""))
		return
	}

	h.setCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (h *AuthHandler) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.TokenCookie, value, maxAge, "/", "", h.secure, true)
}
