package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/yourusername/outreach-api/internal/apperr"
	"github.com/yourusername/outreach-api/internal/service"
)

const (
	// ContextKeyUserID is the key for the authenticated user ID in the Gin context
	ContextKeyUserID = "user_id"
	// ContextKeyEmail is the key for the verified requester email in the Gin context
	ContextKeyEmail = "email"
	// TokenCookie is the session cookie set by login
	TokenCookie = "token"
)

// RevocationChecker reports whether a session token was revoked by logout
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// IDTokenVerifier verifies third-party identity tokens and returns the
// subject and email they assert.
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, token string) (uid, email string, err error)
}

// AuthMiddleware verifies the caller and injects their email into context.
// Session JWTs are tried first; a configured IDTokenVerifier is the fallback.
type AuthMiddleware struct {
	tokens   *service.TokenService
	revoked  RevocationChecker
	idTokens IDTokenVerifier
}

// NewAuthMiddleware creates the auth gate. idTokens may be nil.
func NewAuthMiddleware(tokens *service.TokenService, revoked RevocationChecker, idTokens IDTokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, revoked: revoked, idTokens: idTokens}
}

// Authenticate is the Gin middleware handler
func (am *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := TokenFromRequest(c)
		if token == "" {
			abort(c, apperr.Unauthorized("Authentication required"))
			return
		}

		claims, err := am.tokens.Verify(token)
		if err == nil {
			revoked, rerr := am.revoked.IsRevoked(c.Request.Context(), claims.ID)
			if rerr != nil {
				log.Error().Err(rerr).Msg("Failed to check token revocation")
				abort(c, apperr.Internal("Failed to verify session", ""))
				return
			}
			if revoked {
				abort(c, apperr.Unauthorized("Session has been logged out"))
				return
			}
			c.Set(ContextKeyUserID, claims.Subject)
			c.Set(ContextKeyEmail, claims.Email)
			c.Next()
			return
		}

		if am.idTokens != nil {
			uid, email, ferr := am.idTokens.VerifyIDToken(c.Request.Context(), token)
			if ferr == nil && email != "" {
				c.Set(ContextKeyUserID, uid)
				c.Set(ContextKeyEmail, email)
				c.Next()
				return
			}
			if ferr != nil {
				err = ferr
			}
		}

		log.Warn().Err(err).Msg("Failed to verify token")
		abort(c, apperr.Unauthorized("Invalid or expired token"))
	}
}

// TokenFromRequest returns the session cookie, or the bearer token from the
// Authorization header when there is no cookie.
func TokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(TokenCookie); err == nil && cookie != "" {
		return cookie
	}

	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// GetEmail extracts the verified requester email from the Gin context
func GetEmail(c *gin.Context) string {
	return c.GetString(ContextKeyEmail)
}

// GetUserID extracts the authenticated user ID from the Gin context
func GetUserID(c *gin.Context) string {
	return c.GetString(ContextKeyUserID)
}

func abort(c *gin.Context, e *apperr.Error) {
	c.AbortWithStatusJSON(e.StatusCode(), e.WithRequestID(GetRequestID(c)))
}
