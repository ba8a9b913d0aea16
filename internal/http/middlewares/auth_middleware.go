package middlewares

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/connectin/connectin/internal/domain/account"
	"github.com/connectin/connectin/internal/session"
	"github.com/gin-gonic/gin"
)

// Small interfaces so tests can fake both collaborators easily.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (session.Session, error)
}

type AccountReader interface {
	GetByID(ctx context.Context, id string) (account.Account, error)
}

type AuthMiddleware struct {
	sessions SessionResolver
	accounts AccountReader
}

func NewAuthMiddleware(sessions SessionResolver, accounts AccountReader) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions, accounts: accounts}
}

// RequireSession resolves the bearer token to its account and stashes the
// account on the request context. Expired and unknown tokens both fail with
// the same unauthorized response.
func (m *AuthMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")

		if !strings.HasPrefix(authHeader, "Bearer ") {
			abortUnauthorized(c, "Missing or invalid Authorization header")
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))

		if token == "" {
			abortUnauthorized(c, "Missing or invalid session token")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		sess, err := m.sessions.Resolve(ctx, token)

		if err != nil {
			abortUnauthorized(c, "Invalid or expired session")
			return
		}

		acc, err := m.accounts.GetByID(ctx, sess.AccountID)

		if err != nil {
			abortUnauthorized(c, "Invalid or expired session")
			return
		}

		c.Set(ctxAccountKey, acc)

		c.Next()
	}
}

// AccountFromContext returns the authenticated account placed by
// RequireSession.
func AccountFromContext(c *gin.Context) (account.Account, bool) {
	v, ok := c.Get(ctxAccountKey)

	if !ok {
		return account.Account{}, false
	}

	acc, ok := v.(account.Account)

	return acc, ok
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": gin.H{
			"code":    "unauthorized",
			"message": message,
		},
	})
}
