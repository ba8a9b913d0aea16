package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/connectin/connectin/internal/domain/account"
	"github.com/connectin/connectin/internal/http/middlewares"
	"github.com/connectin/connectin/internal/security"
	"github.com/connectin/connectin/internal/session"
)

// AccountStore is the slice of the accounts repository the auth handlers need.
type AccountStore interface {
	Create(ctx context.Context, acc account.Account) error
	GetByEmail(ctx context.Context, email string) (account.Account, error)
}

// SessionIssuer mints and revokes bearer sessions.
type SessionIssuer interface {
	Issue(ctx context.Context, accountID string) (session.Session, error)
	Revoke(ctx context.Context, accountID string) error
}

type AuthHandler struct {
	accounts AccountStore
	sessions SessionIssuer
	log      *slog.Logger
}

func NewAuthHandler(accounts AccountStore, sessions SessionIssuer, log *slog.Logger) *AuthHandler {
	return &AuthHandler{
		accounts: accounts,
		sessions: sessions,
		log:      log,
	}
}

type signUpRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
	Role      string `json:"role" binding:"required"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Phone     string `json:"phone"`
}

func (h *AuthHandler) SignUp(ctx *gin.Context) {
	var req signUpRequest

	if !BindJSON(ctx, &req) {
		return
	}

	if !account.ValidRole(req.Role) {
		RespondBadRequest(ctx, "Invalid role", nil)
		return
	}

	hash, err := security.HashPassword(req.Password)

	if err != nil {
		h.log.ErrorContext(ctx.Request.Context(), "failed to hash password", "error", err)
		RespondInternal(ctx, "Could not create account")
		return
	}

	now := time.Now().UTC()

	acc := account.Account{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		Role:         req.Role,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := h.accounts.Create(ctx.Request.Context(), acc); err != nil {
		if errors.Is(err, account.ErrEmailTaken) {
			RespondBadRequest(ctx, "Email already exists", nil)
			return
		}

		h.log.ErrorContext(ctx.Request.Context(), "failed to create account", "error", err)
		RespondInternal(ctx, "Could not create account")
		return
	}

	s, err := h.sessions.Issue(ctx.Request.Context(), acc.ID)

	if err != nil {
		h.log.ErrorContext(ctx.Request.Context(), "failed to issue session", "error", err)
		RespondInternal(ctx, "Could not create session")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Signup successful",
		"sessionId": s.Token,
		"userId":    acc.ID,
		"role":      acc.Role,
	})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login deliberately answers a single 401 message for both unknown email and
// wrong password, so the two cases cannot be told apart.
func (h *AuthHandler) Login(ctx *gin.Context) {
	var req loginRequest

	if !BindJSON(ctx, &req) {
		return
	}

	acc, err := h.accounts.GetByEmail(ctx.Request.Context(), req.Email)

	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			RespondUnAuthorized(ctx, "invalid_credentials", "Invalid credentials")
			return
		}

		h.log.ErrorContext(ctx.Request.Context(), "failed to load account", "error", err)
		RespondInternal(ctx, "Could not log in")
		return
	}

	if err := security.CheckPassword(acc.PasswordHash, req.Password); err != nil {
		RespondUnAuthorized(ctx, "invalid_credentials", "Invalid credentials")
		return
	}

	s, err := h.sessions.Issue(ctx.Request.Context(), acc.ID)

	if err != nil {
		h.log.ErrorContext(ctx.Request.Context(), "failed to issue session", "error", err)
		RespondInternal(ctx, "Could not create session")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Login successful",
		"sessionId": s.Token,
		"userId":    acc.ID,
		"role":      acc.Role,
		"firstName": acc.FirstName,
		"lastName":  acc.LastName,
	})
}

func (h *AuthHandler) Logout(ctx *gin.Context) {
	acc, ok := middlewares.AccountFromContext(ctx)

	if !ok {
		RespondUnAuthorized(ctx, "unauthorized", "Authentication required")
		return
	}

	if err := h.sessions.Revoke(ctx.Request.Context(), acc.ID); err != nil {
		h.log.ErrorContext(ctx.Request.Context(), "failed to revoke session", "error", err)
		RespondInternal(ctx, "Could not log out")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logout successful",
	})
}
