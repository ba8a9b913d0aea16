package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/connectin/connectin/internal/providers/linkedin"
)

// GitHubProvider is the OAuth surface of the GitHub client.
type GitHubProvider interface {
	ExchangeCode(ctx context.Context, code string) (json.RawMessage, error)
	FetchUser(ctx context.Context, accessToken string) (json.RawMessage, error)
}

// LinkedInProvider is the OAuth surface of the LinkedIn client.
type LinkedInProvider interface {
	ExchangeCode(ctx context.Context, code string) (json.RawMessage, error)
	FetchUserInfo(ctx context.Context, accessToken string) (json.RawMessage, error)
	FetchProfileDetails(ctx context.Context, accessToken string) (linkedin.ProfileDetails, error)
}

// OAuthHandler proxies the token exchanges and user-data fetches so the
// client secrets never leave the backend. Provider responses are passed
// through verbatim.
type OAuthHandler struct {
	github   GitHubProvider
	linkedin LinkedInProvider
	log      *slog.Logger
}

func NewOAuthHandler(github GitHubProvider, linkedin LinkedInProvider, log *slog.Logger) *OAuthHandler {
	return &OAuthHandler{
		github:   github,
		linkedin: linkedin,
		log:      log,
	}
}

type codeRequest struct {
	Code string `json:"code" binding:"required"`
}

type accessTokenRequest struct {
	AccessToken string `json:"accessToken" binding:"required"`
}

func (h *OAuthHandler) GitHubAccessToken(ctx *gin.Context) {
	var req codeRequest

	if !BindJSON(ctx, &req) {
		return
	}

	raw, err := h.github.ExchangeCode(ctx.Request.Context(), req.Code)

	if err != nil {
		h.log.ErrorContext(ctx.Request.Context(), "github token exchange failed", "error", err)
		RespondUpstream(ctx, "Failed to get access token", err)
		return
	}

	ctx.Data(http.StatusOK, "application/json", raw)
}

func (h *OAuthHandler) GitHubUserData(ctx *gin.Context) {
	var req accessTokenRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		RespondUnAuthorized(ctx, "missing_token", "Access token is required")
		return
	}

	raw, err := h.github.FetchUser(ctx.Request.Context(), req.AccessToken)

	if err != nil {
		h.log.ErrorContext(ctx.Request.Context(), "github user fetch failed", "error", err)
		RespondUpstream(ctx, "Failed to get user data", err)
		return
	}

	ctx.Data(http.StatusOK, "application/json", raw)
}

func (h *OAuthHandler) LinkedInAccessToken(ctx *gin.Context) {
	var req codeRequest

	if !BindJSON(ctx, &req) {
		return
	}

	raw, err := h.linkedin.ExchangeCode(ctx.Request.Context(), req.Code)

	if err != nil {
		h.log.ErrorContext(ctx.Request.Context(), "linkedin token exchange failed", "error", err)
		RespondUpstream(ctx, "Failed to get access token", err)
		return
	}

	ctx.Data(http.StatusOK, "application/json", raw)
}

func (h *OAuthHandler) LinkedInUserData(ctx *gin.Context) {
	var req accessTokenRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		RespondUnAuthorized(ctx, "missing_token", "Access token is required")
		return
	}

	raw, err := h.linkedin.FetchUserInfo(ctx.Request.Context(), req.AccessToken)

	if err != nil {
		h.log.ErrorContext(ctx.Request.Context(), "linkedin userinfo fetch failed", "error", err)
		RespondUpstream(ctx, "Failed to get user data", err)
		return
	}

	ctx.Data(http.StatusOK, "application/json", raw)
}

func (h *OAuthHandler) LinkedInProfileDetails(ctx *gin.Context) {
	var req accessTokenRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		RespondUnAuthorized(ctx, "missing_token", "Access token is required")
		return
	}

	details, err := h.linkedin.FetchProfileDetails(ctx.Request.Context(), req.AccessToken)

	if err != nil {
		h.log.ErrorContext(ctx.Request.Context(), "linkedin profile fetch failed", "error", err)
		RespondUpstream(ctx, "Failed to get profile details", err)
		return
	}

	ctx.JSON(http.StatusOK, details)
}
