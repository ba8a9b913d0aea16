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
	"github.com/connectin/connectin/internal/domain/profile"
	"github.com/connectin/connectin/internal/http/middlewares"
)

// ProfileStore is the repository surface the profile handlers depend on.
type ProfileStore interface {
	Create(ctx context.Context, p profile.Profile) error
	GetByUserID(ctx context.Context, userID string) (profile.Profile, error)
	Save(ctx context.Context, p profile.Profile) error
}

type ProfilesHandler struct {
	profiles ProfileStore
	log      *slog.Logger
}

func NewProfilesHandler(profiles ProfileStore, log *slog.Logger) *ProfilesHandler {
	return &ProfilesHandler{
		profiles: profiles,
		log:      log,
	}
}

type createProfileRequest struct {
	FirstName   string `json:"firstName" binding:"required"`
	LastName    string `json:"lastName" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"phone"`
	DateOfBirth string `json:"dateOfBirth"`
	Gender      string `json:"gender"`
	Country     string `json:"country"`
	City        string `json:"city"`
	District    string `json:"district"`
	Province    string `json:"province"`
	Title       string `json:"title"`
	ProfilePic  string `json:"profilePic"`
	CoverPic    string `json:"coverPic"`

	DeveloperInfo *profile.DeveloperInfo `json:"developerInfo"`
	RecruiterInfo *profile.RecruiterInfo `json:"recruiterInfo"`
}

// Create attaches a profile to the authenticated account. The profile's role
// comes from the account, not the request, and the role-specific sub-object
// must be present and well formed.
func (h *ProfilesHandler) Create(ctx *gin.Context) {
	acc, ok := middlewares.AccountFromContext(ctx)

	if !ok {
		RespondUnAuthorized(ctx, "unauthorized", "Authentication required")
		return
	}

	var req createProfileRequest

	if !BindJSON(ctx, &req) {
		return
	}

	p := profile.Profile{
		ID:          uuid.NewString(),
		UserID:      acc.ID,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:       req.Phone,
		DateOfBirth: req.DateOfBirth,
		Gender:      req.Gender,
		Country:     req.Country,
		City:        req.City,
		District:    req.District,
		Province:    req.Province,
		Title:       req.Title,
		ProfilePic:  req.ProfilePic,
		CoverPic:    req.CoverPic,
		Role:        acc.Role,
		JoinedDate:  time.Now().UTC(),
		LastActive:  time.Now().UTC(),
	}

	switch acc.Role {
	case account.RoleDeveloper:
		if err := profile.ValidateDeveloperInfo(req.DeveloperInfo); err != nil {
			RespondBadRequest(ctx, "Developer info with at least one skill is required", nil)
			return
		}
		p.DeveloperInfo = req.DeveloperInfo
	case account.RoleRecruiter:
		if err := profile.ValidateRecruiterInfo(req.RecruiterInfo); err != nil {
			RespondBadRequest(ctx, "Recruiter info with company and position is required", nil)
			return
		}
		p.RecruiterInfo = req.RecruiterInfo
	}

	if err := h.profiles.Create(ctx.Request.Context(), p); err != nil {
		if errors.Is(err, profile.ErrAlreadyExists) {
			RespondBadRequest(ctx, "Profile already exists", nil)
			return
		}

		h.log.ErrorContext(ctx.Request.Context(), "failed to create profile", "error", err)
		RespondInternal(ctx, "Could not create profile")
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Profile created successfully",
		"profile": p,
	})
}

// Me returns the authenticated account's own full profile.
func (h *ProfilesHandler) Me(ctx *gin.Context) {
	acc, ok := middlewares.AccountFromContext(ctx)

	if !ok {
		RespondUnAuthorized(ctx, "unauthorized", "Authentication required")
		return
	}

	p, err := h.profiles.GetByUserID(ctx.Request.Context(), acc.ID)

	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			RespondNotFound(ctx, "Profile not found")
			return
		}

		h.log.ErrorContext(ctx.Request.Context(), "failed to load profile", "error", err)
		RespondInternal(ctx, "Could not load profile")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"profile": p,
	})
}

// Update merges a partial body onto the stored profile. Omitted fields keep
// their current values; only the sub-object matching the account's role is
// merged.
func (h *ProfilesHandler) Update(ctx *gin.Context) {
	acc, ok := middlewares.AccountFromContext(ctx)

	if !ok {
		RespondUnAuthorized(ctx, "unauthorized", "Authentication required")
		return
	}

	var upd profile.Update

	if !BindJSON(ctx, &upd) {
		return
	}

	p, err := h.profiles.GetByUserID(ctx.Request.Context(), acc.ID)

	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			RespondNotFound(ctx, "Profile not found")
			return
		}

		h.log.ErrorContext(ctx.Request.Context(), "failed to load profile", "error", err)
		RespondInternal(ctx, "Could not load profile")
		return
	}

	p.Apply(upd, acc.Role, time.Now().UTC())

	if err := h.profiles.Save(ctx.Request.Context(), p); err != nil {
		h.log.ErrorContext(ctx.Request.Context(), "failed to save profile", "error", err)
		RespondInternal(ctx, "Could not update profile")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Profile updated successfully",
		"profile": p,
	})
}
