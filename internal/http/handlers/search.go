package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/connectin/connectin/internal/domain/profile"
)

// ProfileSearcher is the repository surface behind the public search and
// lookup endpoints.
type ProfileSearcher interface {
	Search(ctx context.Context, f profile.SearchFilter, offset, limit int) ([]profile.Profile, int, error)
	FindByName(ctx context.Context, name string) ([]profile.Profile, error)
}

type SearchHandler struct {
	profiles ProfileSearcher
	log      *slog.Logger
}

func NewSearchHandler(profiles ProfileSearcher, log *slog.Logger) *SearchHandler {
	return &SearchHandler{
		profiles: profiles,
		log:      log,
	}
}

type searchRequest struct {
	Role          string   `json:"role"`
	Skills        string   `json:"skills"` // comma separated
	Name          string   `json:"name"`
	ExperienceMin *float64 `json:"experienceMin"`
	Location      string   `json:"location"`
	Page          int      `json:"page"`
	Limit         int      `json:"limit"`
}

// Search is the public, unauthenticated profile search. Results carry the
// reduced public projection only.
func (h *SearchHandler) Search(ctx *gin.Context) {
	var req searchRequest

	if !BindJSON(ctx, &req) {
		return
	}

	if req.Page < 1 {
		req.Page = 1
	}

	if req.Limit < 1 {
		req.Limit = 10
	}

	if req.Limit > 100 {
		req.Limit = 100
	}

	filter := profile.SearchFilter{
		Role:          req.Role,
		Name:          strings.TrimSpace(req.Name),
		Location:      strings.TrimSpace(req.Location),
		Skills:        parseSkills(req.Skills),
		ExperienceMin: req.ExperienceMin,
	}

	offset := (req.Page - 1) * req.Limit

	matches, total, err := h.profiles.Search(ctx.Request.Context(), filter, offset, req.Limit)

	if err != nil {
		h.log.ErrorContext(ctx.Request.Context(), "profile search failed", "error", err)
		RespondInternal(ctx, "Search failed")
		return
	}

	results := make([]profile.PublicProfile, 0, len(matches))

	for _, p := range matches {
		results = append(results, p.Public())
	}

	totalPages := total / req.Limit

	if total%req.Limit != 0 {
		totalPages++
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success":       true,
		"page":          req.Page,
		"totalProfiles": total,
		"totalPages":    totalPages,
		"profiles":      results,
	})
}

type publicLookupRequest struct {
	Name string `json:"name" binding:"required"`
}

// PublicByBody resolves a public profile from a JSON body {"name": ...}.
func (h *SearchHandler) PublicByBody(ctx *gin.Context) {
	var req publicLookupRequest

	if !BindJSON(ctx, &req) {
		return
	}

	h.lookupPublic(ctx, req.Name)
}

// PublicByPath resolves a public profile from the :name path segment, where
// "first-last" and "first last" are both accepted.
func (h *SearchHandler) PublicByPath(ctx *gin.Context) {
	name := strings.TrimSpace(ctx.Param("name"))

	if name == "" {
		RespondBadRequest(ctx, "Name is required", nil)
		return
	}

	h.lookupPublic(ctx, name)
}

func (h *SearchHandler) lookupPublic(ctx *gin.Context, name string) {
	matches, err := h.profiles.FindByName(ctx.Request.Context(), name)

	if err != nil {
		h.log.ErrorContext(ctx.Request.Context(), "public profile lookup failed", "error", err)
		RespondInternal(ctx, "Lookup failed")
		return
	}

	if len(matches) == 0 {
		RespondNotFound(ctx, "Profile not found")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"profile": matches[0].Public(),
	})
}

func parseSkills(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	skills := make([]string, 0, len(parts))

	for _, part := range parts {
		s := strings.ToLower(strings.TrimSpace(part))

		if s != "" {
			skills = append(skills, s)
		}
	}

	return skills
}
