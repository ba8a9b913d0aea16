package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/connectin/connectin/internal/ai"
)

// Assessor is the AI pipeline surface used by the assessment endpoints.
type Assessor interface {
	GenerateAssessment(ctx context.Context, category, title string, technologies []string) (ai.Assessment, error)
	EvaluateAssessment(ctx context.Context, in ai.EvaluateInput) (ai.EvaluationResult, error)
	ScoreReputation(ctx context.Context, in ai.ReputationInput) (ai.ReputationScore, error)
}

type AssessmentsHandler struct {
	svc Assessor
	log *slog.Logger
}

func NewAssessmentsHandler(svc Assessor, log *slog.Logger) *AssessmentsHandler {
	return &AssessmentsHandler{
		svc: svc,
		log: log,
	}
}

type generateAssessmentRequest struct {
	Category     string   `json:"category" binding:"required,oneof=beginner intermediate pro"`
	Title        string   `json:"title" binding:"required"`
	Technologies []string `json:"technologies"`
}

func (h *AssessmentsHandler) Generate(ctx *gin.Context) {
	var req generateAssessmentRequest

	if !BindJSON(ctx, &req) {
		return
	}

	assessment, err := h.svc.GenerateAssessment(ctx.Request.Context(), req.Category, req.Title, req.Technologies)

	if err != nil {
		h.respondAIError(ctx, "Failed to generate assessment", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success":    true,
		"assessment": assessment,
	})
}

type evaluateAssessmentRequest struct {
	Category         string          `json:"category" binding:"required,oneof=beginner intermediate pro"`
	Title            string          `json:"title" binding:"required"`
	AssessmentID     string          `json:"assessmentId"`
	Answers          []ai.UserAnswer `json:"answers" binding:"required"`
	CheatingDetected bool            `json:"cheatingDetected"`
	Technologies     []string        `json:"technologies"`
}

func (h *AssessmentsHandler) Evaluate(ctx *gin.Context) {
	var req evaluateAssessmentRequest

	if !BindJSON(ctx, &req) {
		return
	}

	result, err := h.svc.EvaluateAssessment(ctx.Request.Context(), ai.EvaluateInput{
		Category:         req.Category,
		Title:            req.Title,
		AssessmentID:     req.AssessmentID,
		Answers:          req.Answers,
		CheatingDetected: req.CheatingDetected,
		Technologies:     req.Technologies,
	})

	if err != nil {
		h.respondAIError(ctx, "Failed to evaluate assessment", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"result":  result,
	})
}

type reputationRequest struct {
	Assessment *ai.EvaluationResult `json:"assessmentResults"`
	GitHub     *ai.GitHubData       `json:"githubData"`
	LinkedIn   *ai.LinkedInData     `json:"linkedinData"`
}

// Reputation never fails on model trouble; the service falls back to the
// deterministic heuristic internally.
func (h *AssessmentsHandler) Reputation(ctx *gin.Context) {
	var req reputationRequest

	if !BindJSON(ctx, &req) {
		return
	}

	score, err := h.svc.ScoreReputation(ctx.Request.Context(), ai.ReputationInput{
		Assessment: req.Assessment,
		GitHub:     req.GitHub,
		LinkedIn:   req.LinkedIn,
	})

	if err != nil {
		h.respondAIError(ctx, "Failed to calculate reputation score", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success":                true,
		"reputationScore":        score.Score,
		"explanation":            score.Explanation,
		"improvementSuggestions": score.Suggestions,
	})
}

// respondAIError distinguishes unparsable model output from transport
// failures so clients can tell a bad generation apart from a dead provider.
func (h *AssessmentsHandler) respondAIError(ctx *gin.Context, message string, err error) {
	h.log.ErrorContext(ctx.Request.Context(), "ai pipeline error", "error", err)

	var parseErr *ai.ParseError

	if errors.As(err, &parseErr) || errors.Is(err, ai.ErrNoJSON) {
		RespondError(ctx, http.StatusBadGateway, "model_output_invalid", message, nil)
		return
	}

	RespondUpstream(ctx, message, err)
}
