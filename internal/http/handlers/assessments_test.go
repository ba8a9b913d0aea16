package handlers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/connectin/connectin/internal/ai"
	"github.com/connectin/connectin/internal/http/handlers"
)

type fakeAssessor struct {
	generateFn   func(ctx context.Context, category, title string, technologies []string) (ai.Assessment, error)
	evaluateFn   func(ctx context.Context, in ai.EvaluateInput) (ai.EvaluationResult, error)
	reputationFn func(ctx context.Context, in ai.ReputationInput) (ai.ReputationScore, error)
}

func (f *fakeAssessor) GenerateAssessment(ctx context.Context, category, title string, technologies []string) (ai.Assessment, error) {
	if f.generateFn != nil {
		return f.generateFn(ctx, category, title, technologies)
	}
	return ai.Assessment{}, nil
}

func (f *fakeAssessor) EvaluateAssessment(ctx context.Context, in ai.EvaluateInput) (ai.EvaluationResult, error) {
	if f.evaluateFn != nil {
		return f.evaluateFn(ctx, in)
	}
	return ai.EvaluationResult{}, nil
}

func (f *fakeAssessor) ScoreReputation(ctx context.Context, in ai.ReputationInput) (ai.ReputationScore, error) {
	if f.reputationFn != nil {
		return f.reputationFn(ctx, in)
	}
	return ai.ReputationScore{}, nil
}

func newAssessmentsRouter(svc *fakeAssessor) *gin.Engine {
	h := handlers.NewAssessmentsHandler(svc, testLogger())

	router := gin.New()
	router.POST("/assessments/generate", h.Generate)
	router.POST("/assessments/evaluate", h.Evaluate)
	router.POST("/reputation/score", h.Reputation)

	return router
}

func TestGenerateAssessment_Handler(t *testing.T) {
	svc := &fakeAssessor{
		generateFn: func(_ context.Context, category, title string, technologies []string) (ai.Assessment, error) {
			if category != "intermediate" || title != "backend developer" {
				t.Fatalf("unexpected args: %s %s", category, title)
			}
			if len(technologies) != 1 || technologies[0] != "go" {
				t.Fatalf("unexpected technologies: %v", technologies)
			}
			return ai.Assessment{ID: "a1", Level: category, Title: title, TimeLimit: 30}, nil
		},
	}

	router := newAssessmentsRouter(svc)

	w := postJSON(t, router, "/assessments/generate", gin.H{
		"category":     "intermediate",
		"title":        "backend developer",
		"technologies": []string{"go"},
	}, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	a, _ := body["assessment"].(map[string]any)

	if a["id"] != "a1" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestGenerateAssessment_InvalidCategory(t *testing.T) {
	router := newAssessmentsRouter(&fakeAssessor{})

	w := postJSON(t, router, "/assessments/generate", gin.H{
		"category": "wizard",
		"title":    "backend developer",
	}, nil)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestEvaluateAssessment_Handler(t *testing.T) {
	svc := &fakeAssessor{
		evaluateFn: func(_ context.Context, in ai.EvaluateInput) (ai.EvaluationResult, error) {
			if !in.CheatingDetected {
				t.Fatalf("expected cheating flag forwarded")
			}
			return ai.EvaluationResult{Score: 0, AssignedLevel: "Beginner", CheatingDetected: true}, nil
		},
	}

	router := newAssessmentsRouter(svc)

	w := postJSON(t, router, "/assessments/evaluate", gin.H{
		"category":         "pro",
		"title":            "backend developer",
		"answers":          []gin.H{{"questionId": "q1", "answer": "42"}},
		"cheatingDetected": true,
	}, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	res, _ := body["result"].(map[string]any)

	if res["assignedLevel"] != "Beginner" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestEvaluateAssessment_ModelGarbage(t *testing.T) {
	svc := &fakeAssessor{
		evaluateFn: func(_ context.Context, _ ai.EvaluateInput) (ai.EvaluationResult, error) {
			return ai.EvaluationResult{}, &ai.ParseError{Raw: "nonsense", Err: ai.ErrNoJSON}
		},
	}

	router := newAssessmentsRouter(svc)

	w := postJSON(t, router, "/assessments/evaluate", gin.H{
		"category": "pro",
		"title":    "backend developer",
		"answers":  []gin.H{},
	}, nil)

	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", w.Code)
	}
}

func TestReputation_Handler(t *testing.T) {
	svc := &fakeAssessor{
		reputationFn: func(_ context.Context, in ai.ReputationInput) (ai.ReputationScore, error) {
			if in.GitHub == nil || in.GitHub.PublicRepos != 4 {
				t.Fatalf("expected github data forwarded, got %+v", in.GitHub)
			}
			return ai.ReputationScore{Score: 72, Explanation: "solid", Suggestions: []string{"a"}}, nil
		},
	}

	router := newAssessmentsRouter(svc)

	w := postJSON(t, router, "/reputation/score", gin.H{
		"githubData": gin.H{"public_repos": 4},
	}, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)

	if body["reputationScore"] != float64(72) || body["explanation"] != "solid" {
		t.Fatalf("unexpected body: %v", body)
	}
}
