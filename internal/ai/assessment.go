package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

type Question struct {
	ID             string `json:"id"`
	Text           string `json:"text"`
	CodeSnippet    string `json:"codeSnippet,omitempty"`
	ExpectedAnswer string `json:"expectedAnswer"`
}

type Assessment struct {
	ID        string     `json:"id"`
	Level     string     `json:"level"`
	Title     string     `json:"title"`
	TimeLimit int        `json:"timeLimit"`
	Questions []Question `json:"questions"`
}

type UserAnswer struct {
	QuestionID string `json:"questionId"`
	Answer     string `json:"answer"`
}

type Resource struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

type EvaluationResult struct {
	Score            float64    `json:"score"`
	Title            string     `json:"title"`
	Passed           bool       `json:"passed"`
	AssignedLevel    string     `json:"assignedLevel"`
	CheatingDetected bool       `json:"cheatingDetected,omitempty"`
	Feedback         string     `json:"feedback"`
	Strengths        []string   `json:"strengths"`
	Weaknesses       []string   `json:"weaknesses"`
	Resources        []Resource `json:"resources"`
	Timestamp        string     `json:"timestamp,omitempty"`
}

// Service drives the assessment pipeline through the Generator seam.
type Service struct {
	gen Generator
}

func NewService(gen Generator) *Service {
	return &Service{gen: gen}
}

func (s *Service) GenerateAssessment(ctx context.Context, category, title string, technologies []string) (Assessment, error) {
	prompt := buildAssessmentPrompt(category, title, technologies)

	text, err := s.gen.Generate(ctx, prompt)

	if err != nil {
		return Assessment{}, fmt.Errorf("generate assessment: %w", err)
	}

	var out Assessment

	if err := decodeInto(text, &out); err != nil {
		return Assessment{}, err
	}

	return out, nil
}

type EvaluateInput struct {
	Category         string
	Title            string
	AssessmentID     string
	Answers          []UserAnswer
	CheatingDetected bool
	Technologies     []string
}

func (s *Service) EvaluateAssessment(ctx context.Context, in EvaluateInput) (EvaluationResult, error) {
	// a flagged attempt never reaches the model
	if in.CheatingDetected {
		return EvaluationResult{
			Score:            0,
			Title:            in.Title,
			Passed:           false,
			AssignedLevel:    "Beginner",
			CheatingDetected: true,
			Feedback:         "Assessment invalidated due to detected cheating behavior.",
			Strengths:        []string{},
			Weaknesses:       []string{"Academic integrity violation"},
			Resources: []Resource{
				{Title: "Academic Integrity Guidelines", URL: "https://example.com/academic-integrity"},
			},
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		}, nil
	}

	prompt, err := buildEvaluationPrompt(in)

	if err != nil {
		return EvaluationResult{}, err
	}

	text, err := s.gen.Generate(ctx, prompt)

	if err != nil {
		return EvaluationResult{}, fmt.Errorf("evaluate assessment: %w", err)
	}

	var out EvaluationResult

	if err := decodeInto(text, &out); err != nil {
		return EvaluationResult{}, err
	}

	normalizeLevel(&out, in.Category)
	out.Title = in.Title
	out.Timestamp = time.Now().UTC().Format(time.RFC3339)

	return out, nil
}

// normalizeLevel enforces the level thresholds regardless of what the model
// claimed: pro needs 90, intermediate needs 80, and any score maps to at
// least Beginner (there is no failing level).
func normalizeLevel(r *EvaluationResult, category string) {
	switch category {
	case "pro":
		switch {
		case r.Score >= 90:
			r.AssignedLevel = "Pro"
			r.Passed = true
		case r.Score >= 80:
			r.AssignedLevel = "Intermediate"
			r.Passed = false
		default:
			r.AssignedLevel = "Beginner"
			r.Passed = false
		}
	case "intermediate":
		if r.Score >= 80 {
			r.AssignedLevel = "Intermediate"
			r.Passed = true
		} else {
			r.AssignedLevel = "Beginner"
			r.Passed = false
		}
	default:
		r.AssignedLevel = "Beginner"
		r.Passed = true
	}
}

func buildAssessmentPrompt(category, title string, technologies []string) string {
	technologiesText := "Include a balanced mix of relevant technologies for this role."

	if len(technologies) > 0 {
		technologiesText = fmt.Sprintf("The assessment should focus specifically on these technologies: %s.",
			strings.Join(technologies, ", "))
	}

	return fmt.Sprintf(`Create a programming assessment %[1]s for a %[2]s level programmer.

The assessment should include:
1. 5 programming questions appropriate %[1]s for %[2]s level
2. Each question should have a unique id
3. Some questions should include code snippets to analyze
4. The assessment should be challenging but fair
%[3]s

Format the response as a JSON object with this structure:
{
  "id": "unique-assessment-id",
  "level": "%[2]s",
  "title": "%[1]s",
  "timeLimit": 30,
  "questions": [
    {
      "id": "q1",
      "text": "Question text here",
      "codeSnippet": "// Code snippet if applicable, otherwise null",
      "expectedAnswer": "The expected answer or key points to look for"
    }
  ]
}`, title, category, technologiesText)
}

func buildEvaluationPrompt(in EvaluateInput) (string, error) {
	answersJSON, err := json.MarshalIndent(in.Answers, "", "  ")

	if err != nil {
		return "", err
	}

	technologiesText := ""

	if len(in.Technologies) > 0 {
		technologiesText = fmt.Sprintf("The assessment focused specifically on these technologies: %s.",
			strings.Join(in.Technologies, ", "))
	}

	return fmt.Sprintf(`You are evaluating a programming assessment %[1]s for a %[2]s level programmer.

Assessment ID: %[3]s
%[4]s

Here are the user's answers:
%[5]s

Please evaluate the answers and return a JSON response with:
1. A score percentage (0-100)
2. Whether they passed based on these criteria:
   - Pro level requires 90%% score
   - Intermediate level requires 80%% or higher
   - Below 80%% is a beginner level (all scores 0 or above result in at least beginner level)
3. Their assigned level based on their performance, %[1]s and the chosen category (%[2]s)
4. Brief overall feedback
5. Strengths (list of 3-5 points)
6. Weaknesses (list of 3-5 points)
7. Learning resources (list of 3-5 relevant resources with titles and URLs)
8. Note: There is no "Failed" level - any score 0 or above should be at minimum "Beginner" level

Format the response as a JSON object with this structure:
{
  "score": 85,
  "passed": true,
  "title": "software developer",
  "assignedLevel": "Intermediate",
  "feedback": "Good understanding of core concepts but needs improvement in...",
  "strengths": ["Strength 1", "Strength 2"],
  "weaknesses": ["Weakness 1", "Weakness 2"],
  "resources": [
    {
      "title": "Resource title",
      "url": "https://example.com/resource"
    }
  ]
}`, in.Title, in.Category, in.AssessmentID, technologiesText, string(answersJSON)), nil
}
