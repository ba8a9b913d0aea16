package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

type GitHubData struct {
	Login       string `json:"login,omitempty"`
	PublicRepos int    `json:"public_repos"`
	Followers   int    `json:"followers"`
	Bio         string `json:"bio,omitempty"`
	Blog        string `json:"blog,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

type LinkedInPosition struct {
	Title   string `json:"title,omitempty"`
	Company string `json:"company,omitempty"`
}

type LinkedInData struct {
	Headline   string             `json:"headline,omitempty"`
	Skills     []string           `json:"skills,omitempty"`
	Experience []LinkedInPosition `json:"experience,omitempty"`
	Education  []string           `json:"education,omitempty"`
}

type ReputationInput struct {
	Assessment *EvaluationResult `json:"assessmentResults,omitempty"`
	GitHub     *GitHubData       `json:"githubData,omitempty"`
	LinkedIn   *LinkedInData     `json:"linkedinData,omitempty"`
}

type ReputationScore struct {
	Score       int      `json:"score"`
	Explanation string   `json:"explanation"`
	Suggestions []string `json:"suggestions"`
}

// model output shape
type modelReputation struct {
	ReputationScore        int      `json:"reputationScore"`
	Explanation            string   `json:"explanation"`
	ImprovementSuggestions []string `json:"improvementSuggestions"`
}

// ScoreReputation asks the model for a 0-100 reputation score. When the
// model is unreachable or its output cannot be parsed, the deterministic
// heuristic takes over instead of failing the request.
func (s *Service) ScoreReputation(ctx context.Context, in ReputationInput) (ReputationScore, error) {
	prompt, err := buildReputationPrompt(in)

	if err != nil {
		return ReputationScore{}, err
	}

	text, err := s.gen.Generate(ctx, prompt)

	if err != nil {
		return FallbackReputationScore(in), nil
	}

	var out modelReputation

	if err := decodeInto(text, &out); err != nil {
		return FallbackReputationScore(in), nil
	}

	return ReputationScore{
		Score:       clampScore(out.ReputationScore),
		Explanation: out.Explanation,
		Suggestions: out.ImprovementSuggestions,
	}, nil
}

func buildReputationPrompt(in ReputationInput) (string, error) {
	assessmentJSON, err := json.MarshalIndent(in.Assessment, "", "  ")

	if err != nil {
		return "", err
	}

	githubJSON, err := json.MarshalIndent(in.GitHub, "", "  ")

	if err != nil {
		return "", err
	}

	linkedinSection := "NO LINKEDIN DATA AVAILABLE"

	if in.LinkedIn != nil {
		linkedinJSON, err := json.MarshalIndent(in.LinkedIn, "", "  ")

		if err != nil {
			return "", err
		}

		linkedinSection = "LINKEDIN PROFILE:\n" + string(linkedinJSON)
	}

	return fmt.Sprintf(`You are a developer reputation scoring system. Analyze the provided data and calculate a reputation score (0-100) for this developer.

ASSESSMENT RESULTS:
%s

GITHUB PROFILE:
%s

%s

Consider the following factors:
1. Assessment performance (level assigned, strengths, weaknesses)
2. GitHub presence (repos, followers, account age, activity)
3. Portfolio completeness (bio, blog/website)
4. Skills demonstrated

If LinkedIn or GitHub data is limited or missing, focus more on assessment results and available data.

Return a JSON response with:
1. A score between 0 and 100
2. A brief explanation of how the score was determined
3. Suggestions for improvement

Format as:
{
  "reputationScore": 75,
  "explanation": "Score based on combination of assessment results and available profiles...",
  "improvementSuggestions": ["Suggestion 1", "Suggestion 2", "Suggestion 3"]
}`, string(assessmentJSON), string(githubJSON), linkedinSection), nil
}

var genericSuggestions = []string{
	"Regularly contribute to open-source projects on GitHub",
	"Create a personal portfolio website showcasing your projects",
	"Obtain relevant certifications in your technology stack",
	"Participate in coding challenges and competitions",
	"Write technical blog posts or articles to demonstrate expertise",
	"Join and contribute to developer communities",
	"Complete your developer profile with a professional photo",
	"Focus on projects that demonstrate your expertise in specific areas",
}

// FallbackReputationScore is the deterministic heuristic used when the
// model's answer cannot be obtained or parsed. Starts at 50 and credits
// whatever signals are present.
func FallbackReputationScore(in ReputationInput) ReputationScore {
	score := 50
	var factors []string
	var suggestions []string

	if in.Assessment != nil {
		if in.Assessment.Passed {
			score += 10
			factors = append(factors, "successful programming assessment")
		}

		if n := len(in.Assessment.Strengths); n > 0 {
			score += minInt(n*2, 10)
			factors = append(factors, fmt.Sprintf("demonstrated strengths in %d areas", n))
		} else {
			suggestions = append(suggestions, "Complete more skill assessments to showcase your strengths")
		}

		switch strings.ToLower(in.Assessment.AssignedLevel) {
		case "expert", "pro":
			score += 15
			factors = append(factors, "expert level assessment")
		case "intermediate":
			score += 10
			factors = append(factors, "intermediate level assessment")
		default:
			score += 5
			factors = append(factors, "beginner level assessment")
		}
	} else {
		suggestions = append(suggestions, "Complete the programming assessment to improve your score")
	}

	if in.GitHub != nil {
		score += 5
		factors = append(factors, "GitHub profile")

		if in.GitHub.PublicRepos > 0 {
			score += minInt(in.GitHub.PublicRepos, 10)
			factors = append(factors, fmt.Sprintf("%d public repositories", in.GitHub.PublicRepos))
		} else {
			suggestions = append(suggestions, "Create and publish more GitHub repositories")
		}

		if in.GitHub.Followers > 0 {
			score += minInt(in.GitHub.Followers, 5)
			factors = append(factors, fmt.Sprintf("%d GitHub followers", in.GitHub.Followers))
		}

		if in.GitHub.Bio != "" {
			score += 2
			factors = append(factors, "complete GitHub bio")
		} else {
			suggestions = append(suggestions, "Add a bio to your GitHub profile")
		}
	} else {
		suggestions = append(suggestions, "Connect your GitHub profile to improve your score")
	}

	if in.LinkedIn != nil {
		score += 5
		factors = append(factors, "LinkedIn profile")

		if n := len(in.LinkedIn.Skills); n > 0 {
			score += minInt(n, 10)
			factors = append(factors, fmt.Sprintf("%d listed skills", n))
		} else {
			suggestions = append(suggestions, "Add more skills to your LinkedIn profile")
		}

		if n := len(in.LinkedIn.Experience); n > 0 {
			score += minInt(n*2, 10)
			factors = append(factors, fmt.Sprintf("professional experience (%d positions)", n))
		} else {
			suggestions = append(suggestions, "Add your work experience to your LinkedIn profile")
		}

		if len(in.LinkedIn.Education) > 0 {
			score += 3
			factors = append(factors, "educational background")
		}
	} else {
		suggestions = append(suggestions, "Connect your LinkedIn profile to improve your score")
	}

	score = clampScore(score)

	for _, s := range genericSuggestions {
		if len(suggestions) >= 3 {
			break
		}
		if !containsString(suggestions, s) {
			suggestions = append(suggestions, s)
		}
	}

	return ReputationScore{
		Score:       score,
		Explanation: "Score calculated from " + strings.Join(factors, ", "),
		Suggestions: suggestions,
	}
}

func clampScore(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
