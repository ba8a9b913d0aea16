package profile

import (
	"errors"
	"time"
)

var (
	ErrNotFound      = errors.New("profile not found")
	ErrAlreadyExists = errors.New("profile already exists")
	ErrInvalidInfo   = errors.New("invalid or missing role information")
)

type GitHubProfile struct {
	Username           string   `json:"username,omitempty"`
	HTMLURL            string   `json:"html_url,omitempty"`
	PublicRepos        int      `json:"publicRepos,omitempty"`
	TotalCommits       int      `json:"totalCommits,omitempty"`
	MergedPullRequests int      `json:"mergedPullRequests,omitempty"`
	Languages          []string `json:"languages,omitempty"`
}

type WorkExperience struct {
	CurrentTitle   string   `json:"currentTitle,omitempty"`
	CurrentCompany string   `json:"currentCompany,omitempty"`
	LinkedInURL    string   `json:"linkedinUrl,omitempty"`
	TotalYears     float64  `json:"totalYearsOfExperience,omitempty"`
	Skills         []string `json:"skills,omitempty"`
}

type DeveloperInfo struct {
	Skills            []string        `json:"skills"`
	Experience        float64         `json:"experience,omitempty"` // years, filterable in search
	GitHubProfile     *GitHubProfile  `json:"githubProfile,omitempty"`
	WorkExperience    *WorkExperience `json:"workExperience,omitempty"`
	PortfolioURL      string          `json:"portfolioUrl,omitempty"`
	Bio               string          `json:"bio,omitempty"`
	ReputationScore   float64         `json:"reputationScore"`
	Level             string          `json:"level,omitempty"`
	Education         []string        `json:"education,omitempty"`
	CompletedProjects int             `json:"completedProjects,omitempty"`
}

type RecruiterInfo struct {
	Company           string  `json:"company"`
	Position          string  `json:"position"`
	CompanyWebsite    string  `json:"companyWebsite,omitempty"`
	Industry          string  `json:"industry,omitempty"`
	CompanySize       string  `json:"companySize,omitempty"`
	ReputationScore   float64 `json:"reputationScore"`
	TotalHires        int     `json:"totalHires,omitempty"`
	ActiveJobPostings int     `json:"activeJobPostings,omitempty"`
}

// Profile is one-to-one with an account via UserID. At most one profile may
// exist per userId and per email; the repositories enforce both atomically.
type Profile struct {
	ID            string         `json:"id"`
	UserID        string         `json:"userId"`
	FirstName     string         `json:"firstName"`
	LastName      string         `json:"lastName"`
	Email         string         `json:"email"`
	Phone         string         `json:"phone,omitempty"`
	DateOfBirth   string         `json:"dateOfBirth,omitempty"`
	Gender        string         `json:"gender,omitempty"`
	Country       string         `json:"country,omitempty"`
	City          string         `json:"city,omitempty"`
	District      string         `json:"district,omitempty"`
	Province      string         `json:"province,omitempty"`
	Title         string         `json:"title,omitempty"`
	ProfilePic    string         `json:"profilePic,omitempty"`
	CoverPic      string         `json:"coverPic,omitempty"`
	Role          string         `json:"role"`
	DeveloperInfo *DeveloperInfo `json:"developerInfo,omitempty"`
	RecruiterInfo *RecruiterInfo `json:"recruiterInfo,omitempty"`
	JoinedDate    time.Time      `json:"joinedDate"`
	LastActive    time.Time      `json:"lastActive"`
}

// ValidateDeveloperInfo checks the shape required at profile creation.
func ValidateDeveloperInfo(info *DeveloperInfo) error {
	if info == nil || len(info.Skills) == 0 {
		return ErrInvalidInfo
	}

	return nil
}

// ValidateRecruiterInfo checks the shape required at profile creation.
func ValidateRecruiterInfo(info *RecruiterInfo) error {
	if info == nil || info.Company == "" || info.Position == "" {
		return ErrInvalidInfo
	}

	return nil
}
