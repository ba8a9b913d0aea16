package profile

import "strings"

// SearchFilter holds the optional public-search criteria. Filters combine as
// an implicit AND; skills and minimum experience only apply when the role
// filter is "developer", matching the public search contract.
type SearchFilter struct {
	Role          string
	Name          string
	Location      string
	Skills        []string // already lowercased
	ExperienceMin *float64
}

func (f SearchFilter) Matches(p Profile) bool {
	if f.Role != "" && p.Role != f.Role {
		return false
	}

	if f.Location != "" {
		loc := strings.ToLower(f.Location)
		if !strings.Contains(strings.ToLower(p.Country), loc) &&
			!strings.Contains(strings.ToLower(p.City), loc) {
			return false
		}
	}

	if len(f.Skills) > 0 && f.Role == "developer" {
		if p.DeveloperInfo == nil || !hasAnySkill(p.DeveloperInfo.Skills, f.Skills) {
			return false
		}
	}

	if f.ExperienceMin != nil && f.Role == "developer" {
		if p.DeveloperInfo == nil || p.DeveloperInfo.Experience < *f.ExperienceMin {
			return false
		}
	}

	if f.Name != "" {
		name := strings.ToLower(f.Name)
		if !strings.Contains(strings.ToLower(p.FirstName), name) &&
			!strings.Contains(strings.ToLower(p.LastName), name) {
			return false
		}
	}

	return true
}

func hasAnySkill(have, want []string) bool {
	for _, skill := range have {
		s := strings.ToLower(skill)
		for _, w := range want {
			if s == w {
				return true
			}
		}
	}

	return false
}

// MatchesName reports whether the profile's full name equals the given name,
// either space-joined or hyphen-joined, case-insensitively. Used by the
// public profile lookup.
func (p Profile) MatchesName(name string) bool {
	n := strings.ToLower(name)
	full := strings.ToLower(p.FirstName + " " + p.LastName)
	hyphen := strings.ToLower(p.FirstName + "-" + p.LastName)

	return n == full || n == hyphen
}

type PublicDeveloperInfo struct {
	Skills            []string       `json:"skills,omitempty"`
	Experience        float64        `json:"experience,omitempty"`
	ReputationScore   float64        `json:"reputationScore"`
	CompletedProjects int            `json:"completedProjects,omitempty"`
	GitHubProfile     *GitHubProfile `json:"githubProfile,omitempty"`
}

type PublicRecruiterInfo struct {
	Company         string  `json:"company"`
	Position        string  `json:"position"`
	Industry        string  `json:"industry,omitempty"`
	ReputationScore float64 `json:"reputationScore"`
}

// PublicProfile is the reduced projection returned by search results. It
// excludes contact details and any private fields.
type PublicProfile struct {
	ID            string               `json:"id"`
	FirstName     string               `json:"firstName"`
	LastName      string               `json:"lastName"`
	Role          string               `json:"role"`
	ProfilePic    string               `json:"profilePic,omitempty"`
	Country       string               `json:"country,omitempty"`
	City          string               `json:"city,omitempty"`
	Title         string               `json:"title,omitempty"`
	DeveloperInfo *PublicDeveloperInfo `json:"developerInfo,omitempty"`
	RecruiterInfo *PublicRecruiterInfo `json:"recruiterInfo,omitempty"`
}

func (p Profile) Public() PublicProfile {
	out := PublicProfile{
		ID:         p.ID,
		FirstName:  p.FirstName,
		LastName:   p.LastName,
		Role:       p.Role,
		ProfilePic: p.ProfilePic,
		Country:    p.Country,
		City:       p.City,
		Title:      p.Title,
	}

	if p.Role == "developer" && p.DeveloperInfo != nil {
		out.DeveloperInfo = &PublicDeveloperInfo{
			Skills:            p.DeveloperInfo.Skills,
			Experience:        p.DeveloperInfo.Experience,
			ReputationScore:   p.DeveloperInfo.ReputationScore,
			CompletedProjects: p.DeveloperInfo.CompletedProjects,
			GitHubProfile:     p.DeveloperInfo.GitHubProfile,
		}
	}

	if p.Role == "recruiter" && p.RecruiterInfo != nil {
		out.RecruiterInfo = &PublicRecruiterInfo{
			Company:         p.RecruiterInfo.Company,
			Position:        p.RecruiterInfo.Position,
			Industry:        p.RecruiterInfo.Industry,
			ReputationScore: p.RecruiterInfo.ReputationScore,
		}
	}

	return out
}
