package profile

import (
	"testing"
	"time"
)

func strPtr(s string) *string      { return &s }
func f64Ptr(f float64) *float64    { return &f }
func strsPtr(s []string) *[]string { return &s }

func baseDeveloperProfile() Profile {
	return Profile{
		ID:        "p1",
		UserID:    "u1",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Country:   "UK",
		Role:      "developer",
		DeveloperInfo: &DeveloperInfo{
			Skills:     []string{"go", "postgres"},
			Experience: 5,
			Bio:        "backend engineer",
		},
		JoinedDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		LastActive: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestApply_TopLevelMerge(t *testing.T) {
	p := baseDeveloperProfile()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	p.Apply(Update{
		City:  strPtr("London"),
		Title: strPtr("Senior Engineer"),
	}, "developer", now)

	if p.City != "London" {
		t.Fatalf("expected city London, got %q", p.City)
	}
	if p.Title != "Senior Engineer" {
		t.Fatalf("expected title updated, got %q", p.Title)
	}
	// omitted fields keep their values
	if p.FirstName != "Ada" || p.Country != "UK" {
		t.Fatalf("untouched fields changed: %+v", p)
	}
	if !p.LastActive.Equal(now) {
		t.Fatalf("expected lastActive refreshed to %v, got %v", now, p.LastActive)
	}
}

func TestApply_PartialDeveloperInfoKeepsSiblings(t *testing.T) {
	p := baseDeveloperProfile()

	p.Apply(Update{
		DeveloperInfo: &DeveloperInfoPatch{
			Skills: strsPtr([]string{"go", "kubernetes"}),
		},
	}, "developer", time.Now())

	if got := p.DeveloperInfo.Skills; len(got) != 2 || got[1] != "kubernetes" {
		t.Fatalf("expected skills replaced, got %v", got)
	}
	if p.DeveloperInfo.Bio != "backend engineer" {
		t.Fatalf("expected bio preserved, got %q", p.DeveloperInfo.Bio)
	}
	if p.DeveloperInfo.Experience != 5 {
		t.Fatalf("expected experience preserved, got %v", p.DeveloperInfo.Experience)
	}
}

func TestApply_RoleGatesNestedMerge(t *testing.T) {
	p := baseDeveloperProfile()

	// a developer sending recruiterInfo must not grow one
	p.Apply(Update{
		RecruiterInfo: &RecruiterInfoPatch{Company: strPtr("Acme")},
	}, "developer", time.Now())

	if p.RecruiterInfo != nil {
		t.Fatalf("expected recruiterInfo to stay nil, got %+v", p.RecruiterInfo)
	}
}

func TestApply_RecruiterMerge(t *testing.T) {
	p := Profile{
		ID:   "p2",
		Role: "recruiter",
		RecruiterInfo: &RecruiterInfo{
			Company:  "Acme",
			Position: "Hiring Manager",
		},
	}

	p.Apply(Update{
		RecruiterInfo: &RecruiterInfoPatch{
			Industry:   strPtr("fintech"),
			TotalHires: intPtr(7),
		},
	}, "recruiter", time.Now())

	if p.RecruiterInfo.Company != "Acme" {
		t.Fatalf("expected company preserved, got %q", p.RecruiterInfo.Company)
	}
	if p.RecruiterInfo.Industry != "fintech" || p.RecruiterInfo.TotalHires != 7 {
		t.Fatalf("expected patched fields applied, got %+v", p.RecruiterInfo)
	}
}

func TestApply_CreatesNestedObjectWhenMissing(t *testing.T) {
	p := Profile{ID: "p3", Role: "developer"}

	p.Apply(Update{
		DeveloperInfo: &DeveloperInfoPatch{
			Experience: f64Ptr(3),
		},
	}, "developer", time.Now())

	if p.DeveloperInfo == nil || p.DeveloperInfo.Experience != 3 {
		t.Fatalf("expected developerInfo created with experience 3, got %+v", p.DeveloperInfo)
	}
}

func intPtr(n int) *int { return &n }
