package memory

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/connectin/connectin/internal/domain/profile"
)

func seedProfiles(t *testing.T, repo *ProfilesRepo, n int) {
	t.Helper()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < n; i++ {
		p := profile.Profile{
			ID:         fmt.Sprintf("p%02d", i),
			UserID:     fmt.Sprintf("u%02d", i),
			Email:      fmt.Sprintf("dev%02d@example.com", i),
			FirstName:  fmt.Sprintf("Dev%02d", i),
			LastName:   "Tester",
			Role:       "developer",
			JoinedDate: base.Add(time.Duration(i) * time.Hour),
			DeveloperInfo: &profile.DeveloperInfo{
				Skills:     []string{"go"},
				Experience: float64(i),
			},
		}

		if err := repo.Create(context.Background(), p); err != nil {
			t.Fatalf("Create error: %v", err)
		}
	}
}

func TestProfilesRepo_CreateDuplicates(t *testing.T) {
	repo := NewProfilesRepo()
	ctx := context.Background()

	p := profile.Profile{ID: "p1", UserID: "u1", Email: "ada@example.com"}

	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	tests := []struct {
		name string
		p    profile.Profile
	}{
		{"same user", profile.Profile{ID: "p2", UserID: "u1", Email: "other@example.com"}},
		{"same email different case", profile.Profile{ID: "p3", UserID: "u2", Email: "ADA@example.com"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := repo.Create(ctx, tc.p); !errors.Is(err, profile.ErrAlreadyExists) {
				t.Fatalf("expected ErrAlreadyExists, got %v", err)
			}
		})
	}
}

func TestProfilesRepo_SaveMissing(t *testing.T) {
	repo := NewProfilesRepo()

	err := repo.Save(context.Background(), profile.Profile{ID: "missing"})
	if !errors.Is(err, profile.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestProfilesRepo_SearchPagination(t *testing.T) {
	repo := NewProfilesRepo()
	seedProfiles(t, repo, 25)

	page1, total, err := repo.Search(context.Background(), profile.SearchFilter{Role: "developer"}, 0, 10)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if total != 25 {
		t.Fatalf("expected total 25, got %d", total)
	}
	if len(page1) != 10 {
		t.Fatalf("expected 10 results, got %d", len(page1))
	}
	// joined_date ascending
	if page1[0].ID != "p00" || page1[9].ID != "p09" {
		t.Fatalf("unexpected page ordering: %s..%s", page1[0].ID, page1[9].ID)
	}

	page3, _, err := repo.Search(context.Background(), profile.SearchFilter{Role: "developer"}, 20, 10)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(page3) != 5 {
		t.Fatalf("expected trailing page of 5, got %d", len(page3))
	}

	beyond, total, err := repo.Search(context.Background(), profile.SearchFilter{Role: "developer"}, 100, 10)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(beyond) != 0 || total != 25 {
		t.Fatalf("expected empty page with total 25, got %d results, total %d", len(beyond), total)
	}
}

func TestProfilesRepo_SearchExperienceFilter(t *testing.T) {
	repo := NewProfilesRepo()
	seedProfiles(t, repo, 10)

	min := 7.0

	out, total, err := repo.Search(context.Background(),
		profile.SearchFilter{Role: "developer", ExperienceMin: &min}, 0, 10)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if total != 3 || len(out) != 3 {
		t.Fatalf("expected 3 profiles with >= 7 years, got %d (total %d)", len(out), total)
	}
}

func TestProfilesRepo_FindByName(t *testing.T) {
	repo := NewProfilesRepo()
	ctx := context.Background()

	if err := repo.Create(ctx, profile.Profile{
		ID: "p1", UserID: "u1", Email: "ada@example.com",
		FirstName: "Ada", LastName: "Lovelace",
	}); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	tests := []struct {
		name  string
		query string
		found bool
	}{
		{"space joined", "ada lovelace", true},
		{"hyphen joined", "Ada-Lovelace", true},
		{"split fallback first only", "ada", true},
		{"split fallback hyphen parts", "ADA-LOVELACE", true},
		{"no match", "grace-hopper", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, err := repo.FindByName(ctx, tc.query)
			if err != nil {
				t.Fatalf("FindByName error: %v", err)
			}
			if got := len(out) > 0; got != tc.found {
				t.Fatalf("found = %v, want %v", got, tc.found)
			}
		})
	}
}
