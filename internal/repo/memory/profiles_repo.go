package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/connectin/connectin/internal/domain/profile"
)

// ProfilesRepo indexes profiles by id, user id and email. Both uniqueness
// checks happen under the write lock, so create is insert-if-absent.
type ProfilesRepo struct {
	mu       sync.RWMutex
	items    map[string]profile.Profile // id -> profile
	byUserID map[string]string          // user id -> profile id
	byEmail  map[string]string          // lowercased email -> profile id
}

func NewProfilesRepo() *ProfilesRepo {
	return &ProfilesRepo{
		items:    make(map[string]profile.Profile),
		byUserID: make(map[string]string),
		byEmail:  make(map[string]string),
	}
}

func (r *ProfilesRepo) Create(_ context.Context, p profile.Profile) error {
	emailKey := strings.ToLower(p.Email)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[emailKey]; taken {
		return profile.ErrAlreadyExists
	}

	if _, taken := r.byUserID[p.UserID]; taken {
		return profile.ErrAlreadyExists
	}

	r.items[p.ID] = p
	r.byUserID[p.UserID] = p.ID
	r.byEmail[emailKey] = p.ID

	return nil
}

func (r *ProfilesRepo) GetByUserID(_ context.Context, userID string) (profile.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUserID[userID]

	if !ok {
		return profile.Profile{}, profile.ErrNotFound
	}

	return r.items[id], nil
}

// Save replaces an existing profile wholesale. The caller merges first.
func (r *ProfilesRepo) Save(_ context.Context, p profile.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[p.ID]; !ok {
		return profile.ErrNotFound
	}

	r.items[p.ID] = p

	return nil
}

// Search applies the filter passes over the full collection and pages the
// result. Total is the filtered count before pagination.
func (r *ProfilesRepo) Search(_ context.Context, f profile.SearchFilter, offset, limit int) ([]profile.Profile, int, error) {
	r.mu.RLock()
	all := make([]profile.Profile, 0, len(r.items))

	for _, p := range r.items {
		if f.Matches(p) {
			all = append(all, p)
		}
	}
	r.mu.RUnlock()

	// stable ordering for pagination
	sort.Slice(all, func(i, j int) bool {
		if !all[i].JoinedDate.Equal(all[j].JoinedDate) {
			return all[i].JoinedDate.Before(all[j].JoinedDate)
		}
		return all[i].ID < all[j].ID
	})

	total := len(all)

	if offset >= total {
		return []profile.Profile{}, total, nil
	}

	end := offset + limit
	if end > total {
		end = total
	}

	return all[offset:end], total, nil
}

// FindByName matches "first last" or "first-last" exactly, and falls back to
// equality on the split parts when nothing matched the joined forms.
func (r *ProfilesRepo) FindByName(_ context.Context, name string) ([]profile.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matches []profile.Profile

	for _, p := range r.items {
		if p.MatchesName(name) {
			matches = append(matches, p)
		}
	}

	if len(matches) > 0 {
		return matches, nil
	}

	first, last := splitName(name)

	for _, p := range r.items {
		if !strings.EqualFold(p.FirstName, first) {
			continue
		}
		if last != "" && !strings.EqualFold(p.LastName, last) {
			continue
		}
		matches = append(matches, p)
	}

	return matches, nil
}

func splitName(name string) (first, last string) {
	if i := strings.Index(name, "-"); i >= 0 {
		return name[:i], name[i+1:]
	}

	return name, ""
}
