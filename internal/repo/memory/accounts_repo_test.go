package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/connectin/connectin/internal/domain/account"
)

func TestAccountsRepo_CreateDuplicateEmail(t *testing.T) {
	repo := NewAccountsRepo()
	ctx := context.Background()

	if err := repo.Create(ctx, account.Account{ID: "a1", Email: "ada@example.com"}); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	// same email, different casing
	err := repo.Create(ctx, account.Account{ID: "a2", Email: "Ada@Example.com"})
	if !errors.Is(err, account.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAccountsRepo_GetByEmailCaseInsensitive(t *testing.T) {
	repo := NewAccountsRepo()
	ctx := context.Background()

	if err := repo.Create(ctx, account.Account{ID: "a1", Email: "ada@example.com", Role: "developer"}); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	acc, err := repo.GetByEmail(ctx, "ADA@EXAMPLE.COM")
	if err != nil {
		t.Fatalf("GetByEmail error: %v", err)
	}
	if acc.ID != "a1" {
		t.Fatalf("expected a1, got %s", acc.ID)
	}
}

func TestAccountsRepo_GetByIDNotFound(t *testing.T) {
	repo := NewAccountsRepo()

	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, account.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAccountsRepo_ConcurrentCreateSameEmail(t *testing.T) {
	repo := NewAccountsRepo()
	ctx := context.Background()

	const n = 16

	var wg sync.WaitGroup
	errs := make(chan error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- repo.Create(ctx, account.Account{ID: string(rune('a' + i)), Email: "same@example.com"})
		}(i)
	}

	wg.Wait()
	close(errs)

	succeeded := 0

	for err := range errs {
		if err == nil {
			succeeded++
		} else if !errors.Is(err, account.ErrEmailTaken) {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if succeeded != 1 {
		t.Fatalf("expected exactly one create to win, got %d", succeeded)
	}
}
