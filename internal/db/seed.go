package db

import (
	"context"
	"errors"
	"time"

	"github.com/connectin/connectin/internal/config"
	"github.com/connectin/connectin/internal/domain/account"
	"github.com/connectin/connectin/internal/security"
	"github.com/google/uuid"
)

type accountStore interface {
	Create(ctx context.Context, acc account.Account) error
	GetByEmail(ctx context.Context, email string) (account.Account, error)
}

// EnsureSeedAccount creates the bootstrap account named in the config, if
// one is configured and not already present. Works against either store.
func EnsureSeedAccount(ctx context.Context, accounts accountStore, cfg config.Config) error {
	if cfg.SeedEmail == "" || cfg.SeedPassword == "" {
		return nil
	}

	_, err := accounts.GetByEmail(ctx, cfg.SeedEmail)

	if err == nil {
		return nil
	}

	if !errors.Is(err, account.ErrNotFound) {
		return err
	}

	hash, err := security.HashPassword(cfg.SeedPassword)

	if err != nil {
		return err
	}

	now := time.Now().UTC()

	err = accounts.Create(ctx, account.Account{
		ID:           uuid.NewString(),
		Email:        cfg.SeedEmail,
		PasswordHash: hash,
		Role:         cfg.SeedRole,
		FirstName:    cfg.SeedFirstName,
		LastName:     cfg.SeedLastName,
		CreatedAt:    now,
		UpdatedAt:    now,
	})

	if errors.Is(err, account.ErrEmailTaken) {
		return nil
	}

	return err
}
