package postgres

import (
	"context"
	"errors"

	"github.com/connectin/connectin/internal/domain/account"
	"github.com/connectin/connectin/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AccountsRepo persists accounts in the accounts table. The unique index on
// lower(email) makes Create an atomic insert-if-absent.
type AccountsRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewAccountsRepo(pool *pgxpool.Pool, prom *observability.Prom) *AccountsRepo {
	return &AccountsRepo{pool: pool, prom: prom}
}

func (r *AccountsRepo) Create(ctx context.Context, acc account.Account) error {
	err := observe(r.prom, "accounts.create", func() error {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO accounts (id, email, password_hash, role, first_name, last_name, phone, created_at, updated_at)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
			acc.ID, acc.Email, acc.PasswordHash, acc.Role, acc.FirstName, acc.LastName, acc.Phone, acc.CreatedAt, acc.UpdatedAt,
		)
		return err
	})

	if err != nil {
		if IsUniqueViolation(err) {
			return account.ErrEmailTaken
		}

		return err
	}

	return nil
}

func (r *AccountsRepo) GetByEmail(ctx context.Context, email string) (account.Account, error) {
	return r.scanOne(ctx, "accounts.get_by_email",
		`SELECT id, email, password_hash, role, first_name, last_name, phone, created_at, updated_at
		 FROM accounts
		 WHERE lower(email) = lower($1)`,
		email,
	)
}

func (r *AccountsRepo) GetByID(ctx context.Context, id string) (account.Account, error) {
	return r.scanOne(ctx, "accounts.get_by_id",
		`SELECT id, email, password_hash, role, first_name, last_name, phone, created_at, updated_at
		 FROM accounts
		 WHERE id = $1`,
		id,
	)
}

func (r *AccountsRepo) scanOne(ctx context.Context, op, query string, arg any) (account.Account, error) {
	var acc account.Account

	err := observe(r.prom, op, func() error {
		return r.pool.QueryRow(ctx, query, arg).Scan(
			&acc.ID,
			&acc.Email,
			&acc.PasswordHash,
			&acc.Role,
			&acc.FirstName,
			&acc.LastName,
			&acc.Phone,
			&acc.CreatedAt,
			&acc.UpdatedAt,
		)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return account.Account{}, account.ErrNotFound
		}

		return account.Account{}, err
	}

	return acc, nil
}
