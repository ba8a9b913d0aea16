package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
		id            UUID PRIMARY KEY,
		email         TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		role          TEXT NOT NULL,
		first_name    TEXT NOT NULL,
		last_name     TEXT NOT NULL,
		phone         TEXT NOT NULL DEFAULT '',
		created_at    TIMESTAMPTZ NOT NULL,
		updated_at    TIMESTAMPTZ NOT NULL
	)`,
	// the unique index is what makes account creation insert-if-absent
	`CREATE UNIQUE INDEX IF NOT EXISTS accounts_email_key ON accounts (lower(email))`,
	`CREATE TABLE IF NOT EXISTS profiles (
		id             UUID PRIMARY KEY,
		user_id        UUID NOT NULL REFERENCES accounts (id),
		first_name     TEXT NOT NULL,
		last_name      TEXT NOT NULL,
		email          TEXT NOT NULL,
		phone          TEXT NOT NULL DEFAULT '',
		date_of_birth  TEXT NOT NULL DEFAULT '',
		gender         TEXT NOT NULL DEFAULT '',
		country        TEXT NOT NULL DEFAULT '',
		city           TEXT NOT NULL DEFAULT '',
		district       TEXT NOT NULL DEFAULT '',
		province       TEXT NOT NULL DEFAULT '',
		title          TEXT NOT NULL DEFAULT '',
		profile_pic    TEXT NOT NULL DEFAULT '',
		cover_pic      TEXT NOT NULL DEFAULT '',
		role           TEXT NOT NULL,
		developer_info JSONB,
		recruiter_info JSONB,
		joined_date    TIMESTAMPTZ NOT NULL,
		last_active    TIMESTAMPTZ NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS profiles_user_id_key ON profiles (user_id)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS profiles_email_key ON profiles (lower(email))`,
	`CREATE INDEX IF NOT EXISTS profiles_role_idx ON profiles (role)`,
	`CREATE INDEX IF NOT EXISTS profiles_name_idx ON profiles (lower(first_name), lower(last_name))`,
}

// EnsureSchema creates the tables and indexes if they do not exist yet.
// Statements are idempotent, so running at every startup is safe.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}

	return nil
}
