package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/connectin/connectin/internal/domain/profile"
	"github.com/connectin/connectin/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const profileColumns = `id, user_id, first_name, last_name, email, phone, date_of_birth, gender,
	country, city, district, province, title, profile_pic, cover_pic, role,
	developer_info, recruiter_info, joined_date, last_active`

// ProfilesRepo persists profiles with the role-specific payloads as JSONB.
// Unique indexes on user_id and lower(email) enforce the one-profile
// invariants at insert time.
type ProfilesRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewProfilesRepo(pool *pgxpool.Pool, prom *observability.Prom) *ProfilesRepo {
	return &ProfilesRepo{pool: pool, prom: prom}
}

func (r *ProfilesRepo) Create(ctx context.Context, p profile.Profile) error {
	err := observe(r.prom, "profiles.create", func() error {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO profiles (`+profileColumns+`)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)`,
			p.ID, p.UserID, p.FirstName, p.LastName, p.Email, p.Phone, p.DateOfBirth, p.Gender,
			p.Country, p.City, p.District, p.Province, p.Title, p.ProfilePic, p.CoverPic, p.Role,
			p.DeveloperInfo, p.RecruiterInfo, p.JoinedDate, p.LastActive,
		)
		return err
	})

	if err != nil {
		if IsUniqueViolation(err) {
			return profile.ErrAlreadyExists
		}

		return err
	}

	return nil
}

func (r *ProfilesRepo) GetByUserID(ctx context.Context, userID string) (profile.Profile, error) {
	var p profile.Profile
	var err error

	_ = observe(r.prom, "profiles.get_by_user", func() error {
		row := r.pool.QueryRow(ctx,
			`SELECT `+profileColumns+` FROM profiles WHERE user_id = $1`, userID)
		p, err = scanProfile(row)
		return err
	})

	return p, err
}

func (r *ProfilesRepo) Save(ctx context.Context, p profile.Profile) error {
	return observe(r.prom, "profiles.save", func() error { return r.save(ctx, p) })
}

func (r *ProfilesRepo) save(ctx context.Context, p profile.Profile) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE profiles
		 SET first_name = $2, last_name = $3, email = $4, phone = $5, date_of_birth = $6,
		     gender = $7, country = $8, city = $9, district = $10, province = $11,
		     title = $12, profile_pic = $13, cover_pic = $14,
		     developer_info = $15, recruiter_info = $16, last_active = $17
		 WHERE id = $1`,
		p.ID, p.FirstName, p.LastName, p.Email, p.Phone, p.DateOfBirth,
		p.Gender, p.Country, p.City, p.District, p.Province,
		p.Title, p.ProfilePic, p.CoverPic,
		p.DeveloperInfo, p.RecruiterInfo, p.LastActive,
	)

	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return profile.ErrNotFound
	}

	return nil
}

func (r *ProfilesRepo) Search(ctx context.Context, f profile.SearchFilter, offset, limit int) (out []profile.Profile, total int, err error) {
	err = observe(r.prom, "profiles.search", func() error {
		out, total, err = r.search(ctx, f, offset, limit)
		return err
	})

	return out, total, err
}

func (r *ProfilesRepo) search(ctx context.Context, f profile.SearchFilter, offset, limit int) ([]profile.Profile, int, error) {
	baseQuery := `SELECT ` + profileColumns + `, COUNT(*) OVER() AS total FROM profiles`

	var conds []string
	var args []interface{}

	pos := 1

	if f.Role != "" {
		conds = append(conds, fmt.Sprintf("role = $%d", pos))
		args = append(args, f.Role)
		pos++
	}

	if f.Location != "" {
		conds = append(conds, fmt.Sprintf("(country ILIKE $%d OR city ILIKE $%d)", pos, pos))
		args = append(args, "%"+f.Location+"%")
		pos++
	}

	if f.Name != "" {
		conds = append(conds, fmt.Sprintf("(first_name ILIKE $%d OR last_name ILIKE $%d)", pos, pos))
		args = append(args, "%"+f.Name+"%")
		pos++
	}

	// skills and experience only narrow developer searches
	if len(f.Skills) > 0 && f.Role == "developer" {
		conds = append(conds, fmt.Sprintf(
			`EXISTS (SELECT 1 FROM jsonb_array_elements_text(developer_info->'skills') AS s
			 WHERE lower(s) = ANY($%d))`, pos))
		args = append(args, f.Skills)
		pos++
	}

	if f.ExperienceMin != nil && f.Role == "developer" {
		conds = append(conds, fmt.Sprintf("(developer_info->>'experience')::numeric >= $%d", pos))
		args = append(args, *f.ExperienceMin)
		pos++
	}

	query := baseQuery

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	// stable ordering for pagination
	query += fmt.Sprintf(" ORDER BY joined_date ASC, id ASC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)

	if err != nil {
		return nil, 0, err
	}

	defer rows.Close()

	out := make([]profile.Profile, 0, limit)
	total := 0

	for rows.Next() {
		p, t, err := scanProfileWithTotal(rows)

		if err != nil {
			return nil, 0, err
		}

		total = t
		out = append(out, p)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return out, total, nil
}

func (r *ProfilesRepo) FindByName(ctx context.Context, name string) ([]profile.Profile, error) {
	matches, err := r.queryProfiles(ctx,
		`SELECT `+profileColumns+` FROM profiles
		 WHERE lower(first_name || ' ' || last_name) = lower($1)
		    OR lower(first_name || '-' || last_name) = lower($1)`,
		name,
	)

	if err != nil || len(matches) > 0 {
		return matches, err
	}

	// fallback: split on the hyphen and match the parts exactly
	first, last := name, ""
	if i := strings.Index(name, "-"); i >= 0 {
		first, last = name[:i], name[i+1:]
	}

	if last != "" {
		return r.queryProfiles(ctx,
			`SELECT `+profileColumns+` FROM profiles
			 WHERE lower(first_name) = lower($1) AND lower(last_name) = lower($2)`,
			first, last,
		)
	}

	return r.queryProfiles(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE lower(first_name) = lower($1)`,
		first,
	)
}

func (r *ProfilesRepo) queryProfiles(ctx context.Context, query string, args ...interface{}) ([]profile.Profile, error) {
	rows, err := r.pool.Query(ctx, query, args...)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var out []profile.Profile

	for rows.Next() {
		p, err := scanProfile(rows)

		if err != nil {
			return nil, err
		}

		out = append(out, p)
	}

	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (profile.Profile, error) {
	var p profile.Profile

	err := row.Scan(
		&p.ID, &p.UserID, &p.FirstName, &p.LastName, &p.Email, &p.Phone, &p.DateOfBirth, &p.Gender,
		&p.Country, &p.City, &p.District, &p.Province, &p.Title, &p.ProfilePic, &p.CoverPic, &p.Role,
		&p.DeveloperInfo, &p.RecruiterInfo, &p.JoinedDate, &p.LastActive,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return profile.Profile{}, profile.ErrNotFound
		}

		return profile.Profile{}, err
	}

	return p, nil
}

func scanProfileWithTotal(row rowScanner) (profile.Profile, int, error) {
	var p profile.Profile
	var total int

	err := row.Scan(
		&p.ID, &p.UserID, &p.FirstName, &p.LastName, &p.Email, &p.Phone, &p.DateOfBirth, &p.Gender,
		&p.Country, &p.City, &p.District, &p.Province, &p.Title, &p.ProfilePic, &p.CoverPic, &p.Role,
		&p.DeveloperInfo, &p.RecruiterInfo, &p.JoinedDate, &p.LastActive,
		&total,
	)

	if err != nil {
		return profile.Profile{}, 0, err
	}

	return p, total, nil
}
