package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Navaneeth-Nair/Neuromate/internal/domain"
)

const profileColumns = `id, email, username, COALESCE(avatar_url,''), COALESCE(mood,''), COALESCE(status,''),
        COALESCE(first_name,''), COALESCE(last_name,''), COALESCE(phone_number,''), created_at, updated_at`

// CreateAccount inserts the user, its profile and the default role in one transaction.
func (r *Repository) CreateAccount(ctx context.Context, user domain.User, profile domain.Profile) error {
	err := r.withTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `INSERT INTO users (id, email, password_hash, created_at) VALUES ($1,$2,$3,$4)`,
			user.ID, user.Email, user.PasswordHash, user.CreatedAt); err != nil {
			return err
		}

		const insertProfile = `INSERT INTO profiles (id, email, username, avatar_url, mood, status, first_name, last_name, phone_number, created_at, updated_at)
            VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`
		if _, err := tx.Exec(ctx, insertProfile,
			profile.ID,
			profile.Email,
			profile.Username,
			nullIfEmpty(profile.AvatarURL),
			nullIfEmpty(profile.Mood),
			nullIfEmpty(profile.Status),
			nullIfEmpty(profile.FirstName),
			nullIfEmpty(profile.LastName),
			nullIfEmpty(profile.PhoneNumber),
			profile.CreatedAt,
			profile.UpdatedAt,
		); err != nil {
			return err
		}

		_, err := tx.Exec(ctx, `INSERT INTO user_roles (user_id, role) VALUES ($1, 'user')`, user.ID)
		return err
	})
	if isUniqueViolation(err) {
		return domain.ErrEmailTaken
	}
	return err
}

// FindUserByEmail returns nil when no account uses the email.
func (r *Repository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT id, email, password_hash, created_at FROM users WHERE email=$1`, email)
	var user domain.User
	if err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// UpdatePassword replaces the stored hash.
func (r *Repository) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE users SET password_hash=$2 WHERE id=$1`, userID, passwordHash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetProfile returns nil when the profile does not exist.
func (r *Repository) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id=$1`, userID)
	profile, err := scanProfile(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return profile, err
}

// UpdateProfile applies the supplied fields and returns the stored profile.
func (r *Repository) UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate, at time.Time) (*domain.Profile, error) {
	sets := []string{"updated_at=$2"}
	args := []any{userID, at}
	add := func(column string, value *string) {
		if value == nil {
			return
		}
		args = append(args, *value)
		sets = append(sets, fmt.Sprintf("%s=$%d", column, len(args)))
	}
	add("username", update.Username)
	add("avatar_url", update.AvatarURL)
	add("mood", update.Mood)
	add("status", update.Status)
	add("first_name", update.FirstName)
	add("last_name", update.LastName)
	add("phone_number", update.PhoneNumber)

	query := `UPDATE profiles SET ` + strings.Join(sets, ", ") + ` WHERE id=$1 RETURNING ` + profileColumns
	profile, err := scanProfile(r.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return profile, err
}

func scanProfile(row pgx.Row) (*domain.Profile, error) {
	var p domain.Profile
	if err := row.Scan(&p.ID, &p.Email, &p.Username, &p.AvatarURL, &p.Mood, &p.Status,
		&p.FirstName, &p.LastName, &p.PhoneNumber, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
