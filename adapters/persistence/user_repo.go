package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SubhajitChakrabort/ProfilePage/internal/domain/user"
)

type postgresUserRepo struct {
	db *pgxpool.Pool
}

func NewPostgresUserRepo(db *pgxpool.Pool) user.Repository {
	return &postgresUserRepo{db: db}
}

const userColumns = `id, profile_id, username, name, intro_text, profile_picture, cover_image, created_at`

func scanUser(row pgx.Row) (*user.User, error) {
	u := &user.User{}
	err := row.Scan(
		&u.ID, &u.ProfileID, &u.Username, &u.Name,
		&u.IntroText, &u.ProfilePicture, &u.CoverImage, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("scan user row: %w", err)
	}
	return u, nil
}

func (r *postgresUserRepo) Create(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (profile_id, username, name, intro_text)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query, u.ProfileID, u.Username, u.Name, u.IntroText).
		Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *postgresUserRepo) FindByID(ctx context.Context, id int64) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRow(ctx, query, id))
}

func (r *postgresUserRepo) FindByProfileID(ctx context.Context, profileID string) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE profile_id = $1`
	return scanUser(r.db.QueryRow(ctx, query, profileID))
}

func (r *postgresUserRepo) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return scanUser(r.db.QueryRow(ctx, query, username))
}

func (r *postgresUserRepo) FindIDByProfileID(ctx context.Context, profileID string) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `SELECT id FROM users WHERE profile_id = $1`, profileID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, user.ErrUserNotFound
		}
		return 0, fmt.Errorf("query user id: %w", err)
	}
	return id, nil
}

func (r *postgresUserRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check username: %w", err)
	}
	return exists, nil
}

func (r *postgresUserRepo) UpdateInfo(ctx context.Context, id int64, name, introText string) error {
	_, err := r.db.Exec(ctx, `UPDATE users SET name = $2, intro_text = $3 WHERE id = $1`, id, name, introText)
	if err != nil {
		return fmt.Errorf("update user info: %w", err)
	}
	return nil
}

func (r *postgresUserRepo) UpdateProfilePicture(ctx context.Context, id int64, filename string) error {
	_, err := r.db.Exec(ctx, `UPDATE users SET profile_picture = $2 WHERE id = $1`, id, filename)
	if err != nil {
		return fmt.Errorf("update profile picture: %w", err)
	}
	return nil
}

func (r *postgresUserRepo) UpdateCoverImage(ctx context.Context, id int64, filename string) error {
	_, err := r.db.Exec(ctx, `UPDATE users SET cover_image = $2 WHERE id = $1`, id, filename)
	if err != nil {
		return fmt.Errorf("update cover image: %w", err)
	}
	return nil
}

func (r *postgresUserRepo) ListHighlights(ctx context.Context, userID int64) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT highlight_text FROM highlights WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("query highlights: %w", err)
	}
	defer rows.Close()

	highlights := make([]string, 0)
	for rows.Next() {
		var h string
		if err := rows.Scan(&h); err != nil {
			return nil, fmt.Errorf("scan highlight: %w", err)
		}
		highlights = append(highlights, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate highlights: %w", err)
	}
	return highlights, nil
}

// ReplaceHighlights drops and recreates the user's highlight rows. The two
// statements are not wrapped in a transaction, matching the replace-all
// contract: highlights carry no identity across edits.
func (r *postgresUserRepo) ReplaceHighlights(ctx context.Context, userID int64, highlights []string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM highlights WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete highlights: %w", err)
	}
	for _, h := range highlights {
		_, err := r.db.Exec(ctx, `INSERT INTO highlights (user_id, highlight_text) VALUES ($1, $2)`, userID, h)
		if err != nil {
			return fmt.Errorf("insert highlight: %w", err)
		}
	}
	return nil
}
