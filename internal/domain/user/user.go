package user

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultUserID is the identity used when no profile id accompanies a
// request. Kept for backward compatibility with pre-profile-id clients; it
// is not a security boundary.
const DefaultUserID int64 = 1

type User struct {
	ID             int64     `json:"id"`
	ProfileID      string    `json:"profile_id"`
	Username       string    `json:"username"`
	Name           string    `json:"name"`
	IntroText      string    `json:"intro_text"`
	ProfilePicture *string   `json:"profile_picture"`
	CoverImage     *string   `json:"cover_image"`
	CreatedAt      time.Time `json:"created_at"`
}

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already taken")
)

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

func ValidUsername(username string) bool {
	return usernameRe.MatchString(username)
}

// NewProfileID returns the public 12-character profile identifier.
func NewProfileID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// ParseHighlights splits a comma-separated highlight list, trimming entries
// and dropping empties.
func ParseHighlights(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

type Repository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id int64) (*User, error)
	FindByProfileID(ctx context.Context, profileID string) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindIDByProfileID(ctx context.Context, profileID string) (int64, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	UpdateInfo(ctx context.Context, id int64, name, introText string) error
	UpdateProfilePicture(ctx context.Context, id int64, filename string) error
	UpdateCoverImage(ctx context.Context, id int64, filename string) error
	ListHighlights(ctx context.Context, userID int64) ([]string, error)
	ReplaceHighlights(ctx context.Context, userID int64, highlights []string) error
}
