package service

import (
	"context"
	"errors"

	"github.com/SubhajitChakrabort/ProfilePage/internal/domain/user"
)

// IdentityResolver maps an optional public profile id to an internal user
// id, per request and uncached. An empty or unknown id resolves to the fixed
// default identity.
type IdentityResolver struct {
	users user.Repository
}

func NewIdentityResolver(users user.Repository) *IdentityResolver {
	return &IdentityResolver{users: users}
}

func (r *IdentityResolver) Resolve(ctx context.Context, profileID string) (int64, error) {
	if profileID == "" {
		return user.DefaultUserID, nil
	}
	id, err := r.users.FindIDByProfileID(ctx, profileID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.DefaultUserID, nil
		}
		return 0, err
	}
	return id, nil
}
