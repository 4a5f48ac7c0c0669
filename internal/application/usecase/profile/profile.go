package profile

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/SubhajitChakrabort/ProfilePage/adapters/event"
	"github.com/SubhajitChakrabort/ProfilePage/internal/application/service"
	"github.com/SubhajitChakrabort/ProfilePage/internal/domain/media"
	"github.com/SubhajitChakrabort/ProfilePage/internal/domain/section"
	"github.com/SubhajitChakrabort/ProfilePage/internal/domain/user"
	"github.com/SubhajitChakrabort/ProfilePage/pkg/apperror"
	"github.com/SubhajitChakrabort/ProfilePage/pkg/logger"
)

// Cache holds rendered public profile payloads. Implementations may be
// absent (nil) in which case every read goes to the store.
type Cache interface {
	GetProfile(ctx context.Context, key string) (*View, bool)
	SetProfile(ctx context.Context, key string, v *View)
	Invalidate(ctx context.Context, keys ...string)
}

func CacheKeyProfileID(profileID string) string { return "profile:id:" + profileID }
func CacheKeyUsername(username string) string   { return "profile:user:" + username }

// UserView is the public user representation, highlights inlined.
type UserView struct {
	user.User
	Highlights []string `json:"highlights"`
}

// View is the full public profile payload.
type View struct {
	User     UserView           `json:"user"`
	Sections []*section.Section `json:"sections"`
}

type ProfileUseCase struct {
	users    user.Repository
	sections section.Repository
	store    service.BinaryStore
	resolver *service.IdentityResolver
	cache    Cache
	events   *event.KafkaProducerClient
	logger   logger.Logger
}

func NewProfileUseCase(
	users user.Repository,
	sections section.Repository,
	store service.BinaryStore,
	resolver *service.IdentityResolver,
	cache Cache,
	events *event.KafkaProducerClient,
	log logger.Logger,
) *ProfileUseCase {
	return &ProfileUseCase{
		users:    users,
		sections: sections,
		store:    store,
		resolver: resolver,
		cache:    cache,
		events:   events,
		logger:   log,
	}
}

type CreateInput struct {
	Name       string
	Username   string
	IntroText  string
	Highlights string
	Picture    *media.StoredFile
	Cover      *media.StoredFile
}

type CreateOutput struct {
	ProfileID string
	UserID    int64
}

func (uc *ProfileUseCase) Create(ctx context.Context, in CreateInput) (*CreateOutput, error) {
	if in.Name == "" || in.Username == "" || in.IntroText == "" || in.Highlights == "" {
		return nil, apperror.NewInvalidInput("Name, username, intro text, and highlights are required", nil)
	}
	if !user.ValidUsername(in.Username) {
		return nil, apperror.NewInvalidInput("Username can only contain letters, numbers, and underscores", nil)
	}

	taken, err := uc.users.UsernameExists(ctx, in.Username)
	if err != nil {
		return nil, apperror.NewInternal("failed to check username", err)
	}
	if taken {
		return nil, apperror.NewConflict("Username already taken. Please choose a different one.")
	}

	u := &user.User{
		ProfileID: user.NewProfileID(),
		Username:  in.Username,
		Name:      in.Name,
		IntroText: in.IntroText,
	}
	if err := uc.users.Create(ctx, u); err != nil {
		return nil, apperror.NewInternal("failed to create user", err)
	}

	if in.Picture != nil {
		if err := uc.users.UpdateProfilePicture(ctx, u.ID, in.Picture.Name); err != nil {
			return nil, apperror.NewInternal("failed to set profile picture", err)
		}
		uc.publish(event.MediaEventTypeStored, u.ID, in.Picture)
	}
	if in.Cover != nil {
		if err := uc.users.UpdateCoverImage(ctx, u.ID, in.Cover.Name); err != nil {
			return nil, apperror.NewInternal("failed to set cover image", err)
		}
		uc.publish(event.MediaEventTypeStored, u.ID, in.Cover)
	}

	if err := uc.users.ReplaceHighlights(ctx, u.ID, user.ParseHighlights(in.Highlights)); err != nil {
		return nil, apperror.NewInternal("failed to create highlights", err)
	}

	return &CreateOutput{ProfileID: u.ProfileID, UserID: u.ID}, nil
}

func (uc *ProfileUseCase) GetByProfileID(ctx context.Context, profileID string) (*View, error) {
	key := CacheKeyProfileID(profileID)
	if uc.cache != nil {
		if v, ok := uc.cache.GetProfile(ctx, key); ok {
			return v, nil
		}
	}

	u, err := uc.users.FindByProfileID(ctx, profileID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, apperror.NewNotFound("Profile", profileID)
		}
		return nil, apperror.NewInternal("failed to load profile", err)
	}
	return uc.assemble(ctx, u, key)
}

func (uc *ProfileUseCase) GetByUsername(ctx context.Context, username string) (*View, error) {
	key := CacheKeyUsername(username)
	if uc.cache != nil {
		if v, ok := uc.cache.GetProfile(ctx, key); ok {
			return v, nil
		}
	}

	u, err := uc.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, apperror.NewNotFound("Profile", username)
		}
		return nil, apperror.NewInternal("failed to load profile", err)
	}
	return uc.assemble(ctx, u, key)
}

func (uc *ProfileUseCase) assemble(ctx context.Context, u *user.User, cacheKey string) (*View, error) {
	highlights, err := uc.users.ListHighlights(ctx, u.ID)
	if err != nil {
		return nil, apperror.NewInternal("failed to load highlights", err)
	}
	sections, err := uc.sections.ListByUser(ctx, u.ID)
	if err != nil {
		return nil, apperror.NewInternal("failed to load sections", err)
	}
	for _, s := range sections {
		items, err := uc.sections.ListItems(ctx, s.ID)
		if err != nil {
			return nil, apperror.NewInternal("failed to load section items", err)
		}
		s.Items = items
	}

	v := &View{User: UserView{User: *u, Highlights: highlights}, Sections: sections}
	if uc.cache != nil {
		uc.cache.SetProfile(ctx, cacheKey, v)
	}
	return v, nil
}

type UpdateInput struct {
	ProfileID  string
	Name       string
	IntroText  string
	Highlights string
}

func (uc *ProfileUseCase) Update(ctx context.Context, in UpdateInput) error {
	if in.Name == "" || in.IntroText == "" || in.Highlights == "" {
		return apperror.NewInvalidInput("Name, intro text, and highlights are required", nil)
	}

	userID, err := uc.resolver.Resolve(ctx, in.ProfileID)
	if err != nil {
		return apperror.NewInternal("failed to resolve identity", err)
	}

	if err := uc.users.UpdateInfo(ctx, userID, in.Name, in.IntroText); err != nil {
		return apperror.NewInternal("failed to update profile", err)
	}
	// Full replace: highlights carry no identity across edits. Not atomic;
	// a failure here leaves the profile updated with stale highlights.
	if err := uc.users.ReplaceHighlights(ctx, userID, user.ParseHighlights(in.Highlights)); err != nil {
		return apperror.NewInternal("failed to replace highlights", err)
	}

	uc.invalidate(ctx, userID)
	return nil
}

// UpdatePicture swaps the profile picture, removing the previous binary.
// Seed defaults (names starting "user.") are never deleted.
func (uc *ProfileUseCase) UpdatePicture(ctx context.Context, profileID string, f *media.StoredFile) (string, error) {
	if f == nil {
		return "", apperror.NewInvalidInput("No file uploaded", nil)
	}

	userID, err := uc.resolver.Resolve(ctx, profileID)
	if err != nil {
		return "", apperror.NewInternal("failed to resolve identity", err)
	}
	u, err := uc.users.FindByID(ctx, userID)
	if err != nil {
		return "", apperror.NewInternal("failed to load user", err)
	}

	if u.ProfilePicture != nil && !strings.HasPrefix(*u.ProfilePicture, "user.") {
		uc.removeBinary(userID, *u.ProfilePicture)
	}

	if err := uc.users.UpdateProfilePicture(ctx, userID, f.Name); err != nil {
		return "", apperror.NewInternal("failed to update profile picture", err)
	}
	uc.publish(event.MediaEventTypeReplaced, userID, f)
	uc.invalidate(ctx, userID)
	return f.Name, nil
}

func (uc *ProfileUseCase) UpdateCover(ctx context.Context, profileID string, f *media.StoredFile) (string, error) {
	if f == nil {
		return "", apperror.NewInvalidInput("No file uploaded", nil)
	}

	userID, err := uc.resolver.Resolve(ctx, profileID)
	if err != nil {
		return "", apperror.NewInternal("failed to resolve identity", err)
	}
	u, err := uc.users.FindByID(ctx, userID)
	if err != nil {
		return "", apperror.NewInternal("failed to load user", err)
	}

	if u.CoverImage != nil {
		uc.removeBinary(userID, *u.CoverImage)
	}

	if err := uc.users.UpdateCoverImage(ctx, userID, f.Name); err != nil {
		return "", apperror.NewInternal("failed to update cover image", err)
	}
	uc.publish(event.MediaEventTypeReplaced, userID, f)
	uc.invalidate(ctx, userID)
	return f.Name, nil
}

func (uc *ProfileUseCase) removeBinary(userID int64, name string) {
	if err := uc.store.Delete(name); err != nil {
		uc.logger.Warn("failed to delete stored file", zap.String("filename", name), zap.Error(err))
		return
	}
	go uc.events.PublishMediaEvent(context.Background(), event.MediaEventPayload{
		EventType: event.MediaEventTypeDeleted,
		UserID:    userID,
		Filename:  name,
	})
}

func (uc *ProfileUseCase) publish(eventType string, userID int64, f *media.StoredFile) {
	go func() {
		err := uc.events.PublishMediaEvent(context.Background(), event.MediaEventPayload{
			EventType: eventType,
			UserID:    userID,
			Filename:  f.Name,
			FileType:  string(f.Type),
		})
		if err != nil {
			uc.logger.Warn("failed to publish media event", zap.String("filename", f.Name), zap.Error(err))
		}
	}()
}

func (uc *ProfileUseCase) invalidate(ctx context.Context, userID int64) {
	if uc.cache == nil {
		return
	}
	u, err := uc.users.FindByID(ctx, userID)
	if err != nil {
		uc.logger.Warn("cache invalidation skipped", zap.Int64("user_id", userID), zap.Error(err))
		return
	}
	uc.cache.Invalidate(ctx, CacheKeyProfileID(u.ProfileID), CacheKeyUsername(u.Username))
}
