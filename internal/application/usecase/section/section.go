package section

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/SubhajitChakrabort/ProfilePage/adapters/event"
	"github.com/SubhajitChakrabort/ProfilePage/internal/application/service"
	"github.com/SubhajitChakrabort/ProfilePage/internal/application/usecase/profile"
	"github.com/SubhajitChakrabort/ProfilePage/internal/domain/media"
	"github.com/SubhajitChakrabort/ProfilePage/internal/domain/section"
	"github.com/SubhajitChakrabort/ProfilePage/internal/domain/user"
	"github.com/SubhajitChakrabort/ProfilePage/pkg/apperror"
	"github.com/SubhajitChakrabort/ProfilePage/pkg/logger"
)

type SectionUseCase struct {
	sections section.Repository
	users    user.Repository
	store    service.BinaryStore
	resolver *service.IdentityResolver
	cache    profile.Cache
	events   *event.KafkaProducerClient
	logger   logger.Logger
}

func NewSectionUseCase(
	sections section.Repository,
	users user.Repository,
	store service.BinaryStore,
	resolver *service.IdentityResolver,
	cache profile.Cache,
	events *event.KafkaProducerClient,
	log logger.Logger,
) *SectionUseCase {
	return &SectionUseCase{
		sections: sections,
		users:    users,
		store:    store,
		resolver: resolver,
		cache:    cache,
		events:   events,
		logger:   log,
	}
}

type CreateSectionInput struct {
	ProfileID string
	Name      string
	Icon      string
}

func (uc *SectionUseCase) Create(ctx context.Context, in CreateSectionInput) (*section.Section, error) {
	if in.Name == "" {
		return nil, apperror.NewInvalidInput("Section name is required", nil)
	}
	userID, err := uc.resolver.Resolve(ctx, in.ProfileID)
	if err != nil {
		return nil, apperror.NewInternal("failed to resolve identity", err)
	}

	s := &section.Section{UserID: userID, Name: in.Name, Icon: in.Icon}
	s.ID, err = uc.sections.Insert(ctx, s)
	if err != nil {
		return nil, apperror.NewInternal("failed to create section", err)
	}
	uc.invalidate(ctx, userID)
	return s, nil
}

func (uc *SectionUseCase) List(ctx context.Context, profileID string) ([]*section.Section, error) {
	userID, err := uc.resolver.Resolve(ctx, profileID)
	if err != nil {
		return nil, apperror.NewInternal("failed to resolve identity", err)
	}
	sections, err := uc.sections.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.NewInternal("failed to list sections", err)
	}
	return sections, nil
}

func (uc *SectionUseCase) Update(ctx context.Context, sectionID int64, profileID, name, icon string) error {
	userID, err := uc.resolver.Resolve(ctx, profileID)
	if err != nil {
		return apperror.NewInternal("failed to resolve identity", err)
	}
	if err := uc.sections.Update(ctx, sectionID, userID, name, icon); err != nil {
		if errors.Is(err, section.ErrSectionNotFound) {
			return apperror.NewNotFound("Section", "")
		}
		return apperror.NewInternal("failed to update section", err)
	}
	uc.invalidate(ctx, userID)
	return nil
}

// Delete removes a section, its items (FK cascade) and their binaries.
func (uc *SectionUseCase) Delete(ctx context.Context, sectionID int64) error {
	owner, err := uc.sections.Owner(ctx, sectionID)
	if err != nil {
		if errors.Is(err, section.ErrSectionNotFound) {
			return apperror.NewNotFound("Section", "")
		}
		return apperror.NewInternal("failed to resolve section owner", err)
	}
	files, err := uc.sections.ItemFiles(ctx, sectionID)
	if err != nil {
		return apperror.NewInternal("failed to list section item files", err)
	}
	for _, f := range files {
		uc.removeBinary(f)
	}
	if err := uc.sections.Delete(ctx, sectionID); err != nil {
		return apperror.NewInternal("failed to delete section", err)
	}
	uc.invalidate(ctx, owner)
	return nil
}

type ItemInput struct {
	SectionID   int64
	Title       string
	Icon        string
	Description string
	Attachment  *media.StoredFile
}

func (uc *SectionUseCase) AddItem(ctx context.Context, in ItemInput) (*section.Item, error) {
	owner, err := uc.sections.Owner(ctx, in.SectionID)
	if err != nil {
		if errors.Is(err, section.ErrSectionNotFound) {
			return nil, apperror.NewNotFound("Section", "")
		}
		return nil, apperror.NewInternal("failed to resolve section owner", err)
	}

	it := &section.Item{
		SectionID:   in.SectionID,
		Title:       in.Title,
		Icon:        in.Icon,
		Description: in.Description,
	}
	if in.Attachment != nil {
		it.FilePath = &in.Attachment.Name
		ft := string(in.Attachment.Type)
		it.FileType = &ft
	}

	it.ID, err = uc.sections.InsertItem(ctx, it)
	if err != nil {
		return nil, apperror.NewInternal("failed to add section item", err)
	}
	uc.invalidate(ctx, owner)
	return it, nil
}

func (uc *SectionUseCase) ListItems(ctx context.Context, sectionID int64) ([]*section.Item, error) {
	items, err := uc.sections.ListItems(ctx, sectionID)
	if err != nil {
		return nil, apperror.NewInternal("failed to list section items", err)
	}
	return items, nil
}

type UpdateItemInput struct {
	ItemID      int64
	Title       string
	Icon        string
	Description string
	Attachment  *media.StoredFile
}

func (uc *SectionUseCase) UpdateItem(ctx context.Context, in UpdateItemInput) error {
	owner, err := uc.sections.ItemOwner(ctx, in.ItemID)
	if err != nil {
		if errors.Is(err, section.ErrItemNotFound) {
			return apperror.NewNotFound("Item", "")
		}
		return apperror.NewInternal("failed to resolve item owner", err)
	}

	it := &section.Item{
		ID:          in.ItemID,
		Title:       in.Title,
		Icon:        in.Icon,
		Description: in.Description,
	}
	withFile := in.Attachment != nil

	if withFile {
		old, err := uc.sections.ItemFilePath(ctx, in.ItemID)
		if err != nil {
			if errors.Is(err, section.ErrItemNotFound) {
				return apperror.NewNotFound("Item", "")
			}
			return apperror.NewInternal("failed to look up current file", err)
		}
		if old != nil {
			uc.removeBinary(*old)
		}
		it.FilePath = &in.Attachment.Name
		ft := string(in.Attachment.Type)
		it.FileType = &ft
	}

	if err := uc.sections.UpdateItem(ctx, it, withFile); err != nil {
		if errors.Is(err, section.ErrItemNotFound) {
			return apperror.NewNotFound("Item", "")
		}
		return apperror.NewInternal("failed to update section item", err)
	}
	uc.invalidate(ctx, owner)
	return nil
}

func (uc *SectionUseCase) DeleteItem(ctx context.Context, itemID int64) error {
	owner, err := uc.sections.ItemOwner(ctx, itemID)
	if err != nil {
		if errors.Is(err, section.ErrItemNotFound) {
			return apperror.NewNotFound("Item", "")
		}
		return apperror.NewInternal("failed to resolve item owner", err)
	}
	old, err := uc.sections.ItemFilePath(ctx, itemID)
	if err != nil && !errors.Is(err, section.ErrItemNotFound) {
		return apperror.NewInternal("failed to look up current file", err)
	}
	if old != nil {
		uc.removeBinary(*old)
	}
	if err := uc.sections.DeleteItem(ctx, itemID); err != nil {
		return apperror.NewInternal("failed to delete section item", err)
	}
	uc.invalidate(ctx, owner)
	return nil
}

// invalidate drops cached profile payloads for the section's owner. Cached
// GET responses embed the section tree, so every mutation goes through here.
func (uc *SectionUseCase) invalidate(ctx context.Context, userID int64) {
	if uc.cache == nil {
		return
	}
	u, err := uc.users.FindByID(ctx, userID)
	if err != nil {
		uc.logger.Warn("cache invalidation skipped", zap.Int64("user_id", userID), zap.Error(err))
		return
	}
	uc.cache.Invalidate(ctx, profile.CacheKeyProfileID(u.ProfileID), profile.CacheKeyUsername(u.Username))
}

func (uc *SectionUseCase) removeBinary(name string) {
	if err := uc.store.Delete(name); err != nil {
		uc.logger.Warn("failed to delete stored file", zap.String("filename", name), zap.Error(err))
		return
	}
	go uc.events.PublishMediaEvent(context.Background(), event.MediaEventPayload{
		EventType: event.MediaEventTypeDeleted,
		Filename:  name,
	})
}
