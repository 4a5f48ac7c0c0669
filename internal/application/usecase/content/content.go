package content

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/SubhajitChakrabort/ProfilePage/adapters/event"
	"github.com/SubhajitChakrabort/ProfilePage/internal/application/service"
	"github.com/SubhajitChakrabort/ProfilePage/internal/domain/content"
	"github.com/SubhajitChakrabort/ProfilePage/internal/domain/media"
	"github.com/SubhajitChakrabort/ProfilePage/pkg/apperror"
	"github.com/SubhajitChakrabort/ProfilePage/pkg/logger"
)

// ContentUseCase drives the shared lifecycle of all content categories plus
// the skill-image collection.
type ContentUseCase struct {
	entries  content.Repository
	images   content.SkillImageRepository
	store    service.BinaryStore
	resolver *service.IdentityResolver
	events   *event.KafkaProducerClient
	logger   logger.Logger
}

func NewContentUseCase(
	entries content.Repository,
	images content.SkillImageRepository,
	store service.BinaryStore,
	resolver *service.IdentityResolver,
	events *event.KafkaProducerClient,
	log logger.Logger,
) *ContentUseCase {
	return &ContentUseCase{
		entries:  entries,
		images:   images,
		store:    store,
		resolver: resolver,
		events:   events,
		logger:   log,
	}
}

type AddEntryInput struct {
	Category   content.Category
	ProfileID  string
	Values     map[string]string
	Attachment *media.StoredFile
}

func (uc *ContentUseCase) AddEntry(ctx context.Context, in AddEntryInput) (int64, error) {
	userID, err := uc.resolver.Resolve(ctx, in.ProfileID)
	if err != nil {
		return 0, apperror.NewInternal("failed to resolve identity", err)
	}

	e := &content.Entry{UserID: userID, Values: applyDefaults(in.Category, in.Values)}
	if in.Attachment != nil {
		e.FilePath = &in.Attachment.Name
		ft := string(in.Attachment.Type)
		e.FileType = &ft
	}

	id, err := uc.entries.Insert(ctx, in.Category, e)
	if err != nil {
		return 0, apperror.NewInternal("failed to insert "+in.Category.Name, err)
	}
	if in.Attachment != nil {
		uc.publish(event.MediaEventTypeStored, userID, in.Attachment.Name, string(in.Attachment.Type))
	}
	return id, nil
}

type UpdateEntryInput struct {
	Category   content.Category
	ID         int64
	ProfileID  string
	Values     map[string]string
	Attachment *media.StoredFile
}

func (uc *ContentUseCase) UpdateEntry(ctx context.Context, in UpdateEntryInput) error {
	userID, err := uc.resolver.Resolve(ctx, in.ProfileID)
	if err != nil {
		return apperror.NewInternal("failed to resolve identity", err)
	}

	e := &content.Entry{ID: in.ID, UserID: userID, Values: in.Values}
	withFile := in.Attachment != nil

	if withFile {
		// Replace: the previous binary goes first, then the row points at
		// the new one. Not transactional; a crash in between loses the old
		// file but keeps the old reference.
		old, err := uc.entries.FilePath(ctx, in.Category, in.ID, userID)
		if err != nil {
			if errors.Is(err, content.ErrEntryNotFound) {
				return apperror.NewNotFound(in.Category.Name, "")
			}
			return apperror.NewInternal("failed to look up current file", err)
		}
		if old != nil {
			uc.removeBinary(userID, *old)
		}
		e.FilePath = &in.Attachment.Name
		ft := string(in.Attachment.Type)
		e.FileType = &ft
	}

	if err := uc.entries.Update(ctx, in.Category, e, withFile); err != nil {
		if errors.Is(err, content.ErrEntryNotFound) {
			return apperror.NewNotFound(in.Category.Name, "")
		}
		return apperror.NewInternal("failed to update "+in.Category.Name, err)
	}
	if withFile {
		uc.publish(event.MediaEventTypeReplaced, userID, in.Attachment.Name, string(in.Attachment.Type))
	}
	return nil
}

func (uc *ContentUseCase) DeleteEntry(ctx context.Context, cat content.Category, id int64, profileID string) error {
	userID, err := uc.resolver.Resolve(ctx, profileID)
	if err != nil {
		return apperror.NewInternal("failed to resolve identity", err)
	}

	old, err := uc.entries.FilePath(ctx, cat, id, userID)
	if err != nil && !errors.Is(err, content.ErrEntryNotFound) {
		return apperror.NewInternal("failed to look up current file", err)
	}
	if old != nil {
		uc.removeBinary(userID, *old)
	}

	if err := uc.entries.Delete(ctx, cat, id, userID); err != nil {
		if errors.Is(err, content.ErrEntryNotFound) {
			return apperror.NewNotFound(cat.Name, "")
		}
		return apperror.NewInternal("failed to delete "+cat.Name, err)
	}
	return nil
}

type AddSkillImageInput struct {
	SkillID    int64
	ProfileID  string
	Attachment *media.StoredFile
}

func (uc *ContentUseCase) AddSkillImage(ctx context.Context, in AddSkillImageInput) (*content.SkillImage, error) {
	userID, err := uc.resolver.Resolve(ctx, in.ProfileID)
	if err != nil {
		return nil, apperror.NewInternal("failed to resolve identity", err)
	}
	if err := uc.requireSkill(ctx, in.SkillID, userID); err != nil {
		return nil, err
	}
	if in.Attachment == nil {
		return nil, apperror.NewInvalidInput("No file uploaded", nil)
	}

	maxOrder, err := uc.images.MaxDisplayOrder(ctx, in.SkillID)
	if err != nil {
		return nil, apperror.NewInternal("failed to read display order", err)
	}

	img := &content.SkillImage{
		SkillID:      in.SkillID,
		FilePath:     in.Attachment.Name,
		FileType:     string(in.Attachment.Type),
		DisplayOrder: maxOrder + 1,
	}
	img.ID, err = uc.images.Insert(ctx, img)
	if err != nil {
		return nil, apperror.NewInternal("failed to insert skill image", err)
	}
	uc.publish(event.MediaEventTypeStored, userID, img.FilePath, img.FileType)
	return img, nil
}

func (uc *ContentUseCase) ListSkillImages(ctx context.Context, skillID int64, profileID string) ([]*content.SkillImage, error) {
	userID, err := uc.resolver.Resolve(ctx, profileID)
	if err != nil {
		return nil, apperror.NewInternal("failed to resolve identity", err)
	}
	if err := uc.requireSkill(ctx, skillID, userID); err != nil {
		return nil, err
	}
	images, err := uc.images.ListBySkill(ctx, skillID)
	if err != nil {
		return nil, apperror.NewInternal("failed to list skill images", err)
	}
	return images, nil
}

// ReorderSkillImages applies each (id, display_order) pair as an independent
// update. A mid-batch failure leaves the already-applied prefix in place.
func (uc *ContentUseCase) ReorderSkillImages(ctx context.Context, skillID int64, profileID string, orders []content.ImageOrder) error {
	userID, err := uc.resolver.Resolve(ctx, profileID)
	if err != nil {
		return apperror.NewInternal("failed to resolve identity", err)
	}
	if err := uc.requireSkill(ctx, skillID, userID); err != nil {
		return err
	}

	for _, o := range orders {
		if err := uc.images.UpdateOrder(ctx, skillID, o.ID, o.DisplayOrder); err != nil {
			uc.logger.Error("skill image reorder failed mid-batch", err,
				zap.Int64("skill_id", skillID), zap.Int64("image_id", o.ID))
			return apperror.NewInternal("failed to update image order", err)
		}
	}
	return nil
}

func (uc *ContentUseCase) DeleteSkillImage(ctx context.Context, imageID int64, profileID string) error {
	userID, err := uc.resolver.Resolve(ctx, profileID)
	if err != nil {
		return apperror.NewInternal("failed to resolve identity", err)
	}

	img, err := uc.images.FindOwned(ctx, imageID, userID)
	if err != nil {
		if errors.Is(err, content.ErrImageNotFound) {
			return apperror.NewNotFound("Image", "")
		}
		return apperror.NewInternal("failed to look up skill image", err)
	}

	if img.FilePath != "" {
		uc.removeBinary(userID, img.FilePath)
	}
	if err := uc.images.Delete(ctx, imageID); err != nil {
		return apperror.NewInternal("failed to delete skill image", err)
	}
	return nil
}

func (uc *ContentUseCase) requireSkill(ctx context.Context, skillID, userID int64) error {
	owned, err := uc.images.SkillOwned(ctx, skillID, userID)
	if err != nil {
		return apperror.NewInternal("failed to verify skill ownership", err)
	}
	if !owned {
		return apperror.NewNotFound("Skill", "")
	}
	return nil
}

func (uc *ContentUseCase) removeBinary(userID int64, name string) {
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

func (uc *ContentUseCase) publish(eventType string, userID int64, filename, fileType string) {
	go func() {
		err := uc.events.PublishMediaEvent(context.Background(), event.MediaEventPayload{
			EventType: eventType,
			UserID:    userID,
			Filename:  filename,
			FileType:  fileType,
		})
		if err != nil {
			uc.logger.Warn("failed to publish media event", zap.String("filename", filename), zap.Error(err))
		}
	}()
}

func applyDefaults(cat content.Category, values map[string]string) map[string]string {
	out := make(map[string]string, len(cat.Fields))
	for _, f := range cat.Fields {
		v := values[f.Name]
		if v == "" && f.Default != "" {
			v = f.Default
		}
		out[f.Name] = v
	}
	return out
}
