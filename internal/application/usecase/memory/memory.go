package memory

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/SubhajitChakrabort/ProfilePage/adapters/event"
	"github.com/SubhajitChakrabort/ProfilePage/internal/application/service"
	"github.com/SubhajitChakrabort/ProfilePage/internal/domain/media"
	"github.com/SubhajitChakrabort/ProfilePage/internal/domain/memory"
	"github.com/SubhajitChakrabort/ProfilePage/pkg/apperror"
	"github.com/SubhajitChakrabort/ProfilePage/pkg/logger"
)

type MemoryUseCase struct {
	memories memory.Repository
	store    service.BinaryStore
	resolver *service.IdentityResolver
	events   *event.KafkaProducerClient
	logger   logger.Logger
}

func NewMemoryUseCase(
	memories memory.Repository,
	store service.BinaryStore,
	resolver *service.IdentityResolver,
	events *event.KafkaProducerClient,
	log logger.Logger,
) *MemoryUseCase {
	return &MemoryUseCase{
		memories: memories,
		store:    store,
		resolver: resolver,
		events:   events,
		logger:   log,
	}
}

func (uc *MemoryUseCase) List(ctx context.Context, profileID string) ([]*memory.Memory, error) {
	userID, err := uc.resolver.Resolve(ctx, profileID)
	if err != nil {
		return nil, apperror.NewInternal("failed to resolve identity", err)
	}
	memories, err := uc.memories.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.NewInternal("failed to list memories", err)
	}
	return memories, nil
}

type UploadInput struct {
	ProfileID  string
	Caption    string
	Attachment *media.StoredFile
}

func (uc *MemoryUseCase) Upload(ctx context.Context, in UploadInput) (*memory.Memory, error) {
	if in.Attachment == nil {
		return nil, apperror.NewInvalidInput("No file uploaded", nil)
	}
	userID, err := uc.resolver.Resolve(ctx, in.ProfileID)
	if err != nil {
		return nil, apperror.NewInternal("failed to resolve identity", err)
	}

	m := &memory.Memory{
		UserID:       userID,
		FilePath:     in.Attachment.Name,
		FileType:     string(in.Attachment.Type),
		OriginalName: in.Attachment.OriginalName,
		Caption:      in.Caption,
	}
	m.ID, err = uc.memories.Insert(ctx, m)
	if err != nil {
		return nil, apperror.NewInternal("failed to insert memory", err)
	}

	go func() {
		err := uc.events.PublishMediaEvent(context.Background(), event.MediaEventPayload{
			EventType: event.MediaEventTypeStored,
			UserID:    userID,
			Filename:  m.FilePath,
			FileType:  m.FileType,
		})
		if err != nil {
			uc.logger.Warn("failed to publish media event", zap.String("filename", m.FilePath), zap.Error(err))
		}
	}()
	return m, nil
}

func (uc *MemoryUseCase) Delete(ctx context.Context, id int64, profileID string) error {
	userID, err := uc.resolver.Resolve(ctx, profileID)
	if err != nil {
		return apperror.NewInternal("failed to resolve identity", err)
	}

	filePath, err := uc.memories.FilePath(ctx, id, userID)
	if err != nil {
		if errors.Is(err, memory.ErrMemoryNotFound) {
			return apperror.NewNotFound("Memory", "")
		}
		return apperror.NewInternal("failed to look up memory", err)
	}

	if err := uc.store.Delete(filePath); err != nil {
		uc.logger.Warn("failed to delete stored file", zap.String("filename", filePath), zap.Error(err))
	} else {
		go uc.events.PublishMediaEvent(context.Background(), event.MediaEventPayload{
			EventType: event.MediaEventTypeDeleted,
			UserID:    userID,
			Filename:  filePath,
		})
	}

	if err := uc.memories.Delete(ctx, id, userID); err != nil {
		return apperror.NewInternal("failed to delete memory", err)
	}
	return nil
}
