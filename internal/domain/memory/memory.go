package memory

import (
	"context"
	"errors"
	"time"
)

// Memory is one media-journal entry.
type Memory struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	FilePath     string    `json:"file_path"`
	FileType     string    `json:"file_type"`
	OriginalName string    `json:"original_name"`
	Caption      string    `json:"caption"`
	CreatedAt    time.Time `json:"created_at"`
}

var ErrMemoryNotFound = errors.New("memory not found")

type Repository interface {
	Insert(ctx context.Context, m *Memory) (int64, error)
	ListByUser(ctx context.Context, userID int64) ([]*Memory, error)
	FilePath(ctx context.Context, id, userID int64) (string, error)
	Delete(ctx context.Context, id, userID int64) error
}
