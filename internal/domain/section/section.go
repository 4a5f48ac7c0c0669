package section

import (
	"context"
	"errors"
	"time"
)

type Section struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	Name         string    `json:"name"`
	Icon         string    `json:"icon"`
	SectionOrder int       `json:"section_order"`
	CreatedAt    time.Time `json:"created_at"`
	Items        []*Item   `json:"items,omitempty"`
}

type Item struct {
	ID          int64     `json:"id"`
	SectionID   int64     `json:"section_id"`
	Title       string    `json:"title"`
	Icon        string    `json:"icon"`
	Description string    `json:"description"`
	FilePath    *string   `json:"file_path"`
	FileType    *string   `json:"file_type"`
	CreatedAt   time.Time `json:"created_at"`
}

var (
	ErrSectionNotFound = errors.New("section not found")
	ErrItemNotFound    = errors.New("section item not found")
)

type Repository interface {
	Insert(ctx context.Context, s *Section) (int64, error)
	ListByUser(ctx context.Context, userID int64) ([]*Section, error)
	Update(ctx context.Context, id, userID int64, name, icon string) error
	// Owner returns the user owning the section, ErrSectionNotFound when
	// the section does not exist.
	Owner(ctx context.Context, sectionID int64) (int64, error)
	// ItemFiles lists the file references of the section's items, for
	// binary-store cleanup before the cascading delete.
	ItemFiles(ctx context.Context, sectionID int64) ([]string, error)
	Delete(ctx context.Context, id int64) error

	InsertItem(ctx context.Context, it *Item) (int64, error)
	ListItems(ctx context.Context, sectionID int64) ([]*Item, error)
	// ItemOwner resolves the item's owning user through its section,
	// ErrItemNotFound when the item does not exist.
	ItemOwner(ctx context.Context, itemID int64) (int64, error)
	ItemFilePath(ctx context.Context, itemID int64) (*string, error)
	UpdateItem(ctx context.Context, it *Item, withFile bool) error
	DeleteItem(ctx context.Context, itemID int64) error
}
