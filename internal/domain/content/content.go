package content

import (
	"context"
	"errors"
	"time"
)

// Field describes one text column of a category table. Empty submitted
// values fall back to Default when one is set.
type Field struct {
	Name    string
	Default string
}

// Category describes one content table. All categories share the identical
// lifecycle; only the table name and text columns differ.
type Category struct {
	Name   string
	Table  string
	Fields []Field
}

// SkillsCategory is the one category with an ordered child collection; the
// skill-image operations reference it directly.
var SkillsCategory = Category{Name: "skills", Table: "skills", Fields: []Field{
	{Name: "name"}, {Name: "icon", Default: "fa-solid fa-star"}, {Name: "color", Default: "cyan-custom"},
}}

var categories = []Category{
	{Name: "hobbies", Table: "hobbies", Fields: []Field{
		{Name: "title"}, {Name: "icon", Default: "fa-solid fa-heart"},
	}},
	{Name: "projects", Table: "projects", Fields: []Field{
		{Name: "title"}, {Name: "description"},
	}},
	SkillsCategory,
	{Name: "certificates", Table: "certificates", Fields: []Field{
		{Name: "title"}, {Name: "icon", Default: "fa-solid fa-certificate"},
	}},
	{Name: "achievements", Table: "achievements", Fields: []Field{
		{Name: "title"}, {Name: "icon", Default: "fa-solid fa-trophy"},
	}},
	{Name: "adventures", Table: "adventures", Fields: []Field{
		{Name: "title"}, {Name: "icon", Default: "fa-solid fa-hiking"},
	}},
}

func CategoryByName(name string) (Category, bool) {
	for _, c := range categories {
		if c.Name == name {
			return c, true
		}
	}
	return Category{}, false
}

func Categories() []Category {
	return categories
}

// Entry is one row of a category table. Values is keyed by the category's
// field names; FilePath/FileType are nil when no file is attached.
type Entry struct {
	ID       int64
	UserID   int64
	Values   map[string]string
	FilePath *string
	FileType *string
}

type SkillImage struct {
	ID           int64     `json:"id"`
	SkillID      int64     `json:"skill_id"`
	FilePath     string    `json:"file_path"`
	FileType     string    `json:"file_type"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
}

// ImageOrder is one element of a reorder batch.
type ImageOrder struct {
	ID           int64 `json:"id" binding:"required"`
	DisplayOrder int   `json:"display_order"`
}

var (
	ErrEntryNotFound = errors.New("entry not found")
	ErrSkillNotFound = errors.New("skill not found")
	ErrImageNotFound = errors.New("skill image not found")
)

type Repository interface {
	Insert(ctx context.Context, cat Category, e *Entry) (int64, error)
	// Update rewrites the category fields; file columns are touched only
	// when withFile is set.
	Update(ctx context.Context, cat Category, e *Entry, withFile bool) error
	// FilePath returns the current file reference scoped to (id, user);
	// ErrEntryNotFound when no such row.
	FilePath(ctx context.Context, cat Category, id, userID int64) (*string, error)
	Delete(ctx context.Context, cat Category, id, userID int64) error
}

type SkillImageRepository interface {
	SkillOwned(ctx context.Context, skillID, userID int64) (bool, error)
	MaxDisplayOrder(ctx context.Context, skillID int64) (int, error)
	Insert(ctx context.Context, img *SkillImage) (int64, error)
	ListBySkill(ctx context.Context, skillID int64) ([]*SkillImage, error)
	UpdateOrder(ctx context.Context, skillID, imageID int64, displayOrder int) error
	// FindOwned resolves an image through its skill to the owning user.
	FindOwned(ctx context.Context, imageID, userID int64) (*SkillImage, error)
	Delete(ctx context.Context, imageID int64) error
}
