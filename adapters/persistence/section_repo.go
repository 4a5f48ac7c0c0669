package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SubhajitChakrabort/ProfilePage/internal/domain/section"
)

type postgresSectionRepo struct {
	db *pgxpool.Pool
}

func NewPostgresSectionRepo(db *pgxpool.Pool) section.Repository {
	return &postgresSectionRepo{db: db}
}

func (r *postgresSectionRepo) Insert(ctx context.Context, s *section.Section) (int64, error) {
	query := `
		INSERT INTO sections (user_id, name, icon)
		VALUES ($1, $2, $3)
		RETURNING id, section_order, created_at
	`
	err := r.db.QueryRow(ctx, query, s.UserID, s.Name, s.Icon).
		Scan(&s.ID, &s.SectionOrder, &s.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("insert section: %w", err)
	}
	return s.ID, nil
}

func (r *postgresSectionRepo) ListByUser(ctx context.Context, userID int64) ([]*section.Section, error) {
	query := `
		SELECT id, user_id, name, icon, section_order, created_at
		FROM sections
		WHERE user_id = $1
		ORDER BY section_order, id
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query sections: %w", err)
	}
	defer rows.Close()

	sections := make([]*section.Section, 0)
	for rows.Next() {
		s := &section.Section{}
		if err := rows.Scan(&s.ID, &s.UserID, &s.Name, &s.Icon, &s.SectionOrder, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan section: %w", err)
		}
		sections = append(sections, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sections: %w", err)
	}
	return sections, nil
}

func (r *postgresSectionRepo) Update(ctx context.Context, id, userID int64, name, icon string) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE sections SET name = $3, icon = $4 WHERE id = $1 AND user_id = $2`,
		id, userID, name, icon,
	)
	if err != nil {
		return fmt.Errorf("update section: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return section.ErrSectionNotFound
	}
	return nil
}

func (r *postgresSectionRepo) Owner(ctx context.Context, sectionID int64) (int64, error) {
	var userID int64
	err := r.db.QueryRow(ctx, `SELECT user_id FROM sections WHERE id = $1`, sectionID).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, section.ErrSectionNotFound
		}
		return 0, fmt.Errorf("query section owner: %w", err)
	}
	return userID, nil
}

func (r *postgresSectionRepo) ItemFiles(ctx context.Context, sectionID int64) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT file_path FROM section_items WHERE section_id = $1 AND file_path IS NOT NULL`,
		sectionID,
	)
	if err != nil {
		return nil, fmt.Errorf("query section item files: %w", err)
	}
	defer rows.Close()

	files := make([]string, 0)
	for rows.Next() {
		var f string
		if err := rows.Scan(&f); err != nil {
			return nil, fmt.Errorf("scan item file: %w", err)
		}
		files = append(files, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate item files: %w", err)
	}
	return files, nil
}

// Delete relies on the section_items FK cascade for the child rows.
func (r *postgresSectionRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM sections WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete section: %w", err)
	}
	return nil
}

func (r *postgresSectionRepo) InsertItem(ctx context.Context, it *section.Item) (int64, error) {
	query := `
		INSERT INTO section_items (section_id, title, icon, description, file_path, file_type)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query,
		it.SectionID, it.Title, it.Icon, it.Description, it.FilePath, it.FileType,
	).Scan(&it.ID, &it.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("insert section item: %w", err)
	}
	return it.ID, nil
}

func (r *postgresSectionRepo) ListItems(ctx context.Context, sectionID int64) ([]*section.Item, error) {
	query := `
		SELECT id, section_id, title, icon, description, file_path, file_type, created_at
		FROM section_items
		WHERE section_id = $1
		ORDER BY id
	`
	rows, err := r.db.Query(ctx, query, sectionID)
	if err != nil {
		return nil, fmt.Errorf("query section items: %w", err)
	}
	defer rows.Close()

	items := make([]*section.Item, 0)
	for rows.Next() {
		it := &section.Item{}
		err := rows.Scan(&it.ID, &it.SectionID, &it.Title, &it.Icon, &it.Description, &it.FilePath, &it.FileType, &it.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan section item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate section items: %w", err)
	}
	return items, nil
}

func (r *postgresSectionRepo) ItemOwner(ctx context.Context, itemID int64) (int64, error) {
	query := `
		SELECT s.user_id
		FROM section_items si
		JOIN sections s ON s.id = si.section_id
		WHERE si.id = $1
	`
	var userID int64
	err := r.db.QueryRow(ctx, query, itemID).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, section.ErrItemNotFound
		}
		return 0, fmt.Errorf("query item owner: %w", err)
	}
	return userID, nil
}

func (r *postgresSectionRepo) ItemFilePath(ctx context.Context, itemID int64) (*string, error) {
	var filePath *string
	err := r.db.QueryRow(ctx, `SELECT file_path FROM section_items WHERE id = $1`, itemID).Scan(&filePath)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, section.ErrItemNotFound
		}
		return nil, fmt.Errorf("query item file path: %w", err)
	}
	return filePath, nil
}

func (r *postgresSectionRepo) UpdateItem(ctx context.Context, it *section.Item, withFile bool) error {
	var cmdTag pgconn.CommandTag
	var err error
	if withFile {
		cmdTag, err = r.db.Exec(ctx,
			`UPDATE section_items SET title = $2, icon = $3, description = $4, file_path = $5, file_type = $6 WHERE id = $1`,
			it.ID, it.Title, it.Icon, it.Description, it.FilePath, it.FileType,
		)
	} else {
		cmdTag, err = r.db.Exec(ctx,
			`UPDATE section_items SET title = $2, icon = $3, description = $4 WHERE id = $1`,
			it.ID, it.Title, it.Icon, it.Description,
		)
	}
	if err != nil {
		return fmt.Errorf("update section item: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return section.ErrItemNotFound
	}
	return nil
}

func (r *postgresSectionRepo) DeleteItem(ctx context.Context, itemID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM section_items WHERE id = $1`, itemID)
	if err != nil {
		return fmt.Errorf("delete section item: %w", err)
	}
	return nil
}
