package persistence

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SubhajitChakrabort/ProfilePage/internal/domain/content"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type postgresContentRepo struct {
	db *pgxpool.Pool
}

func NewPostgresContentRepo(db *pgxpool.Pool) content.Repository {
	return &postgresContentRepo{db: db}
}

func (r *postgresContentRepo) Insert(ctx context.Context, cat content.Category, e *content.Entry) (int64, error) {
	cols := []string{"user_id"}
	vals := []any{e.UserID}
	for _, f := range cat.Fields {
		cols = append(cols, f.Name)
		vals = append(vals, e.Values[f.Name])
	}
	cols = append(cols, "file_path", "file_type")
	vals = append(vals, e.FilePath, e.FileType)

	sql, args, err := psql.Insert(cat.Table).
		Columns(cols...).
		Values(vals...).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert %s: %w", cat.Table, err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert %s: %w", cat.Table, err)
	}
	return id, nil
}

func (r *postgresContentRepo) Update(ctx context.Context, cat content.Category, e *content.Entry, withFile bool) error {
	builder := psql.Update(cat.Table)
	for _, f := range cat.Fields {
		builder = builder.Set(f.Name, e.Values[f.Name])
	}
	if withFile {
		builder = builder.Set("file_path", e.FilePath).Set("file_type", e.FileType)
	}
	builder = builder.Where(sq.Eq{"id": e.ID, "user_id": e.UserID})

	sql, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("build update %s: %w", cat.Table, err)
	}
	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update %s: %w", cat.Table, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return content.ErrEntryNotFound
	}
	return nil
}

func (r *postgresContentRepo) FilePath(ctx context.Context, cat content.Category, id, userID int64) (*string, error) {
	sql, args, err := psql.Select("file_path").
		From(cat.Table).
		Where(sq.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build file path query: %w", err)
	}

	var filePath *string
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&filePath); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, content.ErrEntryNotFound
		}
		return nil, fmt.Errorf("query %s file path: %w", cat.Table, err)
	}
	return filePath, nil
}

func (r *postgresContentRepo) Delete(ctx context.Context, cat content.Category, id, userID int64) error {
	sql, args, err := psql.Delete(cat.Table).
		Where(sq.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete %s: %w", cat.Table, err)
	}
	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete %s: %w", cat.Table, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return content.ErrEntryNotFound
	}
	return nil
}

type postgresSkillImageRepo struct {
	db *pgxpool.Pool
}

func NewPostgresSkillImageRepo(db *pgxpool.Pool) content.SkillImageRepository {
	return &postgresSkillImageRepo{db: db}
}

func (r *postgresSkillImageRepo) SkillOwned(ctx context.Context, skillID, userID int64) (bool, error) {
	var owned bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM skills WHERE id = $1 AND user_id = $2)`,
		skillID, userID,
	).Scan(&owned)
	if err != nil {
		return false, fmt.Errorf("check skill ownership: %w", err)
	}
	return owned, nil
}

// MaxDisplayOrder returns -1 when the skill has no images, so the next
// appended image lands at order 0.
func (r *postgresSkillImageRepo) MaxDisplayOrder(ctx context.Context, skillID int64) (int, error) {
	var maxOrder int
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(MAX(display_order), -1) FROM skill_images WHERE skill_id = $1`,
		skillID,
	).Scan(&maxOrder)
	if err != nil {
		return 0, fmt.Errorf("query max display order: %w", err)
	}
	return maxOrder, nil
}

func (r *postgresSkillImageRepo) Insert(ctx context.Context, img *content.SkillImage) (int64, error) {
	query := `
		INSERT INTO skill_images (skill_id, file_path, file_type, display_order)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query, img.SkillID, img.FilePath, img.FileType, img.DisplayOrder).
		Scan(&img.ID, &img.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("insert skill image: %w", err)
	}
	return img.ID, nil
}

func (r *postgresSkillImageRepo) ListBySkill(ctx context.Context, skillID int64) ([]*content.SkillImage, error) {
	query := `
		SELECT id, skill_id, file_path, file_type, display_order, created_at
		FROM skill_images
		WHERE skill_id = $1
		ORDER BY display_order ASC
	`
	rows, err := r.db.Query(ctx, query, skillID)
	if err != nil {
		return nil, fmt.Errorf("query skill images: %w", err)
	}
	defer rows.Close()

	images := make([]*content.SkillImage, 0)
	for rows.Next() {
		img := &content.SkillImage{}
		err := rows.Scan(&img.ID, &img.SkillID, &img.FilePath, &img.FileType, &img.DisplayOrder, &img.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan skill image: %w", err)
		}
		images = append(images, img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate skill images: %w", err)
	}
	return images, nil
}

func (r *postgresSkillImageRepo) UpdateOrder(ctx context.Context, skillID, imageID int64, displayOrder int) error {
	_, err := r.db.Exec(ctx,
		`UPDATE skill_images SET display_order = $3 WHERE id = $1 AND skill_id = $2`,
		imageID, skillID, displayOrder,
	)
	if err != nil {
		return fmt.Errorf("update display order: %w", err)
	}
	return nil
}

func (r *postgresSkillImageRepo) FindOwned(ctx context.Context, imageID, userID int64) (*content.SkillImage, error) {
	query := `
		SELECT si.id, si.skill_id, si.file_path, si.file_type, si.display_order, si.created_at
		FROM skill_images si
		JOIN skills s ON si.skill_id = s.id
		WHERE si.id = $1 AND s.user_id = $2
	`
	img := &content.SkillImage{}
	err := r.db.QueryRow(ctx, query, imageID, userID).
		Scan(&img.ID, &img.SkillID, &img.FilePath, &img.FileType, &img.DisplayOrder, &img.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, content.ErrImageNotFound
		}
		return nil, fmt.Errorf("query skill image: %w", err)
	}
	return img, nil
}

func (r *postgresSkillImageRepo) Delete(ctx context.Context, imageID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM skill_images WHERE id = $1`, imageID)
	if err != nil {
		return fmt.Errorf("delete skill image: %w", err)
	}
	return nil
}
