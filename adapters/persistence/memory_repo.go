package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SubhajitChakrabort/ProfilePage/internal/domain/memory"
)

type postgresMemoryRepo struct {
	db *pgxpool.Pool
}

func NewPostgresMemoryRepo(db *pgxpool.Pool) memory.Repository {
	return &postgresMemoryRepo{db: db}
}

func (r *postgresMemoryRepo) Insert(ctx context.Context, m *memory.Memory) (int64, error) {
	query := `
		INSERT INTO memories (user_id, file_path, file_type, original_name, caption)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query,
		m.UserID, m.FilePath, m.FileType, m.OriginalName, m.Caption,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("insert memory: %w", err)
	}
	return m.ID, nil
}

func (r *postgresMemoryRepo) ListByUser(ctx context.Context, userID int64) ([]*memory.Memory, error) {
	query := `
		SELECT id, user_id, file_path, file_type, original_name, caption, created_at
		FROM memories
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query memories: %w", err)
	}
	defer rows.Close()

	memories := make([]*memory.Memory, 0)
	for rows.Next() {
		m := &memory.Memory{}
		err := rows.Scan(&m.ID, &m.UserID, &m.FilePath, &m.FileType, &m.OriginalName, &m.Caption, &m.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan memory: %w", err)
		}
		memories = append(memories, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate memories: %w", err)
	}
	return memories, nil
}

func (r *postgresMemoryRepo) FilePath(ctx context.Context, id, userID int64) (string, error) {
	var filePath string
	err := r.db.QueryRow(ctx,
		`SELECT file_path FROM memories WHERE id = $1 AND user_id = $2`,
		id, userID,
	).Scan(&filePath)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", memory.ErrMemoryNotFound
		}
		return "", fmt.Errorf("query memory file path: %w", err)
	}
	return filePath, nil
}

func (r *postgresMemoryRepo) Delete(ctx context.Context, id, userID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM memories WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete memory: %w", err)
	}
	return nil
}
