package postgres

import (
	"context"
	"database/sql"

	"proofflow-backend/internal/domain"
	"proofflow-backend/internal/logger"
	"proofflow-backend/internal/repository"
)

type subfolderRepository struct {
	db *sql.DB
}

func NewSubfolderRepository(db *sql.DB) repository.SubfolderRepository {
	return &subfolderRepository{db: db}
}

func (r *subfolderRepository) Create(ctx context.Context, s *domain.Subfolder) error {
	query := `INSERT INTO subfolders (id, album_id, name, created_at) VALUES ($1, $2, $3, $4)`
	logger.DatabaseCall("INSERT", "subfolders", "subfolderID", s.ID, "albumID", s.AlbumID)
	_, err := r.db.ExecContext(ctx, query, s.ID, s.AlbumID, s.Name, s.CreatedAt)
	logger.DatabaseResult("INSERT", 1, err, "subfolderID", s.ID)
	return mapError("create subfolder", err)
}

func (r *subfolderRepository) GetByID(ctx context.Context, id string) (*domain.Subfolder, error) {
	s := &domain.Subfolder{}
	query := `SELECT id, album_id, name, created_at FROM subfolders WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&s.ID, &s.AlbumID, &s.Name, &s.CreatedAt)
	if err != nil {
		return nil, mapError("get subfolder", err)
	}
	return s, nil
}

func (r *subfolderRepository) ListByAlbum(ctx context.Context, albumID string) ([]domain.Subfolder, error) {
	query := `SELECT id, album_id, name, created_at FROM subfolders WHERE album_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, albumID)
	if err != nil {
		return nil, mapError("list subfolders", err)
	}
	defer rows.Close()

	subfolders := []domain.Subfolder{}
	for rows.Next() {
		var s domain.Subfolder
		if err := rows.Scan(&s.ID, &s.AlbumID, &s.Name, &s.CreatedAt); err != nil {
			return nil, mapError("list subfolders", err)
		}
		subfolders = append(subfolders, s)
	}
	return subfolders, mapError("list subfolders", rows.Err())
}
