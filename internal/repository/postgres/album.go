package postgres

import (
	"context"
	"database/sql"

	"proofflow-backend/internal/domain"
	"proofflow-backend/internal/logger"
	"proofflow-backend/internal/repository"
)

type albumRepository struct {
	db *sql.DB
}

func NewAlbumRepository(db *sql.DB) repository.AlbumRepository {
	return &albumRepository{db: db}
}

func (r *albumRepository) Create(ctx context.Context, a *domain.Album) error {
	query := `INSERT INTO albums (id, name, created_at) VALUES ($1, $2, $3)`
	logger.DatabaseCall("INSERT", "albums", "albumID", a.ID)
	_, err := r.db.ExecContext(ctx, query, a.ID, a.Name, a.CreatedAt)
	logger.DatabaseResult("INSERT", 1, err, "albumID", a.ID)
	return mapError("create album", err)
}

func (r *albumRepository) GetByID(ctx context.Context, id string) (*domain.Album, error) {
	a := &domain.Album{}
	query := `SELECT id, name, created_at FROM albums WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&a.ID, &a.Name, &a.CreatedAt)
	if err != nil {
		return nil, mapError("get album", err)
	}
	return a, nil
}

func (r *albumRepository) List(ctx context.Context) ([]domain.Album, error) {
	query := `SELECT id, name, created_at FROM albums ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, mapError("list albums", err)
	}
	defer rows.Close()

	albums := []domain.Album{}
	for rows.Next() {
		var a domain.Album
		if err := rows.Scan(&a.ID, &a.Name, &a.CreatedAt); err != nil {
			return nil, mapError("list albums", err)
		}
		albums = append(albums, a)
	}
	return albums, mapError("list albums", rows.Err())
}
