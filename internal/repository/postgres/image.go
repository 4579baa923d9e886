package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"proofflow-backend/internal/domain"
	"proofflow-backend/internal/logger"
	"proofflow-backend/internal/repository"
)

const imageColumns = `id, album_id, subfolder_id, filename, original_ext, original_path, thumb_path, preview_path, width, height, created_at`

type imageRepository struct {
	db *sql.DB
}

func NewImageRepository(db *sql.DB) repository.ImageRepository {
	return &imageRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanImage(row rowScanner, img *domain.Image) error {
	return row.Scan(&img.ID, &img.AlbumID, &img.SubfolderID, &img.Filename, &img.OriginalExt,
		&img.OriginalPath, &img.ThumbPath, &img.PreviewPath, &img.Width, &img.Height, &img.CreatedAt)
}

func (r *imageRepository) Create(ctx context.Context, img *domain.Image) error {
	query := `INSERT INTO images (` + imageColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	logger.DatabaseCall("INSERT", "images", "imageID", img.ID, "albumID", img.AlbumID)
	_, err := r.db.ExecContext(ctx, query, img.ID, img.AlbumID, img.SubfolderID, img.Filename, img.OriginalExt,
		img.OriginalPath, img.ThumbPath, img.PreviewPath, img.Width, img.Height, img.CreatedAt)
	logger.DatabaseResult("INSERT", 1, err, "imageID", img.ID)
	return mapError("create image", err)
}

func (r *imageRepository) GetByID(ctx context.Context, id string) (*domain.Image, error) {
	img := &domain.Image{}
	query := `SELECT ` + imageColumns + ` FROM images WHERE id = $1`
	if err := scanImage(r.db.QueryRowContext(ctx, query, id), img); err != nil {
		return nil, mapError("get image", err)
	}
	return img, nil
}

func (r *imageRepository) List(ctx context.Context, albumID, subfolderID string) ([]domain.Image, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if subfolderID == "" {
		query := `SELECT ` + imageColumns + ` FROM images WHERE album_id = $1 ORDER BY created_at DESC`
		rows, err = r.db.QueryContext(ctx, query, albumID)
	} else {
		query := `SELECT ` + imageColumns + ` FROM images WHERE album_id = $1 AND subfolder_id = $2 ORDER BY created_at DESC`
		rows, err = r.db.QueryContext(ctx, query, albumID, subfolderID)
	}
	if err != nil {
		return nil, mapError("list images", err)
	}
	defer rows.Close()

	images := []domain.Image{}
	for rows.Next() {
		var img domain.Image
		if err := scanImage(rows, &img); err != nil {
			return nil, mapError("list images", err)
		}
		images = append(images, img)
	}
	return images, mapError("list images", rows.Err())
}

func (r *imageRepository) ExistingIDs(ctx context.Context, ids []string) (map[string]bool, error) {
	found := make(map[string]bool, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	rows, err := r.db.QueryContext(ctx, `SELECT id FROM images WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return nil, mapError("find images", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, mapError("find images", err)
		}
		found[id] = true
	}
	return found, mapError("find images", rows.Err())
}
