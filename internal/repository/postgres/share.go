package postgres

import (
	"context"
	"database/sql"
	"time"

	"proofflow-backend/internal/domain"
	"proofflow-backend/internal/logger"
	"proofflow-backend/internal/repository"
)

type shareRepository struct {
	db *sql.DB
}

func NewShareRepository(db *sql.DB) repository.ShareRepository {
	return &shareRepository{db: db}
}

func (r *shareRepository) Create(ctx context.Context, s *domain.ShareRecord) error {
	var subfolderID sql.NullString
	if s.SubfolderID != nil {
		subfolderID = sql.NullString{String: *s.SubfolderID, Valid: true}
	}
	var expiresAt sql.NullTime
	if s.ExpiresAt != nil {
		expiresAt = sql.NullTime{Time: *s.ExpiresAt, Valid: true}
	}

	query := `INSERT INTO shares (id, album_id, subfolder_id, password_hash, created_at, expires_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	logger.DatabaseCall("INSERT", "shares", "shareID", s.ID, "albumID", s.AlbumID)
	_, err := r.db.ExecContext(ctx, query, s.ID, s.AlbumID, subfolderID, s.PasswordHash, s.CreatedAt, expiresAt)
	logger.DatabaseResult("INSERT", 1, err, "shareID", s.ID)
	return mapError("create share", err)
}

func (r *shareRepository) GetByID(ctx context.Context, id string) (*domain.ShareRecord, error) {
	var (
		s           domain.ShareRecord
		subfolderID sql.NullString
		expiresAt   sql.NullTime
	)
	query := `SELECT id, album_id, subfolder_id, password_hash, created_at, expires_at FROM shares WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&s.ID, &s.AlbumID, &subfolderID, &s.PasswordHash, &s.CreatedAt, &expiresAt)
	if err != nil {
		return nil, mapError("get share", err)
	}
	if subfolderID.Valid {
		s.SubfolderID = &subfolderID.String
	}
	if expiresAt.Valid {
		s.ExpiresAt = &expiresAt.Time
	}
	return &s, nil
}

func (r *shareRepository) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `DELETE FROM shares WHERE expires_at IS NOT NULL AND expires_at <= $1`
	logger.DatabaseCall("DELETE", "shares", "cutoff", cutoff)
	res, err := r.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		logger.DatabaseResult("DELETE", 0, err, "cutoff", cutoff)
		return 0, mapError("delete expired shares", err)
	}
	n, err := res.RowsAffected()
	logger.DatabaseResult("DELETE", n, err, "cutoff", cutoff)
	return n, mapError("delete expired shares", err)
}
