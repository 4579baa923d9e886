package postgres

import (
	"database/sql"

	"proofflow-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.AlbumRepository
	repository.SubfolderRepository
	repository.ImageRepository
	repository.ShareRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                  db,
		AlbumRepository:     NewAlbumRepository(db),
		SubfolderRepository: NewSubfolderRepository(db),
		ImageRepository:     NewImageRepository(db),
		ShareRepository:     NewShareRepository(db),
	}
}

func (s *Store) DB() *sql.DB {
	return s.db
}
