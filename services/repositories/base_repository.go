package repositories

import (
	"gorm.io/gorm"
)

// BaseRepository carries the gorm handle shared by the archive repositories.
type BaseRepository struct {
	db *gorm.DB
}

func NewBaseRepository(db *gorm.DB) BaseRepository {
	return BaseRepository{db: db}
}

func (r *BaseRepository) DB() *gorm.DB {
	return r.db
}
