package repository

import (
	"context"

	"gorm.io/gorm"

	"rendezvous/internal/model"
)

// DirectorRepository defines director-general account persistence operations.
type DirectorRepository interface {
	Create(ctx context.Context, d *model.Director) error
	FindActiveByEmail(ctx context.Context, email string) (*model.Director, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

type directorRepository struct {
	db *gorm.DB
}

// NewDirectorRepository builds a GORM-backed repository.
func NewDirectorRepository(db *gorm.DB) DirectorRepository {
	return &directorRepository{db: db}
}

func (r *directorRepository) Create(ctx context.Context, d *model.Director) error {
	return r.db.WithContext(ctx).Create(d).Error
}

// FindActiveByEmail only matches accounts in the active status; suspended
// directors cannot log in.
func (r *directorRepository) FindActiveByEmail(ctx context.Context, email string) (*model.Director, error) {
	var d model.Director
	err := r.db.WithContext(ctx).
		Where("email = ? AND statut = ?", email, model.DirectorStatusActive).
		First(&d).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *directorRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Director{}).
		Where("email = ?", email).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
