package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"taskmanager/internal/model"
)

type DeveloperRepository struct {
	db *gorm.DB
}

type DeveloperRepositoryInterface interface {
	GetAll(ctx context.Context) ([]model.Developer, error)
	GetByID(ctx context.Context, id uint) (*model.Developer, error)
	GetByIDWithSkills(ctx context.Context, id uint) (*model.Developer, error)
}

var _ DeveloperRepositoryInterface = (*DeveloperRepository)(nil)

func NewDeveloperRepository(db *gorm.DB) *DeveloperRepository {
	return &DeveloperRepository{db: db}
}

// GetAll returns all developers with their skills, ordered by name.
func (r *DeveloperRepository) GetAll(ctx context.Context) ([]model.Developer, error) {
	var developers []model.Developer
	err := r.db.WithContext(ctx).Preload("Skills").Order("name").Find(&developers).Error
	if err != nil {
		return nil, err
	}
	return developers, nil
}

func (r *DeveloperRepository) GetByID(ctx context.Context, id uint) (*model.Developer, error) {
	var developer model.Developer
	err := r.db.WithContext(ctx).First(&developer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &developer, nil
}

func (r *DeveloperRepository) GetByIDWithSkills(ctx context.Context, id uint) (*model.Developer, error) {
	var developer model.Developer
	err := r.db.WithContext(ctx).Preload("Skills").First(&developer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &developer, nil
}
