package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"taskmanager/internal/model"
)

type SkillRepository struct {
	db *gorm.DB
}

type SkillRepositoryInterface interface {
	GetAll(ctx context.Context) ([]model.Skill, error)
	GetByID(ctx context.Context, id uint) (*model.Skill, error)
	GetByIDs(ctx context.Context, ids []uint) ([]model.Skill, error)
}

var _ SkillRepositoryInterface = (*SkillRepository)(nil)

func NewSkillRepository(db *gorm.DB) *SkillRepository {
	return &SkillRepository{db: db}
}

// GetAll returns the full skill catalog ordered by name.
func (r *SkillRepository) GetAll(ctx context.Context) ([]model.Skill, error) {
	var skills []model.Skill
	err := r.db.WithContext(ctx).Order("name").Find(&skills).Error
	if err != nil {
		return nil, err
	}
	return skills, nil
}

func (r *SkillRepository) GetByID(ctx context.Context, id uint) (*model.Skill, error) {
	var skill model.Skill
	err := r.db.WithContext(ctx).First(&skill, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &skill, nil
}

// GetByIDs returns the skills matching the given IDs. Missing IDs are simply
// absent from the result; the caller compares lengths to detect them.
func (r *SkillRepository) GetByIDs(ctx context.Context, ids []uint) ([]model.Skill, error) {
	var skills []model.Skill
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&skills).Error
	if err != nil {
		return nil, err
	}
	return skills, nil
}
