package service

import (
	"context"

	"taskmanager/internal/repository"
)

// SkillService serves the read-only skill catalog.
type SkillService struct {
	skills repository.SkillRepositoryInterface
}

func NewSkillService(skills repository.SkillRepositoryInterface) *SkillService {
	return &SkillService{skills: skills}
}

func (s *SkillService) GetAllSkills(ctx context.Context) ([]SkillView, error) {
	skills, err := s.skills.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return buildSkillViews(skills), nil
}

// GetSkillByID returns (nil, nil) when the skill does not exist.
func (s *SkillService) GetSkillByID(ctx context.Context, id uint) (*SkillView, error) {
	skill, err := s.skills.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if skill == nil {
		return nil, nil
	}
	return &SkillView{ID: skill.ID, Name: skill.Name}, nil
}
