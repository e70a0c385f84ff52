package service

import (
	"context"

	"taskmanager/internal/apperr"
	"taskmanager/internal/model"
	"taskmanager/internal/repository"
)

// DeveloperService serves the read-only developer catalog. Developers are
// seeded out-of-band; this core never creates or deletes them.
type DeveloperService struct {
	developers repository.DeveloperRepositoryInterface
}

func NewDeveloperService(developers repository.DeveloperRepositoryInterface) *DeveloperService {
	return &DeveloperService{developers: developers}
}

func (s *DeveloperService) GetAllDevelopers(ctx context.Context) ([]DeveloperView, error) {
	developers, err := s.developers.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]DeveloperView, len(developers))
	for i := range developers {
		views[i] = buildDeveloperView(&developers[i])
	}
	return views, nil
}

func (s *DeveloperService) GetDeveloperByID(ctx context.Context, id uint) (*DeveloperView, error) {
	developer, err := s.developers.GetByIDWithSkills(ctx, id)
	if err != nil {
		return nil, err
	}
	if developer == nil {
		return nil, apperr.NotFound("Developer", id)
	}
	view := buildDeveloperView(developer)
	return &view, nil
}

func buildDeveloperView(developer *model.Developer) DeveloperView {
	return DeveloperView{
		ID:        developer.ID,
		Name:      developer.Name,
		Skills:    buildSkillViews(developer.Skills),
		CreatedAt: developer.CreatedAt,
		UpdatedAt: developer.UpdatedAt,
	}
}
