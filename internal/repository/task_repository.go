package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"taskmanager/internal/model"
)

// Fuzzy-match cutoffs for FindSimilarByTitle. A candidate qualifies when
// either its whole-title trigram similarity or the word-level similarity
// against the query clears its threshold.
const (
	similarityThreshold     = 0.2
	wordSimilarityThreshold = 0.3
)

// TaskListFilter holds the optional, AND-combined list filters.
type TaskListFilter struct {
	Status      string
	DeveloperID *uint
	SkillIDs    []uint
	ParentOnly  bool
}

type TaskRepository struct {
	db *gorm.DB
}

type TaskRepositoryInterface interface {
	Create(ctx context.Context, task *model.Task) error
	Save(ctx context.Context, task *model.Task) error
	GetByID(ctx context.Context, id uint) (*model.Task, error)
	GetByIDWithSkills(ctx context.Context, id uint) (*model.Task, error)
	GetByIDWithRelations(ctx context.Context, id uint) (*model.Task, error)
	ExistsByID(ctx context.Context, id uint) (bool, error)
	ExistsByTitle(ctx context.Context, title string) (bool, error)
	List(ctx context.Context, filter TaskListFilter, offset, limit int) ([]model.Task, int64, error)
	SubtaskCounts(ctx context.Context, parentIDs []uint) (map[uint]int64, error)
	CountIncompleteSubtasks(ctx context.Context, parentID uint) (int64, error)
	FindSimilarByTitle(ctx context.Context, title string, limit int) ([]model.Task, error)
}

var _ TaskRepositoryInterface = (*TaskRepository)(nil)

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create adds a new task together with its skill associations.
func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// Save persists changes to an existing task's own columns. Associations are
// not touched; skill sets are immutable after creation.
func (r *TaskRepository) Save(ctx context.Context, task *model.Task) error {
	result := r.db.WithContext(ctx).Omit(clause.Associations).Save(task)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// GetByID retrieves a bare task by its ID.
func (r *TaskRepository) GetByID(ctx context.Context, id uint) (*model.Task, error) {
	var task model.Task
	result := r.db.WithContext(ctx).First(&task, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, result.Error
	}
	return &task, nil
}

// GetByIDWithSkills retrieves a task with its required skills only.
func (r *TaskRepository) GetByIDWithSkills(ctx context.Context, id uint) (*model.Task, error) {
	var task model.Task
	result := r.db.WithContext(ctx).Preload("Skills").First(&task, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, result.Error
	}
	return &task, nil
}

// GetByIDWithRelations loads a task with skills, developer, parent summary
// and two levels of subtasks, each subtask with its own skills and developer.
// Returns (nil, nil) when the task does not exist so the caller can map that
// to a 404 rather than an error.
func (r *TaskRepository) GetByIDWithRelations(ctx context.Context, id uint) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).
		Preload("Skills").
		Preload("Developer").
		Preload("ParentTask").
		Preload("Subtasks").
		Preload("Subtasks.Skills").
		Preload("Subtasks.Developer").
		Preload("Subtasks.Subtasks").
		Preload("Subtasks.Subtasks.Skills").
		Preload("Subtasks.Subtasks.Developer").
		First(&task, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Task{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *TaskRepository) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Task{}).Where("title = ?", title).Count(&count).Error
	return count > 0, err
}

// List returns one page of tasks matching the filter, newest first, along
// with the total number of matches. Skills and developer are preloaded for
// list-row rendering.
func (r *TaskRepository) List(ctx context.Context, filter TaskListFilter, offset, limit int) ([]model.Task, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Task{})

	if filter.ParentOnly {
		q = q.Where("parent_task_id IS NULL")
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.DeveloperID != nil {
		q = q.Where("developer_id = ?", *filter.DeveloperID)
	}
	if len(filter.SkillIDs) > 0 {
		// At-least-one semantics, matching the inclusive skill filter.
		q = q.Where("id IN (SELECT task_id FROM task_skills WHERE skill_id IN ?)", filter.SkillIDs)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tasks []model.Task
	err := q.
		Preload("Skills").
		Preload("Developer").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&tasks).Error
	if err != nil {
		return nil, 0, err
	}
	return tasks, total, nil
}

// SubtaskCounts returns, for each given parent ID, how many tasks reference
// it as their parent. Parents with no subtasks are absent from the map.
func (r *TaskRepository) SubtaskCounts(ctx context.Context, parentIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(parentIDs))
	if len(parentIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		ParentTaskID uint
		N            int64
	}
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Select("parent_task_id, COUNT(*) AS n").
		Where("parent_task_id IN ?", parentIDs).
		Group("parent_task_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.ParentTaskID] = row.N
	}
	return counts, nil
}

// CountIncompleteSubtasks counts direct subtasks of parentID that are not
// Done yet. A task may only transition to Done when this is zero.
func (r *TaskRepository) CountIncompleteSubtasks(ctx context.Context, parentID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("parent_task_id = ? AND status <> ?", parentID, model.StatusDone).
		Count(&count).Error
	return count, err
}

// FindSimilarByTitle returns up to limit stored tasks whose titles fuzzily
// match the query, best match first, with skills preloaded. Relies on the
// pg_trgm extension installed by the initial migration. Tasks below both
// thresholds are excluded entirely.
func (r *TaskRepository) FindSimilarByTitle(ctx context.Context, title string, limit int) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Preload("Skills").
		Where("similarity(title, ?) > ? OR word_similarity(?, title) > ?",
			title, similarityThreshold, title, wordSimilarityThreshold).
		Clauses(clause.OrderBy{Expression: clause.Expr{
			SQL:                "GREATEST(similarity(title, ?), word_similarity(?, title)) DESC",
			Vars:               []interface{}{title, title},
			WithoutParentheses: true,
		}}).
		Limit(limit).
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}
