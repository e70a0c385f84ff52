package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/sync/errgroup"

	"taskmanager/internal/apperr"
	"taskmanager/internal/llm"
	"taskmanager/internal/model"
	"taskmanager/internal/repository"
)

const maxTitleLength = 100

// maxSubtaskDepth bounds how many subtask levels a detail view resolves.
const maxSubtaskDepth = 2

const uniqueViolationCode = "23505"

// SkillPredictor infers required skill names for a task title from the
// available catalog.
type SkillPredictor interface {
	Predict(ctx context.Context, title string, availableSkills []model.Skill) (*llm.Prediction, error)
}

// CreateTaskRequest is the admission input for a new task.
type CreateTaskRequest struct {
	Title        string
	SkillIDs     []uint
	DeveloperID  *uint
	ParentTaskID *uint
}

// UpdateTaskRequest carries the mutable task fields. DeveloperProvided
// distinguishes "leave untouched" from an explicit null (unassign).
type UpdateTaskRequest struct {
	Status            *string
	DeveloperProvided bool
	DeveloperID       *uint
}

// TaskService is the admission and mutation engine: it validates and
// persists task creation and updates, enforcing uniqueness, hierarchy and
// developer-skill-compatibility invariants.
type TaskService struct {
	tasks      repository.TaskRepositoryInterface
	developers repository.DeveloperRepositoryInterface
	skills     repository.SkillRepositoryInterface
	predictor  SkillPredictor
}

func NewTaskService(
	tasks repository.TaskRepositoryInterface,
	developers repository.DeveloperRepositoryInterface,
	skills repository.SkillRepositoryInterface,
	predictor SkillPredictor,
) *TaskService {
	return &TaskService{
		tasks:      tasks,
		developers: developers,
		skills:     skills,
		predictor:  predictor,
	}
}

// CreateTask validates and persists a new task. Validation is fail-fast:
// title, skill set (predicted when omitted), parent link, developer
// compatibility, in that order. The new task starts as To-do.
func (s *TaskService) CreateTask(ctx context.Context, req CreateTaskRequest) (*TaskDetail, error) {
	if err := s.validateTitle(ctx, req.Title); err != nil {
		return nil, err
	}

	skillIDs := req.SkillIDs
	if len(skillIDs) == 0 {
		predicted, err := s.predictSkillIDs(ctx, req.Title)
		if err != nil {
			return nil, err
		}
		skillIDs = predicted
	}

	if err := validateNoDuplicateSkills(skillIDs); err != nil {
		return nil, err
	}
	if err := s.validateSkillsExist(ctx, skillIDs); err != nil {
		return nil, err
	}
	if err := s.validateParentTask(ctx, req.ParentTaskID); err != nil {
		return nil, err
	}
	if err := s.validateDeveloper(ctx, req.DeveloperID, skillIDs); err != nil {
		return nil, err
	}

	return s.persistTask(ctx, req, skillIDs)
}

// GetTaskByID loads the full detail view, subtasks bounded to two levels.
// Returns (nil, nil) when the task does not exist.
func (s *TaskService) GetTaskByID(ctx context.Context, id uint) (*TaskDetail, error) {
	task, err := s.tasks.GetByIDWithRelations(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, nil
	}
	return buildTaskDetail(task, maxSubtaskDepth), nil
}

// UpdateTask applies a status and/or developer change after validating the
// existing task's invariants, then returns the re-fetched detail view.
func (s *TaskService) UpdateTask(ctx context.Context, id uint, req UpdateTaskRequest) (*TaskDetail, error) {
	exists, err := s.tasks.ExistsByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("Task", id)
	}

	if req.Status == nil && !req.DeveloperProvided {
		return nil, apperr.InvalidRequest("At least one field (developerId or status) must be provided for update")
	}

	if err := s.validateDeveloperForUpdate(ctx, id, req); err != nil {
		return nil, err
	}
	if err := s.validateStatusUpdate(ctx, id, req.Status); err != nil {
		return nil, err
	}

	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.DeveloperProvided {
		task.DeveloperID = req.DeveloperID
	}
	if req.Status != nil {
		task.Status = *req.Status
	}

	if err := s.tasks.Save(ctx, task); err != nil {
		return nil, err
	}

	updated, err := s.tasks.GetByIDWithRelations(ctx, id)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperr.NotFound("Task", id)
	}
	return buildTaskDetail(updated, maxSubtaskDepth), nil
}

// ListTasks returns one page of tasks, newest first, with each row's direct
// subtask count. All filters are optional and AND-combined.
func (s *TaskService) ListTasks(ctx context.Context, filter repository.TaskListFilter, page, pageSize int) (*PaginatedTasks, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	skip := (page - 1) * pageSize

	tasks, total, err := s.tasks.List(ctx, filter, skip, pageSize)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, len(tasks))
	for i, task := range tasks {
		ids[i] = task.ID
	}
	counts, err := s.tasks.SubtaskCounts(ctx, ids)
	if err != nil {
		return nil, err
	}

	items := make([]TaskListItem, len(tasks))
	for i := range tasks {
		items[i] = buildTaskListItem(&tasks[i], counts[tasks[i].ID])
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return &PaginatedTasks{
		Data: items,
		Pagination: Pagination{
			Page:        page,
			PageSize:    pageSize,
			TotalItems:  total,
			TotalPages:  totalPages,
			HasNext:     int64(skip+pageSize) < total,
			HasPrevious: page > 1,
		},
	}, nil
}

func (s *TaskService) validateTitle(ctx context.Context, title string) error {
	if strings.TrimSpace(title) == "" {
		return apperr.InvalidRequest("Task title must not be empty")
	}
	if len(title) > maxTitleLength {
		return apperr.InvalidRequest("Task title cannot exceed %d characters", maxTitleLength)
	}
	exists, err := s.tasks.ExistsByTitle(ctx, title)
	if err != nil {
		return err
	}
	if exists {
		return apperr.InvalidRequest("Task with title %q already exists", title)
	}
	return nil
}

// predictSkillIDs consults the skill predictor against the full catalog and
// maps the predicted names back to IDs.
func (s *TaskService) predictSkillIDs(ctx context.Context, title string) ([]uint, error) {
	available, err := s.skills.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(available) == 0 {
		return nil, apperr.Configuration("No skills configured in the system. Please add skills first.")
	}

	prediction, err := s.predictor.Predict(ctx, title, available)
	if err != nil {
		return nil, err
	}

	nameToID := make(map[string]uint, len(available))
	for _, skill := range available {
		nameToID[skill.Name] = skill.ID
	}

	ids := make([]uint, 0, len(prediction.SkillNames))
	for _, name := range prediction.SkillNames {
		if id, ok := nameToID[name]; ok {
			ids = append(ids, id)
		}
	}

	if len(ids) == 0 {
		return nil, apperr.InvalidRequest("Could not determine valid skills. Please specify skills manually.")
	}
	return ids, nil
}

func validateNoDuplicateSkills(skillIDs []uint) error {
	seen := make(map[uint]bool, len(skillIDs))
	for _, id := range skillIDs {
		if seen[id] {
			return apperr.InvalidRequest("Duplicate skill IDs are not allowed")
		}
		seen[id] = true
	}
	return nil
}

func (s *TaskService) validateSkillsExist(ctx context.Context, skillIDs []uint) error {
	skills, err := s.skills.GetByIDs(ctx, skillIDs)
	if err != nil {
		return err
	}
	if len(skills) == len(skillIDs) {
		return nil
	}

	found := make(map[uint]bool, len(skills))
	for _, skill := range skills {
		found[skill.ID] = true
	}
	var missing []uint
	for _, id := range skillIDs {
		if !found[id] {
			missing = append(missing, id)
		}
	}

	notFound := apperr.NotFound("Skill", missing[0])
	notFound.Message = fmt.Sprintf("Skill(s) with ID(s) %v not found", missing)
	return notFound
}

func (s *TaskService) validateParentTask(ctx context.Context, parentTaskID *uint) error {
	if parentTaskID == nil {
		return nil
	}
	exists, err := s.tasks.ExistsByID(ctx, *parentTaskID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("Parent Task", *parentTaskID)
	}
	return nil
}

func (s *TaskService) validateDeveloper(ctx context.Context, developerID *uint, skillIDs []uint) error {
	if developerID == nil {
		return nil
	}

	developer, err := s.developers.GetByIDWithSkills(ctx, *developerID)
	if err != nil {
		return err
	}
	if developer == nil {
		return apperr.NotFound("Developer", *developerID)
	}

	if missing := missingSkillIDs(developer, skillIDs); len(missing) > 0 {
		return apperr.InvalidRequest(
			"Developer %s does not have required skill(s) with ID(s): %s",
			developer.Name, joinIDs(missing))
	}
	return nil
}

func (s *TaskService) validateDeveloperForUpdate(ctx context.Context, taskID uint, req UpdateTaskRequest) error {
	// Omitted leaves the developer untouched; explicit null always unassigns.
	if !req.DeveloperProvided || req.DeveloperID == nil {
		return nil
	}

	developer, err := s.developers.GetByIDWithSkills(ctx, *req.DeveloperID)
	if err != nil {
		return err
	}
	if developer == nil {
		return apperr.NotFound("Developer", *req.DeveloperID)
	}

	task, err := s.tasks.GetByIDWithSkills(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return apperr.NotFound("Task", taskID)
		}
		return err
	}

	required := make([]uint, len(task.Skills))
	for i, skill := range task.Skills {
		required[i] = skill.ID
	}
	if missing := missingSkillIDs(developer, required); len(missing) > 0 {
		return apperr.InvalidRequest(
			"Developer %s does not have required skill(s) with ID(s): %s",
			developer.Name, joinIDs(missing))
	}
	return nil
}

func (s *TaskService) validateStatusUpdate(ctx context.Context, taskID uint, status *string) error {
	if status == nil {
		return nil
	}

	if !model.ValidStatus(*status) {
		return apperr.InvalidRequest("Invalid status. Must be one of: %s", strings.Join(model.Statuses, ", "))
	}

	if *status == model.StatusDone {
		incomplete, err := s.tasks.CountIncompleteSubtasks(ctx, taskID)
		if err != nil {
			return err
		}
		if incomplete > 0 {
			return apperr.InvalidRequest("Cannot mark task as Done. %d subtask(s) are not complete.", incomplete)
		}
	}
	return nil
}

// persistTask resolves the skill and developer rows concurrently (both were
// validated already), then saves the task with its associations. Returns the
// fresh detail view with an empty subtask list and no parent summary.
func (s *TaskService) persistTask(ctx context.Context, req CreateTaskRequest, skillIDs []uint) (*TaskDetail, error) {
	var (
		skills    []model.Skill
		developer *model.Developer
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		skills, err = s.skills.GetByIDs(gctx, skillIDs)
		return err
	})
	if req.DeveloperID != nil {
		g.Go(func() error {
			var err error
			developer, err = s.developers.GetByID(gctx, *req.DeveloperID)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	task := &model.Task{
		Title:        req.Title,
		Status:       model.StatusTodo,
		ParentTaskID: req.ParentTaskID,
		Skills:       skills,
	}
	if developer != nil {
		task.DeveloperID = &developer.ID
		task.Developer = developer
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		// The store enforces title uniqueness too; a concurrent create that
		// slipped past the application check surfaces the same way.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, apperr.InvalidRequest("Task with title %q already exists", req.Title)
		}
		return nil, err
	}

	detail := buildTaskDetail(task, 0)
	return detail, nil
}

func missingSkillIDs(developer *model.Developer, required []uint) []uint {
	has := make(map[uint]bool, len(developer.Skills))
	for _, skill := range developer.Skills {
		has[skill.ID] = true
	}
	var missing []uint
	for _, id := range required {
		if !has[id] {
			missing = append(missing, id)
		}
	}
	return missing
}

func joinIDs(ids []uint) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprint(id)
	}
	return strings.Join(parts, ", ")
}
