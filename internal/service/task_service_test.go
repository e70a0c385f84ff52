package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"taskmanager/internal/apperr"
	"taskmanager/internal/llm"
	"taskmanager/internal/model"
	"taskmanager/internal/repository"
	"taskmanager/internal/service"
)

// Mocks for the repository interfaces and the predictor.

type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Create(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) Save(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) GetByID(ctx context.Context, id uint) (*model.Task, error) {
	args := m.Called(ctx, id)
	task, _ := args.Get(0).(*model.Task)
	return task, args.Error(1)
}

func (m *MockTaskRepository) GetByIDWithSkills(ctx context.Context, id uint) (*model.Task, error) {
	args := m.Called(ctx, id)
	task, _ := args.Get(0).(*model.Task)
	return task, args.Error(1)
}

func (m *MockTaskRepository) GetByIDWithRelations(ctx context.Context, id uint) (*model.Task, error) {
	args := m.Called(ctx, id)
	task, _ := args.Get(0).(*model.Task)
	return task, args.Error(1)
}

func (m *MockTaskRepository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockTaskRepository) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	args := m.Called(ctx, title)
	return args.Bool(0), args.Error(1)
}

func (m *MockTaskRepository) List(ctx context.Context, filter repository.TaskListFilter, offset, limit int) ([]model.Task, int64, error) {
	args := m.Called(ctx, filter, offset, limit)
	tasks, _ := args.Get(0).([]model.Task)
	return tasks, args.Get(1).(int64), args.Error(2)
}

func (m *MockTaskRepository) SubtaskCounts(ctx context.Context, parentIDs []uint) (map[uint]int64, error) {
	args := m.Called(ctx, parentIDs)
	counts, _ := args.Get(0).(map[uint]int64)
	return counts, args.Error(1)
}

func (m *MockTaskRepository) CountIncompleteSubtasks(ctx context.Context, parentID uint) (int64, error) {
	args := m.Called(ctx, parentID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTaskRepository) FindSimilarByTitle(ctx context.Context, title string, limit int) ([]model.Task, error) {
	args := m.Called(ctx, title, limit)
	tasks, _ := args.Get(0).([]model.Task)
	return tasks, args.Error(1)
}

type MockDeveloperRepository struct {
	mock.Mock
}

func (m *MockDeveloperRepository) GetAll(ctx context.Context) ([]model.Developer, error) {
	args := m.Called(ctx)
	developers, _ := args.Get(0).([]model.Developer)
	return developers, args.Error(1)
}

func (m *MockDeveloperRepository) GetByID(ctx context.Context, id uint) (*model.Developer, error) {
	args := m.Called(ctx, id)
	developer, _ := args.Get(0).(*model.Developer)
	return developer, args.Error(1)
}

func (m *MockDeveloperRepository) GetByIDWithSkills(ctx context.Context, id uint) (*model.Developer, error) {
	args := m.Called(ctx, id)
	developer, _ := args.Get(0).(*model.Developer)
	return developer, args.Error(1)
}

type MockSkillRepository struct {
	mock.Mock
}

func (m *MockSkillRepository) GetAll(ctx context.Context) ([]model.Skill, error) {
	args := m.Called(ctx)
	skills, _ := args.Get(0).([]model.Skill)
	return skills, args.Error(1)
}

func (m *MockSkillRepository) GetByID(ctx context.Context, id uint) (*model.Skill, error) {
	args := m.Called(ctx, id)
	skill, _ := args.Get(0).(*model.Skill)
	return skill, args.Error(1)
}

func (m *MockSkillRepository) GetByIDs(ctx context.Context, ids []uint) ([]model.Skill, error) {
	args := m.Called(ctx, ids)
	skills, _ := args.Get(0).([]model.Skill)
	return skills, args.Error(1)
}

type MockPredictor struct {
	mock.Mock
}

func (m *MockPredictor) Predict(ctx context.Context, title string, availableSkills []model.Skill) (*llm.Prediction, error) {
	args := m.Called(ctx, title, availableSkills)
	pred, _ := args.Get(0).(*llm.Prediction)
	return pred, args.Error(1)
}

func setupService() (*service.TaskService, *MockTaskRepository, *MockDeveloperRepository, *MockSkillRepository, *MockPredictor) {
	taskRepo := new(MockTaskRepository)
	developerRepo := new(MockDeveloperRepository)
	skillRepo := new(MockSkillRepository)
	predictor := new(MockPredictor)
	svc := service.NewTaskService(taskRepo, developerRepo, skillRepo, predictor)
	return svc, taskRepo, developerRepo, skillRepo, predictor
}

func uintPtr(v uint) *uint { return &v }

func strPtr(v string) *string { return &v }

var (
	frontend = model.Skill{ID: 1, Name: "Frontend"}
	backend  = model.Skill{ID: 2, Name: "Backend"}
)

func assertKind(t *testing.T, err error, kind apperr.Kind) *apperr.Error {
	t.Helper()
	var ae *apperr.Error
	assert.ErrorAs(t, err, &ae)
	if ae != nil {
		assert.Equal(t, kind, ae.Kind)
	}
	return ae
}

func TestCreateTask_DuplicateTitle(t *testing.T) {
	svc, taskRepo, _, _, _ := setupService()
	taskRepo.On("ExistsByTitle", mock.Anything, "Build login page").Return(true, nil)

	_, err := svc.CreateTask(context.Background(), service.CreateTaskRequest{
		Title:    "Build login page",
		SkillIDs: []uint{1},
	})

	ae := assertKind(t, err, apperr.KindInvalidRequest)
	assert.Contains(t, ae.Message, "already exists")
	taskRepo.AssertExpectations(t)
}

func TestCreateTask_EmptyTitle(t *testing.T) {
	svc, _, _, _, _ := setupService()

	_, err := svc.CreateTask(context.Background(), service.CreateTaskRequest{Title: "   "})

	assertKind(t, err, apperr.KindInvalidRequest)
}

func TestCreateTask_TitleTooLong(t *testing.T) {
	svc, _, _, _, _ := setupService()

	long := make([]byte, 101)
	for i := range long {
		long[i] = 'a'
	}
	_, err := svc.CreateTask(context.Background(), service.CreateTaskRequest{Title: string(long)})

	ae := assertKind(t, err, apperr.KindInvalidRequest)
	assert.Contains(t, ae.Message, "100 characters")
}

func TestCreateTask_DuplicateSkillIDs(t *testing.T) {
	svc, taskRepo, _, _, _ := setupService()
	taskRepo.On("ExistsByTitle", mock.Anything, "New task").Return(false, nil)

	_, err := svc.CreateTask(context.Background(), service.CreateTaskRequest{
		Title:    "New task",
		SkillIDs: []uint{1, 2, 1},
	})

	ae := assertKind(t, err, apperr.KindInvalidRequest)
	assert.Contains(t, ae.Message, "Duplicate skill IDs")
}

func TestCreateTask_UnknownSkill(t *testing.T) {
	svc, taskRepo, _, skillRepo, _ := setupService()
	taskRepo.On("ExistsByTitle", mock.Anything, "New task").Return(false, nil)
	skillRepo.On("GetByIDs", mock.Anything, []uint{1, 7, 9}).Return([]model.Skill{frontend}, nil)

	_, err := svc.CreateTask(context.Background(), service.CreateTaskRequest{
		Title:    "New task",
		SkillIDs: []uint{1, 7, 9},
	})

	ae := assertKind(t, err, apperr.KindNotFound)
	assert.Equal(t, "Skill", ae.Entity)
	assert.Equal(t, uint(7), ae.EntityID, "identifying ID is the first missing one")
	assert.Contains(t, ae.Message, "7")
	assert.Contains(t, ae.Message, "9")
}

func TestCreateTask_ParentNotFound(t *testing.T) {
	svc, taskRepo, _, skillRepo, _ := setupService()
	taskRepo.On("ExistsByTitle", mock.Anything, "Subtask").Return(false, nil)
	skillRepo.On("GetByIDs", mock.Anything, []uint{1}).Return([]model.Skill{frontend}, nil)
	taskRepo.On("ExistsByID", mock.Anything, uint(42)).Return(false, nil)

	_, err := svc.CreateTask(context.Background(), service.CreateTaskRequest{
		Title:        "Subtask",
		SkillIDs:     []uint{1},
		ParentTaskID: uintPtr(42),
	})

	ae := assertKind(t, err, apperr.KindNotFound)
	assert.Equal(t, "Parent Task", ae.Entity)
}

func TestCreateTask_DeveloperMissingSkill(t *testing.T) {
	svc, taskRepo, developerRepo, skillRepo, _ := setupService()
	taskRepo.On("ExistsByTitle", mock.Anything, "Full-stack task").Return(false, nil)
	skillRepo.On("GetByIDs", mock.Anything, []uint{1, 2}).Return([]model.Skill{frontend, backend}, nil)
	developerRepo.On("GetByIDWithSkills", mock.Anything, uint(5)).Return(
		&model.Developer{ID: 5, Name: "Dana", Skills: []model.Skill{frontend}}, nil)

	_, err := svc.CreateTask(context.Background(), service.CreateTaskRequest{
		Title:       "Full-stack task",
		SkillIDs:    []uint{1, 2},
		DeveloperID: uintPtr(5),
	})

	ae := assertKind(t, err, apperr.KindInvalidRequest)
	assert.Contains(t, ae.Message, "Dana")
	assert.Contains(t, ae.Message, "2", "missing Backend skill ID is named")
}

func TestCreateTask_DeveloperNotFound(t *testing.T) {
	svc, taskRepo, developerRepo, skillRepo, _ := setupService()
	taskRepo.On("ExistsByTitle", mock.Anything, "A task").Return(false, nil)
	skillRepo.On("GetByIDs", mock.Anything, []uint{1}).Return([]model.Skill{frontend}, nil)
	developerRepo.On("GetByIDWithSkills", mock.Anything, uint(99)).Return(nil, nil)

	_, err := svc.CreateTask(context.Background(), service.CreateTaskRequest{
		Title:       "A task",
		SkillIDs:    []uint{1},
		DeveloperID: uintPtr(99),
	})

	ae := assertKind(t, err, apperr.KindNotFound)
	assert.Equal(t, "Developer", ae.Entity)
}

func TestCreateTask_Success(t *testing.T) {
	svc, taskRepo, developerRepo, skillRepo, _ := setupService()
	dev := &model.Developer{ID: 5, Name: "Dana", Skills: []model.Skill{frontend, backend}}

	taskRepo.On("ExistsByTitle", mock.Anything, "Full-stack task").Return(false, nil)
	skillRepo.On("GetByIDs", mock.Anything, []uint{1, 2}).Return([]model.Skill{frontend, backend}, nil)
	developerRepo.On("GetByIDWithSkills", mock.Anything, uint(5)).Return(dev, nil)
	developerRepo.On("GetByID", mock.Anything, uint(5)).Return(dev, nil)
	taskRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Task")).Run(func(args mock.Arguments) {
		args.Get(1).(*model.Task).ID = 10
	}).Return(nil)

	detail, err := svc.CreateTask(context.Background(), service.CreateTaskRequest{
		Title:       "Full-stack task",
		SkillIDs:    []uint{1, 2},
		DeveloperID: uintPtr(5),
	})

	assert.NoError(t, err)
	assert.Equal(t, uint(10), detail.ID)
	assert.Equal(t, model.StatusTodo, detail.Status)
	assert.Equal(t, []service.SkillView{{ID: 1, Name: "Frontend"}, {ID: 2, Name: "Backend"}}, detail.Skills)
	assert.Equal(t, &service.DeveloperRef{ID: 5, Name: "Dana"}, detail.Developer)
	assert.Nil(t, detail.ParentTask)
	assert.Empty(t, detail.Subtasks)
	taskRepo.AssertExpectations(t)
}

func TestCreateTask_PredictsSkillsWhenOmitted(t *testing.T) {
	svc, taskRepo, _, skillRepo, predictor := setupService()
	catalog := []model.Skill{frontend, backend}

	taskRepo.On("ExistsByTitle", mock.Anything, "Build login page").Return(false, nil)
	skillRepo.On("GetAll", mock.Anything).Return(catalog, nil)
	predictor.On("Predict", mock.Anything, "Build login page", catalog).Return(
		&llm.Prediction{SkillNames: []string{"Frontend"}, Confidence: map[string]float64{"Frontend": 0.5}}, nil)
	skillRepo.On("GetByIDs", mock.Anything, []uint{1}).Return([]model.Skill{frontend}, nil)
	taskRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Task")).Run(func(args mock.Arguments) {
		args.Get(1).(*model.Task).ID = 3
	}).Return(nil)

	detail, err := svc.CreateTask(context.Background(), service.CreateTaskRequest{Title: "Build login page"})

	assert.NoError(t, err)
	assert.Equal(t, model.StatusTodo, detail.Status)
	assert.Equal(t, []service.SkillView{{ID: 1, Name: "Frontend"}}, detail.Skills)
	predictor.AssertExpectations(t)
}

func TestCreateTask_NoSkillsConfigured(t *testing.T) {
	svc, taskRepo, _, skillRepo, _ := setupService()
	taskRepo.On("ExistsByTitle", mock.Anything, "Anything").Return(false, nil)
	skillRepo.On("GetAll", mock.Anything).Return([]model.Skill{}, nil)

	_, err := svc.CreateTask(context.Background(), service.CreateTaskRequest{Title: "Anything"})

	assertKind(t, err, apperr.KindConfiguration)
}

func TestCreateTask_PredictorYieldsNothingUsable(t *testing.T) {
	svc, taskRepo, _, skillRepo, predictor := setupService()
	catalog := []model.Skill{frontend, backend}

	taskRepo.On("ExistsByTitle", mock.Anything, "Mystery work").Return(false, nil)
	skillRepo.On("GetAll", mock.Anything).Return(catalog, nil)
	predictor.On("Predict", mock.Anything, "Mystery work", catalog).Return(
		&llm.Prediction{SkillNames: []string{}}, nil)

	_, err := svc.CreateTask(context.Background(), service.CreateTaskRequest{Title: "Mystery work"})

	ae := assertKind(t, err, apperr.KindInvalidRequest)
	assert.Contains(t, ae.Message, "specify skills manually")
}

func TestGetTaskByID_NotFoundIsNil(t *testing.T) {
	svc, taskRepo, _, _, _ := setupService()
	taskRepo.On("GetByIDWithRelations", mock.Anything, uint(404)).Return(nil, nil)

	detail, err := svc.GetTaskByID(context.Background(), 404)

	assert.NoError(t, err)
	assert.Nil(t, detail)
}

func TestGetTaskByID_BuildsNestedDetail(t *testing.T) {
	svc, taskRepo, _, _, _ := setupService()
	parent := &model.Task{ID: 1, Title: "Parent", Status: model.StatusInProgress}
	task := &model.Task{
		ID: 2, Title: "Child", Status: model.StatusTodo,
		ParentTaskID: uintPtr(1), ParentTask: parent,
		Skills: []model.Skill{backend},
		Subtasks: []model.Task{
			{
				ID: 3, Title: "Grandchild", Status: model.StatusTodo,
				Skills: []model.Skill{frontend},
				Subtasks: []model.Task{
					{ID: 4, Title: "Great-grandchild", Status: model.StatusTodo},
				},
			},
		},
	}
	taskRepo.On("GetByIDWithRelations", mock.Anything, uint(2)).Return(task, nil)

	detail, err := svc.GetTaskByID(context.Background(), 2)

	assert.NoError(t, err)
	assert.Equal(t, &service.ParentTaskRef{ID: 1, Title: "Parent", Status: model.StatusInProgress}, detail.ParentTask)
	assert.Len(t, detail.Subtasks, 1)
	assert.Equal(t, "Grandchild", detail.Subtasks[0].Title)
	assert.Len(t, detail.Subtasks[0].Subtasks, 1)
	assert.Equal(t, "Great-grandchild", detail.Subtasks[0].Subtasks[0].Title)
}

func TestUpdateTask_NotFound(t *testing.T) {
	svc, taskRepo, _, _, _ := setupService()
	taskRepo.On("ExistsByID", mock.Anything, uint(9)).Return(false, nil)

	_, err := svc.UpdateTask(context.Background(), 9, service.UpdateTaskRequest{Status: strPtr(model.StatusDone)})

	ae := assertKind(t, err, apperr.KindNotFound)
	assert.Equal(t, "Task", ae.Entity)
}

func TestUpdateTask_NoFields(t *testing.T) {
	svc, taskRepo, _, _, _ := setupService()
	taskRepo.On("ExistsByID", mock.Anything, uint(1)).Return(true, nil)

	_, err := svc.UpdateTask(context.Background(), 1, service.UpdateTaskRequest{})

	ae := assertKind(t, err, apperr.KindInvalidRequest)
	assert.Contains(t, ae.Message, "At least one field")
}

func TestUpdateTask_InvalidStatus(t *testing.T) {
	svc, taskRepo, _, _, _ := setupService()
	taskRepo.On("ExistsByID", mock.Anything, uint(1)).Return(true, nil)

	_, err := svc.UpdateTask(context.Background(), 1, service.UpdateTaskRequest{Status: strPtr("Archived")})

	ae := assertKind(t, err, apperr.KindInvalidRequest)
	assert.Contains(t, ae.Message, "Invalid status")
}

func TestUpdateTask_DoneBlockedByIncompleteSubtasks(t *testing.T) {
	svc, taskRepo, _, _, _ := setupService()
	taskRepo.On("ExistsByID", mock.Anything, uint(1)).Return(true, nil)
	taskRepo.On("CountIncompleteSubtasks", mock.Anything, uint(1)).Return(int64(1), nil)

	_, err := svc.UpdateTask(context.Background(), 1, service.UpdateTaskRequest{Status: strPtr(model.StatusDone)})

	ae := assertKind(t, err, apperr.KindInvalidRequest)
	assert.Contains(t, ae.Message, "1 subtask(s) are not complete")
}

func TestUpdateTask_DoneSucceedsWhenSubtasksDone(t *testing.T) {
	svc, taskRepo, _, _, _ := setupService()
	stored := &model.Task{ID: 1, Title: "Parent", Status: model.StatusInProgress}
	updated := &model.Task{ID: 1, Title: "Parent", Status: model.StatusDone,
		Subtasks: []model.Task{{ID: 2, Title: "Child", Status: model.StatusDone}}}

	taskRepo.On("ExistsByID", mock.Anything, uint(1)).Return(true, nil)
	taskRepo.On("CountIncompleteSubtasks", mock.Anything, uint(1)).Return(int64(0), nil)
	taskRepo.On("GetByID", mock.Anything, uint(1)).Return(stored, nil)
	taskRepo.On("Save", mock.Anything, mock.MatchedBy(func(task *model.Task) bool {
		return task.Status == model.StatusDone
	})).Return(nil)
	taskRepo.On("GetByIDWithRelations", mock.Anything, uint(1)).Return(updated, nil)

	detail, err := svc.UpdateTask(context.Background(), 1, service.UpdateTaskRequest{Status: strPtr(model.StatusDone)})

	assert.NoError(t, err)
	assert.Equal(t, model.StatusDone, detail.Status)
	assert.Len(t, detail.Subtasks, 1)
	taskRepo.AssertExpectations(t)
}

func TestUpdateTask_AssignIncompatibleDeveloper(t *testing.T) {
	svc, taskRepo, developerRepo, _, _ := setupService()
	taskRepo.On("ExistsByID", mock.Anything, uint(1)).Return(true, nil)
	developerRepo.On("GetByIDWithSkills", mock.Anything, uint(5)).Return(
		&model.Developer{ID: 5, Name: "Dana", Skills: []model.Skill{frontend}}, nil)
	taskRepo.On("GetByIDWithSkills", mock.Anything, uint(1)).Return(
		&model.Task{ID: 1, Skills: []model.Skill{frontend, backend}}, nil)

	_, err := svc.UpdateTask(context.Background(), 1, service.UpdateTaskRequest{
		DeveloperProvided: true,
		DeveloperID:       uintPtr(5),
	})

	ae := assertKind(t, err, apperr.KindInvalidRequest)
	assert.Contains(t, ae.Message, "Dana")
	assert.Contains(t, ae.Message, "2")
}

func TestUpdateTask_ExplicitNullUnassigns(t *testing.T) {
	svc, taskRepo, developerRepo, _, _ := setupService()
	devID := uint(5)
	stored := &model.Task{ID: 1, Title: "Parent", Status: model.StatusTodo, DeveloperID: &devID}
	updated := &model.Task{ID: 1, Title: "Parent", Status: model.StatusTodo}

	taskRepo.On("ExistsByID", mock.Anything, uint(1)).Return(true, nil)
	taskRepo.On("GetByID", mock.Anything, uint(1)).Return(stored, nil)
	taskRepo.On("Save", mock.Anything, mock.MatchedBy(func(task *model.Task) bool {
		return task.DeveloperID == nil
	})).Return(nil)
	taskRepo.On("GetByIDWithRelations", mock.Anything, uint(1)).Return(updated, nil)

	detail, err := svc.UpdateTask(context.Background(), 1, service.UpdateTaskRequest{
		DeveloperProvided: true,
		DeveloperID:       nil,
	})

	assert.NoError(t, err)
	assert.Nil(t, detail.Developer)
	// Unassigning never loads the developer at all.
	developerRepo.AssertNotCalled(t, "GetByIDWithSkills", mock.Anything, mock.Anything)
}

func TestListTasks_PaginationInvariants(t *testing.T) {
	svc, taskRepo, _, _, _ := setupService()
	rows := []model.Task{
		{ID: 8, Title: "Newest", Status: model.StatusTodo},
		{ID: 7, Title: "Older", Status: model.StatusDone, Skills: []model.Skill{backend}},
	}
	taskRepo.On("List", mock.Anything, repository.TaskListFilter{}, 2, 2).Return(rows, int64(5), nil)
	taskRepo.On("SubtaskCounts", mock.Anything, []uint{8, 7}).Return(map[uint]int64{8: 3}, nil)

	result, err := svc.ListTasks(context.Background(), repository.TaskListFilter{}, 2, 2)

	assert.NoError(t, err)
	assert.LessOrEqual(t, len(result.Data), 2)
	assert.Equal(t, int64(5), result.Pagination.TotalItems)
	assert.Equal(t, 3, result.Pagination.TotalPages)
	assert.True(t, result.Pagination.HasNext, "2*2 < 5")
	assert.True(t, result.Pagination.HasPrevious)
	assert.Equal(t, int64(3), result.Data[0].SubtaskCount)
	assert.Equal(t, int64(0), result.Data[1].SubtaskCount)
}

func TestListTasks_LastPageHasNoNext(t *testing.T) {
	svc, taskRepo, _, _, _ := setupService()
	taskRepo.On("List", mock.Anything, repository.TaskListFilter{}, 4, 2).Return([]model.Task{{ID: 1}}, int64(5), nil)
	taskRepo.On("SubtaskCounts", mock.Anything, []uint{1}).Return(map[uint]int64{}, nil)

	result, err := svc.ListTasks(context.Background(), repository.TaskListFilter{}, 3, 2)

	assert.NoError(t, err)
	assert.False(t, result.Pagination.HasNext)
	assert.True(t, result.Pagination.HasPrevious)
}

func TestListTasks_DefaultsPageAndSize(t *testing.T) {
	svc, taskRepo, _, _, _ := setupService()
	taskRepo.On("List", mock.Anything, repository.TaskListFilter{}, 0, 10).Return([]model.Task{}, int64(0), nil)
	taskRepo.On("SubtaskCounts", mock.Anything, []uint{}).Return(map[uint]int64{}, nil)

	result, err := svc.ListTasks(context.Background(), repository.TaskListFilter{}, 0, 0)

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Pagination.Page)
	assert.Equal(t, 10, result.Pagination.PageSize)
	assert.False(t, result.Pagination.HasNext)
	assert.False(t, result.Pagination.HasPrevious)
	assert.Equal(t, 0, result.Pagination.TotalPages)
}

func TestCreateTask_StoreFailureAborts(t *testing.T) {
	svc, taskRepo, _, _, _ := setupService()
	taskRepo.On("ExistsByTitle", mock.Anything, "A task").Return(false, errors.New("store unavailable"))

	_, err := svc.CreateTask(context.Background(), service.CreateTaskRequest{Title: "A task", SkillIDs: []uint{1}})

	assert.Error(t, err)
	var ae *apperr.Error
	assert.False(t, errors.As(err, &ae), "transport failures stay generic")
}
