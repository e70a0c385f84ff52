package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-multierror"

	"taskmanager/internal/apperr"
	"taskmanager/internal/repository"
	"taskmanager/internal/service"
)

// TaskServiceInterface is the admission engine surface the handler needs.
type TaskServiceInterface interface {
	CreateTask(ctx context.Context, req service.CreateTaskRequest) (*service.TaskDetail, error)
	GetTaskByID(ctx context.Context, id uint) (*service.TaskDetail, error)
	UpdateTask(ctx context.Context, id uint, req service.UpdateTaskRequest) (*service.TaskDetail, error)
	ListTasks(ctx context.Context, filter repository.TaskListFilter, page, pageSize int) (*service.PaginatedTasks, error)
}

type TaskHandler struct {
	tasks TaskServiceInterface
}

func NewTaskHandler(tasks TaskServiceInterface) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// SubtaskRequest is one node of a nested subtask tree in a create request.
type SubtaskRequest struct {
	Title       string           `json:"title" binding:"required"`
	SkillIDs    []uint           `json:"skillIds"`
	DeveloperID *uint            `json:"developerId"`
	Subtasks    []SubtaskRequest `json:"subtasks"`
}

// TaskCreateRequest is the create payload. SkillIDs may be omitted; the
// engine then predicts them from the title.
type TaskCreateRequest struct {
	Title        string           `json:"title" binding:"required"`
	SkillIDs     []uint           `json:"skillIds"`
	DeveloperID  *uint            `json:"developerId"`
	ParentTaskID *uint            `json:"parentTaskId"`
	Subtasks     []SubtaskRequest `json:"subtasks"`
}

// OptionalUint distinguishes an absent JSON field from an explicit null.
type OptionalUint struct {
	Set   bool
	Value *uint
}

func (o *OptionalUint) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var v uint
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// TaskUpdateRequest is the update payload. developerId null unassigns;
// omitting it leaves the developer untouched.
type TaskUpdateRequest struct {
	Status      *string      `json:"status"`
	DeveloperID OptionalUint `json:"developerId"`
}

// Create handles POST /api/tasks.
//
// @Summary      Create a task
// @Description  Creates a task, predicting required skills from the title when none are given. An optional nested subtasks tree is created sequentially, parent before children; node failures are reported without rolling back created ancestors.
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Param        task  body      TaskCreateRequest  true  "Task to create"
// @Success      201   {object}  service.TaskDetail
// @Failure      400   {object}  map[string]interface{}
// @Failure      404   {object}  map[string]interface{}
// @Router       /api/tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	var req TaskCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.InvalidRequest("Invalid request body: %v", err))
		return
	}

	root, err := h.tasks.CreateTask(c.Request.Context(), service.CreateTaskRequest{
		Title:        req.Title,
		SkillIDs:     req.SkillIDs,
		DeveloperID:  req.DeveloperID,
		ParentTaskID: req.ParentTaskID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	if len(req.Subtasks) == 0 {
		c.JSON(http.StatusCreated, root)
		return
	}

	// Nested creation is one admission call per node; already-created
	// ancestors are kept when a node fails, so partial success is reported
	// rather than rolled back.
	var errs *multierror.Error
	h.createSubtree(c.Request.Context(), root.ID, req.Subtasks, &errs)

	detail, err := h.tasks.GetTaskByID(c.Request.Context(), root.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	if detail == nil {
		detail = root
	}

	if errs.ErrorOrNil() != nil {
		messages := make([]string, len(errs.Errors))
		for i, e := range errs.Errors {
			messages[i] = e.Error()
		}
		c.JSON(http.StatusMultiStatus, gin.H{"task": detail, "errors": messages})
		return
	}
	c.JSON(http.StatusCreated, detail)
}

// createSubtree creates subtask nodes depth-first under parentID. When a
// node fails its children are skipped; siblings still get their chance.
func (h *TaskHandler) createSubtree(ctx context.Context, parentID uint, subtasks []SubtaskRequest, errs **multierror.Error) {
	for _, sub := range subtasks {
		parent := parentID
		created, err := h.tasks.CreateTask(ctx, service.CreateTaskRequest{
			Title:        sub.Title,
			SkillIDs:     sub.SkillIDs,
			DeveloperID:  sub.DeveloperID,
			ParentTaskID: &parent,
		})
		if err != nil {
			*errs = multierror.Append(*errs, fmt.Errorf("subtask %q: %w", sub.Title, err))
			continue
		}
		h.createSubtree(ctx, created.ID, sub.Subtasks, errs)
	}
}

// GetByID handles GET /api/tasks/:id.
//
// @Summary      Get a task
// @Description  Returns the task with skills, developer, parent summary and up to two levels of subtasks
// @Tags         Tasks
// @Produce      json
// @Param        id   path      int  true  "Task ID"
// @Success      200  {object}  service.TaskDetail
// @Failure      404  {object}  map[string]interface{}
// @Router       /api/tasks/{id} [get]
func (h *TaskHandler) GetByID(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		respondError(c, apperr.InvalidRequest("Invalid task ID"))
		return
	}

	task, err := h.tasks.GetTaskByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if task == nil {
		respondError(c, apperr.NotFound("Task", id))
		return
	}
	c.JSON(http.StatusOK, task)
}

// Update handles PUT /api/tasks/:id.
//
// @Summary      Update a task
// @Description  Changes status and/or assigned developer; a null developerId unassigns
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Param        id    path      int                true  "Task ID"
// @Param        task  body      TaskUpdateRequest  true  "Fields to update"
// @Success      200   {object}  service.TaskDetail
// @Failure      400   {object}  map[string]interface{}
// @Failure      404   {object}  map[string]interface{}
// @Router       /api/tasks/{id} [put]
func (h *TaskHandler) Update(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		respondError(c, apperr.InvalidRequest("Invalid task ID"))
		return
	}

	var req TaskUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.InvalidRequest("Invalid request body: %v", err))
		return
	}

	task, err := h.tasks.UpdateTask(c.Request.Context(), id, service.UpdateTaskRequest{
		Status:            req.Status,
		DeveloperProvided: req.DeveloperID.Set,
		DeveloperID:       req.DeveloperID.Value,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// List handles GET /api/tasks.
//
// @Summary      List tasks
// @Description  Paginated task list, newest first, with optional status/developer/skill/parentOnly filters
// @Tags         Tasks
// @Produce      json
// @Param        page         query     int     false  "1-indexed page"
// @Param        pageSize     query     int     false  "Page size"
// @Param        status       query     string  false  "Exact status filter"
// @Param        developerId  query     int     false  "Assigned developer filter"
// @Param        skillIds     query     string  false  "Comma-separated skill IDs (at least one must match)"
// @Param        parentOnly   query     bool    false  "Only tasks without a parent"
// @Success      200  {object}  service.PaginatedTasks
// @Failure      400  {object}  map[string]interface{}
// @Router       /api/tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	page, err := parseQueryInt(c, "page", 1)
	if err != nil {
		respondError(c, err)
		return
	}
	pageSize, err := parseQueryInt(c, "pageSize", 10)
	if err != nil {
		respondError(c, err)
		return
	}

	filter := repository.TaskListFilter{
		Status:     c.Query("status"),
		ParentOnly: c.Query("parentOnly") == "true",
	}

	if raw := c.Query("developerId"); raw != "" {
		devID, err := parseID(raw)
		if err != nil {
			respondError(c, apperr.InvalidRequest("Invalid developerId"))
			return
		}
		filter.DeveloperID = &devID
	}

	if raw := c.Query("skillIds"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			skillID, err := parseID(strings.TrimSpace(part))
			if err != nil {
				respondError(c, apperr.InvalidRequest("Invalid skillIds"))
				return
			}
			filter.SkillIDs = append(filter.SkillIDs, skillID)
		}
	}

	result, err := h.tasks.ListTasks(c.Request.Context(), filter, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func parseQueryInt(c *gin.Context, name string, defaultVal int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.InvalidRequest("Invalid %s", name)
	}
	return n, nil
}
