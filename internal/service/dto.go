package service

import (
	"time"

	"taskmanager/internal/model"
)

// SkillView is the skill projection embedded in task and developer views.
type SkillView struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// DeveloperRef identifies the developer assigned to a task.
type DeveloperRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// ParentTaskRef summarizes a task's immediate parent.
type ParentTaskRef struct {
	ID     uint   `json:"id"`
	Title  string `json:"title"`
	Status string `json:"status"`
}

// TaskDetail is the full task view: skills, developer, parent summary and
// nested subtasks bounded to two levels from the root query.
type TaskDetail struct {
	ID         uint           `json:"id"`
	Title      string         `json:"title"`
	Status     string         `json:"status"`
	Skills     []SkillView    `json:"skills"`
	Developer  *DeveloperRef  `json:"developer"`
	ParentTask *ParentTaskRef `json:"parentTask"`
	Subtasks   []TaskDetail   `json:"subtasks"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

// TaskListItem is one row of the paginated task list. Subtasks are reported
// as a count only.
type TaskListItem struct {
	ID           uint          `json:"id"`
	Title        string        `json:"title"`
	Status       string        `json:"status"`
	Skills       []SkillView   `json:"skills"`
	Developer    *DeveloperRef `json:"developer"`
	ParentTaskID *uint         `json:"parentTaskId"`
	SubtaskCount int64         `json:"subtaskCount"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

type Pagination struct {
	Page        int   `json:"page"`
	PageSize    int   `json:"pageSize"`
	TotalItems  int64 `json:"totalItems"`
	TotalPages  int   `json:"totalPages"`
	HasNext     bool  `json:"hasNext"`
	HasPrevious bool  `json:"hasPrevious"`
}

// PaginatedTasks is the list envelope.
type PaginatedTasks struct {
	Data       []TaskListItem `json:"data"`
	Pagination Pagination     `json:"pagination"`
}

// DeveloperView is the full developer projection.
type DeveloperView struct {
	ID        uint        `json:"id"`
	Name      string      `json:"name"`
	Skills    []SkillView `json:"skills"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

func buildSkillViews(skills []model.Skill) []SkillView {
	views := make([]SkillView, len(skills))
	for i, s := range skills {
		views[i] = SkillView{ID: s.ID, Name: s.Name}
	}
	return views
}

func buildDeveloperRef(dev *model.Developer) *DeveloperRef {
	if dev == nil {
		return nil
	}
	return &DeveloperRef{ID: dev.ID, Name: dev.Name}
}

// buildTaskDetail renders a task tree into the detail view, capping subtask
// recursion at the given depth rather than walking unbounded.
func buildTaskDetail(task *model.Task, depth int) *TaskDetail {
	detail := &TaskDetail{
		ID:        task.ID,
		Title:     task.Title,
		Status:    task.Status,
		Skills:    buildSkillViews(task.Skills),
		Developer: buildDeveloperRef(task.Developer),
		Subtasks:  []TaskDetail{},
		CreatedAt: task.CreatedAt,
		UpdatedAt: task.UpdatedAt,
	}

	if task.ParentTask != nil {
		detail.ParentTask = &ParentTaskRef{
			ID:     task.ParentTask.ID,
			Title:  task.ParentTask.Title,
			Status: task.ParentTask.Status,
		}
	}

	if depth > 0 {
		for i := range task.Subtasks {
			detail.Subtasks = append(detail.Subtasks, *buildTaskDetail(&task.Subtasks[i], depth-1))
		}
	}

	return detail
}

func buildTaskListItem(task *model.Task, subtaskCount int64) TaskListItem {
	return TaskListItem{
		ID:           task.ID,
		Title:        task.Title,
		Status:       task.Status,
		Skills:       buildSkillViews(task.Skills),
		Developer:    buildDeveloperRef(task.Developer),
		ParentTaskID: task.ParentTaskID,
		SubtaskCount: subtaskCount,
		CreatedAt:    task.CreatedAt,
		UpdatedAt:    task.UpdatedAt,
	}
}
