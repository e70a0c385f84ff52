package model

import (
	"time"
)

// Task statuses
const (
	StatusTodo       = "To-do"
	StatusInProgress = "In Progress"
	StatusDone       = "Done"
)

// Statuses lists the valid task statuses in lifecycle order.
var Statuses = []string{StatusTodo, StatusInProgress, StatusDone}

// ValidStatus reports whether s is one of the known task statuses.
func ValidStatus(s string) bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

type Task struct {
	ID           uint   `gorm:"primaryKey"`
	Title        string `gorm:"size:100;uniqueIndex;not null"`
	Status       string `gorm:"size:50;not null"`
	DeveloperID  *uint
	ParentTaskID *uint `gorm:"index"`

	Developer  *Developer `gorm:"foreignKey:DeveloperID;constraint:OnDelete:SET NULL"`
	ParentTask *Task      `gorm:"foreignKey:ParentTaskID"`
	Subtasks   []Task     `gorm:"foreignKey:ParentTaskID"`
	Skills     []Skill    `gorm:"many2many:task_skills"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
