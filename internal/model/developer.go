package model

import (
	"time"
)

// Developer can only be assigned tasks whose required skills are a subset
// of its own skill set.
type Developer struct {
	ID        uint    `gorm:"primaryKey"`
	Name      string  `gorm:"size:100;uniqueIndex;not null"`
	Skills    []Skill `gorm:"many2many:developer_skills"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
