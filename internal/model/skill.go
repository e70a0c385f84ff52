package model

import (
	"time"
)

// Skill is a named capability required by tasks and possessed by developers.
// Skills are seeded out-of-band and never mutated by the service.
type Skill struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"size:100;uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}
