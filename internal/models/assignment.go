package model

import (
	"time"

	"gorm.io/gorm"

	"task-assignment.com/task-assignment/internal/constants"
)

// Assignment links a task to its assignee. The (task_id, user_id) pair is
// unique among rows whose deleted_at is null.
type Assignment struct {
	ID           string                `gorm:"primaryKey;size:36" json:"id"`
	TaskID       string                `gorm:"size:36;not null;index" json:"task_id"`
	UserID       string                `gorm:"size:36;not null;index" json:"user_id"`
	AssignedByID string                `gorm:"size:36;not null" json:"assigned_by_id"`
	AssignedAt   time.Time             `gorm:"not null;<-:create" json:"assigned_at"`
	State        constants.RecordState `gorm:"type:varchar(10);not null;default:active" json:"state"`
	DeletedAt    gorm.DeletedAt        `gorm:"index" json:"deleted_at,omitempty"`

	User       *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	AssignedBy *User `gorm:"foreignKey:AssignedByID" json:"assigned_by,omitempty"`
}
