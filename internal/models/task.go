package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"task-assignment.com/task-assignment/internal/constants"
)

type Task struct {
	ID           string                      `gorm:"primaryKey;size:36" json:"id"`
	TeamID       string                      `gorm:"size:36;not null;index" json:"team_id"`
	CreatedByID  string                      `gorm:"size:36;not null" json:"created_by_id"`
	DocumentID   *string                     `gorm:"size:36" json:"document_id,omitempty"`
	CollectionID *string                     `gorm:"size:36" json:"collection_id,omitempty"`
	Title        string                      `gorm:"size:255;not null" json:"title"`
	Description  string                      `gorm:"type:text" json:"description"`
	Priority     constants.Priority          `gorm:"type:varchar(10);not null;default:medium" json:"priority"`
	Deadline     *time.Time                  `json:"deadline,omitempty"`
	Tags         datatypes.JSONSlice[string] `json:"tags"`
	CompletedAt  *time.Time                  `json:"completed_at,omitempty"`
	State        constants.RecordState       `gorm:"type:varchar(10);not null;default:active" json:"state"`
	CreatedAt    time.Time                   `json:"created_at"`
	UpdatedAt    time.Time                   `json:"updated_at"`
	DeletedAt    gorm.DeletedAt              `gorm:"index" json:"deleted_at,omitempty"`

	Assignments []Assignment `gorm:"foreignKey:TaskID" json:"assignments,omitempty"`
}
