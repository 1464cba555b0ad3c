package dto

import (
	"time"

	"task-assignment.com/task-assignment/internal/constants"
)

type CreateTaskRequest struct {
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	Priority     constants.Priority `json:"priority"`
	Deadline     *time.Time         `json:"deadline"`
	Tags         []string           `json:"tags"`
	DocumentID   *string            `json:"document_id"`
	CollectionID *string            `json:"collection_id"`
}

// UpdateTaskRequest carries a partial update; nil fields are left untouched.
// ClearDeadline removes the deadline and cannot be combined with Deadline.
type UpdateTaskRequest struct {
	Title         *string             `json:"title"`
	Description   *string             `json:"description"`
	Priority      *constants.Priority `json:"priority"`
	Deadline      *time.Time          `json:"deadline"`
	ClearDeadline bool                `json:"clear_deadline"`
	Tags          *[]string           `json:"tags"`
	DocumentID    *string             `json:"document_id"`
	CollectionID  *string             `json:"collection_id"`
	Completed     *bool               `json:"completed"`
}

type AssignmentRequest struct {
	UserID string `json:"user_id"`
}

type UnassignResult struct {
	TaskID string `json:"task_id"`
	UserID string `json:"user_id"`
}
