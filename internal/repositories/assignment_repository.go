package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"task-assignment.com/task-assignment/internal/constants"
	model "task-assignment.com/task-assignment/internal/models"
)

type AssignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

func (r *AssignmentRepository) Create(ctx context.Context, assignment *model.Assignment) error {
	err := r.db.WithContext(ctx).Omit("User", "AssignedBy").Create(assignment).Error
	if err != nil && isUniqueViolation(err) {
		return ErrDuplicateAssignment
	}
	return err
}

func (r *AssignmentRepository) FindActive(ctx context.Context, taskID, userID string) (*model.Assignment, error) {
	var assignment model.Assignment
	err := r.db.WithContext(ctx).
		First(&assignment, "task_id = ? AND user_id = ?", taskID, userID).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *AssignmentRepository) ListByTask(ctx context.Context, taskID string, includeDeleted bool) ([]model.Assignment, error) {
	query := r.db.WithContext(ctx)
	if includeDeleted {
		query = query.Unscoped()
	}

	var assignments []model.Assignment
	err := query.
		Preload("User").
		Preload("AssignedBy").
		Where("task_id = ?", taskID).
		Order("assigned_at asc").
		Find(&assignments).Error
	return assignments, err
}

// SoftDelete tombstones a single active assignment and reports whether it was
// still active.
func (r *AssignmentRepository) SoftDelete(ctx context.Context, id string, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Assignment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"state":      constants.StateDeleted,
			"deleted_at": at,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// SoftDeleteByTask tombstones every active assignment of the task.
func (r *AssignmentRepository) SoftDeleteByTask(ctx context.Context, taskID string, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Assignment{}).
		Where("task_id = ?", taskID).
		Updates(map[string]interface{}{
			"state":      constants.StateDeleted,
			"deleted_at": at,
		})
	return res.RowsAffected, res.Error
}

// Restore clears the tombstone of a deleted assignment. It fails with
// ErrDuplicateAssignment when the pair is already actively assigned again.
func (r *AssignmentRepository) Restore(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Unscoped().Model(&model.Assignment{}).
		Where("id = ? AND deleted_at IS NOT NULL", id).
		Updates(map[string]interface{}{
			"state":      constants.StateActive,
			"deleted_at": nil,
		})
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return false, ErrDuplicateAssignment
		}
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
