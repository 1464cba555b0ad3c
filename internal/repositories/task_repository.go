package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"task-assignment.com/task-assignment/internal/constants"
	model "task-assignment.com/task-assignment/internal/models"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// FindInTeam returns gorm.ErrRecordNotFound for missing, deleted and
// other-team tasks alike.
func (r *TaskRepository) FindInTeam(ctx context.Context, id, teamID string, withAssignees bool) (*model.Task, error) {
	query := r.db.WithContext(ctx)
	if withAssignees {
		query = query.
			Preload("Assignments", func(db *gorm.DB) *gorm.DB {
				return db.Order("assigned_at asc")
			}).
			Preload("Assignments.User").
			Preload("Assignments.AssignedBy")
	}

	var task model.Task
	err := query.First(&task, "id = ? AND team_id = ?", id, teamID).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) ListByTeam(ctx context.Context, teamID string, limit int) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Order("created_at desc").
		Limit(limit).
		Find(&tasks).Error
	return tasks, err
}

// UpdateFields applies a partial update to an active task of the team and
// reports whether a row matched.
func (r *TaskRepository) UpdateFields(ctx context.Context, id, teamID string, fields map[string]interface{}) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ? AND team_id = ?", id, teamID).
		Updates(fields)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *TaskRepository) SoftDelete(ctx context.Context, id, teamID string, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ? AND team_id = ?", id, teamID).
		Updates(map[string]interface{}{
			"state":      constants.StateDeleted,
			"deleted_at": at,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
