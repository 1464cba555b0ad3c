package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"task-assignment.com/task-assignment/internal/constants"
	dto "task-assignment.com/task-assignment/internal/data_models"
	apperrors "task-assignment.com/task-assignment/internal/errors"
	"task-assignment.com/task-assignment/internal/logging"
	model "task-assignment.com/task-assignment/internal/models"
	repository "task-assignment.com/task-assignment/internal/repositories"
)

const maxListLimit = 200

type TaskService struct {
	store *repository.Store
	now   func() time.Time
}

func NewTaskService(store *repository.Store) *TaskService {
	return &TaskService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

type getOptions struct {
	withAssignees bool
}

type GetOption func(*getOptions)

// WithAssignees loads the task's active assignments together with the
// assignee and assigner of each.
func WithAssignees() GetOption {
	return func(o *getOptions) {
		o.withAssignees = true
	}
}

func (s *TaskService) CreateTask(ctx context.Context, teamID, creatorID string, req dto.CreateTaskRequest) (*model.Task, error) {
	if err := validateTitle(req.Title); err != nil {
		return nil, err
	}

	priority := req.Priority
	if priority == "" {
		priority = constants.DefaultPriority
	}
	if err := validatePriority(priority); err != nil {
		return nil, err
	}

	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	task := &model.Task{
		ID:           uuid.NewString(),
		TeamID:       teamID,
		CreatedByID:  creatorID,
		DocumentID:   req.DocumentID,
		CollectionID: req.CollectionID,
		Title:        req.Title,
		Description:  req.Description,
		Priority:     priority,
		Deadline:     req.Deadline,
		Tags:         datatypes.JSONSlice[string](tags),
		State:        constants.StateActive,
	}

	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		return tx.Tasks.Create(ctx, task)
	})
	if err != nil {
		return nil, err
	}

	logging.Logger.WithFields(logrus.Fields{
		"task_id": task.ID,
		"team_id": teamID,
		"user_id": creatorID,
	}).Info("task created")

	return task, nil
}

func (s *TaskService) GetTask(ctx context.Context, taskID, teamID string, opts ...GetOption) (*model.Task, error) {
	var o getOptions
	for _, opt := range opts {
		opt(&o)
	}

	task, err := s.store.Tasks.FindInTeam(ctx, taskID, teamID, o.withAssignees)
	if err != nil {
		return nil, notFound(err)
	}
	return task, nil
}

func (s *TaskService) ListTasks(ctx context.Context, teamID string, limit int) ([]model.Task, error) {
	if limit <= 0 {
		return nil, apperrors.ErrInvalidLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return s.store.Tasks.ListByTeam(ctx, teamID, limit)
}

func (s *TaskService) UpdateTask(ctx context.Context, taskID, teamID string, req dto.UpdateTaskRequest) (*model.Task, error) {
	fields, err := s.updateFields(req)
	if err != nil {
		return nil, err
	}

	var task *model.Task
	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		if len(fields) > 0 {
			found, err := tx.Tasks.UpdateFields(ctx, taskID, teamID, fields)
			if err != nil {
				return err
			}
			if !found {
				return apperrors.ErrNotFound
			}
		}

		task, err = tx.Tasks.FindInTeam(ctx, taskID, teamID, false)
		return notFound(err)
	})
	if err != nil {
		return nil, err
	}

	logging.Logger.WithFields(logrus.Fields{
		"task_id": taskID,
		"team_id": teamID,
		"fields":  len(fields),
	}).Info("task updated")

	return task, nil
}

// updateFields builds the column set for a partial update. Team and creator
// are never part of it.
func (s *TaskService) updateFields(req dto.UpdateTaskRequest) (map[string]interface{}, error) {
	fields := make(map[string]interface{})

	if req.Title != nil {
		if err := validateTitle(*req.Title); err != nil {
			return nil, err
		}
		fields["title"] = *req.Title
	}
	if req.Priority != nil {
		if err := validatePriority(*req.Priority); err != nil {
			return nil, err
		}
		fields["priority"] = *req.Priority
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	switch {
	case req.Deadline != nil && req.ClearDeadline:
		return nil, apperrors.NewValidation("deadline", "cannot set and clear at once")
	case req.Deadline != nil:
		fields["deadline"] = *req.Deadline
	case req.ClearDeadline:
		fields["deadline"] = nil
	}
	if req.Tags != nil {
		tags := *req.Tags
		if tags == nil {
			tags = []string{}
		}
		fields["tags"] = datatypes.JSONSlice[string](tags)
	}
	if req.DocumentID != nil {
		fields["document_id"] = *req.DocumentID
	}
	if req.CollectionID != nil {
		fields["collection_id"] = *req.CollectionID
	}
	if req.Completed != nil {
		if *req.Completed {
			fields["completed_at"] = s.now()
		} else {
			fields["completed_at"] = nil
		}
	}

	return fields, nil
}

// DeleteTask tombstones the task and all of its active assignments atomically.
func (s *TaskService) DeleteTask(ctx context.Context, taskID, teamID string) error {
	var cascaded int64
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		at := s.now()

		found, err := tx.Tasks.SoftDelete(ctx, taskID, teamID, at)
		if err != nil {
			return err
		}
		if !found {
			return apperrors.ErrNotFound
		}

		cascaded, err = tx.Assignments.SoftDeleteByTask(ctx, taskID, at)
		return err
	})
	if err != nil {
		return err
	}

	logging.Logger.WithFields(logrus.Fields{
		"task_id":     taskID,
		"team_id":     teamID,
		"assignments": cascaded,
	}).Info("task deleted")

	return nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrNotFound
	}
	return err
}
