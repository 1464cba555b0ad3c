package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"task-assignment.com/task-assignment/internal/constants"
	dto "task-assignment.com/task-assignment/internal/data_models"
	apperrors "task-assignment.com/task-assignment/internal/errors"
	"task-assignment.com/task-assignment/internal/logging"
	model "task-assignment.com/task-assignment/internal/models"
	repository "task-assignment.com/task-assignment/internal/repositories"
)

// Directory is the read-only user/team lookup the assignment rules depend on.
// FindUserInTeam returns gorm.ErrRecordNotFound when the user is not a member.
type Directory interface {
	AdminChecker
	FindUserInTeam(ctx context.Context, userID, teamID string) (*model.User, error)
}

type AssignmentService struct {
	store     *repository.Store
	tasks     *TaskService
	directory Directory
	now       func() time.Time
}

func NewAssignmentService(store *repository.Store, tasks *TaskService, directory Directory) *AssignmentService {
	return &AssignmentService{
		store:     store,
		tasks:     tasks,
		directory: directory,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// AssignTask assigns targetUserID (or the acting user when empty) to the task
// and returns the task with all active assignments.
func (s *AssignmentService) AssignTask(ctx context.Context, taskID, actingUserID, actingTeamID, targetUserID string) (*model.Task, error) {
	task, err := s.resolveTask(ctx, taskID, actingTeamID)
	if err != nil {
		return nil, err
	}
	if err := s.requireMember(ctx, actingUserID, actingTeamID); err != nil {
		return nil, err
	}

	target := effectiveTarget(actingUserID, targetUserID)

	if err := AuthorizeAssignment(ctx, s.directory, task, actingUserID, target, CapabilityAssignOthers); err != nil {
		return nil, err
	}

	if _, err := s.directory.FindUserInTeam(ctx, target, actingTeamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTargetNotFound
		}
		return nil, err
	}

	var result *model.Task
	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		// A delete that committed after the first lookup must surface here.
		if _, err := tx.Tasks.FindInTeam(ctx, taskID, actingTeamID, false); err != nil {
			return taskNotFound(err)
		}

		_, err := tx.Assignments.FindActive(ctx, taskID, target)
		if err == nil {
			return apperrors.ErrAlreadyAssigned
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		assignment := &model.Assignment{
			ID:           uuid.NewString(),
			TaskID:       taskID,
			UserID:       target,
			AssignedByID: actingUserID,
			AssignedAt:   s.now(),
			State:        constants.StateActive,
		}
		if err := tx.Assignments.Create(ctx, assignment); err != nil {
			if errors.Is(err, repository.ErrDuplicateAssignment) {
				return apperrors.ErrAlreadyAssigned
			}
			return err
		}

		result, err = tx.Tasks.FindInTeam(ctx, taskID, actingTeamID, true)
		return err
	})
	if err != nil {
		return nil, err
	}

	logging.Logger.WithFields(logrus.Fields{
		"task_id":     taskID,
		"team_id":     actingTeamID,
		"user_id":     target,
		"assigned_by": actingUserID,
	}).Info("task assigned")

	return result, nil
}

// UnassignTask removes the active assignment of targetUserID (or the acting
// user when empty). A missing assignment is reported as AssignmentNotFound to
// every team member, since assignments are visible to the whole team anyway.
func (s *AssignmentService) UnassignTask(ctx context.Context, taskID, actingUserID, actingTeamID, targetUserID string) (*dto.UnassignResult, error) {
	task, err := s.resolveTask(ctx, taskID, actingTeamID)
	if err != nil {
		return nil, err
	}
	if err := s.requireMember(ctx, actingUserID, actingTeamID); err != nil {
		return nil, err
	}

	target := effectiveTarget(actingUserID, targetUserID)

	if _, err := s.store.Assignments.FindActive(ctx, taskID, target); err != nil {
		return nil, assignmentNotFound(err)
	}

	if err := AuthorizeAssignment(ctx, s.directory, task, actingUserID, target, CapabilityUnassignOthers); err != nil {
		return nil, err
	}

	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		if _, err := tx.Tasks.FindInTeam(ctx, taskID, actingTeamID, false); err != nil {
			return taskNotFound(err)
		}

		assignment, err := tx.Assignments.FindActive(ctx, taskID, target)
		if err != nil {
			return assignmentNotFound(err)
		}

		removed, err := tx.Assignments.SoftDelete(ctx, assignment.ID, s.now())
		if err != nil {
			return err
		}
		if !removed {
			return apperrors.ErrAssignmentNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logging.Logger.WithFields(logrus.Fields{
		"task_id":       taskID,
		"team_id":       actingTeamID,
		"user_id":       target,
		"unassigned_by": actingUserID,
	}).Info("task unassigned")

	return &dto.UnassignResult{TaskID: taskID, UserID: target}, nil
}

// ListAssignments lists the task's assignments, oldest first. Tombstoned rows
// are only included on request.
func (s *AssignmentService) ListAssignments(ctx context.Context, taskID, teamID string, includeDeleted bool) ([]model.Assignment, error) {
	if _, err := s.resolveTask(ctx, taskID, teamID); err != nil {
		return nil, err
	}
	return s.store.Assignments.ListByTask(ctx, taskID, includeDeleted)
}

func (s *AssignmentService) resolveTask(ctx context.Context, taskID, teamID string) (*model.Task, error) {
	task, err := s.tasks.GetTask(ctx, taskID, teamID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

// requireMember rejects an acting user who is not an active member of the
// acting team. Such a caller cannot see the team's tasks, so the task is
// reported as missing.
func (s *AssignmentService) requireMember(ctx context.Context, userID, teamID string) error {
	if _, err := s.directory.FindUserInTeam(ctx, userID, teamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrTaskNotFound
		}
		return err
	}
	return nil
}

func effectiveTarget(actingUserID, targetUserID string) string {
	if targetUserID == "" {
		return actingUserID
	}
	return targetUserID
}

func taskNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrTaskNotFound
	}
	return err
}

func assignmentNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrAssignmentNotFound
	}
	return err
}
