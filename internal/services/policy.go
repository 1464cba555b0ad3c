package services

import (
	"context"

	apperrors "task-assignment.com/task-assignment/internal/errors"
	model "task-assignment.com/task-assignment/internal/models"
)

const (
	CapabilityAssignOthers   = "assign other users"
	CapabilityUnassignOthers = "unassign other users"
)

type AdminChecker interface {
	IsTeamAdmin(ctx context.Context, userID, teamID string) (bool, error)
}

// AuthorizeAssignment decides whether actingUserID may change targetUserID's
// assignment on task. Acting on oneself is always allowed; acting on someone
// else requires being the task creator or an admin of the task's team. The
// caller must already have confirmed that actingUserID is a team member.
func AuthorizeAssignment(
	ctx context.Context,
	admins AdminChecker,
	task *model.Task,
	actingUserID string,
	targetUserID string,
	capability string,
) error {
	if targetUserID == actingUserID {
		return nil
	}
	if task.CreatedByID == actingUserID {
		return nil
	}

	isAdmin, err := admins.IsTeamAdmin(ctx, actingUserID, task.TeamID)
	if err != nil {
		return err
	}
	if isAdmin {
		return nil
	}

	return apperrors.NewForbidden(capability)
}
