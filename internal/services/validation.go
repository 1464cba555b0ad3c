package services

import (
	"strings"
	"unicode/utf8"

	"task-assignment.com/task-assignment/internal/constants"
	apperrors "task-assignment.com/task-assignment/internal/errors"
)

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return apperrors.NewValidation("title", "must not be empty")
	}
	if utf8.RuneCountInString(title) > constants.MaxTitleLength {
		return apperrors.NewValidation("title", "must be at most 255 characters")
	}
	return nil
}

func validatePriority(p constants.Priority) error {
	if !p.Valid() {
		return apperrors.NewValidation("priority", "must be one of low, medium, high, urgent")
	}
	return nil
}
