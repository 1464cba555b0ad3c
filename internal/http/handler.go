package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	dto "task-assignment.com/task-assignment/internal/data_models"
	apperrors "task-assignment.com/task-assignment/internal/errors"
	middleware "task-assignment.com/task-assignment/internal/http/middlewares"
	"task-assignment.com/task-assignment/internal/services"
)

const defaultListLimit = 50

type Handler struct {
	taskService       *services.TaskService
	assignmentService *services.AssignmentService
}

func NewHandler(taskService *services.TaskService, assignmentService *services.AssignmentService) *Handler {
	return &Handler{
		taskService:       taskService,
		assignmentService: assignmentService,
	}
}

func (h *Handler) CreateTask(c echo.Context) error {
	identity, err := identity(c)
	if err != nil {
		return err
	}

	var req dto.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ErrInvalidJSON
	}

	task, err := h.taskService.CreateTask(c.Request().Context(), identity.TeamID, identity.UserID, req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, task)
}

func (h *Handler) GetTask(c echo.Context) error {
	identity, err := identity(c)
	if err != nil {
		return err
	}

	var opts []services.GetOption
	if withAssignees, _ := strconv.ParseBool(c.QueryParam("with_assignees")); withAssignees {
		opts = append(opts, services.WithAssignees())
	}

	task, err := h.taskService.GetTask(c.Request().Context(), c.Param("id"), identity.TeamID, opts...)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) ListTasks(c echo.Context) error {
	identity, err := identity(c)
	if err != nil {
		return err
	}

	limit := defaultListLimit
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			return apperrors.ErrInvalidLimit
		}
	}

	tasks, err := h.taskService.ListTasks(c.Request().Context(), identity.TeamID, limit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count": len(tasks),
		"tasks": tasks,
	})
}

func (h *Handler) UpdateTask(c echo.Context) error {
	identity, err := identity(c)
	if err != nil {
		return err
	}

	var req dto.UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ErrInvalidJSON
	}

	task, err := h.taskService.UpdateTask(c.Request().Context(), c.Param("id"), identity.TeamID, req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) DeleteTask(c echo.Context) error {
	identity, err := identity(c)
	if err != nil {
		return err
	}

	if err := h.taskService.DeleteTask(c.Request().Context(), c.Param("id"), identity.TeamID); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ListAssignments(c echo.Context) error {
	identity, err := identity(c)
	if err != nil {
		return err
	}

	includeDeleted, _ := strconv.ParseBool(c.QueryParam("include_deleted"))

	assignments, err := h.assignmentService.ListAssignments(c.Request().Context(), c.Param("id"), identity.TeamID, includeDeleted)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count":       len(assignments),
		"assignments": assignments,
	})
}

func (h *Handler) AssignTask(c echo.Context) error {
	identity, err := identity(c)
	if err != nil {
		return err
	}

	var req dto.AssignmentRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ErrInvalidJSON
	}

	task, err := h.assignmentService.AssignTask(c.Request().Context(), c.Param("id"), identity.UserID, identity.TeamID, req.UserID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, task)
}

func (h *Handler) UnassignTask(c echo.Context) error {
	identity, err := identity(c)
	if err != nil {
		return err
	}

	var req dto.AssignmentRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ErrInvalidJSON
	}

	result, err := h.assignmentService.UnassignTask(c.Request().Context(), c.Param("id"), identity.UserID, identity.TeamID, req.UserID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

func identity(c echo.Context) (middleware.Identity, error) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		return middleware.Identity{}, apperrors.ErrUnauthorized
	}
	return id, nil
}
