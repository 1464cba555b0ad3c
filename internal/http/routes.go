package http

import (
	"github.com/labstack/echo/v4"

	middleware "task-assignment.com/task-assignment/internal/http/middlewares"
)

func Register(e *echo.Echo, h *Handler, limiter middleware.Limiter, jwtSecret []byte) {
	e.HTTPErrorHandler = ErrorHandler
	e.Use(middleware.RateLimiter(limiter))

	tasks := e.Group("/tasks", middleware.Auth(jwtSecret))
	tasks.POST("", h.CreateTask)
	tasks.GET("", h.ListTasks)
	tasks.GET("/:id", h.GetTask)
	tasks.PATCH("/:id", h.UpdateTask)
	tasks.DELETE("/:id", h.DeleteTask)
	tasks.GET("/:id/assignments", h.ListAssignments)
	tasks.POST("/:id/assign", h.AssignTask)
	tasks.POST("/:id/unassign", h.UnassignTask)
}
