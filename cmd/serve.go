package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	config "task-assignment.com/task-assignment/internal/configs"
	httpapi "task-assignment.com/task-assignment/internal/http"
	middleware "task-assignment.com/task-assignment/internal/http/middlewares"
	"task-assignment.com/task-assignment/internal/logging"
	repository "task-assignment.com/task-assignment/internal/repositories"
	"task-assignment.com/task-assignment/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Migrates the database and starts the task assignment HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		database, err := config.NewDatabaseClient(cfg.DatabaseDriver, cfg.DatabaseDSN)
		if err != nil {
			return err
		}
		if err := config.Migrate(database); err != nil {
			return err
		}

		store := repository.NewStore(database, config.TxOptions(cfg.DatabaseDriver))
		taskService := services.NewTaskService(store)
		assignmentService := services.NewAssignmentService(store, taskService, store.Users)

		var limiter middleware.Limiter = middleware.NewMemoryLimiter(cfg.RateLimit, time.Minute)
		if cfg.RedisAddr != "" {
			redisClient, err := config.NewRedisClient(cfg.RedisAddr)
			if err != nil {
				return err
			}
			defer redisClient.Close()
			limiter = middleware.NewRedisLimiter(redisClient, cfg.RedisRateLimitPrefix, cfg.RateLimit, time.Minute)
		}

		e := echo.New()
		e.HideBanner = true
		handler := httpapi.NewHandler(taskService, assignmentService)
		httpapi.Register(e, handler, limiter, []byte(cfg.JWTSecret))

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		go func() {
			logging.Logger.WithField("addr", cfg.AppURL).Info("HTTP server listening")
			if err := e.Start(cfg.AppURL); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logging.Logger.WithError(err).Error("server stopped")
				stop()
			}
		}()

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			logging.Logger.WithError(err).Warn("HTTP server shutdown timed out")
		}

		logging.Logger.Info("HTTP server shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
