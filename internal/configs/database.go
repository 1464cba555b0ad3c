package config

import (
	"database/sql"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"task-assignment.com/task-assignment/internal/logging"
	model "task-assignment.com/task-assignment/internal/models"
)

// activeAssignmentIndex backs the one-active-assignment-per-(task, user) rule
// at the storage layer. Both SQLite and PostgreSQL support partial indexes.
const activeAssignmentIndex = `CREATE UNIQUE INDEX IF NOT EXISTS idx_assignments_active_pair
	ON assignments (task_id, user_id) WHERE deleted_at IS NULL`

// newGormLogger routes gorm's slow query and error output through the
// application logger. Lookups that miss are expected and stay quiet.
func newGormLogger() logger.Interface {
	return logger.New(logging.Logger, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

func NewDatabaseClient(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case DriverSQLite:
		dialector = sqlite.Open(dsn)
	case DriverPostgres:
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         newGormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("db open failed: %w", err)
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.Team{}, &model.User{}, &model.Task{}, &model.Assignment{}); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	if err := db.Exec(activeAssignmentIndex).Error; err != nil {
		return fmt.Errorf("create active assignment index: %w", err)
	}
	return nil
}

// TxOptions returns the isolation used for read-check-write transactions.
// SQLite serializes writers through its DSN lock mode instead.
func TxOptions(driver string) *sql.TxOptions {
	if driver == DriverPostgres {
		return &sql.TxOptions{Isolation: sql.LevelSerializable}
	}
	return nil
}
