package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"task-assignment.com/task-assignment/internal/logging"
)

// maxTxAttempts bounds how often a transaction aborted by a serialization
// conflict is run again.
const maxTxAttempts = 3

// ErrDuplicateAssignment reports a violation of the active (task, user) unique index.
var ErrDuplicateAssignment = errors.New("active assignment already exists")

// Store groups the repositories that share a connection or transaction.
type Store struct {
	db        *gorm.DB
	txOptions *sql.TxOptions

	Tasks       *TaskRepository
	Assignments *AssignmentRepository
	Users       *UserRepository
}

func NewStore(db *gorm.DB, txOptions *sql.TxOptions) *Store {
	return &Store{
		db:          db,
		txOptions:   txOptions,
		Tasks:       NewTaskRepository(db),
		Assignments: NewAssignmentRepository(db),
		Users:       NewUserRepository(db),
	}
}

// Transaction runs fn with repositories bound to a single transaction. The
// transaction is committed when fn returns nil and rolled back otherwise.
// A serialization failure or deadlock reported by the database reruns fn in a
// fresh transaction, up to maxTxAttempts times in total, so fn must not have
// side effects outside the transaction.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	var opts []*sql.TxOptions
	if s.txOptions != nil {
		opts = append(opts, s.txOptions)
	}

	var err error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return fn(NewStore(tx, s.txOptions))
		}, opts...)
		if !isSerializationFailure(err) || ctx.Err() != nil {
			return err
		}
		logging.Logger.WithField("attempt", attempt).WithError(err).Warn("transaction conflict, retrying")
	}
	return err
}

// isSerializationFailure reports PostgreSQL's serialization_failure (40001)
// and deadlock_detected (40P01), both of which are safe to retry.
func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "40001" || pgErr.Code == "40P01"
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}
