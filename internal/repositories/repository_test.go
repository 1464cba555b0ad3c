package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	config "task-assignment.com/task-assignment/internal/configs"
	"task-assignment.com/task-assignment/internal/constants"
	model "task-assignment.com/task-assignment/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := config.NewDatabaseClient(config.DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := config.Migrate(db); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	return db
}

func insertTask(t *testing.T, store *Store, teamID string) *model.Task {
	t.Helper()

	task := &model.Task{
		ID:          uuid.NewString(),
		TeamID:      teamID,
		CreatedByID: uuid.NewString(),
		Title:       "Task",
		Priority:    constants.PriorityMedium,
		State:       constants.StateActive,
	}
	if err := store.Tasks.Create(context.Background(), task); err != nil {
		t.Fatalf("create task: %v", err)
	}
	return task
}

func newAssignment(taskID, userID string) *model.Assignment {
	return &model.Assignment{
		ID:           uuid.NewString(),
		TaskID:       taskID,
		UserID:       userID,
		AssignedByID: userID,
		AssignedAt:   time.Now().UTC(),
		State:        constants.StateActive,
	}
}

func TestAssignmentRepository_UniqueIndexRejectsActiveDuplicate(t *testing.T) {
	store := NewStore(setupTestDB(t), nil)
	ctx := context.Background()
	task := insertTask(t, store, uuid.NewString())
	user := uuid.NewString()

	if err := store.Assignments.Create(ctx, newAssignment(task.ID, user)); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}

	err := store.Assignments.Create(ctx, newAssignment(task.ID, user))
	if !errors.Is(err, ErrDuplicateAssignment) {
		t.Fatalf("expected duplicate assignment, got %v", err)
	}

	if err := store.Assignments.Create(ctx, newAssignment(task.ID, uuid.NewString())); err != nil {
		t.Errorf("another user on the same task must be allowed: %v", err)
	}
}

func TestAssignmentRepository_UniqueIndexIgnoresTombstones(t *testing.T) {
	store := NewStore(setupTestDB(t), nil)
	ctx := context.Background()
	task := insertTask(t, store, uuid.NewString())
	user := uuid.NewString()

	first := newAssignment(task.ID, user)
	if err := store.Assignments.Create(ctx, first); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	removed, err := store.Assignments.SoftDelete(ctx, first.ID, time.Now().UTC())
	if err != nil || !removed {
		t.Fatalf("soft delete failed: removed=%v err=%v", removed, err)
	}

	removed, err = store.Assignments.SoftDelete(ctx, first.ID, time.Now().UTC())
	if err != nil || removed {
		t.Errorf("second soft delete should match nothing: removed=%v err=%v", removed, err)
	}

	second := newAssignment(task.ID, user)
	if err := store.Assignments.Create(ctx, second); err != nil {
		t.Fatalf("re-assign after tombstone failed: %v", err)
	}

	if _, err := store.Assignments.Restore(ctx, first.ID); !errors.Is(err, ErrDuplicateAssignment) {
		t.Errorf("restore over an active duplicate should fail, got %v", err)
	}
}

func TestAssignmentRepository_Restore(t *testing.T) {
	store := NewStore(setupTestDB(t), nil)
	ctx := context.Background()
	task := insertTask(t, store, uuid.NewString())

	a := newAssignment(task.ID, uuid.NewString())
	if err := store.Assignments.Create(ctx, a); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if _, err := store.Assignments.SoftDelete(ctx, a.ID, time.Now().UTC()); err != nil {
		t.Fatalf("soft delete failed: %v", err)
	}

	restored, err := store.Assignments.Restore(ctx, a.ID)
	if err != nil || !restored {
		t.Fatalf("restore failed: restored=%v err=%v", restored, err)
	}

	active, err := store.Assignments.FindActive(ctx, task.ID, a.UserID)
	if err != nil {
		t.Fatalf("expected restored assignment to be active: %v", err)
	}
	if active.State != constants.StateActive {
		t.Errorf("expected state %s, got %s", constants.StateActive, active.State)
	}
	if !active.AssignedAt.Equal(a.AssignedAt) {
		t.Errorf("assigned_at must survive restore: %v != %v", active.AssignedAt, a.AssignedAt)
	}
}

func TestTaskRepository_SoftDeleteIsTeamScoped(t *testing.T) {
	store := NewStore(setupTestDB(t), nil)
	ctx := context.Background()
	team := uuid.NewString()
	task := insertTask(t, store, team)

	found, err := store.Tasks.SoftDelete(ctx, task.ID, uuid.NewString(), time.Now().UTC())
	if err != nil || found {
		t.Fatalf("delete from another team should match nothing: found=%v err=%v", found, err)
	}

	found, err = store.Tasks.SoftDelete(ctx, task.ID, team, time.Now().UTC())
	if err != nil || !found {
		t.Fatalf("delete failed: found=%v err=%v", found, err)
	}

	if _, err := store.Tasks.FindInTeam(ctx, task.ID, team, false); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("expected record not found, got %v", err)
	}

	var tombstone model.Task
	if err := store.db.Unscoped().First(&tombstone, "id = ?", task.ID).Error; err != nil {
		t.Fatalf("tombstone should remain: %v", err)
	}
	if tombstone.State != constants.StateDeleted || !tombstone.DeletedAt.Valid {
		t.Errorf("expected deleted tombstone, got state=%s", tombstone.State)
	}
}

func TestStore_TransactionRollsBack(t *testing.T) {
	store := NewStore(setupTestDB(t), nil)
	ctx := context.Background()
	team := uuid.NewString()
	task := insertTask(t, store, team)

	if err := store.Assignments.Create(ctx, newAssignment(task.ID, uuid.NewString())); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	boom := errors.New("boom")
	err := store.Transaction(ctx, func(tx *Store) error {
		if _, err := tx.Tasks.SoftDelete(ctx, task.ID, team, time.Now().UTC()); err != nil {
			return err
		}
		if _, err := tx.Assignments.SoftDeleteByTask(ctx, task.ID, time.Now().UTC()); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	if _, err := store.Tasks.FindInTeam(ctx, task.ID, team, false); err != nil {
		t.Errorf("task delete should have been rolled back: %v", err)
	}
	assignments, err := store.Assignments.ListByTask(ctx, task.ID, false)
	if err != nil {
		t.Fatalf("list assignments: %v", err)
	}
	if len(assignments) != 1 {
		t.Errorf("assignment delete should have been rolled back, got %d active", len(assignments))
	}
}

func TestStore_TransactionRetriesSerializationFailure(t *testing.T) {
	store := NewStore(setupTestDB(t), nil)
	ctx := context.Background()
	team := uuid.NewString()

	tests := []struct {
		name         string
		failures     int
		failWith     error
		wantErr      bool
		wantAttempts int
	}{
		{name: "serialization failure then success", failures: 1, failWith: &pgconn.PgError{Code: "40001"}, wantAttempts: 2},
		{name: "deadlock then success", failures: 2, failWith: &pgconn.PgError{Code: "40P01"}, wantAttempts: 3},
		{name: "gives up after bounded attempts", failures: 10, failWith: &pgconn.PgError{Code: "40001"}, wantErr: true, wantAttempts: maxTxAttempts},
		{name: "other database error", failures: 1, failWith: &pgconn.PgError{Code: "23503"}, wantErr: true, wantAttempts: 1},
		{name: "plain error", failures: 1, failWith: errors.New("boom"), wantErr: true, wantAttempts: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attempts := 0
			var created *model.Task
			err := store.Transaction(ctx, func(tx *Store) error {
				attempts++
				created = &model.Task{
					ID:       uuid.NewString(),
					TeamID:   team,
					Title:    "retry",
					Priority: constants.PriorityMedium,
					State:    constants.StateActive,
				}
				if err := tx.Tasks.Create(ctx, created); err != nil {
					return err
				}
				if attempts <= tt.failures {
					return fmt.Errorf("assign: %w", tt.failWith)
				}
				return nil
			})

			if attempts != tt.wantAttempts {
				t.Errorf("expected %d attempts, got %d", tt.wantAttempts, attempts)
			}
			if (err != nil) != tt.wantErr {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantErr && !errors.Is(err, tt.failWith) {
				t.Errorf("expected the last failure to be returned, got %v", err)
			}

			_, findErr := store.Tasks.FindInTeam(ctx, created.ID, team, false)
			if tt.wantErr != errors.Is(findErr, gorm.ErrRecordNotFound) {
				t.Errorf("committed=%v but wantErr=%v", findErr == nil, tt.wantErr)
			}
		})
	}

	tasks, err := store.Tasks.ListByTeam(ctx, team, 100)
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(tasks) != 2 {
		t.Errorf("expected only the two successful runs to commit, got %d tasks", len(tasks))
	}
}

func TestUserRepository_Directory(t *testing.T) {
	store := NewStore(setupTestDB(t), nil)
	ctx := context.Background()

	team := &model.Team{ID: uuid.NewString(), Name: "core"}
	if err := store.Users.CreateTeam(ctx, team); err != nil {
		t.Fatalf("create team: %v", err)
	}
	admin := &model.User{ID: uuid.NewString(), TeamID: team.ID, Name: "admin", Email: "admin@example.com", IsAdmin: true}
	member := &model.User{ID: uuid.NewString(), TeamID: team.ID, Name: "member", Email: "member@example.com"}
	for _, u := range []*model.User{admin, member} {
		if err := store.Users.CreateUser(ctx, u); err != nil {
			t.Fatalf("create user: %v", err)
		}
	}

	if _, err := store.Users.FindUserInTeam(ctx, member.ID, team.ID); err != nil {
		t.Errorf("expected member in team: %v", err)
	}
	if _, err := store.Users.FindUserInTeam(ctx, member.ID, uuid.NewString()); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("expected record not found for other team, got %v", err)
	}

	isAdmin, err := store.Users.IsTeamAdmin(ctx, admin.ID, team.ID)
	if err != nil || !isAdmin {
		t.Errorf("expected admin: isAdmin=%v err=%v", isAdmin, err)
	}
	isAdmin, err = store.Users.IsTeamAdmin(ctx, admin.ID, uuid.NewString())
	if err != nil || isAdmin {
		t.Errorf("admin of another team must not count: isAdmin=%v err=%v", isAdmin, err)
	}
	isAdmin, err = store.Users.IsTeamAdmin(ctx, member.ID, team.ID)
	if err != nil || isAdmin {
		t.Errorf("expected non-admin: isAdmin=%v err=%v", isAdmin, err)
	}
}
