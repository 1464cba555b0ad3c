package repository

import (
	"context"

	"gorm.io/gorm"

	model "task-assignment.com/task-assignment/internal/models"
)

// UserRepository is the gorm-backed user/team directory.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) CreateTeam(ctx context.Context, team *model.Team) error {
	return r.db.WithContext(ctx).Create(team).Error
}

func (r *UserRepository) CreateUser(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *UserRepository) FindTeam(ctx context.Context, id string) (*model.Team, error) {
	var team model.Team
	if err := r.db.WithContext(ctx).First(&team, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

// FindUserInTeam returns gorm.ErrRecordNotFound when the user does not exist
// or belongs to a different team.
func (r *UserRepository) FindUserInTeam(ctx context.Context, userID, teamID string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).First(&user, "id = ? AND team_id = ?", userID, teamID).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// IsTeamAdmin only reports admins of teamID; an admin of another team is not
// an admin here.
func (r *UserRepository) IsTeamAdmin(ctx context.Context, userID, teamID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ? AND team_id = ? AND is_admin = ?", userID, teamID, true).
		Count(&count).Error
	return count > 0, err
}
