package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	config "task-assignment.com/task-assignment/internal/configs"
	model "task-assignment.com/task-assignment/internal/models"
	repository "task-assignment.com/task-assignment/internal/repositories"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage the user directory",
}

var (
	userTeamID   string
	userTeamName string
	userName     string
	userEmail    string
	userIsAdmin  bool
)

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user, creating the team first when it does not exist",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		database, err := config.NewDatabaseClient(cfg.DatabaseDriver, cfg.DatabaseDSN)
		if err != nil {
			return err
		}
		store := repository.NewStore(database, config.TxOptions(cfg.DatabaseDriver))

		user := &model.User{
			ID:      uuid.NewString(),
			Name:    userName,
			Email:   userEmail,
			IsAdmin: userIsAdmin,
		}

		ctx := context.Background()
		err = store.Transaction(ctx, func(tx *repository.Store) error {
			team, err := ensureTeam(ctx, tx, userTeamID, userTeamName)
			if err != nil {
				return err
			}
			user.TeamID = team.ID
			return tx.Users.CreateUser(ctx, user)
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "user %s created in team %s\n", user.ID, user.TeamID)
		return nil
	},
}

func ensureTeam(ctx context.Context, tx *repository.Store, id, name string) (*model.Team, error) {
	if id != "" {
		team, err := tx.Users.FindTeam(ctx, id)
		if err == nil {
			return team, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	} else {
		id = uuid.NewString()
	}

	if name == "" {
		return nil, errors.New("--team-name is required when creating a team")
	}
	team := &model.Team{ID: id, Name: name}
	if err := tx.Users.CreateTeam(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

func init() {
	userCreateCmd.Flags().StringVar(&userTeamID, "team", "", "existing team id")
	userCreateCmd.Flags().StringVar(&userTeamName, "team-name", "", "name of the team to create")
	userCreateCmd.Flags().StringVar(&userName, "name", "", "display name")
	userCreateCmd.Flags().StringVar(&userEmail, "email", "", "email address")
	userCreateCmd.Flags().BoolVar(&userIsAdmin, "admin", false, "grant the team-admin capability")
	_ = userCreateCmd.MarkFlagRequired("name")
	_ = userCreateCmd.MarkFlagRequired("email")

	userCmd.AddCommand(userCreateCmd)
	rootCmd.AddCommand(userCmd)
}
