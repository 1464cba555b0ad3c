package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	config "task-assignment.com/task-assignment/internal/configs"
	middleware "task-assignment.com/task-assignment/internal/http/middlewares"
	repository "task-assignment.com/task-assignment/internal/repositories"
)

var (
	tokenUserID string
	tokenTeamID string
	tokenTTL    time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for a directory user",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		database, err := config.NewDatabaseClient(cfg.DatabaseDriver, cfg.DatabaseDSN)
		if err != nil {
			return err
		}
		users := repository.NewUserRepository(database)
		if _, err := users.FindUserInTeam(context.Background(), tokenUserID, tokenTeamID); err != nil {
			return fmt.Errorf("user %s is not a member of team %s: %w", tokenUserID, tokenTeamID, err)
		}

		token, err := middleware.IssueToken([]byte(cfg.JWTSecret), tokenUserID, tokenTeamID, tokenTTL)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenUserID, "user", "", "user id")
	tokenCmd.Flags().StringVar(&tokenTeamID, "team", "", "team id")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "token lifetime")
	_ = tokenCmd.MarkFlagRequired("user")
	_ = tokenCmd.MarkFlagRequired("team")

	rootCmd.AddCommand(tokenCmd)
}
