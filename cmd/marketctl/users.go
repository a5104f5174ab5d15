package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-marketplace-backend/internal/domain"
	"go-marketplace-backend/internal/repository/postgres"
	"go-marketplace-backend/pkg/auth"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password <password>",
	Short: "Print the bcrypt hash of a password",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hash, err := auth.HashPassword(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), hash)
		return nil
	},
}

var (
	adminEmail    string
	adminName     string
	adminPassword string
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an admin account",
	RunE: func(cmd *cobra.Command, args []string) error {
		email := strings.ToLower(strings.TrimSpace(adminEmail))
		if email == "" || adminPassword == "" {
			return errors.New("--email and --password are required")
		}
		if len(adminPassword) < 8 {
			return errors.New("password must be at least 8 characters")
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		pool, err := connect(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		users := postgres.NewUserRepository(pool)
		if _, err := users.GetByEmail(ctx, email); err == nil {
			return fmt.Errorf("user %s already exists", email)
		} else if !errors.Is(err, domain.ErrNotFound) {
			return err
		}

		hash, err := auth.HashPassword(adminPassword)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		user := &domain.User{
			ID:           uuid.NewString(),
			Email:        email,
			PasswordHash: hash,
			FullName:     adminName,
			Role:         domain.RoleAdmin,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := users.Create(ctx, user); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "created admin %s (%s)\n", user.Email, user.ID)
		return nil
	},
}

func init() {
	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "admin email")
	createAdminCmd.Flags().StringVar(&adminName, "name", "Administrator", "display name")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "initial password")
}
