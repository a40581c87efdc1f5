package main

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"adminsuite/internal/app"
	"adminsuite/internal/domain/users"
)

var newUser struct {
	email     string
	firstName string
	lastName  string
	role      string
}

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage accounts",
}

// The password is read from ADMINCTL_PASSWORD so it stays out of shell history.
var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an account, typically the first ADMIN",
	RunE: func(cmd *cobra.Command, _ []string) error {
		password := os.Getenv("ADMINCTL_PASSWORD")
		if password == "" {
			return errors.New("ADMINCTL_PASSWORD must be set")
		}
		return withApp(cmd, nil, func(ctx context.Context, a *app.App) error {
			u, err := a.Users.Create(ctx, users.CreateInput{
				Email:     newUser.email,
				Password:  password,
				FirstName: newUser.firstName,
				LastName:  newUser.lastName,
				Role:      users.Role(newUser.role),
			})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), u)
		})
	},
}

func init() {
	f := userCreateCmd.Flags()
	f.StringVar(&newUser.email, "email", "", "Login email")
	f.StringVar(&newUser.firstName, "first-name", "", "First name")
	f.StringVar(&newUser.lastName, "last-name", "", "Last name")
	f.StringVar(&newUser.role, "role", string(users.RoleAdmin), "ADMIN, MODERATOR, MANAGER or USER")
	_ = userCreateCmd.MarkFlagRequired("email")

	userCmd.AddCommand(userCreateCmd)
}
