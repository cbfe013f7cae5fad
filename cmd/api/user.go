package main

import (
	"fmt"

	"github.com/linskybing/formbuilder-go/internal/application"
	"github.com/linskybing/formbuilder-go/internal/config/db"
	"github.com/linskybing/formbuilder-go/internal/repository"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newUserCommand(load loader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(newUserStateCommand(load))
	return cmd
}

// newUserStateCommand changes an account's status and role outside the API,
// which is how the first admin gets activated.
func newUserStateCommand(load loader) *cobra.Command {
	var email, status, role string

	cmd := &cobra.Command{
		Use:     "state",
		Short:   "Set the status and optionally the role of an account",
		Example: "  formbuilder user state --email admin@example.com --status active --role admin",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := load()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			gdb, err := db.Open(cfg.Database, log)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close(gdb) }()

			svc := application.New(repository.NewRepositories(gdb), application.Options{Logger: log})
			defer svc.Syslog.Wait()

			u, err := svc.User.SetAccountStateByEmail(cmd.Context(), email, status, role)
			if err != nil {
				return err
			}
			log.Info("account state changed", zap.Uint("user_id", u.ID), zap.String("status", string(u.Status)), zap.String("role", string(u.Role)))
			fmt.Fprintf(cmd.OutOrStdout(), "user %d (%s): status=%s role=%s\n", u.ID, u.Email, u.Status, u.Role)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&status, "status", "active", "pending, active or inactive")
	cmd.Flags().StringVar(&role, "role", "", "admin, user or moderator (unchanged when empty)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
