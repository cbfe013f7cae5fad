package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/linskybing/formbuilder-go/internal/config/db"
	"github.com/linskybing/formbuilder-go/internal/migrations"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newMigrateCommand(load loader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or inspect schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	steps := map[string]struct {
		short string
		run   func(context.Context, *sql.DB, *zap.Logger) error
	}{
		"up":     {"Apply all pending migrations", migrations.Up},
		"down":   {"Roll back the latest migration", migrations.Down},
		"status": {"Print the migration status", migrations.Status},
	}
	for _, name := range []string{"up", "down", "status"} {
		step := steps[name]
		cmd.AddCommand(&cobra.Command{
			Use:   name,
			Short: step.short,
			Args:  cobra.NoArgs,
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

				sqlDB, err := gdb.DB()
				if err != nil {
					return fmt.Errorf("get sql db: %w", err)
				}
				return step.run(cmd.Context(), sqlDB, log)
			},
		})
	}
	return cmd
}
