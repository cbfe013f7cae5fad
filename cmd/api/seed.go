package main

import (
	"fmt"
	"os"

	"github.com/linskybing/formbuilder-go/internal/application"
	"github.com/linskybing/formbuilder-go/internal/config/db"
	"github.com/linskybing/formbuilder-go/internal/repository"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newSeedCommand(load loader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load reference data",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(newSeedWidgetsCommand(load))
	return cmd
}

func newSeedWidgetsCommand(load loader) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "widgets",
		Short: "Create the widgets of a catalog that do not exist yet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var catalog []byte
			if file != "" {
				data, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("read catalog: %w", err)
				}
				catalog = data
			}

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

			res, err := svc.Widget.SeedWidgets(cmd.Context(), catalog)
			if err != nil {
				return err
			}
			log.Info("widget seed finished", zap.Int("created", res.Created), zap.Int("skipped", res.Skipped))
			fmt.Fprintf(cmd.OutOrStdout(), "created %d, skipped %d\n", res.Created, res.Skipped)
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "YAML catalog (defaults to the built-in one)")
	return cmd
}
