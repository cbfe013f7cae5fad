// @title Form Builder API
// @version 1.0
// @description Form builder backend: forms, widgets, responses, users, logs and settings.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"fmt"
	"os"

	"github.com/linskybing/formbuilder-go/internal/config"
	"github.com/linskybing/formbuilder-go/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "formbuilder",
		Short:         "Form builder API server and maintenance tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Optional YAML config file")

	load := func() (*config.Config, *zap.Logger, error) {
		cfg, err := config.Load(configPath)
		if err != nil {
			return nil, nil, err
		}
		log, err := logger.New(cfg.Log)
		if err != nil {
			return nil, nil, fmt.Errorf("init logger: %w", err)
		}
		return cfg, log, nil
	}

	cmd.AddCommand(newServeCommand(load))
	cmd.AddCommand(newMigrateCommand(load))
	cmd.AddCommand(newSeedCommand(load))
	cmd.AddCommand(newUserCommand(load))
	return cmd
}

type loader func() (*config.Config, *zap.Logger, error)
