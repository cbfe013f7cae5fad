package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/linskybing/formbuilder-go/docs"
	"github.com/linskybing/formbuilder-go/internal/api/handlers"
	"github.com/linskybing/formbuilder-go/internal/api/middleware"
	"github.com/linskybing/formbuilder-go/internal/api/routes"
	"github.com/linskybing/formbuilder-go/internal/application"
	"github.com/linskybing/formbuilder-go/internal/config/db"
	"github.com/linskybing/formbuilder-go/internal/cron"
	"github.com/linskybing/formbuilder-go/internal/logstream"
	"github.com/linskybing/formbuilder-go/internal/repository"
	"github.com/linskybing/formbuilder-go/internal/storage"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 15 * time.Second

func newServeCommand(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := load()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			middleware.Init(cfg.JWT)

			gdb, err := db.Open(cfg.Database, log)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close(gdb) }()

			hub := logstream.NewHub(log)
			opts := application.Options{
				Logger:      log,
				Hub:         hub,
				Ping:        application.GormPinger(gdb),
				TokenTTL:    cfg.JWT.TTL,
				Environment: cfg.Server.Mode,
			}
			if cfg.Storage.Enabled {
				store, err := storage.NewMinioStore(ctx, cfg.Storage, log)
				if err != nil {
					return err
				}
				opts.Store = store
			} else {
				log.Info("object storage disabled, response export unavailable")
			}

			repos := repository.NewRepositories(gdb)
			svc := application.New(repos, opts)
			defer svc.Syslog.Wait()

			reg := prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)

			gin.SetMode(cfg.Server.Mode)
			router := routes.New(routes.Deps{
				Handlers:       handlers.New(svc, cfg, hub, log),
				Auth:           middleware.NewAuth(repos),
				Metrics:        middleware.NewHTTPMetrics(reg),
				Gatherer:       reg,
				AllowedOrigins: cfg.Server.AllowedOrigins,
				Logger:         log,
				Swagger:        !cfg.Server.IsProduction,
			})

			retention := cron.StartRetentionTask(ctx, svc.Syslog, cfg.Audit.Keep, cfg.Audit.PruneInterval, log)

			srv := &http.Server{
				Addr:              ":" + cfg.Server.Port,
				Handler:           router,
				ReadHeaderTimeout: 10 * time.Second,
			}
			errCh := make(chan error, 1)
			go func() {
				log.Info("starting API server", zap.String("addr", srv.Addr), zap.String("mode", cfg.Server.Mode))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				stop()
				<-retention
				return err
			case <-ctx.Done():
			}

			log.Info("shutting down API server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Error("graceful shutdown failed", zap.Error(err))
			}
			<-retention
			return nil
		},
	}
}
