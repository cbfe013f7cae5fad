package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed sql/*.sql
var files embed.FS

const dir = "sql"

type gooseLogger struct {
	log *zap.SugaredLogger
}

func (l gooseLogger) Printf(format string, v ...interface{}) { l.log.Infof(format, v...) }
func (l gooseLogger) Fatalf(format string, v ...interface{}) { l.log.Fatalf(format, v...) }

func setup(log *zap.Logger) error {
	goose.SetBaseFS(files)
	if log != nil {
		goose.SetLogger(gooseLogger{log: log.Sugar()})
	}
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	return nil
}

// Up applies every pending migration.
func Up(ctx context.Context, db *sql.DB, log *zap.Logger) error {
	if err := setup(log); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, dir)
}

// Down rolls back the most recent migration.
func Down(ctx context.Context, db *sql.DB, log *zap.Logger) error {
	if err := setup(log); err != nil {
		return err
	}
	return goose.DownContext(ctx, db, dir)
}

// Status prints applied and pending migrations through the logger.
func Status(ctx context.Context, db *sql.DB, log *zap.Logger) error {
	if err := setup(log); err != nil {
		return err
	}
	return goose.StatusContext(ctx, db, dir)
}
