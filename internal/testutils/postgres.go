package testutils

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/lib/pq"
	"github.com/linskybing/formbuilder-go/internal/migrations"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// SetupPostgresForIntegration starts a disposable postgres (or uses
// TEST_DB_DSN when set), applies every migration and returns a gorm handle.
func SetupPostgresForIntegration() (*gorm.DB, func()) {
	ctx := context.Background()
	var terminate func()

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		req := testcontainers.ContainerRequest{
			Image: "postgres:15",
			Env: map[string]string{
				"POSTGRES_PASSWORD": "test",
				"POSTGRES_USER":     "test",
				"POSTGRES_DB":       "formbuilder",
			},
			ExposedPorts: []string{"5432/tcp"},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		}
		pg, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: req,
			Started:          true,
		})
		if err != nil {
			log.Fatal(err)
		}
		terminate = func() { _ = pg.Terminate(ctx) }

		host, err := pg.Host(ctx)
		if err != nil {
			log.Fatal(err)
		}
		port, err := pg.MappedPort(ctx, "5432")
		if err != nil {
			log.Fatal(err)
		}
		dsn = fmt.Sprintf("postgres://test:test@%s:%s/formbuilder?sslmode=disable", host, port.Port())
	}

	var sqlDB *sql.DB
	var err error
	for i := 0; i < 10; i++ {
		sqlDB, err = sql.Open("postgres", dsn)
		if err == nil {
			err = sqlDB.Ping()
			if err == nil {
				break
			}
		}
		time.Sleep(time.Second)
	}
	if err != nil {
		log.Fatal(err)
	}

	if err := migrations.Up(ctx, sqlDB, zap.NewNop()); err != nil {
		log.Fatal(err)
	}

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		log.Fatal(err)
	}

	cleanup := func() {
		_ = sqlDB.Close()
		if terminate != nil {
			terminate()
		}
	}
	return gdb, cleanup
}

// TruncateAll empties every application table between tests.
func TruncateAll(gdb *gorm.DB) error {
	return gdb.Exec(`TRUNCATE form_responses, forms, form_widgets, system_logs, users RESTART IDENTITY CASCADE`).Error
}
