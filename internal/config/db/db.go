package db

import (
	"context"
	"fmt"
	"time"

	"github.com/linskybing/formbuilder-go/internal/config"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DefaultTimeout bounds the connectivity self-test.
const DefaultTimeout = 5 * time.Second

func gormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}

// Open connects to postgres and configures the connection pool. The caller
// owns the returned handle and passes it to every repository.
func Open(cfg config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormLogLevel(cfg.LogLevel)),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := configurePool(gdb, cfg); err != nil {
		return nil, err
	}

	log.Info("database connected",
		zap.String("host", cfg.Host),
		zap.String("database", cfg.Name),
		zap.Int("max_open_conns", cfg.MaxOpenConns),
	)
	return gdb, nil
}

func configurePool(gdb *gorm.DB, cfg config.DatabaseConfig) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return fmt.Errorf("database handle: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	return nil
}

// Close releases the pool behind gdb.
func Close(gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ConnectionStatus is the result of the connectivity self-test.
type ConnectionStatus struct {
	Success    bool      `json:"success"`
	Message    string    `json:"message"`
	ServerTime time.Time `json:"server_time,omitempty"`
}

// Ping runs a trivial round trip and reports the server clock. The returned
// error carries the driver detail, the status only a generic message.
func Ping(ctx context.Context, gdb *gorm.DB) (ConnectionStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()

	var row struct {
		Test       int
		ServerTime time.Time
	}
	err := gdb.WithContext(ctx).Raw("SELECT 1 AS test, NOW() AS server_time").Scan(&row).Error
	if err != nil {
		return ConnectionStatus{Success: false, Message: "خطا در اتصال دیتابیس"}, err
	}
	return ConnectionStatus{
		Success:    true,
		Message:    "اتصال دیتابیس برقرار است",
		ServerTime: row.ServerTime,
	}, nil
}
