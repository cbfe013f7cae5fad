package repository

import (
	"context"
	"time"

	"github.com/linskybing/formbuilder-go/internal/domain/syslog"
	"gorm.io/gorm"
)

type SyslogRepo interface {
	CreateLog(ctx context.Context, entry *syslog.Entry) error
	RecentLogs(ctx context.Context, limit int) ([]syslog.Entry, error)
	PruneLogs(ctx context.Context, keep int) (int64, error)
	LogStats(ctx context.Context, since time.Time) (syslog.Stats, error)
	WithTx(tx *gorm.DB) SyslogRepo
}

type DBSyslogRepo struct {
	db *gorm.DB
}

func NewSyslogRepo(db *gorm.DB) *DBSyslogRepo {
	return &DBSyslogRepo{
		db: db,
	}
}

func (r *DBSyslogRepo) CreateLog(ctx context.Context, entry *syslog.Entry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *DBSyslogRepo) RecentLogs(ctx context.Context, limit int) ([]syslog.Entry, error) {
	var logs []syslog.Entry
	err := r.db.WithContext(ctx).
		Order("created_at DESC, log_id DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}

// PruneLogs keeps the newest keep rows and deletes the rest in one statement.
func (r *DBSyslogRepo) PruneLogs(ctx context.Context, keep int) (int64, error) {
	res := r.db.WithContext(ctx).Exec(`
		DELETE FROM system_logs
		WHERE log_id NOT IN (
			SELECT log_id FROM system_logs
			ORDER BY created_at DESC, log_id DESC
			LIMIT ?
		)`, keep)
	return res.RowsAffected, res.Error
}

func (r *DBSyslogRepo) LogStats(ctx context.Context, since time.Time) (syslog.Stats, error) {
	var stats syslog.Stats
	err := r.db.WithContext(ctx).Model(&syslog.Entry{}).
		Select(`
			COUNT(*) AS total_logs,
			COUNT(*) FILTER (WHERE log_level = 'ERROR') AS error_logs,
			COUNT(*) FILTER (WHERE log_level = 'WARNING') AS warning_logs,
			COUNT(*) FILTER (WHERE log_level = 'INFO') AS info_logs,
			COUNT(*) FILTER (WHERE created_at >= ?) AS today_logs
		`, since).
		Scan(&stats).Error
	return stats, err
}

func (r *DBSyslogRepo) WithTx(tx *gorm.DB) SyslogRepo {
	if tx == nil {
		return r
	}
	return &DBSyslogRepo{
		db: tx,
	}
}
