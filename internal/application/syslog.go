package application

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/linskybing/formbuilder-go/internal/domain/syslog"
	"github.com/linskybing/formbuilder-go/internal/repository"
	"github.com/linskybing/formbuilder-go/pkg/apperr"
	"github.com/linskybing/formbuilder-go/pkg/jsonval"
	"github.com/linskybing/formbuilder-go/pkg/pagination"
	"go.uber.org/zap"
)

const (
	// DefaultLogKeep is how many rows Clear leaves behind.
	DefaultLogKeep = 100

	auditWriteTimeout = 5 * time.Second
)

// Auditor records application events in system_logs without blocking the caller.
type Auditor interface {
	Info(ctx context.Context, category, message string, fields any)
	Warning(ctx context.Context, category, message string, fields any)
	Error(ctx context.Context, category, message string, fields any)
}

// Publisher receives every persisted log entry.
type Publisher interface {
	Publish(entry syslog.Entry)
}

type SyslogService struct {
	Repos  *repository.Repos
	logger *zap.Logger
	fail   failures
	hub    Publisher
	now    func() time.Time
	wg     sync.WaitGroup
}

func NewSyslogService(repos *repository.Repos, logger *zap.Logger, hub Publisher) *SyslogService {
	return &SyslogService{
		Repos:  repos,
		logger: nopIfNil(logger),
		fail:   newFailures(logger, nil, ""),
		hub:    hub,
		now:    time.Now,
	}
}

// Log writes one entry synchronously and publishes it on success.
func (s *SyslogService) Log(ctx context.Context, level syslog.Level, category, message string, fields any) (syslog.Entry, error) {
	meta := syslog.MetaFrom(ctx)
	entry := syslog.Entry{
		Level:     syslog.NormalizeLevel(string(level)),
		Category:  category,
		Message:   message,
		IPAddress: meta.IP,
		UserAgent: meta.UserAgent,
	}

	if fields != nil {
		v, err := jsonval.From(fields)
		if err != nil {
			s.logger.Warn("drop unencodable log context", zap.String("category", category), zap.Error(err))
		} else if v.Kind() != jsonval.Null {
			entry.Context = v.Column()
		}
	}

	if err := s.Repos.Syslog.CreateLog(ctx, &entry); err != nil {
		return entry, err
	}
	if s.hub != nil {
		s.hub.Publish(entry)
	}
	return entry, nil
}

// LogAsync writes in the background. Failures only reach the process logger.
func (s *SyslogService) LogAsync(ctx context.Context, level syslog.Level, category, message string, fields any) {
	// Capture caller details before the request context is gone.
	meta := syslog.MetaFrom(ctx)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		bg, cancel := context.WithTimeout(syslog.WithMeta(context.Background(), meta), auditWriteTimeout)
		defer cancel()

		if _, err := s.Log(bg, level, category, message, fields); err != nil {
			s.logger.Warn("write system log",
				zap.String("level", string(level)),
				zap.String("category", category),
				zap.Error(err))
		}
	}()
}

// Wait blocks until in-flight asynchronous writes finish.
func (s *SyslogService) Wait() {
	s.wg.Wait()
}

func (s *SyslogService) Info(ctx context.Context, category, message string, fields any) {
	s.LogAsync(ctx, syslog.LevelInfo, category, message, fields)
}

func (s *SyslogService) Warning(ctx context.Context, category, message string, fields any) {
	s.LogAsync(ctx, syslog.LevelWarning, category, message, fields)
}

func (s *SyslogService) Error(ctx context.Context, category, message string, fields any) {
	s.LogAsync(ctx, syslog.LevelError, category, message, fields)
}

// CreateFromInput persists a client supplied entry.
func (s *SyslogService) CreateFromInput(ctx context.Context, in syslog.CreateLogInput) error {
	var missing []string
	if strings.TrimSpace(in.Level) == "" {
		missing = append(missing, "level")
	}
	if strings.TrimSpace(in.Category) == "" {
		missing = append(missing, "category")
	}
	if strings.TrimSpace(in.Message) == "" {
		missing = append(missing, "message")
	}
	if len(missing) > 0 {
		return apperr.Validation("فیلدهای ضروری موجود نیست: "+strings.Join(missing, ", "), missing...)
	}

	var fields any
	if in.Context != nil {
		fields = *in.Context
	}
	_, err := s.Log(ctx, syslog.Level(strings.TrimSpace(in.Level)), strings.TrimSpace(in.Category), strings.TrimSpace(in.Message), fields)
	if err != nil {
		return s.fail.internal(ctx, err, "create system log")
	}
	return nil
}

// Recent returns the newest entries. rawLimit follows the listing rules of
// pagination.LogOpts.
func (s *SyslogService) Recent(ctx context.Context, rawLimit string) ([]syslog.Entry, error) {
	p := pagination.Parse("1", rawLimit, pagination.LogOpts)
	logs, err := s.Repos.Syslog.RecentLogs(ctx, p.Limit())
	if err != nil {
		return nil, s.fail.internal(ctx, err, "list system logs")
	}
	if logs == nil {
		logs = []syslog.Entry{}
	}
	return logs, nil
}

// Prune keeps the newest keep rows.
func (s *SyslogService) Prune(ctx context.Context, keep int) (syslog.ClearResult, error) {
	if keep < 1 {
		return syslog.ClearResult{}, apperr.BadRequest("keep must be positive")
	}
	deleted, err := s.Repos.Syslog.PruneLogs(ctx, keep)
	if err != nil {
		return syslog.ClearResult{}, s.fail.internal(ctx, err, "prune system logs", zap.Int("keep", keep))
	}
	return syslog.ClearResult{DeletedCount: deleted}, nil
}

func (s *SyslogService) Clear(ctx context.Context) (syslog.ClearResult, error) {
	return s.Prune(ctx, DefaultLogKeep)
}

func (s *SyslogService) Stats(ctx context.Context) (syslog.Stats, error) {
	now := s.now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	stats, err := s.Repos.Syslog.LogStats(ctx, startOfDay)
	if err != nil {
		return stats, s.fail.internal(ctx, err, "system log stats")
	}
	return stats, nil
}
