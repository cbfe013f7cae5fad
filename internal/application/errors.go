package application

import (
	"context"
	"errors"

	"github.com/linskybing/formbuilder-go/pkg/apperr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
)

const (
	msgInternal     = "خطای داخلی سرور"
	msgInternalLog  = "خطای داخلی در عملیات "
	msgFormNotFound = "فرم موردنظر یافت نشد"
)

var (
	ErrFormNotFound       = apperr.NotFound(msgFormNotFound)
	ErrOwnerNotFound      = apperr.NotFound(msgOwnerNotFound)
	ErrResponseNotFound   = apperr.NotFound(msgResponseNotFound)
	ErrResponseDenied     = apperr.Forbidden(msgResponseDenied)
	ErrWidgetNotFound     = apperr.NotFound(msgWidgetNotFound)
	ErrUserNotFound       = apperr.NotFound(msgUserNotFound)
	ErrInvalidCredentials = apperr.Unauthorized(msgInvalidCredentials)
	ErrAccountInactive    = apperr.Forbidden(msgAccountInactive)
	ErrSelfAccountChange  = apperr.Forbidden(msgSelfAccountChange)
	ErrSettingNotFound    = apperr.NotFound(msgSettingNotFound)
	ErrStorageDisabled    = apperr.Unavailable(msgStorageDisabled)
)

// failures reports unexpected errors to the process logger and, when audit is
// set, as an ERROR row in system_logs.
type failures struct {
	logger   *zap.Logger
	audit    Auditor
	category string
}

func newFailures(logger *zap.Logger, audit Auditor, category string) failures {
	return failures{logger: nopIfNil(logger), audit: audit, category: category}
}

// internal logs err and returns the generic internal error.
func (f failures) internal(ctx context.Context, err error, op string, fields ...zap.Field) error {
	apperr.Log(f.logger, err, op, fields...)
	if f.audit != nil {
		f.audit.Error(ctx, f.category, msgInternalLog+op, auditFields(err, op, fields))
	}
	return apperr.Internal(msgInternal, err)
}

// db turns a repository error into an application error. Record-not-found
// becomes notFound; anything else is reported as internal.
func (f failures) db(ctx context.Context, err error, notFound error, op string, fields ...zap.Field) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return f.internal(ctx, err, op, fields...)
}

func auditFields(err error, op string, fields []zap.Field) map[string]any {
	enc := zapcore.NewMapObjectEncoder()
	for _, fld := range fields {
		fld.AddTo(enc)
	}
	out := enc.Fields
	out["operation"] = op
	out["error"] = err.Error()
	return out
}

func nopIfNil(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
