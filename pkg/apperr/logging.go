package apperr

import (
	"errors"

	"go.uber.org/zap"
)

// Log writes err as a structured error entry, adding the kind when known.
func Log(logger *zap.Logger, err error, msg string, fields ...zap.Field) {
	if err == nil || logger == nil {
		return
	}

	all := make([]zap.Field, 0, len(fields)+2)
	all = append(all, zap.Error(err))

	var appErr *Error
	if errors.As(err, &appErr) {
		all = append(all, zap.String("error_kind", string(appErr.Kind)))
	}
	all = append(all, fields...)

	logger.Error(msg, all...)
}
