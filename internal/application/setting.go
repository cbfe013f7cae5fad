package application

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/linskybing/formbuilder-go/internal/domain/setting"
	"github.com/linskybing/formbuilder-go/internal/repository"
	"github.com/linskybing/formbuilder-go/pkg/apperr"
	"go.uber.org/zap"
)

const (
	categorySettings = "SYSTEM_SETTINGS"

	msgSettingNotFound   = "تنظیمات یافت نشد"
	msgSettingIncomplete = "داده‌های ناقص ارسال شده"
)

type SettingService struct {
	Repos  *repository.Repos
	audit  Auditor
	logger *zap.Logger
	fail   failures
}

func NewSettingService(repos *repository.Repos, audit Auditor, logger *zap.Logger) *SettingService {
	return &SettingService{
		Repos:  repos,
		audit:  audit,
		logger: nopIfNil(logger),
		fail:   newFailures(logger, audit, categorySettings),
	}
}

// List returns every setting ordered by key. Non-empty encrypted values are
// masked.
func (s *SettingService) List(ctx context.Context) ([]setting.Setting, error) {
	s.audit.Info(ctx, categorySettings, "درخواست دریافت تنظیمات", nil)

	settings, err := s.Repos.Setting.ListSettings(ctx)
	if err != nil {
		return nil, s.fail.internal(ctx, err, "list settings")
	}
	for i := range settings {
		if settings[i].Type == setting.TypeEncrypted && settings[i].Value != nil && *settings[i].Value != "" {
			masked := setting.MaskedValue
			settings[i].Value = &masked
		}
	}
	if settings == nil {
		settings = []setting.Setting{}
	}
	return settings, nil
}

// Update stores a new value for an existing key. Non-string values are stored
// in their JSON form.
func (s *SettingService) Update(ctx context.Context, in setting.UpdateSettingInput) error {
	if in.Key == "" || in.Value == nil {
		return apperr.BadRequest(msgSettingIncomplete)
	}
	value, err := settingValue(in.Value)
	if err != nil {
		return apperr.Validation(msgSettingIncomplete, err.Error())
	}

	rows, err := s.Repos.Setting.UpdateSettingValue(ctx, in.Key, value)
	if err != nil {
		return s.fail.internal(ctx, err, "update setting", zap.String("setting_key", in.Key))
	}
	if rows == 0 {
		return ErrSettingNotFound
	}

	s.audit.Info(ctx, categorySettings, "تنظیمات بروزرسانی شد", map[string]any{"setting_key": in.Key})
	return nil
}

func settingValue(v any) (*string, error) {
	switch t := v.(type) {
	case string:
		return &t, nil
	case bool:
		str := fmt.Sprint(t)
		return &str, nil
	case float64:
		str := fmt.Sprint(t)
		return &str, nil
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return nil, fmt.Errorf("setting_value: %w", err)
		}
		str := string(b)
		return &str, nil
	}
}
