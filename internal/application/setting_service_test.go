package application

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/linskybing/formbuilder-go/internal/domain/setting"
	"github.com/linskybing/formbuilder-go/internal/repository"
	"github.com/linskybing/formbuilder-go/internal/repository/mock"
	"github.com/linskybing/formbuilder-go/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSettingServiceMocks(t *testing.T) (*SettingService, *mock.MockSettingRepo) {
	ctrl := gomock.NewController(t)
	t.Cleanup(func() { ctrl.Finish() })

	mockSetting := mock.NewMockSettingRepo(ctrl)
	repos := &repository.Repos{
		Setting: mockSetting,
	}
	return NewSettingService(repos, &fakeAuditor{}, nil), mockSetting
}

func TestListSettings_MasksEncrypted(t *testing.T) {
	svc, mockSetting := setupSettingServiceMocks(t)

	mockSetting.EXPECT().ListSettings(gomock.Any()).Return([]setting.Setting{
		{Key: "app_name", Value: ptrString("فرم‌ساز"), Type: setting.TypeString},
		{Key: "smtp_password", Value: ptrString("hunter2"), Type: setting.TypeEncrypted},
		{Key: "api_secret", Value: ptrString(""), Type: setting.TypeEncrypted},
	}, nil)

	settings, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "فرم‌ساز", *settings[0].Value)
	assert.Equal(t, setting.MaskedValue, *settings[1].Value)
	assert.Equal(t, "", *settings[2].Value)
}

func TestUpdateSetting(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"string", "fa", "fa"},
		{"number", float64(25), "25"},
		{"bool", true, "true"},
		{"object", map[string]any{"a": 1}, `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockSetting := setupSettingServiceMocks(t)
			mockSetting.EXPECT().UpdateSettingValue(gomock.Any(), "k", gomock.Any()).DoAndReturn(
				func(_ context.Context, _ string, v *string) (int64, error) {
					require.NotNil(t, v)
					assert.Equal(t, tt.want, *v)
					return 1, nil
				})

			assert.NoError(t, svc.Update(context.Background(), setting.UpdateSettingInput{Key: "k", Value: tt.value}))
		})
	}
}

func TestUpdateSetting_UnknownKey(t *testing.T) {
	svc, mockSetting := setupSettingServiceMocks(t)

	mockSetting.EXPECT().UpdateSettingValue(gomock.Any(), "missing", gomock.Any()).Return(int64(0), nil)

	err := svc.Update(context.Background(), setting.UpdateSettingInput{Key: "missing", Value: "x"})
	assertKind(t, err, apperr.KindNotFound)
	assert.Equal(t, msgSettingNotFound, err.Error())
}

func TestUpdateSetting_Incomplete(t *testing.T) {
	svc, _ := setupSettingServiceMocks(t)

	err := svc.Update(context.Background(), setting.UpdateSettingInput{Key: "k"})
	assertKind(t, err, apperr.KindBadRequest)
	assert.Equal(t, msgSettingIncomplete, err.Error())
}
