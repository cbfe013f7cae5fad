package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/linskybing/formbuilder-go/internal/application"
	"github.com/linskybing/formbuilder-go/internal/domain/setting"
	"github.com/linskybing/formbuilder-go/pkg/response"
)

type SettingHandler struct {
	svc    *application.SettingService
	system *application.SystemService
}

func NewSettingHandler(svc *application.SettingService, system *application.SystemService) *SettingHandler {
	return &SettingHandler{svc: svc, system: system}
}

// GetSettings godoc
// @Summary List system settings
// @Description Encrypted values are masked.
// @Tags settings
// @Produce json
// @Success 200 {object} response.SuccessResponse{data=[]setting.Setting}
// @Router /api/settings/get [get]
func (h *SettingHandler) GetSettings(c *gin.Context) {
	settings, err := h.svc.List(c.Request.Context())
	if err != nil {
		fail(c, err, "خطا در بارگذاری تنظیمات")
		return
	}
	response.Success(c, settings, "تنظیمات با موفقیت بارگذاری شد")
}

// UpdateSetting godoc
// @Summary Change the value of an existing setting
// @Tags settings
// @Accept json
// @Produce json
// @Param input body setting.UpdateSettingInput true "Key and value"
// @Success 200 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/settings/update [post]
func (h *SettingHandler) UpdateSetting(c *gin.Context) {
	var input setting.UpdateSettingInput
	if !bindJSON(c, &input) {
		return
	}

	if err := h.svc.Update(c.Request.Context(), input); err != nil {
		fail(c, err, "خطا در بروزرسانی تنظیمات")
		return
	}
	response.Success(c, nil, "تنظیمات با موفقیت بروزرسانی شد")
}

// TestConnection godoc
// @Summary Database connectivity self-test
// @Tags settings
// @Produce json
// @Success 200 {object} response.SuccessResponse{data=object}
// @Router /api/settings/test [get]
func (h *SettingHandler) TestConnection(c *gin.Context) {
	response.Success(c, h.system.TestConnection(c.Request.Context()), "تست اتصال دیتابیس انجام شد")
}
