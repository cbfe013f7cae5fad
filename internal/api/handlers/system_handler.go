package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/formbuilder-go/internal/application"
	"github.com/linskybing/formbuilder-go/pkg/response"
)

type SystemHandler struct {
	svc *application.SystemService
}

func NewSystemHandler(svc *application.SystemService) *SystemHandler {
	return &SystemHandler{svc: svc}
}

// Status godoc
// @Summary Runtime and database status
// @Tags system
// @Produce json
// @Success 200 {object} response.SuccessResponse{data=application.SystemStatus}
// @Router /api/system/status [get]
func (h *SystemHandler) Status(c *gin.Context) {
	response.Success(c, h.svc.Status(c.Request.Context()), "وضعیت سیستم")
}

// Info godoc
// @Summary Build and host information
// @Tags system
// @Produce json
// @Success 200 {object} response.SuccessResponse{data=application.SystemInfo}
// @Router /api/system/info [get]
func (h *SystemHandler) Info(c *gin.Context) {
	response.Success(c, h.svc.Info(), "اطلاعات سرور")
}

// Health godoc
// @Summary Liveness probe
// @Tags system
// @Produce plain
// @Success 200 {string} string "ok"
// @Router /healthz [get]
func (h *SystemHandler) Health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}
