package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/formbuilder-go/internal/application"
	"github.com/linskybing/formbuilder-go/internal/domain/widget"
	"github.com/linskybing/formbuilder-go/pkg/pagination"
	"github.com/linskybing/formbuilder-go/pkg/response"
)

type WidgetHandler struct {
	svc *application.WidgetService
}

func NewWidgetHandler(svc *application.WidgetService) *WidgetHandler {
	return &WidgetHandler{svc: svc}
}

// Library godoc
// @Summary Widget library grouped by category
// @Tags widgets
// @Produce json
// @Param category query string false "Category or all" default(all)
// @Param active_only query bool false "Only active widgets" default(true)
// @Param sort_by query string false "display_order, usage_count or persian_label" default(display_order)
// @Param limit query int false "Max widgets" default(50)
// @Success 200 {object} response.SuccessResponse{data=widget.Library}
// @Router /api/widgets/library [get]
func (h *WidgetHandler) Library(c *gin.Context) {
	filter := widget.LibraryFilter{
		Category:   c.DefaultQuery("category", "all"),
		ActiveOnly: c.DefaultQuery("active_only", "true") != "false",
		SortBy:     c.DefaultQuery("sort_by", "display_order"),
		Limit:      pageParams(c, pagination.WidgetOpts).Limit(),
	}

	lib, err := h.svc.Library(c.Request.Context(), filter)
	if err != nil {
		fail(c, err, "خطا در دریافت کتابخانه ویجت‌ها")
		return
	}
	response.Success(c, lib, "کتابخانه ویجت‌ها دریافت شد")
}

// CreateWidget godoc
// @Summary Create a widget
// @Tags widgets
// @Accept json
// @Produce json
// @Param input body widget.CreateWidgetInput true "Widget fields"
// @Success 200 {object} response.SuccessResponse{data=widget.Widget}
// @Failure 400 {object} response.ErrorResponse
// @Router /api/widgets/create [post]
func (h *WidgetHandler) CreateWidget(c *gin.Context) {
	var input widget.CreateWidgetInput
	if !bindJSON(c, &input) {
		return
	}

	w, err := h.svc.CreateWidget(c.Request.Context(), input)
	if err != nil {
		fail(c, err, "خطا در ایجاد ویجت")
		return
	}
	response.Success(c, w, "ویجت با موفقیت ایجاد شد")
}

// UpdateWidget godoc
// @Summary Update a widget
// @Description widget_code cannot be changed.
// @Tags widgets
// @Accept json
// @Produce json
// @Param input body object true "widget_id and the fields to change"
// @Success 200 {object} response.SuccessResponse{data=widget.Widget}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/widgets/update [put]
func (h *WidgetHandler) UpdateWidget(c *gin.Context) {
	raw, ok := bindRaw(c)
	if !ok {
		return
	}
	id, ok := rawID(raw, "widget_id")
	if !ok {
		response.Error(c, http.StatusBadRequest, msgWidgetIDMissing, nil)
		return
	}

	w, err := h.svc.UpdateWidget(c.Request.Context(), id, raw)
	if err != nil {
		fail(c, err, "خطا در بروزرسانی ویجت")
		return
	}
	response.Success(c, w, "ویجت با موفقیت بروزرسانی شد")
}

// GetByCode godoc
// @Summary Get an active widget by code
// @Tags widgets
// @Produce json
// @Param code query string true "Widget code"
// @Success 200 {object} response.SuccessResponse{data=widget.Widget}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/widgets/get [get]
func (h *WidgetHandler) GetByCode(c *gin.Context) {
	code := strings.TrimSpace(c.Query("code"))
	if code == "" {
		response.Error(c, http.StatusBadRequest, msgWidgetCodeEmpty, nil)
		return
	}

	w, err := h.svc.GetByCode(c.Request.Context(), code)
	if err != nil {
		fail(c, err, "خطا در دریافت ویجت")
		return
	}
	response.Success(c, w, "ویجت دریافت شد")
}

// Popular godoc
// @Summary Most used widgets
// @Tags widgets
// @Produce json
// @Param limit query int false "Max widgets" default(10)
// @Success 200 {object} response.SuccessResponse{data=[]widget.Widget}
// @Router /api/widgets/popular [get]
func (h *WidgetHandler) Popular(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	widgets, err := h.svc.Popular(c.Request.Context(), limit)
	if err != nil {
		fail(c, err, "خطا در دریافت ویجت‌های محبوب")
		return
	}
	response.Success(c, widgets, "ویجت‌های محبوب دریافت شد")
}

// IncrementUsage godoc
// @Summary Count a use of a widget type
// @Tags widgets
// @Accept json
// @Produce json
// @Param input body widget.UsageInput true "Widget type"
// @Success 200 {object} response.SuccessResponse{data=application.UsageResult}
// @Failure 400 {object} response.ErrorResponse
// @Router /api/widgets/usage [post]
func (h *WidgetHandler) IncrementUsage(c *gin.Context) {
	var input widget.UsageInput
	if !bindJSON(c, &input) {
		return
	}

	res, err := h.svc.IncrementUsage(c.Request.Context(), input.WidgetType)
	if err != nil {
		fail(c, err, "خطا در ثبت استفاده از ویجت")
		return
	}
	response.Success(c, res, "استفاده از ویجت ثبت شد")
}
