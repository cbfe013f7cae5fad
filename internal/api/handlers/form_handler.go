package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/formbuilder-go/internal/application"
	"github.com/linskybing/formbuilder-go/internal/domain/form"
	"github.com/linskybing/formbuilder-go/pkg/pagination"
	"github.com/linskybing/formbuilder-go/pkg/response"
)

type FormHandler struct {
	svc *application.FormService
}

func NewFormHandler(svc *application.FormService) *FormHandler {
	return &FormHandler{svc: svc}
}

// CreateForm godoc
// @Summary Create a form
// @Tags forms
// @Accept json
// @Produce json
// @Param input body form.CreateFormInput true "Form fields"
// @Success 200 {object} response.SuccessResponse{data=form.Form}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse "Owner not found"
// @Failure 405 {object} response.ErrorResponse
// @Router /api/forms/create [post]
func (h *FormHandler) CreateForm(c *gin.Context) {
	var input form.CreateFormInput
	if !bindJSON(c, &input) {
		return
	}

	f, err := h.svc.CreateForm(c.Request.Context(), input)
	if err != nil {
		fail(c, err, "خطا در ایجاد فرم")
		return
	}
	response.Success(c, f, "فرم با موفقیت ایجاد شد")
}

// UpdateForm godoc
// @Summary Update a form
// @Description Unknown fields are ignored. form_id, user_id, created_at and view_count cannot be changed.
// @Tags forms
// @Accept json
// @Produce json
// @Param input body form.UpdateFormRequest true "form_id, user_id and the fields to change"
// @Success 200 {object} response.SuccessResponse{data=form.Detail}
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/forms/update [put]
func (h *FormHandler) UpdateForm(c *gin.Context) {
	raw, ok := bindRaw(c)
	if !ok {
		return
	}
	formID, ok := rawID(raw, "form_id")
	if !ok {
		response.Error(c, http.StatusBadRequest, msgFormIDRequired, nil)
		return
	}
	userID, ok := rawID(raw, "user_id")
	if !ok {
		response.Error(c, http.StatusBadRequest, msgUserIDRequired, nil)
		return
	}

	f, err := h.svc.UpdateForm(c.Request.Context(), formID, userID, raw)
	if err != nil {
		fail(c, err, "خطا در بروزرسانی فرم")
		return
	}
	response.Success(c, f, "فرم با موفقیت بروزرسانی شد")
}

// DeleteForm godoc
// @Summary Soft delete a form
// @Tags forms
// @Produce json
// @Param form_id query int true "Form ID"
// @Param user_id query int true "Acting user ID"
// @Success 200 {object} response.SuccessResponse{data=form.DeleteResult}
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/forms/delete [delete]
func (h *FormHandler) DeleteForm(c *gin.Context) {
	formID, ok := queryID(c, "form_id", msgFormIDRequired)
	if !ok {
		return
	}
	userID, ok := queryID(c, "user_id", msgUserIDRequired)
	if !ok {
		return
	}

	res, err := h.svc.DeleteForm(c.Request.Context(), formID, userID)
	if err != nil {
		fail(c, err, "خطا در حذف فرم")
		return
	}
	response.Success(c, res, "فرم با موفقیت حذف شد")
}

// ListUserForms godoc
// @Summary List a user's forms
// @Tags forms
// @Produce json
// @Param user_id query int true "Owner ID"
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(10)
// @Param status query string false "draft, published or archived"
// @Param search query string false "Title or description search"
// @Success 200 {object} response.SuccessResponse{data=form.ListResult}
// @Failure 400 {object} response.ErrorResponse
// @Router /api/forms/user_forms [get]
func (h *FormHandler) ListUserForms(c *gin.Context) {
	userID, ok := queryID(c, "user_id", msgUserIDRequired)
	if !ok {
		return
	}

	res, err := h.svc.ListUserForms(c.Request.Context(), userID,
		pageParams(c, pagination.DefaultOpts), c.Query("status"), c.Query("search"))
	if err != nil {
		fail(c, err, "خطا در دریافت فرم‌ها")
		return
	}
	response.Success(c, res, "فرم‌های کاربر با موفقیت دریافت شد")
}

// GetForm godoc
// @Summary Get a form
// @Tags forms
// @Produce json
// @Param form_id query int true "Form ID"
// @Param include_stats query bool false "Attach response statistics"
// @Param count_view query bool false "Increment the view counter"
// @Success 200 {object} response.SuccessResponse{data=form.Detail}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/forms/get [get]
func (h *FormHandler) GetForm(c *gin.Context) {
	formID, ok := queryID(c, "form_id", msgFormIDRequired)
	if !ok {
		return
	}
	includeStats := c.Query("include_stats") == "true"
	countView := c.Query("count_view") == "true"

	f, err := h.svc.GetForm(c.Request.Context(), formID, includeStats, countView)
	if err != nil {
		fail(c, err, "خطا در دریافت فرم")
		return
	}
	response.Success(c, f, "فرم با موفقیت دریافت شد")
}

// PublishForm godoc
// @Summary Publish a form
// @Tags forms
// @Accept json
// @Produce json
// @Param input body form.PublishFormInput true "Form and acting user"
// @Success 200 {object} response.SuccessResponse{data=form.Detail}
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/forms/publish [post]
func (h *FormHandler) PublishForm(c *gin.Context) {
	var input form.PublishFormInput
	if !bindJSON(c, &input) {
		return
	}

	f, err := h.svc.PublishForm(c.Request.Context(), input.FormID, input.UserID)
	if err != nil {
		fail(c, err, "خطا در انتشار فرم")
		return
	}
	response.Success(c, f, "فرم با موفقیت منتشر شد")
}

// ListPublicForms godoc
// @Summary List published public forms
// @Tags forms
// @Produce json
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(10)
// @Param search query string false "Title or description search"
// @Success 200 {object} response.SuccessResponse{data=form.PublicResult}
// @Router /api/forms/public [get]
func (h *FormHandler) ListPublicForms(c *gin.Context) {
	res, err := h.svc.ListPublicForms(c.Request.Context(), pageParams(c, pagination.DefaultOpts), c.Query("search"))
	if err != nil {
		fail(c, err, "خطا در دریافت فرم‌های عمومی")
		return
	}
	response.Success(c, res, "فرم‌های عمومی دریافت شد")
}

// FormStats godoc
// @Summary Response statistics of a form
// @Tags forms
// @Produce json
// @Param form_id query int true "Form ID"
// @Param user_id query int true "Owner ID"
// @Success 200 {object} response.SuccessResponse{data=form.Stats}
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/forms/stats [get]
func (h *FormHandler) FormStats(c *gin.Context) {
	formID, ok := queryID(c, "form_id", msgFormIDRequired)
	if !ok {
		return
	}
	userID, ok := queryID(c, "user_id", msgUserIDRequired)
	if !ok {
		return
	}

	stats, err := h.svc.FormStats(c.Request.Context(), formID, userID)
	if err != nil {
		fail(c, err, "خطا در دریافت آمار فرم")
		return
	}
	response.Success(c, stats, "آمار فرم دریافت شد")
}
