package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/formbuilder-go/internal/application"
	"github.com/linskybing/formbuilder-go/internal/domain/formresponse"
	"github.com/linskybing/formbuilder-go/pkg/pagination"
	"github.com/linskybing/formbuilder-go/pkg/response"
	"github.com/linskybing/formbuilder-go/pkg/utils"
)

const dateLayout = "2006-01-02"

type ResponseHandler struct {
	svc *application.FormResponseService
}

func NewResponseHandler(svc *application.FormResponseService) *ResponseHandler {
	return &ResponseHandler{svc: svc}
}

// parseDate accepts a calendar date or an RFC3339 timestamp. A bare date used
// as an upper bound covers the whole day.
func parseDate(s string, endOfDay bool) (*time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, true
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		if endOfDay {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		return &t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, true
	}
	return nil, false
}

// formAndOwner reads the form_id and user_id query pair used by every
// owner-gated read.
func formAndOwner(c *gin.Context) (uint, uint, bool) {
	formID, ok := queryID(c, "form_id", msgFormIDRequired)
	if !ok {
		return 0, 0, false
	}
	userID, ok := queryID(c, "user_id", msgUserIDRequired)
	if !ok {
		return 0, 0, false
	}
	return formID, userID, true
}

// Submit godoc
// @Summary Submit a response to a form
// @Description A submission identical to an existing one is stored as flagged and reported with duplicate=true.
// @Tags responses
// @Accept json
// @Produce json
// @Param input body formresponse.SubmitInput true "Response payload"
// @Success 200 {object} response.SuccessResponse{data=formresponse.SubmitResult}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/responses/submit [post]
func (h *ResponseHandler) Submit(c *gin.Context) {
	var input formresponse.SubmitInput
	if !bindJSON(c, &input) {
		return
	}
	input.RespondentIP = c.ClientIP()
	input.UserAgent = c.GetHeader("User-Agent")

	res, err := h.svc.Submit(c.Request.Context(), input)
	if err != nil {
		fail(c, err, "خطا در ثبت پاسخ")
		return
	}
	response.Success(c, res, "پاسخ با موفقیت ثبت شد")
}

// GetResponse godoc
// @Summary Get a response
// @Tags responses
// @Produce json
// @Param response_id query int true "Response ID"
// @Param user_id query int true "Form owner ID"
// @Success 200 {object} response.SuccessResponse{data=formresponse.Detail}
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/responses/get [get]
func (h *ResponseHandler) GetResponse(c *gin.Context) {
	id, ok := queryID(c, "response_id", msgRespIDRequired)
	if !ok {
		return
	}
	userID, ok := queryID(c, "user_id", msgUserIDRequired)
	if !ok {
		return
	}

	res, err := h.svc.GetResponse(c.Request.Context(), id, userID)
	if err != nil {
		fail(c, err, "خطا در دریافت پاسخ")
		return
	}
	response.Success(c, res, "پاسخ دریافت شد")
}

// ListResponses godoc
// @Summary List the responses of a form
// @Tags responses
// @Produce json
// @Param form_id query int true "Form ID"
// @Param user_id query int true "Form owner ID"
// @Param status query string false "Response status"
// @Param date_from query string false "YYYY-MM-DD or RFC3339"
// @Param date_to query string false "YYYY-MM-DD or RFC3339"
// @Param is_verified query bool false "Verified only"
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} response.SuccessResponse{data=formresponse.ListResult}
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Router /api/responses/list [get]
func (h *ResponseHandler) ListResponses(c *gin.Context) {
	formID, userID, ok := formAndOwner(c)
	if !ok {
		return
	}
	from, okFrom := parseDate(c.Query("date_from"), false)
	to, okTo := parseDate(c.Query("date_to"), true)
	if !okFrom || !okTo {
		response.Error(c, http.StatusBadRequest, msgInvalidDate, nil)
		return
	}

	filter := formresponse.ListFilter{
		Status:     c.Query("status"),
		DateFrom:   from,
		DateTo:     to,
		IsVerified: utils.ParseQueryBool(c, "is_verified"),
	}
	res, err := h.svc.ListResponses(c.Request.Context(), formID, userID, filter, pageParams(c, pagination.DefaultOpts))
	if err != nil {
		fail(c, err, "خطا در دریافت پاسخ‌ها")
		return
	}
	response.Success(c, res, "پاسخ‌های فرم دریافت شد")
}

// UpdateStatus godoc
// @Summary Review a response
// @Tags responses
// @Accept json
// @Produce json
// @Param input body formresponse.StatusInput true "Target status"
// @Success 200 {object} response.SuccessResponse{data=formresponse.Detail}
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/responses/status [put]
func (h *ResponseHandler) UpdateStatus(c *gin.Context) {
	var input formresponse.StatusInput
	if !bindJSON(c, &input) {
		return
	}

	res, err := h.svc.UpdateStatus(c.Request.Context(), input)
	if err != nil {
		fail(c, err, "خطا در بروزرسانی وضعیت پاسخ")
		return
	}
	response.Success(c, res, "وضعیت پاسخ بروزرسانی شد")
}

// Rate godoc
// @Summary Score a response between 0 and 10
// @Tags responses
// @Accept json
// @Produce json
// @Param input body formresponse.RateInput true "Score"
// @Success 200 {object} response.SuccessResponse{data=formresponse.Detail}
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Router /api/responses/rate [put]
func (h *ResponseHandler) Rate(c *gin.Context) {
	var input formresponse.RateInput
	if !bindJSON(c, &input) {
		return
	}

	res, err := h.svc.Rate(c.Request.Context(), input)
	if err != nil {
		fail(c, err, "خطا در امتیازدهی پاسخ")
		return
	}
	response.Success(c, res, "امتیاز پاسخ ثبت شد")
}

// DeleteResponse godoc
// @Summary Soft delete a response
// @Tags responses
// @Produce json
// @Param response_id query int true "Response ID"
// @Param user_id query int true "Form owner ID"
// @Success 200 {object} response.SuccessResponse{data=formresponse.DeleteResult}
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/responses/delete [delete]
func (h *ResponseHandler) DeleteResponse(c *gin.Context) {
	id, ok := queryID(c, "response_id", msgRespIDRequired)
	if !ok {
		return
	}
	userID, ok := queryID(c, "user_id", msgUserIDRequired)
	if !ok {
		return
	}

	res, err := h.svc.DeleteResponse(c.Request.Context(), id, userID)
	if err != nil {
		fail(c, err, "خطا در حذف پاسخ")
		return
	}
	response.Success(c, res, "پاسخ با موفقیت حذف شد")
}

// Stats godoc
// @Summary Response statistics
// @Tags responses
// @Produce json
// @Param form_id query int true "Form ID"
// @Param user_id query int true "Form owner ID"
// @Success 200 {object} response.SuccessResponse{data=formresponse.Stats}
// @Failure 403 {object} response.ErrorResponse
// @Router /api/responses/stats [get]
func (h *ResponseHandler) Stats(c *gin.Context) {
	formID, userID, ok := formAndOwner(c)
	if !ok {
		return
	}

	stats, err := h.svc.Stats(c.Request.Context(), formID, userID)
	if err != nil {
		fail(c, err, "خطا در دریافت آمار پاسخ‌ها")
		return
	}
	response.Success(c, stats, "آمار پاسخ‌ها دریافت شد")
}

// Search godoc
// @Summary Search the responses of a form
// @Tags responses
// @Produce json
// @Param form_id query int true "Form ID"
// @Param user_id query int true "Form owner ID"
// @Param q query string true "Search term"
// @Success 200 {object} response.SuccessResponse{data=[]formresponse.Detail}
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Router /api/responses/search [get]
func (h *ResponseHandler) Search(c *gin.Context) {
	formID, userID, ok := formAndOwner(c)
	if !ok {
		return
	}

	rows, err := h.svc.Search(c.Request.Context(), formID, userID, c.Query("q"))
	if err != nil {
		fail(c, err, "خطا در جستجوی پاسخ‌ها")
		return
	}
	response.Success(c, rows, "نتایج جستجو دریافت شد")
}

// Export godoc
// @Summary Export responses to object storage
// @Tags responses
// @Accept json
// @Produce json
// @Param input body formresponse.ExportInput true "Form and owner"
// @Success 200 {object} response.SuccessResponse{data=formresponse.ExportResult}
// @Failure 403 {object} response.ErrorResponse
// @Failure 503 {object} response.ErrorResponse "Storage disabled"
// @Router /api/responses/export [post]
func (h *ResponseHandler) Export(c *gin.Context) {
	var input formresponse.ExportInput
	if !bindJSON(c, &input) {
		return
	}

	res, err := h.svc.Export(c.Request.Context(), input)
	if err != nil {
		fail(c, err, "خطا در خروجی گرفتن از پاسخ‌ها")
		return
	}
	response.Success(c, res, "خروجی پاسخ‌ها آماده شد")
}
