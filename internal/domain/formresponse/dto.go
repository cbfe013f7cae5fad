package formresponse

import (
	"time"

	"github.com/linskybing/formbuilder-go/pkg/jsonval"
	"github.com/linskybing/formbuilder-go/pkg/pagination"
)

type SubmitInput struct {
	FormID           uint           `json:"form_id" example:"10"`
	RespondentUserID *uint          `json:"respondent_user_id"`
	ResponseData     *jsonval.Value `json:"response_data" swaggertype:"object"`
	SessionID        string         `json:"session_id"`
	DeviceInfo       *jsonval.Value `json:"device_info" swaggertype:"object"`
	StartedAt        *time.Time     `json:"started_at"`
	Timezone         string         `json:"timezone" example:"Asia/Tehran"`

	// Filled from the request, not the body.
	RespondentIP string `json:"-"`
	UserAgent    string `json:"-"`
}

type SubmitResult struct {
	ResponseID   uint   `json:"response_id"`
	ResponseHash string `json:"response_hash"`
	Duplicate    bool   `json:"duplicate"`
}

type StatusInput struct {
	ResponseID  uint    `json:"response_id" binding:"required" example:"5"`
	UserID      uint    `json:"user_id" binding:"required" example:"1"`
	Status      string  `json:"status" binding:"required" example:"approved"`
	ReviewNotes *string `json:"review_notes"`
}

type RateInput struct {
	ResponseID uint     `json:"response_id" binding:"required" example:"5"`
	UserID     uint     `json:"user_id" binding:"required" example:"1"`
	Score      *float64 `json:"score" binding:"required" example:"8.5"`
}

type ExportInput struct {
	FormID uint `json:"form_id" binding:"required" example:"10"`
	UserID uint `json:"user_id" binding:"required" example:"1"`
}

type ExportResult struct {
	Object string `json:"object"`
	URL    string `json:"url"`
	Count  int    `json:"count"`
}

type ListFilter struct {
	Status     string
	DateFrom   *time.Time
	DateTo     *time.Time
	IsVerified *bool
}

type ListResult struct {
	Responses  []Detail        `json:"responses"`
	Pagination pagination.Meta `json:"pagination"`
}

type DeleteResult struct {
	ResponseID uint `json:"response_id"`
	Deleted    bool `json:"deleted"`
}
