package form

import (
	"time"

	"github.com/linskybing/formbuilder-go/pkg/jsonval"
	"github.com/linskybing/formbuilder-go/pkg/pagination"
)

type CreateFormInput struct {
	UserID             uint           `json:"user_id" example:"1"`
	PersianTitle       string         `json:"persian_title" example:"فرم تست"`
	EnglishTitle       *string        `json:"english_title" example:"Test form"`
	PersianDescription *string        `json:"persian_description"`
	EnglishDescription *string        `json:"english_description"`
	FormSchema         *jsonval.Value `json:"form_schema" swaggertype:"object"`
	FormConfig         *jsonval.Value `json:"form_config" swaggertype:"object"`
	FormSettings       *jsonval.Value `json:"form_settings" swaggertype:"object"`
	Status             string         `json:"status" example:"draft"`
	IsPublic           bool           `json:"is_public"`
	RequiresLogin      bool           `json:"requires_login"`
	MaxResponses       *int           `json:"max_responses"`
	ExpiresAt          *time.Time     `json:"expires_at"`
	ParentFormID       *uint          `json:"parent_form_id"`
}

type UpdateFormRequest struct {
	FormID uint `json:"form_id" example:"10"`
	UserID uint `json:"user_id" example:"1"`
	// Any of the mutable form fields may follow.
	PersianTitle string `json:"persian_title,omitempty" example:"عنوان جدید"`
}

type PublishFormInput struct {
	FormID uint `json:"form_id" binding:"required" example:"10"`
	UserID uint `json:"user_id" binding:"required" example:"1"`
}

type ListFilter struct {
	Status   string
	Search   string
	IsPublic *bool
}

type DeleteResult struct {
	FormID  uint `json:"form_id"`
	Deleted bool `json:"deleted"`
}

type ListResult struct {
	Forms      []Form          `json:"forms"`
	Pagination pagination.Meta `json:"pagination"`
	Filters    AppliedFilters  `json:"filters"`
}

type AppliedFilters struct {
	Status string `json:"status"`
	Search string `json:"search"`
}

type PublicResult struct {
	Forms      []Detail        `json:"forms"`
	Pagination pagination.Meta `json:"pagination"`
}
