package formresponse

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Status string

const (
	StatusSubmitted Status = "submitted"
	StatusReviewed  Status = "reviewed"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusFlagged   Status = "flagged"
)

var Statuses = []string{
	string(StatusSubmitted), string(StatusReviewed), string(StatusApproved),
	string(StatusRejected), string(StatusFlagged),
}

// Verified reports whether moving a response to s marks it verified.
func (s Status) Verified() bool {
	return s == StatusReviewed || s == StatusApproved
}

type FormResponse struct {
	ID                  uint           `gorm:"primaryKey" json:"id"`
	FormID              uint           `gorm:"not null;index" json:"form_id"`
	RespondentUserID    *uint          `json:"respondent_user_id"`
	ResponseData        datatypes.JSON `gorm:"type:jsonb;not null" json:"response_data" swaggertype:"object"`
	ResponseHash        string         `gorm:"size:64;not null" json:"response_hash"`
	FormVersion         string         `gorm:"size:20" json:"form_version"`
	SessionID           string         `gorm:"size:64" json:"session_id"`
	RespondentIP        string         `gorm:"column:respondent_ip;size:64" json:"respondent_ip"`
	UserAgent           string         `gorm:"type:text" json:"user_agent"`
	DeviceInfo          datatypes.JSON `gorm:"type:jsonb" json:"device_info" swaggertype:"object"`
	StartedAt           *time.Time     `json:"started_at"`
	SubmittedAt         time.Time      `json:"submitted_at"`
	CompletionTime      *int           `json:"completion_time"`
	Timezone            string         `gorm:"size:64" json:"timezone"`
	Status              Status         `gorm:"size:20;not null;default:submitted" json:"status"`
	CompletenessPercent float64        `gorm:"not null;default:0" json:"completeness_percent"`
	QualityScore        *float64       `json:"quality_score"`
	IsVerified          bool           `gorm:"not null;default:false" json:"is_verified"`
	ReviewedBy          *uint          `json:"reviewed_by"`
	ReviewedAt          *time.Time     `json:"reviewed_at"`
	ReviewNotes         *string        `gorm:"type:text" json:"review_notes"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`
	DeletedBy           *uint          `json:"-"`
}

func (FormResponse) TableName() string {
	return "form_responses"
}

// Detail joins a response with its form title and respondent display fields.
type Detail struct {
	FormResponse
	FormTitle       string  `json:"form_title"`
	FormOwnerID     uint    `json:"form_owner_id"`
	RespondentName  *string `json:"respondent_name"`
	RespondentEmail *string `json:"respondent_email"`
}

type Stats struct {
	TotalResponses    int64      `json:"total_responses"`
	SubmittedCount    int64      `json:"submitted_count"`
	ReviewedCount     int64      `json:"reviewed_count"`
	ApprovedCount     int64      `json:"approved_count"`
	RejectedCount     int64      `json:"rejected_count"`
	FlaggedCount      int64      `json:"flagged_count"`
	VerifiedCount     int64      `json:"verified_count"`
	AvgQualityScore   float64    `json:"avg_quality_score"`
	AvgCompletionTime float64    `json:"avg_completion_time"`
	AvgCompleteness   float64    `json:"avg_completeness"`
	FirstResponseAt   *time.Time `json:"first_response_at"`
	LastResponseAt    *time.Time `json:"last_response_at"`
}
