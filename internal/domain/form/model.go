package form

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusActive    Status = "active"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
	StatusPaused    Status = "paused"
)

var Statuses = []string{
	string(StatusActive), string(StatusDraft), string(StatusArchived),
	string(StatusPublished), string(StatusPaused),
}

// ListableStatuses are the status filters accepted by the owner listing.
var ListableStatuses = []string{string(StatusDraft), string(StatusPublished), string(StatusArchived)}

type Form struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	UserID             uint           `gorm:"not null;index" json:"user_id"`
	PersianTitle       string         `gorm:"size:255;not null" json:"persian_title"`
	EnglishTitle       *string        `gorm:"size:255" json:"english_title"`
	PersianDescription *string        `gorm:"type:text" json:"persian_description"`
	EnglishDescription *string        `gorm:"type:text" json:"english_description"`
	FormSchema         datatypes.JSON `gorm:"type:jsonb;not null" json:"form_schema" swaggertype:"object"`
	FormConfig         datatypes.JSON `gorm:"type:jsonb" json:"form_config" swaggertype:"object"`
	FormSettings       datatypes.JSON `gorm:"type:jsonb" json:"form_settings" swaggertype:"object"`
	Status             Status         `gorm:"size:20;not null;default:draft" json:"status"`
	Version            string         `gorm:"size:20;not null;default:1.0" json:"version"`
	IsPublic           bool           `gorm:"not null;default:false" json:"is_public"`
	RequiresLogin      bool           `gorm:"not null;default:false" json:"requires_login"`
	MaxResponses       *int           `json:"max_responses"`
	ExpiresAt          *time.Time     `json:"expires_at"`
	ParentFormID       *uint          `json:"parent_form_id"`
	ResponseCount      int            `gorm:"not null;default:0" json:"response_count"`
	ViewCount          int            `gorm:"not null;default:0" json:"view_count"`
	PublishedAt        *time.Time     `json:"published_at"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
	DeletedBy          *uint          `json:"-"`
}

func (Form) TableName() string {
	return "forms"
}

// Detail is a form joined with its creator's display fields.
type Detail struct {
	Form
	CreatorName  *string `json:"creator_name"`
	CreatorEmail *string `json:"creator_email"`
	Stats        *Stats  `gorm:"-" json:"stats,omitempty"`
}

// Stats aggregates the non-deleted responses of a form.
type Stats struct {
	TotalResponses    int64    `json:"total_responses"`
	SubmittedCount    int64    `json:"submitted_count"`
	ReviewedCount     int64    `json:"reviewed_count"`
	AvgQualityScore   *float64 `json:"avg_quality_score"`
	AvgCompletionTime *float64 `json:"avg_completion_time"`
}
