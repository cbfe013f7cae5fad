package user

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

var (
	Roles    = []string{string(RoleAdmin), string(RoleUser), string(RoleModerator)}
	Statuses = []string{string(StatusPending), string(StatusActive), string(StatusInactive)}
)

type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Email        string         `gorm:"size:255;not null" json:"email"`
	PasswordHash string         `gorm:"column:password_hash;size:255;not null" json:"-"`
	PersianName  string         `gorm:"size:255;not null" json:"persian_name"`
	EnglishName  *string        `gorm:"size:255" json:"english_name"`
	Phone        *string        `gorm:"size:32" json:"phone"`
	AvatarURL    *string        `gorm:"column:avatar_url" json:"avatar_url"`
	Role         Role           `gorm:"size:20;not null;default:user" json:"role"`
	Status       Status         `gorm:"size:20;not null;default:pending" json:"status"`
	Preferences  datatypes.JSON `gorm:"type:jsonb" json:"preferences" swaggertype:"object"`
	LastLoginAt  *time.Time     `json:"last_login_at"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	DeletedBy    *uint          `json:"-"`
}

func (User) TableName() string {
	return "users"
}

func (u User) IsActive() bool {
	return u.Status == StatusActive
}
