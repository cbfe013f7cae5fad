package setting

import "time"

type Type string

const (
	TypeString    Type = "string"
	TypeNumber    Type = "number"
	TypeBoolean   Type = "boolean"
	TypeJSON      Type = "json"
	TypeEncrypted Type = "encrypted"
)

// MaskedValue replaces encrypted values in listings.
const MaskedValue = "***مخفی***"

type Setting struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Key         string    `gorm:"column:setting_key;size:100;not null;uniqueIndex" json:"setting_key"`
	Value       *string   `gorm:"column:setting_value;type:text" json:"setting_value"`
	Type        Type      `gorm:"column:setting_type;size:20;not null;default:string" json:"setting_type"`
	Category    string    `gorm:"size:50;not null;default:general" json:"category"`
	Description *string   `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Setting) TableName() string {
	return "system_settings"
}

type UpdateSettingInput struct {
	Key   string `json:"setting_key" example:"app_name"`
	Value any    `json:"setting_value"`
}
