package syslog

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

type Level string

const (
	LevelInfo    Level = "INFO"
	LevelWarning Level = "WARNING"
	LevelError   Level = "ERROR"
	LevelDebug   Level = "DEBUG"
)

// NormalizeLevel uppercases a caller-supplied level.
func NormalizeLevel(s string) Level {
	return Level(strings.ToUpper(strings.TrimSpace(s)))
}

// Entry is one row of system_logs.
type Entry struct {
	ID        uint           `gorm:"primaryKey;column:log_id" json:"log_id"`
	Level     Level          `gorm:"column:log_level;size:20;not null" json:"log_level"`
	Category  string         `gorm:"column:log_category;size:100;not null" json:"log_category"`
	Message   string         `gorm:"column:log_message;type:text;not null" json:"log_message"`
	Context   datatypes.JSON `gorm:"column:log_context;type:jsonb" json:"log_context" swaggertype:"object"`
	IPAddress string         `gorm:"column:ip_address;size:64" json:"ip_address"`
	UserAgent string         `gorm:"column:user_agent;type:text" json:"user_agent"`
	CreatedAt time.Time      `json:"created_at"`
}

func (Entry) TableName() string {
	return "system_logs"
}

type Stats struct {
	TotalLogs   int64 `json:"total_logs"`
	ErrorLogs   int64 `json:"error_logs"`
	WarningLogs int64 `json:"warning_logs"`
	InfoLogs    int64 `json:"info_logs"`
	TodayLogs   int64 `json:"today_logs"`
}
