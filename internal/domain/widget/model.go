package widget

import (
	"time"

	"gorm.io/datatypes"
)

const (
	DefaultCategory     = "basic"
	DefaultIconColor    = "#2196F3"
	DefaultDisplayOrder = 999
)

// Types lists the widget types the builder can render.
var Types = []string{
	"text", "textarea", "email", "password", "number", "tel", "url",
	"select", "multiselect", "radio", "checkbox", "toggle",
	"date", "datetime", "time", "range", "color",
	"file", "image", "signature", "rating", "matrix",
}

var CategoryNames = map[string]string{
	"basic":     "ویجت‌های پایه",
	"advanced":  "ویجت‌های پیشرفته",
	"custom":    "ویجت‌های سفارشی",
	"input":     "فیلدهای ورودی",
	"selection": "فیلدهای انتخابی",
	"media":     "رسانه و فایل",
	"layout":    "چیدمان و ساختار",
}

var SortColumns = map[string]string{
	"display_order": "display_order ASC, id ASC",
	"usage_count":   "usage_count DESC, display_order ASC",
	"persian_label": "persian_label ASC",
}

type Widget struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	WidgetType         string         `gorm:"size:50;not null" json:"widget_type"`
	WidgetCode         string         `gorm:"size:100;not null;uniqueIndex" json:"widget_code"`
	WidgetCategory     string         `gorm:"size:50;not null;default:basic" json:"widget_category"`
	PersianLabel       string         `gorm:"size:255;not null" json:"persian_label"`
	EnglishLabel       *string        `gorm:"size:255" json:"english_label"`
	PersianDescription *string        `gorm:"type:text" json:"persian_description"`
	EnglishDescription *string        `gorm:"type:text" json:"english_description"`
	WidgetConfig       datatypes.JSON `gorm:"type:jsonb;not null" json:"widget_config" swaggertype:"object"`
	ValidationRules    datatypes.JSON `gorm:"type:jsonb" json:"validation_rules" swaggertype:"object"`
	DefaultProps       datatypes.JSON `gorm:"type:jsonb" json:"default_props" swaggertype:"object"`
	IconName           *string        `gorm:"size:100" json:"icon_name"`
	IconColor          string         `gorm:"size:7;not null;default:#2196F3" json:"icon_color"`
	// No gorm default on these two: gorm would write it in place of 0 and false.
	DisplayOrder       int            `gorm:"not null" json:"display_order"`
	IsPro              bool           `gorm:"not null;default:false" json:"is_pro"`
	IsActive           bool           `gorm:"not null" json:"is_active"`
	MinVersion         string         `gorm:"size:20;not null;default:1.0" json:"min_version"`
	UsageCount         int            `gorm:"not null;default:0" json:"usage_count"`
	LastUsedAt         *time.Time     `json:"last_used_at"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

func (Widget) TableName() string {
	return "form_widgets"
}
