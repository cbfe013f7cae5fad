package widget

import "github.com/linskybing/formbuilder-go/pkg/jsonval"

type CreateWidgetInput struct {
	WidgetType         string         `json:"widget_type" yaml:"widget_type" example:"text"`
	WidgetCode         string         `json:"widget_code" yaml:"widget_code" example:"short_text"`
	WidgetCategory     string         `json:"widget_category" yaml:"widget_category" example:"basic"`
	PersianLabel       string         `json:"persian_label" yaml:"persian_label" example:"متن کوتاه"`
	EnglishLabel       *string        `json:"english_label" yaml:"english_label"`
	PersianDescription *string        `json:"persian_description" yaml:"persian_description"`
	EnglishDescription *string        `json:"english_description" yaml:"english_description"`
	WidgetConfig       *jsonval.Value `json:"widget_config" yaml:"-" swaggertype:"object"`
	ValidationRules    *jsonval.Value `json:"validation_rules" yaml:"-" swaggertype:"object"`
	DefaultProps       *jsonval.Value `json:"default_props" yaml:"-" swaggertype:"object"`
	IconName           *string        `json:"icon_name" yaml:"icon_name"`
	IconColor          string         `json:"icon_color" yaml:"icon_color" example:"#2196F3"`
	DisplayOrder       *int           `json:"display_order" yaml:"display_order"`
	IsPro              bool           `json:"is_pro" yaml:"is_pro"`
	IsActive           *bool          `json:"is_active" yaml:"is_active"`
	MinVersion         string         `json:"min_version" yaml:"min_version"`
}

type LibraryFilter struct {
	Category   string
	ActiveOnly bool
	SortBy     string
	Limit      int
}

type Library struct {
	Widgets            []Widget            `json:"widgets"`
	CategorizedWidgets map[string][]Widget `json:"categorized_widgets"`
	TotalCount         int                 `json:"total_count"`
	Categories         []string            `json:"categories"`
	CategoryNames      map[string]string   `json:"category_names"`
	FiltersApplied     LibraryFilters      `json:"filters_applied"`
}

type LibraryFilters struct {
	Category   string `json:"category"`
	ActiveOnly bool   `json:"active_only"`
	SortBy     string `json:"sort_by"`
	Limit      int    `json:"limit"`
}

type UsageInput struct {
	WidgetType string `json:"widget_type" binding:"required" example:"text"`
}
