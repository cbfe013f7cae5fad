package application

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/linskybing/formbuilder-go/internal/domain/widget"
	"github.com/linskybing/formbuilder-go/internal/repository"
	"github.com/linskybing/formbuilder-go/pkg/apperr"
	"github.com/linskybing/formbuilder-go/pkg/patch"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	categoryWidgets = "WIDGET_LIBRARY"

	defaultPopularLimit = 10
	maxPopularLimit     = 100

	msgWidgetNotFound  = "ویجت موردنظر یافت نشد"
	msgWidgetCodeTaken = "این کد ویجت قبلاً استفاده شده است"
	msgWidgetColor     = "رنگ آیکون باید در فرمت hex معتبر باشد"
	msgWidgetLabelLen  = "برچسب فارسی باید حداقل 2 کاراکتر باشد"
)

var (
	msgWidgetCodeLen     = msgTooLong("کد ویجت", maxWidgetCodeLen)
	msgWidgetCategoryLen = msgTooLong("دسته ویجت", maxWidgetKeyLen)
	msgWidgetLabelMax    = msgTooLong("برچسب فارسی", maxTextLen)
	msgWidgetEnLabelMax  = msgTooLong("برچسب انگلیسی", maxTextLen)
	msgIconNameLen       = msgTooLong("نام آیکون", maxIconNameLen)
	msgMinVersionLen     = msgTooLong("حداقل نسخه", maxVersionLen)
	msgDisplayOrder      = msgOutOfRange("ترتیب نمایش", -maxInt-1, maxInt)
)

var (
	widgetCodePattern  = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
	widgetColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
)

// widgetPatch omits widget_code and widget_type, which never change.
var widgetPatch = patch.NewSchema(map[string]patch.Field{
	"widget_category":     {Type: patch.String, Validate: patch.MaxLen(maxWidgetKeyLen, msgWidgetCategoryLen)},
	"persian_label":       {Type: patch.String, Validate: patch.All(patch.MinLen(2, msgWidgetLabelLen), patch.MaxLen(maxTextLen, msgWidgetLabelMax))},
	"english_label":       {Type: patch.NullableString, Validate: patch.MaxLen(maxTextLen, msgWidgetEnLabelMax)},
	"persian_description": {Type: patch.NullableString},
	"english_description": {Type: patch.NullableString},
	"widget_config":       {Type: patch.JSONContainer},
	"validation_rules":    {Type: patch.JSON},
	"default_props":       {Type: patch.JSON},
	"icon_name":           {Type: patch.NullableString, Validate: patch.MaxLen(maxIconNameLen, msgIconNameLen)},
	"icon_color":          {Type: patch.String, Validate: patch.Match(widgetColorPattern, msgWidgetColor)},
	"display_order":       {Type: patch.Int, Validate: patch.Between(-maxInt-1, maxInt, msgDisplayOrder)},
	"is_pro":              {Type: patch.Bool},
	"is_active":           {Type: patch.Bool},
	"min_version":         {Type: patch.String, Validate: patch.MaxLen(maxVersionLen, msgMinVersionLen)},
})

type WidgetService struct {
	Repos  *repository.Repos
	audit  Auditor
	logger *zap.Logger
	fail   failures
	now    func() time.Time
}

func NewWidgetService(repos *repository.Repos, audit Auditor, logger *zap.Logger) *WidgetService {
	return &WidgetService{
		Repos:  repos,
		audit:  audit,
		logger: nopIfNil(logger),
		fail:   newFailures(logger, audit, categoryWidgets),
		now:    time.Now,
	}
}

func validateWidgetInput(in widget.CreateWidgetInput) []string {
	var errs []string
	if in.WidgetType == "" {
		errs = append(errs, "نوع ویجت الزامی است")
	} else if !slices.Contains(widget.Types, in.WidgetType) {
		errs = append(errs, "نوع ویجت نامعتبر است")
	}
	if in.WidgetCode == "" {
		errs = append(errs, "کد ویجت الزامی است")
	} else if tooLong(in.WidgetCode, maxWidgetCodeLen) {
		errs = append(errs, msgWidgetCodeLen)
	} else if !widgetCodePattern.MatchString(in.WidgetCode) {
		errs = append(errs, "فرمت کد ویجت نامعتبر است (فقط حروف کوچک، اعداد و _)")
	}
	if tooLong(in.WidgetCategory, maxWidgetKeyLen) {
		errs = append(errs, msgWidgetCategoryLen)
	}
	label := strings.TrimSpace(in.PersianLabel)
	if label == "" {
		errs = append(errs, "برچسب فارسی الزامی است")
	} else if utf8.RuneCountInString(label) < 2 {
		errs = append(errs, msgWidgetLabelLen)
	} else if tooLong(label, maxTextLen) {
		errs = append(errs, msgWidgetLabelMax)
	}
	if tooLongPtr(in.EnglishLabel, maxTextLen) {
		errs = append(errs, msgWidgetEnLabelMax)
	}
	if tooLongPtr(in.IconName, maxIconNameLen) {
		errs = append(errs, msgIconNameLen)
	}
	if tooLong(in.MinVersion, maxVersionLen) {
		errs = append(errs, msgMinVersionLen)
	}
	if in.DisplayOrder != nil && (*in.DisplayOrder < -maxInt-1 || *in.DisplayOrder > maxInt) {
		errs = append(errs, msgDisplayOrder)
	}
	if in.WidgetConfig == nil || in.WidgetConfig.IsZero() {
		errs = append(errs, "تنظیمات ویجت الزامی است")
	} else if !in.WidgetConfig.IsContainer() {
		errs = append(errs, "تنظیمات ویجت باید آرایه باشد")
	}
	if in.IconColor != "" && !widgetColorPattern.MatchString(in.IconColor) {
		errs = append(errs, msgWidgetColor)
	}
	return errs
}

func (s *WidgetService) CreateWidget(ctx context.Context, in widget.CreateWidgetInput) (widget.Widget, error) {
	if errs := validateWidgetInput(in); len(errs) > 0 {
		return widget.Widget{}, apperr.Validation(msgInvalidInput, errs...)
	}

	taken, err := s.Repos.Widget.CodeExists(ctx, in.WidgetCode)
	if err != nil {
		return widget.Widget{}, s.fail.internal(ctx, err, "check widget code", zap.String("widget_code", in.WidgetCode))
	}
	if taken {
		return widget.Widget{}, apperr.Validation(msgWidgetCodeTaken, msgWidgetCodeTaken)
	}

	w := widget.Widget{
		WidgetType:         in.WidgetType,
		WidgetCode:         in.WidgetCode,
		WidgetCategory:     widget.DefaultCategory,
		PersianLabel:       strings.TrimSpace(in.PersianLabel),
		EnglishLabel:       in.EnglishLabel,
		PersianDescription: in.PersianDescription,
		EnglishDescription: in.EnglishDescription,
		WidgetConfig:       in.WidgetConfig.Column(),
		IconName:           in.IconName,
		IconColor:          widget.DefaultIconColor,
		DisplayOrder:       widget.DefaultDisplayOrder,
		IsPro:              in.IsPro,
		IsActive:           true,
		MinVersion:         "1.0",
	}
	if in.WidgetCategory != "" {
		w.WidgetCategory = in.WidgetCategory
	}
	if in.ValidationRules != nil {
		w.ValidationRules = in.ValidationRules.Column()
	}
	if in.DefaultProps != nil {
		w.DefaultProps = in.DefaultProps.Column()
	}
	if in.IconColor != "" {
		w.IconColor = in.IconColor
	}
	if in.DisplayOrder != nil {
		w.DisplayOrder = *in.DisplayOrder
	}
	if in.IsActive != nil {
		w.IsActive = *in.IsActive
	}
	if in.MinVersion != "" {
		w.MinVersion = in.MinVersion
	}

	if err := s.Repos.Widget.CreateWidget(ctx, &w); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return widget.Widget{}, apperr.Validation(msgWidgetCodeTaken, msgWidgetCodeTaken)
		}
		return widget.Widget{}, s.fail.internal(ctx, err, "create widget", zap.String("widget_code", in.WidgetCode))
	}

	s.audit.Info(ctx, categoryWidgets, "ویجت جدید ایجاد شد", map[string]any{
		"widget_id":   w.ID,
		"widget_code": w.WidgetCode,
		"widget_type": w.WidgetType,
	})
	return w, nil
}

func (s *WidgetService) UpdateWidget(ctx context.Context, id uint, raw map[string]json.RawMessage) (widget.Widget, error) {
	if _, err := s.Repos.Widget.GetWidgetByID(ctx, id); err != nil {
		return widget.Widget{}, s.fail.db(ctx, err, ErrWidgetNotFound, "load widget", zap.Uint("widget_id", id))
	}

	res, err := widgetPatch.Apply(raw)
	if err != nil {
		return widget.Widget{}, patchError(err)
	}
	if err := s.Repos.Widget.UpdateWidget(ctx, id, res.Updates); err != nil {
		return widget.Widget{}, s.fail.db(ctx, err, ErrWidgetNotFound, "update widget", zap.Uint("widget_id", id))
	}

	s.audit.Info(ctx, categoryWidgets, "ویجت بروزرسانی شد", map[string]any{
		"widget_id":      id,
		"updated_fields": res.Applied,
	})

	w, err := s.Repos.Widget.GetWidgetByID(ctx, id)
	if err != nil {
		return w, s.fail.db(ctx, err, ErrWidgetNotFound, "reload widget", zap.Uint("widget_id", id))
	}
	return w, nil
}

func (s *WidgetService) GetByCode(ctx context.Context, code string) (widget.Widget, error) {
	if strings.TrimSpace(code) == "" {
		return widget.Widget{}, apperr.BadRequest("کد ویجت الزامی است")
	}
	w, err := s.Repos.Widget.GetWidgetByCode(ctx, code)
	if err != nil {
		return w, s.fail.db(ctx, err, ErrWidgetNotFound, "get widget by code", zap.String("widget_code", code))
	}
	return w, nil
}

// Library lists widgets and groups them by category in first-seen order.
func (s *WidgetService) Library(ctx context.Context, filter widget.LibraryFilter) (widget.Library, error) {
	if filter.Category == "" {
		filter.Category = "all"
	}
	if _, ok := widget.SortColumns[filter.SortBy]; !ok {
		filter.SortBy = "display_order"
	}

	widgets, err := s.Repos.Widget.ListLibrary(ctx, filter)
	if err != nil {
		return widget.Library{}, s.fail.internal(ctx, err, "widget library")
	}
	if len(widgets) == 0 {
		widgets = []widget.Widget{}
		s.audit.Warning(ctx, categoryWidgets, "هیچ ویجتی یافت نشد", map[string]any{
			"category":    filter.Category,
			"active_only": filter.ActiveOnly,
		})
	}

	grouped := map[string][]widget.Widget{}
	categories := []string{}
	for _, w := range widgets {
		cat := w.WidgetCategory
		if cat == "" {
			cat = widget.DefaultCategory
		}
		if _, seen := grouped[cat]; !seen {
			categories = append(categories, cat)
		}
		grouped[cat] = append(grouped[cat], w)
	}

	return widget.Library{
		Widgets:            widgets,
		CategorizedWidgets: grouped,
		TotalCount:         len(widgets),
		Categories:         categories,
		CategoryNames:      widget.CategoryNames,
		FiltersApplied: widget.LibraryFilters{
			Category:   filter.Category,
			ActiveOnly: filter.ActiveOnly,
			SortBy:     filter.SortBy,
			Limit:      filter.Limit,
		},
	}, nil
}

func (s *WidgetService) Popular(ctx context.Context, limit int) ([]widget.Widget, error) {
	if limit < 1 {
		limit = defaultPopularLimit
	}
	if limit > maxPopularLimit {
		limit = maxPopularLimit
	}
	widgets, err := s.Repos.Widget.ListPopular(ctx, limit)
	if err != nil {
		return nil, s.fail.internal(ctx, err, "popular widgets")
	}
	if widgets == nil {
		widgets = []widget.Widget{}
	}
	return widgets, nil
}

type UsageResult struct {
	WidgetType string `json:"widget_type"`
	Updated    int64  `json:"updated"`
}

func (s *WidgetService) IncrementUsage(ctx context.Context, widgetType string) (UsageResult, error) {
	if !slices.Contains(widget.Types, widgetType) {
		return UsageResult{}, apperr.Validation("نوع ویجت نامعتبر است")
	}
	n, err := s.Repos.Widget.IncrementUsage(ctx, widgetType, s.now())
	if err != nil {
		return UsageResult{}, s.fail.internal(ctx, err, "increment widget usage", zap.String("widget_type", widgetType))
	}
	return UsageResult{WidgetType: widgetType, Updated: n}, nil
}
