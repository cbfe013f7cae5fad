package repository

import (
	"context"
	"time"

	"github.com/linskybing/formbuilder-go/internal/domain/widget"
	"gorm.io/gorm"
)

type WidgetRepo interface {
	CreateWidget(ctx context.Context, w *widget.Widget) error
	GetWidgetByID(ctx context.Context, id uint) (widget.Widget, error)
	GetWidgetByCode(ctx context.Context, code string) (widget.Widget, error)
	CodeExists(ctx context.Context, code string) (bool, error)
	ListLibrary(ctx context.Context, filter widget.LibraryFilter) ([]widget.Widget, error)
	ListPopular(ctx context.Context, limit int) ([]widget.Widget, error)
	UpdateWidget(ctx context.Context, id uint, updates map[string]any) error
	IncrementUsage(ctx context.Context, widgetType string, at time.Time) (int64, error)
	WithTx(tx *gorm.DB) WidgetRepo
}

type DBWidgetRepo struct {
	db *gorm.DB
}

func NewWidgetRepo(db *gorm.DB) *DBWidgetRepo {
	return &DBWidgetRepo{
		db: db,
	}
}

func (r *DBWidgetRepo) CreateWidget(ctx context.Context, w *widget.Widget) error {
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *DBWidgetRepo) GetWidgetByID(ctx context.Context, id uint) (widget.Widget, error) {
	var w widget.Widget
	err := r.db.WithContext(ctx).First(&w, id).Error
	return w, err
}

// GetWidgetByCode only finds active widgets.
func (r *DBWidgetRepo) GetWidgetByCode(ctx context.Context, code string) (widget.Widget, error) {
	var w widget.Widget
	err := r.db.WithContext(ctx).Where("widget_code = ? AND is_active = ?", code, true).First(&w).Error
	return w, err
}

func (r *DBWidgetRepo) CodeExists(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&widget.Widget{}).Where("widget_code = ?", code).Count(&count).Error
	return count > 0, err
}

func (r *DBWidgetRepo) ListLibrary(ctx context.Context, filter widget.LibraryFilter) ([]widget.Widget, error) {
	var widgets []widget.Widget

	query := r.db.WithContext(ctx).Model(&widget.Widget{})
	if filter.Category != "" && filter.Category != "all" {
		query = query.Where("widget_category = ?", filter.Category)
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}

	order, ok := widget.SortColumns[filter.SortBy]
	if !ok {
		order = widget.SortColumns["display_order"]
	}
	query = query.Order(order)
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	err := query.Find(&widgets).Error
	return widgets, err
}

func (r *DBWidgetRepo) ListPopular(ctx context.Context, limit int) ([]widget.Widget, error) {
	var widgets []widget.Widget
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND usage_count > 0", true).
		Order("usage_count DESC, last_used_at DESC").
		Limit(limit).
		Find(&widgets).Error
	return widgets, err
}

func (r *DBWidgetRepo) UpdateWidget(ctx context.Context, id uint, updates map[string]any) error {
	res := r.db.WithContext(ctx).Model(&widget.Widget{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// IncrementUsage bumps every active widget of the given type.
func (r *DBWidgetRepo) IncrementUsage(ctx context.Context, widgetType string, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&widget.Widget{}).
		Where("widget_type = ? AND is_active = ?", widgetType, true).
		UpdateColumns(map[string]any{
			"usage_count":  gorm.Expr("usage_count + 1"),
			"last_used_at": at,
		})
	return res.RowsAffected, res.Error
}

func (r *DBWidgetRepo) WithTx(tx *gorm.DB) WidgetRepo {
	if tx == nil {
		return r
	}
	return &DBWidgetRepo{
		db: tx,
	}
}
