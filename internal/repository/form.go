package repository

import (
	"context"
	"time"

	"github.com/linskybing/formbuilder-go/internal/domain/form"
	"gorm.io/gorm"
)

type FormRepo interface {
	CreateForm(ctx context.Context, f *form.Form) error
	GetFormByID(ctx context.Context, id uint) (form.Form, error)
	GetFormDetail(ctx context.Context, id uint) (form.Detail, error)
	UpdateForm(ctx context.Context, id uint, updates map[string]any) error
	SoftDeleteForm(ctx context.Context, id, actorID uint) (int64, error)
	ListFormsByUser(ctx context.Context, userID uint, filter form.ListFilter, limit, offset int) ([]form.Form, int64, error)
	ListPublicForms(ctx context.Context, search string, now time.Time, limit, offset int) ([]form.Detail, int64, error)
	PublishForm(ctx context.Context, id uint, at time.Time) error
	IncrementViewCount(ctx context.Context, id uint) (int64, error)
	IncrementResponseCount(ctx context.Context, id uint) error
	GetFormStats(ctx context.Context, id uint) (form.Stats, error)
	WithTx(tx *gorm.DB) FormRepo
}

type DBFormRepo struct {
	db *gorm.DB
}

func NewFormRepo(db *gorm.DB) *DBFormRepo {
	return &DBFormRepo{
		db: db,
	}
}

func (r *DBFormRepo) CreateForm(ctx context.Context, f *form.Form) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *DBFormRepo) GetFormByID(ctx context.Context, id uint) (form.Form, error) {
	var f form.Form
	err := r.db.WithContext(ctx).First(&f, id).Error
	return f, err
}

func (r *DBFormRepo) GetFormDetail(ctx context.Context, id uint) (form.Detail, error) {
	var d form.Detail
	res := r.db.WithContext(ctx).Table("forms f").
		Select("f.*, u.persian_name AS creator_name, u.email AS creator_email").
		Joins("LEFT JOIN users u ON u.id = f.user_id").
		Where("f.id = ? AND f.deleted_at IS NULL", id).
		Scan(&d)
	if res.Error != nil {
		return d, res.Error
	}
	if res.RowsAffected == 0 {
		return d, gorm.ErrRecordNotFound
	}
	return d, nil
}

// UpdateForm writes already-filtered columns. Soft-deleted rows are not touched.
func (r *DBFormRepo) UpdateForm(ctx context.Context, id uint, updates map[string]any) error {
	res := r.db.WithContext(ctx).Model(&form.Form{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *DBFormRepo) SoftDeleteForm(ctx context.Context, id, actorID uint) (int64, error) {
	res := r.db.WithContext(ctx).Model(&form.Form{}).
		Where("id = ? AND user_id = ?", id, actorID).
		Updates(map[string]any{
			"deleted_at": time.Now(),
			"deleted_by": actorID,
			"status":     form.StatusArchived,
		})
	return res.RowsAffected, res.Error
}

func (r *DBFormRepo) ListFormsByUser(ctx context.Context, userID uint, filter form.ListFilter, limit, offset int) ([]form.Form, int64, error) {
	var (
		forms []form.Form
		total int64
	)

	query := r.db.WithContext(ctx).Model(&form.Form{}).Where("user_id = ?", userID)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("(persian_title ILIKE ? OR english_title ILIKE ?)", like, like)
	}
	if filter.IsPublic != nil {
		query = query.Where("is_public = ?", *filter.IsPublic)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&forms).Error
	return forms, total, err
}

func (r *DBFormRepo) ListPublicForms(ctx context.Context, search string, now time.Time, limit, offset int) ([]form.Detail, int64, error) {
	var (
		forms []form.Detail
		total int64
	)

	query := r.db.WithContext(ctx).Table("forms f").
		Joins("LEFT JOIN users u ON u.id = f.user_id").
		Where("f.deleted_at IS NULL AND f.is_public = ? AND f.status = ?", true, form.StatusPublished).
		Where("(f.expires_at IS NULL OR f.expires_at > ?)", now)
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("(f.persian_title ILIKE ? OR f.persian_description ILIKE ?)", like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Select("f.*, u.persian_name AS creator_name, u.email AS creator_email").
		Order("f.published_at DESC").
		Limit(limit).Offset(offset).
		Scan(&forms).Error
	return forms, total, err
}

func (r *DBFormRepo) PublishForm(ctx context.Context, id uint, at time.Time) error {
	return r.UpdateForm(ctx, id, map[string]any{
		"status":       form.StatusPublished,
		"published_at": at,
	})
}

func (r *DBFormRepo) IncrementViewCount(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Model(&form.Form{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1"))
	return res.RowsAffected, res.Error
}

func (r *DBFormRepo) IncrementResponseCount(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&form.Form{}).
		Where("id = ?", id).
		UpdateColumn("response_count", gorm.Expr("response_count + 1")).Error
}

func (r *DBFormRepo) GetFormStats(ctx context.Context, id uint) (form.Stats, error) {
	var stats form.Stats
	err := r.db.WithContext(ctx).Table("form_responses").
		Select(`
			COUNT(*) AS total_responses,
			COUNT(*) FILTER (WHERE status = 'submitted') AS submitted_count,
			COUNT(*) FILTER (WHERE status = 'reviewed') AS reviewed_count,
			ROUND(AVG(quality_score)::numeric, 2) AS avg_quality_score,
			ROUND(AVG(completion_time)::numeric, 2) AS avg_completion_time
		`).
		Where("form_id = ? AND deleted_at IS NULL", id).
		Scan(&stats).Error
	return stats, err
}

func (r *DBFormRepo) WithTx(tx *gorm.DB) FormRepo {
	if tx == nil {
		return r
	}
	return &DBFormRepo{
		db: tx,
	}
}
