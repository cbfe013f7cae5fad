package repository

import (
	"context"
	"time"

	"github.com/linskybing/formbuilder-go/internal/domain/formresponse"
	"gorm.io/gorm"
)

const detailColumns = `r.*, f.persian_title AS form_title, f.user_id AS form_owner_id,
	u.persian_name AS respondent_name, u.email AS respondent_email`

type FormResponseRepo interface {
	CreateResponse(ctx context.Context, resp *formresponse.FormResponse) error
	GetResponseDetail(ctx context.Context, id uint) (formresponse.Detail, error)
	HashExists(ctx context.Context, formID uint, hash string) (bool, error)
	ListResponsesByForm(ctx context.Context, formID uint, filter formresponse.ListFilter, limit, offset int) ([]formresponse.Detail, int64, error)
	ListAllByForm(ctx context.Context, formID uint) ([]formresponse.FormResponse, error)
	UpdateResponse(ctx context.Context, id uint, updates map[string]any) error
	SoftDeleteResponse(ctx context.Context, id, actorID uint) (int64, error)
	GetResponseStats(ctx context.Context, formID uint) (formresponse.Stats, error)
	SearchResponses(ctx context.Context, formID uint, term string, limit int) ([]formresponse.Detail, error)
	WithTx(tx *gorm.DB) FormResponseRepo
}

type DBFormResponseRepo struct {
	db *gorm.DB
}

func NewFormResponseRepo(db *gorm.DB) *DBFormResponseRepo {
	return &DBFormResponseRepo{
		db: db,
	}
}

func (r *DBFormResponseRepo) detailQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table("form_responses r").
		Joins("JOIN forms f ON f.id = r.form_id").
		Joins("LEFT JOIN users u ON u.id = r.respondent_user_id").
		Where("r.deleted_at IS NULL")
}

func (r *DBFormResponseRepo) CreateResponse(ctx context.Context, resp *formresponse.FormResponse) error {
	return r.db.WithContext(ctx).Create(resp).Error
}

func (r *DBFormResponseRepo) GetResponseDetail(ctx context.Context, id uint) (formresponse.Detail, error) {
	var d formresponse.Detail
	res := r.detailQuery(ctx).Select(detailColumns).Where("r.id = ?", id).Scan(&d)
	if res.Error != nil {
		return d, res.Error
	}
	if res.RowsAffected == 0 {
		return d, gorm.ErrRecordNotFound
	}
	return d, nil
}

func (r *DBFormResponseRepo) HashExists(ctx context.Context, formID uint, hash string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&formresponse.FormResponse{}).
		Where("form_id = ? AND response_hash = ?", formID, hash).
		Count(&count).Error
	return count > 0, err
}

func (r *DBFormResponseRepo) ListResponsesByForm(ctx context.Context, formID uint, filter formresponse.ListFilter, limit, offset int) ([]formresponse.Detail, int64, error) {
	var (
		rows  []formresponse.Detail
		total int64
	)

	query := r.detailQuery(ctx).Where("r.form_id = ?", formID)
	if filter.Status != "" {
		query = query.Where("r.status = ?", filter.Status)
	}
	if filter.DateFrom != nil {
		query = query.Where("r.submitted_at >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("r.submitted_at <= ?", *filter.DateTo)
	}
	if filter.IsVerified != nil {
		query = query.Where("r.is_verified = ?", *filter.IsVerified)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Select(detailColumns).
		Order("r.submitted_at DESC").
		Limit(limit).Offset(offset).
		Scan(&rows).Error
	return rows, total, err
}

func (r *DBFormResponseRepo) ListAllByForm(ctx context.Context, formID uint) ([]formresponse.FormResponse, error) {
	var rows []formresponse.FormResponse
	err := r.db.WithContext(ctx).
		Where("form_id = ?", formID).
		Order("submitted_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *DBFormResponseRepo) UpdateResponse(ctx context.Context, id uint, updates map[string]any) error {
	res := r.db.WithContext(ctx).Model(&formresponse.FormResponse{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *DBFormResponseRepo) SoftDeleteResponse(ctx context.Context, id, actorID uint) (int64, error) {
	res := r.db.WithContext(ctx).Model(&formresponse.FormResponse{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"deleted_at": time.Now(),
			"deleted_by": actorID,
		})
	return res.RowsAffected, res.Error
}

func (r *DBFormResponseRepo) GetResponseStats(ctx context.Context, formID uint) (formresponse.Stats, error) {
	var stats formresponse.Stats
	err := r.db.WithContext(ctx).Table("form_responses").
		Select(`
			COUNT(*) AS total_responses,
			COUNT(*) FILTER (WHERE status = 'submitted') AS submitted_count,
			COUNT(*) FILTER (WHERE status = 'reviewed') AS reviewed_count,
			COUNT(*) FILTER (WHERE status = 'approved') AS approved_count,
			COUNT(*) FILTER (WHERE status = 'rejected') AS rejected_count,
			COUNT(*) FILTER (WHERE status = 'flagged') AS flagged_count,
			COUNT(*) FILTER (WHERE is_verified) AS verified_count,
			COALESCE(ROUND(AVG(quality_score)::numeric, 2), 0) AS avg_quality_score,
			COALESCE(ROUND(AVG(completion_time)::numeric, 2), 0) AS avg_completion_time,
			COALESCE(ROUND(AVG(completeness_percent)::numeric, 2), 0) AS avg_completeness,
			MIN(submitted_at) AS first_response_at,
			MAX(submitted_at) AS last_response_at
		`).
		Where("form_id = ? AND deleted_at IS NULL", formID).
		Scan(&stats).Error
	return stats, err
}

// SearchResponses matches the payload text, respondent name or IP.
func (r *DBFormResponseRepo) SearchResponses(ctx context.Context, formID uint, term string, limit int) ([]formresponse.Detail, error) {
	var rows []formresponse.Detail
	like := "%" + term + "%"
	err := r.detailQuery(ctx).
		Select(detailColumns).
		Where("r.form_id = ?", formID).
		Where("(r.response_data::text ILIKE ? OR u.persian_name ILIKE ? OR r.respondent_ip ILIKE ?)", like, like, like).
		Order("r.submitted_at DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *DBFormResponseRepo) WithTx(tx *gorm.DB) FormResponseRepo {
	if tx == nil {
		return r
	}
	return &DBFormResponseRepo{
		db: tx,
	}
}
