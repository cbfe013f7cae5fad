package application

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/linskybing/formbuilder-go/internal/domain/formresponse"
	"github.com/linskybing/formbuilder-go/internal/repository"
	"github.com/linskybing/formbuilder-go/pkg/apperr"
	"github.com/linskybing/formbuilder-go/pkg/jsonval"
	"github.com/linskybing/formbuilder-go/pkg/pagination"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	searchResultLimit = 100

	msgResponseNotFound  = "پاسخ موردنظر یافت نشد"
	msgResponseDenied    = "شما مجوز دسترسی به این پاسخ را ندارید"
	msgResponseStatus    = "وضعیت پاسخ نامعتبر است"
	msgScoreRange        = "امتیاز باید بین ۰ تا ۱۰ باشد"
	msgSearchTerm        = "عبارت جستجو الزامی است"
	msgStorageDisabled   = "سرویس ذخیره‌سازی فعال نیست"
	msgResponseDataShape = "داده‌های پاسخ باید آرایه باشد"
	msgRespondentMissing = "کاربر پاسخ‌دهنده یافت نشد"
)

var (
	msgSessionTooLong  = msgTooLong("شناسه نشست", maxSessionIDLen)
	msgTimezoneTooLong = msgTooLong("منطقه زمانی", maxTimezoneLen)
)

// ObjectStore is where response exports are written.
type ObjectStore interface {
	PutObject(ctx context.Context, name string, data []byte, contentType string) error
	PresignedGetURL(ctx context.Context, name string) (string, error)
}

type FormResponseService struct {
	Repos  *repository.Repos
	audit  Auditor
	store  ObjectStore
	logger *zap.Logger
	fail   failures
	now    func() time.Time
	newID  func() string
}

// NewFormResponseService builds the service. store may be nil, which
// disables exports.
func NewFormResponseService(repos *repository.Repos, audit Auditor, store ObjectStore, logger *zap.Logger) *FormResponseService {
	return &FormResponseService{
		Repos:  repos,
		audit:  audit,
		store:  store,
		logger: nopIfNil(logger),
		fail:   newFailures(logger, audit, categoryForms),
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// ResponseHash is the hex sha256 of the canonical encoding of data.
func ResponseHash(data jsonval.Value) (string, error) {
	canonical, err := data.Canonical()
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

// Completeness is the share of filled answers, in percent with two decimals.
// null, "" and [] count as unanswered.
func Completeness(data jsonval.Value) float64 {
	decoded, err := data.Interface()
	if err != nil {
		return 0
	}

	var values []any
	switch v := decoded.(type) {
	case map[string]any:
		for _, val := range v {
			values = append(values, val)
		}
	case []any:
		values = v
	default:
		return 0
	}
	if len(values) == 0 {
		return 0
	}

	filled := 0
	for _, val := range values {
		switch x := val.(type) {
		case nil:
		case string:
			if x != "" {
				filled++
			}
		case []any:
			if len(x) > 0 {
				filled++
			}
		default:
			filled++
		}
	}
	return math.Round(float64(filled)/float64(len(values))*10000) / 100
}

// completionSeconds is the time between start and submit. A start reported in
// the future counts as zero and the result fits an INTEGER column.
func completionSeconds(started, submitted time.Time) int {
	secs := submitted.Sub(started).Seconds()
	switch {
	case secs <= 0:
		return 0
	case secs >= maxInt:
		return maxInt
	}
	return int(secs)
}

func (s *FormResponseService) Submit(ctx context.Context, in formresponse.SubmitInput) (formresponse.SubmitResult, error) {
	var errs []string
	if in.FormID == 0 {
		errs = append(errs, "شناسه فرم الزامی است")
	}
	if in.ResponseData == nil || in.ResponseData.IsZero() {
		errs = append(errs, "داده‌های پاسخ الزامی است")
	} else if !in.ResponseData.IsContainer() {
		errs = append(errs, msgResponseDataShape)
	}
	if tooLong(in.SessionID, maxSessionIDLen) {
		errs = append(errs, msgSessionTooLong)
	}
	if tooLong(in.Timezone, maxTimezoneLen) {
		errs = append(errs, msgTimezoneTooLong)
	}
	if in.RespondentUserID != nil && *in.RespondentUserID == 0 {
		errs = append(errs, msgRespondentMissing)
	}
	if len(errs) > 0 {
		return formresponse.SubmitResult{}, apperr.Validation(msgInvalidInput, errs...)
	}

	f, err := s.Repos.Form.GetFormByID(ctx, in.FormID)
	if err != nil {
		return formresponse.SubmitResult{}, s.fail.db(ctx, err, ErrFormNotFound, "load form for response", zap.Uint("form_id", in.FormID))
	}
	if in.RespondentUserID != nil {
		if _, err := s.Repos.User.GetUserByID(ctx, *in.RespondentUserID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return formresponse.SubmitResult{}, apperr.Validation(msgInvalidInput, msgRespondentMissing)
			}
			return formresponse.SubmitResult{}, s.fail.internal(ctx, err, "load respondent", zap.Uint("user_id", *in.RespondentUserID))
		}
	}

	hash, err := ResponseHash(*in.ResponseData)
	if err != nil {
		return formresponse.SubmitResult{}, apperr.Validation(msgInvalidInput, msgResponseDataShape)
	}

	submittedAt := s.now()
	resp := formresponse.FormResponse{
		FormID:              f.ID,
		RespondentUserID:    in.RespondentUserID,
		ResponseData:        in.ResponseData.Column(),
		ResponseHash:        hash,
		FormVersion:         f.Version,
		SessionID:           in.SessionID,
		RespondentIP:        in.RespondentIP,
		UserAgent:           in.UserAgent,
		StartedAt:           in.StartedAt,
		SubmittedAt:         submittedAt,
		Timezone:            in.Timezone,
		Status:              formresponse.StatusSubmitted,
		CompletenessPercent: Completeness(*in.ResponseData),
	}
	if resp.SessionID == "" {
		resp.SessionID = s.newID()
	}
	if resp.Timezone == "" {
		resp.Timezone = submittedAt.Location().String()
	}
	if in.DeviceInfo != nil && !in.DeviceInfo.IsZero() {
		resp.DeviceInfo = in.DeviceInfo.Column()
	}
	if in.StartedAt != nil {
		secs := completionSeconds(*in.StartedAt, submittedAt)
		resp.CompletionTime = &secs
	}

	var duplicate bool
	err = s.Repos.ExecTx(func(r *repository.Repos) error {
		exists, err := r.FormResponse.HashExists(ctx, f.ID, hash)
		if err != nil {
			return err
		}
		if exists {
			duplicate = true
			resp.Status = formresponse.StatusFlagged
		}
		if err := r.FormResponse.CreateResponse(ctx, &resp); err != nil {
			return err
		}
		return r.Form.IncrementResponseCount(ctx, f.ID)
	})
	if err != nil {
		return formresponse.SubmitResult{}, s.fail.internal(ctx, err, "submit response", zap.Uint("form_id", f.ID))
	}

	fields := map[string]any{
		"response_id": resp.ID,
		"form_id":     f.ID,
		"ip":          in.RespondentIP,
	}
	if duplicate {
		s.audit.Warning(ctx, categoryForms, "پاسخ تکراری ثبت و علامت‌گذاری شد", fields)
	} else {
		s.audit.Info(ctx, categoryForms, "پاسخ جدید فرم ثبت شد", fields)
	}

	return formresponse.SubmitResult{
		ResponseID:   resp.ID,
		ResponseHash: hash,
		Duplicate:    duplicate,
	}, nil
}

// ownedResponse loads a response whose parent form belongs to actorID.
func (s *FormResponseService) ownedResponse(ctx context.Context, id, actorID uint) (formresponse.Detail, error) {
	d, err := s.Repos.FormResponse.GetResponseDetail(ctx, id)
	if err != nil {
		return d, s.fail.db(ctx, err, ErrResponseNotFound, "load response", zap.Uint("response_id", id))
	}
	if d.FormOwnerID != actorID {
		return d, ErrResponseDenied
	}
	return d, nil
}

// checkFormOwner verifies actorID owns formID.
func (s *FormResponseService) checkFormOwner(ctx context.Context, formID, actorID uint) error {
	f, err := s.Repos.Form.GetFormByID(ctx, formID)
	if err != nil {
		return s.fail.db(ctx, err, ErrFormNotFound, "load form", zap.Uint("form_id", formID))
	}
	if f.UserID != actorID {
		return ErrResponseDenied
	}
	return nil
}

func (s *FormResponseService) GetResponse(ctx context.Context, id, actorID uint) (formresponse.Detail, error) {
	return s.ownedResponse(ctx, id, actorID)
}

func (s *FormResponseService) ListResponses(ctx context.Context, formID, actorID uint, filter formresponse.ListFilter, p pagination.Params) (formresponse.ListResult, error) {
	if filter.Status != "" && !slices.Contains(formresponse.Statuses, filter.Status) {
		return formresponse.ListResult{}, apperr.Validation(msgResponseStatus)
	}
	if err := s.checkFormOwner(ctx, formID, actorID); err != nil {
		return formresponse.ListResult{}, err
	}

	rows, total, err := s.Repos.FormResponse.ListResponsesByForm(ctx, formID, filter, p.Limit(), p.Offset())
	if err != nil {
		return formresponse.ListResult{}, s.fail.internal(ctx, err, "list responses", zap.Uint("form_id", formID))
	}
	if rows == nil {
		rows = []formresponse.Detail{}
	}
	return formresponse.ListResult{Responses: rows, Pagination: pagination.BuildMeta(total, p)}, nil
}

// UpdateStatus moves a response to any valid status. is_verified follows
// the target status.
func (s *FormResponseService) UpdateStatus(ctx context.Context, in formresponse.StatusInput) (formresponse.Detail, error) {
	if !slices.Contains(formresponse.Statuses, in.Status) {
		return formresponse.Detail{}, apperr.Validation(msgResponseStatus)
	}
	if _, err := s.ownedResponse(ctx, in.ResponseID, in.UserID); err != nil {
		return formresponse.Detail{}, err
	}

	status := formresponse.Status(in.Status)
	err := s.Repos.FormResponse.UpdateResponse(ctx, in.ResponseID, map[string]any{
		"status":       status,
		"reviewed_by":  in.UserID,
		"reviewed_at":  s.now(),
		"review_notes": in.ReviewNotes,
		"is_verified":  status.Verified(),
	})
	if err != nil {
		return formresponse.Detail{}, s.fail.db(ctx, err, ErrResponseNotFound, "update response status", zap.Uint("response_id", in.ResponseID))
	}

	s.audit.Info(ctx, categoryForms, "وضعیت پاسخ فرم بروزرسانی شد", map[string]any{
		"response_id": in.ResponseID,
		"new_status":  in.Status,
		"reviewed_by": in.UserID,
	})
	return s.ownedResponse(ctx, in.ResponseID, in.UserID)
}

func (s *FormResponseService) Rate(ctx context.Context, in formresponse.RateInput) (formresponse.Detail, error) {
	if in.Score == nil || *in.Score < 0 || *in.Score > 10 {
		return formresponse.Detail{}, apperr.Validation(msgScoreRange)
	}
	if _, err := s.ownedResponse(ctx, in.ResponseID, in.UserID); err != nil {
		return formresponse.Detail{}, err
	}

	err := s.Repos.FormResponse.UpdateResponse(ctx, in.ResponseID, map[string]any{
		"quality_score": *in.Score,
		"reviewed_by":   in.UserID,
		"reviewed_at":   s.now(),
	})
	if err != nil {
		return formresponse.Detail{}, s.fail.db(ctx, err, ErrResponseNotFound, "rate response", zap.Uint("response_id", in.ResponseID))
	}

	s.audit.Info(ctx, categoryForms, "پاسخ فرم امتیازدهی شد", map[string]any{
		"response_id":   in.ResponseID,
		"quality_score": *in.Score,
		"reviewed_by":   in.UserID,
	})
	return s.ownedResponse(ctx, in.ResponseID, in.UserID)
}

func (s *FormResponseService) DeleteResponse(ctx context.Context, id, actorID uint) (formresponse.DeleteResult, error) {
	if _, err := s.ownedResponse(ctx, id, actorID); err != nil {
		return formresponse.DeleteResult{}, err
	}

	rows, err := s.Repos.FormResponse.SoftDeleteResponse(ctx, id, actorID)
	if err != nil {
		return formresponse.DeleteResult{}, s.fail.internal(ctx, err, "delete response", zap.Uint("response_id", id))
	}
	if rows == 0 {
		return formresponse.DeleteResult{}, ErrResponseNotFound
	}

	s.audit.Warning(ctx, categoryForms, "پاسخ فرم حذف شد (نرم)", map[string]any{
		"response_id": id,
		"deleted_by":  actorID,
	})
	return formresponse.DeleteResult{ResponseID: id, Deleted: true}, nil
}

func (s *FormResponseService) Stats(ctx context.Context, formID, actorID uint) (formresponse.Stats, error) {
	if err := s.checkFormOwner(ctx, formID, actorID); err != nil {
		return formresponse.Stats{}, err
	}
	stats, err := s.Repos.FormResponse.GetResponseStats(ctx, formID)
	if err != nil {
		return stats, s.fail.internal(ctx, err, "response stats", zap.Uint("form_id", formID))
	}
	return stats, nil
}

func (s *FormResponseService) Search(ctx context.Context, formID, actorID uint, term string) ([]formresponse.Detail, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, apperr.Validation(msgSearchTerm)
	}
	if err := s.checkFormOwner(ctx, formID, actorID); err != nil {
		return nil, err
	}

	rows, err := s.Repos.FormResponse.SearchResponses(ctx, formID, term, searchResultLimit)
	if err != nil {
		return nil, s.fail.internal(ctx, err, "search responses", zap.Uint("form_id", formID))
	}
	if rows == nil {
		rows = []formresponse.Detail{}
	}
	return rows, nil
}

type exportDocument struct {
	FormID     uint                        `json:"form_id"`
	ExportedAt time.Time                   `json:"exported_at"`
	Count      int                         `json:"count"`
	Responses  []formresponse.FormResponse `json:"responses"`
}

// Export writes every live response of a form to object storage and returns
// a presigned download link.
func (s *FormResponseService) Export(ctx context.Context, in formresponse.ExportInput) (formresponse.ExportResult, error) {
	if s.store == nil {
		return formresponse.ExportResult{}, ErrStorageDisabled
	}
	if err := s.checkFormOwner(ctx, in.FormID, in.UserID); err != nil {
		return formresponse.ExportResult{}, err
	}

	rows, err := s.Repos.FormResponse.ListAllByForm(ctx, in.FormID)
	if err != nil {
		return formresponse.ExportResult{}, s.fail.internal(ctx, err, "load responses for export", zap.Uint("form_id", in.FormID))
	}
	if rows == nil {
		rows = []formresponse.FormResponse{}
	}

	data, err := json.Marshal(exportDocument{
		FormID:     in.FormID,
		ExportedAt: s.now(),
		Count:      len(rows),
		Responses:  rows,
	})
	if err != nil {
		return formresponse.ExportResult{}, s.fail.internal(ctx, err, "encode export", zap.Uint("form_id", in.FormID))
	}

	object := fmt.Sprintf("exports/form-%d/%s.json", in.FormID, s.newID())
	if err := s.store.PutObject(ctx, object, data, "application/json"); err != nil {
		return formresponse.ExportResult{}, s.fail.internal(ctx, err, "upload export", zap.String("object", object))
	}
	url, err := s.store.PresignedGetURL(ctx, object)
	if err != nil {
		return formresponse.ExportResult{}, s.fail.internal(ctx, err, "presign export", zap.String("object", object))
	}

	s.audit.Info(ctx, categoryForms, "خروجی پاسخ‌ها ایجاد شد", map[string]any{
		"form_id": in.FormID,
		"user_id": in.UserID,
		"object":  object,
		"count":   len(rows),
	})
	return formresponse.ExportResult{Object: object, URL: url, Count: len(rows)}, nil
}
