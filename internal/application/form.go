package application

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/linskybing/formbuilder-go/internal/domain/form"
	"github.com/linskybing/formbuilder-go/internal/repository"
	"github.com/linskybing/formbuilder-go/pkg/apperr"
	"github.com/linskybing/formbuilder-go/pkg/jsonval"
	"github.com/linskybing/formbuilder-go/pkg/pagination"
	"github.com/linskybing/formbuilder-go/pkg/patch"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	categoryForms = "FORM_BUILDER"

	msgInvalidInput    = "داده‌های ورودی نامعتبر"
	msgTitleTooShort   = "عنوان فرم باید حداقل ۳ کاراکتر باشد"
	msgNoUpdateFields  = "حداقل یک فیلد برای بروزرسانی ضروری است"
	msgOwnerNotFound   = "کاربر موردنظر یافت نشد"
	msgSchemaRequired  = "ساختار فرم الزامی است"
	msgSchemaShape     = "ساختار فرم باید آرایه باشد"
	msgFormStatus      = "وضعیت فرم نامعتبر است"
	msgFormEditDenied  = "شما مجوز ویرایش این فرم را ندارید"
	msgFormDeleteDeny  = "شما مجوز حذف این فرم را ندارید"
	msgFormPublishDeny = "شما مجوز انتشار این فرم را ندارید"
	msgFormStatsDeny   = "شما مجوز مشاهده آمار این فرم را ندارید"
	msgParentNotFound  = "فرم والد یافت نشد"
)

var (
	msgTitleTooLong   = msgTooLong("عنوان فارسی فرم", maxTextLen)
	msgEnTitleTooLong = msgTooLong("عنوان انگلیسی فرم", maxTextLen)
	msgMaxResponses   = msgOutOfRange("حداکثر پاسخ", 0, maxInt)
)

var (
	defaultFormConfig = jsonval.MustFrom(map[string]any{
		"theme":     "default",
		"direction": "rtl",
		"language":  "fa",
	})
	defaultFormSettings = jsonval.MustFrom(map[string]any{
		"allow_multiple_responses": true,
		"require_email":            false,
		"auto_save":                true,
	})
)

// formPatch lists the columns an owner may change. user_id, the counters and
// parent_form_id stay immutable.
var formPatch = patch.NewSchema(map[string]patch.Field{
	"persian_title":       {Type: patch.String, Validate: patch.All(patch.MinLen(3, msgTitleTooShort), patch.MaxLen(maxTextLen, msgTitleTooLong))},
	"english_title":       {Type: patch.NullableString, Validate: patch.MaxLen(maxTextLen, msgEnTitleTooLong)},
	"persian_description": {Type: patch.NullableString},
	"english_description": {Type: patch.NullableString},
	"form_schema":         {Type: patch.JSONContainer},
	"form_config":         {Type: patch.JSON},
	"form_settings":       {Type: patch.JSON},
	"status":              {Type: patch.String, Validate: patch.OneOf(form.Statuses...)},
	"is_public":           {Type: patch.Bool},
	"requires_login":      {Type: patch.Bool},
	"max_responses":       {Type: patch.NullableInt, Validate: patch.Between(0, maxInt, msgMaxResponses)},
	"expires_at":          {Type: patch.NullableTime},
})

type FormService struct {
	Repos  *repository.Repos
	audit  Auditor
	logger *zap.Logger
	fail   failures
	now    func() time.Time
}

func NewFormService(repos *repository.Repos, audit Auditor, logger *zap.Logger) *FormService {
	return &FormService{
		Repos:  repos,
		audit:  audit,
		logger: nopIfNil(logger),
		fail:   newFailures(logger, audit, categoryForms),
		now:    time.Now,
	}
}

func validateFormInput(in form.CreateFormInput) []string {
	var errs []string
	if in.UserID == 0 {
		errs = append(errs, "شناسه کاربر الزامی است")
	}
	title := strings.TrimSpace(in.PersianTitle)
	if title == "" {
		errs = append(errs, "عنوان فارسی فرم الزامی است")
	} else if utf8.RuneCountInString(title) < 3 {
		errs = append(errs, msgTitleTooShort)
	} else if tooLong(title, maxTextLen) {
		errs = append(errs, msgTitleTooLong)
	}
	if tooLongPtr(in.EnglishTitle, maxTextLen) {
		errs = append(errs, msgEnTitleTooLong)
	}
	if in.FormSchema == nil || in.FormSchema.IsZero() {
		errs = append(errs, msgSchemaRequired)
	} else if !in.FormSchema.IsContainer() {
		errs = append(errs, msgSchemaShape)
	}
	if in.Status != "" && !slices.Contains(form.Statuses, in.Status) {
		errs = append(errs, msgFormStatus)
	}
	if in.MaxResponses != nil && (*in.MaxResponses < 0 || *in.MaxResponses > maxInt) {
		errs = append(errs, msgMaxResponses)
	}
	if in.ParentFormID != nil && *in.ParentFormID == 0 {
		errs = append(errs, msgParentNotFound)
	}
	return errs
}

func (s *FormService) CreateForm(ctx context.Context, in form.CreateFormInput) (form.Form, error) {
	var missing []string
	if strings.TrimSpace(in.PersianTitle) == "" {
		missing = append(missing, "persian_title")
	}
	if in.UserID == 0 {
		missing = append(missing, "user_id")
	}
	if len(missing) > 0 {
		s.audit.Warning(ctx, categoryForms, "فیلدهای الزامی مفقود", map[string]any{"missing_fields": missing})
		return form.Form{}, apperr.Validation("فیلدهای الزامی مفقود: "+strings.Join(missing, ", "), missing...)
	}
	if errs := validateFormInput(in); len(errs) > 0 {
		return form.Form{}, apperr.Validation(msgInvalidInput, errs...)
	}

	if _, err := s.Repos.User.GetUserByID(ctx, in.UserID); err != nil {
		return form.Form{}, s.fail.db(ctx, err, ErrOwnerNotFound, "load form owner", zap.Uint("user_id", in.UserID))
	}
	if in.ParentFormID != nil {
		if _, err := s.Repos.Form.GetFormByID(ctx, *in.ParentFormID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return form.Form{}, apperr.Validation(msgInvalidInput, msgParentNotFound)
			}
			return form.Form{}, s.fail.internal(ctx, err, "load parent form", zap.Uint("parent_form_id", *in.ParentFormID))
		}
	}

	f := form.Form{
		UserID:             in.UserID,
		PersianTitle:       strings.TrimSpace(in.PersianTitle),
		EnglishTitle:       in.EnglishTitle,
		PersianDescription: in.PersianDescription,
		EnglishDescription: in.EnglishDescription,
		FormSchema:         in.FormSchema.Column(),
		FormConfig:         defaultFormConfig.Column(),
		FormSettings:       defaultFormSettings.Column(),
		Status:             form.StatusDraft,
		Version:            "1.0",
		IsPublic:           in.IsPublic,
		RequiresLogin:      in.RequiresLogin,
		MaxResponses:       in.MaxResponses,
		ExpiresAt:          in.ExpiresAt,
		ParentFormID:       in.ParentFormID,
	}
	if in.FormConfig != nil && !in.FormConfig.IsZero() {
		f.FormConfig = in.FormConfig.Column()
	}
	if in.FormSettings != nil && !in.FormSettings.IsZero() {
		f.FormSettings = in.FormSettings.Column()
	}
	if in.Status != "" {
		f.Status = form.Status(in.Status)
	}

	if err := s.Repos.Form.CreateForm(ctx, &f); err != nil {
		return form.Form{}, s.fail.internal(ctx, err, "create form", zap.Uint("user_id", in.UserID))
	}

	s.audit.Info(ctx, categoryForms, "فرم جدید ایجاد شد", map[string]any{
		"form_id": f.ID,
		"user_id": f.UserID,
		"title":   f.PersianTitle,
	})
	return f, nil
}

// GetForm loads a live form. countView bumps view_count before reading so the
// returned row includes the visit.
func (s *FormService) GetForm(ctx context.Context, id uint, includeStats, countView bool) (form.Detail, error) {
	if countView {
		if _, err := s.Repos.Form.IncrementViewCount(ctx, id); err != nil {
			return form.Detail{}, s.fail.internal(ctx, err, "increment view count", zap.Uint("form_id", id))
		}
	}

	d, err := s.Repos.Form.GetFormDetail(ctx, id)
	if err != nil {
		return d, s.fail.db(ctx, err, ErrFormNotFound, "get form", zap.Uint("form_id", id))
	}

	if includeStats {
		stats, err := s.Repos.Form.GetFormStats(ctx, id)
		if err != nil {
			return d, s.fail.internal(ctx, err, "form stats", zap.Uint("form_id", id))
		}
		d.Stats = &stats
	}
	return d, nil
}

// ownedForm loads a form and checks that actorID owns it.
func (s *FormService) ownedForm(ctx context.Context, id, actorID uint, denied string) (form.Form, error) {
	f, err := s.Repos.Form.GetFormByID(ctx, id)
	if err != nil {
		return f, s.fail.db(ctx, err, ErrFormNotFound, "load form", zap.Uint("form_id", id))
	}
	if f.UserID != actorID {
		s.audit.Warning(ctx, categoryForms, "عدم مجوز دسترسی به فرم", map[string]any{
			"form_id":         id,
			"request_user_id": actorID,
			"form_owner_id":   f.UserID,
		})
		return f, apperr.Forbidden(denied)
	}
	return f, nil
}

// UpdateForm applies raw through the form patch schema.
func (s *FormService) UpdateForm(ctx context.Context, id, actorID uint, raw map[string]json.RawMessage) (form.Detail, error) {
	if _, err := s.ownedForm(ctx, id, actorID, msgFormEditDenied); err != nil {
		return form.Detail{}, err
	}

	res, err := formPatch.Apply(raw)
	if err != nil {
		return form.Detail{}, patchError(err)
	}

	if err := s.Repos.Form.UpdateForm(ctx, id, res.Updates); err != nil {
		return form.Detail{}, s.fail.db(ctx, err, ErrFormNotFound, "update form", zap.Uint("form_id", id))
	}

	s.audit.Info(ctx, categoryForms, "فرم بروزرسانی شد", map[string]any{
		"form_id":        id,
		"user_id":        actorID,
		"updated_fields": res.Applied,
	})
	return s.GetForm(ctx, id, false, false)
}

func (s *FormService) DeleteForm(ctx context.Context, id, actorID uint) (form.DeleteResult, error) {
	f, err := s.ownedForm(ctx, id, actorID, msgFormDeleteDeny)
	if err != nil {
		return form.DeleteResult{}, err
	}

	rows, err := s.Repos.Form.SoftDeleteForm(ctx, id, actorID)
	if err != nil {
		return form.DeleteResult{}, s.fail.internal(ctx, err, "delete form", zap.Uint("form_id", id))
	}
	if rows == 0 {
		return form.DeleteResult{}, ErrFormNotFound
	}

	s.audit.Info(ctx, categoryForms, "فرم با موفقیت حذف شد", map[string]any{
		"form_id":    id,
		"user_id":    actorID,
		"form_title": f.PersianTitle,
	})
	return form.DeleteResult{FormID: id, Deleted: true}, nil
}

func (s *FormService) PublishForm(ctx context.Context, id, actorID uint) (form.Detail, error) {
	if _, err := s.ownedForm(ctx, id, actorID, msgFormPublishDeny); err != nil {
		return form.Detail{}, err
	}
	if err := s.Repos.Form.PublishForm(ctx, id, s.now()); err != nil {
		return form.Detail{}, s.fail.db(ctx, err, ErrFormNotFound, "publish form", zap.Uint("form_id", id))
	}

	s.audit.Info(ctx, categoryForms, "فرم منتشر شد", map[string]any{"form_id": id, "user_id": actorID})
	return s.GetForm(ctx, id, false, false)
}

// ListUserForms pages through a user's live forms. Only draft, published
// and archived act as status filters; any other value lists everything.
func (s *FormService) ListUserForms(ctx context.Context, userID uint, p pagination.Params, status, search string) (form.ListResult, error) {
	if status == "" {
		status = "all"
	}
	filter := form.ListFilter{Search: strings.TrimSpace(search)}
	if slices.Contains(form.ListableStatuses, status) {
		filter.Status = status
	}

	forms, total, err := s.Repos.Form.ListFormsByUser(ctx, userID, filter, p.Limit(), p.Offset())
	if err != nil {
		return form.ListResult{}, s.fail.internal(ctx, err, "list user forms", zap.Uint("user_id", userID))
	}
	if forms == nil {
		forms = []form.Form{}
	}

	return form.ListResult{
		Forms:      forms,
		Pagination: pagination.BuildMeta(total, p),
		Filters:    form.AppliedFilters{Status: status, Search: search},
	}, nil
}

// ListPublicForms returns published, public, unexpired forms.
func (s *FormService) ListPublicForms(ctx context.Context, p pagination.Params, search string) (form.PublicResult, error) {
	forms, total, err := s.Repos.Form.ListPublicForms(ctx, strings.TrimSpace(search), s.now(), p.Limit(), p.Offset())
	if err != nil {
		return form.PublicResult{}, s.fail.internal(ctx, err, "list public forms")
	}
	if forms == nil {
		forms = []form.Detail{}
	}
	return form.PublicResult{Forms: forms, Pagination: pagination.BuildMeta(total, p)}, nil
}

func (s *FormService) FormStats(ctx context.Context, id, actorID uint) (form.Stats, error) {
	if _, err := s.ownedForm(ctx, id, actorID, msgFormStatsDeny); err != nil {
		return form.Stats{}, err
	}
	stats, err := s.Repos.Form.GetFormStats(ctx, id)
	if err != nil {
		return stats, s.fail.internal(ctx, err, "form stats", zap.Uint("form_id", id))
	}
	return stats, nil
}

// patchError converts patch.Apply failures into validation errors.
func patchError(err error) error {
	if errors.Is(err, patch.ErrEmpty) {
		return apperr.Validation(msgNoUpdateFields)
	}
	var fieldErrs patch.FieldErrors
	if errors.As(err, &fieldErrs) {
		return apperr.Validation(msgInvalidInput, fieldErrs...)
	}
	return apperr.BadRequest(msgInvalidInput)
}
