package application

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/linskybing/formbuilder-go/internal/domain/form"
	"github.com/linskybing/formbuilder-go/internal/domain/user"
	"github.com/linskybing/formbuilder-go/internal/repository"
	"github.com/linskybing/formbuilder-go/internal/repository/mock"
	"github.com/linskybing/formbuilder-go/pkg/apperr"
	"github.com/linskybing/formbuilder-go/pkg/jsonval"
	"github.com/linskybing/formbuilder-go/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// --------------------- Setup ---------------------
func setupFormServiceMocks(t *testing.T) (*FormService, *mock.MockFormRepo, *mock.MockUserRepo, *fakeAuditor) {
	ctrl := gomock.NewController(t)
	t.Cleanup(func() { ctrl.Finish() })

	mockForm := mock.NewMockFormRepo(ctrl)
	mockUser := mock.NewMockUserRepo(ctrl)
	repos := &repository.Repos{
		Form: mockForm,
		User: mockUser,
	}
	audit := &fakeAuditor{}
	return NewFormService(repos, audit, nil), mockForm, mockUser, audit
}

// --------------------- CreateForm ---------------------
func TestCreateForm_AppliesDefaults(t *testing.T) {
	svc, mockForm, mockUser, audit := setupFormServiceMocks(t)
	ctx := context.Background()

	mockUser.EXPECT().GetUserByID(ctx, uint(1)).Return(user.User{ID: 1}, nil)
	mockForm.EXPECT().CreateForm(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, f *form.Form) error {
		f.ID = 42
		return nil
	})

	f, err := svc.CreateForm(ctx, form.CreateFormInput{
		UserID:       1,
		PersianTitle: "  فرم نظرسنجی  ",
		FormSchema:   jsonValue(t, `[{"type":"short_text"}]`),
	})
	require.NoError(t, err)
	assert.Equal(t, uint(42), f.ID)
	assert.Equal(t, "فرم نظرسنجی", f.PersianTitle)
	assert.Equal(t, form.StatusDraft, f.Status)
	assert.Equal(t, "1.0", f.Version)
	assert.JSONEq(t, `{"theme":"default","direction":"rtl","language":"fa"}`, string(f.FormConfig))
	assert.JSONEq(t, `{"allow_multiple_responses":true,"require_email":false,"auto_save":true}`, string(f.FormSettings))
	assert.Contains(t, audit.messages("INFO"), "فرم جدید ایجاد شد")
}

func TestCreateForm_MissingSchema(t *testing.T) {
	svc, _, _, _ := setupFormServiceMocks(t)

	_, err := svc.CreateForm(context.Background(), form.CreateFormInput{UserID: 1, PersianTitle: "فرم تست"})
	assertKind(t, err, apperr.KindValidation)

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Details, msgSchemaRequired)
}

func TestCreateForm_ScalarSchema(t *testing.T) {
	svc, _, _, _ := setupFormServiceMocks(t)

	_, err := svc.CreateForm(context.Background(), form.CreateFormInput{
		UserID:       1,
		PersianTitle: "فرم تست",
		FormSchema:   jsonValue(t, `"text"`),
	})
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Details, msgSchemaShape)
}

func TestCreateForm_MissingRequiredFields(t *testing.T) {
	svc, _, _, audit := setupFormServiceMocks(t)

	_, err := svc.CreateForm(context.Background(), form.CreateFormInput{})
	assertKind(t, err, apperr.KindValidation)
	assert.Equal(t, "فیلدهای الزامی مفقود: persian_title, user_id", err.Error())
	assert.Len(t, audit.messages("WARNING"), 1)
}

func TestCreateForm_UnknownOwner(t *testing.T) {
	svc, _, mockUser, _ := setupFormServiceMocks(t)

	mockUser.EXPECT().GetUserByID(gomock.Any(), uint(8)).Return(user.User{}, gorm.ErrRecordNotFound)

	_, err := svc.CreateForm(context.Background(), form.CreateFormInput{
		UserID:       8,
		PersianTitle: "فرم تست",
		FormSchema:   jsonValue(t, `{"fields":[]}`),
	})
	assertKind(t, err, apperr.KindNotFound)
	assert.Equal(t, msgOwnerNotFound, err.Error())
}

func TestCreateForm_LimitsAndParent(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(in *form.CreateFormInput)
		want   string
	}{
		{"title too long", func(in *form.CreateFormInput) { in.PersianTitle = strings.Repeat("ف", maxTextLen+1) }, msgTitleTooLong},
		{"english title too long", func(in *form.CreateFormInput) { in.EnglishTitle = ptrString(strings.Repeat("f", maxTextLen+1)) }, msgEnTitleTooLong},
		{"negative max responses", func(in *form.CreateFormInput) { n := -1; in.MaxResponses = &n }, msgMaxResponses},
		{"max responses overflows column", func(in *form.CreateFormInput) { n := maxInt + 1; in.MaxResponses = &n }, msgMaxResponses},
		{"zero parent", func(in *form.CreateFormInput) { var id uint; in.ParentFormID = &id }, msgParentNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _, _ := setupFormServiceMocks(t)
			in := form.CreateFormInput{
				UserID:       1,
				PersianTitle: "فرم تست",
				FormSchema:   jsonValue(t, `[]`),
			}
			tt.mutate(&in)

			_, err := svc.CreateForm(context.Background(), in)
			assertKind(t, err, apperr.KindValidation)

			var appErr *apperr.Error
			require.ErrorAs(t, err, &appErr)
			assert.Contains(t, appErr.Details, tt.want)
		})
	}
}

func TestCreateForm_UnknownParent(t *testing.T) {
	svc, mockForm, mockUser, _ := setupFormServiceMocks(t)
	parent := uint(77)

	mockUser.EXPECT().GetUserByID(gomock.Any(), uint(1)).Return(user.User{ID: 1}, nil)
	mockForm.EXPECT().GetFormByID(gomock.Any(), uint(77)).Return(form.Form{}, gorm.ErrRecordNotFound)

	_, err := svc.CreateForm(context.Background(), form.CreateFormInput{
		UserID:       1,
		PersianTitle: "نسخه دوم",
		FormSchema:   jsonValue(t, `[]`),
		ParentFormID: &parent,
	})
	assertKind(t, err, apperr.KindValidation)

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, []string{msgParentNotFound}, appErr.Details)
}

func TestCreateForm_KnownParent(t *testing.T) {
	svc, mockForm, mockUser, _ := setupFormServiceMocks(t)
	parent := uint(77)
	limit := maxInt

	mockUser.EXPECT().GetUserByID(gomock.Any(), uint(1)).Return(user.User{ID: 1}, nil)
	mockForm.EXPECT().GetFormByID(gomock.Any(), uint(77)).Return(form.Form{ID: 77}, nil)
	mockForm.EXPECT().CreateForm(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, f *form.Form) error {
		require.NotNil(t, f.ParentFormID)
		assert.Equal(t, uint(77), *f.ParentFormID)
		return nil
	})

	_, err := svc.CreateForm(context.Background(), form.CreateFormInput{
		UserID:       1,
		PersianTitle: "نسخه دوم",
		FormSchema:   jsonValue(t, `[]`),
		ParentFormID: &parent,
		MaxResponses: &limit,
	})
	require.NoError(t, err)
}

// --------------------- GetForm ---------------------
func TestGetForm_CountsViewAndLoadsStats(t *testing.T) {
	svc, mockForm, _, _ := setupFormServiceMocks(t)

	gomock.InOrder(
		mockForm.EXPECT().IncrementViewCount(gomock.Any(), uint(3)).Return(int64(1), nil),
		mockForm.EXPECT().GetFormDetail(gomock.Any(), uint(3)).Return(form.Detail{Form: form.Form{ID: 3, ViewCount: 5}}, nil),
		mockForm.EXPECT().GetFormStats(gomock.Any(), uint(3)).Return(form.Stats{TotalResponses: 2}, nil),
	)

	d, err := svc.GetForm(context.Background(), 3, true, true)
	require.NoError(t, err)
	require.NotNil(t, d.Stats)
	assert.Equal(t, int64(2), d.Stats.TotalResponses)
	assert.Equal(t, 5, d.ViewCount)
}

func TestGetForm_NotFound(t *testing.T) {
	svc, mockForm, _, _ := setupFormServiceMocks(t)

	mockForm.EXPECT().GetFormDetail(gomock.Any(), uint(3)).Return(form.Detail{}, gorm.ErrRecordNotFound)

	_, err := svc.GetForm(context.Background(), 3, false, false)
	assertKind(t, err, apperr.KindNotFound)
	assert.ErrorIs(t, err, ErrFormNotFound)
}

// --------------------- UpdateForm ---------------------
func TestUpdateForm_NonOwnerForbidden(t *testing.T) {
	svc, mockForm, _, audit := setupFormServiceMocks(t)

	mockForm.EXPECT().GetFormByID(gomock.Any(), uint(10)).Return(form.Form{ID: 10, UserID: 1}, nil)

	_, err := svc.UpdateForm(context.Background(), 10, 2, rawPatch(t, `{"persian_title":"عنوان جدید"}`))
	assertKind(t, err, apperr.KindForbidden)
	assert.Equal(t, msgFormEditDenied, err.Error())
	assert.Len(t, audit.messages("WARNING"), 1)
}

func TestUpdateForm_OnlyImmutableFields(t *testing.T) {
	svc, mockForm, _, _ := setupFormServiceMocks(t)

	mockForm.EXPECT().GetFormByID(gomock.Any(), uint(10)).Return(form.Form{ID: 10, UserID: 1}, nil)

	_, err := svc.UpdateForm(context.Background(), 10, 1, rawPatch(t, `{"user_id":99,"response_count":5}`))
	assertKind(t, err, apperr.KindValidation)
	assert.Equal(t, msgNoUpdateFields, err.Error())
}

func TestUpdateForm_AppliesAllowedFieldsOnly(t *testing.T) {
	svc, mockForm, _, _ := setupFormServiceMocks(t)

	mockForm.EXPECT().GetFormByID(gomock.Any(), uint(10)).Return(form.Form{ID: 10, UserID: 1}, nil)
	mockForm.EXPECT().UpdateForm(gomock.Any(), uint(10), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ uint, updates map[string]any) error {
			assert.Len(t, updates, 2)
			assert.Equal(t, "عنوان جدید", updates["persian_title"])
			assert.Equal(t, true, updates["is_public"])
			return nil
		})
	mockForm.EXPECT().GetFormDetail(gomock.Any(), uint(10)).Return(form.Detail{Form: form.Form{ID: 10, PersianTitle: "عنوان جدید"}}, nil)

	d, err := svc.UpdateForm(context.Background(), 10, 1, rawPatch(t, `{"persian_title":"عنوان جدید","is_public":true,"user_id":99}`))
	require.NoError(t, err)
	assert.Equal(t, "عنوان جدید", d.PersianTitle)
}

func TestUpdateForm_InvalidStatus(t *testing.T) {
	svc, mockForm, _, _ := setupFormServiceMocks(t)

	mockForm.EXPECT().GetFormByID(gomock.Any(), uint(10)).Return(form.Form{ID: 10, UserID: 1}, nil)

	_, err := svc.UpdateForm(context.Background(), 10, 1, rawPatch(t, `{"status":"deleted"}`))
	assertKind(t, err, apperr.KindValidation)
}

func TestUpdateForm_Limits(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"title too long", `{"persian_title":"` + strings.Repeat("ف", maxTextLen+1) + `"}`},
		{"english title too long", `{"english_title":"` + strings.Repeat("f", maxTextLen+1) + `"}`},
		{"negative max responses", `{"max_responses":-1}`},
		{"max responses overflows column", `{"max_responses":2147483648}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockForm, _, _ := setupFormServiceMocks(t)
			mockForm.EXPECT().GetFormByID(gomock.Any(), uint(10)).Return(form.Form{ID: 10, UserID: 1}, nil)

			_, err := svc.UpdateForm(context.Background(), 10, 1, rawPatch(t, tt.body))
			assertKind(t, err, apperr.KindValidation)
		})
	}
}

func TestUpdateForm_RepoErrorIsAudited(t *testing.T) {
	svc, mockForm, _, audit := setupFormServiceMocks(t)

	mockForm.EXPECT().GetFormByID(gomock.Any(), uint(10)).Return(form.Form{ID: 10, UserID: 1}, nil)
	mockForm.EXPECT().UpdateForm(gomock.Any(), uint(10), gomock.Any()).Return(errors.New("connection reset"))

	_, err := svc.UpdateForm(context.Background(), 10, 1, rawPatch(t, `{"persian_title":"عنوان جدید"}`))
	assertKind(t, err, apperr.KindInternal)

	events := audit.byLevel("ERROR")
	require.Len(t, events, 1)
	assert.Equal(t, categoryForms, events[0].Category)
	fields, ok := events[0].Fields.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "update form", fields["operation"])
	assert.Equal(t, "connection reset", fields["error"])
	assert.EqualValues(t, 10, fields["form_id"])
}

// --------------------- DeleteForm ---------------------
func TestDeleteForm(t *testing.T) {
	svc, mockForm, _, _ := setupFormServiceMocks(t)

	mockForm.EXPECT().GetFormByID(gomock.Any(), uint(10)).Return(form.Form{ID: 10, UserID: 1, PersianTitle: "فرم"}, nil)
	mockForm.EXPECT().SoftDeleteForm(gomock.Any(), uint(10), uint(1)).Return(int64(1), nil)

	res, err := svc.DeleteForm(context.Background(), 10, 1)
	require.NoError(t, err)
	assert.Equal(t, form.DeleteResult{FormID: 10, Deleted: true}, res)
}

func TestDeleteForm_AlreadyDeleted(t *testing.T) {
	svc, mockForm, _, _ := setupFormServiceMocks(t)

	mockForm.EXPECT().GetFormByID(gomock.Any(), uint(10)).Return(form.Form{}, gorm.ErrRecordNotFound)

	_, err := svc.DeleteForm(context.Background(), 10, 1)
	assertKind(t, err, apperr.KindNotFound)
}

func TestDeleteForm_RepoError(t *testing.T) {
	svc, mockForm, _, audit := setupFormServiceMocks(t)

	mockForm.EXPECT().GetFormByID(gomock.Any(), uint(10)).Return(form.Form{ID: 10, UserID: 1}, nil)
	mockForm.EXPECT().SoftDeleteForm(gomock.Any(), uint(10), uint(1)).Return(int64(0), errors.New("boom"))

	_, err := svc.DeleteForm(context.Background(), 10, 1)
	assertKind(t, err, apperr.KindInternal)
	assert.Len(t, audit.messages("ERROR"), 1)
}

// --------------------- PublishForm ---------------------
func TestPublishForm(t *testing.T) {
	svc, mockForm, _, _ := setupFormServiceMocks(t)
	now := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	mockForm.EXPECT().GetFormByID(gomock.Any(), uint(10)).Return(form.Form{ID: 10, UserID: 1}, nil)
	mockForm.EXPECT().PublishForm(gomock.Any(), uint(10), now).Return(nil)
	mockForm.EXPECT().GetFormDetail(gomock.Any(), uint(10)).Return(form.Detail{Form: form.Form{ID: 10, Status: form.StatusPublished}}, nil)

	d, err := svc.PublishForm(context.Background(), 10, 1)
	require.NoError(t, err)
	assert.Equal(t, form.StatusPublished, d.Status)
}

// --------------------- ListUserForms ---------------------
func TestListUserForms_Pagination(t *testing.T) {
	svc, mockForm, _, _ := setupFormServiceMocks(t)
	p := pagination.Parse("2", "10", pagination.DefaultOpts)

	mockForm.EXPECT().ListFormsByUser(gomock.Any(), uint(1), form.ListFilter{Status: "draft", Search: "نظر"}, 10, 10).
		Return([]form.Form{{ID: 11}, {ID: 12}}, int64(25), nil)

	res, err := svc.ListUserForms(context.Background(), 1, p, "draft", " نظر ")
	require.NoError(t, err)
	assert.Len(t, res.Forms, 2)
	assert.Equal(t, pagination.Meta{
		CurrentPage: 2,
		PerPage:     10,
		TotalCount:  25,
		TotalPages:  3,
		HasNext:     true,
		HasPrev:     true,
	}, res.Pagination)
	assert.Equal(t, "draft", res.Filters.Status)
}

func TestListUserForms_UnlistableStatusListsEverything(t *testing.T) {
	svc, mockForm, _, _ := setupFormServiceMocks(t)

	mockForm.EXPECT().ListFormsByUser(gomock.Any(), uint(1), form.ListFilter{}, 10, 0).Return(nil, int64(0), nil)

	res, err := svc.ListUserForms(context.Background(), 1, pagination.Params{Page: 1, PerPage: 10}, "paused", "")
	require.NoError(t, err)
	assert.NotNil(t, res.Forms)
	assert.Empty(t, res.Forms)
	assert.Equal(t, 1, res.Pagination.TotalPages)
	assert.False(t, res.Pagination.HasNext)
}

// --------------------- ListPublicForms ---------------------
func TestListPublicForms(t *testing.T) {
	svc, mockForm, _, _ := setupFormServiceMocks(t)
	now := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	mockForm.EXPECT().ListPublicForms(gomock.Any(), "survey", now, 10, 0).
		Return([]form.Detail{{Form: form.Form{ID: 1}}}, int64(1), nil)

	res, err := svc.ListPublicForms(context.Background(), pagination.Params{Page: 1, PerPage: 10}, "survey")
	require.NoError(t, err)
	assert.Len(t, res.Forms, 1)
	assert.Equal(t, int64(1), res.Pagination.TotalCount)
}

// --------------------- FormStats ---------------------
func TestFormStats_NonOwner(t *testing.T) {
	svc, mockForm, _, _ := setupFormServiceMocks(t)

	mockForm.EXPECT().GetFormByID(gomock.Any(), uint(10)).Return(form.Form{ID: 10, UserID: 1}, nil)

	_, err := svc.FormStats(context.Background(), 10, 3)
	assertKind(t, err, apperr.KindForbidden)
}

func TestDefaultFormConfigIsObject(t *testing.T) {
	assert.Equal(t, jsonval.Object, defaultFormConfig.Kind())
	assert.Equal(t, jsonval.Object, defaultFormSettings.Kind())
}
