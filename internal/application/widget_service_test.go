package application

import (
	"context"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/linskybing/formbuilder-go/internal/domain/widget"
	"github.com/linskybing/formbuilder-go/internal/repository"
	"github.com/linskybing/formbuilder-go/internal/repository/mock"
	"github.com/linskybing/formbuilder-go/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// --------------------- Setup ---------------------
func setupWidgetServiceMocks(t *testing.T) (*WidgetService, *mock.MockWidgetRepo, *fakeAuditor) {
	ctrl := gomock.NewController(t)
	t.Cleanup(func() { ctrl.Finish() })

	mockWidget := mock.NewMockWidgetRepo(ctrl)
	repos := &repository.Repos{
		Widget: mockWidget,
	}
	audit := &fakeAuditor{}
	return NewWidgetService(repos, audit, nil), mockWidget, audit
}

func validWidgetInput(t *testing.T) widget.CreateWidgetInput {
	return widget.CreateWidgetInput{
		WidgetType:   "text",
		WidgetCode:   "short_text",
		PersianLabel: "متن کوتاه",
		WidgetConfig: jsonValue(t, `{"max_length":255}`),
	}
}

// --------------------- CreateWidget ---------------------
func TestCreateWidget_Defaults(t *testing.T) {
	svc, mockWidget, audit := setupWidgetServiceMocks(t)

	mockWidget.EXPECT().CodeExists(gomock.Any(), "short_text").Return(false, nil)
	mockWidget.EXPECT().CreateWidget(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, w *widget.Widget) error {
		w.ID = 1
		return nil
	})

	w, err := svc.CreateWidget(context.Background(), validWidgetInput(t))
	require.NoError(t, err)
	assert.Equal(t, widget.DefaultCategory, w.WidgetCategory)
	assert.Equal(t, widget.DefaultIconColor, w.IconColor)
	assert.Equal(t, widget.DefaultDisplayOrder, w.DisplayOrder)
	assert.True(t, w.IsActive)
	assert.Equal(t, "1.0", w.MinVersion)
	assert.Contains(t, audit.messages("INFO"), "ویجت جدید ایجاد شد")
}

func TestCreateWidget_DuplicateCode(t *testing.T) {
	svc, mockWidget, _ := setupWidgetServiceMocks(t)

	mockWidget.EXPECT().CodeExists(gomock.Any(), "short_text").Return(true, nil)
	mockWidget.EXPECT().CreateWidget(gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.CreateWidget(context.Background(), validWidgetInput(t))
	assertKind(t, err, apperr.KindValidation)
	assert.Equal(t, msgWidgetCodeTaken, err.Error())
}

func TestCreateWidget_Validation(t *testing.T) {
	svc, _, _ := setupWidgetServiceMocks(t)

	_, err := svc.CreateWidget(context.Background(), widget.CreateWidgetInput{
		WidgetType:   "hologram",
		WidgetCode:   "Bad Code",
		PersianLabel: "م",
		WidgetConfig: jsonValue(t, `"flat"`),
		IconColor:    "blue",
	})
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.KindValidation, appErr.Kind)
	assert.Len(t, appErr.Details, 5)
	assert.Contains(t, appErr.Details, msgWidgetColor)
}

func TestCreateWidget_StoresZeroValuesInOneInsert(t *testing.T) {
	svc, mockWidget, _ := setupWidgetServiceMocks(t)
	in := validWidgetInput(t)
	order, active := 0, false
	in.DisplayOrder = &order
	in.IsActive = &active

	mockWidget.EXPECT().CodeExists(gomock.Any(), "short_text").Return(false, nil)
	mockWidget.EXPECT().CreateWidget(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, w *widget.Widget) error {
		assert.False(t, w.IsActive)
		assert.Zero(t, w.DisplayOrder)
		w.ID = 2
		return nil
	})
	mockWidget.EXPECT().UpdateWidget(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w, err := svc.CreateWidget(context.Background(), in)
	require.NoError(t, err)
	assert.False(t, w.IsActive)
	assert.Equal(t, 0, w.DisplayOrder)
}

func TestCreateWidget_ConcurrentDuplicateCode(t *testing.T) {
	svc, mockWidget, audit := setupWidgetServiceMocks(t)

	mockWidget.EXPECT().CodeExists(gomock.Any(), "short_text").Return(false, nil)
	mockWidget.EXPECT().CreateWidget(gomock.Any(), gomock.Any()).Return(gorm.ErrDuplicatedKey)

	_, err := svc.CreateWidget(context.Background(), validWidgetInput(t))
	assertKind(t, err, apperr.KindValidation)
	assert.Equal(t, msgWidgetCodeTaken, err.Error())
	assert.Empty(t, audit.messages("ERROR"))
}

func TestCreateWidget_ColumnLimits(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(in *widget.CreateWidgetInput)
		want   string
	}{
		{"code", func(in *widget.CreateWidgetInput) { in.WidgetCode = "w" + strings.Repeat("x", maxWidgetCodeLen) }, msgWidgetCodeLen},
		{"category", func(in *widget.CreateWidgetInput) { in.WidgetCategory = strings.Repeat("c", maxWidgetKeyLen+1) }, msgWidgetCategoryLen},
		{"persian label", func(in *widget.CreateWidgetInput) { in.PersianLabel = strings.Repeat("ب", maxTextLen+1) }, msgWidgetLabelMax},
		{"english label", func(in *widget.CreateWidgetInput) { in.EnglishLabel = ptrString(strings.Repeat("l", maxTextLen+1)) }, msgWidgetEnLabelMax},
		{"icon name", func(in *widget.CreateWidgetInput) { in.IconName = ptrString(strings.Repeat("i", maxIconNameLen+1)) }, msgIconNameLen},
		{"min version", func(in *widget.CreateWidgetInput) { in.MinVersion = strings.Repeat("1", maxVersionLen+1) }, msgMinVersionLen},
		{"display order", func(in *widget.CreateWidgetInput) { n := maxInt + 1; in.DisplayOrder = &n }, msgDisplayOrder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := setupWidgetServiceMocks(t)
			in := validWidgetInput(t)
			tt.mutate(&in)

			_, err := svc.CreateWidget(context.Background(), in)
			var appErr *apperr.Error
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, apperr.KindValidation, appErr.Kind)
			assert.Equal(t, []string{tt.want}, appErr.Details)
		})
	}
}

// --------------------- UpdateWidget ---------------------
func TestUpdateWidget_CodeIsImmutable(t *testing.T) {
	svc, mockWidget, _ := setupWidgetServiceMocks(t)

	mockWidget.EXPECT().GetWidgetByID(gomock.Any(), uint(3)).Return(widget.Widget{ID: 3}, nil)

	_, err := svc.UpdateWidget(context.Background(), 3, rawPatch(t, `{"widget_code":"other","widget_type":"email"}`))
	assertKind(t, err, apperr.KindValidation)
	assert.Equal(t, msgNoUpdateFields, err.Error())
}

func TestUpdateWidget_Success(t *testing.T) {
	svc, mockWidget, _ := setupWidgetServiceMocks(t)

	mockWidget.EXPECT().GetWidgetByID(gomock.Any(), uint(3)).Return(widget.Widget{ID: 3}, nil)
	mockWidget.EXPECT().UpdateWidget(gomock.Any(), uint(3), map[string]any{"icon_color": "#FF0000", "display_order": int64(4)}).Return(nil)
	mockWidget.EXPECT().GetWidgetByID(gomock.Any(), uint(3)).Return(widget.Widget{ID: 3, IconColor: "#FF0000", DisplayOrder: 4}, nil)

	w, err := svc.UpdateWidget(context.Background(), 3, rawPatch(t, `{"icon_color":"#FF0000","display_order":4,"widget_code":"x"}`))
	require.NoError(t, err)
	assert.Equal(t, 4, w.DisplayOrder)
}

func TestUpdateWidget_NotFound(t *testing.T) {
	svc, mockWidget, _ := setupWidgetServiceMocks(t)

	mockWidget.EXPECT().GetWidgetByID(gomock.Any(), uint(3)).Return(widget.Widget{}, gorm.ErrRecordNotFound)

	_, err := svc.UpdateWidget(context.Background(), 3, rawPatch(t, `{"icon_color":"#FF0000"}`))
	assertKind(t, err, apperr.KindNotFound)
}

// --------------------- Library ---------------------
func TestLibrary_GroupsInFirstSeenOrder(t *testing.T) {
	svc, mockWidget, _ := setupWidgetServiceMocks(t)

	mockWidget.EXPECT().ListLibrary(gomock.Any(), widget.LibraryFilter{Category: "all", ActiveOnly: true, SortBy: "display_order"}).
		Return([]widget.Widget{
			{ID: 1, WidgetCategory: "input"},
			{ID: 2, WidgetCategory: "selection"},
			{ID: 3, WidgetCategory: "input"},
			{ID: 4},
		}, nil)

	lib, err := svc.Library(context.Background(), widget.LibraryFilter{ActiveOnly: true, SortBy: "bogus"})
	require.NoError(t, err)
	assert.Equal(t, 4, lib.TotalCount)
	assert.Equal(t, []string{"input", "selection", widget.DefaultCategory}, lib.Categories)
	assert.Len(t, lib.CategorizedWidgets["input"], 2)
	assert.Equal(t, "display_order", lib.FiltersApplied.SortBy)
}

func TestLibrary_EmptyWarns(t *testing.T) {
	svc, mockWidget, audit := setupWidgetServiceMocks(t)

	mockWidget.EXPECT().ListLibrary(gomock.Any(), gomock.Any()).Return(nil, nil)

	lib, err := svc.Library(context.Background(), widget.LibraryFilter{Category: "advanced"})
	require.NoError(t, err)
	assert.NotNil(t, lib.Widgets)
	assert.Empty(t, lib.Categories)
	assert.Len(t, audit.messages("WARNING"), 1)
}

// --------------------- Popular / Usage ---------------------
func TestPopular_ClampsLimit(t *testing.T) {
	svc, mockWidget, _ := setupWidgetServiceMocks(t)

	mockWidget.EXPECT().ListPopular(gomock.Any(), defaultPopularLimit).Return(nil, nil)
	mockWidget.EXPECT().ListPopular(gomock.Any(), maxPopularLimit).Return(nil, nil)

	_, err := svc.Popular(context.Background(), 0)
	require.NoError(t, err)
	_, err = svc.Popular(context.Background(), 1000)
	require.NoError(t, err)
}

func TestIncrementUsage(t *testing.T) {
	svc, mockWidget, _ := setupWidgetServiceMocks(t)

	mockWidget.EXPECT().IncrementUsage(gomock.Any(), "email", gomock.Any()).Return(int64(1), nil)

	res, err := svc.IncrementUsage(context.Background(), "email")
	require.NoError(t, err)
	assert.Equal(t, UsageResult{WidgetType: "email", Updated: 1}, res)

	_, err = svc.IncrementUsage(context.Background(), "hologram")
	assertKind(t, err, apperr.KindValidation)
}

// --------------------- Seed ---------------------
func TestParseWidgetCatalog_Builtin(t *testing.T) {
	inputs, err := ParseWidgetCatalog(builtinWidgets)
	require.NoError(t, err)
	require.Len(t, inputs, 12)

	seen := map[string]bool{}
	for _, in := range inputs {
		assert.Empty(t, validateWidgetInput(in), in.WidgetCode)
		assert.False(t, seen[in.WidgetCode], "duplicate code %s", in.WidgetCode)
		seen[in.WidgetCode] = true
	}
	assert.JSONEq(t, `{"placeholder":"","max_length":255}`, string(inputs[0].WidgetConfig.Raw()))
}

func TestParseWidgetCatalog_Invalid(t *testing.T) {
	_, err := ParseWidgetCatalog([]byte("widget_code: [unterminated"))
	assert.Error(t, err)
}

func TestSeedWidgets_SkipsExisting(t *testing.T) {
	svc, mockWidget, _ := setupWidgetServiceMocks(t)
	catalog := []byte(`
- widget_type: text
  widget_code: short_text
  persian_label: متن کوتاه
  widget_config: {max_length: 10}
- widget_type: email
  widget_code: email_address
  persian_label: ایمیل
  widget_config: {format: email}
`)

	mockWidget.EXPECT().CodeExists(gomock.Any(), "short_text").Return(true, nil)
	mockWidget.EXPECT().CodeExists(gomock.Any(), "email_address").Return(false, nil).Times(2)
	mockWidget.EXPECT().CreateWidget(gomock.Any(), gomock.Any()).Return(nil)

	res, err := svc.SeedWidgets(context.Background(), catalog)
	require.NoError(t, err)
	assert.Equal(t, SeedResult{Created: 1, Skipped: 1}, res)
}
