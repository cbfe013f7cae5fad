package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/linskybing/formbuilder-go/internal/api/middleware"
	"github.com/linskybing/formbuilder-go/internal/domain/user"
	"github.com/linskybing/formbuilder-go/internal/repository"
	"github.com/linskybing/formbuilder-go/internal/repository/mock"
	"github.com/linskybing/formbuilder-go/pkg/apperr"
	"github.com/linskybing/formbuilder-go/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// --------------------- Setup ---------------------
func setupUserServiceMocks(t *testing.T) (*UserService, *mock.MockUserRepo, *fakeAuditor) {
	ctrl := gomock.NewController(t)
	t.Cleanup(func() { ctrl.Finish() })

	mockUser := mock.NewMockUserRepo(ctrl)
	repos := &repository.Repos{
		User: mockUser,
	}
	audit := &fakeAuditor{}
	svc := NewUserService(repos, audit, nil, time.Hour)
	return svc, mockUser, audit
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

// --------------------- Register ---------------------
func TestRegister_Success(t *testing.T) {
	svc, mockUser, audit := setupUserServiceMocks(t)
	ctx := context.Background()

	mockUser.EXPECT().EmailExists(ctx, "ali@example.com").Return(false, nil)
	mockUser.EXPECT().CreateUser(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, u *user.User) error {
		u.ID = 7
		return nil
	})

	u, err := svc.Register(ctx, user.CreateUserInput{
		Email:       " Ali@Example.com ",
		Password:    "secret-pass",
		PersianName: "علی",
	})
	require.NoError(t, err)
	assert.Equal(t, uint(7), u.ID)
	assert.Equal(t, "ali@example.com", u.Email)
	assert.Equal(t, user.StatusPending, u.Status)
	assert.Equal(t, user.RoleUser, u.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret-pass")))

	cost, err := bcrypt.Cost([]byte(u.PasswordHash))
	require.NoError(t, err)
	assert.Equal(t, BcryptCost, cost)
	assert.Contains(t, audit.messages("INFO"), "کاربر جدید ایجاد شد")
}

func TestRegister_ValidationErrors(t *testing.T) {
	svc, _, _ := setupUserServiceMocks(t)

	_, err := svc.Register(context.Background(), user.CreateUserInput{
		Email:       "not-an-email",
		Password:    "short",
		PersianName: "ع",
	})
	assertKind(t, err, apperr.KindValidation)

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.ElementsMatch(t, []string{
		"فرمت آدرس ایمیل نامعتبر است",
		"رمز عبور باید حداقل 8 کاراکتر باشد",
		msgNameTooShort,
	}, appErr.Details)
}

func TestRegister_IgnoresRequestedRole(t *testing.T) {
	svc, mockUser, _ := setupUserServiceMocks(t)
	ctx := context.Background()

	var in user.CreateUserInput
	require.NoError(t, json.Unmarshal([]byte(`{
		"email": "mallory@example.com",
		"password": "secret-pass",
		"persian_name": "مهدی",
		"role": "admin",
		"status": "active"
	}`), &in))

	mockUser.EXPECT().EmailExists(ctx, "mallory@example.com").Return(false, nil)
	mockUser.EXPECT().CreateUser(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, u *user.User) error {
		assert.Equal(t, user.RoleUser, u.Role)
		assert.Equal(t, user.StatusPending, u.Status)
		u.ID = 9
		return nil
	})

	u, err := svc.Register(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, user.RoleUser, u.Role)
	assert.Equal(t, user.StatusPending, u.Status)
}

func TestRegister_ColumnLimits(t *testing.T) {
	long := func(n int) string { return strings.Repeat("ع", n) }
	longPhone := strings.Repeat("9", maxPhoneLen+1)

	tests := []struct {
		name string
		in   user.CreateUserInput
		want string
	}{
		{
			name: "email",
			in:   user.CreateUserInput{Email: strings.Repeat("a", 250) + "@example.com", Password: "secret-pass", PersianName: "علی"},
			want: msgEmailTooLong,
		},
		{
			name: "persian name",
			in:   user.CreateUserInput{Email: "a@example.com", Password: "secret-pass", PersianName: long(maxTextLen + 1)},
			want: msgNameTooLong,
		},
		{
			name: "english name",
			in:   user.CreateUserInput{Email: "a@example.com", Password: "secret-pass", PersianName: "علی", EnglishName: ptrString(strings.Repeat("x", maxTextLen+1))},
			want: msgEnNameTooLong,
		},
		{
			name: "phone",
			in:   user.CreateUserInput{Email: "a@example.com", Password: "secret-pass", PersianName: "علی", Phone: &longPhone},
			want: msgPhoneTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := setupUserServiceMocks(t)

			_, err := svc.Register(context.Background(), tt.in)
			assertKind(t, err, apperr.KindValidation)

			var appErr *apperr.Error
			require.ErrorAs(t, err, &appErr)
			assert.Contains(t, appErr.Details, tt.want)
		})
	}
}

func TestRegister_NameAtLimitIsAccepted(t *testing.T) {
	svc, mockUser, _ := setupUserServiceMocks(t)

	mockUser.EXPECT().EmailExists(gomock.Any(), "a@example.com").Return(false, nil)
	mockUser.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(nil)

	_, err := svc.Register(context.Background(), user.CreateUserInput{
		Email:       "a@example.com",
		Password:    "secret-pass",
		PersianName: strings.Repeat("ع", maxTextLen),
	})
	require.NoError(t, err)
}

func TestRegister_EmailTaken(t *testing.T) {
	svc, mockUser, _ := setupUserServiceMocks(t)

	mockUser.EXPECT().EmailExists(gomock.Any(), "taken@example.com").Return(true, nil)

	_, err := svc.Register(context.Background(), user.CreateUserInput{
		Email:       "taken@example.com",
		Password:    "secret-pass",
		PersianName: "مریم",
	})
	assertKind(t, err, apperr.KindValidation)
	assert.Contains(t, err.Error(), msgEmailTaken)
}

func TestRegister_ConcurrentSignupWithSameEmail(t *testing.T) {
	svc, mockUser, audit := setupUserServiceMocks(t)

	mockUser.EXPECT().EmailExists(gomock.Any(), "race@example.com").Return(false, nil)
	mockUser.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(gorm.ErrDuplicatedKey)

	_, err := svc.Register(context.Background(), user.CreateUserInput{
		Email:       "race@example.com",
		Password:    "secret-pass",
		PersianName: "مریم",
	})
	assertKind(t, err, apperr.KindValidation)
	assert.Equal(t, msgEmailTaken, err.Error())
	assert.Empty(t, audit.messages("ERROR"))
}

// --------------------- Authenticate ---------------------
func TestAuthenticate_PendingAccountIsRejected(t *testing.T) {
	svc, mockUser, _ := setupUserServiceMocks(t)

	mockUser.EXPECT().GetUserByEmail(gomock.Any(), "new@example.com").Return(user.User{
		ID:           3,
		Email:        "new@example.com",
		PasswordHash: hashed(t, "secret-pass"),
		Status:       user.StatusPending,
	}, nil)

	_, err := svc.Authenticate(context.Background(), "new@example.com", "secret-pass")
	assertKind(t, err, apperr.KindForbidden)
	assert.Equal(t, msgAccountInactive, err.Error())
}

func TestAuthenticate_UnknownEmail(t *testing.T) {
	svc, mockUser, _ := setupUserServiceMocks(t)

	mockUser.EXPECT().GetUserByEmail(gomock.Any(), "ghost@example.com").Return(user.User{}, gorm.ErrRecordNotFound)

	_, err := svc.Authenticate(context.Background(), "ghost@example.com", "whatever1")
	assertKind(t, err, apperr.KindUnauthorized)
}

func TestAuthenticate_WrongPasswordIsAudited(t *testing.T) {
	svc, mockUser, audit := setupUserServiceMocks(t)

	mockUser.EXPECT().GetUserByEmail(gomock.Any(), "ali@example.com").Return(user.User{
		ID:           1,
		PasswordHash: hashed(t, "secret-pass"),
		Status:       user.StatusActive,
	}, nil)

	_, err := svc.Authenticate(context.Background(), "ali@example.com", "wrong-pass")
	assertKind(t, err, apperr.KindUnauthorized)
	assert.Contains(t, audit.messages("WARNING"), "تلاش ورود ناموفق")
}

func TestAuthenticate_Success(t *testing.T) {
	svc, mockUser, audit := setupUserServiceMocks(t)
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	mockUser.EXPECT().GetUserByEmail(gomock.Any(), "ali@example.com").Return(user.User{
		ID:           1,
		Email:        "ali@example.com",
		PasswordHash: hashed(t, "secret-pass"),
		Status:       user.StatusActive,
	}, nil)
	mockUser.EXPECT().TouchLastLogin(gomock.Any(), uint(1), now).Return(nil)

	u, err := svc.Authenticate(context.Background(), "ali@example.com", "secret-pass")
	require.NoError(t, err)
	require.NotNil(t, u.LastLoginAt)
	assert.Equal(t, now, *u.LastLoginAt)
	assert.Contains(t, audit.messages("INFO"), "ورود موفق کاربر")
}

// --------------------- Login ---------------------
func TestLogin_IssuesToken(t *testing.T) {
	svc, mockUser, _ := setupUserServiceMocks(t)

	mockUser.EXPECT().GetUserByEmail(gomock.Any(), "admin@example.com").Return(user.User{
		ID:           9,
		Email:        "admin@example.com",
		PasswordHash: hashed(t, "secret-pass"),
		Role:         user.RoleAdmin,
		Status:       user.StatusActive,
	}, nil)
	mockUser.EXPECT().TouchLastLogin(gomock.Any(), uint(9), gomock.Any()).Return(nil)

	oldGen := middleware.GenerateToken
	middleware.GenerateToken = func(userID uint, email, role string, ttl time.Duration) (string, error) {
		assert.Equal(t, uint(9), userID)
		assert.Equal(t, "admin", role)
		assert.Equal(t, time.Hour, ttl)
		return "token123", nil
	}
	defer func() { middleware.GenerateToken = oldGen }()

	token, u, err := svc.Login(context.Background(), user.LoginInput{Email: "admin@example.com", Password: "secret-pass"})
	require.NoError(t, err)
	assert.Equal(t, "token123", token)
	assert.Equal(t, uint(9), u.ID)
}

// --------------------- UpdateUser ---------------------
func TestUpdateUser_DropsDisallowedFields(t *testing.T) {
	svc, mockUser, _ := setupUserServiceMocks(t)

	mockUser.EXPECT().GetUserByID(gomock.Any(), uint(4)).Return(user.User{ID: 4}, nil).Times(2)
	mockUser.EXPECT().UpdateUser(gomock.Any(), uint(4), map[string]any{"persian_name": "رضا"}).Return(nil)

	_, err := svc.UpdateUser(context.Background(), 4, rawPatch(t, `{"persian_name":"رضا","role":"admin","password_hash":"x"}`))
	assert.NoError(t, err)
}

func TestUpdateUser_OnlyDisallowedFields(t *testing.T) {
	svc, mockUser, _ := setupUserServiceMocks(t)

	mockUser.EXPECT().GetUserByID(gomock.Any(), uint(4)).Return(user.User{ID: 4}, nil)

	_, err := svc.UpdateUser(context.Background(), 4, rawPatch(t, `{"role":"admin"}`))
	assertKind(t, err, apperr.KindValidation)
	assert.Equal(t, msgNoUpdateFields, err.Error())
}

func TestUpdateUser_NotFound(t *testing.T) {
	svc, mockUser, _ := setupUserServiceMocks(t)

	mockUser.EXPECT().GetUserByID(gomock.Any(), uint(4)).Return(user.User{}, gorm.ErrRecordNotFound)

	_, err := svc.UpdateUser(context.Background(), 4, rawPatch(t, `{"persian_name":"رضا"}`))
	assertKind(t, err, apperr.KindNotFound)
}

func TestUpdateUser_PhoneTooLong(t *testing.T) {
	svc, mockUser, _ := setupUserServiceMocks(t)

	mockUser.EXPECT().GetUserByID(gomock.Any(), uint(4)).Return(user.User{ID: 4}, nil)

	_, err := svc.UpdateUser(context.Background(), 4, rawPatch(t, `{"phone":"`+strings.Repeat("1", maxPhoneLen+1)+`"}`))
	assertKind(t, err, apperr.KindValidation)
}

// --------------------- SetAccountState ---------------------
func TestSetAccountState_ActivatesPendingAccount(t *testing.T) {
	svc, mockUser, audit := setupUserServiceMocks(t)

	gomock.InOrder(
		mockUser.EXPECT().GetUserByID(gomock.Any(), uint(7)).Return(user.User{ID: 7, Role: user.RoleUser, Status: user.StatusPending}, nil),
		mockUser.EXPECT().UpdateUser(gomock.Any(), uint(7), map[string]any{"status": "active"}).Return(nil),
		mockUser.EXPECT().GetUserByID(gomock.Any(), uint(7)).Return(user.User{ID: 7, Role: user.RoleUser, Status: user.StatusActive}, nil),
	)

	u, err := svc.SetAccountState(context.Background(), 1, user.AccountStateInput{UserID: 7, Status: "active"})
	require.NoError(t, err)
	assert.Equal(t, user.StatusActive, u.Status)
	assert.Equal(t, []string{"وضعیت حساب کاربر تغییر کرد"}, audit.messages("WARNING"))
}

func TestSetAccountState_PromotesRole(t *testing.T) {
	svc, mockUser, _ := setupUserServiceMocks(t)

	mockUser.EXPECT().GetUserByID(gomock.Any(), uint(7)).Return(user.User{ID: 7, Status: user.StatusActive}, nil).Times(2)
	mockUser.EXPECT().UpdateUser(gomock.Any(), uint(7), map[string]any{"status": "active", "role": "moderator"}).Return(nil)

	_, err := svc.SetAccountState(context.Background(), 1, user.AccountStateInput{UserID: 7, Status: "active", Role: "moderator"})
	require.NoError(t, err)
}

func TestSetAccountState_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		actorID uint
		in      user.AccountStateInput
		kind    apperr.Kind
	}{
		{"missing user", 1, user.AccountStateInput{Status: "active"}, apperr.KindValidation},
		{"unknown status", 1, user.AccountStateInput{UserID: 7, Status: "banned"}, apperr.KindValidation},
		{"unknown role", 1, user.AccountStateInput{UserID: 7, Status: "active", Role: "root"}, apperr.KindValidation},
		{"own account", 7, user.AccountStateInput{UserID: 7, Status: "inactive"}, apperr.KindForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := setupUserServiceMocks(t)

			_, err := svc.SetAccountState(context.Background(), tt.actorID, tt.in)
			assertKind(t, err, tt.kind)
		})
	}
}

func TestSetAccountState_UnknownUser(t *testing.T) {
	svc, mockUser, _ := setupUserServiceMocks(t)

	mockUser.EXPECT().GetUserByID(gomock.Any(), uint(404)).Return(user.User{}, gorm.ErrRecordNotFound)

	_, err := svc.SetAccountState(context.Background(), 1, user.AccountStateInput{UserID: 404, Status: "active"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSetAccountStateByEmail_BootstrapsAdmin(t *testing.T) {
	svc, mockUser, _ := setupUserServiceMocks(t)

	mockUser.EXPECT().GetUserByEmail(gomock.Any(), "root@example.com").Return(user.User{ID: 1, Status: user.StatusPending}, nil)
	mockUser.EXPECT().GetUserByID(gomock.Any(), uint(1)).Return(user.User{ID: 1, Status: user.StatusPending}, nil)
	mockUser.EXPECT().UpdateUser(gomock.Any(), uint(1), map[string]any{"status": "active", "role": "admin"}).Return(nil)
	mockUser.EXPECT().GetUserByID(gomock.Any(), uint(1)).Return(user.User{ID: 1, Role: user.RoleAdmin, Status: user.StatusActive}, nil)

	u, err := svc.SetAccountStateByEmail(context.Background(), " Root@Example.com ", "active", "admin")
	require.NoError(t, err)
	assert.Equal(t, user.RoleAdmin, u.Role)
}

// --------------------- DeleteUser ---------------------
func TestDeleteUser(t *testing.T) {
	svc, mockUser, audit := setupUserServiceMocks(t)

	mockUser.EXPECT().SoftDeleteUser(gomock.Any(), uint(5), uint(1)).Return(int64(1), nil)
	res, err := svc.DeleteUser(context.Background(), 5, 1)
	require.NoError(t, err)
	assert.True(t, res.Deleted)
	assert.Len(t, audit.messages("WARNING"), 1)

	mockUser.EXPECT().SoftDeleteUser(gomock.Any(), uint(5), uint(1)).Return(int64(0), nil)
	_, err = svc.DeleteUser(context.Background(), 5, 1)
	assertKind(t, err, apperr.KindNotFound)
}

// --------------------- ListUsers ---------------------
func TestListUsers(t *testing.T) {
	svc, mockUser, _ := setupUserServiceMocks(t)
	p := pagination.Params{Page: 2, PerPage: 10}

	mockUser.EXPECT().ListUsers(gomock.Any(), user.ListFilter{Role: "admin"}, 10, 10).
		Return([]user.User{{ID: 11}}, int64(11), nil)

	res, err := svc.ListUsers(context.Background(), user.ListFilter{Role: "admin"}, p)
	require.NoError(t, err)
	assert.Len(t, res.Users, 1)
	assert.Equal(t, 2, res.Pagination.TotalPages)
	assert.False(t, res.Pagination.HasNext)
	assert.True(t, res.Pagination.HasPrev)
}

func TestListUsers_InvalidFilter(t *testing.T) {
	svc, _, _ := setupUserServiceMocks(t)

	_, err := svc.ListUsers(context.Background(), user.ListFilter{Status: "banned"}, pagination.Params{Page: 1, PerPage: 10})
	assertKind(t, err, apperr.KindValidation)
}

func TestListUsers_RepoError(t *testing.T) {
	svc, mockUser, _ := setupUserServiceMocks(t)

	mockUser.EXPECT().ListUsers(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, int64(0), errors.New("db down"))

	_, err := svc.ListUsers(context.Background(), user.ListFilter{}, pagination.Params{Page: 1, PerPage: 10})
	assertKind(t, err, apperr.KindInternal)
}
