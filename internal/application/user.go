package application

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/linskybing/formbuilder-go/internal/api/middleware"
	"github.com/linskybing/formbuilder-go/internal/domain/user"
	"github.com/linskybing/formbuilder-go/internal/repository"
	"github.com/linskybing/formbuilder-go/pkg/apperr"
	"github.com/linskybing/formbuilder-go/pkg/pagination"
	"github.com/linskybing/formbuilder-go/pkg/patch"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	categoryUsers = "USER_MANAGEMENT"

	// BcryptCost is the work factor for stored password hashes.
	BcryptCost = 12

	msgUserNotFound       = "کاربر یافت نشد"
	msgEmailTaken         = "این آدرس ایمیل قبلاً ثبت شده است"
	msgInvalidCredentials = "ایمیل یا رمز عبور اشتباه است"
	msgAccountInactive    = "حساب کاربری غیرفعال است"
	msgNameTooShort       = "نام فارسی باید حداقل 2 کاراکتر باشد"
	msgSelfAccountChange  = "امکان تغییر وضعیت یا نقش حساب خودتان وجود ندارد"
	msgInvalidRole        = "نقش کاربر نامعتبر است"
	msgInvalidUserStatus  = "وضعیت کاربر نامعتبر است"
)

var (
	msgEmailTooLong  = msgTooLong("آدرس ایمیل", maxTextLen)
	msgNameTooLong   = msgTooLong("نام فارسی", maxTextLen)
	msgEnNameTooLong = msgTooLong("نام انگلیسی", maxTextLen)
	msgPhoneTooLong  = msgTooLong("شماره تلفن", maxPhoneLen)
)

var userPatch = patch.NewSchema(map[string]patch.Field{
	"persian_name": {Type: patch.String, Validate: patch.All(patch.MinLen(2, msgNameTooShort), patch.MaxLen(maxTextLen, msgNameTooLong))},
	"english_name": {Type: patch.NullableString, Validate: patch.MaxLen(maxTextLen, msgEnNameTooLong)},
	"phone":        {Type: patch.NullableString, Validate: patch.MaxLen(maxPhoneLen, msgPhoneTooLong)},
	"avatar_url":   {Type: patch.NullableString},
	"preferences":  {Type: patch.JSON},
})

var validate = validator.New()

type UserService struct {
	Repos    *repository.Repos
	audit    Auditor
	logger   *zap.Logger
	fail     failures
	tokenTTL time.Duration
	now      func() time.Time
}

func NewUserService(repos *repository.Repos, audit Auditor, logger *zap.Logger, tokenTTL time.Duration) *UserService {
	return &UserService{
		Repos:    repos,
		audit:    audit,
		logger:   nopIfNil(logger),
		fail:     newFailures(logger, audit, categoryUsers),
		tokenTTL: tokenTTL,
		now:      time.Now,
	}
}

func validateUserInput(in user.CreateUserInput) []string {
	var errs []string
	email := strings.TrimSpace(in.Email)
	if email == "" {
		errs = append(errs, "آدرس ایمیل الزامی است")
	} else if tooLong(email, maxTextLen) {
		errs = append(errs, msgEmailTooLong)
	} else if validate.Var(email, "email") != nil {
		errs = append(errs, "فرمت آدرس ایمیل نامعتبر است")
	}
	if in.Password == "" {
		errs = append(errs, "رمز عبور الزامی است")
	} else if utf8.RuneCountInString(in.Password) < 8 {
		errs = append(errs, "رمز عبور باید حداقل 8 کاراکتر باشد")
	}
	name := strings.TrimSpace(in.PersianName)
	if name == "" {
		errs = append(errs, "نام فارسی الزامی است")
	} else if utf8.RuneCountInString(name) < 2 {
		errs = append(errs, msgNameTooShort)
	} else if tooLong(name, maxTextLen) {
		errs = append(errs, msgNameTooLong)
	}
	if tooLongPtr(in.EnglishName, maxTextLen) {
		errs = append(errs, msgEnNameTooLong)
	}
	if tooLongPtr(in.Phone, maxPhoneLen) {
		errs = append(errs, msgPhoneTooLong)
	}
	return errs
}

// Register creates a pending account with the user role. Accounts must be
// activated by an admin before they can log in.
func (s *UserService) Register(ctx context.Context, in user.CreateUserInput) (user.User, error) {
	if errs := validateUserInput(in); len(errs) > 0 {
		return user.User{}, apperr.Validation(msgInvalidInput, errs...)
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))

	taken, err := s.Repos.User.EmailExists(ctx, email)
	if err != nil {
		return user.User{}, s.fail.internal(ctx, err, "check email")
	}
	if taken {
		return user.User{}, apperr.Validation(msgEmailTaken, msgEmailTaken)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), BcryptCost)
	if err != nil {
		return user.User{}, s.fail.internal(ctx, err, "hash password")
	}

	u := user.User{
		Email:        email,
		PasswordHash: string(hashed),
		PersianName:  strings.TrimSpace(in.PersianName),
		EnglishName:  in.EnglishName,
		Phone:        in.Phone,
		Role:         user.RoleUser,
		Status:       user.StatusPending,
	}
	if in.Preferences != nil {
		u.Preferences = in.Preferences.Column()
	}

	if err := s.Repos.User.CreateUser(ctx, &u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return user.User{}, apperr.Validation(msgEmailTaken, msgEmailTaken)
		}
		return user.User{}, s.fail.internal(ctx, err, "create user")
	}

	s.audit.Info(ctx, categoryUsers, "کاربر جدید ایجاد شد", map[string]any{
		"user_id": u.ID,
		"email":   u.Email,
		"role":    u.Role,
	})
	return u, nil
}

// Authenticate checks the credentials of a live account. The status gate runs
// before the password check.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (user.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := s.Repos.User.GetUserByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return user.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return user.User{}, s.fail.internal(ctx, err, "load user by email")
	}

	if !u.IsActive() {
		return user.User{}, ErrAccountInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		s.audit.Warning(ctx, categoryUsers, "تلاش ورود ناموفق", map[string]any{"email": email})
		return user.User{}, ErrInvalidCredentials
	}

	now := s.now()
	if err := s.Repos.User.TouchLastLogin(ctx, u.ID, now); err != nil {
		return user.User{}, s.fail.internal(ctx, err, "update last login", zap.Uint("user_id", u.ID))
	}
	u.LastLoginAt = &now

	s.audit.Info(ctx, categoryUsers, "ورود موفق کاربر", map[string]any{
		"user_id": u.ID,
		"email":   u.Email,
		"role":    u.Role,
	})
	return u, nil
}

// Login authenticates and issues a token.
func (s *UserService) Login(ctx context.Context, in user.LoginInput) (string, user.User, error) {
	u, err := s.Authenticate(ctx, in.Email, in.Password)
	if err != nil {
		return "", user.User{}, err
	}
	token, err := middleware.GenerateToken(u.ID, u.Email, string(u.Role), s.tokenTTL)
	if err != nil {
		return "", user.User{}, s.fail.internal(ctx, err, "sign token", zap.Uint("user_id", u.ID))
	}
	return token, u, nil
}

func (s *UserService) GetUser(ctx context.Context, id uint) (user.User, error) {
	u, err := s.Repos.User.GetUserByID(ctx, id)
	if err != nil {
		return u, s.fail.db(ctx, err, ErrUserNotFound, "get user", zap.Uint("user_id", id))
	}
	return u, nil
}

func (s *UserService) UpdateUser(ctx context.Context, id uint, raw map[string]json.RawMessage) (user.User, error) {
	if _, err := s.GetUser(ctx, id); err != nil {
		return user.User{}, err
	}

	res, err := userPatch.Apply(raw)
	if err != nil {
		return user.User{}, patchError(err)
	}
	if err := s.Repos.User.UpdateUser(ctx, id, res.Updates); err != nil {
		return user.User{}, s.fail.db(ctx, err, ErrUserNotFound, "update user", zap.Uint("user_id", id))
	}

	s.audit.Info(ctx, categoryUsers, "اطلاعات کاربر بروزرسانی شد", map[string]any{
		"user_id":        id,
		"updated_fields": res.Applied,
	})
	return s.GetUser(ctx, id)
}

// DeleteUser soft deletes id and marks it inactive.
func (s *UserService) DeleteUser(ctx context.Context, id, actorID uint) (user.DeleteResult, error) {
	rows, err := s.Repos.User.SoftDeleteUser(ctx, id, actorID)
	if err != nil {
		return user.DeleteResult{}, s.fail.internal(ctx, err, "delete user", zap.Uint("user_id", id))
	}
	if rows == 0 {
		return user.DeleteResult{}, ErrUserNotFound
	}

	s.audit.Warning(ctx, categoryUsers, "کاربر حذف شد (نرم)", map[string]any{
		"user_id":    id,
		"deleted_by": actorID,
	})
	return user.DeleteResult{UserID: id, Deleted: true}, nil
}

func (s *UserService) ListUsers(ctx context.Context, filter user.ListFilter, p pagination.Params) (user.ListResult, error) {
	if filter.Role != "" && !slices.Contains(user.Roles, filter.Role) {
		return user.ListResult{}, apperr.Validation(msgInvalidRole)
	}
	if filter.Status != "" && !slices.Contains(user.Statuses, filter.Status) {
		return user.ListResult{}, apperr.Validation(msgInvalidUserStatus)
	}

	users, total, err := s.Repos.User.ListUsers(ctx, filter, p.Limit(), p.Offset())
	if err != nil {
		return user.ListResult{}, s.fail.internal(ctx, err, "list users")
	}
	if users == nil {
		users = []user.User{}
	}
	return user.ListResult{Users: users, Pagination: pagination.BuildMeta(total, p)}, nil
}

// SetAccountState changes the status and, when given, the role of an account.
// actorID is the admin performing the change; zero means the operator CLI.
// Admins cannot change their own account.
func (s *UserService) SetAccountState(ctx context.Context, actorID uint, in user.AccountStateInput) (user.User, error) {
	var errs []string
	if in.UserID == 0 {
		errs = append(errs, "شناسه کاربر الزامی است")
	}
	if !slices.Contains(user.Statuses, in.Status) {
		errs = append(errs, msgInvalidUserStatus)
	}
	if in.Role != "" && !slices.Contains(user.Roles, in.Role) {
		errs = append(errs, msgInvalidRole)
	}
	if len(errs) > 0 {
		return user.User{}, apperr.Validation(msgInvalidInput, errs...)
	}
	if actorID != 0 && actorID == in.UserID {
		return user.User{}, ErrSelfAccountChange
	}

	current, err := s.GetUser(ctx, in.UserID)
	if err != nil {
		return user.User{}, err
	}

	updates := map[string]any{"status": in.Status}
	if in.Role != "" {
		updates["role"] = in.Role
	}
	if err := s.Repos.User.UpdateUser(ctx, in.UserID, updates); err != nil {
		return user.User{}, s.fail.db(ctx, err, ErrUserNotFound, "set account state", zap.Uint("user_id", in.UserID))
	}

	s.audit.Warning(ctx, categoryUsers, "وضعیت حساب کاربر تغییر کرد", map[string]any{
		"user_id":         in.UserID,
		"changed_by":      actorID,
		"previous_status": current.Status,
		"status":          in.Status,
		"previous_role":   current.Role,
		"role":            in.Role,
	})
	return s.GetUser(ctx, in.UserID)
}

// SetAccountStateByEmail resolves email and applies SetAccountState as the
// operator.
func (s *UserService) SetAccountStateByEmail(ctx context.Context, email, status, role string) (user.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := s.Repos.User.GetUserByEmail(ctx, email)
	if err != nil {
		return user.User{}, s.fail.db(ctx, err, ErrUserNotFound, "load user by email")
	}
	return s.SetAccountState(ctx, 0, user.AccountStateInput{UserID: u.ID, Status: status, Role: role})
}
