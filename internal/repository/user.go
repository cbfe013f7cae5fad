package repository

import (
	"context"
	"time"

	"github.com/linskybing/formbuilder-go/internal/domain/user"
	"gorm.io/gorm"
)

type UserRepo interface {
	CreateUser(ctx context.Context, u *user.User) error
	GetUserByID(ctx context.Context, id uint) (user.User, error)
	GetUserByEmail(ctx context.Context, email string) (user.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdateUser(ctx context.Context, id uint, updates map[string]any) error
	SoftDeleteUser(ctx context.Context, id, actorID uint) (int64, error)
	ListUsers(ctx context.Context, filter user.ListFilter, limit, offset int) ([]user.User, int64, error)
	TouchLastLogin(ctx context.Context, id uint, at time.Time) error
	WithTx(tx *gorm.DB) UserRepo
}

type DBUserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *DBUserRepo {
	return &DBUserRepo{
		db: db,
	}
}

func (r *DBUserRepo) CreateUser(ctx context.Context, u *user.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *DBUserRepo) GetUserByID(ctx context.Context, id uint) (user.User, error) {
	var u user.User
	err := r.db.WithContext(ctx).First(&u, id).Error
	return u, err
}

func (r *DBUserRepo) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	var u user.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	return u, err
}

func (r *DBUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&user.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *DBUserRepo) UpdateUser(ctx context.Context, id uint, updates map[string]any) error {
	res := r.db.WithContext(ctx).Model(&user.User{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *DBUserRepo) SoftDeleteUser(ctx context.Context, id, actorID uint) (int64, error) {
	res := r.db.WithContext(ctx).Model(&user.User{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"deleted_at": time.Now(),
			"deleted_by": actorID,
			"status":     user.StatusInactive,
		})
	return res.RowsAffected, res.Error
}

func (r *DBUserRepo) ListUsers(ctx context.Context, filter user.ListFilter, limit, offset int) ([]user.User, int64, error) {
	var (
		users []user.User
		total int64
	)

	query := r.db.WithContext(ctx).Model(&user.User{})
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("(persian_name ILIKE ? OR english_name ILIKE ? OR email ILIKE ?)", like, like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&users).Error
	return users, total, err
}

func (r *DBUserRepo) TouchLastLogin(ctx context.Context, id uint, at time.Time) error {
	return r.db.WithContext(ctx).Model(&user.User{}).
		Where("id = ?", id).
		UpdateColumn("last_login_at", at).Error
}

func (r *DBUserRepo) WithTx(tx *gorm.DB) UserRepo {
	if tx == nil {
		return r
	}
	return &DBUserRepo{
		db: tx,
	}
}
