package user

import (
	"github.com/linskybing/formbuilder-go/pkg/jsonval"
	"github.com/linskybing/formbuilder-go/pkg/pagination"
)

type CreateUserInput struct {
	Email       string         `json:"email" example:"a@b.com"`
	Password    string         `json:"password" example:"longenough1"`
	PersianName string         `json:"persian_name" example:"علی"`
	EnglishName *string        `json:"english_name" example:"Ali"`
	Phone       *string        `json:"phone" example:"09120000000"`
	Preferences *jsonval.Value `json:"preferences" swaggertype:"object"`
}

// AccountStateInput is the admin request that moves an account between
// statuses and optionally changes its role.
type AccountStateInput struct {
	UserID uint   `json:"user_id" example:"7"`
	Status string `json:"status" example:"active"`
	Role   string `json:"role,omitempty" example:"user"`
}

type LoginInput struct {
	Email    string `json:"email" example:"a@b.com"`
	Password string `json:"password" example:"longenough1"`
}

type ListFilter struct {
	Role   string
	Status string
	Search string
}

type ListResult struct {
	Users      []User          `json:"users"`
	Pagination pagination.Meta `json:"pagination"`
}

type DeleteResult struct {
	UserID  uint `json:"user_id"`
	Deleted bool `json:"deleted"`
}
