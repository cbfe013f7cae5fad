package repository

import (
	"gorm.io/gorm"
)

type Repos struct {
	User         UserRepo
	Form         FormRepo
	FormResponse FormResponseRepo
	Widget       WidgetRepo
	Syslog       SyslogRepo
	Setting      SettingRepo

	db *gorm.DB
}

func NewRepositories(db *gorm.DB) *Repos {
	return &Repos{
		User:         NewUserRepo(db),
		Form:         NewFormRepo(db),
		FormResponse: NewFormResponseRepo(db),
		Widget:       NewWidgetRepo(db),
		Syslog:       NewSyslogRepo(db),
		Setting:      NewSettingRepo(db),
		db:           db,
	}
}

func (r *Repos) WithTx(tx *gorm.DB) *Repos {
	return &Repos{
		User:         r.User.WithTx(tx),
		Form:         r.Form.WithTx(tx),
		FormResponse: r.FormResponse.WithTx(tx),
		Widget:       r.Widget.WithTx(tx),
		Syslog:       r.Syslog.WithTx(tx),
		Setting:      r.Setting.WithTx(tx),
		db:           tx,
	}
}

// ExecTx runs fn inside one transaction. Without a database handle (as in
// unit tests built on mocks) fn runs against the receiver directly.
func (r *Repos) ExecTx(fn func(*Repos) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		txRepos := r.WithTx(tx)
		return fn(txRepos)
	})
}
