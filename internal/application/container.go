package application

import (
	"time"

	"github.com/linskybing/formbuilder-go/internal/repository"
	"go.uber.org/zap"
)

// Options carries the collaborators that are not repositories. Store and
// Hub may be nil.
type Options struct {
	Logger      *zap.Logger
	Store       ObjectStore
	Hub         Publisher
	Ping        Pinger
	TokenTTL    time.Duration
	Environment string
}

type Services struct {
	Syslog       *SyslogService
	User         *UserService
	Form         *FormService
	FormResponse *FormResponseService
	Widget       *WidgetService
	Setting      *SettingService
	System       *SystemService
}

func New(repos *repository.Repos, opts Options) *Services {
	logger := nopIfNil(opts.Logger)
	audit := NewSyslogService(repos, logger, opts.Hub)
	return &Services{
		Syslog:       audit,
		User:         NewUserService(repos, audit, logger, opts.TokenTTL),
		Form:         NewFormService(repos, audit, logger),
		FormResponse: NewFormResponseService(repos, audit, opts.Store, logger),
		Widget:       NewWidgetService(repos, audit, logger),
		Setting:      NewSettingService(repos, audit, logger),
		System:       NewSystemService(opts.Ping, opts.Environment, logger),
	}
}
