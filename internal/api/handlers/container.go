package handlers

import (
	"github.com/linskybing/formbuilder-go/internal/application"
	"github.com/linskybing/formbuilder-go/internal/config"
	"github.com/linskybing/formbuilder-go/internal/logstream"
	"go.uber.org/zap"
)

type Handlers struct {
	Form     *FormHandler
	Widget   *WidgetHandler
	Response *ResponseHandler
	User     *UserHandler
	Log      *LogHandler
	Setting  *SettingHandler
	System   *SystemHandler
}

// New wires one handler per resource. hub may be nil when log streaming is
// off.
func New(svc *application.Services, cfg *config.Config, hub *logstream.Hub, logger *zap.Logger) *Handlers {
	return &Handlers{
		Form:     NewFormHandler(svc.Form),
		Widget:   NewWidgetHandler(svc.Widget),
		Response: NewResponseHandler(svc.FormResponse),
		User:     NewUserHandler(svc.User, cfg.JWT.TTL, cfg.Server.IsProduction),
		Log:      NewLogHandler(svc.Syslog, hub, cfg.Server.AllowedOrigins, logger),
		Setting:  NewSettingHandler(svc.Setting, svc.System),
		System:   NewSystemHandler(svc.System),
	}
}
