package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/formbuilder-go/internal/api/handlers"
	"github.com/linskybing/formbuilder-go/internal/api/middleware"
	"github.com/linskybing/formbuilder-go/pkg/response"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

type Deps struct {
	Handlers       *handlers.Handlers
	Auth           *middleware.Auth
	Metrics        *middleware.HTTPMetrics
	Gatherer       prometheus.Gatherer
	AllowedOrigins []string
	Logger         *zap.Logger
	// Swagger serves /swagger/*any when set.
	Swagger bool
}

// New builds the engine with the middleware chain and every API route.
func New(d Deps) *gin.Engine {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	r := gin.New()
	r.Use(middleware.Recovery(d.Logger), middleware.RequestID(), middleware.RequestLogger(d.Logger))
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware())
	}
	r.Use(middleware.CORSMiddleware(d.AllowedOrigins))

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "مسیر درخواستی یافت نشد")
	})

	h := d.Handlers
	r.GET("/healthz", h.System.Health)
	if d.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}
	if d.Swagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group("/api")
	registerForms(api, h.Form)
	registerWidgets(api, h.Widget)
	registerResponses(api, h.Response)
	registerUsers(api, h.User, d.Auth)
	registerLogs(api, h.Log)
	registerSettings(api, h.Setting)
	registerSystem(api, h.System)
	return r
}

func registerForms(api *gin.RouterGroup, h *handlers.FormHandler) {
	forms := api.Group("/forms")
	forms.Any("/create", handlers.Only(http.MethodPost, h.CreateForm))
	forms.Any("/update", handlers.Only(http.MethodPut, h.UpdateForm))
	forms.Any("/delete", handlers.Only(http.MethodDelete, h.DeleteForm))
	forms.Any("/user_forms", handlers.Only(http.MethodGet, h.ListUserForms))
	forms.Any("/get", handlers.Only(http.MethodGet, h.GetForm))
	forms.Any("/publish", handlers.Only(http.MethodPost, h.PublishForm))
	forms.Any("/public", handlers.Only(http.MethodGet, h.ListPublicForms))
	forms.Any("/stats", handlers.Only(http.MethodGet, h.FormStats))
}

func registerWidgets(api *gin.RouterGroup, h *handlers.WidgetHandler) {
	widgets := api.Group("/widgets")
	widgets.Any("/library", handlers.Only(http.MethodGet, h.Library))
	widgets.Any("/create", handlers.Only(http.MethodPost, h.CreateWidget))
	widgets.Any("/update", handlers.Only(http.MethodPut, h.UpdateWidget))
	widgets.Any("/get", handlers.Only(http.MethodGet, h.GetByCode))
	widgets.Any("/popular", handlers.Only(http.MethodGet, h.Popular))
	widgets.Any("/usage", handlers.Only(http.MethodPost, h.IncrementUsage))
}

func registerResponses(api *gin.RouterGroup, h *handlers.ResponseHandler) {
	responses := api.Group("/responses")
	responses.Any("/submit", handlers.Only(http.MethodPost, h.Submit))
	responses.Any("/get", handlers.Only(http.MethodGet, h.GetResponse))
	responses.Any("/list", handlers.Only(http.MethodGet, h.ListResponses))
	responses.Any("/status", handlers.Only(http.MethodPut, h.UpdateStatus))
	responses.Any("/rate", handlers.Only(http.MethodPut, h.Rate))
	responses.Any("/delete", handlers.Only(http.MethodDelete, h.DeleteResponse))
	responses.Any("/stats", handlers.Only(http.MethodGet, h.Stats))
	responses.Any("/search", handlers.Only(http.MethodGet, h.Search))
	responses.Any("/export", handlers.Only(http.MethodPost, h.Export))
}

func registerUsers(api *gin.RouterGroup, h *handlers.UserHandler, auth *middleware.Auth) {
	users := api.Group("/users")
	users.Any("/register", handlers.Only(http.MethodPost, h.Register))
	users.Any("/login", handlers.Only(http.MethodPost, h.Login))
	users.Any("/logout", handlers.Only(http.MethodPost, h.Logout))

	// The method guard runs first so a wrong verb is a 405 even without a token.
	jwt := middleware.JWTAuthMiddleware()
	users.Any("/me", handlers.Method(http.MethodGet), jwt, auth.Active(), h.Me)
	users.Any("/update", handlers.Method(http.MethodPut), jwt, auth.Active(), h.UpdateUser)
	users.Any("/delete", handlers.Method(http.MethodDelete), jwt, auth.Active(), h.DeleteUser)
	users.Any("/list", handlers.Method(http.MethodGet), jwt, auth.Admin(), h.ListUsers)
	users.Any("/status", handlers.Method(http.MethodPut), jwt, auth.Admin(), h.SetAccountState)
	users.Any("/profile/:id", handlers.Method(http.MethodGet), jwt, auth.UserOrAdmin(), h.GetUser)
}

func registerLogs(api *gin.RouterGroup, h *handlers.LogHandler) {
	logs := api.Group("/logs")
	logs.Any("/create", handlers.Only(http.MethodPost, h.CreateLog))
	logs.Any("/list", handlers.Only(http.MethodGet, h.ListLogs))
	logs.Any("/clear", h.ClearLogs)
	logs.Any("/stats", handlers.Only(http.MethodGet, h.LogStats))
	logs.GET("/stream", h.Stream)
}

func registerSettings(api *gin.RouterGroup, h *handlers.SettingHandler) {
	settings := api.Group("/settings")
	settings.Any("/get", handlers.Only(http.MethodGet, h.GetSettings))
	settings.Any("/update", h.UpdateSetting)
	settings.Any("/test", handlers.Only(http.MethodGet, h.TestConnection))
}

func registerSystem(api *gin.RouterGroup, h *handlers.SystemHandler) {
	system := api.Group("/system")
	system.Any("/status", handlers.Only(http.MethodGet, h.Status))
	system.Any("/info", handlers.Only(http.MethodGet, h.Info))
}
