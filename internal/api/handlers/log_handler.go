package handlers

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/linskybing/formbuilder-go/internal/application"
	"github.com/linskybing/formbuilder-go/internal/domain/syslog"
	"github.com/linskybing/formbuilder-go/internal/logstream"
	"github.com/linskybing/formbuilder-go/pkg/response"
	"go.uber.org/zap"
)

type LogHandler struct {
	svc      *application.SyslogService
	hub      *logstream.Hub
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

// NewLogHandler builds the log endpoints. hub may be nil, in which case the
// stream endpoint reports the feature as unavailable. Websocket origins are
// checked against allowedOrigins; "*" accepts any.
func NewLogHandler(svc *application.SyslogService, hub *logstream.Hub, allowedOrigins []string, logger *zap.Logger) *LogHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogHandler{
		svc: svc,
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || slices.Contains(allowedOrigins, "*") || slices.Contains(allowedOrigins, origin)
			},
		},
		logger: logger,
	}
}

// CreateLog godoc
// @Summary Record a client log entry
// @Tags logs
// @Accept json
// @Produce json
// @Param input body syslog.CreateLogInput true "Log entry"
// @Success 200 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Router /api/logs/create [post]
func (h *LogHandler) CreateLog(c *gin.Context) {
	var input syslog.CreateLogInput
	if !bindJSON(c, &input) {
		return
	}

	if err := h.svc.CreateFromInput(c.Request.Context(), input); err != nil {
		fail(c, err, "خطا در ثبت لاگ")
		return
	}
	response.Success(c, nil, "لاگ با موفقیت ثبت شد")
}

// ListLogs godoc
// @Summary Newest log entries
// @Tags logs
// @Produce json
// @Param limit query int false "Max entries (1-500)" default(20)
// @Success 200 {object} response.SuccessResponse{data=[]syslog.Entry}
// @Router /api/logs/list [get]
func (h *LogHandler) ListLogs(c *gin.Context) {
	logs, err := h.svc.Recent(c.Request.Context(), c.Query("limit"))
	if err != nil {
		fail(c, err, "خطا در بارگذاری لاگ‌ها")
		return
	}
	response.Success(c, logs, "لیست لاگ‌ها با موفقیت بارگذاری شد")
}

// ClearLogs godoc
// @Summary Drop all but the newest 100 entries
// @Tags logs
// @Produce json
// @Success 200 {object} response.SuccessResponse{data=syslog.ClearResult}
// @Router /api/logs/clear [post]
func (h *LogHandler) ClearLogs(c *gin.Context) {
	res, err := h.svc.Clear(c.Request.Context())
	if err != nil {
		fail(c, err, "خطا در پاکسازی لاگ‌ها")
		return
	}
	response.Success(c, res, "لاگ‌های قدیمی پاکسازی شدند")
}

// LogStats godoc
// @Summary Log counts by level
// @Tags logs
// @Produce json
// @Success 200 {object} response.SuccessResponse{data=syslog.Stats}
// @Router /api/logs/stats [get]
func (h *LogHandler) LogStats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		fail(c, err, "خطا در بارگذاری آمار لاگ‌ها")
		return
	}
	response.Success(c, stats, "آمار لاگ‌ها با موفقیت بارگذاری شد")
}

// Stream godoc
// @Summary Live feed of new log entries
// @Description Upgrades to a websocket and pushes JSON arrays of entries.
// @Tags logs
// @Param level query string false "INFO, WARNING, ERROR or DEBUG"
// @Param category query string false "Category"
// @Failure 503 {object} response.ErrorResponse "Streaming disabled"
// @Router /api/logs/stream [get]
func (h *LogHandler) Stream(c *gin.Context) {
	if h.hub == nil {
		response.Error(c, http.StatusServiceUnavailable, "پخش زنده لاگ‌ها فعال نیست", nil)
		return
	}

	filter := logstream.Filter{Category: c.Query("category")}
	if lvl := c.Query("level"); lvl != "" {
		filter.Level = syslog.NormalizeLevel(lvl)
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already replied to the client.
		h.logger.Warn("log stream upgrade failed", zap.Error(err))
		c.Abort()
		return
	}
	h.hub.Serve(c.Request.Context(), conn, filter)
}
