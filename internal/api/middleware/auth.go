package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/linskybing/formbuilder-go/internal/domain/user"
	"github.com/linskybing/formbuilder-go/internal/repository"
	"github.com/linskybing/formbuilder-go/pkg/response"
	"github.com/linskybing/formbuilder-go/pkg/utils"
	"gorm.io/gorm"
)

const (
	msgAuthRequired = "احراز هویت الزامی است"
	msgAdminOnly    = "دسترسی فقط برای مدیر مجاز است"
	msgForbidden    = "شما مجوز دسترسی به این بخش را ندارید"
)

// Auth handles authorization that needs the current account state.
type Auth struct {
	repos *repository.Repos
}

func NewAuth(repos *repository.Repos) *Auth {
	return &Auth{repos: repos}
}

// activeUser reloads the token subject so deactivated or deleted accounts
// lose access before their token expires.
func (a *Auth) activeUser(c *gin.Context) (user.User, bool) {
	uid, err := utils.GetUserIDFromContext(c)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, msgAuthRequired, nil)
		return user.User{}, false
	}
	u, err := a.repos.User.GetUserByID(c.Request.Context(), uid)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.Error(c, http.StatusUnauthorized, msgAuthRequired, nil)
		return user.User{}, false
	}
	if err != nil {
		response.ServerError(c, "")
		return user.User{}, false
	}
	if !u.IsActive() {
		response.Error(c, http.StatusForbidden, "حساب کاربری غیرفعال است", nil)
		return user.User{}, false
	}
	return u, true
}

// Active rejects tokens whose account is no longer active.
func (a *Auth) Active() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := a.activeUser(c); !ok {
			return
		}
		c.Next()
	}
}

// Admin checks that the current account is an active admin.
func (a *Auth) Admin() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := a.activeUser(c)
		if !ok {
			return
		}
		if u.Role != user.RoleAdmin {
			response.Error(c, http.StatusForbidden, msgAdminOnly, nil)
			return
		}
		c.Next()
	}
}

// UserOrAdmin allows the account named by the :id parameter or an admin.
func (a *Auth) UserOrAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := a.activeUser(c)
		if !ok {
			return
		}

		targetID, err := utils.ParseIDParam(c, "id")
		if err != nil {
			response.Error(c, http.StatusBadRequest, "شناسه کاربر الزامی و باید عدد باشد", nil)
			return
		}
		if u.ID != targetID && u.Role != user.RoleAdmin {
			response.Error(c, http.StatusForbidden, msgForbidden, nil)
			return
		}
		c.Next()
	}
}

// CORSMiddleware allows the configured origins. An entry of "*" allows any
// origin. Websocket upgrades skip CORS.
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	allowAll := false
	for _, o := range allowedOrigins {
		if o == "*" {
			allowAll = true
		}
	}

	config := cors.Config{
		AllowOriginFunc: func(origin string) bool {
			if allowAll {
				return true
			}
			for _, o := range allowedOrigins {
				if strings.EqualFold(strings.TrimRight(o, "/"), origin) {
					return true
				}
			}
			return false
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Requested-With", requestIDHeader},
		ExposeHeaders:    []string{"Content-Length", requestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	corsHandler := cors.New(config)
	return func(c *gin.Context) {
		if strings.EqualFold(c.GetHeader("Upgrade"), "websocket") {
			c.Next()
			return
		}
		corsHandler(c)
	}
}
