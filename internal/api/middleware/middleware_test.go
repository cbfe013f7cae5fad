package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/linskybing/formbuilder-go/internal/config"
	"github.com/linskybing/formbuilder-go/internal/domain/syslog"
	"github.com/linskybing/formbuilder-go/internal/domain/user"
	"github.com/linskybing/formbuilder-go/internal/repository"
	"github.com/linskybing/formbuilder-go/internal/repository/mock"
	"github.com/linskybing/formbuilder-go/pkg/response"
	"github.com/linskybing/formbuilder-go/pkg/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
	Init(config.JWTConfig{Secret: "test-secret", Issuer: "test"})
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) response.ErrorResponse {
	t.Helper()
	var body response.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// ----- JWT -----

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken(3, "a@example.com", "admin", time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(3), claims.UserID)
	assert.Equal(t, "test", claims.Issuer)
	assert.Equal(t, "admin", claims.Role)
}

func TestParseToken_Expired(t *testing.T) {
	token, err := GenerateToken(3, "a@example.com", "user", -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(token)
	assert.Error(t, err)
}

func TestJWTAuthMiddleware(t *testing.T) {
	r := gin.New()
	r.GET("/me", JWTAuthMiddleware(), func(c *gin.Context) {
		claims := c.MustGet("claims").(*types.Claims)
		c.JSON(http.StatusOK, gin.H{"uid": claims.UserID})
	})
	token, err := GenerateToken(8, "b@example.com", "user", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		cookie string
		want   int
	}{
		{"missing", "", "", http.StatusUnauthorized},
		{"wrong scheme", "Token " + token, "", http.StatusUnauthorized},
		{"garbage", "Bearer abc.def.ghi", "", http.StatusUnauthorized},
		{"bearer", "Bearer " + token, "", http.StatusOK},
		{"cookie", "", token, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "token", Value: tt.cookie})
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
			if tt.want != http.StatusOK {
				assert.False(t, decodeError(t, w).Success)
			}
		})
	}
}

// ----- Auth -----

func setupAuth(t *testing.T) (*Auth, *mock.MockUserRepo) {
	ctrl := gomock.NewController(t)
	t.Cleanup(func() { ctrl.Finish() })
	mockUser := mock.NewMockUserRepo(ctrl)
	return NewAuth(&repository.Repos{User: mockUser}), mockUser
}

func withClaims(uid uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("claims", &types.Claims{UserID: uid})
		c.Next()
	}
}

func TestAdmin(t *testing.T) {
	tests := []struct {
		name string
		user user.User
		err  error
		want int
	}{
		{"admin", user.User{ID: 1, Role: user.RoleAdmin, Status: user.StatusActive}, nil, http.StatusOK},
		{"regular user", user.User{ID: 1, Role: user.RoleUser, Status: user.StatusActive}, nil, http.StatusForbidden},
		{"inactive admin", user.User{ID: 1, Role: user.RoleAdmin, Status: user.StatusInactive}, nil, http.StatusForbidden},
		{"deleted", user.User{}, gorm.ErrRecordNotFound, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth, mockUser := setupAuth(t)
			mockUser.EXPECT().GetUserByID(gomock.Any(), uint(1)).Return(tt.user, tt.err)

			r := gin.New()
			r.GET("/admin", withClaims(1), auth.Admin(), func(c *gin.Context) { c.Status(http.StatusOK) })
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestUserOrAdmin(t *testing.T) {
	tests := []struct {
		name   string
		target string
		role   user.Role
		want   int
	}{
		{"self", "2", user.RoleUser, http.StatusOK},
		{"other", "3", user.RoleUser, http.StatusForbidden},
		{"admin on other", "3", user.RoleAdmin, http.StatusOK},
		{"bad id", "x", user.RoleUser, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth, mockUser := setupAuth(t)
			mockUser.EXPECT().GetUserByID(gomock.Any(), uint(2)).
				Return(user.User{ID: 2, Role: tt.role, Status: user.StatusActive}, nil)

			r := gin.New()
			r.GET("/users/:id", withClaims(2), auth.UserOrAdmin(), func(c *gin.Context) { c.Status(http.StatusOK) })
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/"+tt.target, nil))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

// ----- CORS -----

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"http://localhost:3000"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

// ----- Request ID / logging / metrics -----

func TestRequestIDAttachesMeta(t *testing.T) {
	var meta syslog.Meta
	var id string
	r := gin.New()
	r.Use(RequestID(), RequestLogger(zap.NewNop()))
	r.GET("/x", func(c *gin.Context) {
		meta = syslog.MetaFrom(c.Request.Context())
		id = c.GetString(requestIDKey)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("User-Agent", "agent/1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.NotEmpty(t, id)
	assert.Equal(t, id, w.Header().Get(requestIDHeader))
	assert.Equal(t, "agent/1", meta.UserAgent)

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(requestIDHeader, "fixed")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "fixed", w.Header().Get(requestIDHeader))
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery(zap.NewNop()))
	r.GET("/panic", func(*gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.False(t, decodeError(t, w).Success)
}

func TestHTTPMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)
	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/forms/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 2; i++ {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/forms/1", nil))
	}
	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("/forms/:id", "GET", "200")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.inFlight))
}
