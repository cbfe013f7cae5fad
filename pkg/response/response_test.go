package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/formbuilder-go/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t *testing.T) {
	t.Helper()
	old := now
	now = func() time.Time { return time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC) }
	t.Cleanup(func() { now = old })
}

func run(t *testing.T, fn func(c *gin.Context)) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	reached := false
	r.GET("/x", func(c *gin.Context) {
		fn(c)
	}, func(c *gin.Context) {
		reached = true
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.False(t, reached, "handler chain must stop after an envelope is written")

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestSuccess(t *testing.T) {
	fixedClock(t)
	w, body := run(t, func(c *gin.Context) { Success(c, gin.H{"id": 1}, "ok") })

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "ok", body["message"])
	assert.Equal(t, map[string]any{"id": float64(1)}, body["data"])
	assert.Equal(t, "2025-03-04 05:06:07", body["timestamp"])
}

func TestSuccessNilDataKeepsKey(t *testing.T) {
	_, body := run(t, func(c *gin.Context) { Success(c, nil, "") })
	v, ok := body["data"]
	assert.True(t, ok)
	assert.Nil(t, v)
	assert.Equal(t, "موفق", body["message"])
}

func TestErrorVariants(t *testing.T) {
	w, body := run(t, func(c *gin.Context) { NotFound(c, "") })
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body, "details")

	w, _ = run(t, func(c *gin.Context) { ServerError(c, "") })
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w, body = run(t, func(c *gin.Context) { MethodNotAllowed(c, "POST") })
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Contains(t, body["message"], "POST")
}

func TestFromError(t *testing.T) {
	w, body := run(t, func(c *gin.Context) {
		FromError(c, apperr.Validation("bad", "x is required"), "fallback")
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "bad", body["message"])
	assert.Equal(t, []any{"x is required"}, body["details"])

	w, body = run(t, func(c *gin.Context) {
		FromError(c, apperr.Forbidden("no"), "fallback")
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Nil(t, body["details"])

	w, body = run(t, func(c *gin.Context) {
		FromError(c, apperr.Internal("pq: relation missing", errors.New("secret")), "generic")
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "generic", body["message"])

	w, _ = run(t, func(c *gin.Context) {
		FromError(c, errors.New("raw"), "generic")
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
