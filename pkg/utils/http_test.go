package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/formbuilder-go/internal/domain/syslog"
	"github.com/linskybing/formbuilder-go/pkg/types"
	"github.com/stretchr/testify/assert"
)

func testContext(target string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", target, nil)
	return c
}

func TestParseIDParam(t *testing.T) {
	tests := []struct {
		raw     string
		want    uint
		wantErr error
	}{
		{"12", 12, nil},
		{"", 0, ErrEmptyParameter},
		{"0", 0, ErrInvalidID},
		{"-3", 0, ErrInvalidID},
		{"abc", 0, ErrInvalidID},
	}
	for _, tt := range tests {
		c := testContext("/")
		c.Params = gin.Params{{Key: "id", Value: tt.raw}}
		got, err := ParseIDParam(c, "id")
		assert.Equal(t, tt.want, got, tt.raw)
		assert.Equal(t, tt.wantErr, err, tt.raw)
	}
}

func TestParseQueryParams(t *testing.T) {
	c := testContext("/?form_id=5&public=true&broken=maybe")

	id, err := ParseQueryUintParam(c, "form_id")
	assert.NoError(t, err)
	assert.Equal(t, uint(5), id)

	_, err = ParseQueryUintParam(c, "missing")
	assert.ErrorIs(t, err, ErrEmptyParameter)

	if b := ParseQueryBool(c, "public"); assert.NotNil(t, b) {
		assert.True(t, *b)
	}
	assert.Nil(t, ParseQueryBool(c, "broken"))
}

func TestGetUserIDFromContext(t *testing.T) {
	c := testContext("/")
	_, err := GetUserIDFromContext(c)
	assert.ErrorIs(t, err, ErrNoClaims)

	c.Set("claims", &types.Claims{UserID: 4})
	uid, err := GetUserIDFromContext(c)
	assert.NoError(t, err)
	assert.Equal(t, uint(4), uid)
}

func TestRequestContext(t *testing.T) {
	c := testContext("/")
	c.Request.Header.Set("User-Agent", "test-agent")
	c.Request.RemoteAddr = "203.0.113.7:1234"

	meta := syslog.MetaFrom(RequestContext(c))
	assert.Equal(t, "203.0.113.7", meta.IP)
	assert.Equal(t, "test-agent", meta.UserAgent)
}
