package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/linskybing/formbuilder-go/pkg/pagination"
	"github.com/linskybing/formbuilder-go/pkg/response"
	"github.com/linskybing/formbuilder-go/pkg/utils"
)

const (
	msgInvalidJSON     = "فرمت JSON نامعتبر است"
	msgInvalidInput    = "داده‌های ورودی نامعتبر"
	msgFormIDRequired  = "شناسه فرم الزامی و باید عدد باشد"
	msgUserIDRequired  = "شناسه کاربر الزامی و باید عدد باشد"
	msgRespIDRequired  = "شناسه پاسخ الزامی و باید عدد باشد"
	msgWidgetIDMissing = "شناسه ویجت الزامی و باید عدد باشد"
	msgWidgetCodeEmpty = "کد ویجت الزامی است"
	msgInvalidDate     = "فرمت تاریخ نامعتبر است"
)

// Only rejects any method other than method with a 405 envelope. Routes are
// registered with Any so the envelope covers every verb.
func Only(method string, h gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !allowMethod(c, method) {
			return
		}
		h(c)
	}
}

// Method is the middleware form of Only. Placed ahead of authentication it
// makes a wrong verb answer 405 before any token check.
func Method(method string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !allowMethod(c, method) {
			return
		}
		c.Next()
	}
}

func allowMethod(c *gin.Context, method string) bool {
	if c.Request.Method == method {
		return true
	}
	c.Header("Allow", method)
	response.MethodNotAllowed(c, method)
	return false
}

// fieldLabels maps struct fields to the names clients send.
var fieldLabels = map[string]string{
	"FormID":     "form_id",
	"UserID":     "user_id",
	"ResponseID": "response_id",
	"Status":     "status",
	"Score":      "score",
	"WidgetType": "widget_type",
}

// bindJSON decodes the body into dst. Tag violations become an itemized 400,
// anything else the malformed-JSON envelope. It reports whether the handler
// should continue.
func bindJSON(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}

	var verr validator.ValidationErrors
	if errors.As(err, &verr) {
		msgs := make([]string, 0, len(verr))
		for _, fe := range verr {
			lbl, ok := fieldLabels[fe.StructField()]
			if !ok {
				lbl = strings.ToLower(fe.StructField())
			}
			switch fe.Tag() {
			case "required":
				msgs = append(msgs, fmt.Sprintf("%s الزامی است", lbl))
			default:
				msgs = append(msgs, fmt.Sprintf("%s نامعتبر است", lbl))
			}
		}
		response.Error(c, http.StatusBadRequest, msgInvalidInput, msgs)
		return false
	}

	response.Error(c, http.StatusBadRequest, msgInvalidJSON, nil)
	return false
}

// bindRaw decodes a JSON object body into its top-level members so patch
// schemas can see exactly which keys were sent.
func bindRaw(c *gin.Context) (map[string]json.RawMessage, bool) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(c.Request.Body).Decode(&raw); err != nil || raw == nil {
		response.Error(c, http.StatusBadRequest, msgInvalidJSON, nil)
		return nil, false
	}
	return raw, true
}

// rawID pulls a positive integer member out of a raw body. Both 12 and "12"
// are accepted.
func rawID(raw map[string]json.RawMessage, key string) (uint, bool) {
	v, ok := raw[key]
	if !ok {
		return 0, false
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		s = string(v)
	}
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

// queryID reads a positive id query parameter, writing msg as a 400 when it
// is missing or malformed.
func queryID(c *gin.Context, param, msg string) (uint, bool) {
	id, err := utils.ParseQueryUintParam(c, param)
	if err != nil {
		response.Error(c, http.StatusBadRequest, msg, nil)
		return 0, false
	}
	return id, true
}

func pageParams(c *gin.Context, opt pagination.Options) pagination.Params {
	return pagination.Parse(c.Query("page"), c.Query("limit"), opt)
}

// fail writes err through the envelope. fallback is what clients see for
// internal errors.
func fail(c *gin.Context, err error, fallback string) {
	response.FromError(c, err, fallback)
}
