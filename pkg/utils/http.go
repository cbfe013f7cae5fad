package utils

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

var (
	ErrEmptyParameter = errors.New("empty parameter")
	ErrInvalidID      = errors.New("id must be a positive integer")
)

func parseID(s string) (uint, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrEmptyParameter
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil || n == 0 {
		return 0, ErrInvalidID
	}
	return uint(n), nil
}

// ParseIDParam reads a positive integer path parameter.
func ParseIDParam(c *gin.Context, param string) (uint, error) {
	return parseID(c.Param(param))
}

// ParseQueryUintParam reads a positive integer query parameter.
func ParseQueryUintParam(c *gin.Context, param string) (uint, error) {
	return parseID(c.Query(param))
}

// ParseQueryBool returns nil when the parameter is absent or not a boolean.
func ParseQueryBool(c *gin.Context, param string) *bool {
	v, err := strconv.ParseBool(c.Query(param))
	if err != nil {
		return nil
	}
	return &v
}
