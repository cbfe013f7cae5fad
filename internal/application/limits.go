package application

import (
	"fmt"
	"math"
	"unicode/utf8"
)

// Column limits of the schema in internal/migrations.
const (
	maxTextLen       = 255
	maxPhoneLen      = 32
	maxVersionLen    = 20
	maxTimezoneLen   = 64
	maxSessionIDLen  = 128
	maxWidgetCodeLen = 100
	maxWidgetKeyLen  = 50
	maxIconNameLen   = 100
	maxInt           = math.MaxInt32
)

func tooLong(s string, n int) bool {
	return utf8.RuneCountInString(s) > n
}

func tooLongPtr(s *string, n int) bool {
	return s != nil && tooLong(*s, n)
}

func msgTooLong(label string, n int) string {
	return fmt.Sprintf("%s نباید بیش از %d کاراکتر باشد", label, n)
}

func msgOutOfRange(label string, lo, hi int64) string {
	return fmt.Sprintf("%s باید بین %d و %d باشد", label, lo, hi)
}
