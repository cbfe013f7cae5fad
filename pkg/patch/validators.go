package patch

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// MinLen checks the trimmed rune length of a string value.
func MinLen(n int, msg string) func(any) error {
	return func(v any) error {
		s, _ := v.(string)
		if utf8.RuneCountInString(strings.TrimSpace(s)) < n {
			return fmt.Errorf("%s", msg)
		}
		return nil
	}
}

func OneOf(values ...string) func(any) error {
	return func(v any) error {
		s, _ := v.(string)
		for _, allowed := range values {
			if s == allowed {
				return nil
			}
		}
		return fmt.Errorf("must be one of [%s]", strings.Join(values, " "))
	}
}

func Match(re *regexp.Regexp, msg string) func(any) error {
	return func(v any) error {
		s, _ := v.(string)
		if !re.MatchString(s) {
			return fmt.Errorf("%s", msg)
		}
		return nil
	}
}

// MaxLen caps the rune length of a string value.
func MaxLen(n int, msg string) func(any) error {
	return func(v any) error {
		s, _ := v.(string)
		if utf8.RuneCountInString(s) > n {
			return fmt.Errorf("%s", msg)
		}
		return nil
	}
}

// Between checks that an integer value lies in [lo, hi].
func Between(lo, hi int64, msg string) func(any) error {
	return func(v any) error {
		if n, ok := v.(int64); ok && (n < lo || n > hi) {
			return fmt.Errorf("%s", msg)
		}
		return nil
	}
}

// All runs every check in order and returns the first failure.
func All(checks ...func(any) error) func(any) error {
	return func(v any) error {
		for _, check := range checks {
			if err := check(v); err != nil {
				return err
			}
		}
		return nil
	}
}
