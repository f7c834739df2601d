package validate

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reEmail  = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reMobile = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
	reCoupon = regexp.MustCompile(`^[A-Za-z0-9]{1,20}$`)
)

// Name validates a displayable customer name with a reasonable max length.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 60 {
		return "", false
	}
	return s, true
}

// Address validates a free-form delivery address.
func Address(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 200 {
		return "", false
	}
	return s, true
}

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 50 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// Mobile accepts 10-15 digits with an optional leading +.
func Mobile(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reMobile.MatchString(s)
}

// ProductID parses a positive integer product id.
func ProductID(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return n, err == nil && n >= 1
}

// Coupon trims a coupon code and checks its shape. An empty code is
// allowed through so the pricing layer can report its own "required"
// outcome.
func Coupon(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", true
	}
	return s, reCoupon.MatchString(s)
}
