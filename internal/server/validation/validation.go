// Package validation holds the input rules shared by the services: email
// shape, password policy, notify-date parsing and name normalization.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MinPasswordLength = 6
	MaxNotifyYear     = 2100

	DateLayout = "2006-01-02"
)

var emailRe = regexp.MustCompile(`^([\w\.]+)@((\[[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\.)|(([\w-]+\.)+))([a-zA-Z]{2,4}|[0-9]{1,3})(\]?)$`)

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidEmail reports whether the normalized email looks deliverable.
func ValidEmail(email string) bool {
	return emailRe.MatchString(NormalizeEmail(email))
}

// CheckPassword enforces the password policy: a minimum length in
// characters, not bytes.
func CheckPassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return fmt.Errorf("password must have a minimum of %d characters", MinPasswordLength)
	}
	return nil
}

// NormalizeName trims and lower-cases a list or item name. Uniqueness is
// always decided on the normalized form.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ParseNotifyDate parses raw as yyyy-mm-dd and checks that it is a real
// calendar date between today and the end of MaxNotifyYear. The checks run
// in a fixed order and the first one to fail decides the message.
func ParseNotifyDate(raw string, today time.Time) (time.Time, error) {
	parts := strings.Split(strings.TrimSpace(raw), "-")
	if len(parts) != 3 || len(parts[0]) != 4 ||
		len(parts[1]) < 1 || len(parts[1]) > 2 ||
		len(parts[2]) < 1 || len(parts[2]) > 2 {
		return time.Time{}, errors.New("the acceptable date format is `yyyy-mm-dd`")
	}

	var ymd [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return time.Time{}, errors.New("dates must be specified as strings but with integer values")
		}
		ymd[i] = n
	}
	year, month, day := ymd[0], time.Month(ymd[1]), ymd[2]

	date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if date.Year() != year || date.Month() != month || date.Day() != day {
		return time.Time{}, errors.New("The given date is invalid and doesn't exist on the calendar")
	}

	curYear, curMonth, curDay := today.Date()
	switch {
	case year < curYear:
		return time.Time{}, fmt.Errorf("The year %s already passed, please use a valid year", parts[0])
	case year > MaxNotifyYear:
		return time.Time{}, fmt.Errorf("By %s, you may be in afterlife, please consider years in range (%d-%d)", parts[0], curYear, MaxNotifyYear)
	case year == curYear && month < curMonth:
		return time.Time{}, fmt.Errorf("Invalid date, %s %d has already passed by", month, year)
	case year == curYear && month == curMonth && day < curDay:
		return time.Time{}, fmt.Errorf("Use dates starting from %s", today.Format("02/01/2006"))
	}

	return date, nil
}

// FormatDate renders a notify date the way it is accepted.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
