// Package convert turns operator input tokens into typed values and back.
//
// Enum tokens are accepted either as their one-based input code ("2") or as
// their name in any case ("bug", "IN_PROGRESS"). Dates are read as yyyy-MM-dd
// and rendered as yyyyMMdd.
package convert

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"project-team-tracker/internal/models"
)

// Skip is the field token meaning "leave unchanged" or "not provided".
const Skip = "@"

const (
	InputDateLayout   = "2006-01-02"
	DisplayDateLayout = "20060102"
)

// ErrInvalidInput wraps every conversion failure.
var ErrInvalidInput = errors.New("invalid input")

func invalid(what, token string) error {
	return fmt.Errorf("%w: %s %q", ErrInvalidInput, what, token)
}

// IsSkip reports whether a field holds the skip sentinel.
func IsSkip(field string) bool {
	return strings.TrimSpace(field) == Skip
}

func parseEnum[E ~string](what, token string, values []E) (E, error) {
	var zero E
	token = strings.TrimSpace(token)
	if n, err := strconv.Atoi(token); err == nil {
		if n >= 1 && n <= len(values) {
			return values[n-1], nil
		}
		return zero, invalid(what, token)
	}
	for _, v := range values {
		if strings.EqualFold(string(v), token) {
			return v, nil
		}
	}
	return zero, invalid(what, token)
}

func ParseTaskType(token string) (models.TaskType, error) {
	return parseEnum("task type", token, models.TaskTypes)
}

func ParseStatus(token string) (models.TaskStatus, error) {
	return parseEnum("task status", token, models.Statuses)
}

func ParseAuthority(token string) (models.Authority, error) {
	return parseEnum("authority", token, models.Authorities)
}

// ParseDate reads a yyyy-MM-dd date at midnight UTC.
func ParseDate(token string) (time.Time, error) {
	t, err := time.Parse(InputDateLayout, strings.TrimSpace(token))
	if err != nil {
		return time.Time{}, invalid("date", token)
	}
	return t, nil
}

// FormatDate renders t as yyyyMMdd.
func FormatDate(t time.Time) string {
	return t.Format(DisplayDateLayout)
}

// SplitIDs splits a comma-separated id list, dropping blanks.
func SplitIDs(field string) []string {
	var ids []string
	for _, id := range strings.Split(field, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// Today returns t truncated to its calendar day, in t's location.
func Today(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
