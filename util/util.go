package util

import (
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/xid"
)

func GetUUID() string {
	return uuid.New().String()
}

func IsValidUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// GetRequestID returns a short, sortable id for request tracing.
func GetRequestID() string {
	return xid.New().String()
}

// TruncateString cuts s to at most max characters.
func TruncateString(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}
