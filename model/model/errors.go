package model

import (
	"sort"
	"strings"
)

// FieldErrors maps an input field name to what is wrong with it.
type FieldErrors map[string]string

func (errs FieldErrors) Error() string {
	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	messages := make([]string, 0, len(fields))
	for _, field := range fields {
		messages = append(messages, field+": "+errs[field])
	}
	return strings.Join(messages, "; ")
}

// Fields exposes the per field messages to the transport layer.
func (errs FieldErrors) Fields() map[string]string {
	return errs
}

// ErrorOrNil returns nil for an empty set so callers can return it directly.
func (errs FieldErrors) ErrorOrNil() error {
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// requireNonEmpty flags explicitly provided optional fields that are blank.
func requireNonEmpty(errs FieldErrors, field string, value *string) {
	if value != nil && *value == "" {
		errs[field] = "must not be empty"
	}
}
