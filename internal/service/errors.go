package service

import (
	"fmt"
	"sort"
	"strings"
)

// FieldErrors maps a request field to its validation messages. It renders
// directly as the 400 response body, one message list per field.
type FieldErrors map[string][]string

// Add appends a message for a field
func (e FieldErrors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

// Error implements the error interface
func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var parts []string
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(e[field], "; ")))
	}
	return strings.Join(parts, ", ")
}
