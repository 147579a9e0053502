// Package repository provides data access layer implementations for the application.
package repository

import "strings"

// isUniqueViolation reports whether the error is a unique-constraint failure.
// Matched by message because the postgres and sqlite drivers surface
// different error types.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint")
}
