// Package repository implements MySQL persistence for the back-office.  Each
// repository wraps *sql.DB with hand-written SQL.  Sentinel values defined
// here let handlers map failures to HTTP responses without inspecting driver
// errors.
package repository

import (
    "errors"
    "strings"
)

// ErrEmailExists is returned when registering an admin with an email that is
// already taken. Handlers should translate this into an HTTP 400 response.
var ErrEmailExists = errors.New("email already exists")

// isDuplicateKey reports whether err is a MySQL duplicate-entry error
// (error number 1062).
func isDuplicateKey(err error) bool {
    return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}
