package utils

import "github.com/google/uuid"

// IsUUID reports whether s is a well-formed UUID. Repos and handlers use it
// to tell a malformed identifier apart from a missing record.
func IsUUID(s string) bool {
	_, err := uuid.Parse(s)

	return err == nil
}
