package models

import "github.com/google/uuid"

// newID returns the opaque identifier stored in every primary key column.
func newID() string {
	return uuid.NewString()
}
