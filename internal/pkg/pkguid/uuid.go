package pkguid

import "github.com/google/uuid"

// UUID generates time-ordered UUID strings, used for request correlation IDs.
type UUID struct{}

func NewUUID() *UUID {
	return &UUID{}
}

// Generate returns a version 7 UUID, or a random version 4 UUID when the
// time-based generator fails.
func (u *UUID) Generate() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
