package supervisor

import (
	"github.com/google/uuid"
)

// ID is a universally unique 128-bit application identifier. It is
// created at request time, immutable thereafter, and used both as the
// registry key and as part of the application's working-directory name.
type ID uuid.UUID

// NewID returns a uniform-random 128-bit identifier.
func NewID() ID {
	return ID(uuid.New())
}

// ParseID parses the canonical string form of an identifier.
func ParseID(s string) (ID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return ID{}, err
	}
	return ID(u), nil
}

func (id ID) String() string {
	return uuid.UUID(id).String()
}

// IsZero reports whether id is the zero value, never assigned by NewID.
func (id ID) IsZero() bool {
	return id == ID{}
}
