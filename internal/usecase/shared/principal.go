package shared

import (
	"stayhub/internal/domain/user"

	"github.com/google/uuid"
)

// Principal identifies the authenticated caller for the duration of a request.
type Principal struct {
	UserID    uuid.UUID
	SessionID uuid.UUID
	Role      user.Role
}

func (p Principal) IsAdmin() bool {
	return p.Role.IsAdmin()
}
