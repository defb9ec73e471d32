package auth

import (
	"context"
	"errors"
	"time"
)

var ErrForbidden = errors.New("declared identity does not match session")

// Authorize is the ownership rule applied before identity-scoped operations:
// the identity a caller declares must equal the verified session identity.
// A session without an email never owns anything.
func Authorize(declared, session string) error {
	if session == "" || declared != session {
		return ErrForbidden
	}
	return nil
}

// RevocationList is the optional server-side record of logged out tokens
type RevocationList interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
