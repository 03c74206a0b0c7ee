package auth

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned by repositories when no user matches.
var ErrNotFound = errors.New("user not found")

// ErrorKind mirrors the sign-in failure modes the sign-in form renders.
type ErrorKind string

const (
	KindInvalidEmail    ErrorKind = "invalid_email"
	KindDisabled        ErrorKind = "user_disabled"
	KindNotFound        ErrorKind = "user_not_found"
	KindWrongPassword   ErrorKind = "wrong_password"
	KindTooManyRequests ErrorKind = "too_many_requests"
)

// Error is a sign-in failure with a human-readable message per kind.
type Error struct {
	Kind ErrorKind
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindInvalidEmail:
		return "email address is not valid"
	case KindDisabled:
		return "this account has been disabled"
	case KindNotFound:
		return "no account exists for this email"
	case KindWrongPassword:
		return "wrong password"
	case KindTooManyRequests:
		return "too many failed attempts, try again later"
	}

	return "sign-in failed"
}

// User is an admin account. Regular visitors never sign in; the only
// authorization axis is authenticated vs not.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash []byte
	Disabled     bool
	CreatedAt    time.Time
}

// Session is the verified identity attached to a request.
type Session struct {
	UserID uuid.UUID
	Email  string
}
