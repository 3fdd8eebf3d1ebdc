package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

const (
	RoleUser  = "User"
	RoleAdmin = "Admin"

	DateLayout = "2006-01-02"
)

var (
	MesaageUserNotAllowed       = "user not allowed"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "failed to token invalid"
	MessageInternalServerError  = "internal server error"

	// Error categories. Every domain error wraps exactly one of these so the
	// transport layer can map it to a status code.
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
	ErrBadRequest   = errors.New("bad request")

	ErrParseUUID      = fmt.Errorf("failed to parse UUID: %w", ErrBadRequest)
	ErrUserNotAllowed = fmt.Errorf("user not allowed: %w", ErrForbidden)
	ErrTokenNotFound  = fmt.Errorf("failed to token not found: %w", ErrUnauthorized)
	ErrTokenExpired   = fmt.Errorf("token expired: %w", ErrUnauthorized)
	ErrTokenInvalid   = fmt.Errorf("token invalid: %w", ErrUnauthorized)
)

// Identity is the authenticated caller, resolved once per request by the
// auth middleware. The zero value is an anonymous caller.
type Identity struct {
	UserID uuid.UUID
	Role   string
}

func (i Identity) IsAnonymous() bool { return i.UserID == uuid.Nil }

func (i Identity) IsAdmin() bool { return !i.IsAnonymous() && i.Role == RoleAdmin }

func (i Identity) Owns(ownerID uuid.UUID) bool {
	return !i.IsAnonymous() && i.UserID == ownerID
}

// ParseID parses a path or query identifier.
func ParseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ErrParseUUID
	}
	return id, nil
}
