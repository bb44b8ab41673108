package errors

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameExists     = errors.New("username already exists")
	ErrEmailExists        = errors.New("email already exists")
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrServiceNotFound    = errors.New("service not found")
	ErrInvoiceNotFound    = errors.New("invoice not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInternal           = errors.New("internal error")

	// Token verification taxonomy. All of these collapse to "no principal"
	// at the authentication stage and are never surfaced on the wire.
	ErrInvalidTokenFormat = errors.New("invalid token format")
	ErrMalformedSegment   = errors.New("malformed token segment")
	ErrMalformedClaims    = errors.New("malformed token claims")
	ErrInvalidSignature   = errors.New("invalid token signature")
	ErrTokenExpired       = errors.New("token expired")

	// ErrUnauthorized: no principal where one is required (401).
	// ErrForbidden: principal present but fails a role or ownership check (403).
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)
