package domain

import "errors"

// Sentinel errors for every failure the core can report. Handlers and
// middleware never invent status codes; they return one of these and the
// central error handler maps its kind to HTTP.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token has expired")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("access forbidden")

	ErrUserNotFound   = errors.New("user not found")
	ErrUserExists     = errors.New("user already exists")
	ErrMemberNotFound = errors.New("member not found")
	ErrMemberExists   = errors.New("member already exists")

	ErrAnnouncementNotFound = errors.New("announcement not found")
	ErrBulletinNotFound     = errors.New("bulletin not found")
	ErrEventNotFound        = errors.New("event not found")

	ErrSubscriberExists   = errors.New("email already subscribed")
	ErrSubscriberNotFound = errors.New("subscription not found")

	ErrSetupComplete = errors.New("setup already completed")
)

// ErrorKind is the closed classification of core errors.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindAuthentication
	KindAuthorization
	KindNotFound
	KindConflict
)

// KindOf classifies err into one of the closed error kinds. Anything not
// recognized is internal.
func KindOf(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrWeakPassword):
		return KindValidation
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrTokenInvalid),
		errors.Is(err, ErrTokenExpired),
		errors.Is(err, ErrUnauthenticated):
		return KindAuthentication
	case errors.Is(err, ErrForbidden):
		return KindAuthorization
	case errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrMemberNotFound),
		errors.Is(err, ErrAnnouncementNotFound),
		errors.Is(err, ErrBulletinNotFound),
		errors.Is(err, ErrEventNotFound),
		errors.Is(err, ErrSubscriberNotFound):
		return KindNotFound
	case errors.Is(err, ErrUserExists),
		errors.Is(err, ErrMemberExists),
		errors.Is(err, ErrSubscriberExists),
		errors.Is(err, ErrSetupComplete):
		return KindConflict
	default:
		return KindInternal
	}
}
