package authz

import (
	"errors"
	"net/http"
)

// Error is a request-scoped rejection carrying the HTTP status it maps to.
type Error struct {
	Status      int
	Description string
}

func (e *Error) Error() string {
	return http.StatusText(e.Status) + ": " + e.Description
}

// Name is the status text used in error bodies.
func (e *Error) Name() string {
	return http.StatusText(e.Status)
}

var (
	ErrUnauthenticated = &Error{
		Status:      http.StatusUnauthorized,
		Description: "Token is missing, invalid or has expired.",
	}
	ErrUnknownIdentity = &Error{
		Status:      http.StatusForbidden,
		Description: "The account this token was issued for does not exist.",
	}
	ErrIncompleteProfile = &Error{
		Status:      http.StatusForbidden,
		Description: IncompleteProfileMessage,
	}
	ErrNotFound = &Error{
		Status:      http.StatusNotFound,
		Description: "Resource not found! The specified post does not exist or does not belong to the specified user.",
	}
	ErrAuthorNotFound = &Error{
		Status:      http.StatusNotFound,
		Description: "Resource not found! The specified user does not exist.",
	}
	ErrAlreadyLiked = InvalidInput("You have already liked the post!")
	ErrNotLiked     = InvalidInput("You have not liked the post!")
)

// InvalidInput builds a 400 rejection.
func InvalidInput(description string) *Error {
	return &Error{Status: http.StatusBadRequest, Description: description}
}

// AsError reports whether err is a rejection and returns it.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
