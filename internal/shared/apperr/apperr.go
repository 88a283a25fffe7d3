package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	Invalid     Kind = "invalid"
	NotFound    Kind = "not_found"
	Conflict    Kind = "conflict"
	Unavailable Kind = "unavailable"
	Internal    Kind = "internal"
)

const defaultPublicMsg = "An unexpected error occurred."

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return string(e.Kind)
}

func (e *AppError) Unwrap() error { return e.Err }

// Constructors (PublicMsg must stay short and safe)
func InvalidErr(publicMsg string, fields map[string]string) *AppError {
	return &AppError{Kind: Invalid, PublicMsg: publicMsg, Fields: fields}
}
func NotFoundErr(publicMsg string) *AppError {
	return &AppError{Kind: NotFound, PublicMsg: publicMsg}
}
func ConflictErr(publicMsg string) *AppError {
	return &AppError{Kind: Conflict, PublicMsg: publicMsg}
}
func UnavailableErr(publicMsg string) *AppError {
	return &AppError{Kind: Unavailable, PublicMsg: publicMsg}
}

// Wrap: internal error without a public message (defaults to 500)
func Wrap(err error) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Kind: Internal, PublicMsg: defaultPublicMsg, Err: err}
}

func As(err error) (*AppError, bool) {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

func HTTPStatus(err error) int {
	if ae, ok := As(err); ok {
		switch ae.Kind {
		case Invalid:
			return http.StatusBadRequest
		case NotFound:
			return http.StatusNotFound
		case Conflict:
			return http.StatusConflict
		case Unavailable:
			return http.StatusServiceUnavailable
		default:
			return http.StatusInternalServerError
		}
	}
	return http.StatusInternalServerError
}

func PublicMessage(err error) string {
	if ae, ok := As(err); ok && ae.PublicMsg != "" {
		return ae.PublicMsg
	}
	return defaultPublicMsg
}
