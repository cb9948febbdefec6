package handler

import (
	"errors"
	"net/http"
)

var ErrNilResponse = errors.New("handler returned nil response")

// HTTPError is an error that carries its own status code and a stable
// machine-readable code for the response envelope.
type HTTPError struct {
	Status int
	Code   string
}

func (e HTTPError) Error() string { return e.Code }

var (
	ErrBadRequest           = HTTPError{Status: http.StatusBadRequest, Code: "bad_request"}
	ErrUnauthorized         = HTTPError{Status: http.StatusUnauthorized, Code: "unauthorized"}
	ErrNotFound             = HTTPError{Status: http.StatusNotFound, Code: "not_found"}
	ErrUnsupportedMediaType = HTTPError{Status: http.StatusUnsupportedMediaType, Code: "unsupported_media_type"}
	ErrInternalServerError  = HTTPError{Status: http.StatusInternalServerError, Code: "internal_error"}
)

// NewHTTPError creates a custom HTTPError.
func NewHTTPError(status int, code string) HTTPError {
	return HTTPError{Status: status, Code: code}
}

type failResponse struct{ err error }

func (f failResponse) Render(http.ResponseWriter, *http.Request) error { return f.err }

// Fail hands err to the route's ErrorHandler instead of rendering it directly,
// so domain errors go through the configured Classifier.
func Fail(err error) Response {
	if err == nil {
		err = ErrInternalServerError
	}
	return failResponse{err: err}
}
