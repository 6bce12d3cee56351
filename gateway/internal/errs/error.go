package errs

import (
	"errors"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrDefault      = errors.New("some error")
	ErrUnauthorized = errors.New("permission denied")
	ErrValidation   = errors.New("validation failed")
	ErrNotJSON      = errors.New("backend returned a non-JSON body")
	ErrUnavailable  = errors.New("backend unavailable")
	ErrNoViewer     = errors.New("no signed-in viewer")
)

type ValidationErrorResponse struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}
