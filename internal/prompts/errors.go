package prompts

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/leadpipe/pkg/repository"
)

var (
	ErrNotFound      = errors.New("prompt not found")
	ErrDuplicate     = errors.New("prompt name already exists")
	ErrInvalidStage  = errors.New("stage must be research, qualify, or draft")
	ErrInvalidPrompt = errors.New("invalid prompt")
)

// MapHTTPStatus maps prompt domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidStage), errors.Is(err, ErrInvalidPrompt):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

var dbErrs = repository.Errs{
	NotFound:  ErrNotFound,
	Duplicate: ErrDuplicate,
	Invalid:   ErrInvalidStage,
}
