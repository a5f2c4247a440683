package leads

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/leadpipe/internal/scoring"
	"github.com/JaimeStill/leadpipe/pkg/repository"
)

var (
	ErrNotFound          = errors.New("lead not found")
	ErrDuplicate         = errors.New("lead already exists")
	ErrInvalidCategory   = errors.New("invalid qualification category")
	ErrInvalidSubmission = errors.New("invalid submission")
)

func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidSubmission), errors.Is(err, ErrInvalidCategory):
		return http.StatusBadRequest
	case errors.Is(err, scoring.ErrInvalidQuestionSet):
		return scoring.MapHTTPStatus(err)
	}
	return http.StatusInternalServerError
}

var dbErrs = repository.Errs{
	NotFound:  ErrNotFound,
	Duplicate: ErrDuplicate,
	Invalid:   ErrInvalidSubmission,
}
