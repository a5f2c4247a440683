package workflows

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/leadpipe/pkg/repository"
)

var (
	ErrNotFound            = errors.New("workflow not found")
	ErrLeadNotFound        = errors.New("lead not found for workflow")
	ErrNotRunning          = errors.New("workflow is not running")
	ErrInvalidStatus       = errors.New("invalid terminal status")
	ErrNotAwaitingDecision = errors.New("workflow is not awaiting a decision")
	ErrInvalidDecision     = errors.New("invalid decision")
)

func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrLeadNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrNotRunning), errors.Is(err, ErrNotAwaitingDecision):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidStatus), errors.Is(err, ErrInvalidDecision):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

var dbErrs = repository.Errs{
	NotFound:  ErrNotFound,
	Reference: ErrLeadNotFound,
	Invalid:   ErrInvalidStatus,
}
