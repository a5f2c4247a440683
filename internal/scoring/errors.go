package scoring

import (
	"errors"
	"net/http"
)

// ErrInvalidQuestionSet indicates a question definition the engine cannot score.
var ErrInvalidQuestionSet = errors.New("invalid question set")

// MapHTTPStatus maps scoring errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrInvalidQuestionSet) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
