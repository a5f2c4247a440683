// Package pipeline connects lead intake to workflow runs: submissions at or
// above the configured tier start a run in the background, and runs can be
// started manually for one lead or a batch.
package pipeline

import (
	"context"
	"errors"
	"net/http"

	"github.com/JaimeStill/leadpipe/internal/leads"
	"github.com/JaimeStill/leadpipe/internal/scoring"
	"github.com/JaimeStill/leadpipe/internal/workflow"
)

// Dispatcher runs fn in the background with a context that outlives the
// request. *lifecycle.Coordinator satisfies it.
type Dispatcher interface {
	Go(fn func(ctx context.Context))
}

// Options configures dispatch.
type Options struct {
	MinTier     scoring.Tier
	Concurrency int
}

var errInvalidID = errors.New("invalid lead id")

// MapHTTPStatus maps submission and run errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, errInvalidID):
		return http.StatusBadRequest
	case errors.Is(err, workflow.ErrProvider):
		return http.StatusBadGateway
	}
	return leads.MapHTTPStatus(err)
}
