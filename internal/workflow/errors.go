package workflow

import (
	"errors"
	"fmt"
)

// Error taxonomy. Every run error wraps exactly one step sentinel and, when
// it came from a collaborator, ErrPersistence or ErrProvider.
var (
	ErrPersistence = errors.New("persistence error")
	ErrProvider    = errors.New("provider error")

	ErrCreateFailed   = errors.New("create workflow failed")
	ErrResearchFailed = errors.New("research failed")
	ErrQualifyFailed  = errors.New("qualification failed")
	ErrDraftFailed    = errors.New("draft failed")
	ErrApprovalFailed = errors.New("approval request failed")
	ErrFinalizeFailed = errors.New("finalize workflow failed")

	// ErrPanic marks a step that panicked and was recovered.
	ErrPanic = errors.New("step panicked")

	// ErrInvalidTransition marks a stage change the transition table forbids.
	ErrInvalidTransition = errors.New("invalid stage transition")
)

func persistence(err error) error {
	if errors.Is(err, ErrPersistence) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrPersistence, err)
}

func provider(err error) error {
	if errors.Is(err, ErrProvider) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrProvider, err)
}
