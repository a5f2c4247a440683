package workflow

import "fmt"

// Stage is a state of a single workflow run.
type Stage string

const (
	StageCreated          Stage = "created"
	StageResearching      Stage = "researching"
	StageQualifying       Stage = "qualifying"
	StageRouteTerminal    Stage = "route_terminal"
	StageRouteOutreach    Stage = "route_outreach"
	StageDrafting         Stage = "drafting"
	StageAwaitingApproval Stage = "awaiting_approval"
	StageCompleted        Stage = "completed"
	StageFailed           Stage = "failed"
)

// Terminal reports whether no further transition is possible.
func (s Stage) Terminal() bool {
	return s == StageCompleted || s == StageFailed
}

var transitions = map[Stage][]Stage{
	StageCreated:          {StageResearching},
	StageResearching:      {StageQualifying},
	StageQualifying:       {StageRouteTerminal, StageRouteOutreach},
	StageRouteOutreach:    {StageDrafting},
	StageDrafting:         {StageAwaitingApproval},
	StageAwaitingApproval: {StageCompleted},
	StageRouteTerminal:    {StageCompleted},
}

// CanTransition reports whether from may move to to. Every non-terminal
// stage may fail.
func CanTransition(from, to Stage) bool {
	if from.Terminal() {
		return false
	}
	if to == StageFailed {
		return true
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// advance moves the run to stage, refusing moves the table does not allow.
func (e *execution) advance(to Stage) error {
	if !CanTransition(e.stage, to) {
		return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, e.stage, to)
	}
	e.stage = to
	return nil
}
