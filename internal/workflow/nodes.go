package workflow

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/JaimeStill/leadpipe/internal/leads"
	"github.com/JaimeStill/leadpipe/internal/workflows"
)

// State keys carried between graph nodes.
const (
	KeyLead          = "lead"
	KeyResearch      = "research"
	KeyQualification = "qualification"
	KeyRoute         = "route"
	KeyDraft         = "draft"
)

var stageErrors = map[Stage]error{
	StageResearching:      ErrResearchFailed,
	StageQualifying:       ErrQualifyFailed,
	StageDrafting:         ErrDraftFailed,
	StageAwaitingApproval: ErrApprovalFailed,
	StageCompleted:        ErrFinalizeFailed,
}

// node wraps a step. Entering it advances the run to stage through the
// transition table. A panic becomes an error wrapping the stage sentinel;
// the first failure is recorded on the execution.
func (e *execution) node(stage Stage, fn func(ctx context.Context, s state.State) (state.State, error)) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (out state.State, err error) {
		defer func() {
			if r := recover(); r != nil {
				out = s
				err = fmt.Errorf("%w: %w: %v", stageErrors[stage], ErrPanic, r)
			}
			if err != nil && e.err == nil {
				e.err = err
			}
		}()
		if err := e.advance(stage); err != nil {
			return s, fmt.Errorf("%w: %w", stageErrors[stage], err)
		}
		return fn(ctx, s)
	})
}

func (e *execution) researchNode() state.StateNode {
	return e.node(StageResearching, func(ctx context.Context, s state.State) (state.State, error) {
		lead, err := get[leads.Lead](s, KeyLead)
		if err != nil {
			return s, fmt.Errorf("%w: %w", ErrResearchFailed, err)
		}

		research, err := e.rt.Researcher.Research(ctx, ResearchRequest{
			Name:    lead.Name,
			Email:   lead.Email,
			Company: lead.CompanyName(),
			Message: lead.Message,
		})
		if err != nil {
			return s, fmt.Errorf("%w: %w", ErrResearchFailed, provider(err))
		}

		e.result.Research = research

		e.logger.InfoContext(ctx, "research node complete", "stage", StageResearching)

		return s.Set(KeyResearch, research), nil
	})
}

func (e *execution) qualifyNode() state.StateNode {
	return e.node(StageQualifying, func(ctx context.Context, s state.State) (state.State, error) {
		lead, err := get[leads.Lead](s, KeyLead)
		if err != nil {
			return s, fmt.Errorf("%w: %w", ErrQualifyFailed, err)
		}

		research, err := get[string](s, KeyResearch)
		if err != nil {
			return s, fmt.Errorf("%w: %w", ErrQualifyFailed, err)
		}

		q, err := e.rt.Classifier.Classify(ctx, lead, research)
		if err != nil {
			return s, fmt.Errorf("%w: %w", ErrQualifyFailed, provider(err))
		}

		route, ok := RouteFor(q.Category)
		if !ok {
			err := fmt.Errorf("%w: %q", leads.ErrInvalidCategory, q.Category)
			return s, fmt.Errorf("%w: %w", ErrQualifyFailed, provider(err))
		}

		if err := e.rt.Store.UpdateLeadQualification(ctx, lead.ID, q); err != nil {
			return s, fmt.Errorf("%w: %w", ErrQualifyFailed, persistence(err))
		}

		e.result.Qualification = &q
		e.result.Route = &route

		next := StageRouteTerminal
		if route.Outreach() {
			next = StageRouteOutreach
		}
		if err := e.advance(next); err != nil {
			return s, fmt.Errorf("%w: %w", ErrQualifyFailed, err)
		}

		e.logger.InfoContext(ctx, "qualify node complete",
			"stage", e.stage,
			"category", q.Category,
		)

		s = s.Set(KeyQualification, q)
		return s.Set(KeyRoute, route), nil
	})
}

func (e *execution) draftNode() state.StateNode {
	return e.node(StageDrafting, func(ctx context.Context, s state.State) (state.State, error) {
		research, err := get[string](s, KeyResearch)
		if err != nil {
			return s, fmt.Errorf("%w: %w", ErrDraftFailed, err)
		}

		q, err := get[Qualification](s, KeyQualification)
		if err != nil {
			return s, fmt.Errorf("%w: %w", ErrDraftFailed, err)
		}

		draft, err := e.rt.Drafter.Draft(ctx, research, q)
		if err != nil {
			return s, fmt.Errorf("%w: %w", ErrDraftFailed, provider(err))
		}

		if err := e.rt.Store.UpdateWorkflowOutreach(ctx, e.workflowID, research, draft); err != nil {
			return s, fmt.Errorf("%w: %w", ErrDraftFailed, persistence(err))
		}

		e.result.Draft = draft

		e.logger.InfoContext(ctx, "draft node complete", "stage", StageDrafting)

		return s.Set(KeyDraft, draft), nil
	})
}

func (e *execution) approveNode() state.StateNode {
	return e.node(StageAwaitingApproval, func(ctx context.Context, s state.State) (state.State, error) {
		lead, err := get[leads.Lead](s, KeyLead)
		if err != nil {
			return s, fmt.Errorf("%w: %w", ErrApprovalFailed, err)
		}

		research, err := get[string](s, KeyResearch)
		if err != nil {
			return s, fmt.Errorf("%w: %w", ErrApprovalFailed, err)
		}

		q, err := get[Qualification](s, KeyQualification)
		if err != nil {
			return s, fmt.Errorf("%w: %w", ErrApprovalFailed, err)
		}

		draft, err := get[string](s, KeyDraft)
		if err != nil {
			return s, fmt.Errorf("%w: %w", ErrApprovalFailed, err)
		}

		err = e.rt.Gate.Request(ctx, ApprovalRequest{
			WorkflowID:    e.workflowID,
			Lead:          lead,
			Research:      research,
			Email:         draft,
			Qualification: q,
		})
		if err != nil {
			return s, fmt.Errorf("%w: %w", ErrApprovalFailed, provider(err))
		}

		e.result.ApprovalRequested = true

		e.logger.InfoContext(ctx, "approve node complete", "stage", StageAwaitingApproval)

		return s, nil
	})
}

func (e *execution) completeNode() state.StateNode {
	return e.node(StageCompleted, func(ctx context.Context, s state.State) (state.State, error) {
		if err := e.rt.Store.FinalizeWorkflow(ctx, e.workflowID, workflows.StatusCompleted); err != nil {
			return s, fmt.Errorf("%w: %w", ErrFinalizeFailed, persistence(err))
		}

		e.logger.InfoContext(ctx, "complete node complete", "stage", StageCompleted)

		return s, nil
	})
}

func needsOutreach(s state.State) bool {
	route, err := get[Route](s, KeyRoute)
	if err != nil {
		return false
	}
	return route.Outreach()
}

func get[T any](s state.State, key string) (T, error) {
	var zero T

	val, ok := s.Get(key)
	if !ok {
		return zero, fmt.Errorf("missing %s in state", key)
	}

	v, ok := val.(T)
	if !ok {
		return zero, fmt.Errorf("%s is %T, want %T", key, val, zero)
	}

	return v, nil
}
