// Package workflow orchestrates a single lead through research,
// qualification, and optional outreach drafting with human approval.
//
// Each run is a state graph: research → qualify, then qualify → draft →
// approve → complete for outreach categories, or qualify → complete
// otherwise. Any step failure ends the run, marks the workflow failed on a
// best effort basis, and returns the step's error.
package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	gaoconfig "github.com/JaimeStill/go-agents-orchestration/pkg/config"
	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/JaimeStill/leadpipe/internal/leads"
	"github.com/JaimeStill/leadpipe/internal/workflows"
)

type execution struct {
	rt         *Runtime
	logger     *slog.Logger
	workflowID uuid.UUID
	result     *Result
	stage      Stage
	err        error
}

// Run executes one workflow for lead. Create failures return a nil Result.
// Any later failure returns the partial Result with Status failed and the
// original step error; concurrent runs for the same lead are not guarded.
func Run(ctx context.Context, rt *Runtime, lead leads.Lead) (*Result, error) {
	start := time.Now()

	logger := rt.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("lead_id", lead.ID)

	wf, err := rt.Store.CreateWorkflow(ctx, lead.TenantID, lead.ID)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrCreateFailed, persistence(err))
		logger.ErrorContext(ctx, "create workflow failed", "error", err)
		observe(workflows.StatusFailed, StageCreated, time.Since(start))
		return nil, err
	}

	e := &execution{
		rt:         rt,
		logger:     logger.With("workflow_id", wf.ID),
		workflowID: wf.ID,
		stage:      StageCreated,
		result: &Result{
			WorkflowID: wf.ID,
			LeadID:     lead.ID,
			Status:     workflows.StatusRunning,
			Stage:      StageCreated,
		},
	}

	if err := e.execute(ctx, lead); err != nil {
		e.fail(ctx, err)
		e.result.Duration = time.Since(start)
		observe(workflows.StatusFailed, e.result.FailedStage, e.result.Duration)
		return e.result, err
	}

	e.result.Status = workflows.StatusCompleted
	e.result.Stage = StageCompleted
	e.result.Duration = time.Since(start)
	observe(workflows.StatusCompleted, "", e.result.Duration)

	e.logger.InfoContext(ctx, "workflow complete", "duration", e.result.Duration)

	return e.result, nil
}

func (e *execution) execute(ctx context.Context, lead leads.Lead) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()

	graph, err := e.buildGraph()
	if err != nil {
		return fmt.Errorf("build graph: %w", err)
	}

	initial := state.New(nil).Set(KeyLead, lead)

	_, err = graph.Execute(ctx, initial)
	if e.err != nil {
		return e.err
	}
	if err != nil {
		return fmt.Errorf("execute graph: %w", err)
	}

	return nil
}

// fail marks the workflow failed. The finalize runs detached from ctx
// cancellation so a cancelled caller does not leave the row running; its
// error is logged and never replaces err.
func (e *execution) fail(ctx context.Context, err error) {
	e.result.Status = workflows.StatusFailed
	e.result.FailedStage = e.stage
	e.result.Stage = StageFailed

	e.logger.ErrorContext(ctx, "workflow failed", "stage", e.stage, "error", err)

	ferr := e.rt.Store.FinalizeWorkflow(context.WithoutCancel(ctx), e.workflowID, workflows.StatusFailed)
	if ferr != nil {
		e.logger.ErrorContext(ctx, "mark workflow failed",
			"error", fmt.Errorf("%w: %w", ErrFinalizeFailed, persistence(ferr)),
		)
	}
}

func (e *execution) buildGraph() (state.StateGraph, error) {
	cfg := gaoconfig.DefaultGraphConfig("leadpipe-workflow")
	cfg.Observer = "noop"

	graph, err := state.NewGraph(cfg)
	if err != nil {
		return nil, err
	}

	nodes := []struct {
		name string
		node state.StateNode
	}{
		{"research", e.researchNode()},
		{"qualify", e.qualifyNode()},
		{"draft", e.draftNode()},
		{"approve", e.approveNode()},
		{"complete", e.completeNode()},
	}

	for _, n := range nodes {
		if err := graph.AddNode(n.name, n.node); err != nil {
			return nil, err
		}
	}

	if err := graph.AddEdge("research", "qualify", nil); err != nil {
		return nil, err
	}

	// qualify → draft for QUALIFIED and FOLLOW_UP
	if err := graph.AddEdge("qualify", "draft", needsOutreach); err != nil {
		return nil, err
	}

	// qualify → complete for UNQUALIFIED and SUPPORT
	if err := graph.AddEdge("qualify", "complete", state.Not(needsOutreach)); err != nil {
		return nil, err
	}

	if err := graph.AddEdge("draft", "approve", nil); err != nil {
		return nil, err
	}

	if err := graph.AddEdge("approve", "complete", nil); err != nil {
		return nil, err
	}

	if err := graph.SetEntryPoint("research"); err != nil {
		return nil, err
	}

	if err := graph.SetExitPoint("complete"); err != nil {
		return nil, err
	}

	return graph, nil
}

func observe(status workflows.Status, failed Stage, d time.Duration) {
	runsTotal.WithLabelValues(string(status)).Inc()
	runDuration.Observe(d.Seconds())
	if failed != "" {
		stageFailures.WithLabelValues(string(failed)).Inc()
	}
}
