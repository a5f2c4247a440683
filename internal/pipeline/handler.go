package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/JaimeStill/leadpipe/internal/leads"
	"github.com/JaimeStill/leadpipe/internal/workflow"
	"github.com/JaimeStill/leadpipe/pkg/handlers"
	"github.com/JaimeStill/leadpipe/pkg/routes"
)

type Handler struct {
	leads    leads.System
	runtime  *workflow.Runtime
	dispatch Dispatcher
	opts     Options
	logger   *slog.Logger
}

// SubmitResponse is the stored submission and whether a run was started.
type SubmitResponse struct {
	leads.Submission
	Dispatched bool `json:"dispatched"`
}

// BatchRequest lists the leads to run.
type BatchRequest struct {
	LeadIDs []uuid.UUID `json:"lead_ids"`
}

// BatchOutcome reports one lead of a batch run.
type BatchOutcome struct {
	LeadID uuid.UUID        `json:"lead_id"`
	Result *workflow.Result `json:"result,omitempty"`
	Error  string           `json:"error,omitempty"`
}

func NewHandler(ls leads.System, rt *workflow.Runtime, d Dispatcher, opts Options, logger *slog.Logger) *Handler {
	return &Handler{
		leads:    ls,
		runtime:  rt,
		dispatch: d,
		opts:     opts,
		logger:   logger.With("handler", "pipeline"),
	}
}

func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/leads",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Submit},
			{Method: "POST", Pattern: "/workflows", Handler: h.RunBatch},
			{Method: "POST", Pattern: "/{id}/workflow", Handler: h.Run},
		},
	}
}

// Submit scores and stores a quiz submission. Leads at or above the
// minimum tier get a background workflow run.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var cmd leads.SubmitCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	sub, err := h.leads.Submit(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	resp := SubmitResponse{Submission: *sub}

	if sub.Score.Tier.AtLeast(h.opts.MinTier) {
		h.start(sub.Lead)
		resp.Dispatched = true
	} else {
		h.logger.InfoContext(r.Context(), "lead below workflow tier",
			"lead_id", sub.Lead.ID,
			"tier", sub.Score.Tier,
			"min_tier", h.opts.MinTier,
		)
	}

	handlers.RespondJSON(w, http.StatusCreated, resp)
}

func (h *Handler) start(lead leads.Lead) {
	h.dispatch.Go(func(ctx context.Context) {
		if _, err := workflow.Run(ctx, h.runtime, lead); err != nil {
			h.logger.ErrorContext(ctx, "dispatched workflow failed", "lead_id", lead.ID, "error", err)
		}
	})
}

// Run executes a workflow for one lead synchronously.
func (h *Handler) Run(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, errInvalidID)
		return
	}

	lead, err := h.leads.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	result, err := workflow.Run(r.Context(), h.runtime, *lead)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// RunBatch runs workflows for many leads with bounded concurrency. Every
// lead gets an outcome; failures do not stop the batch.
func (h *Handler) RunBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}
	if len(req.LeadIDs) == 0 {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("%w: lead_ids required", errInvalidID))
		return
	}

	outcomes := make([]BatchOutcome, len(req.LeadIDs))
	var (
		batch []leads.Lead
		index []int
	)

	for i, id := range req.LeadIDs {
		outcomes[i].LeadID = id

		lead, err := h.leads.Find(r.Context(), id)
		if err != nil {
			outcomes[i].Error = err.Error()
			continue
		}
		batch = append(batch, *lead)
		index = append(index, i)
	}

	for j, o := range workflow.RunMany(r.Context(), h.runtime, batch, h.opts.Concurrency) {
		i := index[j]
		outcomes[i].Result = o.Result
		if o.Err != nil {
			outcomes[i].Error = o.Err.Error()
		}
	}

	handlers.RespondJSON(w, http.StatusOK, outcomes)
}
