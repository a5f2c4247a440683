package pipeline_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/leadpipe/internal/leads"
	"github.com/JaimeStill/leadpipe/internal/pipeline"
	"github.com/JaimeStill/leadpipe/internal/scoring"
	"github.com/JaimeStill/leadpipe/internal/workflow"
	"github.com/JaimeStill/leadpipe/internal/workflow/workflowtest"
	"github.com/JaimeStill/leadpipe/internal/workflows"
	"github.com/JaimeStill/leadpipe/pkg/routes"
)

type mockLeads struct {
	leads.System
	submitFn func(ctx context.Context, cmd leads.SubmitCommand) (*leads.Submission, error)
	findFn   func(ctx context.Context, id uuid.UUID) (*leads.Lead, error)
}

func (m *mockLeads) Submit(ctx context.Context, cmd leads.SubmitCommand) (*leads.Submission, error) {
	return m.submitFn(ctx, cmd)
}

func (m *mockLeads) Find(ctx context.Context, id uuid.UUID) (*leads.Lead, error) {
	return m.findFn(ctx, id)
}

// inline runs dispatched work before returning.
type inline struct {
	mu    sync.Mutex
	count int
}

func (d *inline) Go(fn func(ctx context.Context)) {
	d.mu.Lock()
	d.count++
	d.mu.Unlock()
	fn(context.Background())
}

type fixture struct {
	store    *workflowtest.Store
	research *workflowtest.Researcher
	gate     *workflowtest.Gate
	dispatch *inline
	mux      *http.ServeMux
}

func newFixture(sys leads.System) *fixture {
	f := &fixture{
		store:    workflowtest.NewStore(),
		research: &workflowtest.Researcher{Result: "brief"},
		gate:     &workflowtest.Gate{},
		dispatch: &inline{},
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	rt := &workflow.Runtime{
		Store:      f.store,
		Researcher: f.research,
		Classifier: &workflowtest.Classifier{Result: workflow.Qualification{Category: leads.Qualified, Reason: "fit"}},
		Drafter:    &workflowtest.Drafter{Result: "Hi"},
		Gate:       f.gate,
		Logger:     logger,
	}

	h := pipeline.NewHandler(sys, rt, f.dispatch, pipeline.Options{
		MinTier:     scoring.TierHot,
		Concurrency: 2,
	}, logger)

	f.mux = http.NewServeMux()
	routes.Register(f.mux, h.Routes())
	return f
}

func (f *fixture) do(method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
	return rec
}

func lead(id uuid.UUID) *leads.Lead {
	return &leads.Lead{ID: id, TenantID: uuid.New(), Name: "Ada", Email: "ada@acme.test", Status: leads.StatusPending}
}

func submitting(tier scoring.Tier) *mockLeads {
	return &mockLeads{
		submitFn: func(_ context.Context, cmd leads.SubmitCommand) (*leads.Submission, error) {
			return &leads.Submission{
				Lead:  *lead(uuid.New()),
				Score: scoring.LeadScore{Tier: tier},
			}, nil
		},
	}
}

const submitBody = `{"tenant_id": "6ba7b810-9dad-11d1-80b4-00c04fd430c8", "name": "Ada", "email": "ada@acme.test", "message": "hi"}`

func TestSubmitDispatchesAtOrAboveTier(t *testing.T) {
	tests := []struct {
		tier       scoring.Tier
		dispatched bool
	}{
		{scoring.TierCold, false},
		{scoring.TierWarm, false},
		{scoring.TierHot, true},
		{scoring.TierQualified, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.tier), func(t *testing.T) {
			f := newFixture(submitting(tt.tier))

			rec := f.do(http.MethodPost, "/leads", submitBody)
			require.Equal(t, http.StatusCreated, rec.Code)

			var resp pipeline.SubmitResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, tt.dispatched, resp.Dispatched)

			if tt.dispatched {
				assert.Equal(t, 1, f.dispatch.count)
				require.Len(t, f.store.Workflows(), 1)
				assert.Equal(t, workflows.StatusCompleted, f.store.Workflows()[0].Status)
			} else {
				assert.Zero(t, f.dispatch.count)
				assert.Empty(t, f.store.Workflows())
			}
		})
	}
}

func TestSubmitInvalid(t *testing.T) {
	sys := &mockLeads{
		submitFn: func(context.Context, leads.SubmitCommand) (*leads.Submission, error) {
			return nil, scoring.ErrInvalidQuestionSet
		},
	}
	f := newFixture(sys)

	rec := f.do(http.MethodPost, "/leads", submitBody)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = f.do(http.MethodPost, "/leads", "{")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRun(t *testing.T) {
	id := uuid.New()
	f := newFixture(&mockLeads{
		findFn: func(_ context.Context, got uuid.UUID) (*leads.Lead, error) {
			return lead(got), nil
		},
	})

	rec := f.do(http.MethodPost, "/leads/"+id.String()+"/workflow", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var res workflow.Result
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	assert.Equal(t, id, res.LeadID)
	assert.Equal(t, workflows.StatusCompleted, res.Status)
	assert.True(t, res.ApprovalRequested)
	require.Len(t, f.gate.Requests(), 1)
	assert.Equal(t, res.WorkflowID, f.gate.Requests()[0].WorkflowID)
}

func TestRunErrors(t *testing.T) {
	f := newFixture(&mockLeads{
		findFn: func(context.Context, uuid.UUID) (*leads.Lead, error) {
			return nil, leads.ErrNotFound
		},
	})

	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodPost, "/leads/nope/workflow", "").Code)
	assert.Equal(t, http.StatusNotFound, f.do(http.MethodPost, "/leads/"+uuid.NewString()+"/workflow", "").Code)

	f = newFixture(&mockLeads{
		findFn: func(_ context.Context, id uuid.UUID) (*leads.Lead, error) { return lead(id), nil },
	})
	f.research.ResearchFn = func(context.Context, workflow.ResearchRequest) (string, error) {
		return "", errors.New("search down")
	}

	rec := f.do(http.MethodPost, "/leads/"+uuid.NewString()+"/workflow", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	require.Len(t, f.store.Workflows(), 1)
	assert.Equal(t, workflows.StatusFailed, f.store.Workflows()[0].Status)
}

func TestRunBatch(t *testing.T) {
	missing := uuid.New()
	ok1, ok2 := uuid.New(), uuid.New()

	f := newFixture(&mockLeads{
		findFn: func(_ context.Context, id uuid.UUID) (*leads.Lead, error) {
			if id == missing {
				return nil, leads.ErrNotFound
			}
			return lead(id), nil
		},
	})

	body, _ := json.Marshal(pipeline.BatchRequest{LeadIDs: []uuid.UUID{ok1, missing, ok2}})
	rec := f.do(http.MethodPost, "/leads/workflows", string(body))
	require.Equal(t, http.StatusOK, rec.Code)

	var outcomes []pipeline.BatchOutcome
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&outcomes))
	require.Len(t, outcomes, 3)

	assert.Equal(t, ok1, outcomes[0].LeadID)
	assert.Empty(t, outcomes[0].Error)
	require.NotNil(t, outcomes[0].Result)
	assert.Equal(t, workflows.StatusCompleted, outcomes[0].Result.Status)

	assert.Equal(t, missing, outcomes[1].LeadID)
	assert.Contains(t, outcomes[1].Error, "lead not found")
	assert.Nil(t, outcomes[1].Result)

	assert.Equal(t, ok2, outcomes[2].LeadID)
	assert.Empty(t, outcomes[2].Error)

	assert.Len(t, f.store.Workflows(), 2)
}

func TestRunBatchEmpty(t *testing.T) {
	f := newFixture(&mockLeads{})
	rec := f.do(http.MethodPost, "/leads/workflows", `{"lead_ids": []}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
