package workflowtest

import (
	"context"
	"sync"

	"github.com/JaimeStill/leadpipe/internal/leads"
	"github.com/JaimeStill/leadpipe/internal/workflow"
)

// Researcher returns Result, or calls ResearchFn when set.
type Researcher struct {
	Result     string
	ResearchFn func(ctx context.Context, req workflow.ResearchRequest) (string, error)

	mu    sync.Mutex
	calls []workflow.ResearchRequest
}

func (r *Researcher) Research(ctx context.Context, req workflow.ResearchRequest) (string, error) {
	r.mu.Lock()
	r.calls = append(r.calls, req)
	r.mu.Unlock()

	if r.ResearchFn != nil {
		return r.ResearchFn(ctx, req)
	}
	return r.Result, nil
}

func (r *Researcher) Calls() []workflow.ResearchRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]workflow.ResearchRequest(nil), r.calls...)
}

// Classifier returns Result, or calls ClassifyFn when set.
type Classifier struct {
	Result     workflow.Qualification
	ClassifyFn func(ctx context.Context, lead leads.Lead, research string) (workflow.Qualification, error)

	mu    sync.Mutex
	calls int
}

func (c *Classifier) Classify(ctx context.Context, lead leads.Lead, research string) (workflow.Qualification, error) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()

	if c.ClassifyFn != nil {
		return c.ClassifyFn(ctx, lead, research)
	}
	return c.Result, nil
}

func (c *Classifier) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

// Drafter returns Result, or calls DraftFn when set.
type Drafter struct {
	Result  string
	DraftFn func(ctx context.Context, research string, q workflow.Qualification) (string, error)

	mu    sync.Mutex
	calls int
}

func (d *Drafter) Draft(ctx context.Context, research string, q workflow.Qualification) (string, error) {
	d.mu.Lock()
	d.calls++
	d.mu.Unlock()

	if d.DraftFn != nil {
		return d.DraftFn(ctx, research, q)
	}
	return d.Result, nil
}

func (d *Drafter) Calls() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.calls
}

// Gate records approval requests. RequestFn overrides the default success.
type Gate struct {
	RequestFn func(ctx context.Context, req workflow.ApprovalRequest) error

	mu       sync.Mutex
	requests []workflow.ApprovalRequest
}

func (g *Gate) Request(ctx context.Context, req workflow.ApprovalRequest) error {
	g.mu.Lock()
	g.requests = append(g.requests, req)
	g.mu.Unlock()

	if g.RequestFn != nil {
		return g.RequestFn(ctx, req)
	}
	return nil
}

func (g *Gate) Requests() []workflow.ApprovalRequest {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]workflow.ApprovalRequest(nil), g.requests...)
}
