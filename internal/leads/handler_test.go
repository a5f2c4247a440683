package leads_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/leadpipe/internal/leads"
	"github.com/JaimeStill/leadpipe/internal/scoring"
	"github.com/JaimeStill/leadpipe/pkg/pagination"
	"github.com/JaimeStill/leadpipe/pkg/routes"
)

type mockSystem struct {
	listFn      func(ctx context.Context, page pagination.PageRequest, filters leads.Filters) (*pagination.PageResult[leads.Lead], error)
	findFn      func(ctx context.Context, id uuid.UUID) (*leads.Lead, error)
	findScoreFn func(ctx context.Context, id uuid.UUID) (*scoring.LeadScore, error)
}

func (m *mockSystem) Handler() *leads.Handler { return newTestHandler(m) }

func (m *mockSystem) List(ctx context.Context, page pagination.PageRequest, filters leads.Filters) (*pagination.PageResult[leads.Lead], error) {
	return m.listFn(ctx, page, filters)
}

func (m *mockSystem) Find(ctx context.Context, id uuid.UUID) (*leads.Lead, error) {
	return m.findFn(ctx, id)
}

func (m *mockSystem) FindScore(ctx context.Context, id uuid.UUID) (*scoring.LeadScore, error) {
	return m.findScoreFn(ctx, id)
}

func (m *mockSystem) Submit(context.Context, leads.SubmitCommand) (*leads.Submission, error) {
	panic("not used by handler")
}

func (m *mockSystem) UpdateQualification(context.Context, uuid.UUID, leads.Category, string) error {
	panic("not used by handler")
}

func newTestHandler(sys leads.System) *leads.Handler {
	return leads.NewHandler(
		sys,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		pagination.Config{DefaultPageSize: 20, MaxPageSize: 100},
	)
}

func setupMux(h *leads.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	routes.Register(mux, h.Routes())
	return mux
}

func sampleLead() leads.Lead {
	cat := leads.Qualified
	return leads.Lead{
		ID:        uuid.MustParse("550e8400-e29b-41d4-a716-446655440000"),
		TenantID:  uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8"),
		Name:      "Ada Lovelace",
		Email:     "ada@example.com",
		Message:   "Looking for automation help",
		Category:  &cat,
		Status:    leads.StatusPending,
		CreatedAt: time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC),
	}
}

func TestHandlerList(t *testing.T) {
	var gotFilters leads.Filters
	var gotPage pagination.PageRequest

	sys := &mockSystem{
		listFn: func(_ context.Context, page pagination.PageRequest, filters leads.Filters) (*pagination.PageResult[leads.Lead], error) {
			gotPage, gotFilters = page, filters
			result := pagination.NewPageResult([]leads.Lead{sampleLead()}, 1, page.Page, page.PageSize)
			return &result, nil
		},
	}

	rec := httptest.NewRecorder()
	setupMux(newTestHandler(sys)).ServeHTTP(rec, httptest.NewRequest("GET", "/leads?tier=hot&min_score=60&page_size=5", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	if gotFilters.Tier == nil || *gotFilters.Tier != "hot" {
		t.Errorf("tier filter: got %v", gotFilters.Tier)
	}
	if gotFilters.MinScore == nil || *gotFilters.MinScore != 60 {
		t.Errorf("min_score filter: got %v", gotFilters.MinScore)
	}
	if gotPage.PageSize != 5 {
		t.Errorf("page size: got %d, want 5", gotPage.PageSize)
	}

	var body pagination.PageResult[leads.Lead]
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Data) != 1 || *body.Data[0].Category != leads.Qualified {
		t.Errorf("body: got %+v", body)
	}
}

func TestHandlerFind(t *testing.T) {
	lead := sampleLead()

	tests := []struct {
		name string
		path string
		err  error
		want int
	}{
		{"found", "/leads/" + lead.ID.String(), nil, http.StatusOK},
		{"not found", "/leads/" + lead.ID.String(), leads.ErrNotFound, http.StatusNotFound},
		{"invalid id", "/leads/not-a-uuid", nil, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := &mockSystem{
				findFn: func(_ context.Context, id uuid.UUID) (*leads.Lead, error) {
					if tt.err != nil {
						return nil, tt.err
					}
					return &lead, nil
				},
			}

			rec := httptest.NewRecorder()
			setupMux(newTestHandler(sys)).ServeHTTP(rec, httptest.NewRequest("GET", tt.path, nil))

			if rec.Code != tt.want {
				t.Errorf("status: got %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestHandlerScore(t *testing.T) {
	sys := &mockSystem{
		findScoreFn: func(_ context.Context, id uuid.UUID) (*scoring.LeadScore, error) {
			return &scoring.LeadScore{ReadinessScore: 72, Tier: scoring.TierHot}, nil
		},
	}

	rec := httptest.NewRecorder()
	setupMux(newTestHandler(sys)).ServeHTTP(rec, httptest.NewRequest("GET", "/leads/"+uuid.NewString()+"/score", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"tier":"hot"`) {
		t.Errorf("body: %s", rec.Body.String())
	}
}

func TestHandlerSearch(t *testing.T) {
	var gotFilters leads.Filters
	sys := &mockSystem{
		listFn: func(_ context.Context, page pagination.PageRequest, filters leads.Filters) (*pagination.PageResult[leads.Lead], error) {
			gotFilters = filters
			result := pagination.NewPageResult[leads.Lead](nil, 0, page.Page, page.PageSize)
			return &result, nil
		},
	}

	body := `{"page":1,"page_size":10,"category":"FOLLOW_UP","status":"pending"}`
	rec := httptest.NewRecorder()
	setupMux(newTestHandler(sys)).ServeHTTP(rec, httptest.NewRequest("POST", "/leads/search", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	if gotFilters.Category == nil || *gotFilters.Category != "FOLLOW_UP" {
		t.Errorf("category filter: got %v", gotFilters.Category)
	}
}
