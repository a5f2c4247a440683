package prompts_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/JaimeStill/leadpipe/internal/prompts"
	"github.com/JaimeStill/leadpipe/pkg/pagination"
	"github.com/JaimeStill/leadpipe/pkg/routes"
)

func TestParseStage(t *testing.T) {
	tests := []struct {
		in      string
		want    prompts.Stage
		wantErr bool
	}{
		{"research", prompts.StageResearch, false},
		{"qualify", prompts.StageQualify, false},
		{"draft", prompts.StageDraft, false},
		{"classify", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := prompts.ParseStage(tt.in)
			if tt.wantErr {
				if !errors.Is(err, prompts.ErrInvalidStage) {
					t.Fatalf("err = %v, want ErrInvalidStage", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestEveryStageHasDefaults(t *testing.T) {
	for _, stage := range prompts.Stages() {
		instructions, err := prompts.Instructions(stage)
		if err != nil || instructions == "" {
			t.Errorf("%s: instructions = %q, err = %v", stage, instructions, err)
		}

		spec, err := prompts.Spec(stage)
		if err != nil || !strings.Contains(spec, "JSON") {
			t.Errorf("%s: spec missing JSON contract, err = %v", stage, err)
		}
	}
}

func TestQualifySpecListsEveryCategory(t *testing.T) {
	spec, _ := prompts.Spec(prompts.StageQualify)
	for _, c := range []string{"QUALIFIED", "FOLLOW_UP", "UNQUALIFIED", "SUPPORT"} {
		if !strings.Contains(spec, c) {
			t.Errorf("qualify spec missing %s", c)
		}
	}
}

type mockSystem struct {
	prompts.System
	instructionsFn func(ctx context.Context, stage prompts.Stage) (string, error)
	activateFn     func(ctx context.Context, id uuid.UUID) (*prompts.Prompt, error)
}

func (m *mockSystem) Instructions(ctx context.Context, stage prompts.Stage) (string, error) {
	return m.instructionsFn(ctx, stage)
}

func (m *mockSystem) Spec(_ context.Context, stage prompts.Stage) (string, error) {
	return prompts.Spec(stage)
}

func (m *mockSystem) Activate(ctx context.Context, id uuid.UUID) (*prompts.Prompt, error) {
	return m.activateFn(ctx, id)
}

func serve(sys prompts.System, method, path string) *httptest.ResponseRecorder {
	h := prompts.NewHandler(
		sys,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		pagination.Config{DefaultPageSize: 20, MaxPageSize: 100},
	)

	mux := http.NewServeMux()
	routes.Register(mux, h.Routes())

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestHandlerInstructions(t *testing.T) {
	sys := &mockSystem{
		instructionsFn: func(_ context.Context, stage prompts.Stage) (string, error) {
			return "override for " + string(stage), nil
		},
	}

	rec := serve(sys, http.MethodGet, "/prompts/draft/instructions")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var got prompts.StageContent
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.Stage != prompts.StageDraft || got.Content != "override for draft" {
		t.Errorf("got %+v", got)
	}
}

func TestHandlerInvalidStage(t *testing.T) {
	rec := serve(&mockSystem{}, http.MethodGet, "/prompts/enhance/spec")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandlerActivateNotFound(t *testing.T) {
	sys := &mockSystem{
		activateFn: func(context.Context, uuid.UUID) (*prompts.Prompt, error) {
			return nil, prompts.ErrNotFound
		},
	}

	rec := serve(sys, http.MethodPost, "/prompts/"+uuid.NewString()+"/activate")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
