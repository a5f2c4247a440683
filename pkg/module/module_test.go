package module_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/leadpipe/pkg/module"
)

func TestNewInvalidPrefixPanics(t *testing.T) {
	for _, prefix := range []string{"", "api", "/api/v1"} {
		t.Run(prefix, func(t *testing.T) {
			defer func() {
				if r := recover(); r == nil {
					t.Errorf("expected panic for prefix %q", prefix)
				}
			}()
			module.New(prefix, http.NewServeMux())
		})
	}
}

func TestServeStripsPrefix(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/api/leads", "/leads"},
		{"/api", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			var received string
			mux := http.NewServeMux()
			mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
				received = r.URL.Path
			})

			module.New("/api", mux).Serve(httptest.NewRecorder(), httptest.NewRequest("GET", tt.path, nil))

			if received != tt.want {
				t.Errorf("inner path: got %q, want %q", received, tt.want)
			}
		})
	}
}

func TestModuleMiddleware(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /leads", func(w http.ResponseWriter, r *http.Request) {})

	m := module.New("/api", mux)
	m.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Module", "api")
			next.ServeHTTP(w, r)
		})
	})

	rec := httptest.NewRecorder()
	m.Serve(rec, httptest.NewRequest("GET", "/api/leads", nil))

	if rec.Header().Get("X-Module") != "api" {
		t.Error("module middleware was not applied")
	}
}

func TestRouterDispatch(t *testing.T) {
	api := http.NewServeMux()
	api.HandleFunc("GET /leads", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})

	router := module.NewRouter()
	router.Mount(module.New("/api", api))
	router.HandleNative("GET /healthz", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		path string
		want int
	}{
		{"/api/leads", http.StatusAccepted},
		{"/api/leads/", http.StatusAccepted},
		{"/healthz", http.StatusNoContent},
		{"/missing", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest("GET", tt.path, nil))
			if rec.Code != tt.want {
				t.Errorf("status: got %d, want %d", rec.Code, tt.want)
			}
		})
	}
}
