package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/lingraph/lingraph/pkg/config"
	apperrors "github.com/lingraph/lingraph/pkg/errors"
)

func TestNewServerDefaults(t *testing.T) {
	s := NewServer(Options{})

	if s.runner == nil || s.store == nil || s.cache == nil || s.keyer == nil || s.logger == nil {
		t.Fatal("NewServer left a dependency nil")
	}
	if !s.defaults.Annotate {
		t.Error("default pipeline options do not annotate")
	}
}

func TestNewServerKeepsDefaults(t *testing.T) {
	s := NewServer(Options{Defaults: config.Pipeline{GraphID: 7, SourceID: 3, Annotate: true}})

	if s.defaults.GraphID != 7 || s.defaults.SourceID != 3 {
		t.Errorf("defaults = %+v, want graph 7 source 3", s.defaults)
	}
}

func TestRunOptions(t *testing.T) {
	s := NewServer(Options{Defaults: config.Pipeline{GraphID: 7, SourceID: 3, Annotate: true}})

	opts := s.runOptions(runRequest{})
	if opts.GraphID != 7 || opts.SourceID != 3 {
		t.Errorf("zero request: opts = %+v, want configured defaults", opts)
	}
	if opts.SkipAnnotate {
		t.Error("zero request skips annotation despite the configured default")
	}

	opts = s.runOptions(runRequest{GraphID: 9, SourceID: 1, Version: 2, Refresh: true})
	if opts.GraphID != 9 || opts.SourceID != 1 || opts.Version != 2 || !opts.Refresh {
		t.Errorf("explicit request: opts = %+v", opts)
	}

	off := false
	opts = s.runOptions(runRequest{Annotate: &off})
	if !opts.SkipAnnotate {
		t.Error("annotate=false does not skip annotation")
	}
}

func TestStatusForCode(t *testing.T) {
	tests := []struct {
		code apperrors.Code
		want int
	}{
		{apperrors.ErrCodeInvalidInput, http.StatusBadRequest},
		{apperrors.ErrCodeNotFound, http.StatusNotFound},
		{apperrors.ErrCodeDecodeFailed, http.StatusUnprocessableEntity},
		{apperrors.ErrCodeStoreUnavailable, http.StatusServiceUnavailable},
		{apperrors.ErrCodeCacheError, http.StatusServiceUnavailable},
		{apperrors.ErrCodeEncodeFailed, http.StatusInternalServerError},
		{apperrors.ErrCodeRenderFailed, http.StatusInternalServerError},
		{apperrors.ErrCodeConfigInvalid, http.StatusInternalServerError},
		{apperrors.ErrCodeInternal, http.StatusInternalServerError},
		{apperrors.Code(""), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusForCode(tt.code); got != tt.want {
			t.Errorf("statusForCode(%q) = %d, want %d", tt.code, got, tt.want)
		}
	}
}

func TestWriteErrorPlain(t *testing.T) {
	s := NewServer(Options{})
	rr := httptest.NewRecorder()

	s.writeError(rr, errors.New("kaboom"))
	wantErrorResponse(t, rr, http.StatusInternalServerError, "INTERNAL_ERROR")
}

func TestRequestIDHeader(t *testing.T) {
	s := NewServer(Options{})
	rr := doRequest(t, s, http.MethodGet, "/api/health", "")

	id := rr.Header().Get("X-Request-ID")
	if err := uuid.Validate(id); err != nil {
		t.Errorf("X-Request-ID %q is not a UUID: %v", id, err)
	}
}

func TestRecoverPanics(t *testing.T) {
	s := NewServer(Options{})
	h := s.recoverPanics(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	wantErrorResponse(t, rr, http.StatusInternalServerError, "INTERNAL_ERROR")
}

func TestCORSPreflight(t *testing.T) {
	s := NewServer(Options{})

	req := httptest.NewRequest(http.MethodOptions, "/api/graphs", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	s.Router().ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusNoContent)
	}
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
}

func TestCORSConfiguredOrigin(t *testing.T) {
	s := NewServer(Options{CORSOrigins: []string{"http://app.example.com"}})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "http://app.example.com")
	rr := httptest.NewRecorder()
	s.Router().ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "http://app.example.com" {
		t.Errorf("Access-Control-Allow-Origin = %q, want the configured origin", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	rr = httptest.NewRecorder()
	s.Router().ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Access-Control-Allow-Origin = %q for a disallowed origin, want empty", got)
	}
}
