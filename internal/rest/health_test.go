//go:build !integration

package rest

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
)

type stubChecker struct {
	err error
}

func (s stubChecker) HealthCheck(context.Context) error {
	return s.err
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name       string
		checkers   map[string]HealthChecker
		wantStatus int
		wantBody   string
	}{
		{
			name:       "all healthy",
			checkers:   map[string]HealthChecker{"database": stubChecker{}, "redis": stubChecker{}},
			wantStatus: http.StatusOK,
			wantBody:   `"status":"healthy"`,
		},
		{
			name:       "redis down",
			checkers:   map[string]HealthChecker{"database": stubChecker{}, "redis": stubChecker{err: errors.New("dial tcp")}},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   `"redis":"error"`,
		},
		{
			name:       "nil checker skipped",
			checkers:   map[string]HealthChecker{"database": stubChecker{}, "redis": nil},
			wantStatus: http.StatusOK,
			wantBody:   `"database":"ok"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(tt.checkers)

			c, rec := newContext(http.MethodGet, "/health", "")
			if err := h.Health(c); err != nil {
				t.Fatalf("Health: %v", err)
			}

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Errorf("body = %s, want it to contain %s", rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestHealth_DoesNotLeakErrors(t *testing.T) {
	h := NewHealthHandler(map[string]HealthChecker{"database": stubChecker{err: errors.New("password authentication failed")}})

	c, rec := newContext(http.MethodGet, "/health", "")
	if err := h.Health(c); err != nil {
		t.Fatalf("Health: %v", err)
	}

	if strings.Contains(rec.Body.String(), "password") {
		t.Errorf("health body leaked error detail: %s", rec.Body.String())
	}
}
