package pprof

import (
	"expvar"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

func TestVars(t *testing.T) {
	sessions := expvar.Func(func() any { return 3 })

	handler := NewHandler("/debug", WithVar("sessions", sessions))

	req := httptest.NewRequest(http.MethodGet, "/debug/vars", nil)
	res := httptest.NewRecorder()

	handler.ServeHTTP(res, req)

	if e, g := http.StatusOK, res.Code; e != g {
		t.Fatalf("res.Code: expected %d, got %d", e, g)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	vars := map[string]any{}
	if err := json.Unmarshal(body, &vars); err != nil {
		t.Fatalf("%+v: %s", errors.WithStack(err), body)
	}

	if e, g := float64(3), vars["sessions"]; e != g {
		t.Errorf("vars[\"sessions\"]: expected %v, got %v", e, g)
	}

	if _, exists := vars["memstats"]; !exists {
		t.Errorf("expected memstats in '%s'", strings.TrimSpace(string(body)))
	}
}
