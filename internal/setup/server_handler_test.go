package setup

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/bornholm/compass/internal/config"
	"github.com/pkg/errors"
)

func TestNewHandlerFromConfig(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dir := t.TempDir()

	docsDir := filepath.Join(dir, "help")
	if err := os.MkdirAll(filepath.Join(docsDir, "en"), 0o755); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if err := os.WriteFile(filepath.Join(docsDir, "en", "hosts.html"), []byte("<h1>Hosts</h1>"), 0o644); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	conf := config.NewDefaultConfig()
	if err := config.Interpolate(conf); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	conf.Store.Path = config.InterpolatedString(filepath.Join(dir, "compass.db"))
	conf.Docs.Type = "local"
	conf.Docs.Options = &config.InterpolatedMap{Data: map[string]any{"dir": docsDir}}

	handler, err := NewHandlerFromConfig(ctx, conf)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	type testCase struct {
		Path   string
		Status int
	}

	testCases := []testCase{
		{Path: "/", Status: http.StatusOK},
		{Path: "/navbar?path=/hosts&view=hosts", Status: http.StatusOK},
		{Path: "/api/help?view=hosts", Status: http.StatusOK},
		{Path: "/static/help/en/hosts.html", Status: http.StatusOK},
		{Path: "/static/help/en/missing.html", Status: http.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.Path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.Path, nil)
			res := httptest.NewRecorder()

			handler.ServeHTTP(res, req)

			if e, g := tc.Status, res.Code; e != g {
				body, _ := io.ReadAll(res.Body)
				t.Fatalf("res.Code: expected '%v', got '%v' (%s)", e, g, body)
			}
		})
	}
}
