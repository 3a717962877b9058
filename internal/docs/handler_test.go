package docs_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/bornholm/compass/internal/docs"
	"github.com/bornholm/compass/internal/docs/local"
	"github.com/pkg/errors"
)

func TestHandler(t *testing.T) {
	dir := t.TempDir()

	if err := os.MkdirAll(filepath.Join(dir, "fr"), 0o755); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if err := os.WriteFile(filepath.Join(dir, "fr", "hosts.html"), []byte("<p>Hôtes</p>"), 0o644); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	handler := docs.NewHandler("/static/help", local.NewSource(dir))

	server := httptest.NewServer(handler)
	defer server.Close()

	type testCase struct {
		Path           string
		ExpectedStatus int
		ExpectedBody   string
	}

	testCases := []testCase{
		{Path: "/static/help/fr/hosts.html", ExpectedStatus: http.StatusOK, ExpectedBody: "<p>Hôtes</p>"},
		{Path: "/static/help/fr/apps.html", ExpectedStatus: http.StatusNotFound},
		{Path: "/static/help/en/hosts.html", ExpectedStatus: http.StatusNotFound},
		{Path: "/static/help/fr", ExpectedStatus: http.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.Path, func(t *testing.T) {
			res, err := http.Get(server.URL + tc.Path)
			if err != nil {
				t.Fatalf("%+v", errors.WithStack(err))
			}

			defer res.Body.Close()

			if e, g := tc.ExpectedStatus, res.StatusCode; e != g {
				t.Fatalf("res.StatusCode: expected %d, got %d", e, g)
			}

			if tc.ExpectedBody == "" {
				return
			}

			body, err := io.ReadAll(res.Body)
			if err != nil {
				t.Fatalf("%+v", errors.WithStack(err))
			}

			if e, g := tc.ExpectedBody, string(body); e != g {
				t.Errorf("body: expected '%s', got '%s'", e, g)
			}

			if e, g := "text/html; charset=utf-8", res.Header.Get("Content-Type"); e != g {
				t.Errorf("Content-Type: expected '%s', got '%s'", e, g)
			}
		})
	}
}

func TestNewUnknownType(t *testing.T) {
	if _, err := docs.New("unknown", nil); !errors.Is(err, docs.ErrUnknownType) {
		t.Fatalf("err: expected %v, got %+v", docs.ErrUnknownType, err)
	}
}
