package local

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/bornholm/compass/internal/docs"
	"github.com/pkg/errors"
)

func TestSource(t *testing.T) {
	dir := t.TempDir()

	if err := os.MkdirAll(filepath.Join(dir, "en"), 0o755); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if err := os.WriteFile(filepath.Join(dir, "en", "main.html"), []byte("<h1>Help</h1>"), 0o644); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	source, err := CreateSourceFromOptions(map[string]any{"dir": dir})
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	type testCase struct {
		Name          string
		ExpectedBody  string
		ExpectedError error
	}

	testCases := []testCase{
		{Name: "en/main.html", ExpectedBody: "<h1>Help</h1>"},
		{Name: "en/apps.html", ExpectedError: docs.ErrNotFound},
		{Name: "en", ExpectedError: docs.ErrNotFound},
		{Name: "fr/main.html", ExpectedError: docs.ErrNotFound},
	}

	ctx := context.Background()

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			doc, err := source.Open(ctx, tc.Name)
			if tc.ExpectedError != nil {
				if !errors.Is(err, tc.ExpectedError) {
					t.Fatalf("err: expected %v, got %+v", tc.ExpectedError, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("%+v", errors.WithStack(err))
			}

			defer doc.Close()

			data, err := io.ReadAll(doc)
			if err != nil {
				t.Fatalf("%+v", errors.WithStack(err))
			}

			if e, g := tc.ExpectedBody, string(data); e != g {
				t.Errorf("body: expected '%s', got '%s'", e, g)
			}

			if e, g := "main.html", doc.Name; e != g {
				t.Errorf("doc.Name: expected '%s', got '%s'", e, g)
			}
		})
	}
}

func TestSourceOutsideRoot(t *testing.T) {
	parent := t.TempDir()
	dir := filepath.Join(parent, "help")

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if err := os.WriteFile(filepath.Join(parent, "secret.txt"), []byte("secret"), 0o644); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	source := NewSource(dir)

	if _, err := source.Open(context.Background(), "../secret.txt"); err == nil {
		t.Fatal("expected an error when escaping the source directory")
	}
}

func TestCreateSourceWithoutDir(t *testing.T) {
	if _, err := CreateSourceFromOptions(map[string]any{}); err == nil {
		t.Fatal("expected an error without 'dir' option")
	}
}
