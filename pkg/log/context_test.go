package log

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestContextHandler(t *testing.T) {
	var buff bytes.Buffer

	logger := slog.New(ContextHandler{
		Handler: slog.NewTextHandler(&buff, nil),
	})

	ctx := WithAttrs(context.Background(), slog.String("session", "abc"))
	ctx = WithAttrs(ctx, slog.String("path", "#/apps"))

	logger.InfoContext(ctx, "navbar resolved", Error(errors.New("boom")))

	output := buff.String()

	for _, expected := range []string{"session=abc", "path=#/apps", "error.message=boom"} {
		if !strings.Contains(output, expected) {
			t.Errorf("output: expected to contain '%s', got '%s'", expected, output)
		}
	}
}
