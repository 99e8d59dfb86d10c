package logger_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-leadform/internal/logger"
)

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	ctx := logger.WithLogger(context.Background(), logger.New(&buf, false, false))

	logger.Info(ctx, "hidden")
	logger.Warn(ctx, "shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("unexpected output at warn level: %q", buf.String())
	}

	buf.Reset()
	ctx = logger.WithLogger(context.Background(), logger.New(&buf, true, false))
	logger.Debug(ctx, "debugging")
	if !strings.Contains(buf.String(), "debugging") {
		t.Fatalf("expected debug output, got %q", buf.String())
	}
}

func TestWithAndError(t *testing.T) {
	var buf bytes.Buffer
	ctx := logger.WithLogger(context.Background(), logger.New(&buf, false, true))
	ctx = logger.With(ctx, "lead", "abc")

	logger.Error(ctx, "submit failed", errors.New("boom"))

	out := buf.String()
	for _, want := range []string{"submit failed", "lead=abc", "error=boom"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
}
