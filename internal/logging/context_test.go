package logging_test

import (
	"context"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/esfix/internal/logging"
)

func TestWithLoggerRoundTrip(t *testing.T) {
	t.Parallel()

	logger := logging.New("debug")
	ctx := logging.WithLogger(context.Background(), logger)

	got := logging.FromContext(ctx)
	if got != logger {
		t.Errorf("FromContext returned %p, want the attached logger %p", got, logger)
	}
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ctx  context.Context
	}{
		{"nil context", nil},
		{"bare context", context.Background()},
		{"nil logger attached", logging.WithLogger(context.Background(), nil)},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got := logging.FromContext(testCase.ctx)
			if got == nil {
				t.Fatal("FromContext returned nil logger")
			}
			if got != logging.Default() {
				t.Errorf("FromContext did not fall back to the default logger")
			}
		})
	}
}

func TestWithLoggerNilContext(t *testing.T) {
	t.Parallel()

	logger := log.New(nil)
	ctx := logging.WithLogger(nil, logger) //nolint:staticcheck // nil handling is the point

	if got := logging.FromContext(ctx); got != logger {
		t.Error("logger attached to a nil context was not retrievable")
	}
}
