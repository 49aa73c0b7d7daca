package log_test

import (
	"context"
	"testing"

	"task-planner/pkg/log"
)

func TestInit(t *testing.T) {
	cases := []log.ZapConfig{
		{Level: "debug", Mode: log.ModeDevelopment, Encoding: log.EncodingConsole, ColorEnabled: true},
		{Level: "info", Mode: log.ModeProduction, Encoding: log.EncodingJSON},
		{Level: "nonsense", Mode: "", Encoding: ""},
	}

	for _, cfg := range cases {
		l := log.Init(cfg)
		if l == nil {
			t.Fatalf("Init(%+v) returned nil", cfg)
		}
		ctx := log.ContextWithRequestID(context.Background(), "req-1")
		l.Debugf(ctx, "debug %d", 1)
		l.Info(ctx, "info")
		l.Warnf(ctx, "warn %s", "x")
	}
}

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := log.ContextWithRequestID(context.Background(), "abc")
	if got := log.RequestIDFromContext(ctx); got != "abc" {
		t.Errorf("expected abc, got %q", got)
	}
	if got := log.RequestIDFromContext(context.Background()); got != "" {
		t.Errorf("expected empty id, got %q", got)
	}
}
