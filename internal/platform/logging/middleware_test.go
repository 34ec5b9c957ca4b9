package logging

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func withProjectID(t *testing.T, id string) {
	t.Helper()
	orig := cachedProjectID
	cachedProjectID = id
	projectIDOnce = sync.Once{}
	projectIDOnce.Do(func() {})
	t.Cleanup(func() {
		cachedProjectID = orig
		projectIDOnce = sync.Once{}
	})
}

func fieldMap(entry observer.LoggedEntry) map[string]zap.Field {
	out := map[string]zap.Field{}
	for _, f := range entry.Context {
		out[f.Key] = f
	}
	return out
}

func TestAccessLoggerWritesSummary(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	handler := AccessLogger()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/cards/jane", nil)
	req = req.WithContext(WithLogger(req.Context(), zap.New(core)))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	entries := recorded.All()
	if len(entries) != 1 || entries[0].Message != "request completed" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
	fields := fieldMap(entries[0])
	if fields["status"].Integer != http.StatusTeapot {
		t.Fatalf("expected status 418, got %+v", fields["status"])
	}
	if fields["path"].String != "/v1/cards/jane" {
		t.Fatalf("unexpected path %+v", fields["path"])
	}
	if _, ok := fields["duration"]; !ok {
		t.Fatal("expected duration field")
	}
}

func TestRequestLoggerUsesTraceparent(t *testing.T) {
	withProjectID(t, "demo-project")

	var traceID string
	handler := RequestLogger()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		traceID = TraceIDFromContext(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("traceparent", "00-ab42124a3c573678d4d8b21ba52df3bf-d21f7bc17caa5aba-01")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	want := "projects/demo-project/traces/ab42124a3c573678d4d8b21ba52df3bf"
	if traceID != want {
		t.Fatalf("expected trace %q, got %q", want, traceID)
	}
}

func TestRequestLoggerFallsBackToRequestID(t *testing.T) {
	withProjectID(t, "")

	var traceID string
	handler := chimiddleware.RequestID(RequestLogger()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		traceID = TraceIDFromContext(r.Context())
	})))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(chimiddleware.RequestIDHeader, "req-42")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if traceID != "req-42" {
		t.Fatalf("expected request id as trace id, got %q", traceID)
	}
}

func TestTraceFieldsRejectsMalformedHeader(t *testing.T) {
	if got := traceFields("not-a-trace", "p"); got != nil {
		t.Fatalf("expected nil fields, got %v", got)
	}
	if got := traceFields("00-ab42124a3c573678d4d8b21ba52df3bf-d21f7bc17caa5aba-00", ""); got != nil {
		t.Fatalf("expected nil fields without project, got %v", got)
	}
	got := traceFields("00-ab42124a3c573678d4d8b21ba52df3bf-d21f7bc17caa5aba-00", "p")
	if len(got) != 3 || got[2].Integer != 0 {
		t.Fatalf("expected unsampled trace fields, got %v", got)
	}
}

func TestLogErrorAppendsError(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	ctx := WithLogger(context.Background(), zap.New(core))

	LogError(ctx, "save failed", errors.New("boom"))
	LogError(ctx, "no error", nil)
	LogWarn(ctx, "warned")
	LogInfo(ctx, "informed")

	entries := recorded.All()
	if len(entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(entries))
	}
	if _, ok := fieldMap(entries[0])["error"]; !ok {
		t.Fatal("expected error field")
	}
	if _, ok := fieldMap(entries[1])["error"]; ok {
		t.Fatal("did not expect error field for nil error")
	}
}

func TestLoggerFromContextFallbacks(t *testing.T) {
	//nolint:staticcheck // nil context is part of the contract
	if LoggerFromContext(nil) == nil {
		t.Fatal("expected process logger for nil context")
	}
	if LoggerFromContext(context.Background()) != Logger() {
		t.Fatal("expected process logger when none stored")
	}
	if TraceIDFromContext(context.Background()) != "" {
		t.Fatal("expected empty trace id")
	}
}

func TestWithAddsFieldsAndKeepsTraceID(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	ctx := contextWithTraceID(context.Background(), "req-1")
	ctx = WithLogger(ctx, zap.New(core))
	ctx = With(ctx, zap.String("username", "jane"))

	LogInfo(ctx, "card composed")

	if TraceIDFromContext(ctx) != "req-1" {
		t.Fatalf("trace id lost, got %q", TraceIDFromContext(ctx))
	}
	entries := recorded.All()
	if len(entries) != 1 || fieldMap(entries[0])["username"].String != "jane" {
		t.Fatalf("expected username field, got %+v", entries)
	}
}
