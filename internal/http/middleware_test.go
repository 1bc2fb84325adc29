package http

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRequestLogger(t *testing.T) {
	t.Parallel()

	t.Run("attaches a request-scoped logger to the context", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		base := slog.New(slog.NewJSONHandler(&buf, nil))

		var sawLogger bool
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sawLogger = LoggerFromContext(r.Context()) != nil
			w.WriteHeader(http.StatusOK)
		})

		handler := RequestLogger(base)(inner)
		req := httptest.NewRequest(http.MethodGet, "/api/employees", nil)
		handler.ServeHTTP(httptest.NewRecorder(), req)

		if !sawLogger {
			t.Fatalf("expected logger in request context")
		}

		output := buf.String()
		if !strings.Contains(output, "request started") || !strings.Contains(output, "request completed") {
			t.Fatalf("expected start and completion events, got %q", output)
		}
		if !strings.Contains(output, `"path":"/api/employees"`) {
			t.Fatalf("expected request path attribute, got %q", output)
		}
	})

	t.Run("assigns distinct request ids", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		base := slog.New(slog.NewJSONHandler(&buf, nil))

		handler := RequestLogger(base)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/employees", nil))
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/employees", nil))

		output := buf.String()
		if !strings.Contains(output, `"request_id":1`) || !strings.Contains(output, `"request_id":2`) {
			t.Fatalf("expected sequential request ids, got %q", output)
		}
	})
}
