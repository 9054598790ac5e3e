package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"none", LevelNone},
		{LevelNone.String(), LevelNone},
		{"nonsense", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLogLevel(tt.in); got != tt.want {
				t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestRequestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := initLogger(&buf, slog.LevelDebug, "prod")

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(RequestLogging(logger))
	router.Get("/missing", func(w http.ResponseWriter, r *http.Request) {
		ContextWithLogAttrs(r.Context(), slog.String("post_id", "abc"))
		ContextRequestLogger(r.Context()).Debug("handler called")
		w.WriteHeader(http.StatusNotFound)
	})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/missing", nil))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d: %s", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &entry); err != nil {
		t.Fatalf("failed to decode log line: %v", err)
	}

	if entry["msg"] != "Request completed" {
		t.Errorf("got msg %v", entry["msg"])
	}
	if entry["level"] != "WARN" {
		t.Errorf("got level %v, want WARN", entry["level"])
	}
	if entry["status"] != float64(http.StatusNotFound) {
		t.Errorf("got status %v, want 404", entry["status"])
	}
	if entry["post_id"] != "abc" {
		t.Errorf("expected post_id attribute, got %v", entry["post_id"])
	}
	if entry["request_id"] == "" || entry["request_id"] == nil {
		t.Error("expected request_id attribute")
	}
}

func TestContextRequestLoggerDefault(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	if ContextRequestLogger(req.Context()) == nil {
		t.Fatal("expected default logger")
	}
	// no holder in context, must not panic
	ContextWithLogAttrs(req.Context(), slog.String("k", "v"))
}
