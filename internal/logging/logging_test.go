package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestSetupJSON(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	var buf bytes.Buffer
	if err := Setup(&buf, "debug", "json"); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	WithError(slog.Default(), errors.New("boom")).Debug("read csv", "rows", 3)

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("log line is not json: %v: %s", err, buf.String())
	}
	if rec["msg"] != "read csv" || rec["error"] != "boom" || rec["rows"] != float64(3) {
		t.Fatalf("unexpected record: %v", rec)
	}
}

func TestSetupLevelFilters(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	var buf bytes.Buffer
	if err := Setup(&buf, "warn", "text"); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	slog.Info("hidden")
	slog.Warn("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("level not applied: %q", buf.String())
	}
}

func TestSetupRejectsUnknownValues(t *testing.T) {
	var buf bytes.Buffer
	if err := Setup(&buf, "loud", "text"); err == nil {
		t.Fatalf("expected level error")
	}
	if err := Setup(&buf, "info", "xml"); err == nil {
		t.Fatalf("expected format error")
	}
}
