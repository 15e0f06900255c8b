package logging_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"soundvault/internal/config"
	"soundvault/internal/logging"
)

func TestConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.Info("sound imported", "sound_id", "abc", "name", "hand clap")

	line := buf.String()
	if !strings.Contains(line, "INFO sound imported") {
		t.Fatalf("unexpected line: %q", line)
	}
	if !strings.Contains(line, "sound_id=abc") {
		t.Fatalf("attr missing: %q", line)
	}
	// Values containing spaces are quoted.
	if !strings.Contains(line, `name="hand clap"`) {
		t.Fatalf("quoting missing: %q", line)
	}
}

func TestConsoleGroupedAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.WithGroup("vault").With("library", "/tmp/lib").Info("ready")

	if !strings.Contains(buf.String(), "vault.library=/tmp/lib") {
		t.Fatalf("group prefix missing: %q", buf.String())
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.Info("sound imported", "sound_id", "abc")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v: %q", err, buf.String())
	}
	if record["msg"] != "sound imported" || record["sound_id"] != "abc" {
		t.Fatalf("unexpected record: %v", record)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "warn", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.Info("suppressed")
	logger.Debug("suppressed")
	logger.Warn("emitted")

	out := buf.String()
	if strings.Contains(out, "suppressed") {
		t.Fatalf("level filter leaked: %q", out)
	}
	if !strings.Contains(out, "emitted") {
		t.Fatalf("warn record missing: %q", out)
	}
}

func TestUnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "shouting", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.Debug("hidden")
	logger.Info("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestUnsupportedFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Format = "json"
	if _, err := logging.NewFromConfig(&cfg); err != nil {
		t.Fatalf("NewFromConfig failed: %v", err)
	}
	if _, err := logging.NewFromConfig(nil); err != nil {
		t.Fatalf("NewFromConfig(nil) failed: %v", err)
	}
}

func TestNopDiscardsEverything(t *testing.T) {
	logger := logging.Nop()
	if logger == nil {
		t.Fatal("Nop returned nil")
	}
	// Must not panic at any level.
	logger.Debug("x")
	logger.Info("x")
	logger.Warn("x")
	logger.Error("x")
}
