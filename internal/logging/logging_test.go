package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]log.Level{
		"debug":   log.DebugLevel,
		" INFO ":  log.InfoLevel,
		"warning": log.WarnLevel,
		"error":   log.ErrorLevel,
		"loud":    log.InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParseFormatter(t *testing.T) {
	if ParseFormatter("json") != log.JSONFormatter || ParseFormatter("logfmt") != log.LogfmtFormatter {
		t.Fatal("unexpected formatter mapping")
	}
	if ParseFormatter("fancy") != log.TextFormatter {
		t.Fatal("expected text formatter fallback")
	}
}

func TestOpenFallbackRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := Open("", &buf, "warn", "logfmt")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer closer.Close()

	logger.Info("hidden")
	logger.Warn("shown", "key", "value")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line leaked at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "key=value") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestOpenWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "taskboard.log")
	logger, closer, err := Open(path, nil, "debug", "json")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	logger.Debug("reminder scan", "raised", 2)
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(raw), `"msg":"reminder scan"`) {
		t.Fatalf("unexpected file contents: %s", raw)
	}
}
